package fs

import (
	iofs "io/fs"
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	FileExists(path string) bool
}
