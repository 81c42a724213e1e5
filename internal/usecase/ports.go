package usecase

import (
	"github.com/3-lines-studio/sfcstyles/internal/adapters/fs"
)

type FileSystem = fs.FileSystem
