package env

import (
	"os"
	"strings"
)

const (
	OutDirVar   = "SFCSTYLES_OUT_DIR"
	LogLevelVar = "SFCSTYLES_LOG_LEVEL"
	LibEntryVar = "SFCSTYLES_LIB_ENTRY"
)

type Overrides struct {
	OutDir   string
	LogLevel string
	LibEntry string
}

func DetectOverrides() Overrides {
	return Overrides{
		OutDir:   strings.TrimSpace(os.Getenv(OutDirVar)),
		LogLevel: strings.TrimSpace(os.Getenv(LogLevelVar)),
		LibEntry: strings.TrimSpace(os.Getenv(LibEntryVar)),
	}
}
