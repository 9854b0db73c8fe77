package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions holds configuration for file-based log output with rotation.
type FileOptions struct {
	// Path is the file path to write logs to.
	Path string
	// MaxSizeMB is the maximum size in megabytes before rotation.
	MaxSizeMB int
	// MaxFiles is the number of rotated files to retain.
	MaxFiles int
}

// NewFileWriter returns an io.Writer that writes to a rotating log file.
// Rotated files are compressed with gzip.
func NewFileWriter(opts FileOptions) io.Writer {
	return &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxFiles,
		Compress:   true,
	}
}
