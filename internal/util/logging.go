// Package util provides common utilities including logging helpers,
// file system locations, and small numeric helpers.
package util

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogError logs an error with context if it is non-nil.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("%s: %v", context, err)
	}
}

// Logf writes a formatted line to the standard logger.
func Logf(format string, args ...any) {
	log.Printf(format, args...)
}

// MustSucceed logs and exits on error. Use sparingly.
func MustSucceed(context string, err error) {
	if err != nil {
		log.Fatalf("%s: %v", context, err)
	}
}

// LogToFile points the standard logger at path, creating parent directories.
// Full-screen hosts use it so log lines never land on the terminal. The
// returned closer restores stderr output.
func LogToFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return closerFunc(func() error {
		log.SetOutput(os.Stderr)
		return f.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
