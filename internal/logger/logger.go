// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing to the file at path. The TUI owns
// stdout, so logs always go to a file; an empty path discards them.
func New(path string) (zerolog.Logger, error) {
	if path == "" {
		return zerolog.New(io.Discard), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.New(io.Discard), err
	}
	return zerolog.New(f).With().Timestamp().Logger(), nil
}
