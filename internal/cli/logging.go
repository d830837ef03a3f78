package cli

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewLogger returns a console logger writing to w. Verbose lowers the level
// to debug. Every entry carries the run id.
func NewLogger(w io.Writer, verbose bool, runID string) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()
}

// RunIDGenerator produces the id that ties a command's logs to its JSON
// response.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDs.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7, falling back to a random UUID if the clock
// source fails.
func (UUIDv7Generator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
