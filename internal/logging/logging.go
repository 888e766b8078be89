// Package logging builds the colored slog.Logger every default logger in
// this module shares, so the root package and the components it wires
// (pkg/assembler, pkg/rtp) fall back to the same handler without importing
// each other.
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// New builds a tint-backed *slog.Logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	}))
}
