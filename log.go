package rtspingest

import (
	"io"
	"log/slog"

	"github.com/clearskyvideo/rtspingest/internal/logging"
)

// NewLogger builds the colored slog.Logger this package's Config.Logger
// expects. Callers that already have their own slog.Logger can pass it
// directly through Config instead.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return logging.New(w, level)
}
