package cli

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/danieljhkim/datebucket/internal/clock"
	"github.com/danieljhkim/datebucket/internal/engine"
	"github.com/danieljhkim/datebucket/internal/fsops"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(logger *slog.Logger) *engine.Engine {
	return engine.New(fsops.NewRealFS(), &clock.RealClock{}, logger)
}

// newLogger returns a debug-level text logger on w when verbose is set, and a
// silent logger otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON to w.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
