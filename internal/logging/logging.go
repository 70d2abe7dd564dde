// Package logging owns the process logger. Logs go to stderr so stdout stays reserved for command output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	mu     sync.RWMutex
	level  = new(slog.LevelVar)
	logger = slog.New(newHandler(os.Stderr))
)

func newHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLevel changes the minimum level of the process logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetOutput redirects the process logger to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(newHandler(w))
}
