// Package logging holds the logger shared by ustring packages.
//
// Library code only emits Debug records; the logger discards everything
// until an application installs its own through Set.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Set replaces the shared logger. A nil logger restores the discarding default.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	current.Store(l)
}

// L returns the shared logger tagged with component.
func L(component string) *slog.Logger {
	return current.Load().With("component", component)
}
