package nif

import (
	"io"
	"log/slog"

	"github.com/deploymenttheory/go-nif/pkg/nif/header"
)

var logger = discardLogger()

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger routes load, save and block table diagnostics to l. A nil
// logger silences them, which is the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	logger = l
	header.SetLogger(l)
}

// Logger returns the logger diagnostics are written to.
func Logger() *slog.Logger { return logger }
