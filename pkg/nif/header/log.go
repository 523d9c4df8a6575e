package header

import (
	"io"
	"log/slog"

	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger routes block table diagnostics to l. A nil logger silences them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// warnUnknownRefs reports that op renumbers blocks while some payloads are
// kept as raw bytes, whose references cannot be rewritten.
func (h *Header) warnUnknownRefs(op string) {
	var names []string
	for _, b := range h.blocks {
		if u, ok := b.(*blocks.NiUnknown); ok {
			names = append(names, u.BlockName())
		}
	}
	if len(names) > 0 {
		logger.Warn("block indices changed; references inside unparsed blocks were not updated",
			"op", op, "unparsed", names)
	}
}
