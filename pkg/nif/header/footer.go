package header

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// SyncFooter reads or writes the root list that follows the last block.
func (h *Header) SyncFooter(s *stream.Stream) error {
	if h.version.File() < version.V3_3_0_13 {
		return nil
	}

	count := uint32(len(h.roots))
	n := stream.SyncCount(s, &count, len(h.roots))
	if s.IsReading() {
		if !s.CanHold(n, 4) {
			return s.Err()
		}
		h.roots = make([]object.Ref, n)
	}
	for i := range h.roots {
		h.roots[i].Sync(s)
	}
	return s.Err()
}
