package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
)

// NiUnknown keeps the raw payload of a block type the registry does not
// know. It can only be read from files that store block sizes.
type NiUnknown struct {
	object.Base
	Name string
	Data []byte
}

// NewNiUnknown returns a block of the given type name holding size bytes.
func NewNiUnknown(name string, size uint32) *NiUnknown {
	return &NiUnknown{Name: name, Data: make([]byte, size)}
}

func (u *NiUnknown) BlockName() string { return u.Name }

func (u *NiUnknown) Sync(s *stream.Stream) {
	if s.IsReading() && !s.CanHold(len(u.Data), 1) {
		u.Data = nil
		return
	}
	s.SyncBytes(u.Data)
}
