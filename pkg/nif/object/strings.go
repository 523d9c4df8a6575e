package object

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// StringRef is a string that files from 20.1.0.1 on store as an index into
// the header string table and older files store inline. Both forms are kept:
// the index is what is synced, the string is what callers edit, and the
// header moves between them on load and save.
type StringRef struct {
	str string
	idx uint32 // index+1, zero is empty
}

// NewStringRef returns a reference holding str with no table index yet.
func NewStringRef(str string) StringRef {
	return StringRef{str: str}
}

// Get returns the resolved string.
func (r *StringRef) Get() string { return r.str }

// Set replaces the string. The index is reassigned on the next save.
func (r *StringRef) Set(str string) { r.str = str }

// Index returns the string table index or NPOS.
func (r *StringRef) Index() uint32 { return r.idx - 1 }

// SetIndex sets the string table index.
func (r *StringRef) SetIndex(index uint32) { r.idx = index + 1 }

// Clear empties both forms.
func (r *StringRef) Clear() {
	r.str = ""
	r.idx = 0
}

// Sync reads or writes the inline string or the table index, depending on
// the file version.
func (r *StringRef) Sync(s *stream.Stream) {
	if s.Version().File() < version.V20_1_0_1 {
		s.SyncSizedString(&r.str, 4)
		return
	}
	idx := r.Index()
	stream.Sync(s, &idx)
	r.SetIndex(idx)
}

// SyncString syncs a string that is always stored inline with a 32-bit
// length, regardless of version.
func SyncString(s *stream.Stream, str *string) {
	s.SyncSizedString(str, 4)
}
