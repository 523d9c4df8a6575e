package header

import (
	"slices"

	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NumStrings returns the size of the string table.
func (h *Header) NumStrings() uint32 { return uint32(len(h.strings)) }

// Strings returns the string table.
func (h *Header) Strings() []string { return h.strings }

// FindStringID returns the index of str in the string table, or NPOS.
func (h *Header) FindStringID(str string) uint32 {
	if i := slices.Index(h.strings, str); i >= 0 {
		return uint32(i)
	}
	return object.NPOS
}

// AddOrFindStringID returns the index of str, appending it when missing.
// Empty strings map to NPOS unless addEmpty is set.
func (h *Header) AddOrFindStringID(str string, addEmpty bool) uint32 {
	if id := h.FindStringID(str); id != object.NPOS {
		return id
	}
	if str == "" && !addEmpty {
		return object.NPOS
	}
	h.strings = append(h.strings, str)
	h.maxStringLen = max(h.maxStringLen, uint32(len(str)))
	return uint32(len(h.strings) - 1)
}

// GetStringByID returns string id, or an empty string when id is out of
// range.
func (h *Header) GetStringByID(id uint32) string {
	if id >= uint32(len(h.strings)) {
		return ""
	}
	return h.strings[id]
}

// SetStringByID replaces string id in place. Every block referencing id sees
// the new value after the next FillStringRefs.
func (h *Header) SetStringByID(id uint32, str string) {
	if id < uint32(len(h.strings)) {
		h.strings[id] = str
	}
}

// ClearHeaderStrings empties the string table.
func (h *Header) ClearHeaderStrings() {
	h.strings = nil
	h.maxStringLen = 0
}

// FillStringRefs resolves the table index of every string reference into
// its string. Indices outside the table resolve to an empty string. Older
// files store strings inline, so there is nothing to resolve.
func (h *Header) FillStringRefs() {
	if h.version.File() < version.V20_1_0_1 {
		return
	}
	for _, b := range h.blocks {
		for _, r := range b.StringRefs(nil) {
			r.Set(h.GetStringByID(r.Index()))
		}
	}
}

// UpdateHeaderStrings rebuilds the string table from the strings the blocks
// hold and points every reference at its deduplicated entry. Files older
// than 20.1.0.1 store strings inline and keep no table. When raw
// unknown blocks are present the old table is kept, since their payloads may
// hold indices into it, and new strings are appended.
func (h *Header) UpdateHeaderStrings() {
	if h.version.File() < version.V20_1_0_1 {
		h.ClearHeaderStrings()
		return
	}
	if !h.hasUnknownBlocks() {
		h.ClearHeaderStrings()
	}
	for _, b := range h.blocks {
		for _, r := range b.StringRefs(nil) {
			str := r.Get()
			if str == "" {
				r.SetIndex(object.NPOS)
				continue
			}
			r.SetIndex(h.AddOrFindStringID(str, false))
		}
	}
}

func (h *Header) hasUnknownBlocks() bool {
	for _, b := range h.blocks {
		if _, ok := b.(*blocks.NiUnknown); ok {
			return true
		}
	}
	return false
}

// FindBlocksByName returns the indices of every named block whose name is
// name.
func (h *Header) FindBlocksByName(name string) []uint32 {
	var ids []uint32
	for i, b := range h.blocks {
		net, ok := b.(blocks.ObjectNET)
		if !ok {
			continue
		}
		if net.AsObjectNET().Name.Get() == name {
			ids = append(ids, uint32(i))
		}
	}
	return ids
}
