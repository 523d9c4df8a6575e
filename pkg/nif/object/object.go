// Package object defines the polymorphic block root shared by every NIF
// block type, the reference primitives blocks use to point at each other,
// and string-table references.
package object

import "github.com/deploymenttheory/go-nif/pkg/nif/stream"

// NiObject is implemented by every block. Sync lays out the block's fields
// for both directions; the enumeration hooks expose every owning reference,
// every non-owning back-reference and every string-table reference so the
// header can fix them up after a graph mutation.
type NiObject interface {
	// BlockName returns the name written to the block type table.
	BlockName() string

	// Sync reads or writes the full field chain, parents first.
	Sync(s *stream.Stream)

	// ChildRefs appends pointers to every owning reference.
	ChildRefs(refs []*Ref) []*Ref

	// Ptrs appends pointers to every non-owning back-reference.
	Ptrs(ptrs []*Ref) []*Ref

	// StringRefs appends pointers to every string-table reference.
	StringRefs(refs []*StringRef) []*StringRef
}

// Base provides empty enumerations. Embed it at the root of every block.
type Base struct{}

// Sync syncs nothing.
func (*Base) Sync(*stream.Stream) {}

// ChildRefs appends nothing.
func (*Base) ChildRefs(refs []*Ref) []*Ref { return refs }

// Ptrs appends nothing.
func (*Base) Ptrs(ptrs []*Ref) []*Ref { return ptrs }

// StringRefs appends nothing.
func (*Base) StringRefs(refs []*StringRef) []*StringRef { return refs }

// ChildIndices returns the raw index of every owning reference of o,
// including empty ones.
func ChildIndices(o NiObject) []uint32 {
	refs := o.ChildRefs(nil)
	out := make([]uint32, len(refs))
	for i, r := range refs {
		out[i] = r.Index()
	}
	return out
}

// PtrIndices returns the raw index of every back-reference of o.
func PtrIndices(o NiObject) []uint32 {
	ptrs := o.Ptrs(nil)
	out := make([]uint32, len(ptrs))
	for i, r := range ptrs {
		out[i] = r.Index()
	}
	return out
}

// AllRefs returns owning references followed by back-references.
func AllRefs(o NiObject) []*Ref {
	return o.Ptrs(o.ChildRefs(nil))
}

// Is reports whether o implements T, which is either a concrete block
// pointer type or a capability interface.
func Is[T any](o NiObject) bool {
	_, ok := o.(T)
	return ok
}

// As converts o to T when it implements it.
func As[T any](o NiObject) (T, bool) {
	t, ok := o.(T)
	return t, ok
}
