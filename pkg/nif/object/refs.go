package object

import (
	"slices"

	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
)

// NPOS is the index of an absent reference.
const NPOS uint32 = 0xFFFFFFFF

// Ref is a single 32-bit block index. The zero value is empty.
//
// The index is stored shifted by one so that zero-valued blocks start with
// empty references, matching the -1 the format uses on the wire.
type Ref struct {
	v uint32
}

// NewRef returns a reference to index.
func NewRef(index uint32) Ref {
	var r Ref
	r.SetIndex(index)
	return r
}

// Index returns the referenced block index or NPOS.
func (r Ref) Index() uint32 { return r.v - 1 }

// SetIndex points the reference at index; NPOS empties it.
func (r *Ref) SetIndex(index uint32) { r.v = index + 1 }

// IsEmpty reports whether the reference is absent.
func (r Ref) IsEmpty() bool { return r.v == 0 }

// Clear empties the reference.
func (r *Ref) Clear() { r.v = 0 }

// Sync reads or writes the 32-bit index.
func (r *Ref) Sync(s *stream.Stream) {
	idx := r.Index()
	stream.Sync(s, &idx)
	r.SetIndex(idx)
}

// BlockRef is an owning reference to a block expected to implement T.
// T only documents intent; lookups check the actual type.
type BlockRef[T any] struct {
	Ref
}

// NewBlockRef returns an owning reference to index.
func NewBlockRef[T any](index uint32) BlockRef[T] {
	return BlockRef[T]{Ref: NewRef(index)}
}

// BlockPtr is a non-owning back-reference, such as a controller's target.
type BlockPtr[T any] struct {
	Ref
}

// NewBlockPtr returns a back-reference to index.
func NewBlockPtr[T any](index uint32) BlockPtr[T] {
	return BlockPtr[T]{Ref: NewRef(index)}
}

// BlockRefArray is a list of owning references with a 32-bit count.
// Empty references are dropped on write unless KeepEmptyRefs is set.
type BlockRefArray[T any] struct {
	Refs          []BlockRef[T]
	KeepEmptyRefs bool
}

// Sync reads or writes the count followed by every reference.
func (a *BlockRefArray[T]) Sync(s *stream.Stream) {
	if s.IsWriting() && !a.KeepEmptyRefs {
		a.CleanInvalidRefs()
	}
	var n uint32
	count := stream.SyncCount(s, &n, len(a.Refs))
	a.syncElements(s, count)
}

func (a *BlockRefArray[T]) syncElements(s *stream.Stream, count int) {
	if s.IsReading() {
		if !s.CanHold(count, 4) {
			a.Refs = nil
			return
		}
		stream.Resize(&a.Refs, count)
	}
	for i := range a.Refs {
		a.Refs[i].Sync(s)
	}
}

// ChildRefs appends a pointer to every element.
func (a *BlockRefArray[T]) ChildRefs(refs []*Ref) []*Ref {
	for i := range a.Refs {
		refs = append(refs, &a.Refs[i].Ref)
	}
	return refs
}

// Len returns the number of references.
func (a *BlockRefArray[T]) Len() int { return len(a.Refs) }

// At returns the index stored at position i, or NPOS when out of range.
func (a *BlockRefArray[T]) At(i int) uint32 {
	if i < 0 || i >= len(a.Refs) {
		return NPOS
	}
	return a.Refs[i].Index()
}

// Add appends a reference to index.
func (a *BlockRefArray[T]) Add(index uint32) {
	a.Refs = append(a.Refs, NewBlockRef[T](index))
}

// Insert places a reference to index at position i.
func (a *BlockRefArray[T]) Insert(i int, index uint32) {
	if i < 0 || i > len(a.Refs) {
		i = len(a.Refs)
	}
	a.Refs = slices.Insert(a.Refs, i, NewBlockRef[T](index))
}

// RemoveAt deletes position i, keeping order.
func (a *BlockRefArray[T]) RemoveAt(i int) {
	if i < 0 || i >= len(a.Refs) {
		return
	}
	a.Refs = slices.Delete(a.Refs, i, i+1)
}

// Remove deletes every reference to index.
func (a *BlockRefArray[T]) Remove(index uint32) {
	a.Refs = slices.DeleteFunc(a.Refs, func(r BlockRef[T]) bool { return r.Index() == index })
}

// Has reports whether any element references index.
func (a *BlockRefArray[T]) Has(index uint32) bool {
	return slices.ContainsFunc(a.Refs, func(r BlockRef[T]) bool { return r.Index() == index })
}

// Indices returns the stored indices in order.
func (a *BlockRefArray[T]) Indices() []uint32 {
	out := make([]uint32, len(a.Refs))
	for i, r := range a.Refs {
		out[i] = r.Index()
	}
	return out
}

// SetIndices replaces the contents with references to indices.
func (a *BlockRefArray[T]) SetIndices(indices []uint32) {
	a.Refs = make([]BlockRef[T], len(indices))
	for i, idx := range indices {
		a.Refs[i].SetIndex(idx)
	}
}

// Clear removes every element.
func (a *BlockRefArray[T]) Clear() { a.Refs = nil }

// CleanInvalidRefs drops empty references, keeping order.
func (a *BlockRefArray[T]) CleanInvalidRefs() {
	a.Refs = slices.DeleteFunc(a.Refs, func(r BlockRef[T]) bool { return r.IsEmpty() })
}

// BlockRefShortArray is a BlockRefArray whose count is 16 bits wide.
type BlockRefShortArray[T any] struct {
	BlockRefArray[T]
}

// Sync reads or writes the 16-bit count followed by every reference.
func (a *BlockRefShortArray[T]) Sync(s *stream.Stream) {
	if s.IsWriting() && !a.KeepEmptyRefs {
		a.CleanInvalidRefs()
	}
	var n uint16
	count := stream.SyncCount(s, &n, len(a.Refs))
	a.syncElements(s, count)
}

// BlockPtrArray is a list of back-references with a 32-bit count. Positions
// are meaningful, so empty entries are always kept.
type BlockPtrArray[T any] struct {
	Ptrs []BlockPtr[T]
}

// Sync reads or writes the count followed by every back-reference.
func (a *BlockPtrArray[T]) Sync(s *stream.Stream) {
	var n uint32
	count := stream.SyncCount(s, &n, len(a.Ptrs))
	a.SyncN(s, count)
}

// SyncN reads or writes exactly count back-references whose count is
// stored elsewhere.
func (a *BlockPtrArray[T]) SyncN(s *stream.Stream, count int) {
	if s.IsReading() {
		if !s.CanHold(count, 4) {
			a.Ptrs = nil
			return
		}
		stream.Resize(&a.Ptrs, count)
	} else if len(a.Ptrs) != count {
		stream.Resize(&a.Ptrs, count)
	}
	for i := range a.Ptrs {
		a.Ptrs[i].Sync(s)
	}
}

// AppendPtrs appends a pointer to every element.
func (a *BlockPtrArray[T]) AppendPtrs(ptrs []*Ref) []*Ref {
	for i := range a.Ptrs {
		ptrs = append(ptrs, &a.Ptrs[i].Ref)
	}
	return ptrs
}

// Len returns the number of back-references.
func (a *BlockPtrArray[T]) Len() int { return len(a.Ptrs) }

// Add appends a back-reference to index.
func (a *BlockPtrArray[T]) Add(index uint32) {
	a.Ptrs = append(a.Ptrs, NewBlockPtr[T](index))
}

// Indices returns the stored indices in order.
func (a *BlockPtrArray[T]) Indices() []uint32 {
	out := make([]uint32, len(a.Ptrs))
	for i, r := range a.Ptrs {
		out[i] = r.Index()
	}
	return out
}

// SetIndices replaces the contents with back-references to indices.
func (a *BlockPtrArray[T]) SetIndices(indices []uint32) {
	a.Ptrs = make([]BlockPtr[T], len(indices))
	for i, idx := range indices {
		a.Ptrs[i].SetIndex(idx)
	}
}

// RemoveAt deletes position i, keeping order.
func (a *BlockPtrArray[T]) RemoveAt(i int) {
	if i < 0 || i >= len(a.Ptrs) {
		return
	}
	a.Ptrs = slices.Delete(a.Ptrs, i, i+1)
}

// SyncRefs syncs a slice of references whose count is stored elsewhere.
func SyncRefs[T any](s *stream.Stream, refs *[]BlockRef[T], count int) {
	if s.IsReading() {
		if !s.CanHold(count, 4) {
			*refs = nil
			return
		}
		stream.Resize(refs, count)
	} else if len(*refs) != count {
		stream.Resize(refs, count)
	}
	for i := range *refs {
		(*refs)[i].Sync(s)
	}
}

// AppendRefs appends a pointer to every reference in refs.
func AppendRefs[T any](out []*Ref, refs []BlockRef[T]) []*Ref {
	for i := range refs {
		out = append(out, &refs[i].Ref)
	}
	return out
}
