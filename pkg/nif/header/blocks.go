package header

import (
	"fmt"
	"slices"

	"github.com/deploymenttheory/go-nif/pkg/nif/object"
)

// GetBlock returns block id as T when it exists and implements T.
func GetBlock[T any](h *Header, id uint32) (T, bool) {
	return object.As[T](h.Block(id))
}

// GetBlockByRef resolves an owning or back-reference.
func GetBlockByRef[T any](h *Header, r object.Ref) (T, bool) {
	if r.IsEmpty() {
		var zero T
		return zero, false
	}
	return GetBlock[T](h, r.Index())
}

// GetBlockID returns the index of block b, compared by identity, or NPOS.
func (h *Header) GetBlockID(b object.NiObject) uint32 {
	if b == nil {
		return object.NPOS
	}
	for i, o := range h.blocks {
		if o == b {
			return uint32(i)
		}
	}
	return object.NPOS
}

// GetBlockTypeStringByID returns the type name of block id.
func (h *Header) GetBlockTypeStringByID(id uint32) string {
	idx := h.GetBlockTypeIndex(id)
	if int(idx) >= len(h.blockTypes) {
		return ""
	}
	return h.blockTypes[idx]
}

// GetBlockTypeIndex returns the type table index of block id, or 0xFFFF.
func (h *Header) GetBlockTypeIndex(id uint32) uint16 {
	if id >= uint32(len(h.blockTypeIndices)) {
		return 0xFFFF
	}
	return h.blockTypeIndices[id]
}

// AddOrFindBlockTypeID returns the type table index of name, appending it
// when it is not there yet.
func (h *Header) AddOrFindBlockTypeID(name string) uint16 {
	if i := slices.Index(h.blockTypes, name); i >= 0 {
		return uint16(i)
	}
	h.blockTypes = append(h.blockTypes, name)
	return uint16(len(h.blockTypes) - 1)
}

// AddBlock appends b and returns its index. Nothing else is renumbered.
func (h *Header) AddBlock(b object.NiObject) uint32 {
	typeID := h.AddOrFindBlockTypeID(b.BlockName())
	h.blockTypeIndices = append(h.blockTypeIndices, typeID)
	h.blockSizes = append(h.blockSizes, 0)
	h.blocks = append(h.blocks, b)
	return uint32(len(h.blocks) - 1)
}

// AppendLoadedBlock appends a block read from a file. Files with a type
// table already carry its type index and size; older files get them here.
func (h *Header) AppendLoadedBlock(b object.NiObject) {
	n := len(h.blocks)
	if len(h.blockTypeIndices) <= n {
		h.blockTypeIndices = append(h.blockTypeIndices, h.AddOrFindBlockTypeID(b.BlockName()))
	}
	if len(h.blockSizes) <= n {
		h.blockSizes = append(h.blockSizes, 0)
	}
	h.blocks = append(h.blocks, b)
}

// DeleteBlock removes block id. References to it become empty, references
// to later blocks are decremented, and its type name is dropped from the
// type table when no other block uses it.
func (h *Header) DeleteBlock(id uint32) {
	if id >= uint32(len(h.blocks)) {
		return
	}
	h.deleteBlock(id)
	h.warnUnknownRefs("delete")
}

func (h *Header) deleteBlock(id uint32) {

	typeID := h.blockTypeIndices[id]
	h.blocks = slices.Delete(h.blocks, int(id), int(id)+1)
	h.blockTypeIndices = slices.Delete(h.blockTypeIndices, int(id), int(id)+1)
	if int(id) < len(h.blockSizes) {
		h.blockSizes = slices.Delete(h.blockSizes, int(id), int(id)+1)
	}
	h.compactBlockType(typeID)

	h.rewriteRefs(func(idx uint32) uint32 {
		switch {
		case idx == id:
			return object.NPOS
		case idx > id:
			return idx - 1
		}
		return idx
	})
}

// DeleteBlocks removes every listed block. Indices refer to the order before
// the call; duplicates are ignored.
func (h *Header) DeleteBlocks(ids []uint32) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	deleted := false
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] < uint32(len(h.blocks)) {
			h.deleteBlock(sorted[i])
			deleted = true
		}
	}
	if deleted {
		h.warnUnknownRefs("delete")
	}
}

// compactBlockType removes type table entry typeID when no block uses it and
// shifts the indices above it down.
func (h *Header) compactBlockType(typeID uint16) {
	if int(typeID) >= len(h.blockTypes) || slices.Contains(h.blockTypeIndices, typeID) {
		return
	}
	h.blockTypes = slices.Delete(h.blockTypes, int(typeID), int(typeID)+1)
	for i, idx := range h.blockTypeIndices {
		if idx > typeID {
			h.blockTypeIndices[i] = idx - 1
		}
	}
}

// ReplaceBlock puts b at the position of block id. References to id now
// point at b, and the type table follows the new type name.
func (h *Header) ReplaceBlock(id uint32, b object.NiObject) {
	if id >= uint32(len(h.blocks)) {
		return
	}

	old := h.blockTypeIndices[id]
	h.blocks[id] = b
	h.blockTypeIndices[id] = h.AddOrFindBlockTypeID(b.BlockName())
	if int(id) < len(h.blockSizes) {
		h.blockSizes[id] = 0
	}
	h.compactBlockType(old)
}

// SwapBlocks exchanges the positions of blocks a and b and rewrites every
// reference so the graph is unchanged.
func (h *Header) SwapBlocks(a, b uint32) {
	n := uint32(len(h.blocks))
	if a == b || a >= n || b >= n {
		return
	}
	h.swapBlocks(a, b)
	h.warnUnknownRefs("swap")
}

func (h *Header) swapBlocks(a, b uint32) {

	h.blocks[a], h.blocks[b] = h.blocks[b], h.blocks[a]
	h.blockTypeIndices[a], h.blockTypeIndices[b] = h.blockTypeIndices[b], h.blockTypeIndices[a]
	if a < uint32(len(h.blockSizes)) && b < uint32(len(h.blockSizes)) {
		h.blockSizes[a], h.blockSizes[b] = h.blockSizes[b], h.blockSizes[a]
	}

	h.rewriteRefs(func(idx uint32) uint32 {
		switch idx {
		case a:
			return b
		case b:
			return a
		}
		return idx
	})
}

// SetBlockOrder moves every block i to position newOrder[i]. newOrder must
// be a permutation of the block indices.
func (h *Header) SetBlockOrder(newOrder []uint32) error {
	if len(newOrder) != len(h.blocks) {
		return fmt.Errorf("block order has %d entries, header has %d blocks", len(newOrder), len(h.blocks))
	}
	seen := make([]bool, len(newOrder))
	for _, to := range newOrder {
		if to >= uint32(len(newOrder)) || seen[to] {
			return fmt.Errorf("block order is not a permutation: index %d", to)
		}
		seen[to] = true
	}

	order := slices.Clone(newOrder)
	moved := false
	for i := range order {
		for order[i] != uint32(i) {
			j := order[i]
			h.swapBlocks(uint32(i), j)
			order[i], order[j] = order[j], j
			moved = true
		}
	}
	if moved {
		h.warnUnknownRefs("reorder")
	}
	return nil
}

// rewriteRefs maps every owning reference, back-reference and footer root
// through fn. Empty references are left alone; a result of NPOS empties the
// reference.
func (h *Header) rewriteRefs(fn func(uint32) uint32) {
	var refs []*object.Ref
	for _, b := range h.blocks {
		refs = object.AllRefs(b)
		for _, r := range refs {
			if !r.IsEmpty() {
				r.SetIndex(fn(r.Index()))
			}
		}
	}
	kept := h.roots[:0]
	for _, r := range h.roots {
		if r.IsEmpty() {
			continue
		}
		r.SetIndex(fn(r.Index()))
		if !r.IsEmpty() {
			kept = append(kept, r)
		}
	}
	h.roots = kept
}

// BlockRefCount returns how many owning references and back-references in
// other blocks point at id.
func (h *Header) BlockRefCount(id uint32) int {
	count := 0
	for i, b := range h.blocks {
		if uint32(i) == id {
			continue
		}
		for _, r := range object.AllRefs(b) {
			if !r.IsEmpty() && r.Index() == id {
				count++
			}
		}
	}
	return count
}

// IsBlockReferenced reports whether any other block or a footer root points
// at id.
func (h *Header) IsBlockReferenced(id uint32) bool {
	for _, r := range h.roots {
		if !r.IsEmpty() && r.Index() == id {
			return true
		}
	}
	return h.BlockRefCount(id) > 0
}

// DeleteUnreferencedBlocks repeatedly deletes blocks nothing points at until
// none are left, never deleting root. When filter is non-nil only blocks it
// accepts are candidates. It returns how many blocks were deleted and the
// index root ended up at.
func (h *Header) DeleteUnreferencedBlocks(root uint32, filter func(object.NiObject) bool) (int, uint32) {
	deleted := 0
	for {
		found := false
		for i := uint32(0); i < uint32(len(h.blocks)); i++ {
			if i == root {
				continue
			}
			if filter != nil && !filter(h.blocks[i]) {
				continue
			}
			if h.IsBlockReferenced(i) {
				continue
			}

			h.deleteBlock(i)
			if i < root && root != object.NPOS {
				root--
			}
			deleted++
			found = true
			break
		}
		if !found {
			if deleted > 0 {
				h.warnUnknownRefs("delete")
			}
			return deleted, root
		}
	}
}
