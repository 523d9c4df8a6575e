package nif

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/header"
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
)

// SortGraph reorders the blocks depth first from the footer roots, each
// block followed by the blocks it owns in field order: a node's extra data,
// controller, properties and collision object precede its children. Blocks
// no root reaches keep their relative order after the reachable ones.
func (f *File) SortGraph() error {
	hdr := f.hdr
	n := hdr.NumBlocks()
	order := make([]uint32, n)
	for i := range order {
		order[i] = object.NPOS
	}

	next := uint32(0)
	var visit func(id uint32)
	visit = func(id uint32) {
		if id >= n || order[id] != object.NPOS {
			return
		}
		order[id] = next
		next++
		for _, r := range hdr.Block(id).ChildRefs(nil) {
			if !r.IsEmpty() {
				visit(r.Index())
			}
		}
	}

	for _, r := range hdr.Roots() {
		if !r.IsEmpty() {
			visit(r.Index())
		}
	}
	for id := uint32(0); id < n; id++ {
		visit(id)
	}
	return hdr.SetBlockOrder(order)
}

// ChildRefsOf returns the indices of every block reachable from id through
// owning references, id excluded, in depth-first order.
func (f *File) ChildRefsOf(id uint32) []uint32 {
	var out []uint32
	seen := map[uint32]bool{id: true}
	var walk func(uint32)
	walk = func(id uint32) {
		b := f.hdr.Block(id)
		if b == nil {
			return
		}
		for _, r := range b.ChildRefs(nil) {
			if r.IsEmpty() || seen[r.Index()] || f.hdr.Block(r.Index()) == nil {
				continue
			}
			seen[r.Index()] = true
			out = append(out, r.Index())
			walk(r.Index())
		}
	}
	walk(id)
	return out
}

// CloneBlock copies block id of src, and every block it owns, into f and
// returns the index of the copy. src may be f itself. Back-references to
// blocks that were copied follow the copies; others are kept when copying
// within one file and cleared otherwise.
func (f *File) CloneBlock(src *File, id uint32) uint32 {
	orig := src.hdr.Block(id)
	if orig == nil {
		return object.NPOS
	}

	ids := append([]uint32{id}, src.ChildRefsOf(id)...)
	mapping := make(map[uint32]uint32, len(ids))
	copies := make([]object.NiObject, len(ids))
	for i, old := range ids {
		copies[i] = object.Clone(src.hdr.Block(old))
		mapping[old] = f.hdr.AddBlock(copies[i])
	}

	same := src == f
	for _, c := range copies {
		for _, r := range c.ChildRefs(nil) {
			if r.IsEmpty() {
				continue
			}
			if to, ok := mapping[r.Index()]; ok {
				r.SetIndex(to)
			} else {
				r.Clear()
			}
		}
		for _, r := range c.Ptrs(nil) {
			if r.IsEmpty() {
				continue
			}
			if to, ok := mapping[r.Index()]; ok {
				r.SetIndex(to)
			} else if !same {
				r.Clear()
			}
		}
	}
	return mapping[id]
}

// DeleteUnreferencedBlocks removes every block nothing points at, keeping
// the root, and returns how many were removed.
func (f *File) DeleteUnreferencedBlocks() int {
	root := f.RootID()
	if root == object.NPOS {
		return 0
	}
	deleted, _ := f.hdr.DeleteUnreferencedBlocks(root, nil)
	if deleted > 0 {
		logger.Debug("deleted unreferenced blocks", "count", deleted)
	}
	return deleted
}

// DeleteBlockTree deletes block id together with every block it owns that
// nothing outside the tree points at.
func (f *File) DeleteBlockTree(id uint32) {
	owned := make(map[object.NiObject]bool)
	for _, c := range f.ChildRefsOf(id) {
		owned[f.hdr.Block(c)] = true
	}

	rootBlock := f.hdr.Block(f.RootID())
	f.hdr.DeleteBlock(id)
	root := f.hdr.GetBlockID(rootBlock)
	f.hdr.DeleteUnreferencedBlocks(root, func(o object.NiObject) bool { return owned[o] })
}

// Shapes returns every shape block in file order.
func (f *File) Shapes() []blocks.Shape {
	return collect[blocks.Shape](f)
}

// Nodes returns every node block in file order.
func (f *File) Nodes() []blocks.Node {
	return collect[blocks.Node](f)
}

func collect[T any](f *File) []T {
	var out []T
	for _, b := range f.hdr.Blocks() {
		if t, ok := b.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// FindBlockByName returns the first named block of type T called name.
func FindBlockByName[T any](f *File, name string) (T, bool) {
	for _, id := range f.hdr.FindBlocksByName(name) {
		if t, ok := header.GetBlock[T](f.hdr, id); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ParentOf returns the node whose children include id, or nil.
func (f *File) ParentOf(id uint32) *blocks.NiNode {
	for _, n := range f.Nodes() {
		node := n.AsNode()
		if node.Children.Has(id) {
			return node
		}
	}
	return nil
}

// AddChild appends b to the blocks and to parent's children. It returns the
// new block index.
func (f *File) AddChild(parent *blocks.NiNode, b blocks.AVObject) uint32 {
	id := f.hdr.AddBlock(b)
	parent.Children.Add(id)
	return id
}
