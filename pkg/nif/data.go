package nif

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/header"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
)

// SkinPartitionOf returns the skin partition of shape, following the skin
// instance, or nil when the shape is not skinned that way.
func (f *File) SkinPartitionOf(shape *blocks.BSTriShape) *blocks.NiSkinPartition {
	skin, ok := header.GetBlockByRef[blocks.SkinInstance](f.hdr, shape.SkinInstanceRef.Ref)
	if !ok {
		return nil
	}
	part, ok := header.GetBlockByRef[*blocks.NiSkinPartition](f.hdr, skin.AsSkinInstance().SkinPartitionRef.Ref)
	if !ok {
		return nil
	}
	return part
}

// PrepareData moves the vertices of skinned Skyrim SE shapes out of their
// skin partitions onto the shapes, and rebuilds the shapes' triangles from
// the partitions. Load calls it, so shapes always hold their own geometry
// in memory.
func (f *File) PrepareData() {
	if !f.Version().IsSSE() {
		return
	}

	for _, b := range f.hdr.Blocks() {
		ts, ok := b.(blocks.TriShape)
		if !ok {
			continue
		}
		shape := ts.AsTriShape()
		part := f.SkinPartitionOf(shape)
		if part == nil || len(part.VertexData) == 0 {
			continue
		}

		shape.Vertices = part.VertexData
		shape.VertexDesc = part.VertexDesc
		shape.NumVertices = uint16(len(shape.Vertices))
		part.VertexData = nil

		part.GenerateTrueTrianglesFromMappedTriangles()
		var tris []types.Triangle
		for _, p := range part.Partitions {
			tris = append(tris, p.TrueTriangles...)
		}
		shape.Triangles = tris
		shape.NumTriangles = uint32(len(tris))
		part.PrepareTriParts(tris)
	}
}

// FinalizeData is the inverse of PrepareData, run before writing: the
// vertices of skinned Skyrim SE shapes go back into their skin partitions
// and each partition's vertex map, triangles and weights are rebuilt from
// the shape's triangles. Triangles not assigned to a partition go to the
// first one.
func (f *File) FinalizeData() {
	if !f.Version().IsSSE() {
		return
	}

	for _, b := range f.hdr.Blocks() {
		ts, ok := b.(blocks.TriShape)
		if !ok {
			continue
		}
		shape := ts.AsTriShape()
		part := f.SkinPartitionOf(shape)
		if part == nil || len(part.Partitions) == 0 || len(shape.Vertices) == 0 {
			continue
		}

		tris := shape.Triangles
		if len(part.TriParts) != len(tris) {
			part.PrepareTriParts(tris)
		}
		for i, p := range part.TriParts {
			if p < 0 || p >= len(part.Partitions) {
				part.TriParts[i] = 0
			}
		}
		part.PrepareVertexMapsAndTriangles(tris)

		part.VertexDesc = shape.VertexDesc
		part.VertexDesc.SetFlag(types.VFSkinned)
		part.VertexDesc.Rebuild(true)
		part.VertexData = shape.Vertices
		for i := range part.Partitions {
			part.Partitions[i].VertexDesc = part.VertexDesc
		}

		shape.NumVertices = uint16(len(shape.Vertices))
		shape.NumTriangles = uint32(len(tris))
		shape.Vertices = nil
		shape.Triangles = nil
	}
}
