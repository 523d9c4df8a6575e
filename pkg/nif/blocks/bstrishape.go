package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
)

// BSVertexData is one packed vertex of a BSTriShape or SSE skin partition.
// Which members are present on the wire depends on the VertexDesc.
type BSVertexData struct {
	Vert        types.Vector3
	BitangentX  float32
	UV          types.Vector2
	UV2         types.Vector2
	Normal      [3]uint8
	BitangentY  uint8
	Tangent     [3]uint8
	BitangentZ  uint8
	Color       types.ByteColor4
	Weights     [4]float32
	WeightBones [4]uint8
	EyeData     float32
}

// SyncVertex syncs one vertex laid out by desc. Positions are floats when
// fullPrecision is set and halves otherwise.
func (d *BSVertexData) SyncVertex(s *stream.Stream, desc types.VertexDesc, fullPrecision bool) {
	if desc.HasFlag(types.VFVertex) {
		if fullPrecision {
			stream.Sync(s, &d.Vert)
			stream.Sync(s, &d.BitangentX)
		} else {
			s.SyncHalf(&d.Vert.X)
			s.SyncHalf(&d.Vert.Y)
			s.SyncHalf(&d.Vert.Z)
			s.SyncHalf(&d.BitangentX)
		}
	}
	if desc.HasFlag(types.VFUV) {
		s.SyncHalf(&d.UV.U)
		s.SyncHalf(&d.UV.V)
	}
	if desc.HasFlag(types.VFUV2) {
		s.SyncHalf(&d.UV2.U)
		s.SyncHalf(&d.UV2.V)
	}
	if desc.HasFlag(types.VFNormal) {
		stream.Sync(s, &d.Normal)
		stream.Sync(s, &d.BitangentY)
		if desc.HasFlag(types.VFTangent) {
			stream.Sync(s, &d.Tangent)
			stream.Sync(s, &d.BitangentZ)
		}
	}
	if desc.HasFlag(types.VFColors) {
		stream.Sync(s, &d.Color)
	}
	if desc.HasFlag(types.VFSkinned) {
		for i := range d.Weights {
			s.SyncHalf(&d.Weights[i])
		}
		stream.Sync(s, &d.WeightBones)
	}
	if desc.HasFlag(types.VFEyeData) {
		stream.Sync(s, &d.EyeData)
	}
}

// BSTriShape is the packed-vertex triangle shape of Skyrim SE and later.
type BSTriShape struct {
	NiShape
	Bounds            types.BoundingSphere
	BoundMinMax       [6]float32
	SkinInstanceRef   object.BlockRef[NiObject]
	ShaderPropertyRef object.BlockRef[BSShaderProperty]
	AlphaPropertyRef  object.BlockRef[NiAlphaProperty]
	VertexDesc        types.VertexDesc
	NumTriangles      uint32
	NumVertices       uint16
	DataSize          uint32
	Vertices          []BSVertexData
	Triangles         []types.Triangle

	ParticleDataSize  uint32
	ParticleVerts     []types.Vector3
	ParticleNormals   []types.Vector3
	ParticleTriangles []types.Triangle
}

// NiObject is any block; used where a reference may hold several kinds.
type NiObject = object.NiObject

func (*BSTriShape) BlockName() string { return "BSTriShape" }

// AsTriShape exposes the embedded BSTriShape of any packed-vertex shape.
func (t *BSTriShape) AsTriShape() *BSTriShape { return t }

// FullPrecision reports whether positions are stored as floats in s's
// version.
func (t *BSTriShape) FullPrecision(s *stream.Stream) bool {
	return s.Version().IsSSE() || t.VertexDesc.HasFlag(types.VFFullPrec)
}

func (t *BSTriShape) Sync(s *stream.Stream) {
	t.NiAVObject.Sync(s)
	v := s.Version()

	stream.Sync(s, &t.Bounds)
	if v.Stream() == 155 {
		stream.Sync(s, &t.BoundMinMax)
	}
	t.SkinInstanceRef.Sync(s)
	t.ShaderPropertyRef.Sync(s)
	t.AlphaPropertyRef.Sync(s)

	full := t.FullPrecision(s)
	// Skinned Skyrim SE shapes keep their counts but no data; the vertices
	// live in the skin partition.
	if s.IsWriting() {
		t.VertexDesc.Rebuild(full)
		t.DataSize = 0
		if len(t.Vertices) > 0 || len(t.Triangles) > 0 {
			t.NumVertices = uint16(len(t.Vertices))
			t.NumTriangles = uint32(len(t.Triangles))
			t.DataSize = t.VertexDesc.Size()*uint32(t.NumVertices) + 6*t.NumTriangles
		}
	}
	stream.Sync(s, &t.VertexDesc)

	if v.Stream() < 130 {
		n := uint16(t.NumTriangles)
		stream.Sync(s, &n)
		t.NumTriangles = uint32(n)
	} else {
		stream.Sync(s, &t.NumTriangles)
	}
	stream.Sync(s, &t.NumVertices)
	stream.Sync(s, &t.DataSize)

	if t.DataSize > 0 {
		size := int(t.VertexDesc.Size())
		if s.IsReading() && !s.CanHold(int(t.NumVertices), max(size, 1)) {
			t.Vertices = nil
		} else {
			stream.Resize(&t.Vertices, int(t.NumVertices))
			for i := range t.Vertices {
				t.Vertices[i].SyncVertex(s, t.VertexDesc, full)
			}
		}
		stream.SyncVectorN(s, &t.Triangles, int(t.NumTriangles))
	} else if s.IsReading() {
		t.Vertices = nil
		t.Triangles = nil
	}

	if v.Stream() == 100 {
		t.syncParticleData(s)
	}
}

func (t *BSTriShape) syncParticleData(s *stream.Stream) {
	if s.IsWriting() {
		t.ParticleDataSize = 0
		if len(t.ParticleVerts) > 0 {
			t.ParticleDataSize = uint32(len(t.ParticleVerts))*6*2 + uint32(len(t.ParticleTriangles))*6
		}
	}
	stream.Sync(s, &t.ParticleDataSize)
	if t.ParticleDataSize == 0 {
		if s.IsReading() {
			t.ParticleVerts, t.ParticleNormals, t.ParticleTriangles = nil, nil, nil
		}
		return
	}

	n := int(t.NumVertices)
	syncHalfVectors(s, &t.ParticleVerts, n)
	syncHalfVectors(s, &t.ParticleNormals, n)
	stream.SyncVectorN(s, &t.ParticleTriangles, int(t.NumTriangles))
}

func syncHalfVectors(s *stream.Stream, v *[]types.Vector3, n int) {
	if s.IsReading() && !s.CanHold(n, 6) {
		*v = nil
		return
	}
	stream.Resize(v, n)
	for i := range *v {
		s.SyncHalf(&(*v)[i].X)
		s.SyncHalf(&(*v)[i].Y)
		s.SyncHalf(&(*v)[i].Z)
	}
}

func (t *BSTriShape) ChildRefs(refs []*Ref) []*Ref {
	refs = t.NiAVObject.ChildRefs(refs)
	return append(refs, &t.SkinInstanceRef.Ref, &t.ShaderPropertyRef.Ref, &t.AlphaPropertyRef.Ref)
}

// Positions returns the vertex positions.
func (t *BSTriShape) Positions() []types.Vector3 {
	out := make([]types.Vector3, len(t.Vertices))
	for i := range t.Vertices {
		out[i] = t.Vertices[i].Vert
	}
	return out
}

// UpdateBounds recomputes the bounding sphere from the vertices.
func (t *BSTriShape) UpdateBounds() {
	t.Bounds = types.NewBoundingSphere(t.Positions())
}

// SetSkinned toggles the skinning flag of the vertex descriptor.
func (t *BSTriShape) SetSkinned(enable bool) {
	if enable {
		t.VertexDesc.SetFlag(types.VFSkinned)
	} else {
		t.VertexDesc.RemoveFlag(types.VFSkinned)
	}
}

// BSSubIndexSubSegment is a sub-range of a FO4 segment.
type BSSubIndexSubSegment struct {
	StartIndex    uint32
	NumPrimitives uint32
	ArrayIndex    uint32
	Unused        uint32
}

// BSSubIndexSegment is one FO4 segment of a BSSubIndexTriShape.
type BSSubIndexSegment struct {
	StartIndex       uint32
	NumPrimitives    uint32
	ParentArrayIndex uint32
	SubSegments      []BSSubIndexSubSegment
}

func (g *BSSubIndexSegment) Sync(s *stream.Stream) {
	stream.Sync(s, &g.StartIndex)
	stream.Sync(s, &g.NumPrimitives)
	stream.Sync(s, &g.ParentArrayIndex)
	stream.SyncVector[uint32](s, &g.SubSegments)
}

// BSSubIndexDataRecord carries body-part metadata for one segment.
type BSSubIndexDataRecord struct {
	UserSlotID uint32
	Material   uint32
	ExtraData  []float32
}

func (r *BSSubIndexDataRecord) Sync(s *stream.Stream) {
	stream.Sync(s, &r.UserSlotID)
	stream.Sync(s, &r.Material)
	stream.SyncVector[uint32](s, &r.ExtraData)
}

// BSSubIndexSegmentData is the optional per-segment metadata table.
type BSSubIndexSegmentData struct {
	ArrayIndices []uint32
	Records      []BSSubIndexDataRecord
	SSFFile      string
}

// BSSubIndexTriShape is a BSTriShape split into body-part segments.
type BSSubIndexTriShape struct {
	BSTriShape

	// FO4 layout
	NumPrimitives uint32
	TotalSegments uint32
	Segments      []BSSubIndexSegment
	SegmentData   BSSubIndexSegmentData

	// SSE layout
	SSESegments []BSGeometrySegment
}

func (*BSSubIndexTriShape) BlockName() string { return "BSSubIndexTriShape" }

func (t *BSSubIndexTriShape) Sync(s *stream.Stream) {
	t.BSTriShape.Sync(s)
	v := s.Version()

	switch {
	case v.Stream() >= 130 && t.DataSize > 0:
		if s.IsWriting() {
			t.TotalSegments = uint32(len(t.Segments))
			for i := range t.Segments {
				t.TotalSegments += uint32(len(t.Segments[i].SubSegments))
			}
		}
		stream.Sync(s, &t.NumPrimitives)
		var numSegments uint32
		n := stream.SyncCount(s, &numSegments, len(t.Segments))
		stream.Sync(s, &t.TotalSegments)
		stream.SyncEachN(s, &t.Segments, n)

		if uint32(n) < t.TotalSegments && s.Err() == nil {
			d := &t.SegmentData
			var count, total uint32
			count32 := stream.SyncCount(s, &count, len(d.ArrayIndices))
			totalN := stream.SyncCount(s, &total, len(d.Records))
			stream.SyncVectorN(s, &d.ArrayIndices, count32)
			stream.SyncEachN(s, &d.Records, totalN)
			s.SyncSizedString(&d.SSFFile, 2)
		}
	case v.Stream() == 100:
		stream.SyncVector[uint32](s, &t.SSESegments)
	}
}

// BSMeshLODTriShape is a BSTriShape with three LOD triangle counts.
type BSMeshLODTriShape struct {
	BSTriShape
	LOD0Size uint32
	LOD1Size uint32
	LOD2Size uint32
}

func (*BSMeshLODTriShape) BlockName() string { return "BSMeshLODTriShape" }

func (t *BSMeshLODTriShape) Sync(s *stream.Stream) {
	t.BSTriShape.Sync(s)
	stream.Sync(s, &t.LOD0Size)
	stream.Sync(s, &t.LOD1Size)
	stream.Sync(s, &t.LOD2Size)
}

// BSDynamicTriShape carries CPU-updated positions after the packed data.
type BSDynamicTriShape struct {
	BSTriShape
	DynamicVertices []types.Vector4
}

func (*BSDynamicTriShape) BlockName() string { return "BSDynamicTriShape" }

func (t *BSDynamicTriShape) Sync(s *stream.Stream) {
	t.BSTriShape.Sync(s)
	size := uint32(len(t.DynamicVertices)) * 16
	stream.Sync(s, &size)
	stream.SyncVectorN(s, &t.DynamicVertices, int(size/16))
}
