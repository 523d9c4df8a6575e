package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// BhkShapeBase is the root of every Havok shape.
type BhkShapeBase struct{ object.Base }

// AsBhkShape exposes the embedded BhkShapeBase.
func (b *BhkShapeBase) AsBhkShape() *BhkShapeBase { return b }

// BhkSphereRepShape is a shape with a material and a radius.
type BhkSphereRepShape struct {
	BhkShapeBase
	Material HavokMaterial
	Radius   float32
}

func (b *BhkSphereRepShape) Sync(s *stream.Stream) {
	b.Material.Sync(s)
	stream.Sync(s, &b.Radius)
}

// BhkSphereShape is a sphere.
type BhkSphereShape struct{ BhkSphereRepShape }

func (*BhkSphereShape) BlockName() string { return "bhkSphereShape" }

// BhkCapsuleShape is a capsule between two points.
type BhkCapsuleShape struct {
	BhkSphereRepShape
	Unused      [8]uint8
	FirstPoint  types.Vector3
	Radius1     float32
	SecondPoint types.Vector3
	Radius2     float32
}

func (*BhkCapsuleShape) BlockName() string { return "bhkCapsuleShape" }

func (b *BhkCapsuleShape) Sync(s *stream.Stream) {
	b.BhkSphereRepShape.Sync(s)
	stream.Sync(s, &b.Unused)
	stream.Sync(s, &b.FirstPoint)
	stream.Sync(s, &b.Radius1)
	stream.Sync(s, &b.SecondPoint)
	stream.Sync(s, &b.Radius2)
}

// BhkBoxShape is a box given by half extents.
type BhkBoxShape struct {
	BhkSphereRepShape
	Unused      [8]uint8
	Dimensions  types.Vector3
	UnusedFloat float32
}

func (*BhkBoxShape) BlockName() string { return "bhkBoxShape" }

func (b *BhkBoxShape) Sync(s *stream.Stream) {
	b.BhkSphereRepShape.Sync(s)
	stream.Sync(s, &b.Unused)
	stream.Sync(s, &b.Dimensions)
	stream.Sync(s, &b.UnusedFloat)
}

// BhkMultiSphereShape is a union of spheres.
type BhkMultiSphereShape struct {
	BhkSphereRepShape
	ShapeProperty WorldObjCInfoProperty
	Spheres       []types.BoundingSphere
}

func (*BhkMultiSphereShape) BlockName() string { return "bhkMultiSphereShape" }

func (b *BhkMultiSphereShape) Sync(s *stream.Stream) {
	b.BhkSphereRepShape.Sync(s)
	stream.Sync(s, &b.ShapeProperty)
	stream.SyncVector[uint32](s, &b.Spheres)
}

// BhkConvexVerticesShape is a convex hull with face planes.
type BhkConvexVerticesShape struct {
	BhkSphereRepShape
	VerticesProperty WorldObjCInfoProperty
	NormalsProperty  WorldObjCInfoProperty
	Vertices         []types.Vector4
	Normals          []types.Vector4
}

func (*BhkConvexVerticesShape) BlockName() string { return "bhkConvexVerticesShape" }

func (b *BhkConvexVerticesShape) Sync(s *stream.Stream) {
	b.BhkSphereRepShape.Sync(s)
	stream.Sync(s, &b.VerticesProperty)
	stream.Sync(s, &b.NormalsProperty)
	stream.SyncVector[uint32](s, &b.Vertices)
	stream.SyncVector[uint32](s, &b.Normals)
}

// BhkTransformShape places a child shape with a transform.
type BhkTransformShape struct {
	BhkShapeBase
	ShapeRef  object.BlockRef[BhkShapeBase]
	Material  HavokMaterial
	Radius    float32
	Unused    [8]uint8
	Transform types.Matrix4
}

func (*BhkTransformShape) BlockName() string { return "bhkTransformShape" }

func (b *BhkTransformShape) Sync(s *stream.Stream) {
	b.ShapeRef.Sync(s)
	b.Material.Sync(s)
	stream.Sync(s, &b.Radius)
	stream.Sync(s, &b.Unused)
	stream.Sync(s, &b.Transform)
}

func (b *BhkTransformShape) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &b.ShapeRef.Ref)
}

// BhkConvexTransformShape transforms a convex child shape.
type BhkConvexTransformShape struct{ BhkTransformShape }

func (*BhkConvexTransformShape) BlockName() string { return "bhkConvexTransformShape" }

// BhkListShape is a collection of child shapes.
type BhkListShape struct {
	BhkShapeBase
	SubShapes           object.BlockRefArray[BhkShapeBase]
	Material            HavokMaterial
	ChildShapeProperty  WorldObjCInfoProperty
	ChildFilterProperty WorldObjCInfoProperty
	Filters             []HavokFilter
}

func (*BhkListShape) BlockName() string { return "bhkListShape" }

func (b *BhkListShape) Sync(s *stream.Stream) {
	b.SubShapes.Sync(s)
	b.Material.Sync(s)
	stream.Sync(s, &b.ChildShapeProperty)
	stream.Sync(s, &b.ChildFilterProperty)
	stream.SyncVector[uint32](s, &b.Filters)
}

func (b *BhkListShape) ChildRefs(refs []*Ref) []*Ref {
	return b.SubShapes.ChildRefs(refs)
}

// BhkConvexListShape is a collection of convex child shapes.
type BhkConvexListShape struct {
	BhkShapeBase
	SubShapes               object.BlockRefArray[BhkShapeBase]
	Material                HavokMaterial
	Radius                  float32
	UnknownInt1             uint32
	UnknownFloat1           float32
	ChildShapeProperty      WorldObjCInfoProperty
	UseCachedAABB           bool
	ClosestPointMinDistance float32
}

func (*BhkConvexListShape) BlockName() string { return "bhkConvexListShape" }

func (b *BhkConvexListShape) Sync(s *stream.Stream) {
	b.SubShapes.Sync(s)
	b.Material.Sync(s)
	stream.Sync(s, &b.Radius)
	stream.Sync(s, &b.UnknownInt1)
	stream.Sync(s, &b.UnknownFloat1)
	stream.Sync(s, &b.ChildShapeProperty)
	s.SyncByteBool(&b.UseCachedAABB)
	stream.Sync(s, &b.ClosestPointMinDistance)
}

func (b *BhkConvexListShape) ChildRefs(refs []*Ref) []*Ref {
	return b.SubShapes.ChildRefs(refs)
}

// BhkMoppBvTreeShape wraps a shape in a MOPP bounding volume tree.
type BhkMoppBvTreeShape struct {
	BhkShapeBase
	ShapeRef   object.BlockRef[BhkShapeBase]
	Unused     [12]uint8
	ShapeScale float32
	Origin     types.Vector3
	Scale      float32
	BuildType  uint8
	MoppData   []byte
}

func (*BhkMoppBvTreeShape) BlockName() string { return "bhkMoppBvTreeShape" }

func (b *BhkMoppBvTreeShape) Sync(s *stream.Stream) {
	v := s.Version()
	b.ShapeRef.Sync(s)
	stream.Sync(s, &b.Unused)
	stream.Sync(s, &b.ShapeScale)

	var size uint32
	count := stream.SyncCount(s, &size, len(b.MoppData))
	if v.File() >= version.V10_1_0_0 {
		stream.Sync(s, &b.Origin)
		stream.Sync(s, &b.Scale)
	}
	if v.Stream() > 34 {
		stream.Sync(s, &b.BuildType)
	}
	if s.IsReading() && !s.CanHold(count, 1) {
		b.MoppData = nil
		return
	}
	stream.Resize(&b.MoppData, count)
	s.SyncBytes(b.MoppData)
}

func (b *BhkMoppBvTreeShape) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &b.ShapeRef.Ref)
}

// BhkNiTriStripsShape builds collision from NiTriStripsData blocks.
type BhkNiTriStripsShape struct {
	BhkShapeBase
	Material   HavokMaterial
	Radius     float32
	Unused     [20]uint8
	GrowBy     uint32
	Scale      types.Vector4
	StripsData object.BlockRefArray[NiTriStripsData]
	Filters    []HavokFilter
}

func (*BhkNiTriStripsShape) BlockName() string { return "bhkNiTriStripsShape" }

func (b *BhkNiTriStripsShape) Sync(s *stream.Stream) {
	b.Material.Sync(s)
	stream.Sync(s, &b.Radius)
	stream.Sync(s, &b.Unused)
	stream.Sync(s, &b.GrowBy)
	if s.Version().File() >= version.V10_1_0_0 {
		stream.Sync(s, &b.Scale)
	}
	b.StripsData.Sync(s)
	stream.SyncVector[uint32](s, &b.Filters)
}

func (b *BhkNiTriStripsShape) ChildRefs(refs []*Ref) []*Ref {
	return b.StripsData.ChildRefs(refs)
}

// HkSubPartData describes one sub shape of packed strips data.
type HkSubPartData struct {
	Filter      HavokFilter
	NumVertices uint32
	Material    HavokMaterial
}

func (p *HkSubPartData) Sync(s *stream.Stream) {
	stream.Sync(s, &p.Filter)
	stream.Sync(s, &p.NumVertices)
	p.Material.Sync(s)
}

// BhkPackedNiTriStripsShape is collision over hkPackedNiTriStripsData.
type BhkPackedNiTriStripsShape struct {
	BhkShapeBase
	SubShapes  []HkSubPartData
	UserData   uint32
	Unused1    uint32
	Radius     float32
	Unused2    uint32
	Scale      types.Vector4
	RadiusCopy float32
	ScaleCopy  types.Vector4
	DataRef    object.BlockRef[HkPackedNiTriStripsData]
}

func (*BhkPackedNiTriStripsShape) BlockName() string { return "bhkPackedNiTriStripsShape" }

func (b *BhkPackedNiTriStripsShape) Sync(s *stream.Stream) {
	if s.Version().File() <= version.V20_0_0_5 {
		stream.SyncEach[uint16](s, &b.SubShapes)
	}
	stream.Sync(s, &b.UserData)
	stream.Sync(s, &b.Unused1)
	stream.Sync(s, &b.Radius)
	stream.Sync(s, &b.Unused2)
	stream.Sync(s, &b.Scale)
	stream.Sync(s, &b.RadiusCopy)
	stream.Sync(s, &b.ScaleCopy)
	b.DataRef.Sync(s)
}

func (b *BhkPackedNiTriStripsShape) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &b.DataRef.Ref)
}

// PackedTriangle is one triangle of packed strips data.
type PackedTriangle struct {
	Triangle    types.Triangle
	WeldingInfo uint16
	Normal      types.Vector3
}

// HkPackedNiTriStripsData holds the triangles of packed collision.
type HkPackedNiTriStripsData struct {
	BhkShapeBase
	Triangles  []PackedTriangle
	Compressed bool
	Vertices   []types.Vector3
	SubShapes  []HkSubPartData
}

func (*HkPackedNiTriStripsData) BlockName() string { return "hkPackedNiTriStripsData" }

func (d *HkPackedNiTriStripsData) Sync(s *stream.Stream) {
	v := s.Version()
	var n uint32
	count := stream.SyncCount(s, &n, len(d.Triangles))
	if s.IsReading() && !s.CanHold(count, 8) {
		d.Triangles = nil
		return
	}
	stream.Resize(&d.Triangles, count)
	for i := range d.Triangles {
		t := &d.Triangles[i]
		stream.Sync(s, &t.Triangle)
		stream.Sync(s, &t.WeldingInfo)
		if v.File() <= version.V20_0_0_5 {
			stream.Sync(s, &t.Normal)
		}
	}

	var nv uint32
	verts := stream.SyncCount(s, &nv, len(d.Vertices))
	if v.File() >= version.V20_2_0_7 {
		s.SyncByteBool(&d.Compressed)
	}
	if d.Compressed {
		if s.IsReading() && !s.CanHold(verts, 6) {
			d.Vertices = nil
			return
		}
		stream.Resize(&d.Vertices, verts)
		for i := range d.Vertices {
			s.SyncHalf(&d.Vertices[i].X)
			s.SyncHalf(&d.Vertices[i].Y)
			s.SyncHalf(&d.Vertices[i].Z)
		}
	} else {
		stream.SyncVectorN(s, &d.Vertices, verts)
	}

	if v.File() >= version.V20_2_0_7 {
		stream.SyncEach[uint16](s, &d.SubShapes)
	}
}

// CMSMaterial is a chunk material of compressed mesh data.
type CMSMaterial struct {
	Material uint32
	Filter   HavokFilter
}

// CMSTransform is a chunk transform of compressed mesh data.
type CMSTransform struct {
	Translation types.Vector4
	Rotation    HkQuaternion
}

// CMSBigTri is a triangle over the big vertex list.
type CMSBigTri struct {
	Triangle    types.Triangle
	Material    uint32
	WeldingInfo uint16
}

// CMSChunk is one quantized chunk of compressed mesh data.
type CMSChunk struct {
	Translation    types.Vector4
	MaterialIndex  uint32
	Reference      uint16
	TransformIndex uint16
	Vertices       []uint16
	Indices        []uint16
	Strips         []uint16
	WeldingInfo    []uint16
}

func (c *CMSChunk) Sync(s *stream.Stream) {
	stream.Sync(s, &c.Translation)
	stream.Sync(s, &c.MaterialIndex)
	stream.Sync(s, &c.Reference)
	stream.Sync(s, &c.TransformIndex)
	stream.SyncVector[uint32](s, &c.Vertices)
	stream.SyncVector[uint32](s, &c.Indices)
	stream.SyncVector[uint32](s, &c.Strips)
	stream.SyncVector[uint32](s, &c.WeldingInfo)
}

// BhkCompressedMeshShapeData is quantized Skyrim collision geometry.
type BhkCompressedMeshShapeData struct {
	object.Base
	BitsPerIndex      uint32
	BitsPerWIndex     uint32
	MaskWIndex        uint32
	MaskIndex         uint32
	Error             float32
	AABBMin           types.Vector4
	AABBMax           types.Vector4
	WeldingType       uint8
	MaterialType      uint8
	Materials32       []uint32
	Materials16       []uint32
	Materials8        []uint32
	ChunkMaterials    []CMSMaterial
	NumNamedMaterials uint32
	ChunkTransforms   []CMSTransform
	BigVerts          []types.Vector4
	BigTris           []CMSBigTri
	Chunks            []CMSChunk
	NumConvexPieceA   uint32
}

func (*BhkCompressedMeshShapeData) BlockName() string { return "bhkCompressedMeshShapeData" }

func (d *BhkCompressedMeshShapeData) Sync(s *stream.Stream) {
	stream.Sync(s, &d.BitsPerIndex)
	stream.Sync(s, &d.BitsPerWIndex)
	stream.Sync(s, &d.MaskWIndex)
	stream.Sync(s, &d.MaskIndex)
	stream.Sync(s, &d.Error)
	stream.Sync(s, &d.AABBMin)
	stream.Sync(s, &d.AABBMax)
	stream.Sync(s, &d.WeldingType)
	stream.Sync(s, &d.MaterialType)
	stream.SyncVector[uint32](s, &d.Materials32)
	stream.SyncVector[uint32](s, &d.Materials16)
	stream.SyncVector[uint32](s, &d.Materials8)
	stream.SyncVector[uint32](s, &d.ChunkMaterials)
	stream.Sync(s, &d.NumNamedMaterials)
	stream.SyncVector[uint32](s, &d.ChunkTransforms)
	stream.SyncVector[uint32](s, &d.BigVerts)
	stream.SyncVector[uint32](s, &d.BigTris)
	stream.SyncEach[uint32](s, &d.Chunks)
	stream.Sync(s, &d.NumConvexPieceA)
}

// BhkCompressedMeshShape is Skyrim mesh collision.
type BhkCompressedMeshShape struct {
	BhkShapeBase
	Target        object.BlockPtr[NiAVObject]
	UserData      uint32
	Radius        float32
	UnknownFloat1 float32
	Scale         types.Vector4
	RadiusCopy    float32
	ScaleCopy     types.Vector4
	DataRef       object.BlockRef[BhkCompressedMeshShapeData]
}

func (*BhkCompressedMeshShape) BlockName() string { return "bhkCompressedMeshShape" }

func (b *BhkCompressedMeshShape) Sync(s *stream.Stream) {
	b.Target.Sync(s)
	stream.Sync(s, &b.UserData)
	stream.Sync(s, &b.Radius)
	stream.Sync(s, &b.UnknownFloat1)
	stream.Sync(s, &b.Scale)
	stream.Sync(s, &b.RadiusCopy)
	stream.Sync(s, &b.ScaleCopy)
	b.DataRef.Sync(s)
}

func (b *BhkCompressedMeshShape) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &b.DataRef.Ref)
}

func (b *BhkCompressedMeshShape) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &b.Target.Ref)
}

// BhkPlaneShape is an infinite plane clipped to extents.
type BhkPlaneShape struct {
	BhkShapeBase
	Material HavokMaterial
	Unused   [12]uint8
	Plane    types.Vector4
	Extents  types.Vector4
	Center   types.Vector4
}

func (*BhkPlaneShape) BlockName() string { return "bhkPlaneShape" }

func (b *BhkPlaneShape) Sync(s *stream.Stream) {
	b.Material.Sync(s)
	stream.Sync(s, &b.Unused)
	stream.Sync(s, &b.Plane)
	stream.Sync(s, &b.Extents)
	stream.Sync(s, &b.Center)
}
