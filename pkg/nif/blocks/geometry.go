package blocks

import (
	"fmt"

	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiShape is the shared root of NiGeometry and BSTriShape. It adds no
// fields; it exists so every renderable block answers AsShape.
type NiShape struct {
	NiAVObject
}

// AsShape exposes the embedded NiShape of any geometry block.
func (s *NiShape) AsShape() *NiShape { return s }

// MaterialData names the materials of an NiGeometry.
type MaterialData struct {
	HasShader           bool
	ShaderName          StringRef
	ShaderExtraData     int32
	MaterialNames       []StringRef
	MaterialExtraData   []int32
	ActiveMaterial      int32
	MaterialNeedsUpdate bool
}

func (m *MaterialData) Sync(s *stream.Stream) {
	v := s.Version()
	if v.File() >= version.V10_0_1_0 && v.File() <= version.V20_1_0_3 {
		s.SyncBool(&m.HasShader)
		if m.HasShader {
			m.ShaderName.Sync(s)
			stream.Sync(s, &m.ShaderExtraData)
		}
	}
	if v.File() >= version.V20_2_0_5 {
		var n uint32
		count := stream.SyncCount(s, &n, len(m.MaterialNames))
		if s.IsReading() && !s.CanHold(count, 8) {
			count = 0
		}
		stream.Resize(&m.MaterialNames, count)
		for i := range m.MaterialNames {
			m.MaterialNames[i].Sync(s)
		}
		stream.SyncVectorN(s, &m.MaterialExtraData, count)
		stream.Sync(s, &m.ActiveMaterial)
	}
	if v.File() >= version.V20_2_0_7 {
		s.SyncBool(&m.MaterialNeedsUpdate)
	}
}

func (m *MaterialData) StringRefs(refs []*StringRef) []*StringRef {
	refs = append(refs, &m.ShaderName)
	for i := range m.MaterialNames {
		refs = append(refs, &m.MaterialNames[i])
	}
	return refs
}

// NiGeometry is the root of the pre-FO4 geometry blocks.
type NiGeometry struct {
	NiShape
	DataRef           object.BlockRef[NiGeometryData]
	SkinInstanceRef   object.BlockRef[NiSkinInstance]
	Material          MaterialData
	ShaderPropertyRef object.BlockRef[BSShaderProperty]
	AlphaPropertyRef  object.BlockRef[NiAlphaProperty]
}

func (g *NiGeometry) Sync(s *stream.Stream) {
	g.NiAVObject.Sync(s)
	v := s.Version()
	g.DataRef.Sync(s)
	if v.File() >= version.V3_3_0_13 {
		g.SkinInstanceRef.Sync(s)
	}
	g.Material.Sync(s)
	if v.Stream() > 34 {
		g.ShaderPropertyRef.Sync(s)
		g.AlphaPropertyRef.Sync(s)
	}
}

func (g *NiGeometry) ChildRefs(refs []*Ref) []*Ref {
	refs = g.NiAVObject.ChildRefs(refs)
	return append(refs, &g.DataRef.Ref, &g.SkinInstanceRef.Ref, &g.ShaderPropertyRef.Ref, &g.AlphaPropertyRef.Ref)
}

func (g *NiGeometry) StringRefs(refs []*StringRef) []*StringRef {
	refs = g.NiAVObject.StringRefs(refs)
	return g.Material.StringRefs(refs)
}

// NiTriBasedGeom is the root of triangle geometry.
type NiTriBasedGeom struct{ NiGeometry }

// NiTriShape is an indexed triangle list.
type NiTriShape struct{ NiTriBasedGeom }

func (*NiTriShape) BlockName() string { return "NiTriShape" }

// NiTriStrips is a triangle strip list.
type NiTriStrips struct{ NiTriBasedGeom }

func (*NiTriStrips) BlockName() string { return "NiTriStrips" }

// NiLines is a line list.
type NiLines struct{ NiTriBasedGeom }

func (*NiLines) BlockName() string { return "NiLines" }

// BSLODTriShape is a triangle shape with three LOD triangle counts.
type BSLODTriShape struct {
	NiTriBasedGeom
	LOD0Size uint32
	LOD1Size uint32
	LOD2Size uint32
}

func (*BSLODTriShape) BlockName() string { return "BSLODTriShape" }

func (g *BSLODTriShape) Sync(s *stream.Stream) {
	g.NiTriBasedGeom.Sync(s)
	stream.Sync(s, &g.LOD0Size)
	stream.Sync(s, &g.LOD1Size)
	stream.Sync(s, &g.LOD2Size)
}

// BSGeometrySegment is one segment of a BSSegmentedTriShape.
type BSGeometrySegment struct {
	Flags   uint8
	Index   uint32
	NumTris uint32
}

// BSSegmentedTriShape splits a triangle shape into segments.
type BSSegmentedTriShape struct {
	NiTriShape
	Segments []BSGeometrySegment
}

func (*BSSegmentedTriShape) BlockName() string { return "BSSegmentedTriShape" }

func (g *BSSegmentedTriShape) Sync(s *stream.Stream) {
	g.NiTriShape.Sync(s)
	stream.SyncVector[uint32](s, &g.Segments)
}

// Data flag bits of NiGeometryData.
const (
	GeometryDataUVMask      = 0x003F
	GeometryDataBSUVMask    = 0x0001
	GeometryDataHasTangents = 0x1000
)

// NiGeometryData holds per-vertex arrays.
type NiGeometryData struct {
	object.Base
	GroupID          int32
	NumVertices      uint16
	KeepFlags        uint8
	CompressFlags    uint8
	HasVertices      bool
	Vertices         []types.Vector3
	DataFlags        uint16
	MaterialCRC      uint32
	HasNormals       bool
	Normals          []types.Vector3
	Tangents         []types.Vector3
	Bitangents       []types.Vector3
	Bounds           types.BoundingSphere
	HasVertexColors  bool
	VertexColors     []types.Color4
	NumUVSetsOld     uint16
	HasUVOld         bool
	UVSets           [][]types.Vector2
	ConsistencyFlags uint16
	AdditionalData   object.BlockRef[NiAdditionalGeometryData]

	// Particle data keeps no per-vertex arrays in Bethesda files.
	isPSys bool
}

// AsGeometryData exposes the embedded NiGeometryData.
func (d *NiGeometryData) AsGeometryData() *NiGeometryData { return d }

func (d *NiGeometryData) uvSetCount(v *version.NiVersion) int {
	if v.File() <= version.V4_2_2_0 {
		return int(d.NumUVSetsOld)
	}
	if v.IsBethesda() || v.Stream() > 0 {
		return int(d.DataFlags & GeometryDataBSUVMask)
	}
	return int(d.DataFlags & GeometryDataUVMask)
}

func (d *NiGeometryData) Sync(s *stream.Stream) {
	v := s.Version()
	if v.File() >= version.V10_1_0_114 {
		stream.Sync(s, &d.GroupID)
	}
	stream.Sync(s, &d.NumVertices)
	if v.File() >= version.V10_1_0_0 {
		stream.Sync(s, &d.KeepFlags)
		stream.Sync(s, &d.CompressFlags)
	}

	n := int(d.NumVertices)
	if d.isPSys && v.Stream() > 0 {
		n = 0
	}

	s.SyncBool(&d.HasVertices)
	if d.HasVertices {
		stream.SyncVectorN(s, &d.Vertices, n)
	}
	if v.File() >= version.V10_0_1_0 {
		stream.Sync(s, &d.DataFlags)
	}
	if v.File() == version.V20_2_0_7 && v.Stream() > 34 {
		stream.Sync(s, &d.MaterialCRC)
	}

	s.SyncBool(&d.HasNormals)
	if d.HasNormals {
		stream.SyncVectorN(s, &d.Normals, n)
		if v.File() >= version.V10_1_0_0 && d.DataFlags&GeometryDataHasTangents != 0 {
			stream.SyncVectorN(s, &d.Tangents, n)
			stream.SyncVectorN(s, &d.Bitangents, n)
		}
	}

	stream.Sync(s, &d.Bounds)

	s.SyncBool(&d.HasVertexColors)
	if d.HasVertexColors {
		stream.SyncVectorN(s, &d.VertexColors, n)
	}

	if v.File() <= version.V4_2_2_0 {
		stream.Sync(s, &d.NumUVSetsOld)
	}
	if v.File() <= version.V4_0_0_2 {
		s.SyncBool(&d.HasUVOld)
	}
	sets := d.uvSetCount(v)
	if v.File() <= version.V4_0_0_2 && !d.HasUVOld {
		sets = 0
	}
	if s.IsReading() && !s.CanHold(sets*n, 8) {
		sets = 0
	}
	stream.Resize(&d.UVSets, sets)
	for i := range d.UVSets {
		stream.SyncVectorN(s, &d.UVSets[i], n)
	}

	if v.File() >= version.V10_0_1_0 {
		stream.Sync(s, &d.ConsistencyFlags)
	}
	if v.File() >= version.V20_0_0_4 {
		d.AdditionalData.Sync(s)
	}
}

func (d *NiGeometryData) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &d.AdditionalData.Ref)
}

// SetUVSetCount updates the data flags for the given number of UV sets.
func (d *NiGeometryData) SetUVSetCount(count int, bethesda bool) {
	if bethesda {
		d.DataFlags &^= GeometryDataBSUVMask
		if count > 0 {
			d.DataFlags |= 1
		}
	} else {
		d.DataFlags = d.DataFlags&^GeometryDataUVMask | uint16(count)&GeometryDataUVMask
	}
	d.NumUVSetsOld = uint16(count)
	d.HasUVOld = count > 0
	stream.Resize(&d.UVSets, count)
}

// UpdateBounds recomputes the bounding sphere from the vertices.
func (d *NiGeometryData) UpdateBounds() {
	d.Bounds = types.NewBoundingSphere(d.Vertices)
}

// NiTriBasedGeomData adds a triangle count.
type NiTriBasedGeomData struct {
	NiGeometryData
	NumTriangles uint16
}

func (d *NiTriBasedGeomData) Sync(s *stream.Stream) {
	d.NiGeometryData.Sync(s)
	stream.Sync(s, &d.NumTriangles)
}

// NiTriShapeData holds indexed triangles. Match groups are read and
// dropped; they are always written empty.
type NiTriShapeData struct {
	NiTriBasedGeomData
	NumTrianglePoints uint32
	HasTriangles      bool
	Triangles         []types.Triangle
}

func (*NiTriShapeData) BlockName() string { return "NiTriShapeData" }

func (d *NiTriShapeData) Sync(s *stream.Stream) {
	if s.IsWriting() {
		d.NumTriangles = uint16(len(d.Triangles))
		d.NumTrianglePoints = uint32(len(d.Triangles)) * 3
	}
	d.NiTriBasedGeomData.Sync(s)
	stream.Sync(s, &d.NumTrianglePoints)
	if s.Version().File() >= version.V10_1_0_0 {
		s.SyncBool(&d.HasTriangles)
	} else {
		d.HasTriangles = true
	}
	if d.HasTriangles {
		stream.SyncVectorN(s, &d.Triangles, int(d.NumTriangles))
	} else if s.IsReading() {
		d.Triangles = nil
	}

	var numMatchGroups uint16
	stream.Sync(s, &numMatchGroups)
	for i := 0; i < int(numMatchGroups) && s.Err() == nil; i++ {
		var groups []uint16
		stream.SyncVector[uint16](s, &groups)
	}
}

// SetTriangles replaces the triangle list.
func (d *NiTriShapeData) SetTriangles(tris []types.Triangle) {
	d.Triangles = tris
	d.HasTriangles = len(tris) > 0
	d.NumTriangles = uint16(len(tris))
	d.NumTrianglePoints = uint32(len(tris)) * 3
}

// NiTriStripsData holds triangle strips.
type NiTriStripsData struct {
	NiTriBasedGeomData
	StripLengths []uint16
	HasPoints    bool
	Points       [][]uint16
}

func (*NiTriStripsData) BlockName() string { return "NiTriStripsData" }

func (d *NiTriStripsData) Sync(s *stream.Stream) {
	d.NiTriBasedGeomData.Sync(s)
	stream.SyncVector[uint16](s, &d.StripLengths)
	if s.Version().File() >= version.V10_0_1_3 {
		s.SyncBool(&d.HasPoints)
	} else {
		d.HasPoints = true
	}
	if !d.HasPoints {
		return
	}
	if s.IsWriting() {
		if err := d.checkStrips(); err != nil {
			s.Fail(err)
			return
		}
	}
	stream.Resize(&d.Points, len(d.StripLengths))
	for i := range d.StripLengths {
		stream.SyncVectorN(s, &d.Points[i], int(d.StripLengths[i]))
	}
}

// checkStrips reports strips whose point lists disagree with StripLengths.
func (d *NiTriStripsData) checkStrips() error {
	if len(d.Points) != len(d.StripLengths) {
		return fmt.Errorf("%d strip lengths for %d strips", len(d.StripLengths), len(d.Points))
	}
	for i, n := range d.StripLengths {
		if len(d.Points[i]) != int(n) {
			return fmt.Errorf("strip %d has %d points, length says %d", i, len(d.Points[i]), n)
		}
	}
	return nil
}

// StripsToTriangles converts the strips into a triangle list, skipping
// degenerate triangles and alternating winding.
func (d *NiTriStripsData) StripsToTriangles() []types.Triangle {
	var tris []types.Triangle
	for _, strip := range d.Points {
		for i := 2; i < len(strip); i++ {
			a, b, c := strip[i-2], strip[i-1], strip[i]
			if a == b || b == c || a == c {
				continue
			}
			if i%2 == 0 {
				tris = append(tris, types.Triangle{P1: a, P2: b, P3: c})
			} else {
				tris = append(tris, types.Triangle{P1: a, P2: c, P3: b})
			}
		}
	}
	return tris
}

// NiLinesData marks which vertices connect to the next one.
type NiLinesData struct {
	NiGeometryData
	Lines []uint8
}

func (*NiLinesData) BlockName() string { return "NiLinesData" }

func (d *NiLinesData) Sync(s *stream.Stream) {
	d.NiGeometryData.Sync(s)
	stream.SyncVectorN(s, &d.Lines, int(d.NumVertices))
}

// AdditionalDataInfo describes one channel of NiAdditionalGeometryData.
type AdditionalDataInfo struct {
	DataType    uint32
	UnitSize    uint32
	TotalSize   uint32
	Stride      uint32
	BlockIndex  uint32
	BlockOffset uint32
	Flags       uint8
}

// AdditionalDataBlock holds raw channel data.
type AdditionalDataBlock struct {
	HasData      bool
	BlockSize    uint32
	BlockOffsets []uint32
	DataSizes    []uint32
	Data         [][]uint8
}

func (b *AdditionalDataBlock) Sync(s *stream.Stream) {
	s.SyncBool(&b.HasData)
	if !b.HasData {
		return
	}
	stream.Sync(s, &b.BlockSize)
	stream.SyncVector[uint32](s, &b.BlockOffsets)
	var n uint32
	count := stream.SyncCount(s, &n, len(b.DataSizes))
	stream.SyncVectorN(s, &b.DataSizes, count)
	if s.IsReading() && !s.CanHold(count, int(b.BlockSize)) {
		b.Data = nil
		return
	}
	stream.Resize(&b.Data, count)
	for i := range b.Data {
		stream.SyncVectorN(s, &b.Data[i], int(b.BlockSize))
	}
}

// NiAdditionalGeometryData carries extra vertex channels.
type NiAdditionalGeometryData struct {
	object.Base
	NumVertices uint16
	BlockInfos  []AdditionalDataInfo
	Blocks      []AdditionalDataBlock
}

func (*NiAdditionalGeometryData) BlockName() string { return "NiAdditionalGeometryData" }

func (d *NiAdditionalGeometryData) Sync(s *stream.Stream) {
	stream.Sync(s, &d.NumVertices)
	stream.SyncVector[uint32](s, &d.BlockInfos)
	stream.SyncEach[uint32](s, &d.Blocks)
}
