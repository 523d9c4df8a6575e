package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiStringExtraData attaches a string.
type NiStringExtraData struct {
	NiExtraData
	BytesRemaining uint32
	StringData     StringRef
}

func (*NiStringExtraData) BlockName() string { return "NiStringExtraData" }

func (e *NiStringExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	if s.Version().File() <= version.V4_2_2_0 {
		stream.Sync(s, &e.BytesRemaining)
	}
	e.StringData.Sync(s)
}

func (e *NiStringExtraData) StringRefs(refs []*StringRef) []*StringRef {
	refs = e.NiExtraData.StringRefs(refs)
	return append(refs, &e.StringData)
}

// NiBinaryExtraData attaches raw bytes.
type NiBinaryExtraData struct {
	NiExtraData
	Data []uint8
}

func (*NiBinaryExtraData) BlockName() string { return "NiBinaryExtraData" }

func (e *NiBinaryExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.SyncVector[uint32](s, &e.Data)
}

// NiIntegerExtraData attaches a 32-bit integer.
type NiIntegerExtraData struct {
	NiExtraData
	IntegerData uint32
}

func (*NiIntegerExtraData) BlockName() string { return "NiIntegerExtraData" }

func (e *NiIntegerExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.Sync(s, &e.IntegerData)
}

// BSXFlags holds the Bethesda per-model behaviour flags.
type BSXFlags struct{ NiIntegerExtraData }

func (*BSXFlags) BlockName() string { return "BSXFlags" }

// NiFloatExtraData attaches a float.
type NiFloatExtraData struct {
	NiExtraData
	FloatData float32
}

func (*NiFloatExtraData) BlockName() string { return "NiFloatExtraData" }

func (e *NiFloatExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.Sync(s, &e.FloatData)
}

// NiBooleanExtraData attaches a boolean.
type NiBooleanExtraData struct {
	NiExtraData
	BooleanData bool
}

func (*NiBooleanExtraData) BlockName() string { return "NiBooleanExtraData" }

func (e *NiBooleanExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	s.SyncByteBool(&e.BooleanData)
}

// NiVectorExtraData attaches a four component vector.
type NiVectorExtraData struct {
	NiExtraData
	VectorData types.Vector4
}

func (*NiVectorExtraData) BlockName() string { return "NiVectorExtraData" }

func (e *NiVectorExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.Sync(s, &e.VectorData)
}

// NiColorExtraData attaches a color.
type NiColorExtraData struct {
	NiExtraData
	ColorData types.Color4
}

func (*NiColorExtraData) BlockName() string { return "NiColorExtraData" }

func (e *NiColorExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.Sync(s, &e.ColorData)
}

// NiStringsExtraData attaches a list of inline strings.
type NiStringsExtraData struct {
	NiExtraData
	Data []string
}

func (*NiStringsExtraData) BlockName() string { return "NiStringsExtraData" }

func (e *NiStringsExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	syncStringList(s, &e.Data)
}

func syncStringList(s *stream.Stream, list *[]string) {
	var n uint32
	count := stream.SyncCount(s, &n, len(*list))
	if s.IsReading() && !s.CanHold(count, 4) {
		*list = nil
		return
	}
	stream.Resize(list, count)
	for i := range *list {
		s.SyncSizedString(&(*list)[i], 4)
	}
}

// NiIntegersExtraData attaches a list of integers.
type NiIntegersExtraData struct {
	NiExtraData
	Data []uint32
}

func (*NiIntegersExtraData) BlockName() string { return "NiIntegersExtraData" }

func (e *NiIntegersExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.SyncVector[uint32](s, &e.Data)
}

// NiFloatsExtraData attaches a list of floats.
type NiFloatsExtraData struct {
	NiExtraData
	Data []float32
}

func (*NiFloatsExtraData) BlockName() string { return "NiFloatsExtraData" }

func (e *NiFloatsExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.SyncVector[uint32](s, &e.Data)
}

// BSBound is an axis-aligned box used for culling.
type BSBound struct {
	NiExtraData
	Center      types.Vector3
	HalfExtents types.Vector3
}

func (*BSBound) BlockName() string { return "BSBound" }

func (e *BSBound) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.Sync(s, &e.Center)
	stream.Sync(s, &e.HalfExtents)
}

// FurniturePosition is one sit or sleep marker.
type FurniturePosition struct {
	Offset          types.Vector3
	Orientation     uint16
	PositionRef1    uint8
	PositionRef2    uint8
	Heading         float32
	AnimationType   uint16
	EntryProperties uint16
}

func (p *FurniturePosition) Sync(s *stream.Stream) {
	stream.Sync(s, &p.Offset)
	if s.Version().Stream() <= 34 {
		stream.Sync(s, &p.Orientation)
		stream.Sync(s, &p.PositionRef1)
		stream.Sync(s, &p.PositionRef2)
		return
	}
	stream.Sync(s, &p.Heading)
	stream.Sync(s, &p.AnimationType)
	stream.Sync(s, &p.EntryProperties)
}

// BSFurnitureMarker lists furniture positions.
type BSFurnitureMarker struct {
	NiExtraData
	Positions []FurniturePosition
}

func (*BSFurnitureMarker) BlockName() string { return "BSFurnitureMarker" }

func (e *BSFurnitureMarker) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.SyncEach[uint32](s, &e.Positions)
}

// BSFurnitureMarkerNode shares the BSFurnitureMarker layout.
type BSFurnitureMarkerNode struct{ BSFurnitureMarker }

func (*BSFurnitureMarkerNode) BlockName() string { return "BSFurnitureMarkerNode" }

// BSInvMarker positions the model in the inventory view.
type BSInvMarker struct {
	NiExtraData
	RotationX uint16
	RotationY uint16
	RotationZ uint16
	Zoom      float32
}

func (*BSInvMarker) BlockName() string { return "BSInvMarker" }

func (e *BSInvMarker) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.Sync(s, &e.RotationX)
	stream.Sync(s, &e.RotationY)
	stream.Sync(s, &e.RotationZ)
	stream.Sync(s, &e.Zoom)
}

// BSBehaviorGraphExtraData names the behaviour graph file.
type BSBehaviorGraphExtraData struct {
	NiExtraData
	BehaviorGraphFile    StringRef
	ControlsBaseSkeleton bool
}

func (*BSBehaviorGraphExtraData) BlockName() string { return "BSBehaviorGraphExtraData" }

func (e *BSBehaviorGraphExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	e.BehaviorGraphFile.Sync(s)
	s.SyncByteBool(&e.ControlsBaseSkeleton)
}

func (e *BSBehaviorGraphExtraData) StringRefs(refs []*StringRef) []*StringRef {
	refs = e.NiExtraData.StringRefs(refs)
	return append(refs, &e.BehaviorGraphFile)
}

// DecalVectorBlock is one set of decal placement points.
type DecalVectorBlock struct {
	Points  []types.Vector3
	Normals []types.Vector3
}

func (d *DecalVectorBlock) Sync(s *stream.Stream) {
	var n uint16
	count := stream.SyncCount(s, &n, len(d.Points))
	stream.SyncVectorN(s, &d.Points, count)
	stream.SyncVectorN(s, &d.Normals, count)
}

// BSDecalPlacementVectorExtraData lists decal placement vectors.
type BSDecalPlacementVectorExtraData struct {
	NiFloatExtraData
	Blocks []DecalVectorBlock
}

func (*BSDecalPlacementVectorExtraData) BlockName() string {
	return "BSDecalPlacementVectorExtraData"
}

func (e *BSDecalPlacementVectorExtraData) Sync(s *stream.Stream) {
	e.NiFloatExtraData.Sync(s)
	stream.SyncEach[uint16](s, &e.Blocks)
}

// BSWArray is a list of integers.
type BSWArray struct {
	NiExtraData
	Data []int32
}

func (*BSWArray) BlockName() string { return "BSWArray" }

func (e *BSWArray) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.SyncVector[uint32](s, &e.Data)
}

// BSPositionData holds one half-float weight per vertex.
type BSPositionData struct {
	NiExtraData
	Data []float32
}

func (*BSPositionData) BlockName() string { return "BSPositionData" }

func (e *BSPositionData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	var n uint32
	count := stream.SyncCount(s, &n, len(e.Data))
	if s.IsReading() && !s.CanHold(count, 2) {
		e.Data = nil
		return
	}
	stream.Resize(&e.Data, count)
	for i := range e.Data {
		s.SyncHalf(&e.Data[i])
	}
}

// BSEyeCenterExtraData holds eye center positions.
type BSEyeCenterExtraData struct {
	NiExtraData
	Data []float32
}

func (*BSEyeCenterExtraData) BlockName() string { return "BSEyeCenterExtraData" }

func (e *BSEyeCenterExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.SyncVector[uint32](s, &e.Data)
}

// BSExtraData is the root of the Fallout 4 extra data blocks.
type BSExtraData struct {
	NiExtraData
}

// BSClothExtraData carries an opaque Havok cloth blob.
type BSClothExtraData struct {
	BSExtraData
	Data []uint8
}

func (*BSClothExtraData) BlockName() string { return "BSClothExtraData" }

func (e *BSClothExtraData) Sync(s *stream.Stream) {
	e.BSExtraData.Sync(s)
	stream.SyncVector[uint32](s, &e.Data)
}

// ConnectPoint is one named attachment point.
type ConnectPoint struct {
	Root         string
	VariableName string
	Rotation     types.Quaternion
	Translation  types.Vector3
	Scale        float32
}

func (c *ConnectPoint) Sync(s *stream.Stream) {
	s.SyncSizedString(&c.Root, 4)
	s.SyncSizedString(&c.VariableName, 4)
	stream.Sync(s, &c.Rotation)
	stream.Sync(s, &c.Translation)
	stream.Sync(s, &c.Scale)
}

// BSConnectPointParents lists attachment points offered by a model.
type BSConnectPointParents struct {
	BSExtraData
	ConnectPoints []ConnectPoint
}

func (*BSConnectPointParents) BlockName() string { return "BSConnectPoint::Parents" }

func (e *BSConnectPointParents) Sync(s *stream.Stream) {
	e.BSExtraData.Sync(s)
	stream.SyncEach[uint32](s, &e.ConnectPoints)
}

// BSConnectPointChildren lists attachment points a model connects to.
type BSConnectPointChildren struct {
	BSExtraData
	Skinned bool
	Targets []string
}

func (*BSConnectPointChildren) BlockName() string { return "BSConnectPoint::Children" }

func (e *BSConnectPointChildren) Sync(s *stream.Stream) {
	e.BSExtraData.Sync(s)
	s.SyncByteBool(&e.Skinned)
	syncStringList(s, &e.Targets)
}

// TextKey is a named time marker.
type TextKey struct {
	Time  float32
	Value StringRef
}

func (k *TextKey) Sync(s *stream.Stream) {
	stream.Sync(s, &k.Time)
	k.Value.Sync(s)
}

// NiTextKeyExtraData holds named animation markers.
type NiTextKeyExtraData struct {
	NiExtraData
	UnknownInt uint32
	TextKeys   []TextKey
}

func (*NiTextKeyExtraData) BlockName() string { return "NiTextKeyExtraData" }

func (e *NiTextKeyExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	if s.Version().File() <= version.V4_2_2_0 {
		stream.Sync(s, &e.UnknownInt)
	}
	stream.SyncEach[uint32](s, &e.TextKeys)
}

func (e *NiTextKeyExtraData) StringRefs(refs []*StringRef) []*StringRef {
	refs = e.NiExtraData.StringRefs(refs)
	for i := range e.TextKeys {
		refs = append(refs, &e.TextKeys[i].Value)
	}
	return refs
}

// BSDistantObjectLargeRefExtraData marks a large reference.
type BSDistantObjectLargeRefExtraData struct {
	NiExtraData
	LargeRef bool
}

func (*BSDistantObjectLargeRefExtraData) BlockName() string {
	return "BSDistantObjectLargeRefExtraData"
}

func (e *BSDistantObjectLargeRefExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	s.SyncByteBool(&e.LargeRef)
}

// BoneLOD names the bone a level of detail starts at.
type BoneLOD struct {
	Distance uint32
	BoneName StringRef
}

func (b *BoneLOD) Sync(s *stream.Stream) {
	stream.Sync(s, &b.Distance)
	b.BoneName.Sync(s)
}

// BSBoneLODExtraData lists bone levels of detail by distance.
type BSBoneLODExtraData struct {
	NiExtraData
	BoneLODs []BoneLOD
}

func (*BSBoneLODExtraData) BlockName() string { return "BSBoneLODExtraData" }

func (e *BSBoneLODExtraData) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.SyncEach[uint32](s, &e.BoneLODs)
}

func (e *BSBoneLODExtraData) StringRefs(refs []*StringRef) []*StringRef {
	refs = e.NiExtraData.StringRefs(refs)
	for i := range e.BoneLODs {
		refs = append(refs, &e.BoneLODs[i].BoneName)
	}
	return refs
}

// PackedGeomObject locates one combined shape in the shared geometry.
type PackedGeomObject struct {
	ShapeID uint32
	Offset  uint32
}

// PackedGeomDataCombined is one placed instance of a combined shape.
type PackedGeomDataCombined struct {
	GrayscaleToPaletteScale float32
	Rotation                types.Matrix3
	Translation             types.Vector3
	Scale                   float32
	Bounds                  types.BoundingSphere
}

// PackedGeomData describes the LOD triangle ranges and instances of one
// combined shape.
type PackedGeomData struct {
	NumVertices   uint32
	LODLevels     uint32
	TriCountLOD0  uint32
	TriOffsetLOD0 uint32
	TriCountLOD1  uint32
	TriOffsetLOD1 uint32
	TriCountLOD2  uint32
	TriOffsetLOD2 uint32
	Combined      []PackedGeomDataCombined
	VertexDesc    types.VertexDesc
}

func (d *PackedGeomData) Sync(s *stream.Stream) {
	stream.Sync(s, &d.NumVertices)
	stream.Sync(s, &d.LODLevels)
	stream.Sync(s, &d.TriCountLOD0)
	stream.Sync(s, &d.TriOffsetLOD0)
	stream.Sync(s, &d.TriCountLOD1)
	stream.Sync(s, &d.TriOffsetLOD1)
	stream.Sync(s, &d.TriCountLOD2)
	stream.Sync(s, &d.TriOffsetLOD2)
	stream.SyncVector[uint32](s, &d.Combined)
	stream.Sync(s, &d.VertexDesc)
}

// BSPackedCombinedSharedGeomDataExtra indexes precombined geometry stored
// in a separate file.
type BSPackedCombinedSharedGeomDataExtra struct {
	NiExtraData
	VertexDesc    types.VertexDesc
	NumVertices   uint32
	NumTriangles  uint32
	UnknownFlags1 uint32
	UnknownFlags2 uint32
	Objects       []PackedGeomObject
	Data          []PackedGeomData
}

func (*BSPackedCombinedSharedGeomDataExtra) BlockName() string {
	return "BSPackedCombinedSharedGeomDataExtra"
}

func (e *BSPackedCombinedSharedGeomDataExtra) Sync(s *stream.Stream) {
	e.NiExtraData.Sync(s)
	stream.Sync(s, &e.VertexDesc)
	stream.Sync(s, &e.NumVertices)
	stream.Sync(s, &e.NumTriangles)
	stream.Sync(s, &e.UnknownFlags1)
	stream.Sync(s, &e.UnknownFlags2)

	var numData uint32
	n := stream.SyncCount(s, &numData, len(e.Objects))
	stream.SyncVectorN(s, &e.Objects, n)
	stream.SyncEachN(s, &e.Data, len(e.Objects))
}
