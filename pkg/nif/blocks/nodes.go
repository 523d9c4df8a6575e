package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiNode groups child scene objects under one transform.
type NiNode struct {
	NiAVObject
	Children   object.BlockRefArray[NiAVObject]
	EffectRefs object.BlockRefArray[NiDynamicEffect]
}

func (*NiNode) BlockName() string { return "NiNode" }

func (n *NiNode) Sync(s *stream.Stream) {
	n.NiAVObject.Sync(s)
	n.Children.Sync(s)
	if s.Version().Stream() < 130 {
		n.EffectRefs.Sync(s)
	}
}

func (n *NiNode) ChildRefs(refs []*Ref) []*Ref {
	refs = n.NiAVObject.ChildRefs(refs)
	refs = n.Children.ChildRefs(refs)
	return n.EffectRefs.ChildRefs(refs)
}

// AsNode exposes the embedded NiNode of any node subtype.
func (n *NiNode) AsNode() *NiNode { return n }

// BSFadeNode is the root node of most Bethesda meshes.
type BSFadeNode struct{ NiNode }

func (*BSFadeNode) BlockName() string { return "BSFadeNode" }

// BSLeafAnimNode marks foliage with leaf animation.
type BSLeafAnimNode struct{ NiNode }

func (*BSLeafAnimNode) BlockName() string { return "BSLeafAnimNode" }

// AvoidNode is an Oblivion marker node.
type AvoidNode struct{ NiNode }

func (*AvoidNode) BlockName() string { return "AvoidNode" }

// RootCollisionNode holds Oblivion collision geometry.
type RootCollisionNode struct{ NiNode }

func (*RootCollisionNode) BlockName() string { return "RootCollisionNode" }

// NiBSAnimationNode is a legacy animated node.
type NiBSAnimationNode struct{ NiNode }

func (*NiBSAnimationNode) BlockName() string { return "NiBSAnimationNode" }

// NiBSParticleNode is a legacy particle node.
type NiBSParticleNode struct{ NiNode }

func (*NiBSParticleNode) BlockName() string { return "NiBSParticleNode" }

// BSTreeNode lists the bones of a Skyrim tree.
type BSTreeNode struct {
	NiNode
	Bones1 object.BlockRefArray[NiNode]
	Bones2 object.BlockRefArray[NiNode]
}

func (*BSTreeNode) BlockName() string { return "BSTreeNode" }

func (n *BSTreeNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	n.Bones1.Sync(s)
	n.Bones2.Sync(s)
}

func (n *BSTreeNode) ChildRefs(refs []*Ref) []*Ref {
	refs = n.NiNode.ChildRefs(refs)
	refs = n.Bones1.ChildRefs(refs)
	return n.Bones2.ChildRefs(refs)
}

// BSOrderedNode draws its children in order.
type BSOrderedNode struct {
	NiNode
	AlphaSortBound types.Vector4
	StaticBound    bool
}

func (*BSOrderedNode) BlockName() string { return "BSOrderedNode" }

func (n *BSOrderedNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	stream.Sync(s, &n.AlphaSortBound)
	s.SyncBool(&n.StaticBound)
}

// BSMultiBoundNode carries a multi-bound used for culling.
type BSMultiBoundNode struct {
	NiNode
	MultiBoundRef object.BlockRef[BSMultiBound]
	CullingMode   uint32
}

func (*BSMultiBoundNode) BlockName() string { return "BSMultiBoundNode" }

func (n *BSMultiBoundNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	n.MultiBoundRef.Sync(s)
	if s.Version().Stream() >= 83 {
		stream.Sync(s, &n.CullingMode)
	}
}

func (n *BSMultiBoundNode) ChildRefs(refs []*Ref) []*Ref {
	refs = n.NiNode.ChildRefs(refs)
	return append(refs, &n.MultiBoundRef.Ref)
}

// BSRangeNode selects a range of children.
type BSRangeNode struct {
	NiNode
	Min     uint8
	Max     uint8
	Current uint8
}

func (*BSRangeNode) BlockName() string { return "BSRangeNode" }

func (n *BSRangeNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	stream.Sync(s, &n.Min)
	stream.Sync(s, &n.Max)
	stream.Sync(s, &n.Current)
}

// BSBlastNode is a range node for explosions.
type BSBlastNode struct{ BSRangeNode }

func (*BSBlastNode) BlockName() string { return "BSBlastNode" }

// BSDamageStage is a range node for damage stages.
type BSDamageStage struct{ BSRangeNode }

func (*BSDamageStage) BlockName() string { return "BSDamageStage" }

// BSDebrisNode is a range node for debris.
type BSDebrisNode struct{ BSRangeNode }

func (*BSDebrisNode) BlockName() string { return "BSDebrisNode" }

// BSValueNode carries an integer value for the engine.
type BSValueNode struct {
	NiNode
	Value      int32
	ValueFlags uint8
}

func (*BSValueNode) BlockName() string { return "BSValueNode" }

func (n *BSValueNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	stream.Sync(s, &n.Value)
	stream.Sync(s, &n.ValueFlags)
}

// NiBillboardNode keeps its children facing the camera.
type NiBillboardNode struct {
	NiNode
	BillboardMode uint16
}

func (*NiBillboardNode) BlockName() string { return "NiBillboardNode" }

func (n *NiBillboardNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	if s.Version().File() >= version.V10_1_0_0 {
		stream.Sync(s, &n.BillboardMode)
	}
}

// NiSwitchNode shows exactly one child.
type NiSwitchNode struct {
	NiNode
	SwitchFlags uint16
	Index       uint32
}

func (*NiSwitchNode) BlockName() string { return "NiSwitchNode" }

func (n *NiSwitchNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	if s.Version().File() >= version.V10_1_0_0 {
		stream.Sync(s, &n.SwitchFlags)
	}
	stream.Sync(s, &n.Index)
}

// LODRange is a near/far distance pair.
type LODRange struct {
	NearExtent float32
	FarExtent  float32
}

// NiLODNode switches children by camera distance.
type NiLODNode struct {
	NiSwitchNode
	LODCenter  types.Vector3
	LODLevels  []LODRange
	LODDataRef object.BlockRef[NiLODData]
}

func (*NiLODNode) BlockName() string { return "NiLODNode" }

func (n *NiLODNode) Sync(s *stream.Stream) {
	n.NiSwitchNode.Sync(s)
	v := s.Version()
	if v.File() >= version.V4_0_0_2 && v.File() <= version.V10_0_1_0 {
		stream.Sync(s, &n.LODCenter)
	}
	if v.File() <= version.V10_0_1_0 {
		stream.SyncVector[uint32](s, &n.LODLevels)
	}
	if v.File() >= version.V10_1_0_0 {
		n.LODDataRef.Sync(s)
	}
}

func (n *NiLODNode) ChildRefs(refs []*Ref) []*Ref {
	refs = n.NiSwitchNode.ChildRefs(refs)
	return append(refs, &n.LODDataRef.Ref)
}

// NiLODData is the root of LOD level data.
type NiLODData struct{ object.Base }

// NiRangeLODData holds distance ranges.
type NiRangeLODData struct {
	NiLODData
	LODCenter types.Vector3
	LODLevels []LODRange
}

func (*NiRangeLODData) BlockName() string { return "NiRangeLODData" }

func (d *NiRangeLODData) Sync(s *stream.Stream) {
	stream.Sync(s, &d.LODCenter)
	stream.SyncVector[uint32](s, &d.LODLevels)
}

// NiScreenLODData holds screen-size proportions.
type NiScreenLODData struct {
	NiLODData
	Bound            types.BoundingSphere
	WorldBound       types.BoundingSphere
	ProportionLevels []float32
}

func (*NiScreenLODData) BlockName() string { return "NiScreenLODData" }

func (d *NiScreenLODData) Sync(s *stream.Stream) {
	stream.Sync(s, &d.Bound)
	stream.Sync(s, &d.WorldBound)
	stream.SyncVector[uint32](s, &d.ProportionLevels)
}

// NiSortAdjustNode controls child sorting.
type NiSortAdjustNode struct {
	NiNode
	SortingMode    uint32
	AccumulatorRef Ref
}

func (*NiSortAdjustNode) BlockName() string { return "NiSortAdjustNode" }

func (n *NiSortAdjustNode) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	stream.Sync(s, &n.SortingMode)
	if s.Version().File() <= version.V20_0_0_3 {
		n.AccumulatorRef.Sync(s)
	}
}

func (n *NiSortAdjustNode) ChildRefs(refs []*Ref) []*Ref {
	refs = n.NiNode.ChildRefs(refs)
	return append(refs, &n.AccumulatorRef)
}

// NiCamera is a scene camera.
type NiCamera struct {
	NiAVObject
	CameraFlags       uint16
	FrustumLeft       float32
	FrustumRight      float32
	FrustumTop        float32
	FrustumBottom     float32
	FrustumNear       float32
	FrustumFar        float32
	UseOrthographic   bool
	ViewportLeft      float32
	ViewportRight     float32
	ViewportTop       float32
	ViewportBottom    float32
	LODAdjust         float32
	SceneRef          object.BlockRef[NiAVObject]
	NumScreenPolygons uint32
	NumScreenTextures uint32
}

func (*NiCamera) BlockName() string { return "NiCamera" }

func (c *NiCamera) Sync(s *stream.Stream) {
	c.NiAVObject.Sync(s)
	v := s.Version()
	if v.File() >= version.V10_1_0_0 {
		stream.Sync(s, &c.CameraFlags)
	}
	stream.Sync(s, &c.FrustumLeft)
	stream.Sync(s, &c.FrustumRight)
	stream.Sync(s, &c.FrustumTop)
	stream.Sync(s, &c.FrustumBottom)
	stream.Sync(s, &c.FrustumNear)
	stream.Sync(s, &c.FrustumFar)
	if v.File() >= version.V10_1_0_0 {
		s.SyncBool(&c.UseOrthographic)
	}
	stream.Sync(s, &c.ViewportLeft)
	stream.Sync(s, &c.ViewportRight)
	stream.Sync(s, &c.ViewportTop)
	stream.Sync(s, &c.ViewportBottom)
	stream.Sync(s, &c.LODAdjust)
	c.SceneRef.Sync(s)
	stream.Sync(s, &c.NumScreenPolygons)
	if v.File() >= version.V4_2_1_0 {
		stream.Sync(s, &c.NumScreenTextures)
	}
}

func (c *NiCamera) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiAVObject.ChildRefs(refs)
	return append(refs, &c.SceneRef.Ref)
}

// NiDynamicEffect is the root of lights and texture effects.
type NiDynamicEffect struct {
	NiAVObject
	SwitchState   bool
	AffectedNodes object.BlockPtrArray[NiNode]
}

func (e *NiDynamicEffect) Sync(s *stream.Stream) {
	e.NiAVObject.Sync(s)
	v := s.Version()
	if v.Stream() < 130 {
		if v.File() >= version.V10_1_0_106 {
			s.SyncBool(&e.SwitchState)
		}
		if v.File() >= version.V10_1_0_0 {
			e.AffectedNodes.Sync(s)
		}
	}
}

func (e *NiDynamicEffect) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = e.NiAVObject.Ptrs(ptrs)
	return e.AffectedNodes.AppendPtrs(ptrs)
}

// NiLight is the root of lights.
type NiLight struct {
	NiDynamicEffect
	Dimmer        float32
	AmbientColor  types.Color3
	DiffuseColor  types.Color3
	SpecularColor types.Color3
}

func (l *NiLight) Sync(s *stream.Stream) {
	l.NiDynamicEffect.Sync(s)
	stream.Sync(s, &l.Dimmer)
	stream.Sync(s, &l.AmbientColor)
	stream.Sync(s, &l.DiffuseColor)
	stream.Sync(s, &l.SpecularColor)
}

// NiAmbientLight lights everything equally.
type NiAmbientLight struct{ NiLight }

func (*NiAmbientLight) BlockName() string { return "NiAmbientLight" }

// NiDirectionalLight is a light at infinity.
type NiDirectionalLight struct{ NiLight }

func (*NiDirectionalLight) BlockName() string { return "NiDirectionalLight" }

// NiPointLight is an attenuated omni light.
type NiPointLight struct {
	NiLight
	ConstantAttenuation  float32
	LinearAttenuation    float32
	QuadraticAttenuation float32
}

func (*NiPointLight) BlockName() string { return "NiPointLight" }

func (l *NiPointLight) Sync(s *stream.Stream) {
	l.NiLight.Sync(s)
	stream.Sync(s, &l.ConstantAttenuation)
	stream.Sync(s, &l.LinearAttenuation)
	stream.Sync(s, &l.QuadraticAttenuation)
}

// NiSpotLight is a cone light.
type NiSpotLight struct {
	NiPointLight
	OuterSpotAngle float32
	InnerSpotAngle float32
	Exponent       float32
}

func (*NiSpotLight) BlockName() string { return "NiSpotLight" }

func (l *NiSpotLight) Sync(s *stream.Stream) {
	l.NiPointLight.Sync(s)
	stream.Sync(s, &l.OuterSpotAngle)
	if s.Version().File() >= version.V20_2_0_5 {
		stream.Sync(s, &l.InnerSpotAngle)
	}
	stream.Sync(s, &l.Exponent)
}

// NiTextureEffect projects a texture onto the scene.
type NiTextureEffect struct {
	NiDynamicEffect
	ModelProjectionMatrix    types.Matrix3
	ModelProjectionTransform types.Vector3
	TextureFiltering         uint32
	MaxAnisotropy            uint16
	TextureClamping          uint32
	TextureType              uint32
	CoordinateGenerationType uint32
	SourceTextureRef         object.BlockRef[NiSourceTexture]
	EnablePlane              uint8
	PlaneNormal              types.Vector3
	PlaneConstant            float32
	PS2L                     int16
	PS2K                     int16
}

func (*NiTextureEffect) BlockName() string { return "NiTextureEffect" }

func (e *NiTextureEffect) Sync(s *stream.Stream) {
	e.NiDynamicEffect.Sync(s)
	v := s.Version()
	stream.Sync(s, &e.ModelProjectionMatrix)
	stream.Sync(s, &e.ModelProjectionTransform)
	stream.Sync(s, &e.TextureFiltering)
	if v.File() >= version.V20_5_0_0 {
		stream.Sync(s, &e.MaxAnisotropy)
	}
	stream.Sync(s, &e.TextureClamping)
	stream.Sync(s, &e.TextureType)
	stream.Sync(s, &e.CoordinateGenerationType)
	e.SourceTextureRef.Sync(s)
	stream.Sync(s, &e.EnablePlane)
	stream.Sync(s, &e.PlaneNormal)
	stream.Sync(s, &e.PlaneConstant)
	if v.File() <= version.V10_2_0_0 {
		stream.Sync(s, &e.PS2L)
		stream.Sync(s, &e.PS2K)
	}
}

func (e *NiTextureEffect) ChildRefs(refs []*Ref) []*Ref {
	refs = e.NiDynamicEffect.ChildRefs(refs)
	return append(refs, &e.SourceTextureRef.Ref)
}

// BSMultiBound owns the data of a multi-bound.
type BSMultiBound struct {
	object.Base
	DataRef object.BlockRef[BSMultiBoundData]
}

func (*BSMultiBound) BlockName() string { return "BSMultiBound" }

func (b *BSMultiBound) Sync(s *stream.Stream) { b.DataRef.Sync(s) }

func (b *BSMultiBound) ChildRefs(refs []*Ref) []*Ref { return append(refs, &b.DataRef.Ref) }

// BSMultiBoundData is the root of multi-bound volumes.
type BSMultiBoundData struct{ object.Base }

// BSMultiBoundAABB is an axis-aligned box.
type BSMultiBoundAABB struct {
	BSMultiBoundData
	Position types.Vector3
	Extent   types.Vector3
}

func (*BSMultiBoundAABB) BlockName() string { return "BSMultiBoundAABB" }

func (b *BSMultiBoundAABB) Sync(s *stream.Stream) {
	stream.Sync(s, &b.Position)
	stream.Sync(s, &b.Extent)
}

// BSMultiBoundOBB is an oriented box.
type BSMultiBoundOBB struct {
	BSMultiBoundData
	Center   types.Vector3
	Size     types.Vector3
	Rotation types.Matrix3
}

func (*BSMultiBoundOBB) BlockName() string { return "BSMultiBoundOBB" }

func (b *BSMultiBoundOBB) Sync(s *stream.Stream) {
	stream.Sync(s, &b.Center)
	stream.Sync(s, &b.Size)
	stream.Sync(s, &b.Rotation)
}

// BSMultiBoundSphere is a sphere.
type BSMultiBoundSphere struct {
	BSMultiBoundData
	Center types.Vector3
	Radius float32
}

func (*BSMultiBoundSphere) BlockName() string { return "BSMultiBoundSphere" }

func (b *BSMultiBoundSphere) Sync(s *stream.Stream) {
	stream.Sync(s, &b.Center)
	stream.Sync(s, &b.Radius)
}

// BSMasterParticleSystem groups particle systems that share emitter
// objects.
type BSMasterParticleSystem struct {
	NiNode
	MaxEmitterObjects uint16
	ParticleSystems   object.BlockRefArray[NiAVObject]
}

func (*BSMasterParticleSystem) BlockName() string { return "BSMasterParticleSystem" }

func (n *BSMasterParticleSystem) Sync(s *stream.Stream) {
	n.NiNode.Sync(s)
	stream.Sync(s, &n.MaxEmitterObjects)
	n.ParticleSystems.Sync(s)
}

func (n *BSMasterParticleSystem) ChildRefs(refs []*Ref) []*Ref {
	refs = n.NiNode.ChildRefs(refs)
	return n.ParticleSystems.ChildRefs(refs)
}

// NiShadowGenerator casts shadows from a light onto receiving nodes.
type NiShadowGenerator struct {
	object.Base
	Name                  string
	Flags                 uint16
	ShadowCasters         object.BlockRefArray[NiNode]
	ShadowReceivers       object.BlockRefArray[NiNode]
	TargetRef             object.BlockPtr[NiDynamicEffect]
	DepthBias             float32
	SizeHint              uint16
	NearClippingDistance  float32
	FarClippingDistance   float32
	DirectionalLightWidth float32
}

func (*NiShadowGenerator) BlockName() string { return "NiShadowGenerator" }

func (g *NiShadowGenerator) Sync(s *stream.Stream) {
	s.SyncSizedString(&g.Name, 4)
	stream.Sync(s, &g.Flags)
	g.ShadowCasters.Sync(s)
	g.ShadowReceivers.Sync(s)
	g.TargetRef.Sync(s)
	stream.Sync(s, &g.DepthBias)
	stream.Sync(s, &g.SizeHint)
	if s.Version().File() >= version.ToFile(20, 3, 0, 7) {
		stream.Sync(s, &g.NearClippingDistance)
		stream.Sync(s, &g.FarClippingDistance)
		stream.Sync(s, &g.DirectionalLightWidth)
	}
}

func (g *NiShadowGenerator) ChildRefs(refs []*Ref) []*Ref {
	refs = g.ShadowCasters.ChildRefs(refs)
	return g.ShadowReceivers.ChildRefs(refs)
}

func (g *NiShadowGenerator) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &g.TargetRef.Ref)
}
