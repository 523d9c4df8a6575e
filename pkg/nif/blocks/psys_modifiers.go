package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiPSysModifier is one simulation step of a particle system.
type NiPSysModifier struct {
	object.Base
	Name   StringRef
	Order  uint32
	Target object.BlockPtr[NiParticleSystem]
	Active bool
}

// AsPSysModifier exposes the embedded NiPSysModifier.
func (m *NiPSysModifier) AsPSysModifier() *NiPSysModifier { return m }

func (m *NiPSysModifier) Sync(s *stream.Stream) {
	m.Name.Sync(s)
	stream.Sync(s, &m.Order)
	m.Target.Sync(s)
	s.SyncBool(&m.Active)
}

func (m *NiPSysModifier) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &m.Target.Ref)
}

func (m *NiPSysModifier) StringRefs(refs []*StringRef) []*StringRef {
	return append(refs, &m.Name)
}

// NiPSysAgeDeathModifier kills particles at the end of their life span.
type NiPSysAgeDeathModifier struct {
	NiPSysModifier
	SpawnOnDeath     bool
	SpawnModifierRef object.BlockRef[NiPSysSpawnModifier]
}

func (*NiPSysAgeDeathModifier) BlockName() string { return "NiPSysAgeDeathModifier" }

func (m *NiPSysAgeDeathModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	s.SyncBool(&m.SpawnOnDeath)
	m.SpawnModifierRef.Sync(s)
}

func (m *NiPSysAgeDeathModifier) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &m.SpawnModifierRef.Ref)
}

// NiPSysBombModifier pushes particles away from a node.
type NiPSysBombModifier struct {
	NiPSysModifier
	BombObject   object.BlockPtr[NiNode]
	BombAxis     types.Vector3
	Decay        float32
	DeltaV       float32
	DecayType    uint32
	SymmetryType uint32
}

func (*NiPSysBombModifier) BlockName() string { return "NiPSysBombModifier" }

func (m *NiPSysBombModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.BombObject.Sync(s)
	stream.Sync(s, &m.BombAxis)
	stream.Sync(s, &m.Decay)
	stream.Sync(s, &m.DeltaV)
	stream.Sync(s, &m.DecayType)
	stream.Sync(s, &m.SymmetryType)
}

func (m *NiPSysBombModifier) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = m.NiPSysModifier.Ptrs(ptrs)
	return append(ptrs, &m.BombObject.Ref)
}

// NiPSysBoundUpdateModifier recomputes particle bounds.
type NiPSysBoundUpdateModifier struct {
	NiPSysModifier
	UpdateSkip uint16
}

func (*NiPSysBoundUpdateModifier) BlockName() string { return "NiPSysBoundUpdateModifier" }

func (m *NiPSysBoundUpdateModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.UpdateSkip)
}

// NiPSysColorModifier colors particles over their life.
type NiPSysColorModifier struct {
	NiPSysModifier
	DataRef object.BlockRef[NiColorData]
}

func (*NiPSysColorModifier) BlockName() string { return "NiPSysColorModifier" }

func (m *NiPSysColorModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.DataRef.Sync(s)
}

func (m *NiPSysColorModifier) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &m.DataRef.Ref)
}

// NiPSysDragModifier slows particles down.
type NiPSysDragModifier struct {
	NiPSysModifier
	DragObject   object.BlockPtr[NiAVObject]
	DragAxis     types.Vector3
	Percentage   float32
	Range        float32
	RangeFalloff float32
}

func (*NiPSysDragModifier) BlockName() string { return "NiPSysDragModifier" }

func (m *NiPSysDragModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.DragObject.Sync(s)
	stream.Sync(s, &m.DragAxis)
	stream.Sync(s, &m.Percentage)
	stream.Sync(s, &m.Range)
	stream.Sync(s, &m.RangeFalloff)
}

func (m *NiPSysDragModifier) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = m.NiPSysModifier.Ptrs(ptrs)
	return append(ptrs, &m.DragObject.Ref)
}

// NiPSysGravityModifier pulls particles toward a node or along an axis.
type NiPSysGravityModifier struct {
	NiPSysModifier
	GravityObject   object.BlockPtr[NiAVObject]
	GravityAxis     types.Vector3
	Decay           float32
	Strength        float32
	ForceType       uint32
	Turbulence      float32
	TurbulenceScale float32
	WorldAligned    bool
}

func (*NiPSysGravityModifier) BlockName() string { return "NiPSysGravityModifier" }

func (m *NiPSysGravityModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.GravityObject.Sync(s)
	stream.Sync(s, &m.GravityAxis)
	stream.Sync(s, &m.Decay)
	stream.Sync(s, &m.Strength)
	stream.Sync(s, &m.ForceType)
	stream.Sync(s, &m.Turbulence)
	stream.Sync(s, &m.TurbulenceScale)
	if s.Version().Stream() > 16 {
		s.SyncBool(&m.WorldAligned)
	}
}

func (m *NiPSysGravityModifier) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = m.NiPSysModifier.Ptrs(ptrs)
	return append(ptrs, &m.GravityObject.Ref)
}

// NiPSysGrowFadeModifier scales particles in and out.
type NiPSysGrowFadeModifier struct {
	NiPSysModifier
	GrowTime       float32
	GrowGeneration uint16
	FadeTime       float32
	FadeGeneration uint16
	BaseScale      float32
}

func (*NiPSysGrowFadeModifier) BlockName() string { return "NiPSysGrowFadeModifier" }

func (m *NiPSysGrowFadeModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.GrowTime)
	stream.Sync(s, &m.GrowGeneration)
	stream.Sync(s, &m.FadeTime)
	stream.Sync(s, &m.FadeGeneration)
	if s.Version().Stream() >= 34 {
		stream.Sync(s, &m.BaseScale)
	}
}

// NiPSysPositionModifier integrates particle velocity.
type NiPSysPositionModifier struct{ NiPSysModifier }

func (*NiPSysPositionModifier) BlockName() string { return "NiPSysPositionModifier" }

// NiPSysRotationModifier spins particles.
type NiPSysRotationModifier struct {
	NiPSysModifier
	RotationSpeed          float32
	RotationSpeedVariation float32
	RotationAngle          float32
	RotationAngleVariation float32
	RandomRotSpeedSign     bool
	RandomAxis             bool
	Axis                   types.Vector3
}

func (*NiPSysRotationModifier) BlockName() string { return "NiPSysRotationModifier" }

func (m *NiPSysRotationModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.RotationSpeed)
	if s.Version().File() >= version.V20_0_0_2 {
		stream.Sync(s, &m.RotationSpeedVariation)
		stream.Sync(s, &m.RotationAngle)
		stream.Sync(s, &m.RotationAngleVariation)
		s.SyncBool(&m.RandomRotSpeedSign)
	}
	s.SyncBool(&m.RandomAxis)
	stream.Sync(s, &m.Axis)
}

// NiPSysSpawnModifier spawns new particles from existing ones.
type NiPSysSpawnModifier struct {
	NiPSysModifier
	NumSpawnGenerations uint16
	PercentageSpawned   float32
	MinNumToSpawn       uint16
	MaxNumToSpawn       uint16
	SpawnSpeedVariation float32
	SpawnDirVariation   float32
	LifeSpan            float32
	LifeSpanVariation   float32
}

func (*NiPSysSpawnModifier) BlockName() string { return "NiPSysSpawnModifier" }

func (m *NiPSysSpawnModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.NumSpawnGenerations)
	stream.Sync(s, &m.PercentageSpawned)
	stream.Sync(s, &m.MinNumToSpawn)
	stream.Sync(s, &m.MaxNumToSpawn)
	stream.Sync(s, &m.SpawnSpeedVariation)
	stream.Sync(s, &m.SpawnDirVariation)
	stream.Sync(s, &m.LifeSpan)
	stream.Sync(s, &m.LifeSpanVariation)
}

// NiPSysMeshUpdateModifier updates the meshes of mesh particles.
type NiPSysMeshUpdateModifier struct {
	NiPSysModifier
	Meshes object.BlockRefArray[NiAVObject]
}

func (*NiPSysMeshUpdateModifier) BlockName() string { return "NiPSysMeshUpdateModifier" }

func (m *NiPSysMeshUpdateModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.Meshes.Sync(s)
}

func (m *NiPSysMeshUpdateModifier) ChildRefs(refs []*Ref) []*Ref {
	return m.Meshes.ChildRefs(refs)
}

// NiPSysColliderManager owns the first collider of a chain.
type NiPSysColliderManager struct {
	NiPSysModifier
	ColliderRef object.BlockRef[NiPSysCollider]
}

func (*NiPSysColliderManager) BlockName() string { return "NiPSysColliderManager" }

func (m *NiPSysColliderManager) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.ColliderRef.Sync(s)
}

func (m *NiPSysColliderManager) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &m.ColliderRef.Ref)
}

// NiPSysCollider is one link of a collider chain.
type NiPSysCollider struct {
	object.Base
	Bounce           float32
	SpawnOnCollide   bool
	DieOnCollide     bool
	SpawnModifierRef object.BlockRef[NiPSysSpawnModifier]
	Parent           object.BlockPtr[NiPSysColliderManager]
	NextColliderRef  object.BlockRef[NiPSysCollider]
	ColliderObject   object.BlockPtr[NiAVObject]
}

func (c *NiPSysCollider) Sync(s *stream.Stream) {
	stream.Sync(s, &c.Bounce)
	s.SyncBool(&c.SpawnOnCollide)
	s.SyncBool(&c.DieOnCollide)
	c.SpawnModifierRef.Sync(s)
	c.Parent.Sync(s)
	c.NextColliderRef.Sync(s)
	c.ColliderObject.Sync(s)
}

func (c *NiPSysCollider) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &c.SpawnModifierRef.Ref, &c.NextColliderRef.Ref)
}

func (c *NiPSysCollider) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &c.Parent.Ref, &c.ColliderObject.Ref)
}

// NiPSysSphericalCollider bounces particles off a sphere.
type NiPSysSphericalCollider struct {
	NiPSysCollider
	Radius float32
}

func (*NiPSysSphericalCollider) BlockName() string { return "NiPSysSphericalCollider" }

func (c *NiPSysSphericalCollider) Sync(s *stream.Stream) {
	c.NiPSysCollider.Sync(s)
	stream.Sync(s, &c.Radius)
}

// NiPSysPlanarCollider bounces particles off a rectangle.
type NiPSysPlanarCollider struct {
	NiPSysCollider
	Width  float32
	Height float32
	XAxis  types.Vector3
	YAxis  types.Vector3
}

func (*NiPSysPlanarCollider) BlockName() string { return "NiPSysPlanarCollider" }

func (c *NiPSysPlanarCollider) Sync(s *stream.Stream) {
	c.NiPSysCollider.Sync(s)
	stream.Sync(s, &c.Width)
	stream.Sync(s, &c.Height)
	stream.Sync(s, &c.XAxis)
	stream.Sync(s, &c.YAxis)
}

// NiPSysEmitter is the root of particle emitters.
type NiPSysEmitter struct {
	NiPSysModifier
	Speed                float32
	SpeedVariation       float32
	Declination          float32
	DeclinationVariation float32
	PlanarAngle          float32
	PlanarAngleVariation float32
	InitialColor         types.Color4
	InitialRadius        float32
	RadiusVariation      float32
	LifeSpan             float32
	LifeSpanVariation    float32
}

func (e *NiPSysEmitter) Sync(s *stream.Stream) {
	e.NiPSysModifier.Sync(s)
	stream.Sync(s, &e.Speed)
	stream.Sync(s, &e.SpeedVariation)
	stream.Sync(s, &e.Declination)
	stream.Sync(s, &e.DeclinationVariation)
	stream.Sync(s, &e.PlanarAngle)
	stream.Sync(s, &e.PlanarAngleVariation)
	stream.Sync(s, &e.InitialColor)
	stream.Sync(s, &e.InitialRadius)
	if s.Version().File() >= version.V10_4_0_1 {
		stream.Sync(s, &e.RadiusVariation)
	}
	stream.Sync(s, &e.LifeSpan)
	stream.Sync(s, &e.LifeSpanVariation)
}

// NiPSysVolumeEmitter emits from a volume around a node.
type NiPSysVolumeEmitter struct {
	NiPSysEmitter
	EmitterObject object.BlockPtr[NiNode]
}

func (e *NiPSysVolumeEmitter) Sync(s *stream.Stream) {
	e.NiPSysEmitter.Sync(s)
	if s.Version().File() >= version.V10_1_0_0 {
		e.EmitterObject.Sync(s)
	}
}

func (e *NiPSysVolumeEmitter) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = e.NiPSysEmitter.Ptrs(ptrs)
	return append(ptrs, &e.EmitterObject.Ref)
}

// NiPSysBoxEmitter emits from a box.
type NiPSysBoxEmitter struct {
	NiPSysVolumeEmitter
	Width  float32
	Height float32
	Depth  float32
}

func (*NiPSysBoxEmitter) BlockName() string { return "NiPSysBoxEmitter" }

func (e *NiPSysBoxEmitter) Sync(s *stream.Stream) {
	e.NiPSysVolumeEmitter.Sync(s)
	stream.Sync(s, &e.Width)
	stream.Sync(s, &e.Height)
	stream.Sync(s, &e.Depth)
}

// NiPSysCylinderEmitter emits from a cylinder.
type NiPSysCylinderEmitter struct {
	NiPSysVolumeEmitter
	Radius float32
	Height float32
}

func (*NiPSysCylinderEmitter) BlockName() string { return "NiPSysCylinderEmitter" }

func (e *NiPSysCylinderEmitter) Sync(s *stream.Stream) {
	e.NiPSysVolumeEmitter.Sync(s)
	stream.Sync(s, &e.Radius)
	stream.Sync(s, &e.Height)
}

// NiPSysSphereEmitter emits from a sphere.
type NiPSysSphereEmitter struct {
	NiPSysVolumeEmitter
	Radius float32
}

func (*NiPSysSphereEmitter) BlockName() string { return "NiPSysSphereEmitter" }

func (e *NiPSysSphereEmitter) Sync(s *stream.Stream) {
	e.NiPSysVolumeEmitter.Sync(s)
	stream.Sync(s, &e.Radius)
}

// NiPSysMeshEmitter emits from the surface of meshes.
type NiPSysMeshEmitter struct {
	NiPSysEmitter
	EmitterMeshes       object.BlockPtrArray[NiAVObject]
	InitialVelocityType uint32
	EmissionType        uint32
	EmissionAxis        types.Vector3
}

func (*NiPSysMeshEmitter) BlockName() string { return "NiPSysMeshEmitter" }

func (e *NiPSysMeshEmitter) Sync(s *stream.Stream) {
	e.NiPSysEmitter.Sync(s)
	e.EmitterMeshes.Sync(s)
	stream.Sync(s, &e.InitialVelocityType)
	stream.Sync(s, &e.EmissionType)
	stream.Sync(s, &e.EmissionAxis)
}

func (e *NiPSysMeshEmitter) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = e.NiPSysEmitter.Ptrs(ptrs)
	return e.EmitterMeshes.AppendPtrs(ptrs)
}

// BSPSysInheritVelocityModifier passes a node's velocity on to particles.
type BSPSysInheritVelocityModifier struct {
	NiPSysModifier
	InheritTarget      object.BlockPtr[NiNode]
	ChanceToInherit    float32
	VelocityMultiplier float32
	VelocityVariation  float32
}

func (*BSPSysInheritVelocityModifier) BlockName() string { return "BSPSysInheritVelocityModifier" }

func (m *BSPSysInheritVelocityModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.InheritTarget.Sync(s)
	stream.Sync(s, &m.ChanceToInherit)
	stream.Sync(s, &m.VelocityMultiplier)
	stream.Sync(s, &m.VelocityVariation)
}

func (m *BSPSysInheritVelocityModifier) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = m.NiPSysModifier.Ptrs(ptrs)
	return append(ptrs, &m.InheritTarget.Ref)
}

// BSPSysHavokUpdateModifier lets physics drive particle nodes.
type BSPSysHavokUpdateModifier struct {
	NiPSysModifier
	Nodes       object.BlockRefArray[NiNode]
	ModifierRef object.BlockRef[NiPSysModifier]
}

func (*BSPSysHavokUpdateModifier) BlockName() string { return "BSPSysHavokUpdateModifier" }

func (m *BSPSysHavokUpdateModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.Nodes.Sync(s)
	m.ModifierRef.Sync(s)
}

func (m *BSPSysHavokUpdateModifier) ChildRefs(refs []*Ref) []*Ref {
	refs = m.Nodes.ChildRefs(refs)
	return append(refs, &m.ModifierRef.Ref)
}

// BSPSysRecycleBoundModifier recycles particles leaving a box.
type BSPSysRecycleBoundModifier struct {
	NiPSysModifier
	BoundOffset types.Vector3
	BoundExtent types.Vector3
	BoundTarget object.BlockPtr[NiNode]
}

func (*BSPSysRecycleBoundModifier) BlockName() string { return "BSPSysRecycleBoundModifier" }

func (m *BSPSysRecycleBoundModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.BoundOffset)
	stream.Sync(s, &m.BoundExtent)
	m.BoundTarget.Sync(s)
}

func (m *BSPSysRecycleBoundModifier) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = m.NiPSysModifier.Ptrs(ptrs)
	return append(ptrs, &m.BoundTarget.Ref)
}

// BSPSysSubTexModifier animates sub texture frames.
type BSPSysSubTexModifier struct {
	NiPSysModifier
	StartFrame          uint32
	StartFrameFudge     float32
	EndFrame            float32
	LoopStartFrame      float32
	LoopStartFrameFudge float32
	FrameCount          float32
	FrameCountFudge     float32
}

func (*BSPSysSubTexModifier) BlockName() string { return "BSPSysSubTexModifier" }

func (m *BSPSysSubTexModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.StartFrame)
	stream.Sync(s, &m.StartFrameFudge)
	stream.Sync(s, &m.EndFrame)
	stream.Sync(s, &m.LoopStartFrame)
	stream.Sync(s, &m.LoopStartFrameFudge)
	stream.Sync(s, &m.FrameCount)
	stream.Sync(s, &m.FrameCountFudge)
}

// BSPSysLODModifier fades emission with distance.
type BSPSysLODModifier struct {
	NiPSysModifier
	LODBeginDistance float32
	LODEndDistance   float32
	EndEmitScale     float32
	EndSize          float32
}

func (*BSPSysLODModifier) BlockName() string { return "BSPSysLODModifier" }

func (m *BSPSysLODModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.LODBeginDistance)
	stream.Sync(s, &m.LODEndDistance)
	stream.Sync(s, &m.EndEmitScale)
	stream.Sync(s, &m.EndSize)
}

// BSPSysScaleModifier scales particles over their life.
type BSPSysScaleModifier struct {
	NiPSysModifier
	Scales []float32
}

func (*BSPSysScaleModifier) BlockName() string { return "BSPSysScaleModifier" }

func (m *BSPSysScaleModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.SyncVector[uint32](s, &m.Scales)
}

// BSPSysSimpleColorModifier fades particles through three colors.
type BSPSysSimpleColorModifier struct {
	NiPSysModifier
	FadeInPercent      float32
	FadeOutPercent     float32
	Color1EndPercent   float32
	Color1StartPercent float32
	Color2EndPercent   float32
	Color2StartPercent float32
	Colors             [3]types.Color4
}

func (*BSPSysSimpleColorModifier) BlockName() string { return "BSPSysSimpleColorModifier" }

func (m *BSPSysSimpleColorModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.FadeInPercent)
	stream.Sync(s, &m.FadeOutPercent)
	stream.Sync(s, &m.Color1EndPercent)
	stream.Sync(s, &m.Color1StartPercent)
	stream.Sync(s, &m.Color2EndPercent)
	stream.Sync(s, &m.Color2StartPercent)
	stream.Sync(s, &m.Colors)
}

// BSPSysStripUpdateModifier updates strip particles.
type BSPSysStripUpdateModifier struct {
	NiPSysModifier
	UpdateDeltaTime float32
}

func (*BSPSysStripUpdateModifier) BlockName() string { return "BSPSysStripUpdateModifier" }

func (m *BSPSysStripUpdateModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.UpdateDeltaTime)
}

// BSWindModifier pushes particles with the wind.
type BSWindModifier struct {
	NiPSysModifier
	Strength float32
}

func (*BSWindModifier) BlockName() string { return "BSWindModifier" }

func (m *BSWindModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.Strength)
}

// BSParentVelocityModifier damps particles by the parent velocity.
type BSParentVelocityModifier struct {
	NiPSysModifier
	Damping float32
}

func (*BSParentVelocityModifier) BlockName() string { return "BSParentVelocityModifier" }

func (m *BSParentVelocityModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	stream.Sync(s, &m.Damping)
}

// NiPSysFieldModifier is the root of modifiers that push particles with a
// force field centered on an object.
type NiPSysFieldModifier struct {
	NiPSysModifier
	FieldObjectRef object.BlockRef[NiAVObject]
	Magnitude      float32
	Attenuation    float32
	UseMaxDistance bool
	MaxDistance    float32
}

func (m *NiPSysFieldModifier) Sync(s *stream.Stream) {
	m.NiPSysModifier.Sync(s)
	m.FieldObjectRef.Sync(s)
	stream.Sync(s, &m.Magnitude)
	stream.Sync(s, &m.Attenuation)
	s.SyncBool(&m.UseMaxDistance)
	stream.Sync(s, &m.MaxDistance)
}

func (m *NiPSysFieldModifier) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &m.FieldObjectRef.Ref)
}

// NiPSysGravityFieldModifier pulls particles along a direction.
type NiPSysGravityFieldModifier struct {
	NiPSysFieldModifier
	Direction types.Vector3
}

func (*NiPSysGravityFieldModifier) BlockName() string { return "NiPSysGravityFieldModifier" }

func (m *NiPSysGravityFieldModifier) Sync(s *stream.Stream) {
	m.NiPSysFieldModifier.Sync(s)
	stream.Sync(s, &m.Direction)
}

// NiPSysDragFieldModifier slows particles, optionally along one direction.
type NiPSysDragFieldModifier struct {
	NiPSysFieldModifier
	UseDirection bool
	Direction    types.Vector3
}

func (*NiPSysDragFieldModifier) BlockName() string { return "NiPSysDragFieldModifier" }

func (m *NiPSysDragFieldModifier) Sync(s *stream.Stream) {
	m.NiPSysFieldModifier.Sync(s)
	s.SyncBool(&m.UseDirection)
	stream.Sync(s, &m.Direction)
}

// NiPSysTurbulenceFieldModifier jitters particles.
type NiPSysTurbulenceFieldModifier struct {
	NiPSysFieldModifier
	Frequency float32
}

func (*NiPSysTurbulenceFieldModifier) BlockName() string { return "NiPSysTurbulenceFieldModifier" }

func (m *NiPSysTurbulenceFieldModifier) Sync(s *stream.Stream) {
	m.NiPSysFieldModifier.Sync(s)
	stream.Sync(s, &m.Frequency)
}

// NiPSysVortexFieldModifier spins particles around an axis.
type NiPSysVortexFieldModifier struct {
	NiPSysFieldModifier
	Direction types.Vector3
}

func (*NiPSysVortexFieldModifier) BlockName() string { return "NiPSysVortexFieldModifier" }

func (m *NiPSysVortexFieldModifier) Sync(s *stream.Stream) {
	m.NiPSysFieldModifier.Sync(s)
	stream.Sync(s, &m.Direction)
}

// NiPSysAirFieldModifier blows particles along a direction.
type NiPSysAirFieldModifier struct {
	NiPSysFieldModifier
	Direction       types.Vector3
	AirFriction     float32
	InheritVelocity float32
	InheritRotation bool
	ComponentOnly   bool
	EnableSpread    bool
	Spread          float32
}

func (*NiPSysAirFieldModifier) BlockName() string { return "NiPSysAirFieldModifier" }

func (m *NiPSysAirFieldModifier) Sync(s *stream.Stream) {
	m.NiPSysFieldModifier.Sync(s)
	stream.Sync(s, &m.Direction)
	stream.Sync(s, &m.AirFriction)
	stream.Sync(s, &m.InheritVelocity)
	s.SyncBool(&m.InheritRotation)
	s.SyncBool(&m.ComponentOnly)
	s.SyncBool(&m.EnableSpread)
	stream.Sync(s, &m.Spread)
}

// NiPSysRadialFieldModifier pushes particles away from the field object.
type NiPSysRadialFieldModifier struct {
	NiPSysFieldModifier
	RadialType uint32
}

func (*NiPSysRadialFieldModifier) BlockName() string { return "NiPSysRadialFieldModifier" }

func (m *NiPSysRadialFieldModifier) Sync(s *stream.Stream) {
	m.NiPSysFieldModifier.Sync(s)
	stream.Sync(s, &m.RadialType)
}
