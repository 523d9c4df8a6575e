package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// HkQuaternion is a Havok quaternion, stored X first.
type HkQuaternion struct {
	X float32
	Y float32
	Z float32
	W float32
}

// HavokFilter is the collision layer and group of a Havok object.
type HavokFilter struct {
	Layer uint8
	Flags uint8
	Group uint16
}

// HavokMaterial is the surface material of a Havok shape.
type HavokMaterial struct {
	UnknownInt uint32
	Material   uint32
}

func (m *HavokMaterial) Sync(s *stream.Stream) {
	if s.Version().File() <= version.V10_0_1_2 {
		stream.Sync(s, &m.UnknownInt)
	}
	stream.Sync(s, &m.Material)
}

// WorldObjCInfoProperty is the Havok property triple.
type WorldObjCInfoProperty struct {
	Data             uint32
	Size             uint32
	CapacityAndFlags uint32
}

// WorldObjectCInfo is the construction info of a Havok world object.
type WorldObjectCInfo struct {
	Unused01   [4]uint8
	BroadPhase uint8
	Unused02   [3]uint8
	Property   WorldObjCInfoProperty
}

// NiCollisionObject attaches collision to a scene object.
type NiCollisionObject struct {
	object.Base
	Target object.BlockPtr[NiAVObject]
}

// AsCollisionObject exposes the embedded NiCollisionObject.
func (c *NiCollisionObject) AsCollisionObject() *NiCollisionObject { return c }

func (c *NiCollisionObject) Sync(s *stream.Stream) { c.Target.Sync(s) }

func (c *NiCollisionObject) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &c.Target.Ref)
}

// BhkNiCollisionObject links a scene object to a Havok body.
type BhkNiCollisionObject struct {
	NiCollisionObject
	Flags   uint16
	BodyRef object.BlockRef[BhkWorldObject]
}

func (c *BhkNiCollisionObject) Sync(s *stream.Stream) {
	c.NiCollisionObject.Sync(s)
	stream.Sync(s, &c.Flags)
	c.BodyRef.Sync(s)
}

func (c *BhkNiCollisionObject) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &c.BodyRef.Ref)
}

// BhkCollisionObject is the common rigid body collision.
type BhkCollisionObject struct{ BhkNiCollisionObject }

func (*BhkCollisionObject) BlockName() string { return "bhkCollisionObject" }

// BhkPCollisionObject is phantom collision.
type BhkPCollisionObject struct{ BhkNiCollisionObject }

func (*BhkPCollisionObject) BlockName() string { return "bhkPCollisionObject" }

// BhkSPCollisionObject is simple phantom collision.
type BhkSPCollisionObject struct{ BhkNiCollisionObject }

func (*BhkSPCollisionObject) BlockName() string { return "bhkSPCollisionObject" }

// BhkBlendCollisionObject blends ragdoll and animation.
type BhkBlendCollisionObject struct {
	BhkNiCollisionObject
	HeirGain float32
	VelGain  float32
	Unknown1 float32
	Unknown2 float32
}

func (*BhkBlendCollisionObject) BlockName() string { return "bhkBlendCollisionObject" }

func (c *BhkBlendCollisionObject) Sync(s *stream.Stream) {
	c.BhkNiCollisionObject.Sync(s)
	stream.Sync(s, &c.HeirGain)
	stream.Sync(s, &c.VelGain)
	if s.Version().Stream() < 9 {
		stream.Sync(s, &c.Unknown1)
		stream.Sync(s, &c.Unknown2)
	}
}

// BhkNPCollisionObject is Fallout 4 collision backed by a physics system.
type BhkNPCollisionObject struct {
	NiCollisionObject
	Flags   uint16
	DataRef object.BlockRef[BhkSystem]
	BodyID  uint32
}

func (*BhkNPCollisionObject) BlockName() string { return "bhkNPCollisionObject" }

func (c *BhkNPCollisionObject) Sync(s *stream.Stream) {
	c.NiCollisionObject.Sync(s)
	stream.Sync(s, &c.Flags)
	c.DataRef.Sync(s)
	stream.Sync(s, &c.BodyID)
}

func (c *BhkNPCollisionObject) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &c.DataRef.Ref)
}

// BhkSystem is the root of Fallout 4 physics systems.
type BhkSystem struct {
	object.Base
	Data []byte
}

func (d *BhkSystem) Sync(s *stream.Stream) {
	var n uint32
	count := stream.SyncCount(s, &n, len(d.Data))
	if s.IsReading() && !s.CanHold(count, 1) {
		d.Data = nil
		return
	}
	stream.Resize(&d.Data, count)
	s.SyncBytes(d.Data)
}

// BhkPhysicsSystem is an opaque Havok physics blob.
type BhkPhysicsSystem struct{ BhkSystem }

func (*BhkPhysicsSystem) BlockName() string { return "bhkPhysicsSystem" }

// BhkRagdollSystem is an opaque Havok ragdoll blob.
type BhkRagdollSystem struct{ BhkSystem }

func (*BhkRagdollSystem) BlockName() string { return "bhkRagdollSystem" }

// BhkWorldObject is a Havok object placed in the physics world.
type BhkWorldObject struct {
	object.Base
	ShapeRef    object.BlockRef[BhkShapeBase]
	UnknownInt  uint32
	Filter      HavokFilter
	WorldObject WorldObjectCInfo
}

func (w *BhkWorldObject) Sync(s *stream.Stream) {
	w.ShapeRef.Sync(s)
	if s.Version().File() <= version.V10_0_1_2 {
		stream.Sync(s, &w.UnknownInt)
	}
	stream.Sync(s, &w.Filter)
	stream.Sync(s, &w.WorldObject)
}

func (w *BhkWorldObject) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &w.ShapeRef.Ref)
}

// BhkSimpleShapePhantom is a collision volume without a body.
type BhkSimpleShapePhantom struct {
	BhkWorldObject
	Unused    [8]uint8
	Transform types.Matrix4
}

func (*BhkSimpleShapePhantom) BlockName() string { return "bhkSimpleShapePhantom" }

func (p *BhkSimpleShapePhantom) Sync(s *stream.Stream) {
	p.BhkWorldObject.Sync(s)
	stream.Sync(s, &p.Unused)
	stream.Sync(s, &p.Transform)
}

// BhkAabbPhantom is an axis-aligned box volume without a body.
type BhkAabbPhantom struct {
	BhkWorldObject
	Unused  [8]uint8
	AabbMin types.Vector4
	AabbMax types.Vector4
}

func (*BhkAabbPhantom) BlockName() string { return "bhkAabbPhantom" }

func (p *BhkAabbPhantom) Sync(s *stream.Stream) {
	p.BhkWorldObject.Sync(s)
	stream.Sync(s, &p.Unused)
	stream.Sync(s, &p.AabbMin)
	stream.Sync(s, &p.AabbMax)
}

// Motion systems of a rigid body.
const (
	MotionKeyframed = 6
	MotionFixed     = 7
)

// RigidBodyCInfo holds both rigid body construction layouts. Oblivion and
// Fallout 3 files use the older one, which lacks the Skyrim only members.
type RigidBodyCInfo struct {
	Unused01                    [4]uint8
	Filter                      HavokFilter
	Unused02                    [4]uint8
	UnknownInt1                 uint32
	CollisionResponse           uint8
	Unused03                    uint8
	ProcessContactCallbackDelay uint16
	Unused04                    [4]uint8
	Translation                 types.Vector4
	Rotation                    HkQuaternion
	LinearVelocity              types.Vector4
	AngularVelocity             types.Vector4
	InertiaTensor               [12]float32
	Center                      types.Vector4
	Mass                        float32
	LinearDamping               float32
	AngularDamping              float32
	TimeFactor                  float32
	GravityFactor               float32
	Friction                    float32
	RollingFrictionMultiplier   float32
	Restitution                 float32
	MaxLinearVelocity           float32
	MaxAngularVelocity          float32
	PenetrationDepth            float32
	MotionSystem                uint8
	DeactivatorType             uint8
	SolverDeactivation          uint8
	QualityType                 uint8
	AutoRemoveLevel             uint8
	ResponseModifierFlag        uint8
	NumShapeKeysInContactPoint  uint8
	ForceCollidedOntoPPU        uint8
	Unused05                    [12]uint8
}

func (c *RigidBodyCInfo) Sync(s *stream.Stream) {
	v := s.Version()
	skyrim := v.File() >= version.V20_2_0_7 && v.Stream() > 34

	stream.Sync(s, &c.Unused01)
	stream.Sync(s, &c.Filter)
	stream.Sync(s, &c.Unused02)
	if skyrim {
		stream.Sync(s, &c.UnknownInt1)
	}
	stream.Sync(s, &c.CollisionResponse)
	stream.Sync(s, &c.Unused03)
	stream.Sync(s, &c.ProcessContactCallbackDelay)
	if !skyrim {
		stream.Sync(s, &c.Unused04)
	}
	stream.Sync(s, &c.Translation)
	stream.Sync(s, &c.Rotation)
	stream.Sync(s, &c.LinearVelocity)
	stream.Sync(s, &c.AngularVelocity)
	stream.Sync(s, &c.InertiaTensor)
	stream.Sync(s, &c.Center)
	stream.Sync(s, &c.Mass)
	stream.Sync(s, &c.LinearDamping)
	stream.Sync(s, &c.AngularDamping)
	if skyrim {
		stream.Sync(s, &c.TimeFactor)
		stream.Sync(s, &c.GravityFactor)
	}
	stream.Sync(s, &c.Friction)
	if skyrim {
		stream.Sync(s, &c.RollingFrictionMultiplier)
	}
	stream.Sync(s, &c.Restitution)
	if v.File() >= version.V10_1_0_0 {
		stream.Sync(s, &c.MaxLinearVelocity)
		stream.Sync(s, &c.MaxAngularVelocity)
		stream.Sync(s, &c.PenetrationDepth)
	}
	stream.Sync(s, &c.MotionSystem)
	stream.Sync(s, &c.DeactivatorType)
	stream.Sync(s, &c.SolverDeactivation)
	stream.Sync(s, &c.QualityType)
	if skyrim {
		stream.Sync(s, &c.AutoRemoveLevel)
		stream.Sync(s, &c.ResponseModifierFlag)
		stream.Sync(s, &c.NumShapeKeysInContactPoint)
		stream.Sync(s, &c.ForceCollidedOntoPPU)
	}
	stream.Sync(s, &c.Unused05)
}

// BhkRigidBody is a simulated Havok body.
type BhkRigidBody struct {
	BhkWorldObject
	Info        RigidBodyCInfo
	Constraints object.BlockRefArray[BhkSerializable]
	BodyFlags   uint32
}

func (*BhkRigidBody) BlockName() string { return "bhkRigidBody" }

func (b *BhkRigidBody) Sync(s *stream.Stream) {
	b.BhkWorldObject.Sync(s)
	b.Info.Sync(s)
	b.Constraints.Sync(s)
	if s.Version().Stream() < 76 {
		stream.Sync(s, &b.BodyFlags)
	} else {
		flags := uint16(b.BodyFlags)
		stream.Sync(s, &flags)
		b.BodyFlags = uint32(flags)
	}
}

func (b *BhkRigidBody) ChildRefs(refs []*Ref) []*Ref {
	refs = b.BhkWorldObject.ChildRefs(refs)
	return b.Constraints.ChildRefs(refs)
}

// BhkRigidBodyT is a rigid body whose shape carries its own transform.
type BhkRigidBodyT struct{ BhkRigidBody }

func (*BhkRigidBodyT) BlockName() string { return "bhkRigidBodyT" }

// BhkSerializable is any Havok block a rigid body can reference as a
// constraint.
type BhkSerializable struct{ object.Base }

// BhkLiquidAction simulates liquid sticking to bodies.
type BhkLiquidAction struct {
	object.Base
	UserData          uint32
	UnknownInt2       uint32
	UnknownInt3       uint32
	InitialStickForce float32
	StickStrength     float32
	NeighborDistance  float32
	NeighborStrength  float32
}

func (*BhkLiquidAction) BlockName() string { return "bhkLiquidAction" }

func (a *BhkLiquidAction) Sync(s *stream.Stream) {
	stream.Sync(s, &a.UserData)
	stream.Sync(s, &a.UnknownInt2)
	stream.Sync(s, &a.UnknownInt3)
	stream.Sync(s, &a.InitialStickForce)
	stream.Sync(s, &a.StickStrength)
	stream.Sync(s, &a.NeighborDistance)
	stream.Sync(s, &a.NeighborStrength)
}

// BhkOrientHingedBodyAction keeps a hinged body facing forward.
type BhkOrientHingedBodyAction struct {
	object.Base
	Body      object.BlockPtr[BhkRigidBody]
	Unused01  [8]uint8
	Unused02  [8]uint8
	HingeAxis types.Vector4
	Forward   types.Vector4
	Strength  float32
	Damping   float32
	Unused03  [8]uint8
}

func (*BhkOrientHingedBodyAction) BlockName() string { return "bhkOrientHingedBodyAction" }

func (a *BhkOrientHingedBodyAction) Sync(s *stream.Stream) {
	a.Body.Sync(s)
	stream.Sync(s, &a.Unused01)
	stream.Sync(s, &a.Unused02)
	stream.Sync(s, &a.HingeAxis)
	stream.Sync(s, &a.Forward)
	stream.Sync(s, &a.Strength)
	stream.Sync(s, &a.Damping)
	stream.Sync(s, &a.Unused03)
}

func (a *BhkOrientHingedBodyAction) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &a.Body.Ref)
}

// BhkBlendController drives a bhkBlendCollisionObject.
type BhkBlendController struct {
	NiTimeController
	Keys uint32
}

func (*BhkBlendController) BlockName() string { return "bhkBlendController" }

func (c *BhkBlendController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	stream.Sync(s, &c.Keys)
}
