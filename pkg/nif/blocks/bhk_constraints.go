package blocks

import (
	"fmt"

	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// skyrimConstraints reports the 20.2.0.7 and later descriptor layouts,
// which reorder the vectors and add motors.
func skyrimConstraints(s *stream.Stream) bool {
	return s.Version().File() >= version.V20_2_0_7
}

// Motor types of a constraint motor.
const (
	MotorNone          = 0
	MotorPosition      = 1
	MotorVelocity      = 2
	MotorSpringDamping = 3
)

// ConstraintMotor drives a constraint axis. Only the members of the
// selected Type are stored.
type ConstraintMotor struct {
	Type                         uint8
	MinForce                     float32
	MaxForce                     float32
	Tau                          float32
	Damping                      float32
	ProportionalRecoveryVelocity float32
	ConstantRecoveryVelocity     float32
	TargetVelocity               float32
	UseVelocityTarget            bool
	SpringConstant               float32
	SpringDamping                float32
	Enabled                      bool
}

func (m *ConstraintMotor) Sync(s *stream.Stream) {
	stream.Sync(s, &m.Type)
	switch m.Type {
	case MotorPosition:
		stream.Sync(s, &m.MinForce)
		stream.Sync(s, &m.MaxForce)
		stream.Sync(s, &m.Tau)
		stream.Sync(s, &m.Damping)
		stream.Sync(s, &m.ProportionalRecoveryVelocity)
		stream.Sync(s, &m.ConstantRecoveryVelocity)
		s.SyncByteBool(&m.Enabled)
	case MotorVelocity:
		stream.Sync(s, &m.MinForce)
		stream.Sync(s, &m.MaxForce)
		stream.Sync(s, &m.Tau)
		stream.Sync(s, &m.TargetVelocity)
		s.SyncByteBool(&m.UseVelocityTarget)
		s.SyncByteBool(&m.Enabled)
	case MotorSpringDamping:
		stream.Sync(s, &m.MinForce)
		stream.Sync(s, &m.MaxForce)
		stream.Sync(s, &m.SpringConstant)
		stream.Sync(s, &m.SpringDamping)
		s.SyncByteBool(&m.Enabled)
	}
}

// syncVectors syncs vectors in the given order.
func syncVectors(s *stream.Stream, vs ...*types.Vector4) {
	for _, v := range vs {
		stream.Sync(s, v)
	}
}

// RagdollDescriptor is a cone and twist limited joint.
type RagdollDescriptor struct {
	TwistA        types.Vector4
	PlaneA        types.Vector4
	MotorA        types.Vector4
	PivotA        types.Vector4
	TwistB        types.Vector4
	PlaneB        types.Vector4
	MotorB        types.Vector4
	PivotB        types.Vector4
	ConeMaxAngle  float32
	PlaneMinAngle float32
	PlaneMaxAngle float32
	TwistMinAngle float32
	TwistMaxAngle float32
	MaxFriction   float32
	Motor         ConstraintMotor
}

func (d *RagdollDescriptor) Sync(s *stream.Stream) {
	sk := skyrimConstraints(s)
	if sk {
		syncVectors(s, &d.TwistA, &d.PlaneA, &d.MotorA, &d.PivotA, &d.TwistB, &d.PlaneB, &d.MotorB, &d.PivotB)
	} else {
		syncVectors(s, &d.PivotA, &d.PlaneA, &d.TwistA, &d.PivotB, &d.PlaneB, &d.TwistB)
	}
	stream.Sync(s, &d.ConeMaxAngle)
	stream.Sync(s, &d.PlaneMinAngle)
	stream.Sync(s, &d.PlaneMaxAngle)
	stream.Sync(s, &d.TwistMinAngle)
	stream.Sync(s, &d.TwistMaxAngle)
	stream.Sync(s, &d.MaxFriction)
	if sk {
		d.Motor.Sync(s)
	}
}

// LimitedHingeDescriptor is a hinge with angle limits.
type LimitedHingeDescriptor struct {
	AxleA         types.Vector4
	Perp2AxleInA1 types.Vector4
	Perp2AxleInA2 types.Vector4
	PivotA        types.Vector4
	AxleB         types.Vector4
	Perp2AxleInB1 types.Vector4
	Perp2AxleInB2 types.Vector4
	PivotB        types.Vector4
	MinAngle      float32
	MaxAngle      float32
	MaxFriction   float32
	Motor         ConstraintMotor
}

func (d *LimitedHingeDescriptor) Sync(s *stream.Stream) {
	sk := skyrimConstraints(s)
	if sk {
		syncVectors(s, &d.AxleA, &d.Perp2AxleInA1, &d.Perp2AxleInA2, &d.PivotA,
			&d.AxleB, &d.Perp2AxleInB1, &d.Perp2AxleInB2, &d.PivotB)
	} else {
		syncVectors(s, &d.PivotA, &d.AxleA, &d.Perp2AxleInA1, &d.Perp2AxleInA2,
			&d.PivotB, &d.AxleB, &d.Perp2AxleInB2)
	}
	stream.Sync(s, &d.MinAngle)
	stream.Sync(s, &d.MaxAngle)
	stream.Sync(s, &d.MaxFriction)
	if sk {
		d.Motor.Sync(s)
	}
}

// HingeDescriptor is an unlimited hinge.
type HingeDescriptor struct {
	AxleA         types.Vector4
	Perp2AxleInA1 types.Vector4
	Perp2AxleInA2 types.Vector4
	PivotA        types.Vector4
	AxleB         types.Vector4
	Perp2AxleInB1 types.Vector4
	Perp2AxleInB2 types.Vector4
	PivotB        types.Vector4
}

func (d *HingeDescriptor) Sync(s *stream.Stream) {
	if skyrimConstraints(s) {
		syncVectors(s, &d.AxleA, &d.Perp2AxleInA1, &d.Perp2AxleInA2, &d.PivotA,
			&d.AxleB, &d.Perp2AxleInB1, &d.Perp2AxleInB2, &d.PivotB)
		return
	}
	syncVectors(s, &d.PivotA, &d.Perp2AxleInA1, &d.Perp2AxleInA2, &d.PivotB, &d.AxleB)
}

// BallAndSocketDescriptor joins two pivots.
type BallAndSocketDescriptor struct {
	PivotA types.Vector4
	PivotB types.Vector4
}

// StiffSpringDescriptor keeps two pivots at a fixed distance.
type StiffSpringDescriptor struct {
	PivotA types.Vector4
	PivotB types.Vector4
	Length float32
}

// PrismaticDescriptor is a sliding joint.
type PrismaticDescriptor struct {
	SlidingA    types.Vector4
	RotationA   types.Vector4
	PlaneA      types.Vector4
	PivotA      types.Vector4
	SlidingB    types.Vector4
	RotationB   types.Vector4
	PlaneB      types.Vector4
	PivotB      types.Vector4
	MinDistance float32
	MaxDistance float32
	Friction    float32
	Motor       ConstraintMotor
}

func (d *PrismaticDescriptor) Sync(s *stream.Stream) {
	sk := skyrimConstraints(s)
	if sk {
		syncVectors(s, &d.SlidingA, &d.RotationA, &d.PlaneA, &d.PivotA,
			&d.SlidingB, &d.RotationB, &d.PlaneB, &d.PivotB)
	} else {
		syncVectors(s, &d.PivotA, &d.RotationA, &d.PlaneA, &d.SlidingA,
			&d.SlidingB, &d.PivotB, &d.RotationB, &d.PlaneB)
	}
	stream.Sync(s, &d.MinDistance)
	stream.Sync(s, &d.MaxDistance)
	stream.Sync(s, &d.Friction)
	if sk {
		d.Motor.Sync(s)
	}
}

// ConstraintInfo names the two entities a constraint joins.
type ConstraintInfo struct {
	Entities object.BlockPtrArray[BhkEntity]
	Priority uint32
}

func (c *ConstraintInfo) Sync(s *stream.Stream) {
	c.Entities.Sync(s)
	stream.Sync(s, &c.Priority)
}

// BhkEntity is any Havok body a constraint can join.
type BhkEntity struct{ BhkWorldObject }

// Constraint types of wrapped constraint data.
const (
	ConstraintBallAndSocket = 0
	ConstraintHinge         = 1
	ConstraintLimitedHinge  = 2
	ConstraintPrismatic     = 6
	ConstraintRagdoll       = 7
	ConstraintStiffSpring   = 8
	ConstraintMalleable     = 13
)

// ConstraintData is a type tagged constraint descriptor, used where a
// constraint wraps another one.
type ConstraintData struct {
	Type          uint32
	Info          ConstraintInfo
	BallAndSocket BallAndSocketDescriptor
	Hinge         HingeDescriptor
	LimitedHinge  LimitedHingeDescriptor
	Prismatic     PrismaticDescriptor
	Ragdoll       RagdollDescriptor
	StiffSpring   StiffSpringDescriptor
}

func (d *ConstraintData) Sync(s *stream.Stream) {
	stream.Sync(s, &d.Type)
	d.Info.Sync(s)
	switch d.Type {
	case ConstraintBallAndSocket:
		stream.Sync(s, &d.BallAndSocket)
	case ConstraintHinge:
		d.Hinge.Sync(s)
	case ConstraintLimitedHinge:
		d.LimitedHinge.Sync(s)
	case ConstraintPrismatic:
		d.Prismatic.Sync(s)
	case ConstraintRagdoll:
		d.Ragdoll.Sync(s)
	case ConstraintStiffSpring:
		stream.Sync(s, &d.StiffSpring)
	default:
		s.Fail(fmt.Errorf("unsupported wrapped constraint type %d", d.Type))
	}
}

func (d *ConstraintData) ptrs(ptrs []*Ref) []*Ref {
	return d.Info.Entities.AppendPtrs(ptrs)
}

// BhkConstraint is the root of Havok constraints.
type BhkConstraint struct {
	object.Base
	Info ConstraintInfo
}

func (c *BhkConstraint) Sync(s *stream.Stream) { c.Info.Sync(s) }

func (c *BhkConstraint) Ptrs(ptrs []*Ref) []*Ref {
	return c.Info.Entities.AppendPtrs(ptrs)
}

// BhkRagdollConstraint is a ragdoll joint.
type BhkRagdollConstraint struct {
	BhkConstraint
	Ragdoll RagdollDescriptor
}

func (*BhkRagdollConstraint) BlockName() string { return "bhkRagdollConstraint" }

func (c *BhkRagdollConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	c.Ragdoll.Sync(s)
}

// BhkLimitedHingeConstraint is a limited hinge joint.
type BhkLimitedHingeConstraint struct {
	BhkConstraint
	LimitedHinge LimitedHingeDescriptor
}

func (*BhkLimitedHingeConstraint) BlockName() string { return "bhkLimitedHingeConstraint" }

func (c *BhkLimitedHingeConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	c.LimitedHinge.Sync(s)
}

// BhkHingeConstraint is a hinge joint.
type BhkHingeConstraint struct {
	BhkConstraint
	Hinge HingeDescriptor
}

func (*BhkHingeConstraint) BlockName() string { return "bhkHingeConstraint" }

func (c *BhkHingeConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	c.Hinge.Sync(s)
}

// BhkBallAndSocketConstraint is a ball joint.
type BhkBallAndSocketConstraint struct {
	BhkConstraint
	BallAndSocket BallAndSocketDescriptor
}

func (*BhkBallAndSocketConstraint) BlockName() string { return "bhkBallAndSocketConstraint" }

func (c *BhkBallAndSocketConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	stream.Sync(s, &c.BallAndSocket)
}

// BhkStiffSpringConstraint is a fixed length spring.
type BhkStiffSpringConstraint struct {
	BhkConstraint
	StiffSpring StiffSpringDescriptor
}

func (*BhkStiffSpringConstraint) BlockName() string { return "bhkStiffSpringConstraint" }

func (c *BhkStiffSpringConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	stream.Sync(s, &c.StiffSpring)
}

// BhkPrismaticConstraint is a sliding joint.
type BhkPrismaticConstraint struct {
	BhkConstraint
	Prismatic PrismaticDescriptor
}

func (*BhkPrismaticConstraint) BlockName() string { return "bhkPrismaticConstraint" }

func (c *BhkPrismaticConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	c.Prismatic.Sync(s)
}

// BhkMalleableConstraint softens a wrapped constraint.
type BhkMalleableConstraint struct {
	BhkConstraint
	Wrapped  ConstraintData
	Tau      float32
	Damping  float32
	Strength float32
}

func (*BhkMalleableConstraint) BlockName() string { return "bhkMalleableConstraint" }

func (c *BhkMalleableConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	c.Wrapped.Sync(s)
	if s.Version().File() <= version.V20_0_0_5 {
		stream.Sync(s, &c.Tau)
		stream.Sync(s, &c.Damping)
	} else {
		stream.Sync(s, &c.Strength)
	}
}

func (c *BhkMalleableConstraint) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = c.BhkConstraint.Ptrs(ptrs)
	return c.Wrapped.ptrs(ptrs)
}

// BhkBreakableConstraint breaks a wrapped constraint above a threshold.
type BhkBreakableConstraint struct {
	BhkConstraint
	Wrapped          ConstraintData
	Threshold        float32
	RemoveWhenBroken bool
}

func (*BhkBreakableConstraint) BlockName() string { return "bhkBreakableConstraint" }

func (c *BhkBreakableConstraint) Sync(s *stream.Stream) {
	c.BhkConstraint.Sync(s)
	c.Wrapped.Sync(s)
	stream.Sync(s, &c.Threshold)
	s.SyncByteBool(&c.RemoveWhenBroken)
}

func (c *BhkBreakableConstraint) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = c.BhkConstraint.Ptrs(ptrs)
	return c.Wrapped.ptrs(ptrs)
}

// BhkBallSocketConstraintChain chains ball joints between bodies.
type BhkBallSocketConstraintChain struct {
	object.Base
	Pivots                []types.Vector4
	Tau                   float32
	Damping               float32
	ConstraintForceMixing float32
	MaxErrorDistance      float32
	EntitiesA             object.BlockPtrArray[BhkRigidBody]
	Info                  ConstraintInfo
}

func (*BhkBallSocketConstraintChain) BlockName() string { return "bhkBallSocketConstraintChain" }

func (c *BhkBallSocketConstraintChain) Sync(s *stream.Stream) {
	stream.SyncVector[uint32](s, &c.Pivots)
	stream.Sync(s, &c.Tau)
	stream.Sync(s, &c.Damping)
	stream.Sync(s, &c.ConstraintForceMixing)
	stream.Sync(s, &c.MaxErrorDistance)
	c.EntitiesA.Sync(s)
	c.Info.Sync(s)
}

func (c *BhkBallSocketConstraintChain) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = c.EntitiesA.AppendPtrs(ptrs)
	return c.Info.Entities.AppendPtrs(ptrs)
}
