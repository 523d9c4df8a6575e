package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiPSysModifierCtlr animates a modifier found by name.
type NiPSysModifierCtlr struct {
	NiSingleInterpController
	ModifierName StringRef
}

func (c *NiPSysModifierCtlr) Sync(s *stream.Stream) {
	c.NiSingleInterpController.Sync(s)
	c.ModifierName.Sync(s)
}

func (c *NiPSysModifierCtlr) StringRefs(refs []*StringRef) []*StringRef {
	refs = c.NiSingleInterpController.StringRefs(refs)
	return append(refs, &c.ModifierName)
}

// NiPSysEmitterCtlrData holds birth rate and activity keys.
type NiPSysEmitterCtlrData struct {
	object.Base
	BirthRateKeys KeyGroup[float32]
	ActiveKeys    []VisKey
}

func (*NiPSysEmitterCtlrData) BlockName() string { return "NiPSysEmitterCtlrData" }

func (d *NiPSysEmitterCtlrData) Sync(s *stream.Stream) {
	d.BirthRateKeys.Sync(s)
	stream.SyncVector[uint32](s, &d.ActiveKeys)
}

// NiPSysEmitterCtlr drives the birth rate of an emitter.
type NiPSysEmitterCtlr struct {
	NiPSysModifierCtlr
	DataRef                   object.BlockRef[NiPSysEmitterCtlrData]
	VisibilityInterpolatorRef object.BlockRef[NiInterpolator]
}

func (*NiPSysEmitterCtlr) BlockName() string { return "NiPSysEmitterCtlr" }

func (c *NiPSysEmitterCtlr) Sync(s *stream.Stream) {
	c.NiPSysModifierCtlr.Sync(s)
	if s.Version().File() <= version.V10_1_0_103 {
		c.DataRef.Sync(s)
	} else {
		c.VisibilityInterpolatorRef.Sync(s)
	}
}

func (c *NiPSysEmitterCtlr) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiPSysModifierCtlr.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref, &c.VisibilityInterpolatorRef.Ref)
}

// BSPSysMultiTargetEmitterCtlr drives several emitters at once.
type BSPSysMultiTargetEmitterCtlr struct {
	NiPSysEmitterCtlr
	MaxEmitters          uint16
	MasterParticleSystem object.BlockPtr[NiObject]
}

func (*BSPSysMultiTargetEmitterCtlr) BlockName() string { return "BSPSysMultiTargetEmitterCtlr" }

func (c *BSPSysMultiTargetEmitterCtlr) Sync(s *stream.Stream) {
	c.NiPSysEmitterCtlr.Sync(s)
	stream.Sync(s, &c.MaxEmitters)
	c.MasterParticleSystem.Sync(s)
}

func (c *BSPSysMultiTargetEmitterCtlr) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = c.NiPSysEmitterCtlr.Ptrs(ptrs)
	return append(ptrs, &c.MasterParticleSystem.Ref)
}

// NiPSysModifierFloatCtlr animates one float of a modifier.
type NiPSysModifierFloatCtlr struct {
	NiPSysModifierCtlr
	legacyData[NiFloatData]
}

func (c *NiPSysModifierFloatCtlr) Sync(s *stream.Stream) {
	c.NiPSysModifierCtlr.Sync(s)
	c.legacyData.sync(s)
}

func (c *NiPSysModifierFloatCtlr) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiPSysModifierCtlr.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// Float modifier controllers share one layout and differ only by name.
type (
	NiPSysEmitterDeclinationCtlr    struct{ NiPSysModifierFloatCtlr }
	NiPSysEmitterDeclinationVarCtlr struct{ NiPSysModifierFloatCtlr }
	NiPSysEmitterInitialRadiusCtlr  struct{ NiPSysModifierFloatCtlr }
	NiPSysEmitterLifeSpanCtlr       struct{ NiPSysModifierFloatCtlr }
	NiPSysEmitterPlanarAngleCtlr    struct{ NiPSysModifierFloatCtlr }
	NiPSysEmitterPlanarAngleVarCtlr struct{ NiPSysModifierFloatCtlr }
	NiPSysEmitterSpeedCtlr          struct{ NiPSysModifierFloatCtlr }
	NiPSysFieldAttenuationCtlr      struct{ NiPSysModifierFloatCtlr }
	NiPSysFieldMagnitudeCtlr        struct{ NiPSysModifierFloatCtlr }
	NiPSysFieldMaxDistanceCtlr      struct{ NiPSysModifierFloatCtlr }
	NiPSysGravityStrengthCtlr       struct{ NiPSysModifierFloatCtlr }
	NiPSysInitialRotSpeedCtlr       struct{ NiPSysModifierFloatCtlr }
	NiPSysInitialRotSpeedVarCtlr    struct{ NiPSysModifierFloatCtlr }
	NiPSysInitialRotAngleCtlr       struct{ NiPSysModifierFloatCtlr }
	NiPSysInitialRotAngleVarCtlr    struct{ NiPSysModifierFloatCtlr }
)

func (*NiPSysEmitterDeclinationCtlr) BlockName() string    { return "NiPSysEmitterDeclinationCtlr" }
func (*NiPSysEmitterDeclinationVarCtlr) BlockName() string { return "NiPSysEmitterDeclinationVarCtlr" }
func (*NiPSysEmitterInitialRadiusCtlr) BlockName() string  { return "NiPSysEmitterInitialRadiusCtlr" }
func (*NiPSysEmitterLifeSpanCtlr) BlockName() string       { return "NiPSysEmitterLifeSpanCtlr" }
func (*NiPSysEmitterPlanarAngleCtlr) BlockName() string    { return "NiPSysEmitterPlanarAngleCtlr" }
func (*NiPSysEmitterPlanarAngleVarCtlr) BlockName() string { return "NiPSysEmitterPlanarAngleVarCtlr" }
func (*NiPSysEmitterSpeedCtlr) BlockName() string          { return "NiPSysEmitterSpeedCtlr" }
func (*NiPSysFieldAttenuationCtlr) BlockName() string      { return "NiPSysFieldAttenuationCtlr" }
func (*NiPSysFieldMagnitudeCtlr) BlockName() string        { return "NiPSysFieldMagnitudeCtlr" }
func (*NiPSysFieldMaxDistanceCtlr) BlockName() string      { return "NiPSysFieldMaxDistanceCtlr" }
func (*NiPSysGravityStrengthCtlr) BlockName() string       { return "NiPSysGravityStrengthCtlr" }
func (*NiPSysInitialRotSpeedCtlr) BlockName() string       { return "NiPSysInitialRotSpeedCtlr" }
func (*NiPSysInitialRotSpeedVarCtlr) BlockName() string    { return "NiPSysInitialRotSpeedVarCtlr" }
func (*NiPSysInitialRotAngleCtlr) BlockName() string       { return "NiPSysInitialRotAngleCtlr" }
func (*NiPSysInitialRotAngleVarCtlr) BlockName() string    { return "NiPSysInitialRotAngleVarCtlr" }

// NiPSysModifierActiveCtlr toggles a modifier on and off.
type NiPSysModifierActiveCtlr struct {
	NiPSysModifierCtlr
	legacyData[NiVisData]
}

func (*NiPSysModifierActiveCtlr) BlockName() string { return "NiPSysModifierActiveCtlr" }

func (c *NiPSysModifierActiveCtlr) Sync(s *stream.Stream) {
	c.NiPSysModifierCtlr.Sync(s)
	c.legacyData.sync(s)
}

func (c *NiPSysModifierActiveCtlr) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiPSysModifierCtlr.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// NiPSysUpdateCtlr advances a particle system every frame.
type NiPSysUpdateCtlr struct{ NiTimeController }

func (*NiPSysUpdateCtlr) BlockName() string { return "NiPSysUpdateCtlr" }

// NiPSysResetOnLoopCtlr resets a particle system when its animation loops.
type NiPSysResetOnLoopCtlr struct{ NiTimeController }

func (*NiPSysResetOnLoopCtlr) BlockName() string { return "NiPSysResetOnLoopCtlr" }
