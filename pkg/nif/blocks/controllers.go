package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiTimeController is the root of every controller. Controllers form a
// singly linked list through NextControllerRef and point back at the block
// they animate.
type NiTimeController struct {
	object.Base
	NextControllerRef object.BlockRef[NiTimeController]
	Flags             uint16
	Frequency         float32
	Phase             float32
	StartTime         float32
	StopTime          float32
	TargetRef         object.BlockPtr[NiObjectNET]
}

// AsController exposes the embedded NiTimeController.
func (c *NiTimeController) AsController() *NiTimeController { return c }

func (c *NiTimeController) Sync(s *stream.Stream) {
	c.NextControllerRef.Sync(s)
	stream.Sync(s, &c.Flags)
	stream.Sync(s, &c.Frequency)
	stream.Sync(s, &c.Phase)
	stream.Sync(s, &c.StartTime)
	stream.Sync(s, &c.StopTime)
	if s.Version().File() >= version.V3_3_0_13 {
		c.TargetRef.Sync(s)
	}
}

func (c *NiTimeController) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &c.NextControllerRef.Ref)
}

func (c *NiTimeController) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &c.TargetRef.Ref)
}

// NiInterpController is the root of interpolator driven controllers.
type NiInterpController struct {
	NiTimeController
	ManagerControlled bool
}

func (c *NiInterpController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	if v := s.Version().File(); v >= version.V10_1_0_104 && v <= version.V10_1_0_108 {
		s.SyncBool(&c.ManagerControlled)
	}
}

// NiSingleInterpController is driven by one interpolator.
type NiSingleInterpController struct {
	NiInterpController
	InterpolatorRef object.BlockRef[NiInterpolator]
}

func (c *NiSingleInterpController) Sync(s *stream.Stream) {
	c.NiInterpController.Sync(s)
	if s.Version().File() >= version.V10_1_0_104 {
		c.InterpolatorRef.Sync(s)
	}
}

func (c *NiSingleInterpController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiInterpController.ChildRefs(refs)
	return append(refs, &c.InterpolatorRef.Ref)
}

// legacyData is the data block older files reference from the controller
// directly instead of through an interpolator.
type legacyData[T any] struct {
	DataRef object.BlockRef[T]
}

func (d *legacyData[T]) sync(s *stream.Stream) {
	if s.Version().File() <= version.V10_1_0_103 {
		d.DataRef.Sync(s)
	}
}

// NiKeyframeController animates a transform.
type NiKeyframeController struct {
	NiSingleInterpController
	legacyData[NiKeyframeData]
}

func (*NiKeyframeController) BlockName() string { return "NiKeyframeController" }

func (c *NiKeyframeController) Sync(s *stream.Stream) {
	c.NiSingleInterpController.Sync(s)
	c.legacyData.sync(s)
}

func (c *NiKeyframeController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiSingleInterpController.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// NiTransformController shares the NiKeyframeController layout.
type NiTransformController struct{ NiKeyframeController }

func (*NiTransformController) BlockName() string { return "NiTransformController" }

// NiFloatInterpController is the root of float controllers.
type NiFloatInterpController struct{ NiSingleInterpController }

// NiBoolInterpController is the root of boolean controllers.
type NiBoolInterpController struct{ NiSingleInterpController }

// NiPoint3InterpController is the root of vector controllers.
type NiPoint3InterpController struct{ NiSingleInterpController }

// NiVisController animates visibility.
type NiVisController struct {
	NiBoolInterpController
	legacyData[NiVisData]
}

func (*NiVisController) BlockName() string { return "NiVisController" }

func (c *NiVisController) Sync(s *stream.Stream) {
	c.NiBoolInterpController.Sync(s)
	c.legacyData.sync(s)
}

func (c *NiVisController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiBoolInterpController.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// NiAlphaController animates material alpha.
type NiAlphaController struct {
	NiFloatInterpController
	legacyData[NiFloatData]
}

func (*NiAlphaController) BlockName() string { return "NiAlphaController" }

func (c *NiAlphaController) Sync(s *stream.Stream) {
	c.NiFloatInterpController.Sync(s)
	c.legacyData.sync(s)
}

func (c *NiAlphaController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiFloatInterpController.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// BSNiAlphaPropertyTestRefController animates the alpha test threshold.
type BSNiAlphaPropertyTestRefController struct{ NiAlphaController }

func (*BSNiAlphaPropertyTestRefController) BlockName() string {
	return "BSNiAlphaPropertyTestRefController"
}

// BSFrustumFOVController animates a camera field of view.
type BSFrustumFOVController struct{ NiFloatInterpController }

func (*BSFrustumFOVController) BlockName() string { return "BSFrustumFOVController" }

// NiLightDimmerController animates light intensity.
type NiLightDimmerController struct{ NiFloatInterpController }

func (*NiLightDimmerController) BlockName() string { return "NiLightDimmerController" }

// NiLightRadiusController animates light radius.
type NiLightRadiusController struct{ NiFloatInterpController }

func (*NiLightRadiusController) BlockName() string { return "NiLightRadiusController" }

// BSRefractionStrengthController animates shader refraction strength.
type BSRefractionStrengthController struct{ NiFloatInterpController }

func (*BSRefractionStrengthController) BlockName() string { return "BSRefractionStrengthController" }

// BSRefractionFirePeriodController animates the refraction fire period.
type BSRefractionFirePeriodController struct {
	NiTimeController
	InterpolatorRef object.BlockRef[NiInterpolator]
}

func (*BSRefractionFirePeriodController) BlockName() string {
	return "BSRefractionFirePeriodController"
}

func (c *BSRefractionFirePeriodController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	if s.Version().File() >= version.V20_2_0_7 {
		c.InterpolatorRef.Sync(s)
	}
}

func (c *BSRefractionFirePeriodController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiTimeController.ChildRefs(refs)
	return append(refs, &c.InterpolatorRef.Ref)
}

// BSKeyframeController adds a second keyframe data block.
type BSKeyframeController struct {
	NiKeyframeController
	Data2Ref object.BlockRef[NiKeyframeData]
}

func (*BSKeyframeController) BlockName() string { return "BSKeyframeController" }

func (c *BSKeyframeController) Sync(s *stream.Stream) {
	c.NiKeyframeController.Sync(s)
	c.Data2Ref.Sync(s)
}

func (c *BSKeyframeController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiKeyframeController.ChildRefs(refs)
	return append(refs, &c.Data2Ref.Ref)
}

// NiFlipController cycles a texture slot through a list of textures.
type NiFlipController struct {
	NiFloatInterpController
	TextureSlot uint32
	AccumTime   float32
	Delta       float32
	Sources     object.BlockRefArray[NiSourceTexture]
}

func (*NiFlipController) BlockName() string { return "NiFlipController" }

func (c *NiFlipController) Sync(s *stream.Stream) {
	c.NiFloatInterpController.Sync(s)
	stream.Sync(s, &c.TextureSlot)
	if s.Version().File() <= version.V10_1_0_103 {
		stream.Sync(s, &c.AccumTime)
		stream.Sync(s, &c.Delta)
	}
	c.Sources.Sync(s)
}

func (c *NiFlipController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiFloatInterpController.ChildRefs(refs)
	return c.Sources.ChildRefs(refs)
}

// NiFurSpringController simulates fur bones as springs.
type NiFurSpringController struct {
	NiTimeController
	UnknownFloat  float32
	UnknownFloat2 float32
	Bones         object.BlockPtrArray[NiNode]
	Bones2        object.BlockPtrArray[NiNode]
}

func (*NiFurSpringController) BlockName() string { return "NiFurSpringController" }

func (c *NiFurSpringController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	stream.Sync(s, &c.UnknownFloat)
	stream.Sync(s, &c.UnknownFloat2)
	c.Bones.Sync(s)
	c.Bones2.Sync(s)
}

func (c *NiFurSpringController) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = c.NiTimeController.Ptrs(ptrs)
	ptrs = c.Bones.AppendPtrs(ptrs)
	return c.Bones2.AppendPtrs(ptrs)
}

// NiColorTargetController animates one color slot of its target.
type NiColorTargetController struct {
	NiPoint3InterpController
	TargetColor uint16
	legacyData[NiPosData]
}

func (c *NiColorTargetController) Sync(s *stream.Stream) {
	c.NiPoint3InterpController.Sync(s)
	if s.Version().File() >= version.V10_1_0_0 {
		stream.Sync(s, &c.TargetColor)
	}
	c.legacyData.sync(s)
}

func (c *NiColorTargetController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiPoint3InterpController.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// NiMaterialColorController animates a material color.
type NiMaterialColorController struct{ NiColorTargetController }

func (*NiMaterialColorController) BlockName() string { return "NiMaterialColorController" }

// NiLightColorController animates a light color.
type NiLightColorController struct{ NiColorTargetController }

func (*NiLightColorController) BlockName() string { return "NiLightColorController" }

// NiTextureTransformController animates a texture transform.
type NiTextureTransformController struct {
	NiFloatInterpController
	ShaderMap   bool
	TextureSlot uint32
	Operation   uint32
	legacyData[NiFloatData]
}

func (*NiTextureTransformController) BlockName() string { return "NiTextureTransformController" }

func (c *NiTextureTransformController) Sync(s *stream.Stream) {
	c.NiFloatInterpController.Sync(s)
	s.SyncBool(&c.ShaderMap)
	stream.Sync(s, &c.TextureSlot)
	stream.Sync(s, &c.Operation)
	c.legacyData.sync(s)
}

func (c *NiTextureTransformController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiFloatInterpController.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// ShaderVariableController animates one variable of a Bethesda shader.
type ShaderVariableController struct {
	NiFloatInterpController
	ControlledVariable uint32
}

func (c *ShaderVariableController) Sync(s *stream.Stream) {
	c.NiFloatInterpController.Sync(s)
	stream.Sync(s, &c.ControlledVariable)
}

// BSLightingShaderPropertyFloatController animates a lighting shader float.
type BSLightingShaderPropertyFloatController struct{ ShaderVariableController }

func (*BSLightingShaderPropertyFloatController) BlockName() string {
	return "BSLightingShaderPropertyFloatController"
}

// BSLightingShaderPropertyColorController animates a lighting shader color.
type BSLightingShaderPropertyColorController struct{ ShaderVariableController }

func (*BSLightingShaderPropertyColorController) BlockName() string {
	return "BSLightingShaderPropertyColorController"
}

// BSEffectShaderPropertyFloatController animates an effect shader float.
type BSEffectShaderPropertyFloatController struct{ ShaderVariableController }

func (*BSEffectShaderPropertyFloatController) BlockName() string {
	return "BSEffectShaderPropertyFloatController"
}

// BSEffectShaderPropertyColorController animates an effect shader color.
type BSEffectShaderPropertyColorController struct{ ShaderVariableController }

func (*BSEffectShaderPropertyColorController) BlockName() string {
	return "BSEffectShaderPropertyColorController"
}

// BSLagBoneController makes a bone trail its parent.
type BSLagBoneController struct {
	NiTimeController
	LinearVelocity  float32
	LinearRotation  float32
	MaximumDistance float32
}

func (*BSLagBoneController) BlockName() string { return "BSLagBoneController" }

func (c *BSLagBoneController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	stream.Sync(s, &c.LinearVelocity)
	stream.Sync(s, &c.LinearRotation)
	stream.Sync(s, &c.MaximumDistance)
}

// BSProceduralLightningController animates procedural lightning.
type BSProceduralLightningController struct {
	NiTimeController
	Interpolators     [9]object.BlockRef[NiInterpolator]
	Subdivisions      uint16
	NumBranches       uint16
	NumBranchesVar    uint16
	Length            float32
	LengthVar         float32
	Width             float32
	ChildWidthMult    float32
	ArcOffset         float32
	FadeMainBolt      bool
	FadeChildBolts    bool
	AnimateArcOffset  bool
	ShaderPropertyRef object.BlockRef[BSShaderProperty]
}

func (*BSProceduralLightningController) BlockName() string {
	return "BSProceduralLightningController"
}

func (c *BSProceduralLightningController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	for i := range c.Interpolators {
		c.Interpolators[i].Sync(s)
	}
	stream.Sync(s, &c.Subdivisions)
	stream.Sync(s, &c.NumBranches)
	stream.Sync(s, &c.NumBranchesVar)
	stream.Sync(s, &c.Length)
	stream.Sync(s, &c.LengthVar)
	stream.Sync(s, &c.Width)
	stream.Sync(s, &c.ChildWidthMult)
	stream.Sync(s, &c.ArcOffset)
	s.SyncBool(&c.FadeMainBolt)
	s.SyncBool(&c.FadeChildBolts)
	s.SyncBool(&c.AnimateArcOffset)
	c.ShaderPropertyRef.Sync(s)
}

func (c *BSProceduralLightningController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiTimeController.ChildRefs(refs)
	for i := range c.Interpolators {
		refs = append(refs, &c.Interpolators[i].Ref)
	}
	return append(refs, &c.ShaderPropertyRef.Ref)
}

// NiUVController animates texture coordinates.
type NiUVController struct {
	NiTimeController
	UnknownShort uint16
	DataRef      object.BlockRef[NiUVData]
}

func (*NiUVController) BlockName() string { return "NiUVController" }

func (c *NiUVController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	stream.Sync(s, &c.UnknownShort)
	c.DataRef.Sync(s)
}

func (c *NiUVController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiTimeController.ChildRefs(refs)
	return append(refs, &c.DataRef.Ref)
}

// NiPathController moves its target along a path.
type NiPathController struct {
	NiTimeController
	PathFlags      uint16
	BankDir        int32
	MaxBankAngle   float32
	Smoothing      float32
	FollowAxis     uint16
	PathDataRef    object.BlockRef[NiPosData]
	PercentDataRef object.BlockRef[NiFloatData]
}

func (*NiPathController) BlockName() string { return "NiPathController" }

func (c *NiPathController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	if s.Version().File() >= version.V10_1_0_104 {
		stream.Sync(s, &c.PathFlags)
	}
	stream.Sync(s, &c.BankDir)
	stream.Sync(s, &c.MaxBankAngle)
	stream.Sync(s, &c.Smoothing)
	stream.Sync(s, &c.FollowAxis)
	c.PathDataRef.Sync(s)
	c.PercentDataRef.Sync(s)
}

func (c *NiPathController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiTimeController.ChildRefs(refs)
	return append(refs, &c.PathDataRef.Ref, &c.PercentDataRef.Ref)
}

// NiLookAtController orients its target toward another node.
type NiLookAtController struct {
	NiTimeController
	LookAtFlags uint16
	LookAt      object.BlockPtr[NiNode]
}

func (*NiLookAtController) BlockName() string { return "NiLookAtController" }

func (c *NiLookAtController) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	if s.Version().File() >= version.V10_1_0_104 {
		stream.Sync(s, &c.LookAtFlags)
	}
	c.LookAt.Sync(s)
}

func (c *NiLookAtController) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = c.NiTimeController.Ptrs(ptrs)
	return append(ptrs, &c.LookAt.Ref)
}

// NiMultiTargetTransformController animates several nodes at once.
type NiMultiTargetTransformController struct {
	NiInterpController
	Targets []object.BlockPtr[NiAVObject]
}

func (*NiMultiTargetTransformController) BlockName() string {
	return "NiMultiTargetTransformController"
}

func (c *NiMultiTargetTransformController) Sync(s *stream.Stream) {
	c.NiInterpController.Sync(s)
	var n uint16
	count := stream.SyncCount(s, &n, len(c.Targets))
	if s.IsReading() && !s.CanHold(count, 4) {
		c.Targets = nil
		return
	}
	stream.Resize(&c.Targets, count)
	for i := range c.Targets {
		c.Targets[i].Sync(s)
	}
}

func (c *NiMultiTargetTransformController) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = c.NiInterpController.Ptrs(ptrs)
	for i := range c.Targets {
		ptrs = append(ptrs, &c.Targets[i].Ref)
	}
	return ptrs
}

// MorphWeight is one weighted morph interpolator.
type MorphWeight struct {
	InterpolatorRef object.BlockRef[NiInterpolator]
	Weight          float32
}

// NiGeomMorpherController animates morph targets.
type NiGeomMorpherController struct {
	NiInterpController
	MorpherFlags  uint16
	DataRef       object.BlockRef[NiMorphData]
	AlwaysUpdate  uint8
	Interpolators []object.BlockRef[NiInterpolator]
	InterpWeights []MorphWeight
	UnknownInts   []uint32
}

func (*NiGeomMorpherController) BlockName() string { return "NiGeomMorpherController" }

func (c *NiGeomMorpherController) Sync(s *stream.Stream) {
	c.NiInterpController.Sync(s)
	v := s.Version()
	if v.File() >= version.V10_0_1_2 {
		stream.Sync(s, &c.MorpherFlags)
	}
	c.DataRef.Sync(s)
	if v.File() >= version.V4_0_0_2 {
		stream.Sync(s, &c.AlwaysUpdate)
	}
	if v.File() >= version.V10_1_0_104 {
		if v.File() >= version.V20_1_0_3 {
			var n uint32
			count := stream.SyncCount(s, &n, len(c.InterpWeights))
			if s.IsReading() && !s.CanHold(count, 8) {
				c.InterpWeights = nil
				return
			}
			stream.Resize(&c.InterpWeights, count)
			for i := range c.InterpWeights {
				c.InterpWeights[i].InterpolatorRef.Sync(s)
				stream.Sync(s, &c.InterpWeights[i].Weight)
			}
		} else {
			var n uint32
			count := stream.SyncCount(s, &n, len(c.Interpolators))
			object.SyncRefs(s, &c.Interpolators, count)
		}
	}
	if v.File() >= version.V10_2_0_0 && v.File() <= version.V20_0_0_5 && !v.IsBethesda() {
		stream.SyncVector[uint32](s, &c.UnknownInts)
	}
}

func (c *NiGeomMorpherController) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiInterpController.ChildRefs(refs)
	refs = append(refs, &c.DataRef.Ref)
	refs = object.AppendRefs(refs, c.Interpolators)
	for i := range c.InterpWeights {
		refs = append(refs, &c.InterpWeights[i].InterpolatorRef.Ref)
	}
	return refs
}

// NiControllerManager owns the controller sequences of a model.
type NiControllerManager struct {
	NiTimeController
	Cumulative          bool
	ControllerSequences object.BlockRefArray[NiControllerSequence]
	ObjectPaletteRef    object.BlockRef[NiDefaultAVObjectPalette]
}

func (*NiControllerManager) BlockName() string { return "NiControllerManager" }

func (c *NiControllerManager) Sync(s *stream.Stream) {
	c.NiTimeController.Sync(s)
	s.SyncBool(&c.Cumulative)
	c.ControllerSequences.Sync(s)
	c.ObjectPaletteRef.Sync(s)
}

func (c *NiControllerManager) ChildRefs(refs []*Ref) []*Ref {
	refs = c.NiTimeController.ChildRefs(refs)
	refs = c.ControllerSequences.ChildRefs(refs)
	return append(refs, &c.ObjectPaletteRef.Ref)
}

// ControllerLink binds an interpolator to a named controller target.
// Files from 10.2.0.0 to 20.1.0.0 store the names as offsets into an
// NiStringPalette.
type ControllerLink struct {
	TargetName           StringRef
	InterpolatorRef      object.BlockRef[NiInterpolator]
	ControllerRef        object.BlockRef[NiTimeController]
	BlendInterpolatorRef object.BlockRef[NiBlendInterpolator]
	BlendIndex           uint16
	Priority             uint8
	StringPaletteRef     object.BlockRef[NiStringPalette]
	NodeNameOffset       uint32
	PropertyTypeOffset   uint32
	ControllerTypeOffset uint32
	ControllerIDOffset   uint32
	InterpolatorIDOffset uint32
	NodeName             StringRef
	PropertyType         StringRef
	ControllerType       StringRef
	ControllerID         StringRef
	InterpolatorID       StringRef
}

func (l *ControllerLink) Sync(s *stream.Stream) {
	v := s.Version().File()
	if v <= version.V10_1_0_103 {
		l.TargetName.Sync(s)
	} else {
		l.InterpolatorRef.Sync(s)
	}
	l.ControllerRef.Sync(s)
	if v >= version.V10_1_0_104 && v <= version.V10_1_0_110 {
		l.BlendInterpolatorRef.Sync(s)
		stream.Sync(s, &l.BlendIndex)
	}
	if v >= version.V10_1_0_106 {
		stream.Sync(s, &l.Priority)
	}

	switch {
	case v >= version.V10_2_0_0 && v <= version.V20_1_0_0:
		l.StringPaletteRef.Sync(s)
		stream.Sync(s, &l.NodeNameOffset)
		stream.Sync(s, &l.PropertyTypeOffset)
		stream.Sync(s, &l.ControllerTypeOffset)
		stream.Sync(s, &l.ControllerIDOffset)
		stream.Sync(s, &l.InterpolatorIDOffset)
	case v >= version.V10_1_0_104:
		l.NodeName.Sync(s)
		l.PropertyType.Sync(s)
		l.ControllerType.Sync(s)
		l.ControllerID.Sync(s)
		l.InterpolatorID.Sync(s)
	}
}

func (l *ControllerLink) childRefs(refs []*Ref) []*Ref {
	return append(refs, &l.InterpolatorRef.Ref, &l.ControllerRef.Ref, &l.BlendInterpolatorRef.Ref, &l.StringPaletteRef.Ref)
}

func (l *ControllerLink) stringRefs(refs []*StringRef) []*StringRef {
	return append(refs, &l.TargetName, &l.NodeName, &l.PropertyType, &l.ControllerType, &l.ControllerID, &l.InterpolatorID)
}

// NiSequence is a named set of controller links.
type NiSequence struct {
	object.Base
	Name             StringRef
	AccumRootName    StringRef
	TextKeysRef      object.BlockRef[NiTextKeyExtraData]
	ArrayGrowBy      uint32
	ControlledBlocks []ControllerLink
}

func (q *NiSequence) Sync(s *stream.Stream) {
	v := s.Version().File()
	q.Name.Sync(s)
	if v <= version.V10_1_0_103 {
		q.AccumRootName.Sync(s)
		q.TextKeysRef.Sync(s)
	}
	var n uint32
	count := stream.SyncCount(s, &n, len(q.ControlledBlocks))
	if v >= version.V10_1_0_106 {
		stream.Sync(s, &q.ArrayGrowBy)
	}
	stream.SyncEachN(s, &q.ControlledBlocks, count)
}

func (q *NiSequence) ChildRefs(refs []*Ref) []*Ref {
	refs = append(refs, &q.TextKeysRef.Ref)
	for i := range q.ControlledBlocks {
		refs = q.ControlledBlocks[i].childRefs(refs)
	}
	return refs
}

func (q *NiSequence) StringRefs(refs []*StringRef) []*StringRef {
	refs = append(refs, &q.Name, &q.AccumRootName)
	for i := range q.ControlledBlocks {
		refs = q.ControlledBlocks[i].stringRefs(refs)
	}
	return refs
}

// NiControllerSequence is a playable animation clip.
type NiControllerSequence struct {
	NiSequence
	Weight           float32
	CycleType        uint32
	Frequency        float32
	Phase            float32
	StartTime        float32
	StopTime         float32
	PlayBackwards    bool
	Manager          object.BlockPtr[NiControllerManager]
	StringPaletteRef object.BlockRef[NiStringPalette]
	AnimNotesRef     object.BlockRef[BSAnimNotes]
	AnimNotesArrays  object.BlockRefShortArray[BSAnimNotes]
}

func (*NiControllerSequence) BlockName() string { return "NiControllerSequence" }

func (q *NiControllerSequence) Sync(s *stream.Stream) {
	q.NiSequence.Sync(s)
	v := s.Version()
	if v.File() < version.V10_1_0_106 {
		return
	}

	stream.Sync(s, &q.Weight)
	q.TextKeysRef.Sync(s)
	stream.Sync(s, &q.CycleType)
	stream.Sync(s, &q.Frequency)
	if v.File() <= version.V10_4_0_1 {
		stream.Sync(s, &q.Phase)
	}
	stream.Sync(s, &q.StartTime)
	stream.Sync(s, &q.StopTime)
	if v.File() == version.V10_1_0_106 {
		s.SyncBool(&q.PlayBackwards)
	}
	q.Manager.Sync(s)
	q.AccumRootName.Sync(s)
	if v.File() >= version.V10_1_0_113 && v.File() <= version.V20_1_0_0 {
		q.StringPaletteRef.Sync(s)
	}
	if v.Stream() >= 24 && v.Stream() <= 28 {
		q.AnimNotesRef.Sync(s)
	}
	if v.Stream() > 28 {
		q.AnimNotesArrays.Sync(s)
	}
}

func (q *NiControllerSequence) ChildRefs(refs []*Ref) []*Ref {
	refs = q.NiSequence.ChildRefs(refs)
	refs = append(refs, &q.StringPaletteRef.Ref, &q.AnimNotesRef.Ref)
	return q.AnimNotesArrays.ChildRefs(refs)
}

func (q *NiControllerSequence) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &q.Manager.Ref)
}

// NiStringPalette is a NUL separated string buffer.
type NiStringPalette struct {
	object.Base
	Palette string
	Length  uint32
}

func (*NiStringPalette) BlockName() string { return "NiStringPalette" }

func (p *NiStringPalette) Sync(s *stream.Stream) {
	s.SyncSizedString(&p.Palette, 4)
	if s.IsWriting() {
		p.Length = uint32(len(p.Palette))
	}
	stream.Sync(s, &p.Length)
}

// AVObjectEntry names one object of an NiDefaultAVObjectPalette.
type AVObjectEntry struct {
	Name     string
	AVObject object.BlockPtr[NiAVObject]
}

func (e *AVObjectEntry) Sync(s *stream.Stream) {
	s.SyncSizedString(&e.Name, 4)
	e.AVObject.Sync(s)
}

// NiDefaultAVObjectPalette maps names to scene objects for animation.
type NiDefaultAVObjectPalette struct {
	object.Base
	Scene   object.BlockPtr[NiAVObject]
	Objects []AVObjectEntry
}

func (*NiDefaultAVObjectPalette) BlockName() string { return "NiDefaultAVObjectPalette" }

func (p *NiDefaultAVObjectPalette) Sync(s *stream.Stream) {
	p.Scene.Sync(s)
	stream.SyncEach[uint32](s, &p.Objects)
}

func (p *NiDefaultAVObjectPalette) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = append(ptrs, &p.Scene.Ref)
	for i := range p.Objects {
		ptrs = append(ptrs, &p.Objects[i].AVObject.Ref)
	}
	return ptrs
}

// NiSequenceStreamHelper anchors keyframe files.
type NiSequenceStreamHelper struct{ NiObjectNET }

func (*NiSequenceStreamHelper) BlockName() string { return "NiSequenceStreamHelper" }

// BSAnimNote is one IK annotation of an animation.
type BSAnimNote struct {
	object.Base
	Type  uint32
	Time  float32
	Arm   uint16
	Gain  float32
	State uint16
}

func (*BSAnimNote) BlockName() string { return "BSAnimNote" }

func (n *BSAnimNote) Sync(s *stream.Stream) {
	stream.Sync(s, &n.Type)
	stream.Sync(s, &n.Time)
	switch n.Type {
	case 1:
		stream.Sync(s, &n.Arm)
	case 2:
		stream.Sync(s, &n.Gain)
		stream.Sync(s, &n.State)
	}
}

// BSAnimNotes groups animation notes.
type BSAnimNotes struct {
	object.Base
	Notes object.BlockRefShortArray[BSAnimNote]
}

func (*BSAnimNotes) BlockName() string { return "BSAnimNotes" }

func (n *BSAnimNotes) Sync(s *stream.Stream) { n.Notes.Sync(s) }

func (n *BSAnimNotes) ChildRefs(refs []*Ref) []*Ref { return n.Notes.ChildRefs(refs) }
