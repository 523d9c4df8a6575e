package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiInterpolator is the root of every interpolator.
type NiInterpolator struct {
	object.Base
}

// AsInterpolator exposes the embedded NiInterpolator.
func (i *NiInterpolator) AsInterpolator() *NiInterpolator { return i }

// QuatTransform is a translation, quaternion rotation and scale.
type QuatTransform struct {
	Translation types.Vector3
	Rotation    types.Quaternion
	Scale       float32
}

// NiBoolInterpolator interpolates a boolean.
type NiBoolInterpolator struct {
	NiInterpolator
	Value   uint8
	DataRef object.BlockRef[NiBoolData]
}

func (*NiBoolInterpolator) BlockName() string { return "NiBoolInterpolator" }

func (i *NiBoolInterpolator) Sync(s *stream.Stream) {
	stream.Sync(s, &i.Value)
	i.DataRef.Sync(s)
}

func (i *NiBoolInterpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.DataRef.Ref)
}

// NiBoolTimelineInterpolator shares the NiBoolInterpolator layout.
type NiBoolTimelineInterpolator struct{ NiBoolInterpolator }

func (*NiBoolTimelineInterpolator) BlockName() string { return "NiBoolTimelineInterpolator" }

// NiFloatInterpolator interpolates a float.
type NiFloatInterpolator struct {
	NiInterpolator
	Value   float32
	DataRef object.BlockRef[NiFloatData]
}

func (*NiFloatInterpolator) BlockName() string { return "NiFloatInterpolator" }

func (i *NiFloatInterpolator) Sync(s *stream.Stream) {
	stream.Sync(s, &i.Value)
	i.DataRef.Sync(s)
}

func (i *NiFloatInterpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.DataRef.Ref)
}

// NiTransformInterpolator interpolates a transform.
type NiTransformInterpolator struct {
	NiInterpolator
	Transform QuatTransform
	DataRef   object.BlockRef[NiTransformData]
}

func (*NiTransformInterpolator) BlockName() string { return "NiTransformInterpolator" }

func (i *NiTransformInterpolator) Sync(s *stream.Stream) {
	stream.Sync(s, &i.Transform)
	i.DataRef.Sync(s)
}

func (i *NiTransformInterpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.DataRef.Ref)
}

// BSRotAccumTransfInterpolator shares the NiTransformInterpolator layout.
type BSRotAccumTransfInterpolator struct{ NiTransformInterpolator }

func (*BSRotAccumTransfInterpolator) BlockName() string { return "BSRotAccumTransfInterpolator" }

// NiPoint3Interpolator interpolates a vector.
type NiPoint3Interpolator struct {
	NiInterpolator
	Value   types.Vector3
	DataRef object.BlockRef[NiPosData]
}

func (*NiPoint3Interpolator) BlockName() string { return "NiPoint3Interpolator" }

func (i *NiPoint3Interpolator) Sync(s *stream.Stream) {
	stream.Sync(s, &i.Value)
	i.DataRef.Sync(s)
}

func (i *NiPoint3Interpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.DataRef.Ref)
}

// NiPathInterpolator moves along a path.
type NiPathInterpolator struct {
	NiInterpolator
	Flags          uint16
	BankDir        int32
	MaxBankAngle   float32
	Smoothing      float32
	FollowAxis     uint16
	PathDataRef    object.BlockRef[NiPosData]
	PercentDataRef object.BlockRef[NiFloatData]
}

func (*NiPathInterpolator) BlockName() string { return "NiPathInterpolator" }

func (i *NiPathInterpolator) Sync(s *stream.Stream) {
	stream.Sync(s, &i.Flags)
	stream.Sync(s, &i.BankDir)
	stream.Sync(s, &i.MaxBankAngle)
	stream.Sync(s, &i.Smoothing)
	stream.Sync(s, &i.FollowAxis)
	i.PathDataRef.Sync(s)
	i.PercentDataRef.Sync(s)
}

func (i *NiPathInterpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.PathDataRef.Ref, &i.PercentDataRef.Ref)
}

// NiLookAtInterpolator orients toward a target node.
type NiLookAtInterpolator struct {
	NiInterpolator
	Flags           uint16
	LookAt          object.BlockPtr[NiNode]
	LookAtName      StringRef
	Transform       QuatTransform
	TranslateInterp object.BlockRef[NiPoint3Interpolator]
	RollInterp      object.BlockRef[NiFloatInterpolator]
	ScaleInterp     object.BlockRef[NiFloatInterpolator]
}

func (*NiLookAtInterpolator) BlockName() string { return "NiLookAtInterpolator" }

func (i *NiLookAtInterpolator) Sync(s *stream.Stream) {
	stream.Sync(s, &i.Flags)
	i.LookAt.Sync(s)
	i.LookAtName.Sync(s)
	stream.Sync(s, &i.Transform)
	i.TranslateInterp.Sync(s)
	i.RollInterp.Sync(s)
	i.ScaleInterp.Sync(s)
}

func (i *NiLookAtInterpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.TranslateInterp.Ref, &i.RollInterp.Ref, &i.ScaleInterp.Ref)
}

func (i *NiLookAtInterpolator) Ptrs(ptrs []*Ref) []*Ref {
	return append(ptrs, &i.LookAt.Ref)
}

func (i *NiLookAtInterpolator) StringRefs(refs []*StringRef) []*StringRef {
	return append(refs, &i.LookAtName)
}

// InterpBlendItem is one weighted input of a blend interpolator.
type InterpBlendItem struct {
	InterpolatorRef  object.BlockRef[NiInterpolator]
	Weight           float32
	NormalizedWeight float32
	Priority         int32
	EaseSpinner      float32
}

func (b *InterpBlendItem) Sync(s *stream.Stream) {
	b.InterpolatorRef.Sync(s)
	stream.Sync(s, &b.Weight)
	stream.Sync(s, &b.NormalizedWeight)
	if s.Version().File() <= version.V10_1_0_109 {
		stream.Sync(s, &b.Priority)
	} else {
		p := uint8(b.Priority)
		stream.Sync(s, &p)
		b.Priority = int32(p)
	}
	stream.Sync(s, &b.EaseSpinner)
}

// Blend interpolator flags
const (
	BlendManagerControlled    uint8 = 1 << 0
	BlendOnlyUseHighestWeight uint8 = 1 << 1
)

// NiBlendInterpolator mixes several interpolators.
type NiBlendInterpolator struct {
	NiInterpolator
	Flags              uint8
	ArraySize          uint16
	ArrayGrowBy        uint16
	WeightThreshold    float32
	InterpCount        uint16
	SingleIndex        uint16
	HighPriority       int32
	NextHighPriority   int32
	SingleTime         float32
	HighWeightsSum     float32
	NextHighWeightsSum float32
	HighEaseSpinner    float32
	Items              []InterpBlendItem
	SingleInterpolator object.BlockRef[NiInterpolator]
}

func (b *NiBlendInterpolator) Sync(s *stream.Stream) {
	v := s.Version().File()
	if v >= version.V10_1_0_112 {
		stream.Sync(s, &b.Flags)
	}
	if v <= version.V10_1_0_109 {
		stream.Sync(s, &b.ArraySize)
		stream.Sync(s, &b.ArrayGrowBy)
	} else {
		n := uint8(b.ArraySize)
		stream.Sync(s, &n)
		b.ArraySize = uint16(n)
	}

	if v >= version.V10_1_0_112 {
		stream.Sync(s, &b.WeightThreshold)
		if b.Flags&BlendManagerControlled == 0 {
			b.syncCounters(s, false)
			stream.Sync(s, &b.SingleTime)
			stream.Sync(s, &b.HighWeightsSum)
			stream.Sync(s, &b.NextHighWeightsSum)
			stream.Sync(s, &b.HighEaseSpinner)
			stream.SyncEachN(s, &b.Items, int(b.ArraySize))
		}
		return
	}

	stream.SyncEachN(s, &b.Items, int(b.ArraySize))
	managed := b.Flags&BlendManagerControlled != 0
	s.SyncBool(&managed)
	stream.Sync(s, &b.WeightThreshold)
	highest := b.Flags&BlendOnlyUseHighestWeight != 0
	s.SyncBool(&highest)
	b.Flags = 0
	if managed {
		b.Flags |= BlendManagerControlled
	}
	if highest {
		b.Flags |= BlendOnlyUseHighestWeight
	}
	b.syncCounters(s, v <= version.V10_1_0_109)
	b.SingleInterpolator.Sync(s)
	stream.Sync(s, &b.SingleTime)
	stream.Sync(s, &b.HighPriority)
	stream.Sync(s, &b.NextHighPriority)
}

func (b *NiBlendInterpolator) syncCounters(s *stream.Stream, wide bool) {
	if wide {
		stream.Sync(s, &b.InterpCount)
		stream.Sync(s, &b.SingleIndex)
		return
	}
	count, index := uint8(b.InterpCount), uint8(b.SingleIndex)
	stream.Sync(s, &count)
	stream.Sync(s, &index)
	b.InterpCount, b.SingleIndex = uint16(count), uint16(index)
	if s.Version().File() >= version.V10_1_0_112 {
		high, next := int8(b.HighPriority), int8(b.NextHighPriority)
		stream.Sync(s, &high)
		stream.Sync(s, &next)
		b.HighPriority, b.NextHighPriority = int32(high), int32(next)
	}
}

func (b *NiBlendInterpolator) ChildRefs(refs []*Ref) []*Ref {
	for i := range b.Items {
		refs = append(refs, &b.Items[i].InterpolatorRef.Ref)
	}
	return append(refs, &b.SingleInterpolator.Ref)
}

// NiBlendBoolInterpolator blends booleans.
type NiBlendBoolInterpolator struct {
	NiBlendInterpolator
	Value uint8
}

func (*NiBlendBoolInterpolator) BlockName() string { return "NiBlendBoolInterpolator" }

func (i *NiBlendBoolInterpolator) Sync(s *stream.Stream) {
	i.NiBlendInterpolator.Sync(s)
	stream.Sync(s, &i.Value)
}

// NiBlendFloatInterpolator blends floats.
type NiBlendFloatInterpolator struct {
	NiBlendInterpolator
	Value float32
}

func (*NiBlendFloatInterpolator) BlockName() string { return "NiBlendFloatInterpolator" }

func (i *NiBlendFloatInterpolator) Sync(s *stream.Stream) {
	i.NiBlendInterpolator.Sync(s)
	stream.Sync(s, &i.Value)
}

// NiBlendPoint3Interpolator blends vectors.
type NiBlendPoint3Interpolator struct {
	NiBlendInterpolator
	Value types.Vector3
}

func (*NiBlendPoint3Interpolator) BlockName() string { return "NiBlendPoint3Interpolator" }

func (i *NiBlendPoint3Interpolator) Sync(s *stream.Stream) {
	i.NiBlendInterpolator.Sync(s)
	stream.Sync(s, &i.Value)
}

// NiBlendTransformInterpolator blends transforms.
type NiBlendTransformInterpolator struct {
	NiBlendInterpolator
	Value QuatTransform
}

func (*NiBlendTransformInterpolator) BlockName() string { return "NiBlendTransformInterpolator" }

func (i *NiBlendTransformInterpolator) Sync(s *stream.Stream) {
	i.NiBlendInterpolator.Sync(s)
	if s.Version().File() <= version.V10_1_0_109 {
		stream.Sync(s, &i.Value)
	}
}

// NiBSplineInterpolator is the root of the B-spline interpolators.
type NiBSplineInterpolator struct {
	NiInterpolator
	StartTime     float32
	StopTime      float32
	SplineDataRef object.BlockRef[NiBSplineData]
	BasisDataRef  object.BlockRef[NiBSplineBasisData]
}

func (i *NiBSplineInterpolator) Sync(s *stream.Stream) {
	stream.Sync(s, &i.StartTime)
	stream.Sync(s, &i.StopTime)
	i.SplineDataRef.Sync(s)
	i.BasisDataRef.Sync(s)
}

func (i *NiBSplineInterpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.SplineDataRef.Ref, &i.BasisDataRef.Ref)
}

// NiBSplineFloatInterpolator is a float B-spline.
type NiBSplineFloatInterpolator struct {
	NiBSplineInterpolator
	Value  float32
	Handle uint32
}

func (*NiBSplineFloatInterpolator) BlockName() string { return "NiBSplineFloatInterpolator" }

func (i *NiBSplineFloatInterpolator) Sync(s *stream.Stream) {
	i.NiBSplineInterpolator.Sync(s)
	stream.Sync(s, &i.Value)
	stream.Sync(s, &i.Handle)
}

// NiBSplineCompFloatInterpolator is a compressed float B-spline.
type NiBSplineCompFloatInterpolator struct {
	NiBSplineFloatInterpolator
	FloatOffset    float32
	FloatHalfRange float32
}

func (*NiBSplineCompFloatInterpolator) BlockName() string {
	return "NiBSplineCompFloatInterpolator"
}

func (i *NiBSplineCompFloatInterpolator) Sync(s *stream.Stream) {
	i.NiBSplineFloatInterpolator.Sync(s)
	stream.Sync(s, &i.FloatOffset)
	stream.Sync(s, &i.FloatHalfRange)
}

// NiBSplinePoint3Interpolator is a vector B-spline.
type NiBSplinePoint3Interpolator struct {
	NiBSplineInterpolator
	Value  types.Vector3
	Handle uint32
}

func (*NiBSplinePoint3Interpolator) BlockName() string { return "NiBSplinePoint3Interpolator" }

func (i *NiBSplinePoint3Interpolator) Sync(s *stream.Stream) {
	i.NiBSplineInterpolator.Sync(s)
	stream.Sync(s, &i.Value)
	stream.Sync(s, &i.Handle)
}

// NiBSplineCompPoint3Interpolator is a compressed vector B-spline.
type NiBSplineCompPoint3Interpolator struct {
	NiBSplinePoint3Interpolator
	PositionOffset    float32
	PositionHalfRange float32
}

func (*NiBSplineCompPoint3Interpolator) BlockName() string {
	return "NiBSplineCompPoint3Interpolator"
}

func (i *NiBSplineCompPoint3Interpolator) Sync(s *stream.Stream) {
	i.NiBSplinePoint3Interpolator.Sync(s)
	stream.Sync(s, &i.PositionOffset)
	stream.Sync(s, &i.PositionHalfRange)
}

// NiBSplineTransformInterpolator is a transform B-spline.
type NiBSplineTransformInterpolator struct {
	NiBSplineInterpolator
	Transform         QuatTransform
	TranslationHandle uint32
	RotationHandle    uint32
	ScaleHandle       uint32
}

func (*NiBSplineTransformInterpolator) BlockName() string {
	return "NiBSplineTransformInterpolator"
}

func (i *NiBSplineTransformInterpolator) Sync(s *stream.Stream) {
	i.NiBSplineInterpolator.Sync(s)
	stream.Sync(s, &i.Transform)
	stream.Sync(s, &i.TranslationHandle)
	stream.Sync(s, &i.RotationHandle)
	stream.Sync(s, &i.ScaleHandle)
}

// NiBSplineCompTransformInterpolator is a compressed transform B-spline.
type NiBSplineCompTransformInterpolator struct {
	NiBSplineTransformInterpolator
	TranslationOffset    float32
	TranslationHalfRange float32
	RotationOffset       float32
	RotationHalfRange    float32
	ScaleOffset          float32
	ScaleHalfRange       float32
}

func (*NiBSplineCompTransformInterpolator) BlockName() string {
	return "NiBSplineCompTransformInterpolator"
}

func (i *NiBSplineCompTransformInterpolator) Sync(s *stream.Stream) {
	i.NiBSplineTransformInterpolator.Sync(s)
	stream.Sync(s, &i.TranslationOffset)
	stream.Sync(s, &i.TranslationHalfRange)
	stream.Sync(s, &i.RotationOffset)
	stream.Sync(s, &i.RotationHalfRange)
	stream.Sync(s, &i.ScaleOffset)
	stream.Sync(s, &i.ScaleHalfRange)
}

// TreadTransform is one named tread segment with its two poses.
type TreadTransform struct {
	Name       StringRef
	Transform1 QuatTransform
	Transform2 QuatTransform
}

func (t *TreadTransform) Sync(s *stream.Stream) {
	t.Name.Sync(s)
	stream.Sync(s, &t.Transform1)
	stream.Sync(s, &t.Transform2)
}

// BSTreadTransfInterpolator animates tank tread segments.
type BSTreadTransfInterpolator struct {
	NiInterpolator
	TreadTransforms []TreadTransform
	DataRef         object.BlockRef[NiFloatData]
}

func (*BSTreadTransfInterpolator) BlockName() string { return "BSTreadTransfInterpolator" }

func (i *BSTreadTransfInterpolator) Sync(s *stream.Stream) {
	stream.SyncEach[uint32](s, &i.TreadTransforms)
	i.DataRef.Sync(s)
}

func (i *BSTreadTransfInterpolator) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.DataRef.Ref)
}

func (i *BSTreadTransfInterpolator) StringRefs(refs []*StringRef) []*StringRef {
	for j := range i.TreadTransforms {
		refs = append(refs, &i.TreadTransforms[j].Name)
	}
	return refs
}
