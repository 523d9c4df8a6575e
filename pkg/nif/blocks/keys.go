package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// KeyType is the interpolation of a key group.
type KeyType uint32

// Key interpolation types
const (
	KeyNone      KeyType = 0
	KeyLinear    KeyType = 1
	KeyQuadratic KeyType = 2
	KeyTBC       KeyType = 3
	KeyXYZ       KeyType = 4
	KeyConst     KeyType = 5
)

// TBC holds tension, bias and continuity.
type TBC struct {
	Tension    float32
	Bias       float32
	Continuity float32
}

// Key is one animation key. Forward and Backward are only stored for
// quadratic keys and TBC only for TBC keys.
type Key[T any] struct {
	Time     float32
	Value    T
	Forward  T
	Backward T
	TBC      TBC
}

func (k *Key[T]) sync(s *stream.Stream, kind KeyType) {
	stream.Sync(s, &k.Time)
	stream.Sync(s, &k.Value)
	switch kind {
	case KeyQuadratic:
		stream.Sync(s, &k.Forward)
		stream.Sync(s, &k.Backward)
	case KeyTBC:
		stream.Sync(s, &k.TBC)
	}
}

// KeyGroup is a counted list of keys sharing one interpolation type. The
// type is only on the wire when there is at least one key.
type KeyGroup[T any] struct {
	Interpolation KeyType
	Keys          []Key[T]
}

func (g *KeyGroup[T]) Sync(s *stream.Stream) {
	var n uint32
	count := stream.SyncCount(s, &n, len(g.Keys))
	if count > 0 {
		stream.Sync(s, (*uint32)(&g.Interpolation))
	}
	if s.IsReading() && !s.CanHold(count, 8) {
		g.Keys = nil
		return
	}
	stream.Resize(&g.Keys, count)
	for i := range g.Keys {
		g.Keys[i].sync(s, g.Interpolation)
	}
}

// QuatKey is a rotation key. Quadratic rotation keys store no tangents.
type QuatKey struct {
	Time  float32
	Value types.Quaternion
	TBC   TBC
}

// NiFloatData holds float keys.
type NiFloatData struct {
	object.Base
	Data KeyGroup[float32]
}

func (*NiFloatData) BlockName() string { return "NiFloatData" }

func (d *NiFloatData) Sync(s *stream.Stream) { d.Data.Sync(s) }

// NiPosData holds vector keys.
type NiPosData struct {
	object.Base
	Data KeyGroup[types.Vector3]
}

func (*NiPosData) BlockName() string { return "NiPosData" }

func (d *NiPosData) Sync(s *stream.Stream) { d.Data.Sync(s) }

// NiBoolData holds boolean keys stored as bytes.
type NiBoolData struct {
	object.Base
	Data KeyGroup[uint8]
}

func (*NiBoolData) BlockName() string { return "NiBoolData" }

func (d *NiBoolData) Sync(s *stream.Stream) { d.Data.Sync(s) }

// NiColorData holds color keys.
type NiColorData struct {
	object.Base
	Data KeyGroup[types.Color4]
}

func (*NiColorData) BlockName() string { return "NiColorData" }

func (d *NiColorData) Sync(s *stream.Stream) { d.Data.Sync(s) }

// VisKey is a visibility key.
type VisKey struct {
	Time  float32
	Value uint8
}

// NiVisData holds visibility keys without an interpolation type.
type NiVisData struct {
	object.Base
	Keys []VisKey
}

func (*NiVisData) BlockName() string { return "NiVisData" }

func (d *NiVisData) Sync(s *stream.Stream) { stream.SyncVector[uint32](s, &d.Keys) }

// NiKeyframeData holds rotation, translation and scale keys. XYZ rotations
// are stored as three float key groups instead of quaternion keys.
type NiKeyframeData struct {
	object.Base
	RotationType KeyType
	QuatKeys     []QuatKey
	Order        float32
	XYZRotations [3]KeyGroup[float32]
	Translations KeyGroup[types.Vector3]
	Scales       KeyGroup[float32]

	xyzKeyCount uint32
}

func (*NiKeyframeData) BlockName() string { return "NiKeyframeData" }

func (d *NiKeyframeData) Sync(s *stream.Stream) {
	var n uint32
	count := stream.SyncCount(s, &n, d.rotationKeyCount())
	if count > 0 {
		stream.Sync(s, (*uint32)(&d.RotationType))
		if d.RotationType == KeyXYZ {
			d.xyzKeyCount = n
		}
		if d.RotationType != KeyXYZ {
			if s.IsReading() && !s.CanHold(count, 20) {
				d.QuatKeys = nil
				return
			}
			stream.Resize(&d.QuatKeys, count)
			for i := range d.QuatKeys {
				k := &d.QuatKeys[i]
				stream.Sync(s, &k.Time)
				stream.Sync(s, &k.Value)
				if d.RotationType == KeyTBC {
					stream.Sync(s, &k.TBC)
				}
			}
		} else {
			if s.Version().File() <= version.V10_1_0_0 {
				stream.Sync(s, &d.Order)
			}
			for i := range d.XYZRotations {
				d.XYZRotations[i].Sync(s)
			}
		}
	}
	d.Translations.Sync(s)
	d.Scales.Sync(s)
}

func (d *NiKeyframeData) rotationKeyCount() int {
	if d.RotationType == KeyXYZ {
		// The count is unused for XYZ rotations but must be non-zero.
		return max(int(d.xyzKeyCount), 1)
	}
	return len(d.QuatKeys)
}

// NiTransformData shares the NiKeyframeData layout.
type NiTransformData struct{ NiKeyframeData }

func (*NiTransformData) BlockName() string { return "NiTransformData" }

// Morph is one morph target.
type Morph struct {
	FrameName    StringRef
	Keys         KeyGroup[float32]
	LegacyWeight float32
	Vectors      []types.Vector3
}

// NiMorphData holds morph targets.
type NiMorphData struct {
	object.Base
	NumVertices     uint32
	RelativeTargets uint8
	Morphs          []Morph
}

func (*NiMorphData) BlockName() string { return "NiMorphData" }

func (d *NiMorphData) Sync(s *stream.Stream) {
	v := s.Version()
	var n uint32
	count := stream.SyncCount(s, &n, len(d.Morphs))
	stream.Sync(s, &d.NumVertices)
	stream.Sync(s, &d.RelativeTargets)

	if s.IsReading() && !s.CanHold(count, 4) {
		d.Morphs = nil
		return
	}
	stream.Resize(&d.Morphs, count)
	for i := range d.Morphs {
		m := &d.Morphs[i]
		if v.File() >= version.V10_1_0_106 {
			m.FrameName.Sync(s)
		}
		if v.File() <= version.V10_1_0_0 {
			m.Keys.Sync(s)
		}
		if v.File() >= version.V10_1_0_104 && v.File() <= version.V20_1_0_2 && v.Stream() < 10 {
			stream.Sync(s, &m.LegacyWeight)
		}
		stream.SyncVectorN(s, &m.Vectors, int(d.NumVertices))
	}
}

func (d *NiMorphData) StringRefs(refs []*StringRef) []*StringRef {
	for i := range d.Morphs {
		refs = append(refs, &d.Morphs[i].FrameName)
	}
	return refs
}

// NiUVData holds texture coordinate animation keys.
type NiUVData struct {
	object.Base
	UVGroups [4]KeyGroup[float32]
}

func (*NiUVData) BlockName() string { return "NiUVData" }

func (d *NiUVData) Sync(s *stream.Stream) {
	for i := range d.UVGroups {
		d.UVGroups[i].Sync(s)
	}
}

// NiBSplineData holds B-spline control points.
type NiBSplineData struct {
	object.Base
	FloatControlPoints   []float32
	CompactControlPoints []int16
}

func (*NiBSplineData) BlockName() string { return "NiBSplineData" }

func (d *NiBSplineData) Sync(s *stream.Stream) {
	stream.SyncVector[uint32](s, &d.FloatControlPoints)
	stream.SyncVector[uint32](s, &d.CompactControlPoints)
}

// NiBSplineBasisData holds the B-spline basis size.
type NiBSplineBasisData struct {
	object.Base
	NumControlPoints uint32
}

func (*NiBSplineBasisData) BlockName() string { return "NiBSplineBasisData" }

func (d *NiBSplineBasisData) Sync(s *stream.Stream) { stream.Sync(s, &d.NumControlPoints) }
