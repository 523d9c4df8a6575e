package blocks

import (
	"bytes"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

func writeBlock(t *testing.T, o NiObject, v *version.NiVersion) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := stream.NewWriter(&buf, v)
	o.Sync(w)
	require.NoError(t, w.Err())
	return buf.Bytes()
}

func readBlock(t *testing.T, name string, data []byte, v *version.NiVersion) NiObject {
	t.Helper()
	r := stream.NewReader(bytes.NewReader(data), v)
	o, err := Load(name, r)
	require.NoError(t, err)
	assert.Zero(t, r.Remaining(), "%s left unread bytes", name)
	return o
}

var roundTripVersions = []struct {
	name string
	v    *version.NiVersion
}{
	{"oblivion", version.Oblivion()},
	{"fallout 3", version.FO3()},
	{"skyrim", version.SK()},
	{"skyrim se", version.SSE()},
	{"fallout 4", version.FO4()},
}

func TestRegistryNamesMatchBlockNames(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		o := Create(name)
		require.NotNil(t, o, name)
		assert.Equal(t, name, o.BlockName())
		assert.True(t, Has(name))
	}
}

func TestRegistryUnknownName(t *testing.T) {
	assert.False(t, Has("NiDoesNotExist"))
	assert.Nil(t, Create("NiDoesNotExist"))

	_, err := Load("NiDoesNotExist", stream.NewReader(bytes.NewReader(nil), version.SSE()))
	require.ErrorIs(t, err, ErrUnknownBlock)
}

func TestRegistryConstructorsSetDefaults(t *testing.T) {
	data, ok := Create("NiPSysData").(*NiPSysData)
	require.True(t, ok)
	assert.True(t, data.isPSys)

	geom, ok := Create("NiTriShapeData").(*NiTriShapeData)
	require.True(t, ok)
	assert.False(t, geom.isPSys)
}

// userStreams are the user and stream version pairs swept against every
// file version.
var userStreams = [][2]uint32{{0, 0}, {11, 34}, {12, 83}}

func TestEveryBlockRoundTripsAtZeroValue(t *testing.T) {
	for _, tv := range roundTripVersions {
		t.Run(tv.name, func(t *testing.T) {
			for _, name := range Names() {
				first := writeBlock(t, Create(name), tv.v)
				got := readBlock(t, name, first, tv.v)
				second := writeBlock(t, got, tv.v)
				assert.Equal(t, first, second, "%s does not re-encode identically", name)
			}
		})
	}
}

func TestEveryBlockRoundTripsAcrossKnownVersions(t *testing.T) {
	for _, file := range version.Known {
		for _, us := range userStreams {
			v := version.New(file, us[0], us[1])
			t.Run(fmt.Sprintf("%s/%d/%d", v, us[0], us[1]), func(t *testing.T) {
				for _, name := range Names() {
					first := writeBlock(t, Create(name), v)
					got := readBlock(t, name, first, v)
					second := writeBlock(t, got, v)
					assert.Equal(t, first, second, "%s does not re-encode identically", name)
				}
			})
		}
	}
}

// fillFloats sets every reachable float32 field of v to a random value.
// Slices are left alone so counts and layout flags stay untouched.
func fillFloats(v reflect.Value, rng *rand.Rand) {
	switch v.Kind() {
	case reflect.Float32:
		if v.CanSet() {
			v.SetFloat(float64(rng.Float32() * 10))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				fillFloats(v.Field(i), rng)
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			fillFloats(v.Index(i), rng)
		}
	}
}

func TestEveryBlockRoundTripsWithRandomFloats(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tv := range roundTripVersions {
		t.Run(tv.name, func(t *testing.T) {
			for _, name := range Names() {
				o := Create(name)
				fillFloats(reflect.ValueOf(o).Elem(), rng)

				first := writeBlock(t, o, tv.v)
				got := readBlock(t, name, first, tv.v)
				second := writeBlock(t, got, tv.v)
				assert.Equal(t, first, second, "%s does not re-encode identically", name)
			}
		})
	}
}

func TestRandomFloatsSurviveDecode(t *testing.T) {
	names := []string{
		"BSBound",
		"NiColorExtraData",
		"NiFloatExtraData",
		"NiFloatInterpolator",
		"NiPoint3Interpolator",
		"NiTransformInterpolator",
		"NiVectorExtraData",
	}

	rng := rand.New(rand.NewSource(7))
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			o := Create(name)
			fillFloats(reflect.ValueOf(o).Elem(), rng)

			got := readBlock(t, name, writeBlock(t, o, version.SSE()), version.SSE())
			assert.Equal(t, o, got)
		})
	}
}

func TestEveryTruncatedBlockFailsCleanly(t *testing.T) {
	for _, tv := range roundTripVersions {
		t.Run(tv.name, func(t *testing.T) {
			for _, name := range Names() {
				data := writeBlock(t, Create(name), tv.v)
				for cut := 0; cut < len(data); cut++ {
					var err error
					assert.NotPanics(t, func() {
						_, err = Load(name, stream.NewReader(bytes.NewReader(data[:cut]), tv.v))
					}, "%s cut at %d", name, cut)
					assert.Error(t, err, "%s cut at %d", name, cut)
				}
			}
		})
	}
}

func TestKeyGroupLayout(t *testing.T) {
	tests := []struct {
		name string
		kind KeyType
		keys int
		want int
	}{
		{"empty group has no type", KeyLinear, 0, 4},
		{"linear", KeyLinear, 2, 8 + 2*8},
		{"quadratic", KeyQuadratic, 1, 8 + 16},
		{"tbc", KeyTBC, 1, 8 + 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &NiFloatData{}
			d.Data.Interpolation = tt.kind
			for i := 0; i < tt.keys; i++ {
				d.Data.Keys = append(d.Data.Keys, Key[float32]{Time: float32(i), Value: 1, TBC: TBC{Bias: 0.5}})
			}

			data := writeBlock(t, d, version.SK())
			assert.Len(t, data, tt.want)

			got := readBlock(t, "NiFloatData", data, version.SK()).(*NiFloatData)
			assert.Len(t, got.Data.Keys, tt.keys)
			if tt.kind == KeyTBC {
				assert.Equal(t, float32(0.5), got.Data.Keys[0].TBC.Bias)
			}
		})
	}
}

func TestControllerLinkLayoutByVersion(t *testing.T) {
	tests := []struct {
		name string
		v    *version.NiVersion
		want int
	}{
		{"string palette offsets", version.New(version.V20_0_0_5, 0, 0), 4 + 4 + 1 + 4 + 5*4},
		{"string table indices", version.SSE(), 4 + 4 + 1 + 5*4},
		{"inline target name", version.New(version.V10_1_0_0, 0, 0), 4 + len("Bip01") + 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := ControllerLink{TargetName: object.NewStringRef("Bip01")}
			var buf bytes.Buffer
			link.Sync(stream.NewWriter(&buf, tt.v))
			assert.Equal(t, tt.want, buf.Len())
		})
	}
}

func TestControllerSequenceEnumeration(t *testing.T) {
	seq := &NiControllerSequence{}
	seq.ControlledBlocks = []ControllerLink{{}, {}}
	seq.ControlledBlocks[0].InterpolatorRef.SetIndex(4)
	seq.ControlledBlocks[1].ControllerRef.SetIndex(5)
	seq.TextKeysRef.SetIndex(6)
	seq.Manager.SetIndex(1)

	children := object.ChildIndices(seq)
	assert.Contains(t, children, uint32(4))
	assert.Contains(t, children, uint32(5))
	assert.Contains(t, children, uint32(6))
	assert.Equal(t, []uint32{1}, object.PtrIndices(seq))
	assert.Len(t, seq.StringRefs(nil), 2+2*6)
}

func TestControllerSequenceRoundTrip(t *testing.T) {
	seq := &NiControllerSequence{Weight: 1, Frequency: 1, StopTime: 2.5, CycleType: 2}
	seq.ControlledBlocks = []ControllerLink{{Priority: 26}}
	seq.ControlledBlocks[0].InterpolatorRef.SetIndex(3)
	seq.ControlledBlocks[0].NodeName.SetIndex(0)
	seq.AnimNotesArrays.Add(7)

	data := writeBlock(t, seq, version.SSE())
	got := readBlock(t, "NiControllerSequence", data, version.SSE()).(*NiControllerSequence)

	require.Len(t, got.ControlledBlocks, 1)
	assert.Equal(t, uint8(26), got.ControlledBlocks[0].Priority)
	assert.Equal(t, uint32(3), got.ControlledBlocks[0].InterpolatorRef.Index())
	assert.Equal(t, uint32(0), got.ControlledBlocks[0].NodeName.Index())
	assert.Equal(t, float32(2.5), got.StopTime)
	assert.Equal(t, []uint32{7}, got.AnimNotesArrays.Indices())
}

func TestPSysDataSkipsParticleArraysInBethesdaFiles(t *testing.T) {
	d := NewNiPSysData()
	d.NumVertices = 3
	d.HasVertices = true
	d.Vertices = make([]types.Vector3, 3)
	d.ParticleInfo = make([]NiParticleInfo, 3)

	got := readBlock(t, "NiPSysData", writeBlock(t, d, version.SK()), version.SK()).(*NiPSysData)
	assert.Equal(t, uint16(3), got.NumVertices)
	assert.True(t, got.HasVertices)
	assert.Empty(t, got.Vertices)
	assert.Empty(t, got.ParticleInfo)

	d = NewNiPSysData()
	d.NumVertices = 2
	d.ParticleInfo = []NiParticleInfo{{Age: 1}, {Age: 2}}
	oblivion := version.Oblivion()
	got = readBlock(t, "NiPSysData", writeBlock(t, d, oblivion), oblivion).(*NiPSysData)
	require.Len(t, got.ParticleInfo, 2)
	assert.Equal(t, float32(2), got.ParticleInfo[1].Age)
}

func TestParticleSystemSSELayout(t *testing.T) {
	p := &NiParticleSystem{FarEnd: 10, WorldSpace: true}
	p.DataRef.SetIndex(2)
	p.ShaderPropertyRef.SetIndex(3)
	p.Modifiers.Add(4)

	got := readBlock(t, "NiParticleSystem", writeBlock(t, p, version.SSE()), version.SSE()).(*NiParticleSystem)
	assert.Equal(t, uint32(2), got.DataRef.Index())
	assert.Equal(t, uint32(3), got.ShaderPropertyRef.Index())
	assert.Equal(t, uint16(10), got.FarEnd)
	assert.True(t, got.WorldSpace)
	assert.Equal(t, []uint32{4}, got.Modifiers.Indices())
	assert.Subset(t, object.ChildIndices(got), []uint32{2, 3, 4})
}

func TestRigidBodyLayoutByGame(t *testing.T) {
	body := &BhkRigidBody{}
	body.Info.Mass = 12
	body.Info.GravityFactor = 1
	body.BodyFlags = 0x8

	sk := readBlock(t, "bhkRigidBody", writeBlock(t, body, version.SK()), version.SK()).(*BhkRigidBody)
	assert.Equal(t, float32(12), sk.Info.Mass)
	assert.Equal(t, float32(1), sk.Info.GravityFactor)
	assert.Equal(t, uint32(0x8), sk.BodyFlags)

	ob := readBlock(t, "bhkRigidBody", writeBlock(t, body, version.Oblivion()), version.Oblivion()).(*BhkRigidBody)
	assert.Equal(t, float32(12), ob.Info.Mass)
	assert.Zero(t, ob.Info.GravityFactor)

	assert.Less(t, len(writeBlock(t, body, version.Oblivion())), len(writeBlock(t, body, version.SK())))
}

func TestConstraintMotorLayout(t *testing.T) {
	tests := []struct {
		motor uint8
		want  int
	}{
		{MotorNone, 1},
		{MotorPosition, 1 + 6*4 + 1},
		{MotorVelocity, 1 + 4*4 + 2},
		{MotorSpringDamping, 1 + 4*4 + 1},
	}
	for _, tt := range tests {
		m := ConstraintMotor{Type: tt.motor}
		var buf bytes.Buffer
		m.Sync(stream.NewWriter(&buf, version.SK()))
		assert.Equal(t, tt.want, buf.Len(), "motor type %d", tt.motor)
	}
}

func TestBreakableConstraintRejectsNestedMalleable(t *testing.T) {
	c := &BhkBreakableConstraint{}
	c.Wrapped.Type = ConstraintMalleable
	var buf bytes.Buffer
	w := stream.NewWriter(&buf, version.SK())
	c.Sync(w)
	assert.Error(t, w.Err())
}

func TestNiUnknownKeepsPayload(t *testing.T) {
	u := NewNiUnknown("BSFutureBlock", 5)
	copy(u.Data, []byte{1, 2, 3, 4, 5})
	assert.Equal(t, "BSFutureBlock", u.BlockName())

	data := writeBlock(t, u, version.SSE())
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, data)

	got := NewNiUnknown("BSFutureBlock", 5)
	got.Sync(stream.NewReader(bytes.NewReader(data), version.SSE()))
	assert.Equal(t, u.Data, got.Data)

	short := NewNiUnknown("BSFutureBlock", 9)
	r := stream.NewReader(bytes.NewReader(data), version.SSE())
	short.Sync(r)
	assert.ErrorIs(t, r.Err(), stream.ErrTruncated)
}

func TestTruncatedBlockReportsError(t *testing.T) {
	d := &NiFloatData{}
	d.Data.Keys = []Key[float32]{{Time: 1}, {Time: 2}}
	data := writeBlock(t, d, version.SK())

	_, err := Load("NiFloatData", stream.NewReader(bytes.NewReader(data[:len(data)-3]), version.SK()))
	assert.ErrorIs(t, err, stream.ErrTruncated)
}

func stripPartition() *NiSkinPartition {
	return &NiSkinPartition{Partitions: []SkinPartitionBlock{{
		NumVertices:         3,
		NumTriangles:        1,
		Bones:               []uint16{0},
		NumWeightsPerVertex: 1,
		HasVertexMap:        true,
		VertexMap:           []uint16{0, 1, 2},
		HasVertexWeights:    true,
		VertexWeights:       [][]float32{{1}, {1}, {1}},
		HasFaces:            true,
		StripLengths:        []uint16{3},
		Strips:              [][]uint16{{0, 1, 2}},
	}}}
}

func TestTruncatedSkinPartitionStrips(t *testing.T) {
	v := version.New(version.V4_0_0_2, 0, 0)
	data := writeBlock(t, stripPartition(), v)

	got := readBlock(t, "NiSkinPartition", data, v).(*NiSkinPartition)
	require.Len(t, got.Partitions, 1)
	assert.Equal(t, [][]uint16{{0, 1, 2}}, got.Partitions[0].Strips)

	// Partition count, then vertex, triangle, bone and strip counts.
	afterStripCount := 4 + 2*4
	var err error
	require.NotPanics(t, func() {
		_, err = Load("NiSkinPartition", stream.NewReader(bytes.NewReader(data[:afterStripCount]), v))
	})
	assert.ErrorIs(t, err, stream.ErrTruncated)

	for cut := 0; cut < len(data); cut++ {
		assert.NotPanics(t, func() {
			_, err = Load("NiSkinPartition", stream.NewReader(bytes.NewReader(data[:cut]), v))
		}, "cut at %d", cut)
		assert.Error(t, err, "cut at %d", cut)
	}
}

func TestTriStripsDataRejectsMismatchedStrips(t *testing.T) {
	d := &NiTriStripsData{
		StripLengths: []uint16{3, 4},
		HasPoints:    true,
		Points:       [][]uint16{{0, 1, 2}, {2, 1, 3, 4}},
	}
	got := readBlock(t, "NiTriStripsData", writeBlock(t, d, version.SK()), version.SK()).(*NiTriStripsData)
	assert.Equal(t, d.Points, got.Points)

	tests := []struct {
		name    string
		lengths []uint16
		points  [][]uint16
	}{
		{"fewer lengths than strips", []uint16{3}, [][]uint16{{0, 1, 2}, {2, 1, 3}}},
		{"more lengths than strips", []uint16{3, 3}, [][]uint16{{0, 1, 2}}},
		{"length disagrees with points", []uint16{4}, [][]uint16{{0, 1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &NiTriStripsData{StripLengths: tt.lengths, HasPoints: true, Points: tt.points}
			w := stream.NewWriter(&bytes.Buffer{}, version.SK())
			d.Sync(w)
			assert.Error(t, w.Err())
		})
	}
}

func TestAirFieldModifierLayout(t *testing.T) {
	m := &NiPSysAirFieldModifier{
		Direction:    types.Vector3{Z: 1},
		AirFriction:  0.5,
		EnableSpread: true,
		Spread:       0.25,
	}
	m.Magnitude = 2
	m.UseMaxDistance = true
	m.FieldObjectRef.SetIndex(3)

	data := writeBlock(t, m, version.SK())
	// Modifier 13 bytes, field 17, air 27.
	assert.Len(t, data, 13+17+27)

	got := readBlock(t, "NiPSysAirFieldModifier", data, version.SK()).(*NiPSysAirFieldModifier)
	assert.Equal(t, m.Direction, got.Direction)
	assert.Equal(t, float32(2), got.Magnitude)
	assert.True(t, got.UseMaxDistance)
	assert.True(t, got.EnableSpread)
	assert.Equal(t, float32(0.25), got.Spread)

	refs := got.ChildRefs(nil)
	require.Len(t, refs, 1)
	assert.Equal(t, uint32(3), refs[0].Index())
}

func TestPixelDataLayoutByVersion(t *testing.T) {
	tests := []struct {
		name string
		v    *version.NiVersion
		want int
	}{
		{"channel masks", version.New(version.V10_4_0_1, 0, 0), 36 + 4 + 4 + 4 + 12 + 4 + 4},
		{"channel records", version.SK(), 58 + 4 + 4 + 4 + 12 + 4 + 4 + 4},
		{"srgb flag", version.New(version.V20_3_0_9, 0, 0), 59 + 4 + 4 + 4 + 12 + 4 + 4 + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &NiPixelData{
				BytesPerPixel: 1,
				MipMaps:       []MipMap{{Width: 2, Height: 2}},
				NumPixels:     4,
				NumFaces:      1,
				PixelData:     []uint8{1, 2, 3, 4},
			}
			d.PaletteRef.SetIndex(1)

			data := writeBlock(t, d, tt.v)
			assert.Len(t, data, tt.want)

			got := readBlock(t, "NiPixelData", data, tt.v).(*NiPixelData)
			assert.Equal(t, d.PixelData, got.PixelData)
			assert.Equal(t, d.MipMaps, got.MipMaps)
			assert.Len(t, got.ChildRefs(nil), 1)
		})
	}
}

func TestTreadTransfInterpolatorRefs(t *testing.T) {
	i := &BSTreadTransfInterpolator{TreadTransforms: []TreadTransform{
		{Name: object.NewStringRef("Tread01"), Transform1: QuatTransform{Scale: 1}},
		{Name: object.NewStringRef("Tread02"), Transform2: QuatTransform{Scale: 2}},
	}}
	i.DataRef.SetIndex(4)

	data := writeBlock(t, i, version.Oblivion())
	got := readBlock(t, "BSTreadTransfInterpolator", data, version.Oblivion()).(*BSTreadTransfInterpolator)
	require.Len(t, got.TreadTransforms, 2)
	assert.Equal(t, "Tread02", got.TreadTransforms[1].Name.Get())
	assert.Equal(t, float32(2), got.TreadTransforms[1].Transform2.Scale)
	assert.Len(t, got.StringRefs(nil), 2)
	assert.Len(t, got.ChildRefs(nil), 1)
}

func TestShadowGeneratorRefs(t *testing.T) {
	g := &NiShadowGenerator{Name: "Shadows", DepthBias: 0.1, FarClippingDistance: 500}
	g.ShadowCasters.Add(1)
	g.ShadowCasters.Add(2)
	g.ShadowReceivers.Add(3)
	g.TargetRef.SetIndex(4)

	v := version.New(version.V20_3_0_9, 0, 0)
	got := readBlock(t, "NiShadowGenerator", writeBlock(t, g, v), v).(*NiShadowGenerator)
	assert.Equal(t, "Shadows", got.Name)
	assert.Equal(t, float32(500), got.FarClippingDistance)
	assert.Equal(t, []uint32{1, 2}, got.ShadowCasters.Indices())
	assert.Len(t, got.ChildRefs(nil), 3)
	assert.Len(t, got.Ptrs(nil), 1)

	// Clipping distances only exist from 20.3.0.7.
	old := writeBlock(t, g, version.SK())
	assert.Len(t, old, len(writeBlock(t, g, v))-12)
}

func TestPackedCombinedSharedGeomData(t *testing.T) {
	e := &BSPackedCombinedSharedGeomDataExtra{
		NumVertices: 8,
		Objects:     []PackedGeomObject{{ShapeID: 7, Offset: 64}},
		Data: []PackedGeomData{{
			NumVertices:  8,
			TriCountLOD0: 12,
			Combined: []PackedGeomDataCombined{{
				GrayscaleToPaletteScale: 1,
				Rotation:                types.Identity3(),
				Scale:                   1,
			}},
		}},
	}

	got := readBlock(t, "BSPackedCombinedSharedGeomDataExtra", writeBlock(t, e, version.FO4()), version.FO4()).(*BSPackedCombinedSharedGeomDataExtra)
	assert.Equal(t, e.Objects, got.Objects)
	assert.Equal(t, e.Data, got.Data)
}

func TestFurSpringControllerBones(t *testing.T) {
	c := &NiFurSpringController{}
	c.Bones.Add(1)
	c.Bones2.Add(2)
	c.Bones2.Add(3)

	got := readBlock(t, "NiFurSpringController", writeBlock(t, c, version.SK()), version.SK()).(*NiFurSpringController)
	assert.Equal(t, []uint32{2, 3}, got.Bones2.Indices())
	// Target plus three bones.
	assert.Len(t, got.Ptrs(nil), 4)
}
