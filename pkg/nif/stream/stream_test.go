package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

type record struct {
	Value uint16
	Name  string
}

func (r *record) Sync(s *Stream) {
	Sync(s, &r.Value)
	s.SyncSizedString(&r.Name, 1)
}

func writeThenRead(t *testing.T, v *version.NiVersion, fn func(s *Stream)) (*Stream, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf, v)
	fn(w)
	require.NoError(t, w.Err())
	data := buf.Bytes()
	return NewReader(bytes.NewReader(data), v), data
}

func TestSyncPrimitivesRoundTrip(t *testing.T) {
	v := version.SSE()
	u8, u16, u32, i32, f := uint8(7), uint16(0xBEEF), uint32(0xDEADBEEF), int32(-5), float32(1.5)
	vec := types.Vector3{X: 1, Y: 2, Z: 3}

	r, data := writeThenRead(t, v, func(s *Stream) {
		Sync(s, &u8)
		Sync(s, &u16)
		Sync(s, &u32)
		Sync(s, &i32)
		Sync(s, &f)
		Sync(s, &vec)
	})
	assert.Len(t, data, 1+2+4+4+4+12)
	assert.Equal(t, []byte{0xEF, 0xBE}, data[1:3])

	var g8 uint8
	var g16 uint16
	var g32 uint32
	var gi32 int32
	var gf float32
	var gvec types.Vector3
	Sync(r, &g8)
	Sync(r, &g16)
	Sync(r, &g32)
	Sync(r, &gi32)
	Sync(r, &gf)
	Sync(r, &gvec)

	require.NoError(t, r.Err())
	assert.Equal(t, u8, g8)
	assert.Equal(t, u16, g16)
	assert.Equal(t, u32, g32)
	assert.Equal(t, i32, gi32)
	assert.Equal(t, f, gf)
	assert.Equal(t, vec, gvec)
	assert.Equal(t, int64(len(data)), r.Position())
}

func TestSyncHalfIsTwoBytes(t *testing.T) {
	in := float32(0.333)
	r, data := writeThenRead(t, version.SSE(), func(s *Stream) { s.SyncHalf(&in) })
	assert.Len(t, data, 2)

	var out float32
	r.SyncHalf(&out)
	assert.InDelta(t, in, out, 0.001)
}

func TestSyncBoolWidth(t *testing.T) {
	b := true
	_, data := writeThenRead(t, version.SSE(), func(s *Stream) { s.SyncBool(&b) })
	assert.Equal(t, []byte{1}, data)

	_, data = writeThenRead(t, version.New(version.V4_0_0_2, 0, 0), func(s *Stream) { s.SyncBool(&b) })
	assert.Equal(t, []byte{1, 0, 0, 0}, data)
}

func TestSyncStrings(t *testing.T) {
	line := "Gamebryo File Format, Version 20.2.0.7"
	sized := "NiNode"
	export := "Ousnius"

	r, data := writeThenRead(t, version.SSE(), func(s *Stream) {
		s.SyncLine(&line)
		s.SyncSizedString(&sized, 4)
		s.SyncExportString(&export)
	})
	assert.Equal(t, len(line)+1+4+len(sized)+1+len(export)+1, len(data))

	var gl, gs, ge string
	r.SyncLine(&gl)
	r.SyncSizedString(&gs, 4)
	r.SyncExportString(&ge)
	require.NoError(t, r.Err())
	assert.Equal(t, line, gl)
	assert.Equal(t, sized, gs)
	assert.Equal(t, export, ge)
}

func TestSyncVectorAndEach(t *testing.T) {
	tris := []types.Triangle{{P1: 0, P2: 1, P3: 2}, {P1: 2, P2: 1, P3: 3}}
	recs := []record{{1, "a"}, {2, "bc"}}

	r, _ := writeThenRead(t, version.SSE(), func(s *Stream) {
		SyncVector[uint16](s, &tris)
		SyncEach[uint32](s, &recs)
	})

	var gotTris []types.Triangle
	var gotRecs []record
	SyncVector[uint16](r, &gotTris)
	SyncEach[uint32](r, &gotRecs)
	require.NoError(t, r.Err())
	assert.Equal(t, tris, gotTris)
	assert.Equal(t, recs, gotRecs)
}

func TestTruncatedReadIsSticky(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}), version.SSE())
	var v uint32 = 99
	Sync(r, &v)
	assert.Equal(t, uint32(0), v)
	require.Error(t, r.Err())
	assert.True(t, errors.Is(r.Err(), ErrTruncated))

	var after uint16 = 5
	Sync(r, &after)
	assert.Equal(t, uint16(0), after)
}

func TestOversizedCountIsRejected(t *testing.T) {
	// Count claims a million triangles but only one byte follows.
	r := NewReader(bytes.NewReader([]byte{0x40, 0x42, 0x0F, 0x00, 0xFF}), version.SSE())
	var tris []types.Triangle
	SyncVector[uint32](r, &tris)
	assert.Empty(t, tris)
	assert.True(t, errors.Is(r.Err(), ErrTruncated))
}

func TestResizeKeepsPrefix(t *testing.T) {
	v := []int{1, 2, 3}
	Resize(&v, 5)
	assert.Equal(t, []int{1, 2, 3, 0, 0}, v)
	Resize(&v, 2)
	assert.Equal(t, []int{1, 2}, v)
	Resize(&v, 3)
	assert.Equal(t, []int{1, 2, 0}, v)
}
