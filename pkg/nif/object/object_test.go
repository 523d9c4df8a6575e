package object

import (
	"bytes"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

type testNode struct {
	Base
	Name     StringRef
	Children BlockRefArray[testNode]
	Parent   BlockPtr[testNode]
	Weights  []float32
}

func (n *testNode) BlockName() string { return "TestNode" }

func (n *testNode) Sync(s *stream.Stream) {
	n.Name.Sync(s)
	n.Children.Sync(s)
	n.Parent.Sync(s)
	stream.SyncVector[uint32](s, &n.Weights)
}

func (n *testNode) ChildRefs(refs []*Ref) []*Ref { return n.Children.ChildRefs(refs) }

func (n *testNode) Ptrs(ptrs []*Ref) []*Ref { return append(ptrs, &n.Parent.Ref) }

func (n *testNode) StringRefs(refs []*StringRef) []*StringRef { return append(refs, &n.Name) }

func TestRefZeroValueIsEmpty(t *testing.T) {
	var r Ref
	assert.True(t, r.IsEmpty())
	assert.Equal(t, NPOS, r.Index())

	r.SetIndex(3)
	assert.False(t, r.IsEmpty())
	assert.Equal(t, uint32(3), r.Index())

	r.SetIndex(NPOS)
	assert.True(t, r.IsEmpty())
}

func TestRefWireFormat(t *testing.T) {
	var buf bytes.Buffer
	w := stream.NewWriter(&buf, version.SSE())
	var empty Ref
	set := NewRef(2)
	empty.Sync(w)
	set.Sync(w)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 2, 0, 0, 0}, buf.Bytes())

	r := stream.NewReader(bytes.NewReader(buf.Bytes()), version.SSE())
	var a, b Ref
	a.Sync(r)
	b.Sync(r)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, uint32(2), b.Index())
}

func TestBlockRefArrayDropsEmptyRefsOnWrite(t *testing.T) {
	tests := []struct {
		name      string
		keepEmpty bool
		wantCount int
	}{
		{"strips empty", false, 2},
		{"keeps empty", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a BlockRefArray[testNode]
			a.KeepEmptyRefs = tt.keepEmpty
			a.SetIndices([]uint32{1, NPOS, 4})

			var buf bytes.Buffer
			a.Sync(stream.NewWriter(&buf, version.SSE()))
			assert.Equal(t, 4+4*tt.wantCount, buf.Len())

			var got BlockRefArray[testNode]
			got.Sync(stream.NewReader(bytes.NewReader(buf.Bytes()), version.SSE()))
			assert.Equal(t, tt.wantCount, got.Len())
			assert.Equal(t, uint32(1), got.At(0))
		})
	}
}

func TestBlockRefShortArrayCountWidth(t *testing.T) {
	var a BlockRefShortArray[testNode]
	a.SetIndices([]uint32{5, 6})

	var buf bytes.Buffer
	a.Sync(stream.NewWriter(&buf, version.SSE()))
	assert.Equal(t, []byte{2, 0, 5, 0, 0, 0, 6, 0, 0, 0}, buf.Bytes())
}

func TestBlockRefArrayEditing(t *testing.T) {
	var a BlockRefArray[testNode]
	a.Add(1)
	a.Add(2)
	a.Insert(0, 7)
	assert.Equal(t, []uint32{7, 1, 2}, a.Indices())
	assert.True(t, a.Has(2))

	a.Remove(1)
	assert.Equal(t, []uint32{7, 2}, a.Indices())
	a.RemoveAt(0)
	assert.Equal(t, []uint32{2}, a.Indices())
	assert.Equal(t, NPOS, a.At(5))
}

func TestStringRefSyncByVersion(t *testing.T) {
	ref := NewStringRef("Scene Root")
	ref.SetIndex(3)

	var buf bytes.Buffer
	ref.Sync(stream.NewWriter(&buf, version.SSE()))
	assert.Equal(t, []byte{3, 0, 0, 0}, buf.Bytes())

	buf.Reset()
	ref.Sync(stream.NewWriter(&buf, version.New(version.V10_0_1_0, 0, 0)))
	assert.Equal(t, 4+len("Scene Root"), buf.Len())

	var got StringRef
	got.Sync(stream.NewReader(bytes.NewReader(buf.Bytes()), version.New(version.V10_0_1_0, 0, 0)))
	assert.Equal(t, "Scene Root", got.Get())
}

func TestEnumerationHelpers(t *testing.T) {
	n := &testNode{}
	n.Children.SetIndices([]uint32{1, 2})
	n.Parent.SetIndex(0)

	assert.Equal(t, []uint32{1, 2}, ChildIndices(n))
	assert.Equal(t, []uint32{0}, PtrIndices(n))
	assert.Len(t, AllRefs(n), 3)
	assert.True(t, Is[*testNode](n))
}

func TestCloneIsDeep(t *testing.T) {
	n := &testNode{Name: NewStringRef("a"), Weights: []float32{1, 2}}
	n.Children.SetIndices([]uint32{1, 2})

	c := Clone(n)
	if diff := pretty.Compare(n, c); diff != "" {
		t.Errorf("clone differs from original: (-want +got)\n%s", diff)
	}
	require.NotSame(t, n, c)

	c.Weights[0] = 9
	c.Children.Refs[0].SetIndex(8)
	c.Name.Set("b")
	assert.Equal(t, float32(1), n.Weights[0])
	assert.Equal(t, uint32(1), n.Children.At(0))
	assert.Equal(t, "a", n.Name.Get())
}

func TestCloneThroughInterface(t *testing.T) {
	var o NiObject = &testNode{Weights: []float32{3}}
	c := Clone(o)
	assert.Equal(t, "TestNode", c.BlockName())
	assert.NotSame(t, o, c)
}
