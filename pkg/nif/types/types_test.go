package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexDescRebuild(t *testing.T) {
	var d VertexDesc
	d.SetFlags(VFVertex | VFUV | VFNormal | VFTangent | VFSkinned)
	d.Rebuild(true)

	assert.Equal(t, uint32(40), d.Size())
	assert.Equal(t, uint32(0), d.Offset(VAPosition))
	assert.Equal(t, uint32(16), d.Offset(VATexCoord0))
	assert.Equal(t, uint32(20), d.Offset(VANormal))
	assert.Equal(t, uint32(24), d.Offset(VABinormal))
	assert.Equal(t, uint32(28), d.Offset(VASkinning))
	assert.True(t, d.HasFlag(VFSkinned))
	assert.False(t, d.HasFlag(VFColors))

	d.Rebuild(false)
	assert.Equal(t, uint32(32), d.Size())
	assert.Equal(t, uint32(8), d.Offset(VATexCoord0))
}

func TestVertexDescFlags(t *testing.T) {
	var d VertexDesc
	d.SetSize(28)
	d.SetFlag(VFColors)
	d.SetFlag(VFVertex)
	d.RemoveFlag(VFColors)

	assert.Equal(t, VFVertex, d.Flags())
	assert.Equal(t, uint32(28), d.Size())
}

func TestTriangleRotated(t *testing.T) {
	assert.Equal(t, Triangle{1, 2, 0}.Rotated(), Triangle{0, 1, 2})
	assert.Equal(t, Triangle{2, 0, 1}.Rotated(), Triangle{0, 1, 2})
	assert.Equal(t, Triangle{0, 1, 2}.Rotated(), Triangle{0, 1, 2})
	assert.True(t, Triangle{3, 3, 1}.Degenerate())
	assert.True(t, Triangle{3, 4, 1}.HasIndex(1))
}

func TestMatTransformCompose(t *testing.T) {
	a := IdentityTransform()
	a.Translation = Vector3{1, 2, 3}
	b := IdentityTransform()
	b.Scale = 2

	c := a.Compose(b)
	assert.Equal(t, Vector3{3, 4, 5}, c.Apply(Vector3{1, 1, 1}))
	assert.Equal(t, float32(2), c.Scale)
}

func TestBoundingSphere(t *testing.T) {
	s := NewBoundingSphere([]Vector3{{-1, 0, 0}, {1, 0, 0}})
	assert.Equal(t, Vector3{}, s.Center)
	assert.Equal(t, float32(1), s.Radius)
	assert.Equal(t, BoundingSphere{}, NewBoundingSphere(nil))
}
