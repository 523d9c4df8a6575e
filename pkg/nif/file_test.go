package nif

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/header"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

func save(t *testing.T, f *File) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Save(&buf))
	return buf.Bytes()
}

func load(t *testing.T, data []byte) *File {
	t.Helper()
	f, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	return f
}

func triangleVertices() []blocks.BSVertexData {
	return []blocks.BSVertexData{
		{Vert: types.Vector3{X: 1, Y: 2, Z: 3}, UV: types.Vector2{U: 0.5, V: 0.25}, Weights: [4]float32{1}},
		{Vert: types.Vector3{X: -4, Y: 5.5, Z: 0}, UV: types.Vector2{U: 1, V: 0}, Weights: [4]float32{1}},
		{Vert: types.Vector3{X: 0.125, Y: -1, Z: 8}, UV: types.Vector2{U: 0, V: 1}, Weights: [4]float32{0.5, 0.5}, WeightBones: [4]uint8{0, 1}},
	}
}

// skinnedFile builds an SSE file with one skinned BSTriShape.
func skinnedFile() (*File, *blocks.BSTriShape, *blocks.NiSkinPartition) {
	f := Create(version.SSE())
	hdr := f.Header()

	shape := &blocks.BSTriShape{}
	shape.Name.Set("Body")
	shape.VertexDesc.SetFlags(types.VFVertex | types.VFUV | types.VFSkinned)
	shape.Vertices = triangleVertices()
	shape.Triangles = []types.Triangle{{P1: 0, P2: 1, P3: 2}}
	f.AddChild(f.Root(), shape)

	skin := &blocks.NiSkinInstance{}
	shape.SkinInstanceRef.SetIndex(hdr.AddBlock(skin))
	skin.SkeletonRoot.SetIndex(0)
	skin.Bones.Add(0)

	data := &blocks.NiSkinData{
		SkinTransform:    types.IdentityTransform(),
		HasVertexWeights: false,
		Bones:            []blocks.SkinBoneData{{Transform: types.IdentityTransform()}},
	}
	skin.DataRef.SetIndex(hdr.AddBlock(data))

	part := &blocks.NiSkinPartition{
		Partitions: []blocks.SkinPartitionBlock{{
			Bones:               []uint16{0},
			NumWeightsPerVertex: 4,
			HasVertexMap:        true,
			HasVertexWeights:    true,
			HasFaces:            true,
			HasBoneIndices:      true,
		}},
	}
	skin.SkinPartitionRef.SetIndex(hdr.AddBlock(part))
	return f, shape, part
}

func TestCreate(t *testing.T) {
	f := Create(version.SK())

	root := f.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Scene Root", root.Name.Get())
	assert.Equal(t, uint32(0), f.RootID())
	assert.Equal(t, uint32(1), f.Header().NumBlocks())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		version *version.NiVersion
	}{
		{name: "netimmerse 4.0.0.2", version: version.New(version.V4_0_0_2, 0, 0)},
		{name: "gamebryo 10.1", version: version.New(version.V10_1_0_0, 0, 0)},
		{name: "oblivion", version: version.Oblivion()},
		{name: "fallout 3", version: version.FO3()},
		{name: "skyrim", version: version.SK()},
		{name: "skyrim se", version: version.SSE()},
		{name: "fallout 4", version: version.FO4()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Create(tt.version)
			child := &blocks.NiNode{}
			child.Name.Set("Child")
			child.Transform = types.IdentityTransform()
			child.Transform.Translation = types.Vector3{X: 1, Y: 2, Z: 3}
			f.AddChild(f.Root(), child)

			first := save(t, f)
			got := load(t, first)

			require.Equal(t, uint32(2), got.Header().NumBlocks())
			assert.Equal(t, "Scene Root", got.Root().Name.Get())
			c, ok := FindBlockByName[*blocks.NiNode](got, "Child")
			require.True(t, ok)
			assert.Equal(t, types.Vector3{X: 1, Y: 2, Z: 3}, c.Transform.Translation)
			assert.Equal(t, []uint32{1}, got.Root().Children.Indices())

			assert.Equal(t, first, save(t, got), "second save must reproduce the first")
		})
	}
}

func TestSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.nif")
	require.NoError(t, Create(version.SSE()).SaveFile(path))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, f.Version().IsSSE())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.nif"))
	assert.Error(t, err)
}

func TestSkinPartitionDataMove(t *testing.T) {
	f, shape, part := skinnedFile()
	want := triangleVertices()

	f.FinalizeData()
	assert.Nil(t, shape.Vertices)
	assert.Nil(t, shape.Triangles)
	assert.Equal(t, uint16(3), shape.NumVertices)
	require.Len(t, part.VertexData, 3)
	require.Len(t, part.Partitions, 1)
	assert.Equal(t, []uint16{0, 1, 2}, part.Partitions[0].VertexMap)
	assert.Equal(t, []types.Triangle{{P1: 0, P2: 1, P3: 2}}, part.Partitions[0].Triangles)
	assert.True(t, part.VertexDesc.HasFlag(types.VFSkinned))

	f.PrepareData()
	assert.Nil(t, part.VertexData)
	assert.Equal(t, []types.Triangle{{P1: 0, P2: 1, P3: 2}}, shape.Triangles)
	if diff := pretty.Compare(want, shape.Vertices); diff != "" {
		t.Errorf("vertices changed by the data move (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{0}, part.TriParts)
}

func TestSkinnedShapeSurvivesSaveAndLoad(t *testing.T) {
	f, shape, _ := skinnedFile()
	data := save(t, f)

	assert.Len(t, shape.Vertices, 3, "save must leave the shape holding its vertices")

	got := load(t, data)
	loaded, ok := FindBlockByName[*blocks.BSTriShape](got, "Body")
	require.True(t, ok)
	require.Len(t, loaded.Vertices, 3)
	assert.Equal(t, []types.Triangle{{P1: 0, P2: 1, P3: 2}}, loaded.Triangles)

	for i, v := range triangleVertices() {
		assert.Equal(t, v.Vert, loaded.Vertices[i].Vert, "vertex %d", i)
		assert.InDelta(t, v.UV.U, loaded.Vertices[i].UV.U, 1e-3)
		assert.InDelta(t, v.UV.V, loaded.Vertices[i].UV.V, 1e-3)
		assert.InDelta(t, v.Weights[0], loaded.Vertices[i].Weights[0], 1e-3)
	}

	part := got.SkinPartitionOf(loaded)
	require.NotNil(t, part)
	assert.Nil(t, part.VertexData)

	assert.Equal(t, data, save(t, got))
}

func TestLoadErrors(t *testing.T) {
	oblivion := Create(version.Oblivion())
	oblivion.Header().AddBlock(blocks.NewNiUnknown("SomeFutureBlock", 4))
	var withUnknown bytes.Buffer
	require.NoError(t, oblivion.SaveWithOptions(&withUnknown, SaveOptions{}))

	valid := save(t, Create(version.SSE()))

	tests := []struct {
		name   string
		input  []byte
		status LoadStatus
		err    error
	}{
		{name: "bad magic", input: []byte("not a nif file\n"), status: StatusInvalidHeader, err: ErrInvalidMagic},
		{name: "unknown block without sizes", input: withUnknown.Bytes(), status: StatusUnknownBlock, err: ErrUnknownBlock},
		{name: "truncated", input: valid[:len(valid)-6], status: StatusTruncated, err: ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(bytes.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.status, StatusOf(err))

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.status, le.Status)
		})
	}

	assert.Equal(t, StatusOK, StatusOf(nil))
}

func TestLoadFromPlainReader(t *testing.T) {
	valid := save(t, Create(version.SK()))

	f, err := Load(iotest.OneByteReader(bytes.NewReader(valid)))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), f.Header().NumBlocks())

	// Magic line, file version, endian byte and user version precede the count.
	huge := bytes.Clone(valid)
	off := bytes.IndexByte(huge, '\n') + 1 + 4 + 1 + 4
	binary.LittleEndian.PutUint32(huge[off:], 200_000_000)

	f, err = Load(iotest.OneByteReader(bytes.NewReader(huge)))
	require.Error(t, err)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, StatusTruncated, StatusOf(err))
}

func TestLoadTruncatedSkinPartition(t *testing.T) {
	f := Create(version.New(version.V4_0_0_2, 0, 0))
	f.Header().AddBlock(&blocks.NiSkinPartition{Partitions: []blocks.SkinPartitionBlock{{
		NumVertices:  3,
		HasVertexMap: true,
		VertexMap:    []uint16{0, 1, 2},
		StripLengths: []uint16{3},
		Strips:       [][]uint16{{0, 1, 2}},
		HasFaces:     true,
	}}})
	data := save(t, f)

	for cut := len(data) - 1; cut > 0; cut-- {
		var err error
		require.NotPanics(t, func() { _, err = Load(bytes.NewReader(data[:cut])) }, "cut at %d", cut)
		require.Error(t, err, "cut at %d", cut)
		assert.NotEqual(t, StatusOK, StatusOf(err))
	}
}

func TestUnknownBlocksKeepTheirBytes(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	f := Create(version.SSE())
	f.Header().AddBlock(&blocks.NiUnknown{Name: "BSSomethingNew", Data: []byte{1, 2, 3, 4, 5}})
	first := save(t, f)

	got := load(t, first)
	u, ok := header.GetBlock[*blocks.NiUnknown](got.Header(), 1)
	require.True(t, ok)
	assert.Equal(t, "BSSomethingNew", u.Name)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, u.Data)
	assert.Contains(t, logs.String(), "BSSomethingNew")

	assert.Equal(t, first, save(t, got))
}

func TestSortGraph(t *testing.T) {
	f := Create(version.SK())
	hdr := f.Header()

	data := &blocks.NiTriShapeData{}
	dataID := hdr.AddBlock(data)
	shape := &blocks.NiTriShape{}
	shape.DataRef.SetIndex(dataID)
	f.AddChild(f.Root(), shape)

	require.NoError(t, f.SortGraph())

	assert.Same(t, shape, hdr.Block(1))
	assert.Same(t, data, hdr.Block(2))
	assert.Equal(t, uint32(2), shape.DataRef.Index())
	assert.Equal(t, []uint32{1}, f.Root().Children.Indices())
}

func TestSortGraphOwnedBlocksBeforeChildren(t *testing.T) {
	f := Create(version.Oblivion())
	hdr := f.Header()

	child := &blocks.NiNode{}
	child.Name.Set("Child")
	childID := hdr.AddBlock(child)
	alpha := &blocks.NiAlphaProperty{}
	alphaID := hdr.AddBlock(alpha)
	extra := &blocks.NiStringExtraData{}
	extraID := hdr.AddBlock(extra)

	root := f.Root()
	root.Children.Add(childID)
	root.PropertyRefs.Add(alphaID)
	root.ExtraDataRefs.Add(extraID)

	require.NoError(t, f.SortGraph())

	assert.Same(t, root, hdr.Block(0))
	assert.Same(t, extra, hdr.Block(1))
	assert.Same(t, alpha, hdr.Block(2))
	assert.Same(t, child, hdr.Block(3))
	assert.Equal(t, []uint32{3}, root.Children.Indices())
	assert.Equal(t, []uint32{2}, root.PropertyRefs.Indices())
	assert.Equal(t, []uint32{1}, root.ExtraDataRefs.Indices())
}

func TestCloneBlock(t *testing.T) {
	f := Create(version.SK())
	data := &blocks.NiTriShapeData{}
	data.Vertices = []types.Vector3{{X: 1}}
	shape := &blocks.NiTriShape{}
	shape.Name.Set("Shape")
	shape.DataRef.SetIndex(f.Header().AddBlock(data))
	shapeID := f.AddChild(f.Root(), shape)

	t.Run("within one file", func(t *testing.T) {
		id := f.CloneBlock(f, shapeID)
		clone, ok := header.GetBlock[*blocks.NiTriShape](f.Header(), id)
		require.True(t, ok)
		assert.NotSame(t, shape, clone)
		assert.Equal(t, "Shape", clone.Name.Get())

		cloneData, ok := header.GetBlockByRef[*blocks.NiTriShapeData](f.Header(), clone.DataRef.Ref)
		require.True(t, ok)
		assert.NotSame(t, data, cloneData)
		cloneData.Vertices[0].X = 9
		assert.Equal(t, float32(1), data.Vertices[0].X)
	})

	t.Run("into another file", func(t *testing.T) {
		dst := Create(version.SK())
		id := dst.CloneBlock(f, shapeID)
		assert.Equal(t, uint32(1), id)
		assert.Equal(t, uint32(3), dst.Header().NumBlocks())
	})

	assert.Equal(t, uint32(0xFFFFFFFF), f.CloneBlock(f, 99))
}

func TestDeleteBlockTree(t *testing.T) {
	f := Create(version.SK())
	data := &blocks.NiTriShapeData{}
	shape := &blocks.NiTriShape{}
	shape.DataRef.SetIndex(f.Header().AddBlock(data))
	shapeID := f.AddChild(f.Root(), shape)
	keep := &blocks.NiNode{}
	keep.Name.Set("Keep")
	f.AddChild(f.Root(), keep)

	f.DeleteBlockTree(shapeID)

	assert.Equal(t, uint32(2), f.Header().NumBlocks())
	_, ok := FindBlockByName[*blocks.NiNode](f, "Keep")
	assert.True(t, ok)
	assert.Empty(t, collect[*blocks.NiTriShapeData](f))
}

func TestDeleteUnreferencedBlocks(t *testing.T) {
	f := Create(version.SK())
	f.Header().AddBlock(&blocks.NiTriShapeData{})
	f.AddChild(f.Root(), &blocks.NiNode{})

	assert.Equal(t, 1, f.DeleteUnreferencedBlocks())
	assert.Zero(t, f.DeleteUnreferencedBlocks())
	assert.Len(t, f.Nodes(), 2)
}

func TestShapesAndParent(t *testing.T) {
	f := Create(version.SSE())
	shape := &blocks.BSTriShape{}
	id := f.AddChild(f.Root(), shape)

	require.Len(t, f.Shapes(), 1)
	assert.Same(t, f.Root(), f.ParentOf(id))
	assert.Nil(t, f.ParentOf(0))
}
