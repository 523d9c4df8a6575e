package header

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

func newTestHeader(v *version.NiVersion, list ...object.NiObject) *Header {
	h := New(v)
	for _, b := range list {
		h.AddBlock(b)
	}
	return h
}

func namedNode(name string, children ...uint32) *blocks.NiNode {
	n := &blocks.NiNode{}
	n.Name.Set(name)
	n.Children.SetIndices(children)
	return n
}

func TestDeleteBlockFixesReferences(t *testing.T) {
	node := namedNode("Root", 1)
	shape := &blocks.NiTriShape{}
	shape.DataRef.SetIndex(2)
	data := &blocks.NiTriShapeData{}
	collision := &blocks.BhkCollisionObject{}
	collision.Target.SetIndex(0)

	h := newTestHeader(version.SK(), node, shape, data, collision)
	h.DeleteBlock(0)

	require.Equal(t, uint32(3), h.NumBlocks())

	got, ok := GetBlock[*blocks.NiTriShape](h, 0)
	require.True(t, ok)
	assert.Same(t, shape, got)
	assert.Equal(t, uint32(1), got.DataRef.Index())

	_, ok = GetBlock[*blocks.NiTriShapeData](h, 1)
	assert.True(t, ok)

	assert.True(t, collision.Target.IsEmpty(), "back-reference to the deleted block must be cleared")
	assert.Equal(t, object.NPOS, collision.Target.Index())

	assert.NotContains(t, h.BlockTypes(), "NiNode")
	assert.Equal(t, "NiTriShape", h.GetBlockTypeStringByID(0))
	assert.Equal(t, "NiTriShapeData", h.GetBlockTypeStringByID(1))
	assert.Equal(t, "bhkCollisionObject", h.GetBlockTypeStringByID(2))
	assert.Empty(t, h.Roots(), "the root pointed at the deleted block")
}

func TestDeleteBlockOutOfRangeIsNoop(t *testing.T) {
	h := newTestHeader(version.SK(), namedNode("Root"))
	h.DeleteBlock(5)
	assert.Equal(t, uint32(1), h.NumBlocks())
}

func TestDeleteBlocksIgnoresDuplicates(t *testing.T) {
	root := namedNode("Root", 1, 2, 3)
	h := newTestHeader(version.SK(), root, namedNode("A"), namedNode("B"), namedNode("C"))

	h.DeleteBlocks([]uint32{3, 1, 3})

	require.Equal(t, uint32(2), h.NumBlocks())
	n, ok := GetBlock[*blocks.NiNode](h, 1)
	require.True(t, ok)
	assert.Equal(t, "B", n.Name.Get())
	assert.Equal(t, []uint32{object.NPOS, 1, object.NPOS}, root.Children.Indices())
}

func TestSwapBlocksRewritesReferences(t *testing.T) {
	list := []object.NiObject{
		namedNode("Root", 5),
		namedNode("N1"),
		&blocks.NiTriShape{},
		namedNode("N3", 2),
		namedNode("N4"),
		namedNode("N5"),
	}
	h := newTestHeader(version.SSE(), list...)

	h.SwapBlocks(2, 5)

	_, ok := GetBlock[*blocks.NiTriShape](h, 5)
	assert.True(t, ok)
	n3, ok := GetBlock[*blocks.NiNode](h, 3)
	require.True(t, ok)
	assert.Equal(t, uint32(5), n3.Children.At(0))

	root, ok := GetBlock[*blocks.NiNode](h, 0)
	require.True(t, ok)
	assert.Equal(t, uint32(2), root.Children.At(0))

	assert.Equal(t, "NiTriShape", h.GetBlockTypeStringByID(5))
	assert.Equal(t, "NiNode", h.GetBlockTypeStringByID(2))
}

func TestSetBlockOrder(t *testing.T) {
	root := namedNode("Root", 1, 2)
	a := namedNode("A", 2)
	b := namedNode("B")
	h := newTestHeader(version.SK(), root, a, b)

	require.NoError(t, h.SetBlockOrder([]uint32{2, 0, 1}))

	assert.Same(t, a, h.Block(0))
	assert.Same(t, b, h.Block(1))
	assert.Same(t, root, h.Block(2))
	assert.Equal(t, []uint32{0, 1}, root.Children.Indices())
	assert.Equal(t, []uint32{1}, a.Children.Indices())
	require.Len(t, h.Roots(), 1)
	assert.Equal(t, uint32(2), h.Roots()[0].Index())
}

func TestSetBlockOrderRejectsInvalidOrders(t *testing.T) {
	h := newTestHeader(version.SK(), namedNode("A"), namedNode("B"))

	tests := []struct {
		name  string
		order []uint32
	}{
		{name: "wrong length", order: []uint32{0}},
		{name: "duplicate", order: []uint32{1, 1}},
		{name: "out of range", order: []uint32{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, h.SetBlockOrder(tt.order))
		})
	}
}

func TestReorderWarnsAboutUnparsedBlocks(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	h := newTestHeader(version.SK(), namedNode("Root", 1), namedNode("Child"))
	h.SwapBlocks(0, 1)
	require.NoError(t, h.SetBlockOrder([]uint32{1, 0}))
	h.DeleteBlock(1)
	assert.Empty(t, logs.String())

	h.AddBlock(blocks.NewNiUnknown("BSFutureBlock", 4))
	h.SwapBlocks(0, 1)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "op=swap")
	assert.Contains(t, logs.String(), "BSFutureBlock")

	logs.Reset()
	require.NoError(t, h.SetBlockOrder([]uint32{1, 0}))
	assert.Contains(t, logs.String(), "op=reorder")

	logs.Reset()
	require.NoError(t, h.SetBlockOrder([]uint32{0, 1}))
	assert.Empty(t, logs.String())

	h.AddBlock(namedNode("Extra"))
	logs.Reset()
	h.DeleteBlock(2)
	assert.Contains(t, logs.String(), "op=delete")
}

func TestReplaceBlockKeepsPosition(t *testing.T) {
	root := namedNode("Root", 1)
	h := newTestHeader(version.SSE(), root, &blocks.NiTriShape{})

	replacement := &blocks.BSTriShape{}
	h.ReplaceBlock(1, replacement)

	assert.Same(t, replacement, h.Block(1))
	assert.Equal(t, uint32(1), root.Children.At(0))
	assert.Equal(t, "BSTriShape", h.GetBlockTypeStringByID(1))
	assert.NotContains(t, h.BlockTypes(), "NiTriShape")
}

func TestDeleteUnreferencedBlocks(t *testing.T) {
	build := func() *Header {
		shape := &blocks.NiTriShape{}
		shape.DataRef.SetIndex(2)
		orphanShape := &blocks.NiTriShape{}
		return newTestHeader(version.SK(),
			namedNode("Root", 1),
			shape,
			&blocks.NiTriShapeData{},
			namedNode("Orphan", 4),
			orphanShape,
		)
	}

	t.Run("collects chains and is idempotent", func(t *testing.T) {
		h := build()
		deleted, root := h.DeleteUnreferencedBlocks(0, nil)
		assert.Equal(t, 2, deleted)
		assert.Equal(t, uint32(0), root)
		assert.Equal(t, uint32(3), h.NumBlocks())

		deleted, _ = h.DeleteUnreferencedBlocks(0, nil)
		assert.Zero(t, deleted)
	})

	t.Run("filter restricts candidates", func(t *testing.T) {
		h := build()
		deleted, _ := h.DeleteUnreferencedBlocks(0, func(o object.NiObject) bool {
			return object.Is[*blocks.NiTriShape](o)
		})
		assert.Zero(t, deleted, "the only orphan is a node")
		assert.Equal(t, uint32(5), h.NumBlocks())
	})

	t.Run("root index follows deletions", func(t *testing.T) {
		h := newTestHeader(version.SK(), namedNode("Orphan"), namedNode("Root"))
		h.SetRoots(1)
		deleted, root := h.DeleteUnreferencedBlocks(1, nil)
		assert.Equal(t, 1, deleted)
		assert.Equal(t, uint32(0), root)
		assert.Equal(t, "Root", h.Block(root).(*blocks.NiNode).Name.Get())
	})
}

func TestBlockRefCount(t *testing.T) {
	collision := &blocks.BhkCollisionObject{}
	collision.Target.SetIndex(1)
	h := newTestHeader(version.SK(), namedNode("Root", 1), namedNode("Child"), collision)

	assert.Equal(t, 2, h.BlockRefCount(1))
	assert.True(t, h.IsBlockReferenced(0), "root is referenced by the footer")
	assert.False(t, h.IsBlockReferenced(2))
}

func TestGetBlockID(t *testing.T) {
	child := namedNode("Child")
	h := newTestHeader(version.SK(), namedNode("Root", 1), child)

	assert.Equal(t, uint32(1), h.GetBlockID(child))
	assert.Equal(t, object.NPOS, h.GetBlockID(namedNode("Child")))
	assert.Equal(t, object.NPOS, h.GetBlockID(nil))

	_, ok := GetBlock[*blocks.NiTriShape](h, 1)
	assert.False(t, ok, "wrong type")
	_, ok = GetBlock[*blocks.NiNode](h, 7)
	assert.False(t, ok, "out of range")
	_, ok = GetBlock[blocks.Node](h, 1)
	assert.True(t, ok, "capability lookup")
}

func TestAddOrFindStringID(t *testing.T) {
	h := New(version.SSE())
	h.AddOrFindStringID("existing", false)
	before := h.NumStrings()

	str := uuid.NewString()
	first := h.AddOrFindStringID(str, false)
	second := h.AddOrFindStringID(str, false)

	assert.Equal(t, first, second)
	assert.Equal(t, before+1, h.NumStrings())
	assert.Equal(t, str, h.GetStringByID(first))
	assert.Equal(t, first, h.FindStringID(str))

	assert.Equal(t, object.NPOS, h.AddOrFindStringID("", false))
	assert.Equal(t, before+1, h.NumStrings())
	assert.NotEqual(t, object.NPOS, h.AddOrFindStringID("", true))
}

func TestUpdateHeaderStringsDeduplicates(t *testing.T) {
	shared := uuid.NewString()
	a := namedNode(shared)
	b := namedNode(shared)
	c := namedNode("Other")
	empty := namedNode("")
	h := newTestHeader(version.SSE(), a, b, c, empty)
	h.AddOrFindStringID("stale", false)

	h.UpdateHeaderStrings()

	assert.Equal(t, []string{shared, "Other"}, h.Strings())
	assert.Equal(t, a.Name.Index(), b.Name.Index())
	assert.NotEqual(t, a.Name.Index(), c.Name.Index())
	assert.Equal(t, object.NPOS, empty.Name.Index())
	assert.Equal(t, uint32(len(shared)), h.MaxStringLen())
}

func TestUpdateHeaderStringsKeepsTableWithUnknownBlocks(t *testing.T) {
	h := newTestHeader(version.SSE(), namedNode("Root"), blocks.NewNiUnknown("SomeUnknownBlock", 4))
	h.AddOrFindStringID("used by raw payload", false)

	h.UpdateHeaderStrings()

	assert.Equal(t, []string{"used by raw payload", "Root"}, h.Strings())
}

func TestFillStringRefs(t *testing.T) {
	a := namedNode("A")
	b := namedNode("B")
	h := newTestHeader(version.SSE(), a, b)
	h.UpdateHeaderStrings()

	a.Name.Set("edited")
	b.Name.SetIndex(99)
	h.SetStringByID(0, "renamed")
	h.FillStringRefs()

	assert.Equal(t, "renamed", a.Name.Get())
	assert.Equal(t, "", b.Name.Get(), "out of range index resolves to empty")
}

func TestFindBlocksByName(t *testing.T) {
	h := newTestHeader(version.SK(), namedNode("Root", 1, 2), namedNode("Leg"), namedNode("Leg"), &blocks.NiTriShapeData{})

	assert.Equal(t, []uint32{1, 2}, h.FindBlocksByName("Leg"))
	assert.Empty(t, h.FindBlocksByName("Arm"))
}

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		version *version.NiVersion
	}{
		{name: "oblivion", version: version.Oblivion()},
		{name: "fallout 3", version: version.FO3()},
		{name: "skyrim", version: version.SK()},
		{name: "skyrim se", version: version.SSE()},
		{name: "fallout 4", version: version.FO4()},
		{name: "fallout 76", version: version.FO76()},
		{name: "gamebryo 10.1", version: version.New(version.V10_1_0_0, 0, 0)},
		{name: "netimmerse 4.0", version: version.New(version.V4_0_0_2, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHeader(tt.version, namedNode("Root", 1), &blocks.NiTriShape{}, namedNode("Leaf"))
			h.ExportInfo = ExportInfo{Author: "author", ProcessScript: "process", ExportScript: "export", MaxFilepath: "path"}
			h.Groups = []uint32{7}
			h.SetBlockSize(1, 42)
			h.UpdateHeaderStrings()

			var buf bytes.Buffer
			w := stream.NewWriter(&buf, tt.version)
			require.NoError(t, h.Sync(w))

			src := bytes.NewReader(buf.Bytes())
			r := stream.NewReader(src, nil)
			got := &Header{}
			require.NoError(t, got.Sync(r))
			assert.Zero(t, src.Len())
			assert.True(t, got.IsValid())

			assert.Equal(t, tt.version.File(), got.Version().File())
			assert.Equal(t, tt.version.User(), got.Version().User())
			assert.Equal(t, uint32(3), got.DeclaredBlocks())
			assert.Same(t, got.Version(), r.Version())

			v := tt.version
			if v.File() >= version.V5_0_0_1 {
				assert.Equal(t, []string{"NiNode", "NiTriShape"}, got.BlockTypes())
				assert.Equal(t, uint16(1), got.GetBlockTypeIndex(1))
				assert.Equal(t, uint16(0), got.GetBlockTypeIndex(2))
			}
			if v.File() >= version.V20_2_0_5 {
				assert.Equal(t, uint32(42), got.BlockSize(1))
			}
			if v.File() >= version.V20_1_0_1 {
				assert.Equal(t, []string{"Root", "Leaf"}, got.Strings())
			}
			if v.File() >= version.V5_0_0_6 {
				assert.Equal(t, []uint32{7}, got.Groups)
			}
			if v.IsBethesda() {
				assert.Equal(t, v.Stream(), got.Version().Stream())
				assert.Equal(t, "author", got.ExportInfo.Author)
				assert.Equal(t, "export", got.ExportInfo.ExportScript)
			}
		})
	}
}

func TestExportInfoLayoutByStream(t *testing.T) {
	tests := []struct {
		name    string
		version *version.NiVersion
		size    int
	}{
		// author, process script, export script: 3 x (len byte + nul)
		{name: "skyrim", version: version.SK(), size: 6},
		// adds max filepath
		{name: "fallout 4", version: version.FO4(), size: 8},
		// unknown int replaces process script
		{name: "fallout 76", version: version.FO76(), size: 4 + 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var e ExportInfo
			e.sync(stream.NewWriter(&buf, tt.version))
			assert.Equal(t, tt.size, buf.Len())
		})
	}
}

func TestHeaderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		err   error
	}{
		{name: "not a nif", input: []byte("PK\x03\x04 some zip\n"), err: ErrInvalidMagic},
		{name: "pointer addressed", input: []byte("NetImmerse File Format, Version 3.1\n"), err: ErrUnsupportedVersion},
		{name: "garbled version", input: []byte("Gamebryo File Format, Version 20.x\n"), err: ErrUnsupportedVersion},
		{
			name:  "version mismatch",
			input: append([]byte("Gamebryo File Format, Version 20.2.0.7\n"), 0x05, 0x00, 0x00, 0x14),
			err:   ErrUnsupportedVersion,
		},
		{name: "truncated", input: []byte("Gamebryo File Format, Version 20.2.0.7\n\x07"), err: stream.ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Header{}
			err := h.Sync(stream.NewReader(bytes.NewReader(tt.input), nil))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, h.IsValid())
		})
	}
}

func TestParseMagic(t *testing.T) {
	v, nds, err := ParseMagic("NDSNIF....@....@...., Version 20.3.0.9")
	require.NoError(t, err)
	assert.True(t, nds)
	assert.Equal(t, version.ToFile(20, 3, 0, 9), v)

	v, nds, err = ParseMagic(version.FO4().HeaderString())
	require.NoError(t, err)
	assert.False(t, nds)
	assert.Equal(t, version.V20_2_0_7, v)
}

func TestFooterRoundTrip(t *testing.T) {
	h := newTestHeader(version.SSE(), namedNode("Root"))

	var buf bytes.Buffer
	require.NoError(t, h.SyncFooter(stream.NewWriter(&buf, version.SSE())))
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, buf.Bytes())

	h.SetRoots(3, 4)
	buf.Reset()
	require.NoError(t, h.SyncFooter(stream.NewWriter(&buf, version.SSE())))

	got := New(version.SSE())
	require.NoError(t, got.SyncFooter(stream.NewReader(bytes.NewReader(buf.Bytes()), version.SSE())))
	require.Len(t, got.Roots(), 2)
	assert.Equal(t, uint32(4), got.Roots()[1].Index())
}
