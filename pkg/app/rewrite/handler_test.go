package rewrite

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/nif"
	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

func testContext() *app.Context {
	ctx := app.NewContext()
	ctx.Out = &bytes.Buffer{}
	ctx.Err = &bytes.Buffer{}
	return ctx
}

// writeTestFile saves a Skyrim file whose root has one child and which also
// holds two unreferenced nodes, one owning the other.
func writeTestFile(t *testing.T, dir string) string {
	t.Helper()
	f := nif.Create(version.SK())
	child := &blocks.NiNode{}
	child.Name.Set("Child")
	f.AddChild(f.Root(), child)

	orphan := &blocks.NiNode{}
	orphan.Name.Set("Orphan")
	f.Header().AddBlock(orphan)
	inner := &blocks.NiNode{}
	inner.Name.Set("Inner")
	f.AddChild(orphan, inner)

	path := filepath.Join(dir, "in.nif")
	require.NoError(t, f.SaveFile(path))
	return path
}

func TestHandleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir)
	out := filepath.Join(dir, "out.nif")

	resp, err := Handle(testContext(), &Request{Mode: ModeRoundTrip, InputPath: in, OutputPath: out, SortBlocks: true})
	require.NoError(t, err)
	assert.True(t, resp.Identical)
	assert.Equal(t, -1, resp.FirstDiff)
	assert.Equal(t, uint32(4), resp.BlocksBefore)
	assert.Equal(t, resp.BytesIn, resp.BytesOut)
	assert.Equal(t, "20.2.0.7", resp.Version)

	want, err := os.ReadFile(in)
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHandleRoundTripDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir)

	// Trailing bytes after the footer are not part of the file and are lost.
	data, err := os.ReadFile(in)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, append(data, 0xAB), 0o644))

	resp, err := Handle(testContext(), &Request{Mode: ModeRoundTrip, InputPath: in})
	require.NoError(t, err)
	assert.False(t, resp.Identical)
	assert.Equal(t, len(data), resp.FirstDiff)
}

func TestHandlePrune(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir)
	out := filepath.Join(dir, "pruned.nif")

	resp, err := Handle(testContext(), &Request{Mode: ModePrune, InputPath: in, OutputPath: out, SortBlocks: true})
	require.NoError(t, err)
	assert.Equal(t, uint32(4), resp.BlocksBefore)
	assert.Equal(t, uint32(2), resp.BlocksAfter)
	assert.Equal(t, 2, resp.Deleted())

	f, err := nif.LoadFile(out)
	require.NoError(t, err)
	require.Equal(t, uint32(2), f.Header().NumBlocks())
	_, ok := nif.FindBlockByName[*blocks.NiNode](f, "Child")
	assert.True(t, ok)
	_, ok = nif.FindBlockByName[*blocks.NiNode](f, "Orphan")
	assert.False(t, ok)
}

func TestHandleCreate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "new.nif")

	resp, err := Handle(testContext(), &Request{Mode: ModeCreate, OutputPath: out, Game: "fo4", SortBlocks: true})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), resp.BlocksAfter)

	f, err := nif.LoadFile(out)
	require.NoError(t, err)
	assert.True(t, f.Version().IsFO4())
	require.NotNil(t, f.Root())
	assert.Equal(t, "Scene Root", f.Root().Name.Get())
}

func TestHandleLoadFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.nif")
	require.NoError(t, os.WriteFile(in, []byte("Gamebryo File Format, Version 20.2.0.7\n"), 0o644))

	_, err := Handle(testContext(), &Request{Mode: ModeRoundTrip, InputPath: in})
	require.Error(t, err)
	assert.Equal(t, app.ErrCodeLoad, app.CodeOf(err))
	assert.Equal(t, nif.StatusTruncated, nif.StatusOf(err))
}

func TestHandleCancelledBeforeWrite(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir)
	out := filepath.Join(dir, "out.nif")

	ctx, cancel := testContext().WithCancel()
	cancel()

	_, err := Handle(ctx, &Request{Mode: ModePrune, InputPath: in, OutputPath: out, SortBlocks: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, app.ErrCodeSave, app.CodeOf(err))
	assert.NoFileExists(t, out)
}

func TestFirstDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{"equal", []byte{1, 2, 3}, []byte{1, 2, 3}, -1},
		{"both empty", nil, nil, -1},
		{"middle", []byte{1, 2, 3}, []byte{1, 9, 3}, 1},
		{"shorter", []byte{1, 2}, []byte{1, 2, 3}, 2},
		{"longer", []byte{1, 2, 3}, []byte{1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstDiff(tt.a, tt.b))
		})
	}
}
