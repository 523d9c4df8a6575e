package inspect

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/nif"
	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

func testContext() (*app.Context, *bytes.Buffer) {
	var log bytes.Buffer
	ctx := app.NewContext()
	ctx.Out = &bytes.Buffer{}
	ctx.Err = &log
	return ctx, &log
}

// writeTestFile saves a Skyrim SE file with two named children and one
// orphaned node.
func writeTestFile(t *testing.T) string {
	t.Helper()
	f := nif.Create(version.SSE())
	for _, name := range []string{"Arm", "Leg"} {
		n := &blocks.NiNode{}
		n.Name.Set(name)
		f.AddChild(f.Root(), n)
	}
	orphan := &blocks.NiNode{}
	orphan.Name.Set("Orphan")
	f.Header().AddBlock(orphan)

	path := filepath.Join(t.TempDir(), "test.nif")
	require.NoError(t, f.SaveFile(path))
	return path
}

func TestHandle(t *testing.T) {
	path := writeTestFile(t)

	tests := []struct {
		name     string
		request  *Request
		wantErr  bool
		validate func(*testing.T, *Response)
	}{
		{
			name:    "summary only",
			request: &Request{Path: path},
			validate: func(t *testing.T, resp *Response) {
				assert.Equal(t, "20.2.0.7", resp.File.Version)
				assert.Equal(t, uint32(12), resp.File.User)
				assert.Equal(t, uint32(100), resp.File.Stream)
				assert.Equal(t, "sse", resp.File.Game)
				assert.Equal(t, uint32(4), resp.File.NumBlocks)
				assert.Equal(t, uint32(4), resp.File.NumStrings)
				assert.Zero(t, resp.File.UnknownBlocks)
				assert.Greater(t, resp.File.Size, int64(0))
				require.NotNil(t, resp.File.Root)
				assert.Equal(t, BlockRef{Index: 0, Type: "NiNode", Name: "Scene Root"}, *resp.File.Root)
				assert.Equal(t, []TypeCount{{Type: "NiNode", Count: 4}}, resp.File.TypeCounts)
				assert.Empty(t, resp.Blocks)
				assert.Empty(t, resp.Strings)
			},
		},
		{
			name:    "blocks and strings",
			request: &Request{Path: path, ShowBlocks: true, ShowStrings: true},
			validate: func(t *testing.T, resp *Response) {
				require.Len(t, resp.Blocks, 4)
				assert.Equal(t, "Scene Root", resp.Blocks[0].Name)
				assert.Equal(t, []uint32{1, 2}, resp.Blocks[0].Children)
				assert.Equal(t, "Orphan", resp.Blocks[3].Name)
				for _, b := range resp.Blocks {
					assert.Greater(t, b.Size, uint32(0))
				}
				assert.Equal(t, []string{"Scene Root", "Arm", "Leg", "Orphan"}, resp.Strings)
			},
		},
		{
			name:    "name pattern",
			request: &Request{Path: path, ShowBlocks: true, NamePattern: "?rm"},
			validate: func(t *testing.T, resp *Response) {
				require.Len(t, resp.Blocks, 1)
				assert.Equal(t, uint32(1), resp.Blocks[0].Index)
			},
		},
		{
			name:    "type filter",
			request: &Request{Path: path, ShowBlocks: true, TypeFilter: "BSTriShape"},
			validate: func(t *testing.T, resp *Response) {
				assert.Empty(t, resp.Blocks)
			},
		},
		{
			name:    "missing file",
			request: &Request{Path: filepath.Join(t.TempDir(), "missing.nif")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext()
			resp, err := Handle(ctx, tt.request)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, resp)
		})
	}
}

func TestHandleLoadFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.nif")
	require.NoError(t, writeFile(path, []byte("not a nif file at all\n")))

	ctx, _ := testContext()
	_, err := Handle(ctx, &Request{Path: path})
	require.Error(t, err)
	assert.Equal(t, app.ErrCodeLoad, app.CodeOf(err))
	assert.Equal(t, nif.StatusInvalidHeader, nif.StatusOf(err))
	assert.Contains(t, err.Error(), "invalid header")
}

func TestHandleVerboseLogging(t *testing.T) {
	path := writeTestFile(t)

	ctx, log := testContext()
	ctx.Verbose = true
	_, err := Handle(ctx, &Request{Path: path})
	require.NoError(t, err)
	assert.Contains(t, log.String(), "Loaded 4 blocks")

	ctx, log = testContext()
	ctx.Verbose = true
	ctx.Quiet = true
	_, err = Handle(ctx, &Request{Path: path})
	require.NoError(t, err)
	assert.Empty(t, log.String())
}

func TestDescribeOldVersion(t *testing.T) {
	f := nif.Create(version.New(version.V10_0_1_0, 0, 0))
	resp := Describe(f, &Request{Path: "mem", ShowBlocks: true})

	assert.Empty(t, resp.File.Game)
	assert.Equal(t, uint32(0), resp.File.NumStrings)
	require.Len(t, resp.Blocks, 1)
	assert.Zero(t, resp.Blocks[0].Size)
}
