package inspect

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testResponse() *Response {
	return &Response{
		File: FileInfo{
			Path:       "body.nif",
			Version:    "20.2.0.7",
			User:       12,
			Stream:     100,
			Game:       "sse",
			NumBlocks:  2,
			NumStrings: 2,
			Root:       &BlockRef{Index: 0, Type: "NiNode", Name: "Scene Root"},
			TypeCounts: []TypeCount{{Type: "BSTriShape", Count: 1}, {Type: "NiNode", Count: 1}},
		},
	}
}

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		response func() *Response
		wantErr  bool
		validate func(*testing.T, string)
	}{
		{
			name:     "table summary",
			format:   "table",
			response: testResponse,
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "Version:  20.2.0.7 (user 12, stream 100)")
				assert.Contains(t, output, "Root:     [0] NiNode 'Scene Root'")
				assert.Contains(t, output, "BSTriShape  1")
			},
		},
		{
			name:   "table blocks and strings",
			format: "table",
			response: func() *Response {
				r := testResponse()
				r.Blocks = []BlockResult{
					{BlockRef: BlockRef{Index: 0, Type: "NiNode", Name: "Scene Root"}, Size: 80, Children: []uint32{1}},
					{BlockRef: BlockRef{Index: 1, Type: "BSFoo"}, Size: 12, Unknown: true},
				}
				r.Strings = []string{"Scene Root", "Body"}
				return r
			},
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "INDEX")
				assert.Contains(t, output, "BSFoo (raw)")
				assert.Contains(t, output, `"Body"`)
				assert.NotContains(t, output, "COUNT")
			},
		},
		{
			name:     "json format",
			format:   "json",
			response: testResponse,
			validate: func(t *testing.T, output string) {
				var decoded Response
				require.NoError(t, json.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, "sse", decoded.File.Game)
				assert.Equal(t, "Scene Root", decoded.File.Root.Name)
			},
		},
		{
			name:     "yaml format",
			format:   "yaml",
			response: testResponse,
			validate: func(t *testing.T, output string) {
				var decoded map[string]any
				require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))
				assert.Contains(t, output, "num_blocks: 2")
				assert.Contains(t, output, "game: sse")
			},
		},
		{
			name:     "unknown format",
			format:   "xml",
			response: testResponse,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, tt.response(), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, buf.String())
		})
	}
}

func TestFormatBlockRef(t *testing.T) {
	assert.Equal(t, "[3] NiNode 'Arm'", FormatBlockRef(BlockRef{Index: 3, Type: "NiNode", Name: "Arm"}))
	assert.Equal(t, "[4] NiAlphaProperty", FormatBlockRef(BlockRef{Index: 4, Type: "NiAlphaProperty"}))
}
