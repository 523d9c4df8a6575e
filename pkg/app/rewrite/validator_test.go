package rewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/app"
)

func TestRequestValidate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.nif")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0o644))
	out := filepath.Join(dir, "b.nif")

	tests := []struct {
		name     string
		request  Request
		wantCode string
	}{
		{"roundtrip", Request{Mode: ModeRoundTrip, InputPath: in}, ""},
		{"roundtrip missing input", Request{Mode: ModeRoundTrip, InputPath: out}, app.ErrCodeFileAccess},
		{"prune", Request{Mode: ModePrune, InputPath: in, OutputPath: out}, ""},
		{"prune without output", Request{Mode: ModePrune, InputPath: in}, app.ErrCodeInvalidInput},
		{"create", Request{Mode: ModeCreate, OutputPath: out, Game: "sse"}, ""},
		{"create bad game", Request{Mode: ModeCreate, OutputPath: out, Game: "daggerfall"}, app.ErrCodeInvalidInput},
		{"create without output", Request{Mode: ModeCreate, Game: "sse"}, app.ErrCodeInvalidInput},
		{"unknown mode", Request{Mode: "convert", InputPath: in}, app.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, app.CodeOf(err))
		})
	}
}
