package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deploymenttheory/go-nif/pkg/app"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func TestRequestValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.nif")
	if err := writeFile(path, []byte("x")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		request  Request
		wantCode string
	}{
		{"valid", Request{Path: path}, ""},
		{"valid with filters", Request{Path: path, ShowBlocks: true, TypeFilter: "NiNode", NamePattern: "Bip*"}, ""},
		{"empty path", Request{}, app.ErrCodeInvalidInput},
		{"missing file", Request{Path: filepath.Join(dir, "b.nif")}, app.ErrCodeFileAccess},
		{"directory", Request{Path: dir}, app.ErrCodeInvalidInput},
		{"bad pattern", Request{Path: path, ShowBlocks: true, NamePattern: "[a"}, app.ErrCodeInvalidInput},
		{"filter without blocks", Request{Path: path, TypeFilter: "NiNode"}, app.ErrCodeInvalidInput},
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
