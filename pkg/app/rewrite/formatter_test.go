package rewrite

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		response Response
		want     []string
		wantErr  bool
	}{
		{
			name:     "roundtrip identical",
			format:   "table",
			response: Response{Mode: ModeRoundTrip, InputPath: "a.nif", BlocksBefore: 3, BytesIn: 100, BytesOut: 100, Identical: true, FirstDiff: -1},
			want:     []string{"a.nif: 3 blocks, 100 bytes in, 100 bytes out", "byte-identical"},
		},
		{
			name:     "roundtrip differs",
			format:   "table",
			response: Response{Mode: ModeRoundTrip, InputPath: "a.nif", FirstDiff: 42, OutputPath: "b.nif"},
			want:     []string{"differs from offset 42", "Wrote b.nif"},
		},
		{
			name:     "prune",
			format:   "table",
			response: Response{Mode: ModePrune, InputPath: "a.nif", OutputPath: "b.nif", BlocksBefore: 5, BlocksAfter: 3},
			want:     []string{"deleted 2 of 5 blocks", "Wrote b.nif"},
		},
		{
			name:     "create",
			format:   "table",
			response: Response{Mode: ModeCreate, OutputPath: "new.nif", Version: "20.2.0.7", BytesOut: 300},
			want:     []string{"Created new.nif, version 20.2.0.7 (300 bytes)"},
		},
		{
			name:     "json",
			format:   "json",
			response: Response{Mode: ModePrune, BlocksBefore: 5},
			want:     []string{`"mode": "prune"`, `"blocks_before": 5`},
		},
		{
			name:     "yaml",
			format:   "yaml",
			response: Response{Mode: ModeCreate, Version: "20.2.0.7"},
			want:     []string{"mode: create", "version: 20.2.0.7"},
		},
		{
			name:    "unknown",
			format:  "csv",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, &tt.response, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}
