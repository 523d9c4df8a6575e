package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFileAndToArray(t *testing.T) {
	v := ToFile(20, 2, 0, 7)
	assert.Equal(t, V20_2_0_7, v)
	assert.Equal(t, [4]uint8{20, 2, 0, 7}, ToArray(v))

	for _, known := range Known {
		a := ToArray(known)
		assert.Equal(t, known, ToFile(a[0], a[1], a[2], a[3]))
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		name string
		file FileVersion
		want string
	}{
		{"two part legacy", V3_1, "3.1"},
		{"three point three", V3_3_0_13, "3.3.0.13"},
		{"skyrim", V20_2_0_7, "20.2.0.7"},
		{"oblivion", V10_1_0_106, "10.1.0.106"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.file, 0, 0)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestSetFileRecomputesString(t *testing.T) {
	v := New(V20_0_0_5, 11, 11)
	v.SetFile(V20_2_0_7)
	assert.Equal(t, "20.2.0.7", v.String())
}

func TestParseFileVersion(t *testing.T) {
	v, err := ParseFileVersion("20.2.0.7")
	require.NoError(t, err)
	assert.Equal(t, V20_2_0_7, v)

	v, err = ParseFileVersion("3.1")
	require.NoError(t, err)
	assert.Equal(t, V3_1, v)

	_, err = ParseFileVersion("20")
	assert.Error(t, err)

	_, err = ParseFileVersion("20.x.0.7")
	assert.Error(t, err)
}

func TestDialectPredicates(t *testing.T) {
	tests := []struct {
		name     string
		v        *NiVersion
		expected map[string]bool
	}{
		{"oblivion", Oblivion(), map[string]bool{"OB": true, "Bethesda": true}},
		{"oblivion 10.1.0.106", New(V10_1_0_106, 5, 5), map[string]bool{"OB": true, "Bethesda": true}},
		{"fallout 3", FO3(), map[string]bool{"FO3": true, "Bethesda": true}},
		{"skyrim", SK(), map[string]bool{"SK": true, "Bethesda": true}},
		{"skyrim se", SSE(), map[string]bool{"SSE": true, "Bethesda": true}},
		{"fallout 4", FO4(), map[string]bool{"FO4": true, "Bethesda": true}},
		{"fallout 4 upper", New(V20_2_0_7, 12, 139), map[string]bool{"FO4": true, "Bethesda": true}},
		{"fallout 76", FO76(), map[string]bool{"FO76": true, "Bethesda": true}},
		{"plain gamebryo", New(V20_2_0_7, 0, 0), map[string]bool{}},
		{"civ4", New(V20_0_0_4, 0, 0), map[string]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]bool{
				"OB":       tt.v.IsOB(),
				"FO3":      tt.v.IsFO3(),
				"SK":       tt.v.IsSK(),
				"SSE":      tt.v.IsSSE(),
				"FO4":      tt.v.IsFO4(),
				"FO76":     tt.v.IsFO76(),
				"Bethesda": tt.v.IsBethesda(),
			}
			for name, value := range got {
				assert.Equal(t, tt.expected[name], value, "Is%s()", name)
			}
		})
	}
}

func TestHeaderString(t *testing.T) {
	assert.Equal(t, "Gamebryo File Format, Version 20.2.0.7", SSE().HeaderString())
	assert.Equal(t, "NetImmerse File Format, Version 4.0.0.2", New(V4_0_0_2, 0, 0).HeaderString())

	nds := New(V20_3_0_9, 0, 0)
	nds.SetNDS(1)
	assert.Equal(t, "NDSNIF....@....@...., Version 20.3.0.9", nds.HeaderString())
}
