package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForGame(t *testing.T) {
	for _, name := range Games {
		v, err := ForGame(name)
		require.NoError(t, err, name)
		assert.True(t, v.IsBethesda(), name)
		assert.Equal(t, name, v.Game())
	}

	v, err := ForGame("SkyrimSE")
	require.NoError(t, err)
	assert.True(t, v.IsSSE())

	_, err = ForGame("morrowind")
	assert.Error(t, err)
}

func TestGameOfPlainFile(t *testing.T) {
	assert.Empty(t, New(V20_2_0_7, 0, 0).Game())
	assert.Empty(t, New(V4_0_0_2, 0, 0).Game())
}
