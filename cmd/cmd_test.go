package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/app/inspect"
)

// run executes nifkit with args and returns what it printed. Flags are reset
// first since the command tree is package state.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCreateInfoAndRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.nif")

	out, err := run(t, "create", path, "--game", "skyrim")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	out, err = run(t, "info", path, "-o", "json")
	require.NoError(t, err)
	var resp inspect.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "skyrim", resp.File.Game)
	assert.Equal(t, uint32(1), resp.File.NumBlocks)

	out, err = run(t, "blocks", path, "--type", "NiNode")
	require.NoError(t, err)
	assert.Contains(t, out, "Scene Root")

	out, err = run(t, "strings", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"Scene Root"`)

	out, err = run(t, "roundtrip", path)
	require.NoError(t, err)
	assert.Contains(t, out, "byte-identical")
}

func TestRoundTripMismatchFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.nif")
	_, err := run(t, "create", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, 0), 0o644))

	_, err = run(t, "roundtrip", path, "-q")
	require.Error(t, err)
	assert.Equal(t, app.ErrCodeMismatch, app.CodeOf(err))
}

func TestPruneRequiresDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.nif")
	_, err := run(t, "create", path)
	require.NoError(t, err)

	_, err = run(t, "prune", path)
	assert.Error(t, err)

	out, err := run(t, "prune", path, "--in-place")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 0 of 1 blocks")
}

func TestInvalidOutputFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.nif")
	_, err := run(t, "create", path)
	require.NoError(t, err)

	_, err = run(t, "info", path, "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, app.ErrCodeInvalidInput, app.CodeOf(err))
}

func TestConfigFileSetsDefaults(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "nifkit.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("output_format: yaml\ndefault_game: fo76\n"), 0o644))
	path := filepath.Join(dir, "new.nif")

	_, err := run(t, "--config", conf, "create", path)
	require.NoError(t, err)

	out, err := run(t, "--config", conf, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "game: fo76")
}
