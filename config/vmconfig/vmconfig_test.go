package vmconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.EqualValues(t, 64*1024, cfg.Memory.DefaultSize)
	assert.EqualValues(t, 4, cfg.Interrupts.MaxNesting)
	assert.Empty(t, cfg.Assembler.IncludePaths)
	assert.False(t, cfg.Debug.TraceCycles)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vm.toml")

	cfg := DefaultConfig()
	cfg.Memory.DefaultSize = 128 * 1024
	cfg.Interrupts.MaxNesting = 8
	cfg.Assembler.IncludePaths = []string{"lib", "include"}
	cfg.Debug.TraceInterrupts = true

	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
