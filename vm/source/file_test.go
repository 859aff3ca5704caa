package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRemoveReplace(t *testing.T) {
	f := NewFile()
	f.Append("a")
	f.Append("c")
	require.NoError(t, f.Insert(1, "b"))
	assert.Equal(t, []string{"a", "b", "c"}, f.All())

	require.NoError(t, f.Replace(2, "C"))
	assert.Equal(t, []string{"a", "b", "C"}, f.All())

	require.NoError(t, f.Remove(1))
	assert.Equal(t, []string{"a", "C"}, f.All())
}

func TestOutOfRangeOperations(t *testing.T) {
	f := NewFile()
	f.Append("only")

	_, err := f.Line(5)
	assert.Error(t, err)
	assert.Error(t, f.Remove(5))
	assert.Error(t, f.Replace(5, "x"))
	assert.Error(t, f.Insert(5, "x"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.swl")
	f := NewFile()
	f.Append("loadi r0 10")
	f.Append("stop")

	require.NoError(t, f.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.All(), loaded.All())
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.swl")
	require.NoError(t, NewFile().Save(path))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Lines())
}
