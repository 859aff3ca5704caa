package memory

import (
	"testing"

	"github.com/simpleworld/vm/vm/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryException(t *testing.T) {
	m := New(16 * 4)
	_, err := m.GetWord(15*4+1, true)
	require.Error(t, err)
	err = m.SetWord(15*4+1, 0, true)
	require.Error(t, err)
}

func TestMemoryIsZeroed(t *testing.T) {
	m := New(16 * 4)
	for i := uint32(0); i < 16*4; i += 4 {
		w, err := m.GetWord(i, true)
		require.NoError(t, err)
		assert.Zero(t, w)
	}
}

func TestMemoryWriteThenRead(t *testing.T) {
	m := New(16 * 4)
	for i := uint32(0); i < 16*4; i += 4 {
		require.NoError(t, m.SetWord(i, i, true))
	}
	for i := uint32(0); i < 16*4; i += 4 {
		w, err := m.GetWord(i, true)
		require.NoError(t, err)
		assert.Equal(t, i, w)
	}
}

func TestMemorySetBigEndianFalse(t *testing.T) {
	m := New(16 * 4)
	for i := uint32(0); i < 16*4; i += 4 {
		require.NoError(t, m.SetWord(i, word.ChangeByteOrder(i), false))
	}
	for i := uint32(0); i < 16*4; i += 4 {
		w, err := m.GetWord(i, true)
		require.NoError(t, err)
		assert.Equal(t, i, w)
	}
}

func TestMemoryGetBigEndianFalse(t *testing.T) {
	m := New(16 * 4)
	for i := uint32(0); i < 16*4; i += 4 {
		require.NoError(t, m.SetWord(i, i, true))
	}
	for i := uint32(0); i < 16*4; i += 4 {
		w, err := m.GetWord(i, false)
		require.NoError(t, err)
		assert.Equal(t, word.ChangeByteOrder(i), w)
	}
}

func TestMemoryGetNonAligned(t *testing.T) {
	m := New(2 * 4)
	require.NoError(t, m.SetWord(0, 0x01234567, true))
	require.NoError(t, m.SetWord(4, 0x89abcdef, true))

	w, err := m.GetWord(2, true)
	require.NoError(t, err)
	assert.EqualValues(t, 0x456789ab, w)
}

func TestMemorySetNonAligned(t *testing.T) {
	m := New(2 * 4)
	require.NoError(t, m.SetWord(0, 0x01234567, true))
	require.NoError(t, m.SetWord(2, 0xaabbccdd, true))

	w, err := m.GetWord(2, true)
	require.NoError(t, err)
	assert.EqualValues(t, 0xaabbccdd, w)
}

func TestResizeRoundsUpToMultipleOf4(t *testing.T) {
	m := New(1)
	assert.EqualValues(t, 4, m.Size())

	m.Resize(10)
	assert.EqualValues(t, 12, m.Size())
}

func TestResizePreservesContent(t *testing.T) {
	m := New(4)
	require.NoError(t, m.SetWord(0, 0xdeadbeef, true))
	m.Resize(8)
	w, err := m.GetWord(0, true)
	require.NoError(t, err)
	assert.EqualValues(t, 0xdeadbeef, w)
}
