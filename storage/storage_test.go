package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputCommit(t *testing.T) {
	name := filepath.Join(t.TempDir(), "response")
	out, err := Create(name, 8)
	require.NoError(t, err)
	defer out.Abort()

	_, err = out.WriteAt([]byte{1, 2}, 6)
	require.NoError(t, err)

	// nothing under the final name before commit
	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, out.Commit())
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, data)

	_, err = os.Stat(name + ".tmp")
	assert.True(t, os.IsNotExist(err))

	_, err = out.WriteAt([]byte{1}, 0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, out.Commit(), ErrClosed)
}

func TestOutputAbort(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "response")
	out, err := Create(name, 8)
	require.NoError(t, err)
	out.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateRefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "response")
	require.NoError(t, os.WriteFile(name, []byte{9}, 0o644))

	_, err := Create(name, 8)
	assert.ErrorIs(t, err, os.ErrExist)

	// the file appears while the output is being written
	other := filepath.Join(dir, "other")
	out, err := Create(other, 8)
	require.NoError(t, err)
	defer out.Abort()
	require.NoError(t, os.WriteFile(other, []byte{9}, 0o644))
	assert.ErrorIs(t, out.Commit(), os.ErrExist)

	for _, path := range []string{name, other} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{9}, data)
	}
	_, err = os.Stat(other + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestOpen(t *testing.T) {
	name := filepath.Join(t.TempDir(), "challenge")
	require.NoError(t, os.WriteFile(name, []byte{1, 2, 3, 4}, 0o644))

	in, err := Open(name, 4)
	require.NoError(t, err)
	defer in.Close()
	assert.Equal(t, int64(4), in.Size())

	buf := make([]byte, 2)
	_, err = in.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, buf)

	_, err = Open(name, 5)
	assert.ErrorIs(t, err, parameters.ErrSizeMismatch)
}

func TestBuffer(t *testing.T) {
	b := NewBuffer(4)
	_, err := b.WriteAt([]byte{7, 8}, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 7, 8, 0}, b.Bytes())

	_, err = b.WriteAt([]byte{1, 2}, 3)
	assert.ErrorIs(t, err, parameters.ErrOutOfRange)

	buf := make([]byte, 3)
	n, err := b.ReadAt(buf, 2)
	assert.Equal(t, 2, n)
	assert.Error(t, err)
}
