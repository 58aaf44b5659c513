package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0644))

	info, err := GetFileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size)
	assert.NotZero(t, info.Inode)
	assert.NotZero(t, info.ModTime)

	again, err := GetFileInfo(path)
	require.NoError(t, err)
	assert.True(t, info.Same(again))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	changed, err := GetFileInfo(path)
	require.NoError(t, err)
	assert.False(t, info.Same(changed))
}

func TestGetFileInfoMissing(t *testing.T) {
	_, err := GetFileInfo(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCalculateFileFingerprint(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("same content"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("same content"), 0644))

	fa, err := CalculateFileFingerprint(a)
	require.NoError(t, err)
	fb, err := CalculateFileFingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 8)

	require.NoError(t, os.WriteFile(b, []byte("other content"), 0644))
	fb2, err := CalculateFileFingerprint(b)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb2)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	fe, err := CalculateFileFingerprint(empty)
	require.NoError(t, err)
	assert.Equal(t, "00000000", fe)
}
