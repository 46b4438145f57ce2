package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestIsMidiPath(t *testing.T) {
	assert.True(t, IsMidiPath("a/b/song.mid"))
	assert.True(t, IsMidiPath("SONG.MIDI"))
	assert.False(t, IsMidiPath("song.wav"))
	assert.False(t, IsMidiPath("mid"))
}

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mid"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "b.MIDI"))
	single := filepath.Join(t.TempDir(), "explicit.bin")
	touch(t, single)

	paths, err := GatherAllMidiPaths([]string{dir, single}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mid"),
		filepath.Join(dir, "sub", "b.MIDI"),
		single,
	}, paths)

	paths, err = GatherAllMidiPaths([]string{dir, single}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.mid")}, paths)
}

func TestGatherAllMidiPathsMissing(t *testing.T) {
	_, err := GatherAllMidiPaths([]string{filepath.Join(t.TempDir(), "nope")}, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSum(t *testing.T) {
	assert.Equal(t, uint64(0), Sum([]int{}))
	assert.Equal(t, uint64(6), Sum([]uint8{1, 2, 3}))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "tracks", Pluralize(0, "track", "tracks"))
	assert.Equal(t, "track", Pluralize(1, "track", "tracks"))
	assert.Equal(t, "tracks", Pluralize(uint(2), "track", "tracks"))
}
