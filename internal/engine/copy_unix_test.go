//go:build unix

package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func assertNoStaging(t *testing.T, dir string) {
	t.Helper()
	for _, n := range names(t, dir) {
		assert.False(t, strings.HasSuffix(n, tmpSuffix), "staging entry left: %s", n)
	}
}

func TestTick_FifoAbortsTick(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, unix.Mkfifo(filepath.Join(f.src, "a_pipe"), 0o644))
	writeFile(t, filepath.Join(f.src, "b.txt"), "b")
	writeFile(t, filepath.Join(f.dst, "old.txt"), "o")

	res := f.syncer(t).Tick()
	require.ErrorIs(t, res.Err, ErrUnsupportedType)
	assert.Empty(t, res.Applied)

	assertNoStaging(t, f.dst)
	assert.Equal(t, []string{"old.txt"}, names(t, f.dst), "later creates and deletes are not applied")
	assert.Empty(t, f.logContent(t))
}

func TestTick_NestedFifoRemovesPartialDirectory(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.src, "a_dir", "first.txt"), "1")
	require.NoError(t, unix.Mkfifo(filepath.Join(f.src, "a_dir", "pipe"), 0o644))
	writeFile(t, filepath.Join(f.src, "b.txt"), "b")
	writeFile(t, filepath.Join(f.dst, "old.txt"), "o")

	res := f.syncer(t).Tick()
	require.ErrorIs(t, res.Err, ErrUnsupportedType)
	assert.Contains(t, res.Err.Error(), filepath.Join("a_dir", "pipe"))

	assertNoStaging(t, f.dst)
	assert.Equal(t, []string{"old.txt"}, names(t, f.dst))

	// Once the pipe is gone the next tick converges.
	require.NoError(t, os.Remove(filepath.Join(f.src, "a_dir", "pipe")))
	require.NoError(t, f.syncer(t).Tick().Err)
	assert.Equal(t, []string{"a_dir", "b.txt"}, names(t, f.dst))
	assert.FileExists(t, filepath.Join(f.dst, "a_dir", "first.txt"))
}
