package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dirsync/internal/config"
)

func TestFromArgs(t *testing.T) {
	opts, err := config.FromArgs([]string{"/src", "/dst", "15", "/tmp/sync.log"})
	require.NoError(t, err)
	assert.Equal(t, config.Options{
		Src:      "/src",
		Dst:      "/dst",
		Interval: 15 * time.Second,
		LogPath:  "/tmp/sync.log",
	}, opts)
}

func TestFromArgs_WrongCount(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"/src"},
		{"/src", "/dst", "5"},
		{"/src", "/dst", "5", "/log", "extra"},
	} {
		_, err := config.FromArgs(args)
		assert.Error(t, err, "args %q", args)
	}
}

func TestParseInterval(t *testing.T) {
	for in, want := range map[string]time.Duration{
		"1":    time.Second,
		"60":   time.Minute,
		" 10 ": 10 * time.Second,
		"+3":   3 * time.Second,
	} {
		got, err := config.ParseInterval(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}
}

func TestParseIntervalErrors(t *testing.T) {
	for _, in := range []string{"", "0", "-5", "1.5", "ten", "5s", "99999999999999999999"} {
		_, err := config.ParseInterval(in)
		assert.ErrorIs(t, err, config.ErrInvalidInterval, "input %q", in)
	}
}

func TestCheckDirs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	file := filepath.Join(dir, "file")
	require.NoError(t, os.Mkdir(src, 0o755))
	require.NoError(t, os.Mkdir(dst, 0o755))
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.NoError(t, config.Options{Src: src, Dst: dst}.CheckDirs())

	err := config.Options{Src: filepath.Join(dir, "missing"), Dst: dst}.CheckDirs()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "source")

	err = config.Options{Src: src, Dst: filepath.Join(dir, "missing")}.CheckDirs()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "replica")

	err = config.Options{Src: src, Dst: file}.CheckDirs()
	assert.ErrorContains(t, err, "not a directory")
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"100", 100},
		{"100B", 100},
		{"100b", 100},
		{"100K", 102400},
		{"100k", 102400},
		{"1M", 1048576},
		{"1G", 1073741824},
		{"1T", 1099511627776},
		{"1.5G", 1610612736},
		{"0.5M", 524288},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := config.ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSizeErrors(t *testing.T) {
	for _, input := range []string{"", "abc", "K", "notanumber G", "-1M", "-5"} {
		t.Run(input, func(t *testing.T) {
			_, err := config.ParseSize(input)
			assert.Error(t, err)
		})
	}
}

func TestSizeValue(t *testing.T) {
	var n int64
	v := config.NewSizeValue(&n)
	assert.Equal(t, "size", v.Type())

	require.NoError(t, v.Set("2M"))
	assert.Equal(t, int64(2<<20), n)
	assert.Equal(t, "2M", v.String())

	assert.Error(t, v.Set("bogus"))
	assert.Equal(t, int64(2<<20), n, "failed Set leaves the value alone")
}
