package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dirsync/internal/stats"
)

func TestConsoleBannerPlain(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false, 20)

	c.Banner("/src", "/dst", "/var/log/sync.log", 30*time.Second)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat("-", 20), lines[0])
	assert.Equal(t, "Syncing /src to /dst every 30 seconds. Logging to /var/log/sync.log", lines[1])
	assert.Equal(t, lines[0], lines[2])
	assert.NotContains(t, buf.String(), "\x1b[", "no escape codes when not styled")
}

func TestConsoleBannerLongIntervalHasNoSeparators(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, false, 10).Banner("/a", "/b", "/l", 3600*time.Second)
	assert.Contains(t, buf.String(), "every 3600 seconds.")
}

func TestConsoleRuleWidthCapped(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, false, 500).Prompt()
	assert.Equal(t, "PRESS ENTER TO EXIT...\n", buf.String())

	buf.Reset()
	NewConsole(&buf, false, 0).Exit(stats.Snapshot{})
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "done "))
	assert.Equal(t, "PROGRAM EXITING.", lines[1])
	assert.Equal(t, strings.Repeat("#", maxRuleWidth), lines[2])
}
