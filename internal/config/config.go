// Package config turns the command line into validated run options.
// There is no configuration file; everything comes from the arguments.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInterval is returned for a sync interval that is not a
// positive whole number of seconds.
var ErrInvalidInterval = errors.New("sync interval must be a positive whole number of seconds")

// Options holds the settings for one run.
type Options struct {
	Src      string
	Dst      string
	LogPath  string
	Interval time.Duration
	BWLimit  int64
	Verify   bool
	Verbose  bool
}

// FromArgs builds Options from the four positional arguments
// source, replica, interval seconds and log file.
func FromArgs(args []string) (Options, error) {
	if len(args) != 4 {
		return Options{}, fmt.Errorf("expected 4 arguments, got %d", len(args))
	}
	interval, err := ParseInterval(args[2])
	if err != nil {
		return Options{}, err
	}
	return Options{
		Src:      args[0],
		Dst:      args[1],
		Interval: interval,
		LogPath:  args[3],
	}, nil
}

// ParseInterval parses a whole number of seconds.
func ParseInterval(s string) (time.Duration, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	if n > math.MaxInt64/int64(time.Second) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidInterval, s)
	}
	return time.Duration(n) * time.Second, nil
}

// CheckDirs verifies that the source and replica exist and are
// directories.
func (o Options) CheckDirs() error {
	for _, d := range []struct{ role, path string }{
		{"source", o.Src},
		{"replica", o.Dst},
	} {
		info, err := os.Stat(d.path)
		if err != nil {
			return fmt.Errorf("%s folder %q: %w", d.role, d.path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s folder %q is not a directory", d.role, d.path)
		}
	}
	return nil
}
