package engine

import (
	"fmt"
	"os"
	"sort"
)

// Snapshot is the set of immediate entry names of a directory at one
// instant.
type Snapshot map[string]struct{}

// ReadSnapshot lists the immediate children of dir. Nothing below the top
// level is read.
func ReadSnapshot(dir string) (Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	snap := make(Snapshot, len(entries))
	for _, e := range entries {
		snap[e.Name()] = struct{}{}
	}
	return snap, nil
}

// NewSnapshot builds a Snapshot from names.
func NewSnapshot(names ...string) Snapshot {
	snap := make(Snapshot, len(names))
	for _, n := range names {
		snap[n] = struct{}{}
	}
	return snap
}

// Has reports whether name is in the snapshot.
func (s Snapshot) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Minus returns the names in s that are not in other, sorted.
func (s Snapshot) Minus(other Snapshot) []string {
	var out []string
	for name := range s {
		if !other.Has(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Names returns every name in the snapshot, sorted.
func (s Snapshot) Names() []string {
	return s.Minus(nil)
}
