package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// ParseSize parses a human-readable size string into bytes.
// Supports: 100, 100B, 100K, 100M, 100G, 100T (case-insensitive).
// Uses powers of 1024 (matching rsync behavior).
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	multiplier := int64(1)
	numStr := s[:len(s)-1]

	switch strings.ToUpper(s[len(s)-1:]) {
	case "B":
	case "K":
		multiplier = 1 << 10
	case "M":
		multiplier = 1 << 20
	case "G":
		multiplier = 1 << 30
	case "T":
		multiplier = 1 << 40
	default:
		numStr = s
	}

	if numStr == "" {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	if n, err := strconv.ParseInt(numStr, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid size: %q", s)
		}
		return n * multiplier, nil
	}

	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	return int64(f * float64(multiplier)), nil
}

// SizeValue is a pflag.Value holding a byte count parsed by ParseSize.
type SizeValue struct {
	bytes *int64
	raw   string
}

var _ pflag.Value = (*SizeValue)(nil)

// NewSizeValue returns a SizeValue that stores into p.
func NewSizeValue(p *int64) *SizeValue {
	return &SizeValue{bytes: p}
}

func (v *SizeValue) String() string { return v.raw }
func (*SizeValue) Type() string     { return "size" }

func (v *SizeValue) Set(s string) error {
	n, err := ParseSize(s)
	if err != nil {
		return err
	}
	*v.bytes = n
	v.raw = s
	return nil
}
