package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bamsammich/dirsync/internal/stats"
)

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Summary builds the one-line run summary printed on exit.
// Format: done ✓  ticks 12  created 3  copied 1  deleted 2  size 1.2 KiB  time 1m 02s  errors 0
func Summary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.TicksFailed > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  ticks %s  created %s  copied %s  deleted %s  size %s  time %s",
		icon,
		FormatCount(snap.Ticks),
		FormatCount(snap.Created),
		FormatCount(snap.Copied),
		FormatCount(snap.Deleted),
		FormatBytes(snap.BytesCopied),
		FormatDuration(snap.Elapsed),
	)

	if snap.FilesVerified > 0 {
		base += fmt.Sprintf("  verified %s", FormatCount(snap.FilesVerified))
	}

	return base + fmt.Sprintf("  errors %d", snap.TicksFailed)
}
