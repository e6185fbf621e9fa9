package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks sync statistics for the lifetime of a run using
// lock-free atomic counters. The zero value is usable; NewCollector also
// stamps the start time.
type Collector struct {
	ticks         atomic.Int64
	ticksFailed   atomic.Int64
	created       atomic.Int64
	copied        atomic.Int64
	deleted       atomic.Int64
	bytesCopied   atomic.Int64
	filesVerified atomic.Int64
	startTime     time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	Ticks         int64
	TicksFailed   int64
	Created       int64
	Copied        int64
	Deleted       int64
	BytesCopied   int64
	FilesVerified int64
	Elapsed       time.Duration
}

func (c *Collector) AddTick()                 { c.ticks.Add(1) }
func (c *Collector) AddTickFailed()           { c.ticksFailed.Add(1) }
func (c *Collector) AddCreated(n int64)       { c.created.Add(n) }
func (c *Collector) AddCopied(n int64)        { c.copied.Add(n) }
func (c *Collector) AddDeleted(n int64)       { c.deleted.Add(n) }
func (c *Collector) AddBytesCopied(n int64)   { c.bytesCopied.Add(n) }
func (c *Collector) AddFilesVerified(n int64) { c.filesVerified.Add(n) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Ticks:         c.ticks.Load(),
		TicksFailed:   c.ticksFailed.Load(),
		Created:       c.created.Load(),
		Copied:        c.copied.Load(),
		Deleted:       c.deleted.Load(),
		BytesCopied:   c.bytesCopied.Load(),
		FilesVerified: c.filesVerified.Load(),
		Elapsed:       c.Elapsed(),
	}
}

// Elapsed returns time since collector creation, or zero for a collector
// that was not created with NewCollector.
func (c *Collector) Elapsed() time.Duration {
	if c.startTime.IsZero() {
		return 0
	}
	return time.Since(c.startTime)
}

// Operations returns the number of replica changes applied.
func (s Snapshot) Operations() int64 {
	return s.Created + s.Copied + s.Deleted
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"ticks=%d failed=%d created=%d copied=%d deleted=%d bytes=%d verified=%d",
		s.Ticks, s.TicksFailed, s.Created, s.Copied, s.Deleted,
		s.BytesCopied, s.FilesVerified,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
