// Package engine keeps a replica directory's top-level name set equal to a
// source directory's, one tick at a time.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bamsammich/dirsync/internal/oplog"
	"github.com/bamsammich/dirsync/internal/stats"
)

// StatusSynced is printed after every tick that completes without error.
const StatusSynced = "Folders are synced."

// Config describes a sync run.
type Config struct {
	Log      *oplog.Logger
	Stats    *stats.Collector
	Logger   *slog.Logger
	Out      io.Writer // status lines; defaults to os.Stdout
	Src      string
	Dst      string
	Interval time.Duration
	BWLimit  int64 // bytes per second, 0 = unlimited
	Verify   bool
}

func (c Config) validate() error {
	switch {
	case c.Src == "":
		return errors.New("source directory not set")
	case c.Dst == "":
		return errors.New("replica directory not set")
	case c.Interval <= 0:
		return fmt.Errorf("sync interval must be positive, got %s", c.Interval)
	case c.Log == nil:
		return errors.New("operation log not set")
	case c.BWLimit < 0:
		return fmt.Errorf("bandwidth limit must not be negative, got %d", c.BWLimit)
	}
	return nil
}

// TickResult is the outcome of one tick. Applied lists the operations that
// completed, in order, before Err (if any) stopped the tick.
type TickResult struct {
	Err     error
	Plan    Plan
	Applied []oplog.Entry
}

// Syncer runs ticks against one source/replica pair. It is the only writer
// of the replica and of the operation log; it is not safe for concurrent use.
type Syncer struct {
	limiter *bandwidthLimit
	logger  *slog.Logger
	out     io.Writer
	stats   *stats.Collector
	cfg     Config
}

// New validates cfg and returns a Syncer.
func New(cfg Config) (*Syncer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Syncer{
		cfg:    cfg,
		logger: cfg.Logger,
		out:    cfg.Out,
		stats:  cfg.Stats,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.stats == nil {
		s.stats = &stats.Collector{}
	}
	if cfg.BWLimit > 0 {
		s.limiter = newBandwidthLimit(cfg.BWLimit)
	}
	return s, nil
}

// Run validates cfg and syncs until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}
	s.Run(ctx)
	return nil
}

// Run ticks until ctx is cancelled. Cancellation is observed only between
// ticks: a tick in progress always runs to completion. Tick failures are
// reported and retried on the next tick; they never end the loop.
func (s *Syncer) Run(ctx context.Context) {
	s.logger.Debug("sync loop started",
		"src", s.cfg.Src,
		"dst", s.cfg.Dst,
		"interval", s.cfg.Interval,
	)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			s.logger.Debug("sync loop stopped")
			return
		}

		s.report(s.Tick())

		timer.Reset(s.cfg.Interval)
		select {
		case <-ctx.Done():
			s.logger.Debug("sync loop stopped")
			return
		case <-timer.C:
		}
	}
}

// report is the tick-level failure handler.
func (s *Syncer) report(res TickResult) {
	s.stats.AddTick()
	if res.Err != nil {
		s.stats.AddTickFailed()
		s.logger.Error("error during synchronization",
			"error", res.Err,
			"applied", len(res.Applied),
		)
		return
	}
	fmt.Fprintln(s.out, StatusSynced)
}

// Tick performs one list → diff → apply → log cycle. The first failure ends
// the tick; whatever was not applied shows up again in the next diff.
func (s *Syncer) Tick() TickResult {
	var res TickResult

	src, err := ReadSnapshot(s.cfg.Src)
	if err != nil {
		res.Err = fmt.Errorf("source: %w", err)
		return res
	}
	dst, err := ReadSnapshot(s.cfg.Dst)
	if err != nil {
		res.Err = fmt.Errorf("replica: %w", err)
		return res
	}

	res.Plan = Diff(src, dst)
	s.logger.Debug("sync plan",
		"create", len(res.Plan.Create)-res.Plan.Copies(),
		"copy", res.Plan.Copies(),
		"delete", len(res.Plan.Delete),
	)
	if res.Plan.Empty() {
		return res
	}

	for _, a := range res.Plan.Create {
		srcPath := filepath.Join(s.cfg.Src, a.Name)
		dstPath := filepath.Join(s.cfg.Dst, a.Name)

		counts, err := s.copyEntry(srcPath, dstPath)
		if err != nil {
			res.Err = err
			return res
		}
		s.stats.AddBytesCopied(counts.bytes)
		s.stats.AddFilesVerified(counts.verified)

		if err := s.record(&res, a.Op, srcPath, dstPath); err != nil {
			res.Err = err
			return res
		}
	}

	for _, name := range res.Plan.Delete {
		dstPath := filepath.Join(s.cfg.Dst, name)

		if err := removeEntry(dstPath); err != nil {
			res.Err = err
			return res
		}
		if err := s.record(&res, oplog.Delete, "", dstPath); err != nil {
			res.Err = err
			return res
		}
	}

	return res
}

// record writes the operation log entry for an applied change.
func (s *Syncer) record(res *TickResult, op oplog.Operation, src, dst string) error {
	if err := s.cfg.Log.Log(op, src, dst); err != nil {
		return err
	}
	res.Applied = append(res.Applied, oplog.Entry{Op: op, Src: src, Dst: dst})

	switch op {
	case oplog.Create:
		s.stats.AddCreated(1)
	case oplog.Copy:
		s.stats.AddCopied(1)
	case oplog.Delete:
		s.stats.AddDeleted(1)
	}
	return nil
}
