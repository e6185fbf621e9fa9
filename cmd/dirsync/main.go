package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/dirsync/internal/config"
	"github.com/bamsammich/dirsync/internal/engine"
	"github.com/bamsammich/dirsync/internal/oplog"
	"github.com/bamsammich/dirsync/internal/stats"
	"github.com/bamsammich/dirsync/internal/ui"
)

var version = "dev"

// env is the process surface run talks to. main fills it from the real
// process; tests substitute buffers.
type env struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive bool // stdin is a terminal: prompt shown, EOF also stops
	styled      bool // stdout is a terminal: colors on
	width       int
}

func main() {
	out := ui.Probe(os.Stdout)
	os.Exit(run(os.Args[1:], env{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: ui.Probe(os.Stdin).Interactive,
		styled:      out.Interactive,
		width:       out.Width,
	}))
}

func run(args []string, e env) int {
	var (
		opts        config.Options
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "dirsync [flags] <sourcePath> <replicaPath> <syncIntervalSeconds> <logFilePath>",
		Short: "Keep a replica folder's contents identical to a source folder",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			if len(args) != 4 {
				fmt.Fprintf(e.stderr, "Error: expected 4 arguments, got %d\n\n", len(args))
				fmt.Fprint(e.stderr, cmd.UsageString())
				return &exitError{code: 1}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(e.stdout, "dirsync %s\n", version)
				return nil
			}

			parsed, err := config.FromArgs(args)
			if err != nil {
				return err
			}
			parsed.BWLimit = opts.BWLimit
			parsed.Verify = opts.Verify
			parsed.Verbose = opts.Verbose
			opts = parsed

			if err := opts.CheckDirs(); err != nil {
				return err
			}

			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)

			return serve(cmd.Context(), opts, logger, e)
		},
	}

	rootCmd.SetArgs(args)
	rootCmd.SetIn(e.stdin)
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)

	f := rootCmd.Flags()
	f.BoolVar(&opts.Verify, "verify", false, "verify every copied file with a BLAKE3 checksum")
	f.Var(config.NewSizeValue(&opts.BWLimit), "bwlimit", "limit copy bandwidth per second (e.g. 100K, 1M, 1G)")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug-level diagnostics on stderr")
	f.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// serve runs the worker until the operator asks to stop, then prints the
// summary. A stop always lets the tick in progress finish.
func serve(parent context.Context, opts config.Options, logger *slog.Logger, e env) error {
	collector := stats.NewCollector()
	opLog := oplog.New(opts.LogPath, e.stdout)
	syncer, err := engine.New(engine.Config{
		Log:      opLog,
		Stats:    collector,
		Logger:   logger,
		Out:      e.stdout,
		Src:      opts.Src,
		Dst:      opts.Dst,
		Interval: opts.Interval,
		BWLimit:  opts.BWLimit,
		Verify:   opts.Verify,
	})
	if err != nil {
		return err
	}

	console := ui.NewConsole(e.stdout, e.styled, e.width)
	console.Banner(opts.Src, opts.Dst, opLog.Path(), opts.Interval)
	if e.interactive {
		console.Prompt()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	stopped := stopRequested(ctx, e)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		syncer.Run(ctx)
	}()

	<-stopped
	logger.Debug("stop requested; waiting for the current tick")
	cancel()
	wg.Wait()

	snap := collector.Snapshot()
	logger.Debug("sync stopped", "operations", snap.Operations(), "stats", snap.String())
	console.Exit(snap)
	return nil
}

// stopRequested returns a channel closed on SIGINT/SIGTERM or on a newline
// read from stdin.
func stopRequested(ctx context.Context, e env) <-chan struct{} {
	done := make(chan struct{})
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)

	var once sync.Once
	finish := func() {
		once.Do(func() {
			stop()
			close(done)
		})
	}

	go func() {
		<-sigCtx.Done()
		finish()
	}()

	go func() {
		_, err := bufio.NewReader(e.stdin).ReadString('\n')
		// A newline always stops. EOF stops only a terminal (Ctrl-D); an
		// exhausted pipe or /dev/null leaves signals as the only trigger.
		if err == nil || e.interactive {
			finish()
		}
	}()
	return done
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
