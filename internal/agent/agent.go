// Package agent runs the polling loop that supervises the target process.
//
// Each tick looks the target up once. A found process is sampled, checked
// against the memory threshold and, when the snapshot interval has elapsed,
// recorded in a Snapshot report. A missing process is recorded immediately
// in a Crash report, after which the loop waits out the crash cooldown
// before polling resumes. All work happens on the caller's goroutine.
package agent

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"golang.org/x/term"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
	"github.com/hugo-lorenzo-mato/sreagent/internal/logging"
	"github.com/hugo-lorenzo-mato/sreagent/internal/report"
	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
	"github.com/hugo-lorenzo-mato/sreagent/internal/watcher"
)

// ProcessWatcher finds and samples the target process.
type ProcessWatcher interface {
	Find(ctx context.Context, target string) (watcher.Handle, bool, error)
	Sample(ctx context.Context, h watcher.Handle) watcher.Sample
}

// ReportBuilder assembles reports.
type ReportBuilder interface {
	Build(ctx context.Context, kind report.Kind, sample *watcher.Sample) report.Report
}

// ReportWriter persists reports.
type ReportWriter interface {
	Persist(r report.Report) (string, error)
}

// Options configures the loop.
type Options struct {
	Target           string
	MemThresholdMB   float64
	PollInterval     time.Duration
	SnapshotInterval time.Duration
	CrashCooldown    time.Duration

	// LaunchInspector starts Inspector after a crash when stdin is a terminal.
	LaunchInspector bool
	Inspector       string
}

// Stats counts what the loop has done so far.
type Stats struct {
	Ticks     int
	Snapshots int
	Crashes   int
	Warnings  int
}

// Agent is the scheduler.
type Agent struct {
	opts    Options
	watcher ProcessWatcher
	builder ReportBuilder
	writer  ReportWriter
	tools   tools.Availability
	logger  *logging.Logger

	machine      *Machine
	lastSnapshot time.Time
	stats        Stats

	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	isTTY   func() bool
	inspect func(ctx context.Context, path string) error
}

// New creates an agent.
func New(opts Options, w ProcessWatcher, b ReportBuilder, rw ReportWriter, avail tools.Availability, logger *logging.Logger) *Agent {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Agent{
		opts:    opts,
		watcher: w,
		builder: b,
		writer:  rw,
		tools:   avail,
		logger:  logger.WithTarget(opts.Target),
		machine: NewMachine(),
		now:     time.Now,
		sleep:   sleepContext,
		isTTY:   stdinIsTerminal,
		inspect: runInspector,
	}
}

// State returns the current scheduler state.
func (a *Agent) State() State {
	return a.machine.State()
}

// Stats returns the counters accumulated so far.
func (a *Agent) Stats() Stats {
	return a.stats
}

// Run polls until ctx is cancelled. Cancellation is a clean stop and
// returns nil. The only error returned is a Snapshot report that could not
// be built or written.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("agent started",
		"poll_interval", a.opts.PollInterval,
		"snapshot_interval", a.opts.SnapshotInterval,
		"crash_cooldown", a.opts.CrashCooldown,
		"memory_threshold_mb", a.opts.MemThresholdMB,
	)

	for {
		if ctx.Err() != nil {
			a.stopped()
			return nil
		}

		if err := a.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				a.stopped()
				return nil
			}
			return err
		}

		if err := a.sleep(ctx, a.opts.PollInterval); err != nil {
			a.stopped()
			return nil
		}
	}
}

func (a *Agent) stopped() {
	a.logger.Info("agent stopped",
		"ticks", a.stats.Ticks,
		"snapshots", a.stats.Snapshots,
		"crashes", a.stats.Crashes,
	)
}

// Tick performs one poll. A crash tick includes the cooldown wait; if ctx
// is cancelled during it the context error is returned. Lookup, sampling and
// report writing run to completion once the tick has started.
func (a *Agent) Tick(ctx context.Context) error {
	a.stats.Ticks++
	work := context.WithoutCancel(ctx)

	h, found, err := a.watcher.Find(work, a.opts.Target)
	if err != nil {
		// Without a process table there is no evidence either way.
		a.logger.Warn("process table unavailable, skipping poll", "error", err)
		return nil
	}

	if found {
		if _, err := a.machine.Fire(EventTickFound); err != nil {
			return err
		}
		return a.onFound(work, h)
	}

	if _, err := a.machine.Fire(EventTickAbsent); err != nil {
		return err
	}
	a.onCrash(ctx)

	if err := a.sleep(ctx, a.opts.CrashCooldown); err != nil {
		return err
	}
	_, err = a.machine.Fire(EventCooldownElapsed)
	return err
}

func (a *Agent) onFound(ctx context.Context, h watcher.Handle) error {
	now := a.now()
	sample := a.watcher.Sample(ctx, h)

	if sample.ExceedsMemory(a.opts.MemThresholdMB) {
		a.stats.Warnings++
		a.logger.Warn("memory usage high",
			"pid", sample.PID,
			"rss_mb", fmt.Sprintf("%.1f", sample.RSSMB),
			"threshold_mb", a.opts.MemThresholdMB,
		)
	}

	if !a.snapshotDue(now) {
		return nil
	}

	path, err := a.persist(ctx, report.KindSnapshot, &sample)
	if err != nil {
		return fmt.Errorf("writing snapshot report: %w", err)
	}
	a.lastSnapshot = now
	a.stats.Snapshots++
	a.logger.Info("snapshot saved", "path", path, "pid", sample.PID)
	return nil
}

func (a *Agent) snapshotDue(now time.Time) bool {
	return a.lastSnapshot.IsZero() || now.Sub(a.lastSnapshot) >= a.opts.SnapshotInterval
}

func (a *Agent) onCrash(ctx context.Context) {
	a.stats.Crashes++
	a.logger.Error("crash detected: target process not running")

	path, err := a.persist(ctx, report.KindCrash, nil)
	if err != nil {
		a.logger.Error("failed to write crash report", "error", err)
	} else {
		a.logger.Info("crash report saved", "path", path)
	}

	a.maybeInspect(ctx)
}

// persist builds and writes one report. A panic while building or writing
// is converted to an error. The build does not observe cancellation of ctx,
// so a stop request never truncates a report; each probe command is still
// bounded by its own timeout.
func (a *Agent) persist(ctx context.Context, kind report.Kind, sample *watcher.Sample) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.ErrState(core.CodeReportPanic, fmt.Sprintf("%s report panicked: %v", kind, r))
		}
	}()

	rep := a.builder.Build(context.WithoutCancel(ctx), kind, sample)
	log := a.logger.WithReport(string(rep.Kind), rep.ID)
	log.Debug("report built", "running", rep.Running())
	if rep.LogErr != nil {
		if core.IsCategory(rep.LogErr, core.ErrCatNotFound) {
			log.Debug("application log missing", "error", rep.LogErr)
		} else {
			log.Warn("application log unreadable", "error", rep.LogErr)
		}
	}

	return a.writer.Persist(rep)
}

func (a *Agent) maybeInspect(ctx context.Context) {
	if !a.opts.LaunchInspector || !a.isTTY() {
		return
	}
	path, ok := a.tools.Path(a.opts.Inspector)
	if !ok {
		a.logger.Warn("inspector not installed", "inspector", a.opts.Inspector)
		return
	}

	a.logger.Info("launching inspector", "inspector", a.opts.Inspector)
	if err := a.inspect(ctx, path); err != nil {
		a.logger.Warn("inspector exited with error", "inspector", a.opts.Inspector, "error", err)
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func runInspector(ctx context.Context, path string) error {
	// #nosec G204 -- path is resolved from the configured tool list
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
