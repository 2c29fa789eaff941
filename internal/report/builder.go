package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
	"github.com/hugo-lorenzo-mato/sreagent/internal/diagnostics"
	"github.com/hugo-lorenzo-mato/sreagent/internal/fsutil"
	"github.com/hugo-lorenzo-mato/sreagent/internal/logging"
	"github.com/hugo-lorenzo-mato/sreagent/internal/probe"
	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
	"github.com/hugo-lorenzo-mato/sreagent/internal/watcher"
)

// HostCollector supplies host-wide health.
type HostCollector interface {
	Collect(ctx context.Context) diagnostics.HostMetrics
}

// BuilderConfig holds the static inputs of every report.
type BuilderConfig struct {
	Target         string
	MemThresholdMB float64
	LogPath        string
	LogTailLines   int
	// Sanitizer, when set, redacts the log tail before it enters a report.
	Sanitizer *logging.Sanitizer
}

// Builder aggregates collector output into Reports. Probes run sequentially
// on the caller's goroutine, in kernel, docker, kubernetes order.
type Builder struct {
	cfg        BuilderConfig
	host       HostCollector
	kernel     probe.Probe
	docker     probe.Probe
	kubernetes probe.Probe
	tools      tools.Availability

	now   func() time.Time
	newID func() string
}

// NewBuilder creates a report builder. The tool availability is computed by
// the caller once per run and reused for every report.
func NewBuilder(cfg BuilderConfig, host HostCollector, kernel, docker, kubernetes probe.Probe, avail tools.Availability) *Builder {
	if cfg.LogTailLines <= 0 {
		cfg.LogTailLines = 30
	}
	return &Builder{
		cfg:        cfg,
		host:       host,
		kernel:     kernel,
		docker:     docker,
		kubernetes: kubernetes,
		tools:      avail,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Build assembles a report. A nil sample means the target is not running.
// Build never fails: every collector degrades into report text.
func (b *Builder) Build(ctx context.Context, kind Kind, sample *watcher.Sample) Report {
	r := Report{
		ID:             b.newID(),
		Kind:           kind,
		GeneratedAt:    b.now(),
		Target:         b.cfg.Target,
		MemThresholdMB: b.cfg.MemThresholdMB,
		Tools:          b.tools,
		LogPath:        b.cfg.LogPath,
	}
	if sample != nil {
		s := *sample
		r.Process = &s
	}

	r.LogTail, r.LogErr = b.tailLog()

	if b.host != nil {
		r.Host = b.host.Collect(ctx)
	}

	outcomes := probe.CollectAll(ctx, b.kernel, b.docker, b.kubernetes)
	r.Kernel, r.Docker, r.Kubernetes = outcomes[0], outcomes[1], outcomes[2]

	return r
}

// tailLog returns the log tail, or a fallback line and the cause.
func (b *Builder) tailLog() (string, error) {
	text, err := fsutil.TailLines(b.cfg.LogPath, b.cfg.LogTailLines)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "Log file not found: " + b.cfg.LogPath, core.ErrNotFound("log file", b.cfg.LogPath).WithCause(err)
		}
		return fmt.Sprintf("Failed to read log: %v", err),
			core.ErrIO(core.CodeLogRead, "reading application log").WithCause(err).WithDetail("path", b.cfg.LogPath)
	}
	text = strings.TrimRight(text, "\n")
	if b.cfg.Sanitizer != nil {
		text = b.cfg.Sanitizer.Sanitize(text)
	}
	return text, nil
}
