package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/sreagent/internal/config"
	"github.com/hugo-lorenzo-mato/sreagent/internal/diagnostics"
	"github.com/hugo-lorenzo-mato/sreagent/internal/logging"
	"github.com/hugo-lorenzo-mato/sreagent/internal/probe"
	"github.com/hugo-lorenzo-mato/sreagent/internal/report"
	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
	"github.com/hugo-lorenzo-mato/sreagent/internal/watcher"
)

// loadConfig loads configuration through the global viper instance, which
// carries the CLI flag bindings.
func loadConfig() (config.Config, error) {
	return config.NewLoaderWithViper(viper.GetViper()).
		WithConfigFile(cfgFile).
		Load()
}

// newLogger builds the logger described by cfg. Output goes to the command's
// stdout unless log.file is set. The returned close func is never nil.
func newLogger(cmd *cobra.Command, cfg config.LogConfig) (*logging.Logger, func(), error) {
	var out io.Writer = cmd.OutOrStdout()
	closeFn := func() {}

	if cfg.File != "" {
		f, err := logging.OpenFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: out,
	})
	return logger, closeFn, nil
}

// runtimeDeps holds the components shared by watch, snapshot and doctor.
type runtimeDeps struct {
	Config     config.Config
	Logger     *logging.Logger
	Tools      tools.Availability
	Runner     *probe.ExecRunner
	Host       *diagnostics.HostCollector
	Watcher    *watcher.Watcher
	Kernel     probe.Probe
	Docker     probe.Probe
	Kubernetes probe.Probe
	Builder    *report.Builder
	Writer     *report.Writer
}

// buildRuntime wires every component from cfg. Tool availability is
// resolved here once and reused for the whole run.
func buildRuntime(cfg config.Config, logger *logging.Logger) (*runtimeDeps, error) {
	avail := tools.NewDetector().Detect(cfg.Tools.Known)
	runner := probe.NewExecRunner(cfg.Probes.Timeout)

	var sanitizer *logging.Sanitizer
	if cfg.AppLog.Redact {
		s, err := logger.Sanitizer().WithPatterns(cfg.AppLog.RedactPatterns...)
		if err != nil {
			return nil, fmt.Errorf("compiling redact patterns: %w", err)
		}
		sanitizer = s
	}

	d := &runtimeDeps{
		Config:     cfg,
		Logger:     logger,
		Tools:      avail,
		Runner:     runner,
		Host:       diagnostics.NewHostCollector(),
		Watcher:    watcher.New(cfg.Agent.CPUSampleWindow),
		Kernel:     probe.NewKernelProbe(runner, cfg.Probes.KernelTailLines),
		Docker:     probe.NewDockerProbe(runner, avail),
		Kubernetes: probe.NewKubernetesProbe(runner, avail, cfg.Probes.PodSampleSize),
		Writer:     report.NewWriter(cfg.Reports.Dir, cfg.Reports.MaxFiles, logger),
	}
	d.Builder = report.NewBuilder(report.BuilderConfig{
		Target:         cfg.Target.Name,
		MemThresholdMB: cfg.Target.MemoryThresholdMB,
		LogPath:        cfg.AppLog.Path,
		LogTailLines:   cfg.AppLog.TailLines,
		Sanitizer:      sanitizer,
	}, d.Host, d.Kernel, d.Docker, d.Kubernetes, avail)

	return d, nil
}

// setup loads config, the logger and the runtime in one go.
func setup(cmd *cobra.Command) (*runtimeDeps, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	deps, err := buildRuntime(cfg, logger)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return deps, closeLog, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, out io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(out, "\nReceived interrupt, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
