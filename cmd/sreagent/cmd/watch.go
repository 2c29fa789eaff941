package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/sreagent/internal/agent"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the target process and write reports until interrupted",
	Long: `Poll the target process on a fixed interval. A SNAPSHOT report is written
on the first poll and then every snapshot interval while the process runs.
A CRASH report is written on the first poll that misses the process, followed
by a cooldown before polling resumes. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	deps, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := deps.Config
	out := cmd.OutOrStdout()

	ctx, cancel := signalContext(cmd.Context(), out)
	defer cancel()

	printBanner(out, cfg.Target.Name, deps.Writer.Dir(), deps.Tools)
	hintIfNotRunning(ctx, out, deps)

	a := agent.New(agent.Options{
		Target:           cfg.Target.Name,
		MemThresholdMB:   cfg.Target.MemoryThresholdMB,
		PollInterval:     cfg.Agent.PollInterval,
		SnapshotInterval: cfg.Agent.SnapshotInterval,
		CrashCooldown:    cfg.Agent.CrashCooldown,
		LaunchInspector:  cfg.Agent.LaunchInspectorOnCrash,
		Inspector:        cfg.Agent.Inspector,
	}, deps.Watcher, deps.Builder, deps.Writer, deps.Tools, deps.Logger)

	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("agent stopped: %w", err)
	}
	fmt.Fprintln(out, "SRE Agent stopped.")
	return nil
}

// hintIfNotRunning warns before the first poll when the target is absent,
// listing similarly named processes.
func hintIfNotRunning(ctx context.Context, out io.Writer, deps *runtimeDeps) {
	target := deps.Config.Target.Name
	if _, found, err := deps.Watcher.Find(ctx, target); err != nil || found {
		return
	}

	fmt.Fprintf(out, "%s no process matches %q; the first poll will record a crash\n",
		warnStyle.Render("warning:"), target)

	suggestions, err := deps.Watcher.Suggest(ctx, target, 3)
	if err != nil || len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(out, "  did you mean: %s\n", strings.Join(suggestions, ", "))
}
