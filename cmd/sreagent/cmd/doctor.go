package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/sreagent/internal/probe"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check tools, probes and host health",
	Long: `Resolve the configured tools, run the kernel, docker and kubernetes probes
once, and print host health. Nothing is written to the reports directory.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	deps, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, titleStyle.Render("Tools"))
	printTools(out, deps.Tools)
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("Probes"))
	fmt.Fprintf(out, "  %s %s\n", labelStyle.Render("timeout:"), deps.Runner.Timeout())
	for _, o := range probe.CollectParallel(ctx, deps.Kernel, deps.Docker, deps.Kubernetes) {
		icon := okStyle.Render("✓")
		if !o.OK() {
			icon = warnStyle.Render("!")
		}
		fmt.Fprintf(out, "  %s %s\n", icon, o.Probe)
		for _, line := range strings.Split(o.Text, "\n") {
			fmt.Fprintf(out, "      %s\n", line)
		}
		if o.Reason != nil {
			fmt.Fprintf(out, "      %s\n", missingStyle.Render("reason: "+o.Reason.Error()))
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("Host"))
	for _, line := range deps.Host.Collect(ctx).Lines() {
		fmt.Fprintf(out, "  %s\n", line)
	}

	return nil
}
