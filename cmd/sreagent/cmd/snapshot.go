package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/sreagent/internal/report"
	"github.com/hugo-lorenzo-mato/sreagent/internal/watcher"
)

var snapshotPrint bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write one report now",
	Long: `Write a single report immediately: a SNAPSHOT if the target is running,
a CRASH report otherwise. With --print the report goes to stdout and
nothing is written to the reports directory.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().BoolVar(&snapshotPrint, "print", false, "print the report instead of writing it")
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	deps, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	kind := report.KindCrash
	var sample *watcher.Sample
	h, found, err := deps.Watcher.Find(ctx, deps.Config.Target.Name)
	if err != nil {
		return fmt.Errorf("reading process table: %w", err)
	}
	if found {
		s := deps.Watcher.Sample(ctx, h)
		sample = &s
		kind = report.KindSnapshot
	}

	rep := deps.Builder.Build(ctx, kind, sample)
	if snapshotPrint {
		fmt.Fprint(out, report.Render(rep))
		return nil
	}

	path, err := deps.Writer.Persist(rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s report saved: %s\n", rep.Kind, path)
	return nil
}
