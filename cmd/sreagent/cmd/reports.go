package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/sreagent/internal/report"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect written reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports, oldest first",
	RunE:  runReportsList,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd)
}

func runReportsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries, err := report.List(cfg.Reports.Dir)
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No reports in %s\n", cfg.Reports.Dir)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tGENERATED\tSIZE\tFILE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Kind, e.GeneratedAt.Format(report.TimeLayout), e.Size, e.Name)
	}
	return tw.Flush()
}
