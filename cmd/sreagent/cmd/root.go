package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
)

var (
	cfgFile    string
	logLevel   string
	logFormat  string
	targetName string
	reportsDir string

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "sreagent",
	Short: "Local SRE agent that watches one process and writes diagnostic reports",
	Long: `sreagent supervises a single named process on this host. It samples the
process on a fixed interval, writes periodic SNAPSHOT reports, and writes a
CRASH report as soon as the process disappears. Each report bundles process
metrics, the application log tail, host health, kernel OOM signals, and
docker/kubernetes context.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, viper.GetViper())
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// Exit codes returned by the sreagent binary.
const (
	ExitFailure      = 1
	ExitInvalidInput = 2
)

// ExitCode maps a command error to the process exit status. Configuration
// and input problems exit with ExitInvalidInput.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if core.IsCategory(err, core.ErrCatValidation) {
		return ExitInvalidInput
	}
	return ExitFailure
}

func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// GetVersion returns the application version string.
func GetVersion() string {
	return appVersion
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .sreagent.yaml, then ~/.config/sreagent/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto",
		"log format (auto, text, json)")
	rootCmd.PersistentFlags().StringVarP(&targetName, "target", "t", "",
		"process name to watch (case-insensitive substring)")
	rootCmd.PersistentFlags().StringVar(&reportsDir, "reports-dir", "",
		"directory for report files")
}

// bindFlags binds persistent flags to v. Only flags the user actually set
// override config values, so defaults still come from the Loader.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	bindings := map[string]string{
		"log.level":   "log-level",
		"log.format":  "log-format",
		"target.name": "target",
		"reports.dir": "reports-dir",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}
