package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/sreagent/internal/config"
)

var (
	configInitForce bool
	configInitUser  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.ProjectConfigFile + " in the current directory",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "write the per-user config under ~/.config/sreagent instead")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	// Load first so validation errors surface and defaults are registered.
	if _, err := loadConfig(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# source: %s\n", used)
	} else {
		fmt.Fprintln(out, "# source: defaults")
	}

	data, err := yaml.Marshal(printable(viper.AllSettings()))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// printable renders durations as strings; yaml would print nanoseconds.
func printable(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = printable(val)
		}
		return out
	case time.Duration:
		return t.String()
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := config.ProjectConfigFile
	if configInitUser {
		p, err := config.UserConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := config.WriteDefaultFile(path, configInitForce); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
