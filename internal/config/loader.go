package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v:         viper.New(),
		envPrefix: "SREAGENT",
	}
}

// NewLoaderWithViper creates a loader using an existing viper instance.
// This allows integration with CLI flag bindings.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: "SREAGENT",
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration from all sources and validates it.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (SREAGENT_*)
// 3. Project config (.sreagent.yaml in current directory)
// 4. User config (~/.config/sreagent/config.yaml)
// 5. Defaults
func (l *Loader) Load() (Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if path := l.resolveConfigFile(); path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName(".sreagent")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// resolveConfigFile picks the explicit file, then the project file, then the
// user file. It returns "" when none exists.
func (l *Loader) resolveConfigFile() string {
	if l.configFile != "" {
		return l.configFile
	}
	if _, err := os.Stat(ProjectConfigFile); err == nil {
		return ProjectConfigFile
	}
	if path, err := UserConfigPath(); err == nil {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigFileUsed returns the config file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// setDefaults configures default values.
func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")
	l.v.SetDefault("log.file", "")

	l.v.SetDefault("target.name", DefaultTargetName)
	l.v.SetDefault("target.memory_threshold_mb", DefaultMemoryThresholdMB)

	l.v.SetDefault("agent.poll_interval", DefaultPollInterval)
	l.v.SetDefault("agent.snapshot_interval", DefaultSnapshotInterval)
	l.v.SetDefault("agent.crash_cooldown", DefaultCrashCooldown)
	l.v.SetDefault("agent.cpu_sample_window", DefaultCPUSampleWindow)
	l.v.SetDefault("agent.launch_inspector_on_crash", false)
	l.v.SetDefault("agent.inspector", DefaultInspector)

	l.v.SetDefault("app_log.path", DefaultAppLogPath)
	l.v.SetDefault("app_log.tail_lines", DefaultTailLines)
	l.v.SetDefault("app_log.redact", false)
	l.v.SetDefault("app_log.redact_patterns", []string{})

	l.v.SetDefault("reports.dir", DefaultReportsDir)
	l.v.SetDefault("reports.max_files", 0)

	l.v.SetDefault("probes.timeout", DefaultProbeTimeout)
	l.v.SetDefault("probes.kernel_tail_lines", DefaultKernelTailLines)
	l.v.SetDefault("probes.pod_sample_size", DefaultPodSampleSize)

	l.v.SetDefault("tools.known", DefaultTools)
}
