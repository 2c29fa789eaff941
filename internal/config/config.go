package config

import "time"

// Config holds all agent configuration. It is built once at start-up by the
// Loader and handed to components by value; nothing mutates it afterwards.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Target  TargetConfig  `mapstructure:"target"`
	Agent   AgentConfig   `mapstructure:"agent"`
	AppLog  AppLogConfig  `mapstructure:"app_log"`
	Reports ReportsConfig `mapstructure:"reports"`
	Probes  ProbesConfig  `mapstructure:"probes"`
	Tools   ToolsConfig   `mapstructure:"tools"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// TargetConfig identifies the supervised process.
type TargetConfig struct {
	// Name is matched case-insensitively as a substring of the process name.
	Name              string  `mapstructure:"name"`
	MemoryThresholdMB float64 `mapstructure:"memory_threshold_mb"`
}

// AgentConfig configures the polling loop.
type AgentConfig struct {
	PollInterval           time.Duration `mapstructure:"poll_interval"`
	SnapshotInterval       time.Duration `mapstructure:"snapshot_interval"`
	CrashCooldown          time.Duration `mapstructure:"crash_cooldown"`
	CPUSampleWindow        time.Duration `mapstructure:"cpu_sample_window"`
	LaunchInspectorOnCrash bool          `mapstructure:"launch_inspector_on_crash"`
	Inspector              string        `mapstructure:"inspector"`
}

// AppLogConfig configures the application log tail included in reports.
type AppLogConfig struct {
	Path           string   `mapstructure:"path"`
	TailLines      int      `mapstructure:"tail_lines"`
	Redact         bool     `mapstructure:"redact"`
	RedactPatterns []string `mapstructure:"redact_patterns"`
}

// ReportsConfig configures report persistence.
type ReportsConfig struct {
	Dir      string `mapstructure:"dir"`
	MaxFiles int    `mapstructure:"max_files"` // 0 keeps every report
}

// ProbesConfig configures the external context probes.
type ProbesConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	KernelTailLines int           `mapstructure:"kernel_tail_lines"`
	PodSampleSize   int           `mapstructure:"pod_sample_size"`
}

// ToolsConfig lists the optional tools resolved on the search path.
type ToolsConfig struct {
	Known []string `mapstructure:"known"`
}
