package config

import "time"

// Default values used when neither flags, environment nor a config file set a key.
const (
	DefaultTargetName        = "python3"
	DefaultMemoryThresholdMB = 200
	DefaultPollInterval      = 5 * time.Second
	DefaultSnapshotInterval  = 60 * time.Second
	DefaultCrashCooldown     = 10 * time.Second
	DefaultCPUSampleWindow   = 100 * time.Millisecond
	DefaultInspector         = "htop"
	DefaultAppLogPath        = "app.log"
	DefaultTailLines         = 30
	DefaultReportsDir        = "sre_reports"
	DefaultProbeTimeout      = 5 * time.Second
	DefaultKernelTailLines   = 100
	DefaultPodSampleSize     = 5
)

// DefaultTools are the optional diagnostic tools looked up at start-up.
var DefaultTools = []string{"htop", "btop", "lazydocker", "k9s", "docker", "kubectl"}

// DefaultConfigYAML contains the default configuration YAML content.
const DefaultConfigYAML = `# sreagent configuration
target:
  name: python3
  memory_threshold_mb: 200

agent:
  poll_interval: 5s
  snapshot_interval: 60s
  crash_cooldown: 10s
  cpu_sample_window: 100ms
  # Launch the inspector (htop) after a crash when attached to a terminal
  launch_inspector_on_crash: false
  inspector: htop

app_log:
  path: app.log
  tail_lines: 30
  # Set to true to mask secret-like values in the log tail.
  redact: false

reports:
  dir: sre_reports
  max_files: 0

probes:
  timeout: 5s
  kernel_tail_lines: 100
  pod_sample_size: 5

tools:
  known: [htop, btop, lazydocker, k9s, docker, kubectl]

log:
  level: info
  format: auto
`
