package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "auto"},
		Target: TargetConfig{
			Name:              "myapp",
			MemoryThresholdMB: 200,
		},
		Agent: AgentConfig{
			PollInterval:     5 * time.Second,
			SnapshotInterval: time.Minute,
			CrashCooldown:    10 * time.Second,
			CPUSampleWindow:  100 * time.Millisecond,
			Inspector:        "htop",
		},
		AppLog:  AppLogConfig{Path: "app.log", TailLines: 30},
		Reports: ReportsConfig{Dir: "sre_reports"},
		Probes:  ProbesConfig{Timeout: 5 * time.Second, KernelTailLines: 100, PodSampleSize: 5},
		Tools:   ToolsConfig{Known: []string{"htop", "k9s"}},
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	cfg := validConfig()
	if err := ValidateConfig(&cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty target", func(c *Config) { c.Target.Name = "  " }, "target.name"},
		{"zero threshold", func(c *Config) { c.Target.MemoryThresholdMB = 0 }, "target.memory_threshold_mb"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"zero poll", func(c *Config) { c.Agent.PollInterval = 0 }, "agent.poll_interval"},
		{"snapshot shorter than poll", func(c *Config) { c.Agent.SnapshotInterval = time.Second }, "agent.snapshot_interval"},
		{"cooldown equal to poll", func(c *Config) { c.Agent.CrashCooldown = 5 * time.Second }, "agent.crash_cooldown"},
		{"sample window too long", func(c *Config) { c.Agent.CPUSampleWindow = 5 * time.Second }, "agent.cpu_sample_window"},
		{"inspector missing", func(c *Config) {
			c.Agent.LaunchInspectorOnCrash = true
			c.Agent.Inspector = ""
		}, "agent.inspector"},
		{"no log path", func(c *Config) { c.AppLog.Path = "" }, "app_log.path"},
		{"zero tail", func(c *Config) { c.AppLog.TailLines = 0 }, "app_log.tail_lines"},
		{"bad redact pattern", func(c *Config) { c.AppLog.RedactPatterns = []string{"("} }, "app_log.redact_patterns[0]"},
		{"no reports dir", func(c *Config) { c.Reports.Dir = "" }, "reports.dir"},
		{"negative max files", func(c *Config) { c.Reports.MaxFiles = -1 }, "reports.max_files"},
		{"zero probe timeout", func(c *Config) { c.Probes.Timeout = 0 }, "probes.timeout"},
		{"zero pod sample", func(c *Config) { c.Probes.PodSampleSize = 0 }, "probes.pod_sample_size"},
		{"duplicate tool", func(c *Config) { c.Tools.Known = []string{"htop", "htop"} }, "tools.known"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			v := NewValidator()
			err := v.Validate(&cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			found := false
			for _, e := range verrs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: "x", Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "a: bad") || !strings.Contains(msg, "b: worse") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !errs.HasErrors() {
		t.Error("expected HasErrors to be true")
	}
}
