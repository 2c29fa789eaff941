package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap classifies the collection as an invalid-config validation error.
func (e ValidationErrors) Unwrap() error {
	return core.ErrValidation(core.CodeInvalidConfig, "invalid configuration")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validateTarget(&cfg.Target)
	v.validateAgent(&cfg.Agent)
	v.validateAppLog(&cfg.AppLog)
	v.validateReports(&cfg.Reports)
	v.validateProbes(&cfg.Probes)
	v.validateTools(&cfg.Tools)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func (v *Validator) validateLog(cfg *LogConfig) {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"auto": true, "text": true, "json": true,
	}
	if !validFormats[cfg.Format] {
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}

	if cfg.File != "" && !isValidPath(cfg.File) {
		v.addError("log.file", cfg.File, "invalid file path")
	}
}

func (v *Validator) validateTarget(cfg *TargetConfig) {
	if strings.TrimSpace(cfg.Name) == "" {
		v.addError("target.name", cfg.Name, "process name required")
	}
	if cfg.MemoryThresholdMB <= 0 {
		v.addError("target.memory_threshold_mb", cfg.MemoryThresholdMB, "must be positive")
	}
}

func (v *Validator) validateAgent(cfg *AgentConfig) {
	v.positiveDuration("agent.poll_interval", cfg.PollInterval)
	v.positiveDuration("agent.snapshot_interval", cfg.SnapshotInterval)
	v.positiveDuration("agent.crash_cooldown", cfg.CrashCooldown)
	v.positiveDuration("agent.cpu_sample_window", cfg.CPUSampleWindow)

	if cfg.PollInterval > 0 && cfg.SnapshotInterval > 0 && cfg.SnapshotInterval < cfg.PollInterval {
		v.addError("agent.snapshot_interval", cfg.SnapshotInterval,
			fmt.Sprintf("must be >= poll_interval (%s)", cfg.PollInterval))
	}
	if cfg.PollInterval > 0 && cfg.CrashCooldown > 0 && cfg.CrashCooldown <= cfg.PollInterval {
		v.addError("agent.crash_cooldown", cfg.CrashCooldown,
			fmt.Sprintf("must be longer than poll_interval (%s)", cfg.PollInterval))
	}
	if cfg.PollInterval > 0 && cfg.CPUSampleWindow >= cfg.PollInterval {
		v.addError("agent.cpu_sample_window", cfg.CPUSampleWindow, "must be shorter than poll_interval")
	}

	if cfg.LaunchInspectorOnCrash && strings.TrimSpace(cfg.Inspector) == "" {
		v.addError("agent.inspector", cfg.Inspector, "required when launch_inspector_on_crash is set")
	}
}

func (v *Validator) validateAppLog(cfg *AppLogConfig) {
	if cfg.Path == "" {
		v.addError("app_log.path", cfg.Path, "path required")
	}
	if cfg.TailLines <= 0 {
		v.addError("app_log.tail_lines", cfg.TailLines, "must be positive")
	}
	for i, p := range cfg.RedactPatterns {
		if _, err := regexp.Compile(p); err != nil {
			v.addError(fmt.Sprintf("app_log.redact_patterns[%d]", i), p, "invalid regular expression")
		}
	}
}

func (v *Validator) validateReports(cfg *ReportsConfig) {
	if cfg.Dir == "" {
		v.addError("reports.dir", cfg.Dir, "directory required")
	} else if !isValidPath(cfg.Dir) {
		v.addError("reports.dir", cfg.Dir, "invalid directory path")
	}
	if cfg.MaxFiles < 0 {
		v.addError("reports.max_files", cfg.MaxFiles, "must be >= 0")
	}
}

func (v *Validator) validateProbes(cfg *ProbesConfig) {
	v.positiveDuration("probes.timeout", cfg.Timeout)
	if cfg.KernelTailLines <= 0 {
		v.addError("probes.kernel_tail_lines", cfg.KernelTailLines, "must be positive")
	}
	if cfg.PodSampleSize <= 0 {
		v.addError("probes.pod_sample_size", cfg.PodSampleSize, "must be positive")
	}
}

func (v *Validator) validateTools(cfg *ToolsConfig) {
	seen := make(map[string]bool, len(cfg.Known))
	for _, name := range cfg.Known {
		if strings.TrimSpace(name) == "" {
			v.addError("tools.known", cfg.Known, "tool names must not be empty")
			return
		}
		if seen[name] {
			v.addError("tools.known", name, "duplicate tool")
		}
		seen[name] = true
	}
}

func (v *Validator) positiveDuration(field string, d time.Duration) {
	if d <= 0 {
		v.addError(field, d, "must be a positive duration")
	}
}

func isValidPath(path string) bool {
	dir := filepath.Dir(path)
	_, err := os.Stat(dir)
	return err == nil || os.IsNotExist(err)
}

// ValidateConfig is a convenience function that creates a validator and validates config.
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
