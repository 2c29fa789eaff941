// Package report assembles, renders and persists SRE reports.
//
// A Report is a plain value built once per trigger (periodic snapshot or
// detected crash). Rendering produces a flat text document whose section
// headers are fixed and always present, whatever the individual collectors
// returned. Persisted reports are never rewritten.
package report

import (
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/sreagent/internal/diagnostics"
	"github.com/hugo-lorenzo-mato/sreagent/internal/probe"
	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
	"github.com/hugo-lorenzo-mato/sreagent/internal/watcher"
)

// Kind distinguishes periodic reports from crash reports.
type Kind string

const (
	KindSnapshot Kind = "SNAPSHOT"
	KindCrash    Kind = "CRASH"
)

// ParseKind maps a filename prefix back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToUpper(s)) {
	case KindSnapshot:
		return KindSnapshot, true
	case KindCrash:
		return KindCrash, true
	}
	return "", false
}

// Section headers, in rendering order.
const (
	SectionProcess    = "PROCESS STATE"
	SectionLimits     = "RESOURCE LIMITS"
	SectionLogs       = "APPLICATION LOGS (TAIL)"
	SectionHost       = "HOST HEALTH"
	SectionKernel     = "KERNEL SIGNALS"
	SectionDocker     = "DOCKER CONTEXT"
	SectionKubernetes = "KUBERNETES CONTEXT"
	SectionTools      = "AVAILABLE SRE TOOLS"
	SectionActions    = "OPERATOR ACTIONS"
)

// SectionHeaders lists every section header in the order they are rendered.
var SectionHeaders = []string{
	SectionProcess,
	SectionLimits,
	SectionLogs,
	SectionHost,
	SectionKernel,
	SectionDocker,
	SectionKubernetes,
	SectionTools,
	SectionActions,
}

const (
	// Title opens every report.
	Title = "LOCAL SRE REPORT"
	// Footer closes every report.
	Footer = "END OF REPORT"
	// NotRunning replaces the process section when no sample exists.
	NotRunning = "PROCESS NOT RUNNING"
)

// Report is one immutable diagnostic document.
type Report struct {
	ID             string
	Kind           Kind
	GeneratedAt    time.Time
	Target         string
	MemThresholdMB float64

	// Process is nil when the target was not running.
	Process *watcher.Sample

	Host       diagnostics.HostMetrics
	Kernel     probe.Outcome
	Docker     probe.Outcome
	Kubernetes probe.Outcome
	Tools      tools.Availability

	LogPath string
	LogTail string
	// LogErr is set when LogTail holds a fallback message instead of log lines.
	LogErr error
}

// Running reports whether the report carries a process sample.
func (r Report) Running() bool {
	return r.Process != nil
}
