package report

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeLayout is the human-readable timestamp inside a report.
const TimeLayout = "2006-01-02 15:04:05"

var operatorActions = []string{
	"- htop / btop : Inspect system load",
	"- lazydocker : Inspect container failures",
	"- k9s        : Inspect pod crashes",
}

// Render formats a report as plain text.
func Render(r Report) string {
	var sb strings.Builder

	sb.WriteString(Title + "\n")
	sb.WriteString(strings.Repeat("=", len(Title)) + "\n")
	fmt.Fprintf(&sb, "Generated: %s\n", r.GeneratedAt.Format(TimeLayout))
	fmt.Fprintf(&sb, "Target Process: %s\n", r.Target)
	fmt.Fprintf(&sb, "Report Type: %s\n", r.Kind)
	fmt.Fprintf(&sb, "Report ID: %s\n", r.ID)

	section(&sb, SectionProcess, processLines(r)...)
	section(&sb, SectionLimits, "Memory Threshold: "+formatMB(r.MemThresholdMB)+" MB")
	section(&sb, SectionLogs, r.LogTail)
	section(&sb, SectionHost, r.Host.Lines()...)
	section(&sb, SectionKernel, r.Kernel.Text)
	section(&sb, SectionDocker, r.Docker.Text)
	section(&sb, SectionKubernetes, r.Kubernetes.Text)
	section(&sb, SectionTools, r.Tools.Lines()...)
	section(&sb, SectionActions, operatorActions...)

	sb.WriteString("\n" + Footer + "\n")
	return sb.String()
}

func section(sb *strings.Builder, header string, body ...string) {
	sb.WriteString("\n" + header + "\n")
	sb.WriteString(strings.Repeat("-", len(header)) + "\n")
	for _, line := range body {
		sb.WriteString(line + "\n")
	}
}

func processLines(r Report) []string {
	if r.Process == nil {
		return []string{NotRunning}
	}
	return r.Process.Lines()
}

// formatMB prints whole thresholds without a fractional part.
func formatMB(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
