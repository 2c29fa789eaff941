package probe

import (
	"context"
	"strings"
)

// Kernel probe verdicts.
const (
	KernelOOMDetected = "Possible OOM activity detected in kernel logs."
	KernelNoAnomalies = "No OOM events detected."
	KernelUnavailable = "Kernel logs unavailable (non-root user)."
)

// maxOOMEvidence bounds how many matching kernel lines are quoted.
const maxOOMEvidence = 3

// KernelProbe scans the tail of the kernel ring buffer for OOM-killer activity.
type KernelProbe struct {
	runner    Runner
	tailLines int
}

// NewKernelProbe creates a kernel probe reading the last tailLines lines.
func NewKernelProbe(runner Runner, tailLines int) *KernelProbe {
	if tailLines <= 0 {
		tailLines = 100
	}
	return &KernelProbe{runner: runner, tailLines: tailLines}
}

// Name implements Probe.
func (p *KernelProbe) Name() string { return "kernel" }

// Collect implements Probe.
func (p *KernelProbe) Collect(ctx context.Context) Outcome {
	out, err := p.runner.Run(ctx, "dmesg")
	if err != nil {
		return unavailable(p.Name(), KernelUnavailable, err)
	}

	lines := nonEmptyLines(out)
	if len(lines) > p.tailLines {
		lines = lines[len(lines)-p.tailLines:]
	}

	var evidence []string
	for i := len(lines) - 1; i >= 0 && len(evidence) < maxOOMEvidence; i-- {
		if strings.Contains(strings.ToLower(lines[i]), "oom") {
			evidence = append(evidence, lines[i])
		}
	}
	if len(evidence) == 0 {
		return succeeded(p.Name(), KernelNoAnomalies)
	}

	var sb strings.Builder
	sb.WriteString(KernelOOMDetected)
	// Oldest first, matching the ring buffer order.
	for i := len(evidence) - 1; i >= 0; i-- {
		sb.WriteString("\n  ")
		sb.WriteString(evidence[i])
	}
	return succeeded(p.Name(), sb.String())
}
