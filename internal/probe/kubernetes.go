package probe

import (
	"context"
	"errors"
	"strings"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
)

// Kubernetes probe texts.
const (
	KubernetesNotInstalled = "Kubernetes tooling not installed."
	KubernetesNoAccess     = "No pods or no cluster access."
	KubernetesUnavailable  = "Kubernetes context unavailable."
	kubernetesPodsHeader   = "Active pods (sample):"
)

// KubernetesProbe samples pod names in the current kubectl context.
type KubernetesProbe struct {
	runner     Runner
	tools      tools.Availability
	sampleSize int
}

// NewKubernetesProbe creates a pod probe listing at most sampleSize pods.
func NewKubernetesProbe(runner Runner, avail tools.Availability, sampleSize int) *KubernetesProbe {
	if sampleSize <= 0 {
		sampleSize = 5
	}
	return &KubernetesProbe{runner: runner, tools: avail, sampleSize: sampleSize}
}

// Name implements Probe.
func (p *KubernetesProbe) Name() string { return "kubernetes" }

// Collect implements Probe.
func (p *KubernetesProbe) Collect(ctx context.Context) Outcome {
	path, ok := p.tools.Path(tools.Kubectl)
	if !ok {
		return unavailable(p.Name(), KubernetesNotInstalled, core.ErrToolMissing(tools.Kubectl))
	}

	out, err := p.runner.Run(ctx, path, "get", "pods", "--no-headers")
	if err != nil {
		// A non-zero exit is kubectl telling us it has no cluster to talk to.
		if errors.Is(err, errCommandFailed) {
			return unavailable(p.Name(), KubernetesNoAccess, err)
		}
		return unavailable(p.Name(), KubernetesUnavailable, err)
	}

	var pods []string
	for _, line := range nonEmptyLines(out) {
		if len(pods) == p.sampleSize {
			break
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			pods = append(pods, fields[0])
		}
	}
	if len(pods) == 0 {
		return succeeded(p.Name(), KubernetesNoAccess)
	}
	return succeeded(p.Name(), kubernetesPodsHeader+"\n"+strings.Join(pods, "\n"))
}

var errCommandFailed = &core.DomainError{Category: core.ErrCatExecution, Code: core.CodeCommandFailed}
