package probe

import (
	"context"
	"strings"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
)

// Docker probe texts.
const (
	DockerNotInstalled  = "Docker tooling not installed."
	DockerNoContainers  = "No running containers."
	DockerNotAccessible = "Docker not accessible."
	dockerRunningHeader = "Running containers:"
)

// DockerProbe lists running container names through the docker CLI.
type DockerProbe struct {
	runner Runner
	tools  tools.Availability
}

// NewDockerProbe creates a docker probe. The CLI is only invoked when the
// availability map reports it installed.
func NewDockerProbe(runner Runner, avail tools.Availability) *DockerProbe {
	return &DockerProbe{runner: runner, tools: avail}
}

// Name implements Probe.
func (p *DockerProbe) Name() string { return "docker" }

// Collect implements Probe.
func (p *DockerProbe) Collect(ctx context.Context) Outcome {
	path, ok := p.tools.Path(tools.Docker)
	if !ok {
		return unavailable(p.Name(), DockerNotInstalled, core.ErrToolMissing(tools.Docker))
	}

	out, err := p.runner.Run(ctx, path, "ps", "--format", "{{.Names}}")
	if err != nil {
		return unavailable(p.Name(), DockerNotAccessible, err)
	}

	names := nonEmptyLines(out)
	if len(names) == 0 {
		return succeeded(p.Name(), DockerNoContainers)
	}
	return succeeded(p.Name(), dockerRunningHeader+"\n"+strings.Join(names, "\n"))
}
