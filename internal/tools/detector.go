// Package tools resolves the optional diagnostic tools (htop, k9s, docker, ...)
// that the agent references in its reports and probes.
package tools

import (
	"fmt"
	"os/exec"
	"strings"
)

// Well-known tool identifiers.
const (
	Htop       = "htop"
	Btop       = "btop"
	Lazydocker = "lazydocker"
	K9s        = "k9s"
	Docker     = "docker"
	Kubectl    = "kubectl"
)

// LookPathFunc resolves an executable name to a path.
type LookPathFunc func(name string) (string, error)

// Detector resolves tool names on the search path.
type Detector struct {
	lookPath LookPathFunc
}

// NewDetector creates a detector backed by exec.LookPath.
func NewDetector() *Detector {
	return &Detector{lookPath: exec.LookPath}
}

// NewDetectorWithLookPath creates a detector with a custom resolver.
func NewDetectorWithLookPath(fn LookPathFunc) *Detector {
	if fn == nil {
		fn = exec.LookPath
	}
	return &Detector{lookPath: fn}
}

// Detect resolves every name. An unresolvable tool is recorded as absent;
// lookup failures are never surfaced as errors.
func (d *Detector) Detect(names []string) Availability {
	a := Availability{
		order: make([]string, 0, len(names)),
		paths: make(map[string]string, len(names)),
	}
	for _, name := range names {
		if _, seen := a.paths[name]; seen {
			continue
		}
		a.order = append(a.order, name)
		path, err := d.lookPath(name)
		if err != nil {
			path = ""
		}
		a.paths[name] = path
	}
	return a
}

// Availability maps tool names to their installed path ("" when absent).
// It is computed once per agent run and treated as read-only.
type Availability struct {
	order []string
	paths map[string]string
}

// Path returns the resolved path and whether the tool is installed.
func (a Availability) Path(name string) (string, bool) {
	p := a.paths[name]
	return p, p != ""
}

// Installed reports whether the tool was found.
func (a Availability) Installed(name string) bool {
	_, ok := a.Path(name)
	return ok
}

// Names returns the tool names in detection order.
func (a Availability) Names() []string {
	return append([]string(nil), a.order...)
}

// Lines renders one status line per tool.
func (a Availability) Lines() []string {
	lines := make([]string, 0, len(a.order))
	for _, name := range a.order {
		if path, ok := a.Path(name); ok {
			lines = append(lines, fmt.Sprintf("%s: AVAILABLE (%s)", name, path))
		} else {
			lines = append(lines, fmt.Sprintf("%s: NOT INSTALLED", name))
		}
	}
	return lines
}

// String renders the status lines joined by newlines.
func (a Availability) String() string {
	return strings.Join(a.Lines(), "\n")
}
