package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockCall records a call to a mock.
type MockCall struct {
	Method    string
	Args      interface{}
	Timestamp time.Time
}

// CommandResult is a canned response for FakeRunner.
type CommandResult struct {
	Output []byte
	Err    error
}

// FakeRunner implements probe.Runner with canned responses keyed by the
// full command line ("docker ps --format {{.Names}}").
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]CommandResult
	fallback  CommandResult
	calls     []MockCall
}

// NewFakeRunner creates a runner where unknown commands fail.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]CommandResult),
		fallback:  CommandResult{Err: fmt.Errorf("unexpected command")},
	}
}

// On registers a response for a command line.
func (r *FakeRunner) On(cmdline string, output string, err error) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[cmdline] = CommandResult{Output: []byte(output), Err: err}
	return r
}

// Run implements probe.Runner.
func (r *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, MockCall{Method: "Run", Args: cmdline, Timestamp: time.Now()})

	res, ok := r.responses[cmdline]
	if !ok {
		res = r.fallback
	}
	return res.Output, res.Err
}

// Calls returns the command lines run so far.
func (r *FakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i], _ = c.Args.(string)
	}
	return out
}

// LookPath returns a tools.LookPathFunc-compatible resolver over installed.
func LookPath(installed map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if p, ok := installed[name]; ok {
			return p, nil
		}
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	}
}
