// Package probe implements the optional context collectors attached to every
// report: kernel ring buffer, container runtime and Kubernetes pods.
//
// Every probe returns an Outcome instead of an error. The Outcome always
// carries report-ready text; when the probe could not produce data it is
// marked unavailable and keeps the underlying cause in Reason.
package probe

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Status tags a probe outcome.
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnavailable Status = "unavailable"
)

// Outcome is the tagged result of a probe run.
type Outcome struct {
	Probe  string
	Status Status
	Text   string
	Reason error
}

// OK reports whether the probe produced data.
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

func succeeded(probe, text string) Outcome {
	return Outcome{Probe: probe, Status: StatusOK, Text: text}
}

func unavailable(probe, text string, reason error) Outcome {
	return Outcome{Probe: probe, Status: StatusUnavailable, Text: text, Reason: reason}
}

// Probe collects one piece of context for a report.
type Probe interface {
	Name() string
	Collect(ctx context.Context) Outcome
}

// CollectAll runs probes one after another, in order.
func CollectAll(ctx context.Context, probes ...Probe) []Outcome {
	out := make([]Outcome, len(probes))
	for i, p := range probes {
		out[i] = p.Collect(ctx)
	}
	return out
}

// CollectParallel runs probes concurrently and returns outcomes in input
// order. It is meant for one-off diagnostics, not the polling loop.
func CollectParallel(ctx context.Context, probes ...Probe) []Outcome {
	out := make([]Outcome, len(probes))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range probes {
		g.Go(func() error {
			out[i] = p.Collect(gctx)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// nonEmptyLines splits output into trimmed, non-blank lines.
func nonEmptyLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
