// Package watcher locates the supervised process by name and samples it.
package watcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Process is the subset of *process.Process the watcher reads.
type Process interface {
	NameWithContext(ctx context.Context) (string, error)
	StatusWithContext(ctx context.Context) ([]string, error)
	PercentWithContext(ctx context.Context, interval time.Duration) (float64, error)
	MemoryInfoWithContext(ctx context.Context) (*process.MemoryInfoStat, error)
	NumThreadsWithContext(ctx context.Context) (int32, error)
}

// Entry is one row of the live process table.
type Entry struct {
	PID  int32
	Proc Process
}

// Lister enumerates live processes in OS order.
type Lister func(ctx context.Context) ([]Entry, error)

// SystemLister enumerates processes through gopsutil.
func SystemLister(ctx context.Context) ([]Entry, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	entries := make([]Entry, 0, len(procs))
	for _, p := range procs {
		entries = append(entries, Entry{PID: p.Pid, Proc: p})
	}
	return entries, nil
}

// Handle identifies a matched process.
type Handle struct {
	PID  int32
	Name string
	proc Process
}

// Watcher finds and samples the target process.
type Watcher struct {
	list         Lister
	sampleWindow time.Duration
	now          func() time.Time
}

// New creates a watcher over the live process table.
func New(sampleWindow time.Duration) *Watcher {
	return NewWithLister(SystemLister, sampleWindow)
}

// NewWithLister creates a watcher with a custom process source.
func NewWithLister(list Lister, sampleWindow time.Duration) *Watcher {
	if sampleWindow <= 0 {
		sampleWindow = 100 * time.Millisecond
	}
	return &Watcher{
		list:         list,
		sampleWindow: sampleWindow,
		now:          time.Now,
	}
}

// Find returns the first process whose name contains target, ignoring case.
// A missing process is reported as ok=false, never as an error; err is only
// set when the process table itself could not be read.
func (w *Watcher) Find(ctx context.Context, target string) (Handle, bool, error) {
	entries, err := w.list(ctx)
	if err != nil {
		return Handle{}, false, err
	}

	needle := strings.ToLower(target)
	for _, e := range entries {
		name, err := e.Proc.NameWithContext(ctx)
		if err != nil || name == "" {
			// Exited or unreadable between listing and lookup.
			continue
		}
		if strings.Contains(strings.ToLower(name), needle) {
			return Handle{PID: e.PID, Name: name, proc: e.Proc}, true, nil
		}
	}
	return Handle{}, false, nil
}

// Names returns the names of all readable processes, in OS order.
func (w *Watcher) Names(ctx context.Context) ([]string, error) {
	entries, err := w.list(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, err := e.Proc.NameWithContext(ctx); err == nil && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Sample reads status, CPU, RSS and thread count in one pass. Fields that
// cannot be read (typically because the process exited mid-sample) are
// marked invalid; the sample itself is always returned.
func (w *Watcher) Sample(ctx context.Context, h Handle) Sample {
	s := Sample{
		PID:       h.PID,
		Name:      h.Name,
		Timestamp: w.now(),
	}

	// Cheap reads first so the CPU window does not widen the skew between them.
	if mem, err := h.proc.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		s.RSSMB = float64(mem.RSS) / 1024 / 1024
		s.MemValid = true
	}
	if threads, err := h.proc.NumThreadsWithContext(ctx); err == nil {
		s.Threads = threads
		s.ThreadsValid = true
	}
	if status, err := h.proc.StatusWithContext(ctx); err == nil && len(status) > 0 {
		s.Status = strings.Join(status, ",")
		s.StatusValid = true
	}
	if cpu, err := h.proc.PercentWithContext(ctx, w.sampleWindow); err == nil {
		s.CPUPercent = cpu
		s.CPUValid = true
	}

	return s
}
