package watcher

import (
	"fmt"
	"strings"
	"time"
)

// Unavailable is rendered in place of a field that could not be read.
const Unavailable = "unavailable"

// PartialMarker heads the process section when some fields are missing.
const PartialMarker = "Process data partially unavailable."

// Sample is a point-in-time view of the matched process. It is taken fresh
// on every poll and never reused across polls.
type Sample struct {
	PID       int32
	Name      string
	Timestamp time.Time

	Status      string
	StatusValid bool

	CPUPercent float64
	CPUValid   bool

	RSSMB    float64
	MemValid bool

	Threads      int32
	ThreadsValid bool
}

// Partial reports whether any field could not be read.
func (s Sample) Partial() bool {
	return !s.StatusValid || !s.CPUValid || !s.MemValid || !s.ThreadsValid
}

// ExceedsMemory reports whether a readable RSS is strictly above thresholdMB.
func (s Sample) ExceedsMemory(thresholdMB float64) bool {
	return s.MemValid && s.RSSMB > thresholdMB
}

// Lines renders the sample for the PROCESS STATE report section.
func (s Sample) Lines() []string {
	var lines []string
	if s.Partial() {
		lines = append(lines, PartialMarker)
	}

	status := Unavailable
	if s.StatusValid {
		status = s.Status
	}
	cpu := Unavailable
	if s.CPUValid {
		cpu = fmt.Sprintf("%.1f%%", s.CPUPercent)
	}
	mem := Unavailable
	if s.MemValid {
		mem = fmt.Sprintf("%.2f MB", s.RSSMB)
	}
	threads := Unavailable
	if s.ThreadsValid {
		threads = fmt.Sprintf("%d", s.Threads)
	}

	lines = append(lines,
		fmt.Sprintf("PID: %d", s.PID),
		fmt.Sprintf("Name: %s", s.Name),
		fmt.Sprintf("Status: %s", status),
		fmt.Sprintf("CPU Usage: %s", cpu),
		fmt.Sprintf("Memory (RSS): %s", mem),
		fmt.Sprintf("Threads: %s", threads),
	)
	return lines
}

// String joins Lines with newlines.
func (s Sample) String() string {
	return strings.Join(s.Lines(), "\n")
}
