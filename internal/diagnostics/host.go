package diagnostics

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostMetrics holds host-wide resource usage. Each group carries its own
// validity flag; a failed read never aborts the rest of the collection.
type HostMetrics struct {
	MemTotalMB float64
	MemUsedMB  float64
	MemPercent float64
	MemValid   bool

	DiskPath    string
	DiskTotalGB float64
	DiskUsedGB  float64
	DiskPercent float64
	DiskValid   bool

	CPUCores   int
	CPUThreads int
	CPUValid   bool

	LoadAvg1  float64
	LoadAvg5  float64
	LoadAvg15 float64
	LoadValid bool

	GPUs []string
}

// Lines renders the metrics for the HOST HEALTH report section.
func (m HostMetrics) Lines() []string {
	ram := "unavailable"
	if m.MemValid {
		ram = fmt.Sprintf("%.1f%%", m.MemPercent)
	}
	diskPct := "unavailable"
	if m.DiskValid {
		diskPct = fmt.Sprintf("%.1f%%", m.DiskPercent)
	}

	lines := []string{
		fmt.Sprintf("System RAM Usage: %s", ram),
		fmt.Sprintf("Disk Usage (%s): %s", m.DiskPath, diskPct),
	}
	if m.MemValid {
		lines = append(lines, fmt.Sprintf("System RAM: %.0f / %.0f MB", m.MemUsedMB, m.MemTotalMB))
	}
	if m.DiskValid {
		lines = append(lines, fmt.Sprintf("Disk Space: %.1f / %.1f GB", m.DiskUsedGB, m.DiskTotalGB))
	}
	if m.CPUValid {
		lines = append(lines, fmt.Sprintf("CPU: %d cores / %d threads", m.CPUCores, m.CPUThreads))
	}
	if m.LoadValid {
		lines = append(lines, fmt.Sprintf("Load Average: %.2f %.2f %.2f", m.LoadAvg1, m.LoadAvg5, m.LoadAvg15))
	}
	if len(m.GPUs) > 0 {
		lines = append(lines, "GPU: "+strings.Join(m.GPUs, ", "))
	}
	return lines
}

// Sources are the host readers used by a HostCollector.
type Sources struct {
	VirtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	DiskUsage     func(ctx context.Context, path string) (*disk.UsageStat, error)
	LoadAvg       func(ctx context.Context) (*load.AvgStat, error)
	CPUCounts     func(ctx context.Context, logical bool) (int, error)
	GPUs          func() ([]string, error)
}

// SystemSources reads the real host through gopsutil and ghw.
func SystemSources() Sources {
	return Sources{
		VirtualMemory: mem.VirtualMemoryWithContext,
		DiskUsage:     disk.UsageWithContext,
		LoadAvg:       load.AvgWithContext,
		CPUCounts:     cpu.CountsWithContext,
		GPUs:          ghwGPUs,
	}
}

// HostCollector gathers HostMetrics. Hardware inventory (CPU counts, GPUs)
// is read once and cached for the life of the collector.
type HostCollector struct {
	src      Sources
	diskPath string

	mu            sync.Mutex
	infoCollected bool
	cpuCores      int
	cpuThreads    int
	cpuValid      bool
	gpus          []string
}

// NewHostCollector creates a collector over the live host.
func NewHostCollector() *HostCollector {
	return NewHostCollectorWithSources(SystemSources(), rootDiskPath())
}

// NewHostCollectorWithSources creates a collector over custom readers.
func NewHostCollectorWithSources(src Sources, diskPath string) *HostCollector {
	if diskPath == "" {
		diskPath = rootDiskPath()
	}
	return &HostCollector{src: src, diskPath: diskPath}
}

// DiskPath returns the filesystem whose usage is reported.
func (c *HostCollector) DiskPath() string {
	return c.diskPath
}

// Collect gathers current host statistics.
func (c *HostCollector) Collect(ctx context.Context) HostMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := HostMetrics{DiskPath: c.diskPath}

	c.collectHardwareInfo(ctx, &m)

	if c.src.VirtualMemory != nil {
		if vm, err := c.src.VirtualMemory(ctx); err == nil && vm != nil {
			m.MemTotalMB = float64(vm.Total) / 1024 / 1024
			m.MemUsedMB = float64(vm.Used) / 1024 / 1024
			m.MemPercent = vm.UsedPercent
			m.MemValid = true
		}
	}

	if c.src.DiskUsage != nil {
		if usage, err := c.src.DiskUsage(ctx, c.diskPath); err == nil && usage != nil {
			m.DiskTotalGB = float64(usage.Total) / 1024 / 1024 / 1024
			m.DiskUsedGB = float64(usage.Used) / 1024 / 1024 / 1024
			m.DiskPercent = usage.UsedPercent
			m.DiskValid = true
		}
	}

	if c.src.LoadAvg != nil {
		if avg, err := c.src.LoadAvg(ctx); err == nil && avg != nil {
			m.LoadAvg1 = avg.Load1
			m.LoadAvg5 = avg.Load5
			m.LoadAvg15 = avg.Load15
			m.LoadValid = true
		}
	}

	return m
}

func (c *HostCollector) collectHardwareInfo(ctx context.Context, m *HostMetrics) {
	if !c.infoCollected {
		if c.src.CPUCounts != nil {
			cores, errCores := c.src.CPUCounts(ctx, false)
			threads, errThreads := c.src.CPUCounts(ctx, true)
			if errCores == nil && errThreads == nil && threads > 0 {
				c.cpuCores = cores
				c.cpuThreads = threads
				c.cpuValid = true
			}
		}
		if c.src.GPUs != nil {
			if gpus, err := c.src.GPUs(); err == nil {
				c.gpus = gpus
			}
		}
		c.infoCollected = true
	}
	m.CPUCores = c.cpuCores
	m.CPUThreads = c.cpuThreads
	m.CPUValid = c.cpuValid
	m.GPUs = append([]string(nil), c.gpus...)
}

func ghwGPUs() ([]string, error) {
	info, err := ghw.GPU()
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}

	names := make([]string, 0, len(info.GraphicsCards))
	for _, card := range info.GraphicsCards {
		names = append(names, cardName(card))
	}
	return names, nil
}

func cardName(card *ghw.GraphicsCard) string {
	var parts []string
	if card.DeviceInfo != nil {
		if card.DeviceInfo.Vendor != nil {
			parts = append(parts, card.DeviceInfo.Vendor.Name)
		}
		if card.DeviceInfo.Product != nil {
			parts = append(parts, card.DeviceInfo.Product.Name)
		}
	}
	name := strings.TrimSpace(strings.Join(parts, " "))
	if name == "" {
		name = fmt.Sprintf("GPU %d", card.Index)
	}
	return name
}

func rootDiskPath() string {
	if runtime.GOOS == "windows" {
		drive := os.Getenv("SystemDrive")
		if drive == "" {
			drive = "C:"
		}
		return drive + "\\"
	}
	return "/"
}
