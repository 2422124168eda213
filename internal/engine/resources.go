package engine

import (
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ResourceStats is a point-in-time snapshot of the engine process's own
// resource usage, sampled for the side-car monitor (cmd/monitor) rather
// than for anything on Search's hot path: scoring does no I/O and must
// not allocate hot buffers per entity, so resource sampling stays
// strictly an external-throttling concern, never inline with scoring.
type ResourceStats struct {
	CPUPercent    float64
	RSSBytes      uint64
	SystemMemUsed float64 // percent
}

// SampleResources reads the current process's CPU/RSS usage and the
// host's overall memory pressure, for the monitor side-car's polling loop.
func SampleResources() (ResourceStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ResourceStats{}, err
	}

	cpuPct, err := proc.CPUPercent()
	if err != nil {
		return ResourceStats{}, err
	}

	memInfo, err := proc.MemoryInfo()
	var rss uint64
	if err == nil && memInfo != nil {
		rss = memInfo.RSS
	}

	vm, err := mem.VirtualMemory()
	var sysPct float64
	if err == nil && vm != nil {
		sysPct = vm.UsedPercent
	}

	return ResourceStats{CPUPercent: cpuPct, RSSBytes: rss, SystemMemUsed: sysPct}, nil
}

// HostCPUCount reports the number of logical CPUs gopsutil sees; cmd/server
// assigns it to Engine.Concurrency to size the per-AC fan-out width. An
// Engine whose Concurrency is left at zero uses runtime.NumCPU instead.
func HostCPUCount() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts <= 0 {
		return 1
	}
	return counts
}
