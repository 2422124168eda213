// Command monitor is a standalone process-resource reporter: it polls
// CPU/RSS for a target PID (the monitor's own process by default)
// and the host's overall memory pressure, and prints one JSON line per
// sample — a standalone polling loop against an external resource.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/eci-voterfind/voterfind/internal/engine"
)

var (
	pid      = flag.Int("pid", 0, "process id to monitor (0 = this process)")
	interval = flag.Duration("interval", 2*time.Second, "sampling interval")
	once     = flag.Bool("once", false, "sample once and exit instead of looping")
)

// Sample is one point-in-time resource reading, printed as a JSON line.
type Sample struct {
	Timestamp        string  `json:"timestamp"`
	PID              int32   `json:"pid"`
	CPUPercent       float64 `json:"cpu_percent"`
	RSSBytes         uint64  `json:"rss_bytes"`
	SystemMemPercent float64 `json:"system_mem_percent"`
	MemPressure      string  `json:"mem_pressure"`
}

func main() {
	flag.Parse()

	targetPID := int32(*pid)
	sample := sampleProcessFunc(targetPID)
	if targetPID == 0 {
		// Self-monitoring reuses the engine's own sampler
		// (engine.SampleResources) instead of attaching through gopsutil.
		targetPID = int32(os.Getpid())
		sample = func() (Sample, error) { return sampleSelf(targetPID) }
	}

	if *once {
		s, err := sample()
		if err != nil {
			log.Fatalf("[monitor] sample failed: %v", err)
		}
		line, _ := formatJSON(s)
		fmt.Println(line)
		return
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	log.Printf("[monitor] polling pid %d every %s", targetPID, *interval)
	for {
		select {
		case <-stop:
			log.Println("[monitor] stopped")
			return
		case <-ticker.C:
			s, err := sample()
			if err != nil {
				log.Printf("[monitor] sample error: %v", err)
				continue
			}
			line, err := formatJSON(s)
			if err != nil {
				log.Printf("[monitor] encode error: %v", err)
				continue
			}
			fmt.Println(line)
		}
	}
}

// sampleSelf reads this process's own resource usage through the engine's
// sampler.
func sampleSelf(pid int32) (Sample, error) {
	rs, err := engine.SampleResources()
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		PID:              pid,
		CPUPercent:       rs.CPUPercent,
		RSSBytes:         rs.RSSBytes,
		SystemMemPercent: rs.SystemMemUsed,
		MemPressure:      classifyMemPressure(rs.SystemMemUsed),
	}, nil
}

// sampleProcessFunc attaches to an external pid lazily: attachment errors
// surface on the first sample rather than at startup, so a monitor started
// moments before its target survives the race.
func sampleProcessFunc(pid int32) func() (Sample, error) {
	var proc *process.Process
	return func() (Sample, error) {
		if proc == nil {
			p, err := process.NewProcess(pid)
			if err != nil {
				return Sample{}, err
			}
			proc = p
		}
		return sampleProcess(proc, pid)
	}
}

// sampleProcess reads proc's CPU/RSS usage and the host's overall memory
// pressure into a Sample.
func sampleProcess(proc *process.Process, pid int32) (Sample, error) {
	cpuPct, err := proc.CPUPercent()
	if err != nil {
		return Sample{}, err
	}

	var rss uint64
	if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
		rss = memInfo.RSS
	}

	var sysPct float64
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		sysPct = vm.UsedPercent
	}

	return Sample{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		PID:              pid,
		CPUPercent:       cpuPct,
		RSSBytes:         rss,
		SystemMemPercent: sysPct,
		MemPressure:      classifyMemPressure(sysPct),
	}, nil
}

// classifyMemPressure buckets host memory usage into a coarse label a
// caller's throttling logic can act on without hardcoding a threshold
// itself.
func classifyMemPressure(systemMemPercent float64) string {
	switch {
	case systemMemPercent >= 90:
		return "critical"
	case systemMemPercent >= 75:
		return "high"
	case systemMemPercent >= 50:
		return "moderate"
	default:
		return "low"
	}
}

// formatJSON renders a Sample as a single compact JSON line, stamped with
// a UTC timestamp that is already baked into s (rather than taken here),
// so this function stays a pure, testable projection.
func formatJSON(s Sample) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
