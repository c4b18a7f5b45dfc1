package system

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ivlev/scrollscene/internal/core"
)

// Usage is a snapshot of this process and the host memory
type Usage struct {
	RSS           uint64
	CPUPercent    float64
	HostTotal     uint64
	HostUsedRatio float64 // percent
	Goroutines    int
}

// ReadUsage samples the current process through gopsutil
func ReadUsage() (Usage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Usage{}, errors.Wrap(err, "open process")
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		return Usage{}, errors.Wrap(err, "process memory")
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return Usage{}, errors.Wrap(err, "process cpu")
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Usage{}, errors.Wrap(err, "host memory")
	}

	return Usage{
		RSS:           memInfo.RSS,
		CPUPercent:    cpu,
		HostTotal:     vm.Total,
		HostUsedRatio: vm.UsedPercent,
		Goroutines:    runtime.NumGoroutine(),
	}, nil
}

// ReportUsage logs a usage line tagged with label
func ReportUsage(label string) {
	u, err := ReadUsage()
	if err != nil {
		core.LogWarn("[%s] usage unavailable: %v", label, err)
		return
	}
	core.LogInfo("[%s] rss %.1f MiB, cpu %.1f%%, %d goroutines, host memory %.1f%% of %.1f GiB",
		label, float64(u.RSS)/(1<<20), u.CPUPercent, u.Goroutines, u.HostUsedRatio, float64(u.HostTotal)/(1<<30))
}
