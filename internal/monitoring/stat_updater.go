package monitoring

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostStats is a point-in-time sample of host and process resource usage.
type HostStats struct {
	HostCPUPercent    float64   `json:"hostCpuPercent"`
	HostMemoryPercent float64   `json:"hostMemoryPercent"`
	ProcessCPUPercent float64   `json:"processCpuPercent"`
	ProcessRSSBytes   uint64    `json:"processRssBytes"`
	Goroutines        int       `json:"goroutines"`
	UptimeSeconds     int64     `json:"uptimeSeconds"`
	SampledAt         time.Time `json:"sampledAt"`
}

// StatUpdater is responsible for periodically sampling resource usage.
type StatUpdater struct {
	interval time.Duration
	proc     *process.Process
	started  time.Time

	mu     sync.RWMutex
	latest HostStats

	done     chan struct{}
	stopOnce sync.Once
}

// NewStatUpdater creates a new StatUpdater sampling every interval.
func NewStatUpdater(interval time.Duration) *StatUpdater {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn().Err(err).Msg("StatUpdater: process stats unavailable")
	}
	return &StatUpdater{
		interval: interval,
		proc:     proc,
		started:  time.Now(),
		done:     make(chan struct{}),
	}
}

// Run starts the periodic updates.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")
	ticker := time.NewTicker(su.interval)
	defer ticker.Stop()

	// Run once immediately on start
	su.sample()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-ticker.C:
			su.sample()
		}
	}
}

// Stop halts the periodic updates.
func (su *StatUpdater) Stop() {
	su.stopOnce.Do(func() { close(su.done) })
}

// Snapshot returns the most recent sample.
func (su *StatUpdater) Snapshot() HostStats {
	su.mu.RLock()
	defer su.mu.RUnlock()
	return su.latest
}

// sample collects a fresh HostStats. Failed probes leave their fields at zero.
func (su *StatUpdater) sample() {
	now := time.Now()
	stats := HostStats{
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(now.Sub(su.started).Seconds()),
		SampledAt:     now.UTC(),
	}

	if pct, err := cpu.Percent(0, false); err != nil {
		log.Warn().Err(err).Msg("StatUpdater: could not read host CPU")
	} else if len(pct) > 0 {
		stats.HostCPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn().Err(err).Msg("StatUpdater: could not read host memory")
	} else {
		stats.HostMemoryPercent = vm.UsedPercent
	}
	if su.proc != nil {
		if pct, err := su.proc.CPUPercent(); err == nil {
			stats.ProcessCPUPercent = pct
		}
		if info, err := su.proc.MemoryInfo(); err == nil {
			stats.ProcessRSSBytes = info.RSS
		}
	}

	su.mu.Lock()
	su.latest = stats
	su.mu.Unlock()
}
