package observability

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats содержит сведения о процессе стримера
type ProcessStats struct {
	StartTime time.Time
	proc      *process.Process
}

// NewProcessStats создает сборщик статистики текущего процесса
func NewProcessStats() (*ProcessStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &ProcessStats{StartTime: time.Now(), proc: proc}, nil
}

// Uptime возвращает время работы в читаемом виде
func (ps *ProcessStats) Uptime() string {
	return FormatUptime(time.Since(ps.StartTime))
}

// FormatUptime форматирует длительность как "1д 2ч 3м 4с"
func FormatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// RSSMegabytes возвращает резидентную память процесса в MB
func (ps *ProcessStats) RSSMegabytes() (float64, error) {
	info, err := ps.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(info.RSS) / 1024 / 1024, nil
}

// CPUPercent возвращает использование CPU процессом в процентах
func (ps *ProcessStats) CPUPercent() (float64, error) {
	return ps.proc.CPUPercent()
}

// HeapMegabytes возвращает размер кучи Go в MB
func HeapMegabytes() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / 1024 / 1024
}
