package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"myapp/database"
	"myapp/models"
	"myapp/utils"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"
)

// MetricsProvider samples host cpu/memory/disk usage.
type MetricsProvider interface {
	Sample(ctx context.Context) (*models.SystemMetrics, error)
}

// Hostname returns the machine name, or "unknown" when it cannot be read.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

func Now() string {
	return utils.Timestamp(time.Now())
}

// HostMetricsProvider reads the local host through gopsutil.
type HostMetricsProvider struct {
	// CPUInterval is how long cpu usage is measured over; zero compares against
	// the previous call instead of blocking.
	CPUInterval time.Duration
	DiskPath    string
}

func NewHostMetricsProvider(cpuInterval time.Duration) *HostMetricsProvider {
	return &HostMetricsProvider{CPUInterval: cpuInterval, DiskPath: "/"}
}

func (p *HostMetricsProvider) Sample(ctx context.Context) (*models.SystemMetrics, error) {
	cpuPercent, err := cpu.PercentWithContext(ctx, p.CPUInterval, false)
	if err != nil {
		return nil, fmt.Errorf("reading cpu usage: %w", err)
	}
	if len(cpuPercent) == 0 {
		return nil, fmt.Errorf("reading cpu usage: no samples")
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading memory usage: %w", err)
	}

	usage, err := disk.UsageWithContext(ctx, p.DiskPath)
	if err != nil {
		return nil, fmt.Errorf("reading disk usage: %w", err)
	}

	return &models.SystemMetrics{
		CPUPercent:    cpuPercent[0],
		MemoryPercent: vm.UsedPercent,
		DiskPercent:   usage.UsedPercent,
		Hostname:      Hostname(),
		Timestamp:     Now(),
	}, nil
}

// StatusProbe reports application and store liveness.
type StatusProbe struct {
	db *gorm.DB
}

func NewStatusProbe(db *gorm.DB) *StatusProbe {
	return &StatusProbe{db: db}
}

// DatabaseStatus is "Connected" or "Error: " plus the first 50 characters of the failure.
func (p *StatusProbe) DatabaseStatus(ctx context.Context) string {
	if err := database.Ping(ctx, p.db); err != nil {
		return "Error: " + utils.Truncate(err.Error(), 50)
	}
	return "Connected"
}

// Status never fails; a broken store shows up in the Database field.
func (p *StatusProbe) Status(ctx context.Context) *models.SystemStatus {
	return &models.SystemStatus{
		Application: "healthy",
		Database:    p.DatabaseStatus(ctx),
		Hostname:    Hostname(),
		Timestamp:   Now(),
	}
}
