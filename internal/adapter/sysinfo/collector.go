// Package sysinfo implements the OS-information collaborator behind the
// process and resource snapshot builtins, backed by gopsutil.
package sysinfo

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"shellmate/internal/domain"
)

// Collector implements domain.SystemCollector on the local host.
type Collector struct{}

// New creates a local system collector.
func New() *Collector { return &Collector{} }

// Processes snapshots the running processes. Processes that disappear or
// deny inspection mid-scan are skipped.
func (c *Collector) Processes(ctx context.Context) ([]domain.ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, domain.WrapOp("sysinfo.Processes", err)
	}

	infos := make([]domain.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cpuPct, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			continue
		}
		memPct, err := p.MemoryPercentWithContext(ctx)
		if err != nil {
			continue
		}
		infos = append(infos, domain.ProcessInfo{
			PID:        p.Pid,
			Name:       name,
			CPUPercent: cpuPct,
			MemPercent: float64(memPct),
		})
	}
	return infos, nil
}

func (c *Collector) CPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, domain.WrapOp("sysinfo.CPUPercent", err)
	}
	if len(pcts) == 0 {
		return 0, nil
	}
	return pcts[0], nil
}

func (c *Collector) Memory(ctx context.Context) (domain.MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return domain.MemoryStats{}, domain.WrapOp("sysinfo.Memory", err)
	}
	return domain.MemoryStats{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		Free:        vm.Free,
		UsedPercent: vm.UsedPercent,
	}, nil
}

func (c *Collector) Swap(ctx context.Context) (domain.SwapStats, error) {
	sm, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return domain.SwapStats{}, domain.WrapOp("sysinfo.Swap", err)
	}
	return domain.SwapStats{
		Total:       sm.Total,
		Used:        sm.Used,
		Free:        sm.Free,
		UsedPercent: sm.UsedPercent,
	}, nil
}

func (c *Collector) Partitions(ctx context.Context) ([]domain.Partition, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, domain.WrapOp("sysinfo.Partitions", err)
	}
	out := make([]domain.Partition, 0, len(parts))
	for _, p := range parts {
		out = append(out, domain.Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
		})
	}
	return out, nil
}

func (c *Collector) Usage(ctx context.Context, path string) (domain.DiskUsage, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		if os.IsPermission(err) || errors.Is(err, syscall.EACCES) {
			return domain.DiskUsage{}, domain.NewDomainError("sysinfo.Usage", domain.ErrPermissionDenied, path)
		}
		return domain.DiskUsage{}, domain.WrapOp("sysinfo.Usage", err)
	}
	return domain.DiskUsage{
		Total:       u.Total,
		Used:        u.Used,
		Free:        u.Free,
		UsedPercent: u.UsedPercent,
	}, nil
}

// Terminate asks the process with the given PID to terminate.
func (c *Collector) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return domain.NewDomainError("sysinfo.Terminate", domain.ErrProcessNotFound, err.Error())
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		switch {
		case errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES) || os.IsPermission(err):
			return domain.NewDomainError("sysinfo.Terminate", domain.ErrPermissionDenied, err.Error())
		case errors.Is(err, syscall.ESRCH):
			return domain.NewDomainError("sysinfo.Terminate", domain.ErrProcessNotFound, err.Error())
		default:
			return domain.WrapOp("sysinfo.Terminate", err)
		}
	}
	return nil
}
