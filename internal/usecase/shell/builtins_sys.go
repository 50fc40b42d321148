package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"shellmate/internal/domain"
)

const (
	procHeader  = "PID   NAME                     CPU%   MEM%"
	topProcRows = 10
	gib         = 1 << 30
)

func procDivider() string { return strings.Repeat("-", 45) }

func formatProcRow(p domain.ProcessInfo) string {
	return fmt.Sprintf("%-5d %-20s %-6.1f %-6.1f", p.PID, p.Name, p.CPUPercent, p.MemPercent)
}

func gb(bytes uint64) float64 { return float64(bytes / gib) }

func (b *builtins) ps(ctx context.Context, _ *Session, _ []string) (string, error) {
	procs, err := b.sys.Processes(ctx)
	if err != nil {
		return fmt.Sprintf("Error listing processes: %v", err), nil
	}
	results := []string{procHeader, procDivider()}
	for _, p := range procs {
		results = append(results, formatProcRow(p))
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) kill(ctx context.Context, _ *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: kill <pid>", nil
	}
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return "Invalid PID: must be a number", nil
	}
	switch err := b.sys.Terminate(ctx, int32(pid)); {
	case err == nil:
		return fmt.Sprintf("Process %d terminated", pid), nil
	case errors.Is(err, domain.ErrProcessNotFound):
		return fmt.Sprintf("No such process: %s", args[0]), nil
	case errors.Is(err, domain.ErrPermissionDenied):
		return fmt.Sprintf("Access denied: cannot kill process %s", args[0]), nil
	default:
		return fmt.Sprintf("Error killing process: %v", err), nil
	}
}

func (b *builtins) top(ctx context.Context, _ *Session, _ []string) (string, error) {
	cpuPercent, err := b.sys.CPUPercent(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting system info: %v", err), nil
	}
	memory, err := b.sys.Memory(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting system info: %v", err), nil
	}
	disk, err := b.sys.Usage(ctx, "/")
	if err != nil {
		return fmt.Sprintf("Error getting system info: %v", err), nil
	}

	results := []string{
		"System Resource Usage",
		strings.Repeat("=", 30),
		fmt.Sprintf("CPU Usage: %.1f%%", cpuPercent),
		fmt.Sprintf("Memory Usage: %.1f%% (%.1fGB / %.1fGB)", memory.UsedPercent, gb(memory.Used), gb(memory.Total)),
		fmt.Sprintf("Disk Usage: %.1f%% (%.1fGB / %.1fGB)", disk.UsedPercent, gb(disk.Used), gb(disk.Total)),
		"",
		"Top Processes by CPU:",
		procHeader,
		procDivider(),
	}

	procs, err := b.sys.Processes(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting system info: %v", err), nil
	}
	sort.SliceStable(procs, func(i, j int) bool { return procs[i].CPUPercent > procs[j].CPUPercent })
	for i, p := range procs {
		if i >= topProcRows {
			break
		}
		results = append(results, formatProcRow(p))
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) df(ctx context.Context, _ *Session, _ []string) (string, error) {
	parts, err := b.sys.Partitions(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting disk info: %v", err), nil
	}

	results := []string{"Filesystem Usage", strings.Repeat("=", 30)}
	for _, part := range parts {
		usage, err := b.sys.Usage(ctx, part.Mountpoint)
		if err != nil {
			// Unreadable mounts are reported inline, not fatal.
			results = append(results, fmt.Sprintf("Permission denied: %s", part.Device), "")
			continue
		}
		results = append(results,
			fmt.Sprintf("Device: %s", part.Device),
			fmt.Sprintf("  Mountpoint: %s", part.Mountpoint),
			fmt.Sprintf("  File system: %s", part.Fstype),
			fmt.Sprintf("  Total: %.1fGB", gb(usage.Total)),
			fmt.Sprintf("  Used: %.1fGB (%.1f%%)", gb(usage.Used), usage.UsedPercent),
			fmt.Sprintf("  Free: %.1fGB", gb(usage.Free)),
			"",
		)
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) free(ctx context.Context, _ *Session, _ []string) (string, error) {
	memory, err := b.sys.Memory(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting memory info: %v", err), nil
	}
	swap, err := b.sys.Swap(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting memory info: %v", err), nil
	}

	results := []string{
		"Memory Usage Information",
		strings.Repeat("=", 30),
		fmt.Sprintf("Total RAM: %.1fGB", gb(memory.Total)),
		fmt.Sprintf("Available RAM: %.1fGB", gb(memory.Available)),
		fmt.Sprintf("Used RAM: %.1fGB (%.1f%%)", gb(memory.Used), memory.UsedPercent),
		fmt.Sprintf("Free RAM: %.1fGB", gb(memory.Free)),
		"",
		fmt.Sprintf("Total Swap: %.1fGB", gb(swap.Total)),
		fmt.Sprintf("Used Swap: %.1fGB (%.1f%%)", gb(swap.Used), swap.UsedPercent),
		fmt.Sprintf("Free Swap: %.1fGB", gb(swap.Free)),
	}
	return strings.Join(results, "\n"), nil
}
