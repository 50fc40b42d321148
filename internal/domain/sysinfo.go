package domain

import "context"

// ProcessInfo is a snapshot of one running process.
type ProcessInfo struct {
	PID        int32
	Name       string
	CPUPercent float64
	MemPercent float64
}

// MemoryStats describes virtual memory usage in bytes.
type MemoryStats struct {
	Total       uint64
	Available   uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// SwapStats describes swap usage in bytes.
type SwapStats struct {
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// Partition identifies one mounted filesystem.
type Partition struct {
	Device     string
	Mountpoint string
	Fstype     string
}

// DiskUsage describes space usage for one mountpoint in bytes.
type DiskUsage struct {
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// SystemCollector is the OS-information collaborator behind the
// ps/top/df/free/kill builtins. Implementations skip processes or partitions
// they lack permission to inspect rather than failing the whole snapshot.
type SystemCollector interface {
	// Processes returns a snapshot of running processes. Entries the caller
	// cannot inspect are omitted.
	Processes(ctx context.Context) ([]ProcessInfo, error)
	// CPUPercent returns the system-wide CPU utilization percentage.
	CPUPercent(ctx context.Context) (float64, error)
	// Memory returns virtual memory statistics.
	Memory(ctx context.Context) (MemoryStats, error)
	// Swap returns swap statistics.
	Swap(ctx context.Context) (SwapStats, error)
	// Partitions lists mounted filesystems.
	Partitions(ctx context.Context) ([]Partition, error)
	// Usage returns disk usage for the filesystem containing path.
	Usage(ctx context.Context, path string) (DiskUsage, error)
	// Terminate requests termination of the process with the given PID.
	// Returns ErrProcessNotFound or ErrPermissionDenied as appropriate.
	Terminate(ctx context.Context, pid int32) error
}
