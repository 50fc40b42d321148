package shell

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shellmate/internal/domain"
)

func sampleCollector() *fakeCollector {
	return &fakeCollector{
		procs: []domain.ProcessInfo{
			{PID: 1, Name: "init", CPUPercent: 0.1, MemPercent: 0.5},
			{PID: 42, Name: "worker", CPUPercent: 55.5, MemPercent: 12.0},
			{PID: 43, Name: "idler", CPUPercent: 2.0, MemPercent: 1.0},
		},
		cpu: 37.5,
		memory: domain.MemoryStats{
			Total:       16 << 30,
			Available:   8 << 30,
			Used:        8 << 30,
			Free:        8 << 30,
			UsedPercent: 50.0,
		},
		swap: domain.SwapStats{
			Total:       2 << 30,
			Used:        1 << 30,
			Free:        1 << 30,
			UsedPercent: 50.0,
		},
		partitions: []domain.Partition{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
			{Device: "/dev/sdb1", Mountpoint: "/locked", Fstype: "ext4"},
		},
		usage: map[string]domain.DiskUsage{
			"/": {Total: 100 << 30, Used: 40 << 30, Free: 60 << 30, UsedPercent: 40.0},
		},
		terminateErr: map[int32]error{},
	}
}

func TestPsOutput(t *testing.T) {
	b := &builtins{sys: sampleCollector()}

	out, err := b.ps(context.Background(), nil, nil)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "PID   NAME                     CPU%   MEM%", lines[0])
	assert.Equal(t, strings.Repeat("-", 45), lines[1])
	assert.Equal(t, fmt.Sprintf("%-5d %-20s %-6.1f %-6.1f", 1, "init", 0.1, 0.5), lines[2])
	assert.Contains(t, lines[3], "worker")
	assert.Contains(t, lines[3], "55.5")
}

func TestKill(t *testing.T) {
	fc := sampleCollector()
	fc.terminateErr[7] = domain.NewDomainError("fake", domain.ErrProcessNotFound, "7")
	fc.terminateErr[8] = domain.NewDomainError("fake", domain.ErrPermissionDenied, "8")
	b := &builtins{sys: fc}

	out, err := b.kill(context.Background(), nil, []string{"42"})
	require.NoError(t, err)
	assert.Equal(t, "Process 42 terminated", out)
	assert.Equal(t, []int32{42}, fc.terminated)

	out, err = b.kill(context.Background(), nil, []string{"7"})
	require.NoError(t, err)
	assert.Equal(t, "No such process: 7", out)

	out, err = b.kill(context.Background(), nil, []string{"8"})
	require.NoError(t, err)
	assert.Equal(t, "Access denied: cannot kill process 8", out)

	out, err = b.kill(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Usage: kill <pid>", out)
}

func TestTopOutput(t *testing.T) {
	b := &builtins{sys: sampleCollector()}

	out, err := b.top(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "System Resource Usage")
	assert.Contains(t, out, "CPU Usage: 37.5%")
	assert.Contains(t, out, "Memory Usage: 50.0% (8.0GB / 16.0GB)")
	assert.Contains(t, out, "Disk Usage: 40.0% (40.0GB / 100.0GB)")
	assert.Contains(t, out, "Top Processes by CPU:")

	// Rows are ordered by descending CPU.
	workerIdx := strings.Index(out, "worker")
	idlerIdx := strings.Index(out, "idler")
	initIdx := strings.Index(out, "init")
	assert.Less(t, workerIdx, idlerIdx)
	assert.Less(t, idlerIdx, initIdx)
}

func TestDfReportsUnreadableMountsInline(t *testing.T) {
	b := &builtins{sys: sampleCollector()}

	out, err := b.df(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Device: /dev/sda1")
	assert.Contains(t, out, "Total: 100.0GB")
	assert.Contains(t, out, "Used: 40.0GB (40.0%)")
	assert.Contains(t, out, "Permission denied: /dev/sdb1")
}

func TestFreeOutput(t *testing.T) {
	b := &builtins{sys: sampleCollector()}

	out, err := b.free(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Total RAM: 16.0GB")
	assert.Contains(t, out, "Used RAM: 8.0GB (50.0%)")
	assert.Contains(t, out, "Total Swap: 2.0GB")
	assert.Contains(t, out, "Used Swap: 1.0GB (50.0%)")
}
