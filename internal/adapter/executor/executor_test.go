package executor

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shellmate/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	l := NewLocal(5*time.Second, testLogger())

	res := l.Run(context.Background(), "echo", []string{"hello"}, t.TempDir())
	assert.Equal(t, domain.ExitOK, res.ExitCode)
	assert.Equal(t, "hello\n", res.Output)
}

func TestRunNotFound(t *testing.T) {
	l := NewLocal(5*time.Second, testLogger())

	res := l.Run(context.Background(), "definitely-not-a-command-xyz", nil, t.TempDir())
	assert.Equal(t, domain.ExitNotFound, res.ExitCode)
	assert.Equal(t, "Command not found: definitely-not-a-command-xyz", res.Output)
}

func TestRunPropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	l := NewLocal(5*time.Second, testLogger())

	res := l.Run(context.Background(), "sh", []string{"-c", "exit 3"}, t.TempDir())
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunStderrAppendedToStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	l := NewLocal(5*time.Second, testLogger())

	res := l.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"}, t.TempDir())
	assert.Equal(t, domain.ExitOK, res.ExitCode)
	assert.Equal(t, "out\nerr\n", res.Output)
}

func TestRunTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	l := NewLocal(1*time.Second, testLogger())

	start := time.Now()
	res := l.Run(context.Background(), "sleep", []string{"5"}, t.TempDir())
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, domain.ExitFailure, res.ExitCode)
	assert.Equal(t, "Command timed out after 1 seconds", res.Output)
}

func TestRunUsesWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	l := NewLocal(5*time.Second, testLogger())
	dir := t.TempDir()

	res := l.Run(context.Background(), "pwd", nil, dir)
	assert.Equal(t, domain.ExitOK, res.ExitCode)
	assert.Contains(t, res.Output, dir)
}

func TestNewLocalDefaultsTimeout(t *testing.T) {
	l := NewLocal(0, testLogger())
	assert.Equal(t, DefaultTimeout, l.timeout)
}
