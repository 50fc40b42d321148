package domain

// Output sentinels recognized by front ends. The values are part of the wire
// contract with existing clients and must not change.
const (
	// ExitSignal tells the attached front end to terminate the session.
	ExitSignal = "EXIT_TERMINAL"
	// ClearScreen is the ANSI sequence emitted by the clear builtin.
	ClearScreen = "\x1b[2J\x1b[H"
)

// Exit codes used by the engine and the external executor.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitNotFound = 127
)

// Invocation is a tokenized command line: the command name plus its arguments.
type Invocation struct {
	Name string
	Args []string
}

// CommandResult is the outcome of executing one command line.
// Output may be multi-line or empty; ExitCode 0 means success.
type CommandResult struct {
	Output   string
	ExitCode int
}

// OK reports whether the command succeeded.
func (r CommandResult) OK() bool { return r.ExitCode == ExitOK }

// IsExit reports whether the result carries the session-termination sentinel.
func (r CommandResult) IsExit() bool { return r.Output == ExitSignal }
