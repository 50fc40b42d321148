package domain

import "fmt"

// Category sentinels for the failure taxonomy. Builtins and adapters wrap
// these with DomainError so callers can dispatch with errors.Is.
var (
	ErrNotFound         = fmt.Errorf("not found")
	ErrPermissionDenied = fmt.Errorf("permission denied")
	ErrTimeout          = fmt.Errorf("operation timed out")
	ErrInvalidInput     = fmt.Errorf("invalid input")
	ErrParse            = fmt.Errorf("parse error")
)

// Sentinel errors for the terminal domain.
var (
	ErrCommandNotFound = fmt.Errorf("command not found")
	ErrLaunchFailure   = fmt.Errorf("failed to launch external command")
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrNotADirectory   = fmt.Errorf("not a directory")
	ErrIsADirectory    = fmt.Errorf("is a directory")
	ErrProcessNotFound = fmt.Errorf("no such process")
	ErrHistoryStore    = fmt.Errorf("history store failed")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Engine.Execute")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
