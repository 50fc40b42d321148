package shell

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"shellmate/internal/domain"
	"shellmate/internal/infra/tracer"
)

// ExternalRunner delegates a command not found in the builtin registry to a
// child process. Implementations bound execution with a wall-clock timeout
// and normalize launch failures into a CommandResult.
type ExternalRunner interface {
	Run(ctx context.Context, name string, args []string, workDir string) domain.CommandResult
	Name() string
}

// Engine resolves a command line against the builtin registry and executes
// it, falling back to the external runner. It owns the execution boundary:
// no builtin fault escapes Execute.
type Engine struct {
	registry *Registry
	runner   ExternalRunner
	logger   *slog.Logger
}

// NewEngine creates a command engine.
func NewEngine(registry *Registry, runner ExternalRunner, logger *slog.Logger) *Engine {
	return &Engine{registry: registry, runner: runner, logger: logger}
}

// Registry exposes the builtin set, e.g. for completion.
func (e *Engine) Registry() *Registry { return e.registry }

// Execute runs one command line against the session and returns its output
// and exit code. The session is locked for the whole invocation, so
// concurrent calls on the same session serialize.
func (e *Engine) Execute(ctx context.Context, s *Session, line string) domain.CommandResult {
	if strings.TrimSpace(line) == "" {
		return domain.CommandResult{ExitCode: domain.ExitOK}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Every non-empty line lands in history, whatever its outcome.
	s.History.Append(line)
	s.UpdatedAt = time.Now()

	ctx, span := tracer.StartSpan(ctx, "engine.execute",
		trace.WithAttributes(tracer.StringAttr("command.line", line)),
	)
	defer span.End()

	tokens, err := Tokenize(line)
	if err != nil {
		tracer.RecordError(span, err)
		return domain.CommandResult{
			Output:   fmt.Sprintf("Command parsing error: %v", err),
			ExitCode: domain.ExitFailure,
		}
	}
	if len(tokens) == 0 {
		return domain.CommandResult{ExitCode: domain.ExitOK}
	}

	name, args := tokens[0], tokens[1:]

	// Alias substitution on the leading token, exactly once. No recursive
	// expansion, so an alias whose value names itself cannot loop.
	if replacement, ok := s.Aliases[name]; ok {
		if sub, err := Tokenize(replacement); err == nil && len(sub) > 0 {
			name = sub[0]
			args = append(sub[1:], args...)
		}
	}
	span.SetAttributes(tracer.StringAttr("command.name", name))

	if handler, ok := e.registry.Lookup(name); ok {
		res := e.runBuiltin(ctx, s, name, handler, args)
		if res.OK() {
			tracer.SetOK(span)
		}
		span.SetAttributes(tracer.IntAttr("command.exit_code", res.ExitCode))
		return res
	}

	res := e.runner.Run(ctx, name, args, s.WorkingDir)
	span.SetAttributes(tracer.IntAttr("command.exit_code", res.ExitCode))
	return res
}

// runBuiltin invokes a builtin inside the failure boundary: errors and
// panics surface as a message with exit code 1 instead of propagating.
func (e *Engine) runBuiltin(ctx context.Context, s *Session, name string, handler Handler, args []string) (res domain.CommandResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("builtin panicked", "command", name, "panic", r)
			res = domain.CommandResult{
				Output:   fmt.Sprintf("Error executing %s: %v", name, r),
				ExitCode: domain.ExitFailure,
			}
		}
	}()

	output, err := handler(ctx, s, args)
	if err != nil {
		e.logger.Warn("builtin failed", "command", name, "error", err)
		return domain.CommandResult{
			Output:   fmt.Sprintf("Error executing %s: %v", name, err),
			ExitCode: domain.ExitFailure,
		}
	}
	return domain.CommandResult{Output: output, ExitCode: domain.ExitOK}
}
