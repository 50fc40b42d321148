package shell

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"shellmate/internal/domain"
)

// historyShown is how many entries the history builtin prints.
const historyShown = 50

func (b *builtins) whoami(_ context.Context, s *Session, _ []string) (string, error) {
	user := s.Env["USER"]
	if user == "" {
		user = s.Env["USERNAME"]
	}
	if user == "" {
		user = "unknown"
	}
	return user, nil
}

func (b *builtins) date(_ context.Context, _ *Session, _ []string) (string, error) {
	return time.Now().Format("2006-01-02 15:04:05"), nil
}

func (b *builtins) history(_ context.Context, s *Session, _ []string) (string, error) {
	entries := s.History.Tail(historyShown)
	if len(entries) == 0 {
		return "No command history", nil
	}
	var results []string
	for i, cmd := range entries {
		results = append(results, fmt.Sprintf("%3d  %s", i+1, cmd))
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) clear(_ context.Context, _ *Session, _ []string) (string, error) {
	return domain.ClearScreen, nil
}

func (b *builtins) exit(_ context.Context, _ *Session, _ []string) (string, error) {
	return domain.ExitSignal, nil
}

func (b *builtins) alias(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		if len(s.Aliases) == 0 {
			return "No aliases defined", nil
		}
		names := make([]string, 0, len(s.Aliases))
		for name := range s.Aliases {
			names = append(names, name)
		}
		sort.Strings(names)
		results := []string{"Defined aliases:"}
		for _, name := range names {
			results = append(results, fmt.Sprintf("  %s = %s", name, s.Aliases[name]))
		}
		return strings.Join(results, "\n"), nil
	}

	name, value, ok := strings.Cut(args[0], "=")
	if !ok {
		return "Usage: alias name=command", nil
	}
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	s.Aliases[name] = value
	return fmt.Sprintf("Alias created: %s = %s", name, value), nil
}

func (b *builtins) env(_ context.Context, s *Session, _ []string) (string, error) {
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var results []string
	for _, k := range keys {
		results = append(results, fmt.Sprintf("%s=%s", k, s.Env[k]))
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) set(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: set VARIABLE=value", nil
	}
	name, value, ok := strings.Cut(args[0], "=")
	if !ok {
		return "Usage: set VARIABLE=value", nil
	}
	s.Env[name] = value
	// Child processes inherit the live process environment.
	if err := os.Setenv(name, value); err != nil {
		return fmt.Sprintf("Error setting %s: %v", name, err), nil
	}
	return fmt.Sprintf("Set %s=%s", name, value), nil
}

func (b *builtins) help(_ context.Context, _ *Session, _ []string) (string, error) {
	return helpText, nil
}

const helpText = `shellmate - Available Commands:

File Operations:
  ls, dir          - List directory contents
  cd               - Change directory
  pwd              - Print working directory
  mkdir            - Create directory
  rmdir            - Remove empty directory
  rm, del          - Remove files/directories
  touch            - Create empty file
  cat, type        - Display file contents
  cp, copy         - Copy files/directories
  mv, move         - Move/rename files/directories
  find             - Find files and directories
  grep             - Search text in files
  tree             - Display directory tree

System Monitoring:
  ps               - List processes
  kill             - Kill process by PID
  top              - Display system resource usage
  df               - Display filesystem usage
  free             - Display memory usage

Utilities:
  echo             - Echo text
  whoami           - Display current user
  date             - Display current date/time
  history          - Show command history
  clear, cls       - Clear screen
  env              - Show environment variables
  set              - Set environment variable
  alias            - Create command aliases
  help             - Show this help

Navigation:
  exit, quit       - Exit terminal

Use -h or --help with most commands for more options.`
