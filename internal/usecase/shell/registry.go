package shell

import (
	"context"

	"shellmate/internal/domain"
)

// Handler executes one builtin against the session. The returned string is
// the command output shown to the user; a non-nil error is caught at the
// engine boundary and reported as a failure of the named command.
//
// Handlers run with the session lock held and may access Session fields
// directly.
type Handler func(ctx context.Context, s *Session, args []string) (string, error)

// Builtin is one natively implemented command. AltNames carries the
// platform alternate spellings (dir for ls, del for rm, ...).
type Builtin struct {
	Name     string
	AltNames []string
	Run      Handler
}

// Registry is the closed, ordered set of builtin commands.
type Registry struct {
	order []Builtin
	index map[string]Handler
}

// NewRegistry builds the builtin command set. The collector backs the
// process/resource snapshot commands (ps, top, df, free, kill).
func NewRegistry(collector domain.SystemCollector) *Registry {
	b := &builtins{sys: collector}

	order := []Builtin{
		{Name: "cd", Run: b.cd},
		{Name: "pwd", Run: b.pwd},
		{Name: "ls", AltNames: []string{"dir"}, Run: b.ls},
		{Name: "mkdir", Run: b.mkdir},
		{Name: "rmdir", Run: b.rmdir},
		{Name: "rm", AltNames: []string{"del"}, Run: b.rm},
		{Name: "touch", Run: b.touch},
		{Name: "cat", AltNames: []string{"type"}, Run: b.cat},
		{Name: "echo", Run: b.echo},
		{Name: "cp", AltNames: []string{"copy"}, Run: b.cp},
		{Name: "mv", AltNames: []string{"move"}, Run: b.mv},
		{Name: "find", Run: b.find},
		{Name: "grep", Run: b.grep},
		{Name: "ps", Run: b.ps},
		{Name: "kill", Run: b.kill},
		{Name: "top", Run: b.top},
		{Name: "df", Run: b.df},
		{Name: "free", Run: b.free},
		{Name: "whoami", Run: b.whoami},
		{Name: "date", Run: b.date},
		{Name: "history", Run: b.history},
		{Name: "clear", AltNames: []string{"cls"}, Run: b.clear},
		{Name: "exit", AltNames: []string{"quit"}, Run: b.exit},
		{Name: "help", Run: b.help},
		{Name: "alias", Run: b.alias},
		{Name: "env", Run: b.env},
		{Name: "set", Run: b.set},
		{Name: "tree", Run: b.tree},
	}

	index := make(map[string]Handler, len(order)*2)
	for _, cmd := range order {
		index[cmd.Name] = cmd.Run
		for _, alt := range cmd.AltNames {
			index[alt] = cmd.Run
		}
	}
	return &Registry{order: order, index: index}
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.index[name]
	return h, ok
}

// Names returns every registered command name, alternates included, in
// declaration order. Used for command completion.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.index))
	for _, cmd := range r.order {
		names = append(names, cmd.Name)
		names = append(names, cmd.AltNames...)
	}
	return names
}
