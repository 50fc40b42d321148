package shell

import (
	"os"
	"path/filepath"
	"strings"
)

// maxSuggestions bounds completion responses.
const maxSuggestions = 10

// externalCandidates are common external commands offered alongside the
// builtins when completing the first word.
var externalCandidates = []string{"python", "git", "npm", "pip", "node", "java", "gcc"}

// Complete returns completion candidates for text within line: command names
// for the first word, directory entries afterwards. Directory candidates get
// a trailing slash. At most maxSuggestions entries are returned.
func (e *Engine) Complete(s *Session, text, line string) []string {
	parts := strings.Fields(line)
	firstWord := len(parts) == 0 || (len(parts) == 1 && !strings.HasSuffix(line, " "))

	if firstWord {
		return e.completeCommand(text)
	}
	return completePath(s, text)
}

func (e *Engine) completeCommand(prefix string) []string {
	var suggestions []string
	candidates := append(e.registry.Names(), externalCandidates...)
	for _, name := range candidates {
		if strings.HasPrefix(name, prefix) {
			suggestions = append(suggestions, name)
			if len(suggestions) == maxSuggestions {
				break
			}
		}
	}
	return suggestions
}

func completePath(s *Session, text string) []string {
	var dir, prefix string

	switch {
	case strings.HasPrefix(text, "/"):
		dir = filepath.Dir(text)
		prefix = filepath.Base(text)
		if strings.HasSuffix(text, "/") {
			dir, prefix = strings.TrimRight(text, "/"), ""
			if dir == "" {
				dir = "/"
			}
		}
	case strings.HasPrefix(text, "~"):
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		expanded := filepath.Join(home, strings.TrimPrefix(text[1:], "/"))
		dir = filepath.Dir(expanded)
		prefix = filepath.Base(expanded)
		if text == "~" || strings.HasSuffix(text, "/") {
			dir, prefix = expanded, ""
		}
	default:
		dir = s.Dir()
		prefix = text
		if strings.Contains(text, "/") {
			dir = filepath.Join(dir, filepath.Dir(text))
			prefix = filepath.Base(text)
			if strings.HasSuffix(text, "/") {
				prefix = ""
			}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var suggestions []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		suggestions = append(suggestions, name)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
