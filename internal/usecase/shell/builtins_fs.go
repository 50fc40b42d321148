package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"shellmate/internal/domain"
)

// builtins holds the shared collaborators of the builtin handlers.
type builtins struct {
	sys domain.SystemCollector
}

// resolve turns a command argument into an absolute path: ~ expands to the
// user home, relative paths resolve against the session working directory.
func resolve(s *Session, path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.WorkingDir, path)
	}
	return filepath.Clean(path)
}

func (b *builtins) cd(_ context.Context, s *Session, args []string) (string, error) {
	var target string
	if len(args) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Sprintf("Error changing directory: %v", err), nil
		}
		target = home
	} else {
		target = resolve(s, args[0])
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		s.WorkingDir = target
		return fmt.Sprintf("Changed directory to: %s", target), nil
	case os.IsPermission(err):
		return fmt.Sprintf("Permission denied: %s", target), nil
	default:
		// Missing path and existing-but-not-a-directory read the same to
		// the user: there is no directory there.
		return fmt.Sprintf("Directory not found: %s", target), nil
	}
}

func (b *builtins) pwd(_ context.Context, s *Session, _ []string) (string, error) {
	return s.WorkingDir, nil
}

func (b *builtins) ls(_ context.Context, s *Session, args []string) (string, error) {
	showHidden := hasFlag(args, "-a", "--all")
	longFormat := hasFlag(args, "-l", "--long")

	path := s.WorkingDir
	if operands := operandsOf(args); len(operands) > 0 {
		path = resolve(s, operands[0])
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("Permission denied: %s", path), nil
		}
		return fmt.Sprintf("Path not found: %s", path), nil
	}

	if !info.IsDir() {
		return formatFileInfo(path, longFormat), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("Permission denied: %s", path), nil
		}
		return fmt.Sprintf("Error listing directory: %v", err), nil
	}

	var items []string
	for _, entry := range entries {
		if !showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if longFormat {
			items = append(items, formatFileInfo(filepath.Join(path, entry.Name()), true))
		} else {
			items = append(items, entry.Name())
		}
	}
	if len(items) == 0 {
		return "Directory is empty", nil
	}
	sort.Strings(items)
	return strings.Join(items, "\n"), nil
}

// formatFileInfo renders one entry for ls: type + octal permissions + size +
// mtime + name in long format, bare name otherwise.
func formatFileInfo(path string, longFormat bool) string {
	if !longFormat {
		return filepath.Base(path)
	}
	info, err := os.Lstat(path)
	if err != nil {
		return filepath.Base(path)
	}

	fileType := "-"
	switch {
	case info.IsDir():
		fileType = "d"
	case info.Mode()&fs.ModeSymlink != 0:
		fileType = "l"
	}
	perms := fmt.Sprintf("%03o", info.Mode().Perm())
	mtime := info.ModTime().Format("2006-01-02 15:04")
	return fmt.Sprintf("%s%s %8d %s %s", fileType, perms, info.Size(), mtime, filepath.Base(path))
}

func (b *builtins) mkdir(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: mkdir <directory_name>", nil
	}
	var results []string
	for _, name := range args {
		if err := os.MkdirAll(resolve(s, name), 0o755); err != nil {
			results = append(results, fmt.Sprintf("Error creating %s: %v", name, err))
		} else {
			results = append(results, fmt.Sprintf("Created directory: %s", name))
		}
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) rmdir(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: rmdir <directory_name>", nil
	}
	var results []string
	for _, name := range args {
		path := resolve(s, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			results = append(results, fmt.Sprintf("Directory not found: %s", name))
			continue
		}
		if err := os.Remove(path); err != nil {
			results = append(results, fmt.Sprintf("Error removing %s: %v", name, err))
		} else {
			results = append(results, fmt.Sprintf("Removed directory: %s", name))
		}
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) rm(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: rm [-r] <file_or_directory>", nil
	}
	recursive := hasFlag(args, "-r", "-rf", "--recursive")
	force := hasFlag(args, "-f", "-rf", "--force")
	files := operandsOf(args)
	if len(files) == 0 {
		return "No files specified", nil
	}

	var results []string
	for _, name := range files {
		path := resolve(s, name)
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			if !force {
				results = append(results, fmt.Sprintf("File not found: %s", name))
			}
		case os.IsPermission(err):
			results = append(results, fmt.Sprintf("Permission denied: %s", name))
		case err != nil:
			results = append(results, fmt.Sprintf("Error removing %s: %v", name, err))
		case info.IsDir():
			if !recursive {
				results = append(results, fmt.Sprintf("Cannot remove directory %s: use -r flag", name))
				continue
			}
			if err := os.RemoveAll(path); err != nil {
				results = append(results, fmt.Sprintf("Error removing %s: %v", name, err))
			} else {
				results = append(results, fmt.Sprintf("Removed directory tree: %s", name))
			}
		default:
			if err := os.Remove(path); err != nil {
				if os.IsPermission(err) {
					results = append(results, fmt.Sprintf("Permission denied: %s", name))
				} else {
					results = append(results, fmt.Sprintf("Error removing %s: %v", name, err))
				}
			} else {
				results = append(results, fmt.Sprintf("Removed file: %s", name))
			}
		}
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) touch(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: touch <filename>", nil
	}
	var results []string
	for _, name := range args {
		if err := touchFile(resolve(s, name)); err != nil {
			results = append(results, fmt.Sprintf("Error touching %s: %v", name, err))
		} else {
			results = append(results, fmt.Sprintf("Touched: %s", name))
		}
	}
	return strings.Join(results, "\n"), nil
}

func touchFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}

func (b *builtins) cat(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: cat <filename>", nil
	}
	var results []string
	for _, name := range args {
		path := resolve(s, name)
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			results = append(results, fmt.Sprintf("File not found: %s", name))
		case os.IsPermission(err):
			results = append(results, fmt.Sprintf("Permission denied: %s", name))
		case err != nil:
			results = append(results, fmt.Sprintf("Error reading %s: %v", name, err))
		case !utf8.Valid(data):
			results = append(results, fmt.Sprintf("Cannot display binary file: %s", name))
		default:
			if len(args) > 1 {
				results = append(results, fmt.Sprintf("==> %s <==", name))
			}
			results = append(results, string(data))
		}
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) echo(_ context.Context, _ *Session, args []string) (string, error) {
	return strings.Join(args, " "), nil
}

func (b *builtins) cp(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: cp [-r] <source> <destination>", nil
	}
	recursive := hasFlag(args, "-r", "--recursive")
	files := operandsOf(args)
	if len(files) < 2 {
		return "Source and destination required", nil
	}

	source, dest := resolve(s, files[0]), resolve(s, files[1])
	info, err := os.Stat(source)
	if os.IsNotExist(err) {
		return fmt.Sprintf("Source not found: %s", files[0]), nil
	}
	if err != nil {
		return fmt.Sprintf("Error copying: %v", err), nil
	}

	if info.IsDir() {
		if !recursive {
			return fmt.Sprintf("Cannot copy directory %s: use -r flag", files[0]), nil
		}
		if err := copyTree(source, dest); err != nil {
			return fmt.Sprintf("Error copying: %v", err), nil
		}
		return fmt.Sprintf("Copied directory tree: %s -> %s", files[0], files[1]), nil
	}

	if err := copyFile(source, dest); err != nil {
		return fmt.Sprintf("Error copying: %v", err), nil
	}
	return fmt.Sprintf("Copied file: %s -> %s", files[0], files[1]), nil
}

func copyFile(source, dest string) error {
	// Copying into an existing directory keeps the source name.
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, filepath.Base(source))
	}
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyTree(source, dest string) error {
	return filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return copyFile(path, target)
	})
}

func (b *builtins) mv(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: mv <source> <destination>", nil
	}
	source, dest := resolve(s, args[0]), resolve(s, args[1])
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Sprintf("Source not found: %s", args[0]), nil
	}
	// Moving onto an existing directory moves into it.
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, filepath.Base(source))
	}
	if err := os.Rename(source, dest); err != nil {
		return fmt.Sprintf("Error moving: %v", err), nil
	}
	return fmt.Sprintf("Moved: %s -> %s", args[0], args[1]), nil
}

func (b *builtins) find(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: find <path> -name <pattern>", nil
	}
	root := resolve(s, args[0])
	var pattern string
	for i, arg := range args {
		if arg == "-name" && i+1 < len(args) {
			pattern = args[i+1]
			break
		}
	}

	var results []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			return nil
		}
		if path == root {
			return nil
		}
		if pattern != "" {
			match, merr := filepath.Match(pattern, d.Name())
			if merr != nil {
				return merr
			}
			if !match {
				return nil
			}
		}
		results = append(results, path)
		return nil
	})
	if err != nil {
		return fmt.Sprintf("Error in find: %v", err), nil
	}
	if len(results) == 0 {
		return "No matches found", nil
	}
	return strings.Join(results, "\n"), nil
}

func (b *builtins) grep(_ context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: grep <pattern> <file>", nil
	}
	pattern, name := args[0], args[1]
	f, err := os.Open(resolve(s, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("File not found: %s", name), nil
		}
		return fmt.Sprintf("Error in grep: %v", err), nil
	}
	defer f.Close()

	var results []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if strings.Contains(scanner.Text(), pattern) {
			results = append(results, fmt.Sprintf("%d: %s", lineNum, strings.TrimRight(scanner.Text(), " \t\r\n")))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Sprintf("Error in grep: %v", err), nil
	}
	if len(results) == 0 {
		return fmt.Sprintf("No matches found for '%s'", pattern), nil
	}
	return strings.Join(results, "\n"), nil
}

// treeMaxDepth bounds the recursive listing to keep output manageable.
const treeMaxDepth = 3

func (b *builtins) tree(_ context.Context, s *Session, args []string) (string, error) {
	path := s.WorkingDir
	if len(args) > 0 {
		path = resolve(s, args[0])
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("Path not found: %s", path), nil
		}
		return fmt.Sprintf("Error building tree: %v", err), nil
	}

	root := filepath.Base(path)
	if root == "" || root == string(os.PathSeparator) {
		root = path
	}
	results := []string{root}
	buildTree(path, "", &results, 0)
	return strings.Join(results, "\n"), nil
}

func buildTree(path, prefix string, results *[]string, depth int) {
	if depth >= treeMaxDepth {
		return
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		*results = append(*results, prefix+"└── [Permission Denied]")
		return
	}
	var visible []fs.DirEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		visible = append(visible, entry)
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Name() < visible[j].Name() })

	for i, entry := range visible {
		last := i == len(visible)-1
		connector := "├── "
		if last {
			connector = "└── "
		}
		*results = append(*results, prefix+connector+entry.Name())
		if entry.IsDir() {
			next := prefix + "│   "
			if last {
				next = prefix + "    "
			}
			buildTree(filepath.Join(path, entry.Name()), next, results, depth+1)
		}
	}
}

// hasFlag reports whether any of the given flags appears in args.
func hasFlag(args []string, flags ...string) bool {
	for _, arg := range args {
		for _, f := range flags {
			if arg == f {
				return true
			}
		}
	}
	return false
}

// operandsOf strips flag tokens (leading '-') from the argument list.
func operandsOf(args []string) []string {
	var out []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			out = append(out, arg)
		}
	}
	return out
}
