package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	sess := NewSession("test")
	sess.WorkingDir = t.TempDir()
	return sess
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve(t *testing.T) {
	sess := newTestSession(t)
	root := sess.WorkingDir

	assert.Equal(t, filepath.Join(root, "a.txt"), resolve(sess, "a.txt"))
	assert.Equal(t, "/etc/hosts", resolve(sess, "/etc/hosts"))
	assert.Equal(t, filepath.Join(root, "a"), resolve(sess, "./b/../a"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, resolve(sess, "~"))
	assert.Equal(t, filepath.Join(home, "x"), resolve(sess, "~/x"))
}

func TestLsFlagsAndOperands(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	writeFile(t, filepath.Join(sess.WorkingDir, "visible.txt"), "")
	writeFile(t, filepath.Join(sess.WorkingDir, ".hidden"), "")

	out, err := b.ls(context.Background(), sess, nil)
	require.NoError(t, err)
	assert.Equal(t, "visible.txt", out)

	out, err = b.ls(context.Background(), sess, []string{"-a"})
	require.NoError(t, err)
	assert.Contains(t, out, ".hidden")

	// A flag must never be taken as the path operand.
	out, err = b.ls(context.Background(), sess, []string{"-l"})
	require.NoError(t, err)
	assert.Contains(t, out, "visible.txt")
	assert.NotContains(t, out, "Path not found")

	out, err = b.ls(context.Background(), sess, []string{"-l", "visible.txt"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-"), "long format starts with the type char: %q", out)
	assert.Contains(t, out, "visible.txt")
}

func TestLsEmptyDirectory(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)

	out, err := b.ls(context.Background(), sess, nil)
	require.NoError(t, err)
	assert.Equal(t, "Directory is empty", out)
}

func TestMkdirAndRmdir(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)

	out, err := b.mkdir(context.Background(), sess, []string{"a", "b"})
	require.NoError(t, err)
	assert.Contains(t, out, "Created directory: a")
	assert.Contains(t, out, "Created directory: b")
	assert.DirExists(t, filepath.Join(sess.WorkingDir, "a"))

	out, err = b.rmdir(context.Background(), sess, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, "Removed directory: a", out)

	out, err = b.rmdir(context.Background(), sess, []string{"missing"})
	require.NoError(t, err)
	assert.Equal(t, "Directory not found: missing", out)
}

func TestRm(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	writeFile(t, filepath.Join(sess.WorkingDir, "f.txt"), "x")

	out, err := b.rm(context.Background(), sess, []string{"f.txt"})
	require.NoError(t, err)
	assert.Equal(t, "Removed file: f.txt", out)
	assert.NoFileExists(t, filepath.Join(sess.WorkingDir, "f.txt"))

	out, err = b.rm(context.Background(), sess, []string{"f.txt"})
	require.NoError(t, err)
	assert.Equal(t, "File not found: f.txt", out)

	// -f suppresses the missing-file message.
	out, err = b.rm(context.Background(), sess, []string{"-f", "f.txt"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTouchUpdatesExistingFile(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	path := filepath.Join(sess.WorkingDir, "f.txt")
	writeFile(t, path, "keep me")

	out, err := b.touch(context.Background(), sess, []string{"f.txt"})
	require.NoError(t, err)
	assert.Equal(t, "Touched: f.txt", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data), "touch must not truncate")
}

func TestCat(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	writeFile(t, filepath.Join(sess.WorkingDir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(sess.WorkingDir, "b.txt"), "beta")
	require.NoError(t, os.WriteFile(filepath.Join(sess.WorkingDir, "bin.dat"), []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

	out, err := b.cat(context.Background(), sess, []string{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "alpha", out)

	out, err = b.cat(context.Background(), sess, []string{"a.txt", "b.txt"})
	require.NoError(t, err)
	assert.Contains(t, out, "==> a.txt <==")
	assert.Contains(t, out, "==> b.txt <==")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")

	out, err = b.cat(context.Background(), sess, []string{"bin.dat"})
	require.NoError(t, err)
	assert.Equal(t, "Cannot display binary file: bin.dat", out)

	out, err = b.cat(context.Background(), sess, []string{"missing.txt"})
	require.NoError(t, err)
	assert.Equal(t, "File not found: missing.txt", out)
}

func TestCpFileAndIntoDirectory(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	writeFile(t, filepath.Join(sess.WorkingDir, "src.txt"), "payload")
	require.NoError(t, os.Mkdir(filepath.Join(sess.WorkingDir, "dest"), 0o755))

	out, err := b.cp(context.Background(), sess, []string{"src.txt", "copy.txt"})
	require.NoError(t, err)
	assert.Equal(t, "Copied file: src.txt -> copy.txt", out)

	out, err = b.cp(context.Background(), sess, []string{"src.txt", "dest"})
	require.NoError(t, err)
	assert.Contains(t, out, "Copied file")
	data, err := os.ReadFile(filepath.Join(sess.WorkingDir, "dest", "src.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCpDirectoryNeedsRecursive(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	require.NoError(t, os.Mkdir(filepath.Join(sess.WorkingDir, "tree"), 0o755))
	writeFile(t, filepath.Join(sess.WorkingDir, "tree", "leaf.txt"), "leaf")

	out, err := b.cp(context.Background(), sess, []string{"tree", "tree2"})
	require.NoError(t, err)
	assert.Equal(t, "Cannot copy directory tree: use -r flag", out)

	out, err = b.cp(context.Background(), sess, []string{"-r", "tree", "tree2"})
	require.NoError(t, err)
	assert.Equal(t, "Copied directory tree: tree -> tree2", out)
	assert.FileExists(t, filepath.Join(sess.WorkingDir, "tree2", "leaf.txt"))
}

func TestMv(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	writeFile(t, filepath.Join(sess.WorkingDir, "old.txt"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(sess.WorkingDir, "into"), 0o755))

	out, err := b.mv(context.Background(), sess, []string{"old.txt", "new.txt"})
	require.NoError(t, err)
	assert.Equal(t, "Moved: old.txt -> new.txt", out)

	out, err = b.mv(context.Background(), sess, []string{"new.txt", "into"})
	require.NoError(t, err)
	assert.Equal(t, "Moved: new.txt -> into", out)
	assert.FileExists(t, filepath.Join(sess.WorkingDir, "into", "new.txt"))

	out, err = b.mv(context.Background(), sess, []string{"gone.txt", "x"})
	require.NoError(t, err)
	assert.Equal(t, "Source not found: gone.txt", out)
}

func TestFind(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	require.NoError(t, os.MkdirAll(filepath.Join(sess.WorkingDir, "sub"), 0o755))
	writeFile(t, filepath.Join(sess.WorkingDir, "a.log"), "")
	writeFile(t, filepath.Join(sess.WorkingDir, "sub", "b.log"), "")
	writeFile(t, filepath.Join(sess.WorkingDir, "c.txt"), "")

	out, err := b.find(context.Background(), sess, []string{".", "-name", "*.log"})
	require.NoError(t, err)
	assert.Contains(t, out, "a.log")
	assert.Contains(t, out, filepath.Join("sub", "b.log"))
	assert.NotContains(t, out, "c.txt")

	out, err = b.find(context.Background(), sess, []string{".", "-name", "*.zip"})
	require.NoError(t, err)
	assert.Equal(t, "No matches found", out)
}

func TestGrep(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	writeFile(t, filepath.Join(sess.WorkingDir, "log.txt"), "first line\nsecond match here\nthird\nmatch again\n")

	out, err := b.grep(context.Background(), sess, []string{"match", "log.txt"})
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2: second match here", lines[0])
	assert.Equal(t, "4: match again", lines[1])

	out, err = b.grep(context.Background(), sess, []string{"absent", "log.txt"})
	require.NoError(t, err)
	assert.Equal(t, "No matches found for 'absent'", out)

	out, err = b.grep(context.Background(), sess, []string{"x", "missing.txt"})
	require.NoError(t, err)
	assert.Equal(t, "File not found: missing.txt", out)
}

func TestTree(t *testing.T) {
	b := &builtins{}
	sess := newTestSession(t)
	require.NoError(t, os.MkdirAll(filepath.Join(sess.WorkingDir, "d1", "d2", "d3", "d4"), 0o755))
	writeFile(t, filepath.Join(sess.WorkingDir, "d1", "f.txt"), "")
	writeFile(t, filepath.Join(sess.WorkingDir, ".hidden"), "")

	out, err := b.tree(context.Background(), sess, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "├── ") // has siblings under d1
	assert.Contains(t, out, "└── d1")
	assert.Contains(t, out, "f.txt")
	assert.Contains(t, out, "d3")
	assert.NotContains(t, out, "d4", "depth is capped at three levels")
	assert.NotContains(t, out, ".hidden")
}
