package main

import (
	"bytes"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/clib/internal/testutil"
)

func demoPath(t *testing.T) string {
	t.Helper()
	data, _ := testutil.BuildContainer(t, "demo", []testutil.TestMember{
		{Name: "a.txt", Data: []byte("hello")},
		{Name: "b.txt", Data: []byte("hi!")},
	})
	return testutil.WriteContainer(t, data)
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunList(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "-l", demoPath(t))
	assert.Equal(t, 0, code)
	assert.Equal(t, "a.txt\nb.txt\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunTest(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "-t", demoPath(t))
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)

	code, _, stderr = runCLI(t, "-t", "--log-level", "info", demoPath(t))
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "recognized CLIB container")
	assert.Contains(t, stderr, "entries=2")
}

func TestRunExtract(t *testing.T) {
	path := demoPath(t)
	dir := t.TempDir()
	t.Chdir(dir)

	code, _, stderr := runCLI(t, "-x", path)
	require.Equal(t, 0, code, stderr)
	assertFile(t, filepath.Join(dir, "a.txt"), "hello")
	assertFile(t, filepath.Join(dir, "b.txt"), "hi!")

	// Existing files are reported per entry and left alone.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("edited"), 0o600))
	require.NoError(t, os.Remove(filepath.Join(dir, "b.txt")))

	code, _, stderr = runCLI(t, "-x", path)
	assert.Equal(t, 1, code)
	assert.Equal(t, "a.txt: file already exists\n", stderr)
	assertFile(t, filepath.Join(dir, "a.txt"), "edited")
	assertFile(t, filepath.Join(dir, "b.txt"), "hi!")

	// Combined short flags force the overwrite.
	code, _, stderr = runCLI(t, "-xf", path)
	assert.Equal(t, 0, code, stderr)
	assertFile(t, filepath.Join(dir, "a.txt"), "hello")
}

func TestRunExtractDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	code, _, stderr := runCLI(t, "-x", "-C", dir, demoPath(t))
	require.Equal(t, 0, code, stderr)
	assertFile(t, filepath.Join(dir, "a.txt"), "hello")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "-v")
	assert.Equal(t, 0, code)
	assert.Equal(t, "clib "+version+"\n", stdout)
}

func TestRunUsageErrors(t *testing.T) {
	t.Parallel()

	path := demoPath(t)
	tests := []struct {
		name   string
		args   []string
		stderr string
		stdout string
	}{
		{name: "help", args: []string{"-h"}},
		{name: "missing file", args: []string{"-l"}, stdout: "missing file argument"},
		{name: "no action", args: []string{path}, stderr: "one of -t, -l or -x is required"},
		{name: "two actions", args: []string{"-l", "-x", path}, stderr: "only one of -t, -l or -x may be given"},
		{name: "unknown flag", args: []string{"-q", path}, stderr: "clib:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stdout, "usage: clib")
			assert.Contains(t, stdout, tt.stdout)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestRunFatalErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "nope.clib")
		code, stdout, stderr := runCLI(t, "-l", missing)
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Equal(t, missing+": "+syscall.ENOENT.Error()+"\n", stderr)
	})

	t.Run("bad magic", func(t *testing.T) {
		t.Parallel()
		path := testutil.WriteContainer(t, []byte("definitely not a container"))
		code, stdout, stderr := runCLI(t, "-l", path)
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "magic does not match")
	})
}

func assertFile(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}
