package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points config discovery at an empty temp dir and clears FAILDIFF_* variables. It returns the temp dir, which is also the working directory.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("AppData", filepath.Join(dir, "appdata"))
	for _, key := range []string{"LOG_FILE", "CONTEXT", "CONTEXT_LINES", "LINE_DIFF", "FORMAT", "COLOR"} {
		t.Setenv("FAILDIFF_"+key, "")
	}
	t.Chdir(dir)
	return dir
}

type runResult struct {
	code   int
	err    error
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()

	var out, errOut bytes.Buffer
	code, err := Run(append([]string{"faildiff"}, args...), &RunOptions{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return runResult{code: code, err: err, stdout: out.String(), stderr: errOut.String()}
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunLiteral(t *testing.T) {
	isolate(t)

	res := run(t, "", "--literal", "foo", "bar")
	require.NoError(t, res.err)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "expected: foo\nbut was : bar\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRunLiteralElides(t *testing.T) {
	isolate(t)

	res := run(t, "", "--literal", strings.Repeat("b", 100)+"aa", strings.Repeat("b", 100)+"oo")
	require.NoError(t, res.err)
	assert.Equal(t, "expected: …"+strings.Repeat("b", 20)+"aa\nbut was : …"+strings.Repeat("b", 20)+"oo\n", res.stdout)
}

func TestRunFiles(t *testing.T) {
	dir := isolate(t)
	want := writeFile(t, filepath.Join(dir, "want.txt"), "a\nb\nc\n")
	got := writeFile(t, filepath.Join(dir, "got.txt"), "a\nB\nc\n")

	res := run(t, "", want, got)
	require.NoError(t, res.err)
	assert.Equal(t, "diff:\n     a\n    -b\n    +B\n     c\n     \n", res.stdout)
}

func TestRunStdin(t *testing.T) {
	dir := isolate(t)
	want := writeFile(t, filepath.Join(dir, "want.txt"), "hello")

	res := run(t, "help", want, "-")
	require.NoError(t, res.err)
	assert.Equal(t, "expected: hello\nbut was : help\n", res.stdout)

	res = run(t, "help", "-", want)
	require.NoError(t, res.err)
	assert.Equal(t, "expected: help\nbut was : hello\n", res.stdout)
}

func TestRunUsageErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no args", args: nil},
		{name: "one arg", args: []string{"a"}},
		{name: "three args", args: []string{"a", "b", "c"}},
		{name: "both stdin", args: []string{"-", "-"}},
		{name: "unknown flag", args: []string{"--bogus", "a", "b"}},
		{name: "bad flag value", args: []string{"--context", "many", "a", "b"}},
		{name: "config with args", args: []string{"config", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			require.Error(t, res.err)
			assert.ErrorIs(t, res.err, ErrUsage)
			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.stderr, "Error: ")
			assert.Contains(t, res.stderr, "--help")
			assert.Empty(t, res.stdout)
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	dir := isolate(t)

	res := run(t, "", filepath.Join(dir, "nope.txt"), filepath.Join(dir, "nope2.txt"))
	require.Error(t, res.err)
	assert.NotErrorIs(t, res.err, ErrUsage)
	assert.ErrorIs(t, res.err, os.ErrNotExist)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "read expected")
}

func TestRunInvalidConfig(t *testing.T) {
	isolate(t)

	res := run(t, "", "--context=-1", "--literal", "a", "b")
	assert.Equal(t, 1, res.code)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid configuration: context must be >= 0 (got -1)")

	res = run(t, "", "--format", "xml", "--literal", "a", "b")
	assert.Equal(t, 1, res.code)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "format must be one of text, json, yaml")
}

func TestRunNoLineDiff(t *testing.T) {
	isolate(t)

	res := run(t, "", "--no-line-diff", "--literal", "a\nb", "a\nc")
	require.NoError(t, res.err)
	assert.Equal(t, "expected:\n    a\n    b\nbut was:\n    a\n    c\n", res.stdout)
}

func TestRunContextFlags(t *testing.T) {
	isolate(t)

	res := run(t, "", "--context", "2", "--literal", "0123456789X", "0123456789Y")
	require.NoError(t, res.err)
	assert.Equal(t, "expected: …89X\nbut was : …89Y\n", res.stdout)

	res = run(t, "", "--context-lines", "1", "--literal", "1\n2\n3\nX", "1\n2\n3\nY")
	require.NoError(t, res.err)
	assert.Equal(t, "diff:\n     ⋮\n     3\n    -X\n    +Y\n", res.stdout)
}

func TestRunJSON(t *testing.T) {
	isolate(t)

	res := run(t, "", "--format", "json", "--literal", "<a>", "<b>")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"<a>"`)

	var fields []fieldOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &fields))
	assert.Equal(t, []fieldOutput{{Key: "expected", Value: "<a>"}, {Key: "but was", Value: "<b>"}}, fields)
}

func TestRunYAML(t *testing.T) {
	isolate(t)

	res := run(t, "", "--format", "yaml", "--literal", "x\ny", "x\nz")
	require.NoError(t, res.err)

	var fields []fieldOutput
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &fields))
	assert.Equal(t, []fieldOutput{{Key: "diff", Value: " x\n-y\n+z"}}, fields)
}

func TestRunColor(t *testing.T) {
	isolate(t)

	plain := run(t, "", "--color", "never", "--literal", "x\ny", "x\nz")
	require.NoError(t, plain.err)
	assert.NotContains(t, plain.stdout, "\x1b[")

	colored := run(t, "", "--color", "always", "--literal", "x\ny", "x\nz")
	require.NoError(t, colored.err)
	assert.Contains(t, colored.stdout, "\x1b[")
	assert.Equal(t, plain.stdout, ansi.Strip(colored.stdout))

	// Output to a buffer is never a terminal.
	auto := run(t, "", "--literal", "x\ny", "x\nz")
	require.NoError(t, auto.err)
	assert.Equal(t, plain.stdout, auto.stdout)
}

func TestRunVersion(t *testing.T) {
	isolate(t)

	res := run(t, "", "--version")
	require.NoError(t, res.err)
	assert.Equal(t, "faildiff version "+Version+"\n", res.stdout)
}

func TestRunHelp(t *testing.T) {
	isolate(t)

	res := run(t, "", "--help")
	require.NoError(t, res.err)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "faildiff [flags] <expected> <actual>")
	assert.Contains(t, res.stdout, "--context-lines")
}

func TestRunLogs(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "faildiff.log")
	t.Setenv("FAILDIFF_LOG_FILE", logPath)

	res := run(t, "", "--literal", "a\nb", "a\nc")
	require.NoError(t, res.err)

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "mode=line-diff expected_bytes=3 actual_bytes=3")
}
