package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/mockgl/errors"
)

// execute runs the command tree with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "fatal"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"procs", "scenario", "exec", "repl"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"config", "profile", "gl-version", "ext", "policy", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := execute(t, "", "--policy", "loud", "procs")
	require.Error(t, err)
	assert.Equal(t, exitCommandError, exitCode(err))
	assert.Contains(t, err.Error(), "diagnostics.policy")
}

func TestProcs(t *testing.T) {
	out, err := execute(t, "", "procs")
	require.NoError(t, err)
	assert.Contains(t, out, "glGenBuffers")
	assert.Contains(t, out, "glGenBuffersARB")
	assert.Contains(t, out, "(i32, i32)")
	assert.Contains(t, out, "requires OpenGL 2.1 or OpenGL ES 2.0")
	assert.Contains(t, out, "glGetError() -> i32")
	assert.NotContains(t, out, "glNamedBufferData")

	out, err = execute(t, "", "procs", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "glNamedBufferData")
	assert.Contains(t, out, "(unavailable)")

	out, err = execute(t, "", "--gl-version", "4.5", "procs")
	require.NoError(t, err)
	assert.Contains(t, out, "glNamedBufferData")
	assert.NotContains(t, out, "(unavailable)")
}

func TestScenarioCommand(t *testing.T) {
	out, err := execute(t, "", "scenario", "--trace",
		"../../scenario/testdata/basic.yaml",
		"../../scenario/testdata/panic_early.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS basic")
	assert.Contains(t, out, "PASS panic_early")
	assert.Contains(t, out, "gen 2 -> [1 2]")
	assert.Contains(t, out, "2 passed, 0 failed")
}

func TestScenarioCommandFailure(t *testing.T) {
	out, err := execute(t, "", "scenario", "testdata/leaky.yaml")
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
	assert.Contains(t, out, "FAIL leaky")
	assert.Contains(t, out, "live at finalize [1], want []")
	assert.Contains(t, out, "0 passed, 1 failed")

	_, err = execute(t, "", "scenario", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, exitCommandError, exitCode(err))
}

func TestExec(t *testing.T) {
	out, err := execute(t, "", "--policy", "do-not-panic", "exec", "testdata/gen2.wasm", "--entry", "gen")
	require.NoError(t, err)
	assert.Contains(t, out, "gen returned [1]")
	assert.Contains(t, out, "pending error: GL_NO_ERROR")
	assert.Contains(t, out, "live buffers: [1 2]")
}

func TestExecLeakFailsUnderPanicEarly(t *testing.T) {
	out, err := execute(t, "", "exec", "testdata/gen2.wasm", "-e", "gen")
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
	assert.Contains(t, out, "finalize:")

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindDangling, e.Kind)
}

func TestExecErrors(t *testing.T) {
	_, err := execute(t, "", "exec", "testdata/nope.wasm")
	require.Error(t, err)
	assert.Equal(t, exitCommandError, exitCode(err))

	_, err = execute(t, "", "--policy", "do-not-panic", "exec", "testdata/gen2.wasm", "--entry", "missing")
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindNotFound, e.Kind)
}

func TestReplBatch(t *testing.T) {
	script := `# two buffers
gen 2
bind array_buffer 1
data array_buffer 2 cafe static_draw
get_buffer_param array_buffer buffer_size
bind array_buffer 9
get_error
bogus
delete 1 2
quit
gen 1
`
	out, err := execute(t, script, "--policy", "do-not-panic", "repl")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "gen 2 -> [1 2]", lines[0])
	assert.Equal(t, "bind GL_ARRAY_BUFFER 1", lines[1])
	assert.Equal(t, "data GL_ARRAY_BUFFER 2 cafe GL_STATIC_DRAW", lines[2])
	assert.Equal(t, "get_buffer_param GL_ARRAY_BUFFER GL_BUFFER_SIZE -> 2", lines[3])
	assert.Equal(t, "bind GL_ARRAY_BUFFER 9", lines[4])
	assert.Equal(t, "get_error -> GL_INVALID_VALUE", lines[5])
	assert.Contains(t, lines[6], "unknown op")
	assert.Equal(t, "delete 1 2", lines[7])
	assert.NotContains(t, out, "gen 1", "lines after quit are not run")
}

func TestReplBatchPanicEarly(t *testing.T) {
	out, err := execute(t, "bind array_buffer 3\nget_error\n", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "bind GL_ARRAY_BUFFER 3 panic=invalid_value")
	assert.Contains(t, out, "get_error -> GL_INVALID_VALUE")
}
