package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.pj")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (mainer.ExitCode, string, string) {
	t.Helper()
	c := &Cmd{BuildVersion: "test", BuildDate: "test"}
	var stdout, stderr bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}
	code := c.Main(append([]string{"pijago"}, args...), stdio)
	return code, stdout.String(), stderr.String()
}

func TestMainRunsFactorialWithReducer(t *testing.T) {
	path := writeSource(t, `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(10)`)
	code, stdout, stderr := runCmd(t, path)
	require.Equal(t, mainer.Success, code)
	require.Empty(t, stderr)
	require.Equal(t, "3628800\n", stdout)
}

func TestMainRunsFactorialWithVMBackend(t *testing.T) {
	path := writeSource(t, `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(10)`)
	code, stdout, stderr := runCmd(t, "--backend=vm", path)
	require.Equal(t, mainer.Success, code)
	require.Empty(t, stderr)
	require.Equal(t, "3628800\n", stdout)
}

func TestMainPrintSequence(t *testing.T) {
	path := writeSource(t, `print(10); print(unit)`)
	code, stdout, _ := runCmd(t, path)
	require.Equal(t, mainer.Success, code)
	require.Equal(t, "10\nunit\nunit\n", stdout)
}

func TestMainTypeErrorReportsCategory(t *testing.T) {
	path := writeSource(t, `1 + true`)
	code, _, stderr := runCmd(t, path)
	require.Equal(t, mainer.Failure, code)
	require.Contains(t, stderr, "Type error")
}

func TestMainCheckedOverflowPanicsRatherThanFailingGracefully(t *testing.T) {
	// Per the error-handling design, runtime faults under the checked
	// strategy are host-level panics, not a phase error the driver
	// recovers from and reports as a normal Failure exit code.
	path := writeSource(t, `9223372036854775807 + 1`)
	require.Panics(t, func() {
		runCmd(t, "--overflow-check", path)
	})
}

func TestMainHelp(t *testing.T) {
	code, stdout, _ := runCmd(t, "--help")
	require.Equal(t, mainer.Success, code)
	require.Contains(t, stdout, "usage: pijago")
}

func TestMainRequiresExactlyOnePath(t *testing.T) {
	code, _, stderr := runCmd(t)
	require.Equal(t, mainer.InvalidArgs, code)
	require.NotEmpty(t, stderr)
}
