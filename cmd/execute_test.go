package cmd

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

const executeArgsEnv = "UNDEFENDER_EXECUTE_ARGS"

// runExecuteSubprocess re-runs the named test in a child process that calls
// Execute with args, and returns its combined output and exit code.
func runExecuteSubprocess(t *testing.T, test string, stdin string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run=^"+test+"$")
	cmd.Env = append(os.Environ(), executeArgsEnv+"="+strings.Join(args, "\x1f"))
	cmd.Stdin = strings.NewReader(stdin)

	output, err := cmd.CombinedOutput()
	if err == nil {
		return string(output), 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("subprocess error = %v (%T)", err, err)
	}

	return string(output), exitErr.ExitCode()
}

func executeFromEnv() bool {
	args, ok := os.LookupEnv(executeArgsEnv)
	if !ok {
		return false
	}

	rootCmd.SetArgs(strings.Split(args, "\x1f"))
	Execute()

	return true
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if executeFromEnv() {
		return
	}

	output, code := runExecuteSubprocess(t, "TestExecute_ProcessLevel_Success", "",
		"--no-colors", "--no-format", "--no-rename", basicExample)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0\noutput:\n%s", code, output)
	}

	if !strings.Contains(output, `console.log("hello", 42, 3);`) {
		t.Fatalf("output missing deobfuscated call:\n%s", output)
	}
}

func TestExecute_ProcessLevel_SignatureMismatch(t *testing.T) {
	if executeFromEnv() {
		return
	}

	output, code := runExecuteSubprocess(t, "TestExecute_ProcessLevel_SignatureMismatch", `var x = {}; x["y"] = 1;`,
		"--no-colors", "--no-format", "-")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1\noutput:\n%s", code, output)
	}

	if !strings.Contains(output, "x.y = 1;") {
		t.Fatalf("best-effort output missing:\n%s", output)
	}
}
