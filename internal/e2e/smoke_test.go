package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runPacer(t, binaryPath, home,
		"account", "add", "acc-1",
		"--name", "Primary",
		"--created-on", "2020-01-01",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runPacer(t, binaryPath, home, "record", "comment", "post-42")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runPacer(t, binaryPath, home, "status", "--account", "acc-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Primary (acc-1)")
	assert.Contains(t, stdout, "1/40")
}

func TestSmokeCanActExitStatus(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writePolicyFixture(home))

	_, stderr, err := runPacer(t, binaryPath, home, "account", "add", "acc-1", "--created-on", "2020-01-01")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runPacer(t, binaryPath, home, "can-act", "dm")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runPacer(t, binaryPath, home, "record", "dm", "@lea")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, _, err := runPacer(t, binaryPath, home, "can-act", "dm")
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stdout, "denied")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pacer-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pacer")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build pacer binary: %s", string(output))
	return binaryPath
}

func runPacer(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writePolicyFixture(home string) error {
	configDir := filepath.Join(home, ".pacer")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "policy.toml"), []byte("[quotas]\ndm = 1\n"), 0o644)
}
