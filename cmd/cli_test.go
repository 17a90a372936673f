package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAccountAddThenList(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "account", "add", "maya", "--name", "Maya", "--created-on", "2020-01-01")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account maya saved")

	stdout, _, err = executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "maya\tMaya\t")
	assert.Contains(t, stdout, "\t-\n")
}

func TestAccountAddRejectsMalformedCreationDate(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "account", "add", "maya", "--created-on", "01/02/2020")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestStatusRendersQuotaBars(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "status", "--account", "acc-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Daily Action Quotas")
	assert.Contains(t, stdout, "accounts: 1")
	assert.Contains(t, stdout, "Primary (acc-1)")
	assert.Contains(t, stdout, "0/150")
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "status", "--json")
	require.NoError(t, err)

	var statuses []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, "acc-1", statuses[0]["account"])
	assert.NotEmpty(t, statuses[0]["quotas"])
}

func TestStatusYAMLOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "status", "--yaml")
	require.NoError(t, err)

	var statuses []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, "acc-1", statuses[0]["account"])
}

func TestStatusRejectsBothFormats(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "status", "--json", "--yaml")
	require.ErrorIs(t, err, errConflictingFormats)
}

func TestCanActAllowedThenDeniedAfterRecord(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	require.NoError(t, writePolicyFixture(home))

	stdout, _, err := executeCLI(t, home, "can-act", "dm")
	require.NoError(t, err)
	assert.Contains(t, stdout, "acc-1 dm: allowed (0/1 used today)")

	stdout, _, err = executeCLI(t, home, "record", "dm", "@lea")
	require.NoError(t, err)
	assert.Contains(t, stdout, "recorded dm @lea for acc-1")

	stdout, _, err = executeCLI(t, home, "can-act", "dm")
	require.ErrorIs(t, err, errQuotaExhausted)
	assert.Contains(t, stdout, "acc-1 dm: denied (1/1 used today)")
}

func TestCanActJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "can-act", "like", "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, true, result["allowed"])
	assert.EqualValues(t, 150, result["limit"])
}

func TestCanActUnknownActionIsDenied(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "can-act", "repost")
	require.ErrorIs(t, err, errQuotaExhausted)
}

func TestRecordRequiresAccountWhenSeveralExist(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "account", "add", "acc-2")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "record", "like", "post-1")
	require.ErrorIs(t, err, errAccountRequired)
}

func TestSessionsListsPolicySessions(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	require.NoError(t, writePolicyFixture(home))

	stdout, _, err := executeCLI(t, home, "sessions")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SESSION")
	assert.Contains(t, stdout, "drill")
	assert.Contains(t, stdout, "like<feed:3")
	assert.Contains(t, stdout, "morning")
}

func TestPolicyValidate(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writePolicyFixture(home))

	stdout, _, err := executeCLI(t, home, "policy", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "policy.toml: ok")

	broken := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[quotas]\nlike = -5\n"), 0o644))

	_, _, err = executeCLI(t, home, "policy", "validate", broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid policy")
}

func TestRunRecordsActionsAndReportsSummary(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	require.NoError(t, writePolicyFixture(home))
	require.NoError(t, writeConfigFixture(home))
	require.NoError(t, writeCandidatesFixture(home, "post-1\npost-2\npost-3\npost-4\n"))

	stdout, _, err := executeCLI(t, home, "run", "drill", "--seed", "7", "--json")
	require.NoError(t, err)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, "drill", summary["session_type"])
	assert.Equal(t, false, summary["skipped"])
	assert.NotEmpty(t, summary["run_id"])

	phases, ok := summary["phases"].([]any)
	require.True(t, ok)
	require.Len(t, phases, 1)
	phase := phases[0].(map[string]any)
	assert.EqualValues(t, 3, phase["acted"])
	assert.Equal(t, "size_reached", phase["stop"])

	stdout, _, err = executeCLI(t, home, "can-act", "like", "--json")
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.EqualValues(t, 3, result["used"])
}

func TestRunTextSummaryListsPhases(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	require.NoError(t, writePolicyFixture(home))
	require.NoError(t, writeConfigFixture(home))
	require.NoError(t, writeCandidatesFixture(home, "post-1\n"))

	stdout, _, err := executeCLI(t, home, "run", "drill")
	require.NoError(t, err)
	assert.Contains(t, stdout, "session drill for acc-1 finished")
	assert.Contains(t, stdout, "stop exhausted")
	assert.Contains(t, stdout, "recorded 1 action(s) like=1")
}

func TestRunUnknownSessionFails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	require.NoError(t, writePolicyFixture(home))

	_, _, err := executeCLI(t, home, "run", "brunch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session type")
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUsageCommandIsRemoved(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "usage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"usage\"")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writePacerFile(home, name, content string) error {
	path := filepath.Join(home, ".pacer", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

func writeAccountsFixture(home string) error {
	return writePacerFile(home, "accounts.toml", `version = 1

[[accounts]]
id = "acc-1"
name = "Primary"
created_on = "2020-01-01"
`)
}

func writeConfigFixture(home string) error {
	return writePacerFile(home, "config.toml", `[executor]
command = ["true"]

[log]
level = "error"
`)
}

// writePolicyFixture installs an exempt "drill" session that runs without
// any pause or random skip.
func writePolicyFixture(home string) error {
	return writePacerFile(home, "policy.toml", `version = 1

[quotas]
dm = 1

[timing]
micro_break_probability = 0.0
quick_action_probability = 0.0
skip_candidate_probability = 0.0
abort_session_probability = 0.0
skip_session_probability = 0.0
jitter = { min = "0s", max = "0s" }
scroll_pause = { min = "0s", max = "0s" }
browsing_pause = { min = "0s", max = "0s" }
default_delay = { min = "0s", max = "0s" }

[timing.delays]
like = { min = "0s", max = "0s" }

[sources.feed]
path = "feed.txt"

[sessions.drill]
exempt = true

[[sessions.drill.phases]]
action = "like"
source = "feed"
size = 3
size_jitter = 0.0
`)
}

func writeCandidatesFixture(home, lines string) error {
	return writePacerFile(home, filepath.Join("candidates", "feed.txt"), lines)
}
