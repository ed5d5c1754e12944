package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livinlefevreloca/timespec/lib/timespec"
)

// execute runs the CLI with the given args, capturing stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestResolve_TextOutput(t *testing.T) {
	out, err := execute(t, "resolve", "2024-03-15", "09:30", "--start", "2024-01-01T00:00:00Z")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "resolve_text", []byte(out))
}

func TestResolve_JSONOutput(t *testing.T) {
	out, err := execute(t, "resolve", "2024-03-15", "09:30",
		"--start", "2024-01-01T00:00:00Z", "--format", "json")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "resolve_json", []byte(out))
}

func TestResolve_Backward(t *testing.T) {
	out, err := execute(t, "resolve", "fri", "--backward", "--start", "2024-01-03T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-29T23:59:59Z\n", out)
}

func TestResolve_TimezoneFlag(t *testing.T) {
	out, err := execute(t, "resolve", "fri", "--tz", "America/New_York",
		"--start", "2024-01-03T12:00:00Z")
	require.NoError(t, err)
	// Midnight Friday in New York is 05:00 UTC; RFC 3339 keeps the offset
	assert.Equal(t, "2024-01-05T00:00:00-05:00\n", out)
}

func TestResolve_CandidatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt")
	content := "2024-03-01T08:00:00Z\n\n2024-03-01T09:30:00Z\n2024-03-02T09:30:00Z\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, err := execute(t, "resolve", "9:30", "--candidates", path)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T09:30:00Z\n", out)
}

func TestResolve_EmptyCandidatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0644))

	_, err := execute(t, "resolve", "--candidates", path)
	require.ErrorIs(t, err, timespec.ErrEmptyCandidates)
}

func TestResolve_MalformedToken(t *testing.T) {
	_, err := execute(t, "resolve", "12-2024", "--start", "2024-01-01T00:00:00Z")
	require.ErrorIs(t, err, timespec.ErrMalformedToken)
}

func TestResolve_BadStartFlag(t *testing.T) {
	_, err := execute(t, "resolve", "fri", "--start", "not-a-time")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --start")
}

func TestResolve_UnknownTimezone(t *testing.T) {
	_, err := execute(t, "resolve", "fri", "--tz", "Mars/Olympus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown timezone")
}

func TestResolve_ConfigTimezoneDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[resolver]\ntimezone = \"America/New_York\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, err := execute(t, "resolve", "fri",
		"--config", path, "--start", "2024-01-03T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05T00:00:00-05:00\n", out)
}

func TestCheck_TextOutput(t *testing.T) {
	out, err := execute(t, "check", "2024-03-15", "09:30", "fri",
		"--start", "2024-01-01T00:00:00Z")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "check_text", []byte(out))
}

func TestCheck_JSONOutput(t *testing.T) {
	out, err := execute(t, "check", "2024-03-15", "09:30", "fri",
		"--start", "2024-01-01T00:00:00Z", "--format", "json")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "check_json", []byte(out))
}

func TestCheck_MalformedTokenFails(t *testing.T) {
	_, err := execute(t, "check", "banana")
	require.ErrorIs(t, err, timespec.ErrMalformedToken)
}

func TestCheck_DirectionViolation(t *testing.T) {
	_, err := execute(t, "check", "2023-01-01", "--start", "2024-01-01T00:00:00Z")
	require.ErrorIs(t, err, timespec.ErrDirectionViolation)
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, err := execute(t, "resolve", "fri", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
