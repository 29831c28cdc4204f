package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duty-validator/internal/domain"
	"duty-validator/internal/logging"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "settings.json")
	return executeWithConfig(t, cfg, args...)
}

func executeWithConfig(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestValidateCmd_ValidTable(t *testing.T) {
	out, err := execute(t, "validate", "--duty", "08:00-16:00", "--break", "12:00-12:30")
	require.NoError(t, err)

	assert.Contains(t, out, "Valid")
	assert.Contains(t, out, "8h 0m")
	assert.Contains(t, out, "0h 30m")
	assert.Contains(t, out, "All Validations Passed")
	assert.NotContains(t, out, "Validation Issues")
}

func TestValidateCmd_InvalidReturnsError(t *testing.T) {
	out, err := execute(t, "validate", "--duty", "08:00-16:00", "--break", "07:00-09:00")
	require.ErrorIs(t, err, domain.ErrDutyInvalid)

	assert.Contains(t, out, "Invalid")
	assert.Contains(t, out, "Break 1: Start time must be after duty start time")
	assert.NotContains(t, out, "End time must be before duty end time")
}

func TestValidateCmd_DefaultDutyNeedsBreakUnderRule(t *testing.T) {
	out, err := execute(t, "validate")
	require.ErrorIs(t, err, domain.ErrDutyInvalid)
	assert.Contains(t, out, "Legal Requirement Violations")

	_, err = execute(t, "validate", "--policy", "stub")
	assert.NoError(t, err)
}

func TestValidateCmd_JSON(t *testing.T) {
	out, err := execute(t, "validate", "--duty", "08:00-07:00", "--format", "json", "--policy", "stub")
	require.ErrorIs(t, err, domain.ErrDutyInvalid)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, false, view["isValid"])
	assert.EqualValues(t, 0, view["dutyDurationMinutes"])
	assert.Equal(t, []any{"Duty end time must be after duty start time"}, view["issues"])
	assert.Equal(t, []any{}, view["breakDurations"])
}

func TestValidateCmd_File(t *testing.T) {
	sheet := filepath.Join(t.TempDir(), "night.yaml")
	require.NoError(t, os.WriteFile(sheet, []byte(`
duty: {start: "22:00", end: "06:00+1"}
breaks:
  - {id: meal, start: "01:00+1", end: "01:45+1"}
`), 0o644))

	out, err := execute(t, "validate", "--file", sheet)
	require.NoError(t, err)
	assert.Contains(t, out, "meal")
	assert.Contains(t, out, "0h 45m")

	_, err = execute(t, "validate", "--file", sheet, "--break", "05:30+1-06:30+1")
	assert.ErrorIs(t, err, domain.ErrDutyInvalid)
}

func TestValidateCmd_BadInput(t *testing.T) {
	_, err := execute(t, "validate", "--duty", "8-16")
	assert.ErrorIs(t, err, domain.ErrInvalidClockFormat)

	_, err = execute(t, "validate", "--break", "12:00-12:60")
	assert.ErrorIs(t, err, domain.ErrInvalidMinute)

	_, err = execute(t, "validate", "--format", "xml", "--policy", "stub")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "validate", "--policy", "lenient")
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
}

func TestConfigCmd_SetAndGet(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "settings.json")

	out, err := executeWithConfig(t, cfg, "config", "set", "--policy", "stub", "--max-duty", "9h", "--min-break", "45m")
	require.NoError(t, err)
	assert.Contains(t, out, "policy=stub max-duty=540m min-break=45m")

	out, err = executeWithConfig(t, cfg, "config", "get")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "stub", got["legalPolicy"])
	assert.EqualValues(t, 540, got["maxDutyWithoutBreakMinutes"])
	assert.EqualValues(t, 45, got["minBreakMinutes"])

	_, err = executeWithConfig(t, cfg, "validate")
	assert.NoError(t, err, "stub policy accepts the default duty")

	_, err = executeWithConfig(t, cfg, "config", "set", "--min-break", "10s")
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
}

type counterIDs struct{ n int }

func (c *counterIDs) NewID() string {
	c.n++
	return fmt.Sprintf("id%d", c.n)
}

func TestSession_EditsWorksheet(t *testing.T) {
	sess := newSession(&counterIDs{})
	var out bytes.Buffer

	for _, line := range [][]string{
		{"duty", "22:00", "06:00+1"},
		{"break", "add", "01:00+1", "01:30+1"},
		{"break", "add"},
		{"break", "set", "2", "03:00+1-03:20+1"},
	} {
		handled, err := sess.handle(line, &out)
		require.True(t, handled)
		require.NoError(t, err, line)
	}

	assert.Equal(t, domain.Duty{Start: domain.ClockTime{Hour: 22}, End: domain.ClockTime{Hour: 6, IsNextDay: true}}, sess.ws.Duty)
	require.Len(t, sess.ws.Breaks, 2)
	assert.Equal(t, "id1", sess.ws.Breaks[0].ID)
	assert.Equal(t, domain.Break{
		ID:    "id2",
		Start: domain.ClockTime{Hour: 3, IsNextDay: true},
		End:   domain.ClockTime{Hour: 3, Minute: 20, IsNextDay: true},
	}, sess.ws.Breaks[1])
	assert.Contains(t, out.String(), "06:00+1")

	handled, err := sess.handle([]string{"break", "rm", "id1"}, &out)
	require.True(t, handled)
	require.NoError(t, err)
	require.Len(t, sess.ws.Breaks, 1)
	assert.Equal(t, "id2", sess.ws.Breaks[0].ID)

	_, err = sess.handle([]string{"break", "rm", "9"}, &out)
	assert.ErrorIs(t, err, domain.ErrBreakNotFound)
	_, err = sess.handle([]string{"duty", "25:00", "06:00"}, &out)
	assert.ErrorIs(t, err, domain.ErrInvalidHour)

	_, err = sess.handle([]string{"reset"}, &out)
	require.NoError(t, err)
	assert.Equal(t, domain.NewWorksheet(), sess.ws)

	handled, _ = sess.handle([]string{"config", "get"}, &out)
	assert.False(t, handled)
}

func TestSession_Check(t *testing.T) {
	cfgPath = filepath.Join(t.TempDir(), "settings.json")
	t.Cleanup(func() { cfgPath = "" })

	sess := newSession(&counterIDs{})
	var out bytes.Buffer

	_, err := sess.handle([]string{"check"}, &out)
	assert.ErrorIs(t, err, domain.ErrDutyInvalid)

	_, err = sess.handle([]string{"break", "add", "12:00", "12:30"}, &out)
	require.NoError(t, err)
	out.Reset()
	_, err = sess.handle([]string{"check", "--format", "json"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"isValid": true`)
}

func TestExecuteArgs_KeepsShellFlags(t *testing.T) {
	mine := filepath.Join(t.TempDir(), "mine.json")
	cfgPath = mine
	verbosity = 2
	t.Cleanup(func() {
		cfgPath = ""
		verbosity = 0
		logging.SetVerbosity(0)
	})

	require.NoError(t, executeArgs([]string{"config", "set", "--policy", "stub"}))

	data, err := os.ReadFile(mine)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"stub"`)
	assert.Equal(t, mine, cfgPath)
	assert.Equal(t, 2, verbosity)
	assert.Equal(t, 2, logging.Verbosity())

	// the next session check reads the same settings file
	sess := newSession(&counterIDs{})
	var out bytes.Buffer
	_, err = sess.handle([]string{"check", "--format", "json"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"isValid": true`)

	other := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, executeArgs([]string{"--config", other, "config", "set", "--policy", "break-rule"}))
	assert.FileExists(t, other)
	assert.Equal(t, mine, cfgPath)
}
