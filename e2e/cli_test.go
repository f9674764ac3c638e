package e2e

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLogs() map[string][]apiEntry {
	return map[string][]apiEntry{
		"42": {
			{Time: "2024-01-01T09:00:00", Level: "INFO", Message: "b"},
			{Time: "2024-01-02T10:00:00Z", Level: "ERROR", Message: "a"},
			{Time: "2024-01-02T08:30:00.123456", Level: "WARNING", Message: "<script>alert(1)</script>"},
		},
		"7": {},
	}
}

func Test_Users(t *testing.T) {
	api := NewLogAPI(t, []any{"42", 7, "abc"}, sampleLogs())
	runner := NewRunner(t, api.URL)

	require.NoError(t, runner.Run("users", "-u", devUsername, "-p", devPassword))

	assert.Equal(t, 0, runner.ExitCode())
	assert.Equal(t, "42\n7\nabc\n", runner.Output())
}

func Test_Users_Unauthorized(t *testing.T) {
	api := NewLogAPI(t, []any{"42"}, sampleLogs())
	runner := NewRunner(t, api.URL)

	require.NoError(t, runner.Run("users", "-u", devUsername, "-p", "wrong"))

	assert.Equal(t, 1, runner.ExitCode())
	assert.Empty(t, runner.Output())
	assert.Contains(t, runner.Stderr(), "Unauthorized")
}

func Test_Users_CredentialsFromEnv(t *testing.T) {
	api := NewLogAPI(t, []any{"42"}, sampleLogs())
	runner := NewRunner(t, api.URL)
	runner.Setenv("LOGVIEWER_AUTH_USERNAME", devUsername)
	runner.Setenv("LOGVIEWER_AUTH_PASSWORD", devPassword)

	require.NoError(t, runner.Run("users"))

	assert.Equal(t, 0, runner.ExitCode())
	assert.Equal(t, "42\n", runner.Output())
}

func Test_Logs_GroupedByDay(t *testing.T) {
	api := NewLogAPI(t, []any{"42"}, sampleLogs())
	runner := NewRunner(t, api.URL)

	require.NoError(t, runner.Run("logs", "42", "-u", devUsername, "-p", devPassword))
	require.Equal(t, 0, runner.ExitCode(), runner.Stderr())

	output := runner.Output()
	newer := strings.Index(output, "02.01.2024")
	older := strings.Index(output, "01.01.2024")

	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older)
	assert.Less(t, strings.Index(output, "10:00:00"), strings.Index(output, "08:30:00"))
	assert.Contains(t, output, "<script>alert(1)</script>", "terminal output prints messages as text")
}

func Test_Logs_Empty(t *testing.T) {
	api := NewLogAPI(t, []any{"7"}, sampleLogs())
	runner := NewRunner(t, api.URL)

	require.NoError(t, runner.Run("logs", "7", "-u", devUsername, "-p", devPassword))

	assert.Equal(t, 0, runner.ExitCode())
	assert.Equal(t, "No log entries for user 7\n", runner.Output())
}

func Test_Logs_NotFound(t *testing.T) {
	api := NewLogAPI(t, []any{"42"}, sampleLogs())
	runner := NewRunner(t, api.URL)

	require.NoError(t, runner.Run("logs", "99", "-u", devUsername, "-p", devPassword))

	assert.Equal(t, 1, runner.ExitCode())
	assert.Contains(t, runner.Stderr(), "An error occurred: 404 Not Found")
}

func Test_Logs_HTMLExport(t *testing.T) {
	api := NewLogAPI(t, []any{"42"}, sampleLogs())
	runner := NewRunner(t, api.URL)

	require.NoError(t, runner.Run("logs", "42", "-u", devUsername, "-p", devPassword, "--html", "export/logs.html"))
	require.Equal(t, 0, runner.ExitCode(), runner.Stderr())
	assert.Contains(t, runner.Output(), "Exported 3 entries")

	content, err := os.ReadFile(runner.Path("export/logs.html"))
	require.NoError(t, err)

	page := string(content)
	assert.Contains(t, page, `id="log-viewer"`)
	assert.Contains(t, page, `id="log-entries"`)
	assert.Contains(t, page, `<td colspan="3">02.01.2024</td>`)
	assert.Contains(t, page, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, page, "<script>alert(1)</script>")
}

func Test_Init(t *testing.T) {
	api := NewLogAPI(t, nil, nil)
	runner := NewRunner(t, api.URL)

	require.NoError(t, runner.Run("init"))
	assert.Equal(t, 0, runner.ExitCode(), runner.Stderr())

	content, err := os.ReadFile(runner.Path("logviewer.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "url: "+api.URL)

	require.NoError(t, runner.Run("init"))
	assert.Equal(t, 1, runner.ExitCode())
	assert.Contains(t, runner.Stderr(), "already exists")

	require.NoError(t, runner.Run("init", "--force"))
	assert.Equal(t, 0, runner.ExitCode())
}

func Test_Config_RedactsPassword(t *testing.T) {
	api := NewLogAPI(t, nil, nil)
	runner := NewRunner(t, api.URL)
	runner.Setenv("LOGVIEWER_AUTH_PASSWORD", devPassword)

	require.NoError(t, runner.Run("config"))

	assert.Equal(t, 0, runner.ExitCode())
	assert.Contains(t, runner.Output(), "url: "+api.URL)
	assert.Contains(t, runner.Output(), "********")
	assert.NotContains(t, runner.Output(), devPassword)
}

func Test_Version(t *testing.T) {
	runner := NewRunner(t, "http://localhost:8000")

	require.NoError(t, runner.Run("version"))

	assert.Equal(t, 0, runner.ExitCode())
	assert.Contains(t, runner.Output(), "(logviewer)")
}

func Test_UnknownCommand(t *testing.T) {
	runner := NewRunner(t, "http://localhost:8000")

	require.NoError(t, runner.Run("tail"))

	assert.Equal(t, 1, runner.ExitCode())
	assert.Contains(t, runner.Stderr(), "unknown command")
}
