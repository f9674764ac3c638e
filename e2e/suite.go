package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const (
	devUsername = "dev"
	devPassword = "secret"
)

// apiEntry is a log entry as the log API serves it
type apiEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewLogAPI starts a fake developer log API that accepts only dev/secret
func NewLogAPI(t *testing.T, userIDs []any, logs map[string][]apiEntry) *httptest.Server {
	t.Helper()

	authorized := func(r *http.Request) bool {
		return r.Header.Get("dev-username") == devUsername && r.Header.Get("dev-password") == devPassword
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/user_ids", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		writeJSON(w, userIDs)
	})
	mux.HandleFunc("/logs", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		entries, ok := logs[r.Header.Get("user-id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeJSON(w, entries)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Runner runs the logviewer binary in an isolated working directory
type Runner struct {
	t       *testing.T
	bin     string
	workDir string
	env     []string
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	code    int
}

// NewRunner creates a runner pointed at the given log API; it skips the test when no binary is available
func NewRunner(t *testing.T, serverURL string) *Runner {
	t.Helper()

	bin := os.Getenv("LOGVIEWER_BIN")
	if bin == "" {
		bin = "logviewer"
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		t.Skipf("logviewer binary not found (%v), set LOGVIEWER_BIN", err)
	}

	workDir := t.TempDir()

	return &Runner{
		t:       t,
		bin:     path,
		workDir: workDir,
		env: []string{
			"HOME=" + workDir,
			"PATH=" + os.Getenv("PATH"),
			"LOGVIEWER_SERVER_URL=" + serverURL,
			"LOGVIEWER_DISPLAY_TIMEZONE=UTC",
			"LOGVIEWER_LOGGING_LEVEL=error",
		},
	}
}

// Setenv adds an environment variable for the next runs
func (r *Runner) Setenv(key, value string) {
	r.env = append(r.env, key+"="+value)
}

// Run executes logviewer with args and waits for it to exit
func (r *Runner) Run(args ...string) error {
	r.stdout.Reset()
	r.stderr.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = r.workDir
	cmd.Env = r.env
	cmd.Stdout = &r.stdout
	cmd.Stderr = &r.stderr

	err := cmd.Run()
	r.code = cmd.ProcessState.ExitCode()

	if _, ok := err.(*exec.ExitError); ok {
		return nil
	}

	return err
}

// Path resolves a file inside the working directory
func (r *Runner) Path(name string) string {
	return filepath.Join(r.workDir, name)
}

// Output returns stdout of the last run
func (r *Runner) Output() string {
	return r.stdout.String()
}

// Stderr returns stderr of the last run
func (r *Runner) Stderr() string {
	return r.stderr.String()
}

// ExitCode returns the exit code of the last run
func (r *Runner) ExitCode() int {
	return r.code
}
