package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/smishguard/internal/devserver"
	"github.com/yildizm/smishguard/internal/nav"
)

// executeCommand runs the root command and returns what it printed to stdout
func executeCommand(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	if input != "" {
		orig := stdin
		stdin = strings.NewReader(input)
		t.Cleanup(func() { stdin = orig })
	}

	cmd := NewRootCommand("test", "abc123", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func startDevServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(devserver.New(devserver.Options{}).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// writeConfig isolates a test from any config file on the machine
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\nlog:\n  level: error\n"), 0o600))
	return path
}

type jsonReport struct {
	Verdict string   `json:"verdict"`
	Message string   `json:"message"`
	Label   string   `json:"label"`
	Reasons []string `json:"reasons"`
	Error   string   `json:"error"`
}

func decodeReport(t *testing.T, out string) jsonReport {
	t.Helper()
	var r jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &r), "output: %s", out)
	return r
}

func TestAnalyzeCommand(t *testing.T) {
	base := startDevServer(t)
	cfg := writeConfig(t)

	tests := []struct {
		name        string
		input       string
		args        []string
		wantCode    int
		wantVerdict string
	}{
		{
			name:        "likely smishing",
			args:        []string{"[국세청] 환급금 확인 긴급 bit.ly/abc"},
			wantCode:    exitRisk,
			wantVerdict: "risk",
		},
		{
			name:        "looks safe",
			args:        []string{"내일", "3시", "회의"},
			wantCode:    0,
			wantVerdict: "safe",
		},
		{
			name:        "stdin with dash",
			input:       "see you at lunch",
			args:        []string{"-"},
			wantCode:    0,
			wantVerdict: "safe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"analyze", "--config", cfg, "--api-base", base, "--output", "json"}, tt.args...)
			out, err := executeCommand(t, tt.input, args...)

			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.False(t, ShouldReport(err))
			r := decodeReport(t, out)
			assert.Equal(t, tt.wantVerdict, r.Verdict)
			assert.NotEmpty(t, r.Reasons)
		})
	}
}

func TestAnalyzeCommandServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	t.Cleanup(srv.Close)

	out, err := executeCommand(t, "", "analyze", "--config", writeConfig(t), "--api-base", srv.URL, "--output", "json", "hello")

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.True(t, ShouldReport(err))
	assert.Contains(t, err.Error(), "API 500: boom")

	r := decodeReport(t, out)
	assert.Equal(t, "error", r.Verdict)
	assert.Equal(t, "API 500: boom", r.Error)
	assert.Equal(t, "hello", r.Message)
}

func TestAnalyzeCommandEmptyMessage(t *testing.T) {
	out, err := executeCommand(t, "", "analyze", "--config", writeConfig(t), "   ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, nav.ErrEmptyText))
	assert.Equal(t, 1, ExitCode(err))
	assert.Empty(t, out)
}

func TestAnalyzeCommandFileAndOutputFile(t *testing.T) {
	base := startDevServer(t)
	dir := t.TempDir()
	msg := filepath.Join(dir, "message.txt")
	dest := filepath.Join(dir, "report.md")
	require.NoError(t, os.WriteFile(msg, []byte("택배 배송 정지 즉시 확인 bit.ly/parcel"), 0o600))

	out, err := executeCommand(t, "", "analyze", "--config", writeConfig(t), "--api-base", base,
		"--output", "markdown", "--file", msg, "--output-file", dest)

	assert.Equal(t, exitRisk, ExitCode(err))
	assert.Empty(t, out)

	data, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "택배 배송 정지")
}

func TestAnalyzeCommandRejectsFileWithArgs(t *testing.T) {
	dir := t.TempDir()
	msg := filepath.Join(dir, "message.txt")
	require.NoError(t, os.WriteFile(msg, []byte("hi"), 0o600))

	_, err := executeCommand(t, "", "analyze", "--config", writeConfig(t), "--file", msg, "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestInvalidAPIBase(t *testing.T) {
	_, err := executeCommand(t, "", "analyze", "--config", writeConfig(t), "--api-base", "ftp://example.com", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--api-base")
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version", "--config", writeConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "SmishGuard test (abc123) built on today")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "smishguard.yaml")

	out, err := executeCommand(t, "", "config", "init", "--minimal", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = executeCommand(t, "", "config", "init", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = executeCommand(t, "", "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigValidateReportsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: csv\n"), 0o600))

	out, err := executeCommand(t, "", "config", "validate", "--config", path)
	assert.Equal(t, 1, ExitCode(err))
	assert.False(t, ShouldReport(err))
	assert.Contains(t, out, "validation failed")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReport bool
	}{
		{"nil", nil, 0, false},
		{"plain error", errors.New("boom"), 1, true},
		{"risk", &ExitError{Code: exitRisk}, exitRisk, false},
		{"failure with cause", &ExitError{Code: 1, Err: errors.New("down")}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCode(tt.err))
			assert.Equal(t, tt.wantReport, ShouldReport(tt.err))
		})
	}
}

func TestVerdictExit(t *testing.T) {
	assert.NoError(t, verdictExit(nav.State{Screen: nav.ScreenResultSafe}))
	assert.Equal(t, exitRisk, ExitCode(verdictExit(nav.State{Screen: nav.ScreenResultRisk})))
	assert.Equal(t, 1, ExitCode(verdictExit(nav.State{Screen: nav.ScreenHome, Err: "API 503: down"})))
}

func TestValidateWatchFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "msg.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0o600))

	assert.NoError(t, validateWatchFilePath(file))
	assert.Error(t, validateWatchFilePath(""))
	assert.Error(t, validateWatchFilePath(dir))
	assert.Error(t, validateWatchFilePath(filepath.Join(dir, "missing.txt")))
}
