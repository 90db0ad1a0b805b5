package polyglot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureLog redirects console log lines into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(prev) })
	return &buf
}

func TestInitLogFile_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	if err := InitLogFile(path); err != nil {
		t.Fatalf("InitLogFile error: %v", err)
	}
	defer CloseLogFile()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file should be created")
	}
}

func TestInitLogFile_InvalidPath(t *testing.T) {
	if err := InitLogFile("/nonexistent/dir/test.log"); err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestCloseLogFile_WhenNotOpen(t *testing.T) {
	CloseLogFile()
	CloseLogFile()
}

func TestLogFunctions_Prefixes(t *testing.T) {
	buf := captureLog(t)

	LogInfo("info %s", "a")
	LogOK("ok %d", 1)
	LogWarn("warn %v", true)
	LogError("error %s", "oops")

	out := buf.String()
	for _, want := range []string{"INFO info a", " OK  ok 1", "WARN warn true", " ERR error oops"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 4 {
		t.Errorf("got %d lines, want 4", n)
	}
}

func TestLogFunctions_WritesToFile(t *testing.T) {
	captureLog(t)
	path := filepath.Join(t.TempDir(), "test.log")
	InitLogFile(path)

	LogInfo("hello from test")
	CloseLogFile()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(content)
	if !strings.Contains(s, "INFO hello from test") {
		t.Errorf("log file should contain the line: %q", s)
	}
	if strings.Contains(s, "\033[") {
		t.Errorf("log file should not contain color codes: %q", s)
	}
}

func TestLogFunctions_QuietSuppressesConsole(t *testing.T) {
	buf := captureLog(t)
	path := filepath.Join(t.TempDir(), "quiet.log")
	InitLogFile(path)
	defer CloseLogFile()
	SetQuiet(true)
	defer SetQuiet(false)

	LogInfo("quiet mode")

	if buf.Len() != 0 {
		t.Errorf("expected no console output in quiet mode, got %q", buf.String())
	}
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "quiet mode") {
		t.Error("log file should still contain message in quiet mode")
	}
}

func TestQuiet_Env(t *testing.T) {
	t.Setenv("POLYGLOT_QUIET", "1")
	if !Quiet() {
		t.Error("POLYGLOT_QUIET should enable quiet mode")
	}
}
