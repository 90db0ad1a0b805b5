package polyglot

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
)

var (
	logMu   sync.Mutex
	logFile *os.File
	logOut  io.Writer = os.Stderr
	quiet   bool
)

// SetLogOutput redirects console log lines. Returns the previous writer.
func SetLogOutput(w io.Writer) io.Writer {
	logMu.Lock()
	defer logMu.Unlock()
	prev := logOut
	logOut = w
	return prev
}

func InitLogFile(path string) error {
	logMu.Lock()
	defer logMu.Unlock()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetQuiet mutes console log lines.
func SetQuiet(q bool) { quiet = q }

// Quiet reports whether console output is muted, by SetQuiet or POLYGLOT_QUIET.
func Quiet() bool {
	return quiet || os.Getenv("POLYGLOT_QUIET") != ""
}

func logLine(prefix string, paint func(a ...any) string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().Format("15:04:05")

	logMu.Lock()
	defer logMu.Unlock()
	if !Quiet() {
		fmt.Fprintf(logOut, "[%s] %s %s\n", ts, paint(prefix), msg)
	}
	if logFile != nil {
		fmt.Fprintf(logFile, "[%s] %s %s\n", ts, prefix, msg)
	}
}

func LogInfo(format string, args ...any) {
	logLine("INFO", Cyan, format, args...)
}

func LogOK(format string, args ...any) {
	logLine(" OK ", Green, format, args...)
}

func LogWarn(format string, args ...any) {
	logLine("WARN", Yellow, format, args...)
}

func LogError(format string, args ...any) {
	logLine(" ERR", Red, format, args...)
}
