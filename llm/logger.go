// logger.go provides file-based logging for all gateway interactions.
//
// Logs are written to ~/.propchat/logs/llm.log with timestamps. The
// TUI owns stdout, so diagnostics go to a file instead.
package llm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	logOnce sync.Once
	logFile *os.File
)

// initLog opens (or creates) the log file. Called once lazily.
func initLog() {
	logOnce.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return
		}
		logDir := filepath.Join(homeDir, ".propchat", "logs")
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return
		}
		logPath := filepath.Join(logDir, "llm.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return
		}
		logFile = f
	})
}

func logWrite(s string) {
	initLog()
	if logFile != nil {
		logFile.WriteString(s) //nolint:errcheck
	}
}

// logRequest records an outgoing message list.
func logRequest(model string, messages []Message) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"\n════════════════════════════════════════════════════════════════\n"+
			"[REQUEST] %s  |  Model: %s\n"+
			"════════════════════════════════════════════════════════════════\n",
		ts, model,
	))
	for _, m := range messages {
		sb.WriteString(fmt.Sprintf("%s:\n%s\n────────────────────────────────────────\n", m.Role, m.Content))
	}
	logWrite(sb.String())
}

// logResponse records the reply (or the classified failure).
func logResponse(model string, response string, err error) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	errStr := "(none)"
	if err != nil {
		errStr = err.Error()
	}
	logWrite(fmt.Sprintf(
		"[RESPONSE] %s  |  Model: %s\n"+
			"Error: %s\n"+
			"────────────────────────────────────────\n"+
			"%s\n"+
			"════════════════════════════════════════════════════════════════\n\n",
		ts, model, errStr, response,
	))
}
