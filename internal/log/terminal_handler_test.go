package log

import (
	"bytes"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestTerminalHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("search completed", "results", 7, "query", "נר חנוכה")

	line := stripANSI(buf.String())
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}\.\d{3} INFO {2}search completed`, line)
	assert.Contains(t, line, "results=7")
	assert.Contains(t, line, `query="נר חנוכה"`)
}

func TestTerminalHandlerLevelTags(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("a")
	logger.Warn("b")
	logger.Error("c")

	out := stripANSI(buf.String())
	assert.Contains(t, out, "DEBUG a")
	assert.Contains(t, out, "WARN  b")
	assert.Contains(t, out, "ERROR c")
}

func TestTerminalHandlerBoundAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil))

	logger.With("request_id", "abc").WithGroup("db").Info("query", "rows", 3)

	line := stripANSI(buf.String())
	assert.Contains(t, line, "request_id=abc")
	assert.Contains(t, line, "db.rows=3")
}

func TestTerminalHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil))

	logger.Debug("hidden")

	assert.Empty(t, buf.String())
}
