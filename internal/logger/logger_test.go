package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sjalq/bitly-maker/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestInitWritesJSONAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := Init(&config.Config{LogLevel: "warn"}, &buf)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { S = nil })

	log.DebugObj("hidden", "k", 1)
	log.InfoObj("hidden", "k", 2)
	log.WarnObj("shown", "detail", map[string]any{"status": 400})
	_ = Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts field in %v", entry)
	}
}

func TestPackageHelpersShareInitLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := Init(&config.Config{LogLevel: "info"}, &buf)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { S = nil })

	log.InfoObj("from interface", "k", 1)
	InfoObj("from helper", "k", 2)
	_ = Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		caller, _ := entry["caller"].(string)
		if !strings.HasPrefix(caller, "logger/logger_test.go:") {
			t.Fatalf("caller %q should point at the test, entry %v", caller, entry)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	InfoObj("x", "k", 1)
	ErrorObj("x", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
