package logger

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.WarnLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.WarnLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New("api", zap.New(core))

	l.Warn("analysis request failed",
		F("request_id", "req_1"),
		Duration(150*time.Millisecond),
		Error(errors.New("connection refused")))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["component"] != "api" {
		t.Errorf("Expected component api, got %v", fields["component"])
	}
	if fields["request_id"] != "req_1" {
		t.Errorf("Expected request_id req_1, got %v", fields["request_id"])
	}
	if fields["duration"] != 150*time.Millisecond {
		t.Errorf("Expected duration 150ms, got %v", fields["duration"])
	}
	if fields["error"] != "connection refused" {
		t.Errorf("Expected error field, got %v", fields["error"])
	}
}

func TestWithComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	root := New("", zap.New(core))

	root.Info("starting")
	root.WithComponent("submission").Info("settled")
	root.Debug("hidden")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["component"]; got != "main" {
		t.Errorf("Expected default component main, got %v", got)
	}
	if got := entries[1].ContextMap()["component"]; got != "submission" {
		t.Errorf("Expected component submission, got %v", got)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("nothing to see")
	if l.Zap() == nil {
		t.Error("Nop logger should still wrap a zap logger")
	}
}
