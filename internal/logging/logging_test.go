package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("unknown level accepted")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Init("info", "json", &buf); err != nil {
		t.Fatalf("Init: %v", err)
	}
	slog.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("output not JSON: %q", buf.String())
	}
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	if err := Init("loud", "text"); err == nil {
		t.Error("unknown level accepted")
	}
}

func TestNew_AttachesComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Init("info", "text", &buf); err != nil {
		t.Fatalf("Init: %v", err)
	}
	New("sim").Info("stepping")
	if !strings.Contains(buf.String(), "component=sim") {
		t.Errorf("component attribute missing: %q", buf.String())
	}
}
