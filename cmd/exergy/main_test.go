package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScenariosCommand(t *testing.T) {
	out, err := execute(t, "scenarios")
	if err != nil {
		t.Fatalf("scenarios: %v", err)
	}
	for _, want := range []string{"danish-winter", "mild-spring", "pit-storage", "power-to-hydrogen"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", "--scenario", "danish-winter", "--chain", "pit-storage")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "ok:") {
		t.Errorf("output = %q, want ok verdict", out)
	}
}

func TestRunCommand_ExportsCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "series.csv")
	out, err := execute(t, "run",
		"--scenario", "danish-winter", "--chain", "pit-storage",
		"--steps", "4", "-o", csvPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Exergy efficiency") {
		t.Errorf("summary missing efficiency line:\n%s", out)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	// header + 4 steps x (5 + 5 + 6) records per step
	if want := 1 + 4*16; len(lines) != want {
		t.Errorf("export = %d lines, want %d", len(lines), want)
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare",
		"--scenario", "danish-winter", "--chain", "pit-storage,power-to-hydrogen")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out, "pit-storage") || !strings.Contains(out, "power-to-hydrogen") {
		t.Errorf("comparison missing chain rows:\n%s", out)
	}
}
