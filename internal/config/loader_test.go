package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListScenarios(t *testing.T) {
	want := []string{"danish-winter", "mild-spring"}
	if diff := cmp.Diff(want, ListScenarios()); diff != "" {
		t.Errorf("ListScenarios() mismatch (-want +got):\n%s", diff)
	}
}

func TestListChains(t *testing.T) {
	want := []string{"pit-storage", "power-to-hydrogen"}
	if diff := cmp.Diff(want, ListChains()); diff != "" {
		t.Errorf("ListChains() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScenarioDef_Embedded(t *testing.T) {
	def, err := LoadScenarioDef("danish-winter")
	if err != nil {
		t.Fatalf("LoadScenarioDef: %v", err)
	}
	if def.Name != "danish-winter" {
		t.Errorf("Name = %q, want danish-winter", def.Name)
	}
	if def.T0 == nil || def.T0.Value != 278.15 {
		t.Errorf("T0 = %+v, want 278.15 K", def.T0)
	}
	if def.Tb == nil || def.Tb.Unit != "K" {
		t.Errorf("Tb = %+v, want Kelvin value", def.Tb)
	}
	if len(def.BoundaryElements) != 4 {
		t.Errorf("boundary elements = %v, want 4 entries", def.BoundaryElements)
	}
	if _, ok := def.Aux["charge_energy"]; !ok {
		t.Error("aux charge_energy missing")
	}
}

func TestLoadChainDef_Embedded(t *testing.T) {
	def, err := LoadChainDef("power-to-hydrogen")
	if err != nil {
		t.Fatalf("LoadChainDef: %v", err)
	}
	if len(def.Stages) != 4 {
		t.Fatalf("stages = %d, want 4", len(def.Stages))
	}
	kinds := make([]string, len(def.Stages))
	for i, s := range def.Stages {
		kinds[i] = s.Kind
	}
	want := []string{"CHARGE", "STORE", "CONVERT", "DELIVER"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("stage kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScenarioDef_UnknownListsAvailable(t *testing.T) {
	_, err := LoadScenarioDef("atlantis")
	if err == nil {
		t.Fatal("unknown scenario loaded")
	}
	if !strings.Contains(err.Error(), "danish-winter") {
		t.Errorf("error does not list available scenarios: %v", err)
	}
}

func TestLoadScenarioDef_FilesystemOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")
	yaml := `
name: local-test
t0: {value: 285.15, unit: K, source: measured, label: "local ambient"}
tb: {value: 343.15, unit: K, source: assumed, label: "local supply"}
boundary_elements: [dh-exchanger]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := LoadScenarioDef(path)
	if err != nil {
		t.Fatalf("LoadScenarioDef(path): %v", err)
	}
	if def.Name != "local-test" {
		t.Errorf("Name = %q, want local-test", def.Name)
	}
}
