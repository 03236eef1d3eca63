package config

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml chains/*.yaml
var defFS embed.FS

// LoadScenarioDef reads a scenario definition by name, first from the
// working directory (path or bare name), then from the embedded set.
func LoadScenarioDef(name string) (*ScenarioDef, error) {
	data, err := readDef("scenarios", name)
	if err != nil {
		return nil, fmt.Errorf("scenario %q not found (available: %s): %w",
			name, strings.Join(ListScenarios(), ", "), err)
	}
	var def ScenarioDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", name, err)
	}
	return &def, nil
}

// LoadChainDef reads a chain definition by name, first from the working
// directory, then from the embedded set.
func LoadChainDef(name string) (*ChainDef, error) {
	data, err := readDef("chains", name)
	if err != nil {
		return nil, fmt.Errorf("chain %q not found (available: %s): %w",
			name, strings.Join(ListChains(), ", "), err)
	}
	var def ChainDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse chain %q: %w", name, err)
	}
	return &def, nil
}

// readDef resolves name as a filesystem path, then as an embedded file.
func readDef(dir, name string) ([]byte, error) {
	for _, path := range []string{name, name + ".yaml"} {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return defFS.ReadFile(dir + "/" + name + ".yaml")
}

// ListScenarios returns the names of all embedded scenarios, sorted.
func ListScenarios() []string {
	return listDefs("scenarios")
}

// ListChains returns the names of all embedded chains, sorted.
func ListChains() []string {
	return listDefs("chains")
}

func listDefs(dir string) []string {
	entries, _ := defFS.ReadDir(dir)
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}
