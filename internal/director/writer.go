package director

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatFor picks the scenario encoding from the file extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Errorf("unsupported scenario extension %q", filepath.Ext(path))
	}
}

// WriteScenario writes a scenario to a YAML or TOML file
func WriteScenario(scenario *Scenario, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Marshal(scenario, format)
	if err != nil {
		return err
	}

	return errors.Wrapf(os.WriteFile(path, data, 0644), "write scenario %s", path)
}

// ReadScenario reads a scenario from a YAML or TOML file.
// Keys missing from the file keep their default values.
func ReadScenario(path string) (*Scenario, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}

	scenario, err := Unmarshal(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode scenario %s", path)
	}
	return scenario, nil
}

func Marshal(scenario *Scenario, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(scenario)
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(scenario); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Errorf("unknown scenario format %q", format)
	}
}

func Unmarshal(data []byte, format string) (*Scenario, error) {
	scenario := NewScenario()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, scenario); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, scenario); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unknown scenario format %q", format)
	}
	return scenario, nil
}
