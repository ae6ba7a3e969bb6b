package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads a settings file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(raw)
	case ".json":
		return FromJSON(raw)
	default:
		return Data{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Data bag.
func FromYAML(raw []byte) (Data, error) {
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Data{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Data bag.
func FromJSON(raw []byte) (Data, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Data{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}
