// Package yaml loads scraper configuration from a YAML file. Every field
// has a flag counterpart; flags win when both are set.
package yaml

import (
	"os"

	"gopkg.in/yaml.v2"

	"coursetree"
)

// LimitsConfig caps the number of children kept at each tree level.
// Zero means unlimited.
type LimitsConfig struct {
	MaxPaths          int `yaml:"max_paths"`
	MaxModulesPerPath int `yaml:"max_modules_per_path"`
	MaxUnitsPerModule int `yaml:"max_units_per_module"`
}

// FetchConfig controls request pacing and timeouts.
type FetchConfig struct {
	DelayMS    int `yaml:"delay_ms"`
	TimeoutSec int `yaml:"timeout_sec"`
}

// OutputConfig controls where artifacts and the unit store live.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	DBPath string `yaml:"db_path"`
}

// Config is the root configuration document.
type Config struct {
	Limits         LimitsConfig `yaml:"limits"`
	Fetch          FetchConfig  `yaml:"fetch"`
	Output         OutputConfig `yaml:"output"`
	ExtractContent *bool        `yaml:"extract_content"`
}

// ContentEnabled reports whether content extraction is on. Unset defaults
// to true; structure-only runs must opt out explicitly.
func (c *Config) ContentEnabled() bool {
	return c.ExtractContent == nil || *c.ExtractContent
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, coursetree.Errorf(coursetree.ENOTFOUND, "no config file at %s", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, coursetree.Errorf(coursetree.EINVALID, "parsing %s: %v", path, err)
	}
	return &cfg, nil
}
