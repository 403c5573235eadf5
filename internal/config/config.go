package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds settings loaded from sourceit.yml. Zero values mean
// "use the built-in default"; command-line flags override any value set here.
type ProjectConfig struct {
	ProgramName       string `yaml:"programName,omitempty"`
	OutputDir         string `yaml:"outputDir,omitempty"`
	Prefix            string `yaml:"prefix,omitempty"`
	ManifestName      string `yaml:"manifestName,omitempty"`
	Verbose           bool   `yaml:"verbose,omitempty"`
	VerifyConcurrency int    `yaml:"verifyConcurrency,omitempty"`
}

// FileNames lists the config file names Load looks for, in order.
var FileNames = []string{"sourceit.yml", "sourceit.yaml"}

// Load attempts to read sourceit.yml or sourceit.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
