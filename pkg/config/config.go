// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/scenescan/pkg/detect"
)

// Config represents the full configuration for scenescan.
type Config struct {
	// Input/Output
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Detection
	MinScenecut      *int `yaml:"min_scenecut"`
	MaxScenecut      *int `yaml:"max_scenecut"`
	Lookahead        int  `yaml:"lookahead"`
	NoFlashDetection bool `yaml:"no_flash_detection"`

	// CPU capability override (e.g. "scalar", "avx2"); empty means
	// autodetect.
	CPU string `yaml:"cpu"`

	// Artifacts
	Plot     bool   `yaml:"plot"`
	Summary  string `yaml:"summary"`
	DebugDir string `yaml:"debug_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Lookahead: detect.DefaultOptions().LookaheadDistance,
		DebugDir:  "./debug",
		LogLevel:  "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToDetectionOptions converts Config to detect.DetectionOptions.
// The CPU override is resolved by the caller because parse failures
// should surface as CLI errors.
func (c Config) ToDetectionOptions() detect.DetectionOptions {
	opts := detect.DefaultOptions()
	opts.AnalyzeFlashes = !c.NoFlashDetection
	opts.MinScenecutDistance = c.MinScenecut
	opts.MaxScenecutDistance = c.MaxScenecut
	if c.Lookahead > 0 {
		opts.LookaheadDistance = c.Lookahead
	}
	return opts
}
