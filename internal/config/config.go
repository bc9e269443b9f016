// Package config handles .tlcomparerc.yml project-level configuration,
// letting a repository pin its own default thresholds instead of relying on
// CLI flags at every invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// ProjectConfig represents the .tlcomparerc.yml configuration file.
type ProjectConfig struct {
	Version    int               `yaml:"version"`
	Thresholds thresholdOverride `yaml:"thresholds"`
}

// thresholdOverride mirrors tlcompare.Thresholds but with YAML tags and
// pointer fields, so an absent key in the file leaves the CLI default
// untouched instead of zeroing it out.
type thresholdOverride struct {
	UserThreshold     *float64 `yaml:"user_threshold"`
	CriticalThreshold *float64 `yaml:"critical_threshold"`
	PrintThreshold    *float64 `yaml:"print_threshold"`
}

// Load loads project configuration from .tlcomparerc.yml or
// .tlcomparerc.yaml in dir. If explicitPath is set (from --config), that
// file is loaded instead. Returns nil, nil if no config file is found.
func Load(dir, explicitPath string) (*ProjectConfig, error) {
	var path string

	if explicitPath != "" {
		path = explicitPath
	} else {
		ymlPath := filepath.Join(dir, ".tlcomparerc.yml")
		yamlPath := filepath.Join(dir, ".tlcomparerc.yaml")

		if _, err := os.Stat(ymlPath); err == nil {
			path = ymlPath
		} else if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project config %s: %w", path, err)
	}

	cfg := &ProjectConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse project config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the ProjectConfig values are sane.
func (c *ProjectConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	if c.Thresholds.CriticalThreshold != nil && *c.Thresholds.CriticalThreshold < 0 {
		return fmt.Errorf("critical_threshold must be >= 0, got %f", *c.Thresholds.CriticalThreshold)
	}
	if c.Thresholds.PrintThreshold != nil && *c.Thresholds.PrintThreshold < 0 {
		return fmt.Errorf("print_threshold must be >= 0, got %f", *c.Thresholds.PrintThreshold)
	}
	return nil
}

// ApplyToThresholds overrides fields of th with the config file's values,
// skipping any field the caller reports as explicitly set on the command
// line. Zero is a meaningful UserThreshold ("sensitive mode"), so the
// caller must track "was this flag set" itself (e.g. via cobra's
// Flags().Changed) rather than this function inferring it from the value.
func (c *ProjectConfig) ApplyToThresholds(th *tlcompare.Thresholds, userSet, criticalSet, printSet bool) {
	if c == nil || th == nil {
		return
	}
	if !userSet && c.Thresholds.UserThreshold != nil {
		th.UserThreshold = *c.Thresholds.UserThreshold
	}
	if !criticalSet && c.Thresholds.CriticalThreshold != nil {
		th.CriticalThreshold = *c.Thresholds.CriticalThreshold
	}
	if !printSet && c.Thresholds.PrintThreshold != nil {
		th.PrintThreshold = *c.Thresholds.PrintThreshold
	}
}
