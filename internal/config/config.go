// Package config loads dittory.config.{json,yaml,yml} (spec.md §6) and
// merges it with CLI flags and the core's own defaults, following the
// precedence CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/dittory/dittory/internal/clierr"
)

// File is the on-disk shape of dittory.config.json / .yaml / .yml.
// Every field is optional — an absent field falls through to the
// default or, if a CLI flag was passed, to that flag's value.
type File struct {
	MinUsages         *int     `json:"minUsages,omitempty" yaml:"minUsages,omitempty"`
	Target            *string  `json:"target,omitempty" yaml:"target,omitempty"`
	Output            *string  `json:"output,omitempty" yaml:"output,omitempty"`
	Tsconfig          *string  `json:"tsconfig,omitempty" yaml:"tsconfig,omitempty"`
	Exclude           []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	AllowedValueKinds []string `json:"allowedValueKinds,omitempty" yaml:"allowedValueKinds,omitempty"`
}

// candidateNames lists the config file names Load looks for, in the
// order spec.md §6 requires: a `.js`/`.mjs` file detected-but-unsupported
// takes priority over `.json`/`.yaml`/`.yml` so the user gets pointed at
// the actual file they meant to use, not a silently-ignored one.
var candidateNames = []string{
	"dittory.config.js",
	"dittory.config.mjs",
	"dittory.config.json",
	"dittory.config.yaml",
	"dittory.config.yml",
}

// Load resolves and parses a config file relative to dir. It returns
// (nil, nil) when no config file is present — that is not an error,
// since a config file is always optional per spec.md §6.
func Load(dir string) (*File, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, clierr.Newf(path, "could not read config file: %s", err)
		}

		switch filepath.Ext(name) {
		case ".js", ".mjs":
			return nil, clierr.Newf(path, "unsupported config format %s, use .json or .yaml instead", filepath.Ext(name))
		case ".json":
			var f File
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, clierr.Newf(path, "malformed JSON config: %s", err)
			}
			return &f, nil
		case ".yaml", ".yml":
			var f File
			if err := yaml.Unmarshal(data, &f); err != nil {
				return nil, clierr.Newf(path, "malformed YAML config: %s", err)
			}
			return &f, nil
		}
	}
	return nil, nil
}
