package config

import (
	"fmt"

	"github.com/dittory/dittory/internal/clierr"
)

// Options is the fully-resolved configuration for one run, after
// applying CLI flags > config file > defaults (spec.md §6).
type Options struct {
	Directory         string
	MinUsages         int
	Target            string // "all" | "components" | "functions"
	Output            string // "simple" | "verbose"
	Tsconfig          string
	Exclude           []string
	AllowedValueKinds []string // "all" or a subset of boolean/number/string/enum/undefined
	Verbose           bool
}

// Defaults implements spec.md §6's default core configuration plus the
// CLI surface's own `./src` default directory.
func Defaults() Options {
	return Options{
		Directory:         "./src",
		MinUsages:         2,
		Target:            "all",
		Output:            "simple",
		AllowedValueKinds: []string{"all"},
	}
}

// ApplyFile overlays non-nil/non-empty fields from a parsed config File
// onto o, returning the merged result. f may be nil (no config file
// present).
func (o Options) ApplyFile(f *File) Options {
	if f == nil {
		return o
	}
	if f.MinUsages != nil {
		o.MinUsages = *f.MinUsages
	}
	if f.Target != nil {
		o.Target = *f.Target
	}
	if f.Output != nil {
		o.Output = *f.Output
	}
	if f.Tsconfig != nil {
		o.Tsconfig = *f.Tsconfig
	}
	if len(f.Exclude) > 0 {
		o.Exclude = f.Exclude
	}
	if len(f.AllowedValueKinds) > 0 {
		o.AllowedValueKinds = f.AllowedValueKinds
	}
	return o
}

var validTargets = map[string]bool{"all": true, "components": true, "functions": true}
var validOutputs = map[string]bool{"simple": true, "verbose": true}
var validValueKinds = map[string]bool{"all": true, "boolean": true, "number": true, "string": true, "enum": true, "undefined": true}

// Validate implements spec.md §7's "invalid target/output/valueTypes
// value" configuration error and "malformed --min value".
func (o Options) Validate() error {
	if o.Directory == "" {
		return clierr.New("directory", "missing target directory")
	}
	if o.MinUsages < 1 {
		return clierr.New("--min", fmt.Sprintf("must be a positive integer, got %d", o.MinUsages))
	}
	if !validTargets[o.Target] {
		return clierr.New("--target", fmt.Sprintf("must be one of all|components|functions, got %q", o.Target))
	}
	if !validOutputs[o.Output] {
		return clierr.New("--output", fmt.Sprintf("must be one of simple|verbose, got %q", o.Output))
	}
	for _, k := range o.AllowedValueKinds {
		if !validValueKinds[k] {
			return clierr.New("allowedValueKinds", fmt.Sprintf("unknown value kind %q", k))
		}
	}
	return nil
}
