// Package dittory is the public entry point: construct an Engine with
// functional options, then Analyze a directory.
package dittory

import (
	"fmt"

	"github.com/dittory/dittory/internal/analyzer"
	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/clierr"
	"github.com/dittory/dittory/internal/constancy"
	"github.com/dittory/dittory/internal/discover"
)

// Option configures an Engine. Apply via New(opts...).
type Option func(*options)

type options struct {
	minUsages    int
	target       analyzer.Target
	allow        constancy.Allowlist
	exclude      []string
	tsconfigPath string
}

func defaultOptions() options {
	return options{
		minUsages: 2,
		target:    analyzer.TargetAll,
		allow:     constancy.NewAllowlist(true),
	}
}

// WithMinUsages sets the minimum accepted-call-site count a parameter
// must appear at before it is eligible to be reported (spec.md §6,
// default 2).
func WithMinUsages(n int) Option {
	return func(o *options) { o.minUsages = n }
}

// WithTarget restricts analysis to components, functions (and class
// methods), or both (the default).
func WithTarget(t analyzer.Target) Option {
	return func(o *options) { o.target = t }
}

// WithAllowedValueKinds restricts which value kinds are reportable
// (spec.md §6's allowedValueKinds). Pass "all" (the default) or any
// subset of "boolean", "number", "string", "enum", "undefined".
func WithAllowedValueKinds(kinds ...string) Option {
	return func(o *options) {
		for _, k := range kinds {
			if k == "all" {
				o.allow = constancy.NewAllowlist(true)
				return
			}
		}
		var classes []argvalue.ValueKind
		for _, k := range kinds {
			if vk, ok := valueKindByName[k]; ok {
				classes = append(classes, vk)
			}
		}
		o.allow = constancy.NewAllowlist(false, classes...)
	}
}

var valueKindByName = map[string]argvalue.ValueKind{
	"boolean":   argvalue.ClassBoolean,
	"number":    argvalue.ClassNumber,
	"string":    argvalue.ClassString,
	"enum":      argvalue.ClassEnum,
	"undefined": argvalue.ClassUndefined,
}

// WithExclude adds doublestar glob patterns (in addition to spec.md
// §6's built-in test/story default) that exclude a matching file from
// analysis entirely.
func WithExclude(patterns ...string) Option {
	return func(o *options) { o.exclude = patterns }
}

// WithTsconfig points the AST service at a tsconfig.json to resolve
// compiler options (path aliases, jsx mode) from.
func WithTsconfig(path string) Option {
	return func(o *options) { o.tsconfigPath = path }
}

// Engine runs the analyzer pipeline over a directory.
type Engine struct {
	opts options
}

// New builds an Engine from the given options, defaulting per spec.md
// §6 where an option is not supplied.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.minUsages < 1 {
		return nil, clierr.New("minUsages", fmt.Sprintf("must be a positive integer, got %d", o.minUsages))
	}
	return &Engine{opts: o}, nil
}

// Analyze type-checks the program the AST service builds rooted at dir
// (from the tsconfig, or the default compiler options) and runs the full
// constant-parameter pipeline over it; excluded files are skipped by the
// pipeline, not at load time.
func (e *Engine) Analyze(dir string) (analyzer.AnalysisResult, error) {
	exclude := discover.ExcludeFilter(e.opts.exclude)

	project, release, err := astsvc.NewProject(dir, e.opts.tsconfigPath, nil)
	if err != nil {
		return analyzer.AnalysisResult{}, err
	}
	defer release()

	result := analyzer.Run(project, analyzer.Options{
		MinUsages: e.opts.minUsages,
		Allow:     e.opts.allow,
		Target:    e.opts.target,
		Exclude:   exclude,
	})
	return result, nil
}
