// Package model holds the data containers shared across the pipeline
// phases (spec.md §3): the Call-Site Collector's output, the Usage
// Extractor's per-declaration accumulator, and the Constancy Engine's
// report unit. Kept separate from any one phase so internal/collect,
// internal/usage, internal/resolve and internal/constancy can all
// depend on it without importing each other.
package model

import "github.com/dittory/dittory/internal/argvalue"

// Definition is one formal parameter or JSX prop.
type Definition struct {
	Name     string
	Index    int
	Required bool
}

// Usage is one observed value at one accepted reference, for one
// parameter path.
type Usage struct {
	Name  string
	Value argvalue.Value
	File  string
	Line  int
}

// CallSiteArg is one argument value observed at one call, for one named
// formal.
type CallSiteArg struct {
	Name       string
	Value      argvalue.Value
	CallerFile string
	CallerLine int
}

// CallSiteMap is the Call-Site Collector's single output: every call
// site's argument values, grouped by declaration id ("file:name") and
// then by formal-parameter name. Populated once, read-only afterwards.
type CallSiteMap map[string]map[string][]CallSiteArg

// DeclarationID builds the map key the collector and the resolver both
// use: the declaring file and the name the declaration is called by.
func DeclarationID(declFile, name string) string {
	return declFile + ":" + name
}

// AnalyzedDeclaration accumulates every usage observed for one exported
// declaration (a component, function, or class method) across all
// accepted references. Built by the Reference Walker + Usage Extractor,
// then read-only.
type AnalyzedDeclaration struct {
	Name          string
	SourceFile    string
	SourceLine    int
	Definitions   []Definition
	UsagesByParam map[string][]Usage
}

// ConstantParam is one finding: a parameter that was supplied with the
// same value at every accepted call site.
type ConstantParam struct {
	DeclarationName string
	DeclarationFile string
	DeclarationLine int
	ParamName       string
	Value           argvalue.Value
	Usages          []Usage
}
