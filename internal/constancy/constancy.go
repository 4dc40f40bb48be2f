// Package constancy implements the Constancy Engine (spec.md §4.8):
// deciding, per declaration per parameter path, whether every accepted
// call site supplied the same value.
package constancy

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/model"
)

// Allowlist restricts which value kinds are reportable. "all" accepts
// every kind, including the otherwise-unclassifiable ones (functions,
// paramrefs, this, variable refs).
type Allowlist struct {
	All   bool
	Kinds map[argvalue.ValueKind]bool
}

func NewAllowlist(all bool, kinds ...argvalue.ValueKind) Allowlist {
	m := make(map[argvalue.ValueKind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return Allowlist{All: all, Kinds: m}
}

func (a Allowlist) accepts(k argvalue.ValueKind) bool {
	if a.All {
		return true
	}
	if k == argvalue.ClassUnclassifiable {
		return false
	}
	return a.Kinds[k]
}

// Analyze implements §4.8 over one declaration's accumulated usages.
func Analyze(decl model.AnalyzedDeclaration, minUsages int, allow Allowlist) []model.ConstantParam {
	totalCallCount := 0
	for _, usages := range decl.UsagesByParam {
		if len(usages) > totalCallCount {
			totalCallCount = len(usages)
		}
	}

	var out []model.ConstantParam
	for paramPath, usages := range decl.UsagesByParam {
		if len(usages) == 0 {
			continue
		}
		if usages[0].Value.Kind() == argvalue.Function {
			continue
		}

		keys := map[string]bool{}
		for _, u := range usages {
			keys[u.Value.Key()] = true
		}

		if len(usages) < minUsages || len(keys) != 1 || len(usages) != totalCallCount {
			continue
		}

		unique := usages[0].Value
		if !allow.accepts(unique.Classify()) {
			continue
		}

		out = append(out, model.ConstantParam{
			DeclarationName: decl.Name,
			DeclarationFile: decl.SourceFile,
			DeclarationLine: decl.SourceLine,
			ParamName:       paramPath,
			Value:           unique,
			Usages:          usages,
		})
	}

	sortConstants(out)
	return out
}

// sortConstants orders findings deterministically: declaration file,
// then declaration line, then parameter path in natural (numeric-aware)
// lexicographic order.
func sortConstants(cs []model.ConstantParam) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].DeclarationFile != cs[j].DeclarationFile {
			return cs[i].DeclarationFile < cs[j].DeclarationFile
		}
		if cs[i].DeclarationLine != cs[j].DeclarationLine {
			return cs[i].DeclarationLine < cs[j].DeclarationLine
		}
		return natural.Less(cs[i].ParamName, cs[j].ParamName)
	})
}
