// Package analyzer wires the phases in internal/collect, internal/classify,
// internal/refwalk, internal/usage, internal/resolve and
// internal/constancy into the two-pass pipeline spec.md §2 describes:
// one shared Call-Site Collector pass, then Declaration Classifier +
// Reference Walker + Usage Extractor per classified declaration, then
// the Constancy Engine over the accumulated usages.
package analyzer

import (
	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/classify"
	"github.com/dittory/dittory/internal/collect"
	"github.com/dittory/dittory/internal/constancy"
	"github.com/dittory/dittory/internal/model"
	"github.com/dittory/dittory/internal/refwalk"
	"github.com/dittory/dittory/internal/resolve"
	"github.com/dittory/dittory/internal/usage"
)

// Target restricts which classified kind the run considers, matching
// spec.md §2's "the host drives the pipeline twice with different
// declaration kinds (components / functions+methods)".
type Target int

const (
	TargetAll Target = iota
	TargetComponents
	TargetFunctions
)

// Options configures one run over a Project.
type Options struct {
	MinUsages int
	Allow     constancy.Allowlist
	Target    Target
	Exclude   func(file string) bool
}

// AnalysisResult is the host-observed output of spec.md §6.
type AnalysisResult struct {
	ConstantParams []model.ConstantParam
	Declarations   []model.AnalyzedDeclaration
}

// Run executes the full pipeline over project.
func Run(project astsvc.Project, opts Options) AnalysisResult {
	checker := project.Checker()
	csm := collect.Collect(project, opts.Exclude)
	resolver := resolve.New(csm)
	extractor := &usage.Extractor{Checker: checker, Resolver: resolver}

	units := classifyProject(project, opts.Exclude)

	var declarations []model.AnalyzedDeclaration
	for _, u := range units {
		if !matchesTarget(u.decl.Kind, opts.Target) {
			continue
		}

		defs := buildDefinitions(u.decl.Decl, u.decl.Kind, checker)
		refs := refwalk.Walk(u.file, u.nameNode, opts.Exclude)

		ad := model.AnalyzedDeclaration{
			Name:          u.decl.ExportName,
			SourceFile:    u.decl.SourceFile,
			SourceLine:    u.decl.Decl.Pos().Line,
			Definitions:   defs,
			UsagesByParam: make(map[string][]model.Usage),
		}

		for _, ref := range refs {
			var observed []model.Usage
			switch ref.Kind {
			case refwalk.ComponentTag:
				observed = extractor.FromJsxElement(u.file, ref.Site, defs)
			case refwalk.FunctionCall, refwalk.MethodCall:
				observed = extractor.FromCall(u.file, ref.Site, defs)
			}
			for _, us := range observed {
				ad.UsagesByParam[us.Name] = append(ad.UsagesByParam[us.Name], us)
			}
		}

		declarations = append(declarations, ad)
	}

	var constants []model.ConstantParam
	for _, ad := range declarations {
		constants = append(constants, constancy.Analyze(ad, opts.MinUsages, opts.Allow)...)
	}

	return AnalysisResult{ConstantParams: constants, Declarations: declarations}
}

// classifiedUnit pairs one classified declaration with the file it
// came from and the name node the Reference Walker needs.
type classifiedUnit struct {
	decl     classify.Declaration
	file     astsvc.SourceFile
	nameNode astsvc.Node
}

func classifyProject(project astsvc.Project, exclude func(string) bool) []classifiedUnit {
	var out []classifiedUnit

	for _, f := range project.Files() {
		if exclude != nil && exclude(f.Path()) {
			continue
		}

		exports := f.Exports()
		exported := make([]classify.Exported, 0, len(exports))
		nameByDecl := make(map[astsvc.Node]astsvc.Node, len(exports))
		for _, ex := range exports {
			exported = append(exported, classify.Exported{Name: ex.Name, Decl: ex.Decl})
			nameByDecl[ex.Decl] = ex.NameNode
		}

		for _, d := range classify.Classify(f.Path(), exported) {
			if d.Kind == classify.Class {
				out = append(out, classMethods(f, d)...)
				continue
			}
			out = append(out, classifiedUnit{decl: d, file: f, nameNode: nameByDecl[d.Decl]})
		}
	}

	return out
}

// classMethods implements the "classes whose methods are analyzed
// individually" half of spec.md §2's Declaration Classifier summary.
// Only methods declared directly on the class node are considered —
// spec.md §9's open question decision on inherited methods.
func classMethods(file astsvc.SourceFile, classDecl classify.Declaration) []classifiedUnit {
	members := fieldChild(classDecl.Decl, "members")
	if members == nil {
		return nil
	}

	var out []classifiedUnit
	for _, m := range members.Children() {
		if m.Kind() != astsvc.KindMethodDeclaration {
			continue
		}
		name := fieldChild(m, "name")
		if name == nil {
			continue
		}
		out = append(out, classifiedUnit{
			decl: classify.Declaration{
				ExportName: classDecl.ExportName + "." + name.Text(),
				SourceFile: classDecl.SourceFile,
				Decl:       m,
				Kind:       classify.Function,
			},
			file:     file,
			nameNode: name,
		})
	}
	return out
}

func matchesTarget(k classify.Kind, target Target) bool {
	switch target {
	case TargetComponents:
		return k == classify.Component
	case TargetFunctions:
		return k == classify.Function
	default:
		return true
	}
}

// buildDefinitions derives the Definition vector the Usage Extractor
// indexes against: one Definition per JSX prop for a component (read
// off the props parameter's object type), or one Definition per formal
// parameter, in declared order, otherwise.
func buildDefinitions(decl astsvc.Node, kind classify.Kind, checker astsvc.TypeChecker) []model.Definition {
	fn := functionNodeOf(decl)
	if fn == nil {
		return nil
	}
	if kind == classify.Component {
		return propDefinitions(fn, checker)
	}
	return paramDefinitions(fn)
}

// functionNodeOf resolves a classified declaration node down to the
// function-like node its parameters live on: itself for a function or
// method declaration, the initializer for an arrow/function-expression
// variable, or the wrapped callback for a one-level wrapper call
// (`memo(fn)`).
func functionNodeOf(decl astsvc.Node) astsvc.Node {
	switch decl.Kind() {
	case astsvc.KindFunctionDeclaration, astsvc.KindMethodDeclaration:
		return decl
	case astsvc.KindVariableDeclaration:
		init := fieldChild(decl, "initializer")
		if init == nil {
			return nil
		}
		switch init.Kind() {
		case astsvc.KindArrowFunction, astsvc.KindFunctionExpression:
			return init
		case astsvc.KindCallExpression:
			if args := fieldChild(init, "arguments"); args != nil {
				if kids := args.Children(); len(kids) > 0 {
					return kids[0]
				}
			}
		}
	}
	return nil
}

func paramDefinitions(fn astsvc.Node) []model.Definition {
	params := fieldChild(fn, "parameters")
	if params == nil {
		return nil
	}
	var out []model.Definition
	idx := 0
	for _, p := range params.Children() {
		if p.Kind() != astsvc.KindParameter {
			continue
		}
		name := fieldChild(p, "name")
		if name == nil {
			continue
		}
		required := fieldChild(p, "questionToken") == nil && fieldChild(p, "initializer") == nil
		out = append(out, model.Definition{Name: name.Text(), Index: idx, Required: required})
		idx++
	}
	return out
}

// propDefinitions enumerates the named properties of a component's
// sole props parameter's type, falling back to positional parameter
// names if the type carries no properties (e.g. a component taking no
// props, or props typed as `any`).
func propDefinitions(fn astsvc.Node, checker astsvc.TypeChecker) []model.Definition {
	params := fieldChild(fn, "parameters")
	if params == nil {
		return nil
	}

	var propsParam astsvc.Node
	for _, p := range params.Children() {
		if p.Kind() == astsvc.KindParameter {
			propsParam = p
			break
		}
	}
	if propsParam == nil {
		return nil
	}

	t := checker.TypeOf(propsParam)
	if t == nil {
		return paramDefinitions(fn)
	}
	props, ok := t.ObjectProperties()
	if !ok {
		return paramDefinitions(fn)
	}

	out := make([]model.Definition, len(props))
	for i, p := range props {
		out[i] = model.Definition{Name: p.Name, Index: i, Required: !p.Optional}
	}
	return out
}

func fieldChild(n astsvc.Node, field string) astsvc.Node {
	for _, c := range n.Children() {
		if c.FieldName() == field {
			return c
		}
	}
	return nil
}
