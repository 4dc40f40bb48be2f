// Package collect implements the Call-Site Collector (spec.md §4.2): one
// whole-program pass that records, for every JSX element and every
// direct function call, the value passed for each named parameter.
package collect

import (
	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/extract"
	"github.com/dittory/dittory/internal/model"
)

// ExcludeFilter reports whether a file path should be skipped entirely.
type ExcludeFilter func(file string) bool

// Collect walks every non-excluded file in the project once and builds
// the shared CallSiteMap.
func Collect(project astsvc.Project, exclude ExcludeFilter) model.CallSiteMap {
	out := make(model.CallSiteMap)
	checker := project.Checker()

	for _, f := range project.Files() {
		if exclude != nil && exclude(f.Path()) {
			continue
		}
		walk(f.Root(), checker, out)
	}

	return out
}

func walk(n astsvc.Node, checker astsvc.TypeChecker, out model.CallSiteMap) {
	switch n.Kind() {
	case astsvc.KindJsxOpeningElement, astsvc.KindJsxSelfClosingElement:
		collectJsxElement(n, checker, out)
	case astsvc.KindCallExpression:
		collectCall(n, checker, out)
	}

	for _, c := range n.Children() {
		walk(c, checker, out)
	}
}

// collectJsxElement implements §4.2's first bullet.
func collectJsxElement(elt astsvc.Node, checker astsvc.TypeChecker, out model.CallSiteMap) {
	tag := fieldChild(elt, "tagName")
	if tag == nil || tag.Kind() != astsvc.KindIdentifier {
		return
	}

	sym := checker.SymbolAtLocation(tag)
	if sym == nil {
		return
	}
	decls := sym.Declarations()
	if len(decls) == 0 {
		return
	}
	declFile := decls[0].Pos().File
	declID := model.DeclarationID(declFile, tag.Text())

	attrs := fieldChild(elt, "attributes")
	if attrs == nil {
		return
	}
	for _, attr := range attrs.Children() {
		if attr.Kind() != astsvc.KindJsxAttribute {
			continue
		}
		name := fieldChild(attr, "name")
		if name == nil {
			continue
		}
		value := extract.Attribute(attr, checker)
		pos := attr.Pos()
		recordArg(out, declID, name.Text(), value, pos.File, pos.Line)
	}
}

// collectCall implements §4.2's second bullet.
func collectCall(call astsvc.Node, checker astsvc.TypeChecker, out model.CallSiteMap) {
	callee := fieldChild(call, "expression")
	if callee == nil || callee.Kind() != astsvc.KindIdentifier {
		return
	}

	sym := checker.SymbolAtLocation(callee)
	if sym == nil {
		return
	}
	decls := sym.Declarations()
	if len(decls) == 0 {
		return
	}
	decl := decls[0]

	formals, ok := formalsOf(decl)
	if !ok {
		return
	}

	declFile := decl.Pos().File
	declID := model.DeclarationID(declFile, callee.Text())

	args := fieldChild(call, "arguments")
	var argNodes []astsvc.Node
	if args != nil {
		argNodes = args.Children()
	}

	pos := call.Pos()
	for i, formalName := range formals {
		if i >= len(argNodes) {
			recordArg(out, declID, formalName, argvalue.Undef(), pos.File, pos.Line)
			continue
		}
		value := extract.Expr(argNodes[i], checker)
		recordArg(out, declID, formalName, value, pos.File, pos.Line)
	}
}

// formalsOf accepts a function declaration, or a variable declaration
// whose initializer is an arrow/function expression, and returns its
// parameter names in order.
func formalsOf(decl astsvc.Node) ([]string, bool) {
	switch decl.Kind() {
	case astsvc.KindFunctionDeclaration:
		return paramNames(decl), true
	case astsvc.KindVariableDeclaration:
		init := fieldChild(decl, "initializer")
		if init == nil {
			return nil, false
		}
		switch init.Kind() {
		case astsvc.KindArrowFunction, astsvc.KindFunctionExpression:
			return paramNames(init), true
		default:
			return nil, false
		}
	default:
		return nil, false
	}
}

func paramNames(fn astsvc.Node) []string {
	params := fieldChild(fn, "parameters")
	if params == nil {
		return nil
	}
	var names []string
	for _, p := range params.Children() {
		if p.Kind() != astsvc.KindParameter {
			continue
		}
		if name := fieldChild(p, "name"); name != nil {
			names = append(names, name.Text())
		}
	}
	return names
}

func recordArg(out model.CallSiteMap, declID, paramName string, value argvalue.Value, file string, line int) {
	if out[declID] == nil {
		out[declID] = make(map[string][]model.CallSiteArg)
	}
	out[declID][paramName] = append(out[declID][paramName], model.CallSiteArg{
		Name:       paramName,
		Value:      value,
		CallerFile: file,
		CallerLine: line,
	})
}

func fieldChild(n astsvc.Node, field string) astsvc.Node {
	for _, c := range n.Children() {
		if c.FieldName() == field {
			return c
		}
	}
	return nil
}
