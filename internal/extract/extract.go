// Package extract implements the Value Extractor (spec.md §4.1): mapping
// one AST expression, or one JSX attribute, to a typed argvalue.Value.
// Extraction is total — an unrecognized shape always falls back to
// argvalue.Raw(text), never an error.
package extract

import (
	"strings"

	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/astsvc"
)

// Attribute extracts the value of one JSX attribute node (spec.md §4.1
// rule 1).
func Attribute(attr astsvc.Node, checker astsvc.TypeChecker) argvalue.Value {
	initializer := fieldChild(attr, "initializer")
	if initializer == nil {
		return argvalue.Shorthand()
	}

	if initializer.Kind() == astsvc.KindJsxExpression {
		inner := soleExpressionChild(initializer)
		if inner == nil {
			return argvalue.Undef()
		}
		return Expr(inner, checker)
	}

	if initializer.Kind() == astsvc.KindStringLiteral {
		return argvalue.Str(initializer.Text())
	}

	return argvalue.Raw(attr.Text())
}

// Expr extracts the value of an arbitrary expression (spec.md §4.1 rules
// 2-10). First matching rule wins.
func Expr(expr astsvc.Node, checker astsvc.TypeChecker) argvalue.Value {
	pos := expr.Pos()

	// Rule 2: call-signature type.
	if t := checker.TypeOf(expr); t != nil && t.HasCallSignature() {
		return argvalue.Callback(pos.File, pos.Line)
	}

	// Rule 3: property access.
	if expr.Kind() == astsvc.KindPropertyAccessExpression {
		if v, ok := extractPropertyAccess(expr, checker); ok {
			return v
		}
	}

	// Rule 4: the identifier `undefined`.
	if expr.Kind() == astsvc.KindIdentifier && expr.Text() == "undefined" {
		return argvalue.Undef()
	}

	// Rule 5: identifier bound to a parameter or destructuring element.
	if expr.Kind() == astsvc.KindIdentifier {
		if isParamRefIdentifier(expr, checker) {
			return buildParamRef(expr)
		}
	}

	// Rules 6/7: identifier bound to a variable declaration, or an
	// import / uninitialized declaration.
	if expr.Kind() == astsvc.KindIdentifier {
		if v, ok := extractVariableChain(expr, checker, map[astsvc.Node]bool{}); ok {
			return v
		}
	}

	// Rule 8: literal types.
	if t := checker.TypeOf(expr); t != nil {
		if s, ok := t.StringLiteralValue(); ok {
			return argvalue.Str(s)
		}
		if n, ok := t.NumberLiteralValue(); ok {
			return argvalue.Num(n)
		}
		if b, ok := t.BoolLiteralValue(); ok {
			return argvalue.Bool(b)
		}
	}

	// Rule 9: method call, or a call carrying a parameter-reference argument.
	if expr.Kind() == astsvc.KindCallExpression {
		if isMethodCallOrForwardsParam(expr, checker) {
			return argvalue.Call(pos.File, pos.Line, expr.Text())
		}
	}

	// Rule 10: fallback.
	return argvalue.Raw(expr.Text())
}

// extractPropertyAccess implements rule 3's three sub-cases. ok is false
// when none of the sub-cases apply and extraction should fall through to
// the remaining top-level rules (4 and on).
func extractPropertyAccess(expr astsvc.Node, checker astsvc.TypeChecker) (argvalue.Value, bool) {
	sym := checker.SymbolAtLocation(expr)
	if sym != nil {
		decls := sym.Declarations()
		if len(decls) > 0 && decls[0].Kind() == astsvc.KindEnumMember {
			member := decls[0]
			enumDecl := member.Parent()
			memberValue := fieldChild(member, "initializer")
			memberValueText := ""
			if memberValue != nil {
				memberValueText = memberValue.Text()
			}
			enumFile := member.Pos().File
			enumName := ""
			if enumDecl != nil {
				enumName = nameOf(enumDecl)
			}
			return argvalue.EnumMember(enumFile, enumName, nameOf(member), memberValueText), true
		}
	}

	left := fieldChild(expr, "expression")
	if left != nil && isParamRefExpr(left, checker) {
		return buildParamRef(expr), true
	}

	if rootsAtThis(expr) {
		pos := expr.Pos()
		return argvalue.ThisAccess(pos.File, pos.Line, expr.Text()), true
	}

	return argvalue.Value{}, false
}

// isParamRefExpr applies rule 5's criterion to any expression, not only a
// bare identifier: an identifier is a param ref directly; a property
// access is a param ref when its own left-hand side is.
func isParamRefExpr(expr astsvc.Node, checker astsvc.TypeChecker) bool {
	switch expr.Kind() {
	case astsvc.KindIdentifier:
		return isParamRefIdentifier(expr, checker)
	case astsvc.KindPropertyAccessExpression:
		left := fieldChild(expr, "expression")
		return left != nil && isParamRefExpr(left, checker)
	default:
		return false
	}
}

// isParamRefIdentifier implements rule 5: true iff expr's resolved
// symbol's declaration is a function parameter or a destructuring binding
// element.
//
// TODO: when the resolved declaration is itself a ShorthandPropertyAssignment
// name (the spec's "shorthand-property-assignment symbol" case), re-resolve
// through the enclosing scope's binding of the same name before giving up —
// not yet implemented, so a shorthand `{ x }` usage of a parameter named x
// inside an argument object literal can under-match this rule.
func isParamRefIdentifier(expr astsvc.Node, checker astsvc.TypeChecker) bool {
	sym := checker.SymbolAtLocation(expr)
	if sym == nil {
		return false
	}
	decls := sym.Declarations()
	if len(decls) == 0 {
		return false
	}
	switch decls[0].Kind() {
	case astsvc.KindParameter, astsvc.KindBindingElement:
		return true
	default:
		return false
	}
}

// extractVariableChain implements rules 6 and 7: chase a const-to-const
// chain to its ultimate initializer, or fall back to VariableLiteral for
// an uninitialized declaration or import. visited guards against a
// pathological self-referential chain (not expected in valid TS, but the
// extractor must stay total).
func extractVariableChain(expr astsvc.Node, checker astsvc.TypeChecker, visited map[astsvc.Node]bool) (argvalue.Value, bool) {
	if visited[expr] {
		return argvalue.Value{}, false
	}
	visited[expr] = true

	sym := checker.SymbolAtLocation(expr)
	if sym == nil {
		return argvalue.Value{}, false
	}
	decls := sym.Declarations()
	if len(decls) == 0 {
		return argvalue.Value{}, false
	}
	decl := decls[0]

	switch decl.Kind() {
	case astsvc.KindVariableDeclaration:
		init := fieldChild(decl, "initializer")
		if init != nil {
			return Expr(init, checker), true
		}
		pos := decl.Pos()
		return argvalue.UninitializedVar(pos.File, expr.Text(), pos.Line), true
	case astsvc.KindImportSpecifier, astsvc.KindImportClause:
		pos := decl.Pos()
		return argvalue.UninitializedVar(pos.File, expr.Text(), pos.Line), true
	default:
		return argvalue.Value{}, false
	}
}

// isMethodCallOrForwardsParam implements rule 9: a call whose callee is a
// property access, or whose arguments include (per rule 5's criterion) a
// parameter reference.
func isMethodCallOrForwardsParam(call astsvc.Node, checker astsvc.TypeChecker) bool {
	callee := fieldChild(call, "expression")
	if callee != nil && callee.Kind() == astsvc.KindPropertyAccessExpression {
		return true
	}

	args := fieldChild(call, "arguments")
	if args == nil {
		return false
	}
	for _, a := range args.Children() {
		if isParamRefExpr(a, checker) {
			return true
		}
	}
	return false
}

// buildParamRef implements rule 11: walk up to the enclosing function-like
// node, name it, and unparse the dotted path rooted at the parameter
// identifier.
func buildParamRef(expr astsvc.Node) argvalue.Value {
	enclosing := enclosingFunction(expr)
	if enclosing == nil {
		return argvalue.Raw(expr.Text())
	}

	name := functionName(enclosing)
	path := dottedPath(expr)
	pos := expr.Pos()

	return argvalue.Param(pos.File, name, path, pos.Line)
}

func enclosingFunction(n astsvc.Node) astsvc.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case astsvc.KindFunctionDeclaration, astsvc.KindFunctionExpression,
			astsvc.KindArrowFunction, astsvc.KindMethodDeclaration:
			return p
		}
	}
	return nil
}

// functionName implements rule 11's naming convention: the declared name
// if present; else the name bound to it in a variable declaration; else
// "ClassName.methodName" for a method; else "anonymous".
func functionName(fn astsvc.Node) string {
	if fn.Kind() == astsvc.KindMethodDeclaration {
		className := "anonymous"
		if classDecl := enclosingClass(fn); classDecl != nil {
			className = nameOf(classDecl)
		}
		return className + "." + nameOf(fn)
	}

	if fn.Kind() == astsvc.KindFunctionDeclaration {
		if n := nameOf(fn); n != "" {
			return n
		}
		return "anonymous"
	}

	// Arrow / function expression: look at the enclosing variable
	// declaration it is bound to, if any.
	if parent := fn.Parent(); parent != nil && parent.Kind() == astsvc.KindVariableDeclaration {
		if n := nameOf(parent); n != "" {
			return n
		}
	}

	return "anonymous"
}

func enclosingClass(n astsvc.Node) astsvc.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == astsvc.KindClassDeclaration {
			return p
		}
	}
	return nil
}

// dottedPath unparses a chain of property accesses rooted at an
// identifier, e.g. `props.config.timeout` -> "props.config.timeout".
func dottedPath(n astsvc.Node) string {
	var parts []string
	cur := n
	for {
		switch cur.Kind() {
		case astsvc.KindIdentifier:
			parts = append([]string{cur.Text()}, parts...)
			return strings.Join(parts, ".")
		case astsvc.KindPropertyAccessExpression:
			nameNode := fieldChild(cur, "name")
			if nameNode != nil {
				parts = append([]string{nameNode.Text()}, parts...)
			}
			left := fieldChild(cur, "expression")
			if left == nil {
				return strings.Join(parts, ".")
			}
			cur = left
		default:
			return strings.Join(parts, ".")
		}
	}
}

func rootsAtThis(n astsvc.Node) bool {
	cur := n
	for cur != nil {
		if cur.Kind() == astsvc.KindPropertyAccessExpression {
			left := fieldChild(cur, "expression")
			if left == nil {
				return false
			}
			if left.Text() == "this" {
				return true
			}
			cur = left
			continue
		}
		return cur.Text() == "this"
	}
	return false
}

func nameOf(n astsvc.Node) string {
	if nameNode := fieldChild(n, "name"); nameNode != nil {
		return nameNode.Text()
	}
	return ""
}

func fieldChild(n astsvc.Node, field string) astsvc.Node {
	for _, c := range n.Children() {
		if c.FieldName() == field {
			return c
		}
	}
	return nil
}

// soleExpressionChild returns the single non-punctuation child of a
// container node (a JSX expression's `{ ... }`), or nil if there is none.
func soleExpressionChild(n astsvc.Node) astsvc.Node {
	kids := n.Children()
	if len(kids) == 0 {
		return nil
	}
	return kids[0]
}
