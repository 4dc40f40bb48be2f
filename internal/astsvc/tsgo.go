package astsvc

import (
	"context"
	"fmt"

	shimast "github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	shimcore "github.com/microsoft/typescript-go/shim/core"
	shimtsoptions "github.com/microsoft/typescript-go/shim/tsoptions"
	shimvfs "github.com/microsoft/typescript-go/shim/vfs"
	shimosvfs "github.com/microsoft/typescript-go/shim/vfs/osvfs"
)

// tsgoProject is the Project implementation backed by the real TypeScript
// compiler (microsoft/typescript-go), reached through its shim/* packages.
// This file and refindex.go are the only non-test files in the module that
// import the shim directly; the rest of the core talks to the Project/SourceFile/TypeChecker interfaces
// declared in service.go.
type tsgoProject struct {
	program *shimcompiler.Program
	checker *shimchecker.Checker
	files   []SourceFile
	index   *referenceIndex
}

// NewProject loads a tsconfig (or the default compiler options, if
// tsconfigPath is empty) rooted at dir, and type-checks every file it
// resolves to. The returned release func must be called once the
// Project is no longer needed, to free the checker's internal caches.
func NewProject(dir, tsconfigPath string, fs shimvfs.FS) (Project, func(), error) {
	if fs == nil {
		fs = shimosvfs.New()
	}

	host := shimcompiler.CreateDefaultHost(dir, fs)

	var compilerOptions *shimcore.CompilerOptions
	if tsconfigPath != "" {
		parsed := shimtsoptions.ParseConfigFileContent(tsconfigPath, host)
		if parsed != nil && len(parsed.Errors) > 0 {
			return nil, nil, fmt.Errorf("parsing %s: %s", tsconfigPath, parsed.Errors[0].String())
		}
		if parsed != nil {
			compilerOptions = parsed.CompilerOptions()
		}
	}

	program, diags, err := shimcompiler.CreateProgramFromConfig(true, compilerOptions, host)
	if err != nil {
		return nil, nil, err
	}
	if len(diags) > 0 {
		// Diagnostics from the AST service propagate as fatal per spec.md §7.
		return nil, nil, fmt.Errorf("%s", diags[0].String())
	}

	chk, release := shimcompiler.Program_GetTypeChecker(program, context.Background())

	p := &tsgoProject{program: program, checker: chk}
	for _, sf := range program.GetSourceFiles() {
		p.files = append(p.files, &tsgoSourceFile{project: p, sf: sf})
	}
	p.index = buildReferenceIndex(p)

	return p, release, nil
}

func (p *tsgoProject) Files() []SourceFile  { return p.files }
func (p *tsgoProject) Checker() TypeChecker { return &tsgoChecker{p: p} }

// tsgoSourceFile adapts one *shimast.SourceFile.
type tsgoSourceFile struct {
	project *tsgoProject
	sf      *shimast.SourceFile
}

func (f *tsgoSourceFile) Path() string { return f.sf.FileName() }

func (f *tsgoSourceFile) Root() Node {
	return &tsgoNode{file: f, n: f.sf.AsNode()}
}

// Exports implements §4.3's input: every top-level statement of the
// file carrying an `export` modifier, reduced to its declared name.
func (f *tsgoSourceFile) Exports() []ExportedDeclaration {
	var out []ExportedDeclaration
	f.sf.AsNode().ForEachChild(func(stmt *shimast.Node) bool {
		if !shimast.HasSyntacticModifier(stmt, shimast.ModifierFlagsExport) {
			return false
		}
		decl, name := exportedNameOf(stmt)
		if decl == nil || name == nil {
			return false
		}
		out = append(out, ExportedDeclaration{
			Name:     name.Text(),
			NameNode: &tsgoNode{file: f, n: name},
			Decl:     &tsgoNode{file: f, n: decl},
		})
		return false
	})
	return out
}

// exportedNameOf unwraps `export function foo(){}`, `export class Foo{}`
// and `export const foo = ...` (the first declared binding of a
// variable statement) to their declaration node and name node.
func exportedNameOf(stmt *shimast.Node) (*shimast.Node, *shimast.Node) {
	switch stmt.Kind {
	case shimast.KindFunctionDeclaration, shimast.KindClassDeclaration:
		return stmt, nameNodeOf(stmt)
	case shimast.KindVariableStatement:
		decls := stmt.AsVariableStatement().DeclarationList.AsVariableDeclarationList().Declarations
		if len(decls.Nodes) == 0 {
			return nil, nil
		}
		first := decls.Nodes[0]
		return first, nameNodeOf(first)
	default:
		return nil, nil
	}
}

func (f *tsgoSourceFile) FindReferences(name Node) []Node {
	return f.project.index.referencesTo(name)
}

func (f *tsgoSourceFile) Comments(n Node) CommentRanges {
	tn, ok := n.(*tsgoNode)
	if !ok {
		return CommentRanges{}
	}
	leading := shimast.GetLeadingCommentRangesOfNode(tn.n, f.sf)
	trailing := shimast.GetTrailingCommentRangesOfNode(tn.n, f.sf)

	var out CommentRanges
	for _, r := range leading {
		out.Leading = append(out.Leading, f.sf.Text()[r.Pos():r.End()])
	}
	for _, r := range trailing {
		out.Trailing = append(out.Trailing, f.sf.Text()[r.Pos():r.End()])
	}
	return out
}

// tsgoNode adapts one *shimast.Node.
type tsgoNode struct {
	file *tsgoSourceFile
	n    *shimast.Node
}

var kindTable = map[shimast.Kind]NodeKind{
	shimast.KindIdentifier:                  KindIdentifier,
	shimast.KindStringLiteral:                KindStringLiteral,
	shimast.KindNumericLiteral:               KindNumericLiteral,
	shimast.KindTrueKeyword:                  KindTrueKeyword,
	shimast.KindFalseKeyword:                 KindFalseKeyword,
	shimast.KindPropertyAccessExpression:     KindPropertyAccessExpression,
	shimast.KindCallExpression:               KindCallExpression,
	shimast.KindObjectLiteralExpression:      KindObjectLiteralExpression,
	shimast.KindArrayLiteralExpression:       KindArrayLiteralExpression,
	shimast.KindPropertyAssignment:           KindPropertyAssignment,
	shimast.KindShorthandPropertyAssignment:  KindShorthandPropertyAssignment,
	shimast.KindParenthesizedExpression:      KindParenthesizedExpression,
	shimast.KindArrowFunction:                KindArrowFunction,
	shimast.KindFunctionExpression:           KindFunctionExpression,
	shimast.KindFunctionDeclaration:          KindFunctionDeclaration,
	shimast.KindMethodDeclaration:            KindMethodDeclaration,
	shimast.KindParameter:                    KindParameter,
	shimast.KindBindingElement:               KindBindingElement,
	shimast.KindVariableDeclaration:          KindVariableDeclaration,
	shimast.KindImportSpecifier:              KindImportSpecifier,
	shimast.KindImportClause:                 KindImportClause,
	shimast.KindEnumDeclaration:              KindEnumDeclaration,
	shimast.KindEnumMember:                   KindEnumMember,
	shimast.KindClassDeclaration:             KindClassDeclaration,
	shimast.KindJsxElement:                   KindJsxElement,
	shimast.KindJsxSelfClosingElement:        KindJsxSelfClosingElement,
	shimast.KindJsxOpeningElement:            KindJsxOpeningElement,
	shimast.KindJsxAttribute:                 KindJsxAttribute,
	shimast.KindJsxExpression:                KindJsxExpression,
	shimast.KindJsxFragment:                  KindJsxFragment,
}

func (n *tsgoNode) Kind() NodeKind {
	if k, ok := kindTable[n.n.Kind]; ok {
		return k
	}
	return KindUnknown
}

func (n *tsgoNode) Text() string {
	return n.n.Text()
}

func (n *tsgoNode) Pos() Position {
	line, _ := shimast.GetLineAndCharacterOfPosition(n.file.sf, n.n.Pos())
	return Position{File: n.file.Path(), Line: line + 1}
}

func (n *tsgoNode) Parent() Node {
	if n.n.Parent == nil {
		return nil
	}
	return &tsgoNode{file: n.file, n: n.n.Parent}
}

func (n *tsgoNode) Children() []Node {
	var out []Node
	n.n.ForEachChild(func(c *shimast.Node) bool {
		out = append(out, &tsgoNode{file: n.file, n: c})
		return false
	})
	return out
}

func (n *tsgoNode) FieldName() string {
	return shimast.FieldNameOfChild(n.n.Parent, n.n)
}

// tsgoSymbol adapts one *shimast.Symbol.
type tsgoSymbol struct {
	file *tsgoSourceFile
	sym  *shimast.Symbol
}

func (s *tsgoSymbol) Declarations() []Node {
	var out []Node
	for _, d := range s.sym.Declarations {
		out = append(out, &tsgoNode{file: s.file, n: d})
	}
	return out
}

// tsgoChecker adapts *shimchecker.Checker.
type tsgoChecker struct {
	p *tsgoProject
}

func (c *tsgoChecker) SymbolAtLocation(n Node) Symbol {
	tn, ok := n.(*tsgoNode)
	if !ok {
		return nil
	}
	sym := c.p.checker.GetSymbolAtLocation(tn.n)
	if sym == nil {
		return nil
	}
	return &tsgoSymbol{file: tn.file, sym: sym}
}

func (c *tsgoChecker) TypeOf(n Node) TypeInfo {
	tn, ok := n.(*tsgoNode)
	if !ok {
		return nil
	}
	t := c.p.checker.GetTypeAtLocation(tn.n)
	if t == nil {
		return nil
	}
	return &tsgoType{checker: c.p.checker, t: t}
}

func (c *tsgoChecker) ContextualObjectType(n Node) (TypeInfo, bool) {
	tn, ok := n.(*tsgoNode)
	if !ok {
		return nil, false
	}
	t := shimchecker.Checker_getContextualType(c.p.checker, tn.n)
	if t == nil {
		return nil, false
	}
	ti := &tsgoType{checker: c.p.checker, t: t}
	return ti.firstObjectMember()
}

// tsgoType adapts *shimchecker.Type.
type tsgoType struct {
	checker *shimchecker.Checker
	t       *shimchecker.Type
}

func (t *tsgoType) HasCallSignature() bool {
	sigs := shimchecker.Checker_getSignaturesOfType(t.checker, t.t, shimchecker.SignatureKindCall)
	return len(sigs) > 0
}

func (t *tsgoType) StringLiteralValue() (string, bool) {
	if v, ok := shimchecker.Type_stringLiteralValue(t.t); ok {
		return v, true
	}
	return "", false
}

func (t *tsgoType) NumberLiteralValue() (float64, bool) {
	if v, ok := shimchecker.Type_numberLiteralValue(t.t); ok {
		return v, true
	}
	return 0, false
}

func (t *tsgoType) BoolLiteralValue() (bool, bool) {
	if v, ok := shimchecker.Type_booleanLiteralValue(t.t); ok {
		return v, true
	}
	return false, false
}

func (t *tsgoType) ObjectProperties() ([]PropertyInfo, bool) {
	return t.firstObjectMember()
}

// firstObjectMember implements spec.md §4.5.1's union-unwrapping rule:
// if t is a union, pick the first member that is non-primitive,
// non-array, non-literal and has at least one property; recurse through
// nested unions. Returns the property list of whatever object type is
// found, or false if none qualifies.
func (t *tsgoType) firstObjectMember() ([]PropertyInfo, bool) {
	candidates := shimchecker.Type_unionTypes(t.t)
	if candidates == nil {
		candidates = []*shimchecker.Type{t.t}
	}

	for _, candidate := range candidates {
		if nested := shimchecker.Type_unionTypes(candidate); nested != nil {
			inner := &tsgoType{checker: t.checker, t: candidate}
			if props, ok := inner.firstObjectMember(); ok {
				return props, true
			}
			continue
		}
		if shimchecker.Type_isArrayLike(candidate) || shimchecker.Type_isLiteral(candidate) {
			continue
		}
		props := shimchecker.Checker_getPropertiesOfType(t.checker, candidate)
		if len(props) == 0 {
			continue
		}
		var out []PropertyInfo
		for _, p := range props {
			propType := shimchecker.Checker_getTypeOfSymbol(t.checker, p)
			out = append(out, PropertyInfo{
				Name:     p.Name,
				Optional: shimchecker.Symbol_isOptional(p),
				Type:     &tsgoType{checker: t.checker, t: propType},
			})
		}
		return out, true
	}
	return nil, false
}
