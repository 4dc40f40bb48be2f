// Package astsvc states the contract the core analyzer needs from a host
// AST service (spec.md §1/§6): a typed AST per source file, symbol
// resolution including import aliasing, a findReferences operation on
// name nodes, contextual/expected types at any expression, literal-type
// inspection, and property iteration over a type.
//
// Everything in internal/extract, internal/collect, internal/classify,
// internal/refwalk and internal/usage is written against these
// interfaces, never against the concrete TypeScript compiler shim
// directly — tsgo.go and refindex.go are the only non-test files in the
// module that import microsoft/typescript-go. This keeps the core a pure function of
// (sourceFiles, options) per spec.md §5, and lets its tests construct
// small fake Nodes instead of compiling real TypeScript.
package astsvc

// NodeKind enumerates the syntax shapes the core cares about. It is a
// deliberately small subset of a real TypeScript SyntaxKind: every shape
// rule 4.1/4.2/4.3/4.5 dispatches on is named here, nothing else is.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindIdentifier
	KindStringLiteral
	KindNumericLiteral
	KindTrueKeyword
	KindFalseKeyword
	KindPropertyAccessExpression
	KindCallExpression
	KindObjectLiteralExpression
	KindArrayLiteralExpression
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindParenthesizedExpression
	KindArrowFunction
	KindFunctionExpression
	KindFunctionDeclaration
	KindMethodDeclaration
	KindParameter
	KindBindingElement
	KindVariableDeclaration
	KindImportSpecifier
	KindImportClause
	KindEnumDeclaration
	KindEnumMember
	KindClassDeclaration
	KindJsxElement
	KindJsxSelfClosingElement
	KindJsxOpeningElement
	KindJsxAttribute
	KindJsxExpression
	KindJsxFragment
)

// Position locates a node for reporting.
type Position struct {
	File string
	Line int
}

// Node is one AST node. Implementations are value-comparable by identity
// (==), which the core relies on for visited-set membership (the
// Parameter-Reference Resolver, spec.md §4.7) and for map keys.
type Node interface {
	Kind() NodeKind
	// Text returns the node's raw source text (used for OtherLiteral
	// fallback output and for unparsing a property-access chain).
	Text() string
	Pos() Position
	Parent() Node
	// Children returns the node's immediate children in source order.
	Children() []Node
	// FieldName returns the syntactic field this node occupies in its
	// parent, when the parent distinguishes fields by name (e.g. a JSX
	// attribute's "name" vs "initializer", a PropertyAssignment's "name"
	// vs "initializer"). Empty when not applicable.
	FieldName() string
}

// Symbol is a resolved name binding.
type Symbol interface {
	// Declarations returns every declaration site for this symbol, in
	// source order. Rule 4.1.3/4.1.5 consult Declarations()[0].
	Declarations() []Node
}

// TypeInfo is the contextual or declared type of an expression.
type TypeInfo interface {
	// HasCallSignature reports whether the type has at least one call
	// signature (rule 4.1.2: emits FunctionArgValue).
	HasCallSignature() bool
	// StringLiteralValue, NumberLiteralValue, BoolLiteralValue report
	// whether the type is a single-value literal type and, if so, its
	// value (rule 4.1.8).
	StringLiteralValue() (string, bool)
	NumberLiteralValue() (float64, bool)
	BoolLiteralValue() (bool, bool)
	// ObjectProperties enumerates the named properties of an object-like
	// type, unwrapping a union (and any union nested in it) to the first
	// non-array, non-literal member with at least one property (spec.md
	// §4.5.1). Returns nil, false if neither the type nor any union member
	// of it is object-shaped.
	ObjectProperties() ([]PropertyInfo, bool)
}

// PropertyInfo is one named property of an object type, as needed by the
// missing-property synthesis in spec.md §4.5.1.
type PropertyInfo struct {
	Name     string
	Optional bool
	Type     TypeInfo
}

// TypeChecker is the subset of the host's type checker the core needs.
type TypeChecker interface {
	// SymbolAtLocation resolves the symbol an identifier or property-access
	// name node refers to, following import aliasing. Returns nil if
	// unresolved.
	SymbolAtLocation(n Node) Symbol
	// TypeOf returns the type of an expression node, for literal-type
	// inspection (rule 4.1.8) and call-signature detection (rule 4.1.2).
	TypeOf(n Node) TypeInfo
	// ContextualObjectType returns the expected-object-type of an
	// expression in argument position, per spec.md §4.5.1's "inspecting
	// its contextual type" — used only for missing-property synthesis.
	ContextualObjectType(n Node) (TypeInfo, bool)
}

// CommentRanges holds the leading and trailing comment text attached to a
// node and its ancestors, as needed by the disable-comment guard
// (spec.md §4.6).
type CommentRanges struct {
	Leading  []string
	Trailing []string
}

// ExportedDeclaration is one top-level exported binding of a file: its
// exported name, the identifier node that findReferences resolves
// against, and the declaration node itself (passed to
// internal/classify).
type ExportedDeclaration struct {
	Name     string
	NameNode Node
	Decl     Node
}

// SourceFile is one parsed, type-checked input file.
type SourceFile interface {
	Path() string
	Root() Node
	// Exports enumerates the file's top-level exported declarations
	// (spec.md §4.3's input). Not part of spec.md's core contract in the
	// narrow sense, but required for the Declaration Classifier to have
	// anything to classify.
	Exports() []ExportedDeclaration
	// FindReferences returns every reference to the declaration that name
	// resolves to, across the whole analyzed set (spec.md §1's
	// findReferences operation). name is the declaration's own name node.
	FindReferences(name Node) []Node
	// Comments returns the leading/trailing comment ranges attached to n
	// and its ancestors, for the disable-comment guard.
	Comments(n Node) CommentRanges
}

// Project is the whole analyzed set: every non-excluded source file, plus
// the shared checker used to resolve symbols and types across file
// boundaries (an identifier in one file can resolve to a declaration in
// another).
type Project interface {
	Files() []SourceFile
	Checker() TypeChecker
}
