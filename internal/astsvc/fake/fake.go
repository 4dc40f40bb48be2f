// Package fake implements the internal/astsvc interfaces over plain Go
// structs, so the core packages (internal/extract, internal/collect,
// internal/classify, internal/refwalk, internal/usage, internal/resolve)
// can be unit tested without compiling real TypeScript through
// microsoft/typescript-go. Tests build a small tree of *Node values by
// hand and fill in the *Checker's Symbols / Types / Contextual maps to describe what the
// real checker would have resolved.
package fake

import "github.com/dittory/dittory/internal/astsvc"

// Node is a hand-built AST node.
type Node struct {
	KindVal   astsvc.NodeKind
	TextVal   string
	PosVal    astsvc.Position
	ParentVal *Node
	Kids      []*Node
	Field     string
}

func (n *Node) Kind() astsvc.NodeKind   { return n.KindVal }
func (n *Node) Text() string            { return n.TextVal }
func (n *Node) Pos() astsvc.Position    { return n.PosVal }
func (n *Node) FieldName() string       { return n.Field }
func (n *Node) Parent() astsvc.Node {
	if n.ParentVal == nil {
		return nil
	}
	return n.ParentVal
}
func (n *Node) Children() []astsvc.Node {
	out := make([]astsvc.Node, len(n.Kids))
	for i, k := range n.Kids {
		out[i] = k
	}
	return out
}

// Child appends a child node with the given field name and wires its
// Parent pointer, returning the child for chaining.
func Child(parent *Node, field string, child *Node) *Node {
	child.ParentVal = parent
	child.Field = field
	parent.Kids = append(parent.Kids, child)
	return child
}

// Symbol is a hand-built resolved symbol.
type Symbol struct {
	Decls []*Node
}

func (s *Symbol) Declarations() []astsvc.Node {
	out := make([]astsvc.Node, len(s.Decls))
	for i, d := range s.Decls {
		out[i] = d
	}
	return out
}

// Type is a hand-built TypeInfo.
type Type struct {
	CallSig  bool
	StrLit   *string
	NumLit   *float64
	BoolLit  *bool
	Props    []astsvc.PropertyInfo
	HasProps bool
}

func (t *Type) HasCallSignature() bool { return t.CallSig }
func (t *Type) StringLiteralValue() (string, bool) {
	if t.StrLit == nil {
		return "", false
	}
	return *t.StrLit, true
}
func (t *Type) NumberLiteralValue() (float64, bool) {
	if t.NumLit == nil {
		return 0, false
	}
	return *t.NumLit, true
}
func (t *Type) BoolLiteralValue() (bool, bool) {
	if t.BoolLit == nil {
		return false, false
	}
	return *t.BoolLit, true
}
func (t *Type) ObjectProperties() ([]astsvc.PropertyInfo, bool) {
	return t.Props, t.HasProps
}

// Checker is a hand-built TypeChecker, keyed by Node identity.
type Checker struct {
	Symbols    map[*Node]*Symbol
	Types      map[*Node]*Type
	Contextual map[*Node]*Type
}

func NewChecker() *Checker {
	return &Checker{
		Symbols:    make(map[*Node]*Symbol),
		Types:      make(map[*Node]*Type),
		Contextual: make(map[*Node]*Type),
	}
}

func (c *Checker) SymbolAtLocation(n astsvc.Node) astsvc.Symbol {
	node, ok := n.(*Node)
	if !ok {
		return nil
	}
	s := c.Symbols[node]
	if s == nil {
		return nil
	}
	return s
}

func (c *Checker) TypeOf(n astsvc.Node) astsvc.TypeInfo {
	node, ok := n.(*Node)
	if !ok {
		return nil
	}
	t := c.Types[node]
	if t == nil {
		return nil
	}
	return t
}

func (c *Checker) ContextualObjectType(n astsvc.Node) (astsvc.TypeInfo, bool) {
	node, ok := n.(*Node)
	if !ok {
		return nil, false
	}
	t := c.Contextual[node]
	if t == nil || !t.HasProps {
		return nil, false
	}
	return t, true
}

// SourceFile is a hand-built SourceFile.
type SourceFile struct {
	PathVal      string
	RootVal      *Node
	ExportsVal   []astsvc.ExportedDeclaration
	Refs         map[*Node][]*Node
	CommentsMap  map[*Node]astsvc.CommentRanges
}

func (f *SourceFile) Path() string      { return f.PathVal }
func (f *SourceFile) Root() astsvc.Node { return f.RootVal }

func (f *SourceFile) Exports() []astsvc.ExportedDeclaration { return f.ExportsVal }

func (f *SourceFile) FindReferences(name astsvc.Node) []astsvc.Node {
	node, ok := name.(*Node)
	if !ok {
		return nil
	}
	refs := f.Refs[node]
	out := make([]astsvc.Node, len(refs))
	for i, r := range refs {
		out[i] = r
	}
	return out
}

func (f *SourceFile) Comments(n astsvc.Node) astsvc.CommentRanges {
	node, ok := n.(*Node)
	if !ok {
		return astsvc.CommentRanges{}
	}
	if f.CommentsMap == nil {
		return astsvc.CommentRanges{}
	}
	return f.CommentsMap[node]
}

// Project is a hand-built Project.
type Project struct {
	FilesVal  []astsvc.SourceFile
	CheckerVal astsvc.TypeChecker
}

func (p *Project) Files() []astsvc.SourceFile { return p.FilesVal }
func (p *Project) Checker() astsvc.TypeChecker { return p.CheckerVal }
