// Package refwalk implements the Reference Walker (spec.md §4.4): given
// a classified declaration, enumerate the references to its name that
// are actual uses (a JSX tag, a call callee, or a method-call property
// access) rather than imports, type positions, or comments.
package refwalk

import "github.com/dittory/dittory/internal/astsvc"

// Kind discriminates the three accepted reference shapes.
type Kind int

const (
	ComponentTag Kind = iota
	FunctionCall
	MethodCall
)

// AcceptedRef is one reference that passed the §4.4 filter. Site is the
// JSX element or call expression the reference occurs in — the node
// the Usage Extractor actually reads arguments/attributes from.
type AcceptedRef struct {
	Ref  astsvc.Node
	Site astsvc.Node
	Kind Kind
}

// ExcludeFilter reports whether a file path should be skipped.
type ExcludeFilter func(file string) bool

// Walk finds every accepted reference to decl's name node.
func Walk(file astsvc.SourceFile, name astsvc.Node, exclude ExcludeFilter) []AcceptedRef {
	refs := file.FindReferences(name)

	var out []AcceptedRef
	for _, ref := range refs {
		if exclude != nil && exclude(ref.Pos().File) {
			continue
		}
		if accepted, ok := classify(ref); ok {
			out = append(out, accepted)
		}
	}
	return out
}

func classify(ref astsvc.Node) (AcceptedRef, bool) {
	parent := ref.Parent()
	if parent == nil {
		return AcceptedRef{}, false
	}

	switch parent.Kind() {
	case astsvc.KindJsxOpeningElement, astsvc.KindJsxSelfClosingElement:
		if ref.FieldName() == "tagName" {
			return AcceptedRef{Ref: ref, Site: parent, Kind: ComponentTag}, true
		}

	case astsvc.KindCallExpression:
		if ref.FieldName() == "expression" {
			return AcceptedRef{Ref: ref, Site: parent, Kind: FunctionCall}, true
		}

	case astsvc.KindPropertyAccessExpression:
		if ref.FieldName() != "name" {
			return AcceptedRef{}, false
		}
		grandparent := parent.Parent()
		if grandparent == nil || grandparent.Kind() != astsvc.KindCallExpression {
			return AcceptedRef{}, false
		}
		if parent.FieldName() != "expression" {
			return AcceptedRef{}, false
		}
		return AcceptedRef{Ref: ref, Site: grandparent, Kind: MethodCall}, true
	}

	return AcceptedRef{}, false
}
