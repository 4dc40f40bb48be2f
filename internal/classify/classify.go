// Package classify implements the Declaration Classifier (spec.md §4.3):
// partitioning exported declarations into UI components, plain
// functions, and classes.
package classify

import "github.com/dittory/dittory/internal/astsvc"

// Kind is the classified shape of an exported declaration.
type Kind int

const (
	Component Kind = iota
	Function
	Class
)

func (k Kind) String() string {
	switch k {
	case Component:
		return "component"
	case Function:
		return "function"
	case Class:
		return "class"
	default:
		return "unknown"
	}
}

// Declaration is one classified export.
type Declaration struct {
	ExportName string
	SourceFile string
	Decl       astsvc.Node
	Kind       Kind
}

// Exported is supplied by the caller: every top-level export name of a
// file and the node it resolves to. The AST service's notion of "is
// exported" is left to the caller since spec.md does not specify a
// NodeKind for it.
type Exported struct {
	Name string
	Decl astsvc.Node
}

// Classify implements §4.3 over one file's exports. Declarations that
// are neither function-shaped nor a class are dropped silently.
func Classify(file string, exports []Exported) []Declaration {
	var out []Declaration
	for _, e := range exports {
		k, ok := classifyOne(e.Decl)
		if !ok {
			continue
		}
		out = append(out, Declaration{ExportName: e.Name, SourceFile: file, Decl: e.Decl, Kind: k})
	}
	return out
}

func classifyOne(decl astsvc.Node) (Kind, bool) {
	switch decl.Kind() {
	case astsvc.KindClassDeclaration:
		return Class, true
	case astsvc.KindFunctionDeclaration:
		return functionOrComponent(decl), true
	case astsvc.KindVariableDeclaration:
		init := fieldChild(decl, "initializer")
		if init == nil {
			return 0, false
		}
		switch init.Kind() {
		case astsvc.KindArrowFunction, astsvc.KindFunctionExpression:
			return functionOrComponent(decl), true
		case astsvc.KindCallExpression:
			// A one-level wrapper call, e.g. `export const C = memo(fn)`:
			// classify by the wrapped callback's body, per §4.3.
			if cb := wrapperCallback(init); cb != nil {
				return functionOrComponent(cb), true
			}
			return 0, false
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}

// wrapperCallback returns the first argument of a call expression when
// that argument is itself function-shaped, e.g. `memo(fn)` -> fn.
func wrapperCallback(call astsvc.Node) astsvc.Node {
	args := fieldChild(call, "arguments")
	if args == nil {
		return nil
	}
	kids := args.Children()
	if len(kids) == 0 {
		return nil
	}
	first := kids[0]
	switch first.Kind() {
	case astsvc.KindArrowFunction, astsvc.KindFunctionExpression:
		return first
	default:
		return nil
	}
}

func functionOrComponent(decl astsvc.Node) Kind {
	if containsJsx(decl) {
		return Component
	}
	return Function
}

func containsJsx(n astsvc.Node) bool {
	switch n.Kind() {
	case astsvc.KindJsxElement, astsvc.KindJsxSelfClosingElement, astsvc.KindJsxFragment:
		return true
	}
	for _, c := range n.Children() {
		if containsJsx(c) {
			return true
		}
	}
	return false
}

func fieldChild(n astsvc.Node, field string) astsvc.Node {
	for _, c := range n.Children() {
		if c.FieldName() == field {
			return c
		}
	}
	return nil
}
