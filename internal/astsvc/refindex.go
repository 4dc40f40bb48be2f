package astsvc

import (
	shimast "github.com/microsoft/typescript-go/shim/ast"
)

// referenceIndex is the findReferences fallback spec.md §9 anticipates:
// "for each file, collect every identifier, map it to its resolved
// declaration, and invert." Built once per Project, after which it is
// read-only (spec.md §5: "no shared-state mutation after construction").
//
// Keyed by the declaration's *name node*, not the declaration node
// itself: every caller of FindReferences (tsgo.go's Exports, and
// analyzer.go's classMethods) hands the Reference Walker a name node,
// never the declaration node, so the index has to be addressable the
// same way on both the build and the lookup side.
type referenceIndex struct {
	byName map[*shimast.Node][]*shimast.Node
}

func buildReferenceIndex(p *tsgoProject) *referenceIndex {
	idx := &referenceIndex{byName: make(map[*shimast.Node][]*shimast.Node)}

	for _, f := range p.files {
		tf := f.(*tsgoSourceFile)
		walkIdentifiers(tf.sf.AsNode(), func(id *shimast.Node) {
			sym := p.checker.GetSymbolAtLocation(id)
			if sym == nil || len(sym.Declarations) == 0 {
				return
			}
			name := nameNodeOf(sym.Declarations[0])
			if name == nil {
				return
			}
			idx.byName[name] = append(idx.byName[name], id)
		})
	}

	return idx
}

// nameNodeOf returns the identifier a declaration is found by, matching
// exportedNameOf's special-casing of variable declarations (whose name
// sits behind AsVariableDeclaration()) and falling back to the generic
// Name() dispatch every other named declaration kind — function,
// class, method, parameter, enum member — implements directly.
func nameNodeOf(decl *shimast.Node) *shimast.Node {
	if decl.Kind == shimast.KindVariableDeclaration {
		return decl.AsVariableDeclaration().Name()
	}
	return decl.Name()
}

func walkIdentifiers(n *shimast.Node, visit func(*shimast.Node)) {
	if n.Kind == shimast.KindIdentifier {
		visit(n)
	}
	n.ForEachChild(func(c *shimast.Node) bool {
		walkIdentifiers(c, visit)
		return false
	})
}

// referencesTo returns every identifier reference whose resolved
// declaration's name node is name itself, across the whole project —
// not just name's own file, since exported declarations are referenced
// cross-file.
func (idx *referenceIndex) referencesTo(name Node) []Node {
	tn, ok := name.(*tsgoNode)
	if !ok {
		return nil
	}
	refs := idx.byName[tn.n]
	if refs == nil {
		return nil
	}
	out := make([]Node, 0, len(refs))
	for _, r := range refs {
		out = append(out, &tsgoNode{file: tn.file, n: r})
	}
	return out
}
