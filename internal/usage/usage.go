// Package usage implements the Usage Extractor (spec.md §4.5): turning
// one accepted reference (a call or a JSX element) into the Usage
// records the Constancy Engine groups by parameter path.
package usage

import (
	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/extract"
	"github.com/dittory/dittory/internal/model"
	"github.com/dittory/dittory/internal/resolve"
)

// Extractor pairs a type checker with a ParamRef resolver so every
// emitted Usage has already had its ParamRef values rewritten to a
// concrete value where possible (spec.md §4.7's integration note).
type Extractor struct {
	Checker  astsvc.TypeChecker
	Resolver *resolve.Resolver
}

// FromCall implements §4.5's first entry point.
func (e *Extractor) FromCall(file astsvc.SourceFile, call astsvc.Node, defs []model.Definition) []model.Usage {
	if hasDisable(file, call) {
		return nil
	}

	args := fieldChild(call, "arguments")
	var argNodes []astsvc.Node
	if args != nil {
		argNodes = args.Children()
	}

	pos := call.Pos()
	var out []model.Usage
	for _, def := range defs {
		if def.Index >= len(argNodes) {
			out = append(out, e.emit(def.Name, argvalue.Undef(), pos))
			continue
		}
		out = append(out, e.flatten(argNodes[def.Index], def.Name, pos)...)
	}
	return out
}

// FromJsxElement implements §4.5's second entry point.
func (e *Extractor) FromJsxElement(file astsvc.SourceFile, elt astsvc.Node, defs []model.Definition) []model.Usage {
	if hasDisable(file, elt) {
		return nil
	}

	byName := map[string]astsvc.Node{}
	if attrs := fieldChild(elt, "attributes"); attrs != nil {
		for _, attr := range attrs.Children() {
			if attr.Kind() != astsvc.KindJsxAttribute {
				continue
			}
			if name := fieldChild(attr, "name"); name != nil {
				byName[name.Text()] = attr
			}
		}
	}

	pos := elt.Pos()
	var out []model.Usage
	for _, def := range defs {
		attr, ok := byName[def.Name]
		if !ok {
			out = append(out, e.emit(def.Name, argvalue.Undef(), pos))
			continue
		}

		initializer := fieldChild(attr, "initializer")
		switch {
		case initializer == nil:
			out = append(out, e.emit(def.Name, argvalue.Shorthand(), pos))
		case initializer.Kind() == astsvc.KindJsxExpression:
			inner := soleChild(initializer)
			if inner == nil {
				out = append(out, e.emit(def.Name, argvalue.Undef(), pos))
				continue
			}
			out = append(out, e.flatten(inner, def.Name, pos)...)
		default:
			out = append(out, e.emit(def.Name, extract.Attribute(attr, e.Checker), pos))
		}
	}
	return out
}

// flatten implements §4.5.1. prefix is the dotted path rooted at the
// parameter name.
func (e *Extractor) flatten(expr astsvc.Node, prefix string, pos astsvc.Position) []model.Usage {
	if expr.Kind() != astsvc.KindObjectLiteralExpression {
		return []model.Usage{e.emit(prefix, extract.Expr(expr, e.Checker), pos)}
	}

	var out []model.Usage
	seen := map[string]bool{}

	for _, prop := range expr.Children() {
		switch prop.Kind() {
		case astsvc.KindPropertyAssignment:
			name := fieldChild(prop, "name")
			init := fieldChild(prop, "initializer")
			if name == nil || init == nil {
				continue
			}
			key := joinPath(prefix, name.Text())
			seen[name.Text()] = true
			out = append(out, e.flatten(init, key, pos)...)
		case astsvc.KindShorthandPropertyAssignment:
			name := fieldChild(prop, "name")
			if name == nil {
				continue
			}
			seen[name.Text()] = true
			out = append(out, e.emit(joinPath(prefix, name.Text()), extract.Expr(name, e.Checker), pos))
		}
	}

	out = append(out, e.synthesizeMissing(expr, prefix, seen, pos)...)
	return out
}

// synthesizeMissing implements §4.5.1 step 2: any property named by the
// expected object type that was not present in the literal is emitted
// as an UndefinedArgValue usage, recursing into nested object-typed
// properties.
func (e *Extractor) synthesizeMissing(expr astsvc.Node, prefix string, seen map[string]bool, pos astsvc.Position) []model.Usage {
	contextual, ok := e.Checker.ContextualObjectType(expr)
	if !ok {
		return nil
	}
	props, ok := contextual.ObjectProperties()
	if !ok {
		return nil
	}

	var out []model.Usage
	for _, p := range props {
		if seen[p.Name] {
			continue
		}
		key := joinPath(prefix, p.Name)
		out = append(out, e.emit(key, argvalue.Undef(), pos))
		if p.Type != nil {
			if nestedProps, ok := p.Type.ObjectProperties(); ok {
				out = append(out, e.synthesizeMissingLeaves(nestedProps, key, pos)...)
			}
		}
	}
	return out
}

// synthesizeMissingLeaves recurses §4.5.1's nested-object case: every
// leaf of an omitted object-typed property is its own UndefinedArgValue
// usage under the extended prefix.
func (e *Extractor) synthesizeMissingLeaves(props []astsvc.PropertyInfo, prefix string, pos astsvc.Position) []model.Usage {
	var out []model.Usage
	for _, p := range props {
		key := joinPath(prefix, p.Name)
		if p.Type != nil {
			if nested, ok := p.Type.ObjectProperties(); ok && len(nested) > 0 {
				out = append(out, e.synthesizeMissingLeaves(nested, key, pos)...)
				continue
			}
		}
		out = append(out, e.emit(key, argvalue.Undef(), pos))
	}
	return out
}

func (e *Extractor) emit(name string, v argvalue.Value, pos astsvc.Position) model.Usage {
	if e.Resolver != nil {
		v = e.Resolver.ResolveOrSelf(v)
	}
	return model.Usage{Name: name, Value: v, File: pos.File, Line: pos.Line}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func fieldChild(n astsvc.Node, field string) astsvc.Node {
	for _, c := range n.Children() {
		if c.FieldName() == field {
			return c
		}
	}
	return nil
}

func soleChild(n astsvc.Node) astsvc.Node {
	kids := n.Children()
	if len(kids) == 0 {
		return nil
	}
	return kids[0]
}
