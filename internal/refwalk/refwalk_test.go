package refwalk_test

import (
	"testing"

	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/astsvc/fake"
	"github.com/dittory/dittory/internal/refwalk"
)

func TestWalkAcceptsJsxTagReference(t *testing.T) {
	name := &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "Button"}
	elt := &fake.Node{KindVal: astsvc.KindJsxSelfClosingElement}
	fake.Child(elt, "tagName", name)

	file := &fake.SourceFile{PathVal: "page.tsx", Refs: map[*fake.Node][]*fake.Node{name: {name}}}

	out := refwalk.Walk(file, name, nil)
	if len(out) != 1 || out[0].Kind != refwalk.ComponentTag || out[0].Site != elt {
		t.Fatalf("expected one ComponentTag reference, got %+v", out)
	}
}

func TestWalkAcceptsCallCallee(t *testing.T) {
	name := &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "configure"}
	call := &fake.Node{KindVal: astsvc.KindCallExpression}
	fake.Child(call, "expression", name)

	file := &fake.SourceFile{PathVal: "app.ts", Refs: map[*fake.Node][]*fake.Node{name: {name}}}

	out := refwalk.Walk(file, name, nil)
	if len(out) != 1 || out[0].Kind != refwalk.FunctionCall || out[0].Site != call {
		t.Fatalf("expected one FunctionCall reference, got %+v", out)
	}
}

func TestWalkAcceptsMethodCallPropertyAccess(t *testing.T) {
	name := &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "method"}
	access := &fake.Node{KindVal: astsvc.KindPropertyAccessExpression}
	fake.Child(access, "expression", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "obj"})
	fake.Child(access, "name", name)
	call := &fake.Node{KindVal: astsvc.KindCallExpression}
	fake.Child(call, "expression", access)

	file := &fake.SourceFile{PathVal: "app.ts", Refs: map[*fake.Node][]*fake.Node{name: {name}}}

	out := refwalk.Walk(file, name, nil)
	if len(out) != 1 || out[0].Kind != refwalk.MethodCall || out[0].Site != call {
		t.Fatalf("expected one MethodCall reference, got %+v", out)
	}
}

func TestWalkIgnoresImportReferences(t *testing.T) {
	name := &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "Widget"}
	importSpec := &fake.Node{KindVal: astsvc.KindImportSpecifier}
	fake.Child(importSpec, "name", name)

	file := &fake.SourceFile{PathVal: "page.tsx", Refs: map[*fake.Node][]*fake.Node{name: {name}}}

	out := refwalk.Walk(file, name, nil)
	if len(out) != 0 {
		t.Fatalf("expected import reference to be ignored, got %+v", out)
	}
}

func TestWalkDropsExcludedFiles(t *testing.T) {
	name := &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "Button", PosVal: astsvc.Position{File: "page.test.tsx"}}
	elt := &fake.Node{KindVal: astsvc.KindJsxSelfClosingElement}
	fake.Child(elt, "tagName", name)

	file := &fake.SourceFile{PathVal: "page.test.tsx", Refs: map[*fake.Node][]*fake.Node{name: {name}}}

	out := refwalk.Walk(file, name, func(f string) bool { return f == "page.test.tsx" })
	if len(out) != 0 {
		t.Fatalf("expected excluded-file reference to be dropped, got %+v", out)
	}
}
