package classify_test

import (
	"testing"

	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/astsvc/fake"
	"github.com/dittory/dittory/internal/classify"
)

func TestClassifyFunctionDeclarationWithoutJsx(t *testing.T) {
	fn := &fake.Node{KindVal: astsvc.KindFunctionDeclaration}
	out := classify.Classify("util.ts", []classify.Exported{{Name: "sum", Decl: fn}})

	if len(out) != 1 || out[0].Kind != classify.Function {
		t.Fatalf("expected a single Function classification, got %+v", out)
	}
}

func TestClassifyFunctionDeclarationReturningJsxIsComponent(t *testing.T) {
	fn := &fake.Node{KindVal: astsvc.KindFunctionDeclaration}
	body := fake.Child(fn, "body", &fake.Node{})
	fake.Child(body, "", &fake.Node{KindVal: astsvc.KindJsxElement})

	out := classify.Classify("button.tsx", []classify.Exported{{Name: "Button", Decl: fn}})

	if len(out) != 1 || out[0].Kind != classify.Component {
		t.Fatalf("expected a single Component classification, got %+v", out)
	}
}

func TestClassifyClassDeclaration(t *testing.T) {
	cls := &fake.Node{KindVal: astsvc.KindClassDeclaration}
	out := classify.Classify("service.ts", []classify.Exported{{Name: "Service", Decl: cls}})

	if len(out) != 1 || out[0].Kind != classify.Class {
		t.Fatalf("expected a single Class classification, got %+v", out)
	}
}

func TestClassifyWrapperCallIsComponentWhenCallbackReturnsJsx(t *testing.T) {
	decl := &fake.Node{KindVal: astsvc.KindVariableDeclaration}
	call := fake.Child(decl, "initializer", &fake.Node{KindVal: astsvc.KindCallExpression})
	args := fake.Child(call, "arguments", &fake.Node{})
	cb := fake.Child(args, "", &fake.Node{KindVal: astsvc.KindArrowFunction})
	body := fake.Child(cb, "body", &fake.Node{})
	fake.Child(body, "", &fake.Node{KindVal: astsvc.KindJsxSelfClosingElement})

	out := classify.Classify("widget.tsx", []classify.Exported{{Name: "Widget", Decl: decl}})

	if len(out) != 1 || out[0].Kind != classify.Component {
		t.Fatalf("expected Component through the memo(fn) wrapper, got %+v", out)
	}
}

func TestClassifyDropsUnrecognizedShapes(t *testing.T) {
	decl := &fake.Node{KindVal: astsvc.KindVariableDeclaration}
	fake.Child(decl, "initializer", &fake.Node{KindVal: astsvc.KindObjectLiteralExpression})

	out := classify.Classify("constants.ts", []classify.Exported{{Name: "DEFAULTS", Decl: decl}})

	if len(out) != 0 {
		t.Fatalf("expected the export to be dropped silently, got %+v", out)
	}
}
