package collect_test

import (
	"testing"

	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/astsvc/fake"
	"github.com/dittory/dittory/internal/collect"
)

func TestCollectJsxAttributes(t *testing.T) {
	checker := fake.NewChecker()

	buttonDecl := &fake.Node{KindVal: astsvc.KindFunctionDeclaration, PosVal: astsvc.Position{File: "button.tsx", Line: 1}}

	elt := &fake.Node{KindVal: astsvc.KindJsxSelfClosingElement, PosVal: astsvc.Position{File: "page.tsx", Line: 10}}
	tag := fake.Child(elt, "tagName", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "Button"})
	attrs := fake.Child(elt, "attributes", &fake.Node{})
	attr := fake.Child(attrs, "", &fake.Node{KindVal: astsvc.KindJsxAttribute, PosVal: astsvc.Position{File: "page.tsx", Line: 10}})
	fake.Child(attr, "name", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "variant"})
	fake.Child(attr, "initializer", &fake.Node{KindVal: astsvc.KindStringLiteral, TextVal: "primary"})

	checker.Symbols[tag] = &fake.Symbol{Decls: []*fake.Node{buttonDecl}}

	root := &fake.Node{KindVal: astsvc.KindUnknown}
	fake.Child(root, "", elt)

	project := &fake.Project{
		FilesVal:   []astsvc.SourceFile{&fake.SourceFile{PathVal: "page.tsx", RootVal: root}},
		CheckerVal: checker,
	}

	csm := collect.Collect(project, nil)

	args := csm["button.tsx:Button"]["variant"]
	if len(args) != 1 {
		t.Fatalf("expected 1 recorded arg for variant, got %d", len(args))
	}
	if args[0].Value.Key() != argvalue.Str("primary").Key() {
		t.Fatalf("expected StringLiteral(primary), got %s", args[0].Value.Key())
	}
	if args[0].CallerFile != "page.tsx" || args[0].CallerLine != 10 {
		t.Fatalf("unexpected call site location: %+v", args[0])
	}
}

func TestCollectCallExpressionMissingArgRecordsUndefined(t *testing.T) {
	checker := fake.NewChecker()

	fnDecl := &fake.Node{KindVal: astsvc.KindFunctionDeclaration, PosVal: astsvc.Position{File: "lib.ts", Line: 3}}
	params := fake.Child(fnDecl, "parameters", &fake.Node{})
	fake.Child(params, "", func() *fake.Node {
		p := &fake.Node{KindVal: astsvc.KindParameter}
		fake.Child(p, "name", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "opts"})
		return p
	}())

	callee := &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "configure"}
	call := &fake.Node{KindVal: astsvc.KindCallExpression, PosVal: astsvc.Position{File: "app.ts", Line: 7}}
	fake.Child(call, "expression", callee)
	fake.Child(call, "arguments", &fake.Node{})

	checker.Symbols[callee] = &fake.Symbol{Decls: []*fake.Node{fnDecl}}

	root := &fake.Node{KindVal: astsvc.KindUnknown}
	fake.Child(root, "", call)

	project := &fake.Project{
		FilesVal:   []astsvc.SourceFile{&fake.SourceFile{PathVal: "app.ts", RootVal: root}},
		CheckerVal: checker,
	}

	csm := collect.Collect(project, nil)

	args := csm["lib.ts:configure"]["opts"]
	if len(args) != 1 {
		t.Fatalf("expected 1 recorded arg for opts, got %d", len(args))
	}
	if args[0].Value.Key() != argvalue.Undef().Key() {
		t.Fatalf("expected UndefinedArgValue for omitted argument, got %s", args[0].Value.Key())
	}
}

func TestCollectExcludesFilteredFiles(t *testing.T) {
	checker := fake.NewChecker()
	call := &fake.Node{KindVal: astsvc.KindCallExpression, PosVal: astsvc.Position{File: "app.test.ts", Line: 1}}
	fake.Child(call, "expression", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "configure"})
	fake.Child(call, "arguments", &fake.Node{})

	root := &fake.Node{KindVal: astsvc.KindUnknown}
	fake.Child(root, "", call)

	project := &fake.Project{
		FilesVal:   []astsvc.SourceFile{&fake.SourceFile{PathVal: "app.test.ts", RootVal: root}},
		CheckerVal: checker,
	}

	csm := collect.Collect(project, func(file string) bool { return file == "app.test.ts" })

	if len(csm) != 0 {
		t.Fatalf("expected no entries for an excluded file, got %v", csm)
	}
}
