package usage_test

import (
	"testing"

	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/astsvc/fake"
	"github.com/dittory/dittory/internal/model"
	"github.com/dittory/dittory/internal/resolve"
	"github.com/dittory/dittory/internal/usage"
)

func keys(usages []model.Usage) map[string]string {
	out := map[string]string{}
	for _, u := range usages {
		out[u.Name] = u.Value.Key()
	}
	return out
}

func TestFromCallMissingArgumentEmitsUndefined(t *testing.T) {
	checker := fake.NewChecker()
	e := &usage.Extractor{Checker: checker, Resolver: resolve.New(model.CallSiteMap{})}

	call := &fake.Node{KindVal: astsvc.KindCallExpression, PosVal: astsvc.Position{File: "app.ts", Line: 5}}
	fake.Child(call, "arguments", &fake.Node{})

	file := &fake.SourceFile{PathVal: "app.ts"}
	got := e.FromCall(file, call, []model.Definition{{Name: "opts", Index: 0}})

	if len(got) != 1 || got[0].Value.Key() != argvalue.Undef().Key() {
		t.Fatalf("expected a single Undefined usage, got %+v", got)
	}
}

func TestFromCallFlattensObjectLiteralAndSynthesizesMissing(t *testing.T) {
	checker := fake.NewChecker()
	e := &usage.Extractor{Checker: checker, Resolver: resolve.New(model.CallSiteMap{})}

	obj := &fake.Node{KindVal: astsvc.KindObjectLiteralExpression}
	prop := fake.Child(obj, "", &fake.Node{KindVal: astsvc.KindPropertyAssignment})
	fake.Child(prop, "name", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "theme"})
	themeInit := fake.Child(prop, "initializer", &fake.Node{KindVal: astsvc.KindStringLiteral, TextVal: "dark"})
	themeValue := "dark"
	checker.Types[themeInit] = &fake.Type{StrLit: &themeValue}

	checker.Contextual[obj] = &fake.Type{
		HasProps: true,
		Props: []astsvc.PropertyInfo{
			{Name: "theme"},
			{Name: "timeout"},
		},
	}

	args := &fake.Node{}
	fake.Child(args, "", obj)
	call := &fake.Node{KindVal: astsvc.KindCallExpression, PosVal: astsvc.Position{File: "app.ts", Line: 9}}
	fake.Child(call, "arguments", args)

	file := &fake.SourceFile{PathVal: "app.ts"}
	got := e.FromCall(file, call, []model.Definition{{Name: "opts", Index: 0}})

	gotKeys := keys(got)
	if gotKeys["opts.theme"] != argvalue.Str("dark").Key() {
		t.Fatalf("expected opts.theme=dark, got %+v", gotKeys)
	}
	if gotKeys["opts.timeout"] != argvalue.Undef().Key() {
		t.Fatalf("expected synthesized opts.timeout=Undefined, got %+v", gotKeys)
	}
}

func TestFromCallRespectsDisableComment(t *testing.T) {
	checker := fake.NewChecker()
	e := &usage.Extractor{Checker: checker, Resolver: resolve.New(model.CallSiteMap{})}

	call := &fake.Node{KindVal: astsvc.KindCallExpression, PosVal: astsvc.Position{File: "app.ts", Line: 5}}
	fake.Child(call, "arguments", &fake.Node{})

	file := &fake.SourceFile{
		PathVal: "app.ts",
		CommentsMap: map[*fake.Node]astsvc.CommentRanges{
			call: {Leading: []string{"// dittory-disable-next-line"}},
		},
	}

	got := e.FromCall(file, call, []model.Definition{{Name: "opts", Index: 0}})
	if got != nil {
		t.Fatalf("expected disable comment to suppress all usages, got %+v", got)
	}
}

func TestFromJsxElementShorthandAttribute(t *testing.T) {
	checker := fake.NewChecker()
	e := &usage.Extractor{Checker: checker, Resolver: resolve.New(model.CallSiteMap{})}

	elt := &fake.Node{KindVal: astsvc.KindJsxSelfClosingElement, PosVal: astsvc.Position{File: "page.tsx", Line: 3}}
	attrs := fake.Child(elt, "attributes", &fake.Node{})
	attr := fake.Child(attrs, "", &fake.Node{KindVal: astsvc.KindJsxAttribute})
	fake.Child(attr, "name", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "disabled"})

	file := &fake.SourceFile{PathVal: "page.tsx"}
	got := e.FromJsxElement(file, elt, []model.Definition{{Name: "disabled"}})

	if len(got) != 1 || got[0].Value.Key() != argvalue.Shorthand().Key() {
		t.Fatalf("expected JsxShorthand usage, got %+v", got)
	}
}

func TestFromJsxElementMissingAttributeEmitsUndefined(t *testing.T) {
	checker := fake.NewChecker()
	e := &usage.Extractor{Checker: checker, Resolver: resolve.New(model.CallSiteMap{})}

	elt := &fake.Node{KindVal: astsvc.KindJsxSelfClosingElement, PosVal: astsvc.Position{File: "page.tsx", Line: 3}}
	fake.Child(elt, "attributes", &fake.Node{})

	file := &fake.SourceFile{PathVal: "page.tsx"}
	got := e.FromJsxElement(file, elt, []model.Definition{{Name: "variant"}})

	if len(got) != 1 || got[0].Value.Key() != argvalue.Undef().Key() {
		t.Fatalf("expected Undefined usage for missing attribute, got %+v", got)
	}
}

func TestFromCallResolvesParamRefValues(t *testing.T) {
	checker := fake.NewChecker()
	csm := model.CallSiteMap{
		"wrapper.tsx:Wrapper": {
			"variant": {{Name: "variant", Value: argvalue.Str("primary")}},
		},
	}
	e := &usage.Extractor{Checker: checker, Resolver: resolve.New(csm)}

	paramRefArg := &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "variant", PosVal: astsvc.Position{File: "wrapper.tsx", Line: 12}}
	checker.Symbols[paramRefArg] = &fake.Symbol{Decls: []*fake.Node{
		{KindVal: astsvc.KindParameter},
	}}

	// Build the enclosing function so extract.Expr can name it "Wrapper".
	fn := &fake.Node{KindVal: astsvc.KindFunctionDeclaration, PosVal: astsvc.Position{File: "wrapper.tsx"}}
	fake.Child(fn, "name", &fake.Node{KindVal: astsvc.KindIdentifier, TextVal: "Wrapper"})
	body := fake.Child(fn, "body", &fake.Node{})
	call := &fake.Node{KindVal: astsvc.KindCallExpression, PosVal: astsvc.Position{File: "wrapper.tsx", Line: 12}}
	fake.Child(body, "", call)
	args := fake.Child(call, "arguments", &fake.Node{})
	fake.Child(args, "", paramRefArg)

	file := &fake.SourceFile{PathVal: "wrapper.tsx"}
	got := e.FromCall(file, call, []model.Definition{{Name: "v", Index: 0}})

	if len(got) != 1 || got[0].Value.Key() != argvalue.Str("primary").Key() {
		t.Fatalf("expected ParamRef to resolve to StringLiteral(primary), got %+v", got)
	}
}
