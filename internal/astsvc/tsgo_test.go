package astsvc

import (
	"testing"

	"github.com/microsoft/typescript-go/shim/vfs/vfstest"
)

// Exercises buildReferenceIndex and referencesTo against a real
// tsgoProject instead of the hand-authored astsvc/fake doubles every
// other test in the module uses — the index is keyed by identifier
// pointers the checker resolves, which a fake SourceFile's Refs map
// can't exercise.
func TestFindReferencesAgainstRealProject(t *testing.T) {
	fs := vfstest.FromMap(map[string]string{
		"/button.tsx": `export function Button(props: { variant: string }) {
  return props.variant;
}
`,
		"/call.tsx": `import { Button } from "./button";

function render() {
  return [<Button variant="primary" />, <Button variant="primary" />];
}
`,
	}, true)

	project, release, err := NewProject("/", "", fs)
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	defer release()

	var target SourceFile
	for _, f := range project.Files() {
		if f.Path() == "/button.tsx" {
			target = f
		}
	}
	if target == nil {
		t.Fatal("button.tsx not found among project files")
	}

	var nameNode Node
	for _, ex := range target.Exports() {
		if ex.Name == "Button" {
			nameNode = ex.NameNode
		}
	}
	if nameNode == nil {
		t.Fatal("Button export not found")
	}

	refs := target.FindReferences(nameNode)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references to Button, got %d", len(refs))
	}
}
