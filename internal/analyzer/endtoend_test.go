package analyzer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"golang.org/x/tools/txtar"

	"github.com/microsoft/typescript-go/shim/vfs/vfstest"

	"github.com/dittory/dittory/internal/analyzer"
	"github.com/dittory/dittory/internal/astsvc"
	"github.com/dittory/dittory/internal/constancy"
)

// Runs the six literal end-to-end scenarios from spec.md §8 against a
// real tsgoProject, not astsvc/fake — these are the fixtures whose
// absence let the reference-index key mismatch slip through review.
func TestEndToEndScenarios(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(archives) == 0 {
		t.Fatal("no txtar fixtures found under testdata/")
	}

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}
			archive := txtar.Parse(data)

			files := make(map[string]string, len(archive.Files))
			for _, f := range archive.Files {
				files["/"+f.Name] = string(f.Data)
			}

			fs := vfstest.FromMap(files, true)
			project, release, err := astsvc.NewProject("/", "", fs)
			if err != nil {
				t.Fatalf("NewProject: %v", err)
			}
			defer release()

			result := analyzer.Run(project, analyzer.Options{
				MinUsages: 2,
				Allow:     constancy.NewAllowlist(true),
				Target:    analyzer.TargetAll,
			})

			sort.Slice(result.ConstantParams, func(i, j int) bool {
				a, b := result.ConstantParams[i], result.ConstantParams[j]
				if a.DeclarationName != b.DeclarationName {
					return a.DeclarationName < b.DeclarationName
				}
				return a.ParamName < b.ParamName
			})

			lines := make([]string, 0, len(result.ConstantParams))
			for _, c := range result.ConstantParams {
				lines = append(lines, fmt.Sprintf("%s.%s = %s (%d usages)", c.DeclarationName, c.ParamName, c.Value.Output(), len(c.Usages)))
			}

			snaps.MatchSnapshot(t, name, lines)
		})
	}
}
