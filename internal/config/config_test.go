package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dittory/dittory/internal/config"
)

func TestLoadJSONConfig(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "dittory.config.json"), []byte(`{"minUsages": 3, "target": "components"}`), 0o644)

	f, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if f == nil || f.MinUsages == nil || *f.MinUsages != 3 {
		t.Fatalf("unexpected config: %+v", f)
	}
	if f.Target == nil || *f.Target != "components" {
		t.Fatalf("unexpected target: %+v", f)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "dittory.config.yaml"), []byte("minUsages: 5\noutput: verbose\n"), 0o644)

	f, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if f == nil || f.MinUsages == nil || *f.MinUsages != 5 {
		t.Fatalf("unexpected config: %+v", f)
	}
}

func TestLoadJSPrefersUnsupportedError(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "dittory.config.js"), []byte("module.exports = {}"), 0o644)
	os.WriteFile(filepath.Join(dir, "dittory.config.json"), []byte(`{}`), 0o644)

	_, err := config.Load(dir)
	if err == nil {
		t.Fatal("expected an unsupported-format error")
	}
}

func TestLoadNoConfigReturnsNilNil(t *testing.T) {
	dir := t.TempDir()
	f, err := config.Load(dir)
	if f != nil || err != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", f, err)
	}
}

func TestOptionsApplyFilePrecedence(t *testing.T) {
	base := config.Defaults()
	min := 7
	target := "functions"
	merged := base.ApplyFile(&config.File{MinUsages: &min, Target: &target})

	if merged.MinUsages != 7 || merged.Target != "functions" {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if merged.Output != "simple" {
		t.Fatalf("expected default output to survive merge, got %q", merged.Output)
	}
}

func TestOptionsValidateRejectsBadTarget(t *testing.T) {
	o := config.Defaults()
	o.Target = "widgets"
	if err := o.Validate(); err == nil {
		t.Fatal("expected validation error for bad target")
	}
}

func TestOptionsValidateRejectsNonPositiveMinUsages(t *testing.T) {
	o := config.Defaults()
	o.MinUsages = 0
	if err := o.Validate(); err == nil {
		t.Fatal("expected validation error for minUsages=0")
	}
}
