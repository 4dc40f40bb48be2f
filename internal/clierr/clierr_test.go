package clierr_test

import (
	"strings"
	"testing"

	"github.com/dittory/dittory/internal/clierr"
)

func TestErrorFormatsWithField(t *testing.T) {
	err := clierr.New("--min", "must be a positive integer")
	if err.Error() != "--min: must be a positive integer" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestErrorFormatsWithoutField(t *testing.T) {
	err := clierr.New("", "no source directory given")
	if err.Error() != "no source directory given" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := clierr.Newf("dittory.config.js", "unsupported config format %s, use .json or .yaml", ".js")
	if !strings.Contains(err.Error(), "unsupported config format .js") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
