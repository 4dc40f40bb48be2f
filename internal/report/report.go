// Package report renders an analyzer.AnalysisResult's ConstantParam
// findings per spec.md §6's two output modes: "simple" (one line per
// finding) and "verbose" (adds every call site). No ANSI coloring —
// out of core scope per spec.md §1.
package report

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/dittory/dittory/internal/model"
)

// WriteSimple renders one line per finding:
//
//	file:line  Decl.param -> value  (N/N calls)
func WriteSimple(w io.Writer, findings []model.ConstantParam) error {
	for _, f := range findings {
		_, err := fmt.Fprintf(w, "%s:%d  %s.%s -> %s  (%d/%d calls)\n",
			f.DeclarationFile, f.DeclarationLine, f.DeclarationName, f.ParamName,
			f.Value.Output(), len(f.Usages), len(f.Usages))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteVerbose renders the same findings as a JSON array, building the
// document incrementally with sjson.SetBytes one field of one finding
// (or of one usage within it) at a time. The growing document is held
// in memory and written out once at the end.
func WriteVerbose(w io.Writer, findings []model.ConstantParam) error {
	doc := []byte("[]")
	var err error

	for i, f := range findings {
		base := fmt.Sprintf("%d", i)
		if doc, err = sjson.SetBytes(doc, base+".file", f.DeclarationFile); err != nil {
			return err
		}
		if doc, err = sjson.SetBytes(doc, base+".line", f.DeclarationLine); err != nil {
			return err
		}
		if doc, err = sjson.SetBytes(doc, base+".declaration", f.DeclarationName); err != nil {
			return err
		}
		if doc, err = sjson.SetBytes(doc, base+".param", f.ParamName); err != nil {
			return err
		}
		if doc, err = sjson.SetBytes(doc, base+".value", f.Value.Output()); err != nil {
			return err
		}
		if doc, err = sjson.SetBytes(doc, base+".valueKind", f.Value.Classify().String()); err != nil {
			return err
		}

		for j, u := range f.Usages {
			usageBase := fmt.Sprintf("%s.usages.%d", base, j)
			if doc, err = sjson.SetBytes(doc, usageBase+".file", u.File); err != nil {
				return err
			}
			if doc, err = sjson.SetBytes(doc, usageBase+".line", u.Line); err != nil {
				return err
			}
		}
	}

	_, err = w.Write(doc)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// Write dispatches to WriteSimple or WriteVerbose by mode ("simple" or
// "verbose"). Callers validate mode beforehand (internal/config); an
// unrecognized mode falls back to simple.
func Write(w io.Writer, mode string, findings []model.ConstantParam) error {
	if mode == "verbose" {
		return WriteVerbose(w, findings)
	}
	return WriteSimple(w, findings)
}
