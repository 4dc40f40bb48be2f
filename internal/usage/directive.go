package usage

import (
	"strings"

	"github.com/dittory/dittory/internal/astsvc"
)

const (
	disableNextLine = "dittory-disable-next-line"
	disableLine     = "dittory-disable-line"
)

// hasDisable implements the disable-comment guard (spec.md §4.6): node
// and every ancestor is checked, so a comment on an enclosing JSX
// element or statement also suppresses a nested call/element.
func hasDisable(file astsvc.SourceFile, node astsvc.Node) bool {
	for n := node; n != nil; n = n.Parent() {
		ranges := file.Comments(n)
		for _, c := range ranges.Leading {
			if strings.Contains(c, disableNextLine) {
				return true
			}
		}
		for _, c := range ranges.Trailing {
			if strings.Contains(c, disableLine) {
				return true
			}
		}
	}
	return false
}
