// Package resolve implements the Parameter-Reference Resolver (spec.md
// §4.7): given a ParamRefArgValue and the shared CallSiteMap, find the
// single concrete value every forwarding call site agrees on, or give
// up and leave the reference as-is.
package resolve

import (
	"strings"

	"github.com/dittory/dittory/internal/argvalue"
	"github.com/dittory/dittory/internal/model"
)

// Resolver resolves ParamRef values against a fixed CallSiteMap.
type Resolver struct {
	callSites model.CallSiteMap
}

func New(callSites model.CallSiteMap) *Resolver {
	return &Resolver{callSites: callSites}
}

// ResolveOrSelf returns v unchanged unless it is a ParamRef that
// resolves to a single concrete value, in which case that value is
// returned instead.
func (r *Resolver) ResolveOrSelf(v argvalue.Value) argvalue.Value {
	if v.Kind() != argvalue.ParamRef {
		return v
	}
	if resolved, ok := r.resolve(v, map[string]bool{}); ok {
		return resolved
	}
	return v
}

// resolve implements the §4.7 algorithm. visited is keyed by the
// ParamRef's own Key() to break cycles.
func (r *Resolver) resolve(pr argvalue.Value, visited map[string]bool) (argvalue.Value, bool) {
	key := pr.Key()
	if visited[key] {
		return argvalue.Value{}, false
	}
	visited[key] = true

	declID := model.DeclarationID(pr.DeclFile(), pr.EnclosingName())
	byParam, ok := r.callSites[declID]
	if !ok {
		return argvalue.Value{}, false
	}

	argName := lastSegment(pr.Path())
	args, ok := byParam[argName]
	if !ok || len(args) == 0 {
		return argvalue.Value{}, false
	}

	var keys []string
	var representative argvalue.Value
	seen := map[string]bool{}

	for _, arg := range args {
		v := arg.Value
		if v.Kind() == argvalue.ParamRef {
			resolved, ok := r.resolve(v, copyVisited(visited))
			if !ok {
				return argvalue.Value{}, false
			}
			v = resolved
		}
		if !seen[v.Key()] {
			seen[v.Key()] = true
			keys = append(keys, v.Key())
			representative = v
		}
	}

	if len(keys) != 1 {
		return argvalue.Value{}, false
	}
	return representative, true
}

// lastSegment derives the matched arg name from a ParamRef's dotted
// path: the final segment for a nested path (props.x), the whole
// string for a bare parameter name.
func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func copyVisited(v map[string]bool) map[string]bool {
	out := make(map[string]bool, len(v))
	for k := range v {
		out[k] = true
	}
	return out
}
