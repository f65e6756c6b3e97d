package vcdstore

import (
	"path/filepath"
	"strings"
)

// Index is a lookup structure over a VCD file's declared variables,
// supporting lookup by bare name, by owning scope (exact or any enclosing
// prefix), by full scope-qualified path, and by glob pattern over full
// paths, matching the source toolkit's VariableIndex.
type Index struct {
	byName     map[string][]*Variable
	byScope    map[string][]*Variable
	byFullPath map[string]*Variable
}

// NewIndex builds an empty index.
func NewIndex() *Index {
	return &Index{
		byName:     map[string][]*Variable{},
		byScope:    map[string][]*Variable{},
		byFullPath: map[string]*Variable{},
	}
}

// Add registers v under its name, every enclosing scope prefix, and its
// full path.
func (idx *Index) Add(v *Variable) {
	idx.byName[v.Name] = append(idx.byName[v.Name], v)
	idx.byFullPath[v.FullPath()] = v

	for i := 1; i <= len(v.Scope); i++ {
		prefix := strings.Join(v.Scope[:i], ".")
		idx.byScope[prefix] = append(idx.byScope[prefix], v)
	}
}

// ByName returns every variable declared with the given bare name,
// regardless of scope.
func (idx *Index) ByName(name string) []*Variable { return idx.byName[name] }

// ByScope returns every variable declared directly or nested under the
// given scope path (joined with '.').
func (idx *Index) ByScope(scopePath string) []*Variable { return idx.byScope[scopePath] }

// ByFullPath returns the single variable at an exact scope-qualified path.
func (idx *Index) ByFullPath(path string) (*Variable, bool) {
	v, ok := idx.byFullPath[path]
	return v, ok
}

// FindByPattern returns every variable whose full path matches the glob
// pattern (shell-style, as accepted by path/filepath.Match).
func (idx *Index) FindByPattern(pattern string) ([]*Variable, error) {
	var out []*Variable
	for path, v := range idx.byFullPath {
		ok, err := filepath.Match(pattern, path)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// Find resolves a variable by name, scope, or both, matching the source
// toolkit's find_variables dispatch: both given intersects the name and
// scope result sets; only one given returns that set; neither given with a
// non-empty pattern searches by glob over full paths instead.
func (idx *Index) Find(name, scope, pattern string) ([]*Variable, error) {
	if pattern != "" && name == "" && scope == "" {
		return idx.FindByPattern(pattern)
	}
	switch {
	case name != "" && scope != "":
		inScope := map[*Variable]bool{}
		for _, v := range idx.ByScope(scope) {
			inScope[v] = true
		}
		var out []*Variable
		for _, v := range idx.ByName(name) {
			if inScope[v] {
				out = append(out, v)
			}
		}
		return out, nil
	case name != "":
		return idx.ByName(name), nil
	case scope != "":
		return idx.ByScope(scope), nil
	default:
		return nil, nil
	}
}
