// Package vcdtracker composes the streaming VCD parser in pkg/vcd with a
// hierarchy index, a time window, a precondition/postcondition gate, and a
// pattern-match tracker, following the source toolkit's mixin stack
// (hierarchy, time restriction, conditions, trigger) as independent
// embeddable types rather than a chain of Python base classes.
package vcdtracker

import (
	"github.com/brunosmmm/hdltools-go/pkg/vcd"
)

// Hierarchy indexes every declared variable by id and supports name/scope
// search, built from a parser's VariableDecl hook.
type Hierarchy struct {
	variables map[string]*vcd.Variable
}

// NewHierarchy builds an empty index.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{variables: map[string]*vcd.Variable{}}
}

// Observe records one declared variable, keyed by its VCD identifier code.
func (h *Hierarchy) Observe(v *vcd.Variable) {
	h.variables[v.ID] = v
}

// Lookup returns the variable declared under the given identifier code.
func (h *Hierarchy) Lookup(id string) (*vcd.Variable, bool) {
	v, ok := h.variables[id]
	return v, ok
}

// Variables returns every declared variable.
func (h *Hierarchy) Variables() map[string]*vcd.Variable {
	return h.variables
}

// Search finds every declared variable named name, optionally restricted to
// an exact scope match.
func (h *Hierarchy) Search(name string, scope vcd.Scope) []*vcd.Variable {
	var out []*vcd.Variable
	for _, v := range h.variables {
		if v.Name != name {
			continue
		}
		if scope != nil && !v.Scope.Equal(scope) {
			continue
		}
		out = append(out, v)
	}
	return out
}
