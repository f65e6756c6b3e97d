package vcdstore

import "strings"

// Variable is one declared VCD signal: its identifier code, declared name,
// owning scope path, bit width, and recorded value history.
type Variable struct {
	ID      string
	Name    string
	Scope   []string
	Width   int
	History *History
}

// NewVariable builds an empty variable with its own history.
func NewVariable(id, name string, scope []string, width int) *Variable {
	return &Variable{ID: id, Name: name, Scope: scope, Width: width, History: NewHistory()}
}

// FullPath renders the variable's scope-qualified name as "a.b.c.name".
func (v *Variable) FullPath() string {
	if len(v.Scope) == 0 {
		return v.Name
	}
	return strings.Join(v.Scope, ".") + "." + v.Name
}
