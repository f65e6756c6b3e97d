// Package trigger implements the condition descriptor and FSM family that
// watch a stream of VCD value changes and fire when a configured sequence
// or set of conditions is satisfied.
package trigger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brunosmmm/hdltools-go/pkg/pattern"
)

var descriptorRegex = regexp.MustCompile(`^([a-zA-Z_0-9:]+)\s*==\s*([Xx0-9A-Fa-f]+h?)$`)

// Descriptor names one variable/value-pattern condition: "scope::name ==
// value". Two descriptors are equal when scope, name and value pattern
// string all match, matching the source toolkit's equality/hash-by-tuple.
type Descriptor struct {
	Scope   string
	Name    string
	Value   string
	Negate  bool
	pattern *pattern.Pattern
}

// ParseDescriptor parses "scope::name == value" into a Descriptor.
func ParseDescriptor(text string) (*Descriptor, error) {
	m := descriptorRegex.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, fmt.Errorf("trigger: malformed condition descriptor %q", text)
	}
	return NewDescriptor(m[1], m[2])
}

// NewDescriptor builds a descriptor from a variable reference and a value
// literal, pre-parsing the literal into a pattern so repeated matches don't
// re-parse it.
func NewDescriptor(varRef, value string) (*Descriptor, error) {
	scope, name := splitVarRef(varRef)
	p, err := parseDescriptorValue(value)
	if err != nil {
		return nil, fmt.Errorf("trigger: condition %q==%q: %w", varRef, value, err)
	}
	return &Descriptor{Scope: scope, Name: name, Value: value, pattern: p}, nil
}

func splitVarRef(ref string) (scope, name string) {
	idx := strings.LastIndex(ref, "::")
	if idx < 0 {
		return "", ref
	}
	return ref[:idx], ref[idx+2:]
}

// parseDescriptorValue uses any value pattern.New accepts as-is (a pure
// decimal run, a b-prefixed binary body, a wildcard-only run, an
// "h"-suffixed hex literal). Anything else is retried with an "h" suffix,
// so a bare run of hex digits such as 1A, which pattern.New rejects, parses
// as hex.
func parseDescriptorValue(value string) (*pattern.Pattern, error) {
	if p, err := pattern.New(value); err == nil {
		return p, nil
	}
	if strings.HasSuffix(strings.ToLower(value), "h") {
		return pattern.New(value)
	}
	return pattern.New(value + "h")
}

// MatchVar reports whether scope and name identify the variable this
// descriptor watches.
func (d *Descriptor) MatchVar(scope, name string) bool {
	return d.Scope == scope && d.Name == name
}

// MatchValue reports whether value matches this descriptor's pattern, or
// fails to match it when Negate is set (the mini-language's `!=` operator).
func (d *Descriptor) MatchValue(value string) bool {
	m := d.pattern.Match(value)
	if d.Negate {
		return !m
	}
	return m
}

// Match reports whether (scope, name, value) satisfies the descriptor.
func (d *Descriptor) Match(scope, name, value string) bool {
	return d.MatchVar(scope, name) && d.MatchValue(value)
}

// Key returns the (scope, name, value) identity tuple, usable for equality
// checks and as a map key. ConditionTableTrigger keys its table by
// descriptor pointer, not by Key.
func (d *Descriptor) Key() [3]string { return [3]string{d.Scope, d.Name, d.Value} }

func (d *Descriptor) String() string {
	op := "=="
	if d.Negate {
		op = "!="
	}
	if d.Scope == "" {
		return fmt.Sprintf("%s %s %s", d.Name, op, d.Value)
	}
	return fmt.Sprintf("%s::%s %s %s", d.Scope, d.Name, op, d.Value)
}
