package vcd

import "strings"

// Scope is a VCD $scope hierarchy path, most-enclosing first.
type Scope []string

// ParseScope parses a "a::b::c" path. A trailing "::" (producing an empty
// final segment) marks an inclusive-subtree reference: Contains then
// matches the named scope itself and everything nested under it, not just
// strict descendants.
func ParseScope(text string) (Scope, bool) {
	parts := strings.Split(text, "::")
	inclusive := false
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		inclusive = true
		parts = parts[:len(parts)-1]
	}
	return Scope(parts), inclusive
}

// Contains reports whether other is a proper descendant of s (s is a
// strict prefix of other, and other is longer).
func (s Scope) Contains(other Scope) bool {
	if len(other) <= len(s) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// ContainsInclusive reports whether other equals s or is a descendant of s.
func (s Scope) ContainsInclusive(other Scope) bool {
	if len(other) < len(s) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Scope) String() string { return strings.Join(s, "::") }

// Equal reports whether two scopes name the same path.
func (s Scope) Equal(other Scope) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
