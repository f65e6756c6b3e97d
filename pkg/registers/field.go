// Package registers models memory-mapped register fields, registers, and
// the flat register map a two-pass builder assembles them into: bit
// geometry, write-mask computation, and default-value assembly.
package registers

import (
	"fmt"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
	"github.com/brunosmmm/hdltools-go/pkg/hdlir"
)

// Access is a field's read/write permission.
type Access int

const (
	AccessReadWrite Access = iota
	AccessReadOnly
	AccessWriteOnly
)

func (a Access) String() string {
	switch a {
	case AccessReadOnly:
		return "R"
	case AccessWriteOnly:
		return "W"
	default:
		return "RW"
	}
}

// Field is a named bit range inside a Register, with a permission and an
// optional default value. Default may reference module parameters, so it
// is an expression rather than a bare integer.
type Field struct {
	Name       string
	Left       int
	Right      int
	Access     Access
	Default    *hdlir.Expression
	Properties map[string]string
}

// NewField builds a field occupying bits [left:right] inclusive, left >=
// right, matching the source toolkit's _validate_slice acceptance of a
// single bit (left==right) or a range.
func NewField(name string, left, right int, access Access) (*Field, error) {
	if left < right {
		return nil, fmt.Errorf("registers: field %q: left bit %d below right bit %d", name, left, right)
	}
	if right < 0 {
		return nil, fmt.Errorf("registers: field %q: negative bit position", name)
	}
	return &Field{Name: name, Left: left, Right: right, Access: access, Properties: map[string]string{}}, nil
}

// GetRange returns the field's [left, right] bit positions.
func (f *Field) GetRange() (int, int) { return f.Left, f.Right }

// Width returns the number of bits the field occupies.
func (f *Field) Width() int { return f.Left - f.Right + 1 }

// Mask returns the bitmask covering the field's bit range within its
// register.
func (f *Field) Mask() uint64 {
	width := f.Width()
	if width >= 64 {
		return ^uint64(0) << uint(f.Right)
	}
	return ((uint64(1) << uint(width)) - 1) << uint(f.Right)
}

// EvaluateDefault resolves the field's default value expression against
// scope, returning 0 when no default was set.
func (f *Field) EvaluateDefault(scope hdlir.EvalScope) (int64, error) {
	if f.Default == nil {
		return 0, nil
	}
	v, err := f.Default.Evaluate(scope)
	if err != nil {
		return 0, fmt.Errorf("registers: field %q default: %w", f.Name, err)
	}
	return v, nil
}

func fieldNotFound(name string) error {
	return &herrors.LookupError{Kind: "field", Name: name}
}

func registerNotFound(name string) error {
	return &herrors.LookupError{Kind: "register", Name: name}
}
