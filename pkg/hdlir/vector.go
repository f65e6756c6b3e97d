package hdlir

import (
	"fmt"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// VectorDescriptor describes the bit range of a signal or port: [left:right].
// Both bounds may be literal integers or expressions (parameterized widths),
// matching the source toolkit's acceptance of int, constant, expression or
// signal-valued bounds.
type VectorDescriptor struct {
	Left  *Expression
	Right *Expression

	// PartSelect marks a descriptor built from a base[offset +: length]
	// style part-select rather than a plain left:right range.
	PartSelect       bool
	PartSelectLength *Expression
}

// NewVectorDescriptor builds a descriptor from two bounds. right defaults to
// a literal 0 when nil, matching single-bound (scalar-width) construction. A
// negative integer literal on either bound is rejected, matching the source
// toolkit's constructor-time _check_value.
func NewVectorDescriptor(left, right *Expression) (*VectorDescriptor, error) {
	if right == nil {
		right = NewLiteral(0)
	}
	if err := checkNonNegative(left); err != nil {
		return nil, err
	}
	if err := checkNonNegative(right); err != nil {
		return nil, err
	}
	return &VectorDescriptor{Left: left, Right: right}, nil
}

// NewVectorDescriptorFromInt is a convenience constructor for literal bounds.
func NewVectorDescriptorFromInt(left, right int64) (*VectorDescriptor, error) {
	return NewVectorDescriptor(NewLiteral(left), NewLiteral(right))
}

func checkNonNegative(e *Expression) error {
	if e != nil && e.Kind == ExprLiteral && e.Value < 0 {
		return &herrors.InvalidInputError{
			Input:   e.Dump(),
			Message: "only positive values allowed for sizes",
			Help:    "vector bounds must be non-negative integer literals or expressions",
		}
	}
	return nil
}

// Len returns abs(left-right)+1, evaluating both bounds against an empty
// scope (no names and no builtins). Use EvaluateLen against a real scope
// when the bounds reference parameters or builtins.
func (v *VectorDescriptor) Len() (int64, error) {
	return v.EvaluateLen(nil)
}

// EvaluateLen evaluates both bounds against scope and returns the vector
// width.
func (v *VectorDescriptor) EvaluateLen(scope EvalScope) (int64, error) {
	left, right, err := v.Evaluate(scope)
	if err != nil {
		return 0, err
	}
	d := left - right
	if d < 0 {
		d = -d
	}
	return d + 1, nil
}

// Evaluate resolves both bounds to concrete integers.
func (v *VectorDescriptor) Evaluate(scope EvalScope) (left int64, right int64, err error) {
	left, err = v.Left.Evaluate(scope)
	if err != nil {
		return 0, 0, fmt.Errorf("hdlir: vector left bound: %w", err)
	}
	right, err = v.Right.Evaluate(scope)
	if err != nil {
		return 0, 0, fmt.Errorf("hdlir: vector right bound: %w", err)
	}
	return left, right, nil
}

// Descending reports whether left >= right (the conventional [MSB:LSB] form),
// evaluated against the empty scope.
func (v *VectorDescriptor) Descending() (bool, error) {
	left, right, err := v.Evaluate(nil)
	if err != nil {
		return false, err
	}
	return left >= right, nil
}

func (v *VectorDescriptor) String() string {
	if v.PartSelect {
		return fmt.Sprintf("[%s +: %s]", v.Left.Dump(), v.PartSelectLength.Dump())
	}
	return fmt.Sprintf("[%s:%s]", v.Left.Dump(), v.Right.Dump())
}
