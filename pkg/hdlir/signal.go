package hdlir

import "fmt"

// SignalKind classifies a Signal, matching the source toolkit's
// comb/reg/const/var sig_type values.
type SignalKind int

const (
	SignalCombinational SignalKind = iota
	SignalRegister
	SignalConstant
	SignalVariable
)

func (k SignalKind) String() string {
	switch k {
	case SignalCombinational:
		return "comb"
	case SignalRegister:
		return "reg"
	case SignalConstant:
		return "const"
	case SignalVariable:
		return "var"
	default:
		return "unknown"
	}
}

// Signal is a named value in the IR: a combinational net, a register, a
// constant, or a loop/generate variable. Every kind but a constant carries a
// Vector (a 1-bit signal uses [0:0]); only a constant may carry no Vector,
// when its width is inferred from Default.
type Signal struct {
	Name    string
	Kind    SignalKind
	Vector  *VectorDescriptor
	Default *Expression
}

// NewSignal builds a signal, rejecting a nil Vector on anything but a
// constant (only constants may infer their width from a default value).
func NewSignal(name string, kind SignalKind, vector *VectorDescriptor) (*Signal, error) {
	if vector == nil && kind != SignalConstant {
		return nil, fmt.Errorf("hdlir: signal %q: size is required for signal type %s", name, kind)
	}
	return &Signal{Name: name, Kind: kind, Vector: vector}, nil
}

// Width evaluates the signal's bit width, returning 1 for a signal with no
// vector descriptor.
func (s *Signal) Width(scope EvalScope) (int64, error) {
	if s.Vector == nil {
		return 1, nil
	}
	return s.Vector.EvaluateLen(scope)
}

// Slice returns a SignalSlice selecting bits [left:right] of the signal.
func (s *Signal) Slice(left, right *Expression) (*SignalSlice, error) {
	v, err := NewVectorDescriptor(left, right)
	if err != nil {
		return nil, err
	}
	return &SignalSlice{Signal: s, Vector: v}, nil
}

// SignalSlice is a bit range taken from a Signal, usable anywhere a Signal
// is: part-selects and single-bit selects both reduce to this.
type SignalSlice struct {
	Signal *Signal
	Vector *VectorDescriptor
}

func (s *SignalSlice) String() string {
	return fmt.Sprintf("%s%s", s.Signal.Name, s.Vector.String())
}
