package triggerlang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
	"github.com/brunosmmm/hdltools-go/pkg/pattern"
	"github.com/brunosmmm/hdltools-go/pkg/trigger"
)

// Mode selects which trigger.FSM implementation a condition chain compiles
// to: ModeAll for "&&" chains (ConditionTableTrigger, unordered), ModeSeq
// for "=>" chains (SimpleTrigger, ordered levels).
type Mode int

const (
	// ModeAll is the "&&" mode: every condition must hold simultaneously,
	// in any order.
	ModeAll Mode = iota
	// ModeSeq is the "=>" mode: conditions must be satisfied in sequence.
	ModeSeq
)

func (m Mode) String() string {
	if m == ModeSeq {
		return "=>"
	}
	return "&&"
}

// WidthResolver answers the full bit width of a named signal, used to build
// a don't-care-padded pattern out of a "[hi:lo]" slice spec. Scope is empty
// when the condition names an unscoped signal.
type WidthResolver func(scope, name string) (int, error)

// Result is a compiled condition chain: the operating mode and the ordered
// descriptors that feed either NewConditionTableTrigger or
// NewSimpleTrigger.
type Result struct {
	Mode        Mode
	Descriptors []*trigger.Descriptor
}

// ConditionTable builds a ConditionTableTrigger from the result. It panics
// if Mode is not ModeAll; callers should check Mode first.
func (r *Result) ConditionTable() *trigger.ConditionTableTrigger {
	if r.Mode != ModeAll {
		panic("triggerlang: ConditionTable called on a ModeSeq result")
	}
	return trigger.NewConditionTableTrigger(r.Descriptors)
}

// Simple builds a SimpleTrigger from the result, one single-descriptor level
// per condition in chain order. It panics if Mode is not ModeSeq; callers
// should check Mode first.
func (r *Result) Simple() *trigger.SimpleTrigger {
	if r.Mode != ModeSeq {
		panic("triggerlang: Simple called on a ModeAll result")
	}
	levels := make([][]*trigger.Descriptor, len(r.Descriptors))
	for i, d := range r.Descriptors {
		levels[i] = []*trigger.Descriptor{d}
	}
	return trigger.NewSimpleTrigger(levels)
}

// Build parses a trigger-condition chain and resolves it into a Result,
// ready to hand to ConditionTable or Simple. resolveWidth is consulted only
// for conditions carrying a "[hi:lo]" slice spec; it may be nil if the chain
// is known not to use slices.
func Build(text string, resolveWidth WidthResolver) (*Result, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	doc, err := p.ParseString(text)
	if err != nil {
		return nil, err
	}

	mode, err := resolveMode(doc.Ops())
	if err != nil {
		return nil, fmt.Errorf("triggerlang: %q: %w", text, err)
	}

	conds := doc.Conds()
	descriptors := make([]*trigger.Descriptor, 0, len(conds))
	for _, c := range conds {
		d, err := buildDescriptor(c, resolveWidth)
		if err != nil {
			return nil, fmt.Errorf("triggerlang: %q: %w", text, err)
		}
		descriptors = append(descriptors, d)
	}

	return &Result{Mode: mode, Descriptors: descriptors}, nil
}

// resolveMode determines the chain's mode from its operator sequence,
// rejecting a chain that mixes "&&" and "=>".
func resolveMode(ops []string) (Mode, error) {
	if len(ops) == 0 {
		return ModeAll, nil
	}
	mode := modeForOp(ops[0])
	for _, op := range ops[1:] {
		if modeForOp(op) != mode {
			return ModeAll, &herrors.TriggerStateError{
				Message: "condition chain mixes && and => operators; pick one mode",
			}
		}
	}
	return mode, nil
}

func modeForOp(op string) Mode {
	if op == "=>" {
		return ModeSeq
	}
	return ModeAll
}

// buildDescriptor resolves one atomic condition into a trigger.Descriptor,
// widening a sliced condition's value into a don't-care-padded pattern
// spanning the signal's full width.
func buildDescriptor(c *Cond, resolveWidth WidthResolver) (*trigger.Descriptor, error) {
	value := c.Value
	if c.Slice != nil {
		padded, err := padSlice(c, resolveWidth)
		if err != nil {
			return nil, err
		}
		value = padded
	}

	varRef := c.Name
	if c.Scope != "" {
		varRef = c.Scope + "::" + c.Name
	}
	d, err := trigger.NewDescriptor(varRef, value)
	if err != nil {
		return nil, err
	}
	d.Negate = c.Op == "!="
	return d, nil
}

// padSlice builds a full-width pattern literal with the condition's value
// bits placed at [High:Low] and every other bit don't-care, per the
// mini-language's slice-spec semantics.
func padSlice(c *Cond, resolveWidth WidthResolver) (string, error) {
	if resolveWidth == nil {
		return "", fmt.Errorf("condition %q has a slice spec but no width resolver was given", c.Name)
	}
	hi, err := parseSliceBound(c.Slice.High)
	if err != nil {
		return "", err
	}
	lo, err := parseSliceBound(c.Slice.Low)
	if err != nil {
		return "", err
	}
	if lo > hi {
		hi, lo = lo, hi
	}

	width, err := resolveWidth(c.Scope, c.Name)
	if err != nil {
		return "", fmt.Errorf("resolving width of %q: %w", c.Name, err)
	}
	if hi >= width {
		return "", fmt.Errorf("slice [%d:%d] exceeds signal %q width %d", hi, lo, c.Name, width)
	}

	valuePattern, err := pattern.New(literalOrHex(c.Value))
	if err != nil {
		return "", err
	}
	sliceWidth := hi - lo + 1
	bits := zeroExtendBits(valuePattern.Bits, sliceWidth)
	if len(bits) > sliceWidth {
		bits = bits[len(bits)-sliceWidth:]
	}

	full := make([]byte, width)
	for i := range full {
		full[i] = 'x'
	}
	// full is MSB-first; bit position p (0 = LSB) lives at index width-1-p.
	for i := 0; i < sliceWidth; i++ {
		bitPos := lo + i
		full[width-1-bitPos] = bits[sliceWidth-1-i]
	}
	return "b" + string(full), nil
}

func zeroExtendBits(bits []byte, width int) []byte {
	if len(bits) >= width {
		return bits
	}
	out := make([]byte, width)
	for i := range out {
		out[i] = '0'
	}
	copy(out[width-len(bits):], bits)
	return out
}

// literalOrHex mirrors pkg/trigger's permissive value parsing: a bare
// alphanumeric literal that pattern.New can't parse outright is treated as
// hex.
func literalOrHex(value string) string {
	if _, err := pattern.New(value); err == nil {
		return value
	}
	if strings.HasSuffix(strings.ToLower(value), "h") {
		return value
	}
	return value + "h"
}

func parseSliceBound(s string) (int, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid slice bound %q", s)
	}
	return int(v), nil
}
