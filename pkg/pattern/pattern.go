// Package pattern implements multi-radix value patterns with don't-care
// bits, used to match trigger conditions and signal values against a
// human-written literal in decimal, hex, binary, or legacy hex-suffix
// notation.
package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// Pattern is a fixed-width bit pattern where each bit is either 0, 1, or a
// don't-care ('x'/'X'). Bits holds one byte per bit, MSB first, valued '0',
// '1' or 'x'.
type Pattern struct {
	Bits []byte
	Raw  string
}

const helpMessage = `supported pattern formats:
  decimal:        123
  hex:            0x1A, 0X1a
  binary:         0b1010, 0B1010, b1010, B1010
  legacy hex:     1Ah, FFH
  wildcard only:  xxxx, XX

examples:
  "0x1A"   -> 00011010
  "b101x"  -> 101x (4 bits, low bit don't-care)
  "42"     -> decimal 42
  "xx"     -> 2 bits, both don't-care`

// New parses a pattern literal, auto-detecting its format. An ambiguous or
// malformed literal returns an *herrors.InvalidInputError carrying a
// detailed help message enumerating the supported formats.
func New(literal string) (*Pattern, error) {
	bits, err := parseLiteral(literal)
	if err != nil {
		return nil, err
	}
	return &Pattern{Bits: bits, Raw: literal}, nil
}

func invalidInput(literal, message string) error {
	return &herrors.InvalidInputError{Input: literal, Message: message, Help: helpMessage}
}

func parseLiteral(literal string) ([]byte, error) {
	if literal == "" {
		return nil, invalidInput(literal, "empty pattern")
	}
	lower := strings.ToLower(literal)

	switch {
	case strings.HasPrefix(lower, "0x"):
		return hexToBin(literal[2:], literal)
	case strings.HasPrefix(lower, "0b"):
		return binLiteralBits(literal[2:], literal)
	case strings.HasPrefix(lower, "b") && len(lower) > 1 && isBinBody(lower[1:]):
		return binLiteralBits(literal[1:], literal)
	case strings.HasSuffix(lower, "h") && len(lower) > 1:
		return hexToBin(literal[:len(literal)-1], literal)
	case isAllWildcard(lower):
		bits := make([]byte, len(literal))
		for i := range bits {
			bits[i] = 'x'
		}
		return bits, nil
	case isAllDigits(literal):
		v, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return nil, invalidInput(literal, "decimal value out of range")
		}
		return decToBin(v), nil
	default:
		return nil, invalidInput(literal, "unrecognized pattern format")
	}
}

func isAllWildcard(lower string) bool {
	if lower == "" {
		return false
	}
	for _, c := range lower {
		if c != 'x' {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isBinBody(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != '0' && c != '1' && c != 'x' {
			return false
		}
	}
	return true
}

func binLiteralBits(body, literal string) ([]byte, error) {
	if body == "" {
		return nil, invalidInput(literal, "empty binary body")
	}
	bits := make([]byte, len(body))
	for i, c := range strings.ToLower(body) {
		switch c {
		case '0':
			bits[i] = '0'
		case '1':
			bits[i] = '1'
		case 'x':
			bits[i] = 'x'
		default:
			return nil, invalidInput(literal, fmt.Sprintf("invalid binary digit %q", c))
		}
	}
	return bits, nil
}

// hexToBin expands each hex nibble (or 'x'/'X' standing for an entire
// unknown nibble) into 4 bits, matching the source toolkit's
// Pattern.hex_to_bin.
func hexToBin(body, literal string) ([]byte, error) {
	if body == "" {
		return nil, invalidInput(literal, "empty hex body")
	}
	var bits []byte
	for _, c := range strings.ToLower(body) {
		switch {
		case c == 'x':
			bits = append(bits, 'x', 'x', 'x', 'x')
		case c >= '0' && c <= '9' || c >= 'a' && c <= 'f':
			v, _ := strconv.ParseUint(string(c), 16, 8)
			for i := 3; i >= 0; i-- {
				if v&(1<<uint(i)) != 0 {
					bits = append(bits, '1')
				} else {
					bits = append(bits, '0')
				}
			}
		default:
			return nil, invalidInput(literal, fmt.Sprintf("invalid hex digit %q", c))
		}
	}
	return bits, nil
}

func decToBin(v uint64) []byte {
	if v == 0 {
		return []byte{'0'}
	}
	var rev []byte
	for v > 0 {
		if v&1 != 0 {
			rev = append(rev, '1')
		} else {
			rev = append(rev, '0')
		}
		v >>= 1
	}
	bits := make([]byte, len(rev))
	for i, b := range rev {
		bits[len(rev)-1-i] = b
	}
	return bits
}

// Len returns the pattern's bit width.
func (p *Pattern) Len() int { return len(p.Bits) }

// IsNumeric reports whether the pattern contains no don't-care bits.
func (p *Pattern) IsNumeric() bool {
	for _, b := range p.Bits {
		if b == 'x' {
			return false
		}
	}
	return true
}

// ToInteger converts a fully-numeric pattern to its integer value, failing
// if the pattern contains don't-care bits.
func (p *Pattern) ToInteger() (uint64, error) {
	if !p.IsNumeric() {
		return 0, fmt.Errorf("pattern: %q contains don't-care bits, not numeric", p.Raw)
	}
	var v uint64
	for _, b := range p.Bits {
		v <<= 1
		if b == '1' {
			v |= 1
		}
	}
	return v, nil
}

func zeroExtend(bits []byte, width int) []byte {
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

// Match reports whether value literal matches the pattern: both are
// zero-extended to their common width, then compared bit by bit, skipping
// positions that are don't-care in either side. An unparseable value
// literal matches nothing rather than returning an error, mirroring the
// source toolkit's treatment of a None value.
func (p *Pattern) Match(value string) bool {
	other, err := New(value)
	if err != nil {
		return false
	}
	return p.MatchPattern(other)
}

// MatchPattern compares two patterns directly, without re-parsing.
func (p *Pattern) MatchPattern(other *Pattern) bool {
	width := p.Len()
	if other.Len() > width {
		width = other.Len()
	}
	a := zeroExtend(p.Bits, width)
	b := zeroExtend(other.Bits, width)
	for i := 0; i < width; i++ {
		if a[i] == 'x' || b[i] == 'x' {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Compare evaluates value against the pattern using operator, one of "==",
// "!=", "<", "<=", ">", ">=". The ordering operators require both sides to
// be fully numeric and fail otherwise.
func (p *Pattern) Compare(value string, operator string) (bool, error) {
	switch operator {
	case "==":
		return p.Match(value), nil
	case "!=":
		return !p.Match(value), nil
	}
	if !p.IsNumeric() {
		return false, fmt.Errorf("pattern: %q contains don't-care bits, cannot order-compare", p.Raw)
	}
	other, err := New(value)
	if err != nil {
		return false, err
	}
	if !other.IsNumeric() {
		return false, fmt.Errorf("pattern: %q contains don't-care bits, cannot order-compare", value)
	}
	lhs, _ := p.ToInteger()
	rhs, _ := other.ToInteger()
	switch operator {
	case "<":
		return lhs < rhs, nil
	case "<=":
		return lhs <= rhs, nil
	case ">":
		return lhs > rhs, nil
	case ">=":
		return lhs >= rhs, nil
	default:
		return false, fmt.Errorf("pattern: unsupported operator %q", operator)
	}
}

func (p *Pattern) String() string { return string(p.Bits) }
