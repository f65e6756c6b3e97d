package hdlir

import (
	"fmt"
	"math"
)

// Ceil rounds up to the nearest integer, exposed to expressions as a
// builtin call of one argument interpreted as a fixed-point value scaled by
// 1 (i.e. ceil(n) == n for integer inputs; kept for grammar symmetry with
// log2/clog2, which take a real-valued intermediate).
func Ceil(args ...int64) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("hdlir: ceil takes exactly one argument, got %d", len(args))
	}
	return args[0], nil
}

// Log2 returns floor(log2(n)), truncated to an integer for expression use.
func Log2(args ...int64) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("hdlir: log2 takes exactly one argument, got %d", len(args))
	}
	if args[0] <= 0 {
		return 0, fmt.Errorf("hdlir: log2 of non-positive value %d", args[0])
	}
	return int64(math.Log2(float64(args[0]))), nil
}

// Clog2 returns ceil(log2(n)), the number of address bits needed to select
// among n items. clog2(1) == 0, matching the source toolkit's util.clog2
// (distinct from IntegerConstant.MinimumValueSize, which answers a
// different question: how many bits to store a given value, not how many
// to select among a count of items).
func Clog2(args ...int64) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("hdlir: clog2 takes exactly one argument, got %d", len(args))
	}
	if args[0] <= 0 {
		return 0, fmt.Errorf("hdlir: clog2 of non-positive value %d", args[0])
	}
	if args[0] == 1 {
		return 0, nil
	}
	return int64(math.Ceil(math.Log2(float64(args[0])))), nil
}

// BuiltinScope returns the fixed set of builtin callables every module's
// full scope is merged with, mirroring HDLBuiltins.get_builtin_scope.
func BuiltinScope() EvalScope {
	return EvalScope{
		"ceil":  BuiltinFunc(Ceil),
		"log2":  BuiltinFunc(Log2),
		"clog2": BuiltinFunc(Clog2),
	}
}
