// Package vcdcompare compares two VCD dumps for functional equivalence:
// normalized signal names, normalized values (collapsing every flavor of
// unknown/high-impedance to a single don't-care marker), and a time
// tolerance window, reporting every mismatch found. It offers both a
// direct mode, which loads each dump fully before comparing, and a
// streaming mode that never holds a gob-encoded intermediate in memory,
// selected automatically by combined input size against a memory budget.
package vcdcompare

import "strings"

// NormalizeSignalName strips a trailing VHDL-style array suffix
// ("count[3:0]" -> "count") so signals that differ only in how their
// source language spells a vector reference still compare equal.
func NormalizeSignalName(name string) string {
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		return name[:idx]
	}
	return name
}

// NormalizeValue maps every flavor of unknown/high-impedance state to a
// single "x" marker and strips insignificant leading zeros from a
// multi-bit binary literal, so two dumps using different conventions for
// "don't know" or differing zero-padding still compare equal.
func NormalizeValue(value string) string {
	if value == "" {
		return value
	}
	lower := strings.ToLower(value)

	allUnknown := true
	for _, c := range lower {
		switch c {
		case 'u', 'x', 'z', '-':
		default:
			allUnknown = false
		}
	}
	if allUnknown {
		return "x"
	}

	if len(lower) > 1 && isAllBinary(lower) {
		trimmed := strings.TrimLeft(lower, "0")
		if trimmed == "" {
			return "0"
		}
		return trimmed
	}

	if lower == "x" || lower == "z" || lower == "u" || lower == "-" {
		return "x"
	}
	return strings.TrimSpace(lower)
}

func isAllBinary(s string) bool {
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// NormalizeTime converts a raw VCD time value to nanoseconds given the
// dump's $timescale string, so two dumps recorded at different timescales
// still compare on a common footing.
func NormalizeTime(value uint64, timescale string) uint64 {
	lower := strings.ToLower(strings.TrimSpace(timescale))
	// A leading magnitude ("10ns", "100 ps") scales the raw value first.
	var magnitude uint64
	for i := 0; i < len(lower) && lower[i] >= '0' && lower[i] <= '9'; i++ {
		magnitude = magnitude*10 + uint64(lower[i]-'0')
	}
	if magnitude > 0 {
		value *= magnitude
	}
	switch {
	case strings.Contains(lower, "fs"):
		return value / 1_000_000
	case strings.Contains(lower, "ps"):
		return value / 1_000
	case strings.Contains(lower, "us"):
		return value * 1_000
	default:
		// "ns", or no recognized unit: assume already nanoseconds.
		return value
	}
}
