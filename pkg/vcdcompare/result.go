package vcdcompare

import "fmt"

// Change is one normalized (time, value) observation on a signal.
type Change struct {
	Time  uint64
	Value string
}

// SignalDetail reports per-signal change counts and whether they matched.
type SignalDetail struct {
	File1Changes int
	File2Changes int
	Matches      bool
}

// Result is the outcome of comparing two VCD dumps.
type Result struct {
	Equivalent   bool
	Mismatches   []string
	Detail       map[string]*SignalDetail
	File1Signals []string
	File2Signals []string
}

func (r *Result) String() string {
	if r.Equivalent {
		return fmt.Sprintf("VCD files are equivalent (%d signals compared)", len(r.File1Signals))
	}
	return fmt.Sprintf("VCD files differ (%d mismatches found)", len(r.Mismatches))
}

func newResult() *Result {
	return &Result{Detail: map[string]*SignalDetail{}}
}

func (r *Result) detailFor(signal string) *SignalDetail {
	d, ok := r.Detail[signal]
	if !ok {
		d = &SignalDetail{Matches: true}
		r.Detail[signal] = d
	}
	return d
}

func (r *Result) addMismatch(format string, args ...interface{}) {
	r.Mismatches = append(r.Mismatches, fmt.Sprintf(format, args...))
}
