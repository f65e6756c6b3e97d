package vcdcompare

import (
	"fmt"
	"os"
	"sort"

	"github.com/brunosmmm/hdltools-go/pkg/vcd"
)

// Mode selects how CompareFiles loads its two inputs.
type Mode int

const (
	// ModeAuto picks Direct or Streaming based on combined file size
	// against Options.MaxMemoryMB.
	ModeAuto Mode = iota
	// ModeDirect loads each dump fully (via the pkg/vcd compiler's
	// Compiled representation) before comparing.
	ModeDirect
	// ModeStreaming parses both files directly into per-signal change
	// lists without the intermediate Compiled/gob representation; like
	// ModeDirect it parses each file once.
	ModeStreaming
)

// Options configures a comparison run.
type Options struct {
	// TimeTolerance is the maximum normalized-time difference (in
	// nanoseconds) between two changes for them to still be considered
	// simultaneous.
	TimeTolerance uint64
	// MaxMemoryMB bounds ModeAuto's direct-mode threshold: when the
	// combined input size exceeds it, streaming mode is used instead.
	// Zero disables auto-selection's size check, always choosing direct
	// mode under ModeAuto.
	MaxMemoryMB int
	Mode        Mode
}

// CompareFiles compares two VCD dumps for functional equivalence.
func CompareFiles(path1, path2 string, opts Options) (*Result, error) {
	mode := opts.Mode
	if mode == ModeAuto {
		mode = selectMode(path1, path2, opts.MaxMemoryMB)
	}
	if mode == ModeStreaming {
		return compareStreaming(path1, path2, opts)
	}
	return compareDirect(path1, path2, opts)
}

func selectMode(path1, path2 string, maxMemoryMB int) Mode {
	if maxMemoryMB <= 0 {
		return ModeDirect
	}
	size1, err1 := fileSize(path1)
	size2, err2 := fileSize(path2)
	if err1 != nil || err2 != nil {
		return ModeDirect
	}
	totalMB := float64(size1+size2) / (1024 * 1024)
	if totalMB > float64(maxMemoryMB) {
		return ModeStreaming
	}
	return ModeDirect
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// compareDirect loads each dump through vcd.Compile and compares the
// resulting per-variable histories.
func compareDirect(path1, path2 string, opts Options) (*Result, error) {
	c1, err := vcd.Compile(path1)
	if err != nil {
		return nil, fmt.Errorf("vcdcompare: %w", err)
	}
	c2, err := vcd.Compile(path2)
	if err != nil {
		return nil, fmt.Errorf("vcdcompare: %w", err)
	}

	changes1 := map[string][]Change{}
	for _, v := range c1.Variables {
		addCompiledChanges(changes1, v, c1.Timescale)
	}
	changes2 := map[string][]Change{}
	for _, v := range c2.Variables {
		addCompiledChanges(changes2, v, c2.Timescale)
	}
	return compareChangeSets(changes1, changes2, opts.TimeTolerance), nil
}

func addCompiledChanges(into map[string][]Change, v vcd.CompiledVariable, timescale string) {
	name := NormalizeSignalName(v.Name)
	for i, t := range v.Times {
		into[name] = append(into[name], Change{
			Time:  NormalizeTime(t, timescale),
			Value: v.Values[i],
		})
	}
}

// compareStreaming parses both files directly into per-signal change lists
// via one vcd.Parser pass each, skipping the Compiled/gob round trip.
func compareStreaming(path1, path2 string, opts Options) (*Result, error) {
	changes1, ts1, err := collectChanges(path1)
	if err != nil {
		return nil, fmt.Errorf("vcdcompare: %w", err)
	}
	changes2, ts2, err := collectChanges(path2)
	if err != nil {
		return nil, fmt.Errorf("vcdcompare: %w", err)
	}

	norm1 := map[string][]Change{}
	for name, cs := range changes1 {
		normName := NormalizeSignalName(name)
		for _, c := range cs {
			norm1[normName] = append(norm1[normName], Change{Time: NormalizeTime(c.Time, ts1), Value: c.Value})
		}
	}
	norm2 := map[string][]Change{}
	for name, cs := range changes2 {
		normName := NormalizeSignalName(name)
		for _, c := range cs {
			norm2[normName] = append(norm2[normName], Change{Time: NormalizeTime(c.Time, ts2), Value: c.Value})
		}
	}
	return compareChangeSets(norm1, norm2, opts.TimeTolerance), nil
}

func collectChanges(path string) (map[string][]Change, string, error) {
	names := map[string]string{} // id -> name
	out := map[string][]Change{}
	var timescale string

	p := vcd.NewParser(vcd.Handlers{
		VariableDecl: func(v *vcd.Variable) {
			if _, ok := names[v.ID]; !ok {
				names[v.ID] = v.Name
			}
		},
		InitialValue: func(id, value string) {
			if name, ok := names[id]; ok {
				out[name] = append(out[name], Change{Time: 0, Value: value})
			}
		},
		ValueChange: func(id, value string, time uint64) {
			if name, ok := names[id]; ok {
				out[name] = append(out[name], Change{Time: time, Value: value})
			}
		},
	})
	if err := p.ParseFile(path); err != nil {
		return nil, "", err
	}
	timescale = p.Timescale
	return out, timescale, nil
}

// compareChangeSets is the shared comparison core for both modes: signals
// sharing a normalized name are compared change-by-change in time order;
// a differing change count, a time difference beyond tolerance, or a
// differing normalized value each produce one mismatch entry.
func compareChangeSets(changes1, changes2 map[string][]Change, tolerance uint64) *Result {
	r := newResult()
	for name := range changes1 {
		r.File1Signals = append(r.File1Signals, name)
	}
	for name := range changes2 {
		r.File2Signals = append(r.File2Signals, name)
	}
	sort.Strings(r.File1Signals)
	sort.Strings(r.File2Signals)

	all := map[string]bool{}
	for name := range changes1 {
		all[name] = true
	}
	for name := range changes2 {
		all[name] = true
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cs1 := sortedChanges(changes1[name])
		cs2 := sortedChanges(changes2[name])
		detail := r.detailFor(name)
		detail.File1Changes = len(cs1)
		detail.File2Changes = len(cs2)

		if len(cs1) != len(cs2) {
			detail.Matches = false
			r.addMismatch("signal %q: different number of changes (file1: %d, file2: %d)",
				name, len(cs1), len(cs2))
			continue
		}
		for i := range cs1 {
			c1, c2 := cs1[i], cs2[i]
			if timeDiff(c1.Time, c2.Time) > tolerance {
				detail.Matches = false
				r.addMismatch("signal %q change %d: time mismatch (file1: %d, file2: %d)",
					name, i, c1.Time, c2.Time)
			}
			v1, v2 := NormalizeValue(c1.Value), NormalizeValue(c2.Value)
			if v1 != v2 {
				detail.Matches = false
				r.addMismatch("signal %q at time %d: value mismatch (file1: %q, file2: %q)",
					name, c1.Time, c1.Value, c2.Value)
			}
		}
	}

	r.Equivalent = len(r.Mismatches) == 0
	return r
}

func sortedChanges(cs []Change) []Change {
	out := append([]Change(nil), cs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func timeDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
