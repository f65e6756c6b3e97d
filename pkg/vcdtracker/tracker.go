package vcdtracker

import (
	"fmt"
	"regexp"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
	"github.com/brunosmmm/hdltools-go/pkg/pattern"
	"github.com/brunosmmm/hdltools-go/pkg/trigger"
	"github.com/brunosmmm/hdltools-go/pkg/vcd"
)

// ScopeRestriction narrows a tracked endpoint to a scope, optionally
// including everything nested beneath it.
type ScopeRestriction struct {
	Scope     vcd.Scope
	Inclusive bool
}

func (r *ScopeRestriction) matches(s vcd.Scope) bool {
	if r == nil {
		return false
	}
	if r.Scope.Equal(s) {
		return true
	}
	return r.Inclusive && r.Scope.Contains(s)
}

// Config configures a VCDValueTracker.
type Config struct {
	Track          *pattern.Pattern
	TrackAll       bool
	RestrictSrc    *ScopeRestriction
	RestrictDest   *ScopeRestriction
	IgnoreSignals  []string // regex patterns
	IgnoreScopes   []string // regex patterns
	SrcAnchor      string   // regex pattern, empty for none
	DestAnchor     string   // regex pattern, empty for none
	SrcOneshot     bool
	TimeWindow     *TimeWindow
	Preconditions  []*trigger.Descriptor
	Postconditions []*trigger.Descriptor
}

// VCDValueTracker tracks a tagged value as it propagates through a design's
// hierarchy: it records every time a value change matches Track, and, when
// source/destination scope restrictions are configured, flags the probable
// source and destination change indices within the tracked history.
type VCDValueTracker struct {
	cfg Config

	hierarchy *Hierarchy
	window    *TimeWindow
	gate      *ConditionGate

	trackHistory     *History // matches after gating/restriction bookkeeping
	valueHistory     *History // every value match, gate-independent
	fullHistory      *History // every change, only populated when TrackAll
	ignoreSignal     []*regexp.Regexp
	ignoreScope      []*regexp.Regexp
	srcAnchor        *regexp.Regexp
	destAnchor       *regexp.Regexp
	maybeSrc         *int
	maybeDest        *int
	currentTime      uint64
}

// NewVCDValueTracker builds a tracker from cfg.
func NewVCDValueTracker(cfg Config) (*VCDValueTracker, error) {
	if cfg.Track == nil {
		return nil, &herrors.InvalidInputError{Message: "Track pattern is required"}
	}
	gate, err := NewConditionGate(cfg.Preconditions, cfg.Postconditions)
	if err != nil {
		return nil, err
	}
	t := &VCDValueTracker{
		cfg:          cfg,
		hierarchy:    NewHierarchy(),
		window:       cfg.TimeWindow,
		gate:         gate,
		trackHistory: NewHistory(),
		valueHistory: NewHistory(),
		fullHistory:  NewHistory(),
	}
	for _, pat := range cfg.IgnoreSignals {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("vcdtracker: ignore_signals %q: %w", pat, err)
		}
		t.ignoreSignal = append(t.ignoreSignal, re)
	}
	for _, pat := range cfg.IgnoreScopes {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("vcdtracker: ignore_scopes %q: %w", pat, err)
		}
		t.ignoreScope = append(t.ignoreScope, re)
	}
	if cfg.SrcAnchor != "" {
		re, err := regexp.Compile(cfg.SrcAnchor)
		if err != nil {
			return nil, fmt.Errorf("vcdtracker: src anchor %q: %w", cfg.SrcAnchor, err)
		}
		t.srcAnchor = re
	}
	if cfg.DestAnchor != "" {
		re, err := regexp.Compile(cfg.DestAnchor)
		if err != nil {
			return nil, fmt.Errorf("vcdtracker: dest anchor %q: %w", cfg.DestAnchor, err)
		}
		t.destAnchor = re
	}
	return t, nil
}

// Handlers returns the pkg/vcd.Handlers that drive this tracker from a
// Parser. Bind with vcd.NewParser(t.Handlers()) then call ParseFile/Parse.
func (t *VCDValueTracker) Handlers() vcd.Handlers {
	return vcd.Handlers{
		VariableDecl: t.hierarchy.Observe,
		InitialValue: func(id, value string) { t.observe(id, value, 0) },
		ValueChange:  func(id, value string, time uint64) { t.currentTime = time; t.observe(id, value, time) },
	}
}

func (t *VCDValueTracker) observe(id, value string, time uint64) {
	v, ok := t.hierarchy.Lookup(id)
	if !ok {
		return
	}
	scope := v.Scope.String()

	if t.cfg.TrackAll {
		t.fullHistory.Add(scope, v.Name, time)
	}
	if !t.cfg.Track.Match(value) {
		return
	}
	t.valueHistory.Add(scope, v.Name, time)

	timeValid := t.window.Valid(time)
	waitingPre := t.gate.WaitingPrecondition()
	if err := t.gate.Observe(scope, v.Name, value, time); err != nil {
		return
	}
	if !timeValid || waitingPre {
		return
	}
	if t.ignoredSignal(v.Name) {
		return
	}

	inSrc := t.cfg.RestrictSrc != nil && t.cfg.RestrictSrc.matches(v.Scope)
	inDest := t.cfg.RestrictDest != nil && t.cfg.RestrictDest.matches(v.Scope)
	if t.cfg.RestrictSrc != nil && !inSrc && t.cfg.RestrictDest != nil && !inDest {
		return
	}

	idx := t.trackHistory.Add(scope, v.Name, time)

	if inSrc {
		t.considerSrc(v.Name, idx)
	}
	if inDest {
		t.considerDest(v.Name, idx)
	}
}

func (t *VCDValueTracker) considerSrc(name string, idx int) {
	if t.maybeDest != nil {
		return
	}
	if t.srcAnchor != nil {
		if !t.srcAnchor.MatchString(name) {
			return
		}
	}
	if t.cfg.SrcOneshot && t.maybeSrc != nil {
		return
	}
	i := idx
	t.maybeSrc = &i
}

func (t *VCDValueTracker) considerDest(name string, idx int) {
	if t.maybeDest != nil || t.maybeSrc == nil {
		return
	}
	if t.destAnchor != nil && !t.destAnchor.MatchString(name) {
		return
	}
	i := idx
	t.maybeDest = &i
}

func (t *VCDValueTracker) ignoredSignal(name string) bool {
	for _, re := range t.ignoreSignal {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// History returns the restricted/gated tracking history.
func (t *VCDValueTracker) History() *History { return t.trackHistory }

// FullHistory returns the complete change history when TrackAll is set,
// otherwise it returns the same restricted history as History.
func (t *VCDValueTracker) FullHistory() *History {
	if t.cfg.TrackAll {
		return t.fullHistory
	}
	return t.trackHistory
}

// FullValueHistory returns every value-pattern match, independent of time
// window, gating, or scope restriction.
func (t *VCDValueTracker) FullValueHistory() *History { return t.valueHistory }

// MaybeSrc returns the index into History of the probable source change, if
// one has been identified.
func (t *VCDValueTracker) MaybeSrc() (int, bool) {
	if t.maybeSrc == nil {
		return 0, false
	}
	return *t.maybeSrc, true
}

// MaybeDest returns the index into History of the probable destination
// change, if one has been identified.
func (t *VCDValueTracker) MaybeDest() (int, bool) {
	if t.maybeDest == nil {
		return 0, false
	}
	return *t.maybeDest, true
}
