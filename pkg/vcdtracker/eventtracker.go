package vcdtracker

import (
	"github.com/brunosmmm/hdltools-go/pkg/trigger"
	"github.com/brunosmmm/hdltools-go/pkg/vcd"
)

// VCDEventTracker composes a set of named events, each a trigger.Descriptor
// alternative on a single unordered level, against one re-arming
// SimpleTrigger: every time any of the descriptors matches an observed
// change, the trigger fires and is immediately re-armed, so it counts every
// occurrence across the whole stream rather than stopping at the first.
type VCDEventTracker struct {
	hierarchy *Hierarchy
	window    *TimeWindow
	gate      *ConditionGate

	events  []*trigger.Descriptor
	fsm     *trigger.SimpleTrigger
	history *History
	counts  map[string]int
}

// NewVCDEventTracker builds a tracker over events, each descriptor standing
// for one named event condition.
func NewVCDEventTracker(events []*trigger.Descriptor, window *TimeWindow, preconditions, postconditions []*trigger.Descriptor) (*VCDEventTracker, error) {
	gate, err := NewConditionGate(preconditions, postconditions)
	if err != nil {
		return nil, err
	}
	fsm := trigger.NewSimpleTrigger([][]*trigger.Descriptor{events})
	if err := fsm.Arm(); err != nil {
		return nil, err
	}
	return &VCDEventTracker{
		hierarchy: NewHierarchy(),
		window:    window,
		gate:      gate,
		events:    events,
		fsm:       fsm,
		history:   NewHistory(),
		counts:    map[string]int{},
	}, nil
}

// Handlers returns the pkg/vcd.Handlers that drive this tracker.
func (t *VCDEventTracker) Handlers() vcd.Handlers {
	return vcd.Handlers{
		VariableDecl: t.hierarchy.Observe,
		ValueChange:  func(id, value string, time uint64) { t.observe(id, value, time) },
	}
}

func (t *VCDEventTracker) observe(id, value string, time uint64) {
	v, ok := t.hierarchy.Lookup(id)
	if !ok {
		return
	}
	scope := v.Scope.String()
	if err := t.gate.Observe(scope, v.Name, value, time); err != nil {
		return
	}
	if !t.window.Valid(time) || t.gate.WaitingPrecondition() {
		return
	}

	if t.fsm.Advance(scope, v.Name, value, time) {
		// Firing disarms the FSM (matching the source toolkit's
		// _fire_trigger(disarm=True)), so it must be explicitly re-armed
		// to count the next occurrence.
		t.history.Add(scope, v.Name, time)
		t.counts[scope+"::"+v.Name]++
		if err := t.fsm.Arm(); err != nil {
			return
		}
	}
}

// History returns every recorded event firing, in order.
func (t *VCDEventTracker) History() *History { return t.history }

// Count returns how many times the named (scope, signal) event has fired.
func (t *VCDEventTracker) Count(scope, signal string) int {
	return t.counts[scope+"::"+signal]
}

// Total returns the total number of event firings across every event.
func (t *VCDEventTracker) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}
