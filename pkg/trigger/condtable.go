package trigger

// ConditionTableTrigger is an unordered trigger: a fixed set of descriptors
// each with a current truth value, re-evaluated independently as matching
// changes arrive, firing the instant every condition holds true
// simultaneously. This matches the source toolkit's ConditionTableTrigger
// (_condtable dict of cond->bool, fires when unmet_conditions == 0).
type ConditionTableTrigger struct {
	FSM

	descriptors []*Descriptor
	met         map[*Descriptor]bool
}

// NewConditionTableTrigger builds a trigger over an unordered condition set.
func NewConditionTableTrigger(descriptors []*Descriptor) *ConditionTableTrigger {
	met := make(map[*Descriptor]bool, len(descriptors))
	for _, d := range descriptors {
		met[d] = false
	}
	return &ConditionTableTrigger{descriptors: descriptors, met: met}
}

// Advance feeds one observed value change to every descriptor watching that
// variable, updating each one's truth value independently, then checks
// whether all descriptors now hold. Returns true exactly when this change
// causes the trigger to fire.
func (t *ConditionTableTrigger) Advance(scope, name, value string, time uint64) bool {
	if !t.IsArmed() {
		return false
	}
	touched := false
	for _, d := range t.descriptors {
		if !d.MatchVar(scope, name) {
			continue
		}
		touched = true
		t.met[d] = d.MatchValue(value)
	}
	if !touched {
		return false
	}

	unmet := 0
	anyMet := false
	for _, ok := range t.met {
		if ok {
			anyMet = true
		} else {
			unmet++
		}
	}
	if anyMet {
		t.eventStarts(time)
	}
	if unmet > 0 {
		return false
	}
	t.fireTrigger(time, true)
	t.Reset()
	return true
}

// Reset marks every condition unmet again without firing callbacks.
func (t *ConditionTableTrigger) Reset() {
	for d := range t.met {
		t.met[d] = false
	}
	t.current = nil
}

// UnmetCount returns how many descriptors are not currently satisfied.
func (t *ConditionTableTrigger) UnmetCount() int {
	n := 0
	for _, ok := range t.met {
		if !ok {
			n++
		}
	}
	return n
}
