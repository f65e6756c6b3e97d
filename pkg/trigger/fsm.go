package trigger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// Event is one trigger firing's lifecycle identity: an id minted lazily on
// first advance past the initial level, plus the simulation time it
// started and (once known) ended.
type Event struct {
	ID        uuid.UUID
	StartTime uint64
	EndTime   uint64
	HasEnded  bool
}

// EventCallback observes a trigger lifecycle transition.
type EventCallback func(ev *Event)

// FireCallback observes the instant a trigger condition is satisfied.
type FireCallback func(ev *Event)

// FSM is the callback and armed/disarmed bookkeeping shared by every
// trigger kind (SimpleTrigger, ConditionTableTrigger). Callbacks may not be
// rebound while the FSM is armed, matching the source toolkit's
// VCDTriggerFSM, which raises on any callback assignment during an active
// watch.
type FSM struct {
	armed     bool
	triggered bool

	current *Event
	last    *Event

	onEventStart   EventCallback
	onEventEnd     EventCallback
	onEventTimeout EventCallback
	onTrigger      FireCallback
}

// IsArmed reports whether the FSM is currently watching for a condition.
func (f *FSM) IsArmed() bool { return f.armed }

// Triggered reports whether the trigger has fired since the last Arm.
func (f *FSM) Triggered() bool { return f.triggered }

// Arm begins watching. Re-arming an already-armed FSM is a no-op error,
// matching the source toolkit's refusal to silently restart.
func (f *FSM) Arm() error {
	if f.armed {
		return &herrors.TriggerStateError{Message: "already armed"}
	}
	f.armed = true
	f.triggered = false
	return nil
}

// Disarm stops watching, clearing any in-progress event without firing it.
func (f *FSM) Disarm() error {
	if !f.armed {
		return &herrors.TriggerStateError{Message: "not armed"}
	}
	f.armed = false
	f.current = nil
	f.triggered = false
	return nil
}

func (f *FSM) requireDisarmed(what string) error {
	if f.armed {
		return &herrors.TriggerStateError{Message: fmt.Sprintf("cannot set %s callback while armed", what)}
	}
	return nil
}

// SetEventStartCallback registers the callback fired the first time an
// event begins (first condition match after a disarmed/reset state).
func (f *FSM) SetEventStartCallback(cb EventCallback) error {
	if err := f.requireDisarmed("event-start"); err != nil {
		return err
	}
	f.onEventStart = cb
	return nil
}

// SetEventEndCallback registers the callback fired when an event concludes,
// successfully or by timeout.
func (f *FSM) SetEventEndCallback(cb EventCallback) error {
	if err := f.requireDisarmed("event-end"); err != nil {
		return err
	}
	f.onEventEnd = cb
	return nil
}

// SetEventTimeoutCallback registers the callback fired when an in-progress
// event exceeds its configured state timeout.
func (f *FSM) SetEventTimeoutCallback(cb EventCallback) error {
	if err := f.requireDisarmed("event-timeout"); err != nil {
		return err
	}
	f.onEventTimeout = cb
	return nil
}

// SetTriggerCallback registers the callback fired at the instant the full
// trigger condition is satisfied.
func (f *FSM) SetTriggerCallback(cb FireCallback) error {
	if err := f.requireDisarmed("trigger"); err != nil {
		return err
	}
	f.onTrigger = cb
	return nil
}

// eventStarts lazily mints the current event's id and fires the
// event-start callback exactly once per event.
func (f *FSM) eventStarts(time uint64) *Event {
	if f.current == nil {
		f.current = &Event{ID: uuid.New(), StartTime: time}
		if f.onEventStart != nil {
			f.onEventStart(f.current)
		}
	}
	return f.current
}

// eventEnds closes out the current event, firing the event-end callback,
// and moves it into last.
func (f *FSM) eventEnds(time uint64) {
	if f.current == nil {
		return
	}
	f.current.EndTime = time
	f.current.HasEnded = true
	if f.onEventEnd != nil {
		f.onEventEnd(f.current)
	}
	f.last = f.current
	f.current = nil
}

// eventTimeout fires the timeout callback and ends the event without ever
// firing the trigger callback.
func (f *FSM) eventTimeout(time uint64) {
	if f.current == nil {
		return
	}
	if f.onEventTimeout != nil {
		f.onEventTimeout(f.current)
	}
	f.eventEnds(time)
}

// fireTrigger mints an event if one is not already in progress, fires the
// trigger callback, and immediately ends the event (firing the event-end
// callback, if one is registered). disarm controls
// whether the FSM also stops watching afterward, matching the source
// toolkit's _fire_trigger(disarm=True) default: a fired trigger does not
// keep watching on its own, the caller must explicitly Arm() again.
func (f *FSM) fireTrigger(time uint64, disarm bool) {
	ev := f.eventStarts(time)
	f.triggered = true
	if f.onTrigger != nil {
		f.onTrigger(ev)
	}
	f.eventEnds(time)
	if disarm {
		f.armed = false
	}
}

// LastEvent returns the most recently concluded event, if any.
func (f *FSM) LastEvent() (*Event, bool) {
	if f.last == nil {
		return nil, false
	}
	return f.last, true
}

// CurrentEvent returns the in-progress event, if any.
func (f *FSM) CurrentEvent() (*Event, bool) {
	if f.current == nil {
		return nil, false
	}
	return f.current, true
}
