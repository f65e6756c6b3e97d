package vcdtracker

import "github.com/brunosmmm/hdltools-go/pkg/trigger"

// ConditionGate holds an optional precondition trigger that must fire
// before tracking starts, and an optional postcondition trigger that ends
// tracking once it fires. Both are ordinary SimpleTriggers (one descriptor
// level per precondition/postcondition, so any one of several alternatives
// satisfies that level).
type ConditionGate struct {
	pre  *trigger.SimpleTrigger
	post *trigger.SimpleTrigger

	waitingPre  bool
	waitingPost bool
	done        bool
}

// NewConditionGate builds a gate. Either set of descriptors may be empty;
// preconditions, if given, arm immediately and must fire before the gate
// opens, postconditions, if given, arm only once preconditions have fired
// (or immediately, if there were none) and close the gate once satisfied.
func NewConditionGate(preconditions, postconditions []*trigger.Descriptor) (*ConditionGate, error) {
	g := &ConditionGate{}
	if len(preconditions) > 0 {
		g.pre = trigger.NewSimpleTrigger([][]*trigger.Descriptor{preconditions})
		g.waitingPre = true
		if err := g.pre.Arm(); err != nil {
			return nil, err
		}
	}
	if len(postconditions) > 0 {
		g.post = trigger.NewSimpleTrigger([][]*trigger.Descriptor{postconditions})
		if !g.waitingPre {
			g.waitingPost = true
			if err := g.post.Arm(); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// WaitingPrecondition reports whether tracking is still gated behind an
// unmet precondition.
func (g *ConditionGate) WaitingPrecondition() bool { return g.waitingPre }

// Done reports whether the postcondition has fired and tracking should end.
func (g *ConditionGate) Done() bool { return g.done }

// Observe feeds one value change to whichever gate trigger is currently
// active, advancing preconditions first and, once they are satisfied,
// arming and advancing postconditions.
func (g *ConditionGate) Observe(scope, name, value string, time uint64) error {
	if g.waitingPre {
		if g.pre.Advance(scope, name, value, time) {
			g.waitingPre = false
			if g.post != nil {
				g.waitingPost = true
				if err := g.post.Arm(); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if g.waitingPost {
		if g.post.Advance(scope, name, value, time) {
			g.waitingPost = false
			g.done = true
		}
	}
	return nil
}
