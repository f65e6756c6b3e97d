package vcdtracker

import (
	"testing"

	"github.com/brunosmmm/hdltools-go/pkg/pattern"
	"github.com/brunosmmm/hdltools-go/pkg/trigger"
	"github.com/brunosmmm/hdltools-go/pkg/vcd"
)

func declareVariable(t *testing.T, h vcd.Handlers, id, name string, scope vcd.Scope) {
	t.Helper()
	h.VariableDecl(&vcd.Variable{ID: id, Type: "wire", Width: 1, Name: name, Scope: scope})
}

func TestVCDValueTrackerRecordsMatches(t *testing.T) {
	track, err := pattern.New("1")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	tr, err := NewVCDValueTracker(Config{Track: track})
	if err != nil {
		t.Fatalf("NewVCDValueTracker: %v", err)
	}
	h := tr.Handlers()
	declareVariable(t, h, "!", "clk", vcd.Scope{"top"})

	h.InitialValue("!", "0")
	h.ValueChange("!", "1", 10)
	h.ValueChange("!", "0", 20)
	h.ValueChange("!", "1", 30)

	if got := tr.History().Len(); got != 2 {
		t.Fatalf("expected 2 matches, got %d", got)
	}
	entries := tr.History().All()
	if entries[0].Time != 10 || entries[1].Time != 30 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestVCDValueTrackerTimeWindow(t *testing.T) {
	track, err := pattern.New("1")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	start, end := uint64(15), uint64(25)
	tr, err := NewVCDValueTracker(Config{
		Track:      track,
		TimeWindow: NewTimeWindow(&start, &end),
	})
	if err != nil {
		t.Fatalf("NewVCDValueTracker: %v", err)
	}
	h := tr.Handlers()
	declareVariable(t, h, "!", "clk", vcd.Scope{"top"})

	h.ValueChange("!", "1", 10) // before window
	h.ValueChange("!", "1", 20) // inside window
	h.ValueChange("!", "1", 30) // after window

	if got := tr.History().Len(); got != 1 {
		t.Fatalf("expected 1 windowed match, got %d", got)
	}
	if got := tr.FullValueHistory().Len(); got != 3 {
		t.Fatalf("expected 3 ungated value matches, got %d", got)
	}
}

func TestVCDValueTrackerSrcDestRestriction(t *testing.T) {
	track, err := pattern.New("1")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	tr, err := NewVCDValueTracker(Config{
		Track:        track,
		RestrictSrc:  &ScopeRestriction{Scope: vcd.Scope{"top", "a"}},
		RestrictDest: &ScopeRestriction{Scope: vcd.Scope{"top", "b"}},
	})
	if err != nil {
		t.Fatalf("NewVCDValueTracker: %v", err)
	}
	h := tr.Handlers()
	declareVariable(t, h, "s", "sig", vcd.Scope{"top", "a"})
	declareVariable(t, h, "d", "sig", vcd.Scope{"top", "b"})

	h.ValueChange("s", "1", 5)
	if _, ok := tr.MaybeSrc(); !ok {
		t.Fatal("expected maybe_src to be set after a source-scope match")
	}
	if _, ok := tr.MaybeDest(); ok {
		t.Fatal("expected maybe_dest unset before any destination-scope match")
	}

	h.ValueChange("d", "1", 15)
	if _, ok := tr.MaybeDest(); !ok {
		t.Fatal("expected maybe_dest to be set after a destination-scope match")
	}
}

func TestVCDValueTrackerIgnoresSignal(t *testing.T) {
	track, err := pattern.New("1")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	tr, err := NewVCDValueTracker(Config{
		Track:         track,
		IgnoreSignals: []string{"^noise.*"},
	})
	if err != nil {
		t.Fatalf("NewVCDValueTracker: %v", err)
	}
	h := tr.Handlers()
	declareVariable(t, h, "n", "noise_sig", vcd.Scope{"top"})
	h.ValueChange("n", "1", 1)
	if got := tr.History().Len(); got != 0 {
		t.Fatalf("expected ignored signal to produce no tracked entries, got %d", got)
	}
}

func TestVCDValueTrackerTrackAll(t *testing.T) {
	track, err := pattern.New("1")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	tr, err := NewVCDValueTracker(Config{Track: track, TrackAll: true})
	if err != nil {
		t.Fatalf("NewVCDValueTracker: %v", err)
	}
	h := tr.Handlers()
	declareVariable(t, h, "!", "clk", vcd.Scope{"top"})
	h.ValueChange("!", "0", 1)
	h.ValueChange("!", "1", 2)
	if got := tr.FullHistory().Len(); got != 2 {
		t.Fatalf("expected full history to record every change, got %d", got)
	}
}

func TestVCDValueTrackerPreconditionGatesTracking(t *testing.T) {
	track, err := pattern.New("1")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	pre, err := trigger.NewDescriptor("top::armed", "1")
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	tr, err := NewVCDValueTracker(Config{
		Track:         track,
		Preconditions: []*trigger.Descriptor{pre},
	})
	if err != nil {
		t.Fatalf("NewVCDValueTracker: %v", err)
	}
	h := tr.Handlers()
	declareVariable(t, h, "s", "sig", vcd.Scope{"top"})
	declareVariable(t, h, "a", "armed", vcd.Scope{"top"})

	h.ValueChange("s", "1", 1)
	if got := tr.History().Len(); got != 0 {
		t.Fatalf("expected no tracked entries before precondition fires, got %d", got)
	}

	h.ValueChange("a", "1", 2)
	h.ValueChange("s", "1", 3)
	if got := tr.History().Len(); got != 1 {
		t.Fatalf("expected 1 tracked entry after precondition fires, got %d", got)
	}
}

func TestVCDEventTrackerCountsFirings(t *testing.T) {
	d, err := trigger.NewDescriptor("top::btn", "1")
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	tr, err := NewVCDEventTracker([]*trigger.Descriptor{d}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewVCDEventTracker: %v", err)
	}
	h := tr.Handlers()
	declareVariable(t, h, "b", "btn", vcd.Scope{"top"})

	h.ValueChange("b", "1", 1)
	h.ValueChange("b", "0", 2)
	h.ValueChange("b", "1", 3)

	if got := tr.Count("top", "btn"); got != 2 {
		t.Fatalf("expected 2 firings, got %d", got)
	}
	if got := tr.Total(); got != 2 {
		t.Fatalf("expected total 2, got %d", got)
	}
	if got := tr.History().Len(); got != 2 {
		t.Fatalf("expected 2 history entries, got %d", got)
	}
}
