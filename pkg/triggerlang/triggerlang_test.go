package triggerlang

import (
	"strings"
	"testing"
)

func TestParseStringSimpleChain(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	doc, err := p.ParseString("cpu::state == 1 => cpu::state == 2")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	conds := doc.Conds()
	if len(conds) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(conds))
	}
	if conds[0].Scope != "cpu" || conds[0].Name != "state" || conds[0].Value != "1" {
		t.Fatalf("unexpected first condition: %+v", conds[0])
	}
	ops := doc.Ops()
	if len(ops) != 1 || ops[0] != "=>" {
		t.Fatalf("unexpected ops: %v", ops)
	}
}

func TestParseStringSliceAndNegate(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	doc, err := p.ParseString("bus::data[3:0] != 0xf")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	conds := doc.Conds()
	if len(conds) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(conds))
	}
	c := conds[0]
	if c.Op != "!=" {
		t.Fatalf("expected !=, got %q", c.Op)
	}
	if c.Slice == nil || c.Slice.High != "3" || c.Slice.Low != "0" {
		t.Fatalf("unexpected slice: %+v", c.Slice)
	}
}

func TestBuildAllMode(t *testing.T) {
	res, err := Build("cpu::a == 1 && cpu::b == 2", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Mode != ModeAll {
		t.Fatalf("expected ModeAll, got %v", res.Mode)
	}
	if len(res.Descriptors) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(res.Descriptors))
	}
	ct := res.ConditionTable()
	if ct == nil {
		t.Fatal("ConditionTable returned nil")
	}
}

func TestBuildSeqMode(t *testing.T) {
	res, err := Build("cpu::a == 1 => cpu::a == 2 => cpu::a == 3", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Mode != ModeSeq {
		t.Fatalf("expected ModeSeq, got %v", res.Mode)
	}
	st := res.Simple()
	if len(st.Levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(st.Levels))
	}
}

func TestBuildRejectsMixedMode(t *testing.T) {
	_, err := Build("cpu::a == 1 && cpu::b == 2 => cpu::c == 3", nil)
	if err == nil {
		t.Fatal("expected an error for mixed-mode chain")
	}
	if !strings.Contains(err.Error(), "mixes") {
		t.Fatalf("expected a mixed-mode message, got %v", err)
	}
}

func TestBuildNegatedCondition(t *testing.T) {
	res, err := Build("cpu::state != 5", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d := res.Descriptors[0]
	if !d.Negate {
		t.Fatal("expected Negate to be set for != condition")
	}
	if !d.Match("cpu", "state", "3") {
		t.Fatal("expected state==3 to satisfy != 5")
	}
	if d.Match("cpu", "state", "5h") {
		t.Fatal("expected state==5 to fail != 5")
	}
}

func TestBuildSlicePadsDontCare(t *testing.T) {
	resolver := func(scope, name string) (int, error) { return 8, nil }
	res, err := Build("bus::data[3:0] == 0xf", resolver)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d := res.Descriptors[0]
	// bits 4..7 are don't-care, bits 0..3 must be 1111.
	if !d.Match("bus", "data", "0xff") {
		t.Fatal("expected 0xff (low nibble all 1) to match")
	}
	if !d.Match("bus", "data", "0x0f") {
		t.Fatal("expected 0x0f to match")
	}
	if d.Match("bus", "data", "0x00") {
		t.Fatal("expected 0x00 (low nibble clear) not to match")
	}
}

func TestBuildSliceMissingResolverFails(t *testing.T) {
	_, err := Build("bus::data[3:0] == 0xf", nil)
	if err == nil {
		t.Fatal("expected an error when no width resolver is supplied for a sliced condition")
	}
}

func TestBuildUnscopedCondition(t *testing.T) {
	res, err := Build("reset == 1", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d := res.Descriptors[0]
	if d.Scope != "" || d.Name != "reset" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
}
