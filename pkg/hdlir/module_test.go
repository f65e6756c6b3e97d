package hdlir

import (
	"errors"
	"testing"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

func TestModuleAddPortsRejectsDuplicate(t *testing.T) {
	m := NewModule("counter")
	scalar, _ := NewVectorDescriptorFromInt(0, 0)
	p, err := InputPort("clk", scalar)
	if err != nil {
		t.Fatalf("InputPort: %v", err)
	}
	if err := m.AddPorts(p); err != nil {
		t.Fatalf("AddPorts: %v", err)
	}
	dup, _ := InputPort("clk", scalar)
	if err := m.AddPorts(dup); err == nil {
		t.Fatalf("expected duplicate port error")
	}
}

func TestModuleGetPortNotFound(t *testing.T) {
	m := NewModule("counter")
	_, err := m.GetPort("missing")
	var lookupErr *herrors.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *herrors.LookupError, got %v (%T)", err, err)
	}
}

func TestModuleFullScopeMergesParametersOverBuiltins(t *testing.T) {
	m := NewModule("ram")
	width, err := ParseExpression("8")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := m.AddParameters(&Parameter{Name: "WIDTH", Default: width}); err != nil {
		t.Fatalf("AddParameters: %v", err)
	}
	scope, err := m.GetFullScope()
	if err != nil {
		t.Fatalf("GetFullScope: %v", err)
	}
	if v, ok := scope["WIDTH"].(int64); !ok || v != 8 {
		t.Errorf("WIDTH = %v, want int64(8)", scope["WIDTH"])
	}
	if _, ok := scope["clog2"]; !ok {
		t.Errorf("expected clog2 builtin to survive the merge")
	}
}

func TestModuleAddConstantsRejectsNonConstantKind(t *testing.T) {
	m := NewModule("x")
	vec, err := NewVectorDescriptorFromInt(7, 0)
	if err != nil {
		t.Fatalf("NewVectorDescriptorFromInt: %v", err)
	}
	sig, err := NewSignal("y", SignalRegister, vec)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	if err := m.AddConstants(sig); err == nil {
		t.Fatalf("expected error adding a register signal as a constant")
	}
}

func TestInstanceAttachParameterValueValidatesAgainstModule(t *testing.T) {
	sub := NewModule("sub")
	width, _ := ParseExpression("1")
	if err := sub.AddParameters(&Parameter{Name: "WIDTH", Default: width}); err != nil {
		t.Fatalf("AddParameters: %v", err)
	}
	inst := NewInstance("u_sub", sub)
	if err := inst.AttachParameterValue("WIDTH", NewLiteral(32)); err != nil {
		t.Fatalf("AttachParameterValue: %v", err)
	}
	if err := inst.AttachParameterValue("NOPE", NewLiteral(1)); err == nil {
		t.Fatalf("expected error attaching an undeclared parameter")
	}
}

func TestInstanceConnectPortValidatesAgainstModule(t *testing.T) {
	sub := NewModule("sub")
	scalar, _ := NewVectorDescriptorFromInt(0, 0)
	clk, _ := InputPort("clk", scalar)
	if err := sub.AddPorts(clk); err != nil {
		t.Fatalf("AddPorts: %v", err)
	}
	inst := NewInstance("u_sub", sub)
	if err := inst.ConnectPort("clk", NewName("sys_clk")); err != nil {
		t.Fatalf("ConnectPort: %v", err)
	}
	if err := inst.ConnectPort("nope", NewName("x")); err == nil {
		t.Fatalf("expected error connecting an undeclared port")
	}
}
