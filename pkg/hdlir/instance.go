package hdlir

import (
	"fmt"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// Instance is a named instantiation of a Module, with per-instance
// parameter overrides and port connections. Both are validated against the
// referenced module at attach/connect time, not deferred to a later pass.
type Instance struct {
	Name        string
	Of          *Module
	ParamValues map[string]*Expression
	Connections map[string]*Expression
}

// NewInstance builds an instance of mod named name.
func NewInstance(name string, mod *Module) *Instance {
	return &Instance{
		Name:        name,
		Of:          mod,
		ParamValues: map[string]*Expression{},
		Connections: map[string]*Expression{},
	}
}

// AttachParameterValue overrides a parameter of the instantiated module,
// failing if that module declares no such parameter.
func (i *Instance) AttachParameterValue(name string, value *Expression) error {
	if _, err := i.Of.GetParameter(name); err != nil {
		return fmt.Errorf("hdlir: instance %q: %w", i.Name, &herrors.LookupError{Kind: "parameter", Name: name})
	}
	i.ParamValues[name] = value
	return nil
}

// ConnectPort binds an expression to a port of the instantiated module,
// failing if that module declares no such port.
func (i *Instance) ConnectPort(name string, value *Expression) error {
	if _, err := i.Of.GetPort(name); err != nil {
		return fmt.Errorf("hdlir: instance %q: %w", i.Name, &herrors.LookupError{Kind: "port", Name: name})
	}
	i.Connections[name] = value
	return nil
}
