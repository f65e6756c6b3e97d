package hdlir

import (
	"fmt"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// Parameter is a compile-time-resolved module generic: a name with a
// default value expression, overridable per instance.
type Parameter struct {
	Name    string
	Default *Expression
}

// Module is a named hardware unit: an ordered parameter list, an ordered
// port list, named constants, a top-level statement scope, and the
// instances it contains. Ports, parameters and constants are validated for
// duplicate names on insertion rather than on lookup.
type Module struct {
	Name       string
	Params     []*Parameter
	Ports      []*Port
	Constants  []*Signal
	Scope      *Scope
	Instances  map[string]*Instance
	Interfaces map[string]*Interface
}

// NewModule builds an empty module with a parallel top-level scope: a
// module body is a concurrent composition of blocks, instances and
// declarations, the same way a par Scope composes continuous assignments.
// Null-category statements (comments, macros, signal declarations, seq/par
// block wrappers, instances) are always welcome alongside them.
func NewModule(name string) *Module {
	return &Module{
		Name:       name,
		Scope:      NewScope(CategoryPar),
		Instances:  map[string]*Instance{},
		Interfaces: map[string]*Interface{},
	}
}

// AddPorts appends ports, rejecting a name already present.
func (m *Module) AddPorts(ports ...*Port) error {
	for _, p := range ports {
		if _, err := m.GetPort(p.Name()); err == nil {
			return fmt.Errorf("hdlir: module %q: duplicate port %q", m.Name, p.Name())
		}
		m.Ports = append(m.Ports, p)
	}
	return nil
}

// AddParameters appends parameters, rejecting a name already present.
func (m *Module) AddParameters(params ...*Parameter) error {
	for _, p := range params {
		for _, existing := range m.Params {
			if existing.Name == p.Name {
				return fmt.Errorf("hdlir: module %q: duplicate parameter %q", m.Name, p.Name)
			}
		}
		m.Params = append(m.Params, p)
	}
	return nil
}

// AddConstants appends constant signals, rejecting a non-constant signal
// kind or a duplicate name.
func (m *Module) AddConstants(consts ...*Signal) error {
	for _, c := range consts {
		if c.Kind != SignalConstant {
			return fmt.Errorf("hdlir: module %q: %q is not a constant signal", m.Name, c.Name)
		}
		for _, existing := range m.Constants {
			if existing.Name == c.Name {
				return fmt.Errorf("hdlir: module %q: duplicate constant %q", m.Name, c.Name)
			}
		}
		m.Constants = append(m.Constants, c)
	}
	return nil
}

// AddInstances registers named instances, rejecting a name already present.
func (m *Module) AddInstances(instances ...*Instance) error {
	for _, inst := range instances {
		if _, ok := m.Instances[inst.Name]; ok {
			return fmt.Errorf("hdlir: module %q: duplicate instance %q", m.Name, inst.Name)
		}
		m.Instances[inst.Name] = inst
	}
	return nil
}

// GetPort looks up a port by name.
func (m *Module) GetPort(name string) (*Port, error) {
	for _, p := range m.Ports {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, &herrors.LookupError{Kind: "port", Name: name}
}

// GetParameter looks up a parameter by name.
func (m *Module) GetParameter(name string) (*Parameter, error) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, &herrors.LookupError{Kind: "parameter", Name: name}
}

// GetConstant looks up a constant signal by name.
func (m *Module) GetConstant(name string) (*Signal, error) {
	for _, c := range m.Constants {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, &herrors.LookupError{Kind: "constant", Name: name}
}

// GetSignalOrPort looks up a constant, a signal declared in the module
// scope, or a port, in that order, matching get_signal_or_port's search
// precedence.
func (m *Module) GetSignalOrPort(name string) (*Signal, error) {
	if c, err := m.GetConstant(name); err == nil {
		return c, nil
	}
	for _, st := range m.Scope.GetByType(func(s *Statement) bool { return s.SignalDecl != nil }) {
		if st.SignalDecl.Name == name {
			return st.SignalDecl, nil
		}
	}
	if p, err := m.GetPort(name); err == nil {
		return p.Signal, nil
	}
	return nil, &herrors.LookupError{Kind: "signal or port", Name: name}
}

// GetParameterScope returns an EvalScope mapping each parameter name to its
// default value. Parameters are evaluated in declaration order, each against
// the parameters declared before it; a reference to a later parameter fails
// as an undefined name.
func (m *Module) GetParameterScope() (EvalScope, error) {
	scope := EvalScope{}
	for _, p := range m.Params {
		v, err := p.Default.Evaluate(scope)
		if err != nil {
			return nil, fmt.Errorf("hdlir: module %q: parameter %q: %w", m.Name, p.Name, err)
		}
		scope[p.Name] = v
	}
	return scope, nil
}

// GetFullScope merges the parameter scope with the builtin scope
// (ceil/log2/clog2), matching get_full_scope's behavior: parameters take
// precedence over builtins of the same name.
func (m *Module) GetFullScope() (EvalScope, error) {
	params, err := m.GetParameterScope()
	if err != nil {
		return nil, err
	}
	return BuiltinScope().Merge(params), nil
}
