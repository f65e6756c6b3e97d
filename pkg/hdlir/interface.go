package hdlir

import "github.com/brunosmmm/hdltools-go/internal/herrors"

// Interface is a named, reusable group of ports (an AXI-lite bus, a simple
// handshake pair) that a module can expose as a unit and an instance can
// connect as a unit, rather than port-by-port. An Interface holds only its
// own port list; this package has no operation that binds it to the ports
// of a module.
type Interface struct {
	Name  string
	Ports []*Port
}

// NewInterface builds a named interface from its port list.
func NewInterface(name string, ports []*Port) *Interface {
	return &Interface{Name: name, Ports: ports}
}

// GetPort looks up a port within the interface by its local name.
func (i *Interface) GetPort(name string) (*Port, error) {
	for _, p := range i.Ports {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, &herrors.LookupError{Kind: "interface port", Name: i.Name + "." + name}
}
