package registers

import "fmt"

// AddrMode selects whether register addresses in a Map are expressed in
// bytes or in register-sized words.
type AddrMode int

const (
	AddrModeByte AddrMode = iota
	AddrModeWord
)

// Port is a flag port bound to a whole register or to one of its fields,
// optionally marked as a trigger output.
type Port struct {
	Name     string
	Register string
	Field    string // empty when the port is bound to the whole register
	Trigger  bool
	Output   bool
}

// Map is the flat, assembled memory-mapped register file a builder
// produces from a register-description document: register size, address
// mode, and the ordered set of registers and the ports/parameters their
// fields were wired from.
type Map struct {
	RegisterSize int
	AddrMode     AddrMode
	Parameters   map[string]int64
	Ports        []*Port

	order     []string
	registers map[string]*Register
}

// NewMap builds an empty register map with the given register width in
// bits and address interpretation.
func NewMap(registerSize int, mode AddrMode) *Map {
	return &Map{
		RegisterSize: registerSize,
		AddrMode:     mode,
		Parameters:   map[string]int64{},
		registers:    map[string]*Register{},
	}
}

// AddPort appends a port binding.
func (m *Map) AddPort(p *Port) { m.Ports = append(m.Ports, p) }

// AddRegister inserts reg, rejecting a name or address already present.
func (m *Map) AddRegister(reg *Register) error {
	if _, ok := m.registers[reg.Name]; ok {
		return fmt.Errorf("registers: map: duplicate register %q", reg.Name)
	}
	for _, existing := range m.registers {
		if existing.Address == reg.Address {
			return fmt.Errorf("registers: map: register %q and %q both claim address %#x",
				existing.Name, reg.Name, reg.Address)
		}
	}
	m.registers[reg.Name] = reg
	m.order = append(m.order, reg.Name)
	return nil
}

// GetRegister looks up a register by name.
func (m *Map) GetRegister(name string) (*Register, error) {
	r, ok := m.registers[name]
	if !ok {
		return nil, fmt.Errorf("registers: map: %w", registerNotFound(name))
	}
	return r, nil
}

// Registers returns every register in insertion order.
func (m *Map) Registers() []*Register {
	out := make([]*Register, len(m.order))
	for i, name := range m.order {
		out[i] = m.registers[name]
	}
	return out
}

// ByteAddress converts a register's address to a byte offset, honoring
// AddrMode (word addresses are scaled by the register width in bytes).
func (m *Map) ByteAddress(reg *Register) uint64 {
	if m.AddrMode == AddrModeByte {
		return reg.Address
	}
	return reg.Address * uint64(m.RegisterSize/8)
}
