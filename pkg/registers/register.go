package registers

import (
	"fmt"
	"sort"

	"github.com/brunosmmm/hdltools-go/pkg/hdlir"
)

// Register is a named, fixed-width memory-mapped register assembled from
// disjoint bit-range fields.
type Register struct {
	Name    string
	Address uint64
	Width   int
	Fields  []*Field
}

// NewRegister builds an empty register of the given bit width at address.
func NewRegister(name string, address uint64, width int) *Register {
	return &Register{Name: name, Address: address, Width: width}
}

func (r *Register) usedBits() map[int]string {
	used := map[int]string{}
	for _, f := range r.Fields {
		for bit := f.Right; bit <= f.Left; bit++ {
			used[bit] = f.Name
		}
	}
	return used
}

// AddFields inserts fields into the register, rejecting any field whose bit
// range overlaps an already-placed field or exceeds the register width.
func (r *Register) AddFields(fields ...*Field) error {
	used := r.usedBits()
	for _, f := range fields {
		if f.Left >= r.Width {
			return fmt.Errorf("registers: register %q: field %q bit %d exceeds register width %d",
				r.Name, f.Name, f.Left, r.Width)
		}
		for bit := f.Right; bit <= f.Left; bit++ {
			if owner, clash := used[bit]; clash {
				return fmt.Errorf("registers: register %q: field %q clashes with field %q at bit %d",
					r.Name, f.Name, owner, bit)
			}
			used[bit] = f.Name
		}
		r.Fields = append(r.Fields, f)
	}
	return nil
}

// GetField looks up a field by name.
func (r *Register) GetField(name string) (*Field, error) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fieldNotFound(name)
}

// GetWriteMask returns the bitmask of writable bits: every field bit except
// those belonging to a read-only field.
func (r *Register) GetWriteMask() uint64 {
	var mask uint64
	for _, f := range r.Fields {
		if f.Access == AccessReadOnly {
			continue
		}
		mask |= f.Mask()
	}
	return mask
}

// GetDefaultValue assembles the register's reset value by OR-ing each
// field's default value, shifted into position, evaluated against scope.
// Fields are processed in descending bit-position order, matching the
// source toolkit's assembly order (later, lower-order fields cannot
// clobber bits already placed by an earlier, higher-order one, since their
// ranges are disjoint by construction).
func (r *Register) GetDefaultValue(scope hdlir.EvalScope) (uint64, error) {
	fields := append([]*Field(nil), r.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Left > fields[j].Left })

	var value uint64
	for _, f := range fields {
		v, err := f.EvaluateDefault(scope)
		if err != nil {
			return 0, fmt.Errorf("registers: register %q: %w", r.Name, err)
		}
		if !hdlir.ValueFitsWidth(f.Width(), v) {
			return 0, fmt.Errorf("registers: register %q: field %q default %d does not fit in %d bits",
				r.Name, f.Name, v, f.Width())
		}
		value |= uint64(v) << uint(f.Right)
	}
	return value, nil
}
