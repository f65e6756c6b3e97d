package vcd

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/brunosmmm/hdltools-go/pkg/vcdstore"
)

// CompiledVariable is the gob-serialized form of one parsed variable's full
// history, independent of the live vcdstore.History representation so the
// on-disk format can evolve without breaking the in-memory index.
type CompiledVariable struct {
	ID     string
	Name   string
	Scope  []string
	Width  int
	Times  []uint64
	Values []string
}

// Compiled is a whole parsed dump reduced to its header metadata and every
// variable's change history, the unit gob-encoded to and from disk.
type Compiled struct {
	Timescale string
	Variables []CompiledVariable
}

// Compile runs the streaming parser over path and reduces its result to a
// Compiled value ready for persistence. Scalar and vector values are both
// stored as their raw bit strings; conversion to a packed BinaryValue is
// deferred to load time so the compiled format stays representation-neutral.
func Compile(path string) (*Compiled, error) {
	histories := map[string]*CompiledVariable{}
	var order []string

	p := NewParser(Handlers{
		VariableDecl: func(v *Variable) {
			if _, ok := histories[v.ID]; ok {
				return
			}
			histories[v.ID] = &CompiledVariable{
				ID:    v.ID,
				Name:  v.Name,
				Scope: append([]string(nil), v.Scope...),
				Width: v.Width,
			}
			order = append(order, v.ID)
		},
		InitialValue: func(id, value string) {
			appendChange(histories, id, 0, value)
		},
		ValueChange: func(id, value string, time uint64) {
			appendChange(histories, id, time, value)
		},
	})

	if err := p.ParseFile(path); err != nil {
		return nil, err
	}

	c := &Compiled{Timescale: p.Timescale}
	for _, id := range order {
		c.Variables = append(c.Variables, *histories[id])
	}
	return c, nil
}

func appendChange(histories map[string]*CompiledVariable, id string, time uint64, value string) {
	cv, ok := histories[id]
	if !ok {
		return
	}
	cv.Times = append(cv.Times, time)
	cv.Values = append(cv.Values, value)
}

// Save gob-encodes and gzips c to path.
func (c *Compiled) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vcd: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := gob.NewEncoder(gz).Encode(c); err != nil {
		return fmt.Errorf("vcd: encoding compiled dump: %w", err)
	}
	return gz.Close()
}

// Load reads back a dump previously written by Save.
func Load(path string) (*Compiled, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vcd: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("vcd: opening compiled dump: %w", err)
	}
	defer gz.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, gz); err != nil {
		return nil, fmt.Errorf("vcd: %w", err)
	}

	var c Compiled
	if err := gob.NewDecoder(&buf).Decode(&c); err != nil {
		return nil, fmt.Errorf("vcd: decoding compiled dump: %w", err)
	}
	return &c, nil
}

// ToIndex rebuilds a queryable vcdstore.Index from a compiled dump.
func (c *Compiled) ToIndex() (*vcdstore.Index, error) {
	idx := vcdstore.NewIndex()
	for _, cv := range c.Variables {
		v := vcdstore.NewVariable(cv.ID, cv.Name, cv.Scope, cv.Width)
		for i, t := range cv.Times {
			bv, err := vcdstore.ParseBinaryValue(cv.Values[i], cv.Width)
			if err != nil {
				return nil, fmt.Errorf("vcd: variable %s: %w", cv.Name, err)
			}
			v.History.AddChange(t, bv)
		}
		idx.Add(v)
	}
	return idx, nil
}
