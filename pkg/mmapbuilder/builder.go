// Package mmapbuilder implements the two-pass visitor that turns a parsed
// register-description document into a flat registers.Map: a first pass
// that binds and unrolls generate-statement loop variables, and a second
// pass that resolves settings, parameters, templates, registers, fields and
// ports into the assembled IR.
package mmapbuilder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
	"github.com/brunosmmm/hdltools-go/pkg/hdlir"
	"github.com/brunosmmm/hdltools-go/pkg/regdesc"
	"github.com/brunosmmm/hdltools-go/pkg/registers"
)

// Logger receives redefinition and default-value warnings raised while
// building a register map. Callers may reconfigure it before calling Build.
var Logger = logrus.New()

var braceExpr = regexp.MustCompile(`\{([^{}]+)\}`)

// Builder runs the two-pass visitor over a regdesc.Document.
type Builder struct {
	// ParamReplace overrides `param` declarations by name, taking
	// precedence over the value given in the source document.
	ParamReplace map[string]int64
}

// New builds a Builder with no parameter overrides.
func New() *Builder {
	return &Builder{ParamReplace: map[string]int64{}}
}

// boundStatement pairs a flattened statement with the generate-variable
// bindings in effect where it was unrolled, avoiding AST mutation.
type boundStatement struct {
	stmt     *regdesc.Statement
	bindings map[string]int64
}

// Build runs both passes over doc and returns the assembled register map.
func (b *Builder) Build(doc *regdesc.Document) (*registers.Map, error) {
	params := map[string]int64{}
	flat, err := b.expand(doc.Statements, nil, params)
	if err != nil {
		return nil, err
	}
	return b.assemble(flat, params)
}

// expand is the first pass: param statements are evaluated in document
// order, so a generate range may reference an earlier parameter, and every
// generate statement is unrolled into its per-iteration bodies, each
// carrying the loop-variable bindings accumulated so far.
func (b *Builder) expand(stmts []*regdesc.Statement, bindings map[string]int64, params map[string]int64) ([]boundStatement, error) {
	var out []boundStatement
	for _, st := range stmts {
		switch {
		case st.Param != nil:
			v, err := b.eval(st.Param.Value, b.scopeFor(bindings, params))
			if err != nil {
				return nil, fmt.Errorf("mmapbuilder: param %s: %w", st.Param.Name, err)
			}
			if override, ok := b.ParamReplace[st.Param.Name]; ok {
				v = override
			}
			params[st.Param.Name] = v
			out = append(out, boundStatement{stmt: st, bindings: bindings})

		case st.Generate != nil:
			scope := b.scopeFor(bindings, params)
			startV, err := b.eval(st.Generate.Start, scope)
			if err != nil {
				return nil, fmt.Errorf("mmapbuilder: generate %s start: %w", st.Generate.Var, err)
			}
			endV, err := b.eval(st.Generate.End, scope)
			if err != nil {
				return nil, fmt.Errorf("mmapbuilder: generate %s end: %w", st.Generate.Var, err)
			}
			for v := startV; v < endV; v++ {
				child := make(map[string]int64, len(bindings)+1)
				for k, bv := range bindings {
					child[k] = bv
				}
				child[st.Generate.Var] = v
				expanded, err := b.expand(st.Generate.Body, child, params)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
			}

		default:
			out = append(out, boundStatement{stmt: st, bindings: bindings})
		}
	}
	return out, nil
}

func (b *Builder) scopeFor(bindings, params map[string]int64) hdlir.EvalScope {
	scope := hdlir.BuiltinScope()
	for k, v := range params {
		scope[k] = v
	}
	for k, v := range bindings {
		scope[k] = v
	}
	return scope
}

func (b *Builder) eval(e *regdesc.Expression, scope hdlir.EvalScope) (int64, error) {
	expr, err := hdlir.ParseExpression(e.Raw())
	if err != nil {
		return 0, &herrors.ParseError{Message: err.Error(), Excerpt: e.Raw()}
	}
	v, err := expr.Evaluate(scope)
	if err != nil {
		return 0, &herrors.SemanticError{Message: err.Error()}
	}
	return v, nil
}

// substituteName resolves `{expr}` fragments in a register/port/property
// name against scope, matching the grammar's templated-name-substitution
// rule. A name with no braces is returned unchanged.
func (b *Builder) substituteName(raw string, scope hdlir.EvalScope) (string, error) {
	if !strings.ContainsRune(raw, '{') {
		return raw, nil
	}
	var substErr error
	out := braceExpr.ReplaceAllStringFunc(raw, func(match string) string {
		if substErr != nil {
			return match
		}
		expr, err := hdlir.ParseExpression(match[1 : len(match)-1])
		if err != nil {
			substErr = err
			return match
		}
		v, err := expr.Evaluate(scope)
		if err != nil {
			substErr = err
			return match
		}
		return strconv.FormatInt(v, 10)
	})
	if substErr != nil {
		return "", fmt.Errorf("mmapbuilder: substituting %q: %w", raw, substErr)
	}
	return out, nil
}

// assemble is the second pass: settings and templates are collected first
// (order-independent of where they sit in the file), then every register is
// built and address-assigned, then every port is bound.
func (b *Builder) assemble(flat []boundStatement, params map[string]int64) (*registers.Map, error) {
	registerSize := 0
	sizeSet := false
	addrMode := registers.AddrModeByte
	modeSet := false
	templates := map[string][]*regdesc.FieldStmt{}

	for _, bs := range flat {
		st := bs.stmt
		switch {
		case st.Setting != nil && st.Setting.RegisterSize != nil:
			if sizeSet {
				Logger.Warn("mmapbuilder: register_size redefined")
			}
			registerSize = st.Setting.RegisterSize.Value
			sizeSet = true
		case st.Setting != nil && st.Setting.AddrMode != nil:
			if modeSet {
				Logger.Warn("mmapbuilder: addr_mode redefined")
			}
			if st.Setting.AddrMode.Mode == "word" {
				addrMode = registers.AddrModeWord
			} else {
				addrMode = registers.AddrModeByte
			}
			modeSet = true
		case st.Template != nil:
			if _, exists := templates[st.Template.Name]; exists {
				return nil, fmt.Errorf("mmapbuilder: %w", &herrors.SemanticError{
					Node: st.Template.Name, Message: "template redefined",
				})
			}
			templates[st.Template.Name] = st.Template.Fields
		}
	}
	if !sizeSet {
		Logger.Warn("mmapbuilder: register_size not set, defaulting to 32")
		registerSize = 32
	}
	if !modeSet {
		Logger.Debug("mmapbuilder: addr_mode not set, defaulting to byte")
	}

	m := registers.NewMap(registerSize, addrMode)
	for k, v := range params {
		m.Parameters[k] = v
	}

	addrOffset := uint64(1)
	if addrMode == registers.AddrModeByte {
		addrOffset = uint64(registerSize / 8)
	}
	if addrOffset == 0 {
		addrOffset = 1
	}

	for _, bs := range flat {
		if bs.stmt.Register == nil {
			continue
		}
		reg, err := b.buildRegister(bs.stmt.Register, bs.bindings, params, templates, registerSize, m, addrOffset)
		if err != nil {
			return nil, err
		}
		if err := m.AddRegister(reg); err != nil {
			return nil, fmt.Errorf("mmapbuilder: %w", err)
		}
	}

	for _, bs := range flat {
		if bs.stmt.Port == nil {
			continue
		}
		port, err := b.buildPort(bs.stmt.Port, bs.bindings, params)
		if err != nil {
			return nil, err
		}
		m.AddPort(port)
	}

	return m, nil
}

func (b *Builder) buildRegister(
	rs *regdesc.RegisterStmt,
	bindings, params map[string]int64,
	templates map[string][]*regdesc.FieldStmt,
	registerSize int,
	m *registers.Map,
	addrOffset uint64,
) (*registers.Register, error) {
	scope := b.scopeFor(bindings, params)
	name, err := b.substituteName(rs.Name, scope)
	if err != nil {
		return nil, err
	}

	var address uint64
	if rs.Address != nil {
		v, err := b.eval(rs.Address.Value, scope)
		if err != nil {
			return nil, fmt.Errorf("mmapbuilder: register %s address: %w", name, err)
		}
		address = uint64(v)
	} else {
		address = nextAvailableAddress(m, addrOffset)
	}

	fieldStmts := rs.Fields
	if rs.Template != nil {
		proto, ok := templates[*rs.Template]
		if !ok {
			return nil, fmt.Errorf("mmapbuilder: %w", &herrors.SemanticError{
				Node: name, Message: fmt.Sprintf("unknown template %q", *rs.Template),
			})
		}
		combined := make([]*regdesc.FieldStmt, 0, len(proto)+len(rs.Fields))
		combined = append(combined, proto...)
		combined = append(combined, rs.Fields...)
		fieldStmts = combined
	}

	reg := registers.NewRegister(name, address, registerSize)
	for i, fs := range fieldStmts {
		f, err := b.buildField(fs, i, scope)
		if err != nil {
			return nil, fmt.Errorf("mmapbuilder: register %s: %w", name, err)
		}
		if err := reg.AddFields(f); err != nil {
			return nil, fmt.Errorf("mmapbuilder: %w", err)
		}
	}
	return reg, nil
}

func (b *Builder) buildField(fs *regdesc.FieldStmt, index int, scope hdlir.EvalScope) (*registers.Field, error) {
	high, err := b.eval(fs.Position.High, scope)
	if err != nil {
		return nil, fmt.Errorf("field position: %w", err)
	}
	low, err := b.eval(fs.Position.Low, scope)
	if err != nil {
		return nil, fmt.Errorf("field position: %w", err)
	}

	name := fmt.Sprintf("FIELD%d", index)
	if fs.Name != nil {
		n, err := b.substituteName(*fs.Name, scope)
		if err != nil {
			return nil, err
		}
		name = n
	}

	access := registers.AccessReadWrite
	switch fs.Access {
	case "R":
		access = registers.AccessReadOnly
	case "W":
		access = registers.AccessWriteOnly
	}

	f, err := registers.NewField(name, int(high), int(low), access)
	if err != nil {
		return nil, &herrors.SemanticError{Node: name, Message: err.Error()}
	}

	if fs.Default != nil {
		defExpr, err := hdlir.ParseExpression(fs.Default.Raw())
		if err != nil {
			return nil, &herrors.ParseError{Message: err.Error(), Excerpt: fs.Default.Raw()}
		}
		f.Default = defExpr
		if v, evalErr := defExpr.Evaluate(scope); evalErr == nil {
			if !hdlir.ValueFitsWidth(f.Width(), v) {
				return nil, &herrors.SemanticError{
					Node: name, Message: fmt.Sprintf("default %d does not fit in %d bits", v, f.Width()),
				}
			}
		}
	}

	for _, p := range fs.Props {
		v, err := b.substituteName(stripQuotes(p.Value), scope)
		if err != nil {
			return nil, err
		}
		f.Properties[p.Key] = v
	}

	return f, nil
}

func (b *Builder) buildPort(ps *regdesc.PortStmt, bindings, params map[string]int64) (*registers.Port, error) {
	scope := b.scopeFor(bindings, params)
	name, err := b.substituteName(ps.Name, scope)
	if err != nil {
		return nil, err
	}
	reg, err := b.substituteName(ps.Register, scope)
	if err != nil {
		return nil, err
	}
	field := ""
	if ps.Field != nil {
		field = *ps.Field
	}
	return &registers.Port{
		Name:     name,
		Register: reg,
		Field:    field,
		Trigger:  ps.Trigger,
		Output:   ps.Direction == "out",
	}, nil
}

// nextAvailableAddress scans reg.Address values already in m, returning the
// smallest non-negative multiple of offset not already claimed.
func nextAvailableAddress(m *registers.Map, offset uint64) uint64 {
	used := map[uint64]bool{}
	for _, r := range m.Registers() {
		used[r.Address] = true
	}
	for addr := uint64(0); ; addr += offset {
		if !used[addr] {
			return addr
		}
	}
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, `\"`, `"`), `\\`, `\`)
}
