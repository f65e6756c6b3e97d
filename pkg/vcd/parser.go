// Package vcd implements a streaming VCD (Value Change Dump) parser:
// header/initial/dump state machine, scope tracking, and a compact
// gob-encoded persisted-state format for previously-parsed dumps.
package vcd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/sirupsen/logrus"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// State is the parser's current position in a VCD file's grammar: header
// declarations, the $dumpvars initial-value block, or the steady-state
// value-change dump.
type State int

const (
	StateHeader State = iota
	StateInitial
	StateDump
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateDump:
		return "dump"
	default:
		return "header"
	}
}

// Variable is one $var declaration.
type Variable struct {
	ID    string
	Type  string
	Width int
	Name  string
	Scope Scope
}

// Handlers are the caller-supplied hooks invoked as the parser advances,
// matching the source toolkit's overridable handler-method stubs.
type Handlers struct {
	HeaderStatement func(keyword string, fields []string)
	VariableDecl    func(v *Variable)
	InitialValue    func(id, value string)
	ValueChange     func(id, value string, time uint64)
	ClockChange     func(time uint64)
	StateChange     func(newState State)
}

// ErrAborted is returned from the parse loop after a cooperative Abort.
var ErrAborted = errors.New("vcd: parser aborted")

// Parser is a streaming VCD parser. It prefers to memory-map its input file
// and falls back to chunked buffered reads when mapping is unavailable
// (pipes, devices, or a plain io.Reader with no backing file).
type Parser struct {
	handlers Handlers
	Logger   *logrus.Logger

	state       State
	scopeStack  []string
	Variables   map[string]*Variable
	Timescale   string
	currentTime uint64

	pending    []string // buffered header tokens across a multi-line $keyword ... $end
	pendingKey string
	lineBuf    string
	aborted    bool
}

// NewParser builds a parser with the given handler set. Its Logger is a
// logrus.Logger with output discarded.
func NewParser(h Handlers) *Parser {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Parser{
		handlers:  h,
		Logger:    logger,
		Variables: map[string]*Variable{},
	}
}

// Abort requests the parse loop stop at the next line boundary. It sets a
// plain, unsynchronized flag, so it is called from a handler on the
// goroutine running Parse*, not from another goroutine.
func (p *Parser) Abort() { p.aborted = true }

// State returns the parser's current grammar position.
func (p *Parser) State() State { return p.state }

// ParseFile opens path, preferring a memory-mapped read, falling back to a
// buffered chunked read when mapping fails (e.g. path is a FIFO).
func (p *Parser) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("vcd: %w", err)
	}
	defer f.Close()

	if info, statErr := f.Stat(); statErr == nil && info.Size() > 0 {
		m, mmapErr := mmap.Map(f, mmap.RDONLY, 0)
		if mmapErr == nil {
			defer m.Unmap()
			p.Logger.WithField("path", path).Debug("parsing via mmap")
			return p.processChunk(m)
		}
		p.Logger.WithError(mmapErr).Debug("mmap failed, falling back to chunked read")
	}
	return p.ParseReader(f)
}

// ParseReader reads src in fixed-size chunks, tolerating line breaks that
// land in the middle of a chunk boundary.
func (p *Parser) ParseReader(src io.Reader) error {
	r := bufio.NewReaderSize(src, 64*1024)
	buf := make([]byte, 64*1024)
	for {
		if p.aborted {
			return ErrAborted
		}
		n, err := r.Read(buf)
		if n > 0 {
			if procErr := p.processChunk(buf[:n]); procErr != nil {
				return procErr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("vcd: %w", err)
		}
	}
	if p.lineBuf != "" {
		return p.processLine(p.lineBuf)
	}
	return nil
}

func (p *Parser) processChunk(data []byte) error {
	p.lineBuf += string(data)
	for {
		idx := strings.IndexByte(p.lineBuf, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimRight(p.lineBuf[:idx], "\r")
		p.lineBuf = p.lineBuf[idx+1:]
		if err := p.processLine(line); err != nil {
			return err
		}
		if p.aborted {
			return ErrAborted
		}
	}
	return nil
}

func (p *Parser) processLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	switch p.state {
	case StateHeader:
		return p.processHeaderLine(line)
	case StateInitial:
		return p.processDumpLine(line, true)
	default:
		return p.processDumpLine(line, false)
	}
}

func (p *Parser) changeState(s State) {
	p.state = s
	if p.handlers.StateChange != nil {
		p.handlers.StateChange(s)
	}
}

func (p *Parser) processHeaderLine(line string) error {
	if p.pendingKey != "" {
		if line == "$end" {
			err := p.finishHeaderStatement(p.pendingKey, p.pending)
			p.pendingKey = ""
			p.pending = nil
			return err
		}
		p.pending = append(p.pending, strings.Fields(line)...)
		return nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	keyword := fields[0]
	rest := fields[1:]

	if keyword == "$enddefinitions" {
		p.changeState(StateInitial)
		return nil
	}
	if len(rest) > 0 && rest[len(rest)-1] == "$end" {
		return p.finishHeaderStatement(keyword, rest[:len(rest)-1])
	}
	// Multi-line form: buffer tokens until a line consisting solely of $end.
	p.pendingKey = keyword
	p.pending = append([]string(nil), rest...)
	return nil
}

func (p *Parser) finishHeaderStatement(keyword string, fields []string) error {
	if p.handlers.HeaderStatement != nil {
		p.handlers.HeaderStatement(keyword, fields)
	}
	switch keyword {
	case "$var":
		return p.parseVariableDecl(fields)
	case "$scope":
		if len(fields) < 2 {
			return p.parseError("malformed $scope statement")
		}
		p.scopeStack = append(p.scopeStack, fields[1])
		return nil
	case "$upscope":
		if len(p.scopeStack) == 0 {
			return p.parseError("$upscope with no open scope")
		}
		p.scopeStack = p.scopeStack[:len(p.scopeStack)-1]
		return nil
	case "$timescale":
		p.Timescale = strings.Join(fields, " ")
		return nil
	default:
		return nil
	}
}

func (p *Parser) parseVariableDecl(fields []string) error {
	if len(fields) < 4 {
		return p.parseError("malformed $var statement")
	}
	width, err := strconv.Atoi(fields[1])
	if err != nil {
		return p.parseError(fmt.Sprintf("invalid $var width %q", fields[1]))
	}
	v := &Variable{
		Type:  fields[0],
		Width: width,
		ID:    fields[2],
		Name:  fields[3],
		Scope: append(Scope(nil), p.scopeStack...),
	}
	p.Variables[v.ID] = v
	if p.handlers.VariableDecl != nil {
		p.handlers.VariableDecl(v)
	}
	return nil
}

func (p *Parser) processDumpLine(line string, initial bool) error {
	if line == "$dumpvars" || line == "$dumpall" || line == "$dumpon" {
		return nil
	}
	if line == "$end" {
		if p.state == StateInitial {
			p.changeState(StateDump)
		}
		return nil
	}
	if line == "$dumpoff" || strings.HasPrefix(line, "$comment") {
		return nil
	}

	if strings.HasPrefix(line, "#") {
		t, err := strconv.ParseUint(line[1:], 10, 64)
		if err != nil {
			return p.parseError(fmt.Sprintf("invalid time value %q", line))
		}
		p.currentTime = t
		if p.handlers.ClockChange != nil {
			p.handlers.ClockChange(t)
		}
		return nil
	}

	id, value, err := p.parseValueChange(line)
	if err != nil {
		return err
	}
	if initial {
		if p.handlers.InitialValue != nil {
			p.handlers.InitialValue(id, value)
		}
		return nil
	}
	if p.handlers.ValueChange != nil {
		p.handlers.ValueChange(id, value, p.currentTime)
	}
	return nil
}

func (p *Parser) parseValueChange(line string) (id, value string, err error) {
	switch line[0] {
	case 'b', 'B':
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return "", "", p.parseError(fmt.Sprintf("malformed vector value change %q", line))
		}
		return parts[1], strings.TrimPrefix(strings.TrimPrefix(parts[0], "b"), "B"), nil
	case 'r', 'R':
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return "", "", p.parseError(fmt.Sprintf("malformed real value change %q", line))
		}
		return parts[1], parts[0][1:], nil
	default:
		if len(line) < 2 {
			return "", "", p.parseError(fmt.Sprintf("malformed scalar value change %q", line))
		}
		return line[1:], line[:1], nil
	}
}

func (p *Parser) parseError(msg string) error {
	return fmt.Errorf("vcd: %w", &herrors.ParseError{Message: msg, Excerpt: p.lineBuf})
}
