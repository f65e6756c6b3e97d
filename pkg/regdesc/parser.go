package regdesc

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// Parser parses register-description source into a Document.
type Parser struct {
	parser *participle.Parser[Document]
}

// NewParser builds a register-description parser.
func NewParser() (*Parser, error) {
	p, err := participle.Build[Document](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("regdesc: building parser: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Parse reads a whole register-description source from r.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	doc, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("regdesc: %w", &herrors.ParseError{Message: err.Error()})
	}
	return doc, nil
}

// ParseString parses a register-description source held entirely in
// memory.
func (p *Parser) ParseString(input string) (*Document, error) {
	doc, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("regdesc: %w", &herrors.ParseError{Message: err.Error()})
	}
	return doc, nil
}

// ParseFile parses a register-description source from disk.
func (p *Parser) ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("regdesc: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}
