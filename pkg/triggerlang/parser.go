package triggerlang

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"

	"github.com/brunosmmm/hdltools-go/internal/herrors"
)

// Parser parses trigger-condition chains into a Document.
type Parser struct {
	parser *participle.Parser[Document]
}

// NewParser builds a trigger-condition parser.
func NewParser() (*Parser, error) {
	p, err := participle.Build[Document](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("triggerlang: building parser: %w", err)
	}
	return &Parser{parser: p}, nil
}

// ParseString parses a condition chain held entirely in memory.
func (p *Parser) ParseString(input string) (*Document, error) {
	doc, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("triggerlang: %w", &herrors.ParseError{Message: err.Error(), Excerpt: input})
	}
	return doc, nil
}

// Parse reads a whole condition chain from r.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	doc, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("triggerlang: %w", &herrors.ParseError{Message: err.Error()})
	}
	return doc, nil
}
