package regdesc

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes the register-description mini-language: settings
// (#register_size, #addr_mode), param/template/register/port/generate
// statements, and the bit-range/access/property syntax used inside field
// declarations.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "KwRegisterSize", Pattern: `register_size\b`},
	{Name: "KwAddrMode", Pattern: `addr_mode\b`},
	{Name: "KwParam", Pattern: `param\b`},
	{Name: "KwTemplate", Pattern: `template\b`},
	{Name: "KwRegister", Pattern: `register\b`},
	{Name: "KwField", Pattern: `field\b`},
	{Name: "KwGenerate", Pattern: `generate\b`},
	{Name: "KwIn", Pattern: `in\b`},
	{Name: "KwOut", Pattern: `out\b`},
	{Name: "KwPosition", Pattern: `position\b`},
	{Name: "KwAccess", Pattern: `access\b`},
	{Name: "KwDefault", Pattern: `default\b`},
	{Name: "KwByte", Pattern: `byte\b`},
	{Name: "KwWord", Pattern: `word\b`},
	{Name: "KwRW", Pattern: `RW\b`},
	{Name: "KwR", Pattern: `R\b`},
	{Name: "KwW", Pattern: `W\b`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},
	{Name: "TemplateIdent", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*\{[^}]+\}[a-zA-Z0-9_]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	{Name: "Hash", Pattern: `#`},
	{Name: "At", Pattern: `@`},
	{Name: "Bang", Pattern: `!`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
})
