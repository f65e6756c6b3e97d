// Package triggerlang implements the trigger-condition mini-language:
// "scope::name[hi:lo] == value (&& | =>) ..." chains that compile into a
// pkg/trigger ConditionTableTrigger (&&) or SimpleTrigger (=>).
package triggerlang

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes condition chains. Scope, name and value literals all
// share one "Word" token (digits, letters, underscores, optionally
// 0x-prefixed) since the mini-language does not otherwise distinguish their
// shapes; disambiguation between a bare hex literal and a name happens at
// resolution time in pkg/trigger, exactly as it does for descriptors parsed
// directly from Go.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},
	{Name: "AndAnd", Pattern: `&&`},
	{Name: "FatArrow", Pattern: `=>`},
	{Name: "EqEq", Pattern: `==`},
	{Name: "NotEq", Pattern: `!=`},
	{Name: "Scoped", Pattern: `::`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Word", Pattern: `0[xX][0-9a-fA-F]+|[0-9A-Za-z_]+`},
})
