package regdesc

import "strings"

// Document is a whole register-description source file: an ordered
// sequence of top-level statements.
type Document struct {
	Statements []*Statement `@@*`
}

// Statement is the tagged union of every top-level form the grammar
// accepts.
type Statement struct {
	Setting  *SettingStmt  `  @@`
	Param    *ParamStmt    `| @@`
	Template *TemplateStmt `| @@`
	Register *RegisterStmt `| @@`
	Port     *PortStmt     `| @@`
	Generate *GenerateStmt `| @@`
}

// SettingStmt is one of the two `#`-prefixed directives.
type SettingStmt struct {
	RegisterSize *RegisterSizeSetting `  @@`
	AddrMode     *AddrModeSetting     `| @@`
}

type RegisterSizeSetting struct {
	Value int `Hash KwRegisterSize @Number Semicolon`
}

type AddrModeSetting struct {
	Mode string `Hash KwAddrMode @(KwByte | KwWord) Semicolon`
}

// ParamStmt binds a named integer parameter, substitutable in template
// names and expressions throughout the rest of the document.
type ParamStmt struct {
	Name  string      `KwParam @Ident Equals`
	Value *Expression `@@ Semicolon`
}

// TemplateStmt declares a named field-list prototype that SlaveRegister
// instances may clone via `= TEMPLATE`.
type TemplateStmt struct {
	Name   string       `KwTemplate @Ident LBrace`
	Fields []*FieldStmt `@@* RBrace Semicolon?`
}

// RegisterStmt declares one addressable register, optionally at an
// explicit address, optionally cloning a template's field list.
type RegisterStmt struct {
	Name     string       `KwRegister @(Ident | TemplateIdent)`
	Address  *AddressSpec `@@?`
	Template *string      `( Equals @Ident )?`
	Fields   []*FieldStmt `LBrace @@* RBrace Semicolon?`
}

// AddressSpec is the optional explicit `@ADDR` on a register declaration.
type AddressSpec struct {
	Value *Expression `At @@`
}

// FieldStmt declares one bitfield: an optional explicit name (implicit
// fields are auto-named by the builder), a bit range, access mode, optional
// reset default, and zero or more string properties.
type FieldStmt struct {
	Name     *string     `KwField (@(Ident | TemplateIdent))?`
	Position *SliceSpec  `KwPosition Equals @@`
	Access   string      `KwAccess Equals @(KwRW | KwR | KwW)`
	Default  *Expression `( KwDefault Equals @@ )?`
	Props    []*Property `@@* Semicolon`
}

// SliceSpec is a `[hi:lo]` bit range.
type SliceSpec struct {
	High *Expression `LBracket @@`
	Low  *Expression `Colon @@ RBracket`
}

// Property is a `key="value"` attribute attached to a field or register.
type Property struct {
	Key   string `@Ident Equals`
	Value string `@String`
}

// PortStmt declares a flag port bound to a register or register field. The
// trigger marker (`!`) distinguishes watched outputs from plain passthrough
// ports.
type PortStmt struct {
	Direction string  `@(KwIn | KwOut)`
	Trigger   bool    `@Bang?`
	Name      string  `@(Ident | TemplateIdent) Equals`
	Register  string  `@(Ident | TemplateIdent)`
	Field     *string `( Dot @Ident )? Semicolon`
}

// GenerateStmt unrolls Body once per value of Var from Start up to but not
// including End; `{Var}` fragments inside nested names are resolved against
// each iteration's value when the expansion is built.
type GenerateStmt struct {
	Var   string       `KwGenerate @Ident KwIn`
	Start *Expression   `@@ Range`
	End   *Expression   `@@ LBrace`
	Body  []*Statement `@@* RBrace Semicolon?`
}

// Expression captures a run of arithmetic tokens verbatim; it is evaluated
// at build time by the shared hand-written expression parser rather than by
// a dedicated participle grammar, matching the package's convention of
// keeping the small integer-arithmetic sublanguage in one place.
type Expression struct {
	Tokens []string `@(Ident | Number | Plus | Minus | Star | Slash | LParen | RParen)+`
}

// Raw renders the captured tokens back into a string the hdlir expression
// parser can tokenize.
func (e *Expression) Raw() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.Tokens, " ")
}
