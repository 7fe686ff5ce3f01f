package ast

import "github.com/palladium-lang/palladium/internal/lexer"

// WildcardPattern is `_`.
type WildcardPattern struct{ sp lexer.Span }

func (p *WildcardPattern) Span() lexer.Span { return p.sp }
func (*WildcardPattern) patternNode()        {}
func NewWildcardPattern(sp lexer.Span) *WildcardPattern {
	return &WildcardPattern{sp: sp}
}

// BindPattern binds the scrutinee (or a destructured part of it) to a name.
type BindPattern struct {
	Name    string
	Mutable bool
	sp      lexer.Span
}

func (p *BindPattern) Span() lexer.Span { return p.sp }
func (*BindPattern) patternNode()        {}
func NewBindPattern(name string, mutable bool, sp lexer.Span) *BindPattern {
	return &BindPattern{Name: name, Mutable: mutable, sp: sp}
}

// LiteralPattern matches a literal int/string/bool value.
type LiteralPattern struct {
	Value Expr
	sp    lexer.Span
}

func (p *LiteralPattern) Span() lexer.Span { return p.sp }
func (*LiteralPattern) patternNode()        {}
func NewLiteralPattern(value Expr, sp lexer.Span) *LiteralPattern {
	return &LiteralPattern{Value: value, sp: sp}
}

// TuplePattern destructures a tuple-payload enum variant:
// `Enum::Variant(p1, p2, ...)`.
type TuplePattern struct {
	Path  []string
	Elems []Pattern
	sp    lexer.Span
}

func (p *TuplePattern) Span() lexer.Span { return p.sp }
func (*TuplePattern) patternNode()        {}
func NewTuplePattern(path []string, elems []Pattern, sp lexer.Span) *TuplePattern {
	return &TuplePattern{Path: path, Elems: elems, sp: sp}
}

// FieldPattern is one `name: pattern` entry of a struct pattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
}

// StructPattern destructures a struct, or a struct-payload enum variant.
type StructPattern struct {
	Path   []string
	Fields []FieldPattern
	sp     lexer.Span
}

func (p *StructPattern) Span() lexer.Span { return p.sp }
func (*StructPattern) patternNode()        {}
func NewStructPattern(path []string, fields []FieldPattern, sp lexer.Span) *StructPattern {
	return &StructPattern{Path: path, Fields: fields, sp: sp}
}

// VariantPattern matches a no-payload enum variant: `Enum::Variant`.
type VariantPattern struct {
	Path []string
	sp   lexer.Span
}

func (p *VariantPattern) Span() lexer.Span { return p.sp }
func (*VariantPattern) patternNode()        {}
func NewVariantPattern(path []string, sp lexer.Span) *VariantPattern {
	return &VariantPattern{Path: path, sp: sp}
}
