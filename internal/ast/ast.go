// Package ast defines Palladium's abstract syntax tree: items, types,
// statements, expressions, and patterns, each carrying a source span and,
// for expressions, a resolved type once semantic analysis has run.
package ast

import "github.com/palladium-lang/palladium/internal/lexer"

// Node is any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Item is a top-level declaration: Function, Struct, Enum, or Const.
type Item interface {
	Node
	itemNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
	// ResolvedType holds the type the semantic analyzer assigned, or nil
	// before analysis has run.
	ResolvedType() Type
	SetResolvedType(Type)
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is a type annotation as written in source, before resolution.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Pattern is a match/let pattern.
type Pattern interface {
	Node
	patternNode()
}

// baseExpr factors the span + resolved-type bookkeeping shared by every
// expression node.
type baseExpr struct {
	span lexer.Span
	typ  Type
}

func (b *baseExpr) Span() lexer.Span       { return b.span }
func (b *baseExpr) ResolvedType() Type     { return b.typ }
func (b *baseExpr) SetResolvedType(t Type) { b.typ = t }

// SetSpan stamps sp onto a node allocated by value rather than through a
// New* constructor (the parser's arena-backed node pools build nodes this
// way: zero-allocate from the arena, fill in fields, then attach the span).
func (b *baseExpr) SetSpan(sp lexer.Span) { b.span = sp }

// File is a parsed translation unit: an ordered list of items.
type File struct {
	Items []Item
	Sp    lexer.Span
}

func NewFile(items []Item, sp lexer.Span) *File { return &File{Items: items, Sp: sp} }
func (f *File) Span() lexer.Span                { return f.Sp }

// ---- Items ----

// Param is one function parameter: name, declared type, and whether it was
// declared `mut`.
type Param struct {
	Name    string
	Type    TypeExpr
	Mutable bool
	Sp      lexer.Span
}

func NewParam(name string, typ TypeExpr, mutable bool, sp lexer.Span) *Param {
	return &Param{Name: name, Type: typ, Mutable: mutable, Sp: sp}
}
func (p *Param) Span() lexer.Span { return p.Sp }

// Function is a `fn` item.
type Function struct {
	Name       string
	TypeParams []string
	Params     []*Param
	ReturnType TypeExpr // nil means unit
	Body       *Block
	Sp         lexer.Span
}

func NewFunction(name string, typeParams []string, params []*Param, retType TypeExpr, body *Block, sp lexer.Span) *Function {
	return &Function{Name: name, TypeParams: typeParams, Params: params, ReturnType: retType, Body: body, Sp: sp}
}
func (f *Function) Span() lexer.Span { return f.Sp }
func (*Function) itemNode()          {}

// FieldDecl is one struct field declaration.
type FieldDecl struct {
	Name string
	Type TypeExpr
	Sp   lexer.Span
}

func NewFieldDecl(name string, typ TypeExpr, sp lexer.Span) *FieldDecl {
	return &FieldDecl{Name: name, Type: typ, Sp: sp}
}
func (f *FieldDecl) Span() lexer.Span { return f.Sp }

// StructDecl is a `struct` item.
type StructDecl struct {
	Name       string
	TypeParams []string
	Fields     []*FieldDecl
	Sp         lexer.Span
}

func NewStructDecl(name string, typeParams []string, fields []*FieldDecl, sp lexer.Span) *StructDecl {
	return &StructDecl{Name: name, TypeParams: typeParams, Fields: fields, Sp: sp}
}
func (s *StructDecl) Span() lexer.Span { return s.Sp }
func (*StructDecl) itemNode()          {}

// VariantPayload is the payload shape of an enum variant.
type VariantPayload interface {
	variantPayloadNode()
}

// NoPayload marks a variant carrying no data, e.g. `Err`.
type NoPayload struct{}

func (NoPayload) variantPayloadNode() {}

// TuplePayload marks a variant carrying positional fields, e.g. `Ok(i64)`.
type TuplePayload struct {
	Types []TypeExpr
}

func (TuplePayload) variantPayloadNode() {}

// StructPayload marks a variant carrying named fields, e.g. `Point{x: i64, y: i64}`.
type StructPayload struct {
	Fields []*FieldDecl
}

func (StructPayload) variantPayloadNode() {}

// Variant is one enum variant.
type Variant struct {
	Name    string
	Payload VariantPayload
	Sp      lexer.Span
}

func NewVariant(name string, payload VariantPayload, sp lexer.Span) *Variant {
	return &Variant{Name: name, Payload: payload, Sp: sp}
}
func (v *Variant) Span() lexer.Span { return v.Sp }

// EnumDecl is an `enum` item.
type EnumDecl struct {
	Name       string
	TypeParams []string
	Variants   []*Variant
	Sp         lexer.Span
}

func NewEnumDecl(name string, typeParams []string, variants []*Variant, sp lexer.Span) *EnumDecl {
	return &EnumDecl{Name: name, TypeParams: typeParams, Variants: variants, Sp: sp}
}
func (e *EnumDecl) Span() lexer.Span { return e.Sp }
func (*EnumDecl) itemNode()          {}

// ConstDecl is a `const` item. Value must be a compile-time literal
// expression (spec.md §3).
type ConstDecl struct {
	Name  string
	Type  TypeExpr
	Value Expr
	Sp    lexer.Span
}

func NewConstDecl(name string, typ TypeExpr, value Expr, sp lexer.Span) *ConstDecl {
	return &ConstDecl{Name: name, Type: typ, Value: value, Sp: sp}
}
func (c *ConstDecl) Span() lexer.Span { return c.Sp }
func (*ConstDecl) itemNode()          {}

// ---- Type expressions (as written in source) ----

type UnitType struct{ Sp lexer.Span }

func NewUnitType(sp lexer.Span) *UnitType { return &UnitType{Sp: sp} }
func (t *UnitType) Span() lexer.Span      { return t.Sp }
func (*UnitType) typeExprNode()           {}

// NamedType is a path to a type: a primitive (`i64`, `bool`, `String`), a
// struct/enum name, or a still-unresolved type parameter.
type NamedType struct {
	Name     string
	TypeArgs []TypeExpr
	Sp       lexer.Span
}

func NewNamedType(name string, typeArgs []TypeExpr, sp lexer.Span) *NamedType {
	return &NamedType{Name: name, TypeArgs: typeArgs, Sp: sp}
}
func (t *NamedType) Span() lexer.Span { return t.Sp }
func (*NamedType) typeExprNode()      {}

// RefType is `&T` or `&mut T`.
type RefType struct {
	Mutable bool
	Elem    TypeExpr
	Sp      lexer.Span
}

func NewRefType(mutable bool, elem TypeExpr, sp lexer.Span) *RefType {
	return &RefType{Mutable: mutable, Elem: elem, Sp: sp}
}
func (t *RefType) Span() lexer.Span { return t.Sp }
func (*RefType) typeExprNode()      {}

// ArrayType is `[T; N]` with N a constant-expression size.
type ArrayType struct {
	Elem TypeExpr
	Size Expr
	Sp   lexer.Span
}

func NewArrayType(elem TypeExpr, size Expr, sp lexer.Span) *ArrayType {
	return &ArrayType{Elem: elem, Size: size, Sp: sp}
}
func (t *ArrayType) Span() lexer.Span { return t.Sp }
func (*ArrayType) typeExprNode()      {}

// FnType is `fn(T1, T2) -> R`, used only in type position (e.g. higher
// order parameters); the core language does not expose function values as
// first-class but the grammar admits the type for forward compatibility.
type FnType struct {
	Params []TypeExpr
	Result TypeExpr
	Sp     lexer.Span
}

func NewFnType(params []TypeExpr, result TypeExpr, sp lexer.Span) *FnType {
	return &FnType{Params: params, Result: result, Sp: sp}
}
func (t *FnType) Span() lexer.Span { return t.Sp }
func (*FnType) typeExprNode()      {}

// ---- Statements ----

// LetStmt is `let [mut] pattern [: Type] [= init];`.
type LetStmt struct {
	Pattern Pattern
	Type    TypeExpr // may be nil
	Init    Expr     // may be nil
	Mutable bool
	Sp      lexer.Span
}

func NewLetStmt(pattern Pattern, typ TypeExpr, init Expr, mutable bool, sp lexer.Span) *LetStmt {
	return &LetStmt{Pattern: pattern, Type: typ, Init: init, Mutable: mutable, Sp: sp}
}
func (s *LetStmt) Span() lexer.Span { return s.Sp }
func (*LetStmt) stmtNode()          {}

// AssignOp enumerates the assignment operators spec.md §3 lists.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// AssignStmt is `target op= value;`.
type AssignStmt struct {
	Target LValue
	Op     AssignOp
	Value  Expr
	Sp     lexer.Span
}

func NewAssignStmt(target LValue, op AssignOp, value Expr, sp lexer.Span) *AssignStmt {
	return &AssignStmt{Target: target, Op: op, Value: value, Sp: sp}
}
func (s *AssignStmt) Span() lexer.Span { return s.Sp }
func (*AssignStmt) stmtNode()          {}

// LValue is an expression usable as an assignment target or operand of
// address-of: a binder, or a field/index chain rooted in one.
type LValue = Expr

// ExprStmt wraps a bare expression statement.
type ExprStmt struct {
	X  Expr
	Sp lexer.Span
}

func NewExprStmt(x Expr, sp lexer.Span) *ExprStmt { return &ExprStmt{X: x, Sp: sp} }
func (s *ExprStmt) Span() lexer.Span              { return s.Sp }
func (*ExprStmt) stmtNode()                       {}

// ReturnStmt is `return [Expr];`.
type ReturnStmt struct {
	Value Expr // nil denotes the unit value
	Sp    lexer.Span
}

func NewReturnStmt(value Expr, sp lexer.Span) *ReturnStmt { return &ReturnStmt{Value: value, Sp: sp} }
func (s *ReturnStmt) Span() lexer.Span                    { return s.Sp }
func (*ReturnStmt) stmtNode()                             {}

// BreakStmt is `break;`.
type BreakStmt struct{ Sp lexer.Span }

func NewBreakStmt(sp lexer.Span) *BreakStmt { return &BreakStmt{Sp: sp} }
func (s *BreakStmt) Span() lexer.Span       { return s.Sp }
func (*BreakStmt) stmtNode()                {}

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Sp lexer.Span }

func NewContinueStmt(sp lexer.Span) *ContinueStmt { return &ContinueStmt{Sp: sp} }
func (s *ContinueStmt) Span() lexer.Span          { return s.Sp }
func (*ContinueStmt) stmtNode()                   {}

// WhileStmt is `while Expr Block`.
type WhileStmt struct {
	Cond Expr
	Body *Block
	Sp   lexer.Span
}

func NewWhileStmt(cond Expr, body *Block, sp lexer.Span) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, Sp: sp}
}
func (s *WhileStmt) Span() lexer.Span { return s.Sp }
func (*WhileStmt) stmtNode()          {}

// ForIterable is either a Range or an array-valued expression.
type ForIterable interface {
	forIterableNode()
}

// RangeIterable is `a..b`.
type RangeIterable struct {
	Low, High Expr
}

func (RangeIterable) forIterableNode() {}

// ExprIterable is any other array-typed expression iterated by value.
type ExprIterable struct {
	X Expr
}

func (ExprIterable) forIterableNode() {}

// ForStmt is `for binder in iterable Block`.
type ForStmt struct {
	Binder   string
	Iterable ForIterable
	Body     *Block
	Sp       lexer.Span
}

func NewForStmt(binder string, iterable ForIterable, body *Block, sp lexer.Span) *ForStmt {
	return &ForStmt{Binder: binder, Iterable: iterable, Body: body, Sp: sp}
}
func (s *ForStmt) Span() lexer.Span { return s.Sp }
func (*ForStmt) stmtNode()          {}
