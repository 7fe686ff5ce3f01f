package ast

import "github.com/palladium-lang/palladium/internal/lexer"

// Block is `{ stmts... [tail-expr] }`. It is itself an expression so it can
// appear as a function body, a loop body, or the arm of an `if` used in
// expression position.
type Block struct {
	baseExpr
	Stmts []Stmt
	Tail  Expr // nil if the block has no trailing value expression
}

func NewBlock(stmts []Stmt, tail Expr, sp lexer.Span) *Block {
	b := &Block{Stmts: stmts, Tail: tail}
	b.span = sp
	return b
}
func (*Block) exprNode() {}

// IntLit is an integer literal.
type IntLit struct {
	baseExpr
	Value int64
}

func NewIntLit(value int64, sp lexer.Span) *IntLit {
	e := &IntLit{Value: value}
	e.span = sp
	return e
}
func (*IntLit) exprNode() {}

// StringLit is a string literal with its decoded value.
type StringLit struct {
	baseExpr
	Value string
}

func NewStringLit(value string, sp lexer.Span) *StringLit {
	e := &StringLit{Value: value}
	e.span = sp
	return e
}
func (*StringLit) exprNode() {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	baseExpr
	Value bool
}

func NewBoolLit(value bool, sp lexer.Span) *BoolLit {
	e := &BoolLit{Value: value}
	e.span = sp
	return e
}
func (*BoolLit) exprNode() {}

// PathExpr is a reference to a name: a local binder, a function, a
// constant, or `Enum::Variant`.
type PathExpr struct {
	baseExpr
	Segments []string // len==1 for a plain name, len==2 for Enum::Variant
}

func NewPathExpr(segments []string, sp lexer.Span) *PathExpr {
	e := &PathExpr{Segments: segments}
	e.span = sp
	return e
}
func (*PathExpr) exprNode() {}

// CallExpr is `f(args...)`, also used for enum tuple-variant construction
// after name resolution identifies the callee as a variant.
type CallExpr struct {
	baseExpr
	Callee Expr
	Args   []Expr
}

func NewCallExpr(callee Expr, args []Expr, sp lexer.Span) *CallExpr {
	e := &CallExpr{Callee: callee, Args: args}
	e.span = sp
	return e
}
func (*CallExpr) exprNode() {}

// MethodCallExpr is `recv.method(args...)` as written. Semantic analysis
// type-checks it as a call to the builtin named method with recv as the
// first argument but leaves the node in the tree as a MethodCallExpr;
// codegen emits the equivalent call.
type MethodCallExpr struct {
	baseExpr
	Receiver Expr
	Method   string
	Args     []Expr
}

func NewMethodCallExpr(recv Expr, method string, args []Expr, sp lexer.Span) *MethodCallExpr {
	e := &MethodCallExpr{Receiver: recv, Method: method, Args: args}
	e.span = sp
	return e
}
func (*MethodCallExpr) exprNode() {}

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	baseExpr
	Op          BinaryOp
	Left, Right Expr
}

func NewBinaryExpr(op BinaryOp, left, right Expr, sp lexer.Span) *BinaryExpr {
	e := &BinaryExpr{Op: op, Left: left, Right: right}
	e.span = sp
	return e
}
func (*BinaryExpr) exprNode() {}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// UnaryExpr is `-e` or `!e`.
type UnaryExpr struct {
	baseExpr
	Op UnaryOp
	X  Expr
}

func NewUnaryExpr(op UnaryOp, x Expr, sp lexer.Span) *UnaryExpr {
	e := &UnaryExpr{Op: op, X: x}
	e.span = sp
	return e
}
func (*UnaryExpr) exprNode() {}

// RefExpr is `&e` or `&mut e`.
type RefExpr struct {
	baseExpr
	Mutable bool
	X       Expr
}

func NewRefExpr(mutable bool, x Expr, sp lexer.Span) *RefExpr {
	e := &RefExpr{Mutable: mutable, X: x}
	e.span = sp
	return e
}
func (*RefExpr) exprNode() {}

// IndexExpr is `a[i]`.
type IndexExpr struct {
	baseExpr
	Array Expr
	Index Expr
}

func NewIndexExpr(array, index Expr, sp lexer.Span) *IndexExpr {
	e := &IndexExpr{Array: array, Index: index}
	e.span = sp
	return e
}
func (*IndexExpr) exprNode() {}

// FieldExpr is `a.f`.
type FieldExpr struct {
	baseExpr
	X     Expr
	Field string
}

func NewFieldExpr(x Expr, field string, sp lexer.Span) *FieldExpr {
	e := &FieldExpr{X: x, Field: field}
	e.span = sp
	return e
}
func (*FieldExpr) exprNode() {}

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	baseExpr
	Elems []Expr
}

func NewArrayLit(elems []Expr, sp lexer.Span) *ArrayLit {
	e := &ArrayLit{Elems: elems}
	e.span = sp
	return e
}
func (*ArrayLit) exprNode() {}

// RepeatLit is `[e; n]`.
type RepeatLit struct {
	baseExpr
	Elem  Expr
	Count Expr
}

func NewRepeatLit(elem, count Expr, sp lexer.Span) *RepeatLit {
	e := &RepeatLit{Elem: elem, Count: count}
	e.span = sp
	return e
}
func (*RepeatLit) exprNode() {}

// FieldInit is one `f: v` entry of a struct literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// StructLit is `S { f: v, ... }`.
type StructLit struct {
	baseExpr
	Name   string
	Fields []FieldInit
}

func NewStructLit(name string, fields []FieldInit, sp lexer.Span) *StructLit {
	e := &StructLit{Name: name, Fields: fields}
	e.span = sp
	return e
}
func (*StructLit) exprNode() {}

// BlockExpr wraps a Block used in expression position. Block itself already
// implements Expr, so BlockExpr is just an alias kept for readability at
// call sites that want to be explicit about "block used as a value".
type BlockExpr = Block

// IfExpr is `if cond { .. } else { .. }`, used as a statement or an
// expression. ElseBlk/ElseIf are optional; without an else the checker
// gives the construct unit type. With an else it takes the branches'
// type when both branches agree and unit type when they differ; the
// checker reports no error for differing branch types (spec.md §4.3.2).
type IfExpr struct {
	baseExpr
	Cond    Expr
	Then    *Block
	ElseIf  *IfExpr
	ElseBlk *Block
}

func NewIfExpr(cond Expr, then *Block, elseIf *IfExpr, elseBlk *Block, sp lexer.Span) *IfExpr {
	e := &IfExpr{Cond: cond, Then: then, ElseIf: elseIf, ElseBlk: elseBlk}
	e.span = sp
	return e
}
func (*IfExpr) exprNode() {}

// MatchArm is one `pattern => body` arm.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// MatchExpr is `match scrutinee { arms... }`.
type MatchExpr struct {
	baseExpr
	Scrutinee Expr
	Arms      []MatchArm
}

func NewMatchExpr(scrutinee Expr, arms []MatchArm, sp lexer.Span) *MatchExpr {
	e := &MatchExpr{Scrutinee: scrutinee, Arms: arms}
	e.span = sp
	return e
}
func (*MatchExpr) exprNode() {}
