// Package parser implements Palladium's recursive-descent, Pratt-style
// expression parser: it consumes the lexer's token stream and produces the
// untyped AST skeleton spec.md §4.2 describes.
package parser

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/interner"
	"github.com/palladium-lang/palladium/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precUnary
	precPostfix
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:       precOr,
	lexer.AND:      precAnd,
	lexer.EQ:       precEquality,
	lexer.NEQ:      precEquality,
	lexer.LT:       precComparison,
	lexer.LE:       precComparison,
	lexer.GT:       precComparison,
	lexer.GE:       precComparison,
	lexer.PLUS:     precSum,
	lexer.MINUS:    precSum,
	lexer.STAR:     precProduct,
	lexer.SLASH:    precProduct,
	lexer.PERCENT:  precProduct,
	lexer.LPAREN:   precPostfix,
	lexer.LBRACKET: precPostfix,
	lexer.DOT:      precPostfix,
}

// Error is the single diagnostic a parse can fail with. Spec.md §4.2: the
// parser reports the first unexpected token it cannot recover from and
// aborts.
type Error struct {
	Message string
	Span    lexer.Span
}

func (e Error) Error() string { return e.Message }

func (e Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Parser implements the recursive-descent, Pratt-expression parser.
//
// Invariants: curTok always reflects the token currently under
// examination; peekTok mirrors the next token pulled from the lexer. Both
// are only ever mutated by next(). On the first diagnostic emitted, the
// parser stops producing tree nodes (ParseFile returns a nil file plus
// the error) -- spec.md §7 forbids partial recovery across stages, and the
// teacher's accumulate-then-surface style is reserved for the (optional)
// recoverable warnings a caller may choose to ignore.
type Parser struct {
	filename string
	toks     []lexer.Token
	pos      int

	curTok  lexer.Token
	peekTok lexer.Token

	// noStructLiteral suppresses `Name { ... }` struct-literal parsing while
	// set, so `if cond { ... }` does not swallow the block as a struct
	// literal's field list. Mirrors the restriction Rust's own parser
	// applies to if/while/for/match scrutinee position.
	noStructLiteral bool

	err *Error

	// interner is the symbol interner shared with the lexer that produced
	// p.toks, when the parser was built through ParseString. A Parser
	// built directly via New (e.g. in tests feeding a hand-lexed token
	// slice) has a nil interner, which is fine: nothing in the parser
	// itself needs to intern new text, only to share the lexer's table.
	interner *interner.Interner

	arenas *nodeArenas

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a parser over an already-lexed token stream.
func New(filename string, toks []lexer.Token) *Parser {
	p := &Parser{
		filename:  filename,
		toks:      toks,
		arenas:    newNodeArenas(),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentOrStruct)
	p.registerPrefix(lexer.INT, p.parseIntLit)
	p.registerPrefix(lexer.STRING, p.parseStringLit)
	p.registerPrefix(lexer.TRUE, p.parseBoolLit)
	p.registerPrefix(lexer.FALSE, p.parseBoolLit)
	p.registerPrefix(lexer.MINUS, p.parseUnaryExpr)
	p.registerPrefix(lexer.BANG, p.parseUnaryExpr)
	p.registerPrefix(lexer.AMP, p.parseRefExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayExpr)
	p.registerPrefix(lexer.LBRACE, p.parseBlockAsExpr)
	p.registerPrefix(lexer.IF, p.parseIfExpr)
	p.registerPrefix(lexer.MATCH, p.parseMatchExpr)

	p.registerInfix(lexer.PLUS, p.parseBinaryExpr)
	p.registerInfix(lexer.MINUS, p.parseBinaryExpr)
	p.registerInfix(lexer.STAR, p.parseBinaryExpr)
	p.registerInfix(lexer.SLASH, p.parseBinaryExpr)
	p.registerInfix(lexer.PERCENT, p.parseBinaryExpr)
	p.registerInfix(lexer.EQ, p.parseBinaryExpr)
	p.registerInfix(lexer.NEQ, p.parseBinaryExpr)
	p.registerInfix(lexer.LT, p.parseBinaryExpr)
	p.registerInfix(lexer.LE, p.parseBinaryExpr)
	p.registerInfix(lexer.GT, p.parseBinaryExpr)
	p.registerInfix(lexer.GE, p.parseBinaryExpr)
	p.registerInfix(lexer.AND, p.parseBinaryExpr)
	p.registerInfix(lexer.OR, p.parseBinaryExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)
	p.registerInfix(lexer.DOT, p.parseFieldOrMethodExpr)

	p.next()
	p.next()
	return p
}

// ParseString lexes and parses a full source buffer in one call, sharing a
// single symbol interner between the lexer and parser stages (spec.md §3:
// "Interning is stable for the lifetime of one compilation").
func ParseString(filename, src string) (*ast.File, error) {
	toks, in, err := lexer.LexWithInterner(filename, src, interner.New())
	if err != nil {
		return nil, err
	}
	p := New(filename, toks)
	p.interner = in
	return p.ParseFile()
}

func (p *Parser) registerPrefix(t lexer.TokenType, fn prefixParseFn) { p.prefixFns[t] = fn }
func (p *Parser) registerInfix(t lexer.TokenType, fn infixParseFn)   { p.infixFns[t] = fn }

func (p *Parser) next() {
	p.curTok = p.peekTok
	if p.pos < len(p.toks) {
		p.peekTok = p.toks[p.pos]
		p.pos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) fail(msg string, span lexer.Span) {
	if p.err == nil {
		p.err = &Error{Message: msg, Span: span}
	}
}

func (p *Parser) failed() bool { return p.err != nil }

// expectPeek checks that peekTok has type tt and, if so, advances so it
// becomes curTok. Otherwise it records the first parse error.
func (p *Parser) expectPeek(tt lexer.TokenType, context string) bool {
	if p.peekTok.Type == tt {
		p.next()
		return true
	}
	p.fail("expected "+context+", found "+string(p.peekTok.Type), p.peekTok.Span)
	return false
}

func mergeSpan(a, b lexer.Span) lexer.Span {
	span := a
	if b.End > span.End {
		span.End = b.End
	}
	return span
}

func precedenceOf(tt lexer.TokenType) int {
	if prec, ok := precedences[tt]; ok {
		return prec
	}
	return precLowest
}

// ParseFile parses an entire translation unit: an ordered list of items.
func (p *Parser) ParseFile() (*ast.File, error) {
	start := p.curTok.Span
	var items []ast.Item

	for p.curTok.Type != lexer.EOF && !p.failed() {
		item := p.parseItem()
		if p.failed() {
			break
		}
		if item != nil {
			items = append(items, item)
		}
		p.next()
	}

	if p.err != nil {
		return nil, *p.err
	}

	span := start
	if len(items) > 0 {
		span = mergeSpan(start, items[len(items)-1].Span())
	}
	return ast.NewFile(items, span), nil
}
