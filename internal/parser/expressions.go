package parser

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// parseExpr is the Pratt-parsing driver: it assumes curTok is already
// positioned on the expression's first token and consumes infix operators
// whose precedence exceeds the caller's floor.
func (p *Parser) parseExpr(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.fail("expected an expression, found "+string(p.curTok.Type), p.curTok.Span)
		return nil
	}
	left := prefix()
	if p.failed() {
		return nil
	}

	for precedence < precedenceOf(p.peekTok.Type) {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return left
		}
		p.next()
		left = infix(left)
		if p.failed() {
			return nil
		}
	}
	return left
}

func binaryOpFor(tt lexer.TokenType) ast.BinaryOp {
	switch tt {
	case lexer.PLUS:
		return ast.OpAdd
	case lexer.MINUS:
		return ast.OpSub
	case lexer.STAR:
		return ast.OpMul
	case lexer.SLASH:
		return ast.OpDiv
	case lexer.PERCENT:
		return ast.OpMod
	case lexer.EQ:
		return ast.OpEq
	case lexer.NEQ:
		return ast.OpNeq
	case lexer.LT:
		return ast.OpLt
	case lexer.LE:
		return ast.OpLe
	case lexer.GT:
		return ast.OpGt
	case lexer.GE:
		return ast.OpGe
	case lexer.AND:
		return ast.OpAnd
	default:
		return ast.OpOr
	}
}

func (p *Parser) parseIntLit() ast.Expr {
	return p.arenas.intLit(p.curTok.Int, p.curTok.Span)
}

func (p *Parser) parseStringLit() ast.Expr {
	return p.arenas.stringLit(p.curTok.Str, p.curTok.Span)
}

func (p *Parser) parseBoolLit() ast.Expr {
	return p.arenas.boolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span)
}

// parseIdentOrStruct parses a bare name, a `Enum::Variant` path, or (outside
// restricted contexts like if/while/for/match scrutinees) a struct literal
// `Name { field: value, ... }`.
func (p *Parser) parseIdentOrStruct() ast.Expr {
	start := p.curTok.Span
	segments := []string{p.curTok.Raw}
	for p.peekTok.Type == lexer.DCOLON {
		p.next()
		if !p.expectPeek(lexer.IDENT, "name after '::'") {
			return nil
		}
		segments = append(segments, p.curTok.Raw)
	}

	if !p.noStructLiteral && p.peekTok.Type == lexer.LBRACE && len(segments) == 1 {
		p.next() // consume '{'
		var fields []ast.FieldInit
		for p.peekTok.Type != lexer.RBRACE {
			if !p.expectPeek(lexer.IDENT, "field name in struct literal") {
				return nil
			}
			fieldName := p.curTok.Raw
			if !p.expectPeek(lexer.COLON, "':' after field name") {
				return nil
			}
			p.next()
			val := p.parseExpr(precLowest)
			if p.failed() {
				return nil
			}
			fields = append(fields, ast.FieldInit{Name: fieldName, Value: val})
			if p.peekTok.Type == lexer.COMMA {
				p.next()
				continue
			}
			break
		}
		if !p.expectPeek(lexer.RBRACE, "'}' to close struct literal") {
			return nil
		}
		return ast.NewStructLit(segments[0], fields, mergeSpan(start, p.curTok.Span))
	}

	return p.arenas.pathExpr(segments, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	opTok := p.curTok
	op := ast.OpNeg
	if opTok.Type == lexer.BANG {
		op = ast.OpNot
	}
	p.next()
	x := p.parseExpr(precUnary)
	if p.failed() {
		return nil
	}
	return ast.NewUnaryExpr(op, x, mergeSpan(opTok.Span, x.Span()))
}

func (p *Parser) parseRefExpr() ast.Expr {
	start := p.curTok.Span
	mutable := false
	if p.peekTok.Type == lexer.MUT {
		p.next()
		mutable = true
	}
	p.next()
	x := p.parseExpr(precUnary)
	if p.failed() {
		return nil
	}
	return ast.NewRefExpr(mutable, x, mergeSpan(start, x.Span()))
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.next()
	e := p.parseExpr(precLowest)
	if p.failed() {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN, "')' to close grouped expression") {
		return nil
	}
	return e
}

// parseArrayExpr parses `[e1, e2, ...]` or the repeat form `[elem; count]`.
func (p *Parser) parseArrayExpr() ast.Expr {
	start := p.curTok.Span
	if p.peekTok.Type == lexer.RBRACKET {
		p.next()
		return ast.NewArrayLit(nil, mergeSpan(start, p.curTok.Span))
	}
	p.next()
	first := p.parseExpr(precLowest)
	if p.failed() {
		return nil
	}

	if p.peekTok.Type == lexer.SEMICOLON {
		p.next()
		p.next()
		count := p.parseExpr(precLowest)
		if p.failed() {
			return nil
		}
		if !p.expectPeek(lexer.RBRACKET, "']' to close repeat literal") {
			return nil
		}
		return ast.NewRepeatLit(first, count, mergeSpan(start, p.curTok.Span))
	}

	elems := []ast.Expr{first}
	for p.peekTok.Type == lexer.COMMA {
		p.next()
		if p.peekTok.Type == lexer.RBRACKET {
			break
		}
		p.next()
		e := p.parseExpr(precLowest)
		if p.failed() {
			return nil
		}
		elems = append(elems, e)
	}
	if !p.expectPeek(lexer.RBRACKET, "']' to close array literal") {
		return nil
	}
	return ast.NewArrayLit(elems, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseBlockAsExpr() ast.Expr {
	return p.parseBlock()
}

// parseIfExpr parses `if cond { .. } [else if .. | else { .. }]`, valid in
// both statement and expression position (spec.md §4.3.2).
func (p *Parser) parseIfExpr() ast.Expr {
	start := p.curTok.Span
	p.next()
	p.noStructLiteral = true
	cond := p.parseExpr(precLowest)
	p.noStructLiteral = false
	if p.failed() {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE, "'{' to start if body") {
		return nil
	}
	then := p.parseBlock()
	if p.failed() {
		return nil
	}

	var elseIf *ast.IfExpr
	var elseBlk *ast.Block
	end := then.Span()

	if p.peekTok.Type == lexer.ELSE {
		p.next()
		if p.peekTok.Type == lexer.IF {
			p.next()
			nested := p.parseIfExpr()
			if p.failed() {
				return nil
			}
			elseIf = nested.(*ast.IfExpr)
			end = elseIf.Span()
		} else {
			if !p.expectPeek(lexer.LBRACE, "'{' to start else body") {
				return nil
			}
			elseBlk = p.parseBlock()
			if p.failed() {
				return nil
			}
			end = elseBlk.Span()
		}
	}

	return ast.NewIfExpr(cond, then, elseIf, elseBlk, mergeSpan(start, end))
}

func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.curTok.Span
	p.next()
	p.noStructLiteral = true
	scrutinee := p.parseExpr(precLowest)
	p.noStructLiteral = false
	if p.failed() {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE, "'{' to start match body") {
		return nil
	}

	var arms []ast.MatchArm
	for p.peekTok.Type != lexer.RBRACE {
		p.next()
		pat := p.parsePattern()
		if p.failed() {
			return nil
		}
		if !p.expectPeek(lexer.FATARROW, "'=>' after match pattern") {
			return nil
		}
		p.next()
		body := p.parseExpr(precLowest)
		if p.failed() {
			return nil
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		if p.peekTok.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.RBRACE, "'}' to close match") {
		return nil
	}
	return ast.NewMatchExpr(scrutinee, arms, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	opTok := p.curTok
	op := binaryOpFor(opTok.Type)
	prec := precedenceOf(opTok.Type)
	p.next()
	right := p.parseExpr(prec)
	if p.failed() {
		return nil
	}
	return p.arenas.binaryExpr(op, left, right, mergeSpan(left.Span(), right.Span()))
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if p.peekTok.Type != lexer.RPAREN {
		p.next()
		for {
			a := p.parseExpr(precLowest)
			if p.failed() {
				return nil
			}
			args = append(args, a)
			if p.peekTok.Type == lexer.COMMA {
				p.next()
				if p.peekTok.Type == lexer.RPAREN {
					break
				}
				p.next()
				continue
			}
			break
		}
	}
	if !p.expectPeek(lexer.RPAREN, "')' to close call arguments") {
		return nil
	}
	return ast.NewCallExpr(callee, args, mergeSpan(callee.Span(), p.curTok.Span))
}

func (p *Parser) parseIndexExpr(array ast.Expr) ast.Expr {
	p.next()
	idx := p.parseExpr(precLowest)
	if p.failed() {
		return nil
	}
	if !p.expectPeek(lexer.RBRACKET, "']' to close index expression") {
		return nil
	}
	return ast.NewIndexExpr(array, idx, mergeSpan(array.Span(), p.curTok.Span))
}

// parseFieldOrMethodExpr distinguishes `a.f` from `a.f(args...)` by whether
// a '(' immediately follows the name.
func (p *Parser) parseFieldOrMethodExpr(x ast.Expr) ast.Expr {
	if !p.expectPeek(lexer.IDENT, "field or method name after '.'") {
		return nil
	}
	name := p.curTok.Raw

	if p.peekTok.Type == lexer.LPAREN {
		p.next()
		var args []ast.Expr
		if p.peekTok.Type != lexer.RPAREN {
			p.next()
			for {
				a := p.parseExpr(precLowest)
				if p.failed() {
					return nil
				}
				args = append(args, a)
				if p.peekTok.Type == lexer.COMMA {
					p.next()
					if p.peekTok.Type == lexer.RPAREN {
						break
					}
					p.next()
					continue
				}
				break
			}
		}
		if !p.expectPeek(lexer.RPAREN, "')' to close method arguments") {
			return nil
		}
		return ast.NewMethodCallExpr(x, name, args, mergeSpan(x.Span(), p.curTok.Span))
	}

	return ast.NewFieldExpr(x, name, mergeSpan(x.Span(), p.curTok.Span))
}
