package parser

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/lexer"
)

func assignOpFor(tt lexer.TokenType) (ast.AssignOp, bool) {
	switch tt {
	case lexer.ASSIGN:
		return ast.AssignSet, true
	case lexer.PLUSEQ:
		return ast.AssignAdd, true
	case lexer.MINUSEQ:
		return ast.AssignSub, true
	case lexer.STAREQ:
		return ast.AssignMul, true
	case lexer.SLASHEQ:
		return ast.AssignDiv, true
	default:
		return 0, false
	}
}

// isBlockLikeExpr reports whether e ends in its own closing brace, so it can
// stand as a statement without a trailing semicolon (spec.md §4.2's
// statement grammar: block/if/match/while/for do not require one).
func isBlockLikeExpr(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Block, *ast.IfExpr, *ast.MatchExpr:
		return true
	default:
		return false
	}
}

// parseBlock parses `{ stmt... [tail-expr] }`. It assumes curTok is the
// opening '{'.
func (p *Parser) parseBlock() *ast.Block {
	start := p.curTok.Span
	var stmts []ast.Stmt
	var tail ast.Expr

	for p.peekTok.Type != lexer.RBRACE {
		if p.peekTok.Type == lexer.EOF {
			p.fail("expected '}' to close block", p.peekTok.Span)
			return nil
		}
		p.next()

		switch p.curTok.Type {
		case lexer.LET:
			stmts = append(stmts, p.parseLetStmt())
		case lexer.RETURN:
			stmts = append(stmts, p.parseReturnStmt())
		case lexer.BREAK:
			bstart := p.curTok.Span
			if !p.expectPeek(lexer.SEMICOLON, "';' after break") {
				return nil
			}
			stmts = append(stmts, ast.NewBreakStmt(mergeSpan(bstart, p.curTok.Span)))
		case lexer.CONTINUE:
			cstart := p.curTok.Span
			if !p.expectPeek(lexer.SEMICOLON, "';' after continue") {
				return nil
			}
			stmts = append(stmts, ast.NewContinueStmt(mergeSpan(cstart, p.curTok.Span)))
		case lexer.WHILE:
			stmts = append(stmts, p.parseWhileStmt())
		case lexer.FOR:
			stmts = append(stmts, p.parseForStmt())
		default:
			expr := p.parseExpr(precLowest)
			if p.failed() {
				return nil
			}
			if op, ok := assignOpFor(p.peekTok.Type); ok {
				p.next()
				p.next()
				value := p.parseExpr(precLowest)
				if p.failed() {
					return nil
				}
				if !p.expectPeek(lexer.SEMICOLON, "';' after assignment") {
					return nil
				}
				stmts = append(stmts, ast.NewAssignStmt(expr, op, value, mergeSpan(expr.Span(), p.curTok.Span)))
				break
			}
			if p.peekTok.Type == lexer.SEMICOLON {
				p.next()
				stmts = append(stmts, ast.NewExprStmt(expr, mergeSpan(expr.Span(), p.curTok.Span)))
				break
			}
			if p.peekTok.Type == lexer.RBRACE {
				tail = expr
				break
			}
			if isBlockLikeExpr(expr) {
				stmts = append(stmts, ast.NewExprStmt(expr, expr.Span()))
				break
			}
			p.fail("expected ';' after expression statement, found "+string(p.peekTok.Type), p.peekTok.Span)
			return nil
		}
		if p.failed() {
			return nil
		}
	}
	p.next() // consume '}'
	return ast.NewBlock(stmts, tail, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.curTok.Span
	mutable := false
	if p.peekTok.Type == lexer.MUT {
		p.next()
		mutable = true
	}
	p.next()
	pattern := p.parsePattern()
	if p.failed() {
		return nil
	}

	var typ ast.TypeExpr
	if p.peekTok.Type == lexer.COLON {
		p.next()
		p.next()
		typ = p.parseType()
		if p.failed() {
			return nil
		}
	}

	var init ast.Expr
	if p.peekTok.Type == lexer.ASSIGN {
		p.next()
		p.next()
		init = p.parseExpr(precLowest)
		if p.failed() {
			return nil
		}
	}

	if !p.expectPeek(lexer.SEMICOLON, "';' after let statement") {
		return nil
	}
	return ast.NewLetStmt(pattern, typ, init, mutable, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span
	var value ast.Expr
	if p.peekTok.Type != lexer.SEMICOLON {
		p.next()
		value = p.parseExpr(precLowest)
		if p.failed() {
			return nil
		}
	}
	if !p.expectPeek(lexer.SEMICOLON, "';' after return") {
		return nil
	}
	return ast.NewReturnStmt(value, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span
	p.next()
	p.noStructLiteral = true
	cond := p.parseExpr(precLowest)
	p.noStructLiteral = false
	if p.failed() {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE, "'{' to start while body") {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return ast.NewWhileStmt(cond, body, mergeSpan(start, body.Span()))
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expectPeek(lexer.IDENT, "loop binder name") {
		return nil
	}
	binder := p.curTok.Raw
	if !p.expectPeek(lexer.IN, "'in' in for loop") {
		return nil
	}
	p.next()
	p.noStructLiteral = true
	low := p.parseExpr(precLowest)
	if p.failed() {
		return nil
	}

	var iterable ast.ForIterable
	if p.peekTok.Type == lexer.DOTDOT {
		p.next()
		p.next()
		high := p.parseExpr(precLowest)
		if p.failed() {
			return nil
		}
		iterable = ast.RangeIterable{Low: low, High: high}
	} else {
		iterable = ast.ExprIterable{X: low}
	}
	p.noStructLiteral = false

	if !p.expectPeek(lexer.LBRACE, "'{' to start for body") {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return ast.NewForStmt(binder, iterable, body, mergeSpan(start, body.Span()))
}
