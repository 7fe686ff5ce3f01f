package parser

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// parseType parses a type expression. It assumes curTok is already
// positioned on the type's first token.
func (p *Parser) parseType() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.LPAREN:
		start := p.curTok.Span
		if !p.expectPeek(lexer.RPAREN, "')' to close unit type") {
			return nil
		}
		return ast.NewUnitType(mergeSpan(start, p.curTok.Span))

	case lexer.AMP:
		start := p.curTok.Span
		mutable := false
		if p.peekTok.Type == lexer.MUT {
			p.next()
			mutable = true
		}
		p.next()
		elem := p.parseType()
		if p.failed() {
			return nil
		}
		return ast.NewRefType(mutable, elem, mergeSpan(start, elem.Span()))

	case lexer.LBRACKET:
		start := p.curTok.Span
		p.next()
		elem := p.parseType()
		if p.failed() {
			return nil
		}
		if !p.expectPeek(lexer.SEMICOLON, "';' in array type") {
			return nil
		}
		p.next()
		size := p.parseExpr(precLowest)
		if p.failed() {
			return nil
		}
		if !p.expectPeek(lexer.RBRACKET, "']' to close array type") {
			return nil
		}
		return ast.NewArrayType(elem, size, mergeSpan(start, p.curTok.Span))

	case lexer.FN:
		start := p.curTok.Span
		if !p.expectPeek(lexer.LPAREN, "'(' in fn type") {
			return nil
		}
		var params []ast.TypeExpr
		if p.peekTok.Type != lexer.RPAREN {
			p.next()
			for {
				t := p.parseType()
				if p.failed() {
					return nil
				}
				params = append(params, t)
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
		if !p.expectPeek(lexer.RPAREN, "')' to close fn type parameter list") {
			return nil
		}
		var result ast.TypeExpr = ast.NewUnitType(p.curTok.Span)
		if p.peekTok.Type == lexer.ARROW {
			p.next()
			p.next()
			result = p.parseType()
			if p.failed() {
				return nil
			}
		}
		return ast.NewFnType(params, result, mergeSpan(start, result.Span()))

	case lexer.IDENT:
		start := p.curTok.Span
		name := p.curTok.Raw
		var typeArgs []ast.TypeExpr
		if p.peekTok.Type == lexer.LT {
			p.next()
			p.next()
			for {
				t := p.parseType()
				if p.failed() {
					return nil
				}
				typeArgs = append(typeArgs, t)
				if p.peekTok.Type == lexer.COMMA {
					p.next()
					p.next()
					continue
				}
				break
			}
			if !p.expectPeek(lexer.GT, "'>' to close type argument list") {
				return nil
			}
		}
		return ast.NewNamedType(name, typeArgs, mergeSpan(start, p.curTok.Span))

	default:
		p.fail("expected a type, found "+string(p.curTok.Type), p.curTok.Span)
		return nil
	}
}
