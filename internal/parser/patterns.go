package parser

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// parsePattern parses a let-binding or match-arm pattern. It assumes curTok
// is already positioned on the pattern's first token.
func (p *Parser) parsePattern() ast.Pattern {
	start := p.curTok.Span

	switch p.curTok.Type {
	case lexer.INT, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.MINUS:
		lit := p.parseExpr(precUnary)
		if p.failed() {
			return nil
		}
		return ast.NewLiteralPattern(lit, mergeSpan(start, lit.Span()))

	case lexer.MUT:
		if !p.expectPeek(lexer.IDENT, "identifier after 'mut'") {
			return nil
		}
		return ast.NewBindPattern(p.curTok.Raw, true, mergeSpan(start, p.curTok.Span))

	case lexer.IDENT:
		if p.curTok.Raw == "_" && p.peekTok.Type != lexer.DCOLON {
			return ast.NewWildcardPattern(start)
		}

		path := []string{p.curTok.Raw}
		for p.peekTok.Type == lexer.DCOLON {
			p.next()
			if !p.expectPeek(lexer.IDENT, "name after '::'") {
				return nil
			}
			path = append(path, p.curTok.Raw)
		}

		switch p.peekTok.Type {
		case lexer.LPAREN:
			p.next()
			var elems []ast.Pattern
			if p.peekTok.Type != lexer.RPAREN {
				p.next()
				for {
					e := p.parsePattern()
					if p.failed() {
						return nil
					}
					elems = append(elems, e)
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
			if !p.expectPeek(lexer.RPAREN, "')' to close pattern") {
				return nil
			}
			return ast.NewTuplePattern(path, elems, mergeSpan(start, p.curTok.Span))

		case lexer.LBRACE:
			p.next()
			var fields []ast.FieldPattern
			for p.peekTok.Type != lexer.RBRACE {
				if !p.expectPeek(lexer.IDENT, "field name in pattern") {
					return nil
				}
				fieldName := p.curTok.Raw
				fieldSpan := p.curTok.Span
				var fp ast.Pattern
				if p.peekTok.Type == lexer.COLON {
					p.next()
					p.next()
					fp = p.parsePattern()
					if p.failed() {
						return nil
					}
				} else {
					fp = ast.NewBindPattern(fieldName, false, fieldSpan)
				}
				fields = append(fields, ast.FieldPattern{Name: fieldName, Pattern: fp})
				if p.peekTok.Type == lexer.COMMA {
					p.next()
					continue
				}
				break
			}
			if !p.expectPeek(lexer.RBRACE, "'}' to close pattern") {
				return nil
			}
			return ast.NewStructPattern(path, fields, mergeSpan(start, p.curTok.Span))

		default:
			if len(path) == 1 {
				return ast.NewBindPattern(path[0], false, start)
			}
			return ast.NewVariantPattern(path, mergeSpan(start, p.curTok.Span))
		}

	default:
		p.fail("expected a pattern, found "+string(p.curTok.Type), p.curTok.Span)
		return nil
	}
}
