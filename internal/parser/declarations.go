package parser

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// parseItem parses one top-level item: fn, struct, enum, or const.
func (p *Parser) parseItem() ast.Item {
	switch p.curTok.Type {
	case lexer.FN:
		return p.parseFunction()
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.ENUM:
		return p.parseEnum()
	case lexer.CONST:
		return p.parseConst()
	default:
		p.fail("expected an item (fn, struct, enum, or const), found "+string(p.curTok.Type), p.curTok.Span)
		return nil
	}
}

func (p *Parser) parseTypeParams() []string {
	if p.peekTok.Type != lexer.LT {
		return nil
	}
	p.next() // consume '<'... but the lexer has no LT-as-generic-open special case;
	// '<' is lexed as LT, reused here as the generic parameter list delimiter.
	var params []string
	for {
		if !p.expectPeek(lexer.IDENT, "type parameter name") {
			return nil
		}
		params = append(params, p.curTok.Raw)
		if p.peekTok.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.GT, "'>' to close type parameter list") {
		return nil
	}
	return params
}

func (p *Parser) parseFunction() ast.Item {
	start := p.curTok.Span
	if !p.expectPeek(lexer.IDENT, "function name") {
		return nil
	}
	name := p.curTok.Raw

	typeParams := p.parseTypeParams()
	if p.failed() {
		return nil
	}

	if !p.expectPeek(lexer.LPAREN, "'(' after function name") {
		return nil
	}
	params := p.parseParams()
	if p.failed() {
		return nil
	}

	var retType ast.TypeExpr
	if p.peekTok.Type == lexer.ARROW {
		p.next()
		p.next()
		retType = p.parseType()
		if p.failed() {
			return nil
		}
	}

	if !p.expectPeek(lexer.LBRACE, "'{' to start function body") {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}

	return ast.NewFunction(name, typeParams, params, retType, body, mergeSpan(start, body.Span()))
}

func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.peekTok.Type == lexer.RPAREN {
		p.next()
		return params
	}
	for {
		start := p.peekTok.Span
		mutable := false
		if p.peekTok.Type == lexer.MUT {
			p.next()
			mutable = true
		}
		if !p.expectPeek(lexer.IDENT, "parameter name") {
			return nil
		}
		nameTok := p.curTok
		if !p.expectPeek(lexer.COLON, "':' after parameter name") {
			return nil
		}
		p.next()
		typ := p.parseType()
		if p.failed() {
			return nil
		}
		params = append(params, ast.NewParam(nameTok.Raw, typ, mutable, mergeSpan(start, typ.Span())))

		if p.peekTok.Type == lexer.COMMA {
			p.next()
			if p.peekTok.Type == lexer.RPAREN {
				p.next()
				break
			}
			continue
		}
		if !p.expectPeek(lexer.RPAREN, "',' or ')' in parameter list") {
			return nil
		}
		break
	}
	return params
}

func (p *Parser) parseStruct() ast.Item {
	start := p.curTok.Span
	if !p.expectPeek(lexer.IDENT, "struct name") {
		return nil
	}
	name := p.curTok.Raw

	typeParams := p.parseTypeParams()
	if p.failed() {
		return nil
	}

	if !p.expectPeek(lexer.LBRACE, "'{' after struct name") {
		return nil
	}

	var fields []*ast.FieldDecl
	for p.peekTok.Type != lexer.RBRACE {
		fieldStart := p.peekTok.Span
		if !p.expectPeek(lexer.IDENT, "field name") {
			return nil
		}
		nameTok := p.curTok
		if !p.expectPeek(lexer.COLON, "':' after field name") {
			return nil
		}
		p.next()
		typ := p.parseType()
		if p.failed() {
			return nil
		}
		fields = append(fields, ast.NewFieldDecl(nameTok.Raw, typ, mergeSpan(fieldStart, typ.Span())))

		if p.peekTok.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.RBRACE, "'}' to close struct") {
		return nil
	}

	return ast.NewStructDecl(name, typeParams, fields, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseEnum() ast.Item {
	start := p.curTok.Span
	if !p.expectPeek(lexer.IDENT, "enum name") {
		return nil
	}
	name := p.curTok.Raw

	typeParams := p.parseTypeParams()
	if p.failed() {
		return nil
	}

	if !p.expectPeek(lexer.LBRACE, "'{' after enum name") {
		return nil
	}

	var variants []*ast.Variant
	for p.peekTok.Type != lexer.RBRACE {
		variantStart := p.peekTok.Span
		if !p.expectPeek(lexer.IDENT, "variant name") {
			return nil
		}
		variantName := p.curTok.Raw

		var payload ast.VariantPayload = ast.NoPayload{}
		if p.peekTok.Type == lexer.LPAREN {
			p.next()
			var types []ast.TypeExpr
			if p.peekTok.Type != lexer.RPAREN {
				p.next()
				for {
					typ := p.parseType()
					if p.failed() {
						return nil
					}
					types = append(types, typ)
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
			if !p.expectPeek(lexer.RPAREN, "')' to close variant payload") {
				return nil
			}
			payload = ast.TuplePayload{Types: types}
		} else if p.peekTok.Type == lexer.LBRACE {
			p.next()
			var fields []*ast.FieldDecl
			for p.peekTok.Type != lexer.RBRACE {
				fieldStart := p.peekTok.Span
				if !p.expectPeek(lexer.IDENT, "field name") {
					return nil
				}
				fnTok := p.curTok
				if !p.expectPeek(lexer.COLON, "':' after field name") {
					return nil
				}
				p.next()
				typ := p.parseType()
				if p.failed() {
					return nil
				}
				fields = append(fields, ast.NewFieldDecl(fnTok.Raw, typ, mergeSpan(fieldStart, typ.Span())))
				if p.peekTok.Type == lexer.COMMA {
					p.next()
					continue
				}
				break
			}
			if !p.expectPeek(lexer.RBRACE, "'}' to close variant payload") {
				return nil
			}
			payload = ast.StructPayload{Fields: fields}
		}

		variants = append(variants, ast.NewVariant(variantName, payload, mergeSpan(variantStart, p.curTok.Span)))

		if p.peekTok.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.RBRACE, "'}' to close enum") {
		return nil
	}

	return ast.NewEnumDecl(name, typeParams, variants, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseConst() ast.Item {
	start := p.curTok.Span
	if !p.expectPeek(lexer.IDENT, "constant name") {
		return nil
	}
	name := p.curTok.Raw
	if !p.expectPeek(lexer.COLON, "':' after constant name") {
		return nil
	}
	p.next()
	typ := p.parseType()
	if p.failed() {
		return nil
	}
	if !p.expectPeek(lexer.ASSIGN, "'=' in const declaration") {
		return nil
	}
	p.next()
	value := p.parseExpr(precLowest)
	if p.failed() {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON, "';' after const declaration") {
		return nil
	}
	return ast.NewConstDecl(name, typ, value, mergeSpan(start, p.curTok.Span))
}
