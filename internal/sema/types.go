package sema

import "github.com/palladium-lang/palladium/internal/ast"

var primitiveInts = map[string]ast.IntT{
	"i8": ast.I8, "i16": ast.I16, "i32": ast.I32, "i64": ast.I64,
	"u8": ast.U8, "u16": ast.U16, "u32": ast.U32, "u64": ast.U64,
}

// resolveType converts a syntactic TypeExpr into a resolved Type, given the
// set of type parameters in scope for the enclosing declaration (spec.md
// §9: type parameters are opaque and unify only with themselves).
func (c *Checker) resolveType(te ast.TypeExpr, typeParams map[string]bool) ast.Type {
	switch t := te.(type) {
	case *ast.UnitType:
		return ast.UnitT{}

	case *ast.NamedType:
		if it, ok := primitiveInts[t.Name]; ok {
			return it
		}
		if t.Name == "bool" {
			return ast.BoolT{}
		}
		if t.Name == "String" {
			return ast.StringT{}
		}
		if typeParams != nil && typeParams[t.Name] {
			return ast.TypeParamT{Name: t.Name}
		}
		if _, ok := c.Structs[t.Name]; ok {
			return ast.NamedT{Name: t.Name, TypeArgs: c.resolveTypeArgs(t.TypeArgs, typeParams)}
		}
		if _, ok := c.Enums[t.Name]; ok {
			return ast.NamedT{Name: t.Name, TypeArgs: c.resolveTypeArgs(t.TypeArgs, typeParams)}
		}
		c.fail("unresolved type name '"+t.Name+"'", t.Span())
		return nil

	case *ast.RefType:
		elem := c.resolveType(t.Elem, typeParams)
		if c.failed() {
			return nil
		}
		return ast.RefT{Mutable: t.Mutable, Elem: elem}

	case *ast.ArrayType:
		elem := c.resolveType(t.Elem, typeParams)
		if c.failed() {
			return nil
		}
		size, ok := c.constIntValue(t.Size)
		if !ok {
			c.fail("array size must be a constant integer expression", t.Size.Span())
			return nil
		}
		if size < 0 {
			c.fail("array size must not be negative", t.Size.Span())
			return nil
		}
		return ast.ArrayT{Elem: elem, Size: size}

	case *ast.FnType:
		params := make([]ast.Type, 0, len(t.Params))
		for _, p := range t.Params {
			pt := c.resolveType(p, typeParams)
			if c.failed() {
				return nil
			}
			params = append(params, pt)
		}
		result := c.resolveType(t.Result, typeParams)
		if c.failed() {
			return nil
		}
		return ast.FnT{Params: params, Result: result}

	default:
		c.fail("unsupported type expression", te.Span())
		return nil
	}
}

func (c *Checker) resolveTypeArgs(args []ast.TypeExpr, typeParams map[string]bool) []ast.Type {
	out := make([]ast.Type, 0, len(args))
	for _, a := range args {
		t := c.resolveType(a, typeParams)
		if c.failed() {
			return nil
		}
		out = append(out, t)
	}
	return out
}

// constIntValue evaluates an array-size expression. Only literal integers
// and references to previously declared `const` integer items are accepted
// (spec.md §3: "size: constant usize").
func (c *Checker) constIntValue(e ast.Expr) (int64, bool) {
	switch x := e.(type) {
	case *ast.IntLit:
		return x.Value, true
	case *ast.PathExpr:
		if len(x.Segments) == 1 {
			if ci, ok := c.Consts[x.Segments[0]]; ok {
				if lit, ok := ci.Value.(*ast.IntLit); ok {
					return lit.Value, true
				}
			}
		}
	}
	return 0, false
}

func typeParamSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
