package codegen

import (
	"fmt"

	"github.com/palladium-lang/palladium/internal/ast"
)

// cBaseType renders t's C spelling for use as a declaration's base type.
// Arrays do not have a single base-type spelling in C (the size attaches
// to the declarator, not the type), so callers that might be declaring an
// array must go through cDeclare instead.
func (g *Generator) cBaseType(t ast.Type) string {
	switch tv := t.(type) {
	case ast.UnitT:
		return "void"
	case ast.BoolT:
		return "int"
	case ast.IntT:
		return cIntName(tv)
	case ast.StringT:
		return "const char*"
	case ast.ArrayT:
		return g.cBaseType(tv.Elem)
	case ast.RefT:
		// References decay to a pointer to the referent's element type;
		// a reference to an array is a pointer to its first element
		// (spec.md §4.4: "Arrays passed by reference lower to
		// pointer-to-first-element").
		return g.cBaseType(tv.Elem) + "*"
	case ast.NamedT:
		return tv.Name
	case ast.FnT:
		return "void*"
	default:
		g.fail("codegen: unsupported type " + t.String())
		return "void"
	}
}

func cIntName(t ast.IntT) string {
	if t.Signed {
		switch t.Width {
		case 8:
			return "int8_t"
		case 16:
			return "int16_t"
		case 32:
			return "int32_t"
		default:
			return "int64_t"
		}
	}
	switch t.Width {
	case 8:
		return "uint8_t"
	case 16:
		return "uint16_t"
	case 32:
		return "uint32_t"
	default:
		return "uint64_t"
	}
}

// cDeclare renders a full C declarator for a variable of type t named
// name, e.g. "int64_t x" or "int64_t arr[5]" or "const char* s". Nested
// array-of-array types compose the bracket suffixes outward.
func (g *Generator) cDeclare(t ast.Type, name string) string {
	if arr, ok := t.(ast.ArrayT); ok {
		return g.cDeclare(arr.Elem, fmt.Sprintf("%s[%d]", name, arr.Size))
	}
	return g.cBaseType(t) + " " + name
}

// isArrayType reports whether t (after seeing through references, which is
// how `for x in arr`/`&arr` present an array to the checker) is ultimately
// a fixed-size array.
func isArrayType(t ast.Type) bool {
	_, ok := underlyingArrayT(t)
	return ok
}

// underlyingArrayT sees through a reference to the array type itself, the
// way sema's own unexported lvalue/index-checking helpers do.
func underlyingArrayT(t ast.Type) (ast.ArrayT, bool) {
	switch tv := t.(type) {
	case ast.ArrayT:
		return tv, true
	case ast.RefT:
		return underlyingArrayT(tv.Elem)
	default:
		return ast.ArrayT{}, false
	}
}

func isRefType(t ast.Type) bool {
	_, ok := t.(ast.RefT)
	return ok
}

// typeExprToType gives codegen its own minimal syntax-to-resolved-type
// pass, mirroring sema's unexported resolveType, for the one place codegen
// needs a concrete type without an initializer expression to read it off
// of: a `let` binding declared with a type annotation but no initializer.
func (g *Generator) typeExprToType(te ast.TypeExpr) ast.Type {
	switch t := te.(type) {
	case *ast.UnitType:
		return ast.UnitT{}
	case *ast.NamedType:
		switch t.Name {
		case "bool":
			return ast.BoolT{}
		case "String":
			return ast.StringT{}
		case "i8":
			return ast.I8
		case "i16":
			return ast.I16
		case "i32":
			return ast.I32
		case "i64":
			return ast.I64
		case "u8":
			return ast.U8
		case "u16":
			return ast.U16
		case "u32":
			return ast.U32
		case "u64":
			return ast.U64
		default:
			return ast.NamedT{Name: t.Name}
		}
	case *ast.RefType:
		return ast.RefT{Mutable: t.Mutable, Elem: g.typeExprToType(t.Elem)}
	case *ast.ArrayType:
		size, _ := constIntLiteral(t.Size)
		return ast.ArrayT{Elem: g.typeExprToType(t.Elem), Size: size}
	case *ast.FnType:
		return ast.FnT{}
	default:
		g.fail("codegen: unsupported type annotation")
		return ast.UnitT{}
	}
}

func constIntLiteral(e ast.Expr) (int64, bool) {
	if lit, ok := e.(*ast.IntLit); ok {
		return lit.Value, true
	}
	return 0, false
}
