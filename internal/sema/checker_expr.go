package sema

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// checkExprValue type-checks e and, if it turns out to be a bare read of a
// non-Copy local binding, performs the Live -> Moved transition spec.md
// §4.3.3 requires ("reading a non-Copy value consumes it").
func (c *Checker) checkExprValue(e ast.Expr, scope *Scope) ast.Type {
	t := c.checkExpr(e, scope, true)
	if c.failed() {
		return nil
	}
	if path, ok := e.(*ast.PathExpr); ok && len(path.Segments) == 1 {
		if b := scope.Lookup(path.Segments[0]); b != nil && !ast.IsCopy(t) {
			b.State = StateMoved
		}
	}
	return t
}

func (c *Checker) checkExpr(e ast.Expr, scope *Scope, wantValue bool) ast.Type {
	var t ast.Type
	switch x := e.(type) {
	case *ast.IntLit:
		t = ast.I64
	case *ast.StringLit:
		t = ast.StringT{}
	case *ast.BoolLit:
		t = ast.BoolT{}
	case *ast.PathExpr:
		t = c.checkPathExpr(x, scope, wantValue)
	case *ast.CallExpr:
		t = c.checkCallExpr(x, scope)
	case *ast.MethodCallExpr:
		t = c.checkMethodCallExpr(x, scope)
	case *ast.BinaryExpr:
		t = c.checkBinaryExpr(x, scope)
	case *ast.UnaryExpr:
		t = c.checkUnaryExpr(x, scope)
	case *ast.RefExpr:
		t = c.checkRefExpr(x, scope)
	case *ast.IndexExpr:
		t = c.checkIndexExpr(x, scope, wantValue)
	case *ast.FieldExpr:
		t = c.checkFieldExpr(x, scope, wantValue)
	case *ast.ArrayLit:
		t = c.checkArrayLit(x, scope)
	case *ast.RepeatLit:
		t = c.checkRepeatLit(x, scope)
	case *ast.StructLit:
		t = c.checkStructLit(x, scope)
	case *ast.Block:
		t = c.checkBlock(x, scope)
	case *ast.IfExpr:
		t = c.checkIfExpr(x, scope)
	case *ast.MatchExpr:
		t = c.checkMatchExpr(x, scope)
	default:
		c.fail("unsupported expression", e.Span())
		return nil
	}
	if c.failed() {
		return nil
	}
	e.SetResolvedType(t)
	return t
}

func (c *Checker) checkPathExpr(x *ast.PathExpr, scope *Scope, wantValue bool) ast.Type {
	if len(x.Segments) == 2 {
		ei, vi, ok := c.lookupVariant(x.Segments[0], x.Segments[1])
		if !ok {
			c.failCode(diag.CodeSemaUnresolvedName, "unknown enum variant '"+x.Segments[0]+"::"+x.Segments[1]+"'", x.Span())
			return nil
		}
		if _, isNoPayload := vi.Payload.(ast.NoPayload); !isNoPayload {
			c.fail("variant '"+vi.Name+"' requires a payload and cannot be used as a bare value", x.Span())
			return nil
		}
		return ast.NamedT{Name: ei.Name}
	}

	name := x.Segments[0]
	if b := scope.Lookup(name); b != nil {
		if wantValue {
			switch b.State {
			case StateMoved:
				c.failCode(diag.CodeSemaUseAfterMove, "use of moved value '"+name+"'", x.Span())
				return nil
			case StateUninit:
				c.fail("use of possibly-uninitialized binding '"+name+"'", x.Span())
				return nil
			}
		}
		return b.Type
	}
	if ci, ok := c.Consts[name]; ok {
		return ci.Type
	}
	if fi, ok := c.Funcs[name]; ok {
		return ast.FnT{Params: fi.ParamTypes, Result: fi.ReturnType}
	}
	c.failCode(diag.CodeSemaUnresolvedName, "unresolved name '"+name+"'", x.Span())
	return nil
}

func (c *Checker) checkCallExpr(x *ast.CallExpr, scope *Scope) ast.Type {
	if path, ok := x.Callee.(*ast.PathExpr); ok {
		if len(path.Segments) == 2 {
			return c.checkVariantConstruct(path.Segments[0], path.Segments[1], x, scope)
		}
		if len(path.Segments) == 1 {
			if fi, ok := c.Funcs[path.Segments[0]]; ok {
				return c.checkCallAgainst(fi.ParamTypes, fi.ReturnType, x.Args, x.Span(), scope)
			}
			c.failCode(diag.CodeSemaUnresolvedName, "unresolved function '"+path.Segments[0]+"'", x.Span())
			return nil
		}
	}
	c.fail("call target is not a function", x.Callee.Span())
	return nil
}

// checkMethodCallExpr handles the small set of "method-style" calls the
// parser admits as `recv.method(args)` (spec.md §3: "lowered to calls in
// semantic phase"); the core language defines no real methods, so the only
// recognized form is a call to a free-function builtin with recv as its
// first argument, named exactly as the builtin (e.g. `s.string_len()` for
// `string_len(s)`). The node is type-checked here and left in place;
// codegen emits the call.
func (c *Checker) checkMethodCallExpr(x *ast.MethodCallExpr, scope *Scope) ast.Type {
	fi, ok := c.Funcs[x.Method]
	if !ok || !fi.Builtin {
		c.failCode(diag.CodeSemaUnresolvedName, "unknown method '"+x.Method+"'", x.Span())
		return nil
	}
	args := append([]ast.Expr{x.Receiver}, x.Args...)
	return c.checkCallAgainst(fi.ParamTypes, fi.ReturnType, args, x.Span(), scope)
}

func (c *Checker) checkVariantConstruct(enumName, variantName string, x *ast.CallExpr, scope *Scope) ast.Type {
	ei, vi, ok := c.lookupVariant(enumName, variantName)
	if !ok {
		c.failCode(diag.CodeSemaUnresolvedName, "unknown enum variant '"+enumName+"::"+variantName+"'", x.Span())
		return nil
	}
	_, ok = vi.Payload.(ast.TuplePayload)
	if !ok {
		c.fail("variant '"+vi.Name+"' does not take positional arguments", x.Span())
		return nil
	}
	return c.checkCallAgainst(vi.Types, ast.NamedT{Name: ei.Name}, x.Args, x.Span(), scope)
}

// checkCallAgainst type-checks argument expressions against params left to
// right (spec.md §4.3.2: "the argument count must match; each argument's
// type must equal the parameter's type. References are not auto-inserted").
// It also enforces the conservative call-site borrow rule of §4.3.3: a
// `&mut x` argument must not share its root binder with any other argument
// of the same call.
func (c *Checker) checkCallAgainst(params []ast.Type, result ast.Type, args []ast.Expr, span lexer.Span, scope *Scope) ast.Type {
	if len(params) != len(args) {
		c.failCode(diag.CodeSemaArityMismatch, "expected", span)
		return nil
	}
	mutBorrowed := make(map[string]bool)
	referenced := make(map[string]bool)
	for i, arg := range args {
		argType := c.checkExprValue(arg, scope)
		if c.failed() {
			return nil
		}
		if !ast.SameType(argType, params[i]) {
			c.failCode(diag.CodeSemaTypeMismatch, "argument "+ordinal(i+1)+" has type '"+argType.String()+"', expected '"+params[i].String()+"'", arg.Span())
			return nil
		}
		if ref, ok := arg.(*ast.RefExpr); ok {
			if binder, ok := c.lvalueRoot(ref.X, scope); ok {
				if ref.Mutable {
					if mutBorrowed[binder.Name] || referenced[binder.Name] {
						c.failCode(diag.CodeSemaBorrowConflict, "cannot borrow '"+binder.Name+"' mutably while it is already borrowed in this call", ref.Span())
						return nil
					}
					mutBorrowed[binder.Name] = true
				} else if mutBorrowed[binder.Name] {
					c.failCode(diag.CodeSemaBorrowConflict, "cannot borrow '"+binder.Name+"' while it is already mutably borrowed in this call", ref.Span())
					return nil
				}
				referenced[binder.Name] = true
			}
		}
	}
	return result
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return "Nth"
	}
}

func (c *Checker) checkBinaryExpr(x *ast.BinaryExpr, scope *Scope) ast.Type {
	lt := c.checkExprValue(x.Left, scope)
	if c.failed() {
		return nil
	}
	rt := c.checkExprValue(x.Right, scope)
	if c.failed() {
		return nil
	}

	switch x.Op {
	case ast.OpAnd, ast.OpOr:
		if !ast.SameType(lt, ast.BoolT{}) || !ast.SameType(rt, ast.BoolT{}) {
			c.failCode(diag.CodeSemaTypeMismatch, "operands of '&&'/'||' must be bool", x.Span())
			return nil
		}
		return ast.BoolT{}

	case ast.OpEq, ast.OpNeq:
		if !ast.SameType(lt, rt) {
			c.failCode(diag.CodeSemaTypeMismatch, "cannot compare values of different types", x.Span())
			return nil
		}
		return ast.BoolT{}

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !ast.SameType(lt, rt) {
			c.failCode(diag.CodeSemaTypeMismatch, "cannot order values of different types", x.Span())
			return nil
		}
		switch lt.(type) {
		case ast.IntT, ast.StringT:
		default:
			c.failCode(diag.CodeSemaTypeMismatch, "ordering operators apply only to integers and strings", x.Span())
			return nil
		}
		return ast.BoolT{}

	case ast.OpAdd:
		if ast.SameType(lt, ast.StringT{}) && ast.SameType(rt, ast.StringT{}) {
			return ast.StringT{}
		}
		return c.checkArithmetic(x, lt, rt)

	default: // OpSub, OpMul, OpDiv, OpMod
		return c.checkArithmetic(x, lt, rt)
	}
}

// checkArithmetic enforces spec.md §4.3.2's "both operands must have the
// same integer type" rule for `+ - * / %`, including the compile-time
// division/modulo-by-literal-zero check.
func (c *Checker) checkArithmetic(x *ast.BinaryExpr, lt, rt ast.Type) ast.Type {
	li, lok := lt.(ast.IntT)
	ri, rok := rt.(ast.IntT)
	if !lok || !rok || li != ri {
		c.failCode(diag.CodeSemaTypeMismatch, "arithmetic operands must share the same integer type", x.Span())
		return nil
	}
	if x.Op == ast.OpDiv || x.Op == ast.OpMod {
		if lit, ok := x.Right.(*ast.IntLit); ok && lit.Value == 0 {
			c.failCode(diag.CodeSemaDivisionByZero, "division or modulo by the literal zero", x.Right.Span())
			return nil
		}
	}
	return li
}

func (c *Checker) checkUnaryExpr(x *ast.UnaryExpr, scope *Scope) ast.Type {
	t := c.checkExprValue(x.X, scope)
	if c.failed() {
		return nil
	}
	switch x.Op {
	case ast.OpNeg:
		it, ok := t.(ast.IntT)
		if !ok || !it.Signed {
			c.failCode(diag.CodeSemaTypeMismatch, "unary '-' requires a signed integer operand", x.Span())
			return nil
		}
		return it
	case ast.OpNot:
		if !ast.SameType(t, ast.BoolT{}) {
			c.failCode(diag.CodeSemaTypeMismatch, "unary '!' requires a bool operand", x.Span())
			return nil
		}
		return ast.BoolT{}
	}
	c.fail("unsupported unary operator", x.Span())
	return nil
}

func (c *Checker) checkRefExpr(x *ast.RefExpr, scope *Scope) ast.Type {
	binder, ok := c.lvalueRoot(x.X, scope)
	if !ok {
		c.fail("cannot take a reference to a non-lvalue expression", x.X.Span())
		return nil
	}
	if x.Mutable && !binder.Mutable {
		c.failCode(diag.CodeSemaBorrowConflict, "cannot borrow '"+binder.Name+"' as mutable because it is not declared 'mut'", x.Span())
		return nil
	}
	t := c.checkExpr(x.X, scope, false)
	if c.failed() {
		return nil
	}
	return ast.RefT{Mutable: x.Mutable, Elem: t}
}

func (c *Checker) checkIndexExpr(x *ast.IndexExpr, scope *Scope, wantValue bool) ast.Type {
	arrType := c.checkExpr(x.Array, scope, wantValue)
	if c.failed() {
		return nil
	}
	arr, ok := underlyingArray(arrType)
	if !ok {
		c.failCode(diag.CodeSemaTypeMismatch, "indexing requires an array (or reference to one)", x.Array.Span())
		return nil
	}
	idxType := c.checkExprValue(x.Index, scope)
	if c.failed() {
		return nil
	}
	if _, ok := idxType.(ast.IntT); !ok {
		c.failCode(diag.CodeSemaTypeMismatch, "array index must be an integer", x.Index.Span())
		return nil
	}
	if lit, ok := x.Index.(*ast.IntLit); ok {
		if lit.Value < 0 || lit.Value >= arr.Size {
			c.failCode(diag.CodeSemaArrayIndexBounds, "index out of bounds for an array of size", x.Index.Span())
			return nil
		}
	}
	return arr.Elem
}

func underlyingArray(t ast.Type) (ast.ArrayT, bool) {
	switch tv := t.(type) {
	case ast.ArrayT:
		return tv, true
	case ast.RefT:
		return underlyingArray(tv.Elem)
	default:
		return ast.ArrayT{}, false
	}
}

func underlyingNamed(t ast.Type) (ast.NamedT, bool) {
	switch tv := t.(type) {
	case ast.NamedT:
		return tv, true
	case ast.RefT:
		return underlyingNamed(tv.Elem)
	default:
		return ast.NamedT{}, false
	}
}

func (c *Checker) checkFieldExpr(x *ast.FieldExpr, scope *Scope, wantValue bool) ast.Type {
	baseType := c.checkExpr(x.X, scope, wantValue)
	if c.failed() {
		return nil
	}
	named, ok := underlyingNamed(baseType)
	if !ok {
		c.failCode(diag.CodeSemaTypeMismatch, "field access requires a struct value (or reference to one)", x.X.Span())
		return nil
	}
	info, ok := c.Structs[named.Name]
	if !ok {
		c.failCode(diag.CodeSemaFieldMismatch, "'"+named.Name+"' has no fields", x.Span())
		return nil
	}
	f, ok := info.field(x.Field)
	if !ok {
		c.failCode(diag.CodeSemaFieldMismatch, "struct '"+named.Name+"' has no field '"+x.Field+"'", x.Span())
		return nil
	}
	return f.Type
}

func (c *Checker) checkArrayLit(x *ast.ArrayLit, scope *Scope) ast.Type {
	if len(x.Elems) == 0 {
		c.fail("cannot infer the element type of an empty array literal", x.Span())
		return nil
	}
	first := c.checkExprValue(x.Elems[0], scope)
	if c.failed() {
		return nil
	}
	for _, e := range x.Elems[1:] {
		t := c.checkExprValue(e, scope)
		if c.failed() {
			return nil
		}
		if !ast.SameType(t, first) {
			c.failCode(diag.CodeSemaTypeMismatch, "array literal elements must share a common type", e.Span())
			return nil
		}
	}
	return ast.ArrayT{Elem: first, Size: int64(len(x.Elems))}
}

func (c *Checker) checkRepeatLit(x *ast.RepeatLit, scope *Scope) ast.Type {
	elemType := c.checkExprValue(x.Elem, scope)
	if c.failed() {
		return nil
	}
	n, ok := c.constIntValue(x.Count)
	if !ok {
		c.fail("repeat-literal count must be a constant integer expression", x.Count.Span())
		return nil
	}
	if n < 0 {
		c.fail("repeat-literal count must not be negative", x.Count.Span())
		return nil
	}
	if n > 1 && !ast.IsCopy(elemType) {
		c.fail("repeat-literal element type must be Copy when repeated more than once", x.Elem.Span())
		return nil
	}
	return ast.ArrayT{Elem: elemType, Size: n}
}

func (c *Checker) checkStructLit(x *ast.StructLit, scope *Scope) ast.Type {
	info, ok := c.Structs[x.Name]
	if !ok {
		c.failCode(diag.CodeSemaUnresolvedName, "unknown struct '"+x.Name+"'", x.Span())
		return nil
	}
	seen := make(map[string]bool, len(x.Fields))
	for _, fi := range x.Fields {
		ft, ok := info.field(fi.Name)
		if !ok {
			c.failCode(diag.CodeSemaFieldMismatch, "struct '"+x.Name+"' has no field '"+fi.Name+"'", x.Span())
			return nil
		}
		if seen[fi.Name] {
			c.failCode(diag.CodeSemaFieldMismatch, "field '"+fi.Name+"' supplied more than once", x.Span())
			return nil
		}
		seen[fi.Name] = true
		vt := c.checkExprValue(fi.Value, scope)
		if c.failed() {
			return nil
		}
		if !ast.SameType(vt, ft.Type) {
			c.failCode(diag.CodeSemaTypeMismatch, "field '"+fi.Name+"' has type '"+vt.String()+"', expected '"+ft.Type.String()+"'", fi.Value.Span())
			return nil
		}
	}
	if len(seen) != len(info.Fields) {
		c.failCode(diag.CodeSemaFieldMismatch, "struct literal for '"+x.Name+"' is missing one or more fields", x.Span())
		return nil
	}
	return ast.NamedT{Name: x.Name}
}

// checkIfExpr type-checks `if`. Without an else branch it has unit type.
// With an else branch it has the branches' type when both agree and unit
// type when they differ; differing branch types are not reported as an
// error, whether the if is used as a statement or as an expression.
func (c *Checker) checkIfExpr(x *ast.IfExpr, scope *Scope) ast.Type {
	condType := c.checkExprValue(x.Cond, scope)
	if c.failed() {
		return nil
	}
	if !ast.SameType(condType, ast.BoolT{}) {
		c.failCode(diag.CodeSemaTypeMismatch, "if condition must be bool", x.Cond.Span())
		return nil
	}
	thenType := c.checkBlock(x.Then, scope)
	if c.failed() {
		return nil
	}

	switch {
	case x.ElseIf != nil:
		elseType := c.checkIfExpr(x.ElseIf, scope)
		if c.failed() {
			return nil
		}
		if ast.SameType(thenType, elseType) {
			return thenType
		}
		return ast.UnitT{}
	case x.ElseBlk != nil:
		elseType := c.checkBlock(x.ElseBlk, scope)
		if c.failed() {
			return nil
		}
		if ast.SameType(thenType, elseType) {
			return thenType
		}
		return ast.UnitT{}
	default:
		return ast.UnitT{}
	}
}

// checkMatchExpr enforces spec.md §4.3.2: the scrutinee's type must unify
// with every arm's pattern and every arm body must share one common type.
// Exhaustiveness is not checked (spec.md §9).
func (c *Checker) checkMatchExpr(x *ast.MatchExpr, scope *Scope) ast.Type {
	scrutType := c.checkExprValue(x.Scrutinee, scope)
	if c.failed() {
		return nil
	}
	var resultType ast.Type
	for i := range x.Arms {
		arm := &x.Arms[i]
		armScope := NewScope(scope)
		c.checkPatternAgainst(arm.Pattern, scrutType, armScope)
		if c.failed() {
			return nil
		}
		bodyType := c.checkExprValue(arm.Body, armScope)
		if c.failed() {
			return nil
		}
		if resultType == nil {
			resultType = bodyType
		} else if !ast.SameType(resultType, bodyType) {
			c.failCode(diag.CodeSemaTypeMismatch, "match arms must all produce the same type", arm.Body.Span())
			return nil
		}
	}
	if resultType == nil {
		return ast.UnitT{}
	}
	return resultType
}

// checkPatternAgainst verifies a match arm's pattern is compatible with the
// scrutinee's resolved type and binds any names it introduces, live (not
// moved) from the start of the arm.
func (c *Checker) checkPatternAgainst(pat ast.Pattern, t ast.Type, scope *Scope) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return
	case *ast.BindPattern:
		scope.Insert(&Binder{Name: p.Name, Type: t, Mutable: p.Mutable, State: StateLive})
	case *ast.LiteralPattern:
		lt, ok := literalType(p.Value)
		if !ok || !ast.SameType(lt, t) {
			c.failCode(diag.CodeSemaTypeMismatch, "pattern type does not match the scrutinee", p.Span())
			return
		}
	case *ast.VariantPattern:
		named, ok := t.(ast.NamedT)
		if !ok {
			c.failCode(diag.CodeSemaTypeMismatch, "variant pattern used against a non-enum scrutinee", p.Span())
			return
		}
		_, vi, ok := c.lookupVariant(named.Name, lastSegment(p.Path))
		if !ok {
			c.failCode(diag.CodeSemaUnresolvedName, "unknown enum variant in pattern", p.Span())
			return
		}
		if _, isNoPayload := vi.Payload.(ast.NoPayload); !isNoPayload {
			c.failCode(diag.CodeSemaArityMismatch, "variant '"+vi.Name+"' requires a payload pattern", p.Span())
			return
		}
	case *ast.TuplePattern:
		c.bindTuplePattern(p, t, false, StateLive, scope)
	case *ast.StructPattern:
		c.bindStructPattern(p, t, false, StateLive, scope)
	default:
		c.fail("unsupported pattern", pat.Span())
	}
}

// lvalueRoot resolves the local binder an lvalue expression is rooted in
// (spec.md glossary: "an expression denoting a storage location (binder,
// field/index chain rooted in one)"), walking through field/index
// projections down to a path naming the binder.
func (c *Checker) lvalueRoot(e ast.Expr, scope *Scope) (*Binder, bool) {
	switch x := e.(type) {
	case *ast.PathExpr:
		if len(x.Segments) != 1 {
			return nil, false
		}
		b := scope.Lookup(x.Segments[0])
		if b == nil {
			return nil, false
		}
		return b, true
	case *ast.FieldExpr:
		return c.lvalueRoot(x.X, scope)
	case *ast.IndexExpr:
		return c.lvalueRoot(x.Array, scope)
	default:
		return nil, false
	}
}
