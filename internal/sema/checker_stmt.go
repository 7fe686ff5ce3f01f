package sema

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/diag"
)

// checkBlock type-checks a block in a fresh child scope and returns the
// type of its tail expression, or UnitT if it has none.
func (c *Checker) checkBlock(b *ast.Block, parent *Scope) ast.Type {
	scope := NewScope(parent)
	for _, s := range b.Stmts {
		c.checkStmt(s, scope)
		if c.failed() {
			return nil
		}
	}
	if b.Tail == nil {
		return ast.UnitT{}
	}
	t := c.checkExprValue(b.Tail, scope)
	b.SetResolvedType(t)
	return t
}

func (c *Checker) checkStmt(s ast.Stmt, scope *Scope) {
	switch st := s.(type) {
	case *ast.LetStmt:
		c.checkLetStmt(st, scope)
	case *ast.AssignStmt:
		c.checkAssignStmt(st, scope)
	case *ast.ExprStmt:
		c.checkExprValue(st.X, scope)
	case *ast.ReturnStmt:
		c.checkReturnStmt(st, scope)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.failCode(diag.CodeSemaBadLoopControl, "'break' outside of a loop", st.Span())
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.failCode(diag.CodeSemaBadLoopControl, "'continue' outside of a loop", st.Span())
		}
	case *ast.WhileStmt:
		c.checkWhileStmt(st, scope)
	case *ast.ForStmt:
		c.checkForStmt(st, scope)
	default:
		c.fail("unsupported statement", s.Span())
	}
}

func (c *Checker) checkLetStmt(st *ast.LetStmt, scope *Scope) {
	var declared ast.Type
	if st.Type != nil {
		declared = c.resolveType(st.Type, c.curTypeParm)
		if c.failed() {
			return
		}
	}
	var initType ast.Type
	if st.Init != nil {
		initType = c.checkExprValue(st.Init, scope)
		if c.failed() {
			return
		}
		if declared != nil && !ast.SameType(declared, initType) {
			c.failCode(diag.CodeSemaTypeMismatch, "let initializer has type '"+initType.String()+"', expected '"+declared.String()+"'", st.Init.Span())
			return
		}
	}
	t := declared
	if t == nil {
		t = initType
	}
	if t == nil {
		c.fail("cannot infer type of 'let' binding without a type annotation or initializer", st.Span())
		return
	}
	state := StateLive
	if st.Init == nil {
		state = StateUninit
	}
	c.bindPattern(st.Pattern, t, st.Mutable, state, scope)
}

// bindPattern binds the names a pattern introduces against a scrutinee
// type already known to match (or being matched defensively for `let`,
// where the pattern is required to be irrefutable).
func (c *Checker) bindPattern(pat ast.Pattern, t ast.Type, mutable bool, state State, scope *Scope) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return
	case *ast.BindPattern:
		scope.Insert(&Binder{Name: p.Name, Type: t, Mutable: mutable || p.Mutable, State: state})
	case *ast.TuplePattern:
		c.bindTuplePattern(p, t, mutable, state, scope)
	case *ast.StructPattern:
		c.bindStructPattern(p, t, mutable, state, scope)
	case *ast.VariantPattern:
		return
	case *ast.LiteralPattern:
		return
	default:
		c.fail("unsupported pattern", pat.Span())
	}
}

func (c *Checker) bindTuplePattern(p *ast.TuplePattern, t ast.Type, mutable bool, state State, scope *Scope) {
	named, ok := t.(ast.NamedT)
	if !ok {
		c.fail("cannot destructure a non-enum value with a tuple pattern", p.Span())
		return
	}
	enum, vi, ok := c.lookupVariant(named.Name, lastSegment(p.Path))
	if !ok {
		c.fail("unknown enum variant in pattern", p.Span())
		return
	}
	_ = enum
	if len(vi.Types) != len(p.Elems) {
		c.failCode(diag.CodeSemaArityMismatch, "variant pattern has wrong number of elements", p.Span())
		return
	}
	for i, sub := range p.Elems {
		c.bindPattern(sub, vi.Types[i], mutable, state, scope)
		if c.failed() {
			return
		}
	}
}

func (c *Checker) bindStructPattern(p *ast.StructPattern, t ast.Type, mutable bool, state State, scope *Scope) {
	named, ok := t.(ast.NamedT)
	if !ok {
		c.fail("cannot destructure a non-struct value with a struct pattern", p.Span())
		return
	}
	var fields []FieldInfo
	if len(p.Path) == 1 {
		info, ok := c.Structs[named.Name]
		if !ok {
			c.fail("unknown struct in pattern", p.Span())
			return
		}
		fields = info.Fields
	} else {
		_, vi, ok := c.lookupVariant(named.Name, lastSegment(p.Path))
		if !ok {
			c.fail("unknown enum variant in pattern", p.Span())
			return
		}
		fields = vi.Fields
	}
	for _, fp := range p.Fields {
		ft, ok := fieldType(fields, fp.Name)
		if !ok {
			c.failCode(diag.CodeSemaFieldMismatch, "no field '"+fp.Name+"' on this pattern target", p.Span())
			return
		}
		c.bindPattern(fp.Pattern, ft, mutable, state, scope)
		if c.failed() {
			return
		}
	}
}

func fieldType(fields []FieldInfo, name string) (ast.Type, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

func lastSegment(path []string) string { return path[len(path)-1] }

func (c *Checker) lookupVariant(enumName, variantName string) (*EnumInfo, *VariantInfo, bool) {
	ei, ok := c.Enums[enumName]
	if !ok {
		return nil, nil, false
	}
	vi, ok := ei.variant(variantName)
	if !ok {
		return nil, nil, false
	}
	return ei, vi, true
}

func (c *Checker) checkAssignStmt(st *ast.AssignStmt, scope *Scope) {
	binder, ok := c.lvalueRoot(st.Target, scope)
	if !ok {
		c.fail("assignment target is not a local variable", st.Target.Span())
		return
	}
	if !binder.Mutable {
		c.failCode(diag.CodeSemaImmutableAssign, "cannot assign to immutable binding '"+binder.Name+"'", st.Span())
		return
	}
	targetType := c.checkExpr(st.Target, scope, false)
	if c.failed() {
		return
	}
	valType := c.checkExprValue(st.Value, scope)
	if c.failed() {
		return
	}
	if !ast.SameType(targetType, valType) {
		c.failCode(diag.CodeSemaTypeMismatch, "cannot assign value of type '"+valType.String()+"' to target of type '"+targetType.String()+"'", st.Span())
		return
	}
	if st.Op != ast.AssignSet {
		if _, isInt := targetType.(ast.IntT); !isInt {
			c.failCode(diag.CodeSemaTypeMismatch, "compound assignment operators require an integer target", st.Span())
			return
		}
	}
	binder.State = StateLive
}

func (c *Checker) checkReturnStmt(st *ast.ReturnStmt, scope *Scope) {
	if st.Value == nil {
		if !ast.SameType(c.curFnReturn, ast.UnitT{}) {
			c.failCode(diag.CodeSemaTypeMismatch, "missing return value", st.Span())
		}
		return
	}
	t := c.checkExprValue(st.Value, scope)
	if c.failed() {
		return
	}
	if !ast.SameType(t, c.curFnReturn) {
		c.failCode(diag.CodeSemaTypeMismatch, "return value has type '"+t.String()+"', expected '"+c.curFnReturn.String()+"'", st.Span())
	}
}

func (c *Checker) checkWhileStmt(st *ast.WhileStmt, scope *Scope) {
	condType := c.checkExprValue(st.Cond, scope)
	if c.failed() {
		return
	}
	if !ast.SameType(condType, ast.BoolT{}) {
		c.failCode(diag.CodeSemaTypeMismatch, "while condition must be bool", st.Cond.Span())
		return
	}
	c.loopDepth++
	c.checkBlock(st.Body, scope)
	c.loopDepth--
}

func (c *Checker) checkForStmt(st *ast.ForStmt, scope *Scope) {
	var elemType ast.Type
	switch it := st.Iterable.(type) {
	case ast.RangeIterable:
		lowT := c.checkExprValue(it.Low, scope)
		if c.failed() {
			return
		}
		highT := c.checkExprValue(it.High, scope)
		if c.failed() {
			return
		}
		if _, ok := lowT.(ast.IntT); !ok {
			c.failCode(diag.CodeSemaTypeMismatch, "for-range bounds must be integers", st.Span())
			return
		}
		if !ast.SameType(lowT, highT) {
			c.failCode(diag.CodeSemaTypeMismatch, "for-range bounds must share the same integer type", st.Span())
			return
		}
		elemType = lowT
	case ast.ExprIterable:
		arrType := c.checkExprValue(it.X, scope)
		if c.failed() {
			return
		}
		arr, ok := arrType.(ast.ArrayT)
		if !ok {
			c.failCode(diag.CodeSemaTypeMismatch, "for-loop expression must be an array", it.X.Span())
			return
		}
		if !ast.IsCopy(arr.Elem) {
			c.fail("cannot iterate an array of non-Copy elements by value", it.X.Span())
			return
		}
		elemType = arr.Elem
	}

	inner := NewScope(scope)
	inner.Insert(&Binder{Name: st.Binder, Type: elemType, Mutable: false, State: StateLive})
	c.loopDepth++
	c.checkBlock(st.Body, inner)
	c.loopDepth--
}
