// Package sema implements Palladium's semantic analyzer: name resolution,
// type checking, and move/borrow checking, run as the three interleaved
// passes spec.md §4.3 describes over the parser's AST.
package sema

import (
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// Checker accumulates the resolved symbol tables built from one
// translation unit and enforces spec.md §4.3's rules over it. Like the
// lexer and parser, it reports only the first diagnostic it hits
// (spec.md §7) rather than the teacher's accumulate-all-errors style.
type Checker struct {
	Structs map[string]*StructInfo
	Enums   map[string]*EnumInfo
	Funcs   map[string]*FuncInfo
	Consts  map[string]*ConstInfo

	GlobalScope *Scope

	curFnReturn ast.Type
	curTypeParm map[string]bool
	loopDepth   int

	err *Error
}

func NewChecker() *Checker {
	c := &Checker{
		Structs:     make(map[string]*StructInfo),
		Enums:       make(map[string]*EnumInfo),
		Funcs:       make(map[string]*FuncInfo),
		Consts:      make(map[string]*ConstInfo),
		GlobalScope: NewScope(nil),
	}
	c.registerBuiltins()
	return c
}

// fail records the first diagnostic hit; later calls are no-ops so the
// checker can keep unwinding call stacks without overwriting the original
// error (mirrors parser.Parser's fail/failed pattern). Callers that care
// about a specific diag.Code use failCode directly; fail/failWith default
// to the generic unresolved-name code, which callers needing a sharper
// classification override.
func (c *Checker) fail(msg string, span lexer.Span) {
	c.failCode(diag.CodeSemaUnresolvedName, msg, span)
}

func (c *Checker) failWith(msg string, span lexer.Span) {
	c.failCode(diag.CodeSemaUnresolvedName, msg, span)
}

func (c *Checker) failCode(code diag.Code, msg string, span lexer.Span) {
	if c.err != nil {
		return
	}
	c.err = &Error{Code: code, Message: msg, Span: span}
}

// Check runs semantic analysis over a parsed file, returning the resolved
// checker (whose tables codegen consumes) or the first diagnostic hit.
func Check(file *ast.File) (*Checker, error) {
	c := NewChecker()
	c.registerItems(file)
	if c.failed() {
		return nil, *c.err
	}
	c.checkItems(file)
	if c.failed() {
		return nil, *c.err
	}
	return c, nil
}

func (c *Checker) failed() bool { return c.err != nil }

// registerItems runs the name-resolution prepass spec.md §4.3.1 requires:
// declare every item's name first so forward references are legal, then
// resolve each item's signature now that every name exists.
func (c *Checker) registerItems(file *ast.File) {
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.StructDecl:
			if _, exists := c.Structs[it.Name]; exists {
				c.failWith("struct '"+it.Name+"' is already declared", it.Span())
				return
			}
			c.Structs[it.Name] = &StructInfo{Name: it.Name, TypeParams: it.TypeParams}
		case *ast.EnumDecl:
			if _, exists := c.Enums[it.Name]; exists {
				c.failWith("enum '"+it.Name+"' is already declared", it.Span())
				return
			}
			c.Enums[it.Name] = &EnumInfo{Name: it.Name, TypeParams: it.TypeParams}
		case *ast.Function:
			if existing, exists := c.Funcs[it.Name]; exists && !existing.Builtin {
				c.failWith("function '"+it.Name+"' is already declared", it.Span())
				return
			}
			c.Funcs[it.Name] = &FuncInfo{Name: it.Name, TypeParams: it.TypeParams}
		case *ast.ConstDecl:
			if _, exists := c.Consts[it.Name]; exists {
				c.failWith("constant '"+it.Name+"' is already declared", it.Span())
				return
			}
			c.Consts[it.Name] = &ConstInfo{Name: it.Name}
		}
	}

	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.StructDecl:
			c.resolveStructSignature(it)
		case *ast.EnumDecl:
			c.resolveEnumSignature(it)
		case *ast.Function:
			c.resolveFuncSignature(it)
		case *ast.ConstDecl:
			c.resolveConstSignature(it)
		}
		if c.failed() {
			return
		}
	}
}

func (c *Checker) resolveStructSignature(it *ast.StructDecl) {
	info := c.Structs[it.Name]
	tp := typeParamSet(it.TypeParams)
	for _, f := range it.Fields {
		ft := c.resolveType(f.Type, tp)
		if c.failed() {
			return
		}
		info.Fields = append(info.Fields, FieldInfo{Name: f.Name, Type: ft})
	}
}

func (c *Checker) resolveEnumSignature(it *ast.EnumDecl) {
	info := c.Enums[it.Name]
	tp := typeParamSet(it.TypeParams)
	for _, v := range it.Variants {
		vi := &VariantInfo{Name: v.Name, Payload: v.Payload}
		switch payload := v.Payload.(type) {
		case ast.TuplePayload:
			for _, t := range payload.Types {
				rt := c.resolveType(t, tp)
				if c.failed() {
					return
				}
				vi.Types = append(vi.Types, rt)
			}
		case ast.StructPayload:
			for _, f := range payload.Fields {
				rt := c.resolveType(f.Type, tp)
				if c.failed() {
					return
				}
				vi.Fields = append(vi.Fields, FieldInfo{Name: f.Name, Type: rt})
			}
		}
		info.Variants = append(info.Variants, vi)
	}
}

func (c *Checker) resolveFuncSignature(it *ast.Function) {
	info := c.Funcs[it.Name]
	tp := typeParamSet(it.TypeParams)
	for _, p := range it.Params {
		pt := c.resolveType(p.Type, tp)
		if c.failed() {
			return
		}
		info.ParamTypes = append(info.ParamTypes, pt)
		info.ParamNames = append(info.ParamNames, p.Name)
		info.ParamMutable = append(info.ParamMutable, p.Mutable)
	}
	if it.ReturnType != nil {
		info.ReturnType = c.resolveType(it.ReturnType, tp)
		if c.failed() {
			return
		}
	} else {
		info.ReturnType = ast.UnitT{}
	}
}

func (c *Checker) resolveConstSignature(it *ast.ConstDecl) {
	info := c.Consts[it.Name]
	info.Type = c.resolveType(it.Type, nil)
	if c.failed() {
		return
	}
	lit, ok := literalType(it.Value)
	if !ok {
		c.failWith("const initializer must be a literal expression", it.Value.Span())
		return
	}
	if !ast.SameType(lit, info.Type) {
		c.failWith("const '"+it.Name+"' declared type does not match its literal initializer", it.Value.Span())
		return
	}
	info.Value = it.Value
}

// literalType type-checks a compile-time literal without a Checker/Scope,
// for const declarations (spec.md §3: "value must be a compile-time
// literal").
func literalType(e ast.Expr) (ast.Type, bool) {
	switch e.(type) {
	case *ast.IntLit:
		return ast.I64, true
	case *ast.StringLit:
		return ast.StringT{}, true
	case *ast.BoolLit:
		return ast.BoolT{}, true
	default:
		return nil, false
	}
}

// checkItems type-checks and ownership-checks every function body.
func (c *Checker) checkItems(file *ast.File) {
	for _, item := range file.Items {
		fn, ok := item.(*ast.Function)
		if !ok {
			continue
		}
		c.checkFunctionBody(fn)
		if c.failed() {
			return
		}
	}
}

func (c *Checker) checkFunctionBody(fn *ast.Function) {
	info := c.Funcs[fn.Name]
	scope := NewScope(c.GlobalScope)
	for i, name := range info.ParamNames {
		scope.Insert(&Binder{Name: name, Type: info.ParamTypes[i], Mutable: info.ParamMutable[i], State: StateLive})
	}

	prevReturn, prevTP := c.curFnReturn, c.curTypeParm
	c.curFnReturn = info.ReturnType
	c.curTypeParm = typeParamSet(fn.TypeParams)

	c.checkBlock(fn.Body, scope)

	c.curFnReturn, c.curTypeParm = prevReturn, prevTP
	if c.failed() {
		return
	}

	if !ast.SameType(info.ReturnType, ast.UnitT{}) && !blockTerminates(fn.Body) {
		c.failWith("function '"+fn.Name+"' does not return a value on all control paths", fn.Body.Span())
	}
}

// blockTerminates reports whether every control path through b ends in a
// `return`/`break`/`continue`, or produces a value via its tail expression
// (spec.md §4.3.3's all-paths-return rule).
func blockTerminates(b *ast.Block) bool {
	if b.Tail != nil {
		if ifx, ok := b.Tail.(*ast.IfExpr); ok {
			return ifExprTerminates(ifx)
		}
		return true
	}
	if len(b.Stmts) == 0 {
		return false
	}
	return stmtTerminates(b.Stmts[len(b.Stmts)-1])
}

func ifExprTerminates(ifx *ast.IfExpr) bool {
	if ifx.ElseIf != nil {
		return blockTerminates(ifx.Then) && ifExprTerminates(ifx.ElseIf)
	}
	if ifx.ElseBlk != nil {
		return blockTerminates(ifx.Then) && blockTerminates(ifx.ElseBlk)
	}
	return false
}

func stmtTerminates(s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BreakStmt:
		return true
	case *ast.ContinueStmt:
		return true
	case *ast.ExprStmt:
		if ifx, ok := st.X.(*ast.IfExpr); ok {
			return ifExprTerminates(ifx)
		}
		return false
	default:
		return false
	}
}
