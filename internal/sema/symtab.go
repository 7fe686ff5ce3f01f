package sema

import "github.com/palladium-lang/palladium/internal/ast"

// FieldInfo is one resolved struct field or struct-variant payload field.
type FieldInfo struct {
	Name string
	Type ast.Type
}

// StructInfo is the resolved signature of a `struct` item.
type StructInfo struct {
	Name       string
	TypeParams []string
	Fields     []FieldInfo
}

func (s *StructInfo) field(name string) (FieldInfo, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// VariantInfo is the resolved signature of one enum variant.
type VariantInfo struct {
	Name    string
	Payload ast.VariantPayload // as written
	Types   []ast.Type         // resolved tuple-payload element types, if any
	Fields  []FieldInfo        // resolved struct-payload fields, if any
}

// EnumInfo is the resolved signature of an `enum` item.
type EnumInfo struct {
	Name       string
	TypeParams []string
	Variants   []*VariantInfo
}

func (e *EnumInfo) variant(name string) (*VariantInfo, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// FuncInfo is the resolved signature of a `fn` item, or of a runtime
// built-in recognized by name (spec.md §6.3 / §4.4).
type FuncInfo struct {
	Name         string
	TypeParams   []string
	ParamTypes   []ast.Type
	ParamNames   []string
	ParamMutable []bool
	ReturnType   ast.Type
	Builtin      bool
}

// ConstInfo is the resolved signature of a `const` item.
type ConstInfo struct {
	Name  string
	Type  ast.Type
	Value ast.Expr
}

// registerBuiltins seeds the function table with the runtime ABI spec.md
// §6.3 and §4.4 name as recognized built-ins, so ordinary call-expression
// checking resolves them without a corresponding source-level `fn` item.
func (c *Checker) registerBuiltins() {
	str := ast.StringT{}
	i64 := ast.I64
	unit := ast.UnitT{}
	boolT := ast.BoolT{}

	builtin := func(name string, params []ast.Type, result ast.Type) {
		c.Funcs[name] = &FuncInfo{Name: name, ParamTypes: params, ReturnType: result, Builtin: true}
	}

	builtin("print", []ast.Type{str}, unit)
	builtin("print_int", []ast.Type{i64}, unit)
	builtin("string_len", []ast.Type{str}, i64)
	builtin("int_to_string", []ast.Type{i64}, str)
	builtin("string_concat", []ast.Type{str, str}, str)
	builtin("string_char_at", []ast.Type{str, i64}, i64)

	builtin("file_open", []ast.Type{str}, i64)
	builtin("file_read_line", []ast.Type{i64}, str)
	builtin("file_read_all", []ast.Type{str}, str)
	builtin("file_write", []ast.Type{i64, str}, i64)
	builtin("file_close", []ast.Type{i64}, unit)
	builtin("file_exists", []ast.Type{str}, boolT)
}
