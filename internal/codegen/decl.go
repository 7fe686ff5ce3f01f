package codegen

import (
	"fmt"

	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/sema"
)

// genStructDef lowers a `struct` item to a C struct typedef with the same
// field order (spec.md §4.4). Generic structs are left to the minimal
// acceptable implementation spec.md §9 describes: without a concrete
// instantiation there is no single C layout to emit, so they are skipped.
func (g *Generator) genStructDef(s *ast.StructDecl) {
	if len(s.TypeParams) > 0 {
		return
	}
	info := g.structs[s.Name]
	g.emitf("typedef struct {")
	for _, f := range info.Fields {
		g.emitf("    %s;", g.cDeclare(f.Type, f.Name))
	}
	g.emitf("} %s;", s.Name)
	g.emit("")
}

// genEnumDef lowers an `enum` item to a tagged union: an integer `tag`
// field selecting the active variant and a `union` over the variants'
// payloads (spec.md §4.4, §9 "Enums as tagged unions"). It then emits a
// constructor function per variant so call-expression codegen can treat
// variant construction uniformly with ordinary function calls.
func (g *Generator) genEnumDef(e *ast.EnumDecl) {
	if len(e.TypeParams) > 0 {
		return
	}
	info := g.enums[e.Name]

	g.emitf("typedef struct {")
	g.emit("    int tag;")
	anyPayload := false
	g.emit("    union {")
	for _, v := range info.Variants {
		switch {
		case len(v.Types) > 0:
			anyPayload = true
			g.emitf("        struct {")
			for i, t := range v.Types {
				g.emitf("            %s;", g.cDeclare(t, fmt.Sprintf("_%d", i)))
			}
			g.emitf("        } %s;", v.Name)
		case len(v.Fields) > 0:
			anyPayload = true
			g.emitf("        struct {")
			for _, f := range v.Fields {
				g.emitf("            %s;", g.cDeclare(f.Type, f.Name))
			}
			g.emitf("        } %s;", v.Name)
		}
	}
	if !anyPayload {
		g.emit("        int __pd_no_payload;")
	}
	g.emit("    } as;")
	g.emitf("} %s;", e.Name)
	g.emit("")

	for i, v := range info.Variants {
		g.emitf("#define %s %d", variantTag(e.Name, v.Name), i)
	}
	g.emit("")

	for i, v := range info.Variants {
		g.genVariantConstructor(e.Name, v, i)
	}
}

func variantTag(enumName, variantName string) string {
	return "PD_" + enumName + "_" + variantName + "_TAG"
}

// genVariantConstructor emits a small static function that builds one
// enum value with its tag and payload set, so a variant looks to the rest
// of codegen like an ordinary callable (spec.md §3: tuple variants
// construct via `Enum::Variant(args...)`). Every variant without tuple
// payload types, struct variants included, gets a zero-argument
// constructor that sets only the tag.
func (g *Generator) genVariantConstructor(enumName string, v *sema.VariantInfo, tagIndex int) {
	tag := variantTag(enumName, v.Name)
	fname := "Palladium_" + enumName + "_" + v.Name

	if len(v.Types) == 0 {
		g.emitf("static %s %s(void) {", enumName, fname)
		g.emitf("    %s __pd_v;", enumName)
		g.emitf("    __pd_v.tag = %s;", tag)
		g.emit("    return __pd_v;")
		g.emit("}")
		g.emit("")
		return
	}

	params := make([]string, len(v.Types))
	for i, t := range v.Types {
		params[i] = g.cDeclare(t, fmt.Sprintf("a%d", i))
	}
	g.emitf("static %s %s(%s) {", enumName, fname, joinComma(params))
	g.emitf("    %s __pd_v;", enumName)
	g.emitf("    __pd_v.tag = %s;", tag)
	for i := range v.Types {
		g.emitf("    __pd_v.as.%s._%d = a%d;", v.Name, i, i)
	}
	g.emit("    return __pd_v;")
	g.emit("}")
	g.emit("")
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// constName mangles a `const` item's name into its own namespace so it
// never collides with a function of the same surface name (spec.md §4.3.1
// registers functions and constants in separate tables without cross-
// checking each other).
func constName(name string) string { return "Palladium_const_" + name }

// genConstDef lowers a `const` item. spec.md §3 requires its initializer
// to already be a compile-time literal, so it always emits as a direct C
// initializer with no runtime computation.
func (g *Generator) genConstDef(c *ast.ConstDecl) {
	info := g.checker.Consts[c.Name]
	g.emitf("static const %s = %s;", g.cDeclare(info.Type, constName(c.Name)), g.genLiteral(info.Value))
	g.emit("")
}

func (g *Generator) genLiteral(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", x.Value)
	case *ast.StringLit:
		return cStringLiteral(x.Value)
	case *ast.BoolLit:
		if x.Value {
			return "1"
		}
		return "0"
	default:
		g.fail("unsupported constant literal")
		return "0"
	}
}

// funcReturnCType reports the C return type for fn, special-casing `main`
// to the `int` the C standard requires regardless of the Palladium return
// type spec.md §4.4 allows it to declare (`()` or `i32`).
func (g *Generator) funcReturnCType(fn *ast.Function, info *sema.FuncInfo) string {
	if fn.Name == "main" {
		return "int"
	}
	return g.cBaseType(info.ReturnType)
}

func (g *Generator) funcParamList(info *sema.FuncInfo) string {
	if len(info.ParamNames) == 0 {
		return "void"
	}
	parts := make([]string, len(info.ParamNames))
	for i, name := range info.ParamNames {
		parts[i] = g.cDeclare(info.ParamTypes[i], name)
	}
	return joinComma(parts)
}

// genFunctionDecl emits a forward declaration so spec.md §4.3.1's
// forward-reference rule for top-level functions carries through to the
// generated C, which otherwise requires definition-before-use.
func (g *Generator) genFunctionDecl(fn *ast.Function) {
	if hasTypeParams(fn) {
		return
	}
	info := g.checker.Funcs[fn.Name]
	g.emitf("%s %s(%s);", g.funcReturnCType(fn, info), mangle(fn.Name), g.funcParamList(info))
}

// genFunctionBody lowers one function's body. Generic functions are
// skipped for the same reason their struct/enum counterparts are (spec.md
// §9: specialization without substitution is out of the minimal scope).
func (g *Generator) genFunctionBody(fn *ast.Function) {
	info := g.checker.Funcs[fn.Name]
	g.emit("")
	g.emitf("%s %s(%s) {", g.funcReturnCType(fn, info), mangle(fn.Name), g.funcParamList(info))

	fnScope := newCgScope(nil)
	for _, name := range info.ParamNames {
		g.bind(fnScope, name)
	}

	prevMain := g.curFnIsMain
	g.curFnIsMain = fn.Name == "main"

	g.indent = 1
	g.genBlockBody(fn.Body, fnScope, sinkReturn)
	g.indent = 0

	g.curFnIsMain = prevMain
	g.emit("}")
}
