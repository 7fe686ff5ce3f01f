// Package codegen lowers a semantically analyzed Palladium translation
// unit to a single, self-contained C translation unit (spec.md §4.4). It
// is grounded on the teacher's LLVM text generator
// (internal/codegen/llvm/generator.go): a strings.Builder output buffer,
// an emit/emitf helper pair, and per-function bookkeeping (a named-temporary
// counter, struct/enum layout tables) instead of the teacher's SSA register
// and label counters, which a C back end has no use for. Every loop lowers
// to a native C loop, so break/continue lower to C's own `break;` and
// `continue;`.
package codegen

import (
	"fmt"
	"strings"

	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/sema"
)

// Error is the single diagnostic code generation can fail with. Spec.md
// §4.4/§7: codegen, like every other stage, reports the first problem it
// hits and aborts.
type Error struct {
	Message string
}

func (e Error) Error() string { return e.Message }

func (e Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageCodegen,
		Severity: diag.SeverityError,
		Code:     diag.CodeCodegenUnsupported,
		Message:  e.Message,
	}
}

// loopLabel names the C labels one loop's break/continue jump to.
type loopLabel struct {
	breakLabel    string
	continueLabel string
}

// Generator holds the output buffer and bookkeeping needed across one
// translation unit's worth of declarations.
type Generator struct {
	out strings.Builder

	checker *sema.Checker

	loopStack  []loopLabel
	tmpCounter int
	labelCount int
	indent     int

	curFnIsMain bool

	structs map[string]*sema.StructInfo
	enums   map[string]*sema.EnumInfo

	err *Error
}

// NewGenerator creates a code generator over the tables a sema.Checker
// built for one translation unit.
func NewGenerator(checker *sema.Checker) *Generator {
	return &Generator{
		checker: checker,
		structs: checker.Structs,
		enums:   checker.Enums,
	}
}

// Generate lowers file to a complete C translation unit, or returns the
// first codegen error encountered (spec.md §4.4).
func Generate(file *ast.File, checker *sema.Checker) (string, error) {
	g := NewGenerator(checker)
	g.genPrelude()

	for _, it := range file.Items {
		if s, ok := it.(*ast.StructDecl); ok {
			g.genStructDef(s)
		}
	}
	for _, it := range file.Items {
		if e, ok := it.(*ast.EnumDecl); ok {
			g.genEnumDef(e)
		}
	}
	for _, it := range file.Items {
		if c, ok := it.(*ast.ConstDecl); ok {
			g.genConstDef(c)
		}
	}
	for _, it := range file.Items {
		if fn, ok := it.(*ast.Function); ok {
			g.genFunctionDecl(fn)
		}
	}
	for _, it := range file.Items {
		if fn, ok := it.(*ast.Function); ok && !hasTypeParams(fn) {
			g.genFunctionBody(fn)
		}
	}

	if g.err != nil {
		return "", *g.err
	}
	return g.out.String(), nil
}

func hasTypeParams(fn *ast.Function) bool { return len(fn.TypeParams) > 0 }

func (g *Generator) fail(msg string) {
	if g.err == nil {
		g.err = &Error{Message: msg}
	}
}

func (g *Generator) failed() bool { return g.err != nil }

// emit writes one line into the output buffer, indented to the current
// nesting depth tracked while lowering a function body. Top-level
// declarations run at indent 0 and include their own literal spacing.
func (g *Generator) emit(line string) {
	if line != "" && g.indent > 0 {
		g.out.WriteString(strings.Repeat("    ", g.indent))
	}
	g.out.WriteString(line)
	g.out.WriteString("\n")
}

func (g *Generator) emitf(format string, args ...interface{}) {
	g.emit(fmt.Sprintf(format, args...))
}

// genPrelude emits the fixed header spec.md §4.4 requires: standard
// includes plus the forward declarations of the runtime ABI (§6.3) that
// generated code calls into. The runtime's definitions live in the
// embedded internal/runtime collaborator, not in this generated file.
func (g *Generator) genPrelude() {
	g.emit("#include <stdio.h>")
	g.emit("#include <stdlib.h>")
	g.emit("#include <string.h>")
	g.emit("#include <stdint.h>")
	g.emit("")
	g.emit("void __pd_print(const char* s);")
	g.emit("void __pd_print_int(long long n);")
	g.emit("long long __pd_string_len(const char* s);")
	g.emit("const char* __pd_string_concat(const char* a, const char* b);")
	g.emit("const char* __pd_int_to_string(long long n);")
	g.emit("long long __pd_string_char_at(const char* s, long long i);")
	g.emit("long long __pd_file_open(const char* path);")
	g.emit("const char* __pd_file_read_line(long long handle);")
	g.emit("const char* __pd_file_read_all(const char* path);")
	g.emit("long long __pd_file_write(long long handle, const char* s);")
	g.emit("void __pd_file_close(long long handle);")
	g.emit("long long __pd_file_exists(const char* path);")
	g.emit("")
}

// builtinSymbol maps a recognized built-in call (spec.md §4.4/§6.3) to the
// runtime symbol generated code invokes.
var builtinSymbol = map[string]string{
	"print":          "__pd_print",
	"print_int":      "__pd_print_int",
	"string_len":     "__pd_string_len",
	"int_to_string":  "__pd_int_to_string",
	"string_concat":  "__pd_string_concat",
	"string_char_at": "__pd_string_char_at",
	"file_open":      "__pd_file_open",
	"file_read_line": "__pd_file_read_line",
	"file_read_all":  "__pd_file_read_all",
	"file_write":     "__pd_file_write",
	"file_close":     "__pd_file_close",
	"file_exists":    "__pd_file_exists",
}

// mangle applies spec.md §4.4's name-mangling rule: `Palladium_<name>` for
// every function except the entry point, which keeps its bare name so the
// C toolchain finds a standard `main`.
func mangle(name string) string {
	if name == "main" {
		return "main"
	}
	return "Palladium_" + name
}

func (g *Generator) newTemp(prefix string) string {
	g.tmpCounter++
	return fmt.Sprintf("__pd_%s%d", prefix, g.tmpCounter)
}

func (g *Generator) newLabel(prefix string) string {
	g.labelCount++
	return fmt.Sprintf("__pd_%s%d", prefix, g.labelCount)
}
