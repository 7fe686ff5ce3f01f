// Package driver wires the four pure compiler stages (lexer, parser,
// semantic analyzer, codegen) into the two operations cmd/palladium
// exposes: checking a file and building it to C (and, optionally, to a
// native binary). It is the one place that turns any stage's diagnostic
// into a single printable error, the way cmd/malphas/main.go's
// compileToTemp collects parse/type errors before moving to the next
// stage.
package driver

import (
	"fmt"
	"os"

	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/codegen"
	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/parser"
	"github.com/palladium-lang/palladium/internal/sema"
)

// diagnosable is implemented by every stage's Error type.
type diagnosable interface {
	ToDiagnostic() diag.Diagnostic
}

// Diagnostic recovers a diag.Diagnostic from any stage error, falling back
// to a bare message for errors the pipeline didn't originate (e.g. file
// I/O failures), which carry no source span to report.
func Diagnostic(err error) diag.Diagnostic {
	if d, ok := err.(diagnosable); ok {
		return d.ToDiagnostic()
	}
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Message:  err.Error(),
	}
}

// Parse reads and parses one source file, returning its AST.
func Parse(path string) (*ast.File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parser.ParseString(path, string(src))
}

// CheckResult is what a successful Check produces: the AST plus the
// checker tables codegen consumes, kept together so callers can go
// straight from checking to code generation without re-parsing.
type CheckResult struct {
	File    *ast.File
	Checker *sema.Checker
}

// Check runs the pipeline through semantic analysis only, the `palladium
// check` subcommand's full scope.
func Check(path string) (*CheckResult, error) {
	file, err := Parse(path)
	if err != nil {
		return nil, err
	}
	checker, err := sema.Check(file)
	if err != nil {
		return nil, err
	}
	return &CheckResult{File: file, Checker: checker}, nil
}

// GenerateC runs the full pipeline and returns the generated C source for
// path, the `palladium build` subcommand's core step before toolchain
// invocation.
func GenerateC(path string) (string, error) {
	res, err := Check(path)
	if err != nil {
		return "", err
	}
	return codegen.Generate(res.File, res.Checker)
}
