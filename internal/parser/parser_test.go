package parser

import (
	"testing"

	"github.com/palladium-lang/palladium/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := ParseString("t.pd", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return file
}

func TestParseFunction_Basic(t *testing.T) {
	file := mustParse(t, `
fn add(a: i32, b: i32) -> i32 {
    a + b
}
`)
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}
	fn, ok := file.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", file.Items[0])
	}
	if fn.Name != "add" {
		t.Fatalf("expected function named add, got %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestParseStruct(t *testing.T) {
	file := mustParse(t, `
struct Point {
    x: i32,
    y: i32,
}
`)
	s, ok := file.Items[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", file.Items[0])
	}
	if s.Name != "Point" || len(s.Fields) != 2 {
		t.Fatalf("unexpected struct shape: %+v", s)
	}
}

func TestParseEnum(t *testing.T) {
	file := mustParse(t, `
enum Option {
    Some(i32),
    None,
}
`)
	e, ok := file.Items[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", file.Items[0])
	}
	if e.Name != "Option" || len(e.Variants) != 2 {
		t.Fatalf("unexpected enum shape: %+v", e)
	}
}

func TestParseIfExprAsTail(t *testing.T) {
	file := mustParse(t, `
fn f() -> i32 {
    if true { 1 } else { 2 }
}
`)
	fn := file.Items[0].(*ast.Function)
	if _, ok := fn.Body.Tail.(*ast.IfExpr); !ok {
		t.Fatalf("expected tail expression to be an if-expr, got %T", fn.Body.Tail)
	}
}

func TestParseMatchExpr(t *testing.T) {
	file := mustParse(t, `
fn f(x: i32) -> i32 {
    match x {
        0 => 1,
        _ => 2,
    }
}
`)
	fn := file.Items[0].(*ast.Function)
	m, ok := fn.Body.Tail.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expected tail expression to be a match-expr, got %T", fn.Body.Tail)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(m.Arms))
	}
}

func TestParseWhileAndFor(t *testing.T) {
	file := mustParse(t, `
fn f() {
    let mut i: i32 = 0;
    while i < 10 {
        i = i + 1;
    }
    for j in 0..10 {
        print_int(j);
    }
}
`)
	fn := file.Items[0].(*ast.Function)
	if len(fn.Body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[1].(*ast.WhileStmt); !ok {
		t.Fatalf("expected a while statement, got %T", fn.Body.Stmts[1])
	}
	if _, ok := fn.Body.Stmts[2].(*ast.ForStmt); !ok {
		t.Fatalf("expected a for statement, got %T", fn.Body.Stmts[2])
	}
}

func TestParseArrayAndIndex(t *testing.T) {
	file := mustParse(t, `
fn f() -> i32 {
    let arr: [i32; 3] = [1, 2, 3];
    arr[0]
}
`)
	fn := file.Items[0].(*ast.Function)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	if _, ok := let.Init.(*ast.ArrayLit); !ok {
		t.Fatalf("expected an array literal initializer, got %T", let.Init)
	}
	if _, ok := fn.Body.Tail.(*ast.IndexExpr); !ok {
		t.Fatalf("expected tail expression to be an index expr, got %T", fn.Body.Tail)
	}
}

func TestParseStructLiteralAndFieldAccess(t *testing.T) {
	file := mustParse(t, `
struct Point { x: i32, y: i32 }

fn f() -> i32 {
    let p = Point { x: 1, y: 2 };
    p.x
}
`)
	fn := file.Items[1].(*ast.Function)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	if _, ok := let.Init.(*ast.StructLit); !ok {
		t.Fatalf("expected a struct literal initializer, got %T", let.Init)
	}
	if _, ok := fn.Body.Tail.(*ast.FieldExpr); !ok {
		t.Fatalf("expected tail expression to be a field expr, got %T", fn.Body.Tail)
	}
}

func TestParseError_MissingClosingBrace(t *testing.T) {
	_, err := ParseString("t.pd", "fn f() -> i32 { 1")
	if err == nil {
		t.Fatalf("expected a parse error for an unterminated block")
	}
}

func TestParseError_MissingSemicolon(t *testing.T) {
	_, err := ParseString("t.pd", "fn f() { let x = 1 let y = 2; }")
	if err == nil {
		t.Fatalf("expected a parse error for a missing semicolon")
	}
}
