package ast_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/parser"
)

// samplePrograms covers one construct from each item/statement/expression
// family spec.md §8's round-trip property is meant to exercise: functions,
// structs, enums, consts, control flow, patterns, and operators.
var samplePrograms = []string{
	`
fn add(a: i64, b: i64) -> i64 {
    a + b
}
`,
	`
struct Point { x: i64, y: i64 }

fn origin() -> Point {
    Point { x: 0, y: 0 }
}
`,
	`
enum Shape {
    Circle(i64),
    Rect(i64, i64),
    Empty,
}

fn area(s: Shape) -> i64 {
    match s {
        Shape::Circle(r) => r * r,
        Shape::Rect(w, h) => w * h,
        Shape::Empty => 0,
    }
}
`,
	`
const MAX: i64 = 100;

fn clamp(x: i64) -> i64 {
    if x > MAX {
        return MAX;
    }
    return x;
}
`,
	`
fn sumTo(n: i64) -> i64 {
    let mut total = 0;
    let mut i = 0;
    while i < n {
        total = total + i;
        i = i + 1;
    }
    return total;
}
`,
	`
fn firstEven(a: [i64; 4]) -> i64 {
    for x in a {
        if x % 2 == 0 {
            return x;
        }
    }
    return -1;
}
`,
	`
fn classify(x: i64) -> i64 {
    match x {
        -1 => 0,
        0 => 1,
        _ => 2,
    }
}
`,
}

// TestPrint_Idempotent checks spec.md §8's idempotence property without
// comparing ASTs directly: Function/StructDecl/EnumDecl/ConstDecl and every
// TypeExpr/statement node carry an exported Sp lexer.Span that necessarily
// differs between the original parse and a reparse of reformatted text, so
// a deep.Equal over the two trees would spuriously fail on span values that
// have nothing to do with structural equality. Comparing the printed text
// of two successive print-parse round trips sidesteps spans entirely.
func TestPrint_Idempotent(t *testing.T) {
	for i, src := range samplePrograms {
		file, err := parser.ParseString("t.pd", src)
		if err != nil {
			t.Fatalf("sample %d: unexpected parse error: %v", i, err)
		}
		once := ast.Print(file)

		reparsed, err := parser.ParseString("t.pd", once)
		if err != nil {
			t.Fatalf("sample %d: printed output failed to reparse: %v\n---\n%s", i, err, once)
		}
		twice := ast.Print(reparsed)

		if once != twice {
			t.Fatalf("sample %d: printing is not idempotent:\n--- once ---\n%s\n--- twice ---\n%s", i, once, twice)
		}
	}
}

// TestParse_DeterministicForIdenticalSource is the genuine use of
// go-test/deep in this package: parsing the exact same source text twice
// produces trees whose exported Span fields are identical too (same file,
// same bytes), so a full deep.Equal comparison is meaningful here in a way
// it would not be across a reformat.
func TestParse_DeterministicForIdenticalSource(t *testing.T) {
	for i, src := range samplePrograms {
		first, err := parser.ParseString("t.pd", src)
		if err != nil {
			t.Fatalf("sample %d: unexpected parse error: %v", i, err)
		}
		second, err := parser.ParseString("t.pd", src)
		if err != nil {
			t.Fatalf("sample %d: unexpected parse error on reparse: %v", i, err)
		}
		if diff := deep.Equal(first, second); diff != nil {
			t.Fatalf("sample %d: parsing identical source twice produced different trees: %v", i, diff)
		}
	}
}

// TestPrint_ReparsedTreeHasSameShapeAsOriginal is a lighter structural
// check on top of the idempotence test above: the reparsed item count and
// top-level kinds must match the original, even though the exported Sp
// fields differ and rule out a direct deep.Equal here.
func TestPrint_ReparsedTreeHasSameShapeAsOriginal(t *testing.T) {
	for i, src := range samplePrograms {
		file, err := parser.ParseString("t.pd", src)
		if err != nil {
			t.Fatalf("sample %d: unexpected parse error: %v", i, err)
		}
		printed := ast.Print(file)
		reparsed, err := parser.ParseString("t.pd", printed)
		if err != nil {
			t.Fatalf("sample %d: printed output failed to reparse: %v\n---\n%s", i, err, printed)
		}
		if len(reparsed.Items) != len(file.Items) {
			t.Fatalf("sample %d: item count changed: got %d, want %d", i, len(reparsed.Items), len(file.Items))
		}
		for j := range file.Items {
			gotType := typeName(reparsed.Items[j])
			wantType := typeName(file.Items[j])
			if gotType != wantType {
				t.Fatalf("sample %d item %d: kind changed: got %s, want %s", i, j, gotType, wantType)
			}
		}
	}
}

func typeName(item ast.Item) string {
	switch item.(type) {
	case *ast.Function:
		return "Function"
	case *ast.StructDecl:
		return "StructDecl"
	case *ast.EnumDecl:
		return "EnumDecl"
	case *ast.ConstDecl:
		return "ConstDecl"
	default:
		return "unknown"
	}
}
