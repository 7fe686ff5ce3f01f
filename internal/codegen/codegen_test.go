package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palladium-lang/palladium/internal/codegen"
	"github.com/palladium-lang/palladium/internal/parser"
	"github.com/palladium-lang/palladium/internal/sema"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	file, err := parser.ParseString("t.pd", src)
	require.NoError(t, err, "source must parse cleanly")
	chk, err := sema.Check(file)
	require.NoError(t, err, "source must type-check cleanly")
	out, err := codegen.Generate(file, chk)
	require.NoError(t, err, "source must generate cleanly")
	return out
}

func TestGenerate_HelloWorldCallsRuntimePrint(t *testing.T) {
	out := generate(t, `
fn main() {
    print("hello, world");
}
`)
	assert.Contains(t, out, "__pd_print(")
	assert.Contains(t, out, "int main(")
}

func TestGenerate_MainAlwaysReturnsInt(t *testing.T) {
	out := generate(t, `fn main() { let x = 1; }`)
	assert.Contains(t, out, "int main(")
	assert.Contains(t, out, "return 0;")
}

func TestGenerate_FunctionNamesAreMangled(t *testing.T) {
	out := generate(t, `
fn fib(n: i64) -> i64 {
    if n < 2 {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}

fn main() {
    print_int(fib(10));
}
`)
	assert.Contains(t, out, "Palladium_fib(")
	assert.Contains(t, out, "int main(")
}

func TestGenerate_StructLowersToTypedefStruct(t *testing.T) {
	out := generate(t, `
struct Point { x: i64, y: i64 }

fn main() {
    let p = Point { x: 1, y: 2 };
    print_int(p.x + p.y);
}
`)
	assert.Contains(t, out, "typedef struct {")
	assert.Contains(t, out, "Point;")
}

func TestGenerate_EnumLowersToTaggedUnion(t *testing.T) {
	out := generate(t, `
enum Shape {
    Circle(i64),
    Empty,
}

fn main() {
    let s = Shape::Circle(4);
    match s {
        Shape::Circle(r) => print_int(r),
        Shape::Empty => print("empty"),
    }
}
`)
	assert.Contains(t, out, "union {")
	assert.Contains(t, out, "PD_Shape_Circle_TAG")
	assert.Contains(t, out, "PD_Shape_Empty_TAG")
}

func TestGenerate_RuntimeForwardDeclarationsArePresent(t *testing.T) {
	out := generate(t, `fn main() {}`)
	for _, sym := range []string{
		"__pd_print", "__pd_print_int", "__pd_string_len",
		"__pd_string_concat", "__pd_int_to_string", "__pd_string_char_at",
		"__pd_file_open", "__pd_file_read_line", "__pd_file_read_all",
		"__pd_file_write", "__pd_file_close", "__pd_file_exists",
	} {
		assert.Contains(t, out, sym, "prelude must forward-declare %s", sym)
	}
}

func TestGenerate_StringConcatCallsRuntimeSymbol(t *testing.T) {
	out := generate(t, `
fn greet(name: String) -> String {
    return string_concat("hello, ", name);
}

fn main() {
    print(greet("world"));
}
`)
	assert.Contains(t, out, "__pd_string_concat(")
}

// TestGenerate_Idempotent asserts spec.md §8's "idempotence of
// compilation" property: generating the same checked AST twice produces
// byte-identical C, never source that drifts between runs (e.g. from map
// iteration order or counter state leaking across Generate calls).
func TestGenerate_Idempotent(t *testing.T) {
	src := `
struct Point { x: i64, y: i64 }

enum Shape {
    Circle(i64),
    Empty,
}

fn fib(n: i64) -> i64 {
    if n < 2 {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}

fn main() {
    let p = Point { x: 1, y: 2 };
    let s = Shape::Circle(4);
    match s {
        Shape::Circle(r) => print_int(r + p.x),
        Shape::Empty => print("empty"),
    }
    print_int(fib(10));
}
`
	file, err := parser.ParseString("t.pd", src)
	require.NoError(t, err, "source must parse cleanly")
	chk, err := sema.Check(file)
	require.NoError(t, err, "source must type-check cleanly")

	first, err := codegen.Generate(file, chk)
	require.NoError(t, err, "source must generate cleanly")
	second, err := codegen.Generate(file, chk)
	require.NoError(t, err, "source must generate cleanly")

	assert.Equal(t, first, second, "Generate must be idempotent on the same checked AST")
}

// TestGenerate_ShortCircuitAndOr asserts spec.md §8's "short-circuit
// evaluation" property at the codegen level: the right operand of `&&`/`||`
// is lowered as plain text nested inside a single C `&&`/`||` expression,
// never hoisted into a statement that runs before the left operand is
// known. A call whose left operand would make the right side unreachable
// (`false && crash()`, `true || crash()`) must still appear textually
// inside the condition, so C's own short-circuit operators -- not the
// generator -- decide whether `crash` ever runs.
func TestGenerate_ShortCircuitAndOr(t *testing.T) {
	out := generate(t, `
fn crash() -> bool {
    print("should never print");
    return true;
}

fn main() {
    if false && crash() {
        print("unreachable");
    }
    if true || crash() {
        print("reachable");
    }
}
`)
	assert.Contains(t, out, "if ((0 && Palladium_crash()))")
	assert.Contains(t, out, "if ((1 || Palladium_crash()))")

	ifAnd := "if ((0 && Palladium_crash()))"
	callIdx := strings.Index(out, "Palladium_crash()")
	ifIdx := strings.Index(out, ifAnd)
	require.NotEqual(t, -1, callIdx, "expected a call to the crash function")
	require.NotEqual(t, -1, ifIdx, "expected the short-circuited if condition")
	assert.Equal(t, ifIdx+strings.Index(ifAnd, "Palladium_crash()"), callIdx,
		"crash() must appear only inside the && condition, never hoisted into an earlier unconditional statement")
}

func TestGenerate_BubbleSortUsesArrayIndexingAndWhile(t *testing.T) {
	out := generate(t, `
fn main() {
    let mut a: [i64; 5] = [5, 4, 3, 2, 1];
    let mut i = 0;
    while i < 5 {
        let mut j = 0;
        while j < 4 {
            if a[j] > a[j + 1] {
                let tmp = a[j];
                a[j] = a[j + 1];
                a[j + 1] = tmp;
            }
            j = j + 1;
        }
        i = i + 1;
    }
    print_int(a[0]);
}
`)
	assert.Contains(t, out, "for (;;) {")
	assert.Contains(t, out, "int main(")
}
