package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palladium-lang/palladium/internal/parser"
	"github.com/palladium-lang/palladium/internal/sema"
)

func check(t *testing.T, src string) error {
	t.Helper()
	file, err := parser.ParseString("t.pd", src)
	require.NoError(t, err, "source must parse cleanly")
	_, err = sema.Check(file)
	return err
}

// Positive cases: spec.md §8's "Type soundness - positive cases" programs
// must compile clean through semantic analysis.

func TestCheck_AcceptsArithmeticAndControlFlow(t *testing.T) {
	err := check(t, `
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
	assert.NoError(t, err)
}

func TestCheck_AcceptsStructsEnumsAndMatch(t *testing.T) {
	err := check(t, `
struct Point { x: i64, y: i64 }

enum Result { Ok(i64), Err }

fn divide(a: i64, b: i64) -> Result {
    if b == 0 {
        return Result::Err;
    }
    return Result::Ok(a / b);
}

fn main() {
    let p = Point { x: 1, y: 2 };
    print_int(p.x + p.y);
    match divide(10, 2) {
        Result::Ok(v) => print_int(v),
        Result::Err => print("err"),
    }
}
`)
	assert.NoError(t, err)
}

func TestCheck_AcceptsArraysAndForLoops(t *testing.T) {
	err := check(t, `
fn main() {
    let a: [i64; 3] = [1, 2, 3];
    let mut total = 0;
    for i in 0..3 {
        total = total + a[i];
    }
    for x in a {
        print_int(x);
    }
    print_int(total);
}
`)
	assert.NoError(t, err)
}

// Negative cases: spec.md §8 requires each of these to be rejected.

func TestCheck_RejectsTypeMismatch(t *testing.T) {
	err := check(t, `fn main() { let x: i64 = "s"; }`)
	assert.Error(t, err)
}

func TestCheck_RejectsAssignToImmutable(t *testing.T) {
	err := check(t, `fn main() { let x = 1; x = 2; }`)
	require.Error(t, err)
	semaErr, ok := err.(sema.Error)
	require.True(t, ok, "expected a sema.Error, got %T", err)
	assert.Contains(t, semaErr.Message, "immutable")
}

func TestCheck_RejectsUseAfterMove(t *testing.T) {
	err := check(t, `
fn main() {
    let a = "hi";
    let b = a;
    print(a);
}
`)
	require.Error(t, err)
	semaErr, ok := err.(sema.Error)
	require.True(t, ok, "expected a sema.Error, got %T", err)
	assert.Contains(t, semaErr.Message, "moved")
}

func TestCheck_RejectsOverlappingMutableBorrow(t *testing.T) {
	err := check(t, `
fn swap(a: &mut i64, b: &i64) {}

fn main() {
    let mut arr = [1, 2, 3];
    swap(&mut arr[0], &arr[0]);
}
`)
	assert.Error(t, err)
}

func TestCheck_RejectsDivisionByLiteralZero(t *testing.T) {
	err := check(t, `fn main() { let x = 1 / 0; }`)
	assert.Error(t, err)
}

func TestCheck_RejectsMissingReturnOnSomePath(t *testing.T) {
	err := check(t, `
fn f(x: i64) -> i64 {
    if x > 0 {
        return x;
    }
}
`)
	assert.Error(t, err)
}

func TestCheck_RejectsBreakOutsideLoop(t *testing.T) {
	err := check(t, `fn main() { break; }`)
	assert.Error(t, err)
}

func TestCheck_RejectsOutOfBoundsLiteralIndex(t *testing.T) {
	err := check(t, `fn main() { let a: [i64; 3] = [1, 2, 3]; let x = a[5]; }`)
	assert.Error(t, err)
}

func TestCheck_RejectsWrongFieldCountInStructLiteral(t *testing.T) {
	err := check(t, `
struct Point { x: i64, y: i64 }
fn main() { let p = Point { x: 1 }; }
`)
	assert.Error(t, err)
}

func TestCheck_RejectsCallArityMismatch(t *testing.T) {
	err := check(t, `
fn add(a: i64, b: i64) -> i64 { return a + b; }
fn main() { add(1); }
`)
	assert.Error(t, err)
}
