package lexer

import "testing"

func TestLex_Basic(t *testing.T) {
	toks, err := Lex("t.pd", "let x = 10;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		typ TokenType
		raw string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w.typ {
			t.Fatalf("token %d: type = %q, want %q", i, toks[i].Type, w.typ)
		}
	}
}

func TestLex_Keywords(t *testing.T) {
	toks, err := Lex("t.pd", "fn let mut const return if else while for in break continue match struct enum true false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{FN, LET, MUT, CONST, RETURN, IF, ELSE, WHILE, FOR, IN, BREAK, CONTINUE, MATCH, STRUCT, ENUM, TRUE, FALSE, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: type = %q, want %q", i, toks[i].Type, w)
		}
	}
}

func TestLex_Operators(t *testing.T) {
	toks, err := Lex("t.pd", ":: -> => .. += -= *= /= == != <= >= && ||")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{DCOLON, ARROW, FATARROW, DOTDOT, PLUSEQ, MINUSEQ, STAREQ, SLASHEQ, EQ, NEQ, LE, GE, AND, OR, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: type = %q, want %q", i, toks[i].Type, w)
		}
	}
}

func TestLex_StringEscapes(t *testing.T) {
	toks, err := Lex("t.pd", `"hello\nworld"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != STRING {
		t.Fatalf("expected STRING token, got %q", toks[0].Type)
	}
	if toks[0].Str != "hello\nworld" {
		t.Fatalf("expected decoded escape, got %q", toks[0].Str)
	}
}

func TestLex_UnterminatedStringIsAnError(t *testing.T) {
	_, err := Lex("t.pd", `"unterminated`)
	if err == nil {
		t.Fatalf("expected an error for an unterminated string literal")
	}
}

func TestLex_IllegalCharacter(t *testing.T) {
	_, err := Lex("t.pd", "let x = `;")
	if err == nil {
		t.Fatalf("expected an error for an illegal character")
	}
}

func TestLex_SpanTracksLineAndColumn(t *testing.T) {
	toks, err := Lex("t.pd", "let\nx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[1].Span.Line != 2 {
		t.Fatalf("expected second token on line 2, got %d", toks[1].Span.Line)
	}
	if toks[1].Span.Column != 1 {
		t.Fatalf("expected second token at column 1, got %d", toks[1].Span.Column)
	}
}

func TestLex_IntLiteral(t *testing.T) {
	toks, err := Lex("t.pd", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Int != 42 {
		t.Fatalf("expected decoded int 42, got %d", toks[0].Int)
	}
}

// checkTotality asserts spec.md §8's totality/termination invariant for a
// single input: Lex either returns a token list ending with exactly one
// EOF whose spans all lie in [0, N] and are non-decreasing, or a single
// error whose span lies in [0, N]. It also re-lexes the same input and
// requires byte-for-byte identical output, the determinism half of the
// same property ("running the lexer twice on the same input yields
// identical output").
func checkTotality(t *testing.T, input string) {
	t.Helper()
	n := len([]rune(input))

	toks, err := Lex("fuzz.pd", input)
	toks2, err2 := Lex("fuzz.pd", input)

	if (err == nil) != (err2 == nil) {
		t.Fatalf("Lex(%q) is non-deterministic: err=%v, err2=%v", input, err, err2)
	}

	if err != nil {
		lexErr, ok := err.(Error)
		if !ok {
			t.Fatalf("Lex(%q) returned a non-lexer error: %v", input, err)
		}
		if lexErr.Span.Start < 0 || lexErr.Span.End > n {
			t.Fatalf("Lex(%q) error span %+v out of bounds [0,%d]", input, lexErr.Span, n)
		}
		if lexErr.Error() != err2.Error() {
			t.Fatalf("Lex(%q) is non-deterministic across errors: %q vs %q", input, lexErr.Error(), err2.Error())
		}
		return
	}

	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		t.Fatalf("Lex(%q) did not end with exactly one EOF: %+v", input, toks)
	}
	for i, tok := range toks[:len(toks)-1] {
		if tok.Type == EOF {
			t.Fatalf("Lex(%q) produced an EOF before the end of the token list at index %d", input, i)
		}
	}
	prevEnd := 0
	for i, tok := range toks {
		if tok.Span.Start < prevEnd {
			t.Fatalf("Lex(%q) token %d span %+v is not non-decreasing (prev end %d)", input, i, tok.Span, prevEnd)
		}
		if tok.Span.Start < 0 || tok.Span.End > n || tok.Span.Start > tok.Span.End {
			t.Fatalf("Lex(%q) token %d span %+v out of bounds [0,%d]", input, i, tok.Span, n)
		}
		prevEnd = tok.Span.End
	}

	if len(toks) != len(toks2) {
		t.Fatalf("Lex(%q) is non-deterministic: %d tokens vs %d", input, len(toks), len(toks2))
	}
	for i := range toks {
		if toks[i] != toks2[i] {
			t.Fatalf("Lex(%q) is non-deterministic at token %d: %+v vs %+v", input, i, toks[i], toks2[i])
		}
	}
}

// TestLex_Totality runs checkTotality over a fixed corpus of inputs
// spanning valid programs, comments, every failure mode (unterminated
// string/block comment, illegal character, integer overflow), and edge
// cases (empty input, bare whitespace, a lone EOF) -- spec.md §8's
// "Lexer totality and termination" property.
func TestLex_Totality(t *testing.T) {
	inputs := []string{
		"",
		" \t\r\n",
		"fn main() { print(\"hi\"); }",
		"// a comment\nlet x = 1;",
		"/* block */ let x = 1;",
		"/* unterminated",
		`"unterminated`,
		"`",
		"99999999999999999999",
		"let s = \"a\\nb\\tc\\\\d\\\"e\";",
		"a..b ::c->d=>e",
		"if x && y || !z { }",
	}
	for _, in := range inputs {
		checkTotality(t, in)
	}
}

// FuzzLex drives checkTotality with go-native fuzzing seeded from the same
// corpus: spec.md §8 requires the property to hold "for every input buffer
// of length N", not just the fixed cases above.
func FuzzLex(f *testing.F) {
	seeds := []string{
		"",
		"fn main() { print(\"hi\"); }",
		"let mut a: [i64; 5] = [5,4,3,2,1];",
		"/* unterminated",
		`"unterminated`,
		"99999999999999999999",
		"struct P { x: i64, y: i64 }",
		"match d(10,2) { R::Ok(v) => v, R::Err => 0, }",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		checkTotality(t, input)
	})
}
