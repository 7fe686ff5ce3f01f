package lexer

import (
	"strconv"

	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/interner"
)

// ErrorKind classifies the failure modes spec.md §4.1 enumerates.
type ErrorKind int

const (
	ErrUnterminatedString ErrorKind = iota
	ErrUnterminatedBlockComment
	ErrIllegalCharacter
	ErrIntegerOverflow
)

func (k ErrorKind) code() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeLexUnterminatedBlock
	case ErrIntegerOverflow:
		return diag.CodeLexIntOverflow
	default:
		return diag.CodeLexIllegalChar
	}
}

// Error is the single diagnostic a Lex call can fail with. The lexer stops
// at the first error, per spec.md §7: no partial recovery within a stage.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
}

func (e Error) Error() string { return e.Message }

// ToDiagnostic converts a lexer error into the shared diagnostic type.
func (e Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.code(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer converts a source buffer into a span-tagged token stream.
type Lexer struct {
	filename string
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune, 0 at EOF
	line     int
	column   int

	// interner deduplicates identifier text (spec.md §3: "a symbol
	// interner for identifiers", "stable for the lifetime of one
	// compilation"). Every IDENT token's Raw field is canonicalized
	// through it, so repeated occurrences of the same identifier in a
	// translation unit share one string header instead of each being a
	// distinct substring slice of the source buffer's rune-to-string
	// conversions.
	interner *interner.Interner
}

// New creates a lexer over input, attributing all spans to filename, with
// its own fresh interner.
func New(filename, input string) *Lexer {
	return NewWithInterner(filename, input, interner.New())
}

// NewWithInterner creates a lexer that canonicalizes identifier text
// through in, so a parser/lexer pair sharing one interner instance see
// identical Go strings for identical identifiers (spec.md §3's "stable for
// the lifetime of one compilation").
func NewWithInterner(filename, input string, in *interner.Interner) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []rune(input),
		pos:      -1,
		line:     1,
		column:   0,
		interner: in,
	}
	l.advance()
	return l
}

// Interner returns the symbol interner this lexer canonicalizes identifier
// text through.
func (l *Lexer) Interner() *interner.Interner { return l.interner }

// advance moves to the next rune, maintaining line/column bookkeeping.
func (l *Lexer) advance() {
	prev := l.pos
	l.pos++
	if l.pos >= len(l.input) {
		if prev >= 0 && prev < len(l.input) && l.input[prev] == '\n' {
			l.line++
			l.column = 1
		} else if prev < 0 {
			l.column = 1
		} else {
			l.column++
		}
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
	if prev >= 0 && prev < len(l.input) && l.input[prev] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) pos3() (line, column, pos int) {
	return l.line, l.column, l.pos
}

func (l *Lexer) span(startLine, startColumn, startPos, endPos int) Span {
	return Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: endPos}
}

// Lex tokenizes the entire input, returning a token slice ending with
// exactly one EOF token, or the first lexical error encountered.
func Lex(filename, input string) ([]Token, error) {
	toks, _, err := LexWithInterner(filename, input, interner.New())
	return toks, err
}

// LexWithInterner tokenizes input the same way Lex does, canonicalizing
// every identifier's text through the caller-supplied interner (so a
// driver that shares one interner instance across the lexer and parser
// satisfies spec.md §3's "stable for the lifetime of one compilation").
// It returns the interner back so a caller that passed a fresh one can
// still retrieve it.
func LexWithInterner(filename, input string, in *interner.Interner) ([]Token, *interner.Interner, error) {
	l := NewWithInterner(filename, input, in)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, in, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, in, nil
		}
	}
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
			continue
		case '/':
			if l.peek() == '/' {
				for l.ch != '\n' && l.ch != 0 {
					l.advance()
				}
				continue
			}
			if l.peek() == '*' {
				startLine, startColumn, startPos := l.pos3()
				l.advance() // '/'
				l.advance() // '*'
				for {
					if l.ch == 0 {
						return Error{
							Kind:    ErrUnterminatedBlockComment,
							Message: "unterminated block comment",
							Span:    l.span(startLine, startColumn, startPos, l.pos),
						}
					}
					if l.ch == '*' && l.peek() == '/' {
						l.advance()
						l.advance()
						break
					}
					l.advance()
				}
				continue
			}
			return nil
		default:
			return nil
		}
	}
}

// next scans and returns the single next token.
func (l *Lexer) next() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	startLine, startColumn, startPos := l.pos3()

	if l.ch == 0 {
		if startColumn == 0 {
			startColumn = 1
		}
		return Token{Type: EOF, Span: l.span(startLine, startColumn, startPos, startPos)}, nil
	}

	mk := func(t TokenType, raw string) Token {
		return Token{Type: t, Raw: raw, Span: l.span(startLine, startColumn, startPos, l.pos)}
	}

	two := func(second rune, twoType, oneType TokenType) Token {
		ch := l.ch
		if l.peek() == second {
			l.advance()
			raw := string(ch) + string(l.ch)
			l.advance()
			return mk(twoType, raw)
		}
		raw := string(ch)
		l.advance()
		return mk(oneType, raw)
	}

	switch l.ch {
	case '+':
		return two('=', PLUSEQ, PLUS), nil
	case '-':
		if l.peek() == '>' {
			l.advance()
			raw := "-" + string(l.ch)
			l.advance()
			return mk(ARROW, raw), nil
		}
		return two('=', MINUSEQ, MINUS), nil
	case '*':
		return two('=', STAREQ, STAR), nil
	case '/':
		return two('=', SLASHEQ, SLASH), nil
	case '%':
		raw := string(l.ch)
		l.advance()
		return mk(PERCENT, raw), nil
	case '=':
		if l.peek() == '>' {
			l.advance()
			raw := "=" + string(l.ch)
			l.advance()
			return mk(FATARROW, raw), nil
		}
		return two('=', EQ, ASSIGN), nil
	case '!':
		return two('=', NEQ, BANG), nil
	case '<':
		return two('=', LE, LT), nil
	case '>':
		return two('=', GE, GT), nil
	case '&':
		if l.peek() == '&' {
			l.advance()
			raw := "&&"
			l.advance()
			return mk(AND, raw), nil
		}
		raw := string(l.ch)
		l.advance()
		return mk(AMP, raw), nil
	case '|':
		if l.peek() == '|' {
			l.advance()
			raw := "||"
			l.advance()
			return mk(OR, raw), nil
		}
		tok := mk(ILLEGAL, "|")
		l.advance()
		return tok, Error{Kind: ErrIllegalCharacter, Message: "illegal character " + strconv.QuoteRune('|'), Span: tok.Span}
	case ':':
		if l.peek() == ':' {
			l.advance()
			raw := "::"
			l.advance()
			return mk(DCOLON, raw), nil
		}
		raw := string(l.ch)
		l.advance()
		return mk(COLON, raw), nil
	case '.':
		if l.peek() == '.' {
			l.advance()
			raw := ".."
			l.advance()
			return mk(DOTDOT, raw), nil
		}
		raw := string(l.ch)
		l.advance()
		return mk(DOT, raw), nil
	case ';':
		raw := string(l.ch)
		l.advance()
		return mk(SEMICOLON, raw), nil
	case ',':
		raw := string(l.ch)
		l.advance()
		return mk(COMMA, raw), nil
	case '(':
		raw := string(l.ch)
		l.advance()
		return mk(LPAREN, raw), nil
	case ')':
		raw := string(l.ch)
		l.advance()
		return mk(RPAREN, raw), nil
	case '{':
		raw := string(l.ch)
		l.advance()
		return mk(LBRACE, raw), nil
	case '}':
		raw := string(l.ch)
		l.advance()
		return mk(RBRACE, raw), nil
	case '[':
		raw := string(l.ch)
		l.advance()
		return mk(LBRACKET, raw), nil
	case ']':
		raw := string(l.ch)
		l.advance()
		return mk(RBRACKET, raw), nil
	case '"':
		return l.lexString(startLine, startColumn, startPos)
	}

	if isLetter(l.ch) {
		start := l.pos
		for isLetter(l.ch) || isDigit(l.ch) {
			l.advance()
		}
		text := string(l.input[start:l.pos])
		tt := LookupIdent(text)
		if tt == IDENT {
			// Canonicalize through the interner so repeated occurrences of
			// the same identifier share one string allocation.
			text = l.interner.Lookup(l.interner.Intern(text))
		}
		tok := mk(tt, text)
		return tok, nil
	}

	if isDigit(l.ch) {
		return l.lexInt(startLine, startColumn, startPos)
	}

	raw := string(l.ch)
	tok := mk(ILLEGAL, raw)
	l.advance()
	return tok, Error{
		Kind:    ErrIllegalCharacter,
		Message: "illegal character " + strconv.QuoteRune([]rune(tok.Raw)[0]),
		Span:    tok.Span,
	}
}

func (l *Lexer) lexInt(startLine, startColumn, startPos int) (Token, error) {
	start := l.pos
	for isDigit(l.ch) {
		l.advance()
	}
	text := string(l.input[start:l.pos])
	span := l.span(startLine, startColumn, startPos, l.pos)

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, Error{
			Kind:    ErrIntegerOverflow,
			Message: "integer literal " + text + " overflows a 64-bit signed integer",
			Span:    span,
		}
	}
	return Token{Type: INT, Raw: text, Int: value, Span: span}, nil
}

func (l *Lexer) lexString(startLine, startColumn, startPos int) (Token, error) {
	l.advance() // consume opening quote
	var raw []rune
	var decoded []rune
	raw = append(raw, '"')

	for {
		if l.ch == 0 {
			span := l.span(startLine, startColumn, startPos, l.pos)
			return Token{}, Error{Kind: ErrUnterminatedString, Message: "unterminated string literal", Span: span}
		}
		if l.ch == '"' {
			raw = append(raw, '"')
			l.advance()
			break
		}
		if l.ch == '\n' {
			span := l.span(startLine, startColumn, startPos, l.pos)
			return Token{}, Error{Kind: ErrUnterminatedString, Message: "newline in string literal", Span: span}
		}
		if l.ch == '\\' {
			raw = append(raw, '\\')
			l.advance()
			if l.ch == 0 {
				span := l.span(startLine, startColumn, startPos, l.pos)
				return Token{}, Error{Kind: ErrUnterminatedString, Message: "unterminated string literal", Span: span}
			}
			raw = append(raw, l.ch)
			switch l.ch {
			case 'n':
				decoded = append(decoded, '\n')
			case 't':
				decoded = append(decoded, '\t')
			case 'r':
				decoded = append(decoded, '\r')
			case '0':
				decoded = append(decoded, 0)
			case '\\':
				decoded = append(decoded, '\\')
			case '"':
				decoded = append(decoded, '"')
			default:
				decoded = append(decoded, '\\', l.ch)
			}
			l.advance()
			continue
		}
		raw = append(raw, l.ch)
		decoded = append(decoded, l.ch)
		l.advance()
	}

	span := l.span(startLine, startColumn, startPos, l.pos)
	return Token{Type: STRING, Raw: string(raw), Str: string(decoded), Span: span}, nil
}
