package sema

import (
	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// Error is the single diagnostic semantic analysis can fail with. Spec.md
// §4.3 runs three interleaved passes that must all succeed; the checker
// stops at the first failure any of them reports.
type Error struct {
	Code    diag.Code
	Message string
	Span    lexer.Span
	Help    string
}

func (e Error) Error() string { return e.Message }

func (e Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityError,
		Code:     e.Code,
		Message:  e.Message,
		Help:     e.Help,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}
