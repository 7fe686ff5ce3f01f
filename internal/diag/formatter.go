package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics in a Rust-style format with a source
// snippet and a caret underline, caching source text by filename.
type Formatter struct {
	sourceCache map[string]string
	out         io.Writer
}

// NewFormatter creates a formatter that writes to stderr.
func NewFormatter() *Formatter {
	return &Formatter{
		sourceCache: make(map[string]string),
		out:         os.Stderr,
	}
}

// NewFormatterTo creates a formatter that writes to an arbitrary writer,
// primarily so tests can capture output.
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{
		sourceCache: make(map[string]string),
		out:         w,
	}
}

func (f *Formatter) loadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format prints one diagnostic: the severity header, the offending source
// line with a caret underline under the span, and an optional help note.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if !d.Span.IsValid() {
		f.printHelp(d)
		return
	}

	src, err := f.loadSource(d.Span.Filename)
	if err != nil || src == "" {
		fmt.Fprintf(f.out, "  --> %s:%d:%d\n", d.Span.Filename, d.Span.Line, d.Span.Column)
		f.printHelp(d)
		return
	}

	lines := strings.Split(src, "\n")
	if d.Span.Line < 1 || d.Span.Line > len(lines) {
		f.printHelp(d)
		return
	}

	lineContent := lines[d.Span.Line-1]
	lineNumStr := fmt.Sprintf("%d", d.Span.Line)
	pad := strings.Repeat(" ", len(lineNumStr))

	fmt.Fprintf(f.out, "  --> %s:%d:%d\n", d.Span.Filename, d.Span.Line, d.Span.Column)
	fmt.Fprintf(f.out, "%s |\n", pad)
	fmt.Fprintf(f.out, "%s | %s\n", lineNumStr, lineContent)

	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	col := d.Span.Column - 1
	if col < 0 {
		col = 0
	}
	underline := strings.Repeat(" ", col) + strings.Repeat("^", width)
	fmt.Fprintf(f.out, "%s | %s\n", pad, underline)

	f.printHelp(d)
}

func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}
	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

func (f *Formatter) printHelp(d Diagnostic) {
	if d.Help != "" {
		fmt.Fprintf(f.out, "  = help: %s\n", d.Help)
	}
}
