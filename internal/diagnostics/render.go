package diagnostics

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	colorRed   = "\x1b[31m"
	colorGray  = "\x1b[37m"
	colorReset = "\x1b[0m"
)

// ColorSupported reports whether f is a terminal that should receive ANSI
// colour. NO_COLOR (https://no-color.org/) and TERM=dumb disable it.
func ColorSupported(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render formats err with the offending source line, one line of context on
// each side and a caret under the reported column.
func Render(err *DiagnosticError, source string, color bool) string {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	var b strings.Builder
	b.WriteString(paint(colorRed, err.Error()))
	b.WriteByte('\n')

	if !err.HasPosition() || source == "" {
		return b.String()
	}
	lines := strings.Split(source, "\n")
	line := err.Token.Line
	if line > len(lines) {
		return b.String()
	}

	if line >= 2 {
		b.WriteString(paint(colorGray, "| "+lines[line-2]))
		b.WriteByte('\n')
	}
	current := lines[line-1]
	b.WriteString("| " + current)
	b.WriteByte('\n')

	// keep tabs so the caret lines up with the rendered source
	var pad strings.Builder
	pad.WriteString("  ")
	for i, r := range []rune(current) {
		if i >= err.Token.Column-1 {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	b.WriteString(pad.String())
	b.WriteString(paint(colorRed, "^"))
	b.WriteByte('\n')

	if line < len(lines) {
		b.WriteString(paint(colorGray, "| "+lines[line]))
		b.WriteByte('\n')
	}
	return b.String()
}
