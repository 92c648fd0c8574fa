package evaluator

import (
	"math"
	"strconv"
	"strings"
)

// Display renders v the way print and string concatenation show it:
// strings appear without quotes, everything else as Inspect.
func Display(v Value) string {
	if s, ok := v.(*String); ok {
		return s.Value
	}
	return v.Inspect()
}

// inspect prints v. Containers already on the path print as [...] or
// {...}, so self-containing values terminate.
func inspect(v Value, path map[Value]bool) string {
	switch val := v.(type) {
	case *List:
		if path[val] {
			return "[...]"
		}
		path = enter(path, val)
		defer delete(path, val)
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(inspect(e, path))
		}
		b.WriteByte(']')
		return b.String()
	case *Map:
		if path[val] {
			return "{...}"
		}
		path = enter(path, val)
		defer delete(path, val)
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range val.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(inspect(k, path))
			b.WriteString(": ")
			b.WriteString(inspect(val.values[i], path))
		}
		b.WriteByte('}')
		return b.String()
	}
	return v.Inspect()
}

func enter(path map[Value]bool, v Value) map[Value]bool {
	if path == nil {
		path = make(map[Value]bool)
	}
	path[v] = true
	return path
}

// formatFloat prints the shortest representation that reads back as f,
// keeping a ".0" on integral values so floats never look like ints.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
