package inspect

import (
	"strings"

	odininspect "github.com/wippyai/odin-inspect"
)

func (ins *Inspector) procSummary(v Value) string {
	t := v.Type()
	switch t.Class() {
	case odininspect.ClassPointer:
		addr, err := v.Unsigned(ins.target)
		if err != nil {
			return diagnostic(err)
		}
		if addr == 0 {
			return nilText
		}
		if p := t.Pointee(); p != nil && p.Class() == odininspect.ClassFunction {
			return ins.signature(p)
		}
	case odininspect.ClassFunction:
		return ins.signature(t)
	}
	return ParseProcName(t.Name())
}

// signature renders a function type as proc "<conv>" (<params>) -> <result>.
func (ins *Inspector) signature(t Type) string {
	conv := t.Convention()
	if conv == "" {
		conv = ins.cfg.DefaultConvention
	}
	params := t.Params()
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = DisplayType(p)
	}
	result := ""
	if r := t.Result(); r != nil && !isVoid(r) {
		result = DisplayType(r)
	}
	return formatProc(`"`+conv+`"`, names, result)
}

func isVoid(t Type) bool {
	return t.Name() == "void"
}

func formatProc(conv string, params []string, result string) string {
	var b strings.Builder
	b.WriteString("proc ")
	if conv != "" {
		b.WriteString(conv)
		b.WriteByte(' ')
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(params, ", "))
	b.WriteByte(')')
	if result != "" {
		b.WriteString(" -> ")
		b.WriteString(result)
	}
	return b.String()
}

// ParseProcName rewrites a procedure type name as recorded in debug info,
// such as
//
//	proc "contextless" (f:^main::Foo,b:main::Bar)->(ok:bool)
//
// into display form:
//
//	proc "contextless" (^main.Foo, main.Bar) -> bool
//
// Parameter names are dropped. Multiple results are kept parenthesized.
func ParseProcName(name string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(name, "proc"))

	conv := ""
	if strings.HasPrefix(rest, `"`) {
		if end := strings.IndexByte(rest[1:], '"'); end >= 0 {
			conv = rest[:end+2]
			rest = strings.TrimSpace(rest[end+2:])
		}
	}

	end := -1
	if strings.HasPrefix(rest, "(") {
		end = closingParen(rest)
	}
	if end < 0 {
		if conv == "" {
			return "proc <invalid>"
		}
		return "proc " + conv + " <invalid>"
	}

	params := paramTypes(rest[1:end])

	result := ""
	if tail := strings.TrimSpace(rest[end+1:]); strings.HasPrefix(tail, "->") {
		ret := strings.TrimSpace(tail[2:])
		if strings.HasPrefix(ret, "(") && closingParen(ret) == len(ret)-1 {
			types := paramTypes(ret[1 : len(ret)-1])
			switch {
			case len(types) == 1:
				result = types[0]
			case len(types) > 1:
				result = "(" + strings.Join(types, ", ") + ")"
			}
		} else {
			result = paramType(ret)
		}
	}
	return formatProc(conv, params, result)
}

// closingParen returns the index of the parenthesis closing s[0], or -1.
func closingParen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// paramTypes splits a parameter list on top level commas and keeps the type
// of each entry.
func paramTypes(list string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i <= len(list); i++ {
		if i < len(list) {
			switch list[i] {
			case '(', '[', '{':
				depth++
				continue
			case ')', ']', '}':
				depth--
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		if p := strings.TrimSpace(list[start:i]); p != "" {
			out = append(out, paramType(p))
		}
		start = i + 1
	}
	return out
}

// paramType strips the "name:" prefix of a parameter. A "::" package
// separator is not a name separator.
func paramType(p string) string {
	for i := 0; i < len(p); i++ {
		if p[i] != ':' {
			continue
		}
		if i+1 < len(p) && p[i+1] == ':' {
			i++
			continue
		}
		p = p[i+1:]
		break
	}
	return normalizeName(strings.TrimSpace(p))
}
