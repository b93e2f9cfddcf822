package types

import (
	"strconv"
	"strings"
)

// String renders t as a bare declarator, for use in diagnostics.
func (t *Type) String() string {
	return ToStr(t, "")
}

// ToStr renders a C-style declarator string for t, threading embedded
// (the name or partial declarator being built up) through the type from
// the outside in. Called only by diagnostics; never load-bearing for
// analysis decisions.
func ToStr(t *Type, embedded string) string {
	switch t.Kind {
	case Invalid:
		return joinBasic("<invalid>", embedded)

	case Basic:
		return joinBasic(t.Sym.Name(), embedded)

	case Function:
		var params string
		if len(t.Params) == 0 {
			params = "void"
		} else {
			parts := make([]string, len(t.Params))
			for i, p := range t.Params {
				parts[i] = ToStr(p, "")
			}
			params = strings.Join(parts, ", ")
		}

		return ToStr(t.Return, "("+embedded+")("+params+")")

	case Ptr:
		return ToStr(t.Base, "*"+embedded)

	case Array:
		var length string
		if t.Length == -1 {
			length = ""
		} else {
			length = strconv.Itoa(t.Length)
		}
		return ToStr(t.Base, embedded+"["+length+"]")

	default:
		return embedded
	}
}

func joinBasic(basic, embedded string) string {
	if embedded == "" {
		return basic
	}
	return basic + " " + embedded
}
