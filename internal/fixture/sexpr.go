package fixture

import (
	"fmt"
	"strings"

	"github.com/nyxlang/nyx/internal/position"
)

// sx is one node of the parsed s-expression tree: either an atom (a bare
// word, a quoted string, or a number) or a list of further sx nodes.
type sx struct {
	items []*sx
	atom  string
	span  position.Span
	list  bool
}

func (s *sx) String() string {
	if !s.list {
		return s.atom
	}
	parts := make([]string, len(s.items))
	for i, it := range s.items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// at reports the i'th element of a list, or nil if out of range.
func (s *sx) at(i int) *sx {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

type token struct {
	text string
	pos  position.Position
	kind tokKind
}

type tokKind int

const (
	tokOpen tokKind = iota
	tokClose
	tokAtom
)

// tokenize splits text into s-expression tokens: parens, bare words, and
// double-quoted strings (which retain their surrounding quotes so the
// builder can tell a string literal from a bare identifier).
func tokenize(filename, text string) []token {
	var toks []token
	line, col := 1, 1
	advance := func(r byte) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	posAt := func(offset int) position.Position {
		return position.Position{Filename: filename, Line: line, Column: col, Offset: offset}
	}

	i := 0
	for i < len(text) {
		c := text[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			advance(c)
			i++

		case c == ';': // line comment
			for i < len(text) && text[i] != '\n' {
				advance(text[i])
				i++
			}

		case c == '(' || c == ')':
			kind := tokOpen
			if c == ')' {
				kind = tokClose
			}
			toks = append(toks, token{text: string(c), pos: posAt(i)})
			toks[len(toks)-1].kind = kind
			advance(c)
			i++

		case c == '"':
			start := posAt(i)
			j := i + 1
			advance(c)
			for j < len(text) && text[j] != '"' {
				advance(text[j])
				j++
			}
			if j < len(text) {
				advance(text[j])
				j++
			}
			toks = append(toks, token{text: text[i:j], pos: start, kind: tokAtom})
			i = j

		default:
			start := posAt(i)
			j := i
			for j < len(text) && !isDelim(text[j]) {
				advance(text[j])
				j++
			}
			toks = append(toks, token{text: text[i:j], pos: start, kind: tokAtom})
			i = j
		}
	}
	return toks
}

func isDelim(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '(' || c == ')' || c == ';'
}

// parseSX parses the whole token stream as a sequence of top-level forms
// wrapped in an implicit outer list, so bare "(fn ...) (fn ...)" text
// needs no enclosing form.
func parseSX(filename, text string) (*sx, error) {
	toks := tokenize(filename, text)
	pos := 0

	var parseOne func() (*sx, error)
	parseOne = func() (*sx, error) {
		if pos >= len(toks) {
			return nil, fmt.Errorf("unexpected end of input")
		}
		t := toks[pos]
		switch t.kind {
		case tokOpen:
			pos++
			node := &sx{list: true, span: spanAt(t.pos)}
			for pos < len(toks) && toks[pos].kind != tokClose {
				child, err := parseOne()
				if err != nil {
					return nil, err
				}
				node.items = append(node.items, child)
			}
			if pos >= len(toks) {
				return nil, fmt.Errorf("unterminated list starting at %s", t.pos)
			}
			pos++ // consume ')'
			return node, nil

		case tokClose:
			return nil, fmt.Errorf("unexpected ')' at %s", t.pos)

		default:
			pos++
			return &sx{atom: t.text, span: spanAt(t.pos)}, nil
		}
	}

	root := &sx{list: true}
	for pos < len(toks) {
		child, err := parseOne()
		if err != nil {
			return nil, err
		}
		root.items = append(root.items, child)
	}
	return root, nil
}

func spanAt(p position.Position) position.Span {
	return position.Span{Start: p, End: p}
}
