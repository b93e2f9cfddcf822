// Package ast is the analyzer's read/write view of the parsed syntax
// tree: tags, operator strings, the sibling-chain child list, literal
// payloads, and the two slots analysis writes back — DT (inferred data
// type) and Symbol (resolved reference).
//
// Lexing and parsing are out of scope here (external collaborators);
// this package defines only the shape the analyzer walks and mutates.
package ast

import (
	"github.com/nyxlang/nyx/internal/position"
	"github.com/nyxlang/nyx/internal/symbols"
	"github.com/nyxlang/nyx/internal/types"
)

// Tag discriminates the syntactic family of a node.
type Tag int

const (
	Empty Tag = iota
	InvalidTag
	Module
	Using
	FnImpl
	Decl
	Code
	Branch
	Loop
	Iter
	Return
	Break
	TypeNode // a parsed type expression, e.g. a cast target or declared type

	BOP
	UOP
	TOP // ternary ?:
	Index
	Call
	Cast
	Sizeof
	Literal
)

func (t Tag) String() string {
	names := [...]string{
		"Empty", "Invalid", "Module", "Using", "FnImpl", "Decl", "Code",
		"Branch", "Loop", "Iter", "Return", "Break", "TypeNode",
		"BOP", "UOP", "TOP", "Index", "Call", "Cast", "Sizeof", "Literal",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// LitTag discriminates a Literal node's payload shape.
type LitTag int

const (
	LitNone LitTag = iota
	LitInt
	LitChar
	LitBool
	LitStr
	LitIdent
	LitCompound // a compound-literal expression: (T){ ... }
	LitInit     // a brace-list used as a plain initializer, or nested inside one
)

// Node is a single AST node. Children are threaded through FirstChild/
// NextSibling (a sibling chain), matching how brace-lists, call argument
// lists, and statement blocks are walked. L and R are the two named
// operand slots binary/unary/ternary/index/cast nodes use.
//
// DT and Symbol are the two fields analysis writes: every expression node
// it visits leaves analysis with DT populated, and member-access/identifier nodes
// leave Symbol populated (or DT Invalid if resolution failed).
type Node struct {
	DT          *types.Type
	Symbol      *symbols.Symbol
	FirstChild  *Node
	NextSibling *Node
	L           *Node
	R           *Node
	Op          string
	Literal     string
	IntValue    int64
	Span        position.Span
	Tag         Tag
	LitTag      LitTag
	ChildCount  int
}

// Children returns this node's children in order, materialized from the
// sibling chain.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, n.ChildCount)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// AddChild appends c to n's child list, maintaining the sibling chain
// and count. Used by tree builders (the fixture loader, tests); the
// analyzer itself never mutates structure, only DT/Symbol.
func (n *Node) AddChild(c *Node) {
	n.ChildCount++
	if n.FirstChild == nil {
		n.FirstChild = c
		return
	}
	last := n.FirstChild
	for last.NextSibling != nil {
		last = last.NextSibling
	}
	last.NextSibling = c
}
