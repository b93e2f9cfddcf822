// Package fixture is a stand-in front end: it turns a small
// S-expression-shaped textual notation directly into the ast.Node trees
// and symbols.Symbol table internal/semantic analyzes, without owning a
// real lexer or parser for the source language (genuinely out of scope
// for this repository; see spec.md §1). It plays the role susji-c0's
// testers package and the teacher's internal/cli play: a way to drive
// the library end to end, from both cmd/nyxc and package tests.
//
// Grammar, by example:
//
//	(struct Point (int x) (int y))
//
//	(fn add ((int a) (int b)) int
//	  (return (+ a b)))
//
//	(fn main () void
//	  (decl int x (init 1))
//	  (decl (ptr int) p)
//	  (if (< x 10)
//	    (block (decl int y (init (call add x 1))))))
//
// Every declaration initializer is a brace list, "(init EXPR*)", even
// for a single scalar value — the fixture format mirrors the real front
// end's assumed desugaring rather than special-casing bare expressions.
package fixture

import (
	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/symbols"
)

// Program is a fully built fixture: a Module ast.Node ready to hand to
// semantic.Analyze, and the builtin type symbols it was built against.
type Program struct {
	Tree     *ast.Node
	Builtins *symbols.Builtins
}

// Load parses text (as loaded from a fixture file, or inlined in a
// test) and builds its Program. filename is used only to annotate
// source positions in diagnostics.
func Load(filename, text string) (*Program, error) {
	root, err := parseSX(filename, text)
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	tree := b.buildModule(root)
	if b.err != nil {
		return nil, b.err
	}

	return &Program{Tree: tree, Builtins: b.builtins}, nil
}
