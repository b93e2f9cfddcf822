// Package semantic implements the tree-walking analyzer: the value
// (expression), statement, and initializer visitors that stamp every
// AST node's inferred type and enforce the language's static rules.
package semantic

import (
	"github.com/nyxlang/nyx/internal/diagnostics"
	"github.com/nyxlang/nyx/internal/symbols"
	"github.com/nyxlang/nyx/internal/types"
)

// Context is the mutable state threaded explicitly through every
// visitor: the built-in type table, the current function's declared
// return type (Invalid outside any function body), and the diagnostic
// reporter. There is no process-wide state; a Context lives exactly as
// long as one Analyze call.
type Context struct {
	Builtins   *symbols.Builtins
	ReturnType *types.Type
	Report     *diagnostics.Reporter
}

// NewContext constructs an analyzer context over the given built-in type
// table, reporting diagnostics through report.
func NewContext(builtins *symbols.Builtins, report *diagnostics.Reporter) *Context {
	// ReturnType starts Invalid, not nil: a return statement reached
	// outside any function body (a parse-time impossibility in a well
	// formed program, but not this package's concern to rule out) then
	// hits Invalid's absorbing behavior instead of a nil dereference.
	return &Context{Builtins: builtins, Report: report, ReturnType: types.NewInvalid()}
}

// withReturnType installs t as the current function's return type for
// the duration of body, then restores whatever was installed before —
// the scoped acquisition mentioned in the design notes, standing in for
// the original's explicit save/destroy/restore around a function body.
func (ctx *Context) withReturnType(t *types.Type, body func()) {
	prev := ctx.ReturnType
	ctx.ReturnType = t
	defer func() { ctx.ReturnType = prev }()
	body()
}

// Result is what Analyze returns: the final error and warning counts.
type Result struct {
	Errors   int
	Warnings int
}
