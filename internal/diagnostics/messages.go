package diagnostics

import (
	"fmt"

	"github.com/nyxlang/nyx/internal/position"
	"github.com/nyxlang/nyx/internal/types"
)

// ExpectedKind reports that where required a value of the free-form
// kind description (e.g. "numeric type", "condition"), but found found.
// Grounds §4.6's "expected-vs-found (free-form)" and mirrors the
// original analyzer's analyzerErrorExpected/analyzerErrorOp.
func (r *Reporter) ExpectedKind(span position.Span, where, expectedKind string, found *types.Type) {
	r.emit(LevelError, span, "%s expected %s, found %s", where, expectedKind, found)
}

// ExpectedType reports that where required exactly the type expected,
// but found found. Grounds §4.6's "expected-vs-found (type)".
func (r *Reporter) ExpectedType(span position.Span, where string, expected, found *types.Type) {
	r.emit(LevelError, span, "%s expected %s, found %s", where, expected, found)
}

// Lvalue reports that operator o requires an lvalue operand.
func (r *Reporter) Lvalue(span position.Span, o string) {
	r.emit(LevelError, span, "%s requires lvalue", o)
}

// Mismatch reports that l and r are incompatible across operator o.
func (r *Reporter) Mismatch(span position.Span, o string, l, r2 *types.Type) {
	r.emit(LevelError, span, "type mismatch between %s and %s for %s", l, r2, o)
}

// Arity reports an arity mismatch: where expected n of thing but found
// were given (used for both call arguments and initializer degree).
func (r *Reporter) Arity(span position.Span, thing string, expected, found int, where string) {
	r.emit(LevelError, span, "%s expected %d %s, %d given", where, expected, thing, found)
}

// ParamMismatch reports a positional parameter type mismatch against an
// unnamed callee (a call through a function pointer expression).
func (r *Reporter) ParamMismatch(span position.Span, n int, expected, found *types.Type) {
	r.emit(LevelError, span, "type mismatch at parameter %d: expected %s, found %s", n+1, expected, found)
}

// NamedParamMismatch reports a positional parameter mismatch against a
// callee known by name, so the diagnostic can name the function
// (original_source/src/analyzer-value.c: analyzerErrorNamedParamMismatch).
func (r *Reporter) NamedParamMismatch(span position.Span, n int, calleeName string, found *types.Type) {
	r.emit(LevelError, span, "%s: type mismatch at parameter %d, found %s", calleeName, n+1, found)
}

// Member reports that operator o found no field name on record.
func (r *Reporter) Member(span position.Span, o, name string, record *types.Type) {
	r.emit(LevelError, span, "%s expected field of %s, found %s", o, record, name)
}

// FieldMismatch reports that a struct initializer element is incompatible
// with the field it fills. The original's errorInitFieldMismatch body is
// not present in the retrieved sources; this follows the same
// where/expected/found framing as ExpectedType, naming both the record
// and the field.
func (r *Reporter) FieldMismatch(span position.Span, recordName, fieldName string, expected, found *types.Type) {
	r.emit(LevelError, span, "field %s.%s expected %s, found %s", recordName, fieldName, expected, found)
}

// ConflictingRedeclaration reports that name was redeclared with found,
// a type incompatible with its existing one, and lists every prior
// declaration site.
func (r *Reporter) ConflictingRedeclaration(span position.Span, name string, existing, found *types.Type, priorSites []position.Span) {
	r.emit(LevelError, span, "%s redeclared as conflicting type %s", types.ToStr(existing, name), found)
	r.declSites(span, priorSites)
}

// SimpleRedeclaration reports that name was redeclared with the same
// type it already had — still illegal, but without the "conflicting
// type" framing.
func (r *Reporter) SimpleRedeclaration(span position.Span, name string, existing *types.Type, priorSites []position.Span) {
	r.emit(LevelError, span, "%s redeclared", types.ToStr(existing, name))
	r.declSites(span, priorSites)
}

// declSites prints a secondary "also declared here" line for every prior
// site other than span itself. These are informational: unlike emit,
// they do not advance the error counter, matching the original
// analyzer's single increment per diagnosed redeclaration.
func (r *Reporter) declSites(span position.Span, priorSites []position.Span) {
	for _, site := range priorSites {
		if site.Start.Line == span.Start.Line && site.Start.Column == span.Start.Column {
			continue
		}
		fmt.Fprintf(r.sink, "     (%s): also declared here\n", site)
	}
}

// IllegalSymbolAsValue reports that a symbol of the given kind cannot be
// used as a value (e.g. a type name or struct tag referenced as an
// identifier expression).
func (r *Reporter) IllegalSymbolAsValue(span position.Span, kind string) {
	r.emit(LevelError, span, "cannot use a %s as a value", kind)
}
