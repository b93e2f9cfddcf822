package semantic

import (
	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/symbols"
	"github.com/nyxlang/nyx/internal/types"
)

// AnalyzeInitOrCompoundLiteral checks a brace-list initializer or
// compound-literal body against target, the already-resolved type the
// list must fill (a variable's declared type, or a compound literal's
// named type).
// Every initializer position — scalar, array, or struct — arrives as a
// brace-list node; a bare "int x = 1;" initializer is a one-element list.
//
// Ported from analyzerInitOrCompoundLiteral in the original analyzer. An
// Invalid target stops all checking immediately: nothing underneath an
// already-poisoned declaration is worth analyzing further.
func AnalyzeInitOrCompoundLiteral(ctx *Context, node *ast.Node, target *types.Type) ValueResult {
	node.DT = types.Duplicate(target)

	switch {
	case types.IsInvalid(target):
		// nothing further to check

	case types.IsRecord(target):
		analyzeStructInit(ctx, node, target)

	case types.IsArray(target):
		analyzeArrayInit(ctx, node, target)

	default:
		analyzeScalarInit(ctx, node, target)
	}

	return ValueResult{DT: node.DT, Lvalue: false}
}

// isNestedInit reports whether elem is itself a brace-list that should
// recurse through AnalyzeInitOrCompoundLiteral, as opposed to a plain
// expression (including an explicitly-typed compound literal, which goes
// through the ordinary expression path and resolves its own type).
func isNestedInit(elem *ast.Node) bool {
	return elem.Tag == ast.Literal && elem.LitTag == ast.LitInit
}

func analyzeStructInit(ctx *Context, node *ast.Node, target *types.Type) {
	recordSym, ok := target.Sym.(*symbols.Symbol)
	if !ok {
		return
	}

	fields := recordSym.Children
	elems := node.Children()

	if len(elems) != len(fields) {
		ctx.Report.Arity(node.Span, "field(s)", len(fields), len(elems), recordSym.Ident)
		return
	}

	for n, elem := range elems {
		field := fields[n]

		var elemDT *types.Type
		if isNestedInit(elem) {
			elemDT = AnalyzeInitOrCompoundLiteral(ctx, elem, field.DT).DT
		} else {
			elemDT = AnalyzeValue(ctx, elem).DT
		}

		if !types.IsCompatible(elemDT, field.DT) {
			ctx.Report.FieldMismatch(elem.Span, recordSym.Ident, field.Ident, field.DT, elemDT)
		}
	}
}

// analyzeArrayInit checks an array initializer. Too many elements is an
// error; fewer than the declared length is not (the remainder is assumed
// zero-filled), and an incomplete (length -1) array accepts any count.
func analyzeArrayInit(ctx *Context, node *ast.Node, target *types.Type) {
	elems := node.Children()

	if target.Length != -1 && target.Length < len(elems) {
		ctx.Report.Arity(node.Span, "element(s)", target.Length, len(elems), "array")
	}

	for _, elem := range elems {
		var elemDT *types.Type
		if isNestedInit(elem) {
			elemDT = AnalyzeInitOrCompoundLiteral(ctx, elem, target.Base).DT
		} else {
			elemDT = AnalyzeValue(ctx, elem).DT
		}

		if !types.IsCompatible(elemDT, target.Base) {
			ctx.Report.ExpectedType(elem.Span, "array initialization", target.Base, elemDT)
		}
	}
}

func analyzeScalarInit(ctx *Context, node *ast.Node, target *types.Type) {
	elems := node.Children()

	if len(elems) != 1 {
		ctx.Report.Arity(node.Span, "element", 1, len(elems), "scalar")
		return
	}

	result := AnalyzeValue(ctx, elems[0])
	if !types.IsCompatible(result.DT, target) {
		ctx.Report.ExpectedType(elems[0].Span, "variable initialization", target, result.DT)
	}
}
