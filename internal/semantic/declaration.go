package semantic

import (
	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/types"
)

// AnalyzeDecl handles a declaration node: populate the declared symbol's
// dt on first sighting, diagnose a redeclaration (conflicting or simple)
// on any later one, and check a present initializer against the
// resulting type.
//
// The full declaration analyzer — parsing declarator syntax, building
// the symbol table, scope resolution — is an external collaborator the
// analyzer only consumes (spec's declaration contract: "a dt slot,
// possibly unset until declaration analysis runs"). This is the minimal
// slice of that collaborator needed to drive the reporter end to end:
// it assumes node.L is already a resolved type expression and node.Symbol
// already names the declared symbol, and does nothing to build either.
func AnalyzeDecl(ctx *Context, node *ast.Node) {
	declared := EvalTypeNode(node.L)
	sym := node.Symbol

	target := declared
	if sym != nil {
		switch {
		case sym.DT == nil:
			sym.DT = types.Duplicate(declared)
		case !types.IsEqual(sym.DT, declared):
			ctx.Report.ConflictingRedeclaration(node.Span, sym.Ident, sym.DT, declared, sym.DeclSites)
		default:
			ctx.Report.SimpleRedeclaration(node.Span, sym.Ident, sym.DT, sym.DeclSites)
		}
		target = sym.DT
	}

	node.DT = types.Duplicate(target)

	if node.R != nil {
		AnalyzeInitOrCompoundLiteral(ctx, node.R, target)
	}
}
