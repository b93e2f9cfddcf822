package semantic

import (
	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/diagnostics"
	"github.com/nyxlang/nyx/internal/symbols"
	"github.com/nyxlang/nyx/internal/types"
)

// Analyze walks tree and reports every diagnostic the static rules
// require, returning the final error and warning counts. This is the
// package's sole entry point (ports analyzer() in the original).
func Analyze(tree *ast.Node, builtins *symbols.Builtins) Result {
	report := diagnostics.NewReporter(nil)
	ctx := NewContext(builtins, report)
	AnalyzeNode(ctx, tree)
	return Result{Errors: report.Errors, Warnings: report.Warnings}
}

// AnalyzeNode dispatches a statement-level node to its visitor. Value
// (expression) tags are routed to AnalyzeValue; its result is discarded
// since a bare expression statement's type carries no further meaning.
func AnalyzeNode(ctx *Context, node *ast.Node) {
	switch node.Tag {
	case ast.Empty, ast.InvalidTag:
		// nothing to check

	case ast.Module:
		analyzeModule(ctx, node)

	case ast.Using:
		AnalyzeNode(ctx, node.R)

	case ast.FnImpl:
		analyzeFnImpl(ctx, node)

	case ast.Decl:
		AnalyzeDecl(ctx, node)

	case ast.Code:
		analyzeCode(ctx, node)

	case ast.Branch:
		analyzeBranch(ctx, node)

	case ast.Loop:
		analyzeLoop(ctx, node)

	case ast.Iter:
		analyzeIter(ctx, node)

	case ast.Return:
		analyzeReturn(ctx, node)

	case ast.Break:
		// inside a breakable block is a parse-time concern, not ours

	default:
		AnalyzeValue(ctx, node)
	}
}

func analyzeModule(ctx *Context, node *ast.Node) {
	for _, child := range node.Children() {
		AnalyzeNode(ctx, child)
	}
}

func analyzeCode(ctx *Context, node *ast.Node) {
	for _, child := range node.Children() {
		AnalyzeNode(ctx, child)
	}
}

func analyzeFnImpl(ctx *Context, node *ast.Node) {
	// Analyze the prototype first: it is what populates node.Symbol.DT on
	// a function seen for the first time.
	AnalyzeDecl(ctx, node.L)

	declared := types.NewInvalid()
	if node.Symbol != nil && node.Symbol.DT != nil {
		declared = node.Symbol.DT
	}

	if !types.IsFunction(declared) {
		ctx.Report.ExpectedKind(node.Span, "implementation", "function", declared)
	}

	// Nesting is accepted here but functions are not nestable in the
	// language; restoring the prior return type on exit is a defensive
	// measure against that impossible case, not a feature.
	ctx.withReturnType(types.DeriveReturn(declared), func() {
		AnalyzeNode(ctx, node.R)
	})
}

func analyzeBranch(ctx *Context, node *ast.Node) {
	cond := node.FirstChild
	condResult := AnalyzeValue(ctx, cond)

	if !types.IsCondition(condResult.DT) {
		ctx.Report.ExpectedKind(cond.Span, "if", "condition", condResult.DT)
	}

	AnalyzeNode(ctx, node.L)
	if node.R != nil {
		AnalyzeNode(ctx, node.R)
	}
}

// analyzeLoop handles both while and do-while: a do-while's body (a Code
// node) occupies L with the condition in R, while a plain while has the
// condition in L and the body in R.
func analyzeLoop(ctx *Context, node *ast.Node) {
	isDo := node.L.Tag == ast.Code

	cond, code := node.L, node.R
	if isDo {
		cond, code = node.R, node.L
	}

	condResult := AnalyzeValue(ctx, cond)
	if !types.IsCondition(condResult.DT) {
		ctx.Report.ExpectedKind(cond.Span, "do loop", "condition", condResult.DT)
	}

	AnalyzeNode(ctx, code)
}

func analyzeIter(ctx *Context, node *ast.Node) {
	init := node.FirstChild
	cond := init.NextSibling
	iter := cond.NextSibling

	if init.Tag == ast.Decl {
		AnalyzeNode(ctx, init)
	} else if init.Tag != ast.Empty {
		AnalyzeValue(ctx, init)
	}

	if cond.Tag != ast.Empty {
		condResult := AnalyzeValue(ctx, cond)
		if !types.IsCondition(condResult.DT) {
			ctx.Report.ExpectedKind(cond.Span, "for loop", "condition", condResult.DT)
		}
	}

	if iter.Tag != ast.Empty {
		AnalyzeValue(ctx, iter)
	}

	AnalyzeNode(ctx, node.L)
}

func analyzeReturn(ctx *Context, node *ast.Node) {
	if node.R != nil {
		result := AnalyzeValue(ctx, node.R)
		if !types.IsCompatible(result.DT, ctx.ReturnType) {
			ctx.Report.ExpectedType(node.R.Span, "return", ctx.ReturnType, result.DT)
		}
		return
	}

	if !types.IsVoid(ctx.ReturnType) {
		ctx.Report.ExpectedType(node.Span, "return statement", ctx.ReturnType, types.NewBasic(ctx.Builtins.Void))
	}
}
