package semantic

import (
	"testing"

	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/position"
	"github.com/nyxlang/nyx/internal/symbols"
	"github.com/nyxlang/nyx/internal/types"
)

func typeNode(dt *types.Type) *ast.Node {
	return &ast.Node{Tag: ast.TypeNode, DT: dt}
}

func position0() position.Span {
	return position.Span{
		Start: position.Position{Line: 1, Column: 1},
		End:   position.Position{Line: 1, Column: 1},
	}
}

func TestDeclFirstSightingPopulatesSymbolDT(t *testing.T) {
	ctx, buf := newTestContext()
	sym := symbols.New("x", symbols.KindID)
	node := &ast.Node{Tag: ast.Decl, Symbol: sym, L: typeNode(types.NewBasic(ctx.Builtins.Int))}

	AnalyzeDecl(ctx, node)

	if ctx.Report.Errors != 0 {
		t.Fatalf("unexpected errors: %s", buf.String())
	}
	if sym.DT == nil || !types.IsEqual(sym.DT, types.NewBasic(ctx.Builtins.Int)) {
		t.Errorf("sym.DT = %v, want int", sym.DT)
	}
}

func TestDeclConflictingRedeclaration(t *testing.T) {
	ctx, buf := newTestContext()
	sym := symbols.New("x", symbols.KindID)
	sym.DT = types.NewBasic(ctx.Builtins.Int)
	sym.AddDeclSite(position0())

	node := &ast.Node{Tag: ast.Decl, Symbol: sym, L: typeNode(types.NewBasic(ctx.Builtins.Bool))}
	AnalyzeDecl(ctx, node)

	if ctx.Report.Errors != 1 {
		t.Fatalf("Errors = %d, want 1: %s", ctx.Report.Errors, buf.String())
	}
}

func TestDeclSimpleRedeclaration(t *testing.T) {
	ctx, buf := newTestContext()
	sym := symbols.New("x", symbols.KindID)
	sym.DT = types.NewBasic(ctx.Builtins.Int)
	sym.AddDeclSite(position0())

	node := &ast.Node{Tag: ast.Decl, Symbol: sym, L: typeNode(types.NewBasic(ctx.Builtins.Int))}
	AnalyzeDecl(ctx, node)

	if ctx.Report.Errors != 1 {
		t.Fatalf("Errors = %d, want 1: %s", ctx.Report.Errors, buf.String())
	}
}

func TestDeclInitializerCompatibilityChecked(t *testing.T) {
	ctx, buf := newTestContext()
	sym := symbols.New("x", symbols.KindID)
	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))
	node := &ast.Node{
		Tag:    ast.Decl,
		Symbol: sym,
		L:      typeNode(types.NewBasic(ctx.Builtins.Bool)),
		R:      init,
	}

	AnalyzeDecl(ctx, node)

	if ctx.Report.Errors != 1 {
		t.Fatalf("expected a mismatch between bool and int initializer: %s", buf.String())
	}
}
