package semantic

import (
	"testing"

	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/symbols"
	"github.com/nyxlang/nyx/internal/types"
)

func TestArrayInitializerLengthMismatch(t *testing.T) {
	ctx, buf := newTestContext()
	arrayType := types.NewArray(types.NewBasic(ctx.Builtins.Int), 3)

	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))
	init.AddChild(intLit(2))
	init.AddChild(intLit(3))
	init.AddChild(intLit(4))

	AnalyzeInitOrCompoundLiteral(ctx, init, arrayType)

	if ctx.Report.Errors != 1 {
		t.Fatalf("Errors = %d, want 1: %s", ctx.Report.Errors, buf.String())
	}
}

func TestArrayInitializerUnderfillAccepted(t *testing.T) {
	ctx, buf := newTestContext()
	arrayType := types.NewArray(types.NewBasic(ctx.Builtins.Int), 3)

	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))

	AnalyzeInitOrCompoundLiteral(ctx, init, arrayType)

	if ctx.Report.Errors != 0 {
		t.Fatalf("fewer elements than the declared length should be accepted: %s", buf.String())
	}
}

func TestArrayInitializerIncompleteLengthAccepted(t *testing.T) {
	ctx, buf := newTestContext()
	arrayType := types.NewArray(types.NewBasic(ctx.Builtins.Int), -1)

	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))
	init.AddChild(intLit(2))
	init.AddChild(intLit(3))

	AnalyzeInitOrCompoundLiteral(ctx, init, arrayType)

	if ctx.Report.Errors != 0 {
		t.Fatalf("an incomplete array should accept any element count: %s", buf.String())
	}
}

func TestScalarInitializerBraceWrap(t *testing.T) {
	ctx, buf := newTestContext()
	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))

	result := AnalyzeInitOrCompoundLiteral(ctx, init, types.NewBasic(ctx.Builtins.Int))

	if ctx.Report.Errors != 0 {
		t.Fatalf("unexpected errors: %s", buf.String())
	}
	if !types.IsEqual(result.DT, types.NewBasic(ctx.Builtins.Int)) {
		t.Errorf("DT = %s, want int", result.DT)
	}
}

func TestPlainScalarInitializerCompatibility(t *testing.T) {
	ctx, buf := newTestContext()
	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))

	result := AnalyzeInitOrCompoundLiteral(ctx, init, types.NewBasic(ctx.Builtins.Bool))

	if ctx.Report.Errors != 1 {
		t.Fatalf("expected int-to-bool initializer mismatch: %s", buf.String())
	}
	if !types.IsEqual(result.DT, types.NewBasic(ctx.Builtins.Bool)) {
		t.Errorf("DT = %s, want bool (node.DT is the target's duplicate regardless of element mismatch)", result.DT)
	}
}

func TestScalarInitializerArityMismatch(t *testing.T) {
	ctx, buf := newTestContext()
	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))
	init.AddChild(intLit(2))

	AnalyzeInitOrCompoundLiteral(ctx, init, types.NewBasic(ctx.Builtins.Int))

	if ctx.Report.Errors != 1 {
		t.Fatalf("a scalar target needs exactly one initializer: %s", buf.String())
	}
}

func TestInvalidTargetStopsAllChecking(t *testing.T) {
	ctx, buf := newTestContext()
	// Even a malformed element (assignment to a non-lvalue) must not be
	// visited once the target itself is already Invalid.
	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(&ast.Node{Tag: ast.BOP, Op: "=", L: intLit(1), R: intLit(2)})

	result := AnalyzeInitOrCompoundLiteral(ctx, init, types.NewInvalid())

	if ctx.Report.Errors != 0 {
		t.Fatalf("an Invalid target must suppress all further checking: %s", buf.String())
	}
	if !types.IsInvalid(result.DT) {
		t.Errorf("DT = %s, want invalid", result.DT)
	}
}

func TestNestedStructInitializer(t *testing.T) {
	ctx, buf := newTestContext()
	inner := symbols.NewStruct("Point", []*symbols.Symbol{
		fieldOf(ctx.Builtins.Int, "x"),
		fieldOf(ctx.Builtins.Int, "y"),
	})
	innerField := symbols.New("origin", symbols.KindID)
	innerField.DT = types.NewBasic(inner)

	outer := symbols.NewStruct("Shape", []*symbols.Symbol{innerField})
	outerType := types.NewBasic(outer)

	innerInit := &ast.Node{Tag: ast.Literal, LitTag: ast.LitInit}
	innerInit.AddChild(intLit(0))
	innerInit.AddChild(intLit(0))

	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(innerInit)

	AnalyzeInitOrCompoundLiteral(ctx, init, outerType)

	if ctx.Report.Errors != 0 {
		t.Fatalf("unexpected errors: %s", buf.String())
	}
}

func TestStructInitializerFieldMismatch(t *testing.T) {
	ctx, buf := newTestContext()
	rec := symbols.NewStruct("Pair", []*symbols.Symbol{
		fieldOf(ctx.Builtins.Int, "a"),
		fieldOf(ctx.Builtins.Bool, "b"),
	})
	recType := types.NewBasic(rec)

	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))
	init.AddChild(intLit(2))

	AnalyzeInitOrCompoundLiteral(ctx, init, recType)

	if ctx.Report.Errors != 1 {
		t.Fatalf("Errors = %d, want 1 (int given where bool field expected): %s", ctx.Report.Errors, buf.String())
	}
}

func TestStructInitializerArityMismatchSkipsElementwiseCheck(t *testing.T) {
	ctx, buf := newTestContext()
	rec := symbols.NewStruct("Pair", []*symbols.Symbol{
		fieldOf(ctx.Builtins.Int, "a"),
		fieldOf(ctx.Builtins.Bool, "b"),
	})
	recType := types.NewBasic(rec)

	// Three elements for a two-field struct: only the arity error fires,
	// even though the second element (an int literal) would mismatch
	// field b (bool) if the elementwise check ran.
	init := &ast.Node{LitTag: ast.LitInit}
	init.AddChild(intLit(1))
	init.AddChild(intLit(2))
	init.AddChild(boolLit())

	AnalyzeInitOrCompoundLiteral(ctx, init, recType)

	if ctx.Report.Errors != 1 {
		t.Fatalf("Errors = %d, want 1 (arity only, no elementwise check on mismatch): %s", ctx.Report.Errors, buf.String())
	}
}

func fieldOf(sym *symbols.Symbol, name string) *symbols.Symbol {
	f := symbols.New(name, symbols.KindID)
	f.DT = types.NewBasic(sym)
	return f
}
