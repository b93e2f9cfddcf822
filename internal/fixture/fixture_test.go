package fixture_test

import (
	"testing"

	"github.com/nyxlang/nyx/internal/fixture"
	"github.com/nyxlang/nyx/internal/semantic"
)

func analyze(t *testing.T, text string) semantic.Result {
	t.Helper()
	prog, err := fixture.Load("fixture_test.nyx", text)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return semantic.Analyze(prog.Tree, prog.Builtins)
}

func TestCleanFunctionHasNoErrors(t *testing.T) {
	result := analyze(t, `
		(fn add ((int a) (int b)) int
		  (return (+ a b)))
	`)
	if result.Errors != 0 {
		t.Fatalf("Errors = %d, want 0", result.Errors)
	}
}

func TestComparisonMismatchReportsOneError(t *testing.T) {
	result := analyze(t, `
		(fn f () bool
		  (decl int a (init 1))
		  (decl bool b (init true))
		  (return (< a b)))
	`)
	if result.Errors != 1 {
		t.Fatalf("Errors = %d, want 1", result.Errors)
	}
}

func TestStructInitializerAndFieldAccess(t *testing.T) {
	result := analyze(t, `
		(struct Point (int x) (int y))

		(fn origin () int
		  (decl Point p (init 1 2))
		  (return (. p x)))
	`)
	if result.Errors != 0 {
		t.Fatalf("Errors = %d, want 0", result.Errors)
	}
}

func TestCallArityMismatch(t *testing.T) {
	result := analyze(t, `
		(fn add ((int a) (int b)) int
		  (return (+ a b)))

		(fn caller () int
		  (return (call add 1)))
	`)
	if result.Errors != 1 {
		t.Fatalf("Errors = %d, want 1", result.Errors)
	}
}

func TestWhileLoopAndPointerArithmetic(t *testing.T) {
	result := analyze(t, `
		(fn sum (((ptr int) p) (int n)) int
		  (decl int total (init 0))
		  (decl int i (init 0))
		  (while (< i n)
		    (block
		      (= total (+ total (idx p i)))
		      (= i (+ i 1))))
		  (return total))
	`)
	if result.Errors != 0 {
		t.Fatalf("Errors = %d, want 0", result.Errors)
	}
}

func TestForLoopDoWhileCastSizeofTernary(t *testing.T) {
	result := analyze(t, `
		(fn count () int
		  (decl int total (init 0))
		  (for (decl int i (init 0)) (< i 10) (u ++ i)
		    (= total (+ total i)))

		  (decl int j (init 0))
		  (do
		    (= j (+ j 1))
		    (< j 5))

		  (decl int s (init (sizeof-type int)))
		  (decl int c (init (cast int (? (< total 0) 1 2))))
		  (return total))
	`)
	if result.Errors != 0 {
		t.Fatalf("Errors = %d, want 0", result.Errors)
	}
}

func TestUndeclaredIdentifierFailsToLoad(t *testing.T) {
	_, err := fixture.Load("bad.nyx", `
		(fn f () int
		  (return y))
	`)
	if err == nil {
		t.Fatal("expected a load error for an undeclared identifier")
	}
}
