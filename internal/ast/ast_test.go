package ast

import "testing"

func TestAddChildAndChildren(t *testing.T) {
	parent := &Node{Tag: Code}
	a := &Node{Tag: Literal, LitTag: LitInt}
	b := &Node{Tag: Literal, LitTag: LitInt}

	parent.AddChild(a)
	parent.AddChild(b)

	kids := parent.Children()
	if len(kids) != 2 {
		t.Fatalf("Children() len = %d, want 2", len(kids))
	}
	if kids[0] != a || kids[1] != b {
		t.Error("Children() did not preserve insertion order")
	}
	if parent.ChildCount != 2 {
		t.Errorf("ChildCount = %d, want 2", parent.ChildCount)
	}
}

func TestOperatorCategory(t *testing.T) {
	tests := []struct {
		op   string
		want OpCategory
	}{
		{"+", OpNumericBOP},
		{"*=", OpNumericBOP},
		{">", OpOrdinalBOP},
		{"==", OpEqualityBOP},
		{"=", OpAssignmentBOP},
		{"&&", OpLogicalBOP},
		{".", OpMemberBOP},
		{"->", OpMemberBOP},
		{",", OpCommaBOP},
	}
	for _, tt := range tests {
		if got := Category(tt.op); got != tt.want {
			t.Errorf("Category(%q) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestIncDecIsNumericAndAssignment(t *testing.T) {
	if !IsNumericUOP("++") || !IsNumericUOP("--") {
		t.Error("++ and -- should be numeric unary operators")
	}
	if !IsIncDecUOP("++") || !IsIncDecUOP("--") {
		t.Error("++ and -- should report as inc/dec")
	}
	if IsIncDecUOP("-") {
		t.Error("unary - should not report as inc/dec")
	}
}

func TestDerefBOPOnlyArrow(t *testing.T) {
	if !IsDerefBOP("->") {
		t.Error("-> should be the deref member operator")
	}
	if IsDerefBOP(".") {
		t.Error(". should not be the deref member operator")
	}
}
