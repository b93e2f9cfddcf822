package position

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"with filename", Position{Filename: "a.nyx", Line: 3, Column: 5}, "a.nyx:3:5"},
		{"without filename", Position{Line: 1, Column: 1}, "1:1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.pos.String(); got != test.want {
				t.Errorf("String() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestPositionIsValid(t *testing.T) {
	if !(Position{Line: 1, Column: 1}).IsValid() {
		t.Error("expected Line:1 Column:1 to be valid")
	}
	if (Position{Line: 0, Column: 1}).IsValid() {
		t.Error("expected Line:0 to be invalid")
	}
	if (Position{Line: 1, Column: 0}).IsValid() {
		t.Error("expected Column:0 to be invalid")
	}
}

func TestPositionBefore(t *testing.T) {
	a := Position{Line: 1, Column: 5}
	b := Position{Line: 1, Column: 10}
	c := Position{Line: 2, Column: 1}

	if !a.Before(b) {
		t.Error("expected a before b")
	}
	if !b.Before(c) {
		t.Error("expected b before c")
	}
	if c.Before(a) {
		t.Error("expected c not before a")
	}
}

func TestPositionAfter(t *testing.T) {
	a := Position{Line: 1, Column: 5}
	b := Position{Line: 1, Column: 10}
	c := Position{Line: 2, Column: 1}

	if !b.After(a) {
		t.Error("expected b after a")
	}
	if !c.After(b) {
		t.Error("expected c after b")
	}
	if a.After(c) {
		t.Error("expected a not after c")
	}
}

func TestSpanString(t *testing.T) {
	s := Span{
		Start: Position{Filename: "a.nyx", Line: 4, Column: 2},
		End:   Position{Filename: "a.nyx", Line: 4, Column: 8},
	}
	if got, want := s.String(), "a.nyx:4:2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
