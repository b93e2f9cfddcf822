// Package symbols provides the analyzer's read-only view of the symbol
// table: lookup of a record's children by name, and the per-symbol data
// needed by the type algebra's classification predicates.
//
// Symbol insertion and scope management belong to the parser/declaration
// pipeline (external collaborators per the analyzer's design); this
// package only exposes what analysis reads.
package symbols

import (
	"github.com/nyxlang/nyx/internal/position"
	"github.com/nyxlang/nyx/internal/types"
)

// Kind discriminates what a Symbol names.
type Kind int

const (
	KindType Kind = iota
	KindStruct
	KindID
	KindParam
	KindEnumConstant
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindStruct:
		return "struct"
	case KindID:
		return "id"
	case KindParam:
		return "param"
	case KindEnumConstant:
		return "enum constant"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Symbol is a named entity: a variable, parameter, struct, built-in
// type, enum constant, or function. Its DT is nil until the declaration
// pipeline (or, for identifiers, a prior pass) has populated it.
type Symbol struct {
	DT        *types.Type
	Ident     string
	Children  []*Symbol // ordered; struct fields, in declaration order
	DeclSites []position.Span
	ByteSize  int
	Mask      types.Mask
	SymKind   Kind
}

// New constructs a symbol. Most callers should prefer one of the typed
// constructors below, which set SymKind and the classification fields
// consistently.
func New(ident string, kind Kind) *Symbol {
	return &Symbol{Ident: ident, SymKind: kind}
}

// NewBasicType constructs a built-in or named scalar type symbol, sized
// and classified up front (int, bool, char, void, ...).
func NewBasicType(ident string, size int, mask types.Mask) *Symbol {
	return &Symbol{Ident: ident, SymKind: KindType, ByteSize: size, Mask: mask}
}

// NewStruct constructs a record symbol with its fields as children.
func NewStruct(ident string, fields []*Symbol) *Symbol {
	size := 0
	for _, f := range fields {
		size += types.Size(f.DT)
	}
	return &Symbol{Ident: ident, SymKind: KindStruct, Children: fields, ByteSize: size}
}

// Name implements types.Symbol.
func (s *Symbol) Name() string { return s.Ident }

// Size implements types.Symbol.
func (s *Symbol) Size() int { return s.ByteSize }

// TypeMask implements types.Symbol.
func (s *Symbol) TypeMask() types.Mask { return s.Mask }

// IsStruct implements types.Symbol.
func (s *Symbol) IsStruct() bool { return s.SymKind == KindStruct }

// Child looks up an immediate child of a record symbol by name. Returns
// nil if record has no such field; the analyzer turns that into a
// missing-member diagnostic.
func Child(record *Symbol, name string) *Symbol {
	for _, c := range record.Children {
		if c.Ident == name {
			return c
		}
	}
	return nil
}

// AddDeclSite records another declaration location for this symbol, used
// to render "also declared at ..." on conflicting/simple redeclaration.
func (s *Symbol) AddDeclSite(span position.Span) {
	s.DeclSites = append(s.DeclSites, span)
}

// IsValue reports whether this symbol's kind may be referenced as an
// expression value: ordinary identifiers, parameters, enum constants,
// and functions (callable by name, or address-taken). Types and structs
// themselves are not values.
func (s *Symbol) IsValue() bool {
	switch s.SymKind {
	case KindID, KindParam, KindEnumConstant, KindFunction:
		return true
	default:
		return false
	}
}

// Builtins is the table of built-in type symbols the analyzer context
// needs indexable access to (spec's "builtinBool/Int/Char/Void").
type Builtins struct {
	Bool *Symbol
	Int  *Symbol
	Char *Symbol
	Void *Symbol
}

// NewBuiltins constructs the standard four built-in scalar type symbols
// with their classification masks, matching the original analyzer's
// typeMask assignments: int, char and bool are assignable and usable as
// a condition; int and char additionally order and arithmetic; bool is
// equality-only (no ordering, no arithmetic); void carries no bits.
func NewBuiltins() *Builtins {
	full := types.MaskNumeric | types.MaskOrdinal | types.MaskEquality | types.MaskAssignment | types.MaskCondition
	boolMask := types.MaskEquality | types.MaskAssignment | types.MaskCondition

	return &Builtins{
		Bool: NewBasicType("bool", 1, boolMask),
		Int:  NewBasicType("int", 4, full),
		Char: NewBasicType("char", 1, full),
		Void: NewBasicType("void", 0, 0),
	}
}
