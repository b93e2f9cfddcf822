// Package types implements the data-type algebra of the nyx semantic
// analyzer: construction, duplication, derivation, classification, and
// comparison of type values.
//
// A Type is a tagged variant with exactly one populated shape per Kind.
// Invalid is a poisoned sentinel: every predicate in this package accepts
// it and every derivation absorbs it, so one ill-typed subexpression
// produces exactly one diagnostic instead of one per ancestor.
package types

// Kind tags which shape a Type carries.
type Kind int

const (
	Invalid Kind = iota
	Basic
	Ptr
	Array
	Function
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Basic:
		return "basic"
	case Ptr:
		return "ptr"
	case Array:
		return "array"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Mask classifies a basic type symbol along the axes the analyzer's
// predicates dispatch on.
type Mask uint8

const (
	MaskNumeric Mask = 1 << iota
	MaskOrdinal
	MaskEquality
	MaskAssignment
	MaskCondition
)

// Has reports whether m carries every bit in want.
func (m Mask) Has(want Mask) bool {
	return m&want == want
}

// Symbol is the sliver of the symbol table the type algebra needs: a
// non-owning reference to whatever named the basic type. nyx's symbol
// table (package symbols) implements this; the type algebra never
// imports it back, which is what keeps Type and Symbol from forming an
// import cycle.
type Symbol interface {
	Name() string
	Size() int
	TypeMask() Mask
	IsStruct() bool
}

// Type is an algebraic data-type value. Exactly one group of fields is
// meaningful, selected by Kind:
//
//	Basic:    Sym
//	Ptr:      Base
//	Array:    Base, Length (-1 = unknown/incomplete)
//	Function: Return, Params, Variadic
//	Invalid:  (none)
//
// Types are values, not interned: callers must Duplicate before storing
// one in a second owning location (an AST node's DT, a symbol's DT, or a
// second field of another Type).
type Type struct {
	Sym      Symbol
	Base     *Type
	Return   *Type
	Params   []*Type
	Length   int
	Variadic bool
	Kind     Kind
}

// NewBasic constructs a named basic type referencing sym.
func NewBasic(sym Symbol) *Type {
	return &Type{Kind: Basic, Sym: sym}
}

// NewPtr constructs a pointer to base. base is taken by reference, not
// duplicated; callers passing a type they still hold elsewhere must
// duplicate it first.
func NewPtr(base *Type) *Type {
	return &Type{Kind: Ptr, Base: base}
}

// NewArray constructs an array of base with the given length, or -1 for
// an incomplete (unknown-length) array.
func NewArray(base *Type, length int) *Type {
	return &Type{Kind: Array, Base: base, Length: length}
}

// NewFunction constructs a function type. params is taken by reference.
func NewFunction(ret *Type, params []*Type, variadic bool) *Type {
	return &Type{Kind: Function, Return: ret, Params: params, Variadic: variadic}
}

// NewInvalid constructs the poisoned sentinel.
func NewInvalid() *Type {
	return &Type{Kind: Invalid}
}

// Duplicate deep-copies t. It is the only way a Type should move from one
// owning slot to another.
func Duplicate(t *Type) *Type {
	switch t.Kind {
	case Invalid:
		return NewInvalid()
	case Basic:
		return NewBasic(t.Sym)
	case Ptr:
		return NewPtr(Duplicate(t.Base))
	case Array:
		return NewArray(Duplicate(t.Base), t.Length)
	case Function:
		params := make([]*Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Duplicate(p)
		}
		return NewFunction(Duplicate(t.Return), params, t.Variadic)
	default:
		return NewInvalid()
	}
}
