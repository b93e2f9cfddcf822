package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/symbols"
	"github.com/nyxlang/nyx/internal/types"
)

// binOps and unaryOps list the operator spellings the builder accepts in
// (OP a b) and (u OP a) forms, matching exactly the strings internal/ast
// classifies in operators.go.
var binOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
	">": true, "<": true, ">=": true, "<=": true,
	"==": true, "!=": true, "&&": true, "||": true,
	".": true, "->": true, "=": true, ",": true,
}

var unaryOps = map[string]bool{
	"+": true, "-": true, "++": true, "--": true, "~": true,
	"!": true, "*": true, "&": true,
}

// builder walks a parsed s-expression tree into an ast.Node forest,
// resolving identifiers against a scope stack of symbol tables. It is
// the fixture package's only stateful type; a Program holds just its
// output.
type builder struct {
	builtins *symbols.Builtins
	globals  map[string]*symbols.Symbol
	fnTypes  map[string]*types.Type
	scopes   []map[string]*symbols.Symbol
	err      error
}

func newBuilder() *builder {
	return &builder{
		builtins: symbols.NewBuiltins(),
		globals:  make(map[string]*symbols.Symbol),
		fnTypes:  make(map[string]*types.Type),
	}
}

func (b *builder) fail(s *sx, format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%s: %s", s.span.Start, fmt.Sprintf(format, args...))
	}
}

func (b *builder) pushScope() { b.scopes = append(b.scopes, make(map[string]*symbols.Symbol)) }
func (b *builder) popScope()  { b.scopes = b.scopes[:len(b.scopes)-1] }

func (b *builder) declare(name string, sym *symbols.Symbol) {
	if len(b.scopes) > 0 {
		b.scopes[len(b.scopes)-1][name] = sym
		return
	}
	b.globals[name] = sym
}

func (b *builder) lookup(name string) *symbols.Symbol {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if sym, ok := b.scopes[i][name]; ok {
			return sym
		}
	}
	return b.globals[name]
}

// buildModule turns the root form list into a single Module ast.Node.
// Two passes: structs and function prototypes are declared first, in
// source order, so a struct must come before any signature or field that
// names it; then bodies are built, so a body may name any function.
func (b *builder) buildModule(root *sx) *ast.Node {
	module := &ast.Node{Tag: ast.Module}

	var fnForms []*sx
	for _, form := range root.items {
		if len(form.items) == 0 {
			b.fail(form, "expected a top-level form")
			continue
		}
		head := form.at(0)
		switch head.atom {
		case "struct":
			b.declareStruct(form)
		case "fn":
			b.declareFnProto(form)
			fnForms = append(fnForms, form)
		default:
			b.fail(form, "unknown top-level form %q", head.atom)
		}
	}

	for _, form := range fnForms {
		module.AddChild(b.buildFn(form))
	}

	return module
}

// declareStruct handles "(struct NAME (TYPE FIELDNAME)...)": the field
// list is the form's remaining elements directly, not wrapped in an
// extra list (unlike fn's parameter list, which needs the wrapping to
// stay unambiguous against its trailing return type).
func (b *builder) declareStruct(form *sx) {
	name := form.at(1)
	if name == nil || len(form.items) < 3 {
		b.fail(form, "struct needs a name and at least one field")
		return
	}

	var fields []*symbols.Symbol
	for _, f := range form.items[2:] {
		ft, fname := f.at(0), f.at(1)
		if ft == nil || fname == nil {
			b.fail(f, "struct field needs a type and a name")
			continue
		}
		field := symbols.New(fname.atom, symbols.KindID)
		field.DT = b.buildType(ft)
		fields = append(fields, field)
	}

	b.globals[name.atom] = symbols.NewStruct(name.atom, fields)
}

// declareFnProto registers the function's symbol (so calls and type
// references resolve regardless of source order) and precomputes its
// signature into fnTypes, without yet assigning it to the symbol's DT.
// The symbol's DT is populated by AnalyzeDecl when its FnImpl node is
// visited during analysis, the same "first sighting" path any other
// declaration takes; setting it here would make every function read as
// a redeclaration the moment its body is analyzed.
func (b *builder) declareFnProto(form *sx) {
	name := form.at(1)
	params := form.at(2)
	retForm := form.at(3)
	if name == nil || params == nil || retForm == nil {
		b.fail(form, "fn needs a name, parameter list, and return type")
		return
	}

	var paramTypes []*types.Type
	for _, p := range params.items {
		pt := p.at(0)
		if pt == nil {
			b.fail(p, "parameter needs a type and a name")
			continue
		}
		paramTypes = append(paramTypes, b.buildType(pt))
	}

	b.globals[name.atom] = symbols.New(name.atom, symbols.KindFunction)
	b.fnTypes[name.atom] = types.NewFunction(b.buildType(retForm), paramTypes, false)
}

func (b *builder) buildFn(form *sx) *ast.Node {
	name := form.at(1)
	paramsForm := form.at(2)
	fnSym := b.globals[name.atom]
	fnType := b.fnTypes[name.atom]

	b.pushScope()
	defer b.popScope()

	// proto is the Decl-shaped node analyzeFnImpl hands to AnalyzeDecl: a
	// type expression (the function's own type) plus the symbol it names.
	proto := &ast.Node{
		Tag:    ast.Decl,
		Symbol: fnSym,
		L:      &ast.Node{Tag: ast.TypeNode, DT: fnType, Span: form.span},
		Span:   form.span,
	}

	var paramNames []*ast.Node
	for i, p := range paramsForm.items {
		pname := p.at(1)
		param := symbols.New(pname.atom, symbols.KindParam)
		param.DT = fnType.Params[i]
		b.declare(pname.atom, param)
		paramNames = append(paramNames, &ast.Node{Tag: ast.Literal, LitTag: ast.LitIdent, Symbol: param, Span: p.span})
	}

	body := &ast.Node{Tag: ast.Code, Span: form.span}
	for _, stmt := range form.items[4:] {
		body.AddChild(b.buildStmt(stmt))
	}

	impl := &ast.Node{Tag: ast.FnImpl, Symbol: fnSym, L: proto, R: body, Span: form.span}
	for _, pn := range paramNames {
		impl.AddChild(pn)
	}
	return impl
}

// buildType resolves a type form: a builtin name, a declared struct
// name, (ptr T), or (array T n).
func (b *builder) buildType(form *sx) *types.Type {
	if !form.list {
		switch form.atom {
		case "int":
			return types.NewBasic(b.builtins.Int)
		case "bool":
			return types.NewBasic(b.builtins.Bool)
		case "char":
			return types.NewBasic(b.builtins.Char)
		case "void":
			return types.NewBasic(b.builtins.Void)
		default:
			sym, ok := b.globals[form.atom]
			if !ok {
				b.fail(form, "unknown type %q", form.atom)
				return types.NewInvalid()
			}
			return types.NewBasic(sym)
		}
	}

	head := form.at(0)
	switch head.atom {
	case "ptr":
		return types.NewPtr(b.buildType(form.at(1)))
	case "array":
		lenForm := form.at(2)
		n := -1
		if lenForm.atom != "-" {
			v, err := strconv.Atoi(lenForm.atom)
			if err != nil {
				b.fail(lenForm, "bad array length %q", lenForm.atom)
			}
			n = v
		}
		return types.NewArray(b.buildType(form.at(1)), n)
	default:
		b.fail(form, "unknown type form %q", head.atom)
		return types.NewInvalid()
	}
}

// buildStmt builds a single statement-level node. "_" stands for an
// empty slot in for-loop headers.
func (b *builder) buildStmt(form *sx) *ast.Node {
	if !form.list {
		if form.atom == "_" {
			return &ast.Node{Tag: ast.Empty, Span: form.span}
		}
		return b.buildExpr(form)
	}

	head := form.at(0)
	switch head.atom {
	case "decl":
		return b.buildDecl(form)

	case "block":
		node := &ast.Node{Tag: ast.Code, Span: form.span}
		for _, s := range form.items[1:] {
			node.AddChild(b.buildStmt(s))
		}
		return node

	case "if":
		node := &ast.Node{Tag: ast.Branch, Span: form.span}
		node.FirstChild = b.buildExpr(form.at(1))
		node.L = b.buildStmt(form.at(2))
		if e := form.at(3); e != nil {
			node.R = b.buildStmt(e)
		}
		return node

	case "while":
		node := &ast.Node{Tag: ast.Loop, Span: form.span}
		node.L = b.buildExpr(form.at(1))
		node.R = b.buildStmt(form.at(2))
		return node

	case "do":
		node := &ast.Node{Tag: ast.Loop, Span: form.span}
		body := b.buildStmt(form.at(1))
		if body.Tag != ast.Code {
			// analyzeLoop tells while from do-while by checking whether L
			// is a Code node; a bare (non-block) do-body must still be
			// wrapped so that disambiguation holds.
			wrapped := &ast.Node{Tag: ast.Code, Span: body.Span}
			wrapped.AddChild(body)
			body = wrapped
		}
		node.L = body
		node.R = b.buildExpr(form.at(2))
		return node

	case "for":
		node := &ast.Node{Tag: ast.Iter, Span: form.span}
		init := b.buildStmt(form.at(1))
		cond := b.buildStmt(form.at(2))
		iter := b.buildStmt(form.at(3))
		init.NextSibling = cond
		cond.NextSibling = iter
		node.FirstChild = init
		node.L = b.buildStmt(form.at(4))
		return node

	case "return":
		node := &ast.Node{Tag: ast.Return, Span: form.span}
		if v := form.at(1); v != nil {
			node.R = b.buildExpr(v)
		}
		return node

	case "break":
		return &ast.Node{Tag: ast.Break, Span: form.span}

	default:
		return b.buildExpr(form)
	}
}

func (b *builder) buildDecl(form *sx) *ast.Node {
	typeForm := form.at(1)
	name := form.at(2)
	initForm := form.at(3)

	sym := symbols.New(name.atom, symbols.KindID)
	b.declare(name.atom, sym)

	node := &ast.Node{
		Tag:    ast.Decl,
		Symbol: sym,
		L:      &ast.Node{Tag: ast.TypeNode, DT: b.buildType(typeForm), Span: typeForm.span},
		Span:   form.span,
	}
	if initForm != nil {
		node.R = b.buildInit(initForm)
	}
	return node
}

// buildInit builds a brace-list initializer node: (init EXPR*). Every
// declaration initializer arrives this way, even a single scalar value,
// matching the front end's assumed desugaring.
func (b *builder) buildInit(form *sx) *ast.Node {
	node := &ast.Node{Tag: ast.Literal, LitTag: ast.LitInit, Span: form.span}
	items := form.items
	if len(items) > 0 && items[0].atom == "init" {
		items = items[1:]
	}
	for _, elem := range items {
		if elem.list && len(elem.items) > 0 && elem.items[0].atom == "init" {
			node.AddChild(b.buildInit(elem))
		} else {
			node.AddChild(b.buildExpr(elem))
		}
	}
	return node
}

func (b *builder) buildExpr(form *sx) *ast.Node {
	if !form.list {
		return b.buildAtomExpr(form)
	}

	head := form.at(0)
	switch {
	case head.atom == "u":
		op := form.at(1).atom
		if !unaryOps[op] {
			b.fail(form, "unknown unary operator %q", op)
		}
		return &ast.Node{Tag: ast.UOP, Op: op, R: b.buildExpr(form.at(2)), Span: form.span}

	case head.atom == "idx":
		return &ast.Node{Tag: ast.Index, L: b.buildExpr(form.at(1)), R: b.buildExpr(form.at(2)), Span: form.span}

	case head.atom == "call":
		node := &ast.Node{Tag: ast.Call, L: b.buildExpr(form.at(1)), Span: form.span}
		for _, arg := range form.items[2:] {
			node.AddChild(b.buildExpr(arg))
		}
		return node

	case head.atom == "cast":
		typeForm, valForm := form.at(1), form.at(2)
		return &ast.Node{
			Tag:  ast.Cast,
			L:    &ast.Node{Tag: ast.TypeNode, DT: b.buildType(typeForm), Span: typeForm.span},
			R:    b.buildExpr(valForm),
			Span: form.span,
		}

	case head.atom == "sizeof":
		return &ast.Node{Tag: ast.Sizeof, R: b.buildExpr(form.at(1)), Span: form.span}

	case head.atom == "sizeof-type":
		return &ast.Node{
			Tag: ast.Sizeof,
			R:   &ast.Node{Tag: ast.TypeNode, DT: b.buildType(form.at(1)), Span: form.at(1).span},
			Span: form.span,
		}

	case head.atom == "compound":
		typeForm := form.at(1)
		node := &ast.Node{
			Tag:    ast.Literal,
			LitTag: ast.LitCompound,
			L:      &ast.Node{Tag: ast.TypeNode, DT: b.buildType(typeForm), Span: typeForm.span},
			Span:   form.span,
		}
		for _, elem := range form.items[2:] {
			node.AddChild(b.buildExpr(elem))
		}
		return node

	case head.atom == "ternary" || head.atom == "?":
		return &ast.Node{
			Tag:        ast.TOP,
			FirstChild: b.buildExpr(form.at(1)),
			L:          b.buildExpr(form.at(2)),
			R:          b.buildExpr(form.at(3)),
			Span:       form.span,
		}

	case head.atom == "." || head.atom == "->":
		// The right operand names a field, not an expression: it carries
		// no symbol of its own, only the literal name analyzeMemberBOP
		// looks up on the left operand's record type.
		fieldForm := form.at(2)
		return &ast.Node{
			Tag:  ast.BOP,
			Op:   head.atom,
			L:    b.buildExpr(form.at(1)),
			R:    &ast.Node{Literal: fieldForm.atom, Span: fieldForm.span},
			Span: form.span,
		}

	case binOps[head.atom]:
		return &ast.Node{Tag: ast.BOP, Op: head.atom, L: b.buildExpr(form.at(1)), R: b.buildExpr(form.at(2)), Span: form.span}

	default:
		b.fail(form, "unknown expression form %q", head.atom)
		return &ast.Node{Tag: ast.InvalidTag, Span: form.span}
	}
}

func (b *builder) buildAtomExpr(form *sx) *ast.Node {
	switch {
	case form.atom == "true" || form.atom == "false":
		return &ast.Node{Tag: ast.Literal, LitTag: ast.LitBool, Span: form.span}

	case strings.HasPrefix(form.atom, `"`):
		return &ast.Node{Tag: ast.Literal, LitTag: ast.LitStr, Literal: strings.Trim(form.atom, `"`), Span: form.span}

	case isNumber(form.atom):
		v, _ := strconv.ParseInt(form.atom, 10, 64)
		return &ast.Node{Tag: ast.Literal, LitTag: ast.LitInt, IntValue: v, Span: form.span}

	default:
		sym := b.lookup(form.atom)
		if sym == nil {
			b.fail(form, "undeclared identifier %q", form.atom)
		}
		return &ast.Node{Tag: ast.Literal, LitTag: ast.LitIdent, Symbol: sym, Literal: form.atom, Span: form.span}
	}
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' {
		start = 1
	}
	if start == len(s) {
		return false
	}
	for _, c := range s[start:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
