// Package hir implements the high-level intermediate representation: named,
// typed lambda-calculus terms produced by lowering the surface AST. Every
// term and every binding occurrence is tagged with an id from a
// types.Context, which is how the type-checker attaches inferred types
// without mutating the tree itself.
package hir

import (
	"fmt"

	"github.com/pijago/pijago/lang/token"
	"github.com/pijago/pijago/lang/types"
)

// BindKind distinguishes a plain `let` binding from a function definition
// that may refer to itself.
type BindKind uint8

const (
	NonRec BindKind = iota
	Rec
)

// LitKind is the kind of a Lit term.
type LitKind uint8

const (
	LitBool LitKind = iota
	LitInt
	LitUnit
)

// Term is a single node of the HIR: an id (for attaching a type) and a kind
// carrying its lambda-calculus shape.
type Term struct {
	ID   types.TermId
	Kind TermKind
}

// TermKind is the sum of every HIR term shape. It is implemented by
// *LitTerm, *PrimFnTerm, *VarTerm, *AbsTerm, *AppTerm, *UnaryOpTerm,
// *BinaryOpTerm, *CondTerm and *LetTerm.
type TermKind interface{ termKind() }

type LitTerm struct {
	Kind  LitKind
	Bool  bool
	Int   int64
}

type PrimFnTerm struct{} // the single `print` primitive

type VarTerm struct{ Local types.LocalId }

// AbsTerm is a single-argument lambda abstraction. A multi-parameter
// surface function lowers to nested AbsTerms, innermost parameter first.
type AbsTerm struct {
	Param types.LocalId
	Body  *Term
}

type AppTerm struct{ Fn, Arg *Term }

type UnaryOpTerm struct {
	Op token.Token
	X  *Term
}

type BinaryOpTerm struct {
	Op   token.Token
	L, R *Term
}

type CondTerm struct{ Cond, Then, Else *Term }

// LetTerm binds Local to Value within the scope of Tail. When Kind is Rec,
// Value (always an AbsTerm chain) may refer to Local itself.
type LetTerm struct {
	Kind  BindKind
	Local types.LocalId
	Value *Term
	Tail  *Term
}

func (*LitTerm) termKind()      {}
func (*PrimFnTerm) termKind()   {}
func (*VarTerm) termKind()      {}
func (*AbsTerm) termKind()      {}
func (*AppTerm) termKind()      {}
func (*UnaryOpTerm) termKind()  {}
func (*BinaryOpTerm) termKind() {}
func (*CondTerm) termKind()     {}
func (*LetTerm) termKind()      {}

// Error is a lowering failure: a missing required type annotation or an
// unbound identifier. (A return type annotation on an anonymous function
// never reaches lowering: the parser has no syntax for it.)
type Error struct {
	Loc token.Location
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }

func errf(loc token.Location, format string, args ...any) error {
	return &Error{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}
