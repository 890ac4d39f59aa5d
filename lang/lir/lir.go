// Package lir implements the low-level intermediate representation: a
// nameless lambda calculus using de Bruijn indices instead of the HIR's
// named locals. Lowering from HIR discharges every binder name; what is
// left is shaped entirely by position, which is what the tree reducer walks.
// The bytecode compiler does not use LIR; it compiles from the HIR.
package lir

import (
	"strconv"

	"github.com/pijago/pijago/lang/token"
)

// LitKind is the kind of a Lit term.
type LitKind uint8

const (
	LitBool LitKind = iota
	LitInt
	LitUnit
)

// Term is a single node of the LIR. Kind carries the term's shape; the
// concrete kinds are held by pointer and Shift and Replace mutate them in
// place by structural recursion, without an arena or id indirection, unlike
// HIR.
type Term struct {
	Kind TermKind
}

// TermKind is the sum of every LIR term shape. It is implemented by *Var,
// *Lit, *Abs, *UnaryOp, *BinaryOp, *App, *Cond, *Fix and *PrimFn.
type TermKind interface{ termKind() }

// Var is a de Bruijn index: the number of enclosing Abs binders to cross,
// counting outward, to reach the binder this variable refers to.
type Var struct{ Index int }

// Lit is a native-encoded literal. Bool is stored as 0/1 and Unit as 0, so
// that the reducer and the VM can treat every literal as a single i64 word.
type Lit struct {
	Kind LitKind
	Val  int64
}

type Abs struct{ Body *Term }

type UnaryOp struct {
	Op token.Token
	X  *Term
}

type BinaryOp struct {
	Op   token.Token
	L, R *Term
}

type App struct{ Fn, Arg *Term }

type Cond struct{ Cond, Then, Else *Term }

// Fix is the fixpoint combinator used to desugar recursive let-bindings:
// Fix(Abs(body)) unrolls to body with index 0 replaced by the Fix term
// itself, the standard tying-the-knot step for recursion without named
// self-reference.
type Fix struct{ Body *Term }

// PrimFn is the single `print` primitive.
type PrimFn struct{}

func (*Var) termKind()      {}
func (*Lit) termKind()      {}
func (*Abs) termKind()      {}
func (*UnaryOp) termKind()  {}
func (*BinaryOp) termKind() {}
func (*App) termKind()      {}
func (*Cond) termKind()     {}
func (*Fix) termKind()      {}
func (*PrimFn) termKind()   {}

func term(k TermKind) *Term { return &Term{Kind: k} }

// NewVar, NewLit, NewAbs, ... build LIR terms.
func NewVar(index int) *Term              { return term(&Var{Index: index}) }
func NewLitBool(v bool) *Term             { return term(&Lit{Kind: LitBool, Val: boolWord(v)}) }
func NewLitInt(v int64) *Term             { return term(&Lit{Kind: LitInt, Val: v}) }
func NewLitUnit() *Term                   { return term(&Lit{Kind: LitUnit, Val: 0}) }
func NewAbs(body *Term) *Term             { return term(&Abs{Body: body}) }
func NewUnaryOp(op token.Token, x *Term) *Term { return term(&UnaryOp{Op: op, X: x}) }
func NewBinaryOp(op token.Token, l, r *Term) *Term {
	return term(&BinaryOp{Op: op, L: l, R: r})
}
func NewApp(fn, arg *Term) *Term                 { return term(&App{Fn: fn, Arg: arg}) }
func NewCond(cond, then, els *Term) *Term        { return term(&Cond{Cond: cond, Then: then, Else: els}) }
func NewFix(body *Term) *Term                    { return term(&Fix{Body: body}) }
func NewPrimFn() *Term                           { return term(&PrimFn{}) }

func boolWord(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// IsLit reports whether t is already a literal value, i.e. cannot be
// stepped further by the reducer.
func IsLit(t *Term) (*Lit, bool) {
	lit, ok := t.Kind.(*Lit)
	return lit, ok
}

func (t *Term) String() string {
	switch k := t.Kind.(type) {
	case *Var:
		return "_" + strconv.Itoa(k.Index)
	case *Lit:
		return strconv.FormatInt(k.Val, 10)
	case *Abs:
		return "(λ. " + k.Body.String() + ")"
	case *UnaryOp:
		return "(" + k.Op.String() + k.X.String() + ")"
	case *BinaryOp:
		return "(" + k.L.String() + " " + k.Op.String() + " " + k.R.String() + ")"
	case *App:
		return "(" + k.Fn.String() + " " + k.Arg.String() + ")"
	case *Cond:
		return "(if " + k.Cond.String() + " then " + k.Then.String() + " else " + k.Else.String() + ")"
	case *Fix:
		return "(fix " + k.Body.String() + ")"
	case *PrimFn:
		return "print"
	default:
		return "?"
	}
}
