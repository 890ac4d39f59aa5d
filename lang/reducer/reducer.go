// Package reducer implements the small-step tree-walking evaluator over
// LIR: repeatedly apply one reduction to the term in place until no rule
// matches, which is how Evaluate drives a term to its final value.
package reducer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pijago/pijago/lang/lir"
	"github.com/pijago/pijago/lang/token"
)

// Strategy selects how arithmetic handles overflow, division by zero and
// out-of-range shift amounts. It is a plain tag threaded through every
// reduction step, not an interface: there is no dynamic dispatch here, just
// a branch on a two-valued enum.
type Strategy uint8

const (
	// Wrap lets integer operations overflow silently, the default.
	Wrap Strategy = iota
	// Checked panics on signed overflow, division by zero, and shift
	// amounts outside [0, 63].
	Checked
)

func (s Strategy) String() string {
	if s == Checked {
		return "checked"
	}
	return "wrap"
}

// Panic is the payload of a Go panic raised by checked-arithmetic overflow,
// division by zero, or an out-of-range shift amount. Callers that want to
// report these like an ordinary error should recover and type-assert.
type Panic struct{ Msg string }

func (p *Panic) Error() string { return p.Msg }

func panicf(format string, args ...any) {
	panic(&Panic{Msg: fmt.Sprintf(format, args...)})
}

// Reducer evaluates LIR terms against a fixed arithmetic Strategy, writing
// anything printed by the program's `print` calls to Out.
type Reducer struct {
	Strategy Strategy
	Out      io.Writer
}

// New returns a Reducer with the given strategy, printing to out.
func New(strategy Strategy, out io.Writer) *Reducer {
	return &Reducer{Strategy: strategy, Out: out}
}

// Evaluate drives term to a normal form by repeated small steps, mutating
// it in place, and returns it.
func (r *Reducer) Evaluate(term *lir.Term) *lir.Term {
	for r.step(term) {
	}
	return term
}

// step applies a single reduction to term, mutating it in place (by
// overwriting term.Kind with the result's Kind) and reports whether any
// progress was made. A false result means term is already a value.
func (r *Reducer) step(term *lir.Term) bool {
	switch k := term.Kind.(type) {
	case *lir.Var, *lir.Lit, *lir.Abs, *lir.PrimFn:
		return false

	case *lir.UnaryOp:
		return r.stepUnaryOp(term, k)

	case *lir.BinaryOp:
		return r.stepBinaryOp(term, k)

	case *lir.App:
		return r.stepApp(term, k)

	case *lir.Cond:
		return r.stepCond(term, k)

	case *lir.Fix:
		return r.stepFix(term, k)

	default:
		panic("reducer: unknown lir.TermKind")
	}
}

func (r *Reducer) stepUnaryOp(term *lir.Term, k *lir.UnaryOp) bool {
	if lit, ok := lir.IsLit(k.X); ok {
		term.Kind = r.unaryNative(k.Op, lit).Kind
		return true
	}
	return r.step(k.X)
}

func (r *Reducer) stepBinaryOp(term *lir.Term, k *lir.BinaryOp) bool {
	lLit, lok := lir.IsLit(k.L)

	if lok && k.Op == token.ANDAND && lLit.Kind == lir.LitBool && lLit.Val == 0 {
		term.Kind = lir.NewLitBool(false).Kind
		return true
	}
	if lok && k.Op == token.OROR && lLit.Kind == lir.LitBool && lLit.Val == 1 {
		term.Kind = lir.NewLitBool(true).Kind
		return true
	}

	rLit, rok := lir.IsLit(k.R)
	switch {
	case lok && rok:
		term.Kind = r.binaryNative(k.Op, lLit, rLit).Kind
		return true
	case lok:
		return r.step(k.R)
	default:
		return r.step(k.L)
	}
}

func (r *Reducer) stepApp(term *lir.Term, k *lir.App) bool {
	switch fn := k.Fn.Kind.(type) {
	case *lir.Abs:
		if r.step(k.Arg) {
			return true
		}
		return r.stepBeta(term, fn.Body, k.Arg)
	case *lir.PrimFn:
		if r.step(k.Arg) {
			return true
		}
		return r.stepPrimApp(term, k.Arg)
	default:
		return r.step(k.Fn)
	}
}

// stepBeta performs ((λ. body) arg) -> body[0 := arg], the classic
// shift-up/replace/shift-down dance that keeps every other free variable's
// index correct across the removed binder.
func (r *Reducer) stepBeta(term *lir.Term, body, arg *lir.Term) bool {
	arg.Shift(true, 0)
	body.Replace(0, arg)
	body.Shift(false, 0)
	term.Kind = body.Kind
	return true
}

func (r *Reducer) stepPrimApp(term *lir.Term, arg *lir.Term) bool {
	fmt.Fprintln(r.Out, formatPrintValue(arg))
	term.Kind = lir.NewLitUnit().Kind
	return true
}

func (r *Reducer) stepCond(term *lir.Term, k *lir.Cond) bool {
	lit, ok := lir.IsLit(k.Cond)
	if !ok {
		return r.step(k.Cond)
	}
	if lit.Val != 0 {
		term.Kind = k.Then.Kind
	} else {
		term.Kind = k.Else.Kind
	}
	return true
}

// stepFix unrolls Fix(Abs(body)) by substituting the fixpoint itself for
// the Abs's own parameter (index 0), tying the recursive knot one call at a
// time rather than building an infinite term up front.
func (r *Reducer) stepFix(term *lir.Term, k *lir.Fix) bool {
	abs, ok := k.Body.Kind.(*lir.Abs)
	if !ok {
		return r.step(k.Body)
	}

	body := lir.Clone(abs.Body)
	body.Replace(0, lir.NewFix(k.Body))
	term.Kind = body.Kind
	return true
}

// formatPrintValue renders a term the way the `print` primitive should:
// literals use the language's own Bool/Int/Unit notation, a function value
// prints as a recognizable tag, and any other term falls back to its String
// form.
func formatPrintValue(t *lir.Term) string {
	switch k := t.Kind.(type) {
	case *lir.Lit:
		switch k.Kind {
		case lir.LitBool:
			return strconv.FormatBool(k.Val != 0)
		case lir.LitUnit:
			return "unit"
		default:
			return strconv.FormatInt(k.Val, 10)
		}
	case *lir.Abs, *lir.Fix, *lir.PrimFn:
		return "<function>"
	default:
		return t.String()
	}
}
