package lir

import (
	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/types"
)

// Lower converts a HIR term into LIR, discharging every named binder into a
// de Bruijn index. It never fails: by the time a term reaches here it has
// already passed name resolution (in hir.Lower) and type checking, so every
// variable reference is known to resolve.
func Lower(term *hir.Term) *Term {
	var ctx context
	return ctx.removeNames(term)
}

// context tracks, innermost last, the LocalId bound by each Abs/Let
// currently enclosing the term being lowered. A Var's de Bruijn index is
// its position counted back from the end of this stack.
type context struct {
	inner []types.LocalId
}

func (c *context) push(id types.LocalId) { c.inner = append(c.inner, id) }

func (c *context) pop() { c.inner = c.inner[:len(c.inner)-1] }

func (c *context) indexOf(id types.LocalId) int {
	for i := len(c.inner) - 1; i >= 0; i-- {
		if c.inner[i] == id {
			return len(c.inner) - 1 - i
		}
	}
	panic("lir: unbound local reached lowering; hir.Lower should have rejected this program")
}

func (c *context) removeNames(term *hir.Term) *Term {
	switch k := term.Kind.(type) {
	case *hir.LitTerm:
		return c.removeLit(k)

	case *hir.VarTerm:
		return NewVar(c.indexOf(k.Local))

	case *hir.AbsTerm:
		c.push(k.Param)
		body := c.removeNames(k.Body)
		c.pop()
		return NewAbs(body)

	case *hir.UnaryOpTerm:
		return NewUnaryOp(k.Op, c.removeNames(k.X))

	case *hir.BinaryOpTerm:
		return NewBinaryOp(k.Op, c.removeNames(k.L), c.removeNames(k.R))

	case *hir.AppTerm:
		return NewApp(c.removeNames(k.Fn), c.removeNames(k.Arg))

	case *hir.LetTerm:
		return c.removeLet(k)

	case *hir.CondTerm:
		return NewCond(c.removeNames(k.Cond), c.removeNames(k.Then), c.removeNames(k.Else))

	case *hir.PrimFnTerm:
		return NewPrimFn()

	default:
		panic("lir: unknown hir.TermKind")
	}
}

func (c *context) removeLit(lit *hir.LitTerm) *Term {
	switch lit.Kind {
	case hir.LitBool:
		return NewLitBool(lit.Bool)
	case hir.LitUnit:
		return NewLitUnit()
	default:
		return NewLitInt(lit.Int)
	}
}

// removeLet desugars a let-binding into plain application. A non-recursive
// binding lowers to App(Abs(tail), value); a recursive one wraps value in
// Fix(Abs(value)) and pushes the bound name onto the context before
// lowering value, so self-references inside it resolve to index 0.
func (c *context) removeLet(let *hir.LetTerm) *Term {
	var value *Term
	if let.Kind == hir.Rec {
		c.push(let.Local)
		value = NewFix(NewAbs(c.removeNames(let.Value)))
	} else {
		value = c.removeNames(let.Value)
		c.push(let.Local)
	}

	tail := c.removeNames(let.Tail)
	c.pop()

	return NewApp(NewAbs(tail), value)
}
