package tycheck

import (
	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/token"
	"github.com/pijago/pijago/lang/types"
)

// locatedConstraint pairs a Constraint with the source span whose type
// error (if any) should be blamed on it.
type locatedConstraint struct {
	constraint Constraint
	at         token.Location
}

// analyzer walks a hir.Term generating the typing constraints that must
// hold for the term to be well-typed, without solving them itself (that is
// the Unifier's job, run once the whole term has been walked).
type analyzer struct {
	ctx         *types.Context
	constraints []locatedConstraint
}

// addConstraint front-queues a new constraint. The Unifier pops constraints
// from the back, so front-pushing makes it solve them in the order they
// were generated, earliest first. Because the walk is post-order, the
// constraints of a subterm are generated, and so solved, before those of
// the term enclosing it.
func (a *analyzer) addConstraint(expected, found types.Ty, at token.Location) {
	c := locatedConstraint{constraint: Constraint{Expected: expected, Found: found}, at: at}
	a.constraints = append([]locatedConstraint{c}, a.constraints...)
}

func (a *analyzer) typeOf(term *hir.Term) (types.Ty, error) {
	loc := a.ctx.TermLoc(term.ID)

	ty, err := a.typeOfKind(term.Kind)
	if err != nil {
		return types.Ty{}, err
	}

	if info, ok := a.ctx.TermType(term.ID); ok {
		a.addConstraint(info, ty, loc)
	} else {
		a.ctx.SetTermType(term.ID, ty)
	}

	return ty, nil
}

func (a *analyzer) typeOfKind(kind hir.TermKind) (types.Ty, error) {
	switch k := kind.(type) {
	case *hir.LitTerm:
		return a.typeOfLit(k), nil
	case *hir.VarTerm:
		return a.typeOfVar(k)
	case *hir.AbsTerm:
		return a.typeOfAbs(k)
	case *hir.UnaryOpTerm:
		return a.typeOfUnaryOp(k)
	case *hir.BinaryOpTerm:
		return a.typeOfBinaryOp(k)
	case *hir.AppTerm:
		return a.typeOfApp(k)
	case *hir.LetTerm:
		return a.typeOfLet(k)
	case *hir.CondTerm:
		return a.typeOfCond(k)
	case *hir.PrimFnTerm:
		return a.typeOfPrimFn(), nil
	default:
		panic("tycheck: unknown TermKind")
	}
}

func (a *analyzer) typeOfLit(lit *hir.LitTerm) types.Ty {
	switch lit.Kind {
	case hir.LitUnit:
		return types.UnitTy
	case hir.LitBool:
		return types.BoolTy
	default:
		return types.IntTy
	}
}

// typeOfVar looks up a variable's type in the context. Every local that
// reaches here was bound, with a recorded type, by hir.Lower; a missing
// entry is an invariant violation in the lowering stage, not a recoverable
// type error.
func (a *analyzer) typeOfVar(v *hir.VarTerm) (types.Ty, error) {
	ty, ok := a.ctx.LocalType(v.Local)
	if !ok {
		panic("tycheck: missing type info for local")
	}
	return ty, nil
}

func (a *analyzer) typeOfAbs(abs *hir.AbsTerm) (types.Ty, error) {
	argTy, ok := a.ctx.LocalType(abs.Param)
	if !ok {
		panic("tycheck: missing type info for abstraction parameter")
	}
	bodyTy, err := a.typeOf(abs.Body)
	if err != nil {
		return types.Ty{}, err
	}
	return types.Arrow(argTy, bodyTy), nil
}

func (a *analyzer) typeOfUnaryOp(u *hir.UnaryOpTerm) (types.Ty, error) {
	ty, err := a.typeOf(u.X)
	if err != nil {
		return types.Ty{}, err
	}
	loc := a.ctx.TermLoc(u.X.ID)

	var expected types.Ty
	switch u.Op {
	case token.MINUS:
		expected = types.IntTy
	case token.BANG:
		expected = types.BoolTy
	default:
		panic("tycheck: unknown unary operator")
	}
	a.addConstraint(expected, ty, loc)
	return ty, nil
}

func (a *analyzer) typeOfBinaryOp(b *hir.BinaryOpTerm) (types.Ty, error) {
	lty, err := a.typeOf(b.L)
	if err != nil {
		return types.Ty{}, err
	}
	rty, err := a.typeOf(b.R)
	if err != nil {
		return types.Ty{}, err
	}
	lloc := a.ctx.TermLoc(b.L.ID)
	rloc := a.ctx.TermLoc(b.R.ID)

	switch b.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.AMPERSAND, token.PIPE, token.CIRCUMFLEX, token.GTGT, token.LTLT:
		a.addConstraint(types.IntTy, lty, lloc)
		a.addConstraint(types.IntTy, rty, rloc)
		return types.IntTy, nil
	case token.OROR, token.ANDAND:
		a.addConstraint(types.BoolTy, lty, lloc)
		a.addConstraint(types.BoolTy, rty, rloc)
		return types.BoolTy, nil
	case token.LT, token.GT, token.LE, token.GE:
		a.addConstraint(types.IntTy, lty, lloc)
		a.addConstraint(types.IntTy, rty, rloc)
		return types.BoolTy, nil
	case token.EQL, token.NEQ:
		a.addConstraint(lty, rty, rloc)
		return types.BoolTy, nil
	default:
		panic("tycheck: unknown binary operator")
	}
}

func (a *analyzer) typeOfApp(app *hir.AppTerm) (types.Ty, error) {
	fnTy, err := a.typeOf(app.Fn)
	if err != nil {
		return types.Ty{}, err
	}
	argTy, err := a.typeOf(app.Arg)
	if err != nil {
		return types.Ty{}, err
	}
	argLoc := a.ctx.TermLoc(app.Arg.ID)

	resultTy := a.ctx.NewTy()
	a.addConstraint(fnTy, types.Arrow(argTy, resultTy), argLoc)
	return resultTy, nil
}

func (a *analyzer) typeOfLet(let *hir.LetTerm) (types.Ty, error) {
	lhsTy, ok := a.ctx.LocalType(let.Local)
	if !ok {
		panic("tycheck: missing type info for let binding")
	}

	rhsTy, err := a.typeOf(let.Value)
	if err != nil {
		return types.Ty{}, err
	}
	rhsLoc := a.ctx.TermLoc(let.Value.ID)
	a.addConstraint(lhsTy, rhsTy, rhsLoc)

	return a.typeOf(let.Tail)
}

func (a *analyzer) typeOfCond(c *hir.CondTerm) (types.Ty, error) {
	condTy, err := a.typeOf(c.Cond)
	if err != nil {
		return types.Ty{}, err
	}
	thenTy, err := a.typeOf(c.Then)
	if err != nil {
		return types.Ty{}, err
	}
	elseTy, err := a.typeOf(c.Else)
	if err != nil {
		return types.Ty{}, err
	}

	condLoc := a.ctx.TermLoc(c.Cond.ID)
	elseLoc := a.ctx.TermLoc(c.Else.ID)

	a.addConstraint(types.BoolTy, condTy, condLoc)
	a.addConstraint(thenTy, elseTy, elseLoc)

	return thenTy, nil
}

// typeOfPrimFn types the single `print` primitive as `X -> Unit` for a
// fresh X, since it accepts any argument type.
func (a *analyzer) typeOfPrimFn() types.Ty {
	return types.Arrow(a.ctx.NewTy(), types.UnitTy)
}
