// Package tycheck implements constraint-based type inference over the HIR:
// an Analyzer walks a term generating typing constraints, and a Unifier
// solves them, producing a substitution that resolves every unification
// variable to a concrete type (or reports a type error).
package tycheck

import (
	"fmt"

	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/token"
	"github.com/pijago/pijago/lang/types"
)

// Error is a type-checking failure: a type mismatch or an id whose type
// could not be fully resolved by unification.
type Error struct {
	Loc      token.Location
	Expected types.Ty
	Found    types.Ty
	Msg      string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
	}
	return fmt.Sprintf("%s: type mismatch: expected %s, found %s", e.Loc, e.Expected, e.Found)
}

func mismatch(loc token.Location, expected, found types.Ty) error {
	return &Error{Loc: loc, Expected: expected, Found: found}
}

// Check type-checks term against ctx, which must already hold the type
// info recorded by hir.Lower for every local in scope. On success it
// returns the fully-resolved type of the whole term, and every LocalId and
// TermId recorded in ctx has had its type substitution applied.
func Check(ctx *types.Context, term *hir.Term) (types.Ty, error) {
	a := &analyzer{ctx: ctx}
	ty, err := a.typeOf(term)
	if err != nil {
		return types.Ty{}, err
	}

	u, err := newUnifier(a.constraints)
	if err != nil {
		return types.Ty{}, err
	}

	ty = u.replace(ty)

	var notConcrete token.Location
	var found bool
	ctx.EachLocalType(func(id types.LocalId, t types.Ty) types.Ty {
		t = u.replace(t)
		if !found && !isConcrete(t) {
			notConcrete, found = ctx.LocalLoc(id), true
		}
		return t
	})
	if found {
		return types.Ty{}, &Error{Loc: notConcrete, Msg: "could not fully infer a concrete type"}
	}

	ctx.EachTermType(func(id types.TermId, t types.Ty) types.Ty {
		t = u.replace(t)
		if !found && !isConcrete(t) {
			notConcrete, found = ctx.TermLoc(id), true
		}
		return t
	})
	if found {
		return types.Ty{}, &Error{Loc: notConcrete, Msg: "could not fully infer a concrete type"}
	}

	return ty, nil
}

func isConcrete(t types.Ty) bool {
	switch {
	case t.IsVar():
		return false
	case t.IsArrow():
		return isConcrete(t.From()) && isConcrete(t.To())
	default:
		return true
	}
}
