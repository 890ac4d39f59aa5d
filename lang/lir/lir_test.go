package lir

import (
	"testing"

	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/token"
	"github.com/pijago/pijago/lang/types"
	"github.com/stretchr/testify/require"
)

func lower(t *testing.T, src string) *Term {
	t.Helper()
	ch, err := parser.Parse(t.Name(), []byte(src))
	require.NoError(t, err)
	ctx := types.NewContext()
	h, err := hir.Lower(ctx, ch.Block)
	require.NoError(t, err)
	return Lower(h)
}

func TestLowerLiteral(t *testing.T) {
	term := lower(t, `42`)
	lit, ok := IsLit(term)
	require.True(t, ok)
	require.Equal(t, LitInt, lit.Kind)
	require.EqualValues(t, 42, lit.Val)
}

func TestLowerBoolLiteralEncoding(t *testing.T) {
	tr := lower(t, `true`)
	fa := lower(t, `false`)
	litTrue, ok := IsLit(tr)
	require.True(t, ok)
	litFalse, ok := IsLit(fa)
	require.True(t, ok)
	require.EqualValues(t, 1, litTrue.Val)
	require.EqualValues(t, 0, litFalse.Val)
}

func TestLowerUnitLiteralEncoding(t *testing.T) {
	term := lower(t, `unit`)
	lit, ok := IsLit(term)
	require.True(t, ok)
	require.Equal(t, LitUnit, lit.Kind)
	require.EqualValues(t, 0, lit.Val)
}

func TestLowerLetDesugarsToApplication(t *testing.T) {
	term := lower(t, `let x = 1; x`)
	app, ok := term.Kind.(*App)
	require.True(t, ok)

	abs, ok := app.Fn.Kind.(*Abs)
	require.True(t, ok)

	v, ok := abs.Body.Kind.(*Var)
	require.True(t, ok)
	require.Equal(t, 0, v.Index)

	lit, ok := IsLit(app.Arg)
	require.True(t, ok)
	require.EqualValues(t, 1, lit.Val)
}

func TestLowerIdFunctionVarIndex(t *testing.T) {
	// fn id(x) do x end lowers to a Let whose value is an Abs binding x;
	// inside the body, referencing x must resolve to index 0.
	term := lower(t, `fn id(x: Int) -> Int do x end; id(1)`)
	app, ok := term.Kind.(*App)
	require.True(t, ok)

	_, ok = app.Fn.Kind.(*Abs) // the let's own outer Abs, binding "id"
	require.True(t, ok)

	// The let's value is the lowered function itself (non-recursive, so no
	// Fix wrapper).
	fnAbs, ok := app.Arg.Kind.(*Abs)
	require.True(t, ok)
	v, ok := fnAbs.Body.Kind.(*Var)
	require.True(t, ok)
	require.Equal(t, 0, v.Index)
}

func TestLowerRecursiveFunctionWrapsInFix(t *testing.T) {
	term := lower(t, `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(5)`)
	app, ok := term.Kind.(*App)
	require.True(t, ok)

	fix, ok := app.Arg.Kind.(*Fix)
	require.True(t, ok)

	_, ok = fix.Body.Kind.(*Abs)
	require.True(t, ok)
}

func TestLowerBinaryOpPreservesOperator(t *testing.T) {
	term := lower(t, `1 + 2`)
	bin, ok := term.Kind.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, token.PLUS, bin.Op)
}

func TestShiftUpLeavesBoundVarsAlone(t *testing.T) {
	// (λ. _0) has its variable bound by its own Abs; shifting with cutoff 0
	// starting outside should not touch indices below the new cutoff
	// introduced when descending into Abs.
	abs := NewAbs(NewVar(0))
	abs.Shift(true, 0)
	body := abs.Kind.(*Abs).Body.Kind.(*Var)
	require.Equal(t, 0, body.Index)
}

func TestShiftUpAdjustsFreeVars(t *testing.T) {
	term := NewVar(2)
	term.Shift(true, 0)
	require.Equal(t, 3, term.Kind.(*Var).Index)
}

func TestReplaceSubstitutesMatchingIndex(t *testing.T) {
	body := NewApp(NewVar(0), NewVar(1))
	sub := NewLitInt(9)
	body.Replace(0, sub)

	app := body.Kind.(*App)
	lit, ok := IsLit(app.Fn)
	require.True(t, ok)
	require.EqualValues(t, 9, lit.Val)

	v, ok := app.Arg.Kind.(*Var)
	require.True(t, ok)
	require.Equal(t, 1, v.Index)
}

func TestReplaceShiftsSubstitutionAcrossAbs(t *testing.T) {
	// (λ. _1): inside the Abs, _1 is the variable that index 0 names from
	// outside, so Replace(0, _3) replaces it, and the substitution is shifted
	// up by one on its way across the binder, arriving as _4.
	inner := NewAbs(NewVar(1))
	sub := NewVar(3)
	inner.Replace(0, sub)

	abs := inner.Kind.(*Abs)
	v, ok := abs.Body.Kind.(*Var)
	require.True(t, ok)
	require.Equal(t, 4, v.Index)
}

func TestCloneIsIndependent(t *testing.T) {
	orig := NewVar(5)
	clone := Clone(orig)
	clone.Kind.(*Var).Index = 99
	require.Equal(t, 5, orig.Kind.(*Var).Index)
}
