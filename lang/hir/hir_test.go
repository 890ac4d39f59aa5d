package hir

import (
	"testing"

	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/types"
	"github.com/stretchr/testify/require"
)

func lower(t *testing.T, src string) (*types.Context, *Term) {
	t.Helper()
	ch, err := parser.Parse(t.Name(), []byte(src))
	require.NoError(t, err)
	ctx := types.NewContext()
	term, err := Lower(ctx, ch.Block)
	require.NoError(t, err)
	require.NotNil(t, term)
	return ctx, term
}

func TestLowerLiteral(t *testing.T) {
	_, term := lower(t, `42`)
	lit, ok := term.Kind.(*LitTerm)
	require.True(t, ok)
	require.Equal(t, LitInt, lit.Kind)
	require.EqualValues(t, 42, lit.Int)
}

func TestLowerLetBindsSequentially(t *testing.T) {
	_, term := lower(t, `let x = 1; let y = 2; x + y`)
	let1, ok := term.Kind.(*LetTerm)
	require.True(t, ok)
	require.Equal(t, NonRec, let1.Kind)

	let2, ok := let1.Tail.Kind.(*LetTerm)
	require.True(t, ok)

	bin, ok := let2.Tail.Kind.(*BinaryOpTerm)
	require.True(t, ok)
	_, ok = bin.L.Kind.(*VarTerm)
	require.True(t, ok)
}

func TestLowerNonRecursiveFnDef(t *testing.T) {
	_, term := lower(t, `fn id(x: Int) -> Int do x end; unit`)
	let, ok := term.Kind.(*LetTerm)
	require.True(t, ok)
	require.Equal(t, NonRec, let.Kind)
	_, ok = let.Value.Kind.(*AbsTerm)
	require.True(t, ok)
}

func TestLowerRecursiveFnDef(t *testing.T) {
	_, term := lower(t, `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; unit`)
	let, ok := term.Kind.(*LetTerm)
	require.True(t, ok)
	require.Equal(t, Rec, let.Kind)
}

func TestLowerUnboundIdentifierErrors(t *testing.T) {
	ch, err := parser.Parse(t.Name(), []byte(`x`))
	require.NoError(t, err)
	ctx := types.NewContext()
	_, err = Lower(ctx, ch.Block)
	require.Error(t, err)
}

func TestLowerCallChain(t *testing.T) {
	_, term := lower(t, `fn id(x: Int) -> Int do x end; id(id(3))`)
	let, ok := term.Kind.(*LetTerm)
	require.True(t, ok)
	app, ok := let.Tail.Kind.(*AppTerm)
	require.True(t, ok)
	_, ok = app.Arg.Kind.(*AppTerm)
	require.True(t, ok)
}

func TestLowerAnonFnToAbs(t *testing.T) {
	_, term := lower(t, `let f = fn (x: Int) do x end; f(1)`)
	let, ok := term.Kind.(*LetTerm)
	require.True(t, ok)
	_, ok = let.Value.Kind.(*AbsTerm)
	require.True(t, ok)
}
