package tycheck

import (
	"testing"

	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/types"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) (types.Ty, error) {
	t.Helper()
	ch, err := parser.Parse(t.Name(), []byte(src))
	require.NoError(t, err)
	ctx := types.NewContext()
	term, err := hir.Lower(ctx, ch.Block)
	require.NoError(t, err)
	return Check(ctx, term)
}

func TestCheckLiteral(t *testing.T) {
	ty, err := check(t, `42`)
	require.NoError(t, err)
	require.True(t, ty.IsInt())
}

func TestCheckArithmetic(t *testing.T) {
	ty, err := check(t, `1 + 2 * 3`)
	require.NoError(t, err)
	require.True(t, ty.IsInt())
}

func TestCheckComparison(t *testing.T) {
	ty, err := check(t, `1 < 2`)
	require.NoError(t, err)
	require.True(t, ty.IsBool())
}

func TestCheckIdFunction(t *testing.T) {
	ty, err := check(t, `fn id(x: Int) -> Int do x end; id(3)`)
	require.NoError(t, err)
	require.True(t, ty.IsInt())
}

func TestCheckFactorial(t *testing.T) {
	ty, err := check(t, `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(10)`)
	require.NoError(t, err)
	require.True(t, ty.IsInt())
}

func TestCheckCurriedFunction(t *testing.T) {
	ty, err := check(t, `fn adder(x: Int) -> (Int -> Int) do fn (y: Int) do x + y end end; adder(3)(4)`)
	require.NoError(t, err)
	require.True(t, ty.IsInt())
}

func TestCheckTypeMismatch(t *testing.T) {
	_, err := check(t, `1 + true`)
	require.Error(t, err)
	var tyErr *Error
	require.ErrorAs(t, err, &tyErr)
}

func TestCheckCondBranchMismatch(t *testing.T) {
	_, err := check(t, `if true do 1 else false end`)
	require.Error(t, err)
}

func TestCheckPrint(t *testing.T) {
	ty, err := check(t, `print(10)`)
	require.NoError(t, err)
	require.True(t, ty.IsUnit())
}

func TestCheckAnonFnInference(t *testing.T) {
	ty, err := check(t, `let f = fn (x: Int) do x end; f(1)`)
	require.NoError(t, err)
	require.True(t, ty.IsInt())
}
