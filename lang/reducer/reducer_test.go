package reducer

import (
	"bytes"
	"math"
	"testing"

	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/lir"
	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/tycheck"
	"github.com/pijago/pijago/lang/types"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, strategy Strategy, src string) (*lir.Term, string) {
	t.Helper()
	ch, err := parser.Parse(t.Name(), []byte(src))
	require.NoError(t, err)

	ctx := types.NewContext()
	h, err := hir.Lower(ctx, ch.Block)
	require.NoError(t, err)

	_, err = tycheck.Check(ctx, h)
	require.NoError(t, err)

	term := lir.Lower(h)
	var out bytes.Buffer
	result := New(strategy, &out).Evaluate(term)
	return result, out.String()
}

func requireLitInt(t *testing.T, term *lir.Term, want int64) {
	t.Helper()
	lit, ok := lir.IsLit(term)
	require.True(t, ok)
	require.Equal(t, lir.LitInt, lit.Kind)
	require.Equal(t, want, lit.Val)
}

func requireLitBool(t *testing.T, term *lir.Term, want bool) {
	t.Helper()
	lit, ok := lir.IsLit(term)
	require.True(t, ok)
	require.Equal(t, lir.LitBool, lit.Kind)
	require.Equal(t, want, lit.Val != 0)
}

func TestScenarioFactorial(t *testing.T) {
	result, _ := run(t, Wrap, `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(10)`)
	requireLitInt(t, result, 3628800)
}

func TestScenarioFibonacci(t *testing.T) {
	result, _ := run(t, Wrap, `fn fib(n: Int) -> Int do if n < 2 do n else fib(n-1) + fib(n-2) end end; fib(8)`)
	requireLitInt(t, result, 21)
}

func TestScenarioLetArithmeticPrecedence(t *testing.T) {
	result, _ := run(t, Wrap, `let x = 5; let y = 4; x + y * 2`)
	requireLitInt(t, result, 13)
}

func TestScenarioShortCircuitAvoidsDivisionByZero(t *testing.T) {
	result, _ := run(t, Checked, `true || (1/0 == 0)`)
	requireLitBool(t, result, true)
}

func TestScenarioPrintSequence(t *testing.T) {
	result, out := run(t, Wrap, `print(10); print(unit)`)
	require.Equal(t, "10\nunit\n", out)
	lit, ok := lir.IsLit(result)
	require.True(t, ok)
	require.Equal(t, lir.LitUnit, lit.Kind)
}

func TestCheckedOverflowPanics(t *testing.T) {
	require.Panics(t, func() {
		run(t, Checked, `9223372036854775807 + 1`)
	})
}

func TestWrapOverflowWraps(t *testing.T) {
	result, _ := run(t, Wrap, `9223372036854775807 + 1`)
	requireLitInt(t, result, math.MinInt64)
}

func TestCheckedDivisionByZeroPanics(t *testing.T) {
	require.Panics(t, func() {
		run(t, Checked, `1 / 0`)
	})
}

func TestCheckedShiftOutOfRangePanics(t *testing.T) {
	require.Panics(t, func() {
		run(t, Checked, `1 << 64`)
	})
}

func TestAndShortCircuitsOnFalse(t *testing.T) {
	result, _ := run(t, Checked, `false && (1/0 == 0)`)
	requireLitBool(t, result, false)
}

func TestCurriedAdder(t *testing.T) {
	result, _ := run(t, Wrap, `fn adder(x: Int) -> (Int -> Int) do fn (y: Int) do x + y end end; adder(3)(4)`)
	requireLitInt(t, result, 7)
}
