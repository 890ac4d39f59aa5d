package parser

import (
	"bytes"
	"testing"

	"github.com/pijago/pijago/lang/ast"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Chunk {
	t.Helper()
	ch, err := Parse(t.Name(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, ch)
	return ch
}

func TestParseScenarios(t *testing.T) {
	scenarios := []string{
		`1 + 2 * 3`,
		`let x = 10; let y = 20; x + y`,
		`fn id(x: Int) -> Int do x end; id(id)(3)`,
		`fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(10)`,
		`print(10); print(unit)`,
		`fn adder(x: Int) -> (Int -> Int) do fn (y: Int) do x + y end end; adder(3)(4)`,
		`let f = fn (x: Int) do x end; f(1)`,
		`true && false || true`,
		`if 1 < 2 do 1 elif 2 < 3 do 2 else 3 end`,
	}

	for _, src := range scenarios {
		src := src
		t.Run(src, func(t *testing.T) {
			ch := mustParse(t, src)
			require.NotNil(t, ch.Block)

			var buf bytes.Buffer
			ast.Print(&buf, ch)
			require.NotEmpty(t, buf.String())
		})
	}
}

func TestParseTrailingExprIsTail(t *testing.T) {
	ch := mustParse(t, `let x = 1; x`)
	require.Len(t, ch.Block.Stmts, 1)
	require.NotNil(t, ch.Block.Tail)
	ident, ok := ch.Block.Tail.(*ast.IdentExpr)
	require.True(t, ok)
	require.Equal(t, "x", ident.Name)
}

func TestParseExprStmtRequiresSemicolon(t *testing.T) {
	ch := mustParse(t, `print(10); print(unit)`)
	require.Len(t, ch.Block.Stmts, 1)
	_, ok := ch.Block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = ch.Block.Tail.(*ast.PrintExpr)
	require.False(t, ok)
	call, ok := ch.Block.Tail.(*ast.CallExpr)
	require.True(t, ok)
	_, ok = call.Fn.(*ast.PrintExpr)
	require.True(t, ok)
}

func TestParseErrorOnIllegalToken(t *testing.T) {
	_, err := Parse(t.Name(), []byte(`let x = @`))
	require.Error(t, err)
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	_, err := Parse(t.Name(), []byte(`let x 1`))
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
}
