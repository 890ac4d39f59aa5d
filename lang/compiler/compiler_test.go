package compiler

import (
	"encoding/binary"
	"testing"

	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/tycheck"
	"github.com/pijago/pijago/lang/types"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *Program {
	t.Helper()
	ch, err := parser.Parse(t.Name(), []byte(src))
	require.NoError(t, err)

	ctx := types.NewContext()
	h, err := hir.Lower(ctx, ch.Block)
	require.NoError(t, err)

	_, err = tycheck.Check(ctx, h)
	require.NoError(t, err)

	return Compile(ctx, h)
}

// insn is a single decoded instruction, immediates flattened to a slice so
// PushClosure's variable-length descriptor list and fixed single-word
// opcodes can be inspected uniformly.
type insn struct {
	op   Opcode
	args []int64
}

func disasm(t *testing.T, code []byte) []insn {
	t.Helper()
	var out []insn
	readI64 := func(pos int) int64 {
		return int64(binary.BigEndian.Uint64(code[pos : pos+8]))
	}

	i := 0
	for i < len(code) {
		op := Opcode(code[i])
		i++
		switch {
		case op == PushClosure:
			fn := readI64(i)
			i += 8
			n := readI64(i)
			i += 8
			args := []int64{fn, n}
			for k := int64(0); k < n; k++ {
				isLocal := int64(code[i])
				i++
				idx := readI64(i)
				i += 8
				args = append(args, isLocal, idx)
			}
			out = append(out, insn{op: op, args: args})
		case hasImmediate(op):
			out = append(out, insn{op: op, args: []int64{readI64(i)}})
			i += 8
		default:
			out = append(out, insn{op: op})
		}
	}
	return out
}

func TestCompileLiteralEmitsPush(t *testing.T) {
	prog := compile(t, `42`)
	insns := disasm(t, prog.Entry().Code)
	require.Equal(t, Push, insns[0].op)
	require.Equal(t, int64(42), insns[0].args[0])
	require.Equal(t, Return, insns[len(insns)-1].op)
}

func TestCompileBoolLiteralEncodesAsZeroOne(t *testing.T) {
	prog := compile(t, `true`)
	insns := disasm(t, prog.Entry().Code)
	require.Equal(t, Push, insns[0].op)
	require.Equal(t, int64(1), insns[0].args[0])
}

func TestCompileLetEmitsSwapPopCleanup(t *testing.T) {
	prog := compile(t, `let x = 1; x + 2`)
	insns := disasm(t, prog.Entry().Code)

	var sawSwap, sawPopAfterSwap bool
	for i, in := range insns {
		if in.op == Swap {
			sawSwap = true
			require.Equal(t, Pop, insns[i+1].op)
			sawPopAfterSwap = true
		}
	}
	require.True(t, sawSwap)
	require.True(t, sawPopAfterSwap)
}

func TestCompileVarResolvesToPushLocal(t *testing.T) {
	prog := compile(t, `let x = 1; x`)
	insns := disasm(t, prog.Entry().Code)

	var sawPushLocal bool
	for _, in := range insns {
		if in.op == PushLocal {
			sawPushLocal = true
			require.Equal(t, int64(0), in.args[0])
		}
	}
	require.True(t, sawPushLocal)
}

func TestCompileAnonFnEmitsPushClosureWithNoUpvalues(t *testing.T) {
	prog := compile(t, `let f = fn (x: Int) do x end; f(1)`)
	insns := disasm(t, prog.Entry().Code)

	var found bool
	for _, in := range insns {
		if in.op == PushClosure {
			found = true
			require.Equal(t, int64(0), in.args[1]) // no upvalues captured
		}
	}
	require.True(t, found)
	require.Len(t, prog.Funcs, 2) // top level + one function
}

func TestCompileCurriedFunctionCapturesOuterParamAsUpvalue(t *testing.T) {
	prog := compile(t, `fn adder(x: Int) -> (Int -> Int) do fn (y: Int) do x + y end end; adder(3)(4)`)

	// The inner function (adder's body) captures x as a local upvalue off
	// adder's own frame.
	var innerCode []byte
	for _, fn := range prog.Funcs {
		insns := disasm(t, fn.Code)
		for _, in := range insns {
			if in.op == PushUpvalue {
				innerCode = fn.Code
			}
		}
	}
	require.NotNil(t, innerCode)
}

func TestCompileRecursiveFunctionCapturesSelfAsLocalUpvalue(t *testing.T) {
	prog := compile(t, `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(10)`)

	// fact's own body references fact, which can only resolve as an
	// upvalue onto the enclosing (top-level) frame's local slot 0 -
	// exactly where fact's own PushClosure is about to land.
	var sawSelfUpvalue bool
	for _, fn := range prog.Funcs {
		insns := disasm(t, fn.Code)
		for _, in := range insns {
			if in.op == PushUpvalue && in.args[0] == 0 {
				sawSelfUpvalue = true
			}
		}
	}
	require.True(t, sawSelfUpvalue)
}

func TestCompileShortCircuitAndEmitsJumpIfZero(t *testing.T) {
	prog := compile(t, `true && false`)
	insns := disasm(t, prog.Entry().Code)
	var sawJump bool
	for _, in := range insns {
		if in.op == JumpIfZero {
			sawJump = true
		}
	}
	require.True(t, sawJump)
}

func TestCompileShortCircuitOrEmitsJumpNonZero(t *testing.T) {
	prog := compile(t, `true || false`)
	insns := disasm(t, prog.Entry().Code)
	var sawJump bool
	for _, in := range insns {
		if in.op == JumpNonZero {
			sawJump = true
		}
	}
	require.True(t, sawJump)
}

func TestCompileCondEmitsBothBranches(t *testing.T) {
	prog := compile(t, `if 1 < 2 do 10 else 20 end`)
	insns := disasm(t, prog.Entry().Code)

	var pushes []int64
	for _, in := range insns {
		if in.op == Push {
			pushes = append(pushes, in.args[0])
		}
	}
	require.Contains(t, pushes, int64(10))
	require.Contains(t, pushes, int64(20))
}

func TestCompilePrintSelectsTypedOpcode(t *testing.T) {
	prog := compile(t, `print(10); print(true); print(unit)`)
	insns := disasm(t, prog.Entry().Code)

	var ops []Opcode
	for _, in := range insns {
		switch in.op {
		case PrintInt, PrintBool, PrintUnit:
			ops = append(ops, in.op)
		}
	}
	require.Equal(t, []Opcode{PrintInt, PrintBool, PrintUnit}, ops)
}

func TestCompileApplicationEmitsCallWithArityOne(t *testing.T) {
	prog := compile(t, `fn id(x: Int) -> Int do x end; id(3)`)
	insns := disasm(t, prog.Entry().Code)

	var sawCall bool
	for _, in := range insns {
		if in.op == Call {
			sawCall = true
			require.Equal(t, int64(1), in.args[0])
		}
	}
	require.True(t, sawCall)
}
