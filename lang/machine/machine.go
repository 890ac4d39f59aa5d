// Package machine implements the stack-based bytecode virtual machine: the
// second of the two execution engines fed by the same type-checked HIR (the
// other being lang/reducer's tree walker). Operand-stack words are raw
// int64s, not a tagged Value type — the compiler has already resolved every
// print call to a type-specific opcode at compile time, so the machine
// itself never needs to ask a word what kind of value it holds.
package machine

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pijago/pijago/lang/compiler"
	"github.com/pijago/pijago/lang/reducer"
)

// Machine runs a compiled Program to completion and returns the top-level
// chunk's result word. A malformed instruction stream (stack underflow, an
// out-of-range jump or function pointer) is a compiler bug, not a runtime
// error, and is reported the same way Go reports it: as a panic.
type Machine struct {
	Strategy reducer.Strategy
	Out      io.Writer
}

func New(strategy reducer.Strategy, out io.Writer) *Machine {
	return &Machine{Strategy: strategy, Out: out}
}

func readI64(code []byte, pc *int) int64 {
	v := int64(binary.BigEndian.Uint64(code[*pc : *pc+8]))
	*pc += 8
	return v
}

// Run executes prog's top-level chunk and every function it transitively
// calls, on a single shared operand stack, until the top-level frame
// returns.
func (m *Machine) Run(prog *compiler.Program) int64 {
	h := &heap{}
	stack := make([]int64, 0, 64)
	frames := []*frame{{code: prog.Entry().Code}}

	for {
		fr := frames[len(frames)-1]
		op := compiler.Opcode(fr.code[fr.pc])
		fr.pc++

		switch op {
		case compiler.Push:
			stack = append(stack, readI64(fr.code, &fr.pc))

		case compiler.Pop:
			stack = stack[:len(stack)-1]

		case compiler.Swap:
			n := len(stack)
			stack[n-1], stack[n-2] = stack[n-2], stack[n-1]

		case compiler.PushLocal:
			k := readI64(fr.code, &fr.pc)
			stack = append(stack, stack[fr.base+int(k)])

		case compiler.PushUpvalue:
			k := readI64(fr.code, &fr.pc)
			stack = append(stack, fr.closure.upvalues[k])

		case compiler.PushClosure:
			fnIdx := readI64(fr.code, &fr.pc)
			n := readI64(fr.code, &fr.pc)
			cl := &closure{fn: int(fnIdx), upvalues: make([]int64, n)}
			ptr := h.alloc(cl)
			// Push before hydrating upvalues: a self-recursive capture's
			// index is exactly the slot this push occupies, so reading it
			// afterward picks up the freshly minted closure instead of
			// whatever stale word used to live there.
			stack = append(stack, ptr)
			for i := int64(0); i < n; i++ {
				isLocal := fr.code[fr.pc]
				fr.pc++
				idx := readI64(fr.code, &fr.pc)
				if isLocal == 1 {
					cl.upvalues[i] = stack[fr.base+int(idx)]
				} else {
					cl.upvalues[i] = fr.closure.upvalues[idx]
				}
			}

		case compiler.Call:
			n := int(readI64(fr.code, &fr.pc))
			closurePtr := stack[len(stack)-1-n]
			cl := h.get(closurePtr)
			newBase := len(stack) - 1 - n
			frames = append(frames, &frame{closure: cl, code: prog.Funcs[cl.fn].Code, base: newBase})

		case compiler.Return:
			ret := stack[len(stack)-1]
			stack = stack[:fr.base]
			frames = frames[:len(frames)-1]
			if len(frames) == 0 {
				return ret
			}
			stack = append(stack, ret)

		case compiler.Jump:
			off := readI64(fr.code, &fr.pc)
			fr.pc += int(off)

		case compiler.JumpIfZero:
			off := readI64(fr.code, &fr.pc)
			if stack[len(stack)-1] == 0 {
				fr.pc += int(off)
			}

		case compiler.JumpNonZero:
			off := readI64(fr.code, &fr.pc)
			if stack[len(stack)-1] != 0 {
				fr.pc += int(off)
			}

		case compiler.Add, compiler.Sub, compiler.Mul, compiler.Div, compiler.Mod,
			compiler.BitAnd, compiler.BitOr, compiler.BitXor, compiler.Shl, compiler.Shr,
			compiler.Lt, compiler.Gt, compiler.Ge, compiler.Le, compiler.Eql, compiler.Neq:
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, binary(m.Strategy, op, a, b))

		case compiler.Neg:
			x := stack[len(stack)-1]
			stack[len(stack)-1] = reducer.CheckedOrWrapNeg(m.Strategy, x)

		case compiler.Not:
			x := stack[len(stack)-1]
			stack[len(stack)-1] = boolWord(x == 0)

		case compiler.PrintInt:
			x := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			fmt.Fprintln(m.Out, x)

		case compiler.PrintBool:
			x := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			fmt.Fprintln(m.Out, x != 0)

		case compiler.PrintUnit:
			stack = stack[:len(stack)-1]
			fmt.Fprintln(m.Out, "unit")

		case compiler.PrintFunc:
			stack = stack[:len(stack)-1]
			fmt.Fprintln(m.Out, "<function>")

		default:
			panic(fmt.Sprintf("machine: unknown opcode %s", op))
		}
	}
}
