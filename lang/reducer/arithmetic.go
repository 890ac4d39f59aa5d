package reducer

import (
	"math"

	"github.com/pijago/pijago/lang/lir"
	"github.com/pijago/pijago/lang/token"
)

// binaryNative applies a binary operator to two already-reduced literals,
// dispatching arithmetic ops through the Strategy and everything else
// (comparisons, bitwise ops, boolean ops) through plain native evaluation,
// since none of those can overflow.
func (r *Reducer) binaryNative(op token.Token, l, rhs *lir.Lit) *lir.Term {
	switch op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.LTLT, token.GTGT:
		return lir.NewLitInt(r.binaryArith(op, l.Val, rhs.Val))

	case token.AMPERSAND:
		return lir.NewLitInt(l.Val & rhs.Val)
	case token.PIPE:
		return lir.NewLitInt(l.Val | rhs.Val)
	case token.CIRCUMFLEX:
		return lir.NewLitInt(l.Val ^ rhs.Val)

	case token.LT:
		return lir.NewLitBool(l.Val < rhs.Val)
	case token.GT:
		return lir.NewLitBool(l.Val > rhs.Val)
	case token.LE:
		return lir.NewLitBool(l.Val <= rhs.Val)
	case token.GE:
		return lir.NewLitBool(l.Val >= rhs.Val)

	case token.EQL:
		return lir.NewLitBool(l.Kind == rhs.Kind && l.Val == rhs.Val)
	case token.NEQ:
		return lir.NewLitBool(!(l.Kind == rhs.Kind && l.Val == rhs.Val))

	case token.ANDAND:
		return lir.NewLitBool(l.Val != 0 && rhs.Val != 0)
	case token.OROR:
		return lir.NewLitBool(l.Val != 0 || rhs.Val != 0)

	default:
		panic("reducer: unknown binary operator")
	}
}

func (r *Reducer) binaryArith(op token.Token, n1, n2 int64) int64 {
	if r.Strategy == Checked {
		return CheckedBinary(op, n1, n2)
	}
	return WrapBinary(op, n1, n2)
}

// WrapBinary relies on Go's own wraparound two's-complement arithmetic for
// +, -, * (the same silent-overflow behavior as the wrap strategy asks
// for). Division and modulo by zero still fault, since that is a genuine
// machine-level trap under both strategies, not an overflow. Shift counts
// are reinterpreted as unsigned so a negative or oversized count never
// panics; it just shifts by a very large amount, which Go defines as
// yielding zero (or -1 for >> of a negative operand).
//
// Exported so lang/machine's stack VM can apply the identical strategy to
// its own Add/Sub/.../Shr opcodes without duplicating the overflow rules.
func WrapBinary(op token.Token, n1, n2 int64) int64 {
	switch op {
	case token.PLUS:
		return n1 + n2
	case token.MINUS:
		return n1 - n2
	case token.STAR:
		return n1 * n2
	case token.SLASH:
		return n1 / n2
	case token.PERCENT:
		return n1 % n2
	case token.LTLT:
		return n1 << uint64(n2)
	case token.GTGT:
		return n1 >> uint64(n2)
	default:
		panic("reducer: unknown arithmetic operator")
	}
}

// CheckedBinary panics on signed overflow, division by zero, and shift
// amounts outside [0, 63] (the practical range for an i64 operand; any
// count a u32 could hold but at or beyond the bit width would overflow the
// shift anyway).
func CheckedBinary(op token.Token, n1, n2 int64) int64 {
	switch op {
	case token.PLUS:
		res := n1 + n2
		if (n2 > 0 && res < n1) || (n2 < 0 && res > n1) {
			panicf("binary operation '+' overflowed with operands %d and %d", n1, n2)
		}
		return res

	case token.MINUS:
		res := n1 - n2
		if (n2 < 0 && res < n1) || (n2 > 0 && res > n1) {
			panicf("binary operation '-' overflowed with operands %d and %d", n1, n2)
		}
		return res

	case token.STAR:
		res := n1 * n2
		if (n1 != 0 && res/n1 != n2) || (n1 == -1 && n2 == math.MinInt64) {
			panicf("binary operation '*' overflowed with operands %d and %d", n1, n2)
		}
		return res

	case token.SLASH:
		if n2 == 0 {
			panicf("division by zero with operand %d", n1)
		}
		if n1 == math.MinInt64 && n2 == -1 {
			panicf("binary operation '/' overflowed with operands %d and %d", n1, n2)
		}
		return n1 / n2

	case token.PERCENT:
		if n2 == 0 {
			panicf("division by zero with operand %d", n1)
		}
		return n1 % n2

	case token.LTLT:
		if n2 < 0 || n2 > 63 {
			panicf("shift amount %d is out of range", n2)
		}
		return n1 << uint64(n2)

	case token.GTGT:
		if n2 < 0 || n2 > 63 {
			panicf("shift amount %d is out of range", n2)
		}
		return n1 >> uint64(n2)

	default:
		panic("reducer: unknown arithmetic operator")
	}
}

func (r *Reducer) unaryNative(op token.Token, x *lir.Lit) *lir.Term {
	switch op {
	case token.MINUS:
		return lir.NewLitInt(CheckedOrWrapNeg(r.Strategy, x.Val))

	case token.BANG:
		return lir.NewLitBool(x.Val == 0)

	default:
		panic("reducer: unknown unary operator")
	}
}

// CheckedOrWrapNeg negates n under strategy s, panicking on the one
// negation that can overflow an i64 (negating math.MinInt64) when s is
// Checked. Exported for lang/machine's Neg opcode.
func CheckedOrWrapNeg(s Strategy, n int64) int64 {
	if s == Checked && n == math.MinInt64 {
		panicf("unary operation '-' overflowed with operand %d", n)
	}
	return -n
}
