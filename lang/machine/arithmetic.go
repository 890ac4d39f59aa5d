package machine

import (
	"github.com/pijago/pijago/lang/compiler"
	"github.com/pijago/pijago/lang/reducer"
	"github.com/pijago/pijago/lang/token"
)

// arithToken maps an arithmetic opcode back to the operator token
// reducer.WrapBinary/CheckedBinary switch on, so the VM shares the exact
// same overflow rules as the tree reducer instead of re-deriving them.
var arithToken = map[compiler.Opcode]token.Token{
	compiler.Add: token.PLUS,
	compiler.Sub: token.MINUS,
	compiler.Mul: token.STAR,
	compiler.Div: token.SLASH,
	compiler.Mod: token.PERCENT,
	compiler.Shl: token.LTLT,
	compiler.Shr: token.GTGT,
}

func boolWord(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// binary evaluates a binary opcode over two already-popped operands. Bitwise
// and comparison ops can never overflow, so they're computed natively here;
// arithmetic ops that can (+, -, *, /, %, <<, >>) go through the shared
// reducer helpers so both execution engines panic under identical
// conditions.
func binary(strategy reducer.Strategy, op compiler.Opcode, a, b int64) int64 {
	switch op {
	case compiler.Add, compiler.Sub, compiler.Mul, compiler.Div, compiler.Mod, compiler.Shl, compiler.Shr:
		tok := arithToken[op]
		if strategy == reducer.Checked {
			return reducer.CheckedBinary(tok, a, b)
		}
		return reducer.WrapBinary(tok, a, b)

	case compiler.BitAnd:
		return a & b
	case compiler.BitOr:
		return a | b
	case compiler.BitXor:
		return a ^ b

	case compiler.Lt:
		return boolWord(a < b)
	case compiler.Gt:
		return boolWord(a > b)
	case compiler.Ge:
		return boolWord(a >= b)
	case compiler.Le:
		return boolWord(a <= b)
	case compiler.Eql:
		return boolWord(a == b)
	case compiler.Neq:
		return boolWord(a != b)

	default:
		panic("machine: unknown binary opcode")
	}
}
