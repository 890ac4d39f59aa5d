// Package compiler walks a type-checked HIR term and emits bytecode for the
// stack machine in lang/machine. Unlike lang/lir, which strips names down to
// de Bruijn indices for the tree-walking reducer, the compiler keeps walking
// the named HIR directly: its own scope-resolution pass (tracking locals and
// upvalues per function, Lua-style) replaces what de Bruijn indices give the
// reducer for free.
package compiler

import (
	"encoding/binary"

	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/token"
	"github.com/pijago/pijago/lang/types"
)

// Compile compiles a type-checked HIR term into a Program. ctx must be the
// same Context the term was lowered and type-checked against, since the
// print primitive's opcode is selected from each call site's inferred
// argument type.
func Compile(ctx *types.Context, term *hir.Term) *Program {
	c := &compiler{ctx: ctx, prog: &Program{}}
	// Reserve index 0 for the top-level chunk before compiling it, so that
	// any nested functions discovered along the way (which allocate their
	// index as len(Funcs) at the point they're compiled) never collide
	// with it.
	c.prog.Funcs = append(c.prog.Funcs, &CodeBuffer{})

	top := &scope{frameBase: 0}
	var code []byte
	c.term(term, top, &code)
	code = append(code, byte(Return))
	c.prog.Funcs[0] = &CodeBuffer{Code: code}
	return c.prog
}

type compiler struct {
	ctx  *types.Context
	prog *Program
}

// upvalueDesc is one entry of a PushClosure's capture list: either "copy
// slot Index out of the enclosing frame's own locals" (IsLocal) or "copy
// upvalue Index of the enclosing closure" (!IsLocal).
type upvalueDesc struct {
	IsLocal bool
	Index   int
}

// scope is the compile-time analogue of a call frame: the ordered locals
// currently in scope (parameters first, then nested let-bindings) and the
// upvalues this function has had to capture so far, discovered lazily as
// resolveVar walks outward through the scope chain.
type scope struct {
	parent *scope

	// frameBase is 1 for a function scope (slot 0 of its frame is reserved
	// for the closure pointer Call leaves there) and 0 for the top-level
	// chunk, which nothing ever Calls into.
	frameBase int

	locals     []types.LocalId
	upvalueIDs []types.LocalId
	upvalues   []upvalueDesc
}

func (s *scope) pushLocal(id types.LocalId) {
	s.locals = append(s.locals, id)
}

func (s *scope) popLocal() {
	s.locals = s.locals[:len(s.locals)-1]
}

func (s *scope) addUpvalue(id types.LocalId, index int, isLocal bool) int {
	for i, existing := range s.upvalueIDs {
		if existing == id {
			return i
		}
	}
	s.upvalueIDs = append(s.upvalueIDs, id)
	s.upvalues = append(s.upvalues, upvalueDesc{IsLocal: isLocal, Index: index})
	return len(s.upvalues) - 1
}

// resolveVar finds id starting at s. It first looks at s's own locals
// (nearest declaration wins, since shadowing pushes over the old entry); if
// that fails and s has a parent, it resolves in the parent and, on success,
// records a local upvalue capture in s pointing at wherever the parent
// found it (its own local, or one of the parent's own upvalues).
func resolveVar(s *scope, id types.LocalId) (index int, isLocal, ok bool) {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i] == id {
			return s.frameBase + i, true, true
		}
	}
	if s.parent == nil {
		return 0, false, false
	}
	pIndex, pIsLocal, pOk := resolveVar(s.parent, id)
	if !pOk {
		return 0, false, false
	}
	idx := s.addUpvalue(id, pIndex, pIsLocal)
	return idx, false, true
}

func emitOp(code *[]byte, op Opcode) {
	*code = append(*code, byte(op))
}

func emitImm(code *[]byte, op Opcode, v int64) {
	*code = append(*code, byte(op))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	*code = append(*code, buf[:]...)
}

// placeholder reserves space for a jump immediate, to be overwritten once
// the target address is known; it returns the index of that immediate's
// first byte.
func placeholder(code *[]byte, op Opcode) int {
	*code = append(*code, byte(op), 0, 0, 0, 0, 0, 0, 0, 0)
	return len(*code) - 8
}

// patchJump overwrites the 8-byte immediate at pos with the relative offset
// from the instruction following it (pos+8) to the current end of code.
func patchJump(code *[]byte, pos int) {
	rel := int64(len(*code) - (pos + 8))
	binary.BigEndian.PutUint64((*code)[pos:pos+8], uint64(rel))
}

// term compiles a single HIR term. Every case leaves exactly one more value
// on the stack than was there on entry: that invariant is what lets Let
// clean up its own local with a single Swap; Pop regardless of how deep the
// tail it wraps turns out to be.
func (c *compiler) term(t *hir.Term, s *scope, code *[]byte) {
	switch k := t.Kind.(type) {
	case *hir.LitTerm:
		emitImm(code, Push, litValue(k))

	case *hir.PrimFnTerm:
		// A bare reference to print with no application around it can only
		// arise from dead code the type-checker would already have
		// rejected via its arrow-typed use; nothing in the surface grammar
		// produces one.
		panic("compiler: print used outside of an application")

	case *hir.VarTerm:
		index, isLocal, ok := resolveVar(s, k.Local)
		if !ok {
			panic("compiler: unbound local (hir.Lower or tycheck should have rejected this)")
		}
		if isLocal {
			emitImm(code, PushLocal, int64(index))
		} else {
			emitImm(code, PushUpvalue, int64(index))
		}

	case *hir.AbsTerm:
		c.abs(k, s, code)

	case *hir.AppTerm:
		c.app(t, k, s, code)

	case *hir.UnaryOpTerm:
		c.term(k.X, s, code)
		emitOp(code, unaryOpcode(k.Op))

	case *hir.BinaryOpTerm:
		c.binaryOp(k, s, code)

	case *hir.CondTerm:
		c.cond(k, s, code)

	case *hir.LetTerm:
		c.let(k, s, code)

	default:
		panic("compiler: unknown hir.TermKind")
	}
}

func litValue(k *hir.LitTerm) int64 {
	switch k.Kind {
	case hir.LitBool:
		if k.Bool {
			return 1
		}
		return 0
	case hir.LitInt:
		return k.Int
	case hir.LitUnit:
		return 0
	default:
		panic("compiler: unknown hir.LitKind")
	}
}

// abs compiles a function literal: a fresh code buffer and scope, the
// parameter pushed as the scope's sole local (AbsTerm is always
// single-argument; a multi-parameter surface function already arrived here
// as nested AbsTerms), the body, then Return. Upvalues are discovered
// lazily while the body compiles, so PushClosure's descriptor list is only
// known once compileFunction returns.
func (c *compiler) abs(a *hir.AbsTerm, parent *scope, code *[]byte) {
	fs := &scope{parent: parent, frameBase: 1}
	fs.pushLocal(a.Param)

	var body []byte
	c.term(a.Body, fs, &body)
	emitOp(&body, Return)

	funcIdx := len(c.prog.Funcs)
	c.prog.Funcs = append(c.prog.Funcs, &CodeBuffer{Code: body})

	*code = append(*code, byte(PushClosure))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(funcIdx))
	*code = append(*code, buf[:]...)
	binary.BigEndian.PutUint64(buf[:], uint64(len(fs.upvalues)))
	*code = append(*code, buf[:]...)
	for _, uv := range fs.upvalues {
		isLocal := byte(0)
		if uv.IsLocal {
			isLocal = 1
		}
		*code = append(*code, isLocal)
		binary.BigEndian.PutUint64(buf[:], uint64(uv.Index))
		*code = append(*code, buf[:]...)
	}
}

// app compiles an application. print(arg) is recognized here, since
// PrimFnTerm never compiles to a pushed value on its own: it type-selects
// one of the Print* opcodes from the argument's statically inferred type
// and, because Print* pops without pushing, follows it with an explicit
// unit literal so the expression still nets exactly one value.
func (c *compiler) app(t *hir.Term, k *hir.AppTerm, s *scope, code *[]byte) {
	if _, ok := k.Fn.Kind.(*hir.PrimFnTerm); ok {
		c.term(k.Arg, s, code)
		emitOp(code, printOpcode(c.ctx, k.Arg))
		emitImm(code, Push, 0)
		return
	}
	c.term(k.Fn, s, code)
	c.term(k.Arg, s, code)
	emitImm(code, Call, 1)
}

func printOpcode(ctx *types.Context, arg *hir.Term) Opcode {
	ty, ok := ctx.TermType(arg.ID)
	if !ok {
		panic("compiler: print argument has no recorded type")
	}
	switch {
	case ty.IsBool():
		return PrintBool
	case ty.IsInt():
		return PrintInt
	case ty.IsUnit():
		return PrintUnit
	case ty.IsArrow():
		return PrintFunc
	default:
		panic("compiler: print argument has an unresolved type")
	}
}

// binaryOp special-cases && and || as short-circuiting control flow: the
// left operand is peeked (never popped outright) so the untaken branch can
// leave it as the whole expression's result without recomputing it.
func (c *compiler) binaryOp(k *hir.BinaryOpTerm, s *scope, code *[]byte) {
	switch k.Op {
	case token.ANDAND:
		c.term(k.L, s, code)
		shortCircuit := placeholder(code, JumpIfZero)
		emitOp(code, Pop)
		c.term(k.R, s, code)
		patchJump(code, shortCircuit)
		return
	case token.OROR:
		c.term(k.L, s, code)
		shortCircuit := placeholder(code, JumpNonZero)
		emitOp(code, Pop)
		c.term(k.R, s, code)
		patchJump(code, shortCircuit)
		return
	}

	c.term(k.L, s, code)
	c.term(k.R, s, code)
	emitOp(code, binaryOpcode(k.Op))
}

func (c *compiler) cond(k *hir.CondTerm, s *scope, code *[]byte) {
	c.term(k.Cond, s, code)
	toElse := placeholder(code, JumpIfZero)
	emitOp(code, Pop)
	c.term(k.Then, s, code)
	toEnd := placeholder(code, Jump)
	patchJump(code, toElse)
	emitOp(code, Pop)
	c.term(k.Else, s, code)
	patchJump(code, toEnd)
}

// let registers the local's compile-time slot before compiling Value, not
// after: for a Rec binding Value is a self-referencing AbsTerm chain, and
// this is exactly what lets its body's self-reference resolve, through the
// closure's own upvalue capture, to the slot its own PushClosure is about
// to land in. It is harmless for the NonRec case, since nothing in Value
// could reach a binding hir.Lower hadn't yet made visible in scope.
func (c *compiler) let(k *hir.LetTerm, s *scope, code *[]byte) {
	s.pushLocal(k.Local)
	c.term(k.Value, s, code)
	c.term(k.Tail, s, code)
	s.popLocal()
	emitOp(code, Swap)
	emitOp(code, Pop)
}

func unaryOpcode(op token.Token) Opcode {
	switch op {
	case token.MINUS:
		return Neg
	case token.BANG:
		return Not
	default:
		panic("compiler: unknown unary operator")
	}
}

func binaryOpcode(op token.Token) Opcode {
	switch op {
	case token.PLUS:
		return Add
	case token.MINUS:
		return Sub
	case token.STAR:
		return Mul
	case token.SLASH:
		return Div
	case token.PERCENT:
		return Mod
	case token.AMPERSAND:
		return BitAnd
	case token.PIPE:
		return BitOr
	case token.CIRCUMFLEX:
		return BitXor
	case token.LTLT:
		return Shl
	case token.GTGT:
		return Shr
	case token.LT:
		return Lt
	case token.GT:
		return Gt
	case token.GE:
		return Ge
	case token.LE:
		return Le
	case token.EQL:
		return Eql
	case token.NEQ:
		return Neq
	default:
		panic("compiler: unknown binary operator")
	}
}
