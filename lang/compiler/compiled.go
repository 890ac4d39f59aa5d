package compiler

// CodeBuffer is the compiled bytecode of a single function (or, at index 0,
// the implicit top-level chunk). Every PushClosure instruction refers to a
// CodeBuffer by its index in Program.Funcs.
type CodeBuffer struct {
	Code []byte
}

// Program is a whole compiled chunk. Every function compiled out of it,
// including the top-level one (always index 0, the one the machine starts
// running), shares this one function table, so a PushClosure's function
// pointer is just an index into Funcs.
type Program struct {
	Funcs []*CodeBuffer
}

func (p *Program) Entry() *CodeBuffer { return p.Funcs[0] }
