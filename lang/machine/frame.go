package machine

// closure is a heap-allocated function value: a pointer (index) into the
// program's function table plus the words it captured at PushClosure time.
// The heap is append-only; closures live for the whole run, per spec.
type closure struct {
	fn       int
	upvalues []int64
}

// heap is the append-only arena of closures. A closure's "pointer" is
// simply its index, standing in for the bit-cast heap pointer described by
// the spec; Go has no honest way to bit-cast a real pointer into an i64
// word, and an arena index plays the identical role.
type heap struct {
	closures []*closure
}

func (h *heap) alloc(c *closure) int64 {
	h.closures = append(h.closures, c)
	return int64(len(h.closures) - 1)
}

func (h *heap) get(ptr int64) *closure {
	return h.closures[ptr]
}

// frame records one call's worth of execution state: which closure is
// running (nil for the top-level chunk, which nothing ever Calls into),
// its code and program counter, and the base index into the operand stack
// its locals are relative to.
type frame struct {
	closure *closure
	code    []byte
	pc      int
	base    int
}
