package lir

// Shift adjusts every free variable's de Bruijn index by +1 (up) or -1
// (down), used when a term is moved across an Abs binder. cutoff is the
// index at or above which a Var counts as free with respect to the binder
// being crossed; it is incremented by one every time Shift descends through
// an Abs.
func (t *Term) Shift(up bool, cutoff int) {
	switch k := t.Kind.(type) {
	case *Lit, *PrimFn:
		// no variables to shift

	case *Var:
		if k.Index >= cutoff {
			if up {
				k.Index++
			} else {
				k.Index--
			}
		}

	case *Abs:
		k.Body.Shift(up, cutoff+1)

	case *UnaryOp:
		k.X.Shift(up, cutoff)

	case *BinaryOp:
		k.L.Shift(up, cutoff)
		k.R.Shift(up, cutoff)

	case *App:
		k.Fn.Shift(up, cutoff)
		k.Arg.Shift(up, cutoff)

	case *Cond:
		k.Cond.Shift(up, cutoff)
		k.Then.Shift(up, cutoff)
		k.Else.Shift(up, cutoff)

	case *Fix:
		k.Body.Shift(up, cutoff)

	default:
		panic("lir: unknown TermKind in Shift")
	}
}

// Replace substitutes a clone of subs for every Var(index) in t. Crossing an
// Abs shifts subs up before recursing at index+1 (so subs' own free
// variables stay correctly scoped one level deeper) and shifts it back down
// on the way out. This is the standard capture-avoiding substitution used by
// beta reduction.
func (t *Term) Replace(index int, subs *Term) {
	switch k := t.Kind.(type) {
	case *Lit, *PrimFn:
		// no variables to replace

	case *Var:
		if k.Index == index {
			t.Kind = Clone(subs).Kind
		}

	case *Abs:
		subs.Shift(true, 0)
		k.Body.Replace(index+1, subs)
		subs.Shift(false, 0)

	case *UnaryOp:
		k.X.Replace(index, subs)

	case *BinaryOp:
		k.L.Replace(index, subs)
		k.R.Replace(index, subs)

	case *App:
		k.Fn.Replace(index, subs)
		k.Arg.Replace(index, subs)

	case *Cond:
		k.Cond.Replace(index, subs)
		k.Then.Replace(index, subs)
		k.Else.Replace(index, subs)

	case *Fix:
		k.Body.Replace(index, subs)

	default:
		panic("lir: unknown TermKind in Replace")
	}
}

// Clone makes a deep copy of t, so that a substitution shared across
// multiple Var occurrences can be shifted independently at each site.
func Clone(t *Term) *Term {
	switch k := t.Kind.(type) {
	case *Var:
		return term(&Var{Index: k.Index})
	case *Lit:
		return term(&Lit{Kind: k.Kind, Val: k.Val})
	case *PrimFn:
		return term(&PrimFn{})
	case *Abs:
		return term(&Abs{Body: Clone(k.Body)})
	case *UnaryOp:
		return term(&UnaryOp{Op: k.Op, X: Clone(k.X)})
	case *BinaryOp:
		return term(&BinaryOp{Op: k.Op, L: Clone(k.L), R: Clone(k.R)})
	case *App:
		return term(&App{Fn: Clone(k.Fn), Arg: Clone(k.Arg)})
	case *Cond:
		return term(&Cond{Cond: Clone(k.Cond), Then: Clone(k.Then), Else: Clone(k.Else)})
	case *Fix:
		return term(&Fix{Body: Clone(k.Body)})
	default:
		panic("lir: unknown TermKind in Clone")
	}
}
