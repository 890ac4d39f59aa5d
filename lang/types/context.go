package types

import (
	"github.com/dolthub/swiss"
	"github.com/pijago/pijago/lang/token"
)

// LocalId identifies a single binding occurrence (a `let`, a function
// parameter, a function name) across the HIR. It is assigned once, by
// Context.NewLocalId, and never reused.
type LocalId uint32

// TermId identifies a single HIR expression node, for attaching inferred
// types and source locations independently of the node's place in the tree.
type TermId uint32

// TypeInfo records the inferred type of an id together with the source span
// it came from, for use in diagnostics.
type TypeInfo struct {
	Ty  Ty
	Loc token.Location
}

// Context is the arena behind the whole HIR/type-checking pipeline: it
// mints LocalId/TermId values and is the single place those ids' locations
// and inferred types are recorded. Nothing deletes from it. Locations are
// recorded when ids are minted; hir.Lower records the type of every local
// and of some terms, the type-checker records the type of every other term
// it walks, and its final pass rewrites every recorded Ty with the solved
// substitution.
type Context struct {
	nextLocal LocalId
	nextTerm  TermId
	nextVar   int

	localLocs  *swiss.Map[LocalId, token.Location]
	localTypes *swiss.Map[LocalId, TypeInfo]
	termLocs   *swiss.Map[TermId, token.Location]
	termTypes  *swiss.Map[TermId, TypeInfo]
}

// NewContext returns an empty Context ready to mint ids.
func NewContext() *Context {
	return &Context{
		localLocs:  swiss.NewMap[LocalId, token.Location](64),
		localTypes: swiss.NewMap[LocalId, TypeInfo](64),
		termLocs:   swiss.NewMap[TermId, token.Location](64),
		termTypes:  swiss.NewMap[TermId, TypeInfo](64),
	}
}

// NewLocalId mints a fresh LocalId and records its source location.
func (c *Context) NewLocalId(loc token.Location) LocalId {
	id := c.nextLocal
	c.nextLocal++
	c.localLocs.Put(id, loc)
	return id
}

// NewTermId mints a fresh TermId and records its source location.
func (c *Context) NewTermId(loc token.Location) TermId {
	id := c.nextTerm
	c.nextTerm++
	c.termLocs.Put(id, loc)
	return id
}

// NewTy mints a fresh unification variable.
func (c *Context) NewTy() Ty {
	v := Var(c.nextVar)
	c.nextVar++
	return v
}

func (c *Context) LocalLoc(id LocalId) token.Location {
	loc, _ := c.localLocs.Get(id)
	return loc
}

func (c *Context) TermLoc(id TermId) token.Location {
	loc, _ := c.termLocs.Get(id)
	return loc
}

// SetLocalType records (or overwrites) the type of a local binding. hir.Lower
// calls it as each local is bound, and the type-checker's final pass calls
// it again, through EachLocalType, to store the solved type.
func (c *Context) SetLocalType(id LocalId, ty Ty) {
	c.localTypes.Put(id, TypeInfo{Ty: ty, Loc: c.LocalLoc(id)})
}

// SetTermType records the inferred type of a term.
func (c *Context) SetTermType(id TermId, ty Ty) {
	c.termTypes.Put(id, TypeInfo{Ty: ty, Loc: c.TermLoc(id)})
}

func (c *Context) LocalType(id LocalId) (Ty, bool) {
	info, ok := c.localTypes.Get(id)
	return info.Ty, ok
}

func (c *Context) TermType(id TermId) (Ty, bool) {
	info, ok := c.termTypes.Get(id)
	return info.Ty, ok
}

// EachLocalType calls f once for every local id with a recorded type,
// letting the caller rewrite it in place (used by the type-checker's final
// substitution pass, which walks every recorded type and applies the
// solved substitution to it).
func (c *Context) EachLocalType(f func(id LocalId, ty Ty) Ty) {
	var updates []struct {
		id LocalId
		ty Ty
	}
	c.localTypes.Iter(func(id LocalId, info TypeInfo) bool {
		updates = append(updates, struct {
			id LocalId
			ty Ty
		}{id, f(id, info.Ty)})
		return false
	})
	for _, u := range updates {
		c.SetLocalType(u.id, u.ty)
	}
}

// EachTermType calls f once for every term id with a recorded type, letting
// the caller rewrite it in place.
func (c *Context) EachTermType(f func(id TermId, ty Ty) Ty) {
	var updates []struct {
		id TermId
		ty Ty
	}
	c.termTypes.Iter(func(id TermId, info TypeInfo) bool {
		updates = append(updates, struct {
			id TermId
			ty Ty
		}{id, f(id, info.Ty)})
		return false
	})
	for _, u := range updates {
		c.SetTermType(u.id, u.ty)
	}
}
