package types

import (
	"testing"

	"github.com/pijago/pijago/lang/token"
	"github.com/stretchr/testify/require"
)

func TestContextMintsDistinctIds(t *testing.T) {
	c := NewContext()
	id1 := c.NewLocalId(token.Location{Start: 0, End: 1})
	id2 := c.NewLocalId(token.Location{Start: 1, End: 2})
	require.NotEqual(t, id1, id2)

	t1 := c.NewTermId(token.Location{Start: 2, End: 3})
	t2 := c.NewTermId(token.Location{Start: 3, End: 4})
	require.NotEqual(t, t1, t2)
}

func TestContextTypeRoundTrip(t *testing.T) {
	c := NewContext()
	id := c.NewLocalId(token.NoLocation)
	c.SetLocalType(id, IntTy)

	ty, ok := c.LocalType(id)
	require.True(t, ok)
	require.True(t, ty.IsInt())
}

func TestContextEachLocalTypeRewrites(t *testing.T) {
	c := NewContext()
	id := c.NewLocalId(token.NoLocation)
	c.SetLocalType(id, Var(0))

	c.EachLocalType(func(id LocalId, ty Ty) Ty {
		if ty.IsVar() && ty.VarIndex() == 0 {
			return BoolTy
		}
		return ty
	})

	ty, ok := c.LocalType(id)
	require.True(t, ok)
	require.True(t, ty.IsBool())
}

func TestLocalEqual(t *testing.T) {
	require.True(t, NewName("x").Equal(NewName("x")))
	require.False(t, NewName("x").Equal(NewName("y")))
	require.False(t, NewWildcard().Equal(NewWildcard()))
	require.True(t, Main.Equal(Main))
}
