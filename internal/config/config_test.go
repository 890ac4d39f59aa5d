package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.False(t, c.OverflowCheck)
	require.Equal(t, "reduce", c.Backend)
	require.False(t, c.NoColor)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PIJAGO_OVERFLOW_CHECK", "true")
	t.Setenv("PIJAGO_BACKEND", "vm")
	t.Setenv("PIJAGO_NO_COLOR", "true")

	c, err := Load()
	require.NoError(t, err)
	require.True(t, c.OverflowCheck)
	require.Equal(t, "vm", c.Backend)
	require.True(t, c.NoColor)
}
