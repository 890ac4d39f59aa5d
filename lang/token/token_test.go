package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d has no string representation", tok)
	}
}

func TestTokenGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}

func TestKeywords(t *testing.T) {
	for word, tok := range Keywords {
		require.Equal(t, word, tok.String())
	}
}
