package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	require.True(t, VerifyPassword("secret1", hash))
	require.False(t, VerifyPassword("secret2", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, VerifyPassword("secret1", first))
	require.True(t, VerifyPassword("secret1", second))
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	require.False(t, VerifyPassword("secret1", "not-a-bcrypt-hash"))
}
