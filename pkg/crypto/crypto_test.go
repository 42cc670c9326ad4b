package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRandomAlphabet(t *testing.T) {
	s := GenerateRandomAlphabet(9)
	require.Len(t, s, 9)
	require.NotEqual(t, s, GenerateRandomAlphabet(9))
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("super-secret")
	require.NoError(t, err)
	require.NotEqual(t, "super-secret", hashed)

	require.NoError(t, ComparePassword(hashed, "super-secret"))
	require.Error(t, ComparePassword(hashed, "wrong-password"))
}
