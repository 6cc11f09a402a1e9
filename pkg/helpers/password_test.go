package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyPassword(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("secret1")
	req.NoError(err)

	ok, err := VerifyPassword(hash, "secret1")
	req.NoError(err)
	req.True(ok)

	// Mismatch is a clean false, not an error.
	ok, err = VerifyPassword(hash, "wrong")
	req.NoError(err)
	req.False(ok)

	// A malformed stored hash is an error, never a mismatch.
	ok, err = VerifyPassword("not-a-bcrypt-hash", "secret1")
	req.Error(err)
	req.False(ok)
}
