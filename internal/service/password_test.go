package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", string(hash))

	assert.NoError(t, hash.Compare("hunter2hunter2"))
	assert.Error(t, hash.Compare("wrong-password"))
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// ParseHash refuses values that are not bcrypt output, so a plaintext
// password can never be treated as a stored hash.
func TestParseHashRejectsPlaintext(t *testing.T) {
	_, err := ParseHash("hunter2hunter2")
	assert.Error(t, err)

	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	parsed, err := ParseHash(string(hash))
	require.NoError(t, err)
	assert.NoError(t, parsed.Compare("hunter2hunter2"))
}
