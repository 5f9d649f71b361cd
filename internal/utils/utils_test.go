package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRefreshRawIsDeterministic(t *testing.T) {
	a := HashRefreshRaw("token-value")
	b := HashRefreshRaw("token-value")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // sha256 hex
	assert.NotEqual(t, a, HashRefreshRaw("other-token"))
}

func TestRandomHexLengthAndUniqueness(t *testing.T) {
	a, err := RandomHex(48)
	require.NoError(t, err)
	b, err := RandomHex(48)
	require.NoError(t, err)
	assert.Len(t, a, 96)
	assert.NotEqual(t, a, b)
}

func TestNewMovieID(t *testing.T) {
	id, err := NewMovieID()
	require.NoError(t, err)
	assert.Regexp(t, `^mv-[0-9a-f]{8}$`, id)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestPasswordHashCostFallback(t *testing.T) {
	// Misconfigured cost still yields a working hash.
	hash, err := HashPassword("s3cret", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
}
