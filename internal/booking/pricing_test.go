package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, int64(120000), Total(40000, 3))
	assert.Equal(t, int64(50000), Total(50000, 1))

	// Non-positive inputs yield 0; validation happens upstream.
	assert.Zero(t, Total(40000, 0))
	assert.Zero(t, Total(40000, -2))
	assert.Zero(t, Total(0, 3))
	assert.Zero(t, Total(-1, 3))
}
