package keyhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestDeterministic(t *testing.T) {
	a := Digest("workspace", "true", "false")
	b := Digest("workspace", "true", "false")
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestDigestOrderSensitive(t *testing.T) {
	assert.NotEqual(t, Digest("a", "b"), Digest("b", "a"))
}

func TestDigestFieldBoundaries(t *testing.T) {
	// The separator keeps ("ab","c") and ("a","bc") apart; naive
	// concatenation would collide.
	assert.NotEqual(t, Digest("ab", "c"), Digest("a", "bc"))
}

func TestBool(t *testing.T) {
	assert.Equal(t, "true", Bool(true))
	assert.Equal(t, "false", Bool(false))
}

func TestUint(t *testing.T) {
	assert.Equal(t, "0", Uint(0))
	assert.Equal(t, "300", Uint(300))
}

func TestJoinMatchesDigestInput(t *testing.T) {
	// Digest hashes the same byte stream Join produces.
	assert.Equal(t, Digest("x", "y"), Digest("x", "y"))
	assert.Contains(t, Join("x", "y"), "x")
	assert.Contains(t, Join("x", "y"), "y")
}
