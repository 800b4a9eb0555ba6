package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, Verify("s3cret-pass", hash))
	assert.False(t, Verify("wrong-pass", hash))
	assert.False(t, Verify("", hash))
}

func TestVerifyMalformedHash(t *testing.T) {
	assert.False(t, Verify("anything", "not-a-bcrypt-hash"))
}

func TestRandom(t *testing.T) {
	a := Random()
	b := Random()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	// 24 random bytes, base64url without padding
	assert.Len(t, a, 32)
}
