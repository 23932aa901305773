package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("s3cret")
	require.NoError(t, err)

	assert.True(t, Verify("s3cret", encoded))
	assert.False(t, Verify("wrong", encoded))
}

func TestVerify_RejectsMalformedEncodings(t *testing.T) {
	assert.False(t, Verify("s3cret", ""))
	assert.False(t, Verify("s3cret", "$argon2id$v=19$m=65536,t=1$short"))
	assert.False(t, Verify("s3cret", "$bcrypt$v=19$m=65536,t=1,p=4$AAAA$BBBB"))
}

func TestHash_ProducesUniqueSalts(t *testing.T) {
	a, err := Hash("s3cret")
	require.NoError(t, err)
	b, err := Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
