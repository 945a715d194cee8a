package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDEncoder_RoundTrip(t *testing.T) {
	enc, err := NewIDEncoder("a-very-secret-key")
	require.NoError(t, err)

	for _, id := range []int64{0, 1, 42, 12345678, 987654321012} {
		token := enc.EncodeID(id)
		got, err := enc.DecodeID(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestIDEncoder_BlockPadding(t *testing.T) {
	enc, err := NewIDEncoder("a-very-secret-key")
	require.NoError(t, err)

	// hex doubles the byte count: one block for short ids, two once the
	// decimal form fills a whole block
	assert.Len(t, enc.EncodeID(7), 16)
	assert.Len(t, enc.EncodeID(12345678), 32)
}

func TestIDEncoder_DifferentSecrets(t *testing.T) {
	a, err := NewIDEncoder("secret-one")
	require.NoError(t, err)
	b, err := NewIDEncoder("secret-two")
	require.NoError(t, err)

	assert.NotEqual(t, a.EncodeID(5), b.EncodeID(5))
	assert.Equal(t, a.EncodeID(5), a.EncodeID(5))
}

func TestIDEncoder_DecodeRejectsGarbage(t *testing.T) {
	enc, err := NewIDEncoder("a-very-secret-key")
	require.NoError(t, err)

	_, err = enc.DecodeID("not-hex")
	assert.Error(t, err)

	_, err = enc.DecodeID("abcd")
	assert.Error(t, err)

	_, err = enc.DecodeID("")
	assert.Error(t, err)
}

func TestNewIDEncoder_EmptySecret(t *testing.T) {
	_, err := NewIDEncoder("")
	assert.Error(t, err)
}
