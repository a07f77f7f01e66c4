package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAcceptKey(t *testing.T) {
	// Given: the sample nonce from RFC 6455 section 1.3
	key := "dGhlIHNhbXBsZSBub25jZQ=="

	// When: deriving the accept key
	accept := GenerateAcceptKey(key)

	// Then: it matches the value the RFC specifies
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", accept)
}

func TestGenerateNewSessionID(t *testing.T) {
	// When: generating two session IDs
	first := GenerateNewSessionID()
	second := GenerateNewSessionID()

	// Then: they are non-empty and unique
	require.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
