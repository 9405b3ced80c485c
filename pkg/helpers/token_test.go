package helpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDTokenGenerator(t *testing.T) {
	gen := UUIDTokenGenerator{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := gen.Generate()
		require.NotEmpty(t, token)
		_, err := uuid.Parse(token)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
