package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", GenerateJWTSecret())

	token, err := GenerateToken(uuid.NewString(), "technician")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
