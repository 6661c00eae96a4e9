package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("testpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "testpassword", hashed)
}

func TestCheckPasswordHash(t *testing.T) {
	hashed, _ := HashPassword("testpassword")

	assert.True(t, CheckPasswordHash("testpassword", hashed))
	assert.False(t, CheckPasswordHash("wrongpassword", hashed))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("test@example.com"))
	assert.True(t, IsEmail("another.test@sub.domain.co.uk"))

	assert.False(t, IsEmail("invalid-email"))
	assert.False(t, IsEmail("@example.com"))
}
