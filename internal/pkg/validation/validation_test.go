package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("password123!"))
	assert.False(t, IsValidPassword("short1!"))
	assert.False(t, IsValidPassword("nodigits!!"))
	assert.False(t, IsValidPassword("nospecial123"))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("4Nd1mYvHjKq3sBvXp2tWuQ8rZcE5fGhJ7kLmNpRsTuVw"))
	// Base58 excludes 0, O, I and l.
	assert.False(t, IsValidAddress("0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl"))
	assert.False(t, IsValidAddress("tooshort"))
	assert.False(t, IsValidAddress(""))
}

func TestIsValidFullname(t *testing.T) {
	assert.True(t, IsValidFullname("Test User"))
	assert.False(t, IsValidFullname(""))
}
