package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("Admin", "  Admin@Example.com ", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("secret2"))
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "a@b.com", "secret1")
	assert.EqualError(t, err, "Name is required.")

	_, err = NewUser("Admin", "not-an-email", "secret1")
	assert.EqualError(t, err, "Invalid email address.")

	_, err = NewUser("Admin", "a@b.com", "12345")
	assert.EqualError(t, err, "Password must be at least 6 characters.")
}

func TestUser_SetPassword(t *testing.T) {
	u, err := NewUser("Admin", "a@b.com", "secret1")
	require.NoError(t, err)
	old := u.PasswordHash

	require.NoError(t, u.SetPassword("another-secret"))
	assert.NotEqual(t, old, u.PasswordHash)
	assert.True(t, u.CheckPassword("another-secret"))
}
