package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("hashes password and normalizes username", func(t *testing.T) {
		user, err := NewUser("  Admin ", "secret", RoleAdmin)
		require.NoError(t, err)

		assert.Equal(t, "admin", user.Username)
		assert.NotEqual(t, "secret", user.PasswordHash)
		assert.True(t, user.CheckPassword("secret"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("", "secret", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("admin", "abc", RoleAdmin)
		assert.Error(t, err)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := NewUser("admin", "secret", Role("SUPERADMIN"))
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("admin", "secret", RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("newsecret"))
	assert.True(t, user.CheckPassword("newsecret"))
	assert.False(t, user.CheckPassword("secret"))

	assert.Error(t, user.ChangePassword("ab"))
}
