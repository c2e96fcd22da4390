package services

import (
	"testing"

	"inkwell/app/models"
	"inkwell/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	service := NewUserService(mock.NewUserRepository())

	t.Run("creates an active author", func(t *testing.T) {
		user, err := service.Register("alice", "alice@example.com", "correct horse")
		require.NoError(t, err)

		assert.Equal(t, 1, user.ID)
		assert.Equal(t, models.RoleAuthor, user.Role)
		assert.True(t, user.Active)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
		assert.True(t, user.CheckPassword("correct horse"))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := service.Register("alice2", "alice@example.com", "another pass")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := service.Register("bob", "bob@example.com", "short")
		assert.True(t, IsValidation(err))
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := service.Register("bob", "not-an-email", "long enough")
		assert.True(t, IsValidation(err))
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := service.Register("", "bob@example.com", "long enough")
		assert.True(t, IsValidation(err))
	})
}

func TestLogin(t *testing.T) {
	service := NewUserService(mock.NewUserRepository())

	user, err := service.Register("alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	t.Run("valid credentials open a session", func(t *testing.T) {
		token, got, err := service.Login("alice@example.com", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)

		resolved, err := service.CurrentUser(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := service.Login("alice@example.com", "wrong horse")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := service.Login("nobody@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("deactivated account", func(t *testing.T) {
		admin, err := service.Register("root", "root@example.com", "admin pass 1")
		require.NoError(t, err)
		admin.Role = models.RoleAdmin
		require.NoError(t, service.userRepo.Update(admin))

		_, err = service.SetUserActive(user.ID, false, admin.ID, models.RoleAdmin)
		require.NoError(t, err)

		_, _, err = service.Login("alice@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestLogout(t *testing.T) {
	service := NewUserService(mock.NewUserRepository())

	_, err := service.Register("alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	token, _, err := service.Login("alice@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, service.Logout(token))

	_, err = service.CurrentUser(token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Unknown tokens are a no-op, not an error.
	assert.NoError(t, service.Logout("no-such-token"))
}

func TestCurrentUser(t *testing.T) {
	service := NewUserService(mock.NewUserRepository())

	user, err := service.Register("alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	token, _, err := service.Login("alice@example.com", "correct horse")
	require.NoError(t, err)

	t.Run("invalid token", func(t *testing.T) {
		_, err := service.CurrentUser("bogus")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("deactivated mid-session", func(t *testing.T) {
		user.Active = false
		require.NoError(t, service.userRepo.Update(user))

		_, err := service.CurrentUser(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestAdminUserManagement(t *testing.T) {
	service := NewUserService(mock.NewUserRepository())

	require.NoError(t, service.EnsureAdmin("root", "root@example.com", "admin pass 1"))
	admin, err := service.userRepo.GetByEmail("root@example.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)

	author, err := service.Register("alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	t.Run("non-admins cannot list users", func(t *testing.T) {
		_, err := service.ListUsers(models.RoleAuthor)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admins list all users", func(t *testing.T) {
		users, err := service.ListUsers(models.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		updated, err := service.SetUserActive(author.ID, false, admin.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, updated.Active)

		updated, err = service.SetUserActive(author.ID, true, admin.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, updated.Active)
	})

	t.Run("promote and demote", func(t *testing.T) {
		updated, err := service.SetUserRole(author.ID, models.RoleAdmin, admin.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, updated.Role)

		updated, err = service.SetUserRole(author.ID, models.RoleAuthor, admin.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAuthor, updated.Role)

		_, err = service.SetUserRole(author.ID, "superuser", admin.ID, models.RoleAdmin)
		assert.True(t, IsValidation(err))
	})

	t.Run("admins cannot target themselves", func(t *testing.T) {
		_, err := service.SetUserActive(admin.ID, false, admin.ID, models.RoleAdmin)
		assert.True(t, IsValidation(err))

		_, err = service.SetUserRole(admin.ID, models.RoleAuthor, admin.ID, models.RoleAdmin)
		assert.True(t, IsValidation(err))

		err = service.DeleteUser(admin.ID, admin.ID, models.RoleAdmin)
		assert.True(t, IsValidation(err))
	})

	t.Run("non-admins cannot manage accounts", func(t *testing.T) {
		_, err := service.SetUserActive(admin.ID, false, author.ID, models.RoleAuthor)
		assert.ErrorIs(t, err, ErrForbidden)

		err = service.DeleteUser(admin.ID, author.ID, models.RoleAuthor)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("delete user", func(t *testing.T) {
		require.NoError(t, service.DeleteUser(author.ID, admin.ID, models.RoleAdmin))

		_, err := service.userRepo.GetByID(author.ID)
		assert.Error(t, err)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := service.SetUserActive(404, true, admin.ID, models.RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEnsureAdmin(t *testing.T) {
	service := NewUserService(mock.NewUserRepository())

	require.NoError(t, service.EnsureAdmin("root", "root@example.com", "admin pass 1"))

	// Idempotent: a second call with the same email changes nothing.
	require.NoError(t, service.EnsureAdmin("other", "root@example.com", "different pass"))

	users, err := service.ListUsers(models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "root", users[0].Username)
	assert.True(t, users[0].CheckPassword("admin pass 1"))
}
