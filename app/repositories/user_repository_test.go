package repositories

import (
	"testing"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    email,
		Active:   true,
	}
	require.NoError(t, user.SetPassword("test password 1"))
	user.BeforeCreate()
	return user
}

func TestBadgerUserRepository(t *testing.T) {
	repo := NewBadgerUserRepository(setupTestDB(t))

	alice := testUser(t, "alice", "alice@example.com")
	bob := testUser(t, "bob", "bob@example.com")

	require.NoError(t, repo.Create(alice))
	require.NoError(t, repo.Create(bob))

	t.Run("create assigns sequential IDs", func(t *testing.T) {
		assert.Equal(t, 1, alice.ID)
		assert.Equal(t, 2, bob.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := testUser(t, "mallory", "alice@example.com")
		assert.Equal(t, ErrConflict, repo.Create(dup))
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		user, err := repo.GetByEmail("ALICE@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
	})

	t.Run("get by ID keeps the password hash", func(t *testing.T) {
		user, err := repo.GetByID(1)
		require.NoError(t, err)
		assert.True(t, user.CheckPassword("test password 1"))
	})

	t.Run("list", func(t *testing.T) {
		users, err := repo.List()
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("update moves the email index", func(t *testing.T) {
		bob.Email = "robert@example.com"
		require.NoError(t, repo.Update(bob))

		_, err := repo.GetByEmail("bob@example.com")
		assert.Equal(t, ErrNotFound, err)

		moved, err := repo.GetByEmail("robert@example.com")
		require.NoError(t, err)
		assert.Equal(t, 2, moved.ID)
	})

	t.Run("update to a taken email conflicts", func(t *testing.T) {
		bob.Email = "alice@example.com"
		assert.Equal(t, ErrConflict, repo.Update(bob))
		bob.Email = "robert@example.com"
	})

	t.Run("delete removes the email index", func(t *testing.T) {
		require.NoError(t, repo.Delete(2))

		_, err := repo.GetByID(2)
		assert.Equal(t, ErrNotFound, err)
		_, err = repo.GetByEmail("robert@example.com")
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestBadgerUserRepositorySessions(t *testing.T) {
	repo := NewBadgerUserRepository(setupTestDB(t))

	user := testUser(t, "carol", "carol@example.com")
	require.NoError(t, repo.Create(user))

	t.Run("create and resolve", func(t *testing.T) {
		require.NoError(t, repo.CreateSession("token-1", user.ID))

		userID, err := repo.GetSession("token-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := repo.GetSession("nope")
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteSession("token-1"))
		_, err := repo.GetSession("token-1")
		assert.Equal(t, ErrNotFound, err)
	})
}
