package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens a Badger DB in a per-test temporary directory.
func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetNextID(t *testing.T) {
	db := setupTestDB(t)

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, PostSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 5; i++ {
				id, err := getNextID(txn, PostSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("different sequence keys", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			_, err := getNextID(txn, PostSeqKey)
			assert.NoError(t, err)

			userID, err := getNextID(txn, UserSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, userID, "user sequence should start from 1")
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestDocKey(t *testing.T) {
	assert.Equal(t, "post:0000000002", string(docKey(PostKeyPrefix, 2)))

	// Fixed-width IDs keep byte order aligned with numeric order, which
	// prefix iteration depends on.
	assert.True(t, string(docKey(CommentKeyPrefix, 2)) < string(docKey(CommentKeyPrefix, 10)))
}

func TestMapCommitErr(t *testing.T) {
	assert.Equal(t, ErrConflict, mapCommitErr(badger.ErrConflict))
	assert.Equal(t, ErrNotFound, mapCommitErr(ErrNotFound))
	assert.NoError(t, mapCommitErr(nil))
}

func TestIndexHelpers(t *testing.T) {
	db := setupTestDB(t)

	t.Run("missing entry", func(t *testing.T) {
		err := db.View(func(txn *badger.Txn) error {
			_, err := lookupIndex(txn, SlugKeyPrefix+"nope")
			assert.Equal(t, ErrNotFound, err)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("set and lookup", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			return setIndex(txn, SlugKeyPrefix+"hello-world", 42)
		})
		require.NoError(t, err)

		err = db.View(func(txn *badger.Txn) error {
			id, err := lookupIndex(txn, SlugKeyPrefix+"hello-world")
			assert.NoError(t, err)
			assert.Equal(t, 42, id)
			return nil
		})
		assert.NoError(t, err)
	})
}
