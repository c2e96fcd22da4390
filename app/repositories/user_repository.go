package repositories

import (
	"fmt"
	"strings"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user. The email index entry is written in the same
// transaction, so a duplicate address yields ErrConflict.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		emailKey := EmailKeyPrefix + normalizeEmail(user.Email)
		if _, err := lookupIndex(txn, emailKey); err == nil {
			return ErrConflict
		} else if err != ErrNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}

		key := docKey(UserKeyPrefix, user.ID)
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return setIndex(txn, emailKey, user.ID)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		return getUser(txn, id, &user)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user through the email index
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, EmailKeyPrefix+normalizeEmail(email))
		if err != nil {
			return err
		}
		return getUser(txn, id, &user)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users in ID order
func (r *BadgerUserRepository) List() ([]*models.User, error) {
	var users []*models.User

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var user models.User
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &user)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal user: %v", err)
			}
			users = append(users, &user)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates an existing user, moving the email index entry when the
// address changed
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.User
		if err := getUser(txn, user.ID, &existing); err != nil {
			return err
		}

		oldEmail := normalizeEmail(existing.Email)
		newEmail := normalizeEmail(user.Email)
		if oldEmail != newEmail {
			newKey := EmailKeyPrefix + newEmail
			owner, err := lookupIndex(txn, newKey)
			if err == nil && owner != user.ID {
				return ErrConflict
			}
			if err != nil && err != ErrNotFound {
				return err
			}
			if err := txn.Delete([]byte(EmailKeyPrefix + oldEmail)); err != nil {
				return err
			}
			if err := setIndex(txn, newKey, user.ID); err != nil {
				return err
			}
		}

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		key := docKey(UserKeyPrefix, user.ID)
		return txn.Set(key, data)
	})
}

// Delete deletes a user by ID along with its email index entry
func (r *BadgerUserRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var user models.User
		if err := getUser(txn, id, &user); err != nil {
			return err
		}

		if err := txn.Delete([]byte(EmailKeyPrefix + normalizeEmail(user.Email))); err != nil {
			return err
		}
		return txn.Delete(docKey(UserKeyPrefix, id))
	})
}

// CreateSession stores a session token for a user
func (r *BadgerUserRepository) CreateSession(token string, userID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return setIndex(txn, SessionKeyPrefix+token, userID)
	})
}

// GetSession resolves a session token to a user ID
func (r *BadgerUserRepository) GetSession(token string) (int, error) {
	var userID int
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, SessionKeyPrefix+token)
		userID = id
		return err
	})
	return userID, err
}

// DeleteSession removes a session token
func (r *BadgerUserRepository) DeleteSession(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(SessionKeyPrefix + token))
	})
}

// getUser loads a user document inside an open transaction.
func getUser(txn *badger.Txn, id int, user *models.User) error {
	key := docKey(UserKeyPrefix, id)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, user)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
