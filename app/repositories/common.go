package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
	UserKeyPrefix    = "user:"

	// Index keys: value is the decimal ID of the owning record
	SlugKeyPrefix    = "slug:"
	EmailKeyPrefix   = "email:"
	SessionKeyPrefix = "session:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
	UserSeqKey    = "seq:user"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would violate a unique index
	// (post slug, user email). Callers may retry with a fresh value.
	ErrConflict = errors.New("unique index violation")
)

// docKey builds a document key with a fixed-width numeric component so
// that prefix iteration yields documents in creation (ID) order.
func docKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", prefix, id))
}

// mapCommitErr translates a commit-time transaction conflict into
// ErrConflict so callers can retry with a fresh value.
func mapCommitErr(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return ErrConflict
	}
	return err
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	// Store new ID
	idBytes := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// lookupIndex resolves an index key (slug:, email:, session:) to the ID it
// points at. Returns ErrNotFound when the index entry does not exist.
func lookupIndex(txn *badger.Txn, key string) (int, error) {
	item, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var id int
	err = item.Value(func(val []byte) error {
		parsed, perr := strconv.Atoi(string(val))
		id = parsed
		return perr
	})
	return id, err
}

// setIndex writes an index entry pointing at id.
func setIndex(txn *badger.Txn, key string, id int) error {
	return txn.Set([]byte(key), []byte(strconv.Itoa(id)))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
