package repositories

import (
	"fmt"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post. The slug index entry is written in the same
// transaction as the document, so two racing creates with the same slug
// cannot both commit; the loser gets ErrConflict.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return mapCommitErr(r.db.Update(func(txn *badger.Txn) error {
		slugKey := SlugKeyPrefix + post.Slug
		if _, err := lookupIndex(txn, slugKey); err == nil {
			return ErrConflict
		} else if err != ErrNotFound {
			return err
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		if err := txn.Set(docKey(PostKeyPrefix, post.ID), data); err != nil {
			return err
		}
		return setIndex(txn, slugKey, post.ID)
	}))
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		return getPost(txn, id, &post)
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post through the slug index
func (r *BadgerPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, SlugKeyPrefix+slug)
		if err != nil {
			return err
		}
		return getPost(txn, id, &post)
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves a paginated list of posts regardless of status
func (r *BadgerPostRepository) List(limit, offset int) ([]*models.Post, error) {
	return r.list(limit, offset, func(*models.Post) bool { return true })
}

// ListVisible retrieves a paginated list of the posts visible to the given
// viewer: published posts, plus the viewer's own unpublished ones.
// viewerID 0 means anonymous.
func (r *BadgerPostRepository) ListVisible(limit, offset, viewerID int) ([]*models.Post, error) {
	return r.list(limit, offset, func(p *models.Post) bool {
		return p.Status == models.StatusPublished || (viewerID != 0 && p.AuthorID == viewerID)
	})
}

func (r *BadgerPostRepository) list(limit, offset int, keep func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		// Document keys carry zero-padded IDs, so iteration is in
		// creation order and pagination pages are stable.
		count := 0
		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			if !keep(&post) {
				continue
			}
			if count < offset {
				count++
				continue
			}
			if len(posts) >= limit {
				break
			}
			posts = append(posts, &post)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates an existing post, moving its slug index entry when the
// slug changed. A slug already owned by another post yields ErrConflict.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return mapCommitErr(r.db.Update(func(txn *badger.Txn) error {
		var existing models.Post
		if err := getPost(txn, post.ID, &existing); err != nil {
			return err
		}

		if existing.Slug != post.Slug {
			newKey := SlugKeyPrefix + post.Slug
			owner, err := lookupIndex(txn, newKey)
			if err == nil && owner != post.ID {
				return ErrConflict
			}
			if err != nil && err != ErrNotFound {
				return err
			}
			if err := txn.Delete([]byte(SlugKeyPrefix + existing.Slug)); err != nil {
				return err
			}
			if err := setIndex(txn, newKey, post.ID); err != nil {
				return err
			}
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(docKey(PostKeyPrefix, post.ID), data)
	}))
}

// Delete deletes a post by ID along with its slug index entry
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var post models.Post
		if err := getPost(txn, id, &post); err != nil {
			return err
		}

		if err := txn.Delete([]byte(SlugKeyPrefix + post.Slug)); err != nil {
			return err
		}
		return txn.Delete(docKey(PostKeyPrefix, id))
	})
}

// getPost loads a post document inside an open transaction.
func getPost(txn *badger.Txn, id int, post *models.Post) error {
	item, err := txn.Get(docKey(PostKeyPrefix, id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}
