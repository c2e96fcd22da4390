package repositories

import "inkwell/app/models"

// PostRepository defines the interface for post data access. The slug
// unique index is enforced inside the write transaction; Create and
// Update return ErrConflict when the slug is already taken.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	List(limit, offset int) ([]*models.Post, error)
	ListVisible(limit, offset, viewerID int) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	ListReplies(parentID int) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}

// UserRepository defines the interface for user and session data access.
// The email unique index makes Create and Update return ErrConflict when
// the address is already registered.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]*models.User, error)
	Update(user *models.User) error
	Delete(id int) error

	CreateSession(token string, userID int) error
	GetSession(token string) (int, error)
	DeleteSession(token string) error
}
