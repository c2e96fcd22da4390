package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post lifecycle states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)

// Post represents a blog post document.
type Post struct {
	ID          int        `json:"id" validate:"gte=0"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content" validate:"required"`
	Status      string     `json:"status" validate:"required,oneof=draft published archived"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ReadingTime int        `json:"reading_time"`
	AuthorID    int        `json:"author_id" validate:"required,gt=0"`
	Likes       []int      `json:"likes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Comments    []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment represents a comment on a blog post. ParentID is zero for
// top-level comments and points at a top-level comment for replies;
// threading is a single level deep.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	ParentID  int       `json:"parent_id,omitempty" validate:"gte=0"`
	Content   string    `json:"content" validate:"required,min=1,max=1000"`
	Likes     []int     `json:"likes"`
	Edited    bool      `json:"edited"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents an account. PasswordHash is persisted with the document
// but must never leave the API boundary; controllers send Sanitized copies.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=2,max=50"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"password_hash,omitempty" validate:"required"`
	Role         string    `json:"role" validate:"required,oneof=admin author"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
