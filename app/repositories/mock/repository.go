// Package mock provides in-memory repository implementations for tests.
// The unique indexes (post slug, user email) behave like the Badger ones,
// including ErrConflict on violation.
package mock

import (
	"sort"
	"strings"
	"sync"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

type PostRepository struct {
	posts  map[int]*models.Post
	slugs  map[string]int
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

type UserRepository struct {
	users    map[int]*models.User
	emails   map[string]int
	sessions map[string]int
	nextID   int
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		slugs:  make(map[string]int),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:    make(map[int]*models.User),
		emails:   make(map[string]int),
		sessions: make(map[string]int),
		nextID:   1,
	}
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, taken := m.slugs[post.Slug]; taken {
		return repositories.ErrConflict
	}
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	m.slugs[post.Slug] = post.ID
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	id, exists := m.slugs[slug]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return m.posts[id], nil
}

func (m *PostRepository) List(limit, offset int) ([]*models.Post, error) {
	return m.list(limit, offset, func(*models.Post) bool { return true })
}

func (m *PostRepository) ListVisible(limit, offset, viewerID int) ([]*models.Post, error) {
	return m.list(limit, offset, func(p *models.Post) bool {
		return p.Status == models.StatusPublished || (viewerID != 0 && p.AuthorID == viewerID)
	})
}

func (m *PostRepository) list(limit, offset int, keep func(*models.Post) bool) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var all []*models.Post
	for _, post := range m.posts {
		if keep(post) {
			all = append(all, post)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	var posts []*models.Post
	for i, post := range all {
		if i < offset {
			continue
		}
		if len(posts) >= limit {
			break
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	if existing.Slug != post.Slug {
		if owner, taken := m.slugs[post.Slug]; taken && owner != post.ID {
			return repositories.ErrConflict
		}
		delete(m.slugs, existing.Slug)
		m.slugs[post.Slug] = post.ID
	}
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}
	delete(m.slugs, post.Slug)
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	return m.list(func(c *models.Comment) bool { return c.PostID == postID })
}

func (m *CommentRepository) ListReplies(parentID int) ([]*models.Comment, error) {
	return m.list(func(c *models.Comment) bool { return c.ParentID == parentID })
}

func (m *CommentRepository) list(keep func(*models.Comment) bool) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if keep(comment) {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	email := strings.ToLower(user.Email)
	if _, taken := m.emails[email]; taken {
		return repositories.ErrConflict
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	m.emails[email] = user.ID
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	id, exists := m.emails[strings.ToLower(email)]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return m.users[id], nil
}

func (m *UserRepository) List() ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var users []*models.User
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.users[user.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	oldEmail := strings.ToLower(existing.Email)
	newEmail := strings.ToLower(user.Email)
	if oldEmail != newEmail {
		if owner, taken := m.emails[newEmail]; taken && owner != user.ID {
			return repositories.ErrConflict
		}
		delete(m.emails, oldEmail)
		m.emails[newEmail] = user.ID
	}
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user, exists := m.users[id]
	if !exists {
		return repositories.ErrNotFound
	}
	delete(m.emails, strings.ToLower(user.Email))
	delete(m.users, id)
	return nil
}

func (m *UserRepository) CreateSession(token string, userID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessions[token] = userID
	return nil
}

func (m *UserRepository) GetSession(token string) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	userID, exists := m.sessions[token]
	if !exists {
		return 0, repositories.ErrNotFound
	}
	return userID, nil
}

func (m *UserRepository) DeleteSession(token string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.sessions, token)
	return nil
}
