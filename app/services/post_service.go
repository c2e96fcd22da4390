package services

import (
	"errors"
	"fmt"
	"time"

	"inkwell/app/cache"
	"inkwell/app/markdown"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostService handles business logic for blog posts: slug assignment,
// publication state, reading-time derivation and owner/admin authorization.
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	htmlCache   *cache.Cache
}

// PostInput carries the caller-supplied fields for creating a post.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Slug    string `json:"slug"`
	Status  string `json:"status"`
}

// PostPatch carries the caller-supplied fields for a partial update.
// Nil pointers mean "leave unchanged".
type PostPatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// NewPostService creates a new PostService. htmlCache may be nil, in which
// case rendered HTML is recomputed on every read.
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, htmlCache *cache.Cache) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		htmlCache:   htmlCache,
	}
}

// CreatePost creates a new blog post. The author becomes the immutable
// owner, the slug is derived from the title (or a caller-supplied slug,
// normalized) and made unique, and the reading time is computed from the
// content. Status defaults to draft.
func (s *PostService) CreatePost(input PostInput, authorID int) (*models.Post, error) {
	if err := validatePostInput(input.Title, input.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: authorID,
	}
	post.BeforeCreate()

	if input.Status != "" {
		if err := post.SetStatus(input.Status); err != nil {
			return nil, validationErrorf("%v", err)
		}
	}

	base := models.Slugify(input.Title)
	if input.Slug != "" {
		base = models.Slugify(input.Slug)
	}
	slug, err := s.resolveSlug(base, 0)
	if err != nil {
		return nil, err
	}
	post.Slug = slug

	post.RecalculateReadingTime()

	if err := post.Validate(); err != nil {
		return nil, validationErrorf("invalid post: %v", err)
	}

	err = s.postRepo.Create(post)
	if errors.Is(err, repositories.ErrConflict) {
		// Lost the race to another create that picked the same slug
		// between our uniqueness check and the commit. Search again and
		// retry the write once.
		slug, rerr := s.resolveSlug(base, 0)
		if rerr != nil {
			return nil, rerr
		}
		post.Slug = slug
		err = s.postRepo.Create(post)
	}
	if err != nil {
		return nil, wrapRepoErr("create post", err)
	}
	return post, nil
}

// GetPost retrieves a post by ID with its comments. Visibility follows
// the same rule as the slug path: unpublished posts resolve to
// ErrNotFound for everyone but their author and admins.
func (s *PostService) GetPost(id, viewerID int, viewerRole string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, wrapRepoErr("get post", err)
	}

	if post.Status != models.StatusPublished && !canModify(post, viewerID, viewerRole) {
		return nil, ErrNotFound
	}

	if err := s.attachComments(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostBySlug retrieves a post by slug along with its rendered HTML.
// Unpublished posts are visible only to their author and admins; everyone
// else gets ErrNotFound rather than a hint that the slug exists.
func (s *PostService) GetPostBySlug(slug string, viewerID int, viewerRole string) (*models.Post, string, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, "", wrapRepoErr("get post by slug", err)
	}

	if post.Status != models.StatusPublished && !canModify(post, viewerID, viewerRole) {
		return nil, "", ErrNotFound
	}

	var html string
	if post.Status == models.StatusPublished && s.htmlCache != nil {
		if cached, ok := s.htmlCache.Get(post.Slug); ok {
			html = cached
		} else {
			html = markdown.Render(post.Content)
			s.htmlCache.Set(post.Slug, html)
		}
	} else {
		html = markdown.Render(post.Content)
	}

	if err := s.attachComments(post); err != nil {
		return nil, "", err
	}
	return post, html, nil
}

// ListPosts retrieves a paginated list of posts. Admins see everything;
// other viewers see published posts plus their own drafts and archived
// posts. viewerID 0 means anonymous.
func (s *PostService) ListPosts(page, perPage, viewerID int, viewerRole string) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	offset := (page - 1) * perPage

	var posts []*models.Post
	var err error
	if viewerRole == models.RoleAdmin {
		posts, err = s.postRepo.List(perPage, offset)
	} else {
		posts, err = s.postRepo.ListVisible(perPage, offset, viewerID)
	}
	if err != nil {
		return nil, wrapRepoErr("list posts", err)
	}

	for _, post := range posts {
		if err := s.attachComments(post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// UpdatePost applies a partial update on behalf of the caller. Only the
// post's owner or an admin may update; the author reference never changes.
// A title change regenerates the slug only when no slug is currently set,
// so an assigned slug is never silently overwritten.
func (s *PostService) UpdatePost(id int, patch PostPatch, callerID int, callerRole string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, wrapRepoErr("update post", err)
	}
	if !canModify(post, callerID, callerRole) {
		return nil, ErrForbidden
	}

	oldSlug := post.Slug
	slugRegenerated := false

	if patch.Title != nil && *patch.Title != post.Title {
		post.Title = *patch.Title
		if post.Slug == "" {
			slug, err := s.resolveSlug(models.Slugify(post.Title), post.ID)
			if err != nil {
				return nil, err
			}
			post.Slug = slug
			slugRegenerated = true
		}
	}

	if patch.Content != nil && *patch.Content != post.Content {
		post.Content = *patch.Content
		post.RecalculateReadingTime()
	}

	if patch.Status != nil && *patch.Status != post.Status {
		if err := post.SetStatus(*patch.Status); err != nil {
			return nil, validationErrorf("%v", err)
		}
	}

	post.UpdatedAt = time.Now()

	if err := validatePostInput(post.Title, post.Content); err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, validationErrorf("invalid post: %v", err)
	}

	err = s.postRepo.Update(post)
	if errors.Is(err, repositories.ErrConflict) && slugRegenerated {
		slug, rerr := s.resolveSlug(models.Slugify(post.Title), post.ID)
		if rerr != nil {
			return nil, rerr
		}
		post.Slug = slug
		err = s.postRepo.Update(post)
	}
	if err != nil {
		return nil, wrapRepoErr("update post", err)
	}

	s.invalidateHTML(oldSlug, post.Slug)
	return post, nil
}

// DeletePost deletes a post and cascades deletion of all its comments.
// Only the post's owner or an admin may delete.
func (s *PostService) DeletePost(id int, callerID int, callerRole string) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return wrapRepoErr("delete post", err)
	}
	if !canModify(post, callerID, callerRole) {
		return ErrForbidden
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return fmt.Errorf("failed to get comments: %v", err)
	}
	for _, comment := range comments {
		if err := s.commentRepo.Delete(comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment %d: %v", comment.ID, err)
		}
	}

	if err := s.postRepo.Delete(id); err != nil {
		return wrapRepoErr("delete post", err)
	}

	s.invalidateHTML(post.Slug, "")
	return nil
}

// ToggleLike flips the user's like on a post. Concurrent toggles are
// last-write-wins on the membership set.
func (s *PostService) ToggleLike(postID, userID int) (bool, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return false, wrapRepoErr("like post", err)
	}

	liked := post.ToggleLike(userID)
	if err := s.postRepo.Update(post); err != nil {
		return false, wrapRepoErr("like post", err)
	}
	return liked, nil
}

// resolveSlug finds a collision-free slug starting from base, appending
// -2, -3, ... until no other post holds the candidate. selfID allows a
// no-op update to keep its own slug. The check-then-write race this
// leaves open is backstopped by the repository's slug index.
func (s *PostService) resolveSlug(base string, selfID int) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		existing, err := s.postRepo.GetBySlug(candidate)
		if errors.Is(err, repositories.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if existing.ID == selfID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *PostService) attachComments(post *models.Post) error {
	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return fmt.Errorf("failed to get comments for post %d: %v", post.ID, err)
	}
	post.Comments = comments
	return nil
}

func (s *PostService) invalidateHTML(slugs ...string) {
	if s.htmlCache == nil {
		return
	}
	for _, slug := range slugs {
		if slug != "" {
			s.htmlCache.Delete(slug)
		}
	}
}

// canModify reports whether the caller may mutate the post.
func canModify(post *models.Post, callerID int, callerRole string) bool {
	return callerRole == models.RoleAdmin || post.AuthorID == callerID
}

// validatePostInput validates the caller-controlled post fields
func validatePostInput(title, content string) error {
	if title == "" {
		return validationErrorf("title is required")
	}
	if len(title) > 200 {
		return validationErrorf("title is too long (maximum 200 characters)")
	}
	if content == "" {
		return validationErrorf("content is required")
	}
	return nil
}

// wrapRepoErr maps storage-layer sentinels onto the service error kinds.
func wrapRepoErr(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrConflict):
		return ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
