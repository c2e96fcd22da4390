package services

import (
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments: single-level
// threading, reply cascades and owner/admin authorization.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// CommentInput carries the caller-supplied fields for creating a comment.
type CommentInput struct {
	Content  string `json:"content"`
	ParentID int    `json:"parent_id"`
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment creates a comment on a post. A non-zero ParentID must name a
// top-level comment on the same post; threading is one level deep.
func (s *CommentService) AddComment(postID int, input CommentInput, authorID int) (*models.Comment, error) {
	if err := validateCommentContent(input.Content); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, wrapRepoErr("add comment", err)
	}

	if input.ParentID != 0 {
		parent, err := s.commentRepo.GetByID(input.ParentID)
		if err != nil {
			return nil, wrapRepoErr("add comment", err)
		}
		if parent.PostID != postID {
			return nil, validationErrorf("parent comment belongs to another post")
		}
		if parent.IsReply() {
			return nil, validationErrorf("replies cannot be nested")
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: input.ParentID,
		Content:  input.Content,
	}
	comment.BeforeCreate()

	if err := comment.Validate(); err != nil {
		return nil, validationErrorf("invalid comment: %v", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, wrapRepoErr("add comment", err)
	}
	return comment, nil
}

// ListByPost retrieves all comments for a post
func (s *CommentService) ListByPost(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, wrapRepoErr("list comments", err)
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, wrapRepoErr("list comments", err)
	}
	return comments, nil
}

// UpdateComment replaces a comment's content and marks it edited. Only
// the comment's author or an admin may update.
func (s *CommentService) UpdateComment(id int, content string, callerID int, callerRole string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, wrapRepoErr("update comment", err)
	}
	if !canModifyComment(comment, callerID, callerRole) {
		return nil, ErrForbidden
	}

	comment.Content = content
	comment.Edited = true

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, wrapRepoErr("update comment", err)
	}
	return comment, nil
}

// DeleteComment deletes a comment and cascades deletion of its direct
// replies. Only the comment's author or an admin may delete.
func (s *CommentService) DeleteComment(id int, callerID int, callerRole string) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return wrapRepoErr("delete comment", err)
	}
	if !canModifyComment(comment, callerID, callerRole) {
		return ErrForbidden
	}

	replies, err := s.commentRepo.ListReplies(id)
	if err != nil {
		return fmt.Errorf("failed to get replies: %v", err)
	}
	for _, reply := range replies {
		if err := s.commentRepo.Delete(reply.ID); err != nil {
			return fmt.Errorf("failed to delete reply %d: %v", reply.ID, err)
		}
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return wrapRepoErr("delete comment", err)
	}
	return nil
}

// ToggleLike flips the user's like on a comment, last-write-wins.
func (s *CommentService) ToggleLike(commentID, userID int) (bool, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return false, wrapRepoErr("like comment", err)
	}

	liked := comment.ToggleLike(userID)
	if err := s.commentRepo.Update(comment); err != nil {
		return false, wrapRepoErr("like comment", err)
	}
	return liked, nil
}

func canModifyComment(comment *models.Comment, callerID int, callerRole string) bool {
	return callerRole == models.RoleAdmin || comment.AuthorID == callerID
}

func validateCommentContent(content string) error {
	if content == "" {
		return validationErrorf("content is required")
	}
	if len(content) > 1000 {
		return validationErrorf("content is too long (maximum 1000 characters)")
	}
	return nil
}
