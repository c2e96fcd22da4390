package controllers

import (
	"encoding/json"
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index handles listing all comments for a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}

	comments, err := cc.commentService.ListByPost(postID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// Create handles adding a comment (or single-level reply) to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}

	var input services.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	user := middleware.UserFromCtx(r.Context())
	comment, err := cc.commentService.AddComment(postID, input, user.ID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, comment)
}

// Update handles editing a comment's content
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	user := middleware.UserFromCtx(r.Context())
	comment, err := cc.commentService.UpdateComment(id, body.Content, user.ID, user.Role)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, comment)
}

// Delete handles deleting a comment and its direct replies
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())
	if err := cc.commentService.DeleteComment(id, user.ID, user.Role); err != nil {
		sendError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Like toggles the caller's like on a comment
func (cc *CommentController) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())
	liked, err := cc.commentService.ToggleLike(id, user.ID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}
