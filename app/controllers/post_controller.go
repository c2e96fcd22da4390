package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing posts. Admins see everything; authors also see
// their own drafts and archived posts.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	perPage := 10
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 {
			perPage = pp
		}
	}

	viewerID, viewerRole := viewer(r)
	posts, err := pc.postService.ListPosts(page, perPage, viewerID, viewerRole)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"page":  page,
	})
}

// Show handles displaying a single post by ID
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	viewerID, viewerRole := viewer(r)
	post, err := pc.postService.GetPost(id, viewerID, viewerRole)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// ShowBySlug handles displaying a single post by slug, with its content
// rendered to HTML
func (pc *PostController) ShowBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	viewerID, viewerRole := viewer(r)
	post, html, err := pc.postService.GetPostBySlug(slug, viewerID, viewerRole)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"post": post,
		"html": html,
	})
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	user := middleware.UserFromCtx(r.Context())
	post, err := pc.postService.CreatePost(input, user.ID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Update handles partial updates, including status transitions
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var patch services.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		sendBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	user := middleware.UserFromCtx(r.Context())
	post, err := pc.postService.UpdatePost(id, patch, user.ID, user.Role)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())
	if err := pc.postService.DeletePost(id, user.ID, user.Role); err != nil {
		sendError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Like toggles the caller's like on a post
func (pc *PostController) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())
	liked, err := pc.postService.ToggleLike(id, user.ID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// pathID parses a numeric path variable, reporting a bad request on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		sendBadRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}

// viewer returns the caller's identity, or zero values for anonymous
// requests.
func viewer(r *http.Request) (int, string) {
	if user := middleware.UserFromCtx(r.Context()); user != nil {
		return user.ID, user.Role
	}
	return 0, ""
}
