package controllers

import (
	"encoding/json"
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

// UserController handles the admin user-management panel
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Index handles listing all accounts
func (uc *UserController) Index(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	users, err := uc.userService.ListUsers(user.Role)
	if err != nil {
		sendError(w, err)
		return
	}

	sanitized := make([]*models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"users": sanitized})
}

// Update handles changing an account's active flag and/or role
func (uc *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Active *bool   `json:"active"`
		Role   *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	caller := middleware.UserFromCtx(r.Context())
	var target *models.User
	var err error

	if body.Active != nil {
		target, err = uc.userService.SetUserActive(id, *body.Active, caller.ID, caller.Role)
		if err != nil {
			sendError(w, err)
			return
		}
	}
	if body.Role != nil {
		target, err = uc.userService.SetUserRole(id, *body.Role, caller.ID, caller.Role)
		if err != nil {
			sendError(w, err)
			return
		}
	}

	if target == nil {
		sendBadRequest(w, "nothing to update")
		return
	}
	sendJSON(w, http.StatusOK, target.Sanitized())
}

// Delete handles removing an account
func (uc *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	caller := middleware.UserFromCtx(r.Context())
	if err := uc.userService.DeleteUser(id, caller.ID, caller.Role); err != nil {
		sendError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
