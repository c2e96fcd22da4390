package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"inkwell/app/middleware"
	"inkwell/app/services"
)

// AuthController handles registration, login and logout
type AuthController struct {
	userService *services.UserService
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register handles account creation
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	user, err := ac.userService.Register(body.Username, body.Email, body.Password)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, user.Sanitized())
}

// Login verifies credentials and opens a session. The token is returned
// in the body and set as a cookie for browser clients.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	token, user, err := ac.userService.Login(body.Email, body.Password)
	if err != nil {
		sendError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Sanitized(),
	})
}

// Logout closes the caller's session and clears the cookie
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		token = cookie.Value
	} else if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	}
	if token != "" {
		if err := ac.userService.Logout(token); err != nil {
			sendError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:   middleware.SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	w.WriteHeader(http.StatusNoContent)
}
