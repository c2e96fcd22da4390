package routes

import (
	"inkwell/app/cache"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Services bundles the wired service layer so callers (the CLI, tests)
// can reach it alongside the router.
type Services struct {
	Posts    *services.PostService
	Comments *services.CommentService
	Users    *services.UserService
}

// Setup wires repositories, services and controllers over the given
// Badger DB and returns the API router. htmlCache may be nil.
func Setup(db *badger.DB, htmlCache *cache.Cache) (*mux.Router, *Services) {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)

	svcs := &Services{
		Posts:    services.NewPostService(postRepo, commentRepo, htmlCache),
		Comments: services.NewCommentService(commentRepo, postRepo),
		Users:    services.NewUserService(userRepo),
	}

	return Router(svcs), svcs
}

// Router builds the API router over an already wired service layer.
func Router(svcs *Services) *mux.Router {
	postController := controllers.NewPostController(svcs.Posts)
	commentController := controllers.NewCommentController(svcs.Comments)
	authController := controllers.NewAuthController(svcs.Users)
	userController := controllers.NewUserController(svcs.Users)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.LoadUser(svcs.Users))

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Auth endpoints
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authController.Register).Methods("POST")
	auth.HandleFunc("/login", authController.Login).Methods("POST")
	auth.HandleFunc("/logout", authController.Logout).Methods("POST")

	// Public post endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/slug/{slug}", postController.ShowBySlug).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")

	// Authenticated post and comment endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth)
	authed.HandleFunc("/posts", postController.Create).Methods("POST")
	authed.HandleFunc("/posts/{id:[0-9]+}", postController.Update).Methods("PUT")
	authed.HandleFunc("/posts/{id:[0-9]+}", postController.Delete).Methods("DELETE")
	authed.HandleFunc("/posts/{id:[0-9]+}/like", postController.Like).Methods("POST")
	authed.HandleFunc("/posts/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	authed.HandleFunc("/comments/{id:[0-9]+}", commentController.Update).Methods("PUT")
	authed.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")
	authed.HandleFunc("/comments/{id:[0-9]+}/like", commentController.Like).Methods("POST")

	// Admin user-management panel
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", userController.Index).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", userController.Update).Methods("PUT")
	admin.HandleFunc("/users/{id:[0-9]+}", userController.Delete).Methods("DELETE")

	return router
}
