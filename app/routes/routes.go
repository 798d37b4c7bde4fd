// Package routes builds the HTTP router of the blog.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"inkwell/app"
	"inkwell/app/controllers"
	"inkwell/app/metrics"
	"inkwell/app/middleware"
)

// SetupRoutes defines the application's routes and returns the root handler.
func SetupRoutes(a *app.App) http.Handler {
	log := a.Logger.Named("http")
	router := mux.NewRouter()

	base := controllers.NewBase(a.Templates, a.Sessions, a.Users, a.Messages, log)
	pageController := controllers.NewPageController(base)
	authController := controllers.NewAuthController(base)
	articleController := controllers.NewArticleController(base, a.Articles, a.Comments)
	commentController := controllers.NewCommentController(base, a.Comments, a.Articles)

	router.NotFoundHandler = http.HandlerFunc(base.NotFound)

	// Operational endpoints stay outside the session layer
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", health(a)).Methods("GET")

	web := router.PathPrefix("/").Subrouter()
	web.Use(middleware.Metrics)
	web.Use(middleware.Sessions(a.Sessions))
	login := middleware.RequireLogin(a.Sessions, a.Messages, log)
	protect := func(h http.HandlerFunc) http.Handler { return login(h) }

	// Article update and delete are open unless configured otherwise
	edits := func(h http.HandlerFunc) http.Handler { return h }
	if a.Config.Blog.RequireLoginForArticleEdits {
		edits = protect
	}

	web.HandleFunc("/", pageController.Home).Methods("GET")
	web.HandleFunc("/home", pageController.Home).Methods("GET")
	web.HandleFunc("/about", pageController.About).Methods("GET")

	web.HandleFunc("/register", authController.RegisterForm).Methods("GET")
	web.HandleFunc("/register", authController.Register).Methods("POST")
	web.HandleFunc("/login", authController.LoginForm).Methods("GET")
	web.HandleFunc("/login", authController.Login).Methods("POST")
	web.Handle("/logout", protect(authController.Logout)).Methods("GET")

	web.Handle("/create-article", protect(articleController.New)).Methods("GET")
	web.Handle("/create-article", protect(articleController.Create)).Methods("POST")

	posts := web.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", articleController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", articleController.Show).Methods("GET")
	posts.Handle("/{id:[0-9]+}/update", edits(articleController.Edit)).Methods("GET")
	posts.Handle("/{id:[0-9]+}/update", edits(articleController.Update)).Methods("POST")
	posts.Handle("/{id:[0-9]+}/delete", edits(articleController.Delete)).Methods("GET")

	posts.Handle("/{article_id:[0-9]+}/comment", protect(commentController.Create)).Methods("POST")
	posts.Handle("/{article_id:[0-9]+}/comment/{comment_id:[0-9]+}/edit", protect(commentController.EditForm)).Methods("GET")
	posts.Handle("/{article_id:[0-9]+}/comment/{comment_id:[0-9]+}/edit", protect(commentController.Edit)).Methods("POST")
	posts.Handle("/{article_id:[0-9]+}/comment/{comment_id:[0-9]+}/delete", protect(commentController.Delete)).Methods("POST")

	return middleware.RequestID(middleware.Logger(log)(middleware.Recoverer(log)(router)))
}

// health reports whether the database answers.
func health(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := a.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			a.Logger.Warn("health check failed", zap.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
