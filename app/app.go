// Package app wires configuration, storage and services into one value that is
// built once at startup and handed to the router.
package app

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/database"
	"inkwell/app/i18n"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/app/session"
	"inkwell/app/views"
)

// App holds the long-lived dependencies of the service.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *gorm.DB
	Sessions  *session.Store
	Messages  *i18n.Catalog
	Templates map[string]*template.Template

	Users    *services.UserService
	Articles *services.ArticleService
	Comments *services.CommentService
}

// New opens the database (migrating it) and the session store, and builds the services.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}

	sessions, err := session.Open(session.Options{
		Path:         cfg.Session.Path,
		TTL:          cfg.Session.TTL,
		CookieName:   cfg.Session.CookieName,
		SecureCookie: cfg.Session.SecureCookie,
	}, log.Named("session"))
	if err != nil {
		database.Close(db)
		return nil, err
	}

	templates, err := controllers.LoadTemplates(templateFS(cfg.Blog.TemplatesDir))
	if err != nil {
		sessions.Close()
		database.Close(db)
		return nil, err
	}

	users := repositories.NewGormUserRepository(db)
	articles := repositories.NewGormArticleRepository(db)
	comments := repositories.NewGormCommentRepository(db)

	return &App{
		Config:    cfg,
		Logger:    log,
		DB:        db,
		Sessions:  sessions,
		Messages:  i18n.New(cfg.Blog.Locale),
		Templates: templates,
		Users:     services.NewUserService(users, cfg.Auth.BcryptCost),
		Articles:  services.NewArticleService(articles),
		Comments:  services.NewCommentService(comments, articles, cfg.Blog.EnforceCommentOwnership),
	}, nil
}

// Close releases the session store and the database.
func (a *App) Close() error {
	var errs []error
	if err := a.Sessions.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sessions: %w", err))
	}
	if err := database.Close(a.DB); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}

func templateFS(dir string) fs.FS {
	if dir == "" {
		return views.Templates()
	}
	return os.DirFS(dir)
}
