package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"inkwell/app/auth"
	"inkwell/app/i18n"
	"inkwell/app/middleware"
	"inkwell/app/services"
	"inkwell/app/session"
)

// Flash categories.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashDanger  = "danger"
)

// pages maps template names to their page file; each is parsed together with layout.html.
var pages = map[string]string{
	"index":          "index.html",
	"about":          "about.html",
	"register":       "register.html",
	"login":          "login.html",
	"posts":          "posts.html",
	"post_detail":    "post_detail.html",
	"post_update":    "post_update.html",
	"create_article": "create_article.html",
	"edit_comment":   "edit_comment.html",
}

// LoadTemplates parses every page from fsys.
func LoadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		tmpl, err := template.New(name).ParseFS(fsys, "layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// PageData is passed to every template.
type PageData struct {
	Title         string
	Lang          string
	LoggedIn      bool
	CurrentUserID uint
	Username      string
	Flashes       []session.Flash
	Data          any
}

// Base holds what every controller needs to render pages and answer errors.
type Base struct {
	templates map[string]*template.Template
	sessions  *session.Store
	users     *services.UserService
	messages  *i18n.Catalog
	log       *zap.Logger
}

// NewBase creates the shared controller state
func NewBase(templates map[string]*template.Template, sessions *session.Store, users *services.UserService, messages *i18n.Catalog, log *zap.Logger) *Base {
	return &Base{
		templates: templates,
		sessions:  sessions,
		users:     users,
		messages:  messages,
		log:       log,
	}
}

// render executes the named page inside the layout. Pending flashes are
// consumed and the session saved before anything is written.
func (b *Base) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	tmpl, ok := b.templates[name]
	if !ok {
		b.serverError(w, r, fmt.Errorf("template %q not loaded", name), i18n.InternalError)
		return
	}

	page := PageData{
		Title: title,
		Lang:  b.messages.Language(r.Header.Get("Accept-Language")).String(),
		Data:  data,
	}
	if id, ok := auth.UserID(r.Context()); ok {
		page.LoggedIn = true
		page.CurrentUserID = id
		if user, err := b.users.Get(r.Context(), id); err == nil {
			page.Username = user.Username
		}
	}
	if sess := session.FromContext(r.Context()); sess != nil {
		page.Flashes = sess.PopFlashes()
		if len(page.Flashes) > 0 && sess.Stored() {
			if err := b.sessions.Commit(w, sess); err != nil {
				b.logger(r).Warn("save session", zap.Error(err))
			}
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		b.serverError(w, r, fmt.Errorf("render %s: %w", name, err), i18n.InternalError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// redirect queues a flash message and redirects with 303 See Other.
func (b *Base) redirect(w http.ResponseWriter, r *http.Request, target, category, key string) {
	if sess := session.FromContext(r.Context()); sess != nil && key != "" {
		sess.AddFlash(category, b.messages.Text(r, key))
		if err := b.sessions.Commit(w, sess); err != nil {
			b.logger(r).Warn("save session", zap.Error(err))
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// sendError answers with a localized plain-text message.
func (b *Base) sendError(w http.ResponseWriter, r *http.Request, key string, status int) {
	http.Error(w, b.messages.Text(r, key), status)
}

func (b *Base) serverError(w http.ResponseWriter, r *http.Request, err error, key string) {
	b.logger(r).Error("request failed", zap.Error(err))
	b.sendError(w, r, key, http.StatusInternalServerError)
}

// fail maps a service error onto a response. writeKey names the message used
// for write failures.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error, writeKey string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		b.sendError(w, r, i18n.NotFound, http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		b.sendError(w, r, i18n.Forbidden, http.StatusForbidden)
	case errors.Is(err, services.ErrInvalidInput):
		b.sendError(w, r, i18n.FillAllFields, http.StatusBadRequest)
	default:
		b.serverError(w, r, err, writeKey)
	}
}

// NotFound answers unmatched routes.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.sendError(w, r, i18n.NotFound, http.StatusNotFound)
}

func (b *Base) logger(r *http.Request) *zap.Logger {
	return b.log.With(zap.String("request_id", middleware.RequestIDFromContext(r.Context())))
}

// pathID reads a numeric path variable. Route patterns only admit digits, so
// failure means overflow.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func currentUser(r *http.Request) uint {
	id, _ := auth.UserID(r.Context())
	return id
}
