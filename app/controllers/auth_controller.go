package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"inkwell/app/i18n"
	"inkwell/app/services"
	"inkwell/app/session"
)

// AuthController handles registration, login and logout
type AuthController struct {
	*Base
}

func NewAuthController(base *Base) *AuthController {
	return &AuthController{Base: base}
}

const logoutPath = "/logout"

type authForm struct {
	Username string
	Next     string
}

// RegisterForm displays the registration form
func (ac *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "register", "Register", authForm{})
}

// Register creates an account and sends the user to the login form
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, i18n.FillAllFields, http.StatusBadRequest)
		return
	}

	_, err := ac.users.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	switch {
	case err == nil:
		ac.redirect(w, r, "/login", FlashSuccess, i18n.Registered)
	case errors.Is(err, services.ErrDuplicateUser):
		ac.redirect(w, r, "/register", FlashDanger, i18n.UserExists)
	case errors.Is(err, services.ErrPasswordTooLong):
		ac.redirect(w, r, "/register", FlashDanger, i18n.PasswordTooLong)
	case errors.Is(err, services.ErrInvalidInput):
		ac.redirect(w, r, "/register", FlashDanger, i18n.FillAllFields)
	default:
		ac.serverError(w, r, err, i18n.RegisterError)
	}
}

// LoginForm displays the login form
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "login", "Log in", authForm{Next: safeNext(r.URL.Query().Get("next"))})
}

// Login authenticates the user and starts a session under a fresh id
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, i18n.FillAllFields, http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	next := safeNext(r.URL.Query().Get("next"))

	user, err := ac.users.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			ac.serverError(w, r, err, i18n.InternalError)
			return
		}
		if sess := session.FromContext(r.Context()); sess != nil {
			sess.AddFlash(FlashDanger, ac.messages.Text(r, i18n.BadCredentials))
		}
		ac.render(w, r, "login", "Log in", authForm{Username: username, Next: next})
		return
	}

	sess := session.FromContext(r.Context())
	if err := ac.sessions.Rotate(sess); err != nil {
		ac.serverError(w, r, err, i18n.InternalError)
		return
	}
	sess.UserID = user.ID
	ac.logger(r).Info("user logged in", zap.Uint("user_id", user.ID))

	if next == "" {
		next = "/"
	}
	ac.redirect(w, r, next, FlashSuccess, i18n.LoggedIn)
}

// Logout ends the session and sends the user to the login form
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if err := ac.sessions.Rotate(sess); err != nil {
		ac.serverError(w, r, err, i18n.InternalError)
		return
	}
	sess.UserID = 0
	ac.redirect(w, r, "/login", FlashInfo, i18n.LoggedOut)
}

// safeNext keeps only local absolute paths, so login cannot redirect off-site.
// The logout path is never a target.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	if path.Clean(u.Path) == logoutPath {
		return ""
	}
	return next
}
