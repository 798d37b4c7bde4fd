package middleware

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"inkwell/app/auth"
	"inkwell/app/i18n"
	"inkwell/app/session"
)

// Sessions resolves the session cookie and stores the session and the
// optional user id in the request context.
func Sessions(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)
			ctx := session.NewContext(r.Context(), sess)
			ctx = auth.WithUserID(ctx, sess.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous requests to the login form with a notice.
// It runs after Sessions.
func RequireLogin(store *session.Store, messages *i18n.Catalog, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.UserID(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			if sess := session.FromContext(r.Context()); sess != nil {
				sess.AddFlash("info", messages.Text(r, i18n.LoginRequired))
				if err := store.Commit(w, sess); err != nil {
					log.Warn("save session", zap.Error(err))
				}
			}
			target := "/login"
			// only GET targets can be replayed after login
			if r.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}
