package session

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Load returns the session named by the request cookie, or a new anonymous one.
func (s *Store) Load(r *http.Request) *Session {
	c, err := r.Cookie(s.opts.CookieName)
	if err != nil {
		return s.New()
	}
	sess, err := s.Get(c.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("session lookup failed", zap.Error(err))
		}
		return s.New()
	}
	return sess
}

// Commit saves the session and sets its cookie on w. It must run before the
// response header is written.
func (s *Store) Commit(w http.ResponseWriter, sess *Session) error {
	if err := s.Save(sess); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
