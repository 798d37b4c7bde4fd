package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"inkwell/app/i18n"
	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repositories/mock"
	"inkwell/app/services"
	"inkwell/app/session"
	"inkwell/app/views"
)

type testEnv struct {
	store    *mock.Store
	sessions *session.Store
	users    *services.UserService
	articles *services.ArticleService
	comments *services.CommentService
	router   *mux.Router
}

func setupTestEnv(t *testing.T, enforceOwnership bool) *testEnv {
	t.Helper()

	templates, err := LoadTemplates(views.Templates())
	require.NoError(t, err)

	sessions, err := session.Open(session.Options{TTL: time.Hour, CookieName: "sid"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	store := mock.NewStore()
	env := &testEnv{
		store:    store,
		sessions: sessions,
		users:    services.NewUserService(store.Users(), bcrypt.MinCost),
		articles: services.NewArticleService(store.Articles()),
		comments: services.NewCommentService(store.Comments(), store.Articles(), enforceOwnership),
	}

	base := NewBase(templates, sessions, env.users, i18n.New("en"), zap.NewNop())
	pc := NewPageController(base)
	ac := NewAuthController(base)
	arc := NewArticleController(base, env.articles, env.comments)
	cc := NewCommentController(base, env.comments, env.articles)

	router := mux.NewRouter()
	router.Use(middleware.Sessions(sessions))
	router.NotFoundHandler = http.HandlerFunc(base.NotFound)
	login := middleware.RequireLogin(sessions, i18n.New("en"), zap.NewNop())

	router.HandleFunc("/", pc.Home).Methods("GET")
	router.HandleFunc("/about", pc.About).Methods("GET")
	router.HandleFunc("/register", ac.RegisterForm).Methods("GET")
	router.HandleFunc("/register", ac.Register).Methods("POST")
	router.HandleFunc("/login", ac.LoginForm).Methods("GET")
	router.HandleFunc("/login", ac.Login).Methods("POST")
	router.Handle("/logout", login(http.HandlerFunc(ac.Logout))).Methods("GET")
	router.HandleFunc("/posts", arc.Index).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", arc.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/update", arc.Edit).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/update", arc.Update).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/delete", arc.Delete).Methods("GET")
	router.Handle("/create-article", login(http.HandlerFunc(arc.New))).Methods("GET")
	router.Handle("/create-article", login(http.HandlerFunc(arc.Create))).Methods("POST")
	router.Handle("/posts/{article_id:[0-9]+}/comment", login(http.HandlerFunc(cc.Create))).Methods("POST")
	router.Handle("/posts/{article_id:[0-9]+}/comment/{comment_id:[0-9]+}/edit", login(http.HandlerFunc(cc.EditForm))).Methods("GET")
	router.Handle("/posts/{article_id:[0-9]+}/comment/{comment_id:[0-9]+}/edit", login(http.HandlerFunc(cc.Edit))).Methods("POST")
	router.Handle("/posts/{article_id:[0-9]+}/comment/{comment_id:[0-9]+}/delete", login(http.HandlerFunc(cc.Delete))).Methods("POST")
	env.router = router

	return env
}

// do sends a request; form is posted url-encoded when non-nil.
func (env *testEnv) do(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// loginAs stores an authenticated session for user and returns its cookie.
func (env *testEnv) loginAs(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	sess := env.sessions.New()
	sess.UserID = user.ID
	require.NoError(t, env.sessions.Save(sess))
	return &http.Cookie{Name: "sid", Value: sess.ID}
}

func (env *testEnv) user(t *testing.T, name, password string) *models.User {
	t.Helper()
	u, err := env.users.Register(t.Context(), name, password)
	require.NoError(t, err)
	return u
}

func (env *testEnv) article(t *testing.T, author *models.User, title string) *models.Article {
	t.Helper()
	a, err := env.articles.Create(t.Context(), author.ID, title, "Intro of "+title, "Text of "+title)
	require.NoError(t, err)
	return a
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	return nil
}
