package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inkwell/app/models"
	"inkwell/app/repositories/mock"
)

type fixture struct {
	store    *mock.Store
	users    *UserService
	articles *ArticleService
	comments *CommentService
}

func newFixture(enforceOwnership bool) *fixture {
	store := mock.NewStore()
	return &fixture{
		store:    store,
		users:    NewUserService(store.Users(), bcrypt.MinCost),
		articles: NewArticleService(store.Articles()),
		comments: NewCommentService(store.Comments(), store.Articles(), enforceOwnership),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), name, "secret")
	require.NoError(t, err)
	return u
}

func (f *fixture) article(t *testing.T, author *models.User) *models.Article {
	t.Helper()
	a, err := f.articles.Create(context.Background(), author.ID, "Title", "Intro", "Body")
	require.NoError(t, err)
	return a
}
