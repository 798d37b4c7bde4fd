package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/models"
)

func TestArticleService_Create(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	author := f.user(t, "author")

	tests := []struct {
		name    string
		title   string
		intro   string
		text    string
		wantErr error
	}{
		{name: "valid", title: "Title", intro: "Intro", text: "Body"},
		{name: "missing title", title: "", intro: "Intro", text: "Body", wantErr: ErrInvalidInput},
		{name: "missing intro", title: "Title", intro: "", text: "Body", wantErr: ErrInvalidInput},
		{name: "missing text", title: "Title", intro: "Intro", text: "", wantErr: ErrInvalidInput},
		{name: "title too long", title: strings.Repeat("t", 101), intro: "Intro", text: "Body", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article, err := f.articles.Create(ctx, author.ID, tt.title, tt.intro, tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, article.ID)
			assert.Equal(t, author.ID, article.UserID)
		})
	}

	list, err := f.articles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestArticleService_ListOrder(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	author := f.user(t, "author")
	repo := f.store.Articles()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []int{2, 0, 3, 1} {
		a := &models.Article{Title: "t", Intro: "i", Text: "x", UserID: author.ID, CreatedAt: base.Add(time.Duration(offset) * time.Hour)}
		require.NoError(t, repo.Create(ctx, a))
	}

	list, err := f.articles.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
	}
	assert.Equal(t, "author", list[0].User.Username)
}

func TestArticleService_Update(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	author := f.user(t, "author")
	original := f.article(t, author)

	_, err := f.articles.Update(ctx, original.ID, "New", "New intro", "New body")
	require.NoError(t, err)

	got, err := f.articles.Get(ctx, original.ID)
	require.NoError(t, err)

	want := *original
	want.SetContent("New", "New intro", "New body")
	diff := cmp.Diff(want, *got, cmp.FilterPath(func(p cmp.Path) bool {
		name := p.Last().String()
		return name == ".User" || name == ".Comments"
	}, cmp.Ignore()))
	assert.Empty(t, diff)

	_, err = f.articles.Update(ctx, original.ID, "", "x", "y")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.articles.Update(ctx, 999, "a", "b", "c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleService_Delete(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	author := f.user(t, "author")
	doomed := f.article(t, author)
	kept := f.article(t, author)
	_, err := f.comments.Create(ctx, doomed.ID, author.ID, "bye")
	require.NoError(t, err)

	assert.ErrorIs(t, f.articles.Delete(ctx, 999), ErrNotFound)
	list, err := f.articles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, f.articles.Delete(ctx, doomed.ID))
	_, err = f.articles.Get(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := f.store.Comments().ListByArticle(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = f.articles.Get(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestArticleService_WriteFailure(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	author := f.user(t, "author")
	article := f.article(t, author)

	f.store.Err = errors.New("disk full")

	_, err := f.articles.Create(ctx, author.ID, "t", "i", "x")
	assert.ErrorIs(t, err, ErrWriteFailure)

	_, err = f.articles.Update(ctx, article.ID, "t", "i", "x")
	assert.ErrorIs(t, err, ErrWriteFailure)

	assert.ErrorIs(t, f.articles.Delete(ctx, article.ID), ErrWriteFailure)
}
