package services

import (
	"context"

	"inkwell/app/metrics"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// ArticleService handles business logic for articles
type ArticleService struct {
	articleRepo repositories.ArticleRepository
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo repositories.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// List returns every article, newest first
func (s *ArticleService) List(ctx context.Context) ([]*models.Article, error) {
	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, readErr("articles", err)
	}
	return articles, nil
}

// Get retrieves an article with its author
func (s *ArticleService) Get(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, readErr("article", err)
	}
	return article, nil
}

// Create publishes a new article written by authorID
func (s *ArticleService) Create(ctx context.Context, authorID uint, title, intro, text string) (*models.Article, error) {
	article := &models.Article{UserID: authorID}
	article.SetContent(title, intro, text)
	if err := article.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, writeErr("create article", err)
	}

	metrics.ArticleCreated()
	return article, nil
}

// Update overwrites title, intro and text of an existing article
func (s *ArticleService) Update(ctx context.Context, id uint, title, intro, text string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, readErr("article", err)
	}

	article.SetContent(title, intro, text)
	if err := article.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.articleRepo.UpdateContent(ctx, article); err != nil {
		return nil, writeErr("update article", err)
	}
	return article, nil
}

// Delete removes an article and its comments
func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.articleRepo.GetByID(ctx, id); err != nil {
		return readErr("article", err)
	}
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return writeErr("delete article", err)
	}
	return nil
}
