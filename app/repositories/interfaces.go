package repositories

import (
	"context"

	"inkwell/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ArticleRepository defines the interface for article data access
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	// GetByID loads the article with its author and comments (oldest first).
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	// List returns all articles, newest first.
	List(ctx context.Context) ([]*models.Article, error)
	// UpdateContent writes title, intro and text only.
	UpdateContent(ctx context.Context, article *models.Article) error
	// Delete removes the article together with its comments.
	Delete(ctx context.Context, id uint) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID uint) ([]*models.Comment, error)
	// UpdateText writes the text column only.
	UpdateText(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}
