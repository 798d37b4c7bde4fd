package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/app/models"
)

// GormArticleRepository implements ArticleRepository using gorm
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// Create creates a new article. Associations are never written through it.
func (r *GormArticleRepository) Create(ctx context.Context, article *models.Article) error {
	return translate("create article", r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error)
}

// GetByID retrieves an article with its author
func (r *GormArticleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Preload("User").First(&article, id).Error
	if err != nil {
		return nil, translate("get article", err)
	}
	return &article, nil
}

// List retrieves all articles ordered by creation time, newest first
func (r *GormArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("articles.created_at DESC, articles.id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, translate("list articles", err)
	}
	return articles, nil
}

// UpdateContent overwrites title, intro and text; id, date and author stay untouched
func (r *GormArticleRepository) UpdateContent(ctx context.Context, article *models.Article) error {
	result := r.db.WithContext(ctx).
		Model(&models.Article{ID: article.ID}).
		Select("title", "intro", "text").
		Updates(map[string]any{
			"title": article.Title,
			"intro": article.Intro,
			"text":  article.Text,
		})
	return affected("update article", result)
}

// Delete deletes an article and all its comments in one transaction
func (r *GormArticleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return translate("delete article comments", err)
		}
		return affected("delete article", tx.Delete(&models.Article{}, id))
	})
}
