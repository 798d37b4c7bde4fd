package services

import (
	"context"

	"inkwell/app/metrics"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo      repositories.CommentRepository
	articleRepo      repositories.ArticleRepository
	enforceOwnership bool
}

// NewCommentService creates a new CommentService. With enforceOwnership set,
// only the author may edit or delete a comment.
func NewCommentService(commentRepo repositories.CommentRepository, articleRepo repositories.ArticleRepository, enforceOwnership bool) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		articleRepo:      articleRepo,
		enforceOwnership: enforceOwnership,
	}
}

// Create attaches a new comment by authorID to an existing article
func (s *CommentService) Create(ctx context.Context, articleID, authorID uint, text string) (*models.Comment, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, readErr("article", err)
	}

	comment := &models.Comment{Text: text, UserID: authorID}
	if err := comment.SetArticle(article); err != nil {
		return nil, invalid(err)
	}
	if err := comment.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, writeErr("create comment", err)
	}

	metrics.CommentCreated()
	return comment, nil
}

// List returns the comments of an article, oldest first
func (s *CommentService) List(ctx context.Context, articleID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, readErr("comments", err)
	}
	return comments, nil
}

// Get retrieves a comment that belongs to articleID
func (s *CommentService) Get(ctx context.Context, articleID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, readErr("comment", err)
	}
	if comment.ArticleID != articleID {
		return nil, readErr("comment", repositories.ErrNotFound)
	}
	return comment, nil
}

// CanModify reports whether userID may edit or delete the comment
func (s *CommentService) CanModify(comment *models.Comment, userID uint) bool {
	return !s.enforceOwnership || comment.AuthoredBy(userID)
}

// Update replaces the text of a comment on behalf of userID
func (s *CommentService) Update(ctx context.Context, articleID, commentID, userID uint, text string) (*models.Comment, error) {
	comment, err := s.Get(ctx, articleID, commentID)
	if err != nil {
		return nil, err
	}
	if !s.CanModify(comment, userID) {
		return nil, ErrForbidden
	}

	comment.Text = text
	if err := comment.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.commentRepo.UpdateText(ctx, comment); err != nil {
		return nil, writeErr("update comment", err)
	}
	return comment, nil
}

// Delete removes a comment on behalf of userID
func (s *CommentService) Delete(ctx context.Context, articleID, commentID, userID uint) error {
	comment, err := s.Get(ctx, articleID, commentID)
	if err != nil {
		return err
	}
	if !s.CanModify(comment, userID) {
		return ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return writeErr("delete comment", err)
	}
	return nil
}
