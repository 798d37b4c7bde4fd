package models

import (
	"errors"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// SetArticle sets the parent article and updates the ArticleID
func (c *Comment) SetArticle(article *Article) error {
	if article == nil {
		return errors.New("article cannot be nil")
	}

	c.Article = article
	c.ArticleID = article.ID
	return nil
}

// AuthoredBy reports whether the comment was written by the given user.
func (c *Comment) AuthoredBy(userID uint) bool {
	return userID != 0 && c.UserID == userID
}
