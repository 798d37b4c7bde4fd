package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// User is a registered author. PasswordHash holds a bcrypt hash, never the password.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" validate:"required,max=80"`
	PasswordHash string    `gorm:"size:128;not null" json:"-" validate:"required"`
	CreatedAt    time.Time `validate:"-"`
	Articles     []Article `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Comments     []Comment `gorm:"foreignKey:UserID" json:"-" validate:"-"`
}

// Article represents a blog post with comments.
type Article struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:100;not null" validate:"required,max=100"`
	Intro     string    `gorm:"size:300;not null" validate:"required,max=300"`
	Text      string    `gorm:"type:text;not null" validate:"required"`
	CreatedAt time.Time `gorm:"index" validate:"-"`
	UserID    uint      `gorm:"index;not null" validate:"required"`
	User      User      `gorm:"constraint:OnDelete:CASCADE;" validate:"-"`
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE;" validate:"-"`
}

// Comment is a reply attached to exactly one article.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"size:500;not null" validate:"required,max=500"`
	CreatedAt time.Time `validate:"-"`
	UserID    uint      `gorm:"index;not null" validate:"required"`
	ArticleID uint      `gorm:"index;not null" validate:"required"`
	User      User      `gorm:"constraint:OnDelete:CASCADE;" validate:"-"`
	Article   *Article  `validate:"-"`
}
