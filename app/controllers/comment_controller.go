package controllers

import (
	"fmt"
	"net/http"

	"inkwell/app/i18n"
	"inkwell/app/models"
	"inkwell/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	*Base
	comments *services.CommentService
	articles *services.ArticleService
}

// NewCommentController creates a new CommentController
func NewCommentController(base *Base, comments *services.CommentService, articles *services.ArticleService) *CommentController {
	return &CommentController{Base: base, comments: comments, articles: articles}
}

// Create adds a comment by the logged-in user to an article
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(r, "article_id")
	if !ok {
		cc.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		cc.sendError(w, r, i18n.FillAllFields, http.StatusBadRequest)
		return
	}

	if _, err := cc.comments.Create(r.Context(), articleID, currentUser(r), r.PostFormValue("text")); err != nil {
		cc.fail(w, r, err, i18n.CommentSaveError)
		return
	}
	cc.redirect(w, r, articlePath(articleID), FlashSuccess, i18n.CommentAdded)
}

// EditForm displays the edit form of a comment
func (cc *CommentController) EditForm(w http.ResponseWriter, r *http.Request) {
	articleID, commentID, ok := cc.ids(w, r)
	if !ok {
		return
	}

	comment, err := cc.comments.Get(r.Context(), articleID, commentID)
	if err != nil {
		cc.fail(w, r, err, i18n.InternalError)
		return
	}
	if !cc.comments.CanModify(comment, currentUser(r)) {
		cc.fail(w, r, services.ErrForbidden, i18n.InternalError)
		return
	}
	article, err := cc.articles.Get(r.Context(), articleID)
	if err != nil {
		cc.fail(w, r, err, i18n.InternalError)
		return
	}

	cc.render(w, r, "edit_comment", "Edit comment", struct {
		Article *models.Article
		Comment *models.Comment
	}{article, comment})
}

// Edit replaces the text of a comment
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	articleID, commentID, ok := cc.ids(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		cc.sendError(w, r, i18n.FillAllFields, http.StatusBadRequest)
		return
	}

	_, err := cc.comments.Update(r.Context(), articleID, commentID, currentUser(r), r.PostFormValue("text"))
	if err != nil {
		cc.fail(w, r, err, i18n.CommentEditError)
		return
	}
	cc.redirect(w, r, articlePath(articleID), FlashSuccess, i18n.CommentUpdated)
}

// Delete removes a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	articleID, commentID, ok := cc.ids(w, r)
	if !ok {
		return
	}

	if err := cc.comments.Delete(r.Context(), articleID, commentID, currentUser(r)); err != nil {
		cc.fail(w, r, err, i18n.CommentDelError)
		return
	}
	cc.redirect(w, r, articlePath(articleID), FlashSuccess, i18n.CommentDeleted)
}

func (cc *CommentController) ids(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	articleID, ok := pathID(r, "article_id")
	if !ok {
		cc.NotFound(w, r)
		return 0, 0, false
	}
	commentID, ok := pathID(r, "comment_id")
	if !ok {
		cc.NotFound(w, r)
		return 0, 0, false
	}
	return articleID, commentID, true
}

func articlePath(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}
