package controllers

import (
	"net/http"

	"inkwell/app/i18n"
	"inkwell/app/models"
	"inkwell/app/services"
)

// ArticleController handles HTTP requests for articles
type ArticleController struct {
	*Base
	articles *services.ArticleService
	comments *services.CommentService
}

// NewArticleController creates a new ArticleController
func NewArticleController(base *Base, articles *services.ArticleService, comments *services.CommentService) *ArticleController {
	return &ArticleController{Base: base, articles: articles, comments: comments}
}

// Index lists all articles, newest first
func (ac *ArticleController) Index(w http.ResponseWriter, r *http.Request) {
	articles, err := ac.articles.List(r.Context())
	if err != nil {
		ac.serverError(w, r, err, i18n.InternalError)
		return
	}
	ac.render(w, r, "posts", "Posts", struct {
		Articles []*models.Article
	}{articles})
}

// Show displays one article with its comments
func (ac *ArticleController) Show(w http.ResponseWriter, r *http.Request) {
	article, ok := ac.load(w, r)
	if !ok {
		return
	}
	comments, err := ac.comments.List(r.Context(), article.ID)
	if err != nil {
		ac.serverError(w, r, err, i18n.InternalError)
		return
	}
	ac.render(w, r, "post_detail", article.Title, struct {
		Article  *models.Article
		Comments []*models.Comment
	}{article, comments})
}

// New displays the form for creating an article
func (ac *ArticleController) New(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "create_article", "New article", nil)
}

// Create publishes an article written by the logged-in user
func (ac *ArticleController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, i18n.FillAllFields, http.StatusBadRequest)
		return
	}

	_, err := ac.articles.Create(r.Context(), currentUser(r),
		r.PostFormValue("title"), r.PostFormValue("intro"), r.PostFormValue("text"))
	if err != nil {
		ac.fail(w, r, err, i18n.ArticleSaveError)
		return
	}
	ac.redirect(w, r, "/posts", FlashSuccess, i18n.ArticleCreated)
}

// Edit displays the edit form of an article
func (ac *ArticleController) Edit(w http.ResponseWriter, r *http.Request) {
	article, ok := ac.load(w, r)
	if !ok {
		return
	}
	ac.render(w, r, "post_update", "Edit article", struct {
		Article *models.Article
	}{article})
}

// Update overwrites title, intro and text of an article
func (ac *ArticleController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ac.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, i18n.FillAllFields, http.StatusBadRequest)
		return
	}

	_, err := ac.articles.Update(r.Context(), id,
		r.PostFormValue("title"), r.PostFormValue("intro"), r.PostFormValue("text"))
	if err != nil {
		ac.fail(w, r, err, i18n.ArticleEditError)
		return
	}
	ac.redirect(w, r, "/posts", FlashSuccess, i18n.ArticleUpdated)
}

// Delete removes an article and its comments
func (ac *ArticleController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ac.NotFound(w, r)
		return
	}
	if err := ac.articles.Delete(r.Context(), id); err != nil {
		ac.fail(w, r, err, i18n.ArticleDelError)
		return
	}
	ac.redirect(w, r, "/posts", FlashSuccess, i18n.ArticleDeleted)
}

func (ac *ArticleController) load(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		ac.NotFound(w, r)
		return nil, false
	}
	article, err := ac.articles.Get(r.Context(), id)
	if err != nil {
		ac.fail(w, r, err, i18n.InternalError)
		return nil, false
	}
	return article, true
}
