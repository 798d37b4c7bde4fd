package models

// Validate checks if the article meets all validation requirements
func (a *Article) Validate() error {
	return validate.Struct(a)
}

// SetContent overwrites the editable fields of the article.
func (a *Article) SetContent(title, intro, text string) {
	a.Title = title
	a.Intro = intro
	a.Text = text
}
