package controllers

import "net/http"

// PageController serves the static pages
type PageController struct {
	*Base
}

func NewPageController(base *Base) *PageController {
	return &PageController{Base: base}
}

// Home renders the landing page
func (pc *PageController) Home(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "index", "", nil)
}

// About renders the about page
func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "about", "About", nil)
}
