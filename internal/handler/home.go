package handler

import (
	"net/http"

	"github.com/matchbook/matchbook/internal/view"
)

// HandleAbout renders the static about page.
func HandleAbout(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.AboutPage(navFor(w, r)))
}

// HandleNotFound renders the 404 page for unmatched paths.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "We couldn't find that page.")
}
