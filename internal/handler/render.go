package handler

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/view"
)

// render writes c as an HTML page with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}

// navFor builds the navigation data for the current request and consumes
// any pending flash message. Call it before anything is written.
func navFor(w http.ResponseWriter, r *http.Request) view.Nav {
	return view.Nav{User: UserFromContext(r.Context()), Flash: popFlash(w, r)}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render(w, r, status, view.ErrorPage(navFor(w, r), status, message))
}

// renderServiceError maps domain errors to error pages. Anything unexpected
// is logged and shown as a 500.
func renderServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		renderError(w, r, http.StatusNotFound, "We couldn't find that page.")
	case errors.Is(err, domain.ErrForbidden):
		renderError(w, r, http.StatusForbidden, "You are not allowed to do that.")
	case errors.Is(err, domain.ErrInvalidInput):
		renderError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(op, "error", err, "request_id", middleware.GetReqID(r.Context()))
		renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}

// pageParam reads the 1-based ?page= query value. Missing or bad values
// mean the first page; huge values are capped at math.MaxInt32.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return min(page, math.MaxInt32)
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

// safeNext returns next if it is a local absolute path, otherwise fallback.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}

func profilePath(username string) string {
	return "/user/" + url.PathEscape(username)
}

// isDatastar reports whether the request came from a Datastar action and
// expects an SSE response.
func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
