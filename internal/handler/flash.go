package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/matchbook/matchbook/internal/view"
)

const flashCookie = "flash"

const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashDanger  = "danger"
)

// setFlash stores a message for the next page the browser renders.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending message, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) view.Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return view.Flash{}
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return view.Flash{}
	}
	kind, message, ok := strings.Cut(raw, ":")
	if !ok {
		return view.Flash{}
	}
	switch kind {
	case flashSuccess, flashInfo, flashDanger:
	default:
		kind = flashInfo
	}
	return view.Flash{Kind: kind, Message: message}
}
