package handler

import (
	"errors"
	"net/http"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/service"
)

// AvatarHandler serves stored avatar thumbnails.
type AvatarHandler struct {
	avatars *service.AvatarService
}

// NewAvatarHandler creates a new AvatarHandler.
func NewAvatarHandler(avatars *service.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatars: avatars}
}

// HandleServe streams the avatar stored under {key}. Keys are never reused,
// so responses may be cached indefinitely.
// GET /uploads/{key}
func (h *AvatarHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	data, err := h.avatars.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			err = domain.ErrNotFound
		}
		renderServiceError(w, r, err, "serve avatar")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
