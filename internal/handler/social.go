package handler

import (
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/service"
	"github.com/matchbook/matchbook/internal/view"
)

// SocialHandler handles follow, unfollow and the matched feed.
type SocialHandler struct {
	social *service.SocialService
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(social *service.SocialService) *SocialHandler {
	return &SocialHandler{social: social}
}

// HandleFollow makes the signed-in user follow {username}. Datastar
// requests get the updated follow button over SSE; plain form posts are
// redirected to the profile.
// POST /follow/{username}
func (h *SocialHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	username := r.PathValue("username")

	target, err := h.social.Follow(r.Context(), user.ID, username)
	if err != nil {
		h.followError(w, r, err, username, "You cannot follow yourself!")
		return
	}

	if isDatastar(r) {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(view.FollowButton(target, true))
		return
	}
	setFlash(w, flashSuccess, "You are following "+target.Username+"!")
	http.Redirect(w, r, profilePath(target.Username), http.StatusSeeOther)
}

// HandleUnfollow removes the edge from the signed-in user to {username}.
// POST /unfollow/{username}
func (h *SocialHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	username := r.PathValue("username")

	target, err := h.social.Unfollow(r.Context(), user.ID, username)
	if err != nil {
		h.followError(w, r, err, username, "You cannot unfollow yourself!")
		return
	}

	if isDatastar(r) {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(view.FollowButton(target, false))
		return
	}
	setFlash(w, flashInfo, "You are not following "+target.Username+".")
	http.Redirect(w, r, profilePath(target.Username), http.StatusSeeOther)
}

func (h *SocialHandler) followError(w http.ResponseWriter, r *http.Request, err error, username, selfMessage string) {
	if errors.Is(err, domain.ErrSelfFollow) {
		setFlash(w, flashDanger, selfMessage)
		if isDatastar(r) {
			sse := datastar.NewSSE(w, r)
			sse.Redirect(profilePath(username))
			return
		}
		http.Redirect(w, r, profilePath(username), http.StatusSeeOther)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		renderError(w, r, http.StatusNotFound, "User "+username+" not found.")
		return
	}
	renderServiceError(w, r, err, "update follow")
}

// HandleMatched renders the signed-in user's matched feed: posts by everyone
// they follow, newest first.
// GET /matched
func (h *SocialHandler) HandleMatched(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	page, err := h.social.FollowedPosts(r.Context(), user.ID, pageParam(r))
	if err != nil {
		renderServiceError(w, r, err, "load matched feed")
		return
	}

	render(w, r, http.StatusOK, view.MatchedPage(navFor(w, r), page))
}

// HandleMatchedMore appends the next page of the matched feed via SSE.
// GET /matched/more?page=N
func (h *SocialHandler) HandleMatchedMore(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	page, err := h.social.FollowedPosts(r.Context(), user.ID, pageParam(r))
	if err != nil {
		renderServiceError(w, r, err, "load more matched posts")
		return
	}

	sse := datastar.NewSSE(w, r)

	// Append new post cards to the feed.
	sse.PatchElementTempl(
		view.MatchedPosts(page.Posts),
		datastar.WithSelectorID("matched-posts"),
		datastar.WithModeAppend(),
	)

	// Replace the load-more link (points at the next page or disappears).
	sse.PatchElementTempl(view.MatchedMore(page))
}
