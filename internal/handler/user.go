package handler

import (
	"net/http"

	"github.com/matchbook/matchbook/internal/service"
	"github.com/matchbook/matchbook/internal/view"
)

// UserHandler renders member profiles and the member directory.
type UserHandler struct {
	users  *service.UserService
	posts  *service.PostService
	social *service.SocialService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, posts *service.PostService, social *service.SocialService) *UserHandler {
	return &UserHandler{users: users, posts: posts, social: social}
}

// HandleHome renders the paginated member directory.
// GET / and GET /home
func (h *UserHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.List(r.Context(), pageParam(r))
	if err != nil {
		renderServiceError(w, r, err, "list users")
		return
	}

	following := map[int64]bool{}
	if viewer := UserFromContext(r.Context()); viewer != nil {
		following, err = h.social.FollowingSet(r.Context(), viewer.ID, page.Users)
		if err != nil {
			renderServiceError(w, r, err, "load following set")
			return
		}
	}

	render(w, r, http.StatusOK, view.HomePage(navFor(w, r), view.Directory{Users: page, Following: following}))
}

// HandleProfile renders a member's profile with their posts, newest first.
// GET /user/{username}
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		renderServiceError(w, r, err, "get profile")
		return
	}

	posts, err := h.posts.ListByUser(r.Context(), user.ID, pageParam(r))
	if err != nil {
		renderServiceError(w, r, err, "list profile posts")
		return
	}

	followed, followers, err := h.social.Counts(r.Context(), user.ID)
	if err != nil {
		renderServiceError(w, r, err, "count follows")
		return
	}

	profile := view.Profile{User: user, Posts: posts, Followed: followed, Followers: followers}
	if viewer := UserFromContext(r.Context()); viewer != nil {
		profile.Following, err = h.social.IsFollowing(r.Context(), viewer.ID, user.ID)
		if err != nil {
			renderServiceError(w, r, err, "check following")
			return
		}
	}

	render(w, r, http.StatusOK, view.ProfilePage(navFor(w, r), profile))
}
