package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/form"
	"github.com/matchbook/matchbook/internal/service"
	"github.com/matchbook/matchbook/internal/view"
)

// PostHandler handles creating, viewing, editing and deleting posts.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func postPath(id int64) string {
	return "/post/" + strconv.FormatInt(id, 10)
}

// HandleNewPage renders an empty post form.
// GET /post/new
func (h *PostHandler) HandleNewPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.PostFormPage(navFor(w, r), "New post", "/post/new", form.Post{}, nil))
}

// HandleCreate publishes a post by the signed-in user.
// POST /post/new
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	f := form.ParsePost(r)
	if errs := f.Validate(); errs.Any() {
		render(w, r, http.StatusUnprocessableEntity, view.PostFormPage(navFor(w, r), "New post", "/post/new", f, errs))
		return
	}

	post, err := h.posts.Create(r.Context(), user.ID, f.Title, f.Content)
	if err != nil {
		renderServiceError(w, r, err, "create post")
		return
	}

	setFlash(w, flashSuccess, "Your post is now live!")
	http.Redirect(w, r, postPath(post.ID), http.StatusSeeOther)
}

// HandleView renders a single post.
// GET /post/{id}
func (h *PostHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		renderError(w, r, http.StatusNotFound, "We couldn't find that post.")
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err, "get post")
		return
	}

	render(w, r, http.StatusOK, view.PostDetailPage(navFor(w, r), post))
}

// HandleEditPage renders the edit form for the post's author.
// GET /post/{id}/update
func (h *PostHandler) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadForEdit(w, r)
	if !ok {
		return
	}
	action := postPath(post.ID) + "/update"
	render(w, r, http.StatusOK, view.PostFormPage(navFor(w, r), "Edit post", action, form.PostFrom(post), nil))
}

// HandleUpdate saves an edit. Only the author may change a post.
// POST /post/{id}/update
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	post, ok := h.loadForEdit(w, r)
	if !ok {
		return
	}

	action := postPath(post.ID) + "/update"
	f := form.ParsePost(r)
	if errs := f.Validate(); errs.Any() {
		render(w, r, http.StatusUnprocessableEntity, view.PostFormPage(navFor(w, r), "Edit post", action, f, errs))
		return
	}

	if _, err := h.posts.Update(r.Context(), user.ID, post.ID, f.Title, f.Content); err != nil {
		renderServiceError(w, r, err, "update post")
		return
	}

	setFlash(w, flashSuccess, "Your post has been updated.")
	http.Redirect(w, r, postPath(post.ID), http.StatusSeeOther)
}

// HandleDelete removes a post. Only the author may delete it.
// POST /post/{id}/delete
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		renderError(w, r, http.StatusNotFound, "We couldn't find that post.")
		return
	}

	if err := h.posts.Delete(r.Context(), user.ID, id); err != nil {
		renderServiceError(w, r, err, "delete post")
		return
	}

	setFlash(w, flashInfo, "Your post has been deleted.")
	http.Redirect(w, r, profilePath(user.Username), http.StatusSeeOther)
}

// loadForEdit resolves {id} to a post the signed-in user wrote, writing a
// 404 or 403 page otherwise.
func (h *PostHandler) loadForEdit(w http.ResponseWriter, r *http.Request) (*domain.Post, bool) {
	user := UserFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		renderError(w, r, http.StatusNotFound, "We couldn't find that post.")
		return nil, false
	}

	post, err := h.posts.GetForEdit(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			renderError(w, r, http.StatusForbidden, "You can only edit your own posts.")
			return nil, false
		}
		renderServiceError(w, r, err, "load post for edit")
		return nil, false
	}
	return post, true
}
