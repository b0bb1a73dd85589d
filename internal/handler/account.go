package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/form"
	"github.com/matchbook/matchbook/internal/service"
	"github.com/matchbook/matchbook/internal/view"
)

// AccountHandler handles the signed-in user's profile edits and account removal.
type AccountHandler struct {
	users *service.UserService
	auth  *AuthHandler
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(users *service.UserService, auth *AuthHandler) *AccountHandler {
	return &AccountHandler{users: users, auth: auth}
}

// HandleAccountPage renders the profile editor pre-filled with current values.
// GET /account
func (h *AccountHandler) HandleAccountPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	render(w, r, http.StatusOK, view.AccountPage(navFor(w, r), user, form.AccountFrom(user), nil))
}

// HandleUpdateAccount saves profile fields and an optional new avatar.
// POST /account (multipart/form-data)
func (h *AccountHandler) HandleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxAvatarBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			renderError(w, r, http.StatusRequestEntityTooLarge, "That upload is too large. Pictures must be 5MB or smaller.")
			return
		}
		renderError(w, r, http.StatusBadRequest, "The form could not be read. Please try again.")
		return
	}

	f := form.ParseAccount(r)
	errs, err := f.Validate(r.Context(), h.users, user)
	if err != nil {
		renderServiceError(w, r, err, "validate account")
		return
	}

	avatar, problem := readAvatar(r)
	if problem != "" {
		errs.Add("avatar", problem)
	}
	if errs.Any() {
		render(w, r, http.StatusUnprocessableEntity, view.AccountPage(navFor(w, r), user, f, errs))
		return
	}

	updated, err := h.users.UpdateAccount(r.Context(), user.ID, service.AccountUpdate{
		Username: f.Username,
		Email:    f.Email,
		Bio:      f.Bio,
		Avatar:   avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			errs.Add("username", "That username is taken. Please choose a different one.")
		case errors.Is(err, domain.ErrDuplicateEmail):
			errs.Add("email", "That email is taken. Please choose a different one.")
		case errors.Is(err, domain.ErrInvalidInput):
			errs.Add("avatar", "Please upload a JPEG, PNG or GIF picture.")
		default:
			renderServiceError(w, r, err, "update account")
			return
		}
		render(w, r, http.StatusUnprocessableEntity, view.AccountPage(navFor(w, r), user, f, errs))
		return
	}

	setFlash(w, flashSuccess, "Your changes have been saved.")
	http.Redirect(w, r, profilePath(updated.Username), http.StatusSeeOther)
}

// readAvatar returns the uploaded picture, or nil when none was chosen.
// A non-empty problem is shown next to the file input.
func readAvatar(r *http.Request) (data []byte, problem string) {
	if r.MultipartForm == nil {
		return nil, ""
	}
	file, _, err := r.FormFile("avatar")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, ""
	}
	if err != nil {
		return nil, "Could not read the uploaded picture."
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, service.MaxAvatarBytes+1))
	if err != nil {
		return nil, "Could not read the uploaded picture."
	}
	if len(data) > service.MaxAvatarBytes {
		return nil, "Pictures must be 5MB or smaller."
	}
	return data, ""
}

// HandleDeleteAccount removes the account and everything it owns, then
// logs the user out.
// POST /user/{id}/delete
func (h *AccountHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		renderError(w, r, http.StatusNotFound, "We couldn't find that user.")
		return
	}

	if err := h.users.Delete(r.Context(), user.ID, id); err != nil {
		renderServiceError(w, r, err, "delete account")
		return
	}

	h.auth.clearSession(w)
	setFlash(w, flashInfo, "Your account has been deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
