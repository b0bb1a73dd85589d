package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/form"
	"github.com/matchbook/matchbook/internal/service"
	"github.com/matchbook/matchbook/internal/view"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	auth         *service.AuthService
	users        form.UserLookup
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, users form.UserLookup, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, cookieSecure: cookieSecure}
}

// HandleSignupPage renders the signup form.
// GET /signup
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, view.SignupPage(navFor(w, r), form.Signup{}, nil))
}

// HandleSignup creates an account and sends the new user to the login page.
// POST /signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	f := form.ParseSignup(r)
	errs, err := f.Validate(r.Context(), h.users)
	if err != nil {
		renderServiceError(w, r, err, "validate signup")
		return
	}
	if errs.Any() {
		render(w, r, http.StatusUnprocessableEntity, view.SignupPage(navFor(w, r), f, errs))
		return
	}

	if _, err := h.auth.Register(r.Context(), f.Username, f.Email, f.Password); err != nil {
		// Someone may have taken the name between validation and insert.
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			errs.Add("username", "That username is taken. Please choose a different one.")
		case errors.Is(err, domain.ErrDuplicateEmail):
			errs.Add("email", "That email is taken. Please choose a different one.")
		default:
			renderServiceError(w, r, err, "register user")
			return
		}
		render(w, r, http.StatusUnprocessableEntity, view.SignupPage(navFor(w, r), f, errs))
		return
	}

	slog.Info("user registered", "username", f.Username)
	setFlash(w, flashSuccess, "Congratulations, you are now a registered user! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	next := safeNext(r.URL.Query().Get("next"), "")
	render(w, r, http.StatusOK, view.LoginPage(navFor(w, r), form.Login{}, nil, next))
}

// HandleLogin checks credentials and sets the session cookie.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	f := form.ParseLogin(r)
	next := safeNext(r.PostFormValue("next"), "")
	errs := f.Validate()
	if errs.Any() {
		render(w, r, http.StatusUnprocessableEntity, view.LoginPage(navFor(w, r), f, errs, next))
		return
	}

	token, user, err := h.auth.Login(r.Context(), f.Email, f.Password, f.Remember)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			errs.Add("", "Invalid email or password.")
			render(w, r, http.StatusUnauthorized, view.LoginPage(navFor(w, r), f, errs, next))
			return
		}
		renderServiceError(w, r, err, "login user")
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if f.Remember {
		cookie.MaxAge = int(service.RememberTTL.Seconds())
	}
	http.SetCookie(w, cookie)

	setFlash(w, flashSuccess, "Welcome back, "+user.Username+"!")
	http.Redirect(w, r, safeNext(next, "/"), http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
// GET|POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	setFlash(w, flashInfo, "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
