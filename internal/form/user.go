package form

import (
	"context"
	"net/http"

	"github.com/matchbook/matchbook/internal/domain"
)

type Signup struct {
	Username        string `form:"username" validate:"required,min=2,max=20,username"`
	Email           string `form:"email" validate:"required,max=120,email"`
	Password        string `form:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// ParseSignup reads a signup form. Passwords are not trimmed.
func ParseSignup(r *http.Request) Signup {
	return Signup{
		Username:        field(r, "username"),
		Email:           field(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
}

// Validate checks field rules and that username and email are unused.
func (f Signup) Validate(ctx context.Context, users UserLookup) (Errors, error) {
	errs := check(f)
	if err := checkUnique(ctx, users, nil, f.Username, f.Email, errs); err != nil {
		return nil, err
	}
	return errs, nil
}

type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Remember bool   `form:"remember"`
}

func ParseLogin(r *http.Request) Login {
	return Login{
		Email:    field(r, "email"),
		Password: r.PostFormValue("password"),
		Remember: r.PostFormValue("remember") != "",
	}
}

func (f Login) Validate() Errors {
	return check(f)
}

// Account edits the signed-in user's profile. The avatar upload is
// handled separately since it arrives as a multipart file.
type Account struct {
	Username string `form:"username" validate:"required,min=2,max=20,username"`
	Email    string `form:"email" validate:"required,max=120,email"`
	Bio      string `form:"bio" validate:"max=500"`
}

func ParseAccount(r *http.Request) Account {
	return Account{
		Username: field(r, "username"),
		Email:    field(r, "email"),
		Bio:      field(r, "bio"),
	}
}

// AccountFrom pre-fills the form with the user's current values.
func AccountFrom(u *domain.User) Account {
	return Account{Username: u.Username, Email: u.Email, Bio: u.Bio}
}

// Validate checks field rules; the user's own username and email are not
// reported as taken.
func (f Account) Validate(ctx context.Context, users UserLookup, self *domain.User) (Errors, error) {
	errs := check(f)
	if err := checkUnique(ctx, users, self, f.Username, f.Email, errs); err != nil {
		return nil, err
	}
	return errs, nil
}
