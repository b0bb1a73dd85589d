// Package form binds and validates the HTML forms the site accepts.
//
// Struct tags drive go-playground/validator; failures come back as an
// Errors map keyed by the form field name so views can show them inline.
package form

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/matchbook/matchbook/internal/domain"
)

// Errors maps a form field name to a message. The empty key holds
// form-level messages such as bad credentials.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// UserLookup is the subset of the user repository needed for uniqueness checks.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// check runs struct validation and converts the result to Errors.
func check(f any) Errors {
	errs := Errors{}
	err := validate.Struct(f)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "eqfield":
		return "Passwords must match."
	case "username":
		return "Use only letters, numbers, dots, dashes and underscores."
	default:
		return "Invalid value."
	}
}

// checkUnique flags username/email that belong to someone other than self.
// self may be nil for new accounts.
func checkUnique(ctx context.Context, users UserLookup, self *domain.User, username, email string, errs Errors) error {
	if _, bad := errs["username"]; !bad {
		u, err := users.GetByUsername(ctx, username)
		switch {
		case err == nil && (self == nil || u.ID != self.ID):
			errs.Add("username", "That username is taken. Please choose a different one.")
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("check username: %w", err)
		}
	}
	if _, bad := errs["email"]; !bad {
		u, err := users.GetByEmail(ctx, email)
		switch {
		case err == nil && (self == nil || u.ID != self.ID):
			errs.Add("email", "That email is taken. Please choose a different one.")
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("check email: %w", err)
		}
	}
	return nil
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}
