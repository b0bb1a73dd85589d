package form_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[string]*domain.User

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func postForm(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestSignup_Valid(t *testing.T) {
	f := form.ParseSignup(postForm(url.Values{
		"username":         {"  alice "},
		"email":            {"alice@example.com"},
		"password":         {"password123"},
		"confirm_password": {"password123"},
	}))
	assert.Equal(t, "alice", f.Username, "text fields are trimmed")

	errs, err := f.Validate(context.Background(), fakeUsers{})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestSignup_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		form  form.Signup
		field string
	}{
		{"missing username", form.Signup{Email: "a@b.co", Password: "password123", ConfirmPassword: "password123"}, "username"},
		{"bad username chars", form.Signup{Username: "a b!", Email: "a@b.co", Password: "password123", ConfirmPassword: "password123"}, "username"},
		{"bad email", form.Signup{Username: "alice", Email: "nope", Password: "password123", ConfirmPassword: "password123"}, "email"},
		{"short password", form.Signup{Username: "alice", Email: "a@b.co", Password: "short", ConfirmPassword: "short"}, "password"},
		{"mismatch", form.Signup{Username: "alice", Email: "a@b.co", Password: "password123", ConfirmPassword: "password456"}, "confirm_password"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs, err := tc.form.Validate(context.Background(), fakeUsers{})
			require.NoError(t, err)
			assert.NotEmpty(t, errs.Get(tc.field), "expected an error on %s, got %v", tc.field, errs)
		})
	}
}

func TestSignup_Uniqueness(t *testing.T) {
	users := fakeUsers{"bob": {ID: 1, Username: "bob", Email: "bob@example.com"}}

	f := form.Signup{Username: "BOB", Email: "bob@example.com", Password: "password123", ConfirmPassword: "password123"}
	errs, err := f.Validate(context.Background(), users)
	require.NoError(t, err)
	assert.Contains(t, errs.Get("username"), "taken")
	assert.Contains(t, errs.Get("email"), "taken")
}

func TestAccount_OwnValuesAreNotTaken(t *testing.T) {
	self := &domain.User{ID: 1, Username: "bob", Email: "bob@example.com"}
	users := fakeUsers{
		"bob":   self,
		"carol": {ID: 2, Username: "carol", Email: "carol@example.com"},
	}

	errs, err := form.AccountFrom(self).Validate(context.Background(), users, self)
	require.NoError(t, err)
	assert.False(t, errs.Any())

	f := form.Account{Username: "carol", Email: "bob@example.com", Bio: strings.Repeat("x", 10)}
	errs, err = f.Validate(context.Background(), users, self)
	require.NoError(t, err)
	assert.NotEmpty(t, errs.Get("username"))
	assert.Empty(t, errs.Get("email"))
}

func TestAccount_BioTooLong(t *testing.T) {
	self := &domain.User{ID: 1, Username: "bob", Email: "bob@example.com"}
	f := form.Account{Username: "bob", Email: "bob@example.com", Bio: strings.Repeat("x", 501)}

	errs, err := f.Validate(context.Background(), fakeUsers{"bob": self}, self)
	require.NoError(t, err)
	assert.Equal(t, "Must be at most 500 characters.", errs.Get("bio"))
}

func TestLogin(t *testing.T) {
	f := form.ParseLogin(postForm(url.Values{
		"email":    {"a@b.co"},
		"password": {"x"},
		"remember": {"on"},
	}))
	assert.True(t, f.Remember)
	assert.Empty(t, f.Validate())

	assert.NotEmpty(t, form.Login{}.Validate().Get("email"))
}

func TestPost(t *testing.T) {
	assert.Empty(t, form.Post{Title: "Hi", Content: "There"}.Validate())

	errs := form.Post{Title: strings.Repeat("t", 101)}.Validate()
	assert.NotEmpty(t, errs.Get("title"))
	assert.Equal(t, "This field is required.", errs.Get("content"))
}
