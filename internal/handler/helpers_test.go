package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/handler"
	"github.com/matchbook/matchbook/internal/repository/sqlite"
	"github.com/matchbook/matchbook/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

const testPassword = "password123"

type testApp struct {
	db   *sqlite.DB
	auth *service.AuthService
	srv  *httptest.Server
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestServices(t *testing.T, db *sqlite.DB) handler.Services {
	t.Helper()
	avatars := service.NewAvatarService(db.FileStore())
	return handler.Services{
		// Use cost 4 for fast tests.
		Auth:    service.NewAuthService(db.Users(), testJWTSecret, 4),
		Users:   service.NewUserService(db.Users(), avatars, 5),
		Posts:   service.NewPostService(db.Posts(), 5),
		Social:  service.NewSocialService(db.Users(), db.Follows(), 2),
		Avatars: avatars,
		DB:      db,
	}
}

// newTestApp serves the full route table behind the production middleware.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := newTestDB(t)
	services := newTestServices(t, db)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, services)

	srv := httptest.NewServer(handler.Chain(mux, false))
	t.Cleanup(srv.Close)

	return &testApp{db: db, auth: services.Auth, srv: srv}
}

// client returns a browser-like client with its own cookie jar that does
// not follow redirects.
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}
}

type result struct {
	status   int
	location string
	header   http.Header
	body     string
}

func do(t *testing.T, c *http.Client, req *http.Request) result {
	t.Helper()
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return result{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		header:   resp.Header,
		body:     string(body),
	}
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) result {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.srv.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return do(t, c, req)
}

func (a *testApp) post(t *testing.T, c *http.Client, path string, form url.Values) result {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.srv.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, c, req)
}

// datastarPost sends the request a Datastar @post action would.
func (a *testApp) datastarPost(t *testing.T, c *http.Client, path string) result {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.srv.URL+path, strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return do(t, c, req)
}

func (a *testApp) signup(t *testing.T, c *http.Client, username string) {
	t.Helper()
	res := a.post(t, c, "/signup", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {testPassword},
		"confirm_password": {testPassword},
	})
	if res.status != http.StatusSeeOther {
		t.Fatalf("signup %s: expected 303, got %d: %s", username, res.status, res.body)
	}
}

func (a *testApp) login(t *testing.T, c *http.Client, username string) {
	t.Helper()
	res := a.post(t, c, "/login", url.Values{
		"email":    {username + "@example.com"},
		"password": {testPassword},
	})
	if res.status != http.StatusSeeOther {
		t.Fatalf("login %s: expected 303, got %d: %s", username, res.status, res.body)
	}
}

// member signs up and logs in username on a fresh client.
func (a *testApp) member(t *testing.T, username string) *http.Client {
	t.Helper()
	c := a.client(t)
	a.signup(t, c, username)
	a.login(t, c, username)
	return c
}

func (a *testApp) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := a.db.Users().GetByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("GetByUsername %s: %v", username, err)
	}
	return u
}
