package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/repository/sqlite"
	"github.com/matchbook/matchbook/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

type testEnv struct {
	db      *sqlite.DB
	auth    *service.AuthService
	users   *service.UserService
	posts   *service.PostService
	social  *service.SocialService
	avatars *service.AvatarService
}

func newTestEnv(t *testing.T) *testEnv {
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

	avatars := service.NewAvatarService(db.FileStore())
	return &testEnv{
		db: db,
		// Use cost 4 for fast tests.
		auth:    service.NewAuthService(db.Users(), testJWTSecret, 4),
		users:   service.NewUserService(db.Users(), avatars, 2),
		posts:   service.NewPostService(db.Posts(), 2),
		social:  service.NewSocialService(db.Users(), db.Follows(), 10),
		avatars: avatars,
	}
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), username, username+"@example.com", "password123")
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
	return u
}

func (e *testEnv) post(t *testing.T, author *domain.User, title string) *domain.Post {
	t.Helper()
	p, err := e.posts.Create(context.Background(), author.ID, title, "body of "+title)
	if err != nil {
		t.Fatalf("Create post %s: %v", title, err)
	}
	return p
}
