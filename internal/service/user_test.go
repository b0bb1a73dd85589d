package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/service"
)

func TestUserService_ListPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"ann", "ben", "cat"} {
		env.register(t, name)
	}

	first, err := env.users.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first.Users) != 2 || first.Total != 3 || !first.HasNext() {
		t.Fatalf("unexpected first page: %+v", first)
	}

	second, err := env.users.List(ctx, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(second.Users) != 1 || second.HasNext() {
		t.Fatalf("unexpected second page: %+v", second)
	}
}

func TestUserService_UpdateAccountReplacesAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	updated, err := env.users.UpdateAccount(ctx, u.ID, service.AccountUpdate{
		Username: "alice",
		Email:    "alice@example.com",
		Bio:      "hello",
		Avatar:   pngBytes(t, 50, 50),
	})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	firstKey := updated.AvatarKey
	if firstKey == "" {
		t.Fatal("expected avatar key to be set")
	}

	updated, err = env.users.UpdateAccount(ctx, u.ID, service.AccountUpdate{
		Username: "alice2",
		Email:    "alice@example.com",
		Avatar:   pngBytes(t, 60, 60),
	})
	if err != nil {
		t.Fatalf("UpdateAccount #2: %v", err)
	}
	if updated.AvatarKey == firstKey {
		t.Fatal("expected a fresh avatar key")
	}
	if _, err := env.avatars.Get(ctx, firstKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("old avatar should be gone, got %v", err)
	}

	got, err := env.users.GetByUsername(ctx, "alice2")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.Bio != "" || got.AvatarKey != updated.AvatarKey {
		t.Fatalf("unexpected stored user: %+v", got)
	}
}

func TestUserService_UpdateAccountKeepsAvatarWithoutUpload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")

	withPic, err := env.users.UpdateAccount(ctx, u.ID, service.AccountUpdate{
		Username: "alice", Email: "alice@example.com", Avatar: pngBytes(t, 20, 20),
	})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}

	noPic, err := env.users.UpdateAccount(ctx, u.ID, service.AccountUpdate{
		Username: "alice", Email: "alice@example.com", Bio: "new bio",
	})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if noPic.AvatarKey != withPic.AvatarKey {
		t.Fatalf("avatar key changed without upload: %q -> %q", withPic.AvatarKey, noPic.AvatarKey)
	}
}

func TestUserService_UpdateAccountDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice")
	bob := env.register(t, "bob")

	_, err := env.users.UpdateAccount(ctx, bob.ID, service.AccountUpdate{
		Username: "alice", Email: "bob@example.com",
	})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserService_DeleteOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	if err := env.users.Delete(ctx, alice.ID, bob.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := env.users.GetByID(ctx, bob.ID); err != nil {
		t.Fatalf("bob must still exist: %v", err)
	}
}

func TestUserService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	bob, err := env.users.UpdateAccount(ctx, bob.ID, service.AccountUpdate{
		Username: "bob", Email: "bob@example.com", Avatar: pngBytes(t, 30, 30),
	})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	post := env.post(t, bob, "bye")
	if _, err := env.social.Follow(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if _, err := env.social.Follow(ctx, bob.ID, "alice"); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	if err := env.users.Delete(ctx, bob.ID, bob.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := env.users.GetByID(ctx, bob.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("user: expected ErrNotFound, got %v", err)
	}
	if _, err := env.posts.GetByID(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("post: expected ErrNotFound, got %v", err)
	}
	if _, err := env.avatars.Get(ctx, bob.AvatarKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("avatar: expected ErrNotFound, got %v", err)
	}
	followed, followers, err := env.social.Counts(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if followed != 0 || followers != 0 {
		t.Fatalf("expected no edges left, got %d followed / %d followers", followed, followers)
	}
}
