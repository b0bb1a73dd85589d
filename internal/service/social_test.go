package service_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/matchbook/matchbook/internal/domain"
)

func followedNames(t *testing.T, env *testEnv, userID int64) []string {
	t.Helper()
	users, err := env.social.Followed(context.Background(), userID)
	if err != nil {
		t.Fatalf("Followed: %v", err)
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names
}

func TestSocialService_FollowUnfollowRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")
	env.register(t, "bob")
	env.register(t, "carol")

	if _, err := env.social.Follow(ctx, a.ID, "carol"); err != nil {
		t.Fatalf("Follow carol: %v", err)
	}
	before := followedNames(t, env, a.ID)

	if _, err := env.social.Follow(ctx, a.ID, "bob"); err != nil {
		t.Fatalf("Follow bob: %v", err)
	}
	if _, err := env.social.Unfollow(ctx, a.ID, "bob"); err != nil {
		t.Fatalf("Unfollow bob: %v", err)
	}

	after := followedNames(t, env, a.ID)
	if !slices.Equal(before, after) {
		t.Fatalf("graph changed by follow+unfollow: before=%v after=%v", before, after)
	}
}

func TestSocialService_FollowIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")
	b := env.register(t, "bob")

	for i := 0; i < 3; i++ {
		if _, err := env.social.Follow(ctx, a.ID, "bob"); err != nil {
			t.Fatalf("Follow #%d: %v", i+1, err)
		}
	}
	followed, followers, err := env.social.Counts(ctx, a.ID)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if followed != 1 || followers != 0 {
		t.Fatalf("expected 1 followed / 0 followers, got %d / %d", followed, followers)
	}

	ok, err := env.social.IsFollowing(ctx, a.ID, b.ID)
	if err != nil || !ok {
		t.Fatalf("IsFollowing = %v, %v", ok, err)
	}

	for i := 0; i < 2; i++ {
		if _, err := env.social.Unfollow(ctx, a.ID, "bob"); err != nil {
			t.Fatalf("Unfollow #%d: %v", i+1, err)
		}
	}
	if ok, _ := env.social.IsFollowing(ctx, a.ID, b.ID); ok {
		t.Fatal("expected edge to be gone")
	}
}

func TestSocialService_SelfFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")

	if _, err := env.social.Follow(ctx, a.ID, "alice"); !errors.Is(err, domain.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
	if _, err := env.social.Unfollow(ctx, a.ID, "alice"); !errors.Is(err, domain.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow on unfollow, got %v", err)
	}
	if names := followedNames(t, env, a.ID); len(names) != 0 {
		t.Fatalf("graph must be unchanged, got %v", names)
	}
}

func TestSocialService_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "alice")

	if _, err := env.social.Follow(context.Background(), a.ID, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSocialService_FollowedPostsIsUnionNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")
	b := env.register(t, "bob")
	c := env.register(t, "carol")
	d := env.register(t, "dave")

	for _, name := range []string{"bob", "carol"} {
		if _, err := env.social.Follow(ctx, a.ID, name); err != nil {
			t.Fatalf("Follow %s: %v", name, err)
		}
	}

	var want []int64
	want = append(want, env.post(t, b, "b1").ID)
	env.post(t, a, "mine")
	want = append(want, env.post(t, c, "c1").ID)
	env.post(t, d, "stranger")
	want = append(want, env.post(t, b, "b2").ID)
	slices.Reverse(want)

	page, err := env.social.FollowedPosts(ctx, a.ID, 1)
	if err != nil {
		t.Fatalf("FollowedPosts: %v", err)
	}
	if page.Total != len(want) {
		t.Fatalf("expected total %d, got %d", len(want), page.Total)
	}

	got := make([]int64, 0, len(page.Posts))
	for _, p := range page.Posts {
		got = append(got, p.ID)
		if p.Author == nil || (p.Author.ID != b.ID && p.Author.ID != c.ID) {
			t.Fatalf("post %d has unexpected author %+v", p.ID, p.Author)
		}
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if page.HasNext() {
		t.Fatal("everything fits on one page")
	}
}

func TestSocialService_DeletedUserLeavesFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")
	b := env.register(t, "bob")

	if _, err := env.social.Follow(ctx, a.ID, "bob"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	env.post(t, b, "P")

	page, err := env.social.FollowedPosts(ctx, a.ID, 1)
	if err != nil || len(page.Posts) != 1 {
		t.Fatalf("expected P in feed, got %+v (err %v)", page, err)
	}

	if err := env.users.Delete(ctx, b.ID, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	page, err = env.social.FollowedPosts(ctx, a.ID, 1)
	if err != nil {
		t.Fatalf("FollowedPosts: %v", err)
	}
	if len(page.Posts) != 0 {
		t.Fatalf("expected empty feed after author deletion, got %d posts", len(page.Posts))
	}
	if names := followedNames(t, env, a.ID); len(names) != 0 {
		t.Fatalf("expected bob to be gone from followed, got %v", names)
	}
}
