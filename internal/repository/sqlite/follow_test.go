package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchbook/matchbook/internal/domain"
)

func TestFollowRepository_AddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := db.Follows()
	ctx := context.Background()

	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	for i := 0; i < 2; i++ {
		if err := repo.Add(ctx, a.ID, b.ID); err != nil {
			t.Fatalf("Add #%d: %v", i+1, err)
		}
	}

	n, err := repo.CountFollowed(ctx, a.ID)
	if err != nil {
		t.Fatalf("CountFollowed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one edge, got %d", n)
	}

	ok, err := repo.Exists(ctx, a.ID, b.ID)
	if err != nil || !ok {
		t.Fatalf("expected alice to follow bob (ok=%v, err=%v)", ok, err)
	}
	ok, err = repo.Exists(ctx, b.ID, a.ID)
	if err != nil || ok {
		t.Fatalf("edge must be directed (ok=%v, err=%v)", ok, err)
	}
}

func TestFollowRepository_RejectsSelf(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createUser(t, db, "alice")
	if err := db.Follows().Add(ctx, a.ID, a.ID); !errors.Is(err, domain.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowRepository_RemoveMissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	if err := db.Follows().Remove(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("Remove missing edge: %v", err)
	}
}

func TestFollowRepository_ListsBothSides(t *testing.T) {
	db := newTestDB(t)
	repo := db.Follows()
	ctx := context.Background()

	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")
	for _, edge := range [][2]int64{{a.ID, c.ID}, {a.ID, b.ID}, {b.ID, c.ID}} {
		if err := repo.Add(ctx, edge[0], edge[1]); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	followed, err := repo.ListFollowed(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListFollowed: %v", err)
	}
	if len(followed) != 2 || followed[0].Username != "bob" || followed[1].Username != "carol" {
		t.Fatalf("unexpected followed list: %+v", followed)
	}

	followers, err := repo.ListFollowers(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListFollowers: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("expected 2 followers, got %d", len(followers))
	}
	n, _ := repo.CountFollowers(ctx, c.ID)
	if n != 2 {
		t.Fatalf("expected follower count 2, got %d", n)
	}
}

func TestFollowRepository_FollowedPosts(t *testing.T) {
	db := newTestDB(t)
	repo := db.Follows()
	ctx := context.Background()

	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")
	d := createUser(t, db, "dave")

	if err := repo.Add(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Add(ctx, a.ID, c.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	b1 := createPost(t, db, b, "b1")
	createPost(t, db, a, "own post")
	c1 := createPost(t, db, c, "c1")
	createPost(t, db, d, "stranger")
	b2 := createPost(t, db, b, "b2")

	posts, err := repo.FollowedPosts(ctx, a.ID, 10, 0)
	if err != nil {
		t.Fatalf("FollowedPosts: %v", err)
	}
	want := []int64{b2.ID, c1.ID, b1.ID}
	if len(posts) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(posts))
	}
	for i, id := range want {
		if posts[i].ID != id {
			t.Fatalf("position %d: expected post %d, got %d", i, id, posts[i].ID)
		}
	}

	n, err := repo.CountFollowedPosts(ctx, a.ID)
	if err != nil {
		t.Fatalf("CountFollowedPosts: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}

	page2, err := repo.FollowedPosts(ctx, a.ID, 2, 2)
	if err != nil {
		t.Fatalf("FollowedPosts page 2: %v", err)
	}
	if len(page2) != 1 || page2[0].ID != b1.ID {
		t.Fatalf("unexpected second page: %+v", page2)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	if err := db.Follows().Add(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := db.Follows().Add(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	post := createPost(t, db, b, "bye")

	if err := db.Users().Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := db.Posts().GetByID(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected post to be cascade-deleted, got %v", err)
	}

	var edges int
	if err := db.SqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM follows WHERE follower_id = ? OR followed_id = ?", b.ID, b.ID,
	).Scan(&edges); err != nil {
		t.Fatalf("count edges: %v", err)
	}
	if edges != 0 {
		t.Fatalf("expected no edges referencing deleted user, got %d", edges)
	}
}
