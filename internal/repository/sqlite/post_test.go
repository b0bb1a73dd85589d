package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchbook/matchbook/internal/domain"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "writer")
	post := createPost(t, db, author, "Hello")

	if post.ID == 0 {
		t.Fatal("expected post ID to be set")
	}

	got, err := db.Posts().GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Hello" || got.UserID != author.ID {
		t.Fatalf("unexpected post: %+v", got)
	}
	if got.Author == nil || got.Author.Username != "writer" {
		t.Fatalf("expected author to be joined, got %+v", got.Author)
	}
}

func TestPostRepository_ListByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "writer")
	other := createUser(t, db, "other")
	first := createPost(t, db, author, "first")
	second := createPost(t, db, author, "second")
	createPost(t, db, other, "not mine")

	posts, err := db.Posts().ListByUser(ctx, author.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != second.ID || posts[1].ID != first.ID {
		t.Fatalf("expected newest first, got %d then %d", posts[0].ID, posts[1].ID)
	}

	n, err := db.Posts().CountByUser(ctx, author.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}
}

func TestPostRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "writer")
	post := createPost(t, db, author, "draft")

	post.Title = "final"
	post.Content = "edited"
	if err := db.Posts().Update(ctx, post); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := db.Posts().GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "final" || got.Content != "edited" {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := db.Posts().Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Posts().GetByID(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := db.Posts().Update(ctx, post); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating deleted post, got %v", err)
	}
}
