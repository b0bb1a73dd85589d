package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/view"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestLayout_EscapesUserContent(t *testing.T) {
	nav := view.Nav{Flash: view.Flash{Kind: "info", Message: "<b>hi</b>"}}
	html := render(t, view.AboutPage(nav))

	if strings.Contains(html, "<b>hi</b>") {
		t.Fatal("flash message must be escaped")
	}
	if !strings.Contains(html, "&lt;b&gt;hi&lt;/b&gt;") {
		t.Fatalf("expected escaped flash, got %s", html)
	}
	if !strings.Contains(html, `href="/login"`) {
		t.Fatal("anonymous nav should offer log in")
	}
}

func TestFollowButton_Toggles(t *testing.T) {
	bob := &domain.User{ID: 7, Username: "bob"}

	follow := render(t, view.FollowButton(bob, false))
	if !strings.Contains(follow, `id="follow-7"`) || !strings.Contains(follow, `action="/follow/bob"`) {
		t.Fatalf("unexpected follow button: %s", follow)
	}

	unfollow := render(t, view.FollowButton(bob, true))
	if !strings.Contains(unfollow, `action="/unfollow/bob"`) || !strings.Contains(unfollow, "Unfollow") {
		t.Fatalf("unexpected unfollow button: %s", unfollow)
	}
}

func TestMatchedMore(t *testing.T) {
	more := render(t, view.MatchedMore(&domain.PostPage{Page: 1, PerPage: 2, Total: 3}))
	if !strings.Contains(more, "/matched/more?page=2") {
		t.Fatalf("expected link to page 2, got %s", more)
	}

	last := render(t, view.MatchedMore(&domain.PostPage{Page: 2, PerPage: 2, Total: 3}))
	if strings.Contains(last, "Load more") {
		t.Fatalf("last page should not offer more, got %s", last)
	}
}

func TestPostDetailPage_AuthorActions(t *testing.T) {
	author := &domain.User{ID: 1, Username: "ann"}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	post := &domain.Post{ID: 3, UserID: 1, Title: "Hello", Content: "World", CreatedAt: now, UpdatedAt: now, Author: author}

	own := render(t, view.PostDetailPage(view.Nav{User: author}, post))
	if !strings.Contains(own, `action="/post/3/delete"`) {
		t.Fatal("author should see delete")
	}

	other := render(t, view.PostDetailPage(view.Nav{User: &domain.User{ID: 2, Username: "ben"}}, post))
	if strings.Contains(other, "/post/3/delete") {
		t.Fatal("non-author must not see delete")
	}
}
