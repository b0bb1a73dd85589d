package domain

import (
	"context"
	"time"
)

// Post is a short text entry written by exactly one user.
type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author is populated by list queries that join users.
	Author *User
}

// PostPage is one page of posts ordered newest first.
type PostPage struct {
	Posts   []Post
	Page    int
	PerPage int
	Total   int
}

// HasNext reports whether another page follows this one.
func (p *PostPage) HasNext() bool {
	return p.Page*p.PerPage < p.Total
}

// NextPage returns the page number after this one.
func (p *PostPage) NextPage() int {
	return p.Page + 1
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Post, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
