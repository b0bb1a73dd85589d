package domain

import (
	"context"
	"time"
)

// User represents a registered member. AvatarKey is empty until the user
// uploads a profile picture.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Bio          string
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPage is one page of the member directory.
type UserPage struct {
	Users   []User
	Page    int
	PerPage int
	Total   int
}

// HasNext reports whether another page follows this one.
func (p *UserPage) HasNext() bool {
	return p.Page*p.PerPage < p.Total
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, user *User) error
	// Delete removes the user. Posts and follow edges go with it.
	Delete(ctx context.Context, id int64) error
}
