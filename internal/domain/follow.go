package domain

import (
	"context"
	"time"
)

// Follow is a directed edge: FollowerID wants to see FollowedID's posts.
// The pair is unique and never points at itself.
type Follow struct {
	FollowerID int64
	FollowedID int64
	CreatedAt  time.Time
}

// FollowRepository stores the follow graph and derives the matched feed.
type FollowRepository interface {
	// Add inserts the edge if it is absent. Adding an existing edge is a no-op.
	Add(ctx context.Context, followerID, followedID int64) error
	// Remove deletes the edge if present. Removing a missing edge is a no-op.
	Remove(ctx context.Context, followerID, followedID int64) error
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	ListFollowed(ctx context.Context, userID int64) ([]User, error)
	ListFollowers(ctx context.Context, userID int64) ([]User, error)
	CountFollowed(ctx context.Context, userID int64) (int, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	// FollowedPosts returns posts written by users that userID follows,
	// newest first. The user's own posts are not included.
	FollowedPosts(ctx context.Context, userID int64, limit, offset int) ([]Post, error)
	CountFollowedPosts(ctx context.Context, userID int64) (int, error)
}
