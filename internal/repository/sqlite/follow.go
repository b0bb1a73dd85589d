package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/matchbook/matchbook/internal/domain"
)

// followRepo implements domain.FollowRepository using SQLite.
type followRepo struct {
	db *sql.DB
}

// Add relies on the primary key for idempotency, so two concurrent
// identical follows both succeed and leave exactly one edge.
func (r *followRepo) Add(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return domain.ErrSelfFollow
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followed_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (follower_id, followed_id) DO NOTHING`,
		followerID, followedID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *followRepo) Remove(ctx context.Context, followerID, followedID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM follows WHERE follower_id = ? AND followed_id = ?", followerID, followedID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *followRepo) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?)",
		followerID, followedID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}

func (r *followRepo) ListFollowed(ctx context.Context, userID int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.bio, u.avatar_key, u.created_at, u.updated_at
		 FROM follows f JOIN users u ON u.id = f.followed_id
		 WHERE f.follower_id = ? ORDER BY u.username`, userID)
	if err != nil {
		return nil, fmt.Errorf("list followed: %w", err)
	}
	return collectUsers(rows)
}

func (r *followRepo) ListFollowers(ctx context.Context, userID int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.bio, u.avatar_key, u.created_at, u.updated_at
		 FROM follows f JOIN users u ON u.id = f.follower_id
		 WHERE f.followed_id = ? ORDER BY u.username`, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return collectUsers(rows)
}

func (r *followRepo) CountFollowed(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM follows WHERE follower_id = ?", userID)
}

func (r *followRepo) CountFollowers(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM follows WHERE followed_id = ?", userID)
}

func (r *followRepo) FollowedPosts(ctx context.Context, userID int64, limit, offset int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		postWithAuthor+`
		 JOIN follows f ON f.followed_id = p.user_id
		 WHERE f.follower_id = ?
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list followed posts: %w", err)
	}
	return collectPosts(rows)
}

func (r *followRepo) CountFollowedPosts(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM posts p JOIN follows f ON f.followed_id = p.user_id WHERE f.follower_id = ?`,
		userID)
}

func (r *followRepo) count(ctx context.Context, query string, userID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
