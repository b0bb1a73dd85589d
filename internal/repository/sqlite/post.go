package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/matchbook/matchbook/internal/domain"
)

// postRepo implements domain.PostRepository using SQLite.
type postRepo struct {
	db *sql.DB
}

// postWithAuthor selects a post and its author in one row; see scanPostWithAuthor.
const postWithAuthor = `
	SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at,
	       u.id, u.username, u.email, u.bio, u.avatar_key, u.created_at, u.updated_at
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func scanPostWithAuthor(row interface{ Scan(...any) error }) (domain.Post, error) {
	var p domain.Post
	a := &domain.User{}
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt,
		&a.ID, &a.Username, &a.Email, &a.Bio, &a.AvatarKey, &a.CreatedAt, &a.UpdatedAt)
	p.Author = a
	return p, err
}

func collectPosts(rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		post.UserID, post.Title, post.Content, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get post id: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := scanPostWithAuthor(r.db.QueryRowContext(ctx, postWithAuthor+` WHERE p.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (r *postRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		postWithAuthor+` WHERE p.user_id = ? ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows)
}

func (r *postRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE user_id = ?", userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *postRepo) Update(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		post.Title, post.Content, now, post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	post.UpdatedAt = now
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
