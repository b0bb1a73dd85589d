package service

import (
	"context"
	"fmt"

	"github.com/matchbook/matchbook/internal/domain"
)

// PostService handles post CRUD with author checks.
type PostService struct {
	posts   domain.PostRepository
	perPage int
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository, perPage int) *PostService {
	return &PostService{posts: posts, perPage: perPage}
}

// Create stores a new post written by userID.
func (s *PostService) Create(ctx context.Context, userID int64, title, content string) (*domain.Post, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	post := &domain.Post{UserID: userID, Title: title, Content: content}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListByUser returns one page of a user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID int64, page int) (*domain.PostPage, error) {
	page, offset := pageBounds(page, s.perPage)

	posts, err := s.posts.ListByUser(ctx, userID, s.perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	total, err := s.posts.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	return &domain.PostPage{Posts: posts, Page: page, PerPage: s.perPage, Total: total}, nil
}

// GetForEdit returns the post if actorID wrote it.
func (s *PostService) GetForEdit(ctx context.Context, actorID, id int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

// Update changes title and content. Only the author may update a post.
func (s *PostService) Update(ctx context.Context, actorID, id int64, title, content string) (*domain.Post, error) {
	post, err := s.GetForEdit(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.GetForEdit(ctx, actorID, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}
