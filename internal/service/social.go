package service

import (
	"context"
	"fmt"

	"github.com/matchbook/matchbook/internal/domain"
)

// SocialService maintains the follow graph and assembles the matched feed.
type SocialService struct {
	users   domain.UserRepository
	follows domain.FollowRepository
	perPage int
}

// NewSocialService creates a new SocialService.
func NewSocialService(users domain.UserRepository, follows domain.FollowRepository, perPage int) *SocialService {
	return &SocialService{users: users, follows: follows, perPage: perPage}
}

// Follow makes actorID follow the user named username and returns that user.
// Following someone already followed is a no-op. Following yourself returns
// domain.ErrSelfFollow and changes nothing.
func (s *SocialService) Follow(ctx context.Context, actorID int64, username string) (*domain.User, error) {
	target, err := s.resolve(ctx, actorID, username)
	if err != nil {
		return nil, err
	}
	if err := s.follows.Add(ctx, actorID, target.ID); err != nil {
		return nil, fmt.Errorf("follow %s: %w", username, err)
	}
	return target, nil
}

// Unfollow removes the edge actorID → username if present.
func (s *SocialService) Unfollow(ctx context.Context, actorID int64, username string) (*domain.User, error) {
	target, err := s.resolve(ctx, actorID, username)
	if err != nil {
		return nil, err
	}
	if err := s.follows.Remove(ctx, actorID, target.ID); err != nil {
		return nil, fmt.Errorf("unfollow %s: %w", username, err)
	}
	return target, nil
}

func (s *SocialService) resolve(ctx context.Context, actorID int64, username string) (*domain.User, error) {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID == actorID {
		return nil, domain.ErrSelfFollow
	}
	return target, nil
}

func (s *SocialService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	if followerID == followedID {
		return false, nil
	}
	return s.follows.Exists(ctx, followerID, followedID)
}

// FollowingSet reports which of the given users followerID follows.
func (s *SocialService) FollowingSet(ctx context.Context, followerID int64, users []domain.User) (map[int64]bool, error) {
	set := make(map[int64]bool, len(users))
	for _, u := range users {
		ok, err := s.IsFollowing(ctx, followerID, u.ID)
		if err != nil {
			return nil, err
		}
		set[u.ID] = ok
	}
	return set, nil
}

func (s *SocialService) Followed(ctx context.Context, userID int64) ([]domain.User, error) {
	return s.follows.ListFollowed(ctx, userID)
}

func (s *SocialService) Followers(ctx context.Context, userID int64) ([]domain.User, error) {
	return s.follows.ListFollowers(ctx, userID)
}

// Counts returns how many users userID follows and how many follow userID.
func (s *SocialService) Counts(ctx context.Context, userID int64) (followed, followers int, err error) {
	if followed, err = s.follows.CountFollowed(ctx, userID); err != nil {
		return 0, 0, fmt.Errorf("count followed: %w", err)
	}
	if followers, err = s.follows.CountFollowers(ctx, userID); err != nil {
		return 0, 0, fmt.Errorf("count followers: %w", err)
	}
	return followed, followers, nil
}

// FollowedPosts returns one page of the matched feed: posts by everyone
// userID follows, newest first. The user's own posts are left out.
func (s *SocialService) FollowedPosts(ctx context.Context, userID int64, page int) (*domain.PostPage, error) {
	page, offset := pageBounds(page, s.perPage)

	posts, err := s.follows.FollowedPosts(ctx, userID, s.perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("followed posts: %w", err)
	}
	total, err := s.follows.CountFollowedPosts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count followed posts: %w", err)
	}
	return &domain.PostPage{Posts: posts, Page: page, PerPage: s.perPage, Total: total}, nil
}
