package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matchbook/matchbook/internal/domain"
)

// UserService handles profiles, the member directory and account removal.
type UserService struct {
	users   domain.UserRepository
	avatars *AvatarService
	perPage int
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, avatars *AvatarService, perPage int) *UserService {
	return &UserService{users: users, avatars: avatars, perPage: perPage}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// List returns one page of the member directory.
func (s *UserService) List(ctx context.Context, page int) (*domain.UserPage, error) {
	page, offset := pageBounds(page, s.perPage)

	users, err := s.users.List(ctx, s.perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &domain.UserPage{Users: users, Page: page, PerPage: s.perPage, Total: total}, nil
}

// AccountUpdate carries the editable profile fields. Avatar is nil when no
// new picture was uploaded.
type AccountUpdate struct {
	Username string
	Email    string
	Bio      string
	Avatar   []byte
}

// UpdateAccount applies upd to the user. A new avatar replaces the old one,
// which is removed only after the profile change is stored.
func (s *UserService) UpdateAccount(ctx context.Context, userID int64, upd AccountUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Username == "" || upd.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrInvalidInput)
	}

	oldKey := user.AvatarKey
	newKey := ""
	if upd.Avatar != nil {
		newKey, err = s.avatars.Save(ctx, upd.Avatar)
		if err != nil {
			return nil, fmt.Errorf("save avatar: %w", err)
		}
		user.AvatarKey = newKey
	}

	user.Username = upd.Username
	user.Email = upd.Email
	user.Bio = upd.Bio

	if err := s.users.Update(ctx, user); err != nil {
		if newKey != "" {
			if rmErr := s.avatars.Remove(ctx, newKey); rmErr != nil {
				slog.Warn("remove unused avatar", "key", newKey, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if newKey != "" && oldKey != "" {
		if err := s.avatars.Remove(ctx, oldKey); err != nil {
			slog.Warn("remove replaced avatar", "key", oldKey, "error", err)
		}
	}
	return user, nil
}

// Delete removes targetID's account. Only the account owner may do this.
// Posts and follow edges are removed by the store; the avatar file is
// removed here.
func (s *UserService) Delete(ctx context.Context, actorID, targetID int64) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.ID != actorID {
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.avatars.Remove(ctx, target.AvatarKey); err != nil {
		slog.Warn("remove avatar of deleted user", "user_id", target.ID, "error", err)
	}
	return nil
}
