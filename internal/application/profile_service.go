package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
	"github.com/inkwellhq/inkwell/pkg/apperror"
)

const userSearchLimit = 50

// ProfileService serves the public user projection: search and profile
// lookup. It never exposes password hashes or the account's auth method.
type ProfileService struct {
	Users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{Users: users}
}

// SearchUsers matches usernames case-insensitively.
func (s *ProfileService) SearchUsers(ctx context.Context, query string) ([]*entity.User, error) {
	users, err := s.Users.SearchByUsername(ctx, query, userSearchLimit)
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	return users, nil
}

// GetProfile returns the public profile for a username.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &apperror.Error{Kind: apperror.NotFound, Message: "User not found", Status: http.StatusNotFound}
	}
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	return u, nil
}
