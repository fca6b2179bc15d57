package application

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
	"github.com/inkwellhq/inkwell/pkg/apperror"
)

func TestGetProfileNotFound(t *testing.T) {
	repo := &mockUserRepo{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewProfileService(repo)

	_, err := svc.GetProfile(context.Background(), "ghost")
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an apperror", err)
	}
	if ae.Message != "User not found" || ae.StatusCode() != 404 {
		t.Fatalf("got %q status %d, want User not found 404", ae.Message, ae.StatusCode())
	}
}

func TestGetProfileSuccess(t *testing.T) {
	repo := &mockUserRepo{
		GetByUsernameFn: func(ctx context.Context, username string) (*entity.User, error) {
			return &entity.User{Username: username, FullName: "Jane Doe"}, nil
		},
	}
	svc := NewProfileService(repo)

	u, err := svc.GetProfile(context.Background(), "jane")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if u.Username != "jane" || u.FullName != "Jane Doe" {
		t.Fatalf("user = %+v", u)
	}
}

func TestSearchUsersPassesLimit(t *testing.T) {
	var gotLimit int
	repo := &mockUserRepo{
		SearchByUsernameFn: func(ctx context.Context, query string, limit int) ([]*entity.User, error) {
			gotLimit = limit
			return []*entity.User{{Username: "jane"}}, nil
		},
	}
	svc := NewProfileService(repo)

	users, err := svc.SearchUsers(context.Background(), "ja")
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(users) != 1 || gotLimit != userSearchLimit {
		t.Fatalf("users=%v limit=%d", users, gotLimit)
	}
}
