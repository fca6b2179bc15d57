package repository

import (
	"context"
	"errors"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
)

// Sentinel errors surfaced by repository implementations. The storage layer's
// unique indexes are the serialization point for the email and username
// invariants; concurrent creates race at the index, not in process.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SearchByUsername(ctx context.Context, query string, limit int) ([]*entity.User, error)
	IncrementTotalPosts(ctx context.Context, id string, delta int64) error
	IncrementTotalReads(ctx context.Context, id string, delta int64) error
}
