package repository

import (
	"context"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
)

// BlogFilter narrows blog searches. Exactly one of Tag, Query, Author is
// expected to be set; all matches are restricted to published posts.
type BlogFilter struct {
	Tag    string
	Query  string // title substring, case-insensitive
	Author string // author username
}

// BlogRepository defines blog persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	ListLatest(ctx context.Context, page, limit int) ([]*entity.Blog, error)
	CountPublished(ctx context.Context) (int64, error)
	ListTrending(ctx context.Context, limit int) ([]*entity.Blog, error)
	Search(ctx context.Context, f BlogFilter, page, limit int) ([]*entity.Blog, error)
	// ListByBlogIDs returns the published posts among ids, in no particular
	// order.
	ListByBlogIDs(ctx context.Context, ids []string) ([]*entity.Blog, error)
	CountSearch(ctx context.Context, f BlogFilter) (int64, error)
	// GetByBlogIDAndIncrementReads returns the post (with author projection)
	// and atomically bumps its read counter.
	GetByBlogIDAndIncrementReads(ctx context.Context, blogID string) (*entity.Blog, error)
}
