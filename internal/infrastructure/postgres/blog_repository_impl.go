package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogListColumns = `b.id, b.blog_id, b.title, b.des, b.banner, b.content, b.tags, b.author_id,
	b.draft, b.total_reads, b.total_likes, b.published_at, b.updated_at,
	u.fullname, u.username, u.profile_img`

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	b := &entity.Blog{Author: &entity.Author{}}
	err := row.Scan(&b.ID, &b.BlogID, &b.Title, &b.Des, &b.Banner, &b.Content, &b.Tags, &b.AuthorID,
		&b.Draft, &b.TotalReads, &b.TotalLikes, &b.PublishedAt, &b.UpdatedAt,
		&b.Author.FullName, &b.Author.Username, &b.Author.ProfileImg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (blog_id, title, des, banner, content, tags, author_id, draft)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, published_at, updated_at
	`, b.BlogID, b.Title, b.Des, b.Banner, b.Content, b.Tags, b.AuthorID, b.Draft)

	return row.Scan(&b.ID, &b.PublishedAt, &b.UpdatedAt)
}

func (r *BlogRepository) ListLatest(ctx context.Context, page, limit int) ([]*entity.Blog, error) {
	return r.queryBlogs(ctx, `
		SELECT `+blogListColumns+`
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE NOT b.draft
		ORDER BY b.published_at DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
}

func (r *BlogRepository) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM blogs WHERE NOT draft`).Scan(&n)
	return n, err
}

func (r *BlogRepository) ListTrending(ctx context.Context, limit int) ([]*entity.Blog, error) {
	return r.queryBlogs(ctx, `
		SELECT `+blogListColumns+`
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE NOT b.draft
		ORDER BY b.total_reads DESC, b.total_likes DESC, b.published_at DESC
		LIMIT $1
	`, limit)
}

func searchClause(f repository.BlogFilter) (string, any) {
	switch {
	case f.Tag != "":
		return `$1 = ANY (b.tags)`, f.Tag
	case f.Query != "":
		return `b.title ILIKE '%' || $1 || '%'`, f.Query
	default:
		return `u.username = $1`, f.Author
	}
}

func (r *BlogRepository) Search(ctx context.Context, f repository.BlogFilter, page, limit int) ([]*entity.Blog, error) {
	clause, arg := searchClause(f)
	q := fmt.Sprintf(`
		SELECT %s
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE NOT b.draft AND %s
		ORDER BY b.published_at DESC
		LIMIT $2 OFFSET $3
	`, blogListColumns, clause)
	return r.queryBlogs(ctx, q, arg, limit, (page-1)*limit)
}

func (r *BlogRepository) CountSearch(ctx context.Context, f repository.BlogFilter) (int64, error) {
	clause, arg := searchClause(f)
	q := fmt.Sprintf(`
		SELECT count(*)
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE NOT b.draft AND %s
	`, clause)
	var n int64
	err := r.pool.QueryRow(ctx, q, arg).Scan(&n)
	return n, err
}

func (r *BlogRepository) ListByBlogIDs(ctx context.Context, ids []string) ([]*entity.Blog, error) {
	if len(ids) == 0 {
		return []*entity.Blog{}, nil
	}
	return r.queryBlogs(ctx, `
		SELECT `+blogListColumns+`
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE NOT b.draft AND b.blog_id = ANY ($1)
	`, ids)
}

func (r *BlogRepository) GetByBlogIDAndIncrementReads(ctx context.Context, blogID string) (*entity.Blog, error) {
	row := r.pool.QueryRow(ctx, `
		WITH bumped AS (
			UPDATE blogs SET total_reads = total_reads + 1
			WHERE blog_id = $1
			RETURNING *
		)
		SELECT `+blogListColumns+`
		FROM bumped b JOIN users u ON u.id = b.author_id
	`, blogID)
	return scanBlog(row)
}

func (r *BlogRepository) queryBlogs(ctx context.Context, q string, args ...any) ([]*entity.Blog, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := make([]*entity.Blog, 0)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
