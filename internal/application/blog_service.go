package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
	"github.com/inkwellhq/inkwell/pkg/apperror"
	"github.com/inkwellhq/inkwell/pkg/helpers"
)

const (
	latestPageSize   = 5
	searchPageSize   = 4
	trendingSize     = 5
	blogSuffixLen    = 10
	maxTags          = 10
	maxDesLen        = 200
	trendingCacheKey = "blogs:trending"
	countCacheKey    = "blogs:published:count"
	feedCacheTTL     = time.Minute
)

var slugStrip = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
var slugSpaces = regexp.MustCompile(`\s+`)

// BlogService serves the content collaborator surface: feeds, search, and
// authoring. Redis caches the trending feed and the published count;
// Elasticsearch, when configured, backs title search with a Postgres ILIKE
// fallback.
type BlogService struct {
	Blogs   repository.BlogRepository
	Users   repository.UserRepository
	Redis   *redis.Client
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *BlogService {
	return &BlogService{Blogs: blogs, Users: users, Redis: rdb, ES: es, ESIndex: esIndex, Logger: logger}
}

// CreateBlogInput is the authoring payload.
type CreateBlogInput struct {
	Title   string
	Des     string
	Banner  string
	Content json.RawMessage
	Tags    []string
	Draft   bool
}

type blocksDoc struct {
	Blocks []json.RawMessage `json:"blocks"`
}

// CreateBlog validates and stores a post for the authenticated author.
// Published posts bump the author's total_posts counter.
func (s *BlogService) CreateBlog(ctx context.Context, authorID string, in CreateBlogInput) (string, error) {
	if in.Title == "" {
		return "", apperror.NewInvalidInput("You must provide a title")
	}
	if !in.Draft {
		if in.Des == "" || len(in.Des) > maxDesLen {
			return "", apperror.NewInvalidInput("You must provide a blog description under 200 characters")
		}
		if in.Banner == "" {
			return "", apperror.NewInvalidInput("You must provide a blog banner to publish it")
		}
		var doc blocksDoc
		if err := json.Unmarshal(in.Content, &doc); err != nil || len(doc.Blocks) == 0 {
			return "", apperror.NewInvalidInput("There must be some blog content to publish it")
		}
		if len(in.Tags) == 0 || len(in.Tags) > maxTags {
			return "", apperror.NewInvalidInput("Provide tags in order to publish the blog, maximum 10")
		}
	}

	tags := make([]string, len(in.Tags))
	for i, t := range in.Tags {
		tags[i] = strings.ToLower(t)
	}

	blogID, err := makeBlogID(in.Title)
	if err != nil {
		return "", apperror.NewInternal("something went wrong", err)
	}

	b := &entity.Blog{
		BlogID:   blogID,
		Title:    in.Title,
		Des:      in.Des,
		Banner:   in.Banner,
		Content:  in.Content,
		Tags:     tags,
		AuthorID: authorID,
		Draft:    in.Draft,
	}
	if err := s.Blogs.Create(ctx, b); err != nil {
		return "", apperror.NewInternal("something went wrong", err)
	}

	if !in.Draft {
		if err := s.Users.IncrementTotalPosts(ctx, authorID, 1); err != nil {
			return "", apperror.NewInternal("Failed to update total posts number", err)
		}
		s.invalidateFeeds(ctx)
		s.indexBlog(ctx, b)
	}
	return b.BlogID, nil
}

// LatestBlogs lists published posts, newest first.
func (s *BlogService) LatestBlogs(ctx context.Context, page int) ([]*entity.Blog, error) {
	if page < 1 {
		page = 1
	}
	blogs, err := s.Blogs.ListLatest(ctx, page, latestPageSize)
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	return blogs, nil
}

// CountLatest returns the published-post count, cached briefly in Redis.
func (s *BlogService) CountLatest(ctx context.Context) (int64, error) {
	if s.Redis != nil {
		var cached int64
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, countCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	n, err := s.Blogs.CountPublished(ctx)
	if err != nil {
		return 0, apperror.NewInternal("something went wrong", err)
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, countCacheKey, n, feedCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("cache published count failed")
		}
	}
	return n, nil
}

// TrendingBlogs returns the top posts by reads, likes, then recency.
func (s *BlogService) TrendingBlogs(ctx context.Context) ([]*entity.Blog, error) {
	if s.Redis != nil {
		var cached []*entity.Blog
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, trendingCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	blogs, err := s.Blogs.ListTrending(ctx, trendingSize)
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, trendingCacheKey, blogs, feedCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("cache trending feed failed")
		}
	}
	return blogs, nil
}

// SearchBlogs finds published posts by tag, title query, or author username.
// Title queries go through Elasticsearch when configured and fall back to
// the Postgres ILIKE path otherwise.
func (s *BlogService) SearchBlogs(ctx context.Context, f repository.BlogFilter, page int) ([]*entity.Blog, error) {
	if page < 1 {
		page = 1
	}
	if f.Query != "" && s.ES != nil && s.ESIndex != "" {
		ids, _, err := s.searchTitleES(ctx, f.Query, page, searchPageSize)
		if err == nil {
			blogs, err := s.Blogs.ListByBlogIDs(ctx, ids)
			if err != nil {
				return nil, apperror.NewInternal("something went wrong", err)
			}
			return orderByIDs(blogs, ids), nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es title search failed, falling back to sql")
		}
	}
	blogs, err := s.Blogs.Search(ctx, f, page, searchPageSize)
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	return blogs, nil
}

// CountSearch returns the total matches for a search filter.
func (s *BlogService) CountSearch(ctx context.Context, f repository.BlogFilter) (int64, error) {
	if f.Query != "" && s.ES != nil && s.ESIndex != "" {
		if _, total, err := s.searchTitleES(ctx, f.Query, 1, 0); err == nil {
			return total, nil
		} else if s.Logger != nil {
			s.Logger.WithError(err).Warn("es title count failed, falling back to sql")
		}
	}
	n, err := s.Blogs.CountSearch(ctx, f)
	if err != nil {
		return 0, apperror.NewInternal("something went wrong", err)
	}
	return n, nil
}

// searchTitleES runs a match query against the blogs index and returns the
// matching slugs plus the total hit count. size 0 means count only.
func (s *BlogService) searchTitleES(ctx context.Context, q string, page, size int) ([]string, int64, error) {
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{"title": q},
		},
		"from":             (page - 1) * size,
		"size":             size,
		"track_total_hits": true,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, 0, errors.New("es search: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}

func orderByIDs(blogs []*entity.Blog, ids []string) []*entity.Blog {
	byID := make(map[string]*entity.Blog, len(blogs))
	for _, b := range blogs {
		byID[b.BlogID] = b
	}
	out := make([]*entity.Blog, 0, len(blogs))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// GetBlog fetches a post by its slug and bumps its read counters.
func (s *BlogService) GetBlog(ctx context.Context, blogID string) (*entity.Blog, error) {
	b, err := s.Blogs.GetByBlogIDAndIncrementReads(ctx, blogID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &apperror.Error{Kind: apperror.NotFound, Message: "Blog not found", Status: http.StatusNotFound}
	}
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	if err := s.Users.IncrementTotalReads(ctx, b.AuthorID, 1); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("blog_id", blogID).Warn("bump author read count failed")
	}
	return b, nil
}

func (s *BlogService) invalidateFeeds(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, trendingCacheKey, countCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("invalidate feed caches failed")
	}
}

// indexBlog pushes the listing projection to Elasticsearch. Best effort.
func (s *BlogService) indexBlog(ctx context.Context, b *entity.Blog) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"blog_id":      b.BlogID,
		"title":        b.Title,
		"des":          b.Des,
		"tags":         b.Tags,
		"published_at": b.PublishedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: b.BlogID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("blog_id", b.BlogID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("blog_id", b.BlogID).Warn("es index response error")
	}
}

// makeBlogID slugifies the title and appends a random suffix to keep slugs
// unique without coordinating writers.
func makeBlogID(title string) (string, error) {
	slug := slugStrip.ReplaceAllString(title, "")
	slug = slugSpaces.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = strings.ToLower(slug)
	suffix, err := helpers.RandomSuffix(blogSuffixLen)
	if err != nil {
		return "", err
	}
	if slug == "" {
		return suffix, nil
	}
	return slug + "-" + suffix, nil
}
