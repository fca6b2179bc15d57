package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inkwellhq/inkwell/internal/application"
	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
	"github.com/inkwellhq/inkwell/internal/interface/middleware"
	"github.com/inkwellhq/inkwell/pkg/apperror"
	"github.com/inkwellhq/inkwell/pkg/helpers"
)

const uploadURLTTL = 10 * time.Minute

type BlogHandler struct {
	Svc       *application.BlogService
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, gcs *storage.Client, bucket string, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

type pageRequest struct {
	Page int `json:"page"`
}

type searchRequest struct {
	Tag    string `json:"tag"`
	Query  string `json:"query"`
	Author string `json:"author"`
	Page   int    `json:"page"`
}

type createBlogRequest struct {
	Title   string          `json:"title"`
	Des     string          `json:"des"`
	Banner  string          `json:"banner"`
	Content json.RawMessage `json:"content"`
	Tags    []string        `json:"tags"`
	Draft   bool            `json:"draft"`
}

type searchUsersRequest struct {
	Query string `json:"query" binding:"required"`
}

type authorResponse struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}

type activityResponse struct {
	TotalReads int64 `json:"total_reads"`
	TotalLikes int64 `json:"total_likes"`
}

type blogListItem struct {
	BlogID      string           `json:"blog_id"`
	Title       string           `json:"title"`
	Des         string           `json:"des"`
	Banner      string           `json:"banner"`
	Tags        []string         `json:"tags"`
	Activity    activityResponse `json:"activity"`
	PublishedAt time.Time        `json:"publishedAt"`
	Author      authorResponse   `json:"author"`
}

type blogResponse struct {
	blogListItem
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toListItem(b *entity.Blog) blogListItem {
	item := blogListItem{
		BlogID:      b.BlogID,
		Title:       b.Title,
		Des:         b.Des,
		Banner:      b.Banner,
		Tags:        b.Tags,
		Activity:    activityResponse{TotalReads: b.TotalReads, TotalLikes: b.TotalLikes},
		PublishedAt: b.PublishedAt,
	}
	if b.Author != nil {
		item.Author = authorResponse{
			Fullname:   b.Author.FullName,
			Username:   b.Author.Username,
			ProfileImg: b.Author.ProfileImg,
		}
	}
	return item
}

func toListItems(blogs []*entity.Blog) []blogListItem {
	items := make([]blogListItem, len(blogs))
	for i, b := range blogs {
		items[i] = toListItem(b)
	}
	return items
}

// LatestBlogs POST /latest-blogs
func (h *BlogHandler) LatestBlogs(c *gin.Context) {
	var req pageRequest
	_ = c.ShouldBindJSON(&req)

	blogs, err := h.Svc.LatestBlogs(c.Request.Context(), req.Page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": toListItems(blogs)})
}

// CountLatest POST /all-latest-blogs-count
func (h *BlogHandler) CountLatest(c *gin.Context) {
	n, err := h.Svc.CountLatest(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalDocs": n})
}

// TrendingBlogs GET /trending-blogs
func (h *BlogHandler) TrendingBlogs(c *gin.Context) {
	blogs, err := h.Svc.TrendingBlogs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": toListItems(blogs)})
}

// SearchBlogs POST /search-blog
func (h *BlogHandler) SearchBlogs(c *gin.Context) {
	var req searchRequest
	_ = c.ShouldBindJSON(&req)

	f := repository.BlogFilter{Tag: req.Tag, Query: req.Query, Author: req.Author}
	blogs, err := h.Svc.SearchBlogs(c.Request.Context(), f, req.Page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": toListItems(blogs)})
}

// CountSearch POST /search-blog-count
func (h *BlogHandler) CountSearch(c *gin.Context) {
	var req searchRequest
	_ = c.ShouldBindJSON(&req)

	f := repository.BlogFilter{Tag: req.Tag, Query: req.Query, Author: req.Author}
	n, err := h.Svc.CountSearch(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalDocs": n})
}

// CreateBlog POST /create-blog (bearer)
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.NewInvalidInput("You must provide a title"))
		return
	}

	authorID := c.GetString(middleware.CtxUserIDKey)
	blogID, err := h.Svc.CreateBlog(c.Request.Context(), authorID, application.CreateBlogInput{
		Title:   req.Title,
		Des:     req.Des,
		Banner:  req.Banner,
		Content: req.Content,
		Tags:    req.Tags,
		Draft:   req.Draft,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": blogID})
}

type getBlogRequest struct {
	BlogID string `json:"blog_id" binding:"required"`
}

// GetBlog POST /get-blog
func (h *BlogHandler) GetBlog(c *gin.Context) {
	var req getBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.NewInvalidInput("Enter blog id"))
		return
	}

	b, err := h.Svc.GetBlog(c.Request.Context(), req.BlogID)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := blogResponse{blogListItem: toListItem(b), Content: b.Content, UpdatedAt: b.UpdatedAt}
	c.JSON(http.StatusOK, gin.H{"blog": resp})
}

// UploadURL GET /upload-url (bearer) hands out a signed PUT URL for a
// direct browser image upload.
func (h *BlogHandler) UploadURL(c *gin.Context) {
	if h.GCS == nil || h.GCSBucket == "" {
		writeError(c, apperror.NewInternal("image upload is not configured", nil))
		return
	}

	objectPath := time.Now().UTC().Format("20060102") + "/" + uuid.New().String() + ".jpeg"
	url, err := helpers.SignedUploadURL(h.GCS, h.GCSBucket, objectPath, "image/jpeg", uploadURLTTL)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("sign upload url failed")
		}
		writeError(c, apperror.NewInternal("something went wrong", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadURL": url})
}
