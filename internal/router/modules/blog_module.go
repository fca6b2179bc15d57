package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/inkwellhq/inkwell/internal/interface/http"
	"github.com/inkwellhq/inkwell/internal/interface/middleware"
	"github.com/inkwellhq/inkwell/pkg/helpers"
)

type BlogModule struct {
	Handler *handlers.BlogHandler
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rg.POST("/latest-blogs", m.Handler.LatestBlogs)
	rg.POST("/all-latest-blogs-count", m.Handler.CountLatest)
	rg.GET("/trending-blogs", m.Handler.TrendingBlogs)
	rg.POST("/search-blog", m.Handler.SearchBlogs)
	rg.POST("/search-blog-count", m.Handler.CountSearch)
	rg.POST("/get-blog", m.Handler.GetBlog)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/create-blog", m.Handler.CreateBlog)
		auth.GET("/upload-url", m.Handler.UploadURL)
	}
}
