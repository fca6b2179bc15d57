package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/internal/application"
	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/pkg/apperror"
)

type UserHandler struct {
	Svc *application.ProfileService
}

func NewUserHandler(svc *application.ProfileService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// profileResponse is the public user projection. Password hashes and the
// account's auth method never leave the server.
type profileResponse struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
	Bio        string `json:"bio"`
	TotalPosts int64  `json:"total_posts"`
	TotalReads int64  `json:"total_reads"`
	JoinedAt   string `json:"joinedAt"`
}

func toProfile(u *entity.User) profileResponse {
	return profileResponse{
		Fullname:   u.FullName,
		Username:   u.Username,
		ProfileImg: u.ProfileImg,
		Bio:        u.Bio,
		TotalPosts: u.TotalPosts,
		TotalReads: u.TotalReads,
		JoinedAt:   u.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// SearchUsers POST /search-users
func (h *UserHandler) SearchUsers(c *gin.Context) {
	var req searchUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.NewInvalidInput("Enter search query"))
		return
	}

	users, err := h.Svc.SearchUsers(c.Request.Context(), req.Query)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]profileResponse, len(users))
	for i, u := range users {
		out[i] = toProfile(u)
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

type getProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

// GetProfile POST /get-profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	var req getProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.NewInvalidInput("Enter username"))
		return
	}

	u, err := h.Svc.GetProfile(c.Request.Context(), req.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfile(u))
}
