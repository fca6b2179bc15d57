package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/internal/application"
	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
	"github.com/inkwellhq/inkwell/pkg/helpers"
)

type stubUserRepo struct {
	CreateFn     func(ctx context.Context, u *entity.User) error
	GetByEmailFn func(ctx context.Context, email string) (*entity.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, u *entity.User) error {
	return s.CreateFn(ctx, u)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.GetByEmailFn(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (s *stubUserRepo) SearchByUsername(ctx context.Context, query string, limit int) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) IncrementTotalPosts(ctx context.Context, id string, delta int64) error {
	return nil
}

func (s *stubUserRepo) IncrementTotalReads(ctx context.Context, id string, delta int64) error {
	return nil
}

func setupAuthRouter(t *testing.T, repo repository.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := application.NewAuthService(repo, helpers.NewJWTManager("test-secret"), nil, nil, nil, false)
	h := NewAuthHandler(svc, nil)

	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/signin", h.Signin)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupEndpoint(t *testing.T) {
	repo := &stubUserRepo{
		CreateFn: func(ctx context.Context, u *entity.User) error {
			u.ID = "user-1"
			return nil
		},
	}
	r := setupAuthRouter(t, repo)

	w := postJSON(t, r, "/signup", `{"fullname":"Jane Doe","email":"jane@example.com","password":"Str0ngPass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ProfileImg  string `json:"profile_img"`
		Username    string `json:"username"`
		Fullname    string `json:"fullname"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" || resp.Username != "jane" || resp.Fullname != "Jane Doe" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSignupEndpointValidation(t *testing.T) {
	repo := &stubUserRepo{
		CreateFn: func(ctx context.Context, u *entity.User) error {
			t.Fatal("Create called despite invalid input")
			return nil
		},
	}
	r := setupAuthRouter(t, repo)

	w := postJSON(t, r, "/signup", `{"fullname":"Al","email":"al@example.com","password":"Str0ngPass"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Full name must be at least 3 letters long"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestSigninEndpointWrongPassword(t *testing.T) {
	hash, _ := helpers.HashPassword("Str0ngPass")
	repo := &stubUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	r := setupAuthRouter(t, repo)

	w := postJSON(t, r, "/signin", `{"email":"jane@example.com","password":"WrongPass1"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Incorrect password"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestSigninEndpointUnknownEmail(t *testing.T) {
	repo := &stubUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	r := setupAuthRouter(t, repo)

	w := postJSON(t, r, "/signin", `{"email":"ghost@example.com","password":"Str0ngPass"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Email not found"}` {
		t.Fatalf("body = %s", body)
	}
}
