package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/pkg/helpers"
)

func setupAuthRouter(t *testing.T, jwt *helpers.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestAuthMissingToken(t *testing.T) {
	r := setupAuthRouter(t, helpers.NewJWTManager("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"No access token"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	r := setupAuthRouter(t, helpers.NewJWTManager("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r := setupAuthRouter(t, helpers.NewJWTManager("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Access token is invalid"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestAuthValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret")
	r := setupAuthRouter(t, jwt)

	token, err := jwt.Sign("user-42")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"user_id":"user-42"}` {
		t.Fatalf("body = %s", body)
	}
}
