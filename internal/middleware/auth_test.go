package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/auth"
)

func newTestRouter(tokens auth.TokenService, requiredRole model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewAuthMiddleware(tokens)

	r := gin.New()
	r.GET("/protected", mw.Authenticate(), mw.RequireRole(requiredRole), func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": actor.Username})
	})
	return r
}

func tokenFor(t *testing.T, tokens auth.TokenService, role model.Role) string {
	t.Helper()
	token, err := tokens.Generate(&model.Account{
		ID:       uuid.New(),
		Username: "someone",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	r := newTestRouter(tokens, model.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	r := newTestRouter(tokens, model.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	r := newTestRouter(tokens, model.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleMismatch(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	r := newTestRouter(tokens, model.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, model.RolePatient))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleMatch(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	r := newTestRouter(tokens, model.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, model.RoleDoctor))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "someone")
}
