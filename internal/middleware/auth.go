package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/auth"
)

const contextActor = "actor"

type AuthMiddleware struct {
	tokens auth.TokenService
}

func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer token and stores the resolved actor
// in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		actor, err := m.tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(contextActor, actor)
		c.Next()
	}
}

// RequireRole rejects requests whose actor carries a different role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || actor.Role != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated actor set by Authenticate.
func ActorFrom(c *gin.Context) (*model.Actor, bool) {
	v, exists := c.Get(contextActor)
	if !exists {
		return nil, false
	}
	actor, ok := v.(*model.Actor)
	return actor, ok
}
