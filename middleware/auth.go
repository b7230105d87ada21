package middleware

import (
	"context"
	"log"
	"strings"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const ContextKeyUserID = "user_id"

// UserLookup resolves the user named by a token; services.UserService satisfies it.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate resolves the caller from a bearer token. Requests without a token
// continue anonymously; a token that fails validation, or names a user that no
// longer exists, is rejected with 401.
func Authenticate(secret string, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if websocket.IsWebSocketUpgrade(c.Request) {
			token = c.Query("token")
		} else {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[7:])
			}
		}

		if token == "" {
			c.Next()
			return
		}

		userID, err := utils.ValidateJWT(secret, token)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			apierrors.Respond(c, apierrors.ErrInvalidToken)
			return
		}

		if _, err := users.GetUserByID(c.Request.Context(), userID); err != nil {
			if apierrors.Is(err, apierrors.ErrCodeNotFound) {
				log.Printf("Token names unknown user %d", userID)
				apierrors.Respond(c, apierrors.ErrInvalidToken)
				return
			}
			apierrors.Respond(c, err)
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// AuthRequired rejects anonymous requests. It expects Authenticate to run first.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			apierrors.Respond(c, apierrors.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller, or (0, false) for anonymous requests.
func CurrentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
