// Package auth validates Supabase access tokens for the HTTP surface.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"github.com/louenes/lectura/pkg/sdk"
)

// UserIDKey is the gin context key under which the authenticated principal's
// user ID is stored.
const UserIDKey = "user_id"

// Validator checks bearer tokens against the Supabase auth service.
type Validator struct {
	client *supabase.Client
	logger *zap.Logger
}

// NewValidator creates a token validator for the given Supabase project.
func NewValidator(projectURL, anonKey string, logger *zap.Logger) (*Validator, error) {
	if projectURL == "" || anonKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}

	client, err := supabase.NewClient(projectURL, anonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Validator{client: client, logger: logger}, nil
}

// Middleware returns a gin handler that rejects requests without a valid
// bearer token and stores the caller's user ID in the context.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Missing access token", nil).AsGinResponse())
			return
		}

		user, err := v.client.Auth.WithToken(token).GetUser()
		if err != nil {
			v.logger.Warn("rejected invalid access token", zap.Error(err))
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid access token", nil).AsGinResponse())
			return
		}

		c.Set(UserIDKey, user.ID.String())
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the gin context, or the
// empty string when the request was not authenticated.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func bearerToken(header string) string {
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
