package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospilog/internal/models/db_models"
	"hospilog/pkg/utils"
)

const (
	ctxAccountID = "account_id"
	ctxRole      = "role"
	ctxEmail     = "email"
)

// SessionResolver turns a session token into the live account.
type SessionResolver interface {
	SessionLookup(ctx context.Context, token string) (*db_models.Account, error)
}

// SessionToken reads the bearer header first, then the session cookie.
func SessionToken(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return v
	}
	return ""
}

func SessionAuth(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			return
		}

		account, err := resolver.SessionLookup(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, utils.ErrUnauthorized) {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired session")
				return
			}
			utils.HandleServiceError(c, err)
			return
		}

		c.Set(ctxAccountID, account.ID)
		c.Set(ctxRole, account.Role)
		c.Set(ctxEmail, account.Email)
		c.Next()
	}
}

// RequireCapability must run after SessionAuth.
func RequireCapability(capability db_models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := CurrentAccount(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !role.Can(capability) {
			utils.HandleServiceError(c, utils.ErrForbidden)
			return
		}
		c.Next()
	}
}

func CurrentAccount(c *gin.Context) (uuid.UUID, db_models.Role, bool) {
	v, ok := c.Get(ctxAccountID)
	if !ok {
		return uuid.Nil, "", false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, _ := c.Get(ctxRole)
	r, _ := role.(db_models.Role)
	return id, r, true
}

func CurrentEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}
