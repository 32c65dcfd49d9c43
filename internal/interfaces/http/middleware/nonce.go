package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parley/internal/infrastructure/nonce"
	"parley/internal/shared/logger"
	"parley/internal/shared/utils"
)

// NonceHeader carries the anti-forgery token on state-changing requests.
const NonceHeader = "X-Support-Nonce"

type NonceMiddleware struct {
	store  nonce.Store
	logger logger.Interface
}

func NewNonceMiddleware(store nonce.Store, logger logger.Interface) *NonceMiddleware {
	return &NonceMiddleware{
		store:  store,
		logger: logger,
	}
}

// RequireNonce rejects requests whose nonce does not match the caller's
// issued one. Must run after RequireAuth.
func (m *NonceMiddleware) RequireNonce() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)

		token := c.GetHeader(NonceHeader)
		if token == "" {
			token = c.Query("nonce")
		}

		ok, err := m.store.Validate(c.Request.Context(), userID, token)
		if err != nil {
			m.logger.Errorw("nonce validation failed", "error", err, "user_id", userID)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to validate nonce")
			c.Abort()
			return
		}
		if !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "invalid nonce")
			c.Abort()
			return
		}

		c.Next()
	}
}
