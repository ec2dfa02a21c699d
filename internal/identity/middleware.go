package identity

import (
	"errors"
	"net/http"

	"referral-access/internal/observability"

	"github.com/gin-gonic/gin"
)

// Middleware authenticates the request and attaches the caller identity
// to the request context. Requests without a valid bearer token are
// rejected before reaching any handler.
func Middleware(secret string, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := FromAuthorizationHeader(c.GetHeader("Authorization"), secret)
		if err != nil {
			logger.InfoWithError(ctx, "rejected unauthenticated request", err)
			status := http.StatusUnauthorized
			msg := "unauthorized"
			if errors.Is(err, ErrExpiredToken) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		ctx = WithIdentity(ctx, id)
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "account_id", Value: id.AccountID},
			observability.Field{Key: "organisation_id", Value: id.OrganisationID},
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
