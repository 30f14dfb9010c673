package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/auth"
	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/service"
)

const userKey = "auth_user"

// AuthMiddleware verifies the bearer token and records the user's display
// attributes so room reads can resolve participant ids to names.
func AuthMiddleware(secret string, svc *service.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		user, err := auth.ParseToken(secret, parts[1])
		if err != nil {
			log.Warn().Err(err).Str("module", "adapters.http").Msg("token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		if err := svc.UpsertUser(c.Request.Context(), user); err != nil {
			log.Warn().Err(err).Str("module", "adapters.http").Str("user", string(user.ID)).Msg("user upsert failed")
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthMiddleware.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
