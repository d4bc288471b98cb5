// middleware/actor.go

package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/sakethdamerla/li-hrms-sub003/config"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/service"
)

type actorClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// ActorAuth authenticates the bearer token and resolves the acting user's
// jurisdiction profile onto the request context. Every failure denies:
// there is no anonymous path through the workflow API.
func ActorAuth(userService service.IUserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			logger.Warn("No Authorization token provided", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		scope, err := userService.GetActorScope(c, claims.Subject)
		if err != nil {
			logger.Warn("Failed to resolve actor scope",
				zap.Error(err),
				zap.String("userID", claims.Subject))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("actorScope", scope)
		c.Set("userID", scope.UserID)
		c.Set("requestingUserID", scope.UserID)

		c.Next()
	}
}

func parseToken(tokenString string) (*actorClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	secret := []byte(config.GetString("auth.jwt.secret"))

	token, err := jwt.ParseWithClaims(tokenString, &actorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*actorClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token or wrong claims type")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}
