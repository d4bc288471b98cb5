// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sakethdamerla/li-hrms-sub003/errors"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// GetActorFromContext returns the resolved actor scope the auth middleware
// stored on the request context. A missing or mistyped value is an
// authorization failure, never an anonymous pass.
func GetActorFromContext(c *gin.Context) (*model.ActorScope, error) {
	v, exists := c.Get("actorScope")
	if !exists {
		return nil, errors.ErrUnauthorized
	}
	actor, ok := v.(*model.ActorScope)
	if !ok || actor == nil {
		return nil, errors.ErrUnauthorized
	}
	return actor, nil
}

func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", nil
	}
	return userID.(string), nil
}
