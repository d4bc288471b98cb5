// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sakethdamerla/li-hrms-sub003/controller"
	"github.com/sakethdamerla/li-hrms-sub003/middleware"
	"github.com/sakethdamerla/li-hrms-sub003/service"
)

func SetupRouter(
	controllers *controller.Controllers,
	userService service.IUserService,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.ActorAuth(userService))

	api := router.Group("/api/v1")

	controllers.Request.RegisterRoutes(api)
	controllers.WorkflowDefinition.RegisterRoutes(api)

	return router
}
