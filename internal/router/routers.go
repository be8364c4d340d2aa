package router

import (
	"github.com/Payphone-Digital/auth-service/internal/handler"
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler     *handler.AuthHandler
	employeeHandler *handler.EmployeeHandler
	healthHandler   *handler.HealthHandler

	jwtMw   *middleware.JWTMiddleware
	limiter middleware.Limiter
}

func NewRouter(
	auth *handler.AuthHandler,
	employee *handler.EmployeeHandler,
	health *handler.HealthHandler,

	jwtMw *middleware.JWTMiddleware,
	limiter middleware.Limiter,
) *Router {
	return &Router{
		authHandler:     auth,
		employeeHandler: employee,
		healthHandler:   health,

		jwtMw:   jwtMw,
		limiter: limiter,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CorrelationMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/ready", r.healthHandler.Ready)

		version := api.Group("/:version")
		version.Use(middleware.ContextMiddleware("http"))
		{
			r.authRoutes(version)
			r.employeeRoutes(version)
		}
	}

	return router
}
