package router

import (
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	auth.Use(middleware.RateLimit(r.limiter), middleware.DecodeDocument())
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
	}
}

func (r *Router) employeeRoutes(version *gin.RouterGroup) {
	employees := version.Group("/employees")
	employees.Use(r.jwtMw.RequireAuth())
	{
		employees.POST("", middleware.DecodeDocument(), r.employeeHandler.Create)
		employees.GET("/:id", r.employeeHandler.Get)
	}
}
