package routes

import (
	"slidecraft/controllers"
	"slidecraft/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers signup and login publicly and /me behind the JWT check.
func SetupAuthRoutes(router *gin.RouterGroup, ac *controllers.AuthController) {
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", ac.SignUp)
		authRoutes.POST("/login", ac.Login)
		authRoutes.GET("/me", middlewares.AuthMiddleware(), ac.Me)
	}
}
