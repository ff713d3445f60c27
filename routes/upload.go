package routes

import (
	"slidecraft/controllers"

	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(router *gin.RouterGroup, uc *controllers.UploadController) {
	uploadRoutes := router.Group("/upload")
	{
		uploadRoutes.POST("/image", uc.UploadImage)
		uploadRoutes.POST("/images", uc.UploadImages)
	}
}
