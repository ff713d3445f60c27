package routes

import (
	"slidecraft/controllers"

	"github.com/gin-gonic/gin"
)

// SetupDeckRoutes expects router to be authenticated already.
func SetupDeckRoutes(router *gin.RouterGroup, dc *controllers.DeckController) {
	deckRoutes := router.Group("/decks")
	{
		deckRoutes.POST("", dc.CreateDeck)
		deckRoutes.GET("", dc.ListDecks)
		deckRoutes.GET("/:id", dc.GetDeck)
		deckRoutes.PUT("/:id", dc.UpdateDeck)
		deckRoutes.DELETE("/:id", dc.DeleteDeck)
		deckRoutes.PUT("/:id/slides/:slideId", dc.UpdateSlide)
	}
	router.POST("/generate-slides", dc.GenerateSlides)
}
