package controllers

import (
	"net/http"

	"slidecraft/internal/generation"
	"slidecraft/services"
	"slidecraft/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateSlides replaces a deck's slides with freshly generated ones.
// A missing numSlides means the default count.
func (d *DeckController) GenerateSlides(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	var req structs.GenerateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "deckId and prompt are required")
		return
	}
	deckID, err := primitive.ObjectIDFromHex(req.DeckID)
	if err != nil {
		badRequest(c, "Invalid deckId")
		return
	}
	if req.NumSlides == 0 {
		req.NumSlides = generation.DefaultSlides
	}

	slides, err := d.decks.GenerateSlides(c.Request.Context(), owner, services.GenerateInput{
		DeckID:     deckID,
		Prompt:     req.Prompt,
		NumSlides:  req.NumSlides,
		Theme:      req.Theme,
		Transition: req.Transition,
	})
	if err != nil {
		respondError(c, d.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Slides generated successfully",
		"slideCount": len(slides),
		"slides":     slides,
	})
}
