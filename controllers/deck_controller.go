package controllers

import (
	"context"
	"net/http"

	"slidecraft/internal/logger"
	"slidecraft/models"
	"slidecraft/services"
	"slidecraft/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeckManager is the deck behaviour the HTTP layer needs; *services.DeckService implements it.
type DeckManager interface {
	CreateDeck(ctx context.Context, owner primitive.ObjectID, in services.CreateDeckInput) (*models.Deck, error)
	ListDecks(ctx context.Context, owner primitive.ObjectID) ([]models.Deck, error)
	GetDeck(ctx context.Context, owner, id primitive.ObjectID) (*models.DeckWithSlides, error)
	UpdateDeck(ctx context.Context, owner, id primitive.ObjectID, in services.UpdateDeckInput) (*models.DeckWithSlides, error)
	DeleteDeck(ctx context.Context, owner, id primitive.ObjectID) error
	UpdateSlide(ctx context.Context, owner, deckID, slideID primitive.ObjectID, title, content string) (*models.Slide, error)
	GenerateSlides(ctx context.Context, owner primitive.ObjectID, in services.GenerateInput) ([]models.Slide, error)
}

type DeckController struct {
	decks DeckManager
	log   *logger.Logger
}

func NewDeckController(decks DeckManager, log *logger.Logger) *DeckController {
	return &DeckController{decks: decks, log: log}
}

func (d *DeckController) CreateDeck(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	var req structs.CreateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	deck, err := d.decks.CreateDeck(c.Request.Context(), owner, services.CreateDeckInput{
		Title:    req.Title,
		Theme:    req.Theme,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		respondError(c, d.log, err)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

func (d *DeckController) ListDecks(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	decks, err := d.decks.ListDecks(c.Request.Context(), owner)
	if err != nil {
		respondError(c, d.log, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func (d *DeckController) GetDeck(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	deck, err := d.decks.GetDeck(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, d.log, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (d *DeckController) UpdateDeck(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req structs.UpdateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	in := services.UpdateDeckInput{Title: req.Title, Theme: req.Theme, IsPublic: req.IsPublic}
	if req.Slides != nil {
		in.Slides = make([]services.SlideInput, len(*req.Slides))
		for i, s := range *req.Slides {
			in.Slides[i] = services.SlideInput{
				Title:      s.Title,
				Content:    s.Content,
				Type:       s.Type,
				Layout:     s.Layout,
				Transition: s.Transition,
				ImageURL:   s.ImageURL,
			}
		}
	}

	deck, err := d.decks.UpdateDeck(c.Request.Context(), owner, id, in)
	if err != nil {
		respondError(c, d.log, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (d *DeckController) DeleteDeck(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := d.decks.DeleteDeck(c.Request.Context(), owner, id); err != nil {
		respondError(c, d.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deck deleted"})
}

func (d *DeckController) UpdateSlide(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	deckID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	slideID, ok := objectIDParam(c, "slideId")
	if !ok {
		return
	}
	var req structs.UpdateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	slide, err := d.decks.UpdateSlide(c.Request.Context(), owner, deckID, slideID, req.Title, req.Content)
	if err != nil {
		respondError(c, d.log, err)
		return
	}
	c.JSON(http.StatusOK, slide)
}
