package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deck is a named, ordered collection of slides owned by one user. SlideIDs
// holds the slides in presentation order.
type Deck struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string               `bson:"title" json:"title"`
	Theme     string               `bson:"theme" json:"theme"`
	Owner     primitive.ObjectID   `bson:"owner" json:"owner"`
	SlideIDs  []primitive.ObjectID `bson:"slides" json:"slideIds"`
	IsPublic  bool                 `bson:"isPublic" json:"isPublic"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Slide is one page of a deck. Order is dense from zero within its deck.
type Slide struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Deck       primitive.ObjectID `bson:"deck" json:"deck"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Type       string             `bson:"type" json:"type"`
	Theme      string             `bson:"theme" json:"theme"`
	Layout     string             `bson:"layout" json:"layout"`
	Transition string             `bson:"transition,omitempty" json:"transition,omitempty"`
	ImageURL   string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Order      int                `bson:"order" json:"order"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DeckWithSlides is a deck as returned to clients, slides resolved.
type DeckWithSlides struct {
	Deck
	Slides []Slide `json:"slides"`
}
