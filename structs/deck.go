package structs

type CreateDeckRequest struct {
	Title    string `json:"title" binding:"required"`
	Theme    string `json:"theme"`
	IsPublic bool   `json:"isPublic"`
}

type SlidePayload struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	Layout     string `json:"layout"`
	Transition string `json:"transition"`
	ImageURL   string `json:"imageUrl"`
}

// UpdateDeckRequest fields are optional. Slides, when present, replace the
// deck's slides in the given order.
type UpdateDeckRequest struct {
	Title    *string         `json:"title"`
	Theme    *string         `json:"theme"`
	IsPublic *bool           `json:"isPublic"`
	Slides   *[]SlidePayload `json:"slides"`
}

type UpdateSlideRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type GenerateSlidesRequest struct {
	DeckID     string `json:"deckId" binding:"required"`
	Prompt     string `json:"prompt" binding:"required"`
	NumSlides  int    `json:"numSlides"`
	Theme      string `json:"theme"`
	Transition string `json:"transition"`
}
