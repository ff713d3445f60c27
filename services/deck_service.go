package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"slidecraft/internal/generation"
	"slidecraft/internal/logger"
	"slidecraft/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRateLimited  = errors.New("too many generation requests, try again later")
	ErrInvalidInput = errors.New("invalid input")
)

// DeckStore persists decks and their slides. Lookups scoped by owner report
// decks of other owners as not found.
type DeckStore interface {
	CreateDeck(ctx context.Context, deck *models.Deck) error
	ListDecks(ctx context.Context, owner primitive.ObjectID) ([]models.Deck, error)
	GetDeck(ctx context.Context, id, owner primitive.ObjectID) (*models.Deck, error)
	UpdateDeck(ctx context.Context, deck *models.Deck) error
	DeleteDeck(ctx context.Context, id, owner primitive.ObjectID) error
	ListSlides(ctx context.Context, deck *models.Deck) ([]models.Slide, error)
	ReplaceSlides(ctx context.Context, deckID, owner primitive.ObjectID, slides []models.Slide) ([]models.Slide, error)
	UpdateSlide(ctx context.Context, deckID, slideID primitive.ObjectID, title, content string) (*models.Slide, error)
}

type SlideGenerator interface {
	Generate(ctx context.Context, req generation.Request, progress generation.ProgressFunc) ([]generation.Slide, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ProgressPublisher pushes generation progress to the owner's live connections.
type ProgressPublisher interface {
	PublishProgress(owner, deckID string, p generation.Progress)
}

type CreateDeckInput struct {
	Title    string
	Theme    string
	IsPublic bool
}

// SlideInput is a client-supplied slide. Order is taken from its position.
type SlideInput struct {
	Title      string
	Content    string
	Type       string
	Layout     string
	Transition string
	ImageURL   string
}

// UpdateDeckInput carries optional changes; nil fields are left alone and a
// nil Slides keeps the current slides.
type UpdateDeckInput struct {
	Title    *string
	Theme    *string
	IsPublic *bool
	Slides   []SlideInput
}

type GenerateInput struct {
	DeckID     primitive.ObjectID
	Prompt     string
	NumSlides  int
	Theme      string
	Transition string
}

type DeckService struct {
	store    DeckStore
	gen      SlideGenerator
	limiter  RateLimiter
	progress ProgressPublisher
	log      *logger.Logger
}

func NewDeckService(store DeckStore, gen SlideGenerator, limiter RateLimiter, progress ProgressPublisher, log *logger.Logger) *DeckService {
	if log == nil {
		log = logger.NewNop()
	}
	return &DeckService{store: store, gen: gen, limiter: limiter, progress: progress, log: log}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *DeckService) CreateDeck(ctx context.Context, owner primitive.ObjectID, in CreateDeckInput) (*models.Deck, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	theme, ok := generation.ParseTheme(in.Theme)
	if !ok && in.Theme != "" {
		s.log.Warn("unknown deck theme, using default", "theme", in.Theme)
	}

	deck := &models.Deck{
		Title:    title,
		Theme:    string(theme),
		Owner:    owner,
		IsPublic: in.IsPublic,
	}
	if err := s.store.CreateDeck(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *DeckService) ListDecks(ctx context.Context, owner primitive.ObjectID) ([]models.Deck, error) {
	return s.store.ListDecks(ctx, owner)
}

func (s *DeckService) GetDeck(ctx context.Context, owner, id primitive.ObjectID) (*models.DeckWithSlides, error) {
	deck, err := s.store.GetDeck(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	slides, err := s.store.ListSlides(ctx, deck)
	if err != nil {
		return nil, err
	}
	return &models.DeckWithSlides{Deck: *deck, Slides: slides}, nil
}

func (s *DeckService) UpdateDeck(ctx context.Context, owner, id primitive.ObjectID, in UpdateDeckInput) (*models.DeckWithSlides, error) {
	deck, err := s.store.GetDeck(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, invalid("title must not be empty")
		}
		deck.Title = title
	}
	if in.Theme != nil {
		theme, ok := generation.ParseTheme(*in.Theme)
		if !ok {
			return nil, invalid("unknown theme %q", *in.Theme)
		}
		deck.Theme = string(theme)
	}
	if in.IsPublic != nil {
		deck.IsPublic = *in.IsPublic
	}

	var slides []models.Slide
	if in.Slides != nil {
		slides = make([]models.Slide, len(in.Slides))
		for i, si := range in.Slides {
			slide, err := slideFromInput(i, si)
			if err != nil {
				return nil, err
			}
			slide.Theme = deck.Theme
			slides[i] = slide
		}
	}

	// Nothing is written until the whole request has validated.
	if err := s.store.UpdateDeck(ctx, deck); err != nil {
		return nil, err
	}
	if slides != nil {
		if _, err := s.store.ReplaceSlides(ctx, deck.ID, owner, slides); err != nil {
			return nil, err
		}
	}
	return s.GetDeck(ctx, owner, id)
}

var (
	slideTypes = map[generation.SlideType]bool{
		generation.SlideTypeTitle:   true,
		generation.SlideTypeContent: true,
		generation.SlideTypeBullet:  true,
		generation.SlideTypeImage:   true,
		generation.SlideTypeChart:   true,
	}
	slideLayouts = map[generation.SlideLayout]bool{
		generation.LayoutTitle:     true,
		generation.LayoutFullWidth: true,
		generation.LayoutTwoCol:    true,
		generation.LayoutSplit:     true,
	}
)

// slideFromInput validates a client slide at position i. The first slide is
// always the title slide; the rest default to full-width content.
func slideFromInput(i int, si SlideInput) (models.Slide, error) {
	title := strings.TrimSpace(si.Title)
	if title == "" {
		return models.Slide{}, invalid("slide %d: title is required", i+1)
	}

	typ := generation.SlideType(strings.ToLower(strings.TrimSpace(si.Type)))
	layout := generation.SlideLayout(strings.ToLower(strings.TrimSpace(si.Layout)))
	if typ != "" && !slideTypes[typ] {
		return models.Slide{}, invalid("slide %d: unknown type %q", i+1, si.Type)
	}
	if layout != "" && !slideLayouts[layout] {
		return models.Slide{}, invalid("slide %d: unknown layout %q", i+1, si.Layout)
	}
	switch {
	case i == 0:
		typ, layout = generation.SlideTypeTitle, generation.LayoutTitle
	case typ == generation.SlideTypeTitle || layout == generation.LayoutTitle:
		return models.Slide{}, invalid("slide %d: only the first slide may be a title slide", i+1)
	}
	if typ == "" {
		typ = generation.SlideTypeContent
	}
	if layout == "" {
		layout = generation.LayoutFullWidth
	}

	transition := generation.DefaultTransition
	if strings.TrimSpace(si.Transition) != "" {
		t, ok := generation.ParseTransition(si.Transition)
		if !ok {
			return models.Slide{}, invalid("slide %d: unknown transition %q", i+1, si.Transition)
		}
		transition = t
	}

	return models.Slide{
		Title:      title,
		Content:    si.Content,
		Type:       string(typ),
		Layout:     string(layout),
		Transition: string(transition),
		ImageURL:   si.ImageURL,
	}, nil
}

func (s *DeckService) DeleteDeck(ctx context.Context, owner, id primitive.ObjectID) error {
	return s.store.DeleteDeck(ctx, id, owner)
}

func (s *DeckService) UpdateSlide(ctx context.Context, owner, deckID, slideID primitive.ObjectID, title, content string) (*models.Slide, error) {
	if _, err := s.store.GetDeck(ctx, deckID, owner); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("slide title is required")
	}
	return s.store.UpdateSlide(ctx, deckID, slideID, title, content)
}

// GenerateSlides runs the generation pipeline for a deck and replaces its
// slides with the result. On any failure the deck keeps its current slides.
func (s *DeckService) GenerateSlides(ctx context.Context, owner primitive.ObjectID, in GenerateInput) ([]models.Slide, error) {
	if in.NumSlides < generation.MinSlides || in.NumSlides > generation.MaxSlides {
		return nil, invalid("numSlides must be between %d and %d", generation.MinSlides, generation.MaxSlides)
	}

	deck, err := s.store.GetDeck(ctx, in.DeckID, owner)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, owner.Hex())
		if err != nil {
			s.log.Warn("rate limiter unavailable, allowing request", "owner", owner.Hex(), "error", err)
		} else if !allowed {
			return nil, ErrRateLimited
		}
	}

	theme := in.Theme
	if strings.TrimSpace(theme) == "" {
		theme = deck.Theme
	}

	s.log.Info("generating slides", "deck", deck.ID.Hex(), "slides", in.NumSlides, "theme", theme)
	generated, err := s.gen.Generate(ctx, generation.Request{
		DeckTitle:  deck.Title,
		Prompt:     in.Prompt,
		Count:      in.NumSlides,
		Theme:      theme,
		Transition: in.Transition,
	}, s.progressFor(owner, deck.ID))
	if err != nil {
		return nil, err
	}

	slides := make([]models.Slide, len(generated))
	for i, g := range generated {
		slides[i] = models.Slide{
			Title:      g.Title,
			Content:    g.Content,
			Type:       string(g.Type),
			Theme:      string(g.Theme),
			Layout:     string(g.Layout),
			Transition: string(g.Transition),
			ImageURL:   g.ImageURL,
		}
	}
	return s.store.ReplaceSlides(ctx, deck.ID, owner, slides)
}

func (s *DeckService) progressFor(owner, deckID primitive.ObjectID) generation.ProgressFunc {
	if s.progress == nil {
		return nil
	}
	ownerHex, deckHex := owner.Hex(), deckID.Hex()
	return func(p generation.Progress) {
		s.progress.PublishProgress(ownerHex, deckHex, p)
	}
}
