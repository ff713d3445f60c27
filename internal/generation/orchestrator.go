package generation

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"slidecraft/internal/logger"
)

const (
	MinSlides     = 3
	MaxSlides     = 15
	DefaultSlides = 5
)

// TextGenerator sends one composed prompt to a language model and returns
// its raw text reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type SlideType string

const (
	SlideTypeTitle   SlideType = "title"
	SlideTypeContent SlideType = "content"
	SlideTypeBullet  SlideType = "bullet"
	SlideTypeImage   SlideType = "image"
	SlideTypeChart   SlideType = "chart"
)

type SlideLayout string

const (
	LayoutTitle     SlideLayout = "title"
	LayoutFullWidth SlideLayout = "full-width"
	LayoutTwoCol    SlideLayout = "two-column"
	LayoutSplit     SlideLayout = "split"
)

// Request is one generation run as asked for by a caller. Theme and
// Transition are free input and get coerced to their closed sets.
type Request struct {
	DeckTitle  string
	Prompt     string
	Count      int
	Theme      string
	Transition string
}

// Slide is a finished slide ready to be persisted.
type Slide struct {
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Type       SlideType   `json:"type"`
	Layout     SlideLayout `json:"layout"`
	Theme      Theme       `json:"theme"`
	Transition Transition  `json:"transition"`
	Order      int         `json:"order"`
	ImageURL   string      `json:"imageUrl,omitempty"`
}

type Orchestrator struct {
	text    TextGenerator
	images  *ImageResolver
	timeout time.Duration
	log     *logger.Logger
}

// NewOrchestrator wires a generation pipeline. A nil images resolver means
// every slide is illustrated from the fallback pools.
func NewOrchestrator(text TextGenerator, images *ImageResolver, timeout time.Duration, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}
	if images == nil {
		images = NewImageResolver(nil, 0, log)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Orchestrator{text: text, images: images, timeout: timeout, log: log}
}

// Generate runs the full pipeline and returns exactly the requested number
// of slides (clamped to MinSlides..MaxSlides). It returns a *Error for
// provider failures and unparsable responses, or ctx.Err() when the caller
// goes away. Nothing is returned on failure.
func (o *Orchestrator) Generate(ctx context.Context, req Request, progress ProgressFunc) ([]Slide, error) {
	style, count := o.coerce(req)
	topic := strings.TrimSpace(req.Prompt)
	deckTitle := strings.TrimSpace(req.DeckTitle)
	if topic == "" {
		topic = deckTitle
	}
	if deckTitle == "" {
		deckTitle = topic
	}

	fail := func(err error) ([]Slide, error) {
		progress.emit(Progress{Stage: StageFailed, Total: count, Message: err.Error()})
		return nil, err
	}

	progress.emit(Progress{Stage: StageStarted, Total: count, Title: deckTitle})
	if o.text == nil {
		return fail(providerUnavailable(errors.New("no text generation provider configured")))
	}

	text, err := o.callProvider(ctx, BuildPrompt(deckTitle, topic, count, style))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fail(ctxErr)
		}
		o.log.Error("generation provider call failed", "topic", topic, "error", err)
		return fail(providerUnavailable(err))
	}
	progress.emit(Progress{Stage: StageGenerated, Total: count})

	raw, err := ParseSlides(text)
	if err != nil {
		var genErr *Error
		if errors.As(err, &genErr) {
			o.log.Warn("generation response could not be parsed", "topic", topic, "snippet", genErr.Snippet)
		}
		return fail(err)
	}
	if len(raw) != count {
		o.log.Debug("reconciling slide count", "requested", count, "received", len(raw))
	}
	progress.emit(Progress{Stage: StageParsed, Total: count, Message: "received " + strconv.Itoa(len(raw)) + " slides"})

	reconciled := Reconcile(raw, count, deckTitle, topic, style)
	used := NewUsedImages()
	out := make([]Slide, len(reconciled))
	for i, s := range reconciled {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		url := o.images.Resolve(ctx, s.Content, s.Title, topic, used)
		n := Normalize(s, url, style)

		slide := Slide{
			Title:      n.Title,
			Content:    n.Content,
			Type:       SlideTypeContent,
			Layout:     LayoutFullWidth,
			Theme:      style.Theme,
			Transition: style.Transition,
			Order:      i,
			ImageURL:   url,
		}
		if i == 0 {
			slide.Type, slide.Layout = SlideTypeTitle, LayoutTitle
		}
		out[i] = slide
		progress.emit(Progress{Stage: StageSlide, Index: i, Total: count, Title: slide.Title})
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	progress.emit(Progress{Stage: StageCompleted, Total: count})
	return out, nil
}

func (o *Orchestrator) coerce(req Request) (Style, int) {
	theme, ok := ParseTheme(req.Theme)
	if !ok && req.Theme != "" {
		o.log.Warn("unknown theme, using default", "theme", req.Theme, "default", theme)
	}
	transition, ok := ParseTransition(req.Transition)
	if !ok && req.Transition != "" {
		o.log.Warn("unknown transition, using default", "transition", req.Transition, "default", transition)
	}

	count := req.Count
	switch {
	case count == 0:
		count = DefaultSlides
	case count < MinSlides:
		o.log.Warn("slide count below minimum", "requested", count, "min", MinSlides)
		count = MinSlides
	case count > MaxSlides:
		o.log.Warn("slide count above maximum", "requested", count, "max", MaxSlides)
		count = MaxSlides
	}
	return Style{Theme: theme, Transition: transition}, count
}

func (o *Orchestrator) callProvider(ctx context.Context, prompt string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.text.GenerateText(cctx, prompt)
}
