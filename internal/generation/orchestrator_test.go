package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeText struct {
	reply   string
	err     error
	block   bool
	prompts []string
}

func (f *fakeText) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func replyWith(t *testing.T, slides ...RawSlide) string {
	t.Helper()
	b, err := json.Marshal(slides)
	if err != nil {
		t.Fatal(err)
	}
	return "```json\n" + string(b) + "\n```"
}

var evSlides = []RawSlide{
	{Title: "Electric Vehicles", Content: "<div><h2>Electric Vehicles</h2></div>"},
	{Title: "Battery Packs", Content: "<div><p>Lithium cells store energy for propulsion.</p></div>"},
	{Title: "Charging Networks", Content: "<div><p>Public chargers are spreading along motorways.</p></div>"},
	{Title: "Total Cost", Content: "<div><p>Lower running costs offset purchase prices.</p></div>"},
	{Title: "Thanks", Content: "<div><p>Questions?</p></div>"},
}

func newTestOrchestrator(text TextGenerator, searcher ImageSearcher) *Orchestrator {
	return NewOrchestrator(text, NewImageResolver(searcher, time.Second, nil), time.Second, nil)
}

func TestGenerateElectricVehicles(t *testing.T) {
	text := &fakeText{reply: replyWith(t, evSlides...)}
	o := newTestOrchestrator(text, nil)

	slides, err := o.Generate(context.Background(), Request{
		DeckTitle: "Electric Vehicles", Prompt: "electric vehicles", Count: 5, Theme: "dark",
	}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slides) != 5 {
		t.Fatalf("expected 5 slides, got %d", len(slides))
	}
	if slides[0].Layout != LayoutTitle || slides[0].Type != SlideTypeTitle {
		t.Errorf("first slide is %s/%s, want title/title", slides[0].Type, slides[0].Layout)
	}
	last := slides[4]
	if !strings.Contains(last.Content, "Electric Vehicles") && !strings.Contains(last.Content, "electric vehicles") {
		t.Errorf("conclusion does not reference the deck: %s", last.Content)
	}

	images := map[string]bool{}
	for i, s := range slides {
		if s.Order != i {
			t.Errorf("slide %d has order %d", i, s.Order)
		}
		if s.Theme != ThemeDark {
			t.Errorf("slide %d theme %s", i, s.Theme)
		}
		if i > 0 && (s.Type != SlideTypeContent || s.Layout != LayoutFullWidth) {
			t.Errorf("slide %d is %s/%s", i, s.Type, s.Layout)
		}
		if s.ImageURL == "" || images[s.ImageURL] {
			t.Errorf("slide %d image %q is missing or repeated", i, s.ImageURL)
		}
		images[s.ImageURL] = true
		if strings.Count(s.Content, "<img") != 1 || !strings.Contains(s.Content, s.ImageURL) {
			t.Errorf("slide %d does not embed its image exactly once", i)
		}
	}

	if len(text.prompts) != 1 || !strings.Contains(text.prompts[0], "EXACTLY 5") {
		t.Errorf("prompt did not request the exact count")
	}
}

func TestGenerateSurvivesRateLimitedImageSearch(t *testing.T) {
	text := &fakeText{reply: replyWith(t, evSlides...)}
	searcher := &fakeSearcher{err: errors.New("unsplash: unexpected status 429 Too Many Requests")}
	o := newTestOrchestrator(text, searcher)

	slides, err := o.Generate(context.Background(), Request{DeckTitle: "EVs", Prompt: "electric vehicles", Count: 5}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, s := range slides {
		if !strings.HasPrefix(s.ImageURL, "https://images.unsplash.com/photo-") {
			t.Errorf("slide %d: expected fallback image, got %q", i, s.ImageURL)
		}
	}
}

func TestGenerateProseIsUnparsable(t *testing.T) {
	text := &fakeText{reply: "Electric vehicles are quiet, efficient and increasingly affordable."}
	o := newTestOrchestrator(text, nil)

	var stages []Stage
	slides, err := o.Generate(context.Background(), Request{DeckTitle: "EVs", Prompt: "electric vehicles", Count: 5},
		func(p Progress) { stages = append(stages, p.Stage) })
	if !errors.Is(err, ErrUnparsableResponse) {
		t.Fatalf("expected unparsable response, got %v", err)
	}
	if slides != nil {
		t.Fatalf("expected no slides, got %d", len(slides))
	}
	if stages[len(stages)-1] != StageFailed {
		t.Errorf("expected a failed event last, got %v", stages)
	}
}

func TestGeneratePadsShortResponse(t *testing.T) {
	in := []RawSlide{
		{Title: "EVs", Content: "<div>cover</div>"},
		{Title: "Battery Chemistry", Content: "<div><p>Nickel manganese cobalt cells</p></div>"},
		{Title: "Summary", Content: "<div>bye</div>"},
	}
	o := newTestOrchestrator(&fakeText{reply: replyWith(t, in...)}, nil)

	slides, err := o.Generate(context.Background(), Request{DeckTitle: "EVs", Prompt: "electric vehicles", Count: 7}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slides) != 7 {
		t.Fatalf("expected 7 slides, got %d", len(slides))
	}
	if slides[1].Title != "Battery Chemistry" || !strings.Contains(slides[1].Content, "Nickel manganese cobalt cells") {
		t.Errorf("original middle slide not preserved: %+v", slides[1])
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	o := newTestOrchestrator(&fakeText{err: errors.New("503 service unavailable")}, nil)
	_, err := o.Generate(context.Background(), Request{Prompt: "tides", Count: 3}, nil)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}

	o = NewOrchestrator(nil, nil, 0, nil)
	if _, err := o.Generate(context.Background(), Request{Prompt: "tides", Count: 3}, nil); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable without a provider, got %v", err)
	}
}

func TestGenerateProviderTimeout(t *testing.T) {
	o := NewOrchestrator(&fakeText{block: true}, nil, 20*time.Millisecond, nil)
	_, err := o.Generate(context.Background(), Request{Prompt: "tides", Count: 3}, nil)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable on timeout, got %v", err)
	}
}

func TestGenerateCallerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := newTestOrchestrator(&fakeText{block: true}, nil)
	slides, err := o.Generate(ctx, Request{Prompt: "tides", Count: 3}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if slides != nil {
		t.Fatal("expected no slides after cancellation")
	}
}

func TestGenerateCoercesOptions(t *testing.T) {
	tests := []struct {
		count, want int
	}{
		{0, DefaultSlides},
		{1, MinSlides},
		{99, MaxSlides},
		{8, 8},
	}
	for _, tt := range tests {
		o := newTestOrchestrator(&fakeText{reply: replyWith(t, evSlides...)}, nil)
		slides, err := o.Generate(context.Background(), Request{
			DeckTitle: "EVs", Prompt: "electric vehicles", Count: tt.count, Theme: "neon", Transition: "spin",
		}, nil)
		if err != nil {
			t.Fatalf("count %d: %v", tt.count, err)
		}
		if len(slides) != tt.want {
			t.Errorf("count %d: got %d slides, want %d", tt.count, len(slides), tt.want)
		}
		if slides[0].Theme != DefaultTheme {
			t.Errorf("count %d: theme %s, want %s", tt.count, slides[0].Theme, DefaultTheme)
		}
		if !strings.Contains(slides[0].Content, TransitionClass(DefaultTransition)) {
			t.Errorf("count %d: default transition class missing", tt.count)
		}
	}
}

func TestGenerateReportsProgress(t *testing.T) {
	o := newTestOrchestrator(&fakeText{reply: replyWith(t, evSlides...)}, nil)
	var events []Progress
	if _, err := o.Generate(context.Background(), Request{DeckTitle: "EVs", Prompt: "electric vehicles", Count: 4},
		func(p Progress) { events = append(events, p) }); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []Stage{StageStarted, StageGenerated, StageParsed, StageSlide, StageSlide, StageSlide, StageSlide, StageCompleted}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, e := range events {
		if e.Stage != want[i] {
			t.Errorf("event %d: %s, want %s", i, e.Stage, want[i])
		}
		if e.Total != 4 {
			t.Errorf("event %d: total %d", i, e.Total)
		}
	}
	if events[6].Index != 3 {
		t.Errorf("last slide event index %d", events[6].Index)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Ocean Life", "coral reefs", 6, Style{Theme: ThemeDark, Transition: TransitionZoom})
	for _, want := range []string{
		"EXACTLY 6",
		`"coral reefs"`,
		`"Ocean Life"`,
		"#1e293b",
		TransitionClass(TransitionZoom),
		"<img>",
		"placeholders",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
