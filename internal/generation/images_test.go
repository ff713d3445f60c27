package generation

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

type fakeSearcher struct {
	byQuery map[string][]string
	err     error
	panics  bool
	queries []string
}

func (f *fakeSearcher) SearchImages(_ context.Context, query string, limit int) ([]string, error) {
	f.queries = append(f.queries, query)
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	res := f.byQuery[query]
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func TestResolveFallsBackWhenSearchFails(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("unsplash: unexpected status 429 Too Many Requests")}
	r := NewImageResolver(searcher, time.Second, nil)
	used := NewUsedImages()

	url := r.Resolve(context.Background(), "", "", "electric vehicles", used)
	if !slices.Contains(FallbackPool(CategoryCars), url) {
		t.Fatalf("expected a cars fallback image, got %q", url)
	}
	if !used.Has(url) {
		t.Error("resolved URL was not recorded as used")
	}
	if len(searcher.queries) != 1 {
		t.Errorf("expected a single search attempt, got %v", searcher.queries)
	}
}

func TestResolveWithoutSearcherReturnsDistinctImages(t *testing.T) {
	r := NewImageResolver(nil, 0, nil)
	used := NewUsedImages()
	pool := FallbackPool(CategoryCars)

	seen := map[string]bool{}
	for i := 0; i < len(pool); i++ {
		url := r.Resolve(context.Background(), "", "", "electric vehicles", used)
		if seen[url] {
			t.Fatalf("call %d repeated %s", i, url)
		}
		if !slices.Contains(pool, url) {
			t.Fatalf("call %d: %s is not from the cars pool", i, url)
		}
		seen[url] = true
	}

	// Pool exhausted: the next image is another category's canonical one.
	url := r.Resolve(context.Background(), "", "", "electric vehicles", used)
	if seen[url] {
		t.Fatalf("repeated %s before all canonical images were used", url)
	}
}

func TestResolvePrefersUnusedSearchResults(t *testing.T) {
	searcher := &fakeSearcher{byQuery: map[string][]string{
		"electric vehicles": {"https://img/a", "https://img/b"},
	}}
	r := NewImageResolver(searcher, time.Second, nil)
	used := NewUsedImages()
	used.Add("https://img/a")

	if got := r.Resolve(context.Background(), "", "", "electric vehicles", used); got != "https://img/b" {
		t.Fatalf("expected the unused result, got %q", got)
	}
}

func TestResolveRetriesWithBareTopic(t *testing.T) {
	searcher := &fakeSearcher{byQuery: map[string][]string{
		"electric vehicles charging networks": {"https://img/used"},
		"electric vehicles":                   {"https://img/fresh"},
	}}
	r := NewImageResolver(searcher, time.Second, nil)
	used := NewUsedImages()
	used.Add("https://img/used")

	got := r.Resolve(context.Background(), "", "Charging Networks", "electric vehicles", used)
	if got != "https://img/fresh" {
		t.Fatalf("expected result of the topic retry, got %q (queries %v)", got, searcher.queries)
	}
	if len(searcher.queries) != 2 {
		t.Errorf("expected two queries, got %v", searcher.queries)
	}
}

func TestResolveRecoversFromPanickingSearcher(t *testing.T) {
	r := NewImageResolver(&fakeSearcher{panics: true}, time.Second, nil)
	url := r.Resolve(context.Background(), "", "", "electric vehicles", NewUsedImages())
	if url == "" {
		t.Fatal("expected a fallback URL")
	}
}

func TestResolveRepeatsOnlyWhenExhausted(t *testing.T) {
	searcher := &fakeSearcher{byQuery: map[string][]string{
		"electric vehicles": {"https://img/only"},
	}}
	r := NewImageResolver(searcher, time.Second, nil)
	r.intn = func(int) int { return 0 }

	used := NewUsedImages()
	used.Add("https://img/only")
	for _, c := range Categories() {
		for _, u := range FallbackPool(c) {
			used.Add(u)
		}
	}

	if got := r.Resolve(context.Background(), "", "", "electric vehicles", used); got != "https://img/only" {
		t.Fatalf("expected the search result to be repeated, got %q", got)
	}
}

func TestUsedImagesFilter(t *testing.T) {
	used := NewUsedImages()
	used.Add("a")
	used.Add("a")
	used.Add("")
	if used.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", used.Len())
	}
	got := used.Filter([]string{"a", "b", "", "c"})
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Fatalf("Filter = %v", got)
	}
}
