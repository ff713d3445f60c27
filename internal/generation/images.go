package generation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"slidecraft/internal/logger"
)

const searchLimit = 10

// ImageSearcher queries an external image-search provider and returns
// candidate image URLs, best match first.
type ImageSearcher interface {
	SearchImages(ctx context.Context, query string, limit int) ([]string, error)
}

// UsedImages records the image URLs assigned during one generation run. It
// is not safe for concurrent use.
type UsedImages struct {
	seen  map[string]struct{}
	order []string
}

func NewUsedImages() *UsedImages {
	return &UsedImages{seen: make(map[string]struct{})}
}

func (u *UsedImages) Has(url string) bool {
	_, ok := u.seen[url]
	return ok
}

func (u *UsedImages) Add(url string) {
	if url == "" || u.Has(url) {
		return
	}
	u.seen[url] = struct{}{}
	u.order = append(u.order, url)
}

func (u *UsedImages) Len() int { return len(u.order) }

// List returns the URLs in assignment order.
func (u *UsedImages) List() []string { return append([]string(nil), u.order...) }

// Filter returns the entries of urls that have not been used yet.
func (u *UsedImages) Filter(urls []string) []string {
	var out []string
	for _, url := range urls {
		if url != "" && !u.Has(url) {
			out = append(out, url)
		}
	}
	return out
}

// ImageResolver picks one illustrative image per slide. It never fails: when
// search is unavailable it degrades to the curated fallback pools.
type ImageResolver struct {
	searcher ImageSearcher
	timeout  time.Duration
	log      *logger.Logger
	intn     func(int) int
}

// NewImageResolver builds a resolver. A nil searcher means no search key is
// configured and every image comes from the fallback pools.
func NewImageResolver(searcher ImageSearcher, timeout time.Duration, log *logger.Logger) *ImageResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ImageResolver{searcher: searcher, timeout: timeout, log: log, intn: rand.IntN}
}

// Resolve returns an image URL for a slide and marks it as used.
func (r *ImageResolver) Resolve(ctx context.Context, bodyHTML, title, topic string, used *UsedImages) string {
	keywords := ExtractKeywords(bodyHTML, title, topic)
	category := Classify(topic, keywords)

	var candidates []string
	if r.searcher != nil {
		query := strings.Join(keywords, " ")
		results, err := r.search(ctx, query)
		if err != nil {
			r.log.Warn("image search failed, using fallback pool", "query", query, "category", category, "error", err)
		} else {
			candidates = results
			if url, ok := r.pickUnused(results, used); ok {
				return url
			}
			if bare := strings.TrimSpace(topic); bare != "" && bare != query {
				retry, err := r.search(ctx, bare)
				if err != nil {
					r.log.Warn("topic image search failed", "query", bare, "error", err)
				} else {
					candidates = append(candidates, retry...)
					if url, ok := r.pickUnused(retry, used); ok {
						return url
					}
				}
			}
		}
	}

	url, fresh := pickFallback(category, used, r.intn)
	if !fresh {
		if pool := nonEmpty(candidates); len(pool) > 0 {
			url = pool[r.intn(len(pool))]
		}
		r.log.Debug("image pools exhausted, repeating an image", "category", category, "used", used.Len())
	}
	used.Add(url)
	return url
}

func (r *ImageResolver) pickUnused(results []string, used *UsedImages) (string, bool) {
	unused := used.Filter(results)
	if len(unused) == 0 {
		return "", false
	}
	url := unused[r.intn(len(unused))]
	used.Add(url)
	return url, true
}

func (r *ImageResolver) search(ctx context.Context, query string) (urls []string, err error) {
	sctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	defer func() {
		if p := recover(); p != nil {
			urls, err = nil, fmt.Errorf("image searcher panicked: %v", p)
		}
	}()
	return r.searcher.SearchImages(sctx, query, searchLimit)
}

func nonEmpty(urls []string) []string {
	out := urls[:0:0]
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
