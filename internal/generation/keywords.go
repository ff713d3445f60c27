package generation

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

const (
	maxKeywords        = 5
	maxBodyKeywords    = 3
	fallbackKeyword    = "presentation"
	minTitleWordLength = 4
	minBodyWordLength  = 5
)

var stopWords = map[string]struct{}{
	"this": {}, "that": {}, "from": {}, "about": {}, "with": {}, "have": {},
	"there": {}, "their": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "would": {}, "could": {}, "should": {},
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// ExtractKeywords derives up to five search terms for a slide: the topic,
// distinctive title words, then the longest words of the body text.
func ExtractKeywords(bodyHTML, title, topic string) []string {
	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})
	add := func(w string) {
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		keywords = append(keywords, w)
	}

	if t := strings.TrimSpace(topic); t != "" {
		add(t)
	}

	for _, w := range tokenize(title, minTitleWordLength) {
		add(w)
	}

	body := tokenize(htmlText(bodyHTML), minBodyWordLength)
	sort.SliceStable(body, func(i, j int) bool { return len(body[i]) > len(body[j]) })
	taken := 0
	for _, w := range body {
		if taken == maxBodyKeywords {
			break
		}
		if _, dup := seen[w]; dup {
			continue
		}
		add(w)
		taken++
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	if len(keywords) == 0 {
		keywords = append(keywords, fallbackKeyword)
	}
	return keywords
}

func tokenize(text string, minLen int) []string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(text), "")
	var out []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) < minLen {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// htmlText returns the text nodes of a markup fragment separated by spaces.
func htmlText(fragment string) string {
	if fragment == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
			sb.WriteByte(' ')
		default:
			sb.WriteByte(' ')
		}
	}
}
