package generation

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RawSlide is a slide as produced by the text provider, before images,
// metadata and count reconciliation.
type RawSlide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var (
	fencedBlockPattern   = regexp.MustCompile("(?s)```(?:json|JSON)?[ \\t]*\\r?\\n?(.*?)```")
	slideArrayStart      = regexp.MustCompile(`\[\s*\{\s*"title"`)
	looseArrayStart      = regexp.MustCompile(`\[\s*\{`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([\]}])`)
	fenceMarkers         = strings.NewReplacer("```json", "", "```JSON", "", "```", "")
	slideKeySuffix       = regexp.MustCompile(`(?i)^slide[_\s-]*(\d+)$`)
)

// ParseSlides extracts the slide array embedded in a provider response. It
// looks for a fenced code block, then a bare array of title objects, then
// treats the whole text as JSON; if decoding fails it retries with a looser
// array match and trailing-comma repair. Only the first complete JSON value
// at a candidate position is decoded, so prose after the array is ignored.
func ParseSlides(text string) ([]RawSlide, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, unparsable("generation provider returned an empty response", text)
	}

	var (
		payload any
		err     error
	)
	if m := fencedBlockPattern.FindStringSubmatch(trimmed); m != nil {
		payload, err = decodeLeading(strings.TrimSpace(fenceMarkers.Replace(m[1])))
	} else if v, ok := decodeFirstAt(trimmed, slideArrayStart); ok {
		payload = v
	} else {
		payload, err = decodeLeading(trimmed)
	}

	if err != nil {
		if !looseArrayStart.MatchString(trimmed) {
			return nil, unparsable("generation response contains no JSON slide array", text)
		}
		v, ok := decodeFirstAt(trimmed, looseArrayStart)
		if !ok {
			v, ok = decodeFirstAt(trailingCommaPattern.ReplaceAllString(trimmed, "$1"), looseArrayStart)
		}
		if !ok {
			_, err = decodeLeading(trimmed[looseArrayStart.FindStringIndex(trimmed)[0]:])
			return nil, unparsable(fmt.Sprintf("generation response is not valid JSON: %v", err), text)
		}
		payload = v
	}

	slides := flattenSlides(payload)
	if len(slides) == 0 {
		return nil, unparsable("no slides found in generation response", text)
	}
	return slides, nil
}

// decodeLeading decodes the first JSON value of s and ignores what follows.
func decodeLeading(s string) (any, error) {
	var v any
	if err := json.NewDecoder(strings.NewReader(s)).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeFirstAt tries each match of start in order and returns the first
// one that begins a complete JSON value.
func decodeFirstAt(s string, start *regexp.Regexp) (any, bool) {
	for _, loc := range start.FindAllStringIndex(s, -1) {
		if v, err := decodeLeading(s[loc[0]:]); err == nil {
			return v, true
		}
	}
	return nil, false
}

// flattenSlides accepts a bare array, an object with a "slides" array, an
// object with numbered "slideN" fields, or a single slide object.
func flattenSlides(payload any) []RawSlide {
	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		if arr, ok := v["slides"].([]any); ok {
			items = arr
			break
		}
		items = numberedSlides(v)
		if len(items) == 0 {
			if _, ok := v["title"]; ok {
				items = []any{v}
			}
		}
	}

	slides := make([]RawSlide, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title := strings.TrimSpace(stringify(obj["title"]))
		if title == "" {
			title = "Slide " + strconv.Itoa(len(slides)+1)
		}
		slides = append(slides, RawSlide{
			Title:   title,
			Content: stringify(obj["content"]),
		})
	}
	return slides
}

func numberedSlides(obj map[string]any) []any {
	type numbered struct {
		n     int
		key   string
		value any
	}
	var found []numbered
	for key, value := range obj {
		if _, ok := value.(map[string]any); !ok {
			continue
		}
		m := slideKeySuffix.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, numbered{n: n, key: key, value: value})
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].n != found[j].n {
			return found[i].n < found[j].n
		}
		return found[i].key < found[j].key
	})
	out := make([]any, len(found))
	for i, f := range found {
		out[i] = f.value
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, item := range t {
			sb.WriteString("<li>")
			sb.WriteString(html.EscapeString(stringify(item)))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		return sb.String()
	default:
		return fmt.Sprint(t)
	}
}
