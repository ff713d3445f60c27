package generation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const conclusionTitle = "Conclusion"

type topicTemplate struct {
	title     string
	paragraph string
	bullets   []string
}

var topicTemplates = []topicTemplate{
	{"Introduction to %s", "An overview of %s and why it matters today.",
		[]string{"What %s means", "Why %s is relevant now", "Who is shaped by %s"}},
	{"Key Concepts of %s", "The core ideas needed to understand %s.",
		[]string{"Foundational principles behind %s", "Common terminology around %s", "How the parts of %s fit together"}},
	{"Benefits of %s", "The value %s creates for people and organisations.",
		[]string{"Practical gains from %s", "Long-term impact of %s", "Who benefits most from %s"}},
	{"Challenges in %s", "The obstacles that still stand in the way of %s.",
		[]string{"Technical hurdles facing %s", "Cost and adoption barriers for %s", "Open questions about %s"}},
	{"Real-World Applications of %s", "Where %s is already being put to work.",
		[]string{"Everyday uses of %s", "Industry examples of %s", "Lessons learned from deploying %s"}},
	{"The Future of %s", "Trends likely to shape %s in the coming years.",
		[]string{"Emerging developments in %s", "Predictions for %s", "How to prepare for changes in %s"}},
	{"Getting Started with %s", "First steps for anyone exploring %s.",
		[]string{"Resources for learning about %s", "Small experiments with %s", "Building on early results with %s"}},
}

var fragmentSeparators = regexp.MustCompile(`[,;:.\n]+|\s+(?:and|&)\s+`)

// Reconcile pins slides to exactly target entries. Excess middle slides are
// dropped; missing ones are synthesised from topic templates, then from
// fragments of the topic, then numbered filler, and inserted ahead of the
// last slide. The first slide always becomes the title block and the last
// the conclusion block.
func Reconcile(slides []RawSlide, target int, deckTitle, topic string, style Style) []RawSlide {
	if target <= 0 {
		return []RawSlide{}
	}
	deckTitle = strings.TrimSpace(deckTitle)
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = deckTitle
	}
	if deckTitle == "" {
		deckTitle = topic
	}
	if deckTitle == "" {
		deckTitle = "Presentation"
		topic = deckTitle
	}

	out := make([]RawSlide, 0, target)
	switch {
	case len(slides) > target && target < 3:
		out = append(out, slides[:target]...)
	case len(slides) > target:
		out = append(out, slides[0])
		out = append(out, slides[1:target-1]...)
		out = append(out, slides[len(slides)-1])
	case len(slides) < target:
		extra := synthesize(slides, target-len(slides), deckTitle, topic, style)
		if len(slides) >= 2 {
			out = append(out, slides[:len(slides)-1]...)
			out = append(out, extra...)
			out = append(out, slides[len(slides)-1])
		} else {
			out = append(out, slides...)
			out = append(out, extra...)
		}
	default:
		out = append(out, slides...)
	}

	for i := range out {
		if strings.TrimSpace(out[i].Title) == "" {
			out[i].Title = fmt.Sprintf("Slide %d", i+1)
		}
	}
	out[0] = RawSlide{Title: deckTitle, Content: TitleBlock(style, deckTitle, topic)}
	if last := len(out) - 1; last > 0 {
		recap := make([]string, 0, last-1)
		for _, s := range out[1:last] {
			if s.Title != "" {
				recap = append(recap, s.Title)
			}
		}
		out[last] = RawSlide{Title: conclusionTitle, Content: ConclusionBlock(style, deckTitle, topic, recap)}
	}
	return out
}

func synthesize(existing []RawSlide, need int, deckTitle, topic string, style Style) []RawSlide {
	used := make(map[string]struct{}, len(existing)+need+2)
	used[strings.ToLower(deckTitle)] = struct{}{}
	used[strings.ToLower(conclusionTitle)] = struct{}{}
	for _, s := range existing {
		used[strings.ToLower(strings.TrimSpace(s.Title))] = struct{}{}
	}
	out := make([]RawSlide, 0, need)
	take := func(title string, b Block) bool {
		key := strings.ToLower(title)
		if _, dup := used[key]; dup {
			return false
		}
		used[key] = struct{}{}
		b.Heading = title
		out = append(out, RawSlide{Title: title, Content: RenderBlock(style, b)})
		return len(out) == need
	}

	for _, tpl := range topicTemplates {
		bullets := make([]string, len(tpl.bullets))
		for i, b := range tpl.bullets {
			bullets[i] = fmt.Sprintf(b, topic)
		}
		if take(fmt.Sprintf(tpl.title, topic), Block{
			Paragraphs: []string{fmt.Sprintf(tpl.paragraph, topic)},
			Bullets:    bullets,
		}) {
			return out
		}
	}

	for _, fragment := range topicFragments(topic) {
		if take(titleCase(fragment), Block{
			Paragraphs: []string{fmt.Sprintf("A closer look at %s as part of %s.", fragment, topic)},
			Bullets: []string{
				"Why " + fragment + " matters",
				"How " + fragment + " works in practice",
			},
		}) {
			return out
		}
	}

	for n := len(existing) + len(out) + 1; len(out) < need; n++ {
		take(fmt.Sprintf("More About %s (%d)", topic, n), Block{
			Paragraphs: []string{fmt.Sprintf("Further perspectives on %s.", topic)},
		})
	}
	return out
}

// topicFragments splits a free-text prompt into its distinct phrases.
func topicFragments(prompt string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range fragmentSeparators.Split(prompt, -1) {
		part = strings.Join(strings.Fields(part), " ")
		if utf8.RuneCountInString(part) < 3 {
			continue
		}
		key := strings.ToLower(part)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, part)
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
