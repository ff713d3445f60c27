package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BuildPrompt composes the instruction sent to the text provider for one run.
func BuildPrompt(deckTitle, topic string, count int, style Style) string {
	p := style.Palette()

	var sb strings.Builder
	fmt.Fprintf(&sb, `You are a professional presentation creator.
Your task is to create EXACTLY %d presentation slides about "%s".
The title of the presentation is "%s".
The theme is "%s".

Each slide should have:
1. A clear, concise title
2. Properly formatted content with HTML styling
3. Relevant, SPECIFIC information that is factually accurate
4. Professional tone and language
5. NO images: the backend adds them automatically

CRITICAL INSTRUCTIONS:
- NEVER use generic placeholders like "Additional feature or benefit", "Supporting information or data" or "Important Information".
- ALL content MUST be specific to the topic (%s).
- DO NOT INCLUDE ANY <img> TAGS, IMAGE URLS OR IMAGE REFERENCES.
- If you are unsure of specific details, write reasonable, plausible content rather than placeholders.
- The last slide is a conclusion with specific summary points about %s, not vague statements.

Use proper HTML with inline CSS. Wrap each slide's content in one outer div with padding and styling.
Put this transition class list on the outer div: "%s"

Style guidelines for the %s theme:
- Background: %s
- Headings: %s
- Body text: %s
- Accents and bullet highlights: %s
- Center titles, left-align content, 60px padding on all sides.
`, count, topic, deckTitle, style.Theme, topic, topic,
		style.TransitionClass(), style.Theme, p.Background, p.Heading, p.Text, p.Accent)

	fmt.Fprintf(&sb, `
IMPORTANT: Your response MUST include EXACTLY %d slides, no more and no less.
IMPORTANT: Every bullet point must contain actual content specific to %s.
IMPORTANT: If you cannot produce %d slides of distinct content, repeat information rather than use placeholders.

Example slide object:
%s

Respond with a valid JSON array of exactly %d objects, each with "title" and "content" string fields.`,
		count, topic, count, exampleSlide(topic, style), count)
	return sb.String()
}

func exampleSlide(topic string, style Style) string {
	example := RawSlide{
		Title: "Specific Title About " + topic,
		Content: RenderBlock(style, Block{
			Heading:    "Specific Heading About " + topic,
			Paragraphs: []string{"Specific description of one aspect of " + topic},
			Bullets:    []string{"Specific fact about " + topic, "Specific detail about " + topic},
		}),
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(example); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
