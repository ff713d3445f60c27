package generation

import (
	"html/template"
	"strings"
)

// Block describes the text of one templated slide body.
type Block struct {
	Heading    string
	Subheading string
	Paragraphs []string
	Bullets    []string
	// Centered renders the title layout: vertically centred, larger heading.
	Centered bool
}

type blockData struct {
	Block
	Class      string
	Background template.CSS
	HeadingCSS template.CSS
	TextCSS    template.CSS
	AccentCSS  template.CSS
}

var blockTemplate = template.Must(template.New("block").Parse(
	`<div class="{{.Class}}" style="display: flex; flex-direction: column; justify-content: {{if .Centered}}center{{else}}flex-start{{end}}; width: 100%; height: 100%; padding: 60px; background: {{.Background}}; font-family: Arial, sans-serif;">` +
		`{{if .Centered}}<h1 style="font-size: 48px; margin-bottom: 24px; color: {{.HeadingCSS}}; text-align: center;">{{.Heading}}</h1>` +
		`{{else}}<h2 style="font-size: 36px; margin-bottom: 30px; color: {{.HeadingCSS}}; text-align: center;">{{.Heading}}</h2>{{end}}` +
		`{{with .Subheading}}<p style="font-size: 26px; color: {{$.AccentCSS}}; text-align: center;">{{.}}</p>{{end}}` +
		`{{if or .Paragraphs .Bullets}}<div style="margin-bottom: 30px;">` +
		`{{range .Paragraphs}}<p style="font-size: 24px; margin-bottom: 25px; color: {{$.TextCSS}};">{{.}}</p>{{end}}` +
		`{{if .Bullets}}<ul style="font-size: 20px; margin-left: 30px; color: {{$.TextCSS}};">{{range .Bullets}}<li style="margin-bottom: 15px;">{{.}}</li>{{end}}</ul>{{end}}` +
		`</div>{{end}}` +
		`</div>`))

// RenderBlock renders b with the palette and transition classes of style.
// All text is HTML-escaped.
func RenderBlock(style Style, b Block) string {
	p := style.Palette()
	data := blockData{
		Block:      b,
		Class:      style.TransitionClass(),
		Background: template.CSS(p.Background),
		HeadingCSS: template.CSS(p.Heading),
		TextCSS:    template.CSS(p.Text),
		AccentCSS:  template.CSS(p.Accent),
	}
	var sb strings.Builder
	if err := blockTemplate.Execute(&sb, data); err != nil {
		// Only reachable on writer failure, which strings.Builder never reports.
		return ""
	}
	return sb.String()
}

// TitleBlock is the canonical body of the first slide.
func TitleBlock(style Style, deckTitle, topic string) string {
	b := Block{Heading: deckTitle, Centered: true}
	if topic != "" && !strings.EqualFold(strings.TrimSpace(topic), strings.TrimSpace(deckTitle)) {
		b.Subheading = topic
	}
	return RenderBlock(style, b)
}

// ConclusionBlock is the canonical body of the last slide. recap lists the
// titles of the slides in between, at most five are shown.
func ConclusionBlock(style Style, deckTitle, topic string, recap []string) string {
	if len(recap) > 5 {
		recap = recap[:5]
	}
	b := Block{
		Heading:    "Conclusion",
		Paragraphs: []string{"Key takeaways from " + deckTitle},
		Bullets:    recap,
	}
	if len(recap) == 0 && topic != "" {
		b.Bullets = []string{
			"What we covered about " + topic,
			"Where " + topic + " is heading next",
		}
	}
	return RenderBlock(style, b)
}
