package generation

import "strings"

type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeDark     Theme = "dark"
	ThemeGradient Theme = "gradient"
)

type Transition string

const (
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
	TransitionZoom  Transition = "zoom"
	TransitionFlip  Transition = "flip"
	TransitionCube  Transition = "cube"
)

const (
	DefaultTheme      = ThemeLight
	DefaultTransition = TransitionFade
)

// Palette holds the colours a theme renders with.
type Palette struct {
	Background string
	Heading    string
	Text       string
	Accent     string
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Background: "#f8fafc",
		Heading:    "#1e40af",
		Text:       "#334155",
		Accent:     "#3b82f6",
	},
	ThemeDark: {
		Background: "#1e293b",
		Heading:    "#60a5fa",
		Text:       "#e2e8f0",
		Accent:     "#818cf8",
	},
	ThemeGradient: {
		Background: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
		Heading:    "#ffffff",
		Text:       "#f1f5f9",
		Accent:     "#fbbf24",
	},
}

var transitionClasses = map[Transition]string{
	TransitionFade:  "transition-opacity duration-500 ease-in-out",
	TransitionSlide: "transition-transform duration-500 ease-in-out",
	TransitionZoom:  "transition-transform duration-500 ease-in-out transform hover:scale-105",
	TransitionFlip:  "transition-transform duration-500 perspective-1000 hover:rotate-y-180",
	TransitionCube:  "transition-transform duration-700 transform-style-3d rotate-y-0 hover:rotate-y-90",
}

// ParseTheme maps free input onto the closed theme set. ok is false when the
// input was empty or unrecognised and the default was substituted.
func ParseTheme(raw string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if _, found := palettes[t]; found {
		return t, true
	}
	return DefaultTheme, false
}

func ParseTransition(raw string) (Transition, bool) {
	t := Transition(strings.ToLower(strings.TrimSpace(raw)))
	if _, found := transitionClasses[t]; found {
		return t, true
	}
	return DefaultTransition, false
}

// PaletteFor returns the palette of t, falling back to the default theme.
func PaletteFor(t Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[DefaultTheme]
}

// TransitionClass returns the style classes for a transition kind. Unknown
// kinds get the fade classes.
func TransitionClass(t Transition) string {
	if c, ok := transitionClasses[t]; ok {
		return c
	}
	return transitionClasses[TransitionFade]
}

// Style bundles the validated presentation options for one run.
type Style struct {
	Theme      Theme
	Transition Transition
}

func (s Style) Palette() Palette         { return PaletteFor(s.Theme) }
func (s Style) TransitionClass() string { return TransitionClass(s.Transition) }
