package generation

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

const imageBlockClass = "slide-image"

var (
	imageBlockPattern   = regexp.MustCompile(`(?is)<div[^>]*class="` + imageBlockClass + `"[^>]*>\s*(?:<img[^>]*>\s*)?</div>`)
	imgTagPattern       = regexp.MustCompile(`(?is)<img\b[^>]*>`)
	placeholderPattern  = regexp.MustCompile(`placehold\.co|\[TOPIC\]|\[KEYWORDS\]`)
	flexDisplayPattern  = regexp.MustCompile(`(?i)display:\s*flex`)
	spaceBetweenPattern = regexp.MustCompile(`(?i)justify-content:\s*space-between`)
	flexColumnPattern   = regexp.MustCompile(`(?is)<div\b[^>]*\bflex:\s*1\b[^>]*>`)
	firstDivPattern     = regexp.MustCompile(`(?is)<div\b[^>]*>`)
	classAttrPattern    = regexp.MustCompile(`(?i)\bclass\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// Layout is the column shape detected in generated markup.
type Layout int

const (
	LayoutSingleColumn Layout = iota
	LayoutTwoColumn
)

// DetectLayout treats markup that is both a flex row and justified with
// space-between as two columns.
func DetectLayout(content string) Layout {
	if flexDisplayPattern.MatchString(content) && spaceBetweenPattern.MatchString(content) {
		return LayoutTwoColumn
	}
	return LayoutSingleColumn
}

// StripImages removes every image tag, any image block inserted by an
// earlier normalisation, and known placeholder markers.
func StripImages(content string) string {
	content = imageBlockPattern.ReplaceAllString(content, "")
	content = imgTagPattern.ReplaceAllString(content, "")
	return placeholderPattern.ReplaceAllString(content, "")
}

// Normalize cleans a generated slide body and embeds imageURL exactly once.
// Applying it again with the same URL yields the same content.
func Normalize(slide RawSlide, imageURL string, style Style) RawSlide {
	content := StripImages(slide.Content)

	if !firstDivPattern.MatchString(content) {
		content = wrapContainer(style, content)
	} else if !outerHasTransition(content) {
		content = addTransitionClass(content, style.TransitionClass())
	}

	if imageURL != "" {
		content = insertImage(content, imageURL, slide.Title, DetectLayout(content))
	}
	return RawSlide{Title: slide.Title, Content: content}
}

func insertImage(content, imageURL, alt string, layout Layout) string {
	src, altText := html.EscapeString(imageURL), html.EscapeString(alt)

	if layout == LayoutTwoColumn {
		// The last flexed column is the secondary one that holds media.
		if locs := flexColumnPattern.FindAllStringIndex(content, -1); len(locs) > 0 {
			at := locs[len(locs)-1][1]
			img := fmt.Sprintf(`<img class="%s" src="%s" alt="%s" style="max-width: 100%%; max-height: 300px; border-radius: 8px; box-shadow: 0 4px 8px rgba(0,0,0,0.1);">`,
				imageBlockClass, src, altText)
			return content[:at] + img + content[at:]
		}
	}

	block := fmt.Sprintf(`<div class="%s" style="display: flex; justify-content: center; margin-top: 30px;"><img src="%s" alt="%s" style="max-width: 90%%; max-height: 300px; border-radius: 8px; box-shadow: 0 4px 8px rgba(0,0,0,0.1);"></div>`,
		imageBlockClass, src, altText)
	if i := strings.LastIndex(strings.ToLower(content), "</div>"); i >= 0 {
		return content[:i] + block + content[i:]
	}
	return content + block
}

// outerHasTransition reports whether the outer container's class list
// already carries a transition utility.
func outerHasTransition(content string) bool {
	tag := firstDivPattern.FindString(content)
	m := classAttrPattern.FindStringSubmatch(tag)
	if m == nil {
		return false
	}
	for _, class := range strings.Fields(m[1] + " " + m[2]) {
		if strings.HasPrefix(class, "transition-") {
			return true
		}
	}
	return false
}

func addTransitionClass(content, class string) string {
	loc := firstDivPattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	tag := content[loc[0]:loc[1]]
	if m := classAttrPattern.FindStringSubmatchIndex(tag); m != nil {
		// Prepend to the existing class list, keeping the original quote style.
		valueStart := m[2]
		if valueStart < 0 {
			valueStart = m[4]
		}
		tag = tag[:valueStart] + class + " " + tag[valueStart:]
	} else {
		tag = `<div class="` + class + `"` + tag[len("<div"):]
	}
	return content[:loc[0]] + tag + content[loc[1]:]
}

func wrapContainer(style Style, inner string) string {
	p := style.Palette()
	return fmt.Sprintf(`<div class="%s" style="display: flex; flex-direction: column; justify-content: flex-start; width: 100%%; height: 100%%; padding: 60px; background: %s; color: %s; font-family: Arial, sans-serif;">%s</div>`,
		style.TransitionClass(), p.Background, p.Text, inner)
}
