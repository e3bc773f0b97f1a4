package ingest

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// ErrSkipped marks pages that should not be analyzed (paywall, blocked).
var ErrSkipped = errors.New("article skipped")

// Lines shorter than this are menu/toolbar crumbs, not content.
const minCharsPerLine = 30

var paywallMarkers = []string{
	"subscribe", "subscription", "subscriber-only", "for subscribers",
	"log in to continue", "sign in to continue", "metered", "paywall",
}

var stripPolicy = bluemonday.StrictPolicy()

var lineBreakRe = regexp.MustCompile(`(?i)<(br|/p|/div|/li|/h[1-6]|/tr|/section|/article)[^>]*>`)

// ReadableText is the raw fallback extractor: it strips boilerplate blocks
// and all markup, keeps lines that look like prose, and dedupes repeats.
// Returns ErrSkipped when the page reads like a paywall tease.
func ReadableText(htmlSrc string) (string, error) {
	cleaned := dropNonContentBlocks(htmlSrc)

	// Preserve line structure so the per-line filter has something to work on.
	cleaned = lineBreakRe.ReplaceAllString(cleaned, "\n")

	text := html.UnescapeString(stripPolicy.Sanitize(cleaned))

	lower := strings.ToLower(text)
	for _, marker := range paywallMarkers {
		if strings.Contains(lower, marker) {
			return "", errors.Join(ErrSkipped, errors.New("detected paywall copy in page"))
		}
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = NormalizeWhitespace(line)
		if line == "" || len(line) < minCharsPerLine || !hasLetter(line) {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1] == line {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return "", errors.New("no readable text found in page")
	}
	return strings.Join(kept, "\n"), nil
}

func dropNonContentBlocks(src string) string {
	for _, tag := range []string{"script", "style", "noscript", "template", "iframe", "svg", "canvas", "header", "footer", "nav"} {
		re := regexp.MustCompile(`(?is)<` + tag + `\b[^>]*>.*?</` + tag + `\s*>`)
		src = re.ReplaceAllString(src, " ")
	}
	return src
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
