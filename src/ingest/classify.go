package ingest

import (
	"net/url"
	"strings"
)

// Kind classifies what the user pasted into the form.
type Kind int

const (
	KindText Kind = iota
	KindArticleURL
	KindYouTubeURL
)

func (k Kind) String() string {
	switch k {
	case KindArticleURL:
		return "article"
	case KindYouTubeURL:
		return "youtube"
	default:
		return "text"
	}
}

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// Classify decides whether input is raw text, an article URL, or a YouTube URL.
func Classify(input string) Kind {
	input = strings.TrimSpace(input)
	if !IsURL(input) {
		return KindText
	}
	if IsYouTube(input) {
		return KindYouTubeURL
	}
	return KindArticleURL
}

// IsURL reports whether text is a fetchable http(s) URL.
func IsURL(text string) bool {
	parsed, err := url.Parse(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsYouTube reports whether the URL points at a known YouTube host.
func IsYouTube(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return youtubeHosts[strings.ToLower(parsed.Host)]
}
