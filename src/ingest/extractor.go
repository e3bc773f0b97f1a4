package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Extractor turns whatever the user submitted into normalized plain text.
type Extractor struct {
	articles *ArticleFetcher
	youtube  *YouTubeFetcher
}

func NewExtractor(articleTimeout time.Duration, transcriber *Transcriber) *Extractor {
	return &Extractor{
		articles: NewArticleFetcher(articleTimeout),
		youtube:  NewYouTubeFetcher(transcriber),
	}
}

// Extract classifies the input, pulls text from the right source and
// normalizes whitespace. The returned Kind tells the caller what the input
// turned out to be.
func (e *Extractor) Extract(ctx context.Context, input string) (string, Kind, error) {
	kind := Classify(input)
	if input = NormalizeWhitespace(input); input == "" {
		return "", kind, errors.New("empty input")
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindYouTubeURL:
		text, err = e.youtube.FetchTranscript(ctx, input)
	case KindArticleURL:
		text, err = e.articles.FetchText(ctx, input)
	default:
		text = input
	}
	if err != nil {
		return "", kind, err
	}

	text = NormalizeWhitespace(text)
	if text == "" {
		return "", kind, fmt.Errorf("no textual content found")
	}
	return text, kind, nil
}
