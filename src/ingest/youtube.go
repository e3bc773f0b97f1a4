package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	nurl "net/url"
	"regexp"
	"strings"
	"time"

	"github.com/factlens/factlens/src/shared/httpx"
)

// YouTubeFetcher pulls a transcript for a video, captions first, then a
// local download-and-transcribe fallback.
type YouTubeFetcher struct {
	httpClient  *http.Client
	transcriber *Transcriber
}

func NewYouTubeFetcher(transcriber *Transcriber) *YouTubeFetcher {
	return &YouTubeFetcher{
		httpClient:  httpx.NewDefault(30 * time.Second),
		transcriber: transcriber,
	}
}

// ExtractVideoID parses the video ID out of watch/short/embed URL forms.
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := nurl.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	host := strings.ToLower(parsed.Host)

	if host == "youtu.be" {
		id := strings.Trim(parsed.Path, "/")
		if i := strings.Index(id, "/"); i >= 0 {
			id = id[:i]
		}
		if id != "" {
			return id, nil
		}
	}
	if id := parsed.Query().Get("v"); id != "" {
		return id, nil
	}
	for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
		if strings.HasPrefix(parsed.Path, prefix) {
			id := strings.TrimPrefix(parsed.Path, prefix)
			if i := strings.Index(id, "/"); i >= 0 {
				id = id[:i]
			}
			if id != "" {
				return id, nil
			}
		}
	}
	return "", fmt.Errorf("could not parse video id from URL: %s", rawURL)
}

// FetchTranscript returns the transcript text for a YouTube URL.
func (f *YouTubeFetcher) FetchTranscript(ctx context.Context, rawURL string) (string, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return "", err
	}

	text, err := f.fetchCaptions(ctx, videoID)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if err != nil {
		log.Printf("caption fetch failed for %s: %v", videoID, err)
	}

	if f.transcriber == nil {
		return "", fmt.Errorf("no captions available for video %s and transcription is disabled", videoID)
	}
	return f.transcriber.Transcribe(ctx, rawURL)
}

var captionTracksRe = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// fetchCaptions scrapes the watch page for caption tracks and fetches the
// best one as json3 events.
func (f *YouTubeFetcher) fetchCaptions(ctx context.Context, videoID string) (string, error) {
	page, err := f.get(ctx, "https://www.youtube.com/watch?v="+nurl.QueryEscape(videoID))
	if err != nil {
		return "", err
	}

	m := captionTracksRe.FindSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("no caption tracks found for video %s", videoID)
	}
	var tracks []captionTrack
	if err := json.Unmarshal(m[1], &tracks); err != nil {
		return "", fmt.Errorf("failed to parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("no caption tracks found for video %s", videoID)
	}

	track := pickCaptionTrack(tracks)
	sep := "&"
	if !strings.Contains(track.BaseURL, "?") {
		sep = "?"
	}
	data, err := f.get(ctx, track.BaseURL+sep+"fmt=json3")
	if err != nil {
		return "", err
	}
	return decodeCaptionEvents(data)
}

// pickCaptionTrack prefers manual English captions, then auto-generated
// English, then whatever comes first.
func pickCaptionTrack(tracks []captionTrack) captionTrack {
	var autoEN *captionTrack
	for i, t := range tracks {
		if !strings.HasPrefix(strings.ToLower(t.LanguageCode), "en") {
			continue
		}
		if t.Kind != "asr" {
			return t
		}
		if autoEN == nil {
			autoEN = &tracks[i]
		}
	}
	if autoEN != nil {
		return *autoEN
	}
	return tracks[0]
}

var bracketedCueRe = regexp.MustCompile(`\[.*?\]`)

func decodeCaptionEvents(data []byte) (string, error) {
	var payload struct {
		Events []struct {
			Segs []struct {
				UTF8 string `json:"utf8"`
			} `json:"segs"`
		} `json:"events"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("failed to parse caption data: %w", err)
	}

	var b strings.Builder
	for _, ev := range payload.Events {
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
	}
	// Cues like [Music] or [Applause] carry no claims.
	text := bracketedCueRe.ReplaceAllString(b.String(), "")
	return NormalizeWhitespace(text), nil
}

func (f *YouTubeFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxArticleBytes))
}
