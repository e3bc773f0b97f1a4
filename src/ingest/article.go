package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	nurl "net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"

	"github.com/factlens/factlens/src/shared/httpx"
)

const maxArticleBytes = 8 << 20 // 8 MB of HTML is plenty for any article

var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// ArticleFetcher downloads pages and extracts the readable article body.
type ArticleFetcher struct {
	httpClient *http.Client
}

func NewArticleFetcher(timeout time.Duration) *ArticleFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &ArticleFetcher{httpClient: httpx.NewDefault(timeout)}
}

// FetchText downloads the page and extracts article text. The primary
// extractor is trafilatura; when it finds nothing, the raw readable-text
// pass takes over.
func (f *ArticleFetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	page, err := f.fetchHTML(ctx, rawURL)
	if err != nil {
		return "", err
	}

	parsedURL, _ := nurl.Parse(rawURL)
	result, err := trafilatura.Extract(strings.NewReader(page), trafilatura.Options{
		OriginalURL:     parsedURL,
		ExcludeComments: true,
		ExcludeTables:   true,
		Focus:           trafilatura.FavorRecall,
		EnableFallback:  true,
	})
	if err == nil && result != nil && strings.TrimSpace(result.ContentText) != "" {
		return result.ContentText, nil
	}
	if err != nil {
		log.Printf("trafilatura failed for %s, using raw extractor: %v", rawURL, err)
	}

	text, err := ReadableText(page)
	if err != nil {
		return "", fmt.Errorf("failed to extract article text from this URL: %w", err)
	}
	return text, nil
}

func (f *ArticleFetcher) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", err
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not download the page: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusForbidden, http.StatusUnavailableForLegalReasons:
		return "", fmt.Errorf("%w: HTTP %d, access not permitted", ErrSkipped, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("could not download the page: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
