package claimbuster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/factlens/factlens/src/ingest"
	"github.com/factlens/factlens/src/shared/httpx"
)

const DefaultBaseURL = "https://idir.uta.edu/claimbuster/api/v2"

// MinScore is the check-worthiness floor; lower-scoring sentences are noise.
const MinScore = 0.5

// ScoredSentence pairs a sentence with its ClaimBuster check-worthiness score.
type ScoredSentence struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
}

// Client calls the ClaimBuster batch scoring endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: httpx.NewDefault(30 * time.Second),
		// The public tier throttles aggressively; stay comfortably under it.
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// SetBaseURL points the client at a different endpoint (tests, mirrors).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// ScoreSentences sends sentences to the batch endpoint and returns each with
// its score. Sentences must end with a period; SplitSentences guarantees that.
func (c *Client) ScoreSentences(ctx context.Context, sentences []string) ([]ScoredSentence, error) {
	if len(sentences) == 0 {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	payload := map[string]string{"input_text": strings.Join(parts, " ")}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/score/text/sentences/", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("claimbuster request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		snippet := raw
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		return nil, fmt.Errorf("claimbuster API error: HTTP %d, body: %s", resp.StatusCode, snippet)
	}

	return parseScores(raw)
}

// parseScores tolerates the response shapes the API has been seen to return:
// a top-level list, {"results": [...]}, or a sentence-to-score map.
func parseScores(raw []byte) ([]ScoredSentence, error) {
	var list []scoreItem
	if err := json.Unmarshal(raw, &list); err == nil {
		return fromItems(list), nil
	}

	var wrapped struct {
		Results []scoreItem `json:"results"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Results) > 0 {
		return fromItems(wrapped.Results), nil
	}

	var asMap map[string]float64
	if err := json.Unmarshal(raw, &asMap); err == nil && len(asMap) > 0 {
		out := make([]ScoredSentence, 0, len(asMap))
		for sentence, score := range asMap {
			out = append(out, ScoredSentence{Sentence: sentence, Score: score})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Sentence < out[j].Sentence })
		return out, nil
	}

	snippet := raw
	if len(snippet) > 500 {
		snippet = snippet[:500]
	}
	return nil, fmt.Errorf("unexpected claimbuster response format: %s", snippet)
}

type scoreItem struct {
	Sentence        string   `json:"sentence"`
	Text            string   `json:"text"`
	Score           *float64 `json:"score"`
	Checkworthiness *float64 `json:"checkworthiness"`
	Value           *float64 `json:"value"`
}

func fromItems(items []scoreItem) []ScoredSentence {
	out := make([]ScoredSentence, 0, len(items))
	for _, it := range items {
		sentence := it.Sentence
		if sentence == "" {
			sentence = it.Text
		}
		score := it.Score
		if score == nil {
			score = it.Checkworthiness
		}
		if score == nil {
			score = it.Value
		}
		if sentence == "" || score == nil {
			continue
		}
		out = append(out, ScoredSentence{Sentence: sentence, Score: *score})
	}
	return out
}

// TopSentences runs the full check-worthiness pass: split text into
// sentences, score them, drop everything under MinScore and return the top
// K by score.
func (c *Client) TopSentences(ctx context.Context, text string, topK int) ([]ScoredSentence, error) {
	sentences := ingest.SplitSentences(text)
	scored, err := c.ScoreSentences(ctx, sentences)
	if err != nil {
		return nil, err
	}

	kept := scored[:0]
	for _, s := range scored {
		if s.Score >= MinScore {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })

	if topK < 0 {
		topK = 0
	}
	if len(kept) > topK {
		kept = kept[:topK]
	}
	return kept, nil
}
