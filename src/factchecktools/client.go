package factchecktools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/factlens/factlens/src/shared/httpx"
)

const DefaultBaseURL = "https://factchecktools.googleapis.com"

// Review is one published fact-check review for a claim.
type Review struct {
	Claim     string `json:"claim"`
	Date      string `json:"date"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Rating    string `json:"rating"`
}

// Client queries the Google Fact Check Tools claim search API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		language:   "en",
		httpClient: httpx.NewDefault(20 * time.Second),
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// Search looks up published fact checks for a claim and flattens every
// claimReview into one Review row.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Review, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("languageCode", c.language)
	params.Set("pageSize", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET",
		c.baseURL+"/v1alpha1/claims:search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fact check search failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact check API error: HTTP %d: %s", resp.StatusCode, body)
	}

	var data struct {
		Claims []struct {
			Text        string `json:"text"`
			ClaimDate   string `json:"claimDate"`
			ClaimReview []struct {
				Publisher struct {
					Name string `json:"name"`
				} `json:"publisher"`
				Title         string `json:"title"`
				URL           string `json:"url"`
				TextualRating string `json:"textualRating"`
			} `json:"claimReview"`
		} `json:"claims"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse fact check response: %w", err)
	}

	var results []Review
	for _, claim := range data.Claims {
		text := claim.Text
		if text == "" {
			text = "No claim text"
		}
		date := claim.ClaimDate
		if date == "" {
			date = "Unknown date"
		}
		for _, review := range claim.ClaimReview {
			r := Review{
				Claim:     text,
				Date:      date,
				Publisher: review.Publisher.Name,
				Title:     review.Title,
				URL:       review.URL,
				Rating:    review.TextualRating,
			}
			if r.Publisher == "" {
				r.Publisher = "Unknown publisher"
			}
			results = append(results, r)
		}
	}
	return results, nil
}
