package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/factlens/factlens/src/logging"
	"github.com/factlens/factlens/src/shared/httpx"
)

type claudeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   Options
}

func newClaudeClient(cfg FactoryConfig) *claudeClient {
	return &claudeClient{
		apiKey:     cfg.ClaudeKey,
		baseURL:    "https://api.anthropic.com/v1",
		httpClient: httpx.NewDefault(120 * time.Second),
		defaults: Options{
			Model:               valueOrDefault(cfg.Model, "claude-3-haiku-20240307"),
			Temperature:         orFloat(cfg.Temperature, 0.2),
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, 4000),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}
}

func (c *claudeClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	return c.withRetry(ctx, prompt, c.merge(opts))
}

// Respond ignores tools; the Messages API has no web_search equivalent here.
func (c *claudeClient) Respond(ctx context.Context, input string, tools []Tool, opts Options) (string, error) {
	return c.withRetry(ctx, input, c.merge(opts))
}

func (c *claudeClient) withRetry(ctx context.Context, prompt string, merged Options) (string, error) {
	text, err := c.message(ctx, prompt, merged)
	if err != nil && logging.IsRateLimit(err) {
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		return c.message(ctx, prompt, merged)
	}
	return text, err
}

func (c *claudeClient) message(ctx context.Context, prompt string, merged Options) (string, error) {
	reqBody := map[string]interface{}{
		"model": merged.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"system":      merged.SystemPrompt,
		"max_tokens":  merged.MaxCompletionTokens,
		"temperature": merged.Temperature,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/messages", bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("claude API error: %s", string(body))
	}
	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("no response from Claude")
	}
	return result.Content[0].Text, nil
}

func (c *claudeClient) merge(opts Options) Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = opts.MaxCompletionTokens
	}
	if opts.SystemPrompt != "" {
		out.SystemPrompt = opts.SystemPrompt
	}
	return out
}
