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

type openAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   Options
}

func newOpenAIClient(cfg FactoryConfig) *openAIClient {
	return &openAIClient{
		apiKey:     cfg.OpenAIKey,
		baseURL:    "https://api.openai.com/v1",
		httpClient: httpx.NewDefault(300 * time.Second),
		defaults: Options{
			Model:               valueOrDefault(cfg.Model, "gpt-5"),
			Temperature:         orFloat(cfg.Temperature, 1),
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, 50000),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}
}

func (c *openAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	merged := c.merge(opts)
	messages := []map[string]string{}
	if merged.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": merged.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	reqBody := map[string]interface{}{
		"model":                 merged.Model,
		"messages":              messages,
		"temperature":           merged.Temperature,
		"max_completion_tokens": merged.MaxCompletionTokens,
	}
	body, err := c.post(ctx, c.baseURL+"/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return result.Choices[0].Message.Content, nil
}

func (c *openAIClient) Respond(ctx context.Context, input string, tools []Tool, opts Options) (string, error) {
	merged := c.merge(opts)
	payload := map[string]interface{}{
		"model":             merged.Model,
		"input":             input,
		"temperature":       merged.Temperature,
		"max_output_tokens": merged.MaxCompletionTokens,
	}
	if len(tools) > 0 {
		var toolPayload []map[string]interface{}
		for _, t := range tools {
			toolPayload = append(toolPayload, map[string]interface{}{"type": t.Type})
		}
		payload["tools"] = toolPayload
		payload["tool_choice"] = "auto"
	}
	body, err := c.post(ctx, c.baseURL+"/responses", payload)
	if err != nil {
		return "", err
	}

	// Tolerate multiple response shapes by extracting the first text field.
	var result struct {
		Output []struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(body, &result); err == nil {
		for _, o := range result.Output {
			for _, part := range o.Content {
				if part.Text != "" {
					return part.Text, nil
				}
			}
		}
	}
	var alt struct {
		OutputText string `json:"output_text"`
	}
	if err := json.Unmarshal(body, &alt); err == nil && alt.OutputText != "" {
		return alt.OutputText, nil
	}
	return "", fmt.Errorf("failed to parse OpenAI response")
}

func (c *openAIClient) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	body, err := c.postOnce(ctx, url, payload)
	if err != nil && logging.IsRateLimit(err) {
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return c.postOnce(ctx, url, payload)
	}
	return body, err
}

func (c *openAIClient) postOnce(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return nil, fmt.Errorf("OpenAI API error: %s (type: %s)", errorResp.Error.Message, errorResp.Error.Type)
		}
		return nil, fmt.Errorf("OpenAI API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *openAIClient) merge(opts Options) Options {
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

func valueOrDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

func orInt(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}

func orFloat(v, d float64) float64 {
	if v != 0 {
		return v
	}
	return d
}
