package claims

import (
	"context"
	"fmt"

	"github.com/factlens/factlens/src/llm"
)

// CheckedClaim is one fact-checked claim from the model's report.
type CheckedClaim struct {
	Rank           int      `json:"rank"`
	Sentence       string   `json:"sentence"`
	Verdict        string   `json:"verdict"`
	Confidence     int      `json:"confidence"`
	ConfidenceBand string   `json:"confidence_band"`
	Reasoning      string   `json:"reasoning"`
	Sources        []string `json:"sources"`
}

// OverallReliability is the model's whole-text assessment.
type OverallReliability struct {
	Score   int    `json:"score"`
	Band    string `json:"band"`
	Summary string `json:"summary"`
}

// Report is the full fact-check output for one text.
type Report struct {
	Claims             []CheckedClaim     `json:"claims"`
	OverallReliability OverallReliability `json:"overall_reliability"`
}

// Checker runs the LLM fact-check with web search enabled.
type Checker struct {
	client     llm.Client
	model      string
	topN       int
	minSources int
	webSearch  bool
}

func NewChecker(client llm.Client, model string, webSearch bool) *Checker {
	return &Checker{
		client:     client,
		model:      model,
		topN:       3,
		minSources: 2,
		webSearch:  webSearch,
	}
}

// Check fact-checks the text and returns the parsed report. Verdicts and
// bands are normalized so downstream code never sees free-form labels.
func (c *Checker) Check(ctx context.Context, text string) (*Report, error) {
	prompt := BuildFactCheckPrompt(text, c.topN, c.minSources)

	var tools []llm.Tool
	if c.webSearch {
		tools = append(tools, llm.Tool{Type: "web_search"})
	}
	response, err := c.client.Respond(ctx, prompt, tools, llm.Options{Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("fact check failed: %w", err)
	}

	var report Report
	if err := decodeEmbedded(response, &report); err != nil {
		return nil, err
	}

	for i := range report.Claims {
		cl := &report.Claims[i]
		cl.Verdict = NormalizeVerdict(cl.Verdict)
		if cl.Confidence < 0 {
			cl.Confidence = 0
		}
		if cl.Confidence > 100 {
			cl.Confidence = 100
		}
		if cl.ConfidenceBand == "" {
			cl.ConfidenceBand = Band(cl.Confidence)
		}
		if cl.Rank == 0 {
			cl.Rank = i + 1
		}
	}
	if report.OverallReliability.Band == "" {
		report.OverallReliability.Band = Band(report.OverallReliability.Score)
	}
	return &report, nil
}
