package claims

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/factlens/factlens/src/llm"
)

// Extractor turns check-worthy sentences into atomic, verifiable claims.
type Extractor struct {
	client llm.Client
	model  string
}

func NewExtractor(client llm.Client, model string) *Extractor {
	return &Extractor{client: client, model: model}
}

// Extract prompts the model with the top check-worthy sentences and parses
// the claim list it returns. Claims come back trimmed and deduplicated.
func (e *Extractor) Extract(ctx context.Context, sentences []string) ([]string, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	prompt := BuildClaimExtractionPrompt(sentences)
	response, err := e.client.Complete(ctx, prompt, llm.Options{
		Model:        e.model,
		SystemPrompt: "Extract verifiable claims. Output a valid JSON array of strings only.",
	})
	if err != nil {
		return nil, fmt.Errorf("claim extraction failed: %w", err)
	}

	var raw []string
	if err := decodeEmbedded(response, &raw); err != nil {
		log.Printf("Failed to parse claim extraction response: %v", err)
		return nil, err
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	return out, nil
}
