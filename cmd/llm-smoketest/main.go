package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/factlens/factlens/src/llm"
)

var (
	providersFlag = flag.String("providers", "openai", "Comma-separated provider list (openai, claude) or 'all'")
	modeFlag      = flag.String("mode", "respond", "complete|respond|both")
	systemFlag    = flag.String("system", defaultSystemPrompt, "Override system prompt")
	modelFlag     = flag.String("model", "", "Override model name")
	promptFlag    = flag.String("prompt", defaultPrompt, "User prompt")
	timeoutFlag   = flag.Duration("timeout", 45*time.Second, "Per-provider timeout")
	tempFlag      = flag.Float64("temp", 0.2, "Completion temperature")
	webFlag       = flag.Bool("web", false, "Request web_search tool support on respond")
	maxLenFlag    = flag.Int("max-bytes", 1200, "Maximum bytes of output to print per response (0=unlimited)")
)

var allProviders = []string{"openai", "claude"}

const defaultPrompt = "Fact-check this statement and answer in two sentences: " +
	"\"The Great Wall of China is visible from the Moon with the naked eye.\""

const defaultSystemPrompt = "You are a concise fact-checking assistant used for operator smoke tests."

func main() {
	log.SetFlags(0)
	flag.Parse()

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}

	mode, err := parseMode(*modeFlag)
	if err != nil {
		log.Fatalf("invalid mode: %v", err)
	}

	for _, provider := range providers {
		if err := runProvider(provider, mode); err != nil {
			log.Printf("[%s] ERROR: %v", provider, err)
		}
	}
}

func runProvider(provider string, mode runMode) error {
	client := llm.NewClient(llm.FactoryConfig{
		Provider:     provider,
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		ClaudeKey:    os.Getenv("CLAUDE_API_KEY"),
		SystemPrompt: *systemFlag,
		Model:        *modelFlag,
		Temperature:  *tempFlag,
	})

	fmt.Printf("=== %s ===\n", provider)
	if mode == modeComplete || mode == modeBoth {
		if err := runOnce(client, "complete", false); err != nil {
			fmt.Printf("complete FAILED: %v\n", err)
		}
	}
	if mode == modeRespond || mode == modeBoth {
		if err := runOnce(client, "respond", *webFlag); err != nil {
			fmt.Printf("respond FAILED: %v\n", err)
		}
	}
	return nil
}

func runOnce(client llm.Client, op string, web bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	opts := llm.Options{Model: *modelFlag, Temperature: *tempFlag}

	start := time.Now()
	var (
		reply string
		err   error
	)
	if op == "complete" {
		reply, err = client.Complete(ctx, *promptFlag, opts)
	} else {
		var tools []llm.Tool
		if web {
			tools = append(tools, llm.Tool{Type: "web_search"})
		}
		reply, err = client.Respond(ctx, *promptFlag, tools, opts)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s OK (%.1fs)\n%s\n", op, time.Since(start).Seconds(), truncate(reply, *maxLenFlag))
	return nil
}

func resolveProviders(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.EqualFold(raw, "all") {
		return append([]string{}, allProviders...)
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	var out []string
	seen := map[string]struct{}{}
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func parseMode(input string) (runMode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "complete":
		return modeComplete, nil
	case "respond":
		return modeRespond, nil
	case "both":
		return modeBoth, nil
	default:
		return modeRespond, errors.New("expected complete, respond, or both")
	}
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:limit]) + "...(truncated)"
}

type runMode int

const (
	modeComplete runMode = iota
	modeRespond
	modeBoth
)
