package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/factlens/factlens/src/claimbuster"
	"github.com/factlens/factlens/src/claims"
	"github.com/factlens/factlens/src/factchecktools"
	"github.com/factlens/factlens/src/ingest"
	"github.com/factlens/factlens/src/llm"
	"github.com/factlens/factlens/src/pipeline"
	"github.com/factlens/factlens/src/web/config"
)

func main() {
	var (
		input   = flag.String("input", "", "text, article URL or YouTube URL to analyze ('-' reads stdin)")
		asJSON  = flag.Bool("json", false, "print the raw result as JSON")
		topK    = flag.Int("top", 3, "check-worthy sentences to keep")
		timeout = flag.Duration("timeout", 5*time.Minute, "overall analysis deadline")
	)
	flag.Parse()

	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}
	if *input == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("read stdin: %v", err)
		}
		*input = string(raw)
	}
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	// No DB for one-shot runs; configuration comes from the environment.
	cfg := config.Load(nil)
	cfg.TopK = *topK

	client := llm.NewClient(llm.FactoryConfig{
		Provider:  cfg.LLMProvider,
		OpenAIKey: cfg.OpenAIKey,
		ClaudeKey: cfg.ClaudeKey,
	})

	pipe := &pipeline.Pipeline{
		Extractor: ingest.NewExtractor(30*time.Second, ingest.NewTranscriber(cfg.WhisperModel)),
		Claims:    claims.NewExtractor(client, cfg.ExtractModel),
		Checker:   claims.NewChecker(client, cfg.FactCheckModel, cfg.EnableWebSearch),
		TopK:      cfg.TopK,
	}
	if cfg.ClaimBusterKey != "" {
		pipe.Ranker = claimbuster.NewClient(cfg.ClaimBusterKey)
	}
	if cfg.GoogleAPIKey != "" {
		pipe.Reviews = factchecktools.NewClient(cfg.GoogleAPIKey)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := pipe.Run(ctx, *input)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}

	printResult(res)
}

func printResult(res *pipeline.Result) {
	fmt.Printf("Input type: %s\n", res.Kind)
	fmt.Printf("Text: %d chars, %d words, %d sentences\n\n",
		res.Stats.Characters, res.Stats.Words, res.Stats.Sentences)

	if res.Report != nil {
		o := res.Report.OverallReliability
		fmt.Printf("Overall reliability: %d/100 (%s)\n%s\n\n", o.Score, o.Band, o.Summary)
	}

	for _, cl := range res.Combined {
		fmt.Printf("[%d] %s\n", cl.Rank, cl.Sentence)
		fmt.Printf("    Verdict: %s, confidence %d/100 (%s)\n", cl.Verdict, cl.Confidence, cl.ConfidenceBand)
		if len(cl.Reviews) > 0 {
			fmt.Printf("    Combined with %d review(s): %d/100 (%s)\n",
				len(cl.Reviews), cl.CombinedConfidence, cl.CombinedBand)
			for _, r := range cl.Reviews {
				fmt.Printf("      - %s rated it %q: %s\n", r.Publisher, r.Rating, r.URL)
			}
		}
		fmt.Printf("    %s\n", cl.Reasoning)
		for _, src := range cl.Sources {
			fmt.Printf("    Source: %s\n", src)
		}
		fmt.Println()
	}

	if len(res.TopSentences) > 0 {
		fmt.Println("Most check-worthy sentences:")
		for i, s := range res.TopSentences {
			fmt.Printf("  %d. %.2f  %s\n", i+1, s.Score, s.Sentence)
		}
		fmt.Println()
	}

	for _, w := range res.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}
