package pipeline

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/factlens/factlens/src/claimbuster"
	"github.com/factlens/factlens/src/claims"
	"github.com/factlens/factlens/src/factchecktools"
	"github.com/factlens/factlens/src/ingest"
)

// TextExtractor turns user input into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, input string) (string, ingest.Kind, error)
}

// SentenceRanker returns the most check-worthy sentences of a text.
type SentenceRanker interface {
	TopSentences(ctx context.Context, text string, topK int) ([]claimbuster.ScoredSentence, error)
}

// ClaimExtractor turns check-worthy sentences into atomic claims.
type ClaimExtractor interface {
	Extract(ctx context.Context, sentences []string) ([]string, error)
}

// FactChecker produces the LLM fact-check report for a text.
type FactChecker interface {
	Check(ctx context.Context, text string) (*claims.Report, error)
}

// ReviewSearcher finds published external reviews for a claim.
type ReviewSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]factchecktools.Review, error)
}

// Cache stores upstream API responses; a nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Pipeline runs the fixed analysis sequence. Ranker and Reviews are
// optional; their failures degrade to warnings. Checker is required.
type Pipeline struct {
	Extractor TextExtractor
	Ranker    SentenceRanker
	Claims    ClaimExtractor
	Checker   FactChecker
	Reviews   ReviewSearcher
	Cache     Cache

	// TopK check-worthy sentences to keep; defaults to 3.
	TopK int
	// MaxReviews per claim; defaults to 5.
	MaxReviews int
	// CacheTTL for upstream responses; defaults to 24h.
	CacheTTL time.Duration
}

// Result is everything one analysis produced.
type Result struct {
	Input        string                                  `json:"input"`
	Kind         string                                  `json:"kind"`
	Text         string                                  `json:"text"`
	Stats        ingest.Stats                            `json:"stats"`
	Report       *claims.Report                          `json:"report"`
	TopSentences []claimbuster.ScoredSentence            `json:"top_sentences,omitempty"`
	Claims       []string                                `json:"claims,omitempty"`
	Reviews      map[string][]factchecktools.Review      `json:"reviews,omitempty"`
	Combined     []claims.CombinedClaim                  `json:"combined"`
	Warnings     []string                                `json:"warnings,omitempty"`
}

// Run executes classify -> extract -> fact-check -> rank -> extract claims
// -> external reviews -> combine.
func (p *Pipeline) Run(ctx context.Context, input string) (*Result, error) {
	if p.Extractor == nil || p.Checker == nil {
		return nil, errors.New("pipeline not configured")
	}

	text, kind, err := p.Extractor.Extract(ctx, input)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Input: input,
		Kind:  kind.String(),
		Text:  text,
		Stats: ingest.Analyze(text),
	}

	report, err := p.Checker.Check(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("fact check failed: %w", err)
	}
	res.Report = report

	res.TopSentences = p.rankSentences(ctx, text, res)

	if p.Claims != nil && len(res.TopSentences) > 0 {
		sentences := make([]string, 0, len(res.TopSentences))
		for _, s := range res.TopSentences {
			sentences = append(sentences, s.Sentence)
		}
		claimList, err := p.Claims.Extract(ctx, sentences)
		if err != nil {
			res.warn("claim extraction failed: %v", err)
		} else {
			res.Claims = claimList
		}
	}

	res.Reviews = p.searchReviews(ctx, res.Claims, res)
	res.Combined = claims.Combine(report, res.Reviews)
	return res, nil
}

func (p *Pipeline) rankSentences(ctx context.Context, text string, res *Result) []claimbuster.ScoredSentence {
	if p.Ranker == nil {
		return nil
	}
	topK := p.TopK
	if topK == 0 {
		topK = 3
	}

	// Key includes topK so a config change doesn't serve a stale list.
	cacheKey := fmt.Sprintf("claimbuster:%d:%s", topK, contentKey(text))
	if cached, ok := p.cacheGet(ctx, cacheKey); ok {
		var scored []claimbuster.ScoredSentence
		if json.Unmarshal([]byte(cached), &scored) == nil {
			return scored
		}
	}

	scored, err := p.Ranker.TopSentences(ctx, text, topK)
	if err != nil {
		res.warn("claim scoring unavailable: %v", err)
		return nil
	}
	p.cacheSet(ctx, cacheKey, scored)
	return scored
}

// searchReviews looks up external reviews for each claim under a small
// semaphore so slow lookups don't serialize the whole analysis.
func (p *Pipeline) searchReviews(ctx context.Context, claimList []string, res *Result) map[string][]factchecktools.Review {
	if p.Reviews == nil || len(claimList) == 0 {
		return nil
	}
	maxResults := p.MaxReviews
	if maxResults == 0 {
		maxResults = 5
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string][]factchecktools.Review, len(claimList))
	)
	semaphore := make(chan struct{}, 3)

	for _, claim := range claimList {
		wg.Add(1)
		go func(claim string) {
			defer wg.Done()
			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				return
			}

			reviews, err := p.lookupReviews(ctx, claim, maxResults)
			if err != nil {
				log.Printf("review search failed for %q: %v", claim, err)
				mu.Lock()
				res.warn("external review lookup failed for one claim")
				mu.Unlock()
				return
			}
			if len(reviews) == 0 {
				return
			}
			mu.Lock()
			out[claim] = reviews
			mu.Unlock()
		}(claim)
	}
	wg.Wait()

	if len(out) == 0 {
		return nil
	}
	return out
}

func (p *Pipeline) lookupReviews(ctx context.Context, claim string, maxResults int) ([]factchecktools.Review, error) {
	cacheKey := "factcheck:" + contentKey(claim)
	if cached, ok := p.cacheGet(ctx, cacheKey); ok {
		var reviews []factchecktools.Review
		if json.Unmarshal([]byte(cached), &reviews) == nil {
			return reviews, nil
		}
	}

	reviews, err := p.Reviews.Search(ctx, claim, maxResults)
	if err != nil {
		return nil, err
	}
	p.cacheSet(ctx, cacheKey, reviews)
	return reviews, nil
}

func (p *Pipeline) cacheGet(ctx context.Context, key string) (string, bool) {
	if p.Cache == nil {
		return "", false
	}
	return p.Cache.Get(ctx, key)
}

func (p *Pipeline) cacheSet(ctx context.Context, key string, v interface{}) {
	if p.Cache == nil {
		return
	}
	ttl := p.CacheTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	if b, err := json.Marshal(v); err == nil {
		p.Cache.Set(ctx, key, string(b), ttl)
	}
}

func (r *Result) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func contentKey(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
