package ingest

import (
	"regexp"
	"sort"
	"strings"
)

// Stats holds the lightweight text analysis shown alongside results.
type Stats struct {
	Characters int        `json:"characters"`
	Words      int        `json:"words"`
	Sentences  int        `json:"sentences"`
	TopTerms   []TermFreq `json:"top_terms"`
	Preview    string     `json:"preview"`
}

type TermFreq struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`[\pL\pN’'-]+`)
	sentenceRe   = regexp.MustCompile(`(?:[.!?])\s+`)
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "of": true,
	"to": true, "in": true, "for": true, "on": true, "at": true, "with": true,
	"by": true, "is": true, "are": true, "was": true, "were": true, "be": true,
	"it": true, "this": true, "that": true, "as": true, "from": true,
	"but": true, "if": true, "not": true, "we": true, "you": true, "i": true,
	"they": true, "he": true, "she": true, "them": true, "his": true,
	"her": true, "our": true, "their": true, "my": true, "your": true,
}

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Analyze computes char/word/sentence counts, top terms and a short preview.
func Analyze(text string) Stats {
	clean := NormalizeWhitespace(text)

	words := wordRe.FindAllString(strings.ToLower(clean), -1)

	sentences := splitKeepingPunct(clean)
	sentenceCount := 0
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" {
			sentenceCount++
		}
	}

	freq := make(map[string]int)
	for _, w := range words {
		if stopwords[w] || len(w) < 3 {
			continue
		}
		freq[w]++
	}
	terms := make([]TermFreq, 0, len(freq))
	for t, n := range freq {
		terms = append(terms, TermFreq{Term: t, Count: n})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > 10 {
		terms = terms[:10]
	}

	preview := ""
	if len(sentences) > 0 {
		n := len(sentences)
		if n > 3 {
			n = 3
		}
		preview = strings.TrimSpace(strings.Join(sentences[:n], " "))
	}

	return Stats{
		Characters: len(clean),
		Words:      len(words),
		Sentences:  sentenceCount,
		TopTerms:   terms,
		Preview:    preview,
	}
}

// splitKeepingPunct splits on sentence boundaries without losing the
// terminal punctuation, so previews read like the source text.
func splitKeepingPunct(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	last := 0
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation mark; keep it with the sentence.
		out = append(out, text[last:loc[0]+1])
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, text[last:])
	}
	return out
}

// SplitSentences splits text into sentences and forces each to end with a
// terminal period, which the ClaimBuster batch endpoint requires.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var raw []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			raw = append(raw, cur.String())
			cur.Reset()
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		raw = append(raw, cur.String())
	}

	normed := make([]string, 0, len(raw))
	for _, s := range raw {
		s = NormalizeWhitespace(s)
		if s == "" {
			continue
		}
		if strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
			s = s[:len(s)-1] + "."
		} else if !strings.HasSuffix(s, ".") {
			s += "."
		}
		normed = append(normed, s)
	}
	return normed
}
