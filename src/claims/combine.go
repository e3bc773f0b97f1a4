package claims

import (
	"strings"

	"github.com/factlens/factlens/src/factchecktools"
)

// External review agreement moves confidence by at most this much.
const maxExternalShift = 15

// CombinedClaim is a checked claim merged with external reviews.
type CombinedClaim struct {
	CheckedClaim
	Reviews []factchecktools.Review `json:"reviews,omitempty"`
	// CombinedConfidence folds external review agreement into the LLM score.
	CombinedConfidence int    `json:"combined_confidence"`
	CombinedBand       string `json:"combined_band"`
}

// Combine merges the LLM report with external reviews keyed by the extracted
// claim text each review set was searched for. Independent reviews that
// agree with the verdict push confidence up (capped); reviews that
// contradict it pull confidence down. The band is recomputed from the
// adjusted score.
func Combine(report *Report, reviewsByClaim map[string][]factchecktools.Review) []CombinedClaim {
	if report == nil {
		return nil
	}

	out := make([]CombinedClaim, 0, len(report.Claims))
	for _, cl := range report.Claims {
		combined := CombinedClaim{CheckedClaim: cl}
		combined.Reviews = matchReviews(cl.Sentence, reviewsByClaim)

		shift := externalShift(cl.Verdict, combined.Reviews)
		combined.CombinedConfidence = clampScore(cl.Confidence + shift)
		combined.CombinedBand = Band(combined.CombinedConfidence)
		out = append(out, combined)
	}
	return out
}

// externalShift scores review agreement with the LLM verdict. Each agreeing
// review adds 5, each contradicting one subtracts 5, bounded by
// maxExternalShift either way. A review "agrees" when its rating signal
// points the same way the verdict does.
func externalShift(verdict string, reviews []factchecktools.Review) int {
	dir := verdictSignal(verdict)
	if dir == 0 || len(reviews) == 0 {
		return 0
	}

	shift := 0
	for _, r := range reviews {
		sig := RatingSignal(r.Rating)
		if sig == 0 {
			continue
		}
		if sig == dir {
			shift += 5
		} else {
			shift -= 5
		}
	}
	if shift > maxExternalShift {
		shift = maxExternalShift
	}
	if shift < -maxExternalShift {
		shift = -maxExternalShift
	}
	return shift
}

// verdictSignal maps a verdict onto the truth direction of the claim:
// True claims are supported by "true"-leaning ratings, False and Misleading
// claims are supported by "false"-leaning ratings.
func verdictSignal(verdict string) int {
	switch verdict {
	case VerdictTrue:
		return 1
	case VerdictFalse, VerdictMisleading:
		return -1
	default:
		return 0
	}
}

// matchReviews finds the review set whose claim key overlaps the sentence.
// Claim extraction rephrases sentences, so exact keys rarely match; token
// overlap is enough to attribute a review set to the right claim.
func matchReviews(sentence string, reviewsByClaim map[string][]factchecktools.Review) []factchecktools.Review {
	if len(reviewsByClaim) == 0 {
		return nil
	}
	if direct, ok := reviewsByClaim[sentence]; ok {
		return direct
	}

	sentTokens := tokenSet(sentence)
	var (
		best        []factchecktools.Review
		bestKey     string
		bestOverlap int
	)
	for claim, reviews := range reviewsByClaim {
		overlap := 0
		for tok := range tokenSet(claim) {
			if sentTokens[tok] {
				overlap++
			}
		}
		// Require a real overlap, not one shared stopword-ish token.
		if overlap < 2 {
			continue
		}
		// Ties break on the claim key so the match never depends on map order.
		if overlap > bestOverlap || (overlap == bestOverlap && claim < bestKey) {
			bestOverlap = overlap
			bestKey = claim
			best = reviews
		}
	}
	return best
}

func tokenSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,;:!?\"'()")
		if len(tok) >= 4 {
			out[tok] = true
		}
	}
	return out
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
