package claims

import "strings"

// Verdict labels match what the fact-check prompt instructs the model to use.
const (
	VerdictTrue       = "True"
	VerdictFalse      = "False"
	VerdictMisleading = "Misleading"
	VerdictUnverified = "Unverified"
)

// NormalizeVerdict maps free-form model output onto the four canonical labels.
func NormalizeVerdict(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "valid", "correct", "accurate":
		return VerdictTrue
	case "false", "rejected", "incorrect", "inaccurate":
		return VerdictFalse
	case "misleading", "mixed", "partially true", "partly true", "half true", "half-true":
		return VerdictMisleading
	default:
		return VerdictUnverified
	}
}

// Band buckets a 0-100 confidence score for display.
func Band(score int) string {
	switch {
	case score >= 95:
		return "Established fact"
	case score >= 85:
		return "Very likely"
	case score >= 70:
		return "Likely"
	case score >= 55:
		return "Uncertain / Mixed"
	case score >= 35:
		return "Doubtful"
	case score >= 15:
		return "Unlikely"
	default:
		return "False / Unsupported"
	}
}

// RatingSignal interprets an external reviewer's textual rating against a
// verdict-bearing claim: +1 supports, -1 contradicts, 0 unclear. The signal
// is about the claim being TRUE, regardless of which verdict the LLM gave.
func RatingSignal(textualRating string) int {
	r := strings.ToLower(textualRating)
	switch {
	case r == "":
		return 0
	case strings.Contains(r, "half true"),
		strings.Contains(r, "half-true"),
		strings.Contains(r, "mixture"),
		strings.Contains(r, "mixed"),
		strings.Contains(r, "two pinocchios"):
		return 0
	case strings.Contains(r, "pants on fire"),
		strings.Contains(r, "three pinocchios"),
		strings.Contains(r, "four pinocchios"),
		strings.Contains(r, "false"),
		strings.Contains(r, "incorrect"),
		strings.Contains(r, "fake"),
		strings.Contains(r, "hoax"),
		strings.Contains(r, "debunk"),
		strings.Contains(r, "misleading"),
		strings.Contains(r, "unsupported"),
		strings.Contains(r, "no evidence"):
		return -1
	case strings.Contains(r, "true"),
		strings.Contains(r, "correct"),
		strings.Contains(r, "accurate"),
		strings.Contains(r, "confirmed"),
		strings.Contains(r, "legit"):
		return 1
	default:
		return 0
	}
}
