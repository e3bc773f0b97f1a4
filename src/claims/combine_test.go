package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factlens/factlens/src/factchecktools"
)

func TestCombineAgreementRaisesConfidence(t *testing.T) {
	report := &Report{Claims: []CheckedClaim{{
		Rank:       1,
		Sentence:   "Measles cases rose sharply across Europe in 2025.",
		Verdict:    VerdictTrue,
		Confidence: 80,
	}}}
	reviews := map[string][]factchecktools.Review{
		"Measles cases rose sharply across Europe in 2025.": {
			{Rating: "True"},
			{Rating: "Mostly accurate"},
		},
	}

	combined := Combine(report, reviews)
	require.Len(t, combined, 1)
	assert.Equal(t, 90, combined[0].CombinedConfidence)
	assert.Equal(t, "Very likely", combined[0].CombinedBand)
	assert.Len(t, combined[0].Reviews, 2)
}

func TestCombineContradictionLowersConfidence(t *testing.T) {
	report := &Report{Claims: []CheckedClaim{{
		Sentence:   "The vaccine was proven dangerous in clinical trials.",
		Verdict:    VerdictTrue,
		Confidence: 60,
	}}}
	reviews := map[string][]factchecktools.Review{
		"The vaccine was proven dangerous in clinical trials.": {
			{Rating: "False"},
			{Rating: "Debunked"},
		},
	}

	combined := Combine(report, reviews)
	require.Len(t, combined, 1)
	assert.Equal(t, 50, combined[0].CombinedConfidence)
}

func TestCombineShiftIsCapped(t *testing.T) {
	reviews := make([]factchecktools.Review, 10)
	for i := range reviews {
		reviews[i] = factchecktools.Review{Rating: "True"}
	}
	report := &Report{Claims: []CheckedClaim{{
		Sentence:   "Claim with overwhelming published agreement everywhere.",
		Verdict:    VerdictTrue,
		Confidence: 70,
	}}}

	combined := Combine(report, map[string][]factchecktools.Review{
		"Claim with overwhelming published agreement everywhere.": reviews,
	})
	require.Len(t, combined, 1)
	assert.Equal(t, 85, combined[0].CombinedConfidence)
}

func TestCombineFalseVerdictSupportedByFalseRatings(t *testing.T) {
	// A False verdict and "False" external ratings agree with each other.
	report := &Report{Claims: []CheckedClaim{{
		Sentence:   "Drinking bleach cures infections according to the post.",
		Verdict:    VerdictFalse,
		Confidence: 88,
	}}}
	combined := Combine(report, map[string][]factchecktools.Review{
		"Drinking bleach cures infections according to the post.": {
			{Rating: "Pants on Fire"},
		},
	})
	require.Len(t, combined, 1)
	assert.Equal(t, 93, combined[0].CombinedConfidence)
}

func TestCombineUnverifiedIgnoresReviews(t *testing.T) {
	report := &Report{Claims: []CheckedClaim{{
		Sentence:   "Something vague happened somewhere at some point recently.",
		Verdict:    VerdictUnverified,
		Confidence: 40,
	}}}
	combined := Combine(report, map[string][]factchecktools.Review{
		"Something vague happened somewhere at some point recently.": {
			{Rating: "True"},
		},
	})
	require.Len(t, combined, 1)
	assert.Equal(t, 40, combined[0].CombinedConfidence)
}

func TestCombineMatchesRephrasedClaims(t *testing.T) {
	// Claim extraction rephrases the sentence; token overlap still attributes
	// the review set to the right claim.
	report := &Report{Claims: []CheckedClaim{{
		Sentence:   "Unemployment fell to 3.4 percent in July according to the bureau.",
		Verdict:    VerdictTrue,
		Confidence: 75,
	}}}
	combined := Combine(report, map[string][]factchecktools.Review{
		"Unemployment fell to 3.4 percent in July.": {
			{Rating: "True"},
		},
	})
	require.Len(t, combined, 1)
	require.Len(t, combined[0].Reviews, 1)
	assert.Equal(t, 80, combined[0].CombinedConfidence)
}

func TestCombineOverlapTieIsDeterministic(t *testing.T) {
	report := &Report{Claims: []CheckedClaim{{
		Sentence:   "Solar capacity doubled in Spain during 2025.",
		Verdict:    VerdictTrue,
		Confidence: 70,
	}}}
	// Both keys overlap the sentence on the same three tokens; the
	// lexicographically smaller key must win every run.
	reviewsByClaim := map[string][]factchecktools.Review{
		"Solar capacity doubled quickly.":  {{Publisher: "First"}},
		"Solar capacity doubled recently.": {{Publisher: "Second"}},
	}

	for i := 0; i < 10; i++ {
		combined := Combine(report, reviewsByClaim)
		require.Len(t, combined, 1)
		require.Len(t, combined[0].Reviews, 1)
		assert.Equal(t, "First", combined[0].Reviews[0].Publisher)
	}
}

func TestCombineNoOverlapNoAttribution(t *testing.T) {
	report := &Report{Claims: []CheckedClaim{{
		Sentence:   "Coffee consumption doubled in Norway last year.",
		Verdict:    VerdictTrue,
		Confidence: 75,
	}}}
	combined := Combine(report, map[string][]factchecktools.Review{
		"Ocean temperatures reached record highs this summer.": {
			{Rating: "True"},
		},
	})
	require.Len(t, combined, 1)
	assert.Empty(t, combined[0].Reviews)
	assert.Equal(t, 75, combined[0].CombinedConfidence)
}

func TestCombineNilReport(t *testing.T) {
	assert.Nil(t, Combine(nil, nil))
}
