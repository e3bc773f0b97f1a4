package claims

import (
	"fmt"
	"strings"
)

var prioritySources = []string{
	"PolitiFact",
	"FactCheck.org",
	"Snopes",
	"The Washington Post Fact Checker",
	"Reuters Fact Check",
	"Full Fact",
	"Quote Investigator",
	// Fallbacks:
	"official government sources",
	"peer-reviewed research",
	"major reputable news organizations",
}

const rubricBlock = `CONFIDENCE & RELIABILITY SCORING (0-100)
Use these bands for both per-claim Confidence and Overall Reliability:
  95-100: Established fact
  85-94 : Very likely
  70-84 : Likely
  55-69 : Uncertain / Mixed
  35-54 : Doubtful
  15-34 : Unlikely
  0-14  : False / Unsupported

Checklist for scoring (apply to each claim and the overall text):
  - Source Quality: primary/official > peer-reviewed > major media > other > social/blogs
  - Independence & Count: more independent, agreeing sources -> higher
  - Consensus: alignment among reputable fact-checkers/experts -> higher
  - Recency/Relevance: current enough for the domain -> higher
  - Specificity/Verifiability: concrete, measurable claims -> higher
  - Conflict: credible contradictory evidence -> lower`

const formulaBlock = `Deterministic scoring formula (compute 0-100 then round to nearest int):
  Weights: SQ 0.30, IC 0.20, CS 0.20, RR 0.15, SV 0.10, Conflict Penalty (CP) -0.15
  Sub-scores (each 0-100):
    - SQ (Source Quality): primary/official or peer-reviewed 90-100; major media 75-89; mixed/unknown 50-74; social/blogs 0-49
    - IC (Independence & Count): 3+ independent 95-100; 2 independent 85-94; 1 source 60-79; 0 verifiable 0-40
    - CS (Consensus): clear alignment 90-100; minor dissent 70-89; mixed 40-69; major dissent 0-39
    - RR (Recency/Relevance): <=12m for fast domains 90-100; <=24m 75-89; older-but-stable 60-79; stale for fast topics 0-59
    - SV (Specificity/Verifiability): precise 85-100; definition-dependent 60-84; vague 0-59
    - CP (subtract): none 0; minor conflict -5 to -8; substantial -9 to -12; strong primary-source conflict -13 to -15
  Formula:
    Score = 100 * (0.30*SQ + 0.20*IC + 0.20*CS + 0.15*RR + 0.10*SV) + CP
After computing, map to band labels using the bands above.`

// BuildFactCheckPrompt asks the model to extract and fact-check the top N
// claimworthy sentences, returning a single JSON object with per-claim
// verdicts and an overall reliability assessment.
func BuildFactCheckPrompt(text string, topN, minSources int) string {
	formatBlock := fmt.Sprintf(`Return a single JSON object with two top-level keys:
  "claims": [  # length <= %d; do NOT pad or fabricate
    {
      "rank": int,                        # 1 = highest-priority claim
      "sentence": str,
      "verdict": "True" | "False" | "Misleading" | "Unverified",
      "confidence": int,                  # 0-100 via rubric and formula
      "confidence_band": str,             # Established fact | Very likely | Likely | Uncertain / Mixed | Doubtful | Unlikely | False / Unsupported
      "reasoning": str,                   # 1-3 sentences explaining verdict & key evidence
      "sources": [str]                    # >= %d URLs or site+URL strings
    }, ...
  ],
  "overall_reliability": {
    "score": int,                         # 0-100 via same rubric/formula
    "band": str,                          # same band labels
    "summary": str                        # one paragraph noting uncertainty/conflicts
  }
}`, topN, minSources)

	return fmt.Sprintf(`You are a fact-checking system.

GOAL
From the provided text, identify and fact-check the TOP %d claimworthy sentences.
If fewer than %d claimworthy sentences exist, return only those found. DO NOT invent claims, sources, or padding.

SELECTION RULES (Top-N)
- A "claimworthy sentence" is a statement that can be checked against evidence.
- Prioritize sentences that are (a) specific & measurable, (b) consequential/impactful, and (c) likely to be verifiable with reliable sources.
- If multiple candidates qualify, rank higher those with clearer measurability and higher potential for public impact.

TASK
1) Extract up to %d claimworthy sentences (no padding).
Exclude opinions, vague generalities, rhetorical questions, and style-only remarks.

2) For each selected claim, provide:
- Rank (1 = highest priority)
- Sentence
- Verdict: True | False | Misleading | Unverified
- Confidence: 0-100 using the standardized rubric below
- Confidence Band: map the numeric score to a band using the band table below
- Reasoning: concise (1-3 sentences) explaining the verdict and key evidence
- Sources: at least %d recent, reliable sources with direct links.
  PRIORITIZE these fact-checking authorities and then others as needed:
  %s.

3) Evidence requirements:
- Use the most up-to-date information available.
- Prefer primary sources (official data, documents) and reputable secondary sources.
- If evidence is mixed or insufficient, choose "Unverified" or "Misleading" and explain why.
- Do not fabricate sources or links. If a link is unavailable, say so and adjust the verdict.

4) Confidence & Reliability standardization:
%s

%s

5) Overall assessment:
Provide a single Overall Reliability score (0-100), the corresponding band label, and a brief paragraph summarizing the overall reliability of the text (note uncertainty, conflicts, and data gaps).

OUTPUT FORMAT
%s

TEXT TO ANALYZE
"""%s"""`,
		topN, topN, topN, minSources,
		strings.Join(prioritySources, ", "),
		rubricBlock, formulaBlock, formatBlock,
		strings.TrimSpace(text))
}

// BuildClaimExtractionPrompt asks for one verifiable claim per check-worthy
// sentence, as a JSON array of strings.
func BuildClaimExtractionPrompt(sentences []string) string {
	return fmt.Sprintf(`You are helping with a news fact-checking pipeline.

TASK
Extract one verifiable claim from EACH line of the paragraph below.
Assume that every line contains a claim that must be extracted.

DEFINITION OF "CLAIM"
A concise, self-contained factual statement that can be independently verified (e.g., who/what/where/when/how many). Avoid vague themes, opinions, or advice.

SELECTION RULES
- Prefer specific, time-bound, numeric, or clearly attributable statements.
- Combine duplicates; remove near-duplicates.
- If fewer clear claims exist than lines, return only the ones that qualify (do not fabricate).

OUTPUT FORMAT (IMPORTANT)
- Return a single JSON array of strings.
- No numbering, no extra text, no code fences, no trailing comma.
- Each claim <= 25 words and stands alone without needing the paragraph for context.

EXAMPLE
Paragraph: "City X reports 12 new measles cases. Mayor Jane Doe declares emergency. Flights canceled at Airport Y."
Output: ["City X reports 12 new measles cases.", "Mayor Jane Doe declares an emergency in City X.", "Flights are canceled at Airport Y."]

NOW EXTRACT FROM THIS PARAGRAPH
"""%s"""`, strings.Join(sentences, "\n"))
}
