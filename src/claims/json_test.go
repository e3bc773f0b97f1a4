package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmbeddedCleanObject(t *testing.T) {
	var report Report
	err := decodeEmbedded(`{"claims":[],"overall_reliability":{"score":50,"band":"Doubtful","summary":"s"}}`, &report)
	require.NoError(t, err)
	assert.Equal(t, 50, report.OverallReliability.Score)
}

func TestDecodeEmbeddedObjectInProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n" +
		`{"claims":[{"rank":1,"sentence":"X","verdict":"True","confidence":90}],"overall_reliability":{"score":90,"band":"Very likely","summary":"ok"}}` +
		"\n```\nLet me know if you need more."
	var report Report
	err := decodeEmbedded(raw, &report)
	require.NoError(t, err)
	require.Len(t, report.Claims, 1)
	assert.Equal(t, "X", report.Claims[0].Sentence)
}

func TestDecodeEmbeddedArrayInProse(t *testing.T) {
	raw := "Sure! The claims are:\n[\"GDP grew 3% in 2025.\", \"Taxes fell.\"]\nDone."
	var out []string
	err := decodeEmbedded(raw, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"GDP grew 3% in 2025.", "Taxes fell."}, out)
}

func TestDecodeEmbeddedNoJSON(t *testing.T) {
	var out []string
	err := decodeEmbedded("I could not find any claims.", &out)
	assert.Error(t, err)
}

func TestDecodeEmbeddedMalformedJSON(t *testing.T) {
	var report Report
	err := decodeEmbedded(`prefix {"claims": [,]} suffix`, &report)
	assert.Error(t, err)
}
