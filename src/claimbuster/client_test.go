package claimbuster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.SetBaseURL(srv.URL)
	return c
}

func TestScoreSentencesListResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/score/text/sentences/", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Write([]byte(`[{"text":"The sky is blue.","score":0.21},{"text":"Taxes rose 40% last year.","score":0.87}]`))
	})

	scored, err := c.ScoreSentences(context.Background(), []string{"The sky is blue.", "Taxes rose 40% last year."})
	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.Equal(t, "Taxes rose 40% last year.", scored[1].Sentence)
	assert.InDelta(t, 0.87, scored[1].Score, 1e-9)
}

func TestScoreSentencesWrappedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"sentence":"GDP grew 3% in 2025.","checkworthiness":0.93}]}`))
	})

	scored, err := c.ScoreSentences(context.Background(), []string{"GDP grew 3% in 2025."})
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, "GDP grew 3% in 2025.", scored[0].Sentence)
	assert.InDelta(t, 0.93, scored[0].Score, 1e-9)
}

func TestScoreSentencesMapResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Inflation hit 9%.":0.88,"Nice weather today.":0.05}`))
	})

	scored, err := c.ScoreSentences(context.Background(), []string{"Inflation hit 9%.", "Nice weather today."})
	require.NoError(t, err)
	require.Len(t, scored, 2)
	// Map responses come back sorted by sentence for determinism.
	assert.Equal(t, "Inflation hit 9%.", scored[0].Sentence)
}

func TestScoreSentencesHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := c.ScoreSentences(context.Background(), []string{"Anything."})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestScoreSentencesEmptyInput(t *testing.T) {
	c := NewClient("test-key")
	scored, err := c.ScoreSentences(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, scored)
}

func TestTopSentences(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"text":"Unemployment fell to 3.4% in July.","score":0.91},
			{"text":"The weather was pleasant.","score":0.12},
			{"text":"The senator voted against the bill twice.","score":0.77},
			{"text":"Crime dropped 20% since 2020.","score":0.85},
			{"text":"Dinner was delicious.","score":0.03}
		]`))
	})

	text := "Unemployment fell to 3.4% in July. The weather was pleasant. " +
		"The senator voted against the bill twice. Crime dropped 20% since 2020. Dinner was delicious."
	top, err := c.TopSentences(context.Background(), text, 2)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Unemployment fell to 3.4% in July.", top[0].Sentence)
	assert.Equal(t, "Crime dropped 20% since 2020.", top[1].Sentence)
}

func TestTopSentencesFiltersBelowThreshold(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"text":"Meh.","score":0.2},{"text":"Also meh.","score":0.49}]`))
	})

	top, err := c.TopSentences(context.Background(), "Meh. Also meh.", 3)
	require.NoError(t, err)
	assert.Empty(t, top)
}
