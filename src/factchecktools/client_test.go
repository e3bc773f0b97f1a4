package factchecktools

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

func TestSearchFlattensClaimReviews(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1alpha1/claims:search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "vaccines cause autism", q.Get("query"))
		assert.Equal(t, "en", q.Get("languageCode"))
		assert.Equal(t, "5", q.Get("pageSize"))
		assert.Equal(t, "test-key", q.Get("key"))

		w.Write([]byte(`{"claims":[{
			"text":"Vaccines cause autism.",
			"claimDate":"2019-03-01T00:00:00Z",
			"claimReview":[
				{"publisher":{"name":"FactOrg"},"title":"No link found","url":"https://factorg.example/a","textualRating":"False"},
				{"publisher":{"name":"CheckIt"},"title":"Debunked again","url":"https://checkit.example/b","textualRating":"Pants on Fire"}
			]
		}]}`))
	})

	reviews, err := c.Search(context.Background(), "vaccines cause autism", 5)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "Vaccines cause autism.", reviews[0].Claim)
	assert.Equal(t, "FactOrg", reviews[0].Publisher)
	assert.Equal(t, "False", reviews[0].Rating)
	assert.Equal(t, "CheckIt", reviews[1].Publisher)
	assert.Equal(t, "https://checkit.example/b", reviews[1].URL)
}

func TestSearchFillsMissingFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"claims":[{"claimReview":[{"title":"Untitled","url":"https://x.example","textualRating":"True"}]}]}`))
	})

	reviews, err := c.Search(context.Background(), "anything", 0)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "No claim text", reviews[0].Claim)
	assert.Equal(t, "Unknown date", reviews[0].Date)
	assert.Equal(t, "Unknown publisher", reviews[0].Publisher)
}

func TestSearchNoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	reviews, err := c.Search(context.Background(), "obscure claim", 5)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestSearchHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	})

	_, err := c.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}
