package webserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factlens/factlens/src/claims"
	"github.com/factlens/factlens/src/factchecktools"
	"github.com/factlens/factlens/src/ingest"
	"github.com/factlens/factlens/src/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(50 * time.Millisecond)

	assert.True(t, rl.CanUse("1.2.3.4"))
	assert.False(t, rl.CanUse("1.2.3.4"))
	assert.True(t, rl.CanUse("5.6.7.8"), "limit is per client")
	assert.Greater(t, rl.TimeUntilNext("1.2.3.4"), time.Duration(0))
	assert.Zero(t, rl.TimeUntilNext("9.9.9.9"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.CanUse("1.2.3.4"))
}

func TestAuthTokenIssuesJWT(t *testing.T) {
	secret := []byte("test-secret")
	authH := NewAuth("0123456789abcdef", secret)

	r := gin.New()
	r.POST("/v1/auth/token", authH.Token)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/auth/token",
		bytes.NewBufferString(`{"api_key":"0123456789abcdef"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "token")

	// The issued token must pass the middleware it is meant for.
	start := strings.Index(body, ":\"") + 2
	end := strings.LastIndex(body, "\"")
	token := body[start:end]

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestAuthTokenRejectsWrongKey(t *testing.T) {
	authH := NewAuth("0123456789abcdef", []byte("test-secret"))

	r := gin.New()
	r.POST("/v1/auth/token", authH.Token)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/auth/token",
		bytes.NewBufferString(`{"api_key":"ffffffffffffffff"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthTokenRejectsShortKey(t *testing.T) {
	authH := NewAuth("0123456789abcdef", []byte("test-secret"))

	r := gin.New()
	r.POST("/v1/auth/token", authH.Token)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/auth/token", bytes.NewBufferString(`{"api_key":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJWTMiddleware(t *testing.T) {
	secret := []byte("test-secret")

	r := gin.New()
	r.GET("/secured", JWTMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// No header.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/secured", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secured", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong secret.
	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "api", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/secured", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token.
	good, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "api", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/secured", nil)
	req.Header.Set("Authorization", "Bearer "+good)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateInput(t *testing.T) {
	assert.Error(t, validateInput(""))
	assert.Error(t, validateInput(strings.Repeat("x", maxInputLength+1)))
	assert.Error(t, validateInput("bad \xff bytes"))
	assert.NoError(t, validateInput("The earth orbits the sun."))
}

func TestBuildRecord(t *testing.T) {
	res := &pipeline.Result{
		Input: "https://example.com/story",
		Kind:  ingest.KindArticleURL.String(),
		Text:  "Unemployment fell to 3.4 percent in July.",
		Stats: ingest.Stats{Characters: 41, Words: 7, Sentences: 1},
		Report: &claims.Report{
			OverallReliability: claims.OverallReliability{Score: 82, Band: "Likely", Summary: "Mostly solid."},
		},
		Combined: []claims.CombinedClaim{{
			CheckedClaim: claims.CheckedClaim{
				Rank:       1,
				Sentence:   "Unemployment fell to 3.4 percent in July.",
				Verdict:    claims.VerdictTrue,
				Confidence: 80,
				Sources:    []string{"https://bls.example/a", "https://news.example/b"},
			},
			CombinedConfidence: 85,
			CombinedBand:       "Very likely",
		}},
		Reviews: map[string][]factchecktools.Review{
			"Unemployment fell to 3.4 percent in July.": {
				{Claim: "Unemployment fell.", Publisher: "FactOrg", Rating: "True"},
			},
		},
		Warnings: []string{"claim scoring unavailable: quota exceeded"},
	}

	record := buildRecord(res)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "article", record.InputKind)
	assert.Equal(t, "https://example.com/story", record.Source)
	assert.Equal(t, 82, record.OverallScore)
	assert.Equal(t, "Likely", record.OverallBand)
	assert.Contains(t, record.Warnings, "quota exceeded")

	require.Len(t, record.Claims, 1)
	assert.Equal(t, record.ID, record.Claims[0].AnalysisID)
	assert.Equal(t, 85, record.Claims[0].CombinedConfidence)
	assert.Equal(t, "https://bls.example/a\nhttps://news.example/b", record.Claims[0].Sources)

	require.Len(t, record.Reviews, 1)
	assert.Equal(t, "FactOrg", record.Reviews[0].Publisher)
}

func TestBuildRecordRawTextHasNoSource(t *testing.T) {
	res := &pipeline.Result{
		Input: "Some pasted text about the economy.",
		Kind:  ingest.KindText.String(),
		Text:  "Some pasted text about the economy.",
	}
	record := buildRecord(res)
	assert.Empty(t, record.Source)
	assert.Equal(t, "text", record.InputKind)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))

	long := strings.Repeat("word ", 300)
	got := truncate(long, 100)
	assert.LessOrEqual(t, len(got), 104)
	assert.True(t, strings.HasSuffix(got, "..."))
}
