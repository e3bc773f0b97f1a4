package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRateLimit(t *testing.T) {
	assert.False(t, IsRateLimit(nil))
	assert.False(t, IsRateLimit(errors.New("connection refused")))
	assert.True(t, IsRateLimit(errors.New("OpenAI API error: rate_limit_exceeded")))
	assert.True(t, IsRateLimit(errors.New("claimbuster API error: HTTP 429, body: slow down")))
	assert.True(t, IsRateLimit(errors.New("429 Too Many Requests")))
}
