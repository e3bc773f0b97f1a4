package claims

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeEmbedded unmarshals v from raw model output, recovering when the
// JSON is wrapped in prose or code fences.
func decodeEmbedded(text string, v interface{}) error {
	text = strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	open, shut := "{", "}"
	switch v.(type) {
	case *[]string:
		open, shut = "[", "]"
	}
	start := strings.Index(text, open)
	end := strings.LastIndex(text, shut)
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON found in model output")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to parse model output: %w", err)
	}
	return nil
}
