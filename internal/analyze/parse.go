package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/essayflow/essayflow/internal/model"
)

// StripFences removes markdown code-fence markup the model sometimes wraps
// its JSON in, despite being told not to.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseResult turns the raw model response into an AnalysisResult.
// A parse failure is reported as ErrMalformedResponse; a partial result is
// never returned.
func ParseResult(raw string) (*model.AnalysisResult, error) {
	cleaned := StripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Feedback == nil {
		return nil, fmt.Errorf("%w: missing feedback array", ErrMalformedResponse)
	}
	return &result, nil
}
