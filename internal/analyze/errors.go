package analyze

import (
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Sentinel errors for the analysis boundary. Everything the provider can
// throw is folded into one of these before it reaches a surface.
var (
	// ErrMissingCredential means no usable API credential was available,
	// neither caller-supplied nor configured.
	ErrMissingCredential = errors.New("no API credential configured")

	// ErrUnsupportedModel means the provider rejected the requested model
	// identifier. The client retries the fallback model once before
	// reporting this as a transport failure.
	ErrUnsupportedModel = errors.New("model not available")

	// ErrMalformedResponse means the provider responded, but the payload
	// was not the JSON shape the prompt asked for.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEssayTooShort means the draft is below the minimum analyzable length.
	ErrEssayTooShort = errors.New("essay too short to analyze")
)

// classify maps a provider error onto the local taxonomy. Anything not
// recognized stays a wrapped transport failure.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 404 || strings.Contains(strings.ToLower(fmt.Sprint(apiErr.Message)), "not found") {
			return fmt.Errorf("%w: %v", ErrUnsupportedModel, err)
		}
		if apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403 {
			return fmt.Errorf("%w: %v", ErrMissingCredential, err)
		}
	}
	return fmt.Errorf("analysis request failed: %w", err)
}
