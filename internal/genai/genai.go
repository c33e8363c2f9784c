// Package genai obtains raw generated text from an external
// foundation-model inference endpoint. The endpoint is treated as an
// untrusted oracle: this package never interprets or cleans the
// returned text, extraction and safety belong to the validator.
package genai

import "context"

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
