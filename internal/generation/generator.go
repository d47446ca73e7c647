// Package generation defines the boundary between the application core and
// external LLM services, following the hexagonal architecture pattern.
package generation

import "context"

// Generator defines the interface for producing model-generated text.
// Implementations live under internal/platform (e.g. the Gemini adapter).
type Generator interface {
	// GenerateReply produces an assistant reply to a chat message.
	// When transcript is non-empty it is prepended to the message as
	// conversation context. Returns the reply text or an error from the
	// taxonomy in errors.go.
	GenerateReply(ctx context.Context, message, transcript string) (string, error)

	// GenerateSummary produces a concise summary of a video transcript.
	GenerateSummary(ctx context.Context, transcript string) (string, error)
}
