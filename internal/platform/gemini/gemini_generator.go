package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/youchat/youchat-api/internal/config"
	"github.com/youchat/youchat-api/internal/generation"
)

// summaryPromptTemplate is the prompt used for video summary generation.
const summaryPromptTemplate = `Summarize the following YouTube video transcript in a few short paragraphs. Focus on the main topics and conclusions.

Transcript:
{{.Transcript}}`

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// summaryTemplate is the parsed template for summary prompts
	summaryTemplate *template.Template

	// client is the Gemini API client, created once at startup
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Ensure GeminiGenerator implements generation.Generator
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGenerator creates a new GeminiGenerator with the provided dependencies.
// It validates the configuration and initializes the Gemini client.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	summaryTemplate, err := template.New("summary").Parse(summaryPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse summary template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:          logger,
		config:          cfg,
		summaryTemplate: summaryTemplate,
		client:          client,
		model:           cfg.ModelName,
	}, nil
}

// GenerateReply produces an assistant reply to a chat message, optionally
// grounded in a video transcript.
func (g *GeminiGenerator) GenerateReply(ctx context.Context, message, transcript string) (string, error) {
	if message == "" {
		return "", generation.ErrEmptyPrompt
	}

	prompt := buildChatPrompt(message, transcript)

	g.logger.DebugContext(ctx, "generating chat reply",
		"message_length", len(message),
		"transcript_length", len(transcript))

	return g.callGeminiWithRetry(ctx, prompt)
}

// GenerateSummary produces a summary of a video transcript.
func (g *GeminiGenerator) GenerateSummary(ctx context.Context, transcript string) (string, error) {
	if transcript == "" {
		return "", generation.ErrEmptyPrompt
	}

	var promptBuffer bytes.Buffer
	data := struct{ Transcript string }{Transcript: transcript}
	if err := g.summaryTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute summary template: %w", err)
	}

	g.logger.DebugContext(ctx, "generating transcript summary",
		"transcript_length", len(transcript))

	return g.callGeminiWithRetry(ctx, promptBuffer.String())
}

// buildChatPrompt combines the transcript context and the user message the
// way the chat endpoint always has: context first, blank line, then message.
func buildChatPrompt(message, transcript string) string {
	if transcript == "" {
		return message
	}
	return transcript + "\n\n" + message
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff
// retry logic. Transient errors are retried up to config.MaxRetries times with
// jittered exponential backoff. Permanent errors (safety blocks, malformed
// responses) are returned immediately.
func (g *GeminiGenerator) callGeminiWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1 // 1-based for logging
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1,
			"model", g.model)

		text, err := g.callGemini(ctx, prompt)
		if err == nil {
			g.logger.DebugContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		// Permanent errors are never retried.
		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.DebugContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callGemini performs a single generate-content request and extracts the
// response text, classifying the failure modes into the generation error
// taxonomy.
func (g *GeminiGenerator) callGemini(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		// API-level failures are treated as transient; the retry loop
		// decides whether to give up.
		return "", fmt.Errorf("gemini API call error: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}

	if text == "" {
		return "", fmt.Errorf("%w: no text in response parts", generation.ErrInvalidResponse)
	}

	return text, nil
}
