package gemini

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youchat/youchat-api/internal/config"
	"github.com/youchat/youchat-api/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewGeneratorValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewGenerator(ctx, nil, config.LLMConfig{
			GeminiAPIKey: "key",
			ModelName:    "gemini-2.0-flash",
		})
		assert.Error(t, err)
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewGenerator(ctx, testLogger(), config.LLMConfig{
			ModelName: "gemini-2.0-flash",
		})
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing model name", func(t *testing.T) {
		_, err := NewGenerator(ctx, testLogger(), config.LLMConfig{
			GeminiAPIKey: "key",
		})
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}

func TestBuildChatPrompt(t *testing.T) {
	t.Run("without transcript", func(t *testing.T) {
		assert.Equal(t, "what is this?", buildChatPrompt("what is this?", ""))
	})

	t.Run("with transcript context", func(t *testing.T) {
		got := buildChatPrompt("what is this?", "the transcript")
		assert.Equal(t, "the transcript\n\nwhat is this?", got)
	})
}

func TestSummaryPromptTemplate(t *testing.T) {
	tmpl, err := template.New("summary").Parse(summaryPromptTemplate)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct{ Transcript string }{Transcript: "the transcript text"})
	require.NoError(t, err)

	prompt := buf.String()
	assert.Contains(t, prompt, "Summarize")
	assert.Contains(t, prompt, "the transcript text")
}

func TestGenerateRejectsEmptyInput(t *testing.T) {
	// Construct the generator directly; the client is never touched when
	// input validation fails.
	g := &GeminiGenerator{logger: testLogger()}

	_, err := g.GenerateReply(context.Background(), "", "")
	assert.ErrorIs(t, err, generation.ErrEmptyPrompt)

	_, err = g.GenerateSummary(context.Background(), "")
	assert.ErrorIs(t, err, generation.ErrEmptyPrompt)
}
