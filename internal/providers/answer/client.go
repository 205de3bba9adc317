// Package answer generates chat answers through the OpenAI completion API.
package answer

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

// requestTimeout bounds each completion call; a timeout surfaces as a provider
// error and the engine degrades to a fallback answer.
const requestTimeout = 60 * time.Second

// Client wraps the OpenAI chat completion endpoint with fixed generation
// settings. It satisfies the engine's AnswerProvider interface.
type Client struct {
	client   openai.Client
	settings Settings
	logger   *zap.Logger
}

// NewClient creates an answer client with the given generation settings.
func NewClient(apiKey string, settings Settings, logger *zap.Logger) *Client {
	return &Client{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		settings: settings,
		logger:   logger,
	}
}

// Answer asks the model the question with the full transcript as context. An
// empty string with a nil error means the provider answered with no content.
func (c *Client) Answer(ctx context.Context, transcript, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.settings.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.settings.SystemPrompt),
			openai.UserMessage(fmt.Sprintf("Video transcription: %s\n\nUser question: %s", transcript, question)),
		},
		MaxTokens:   openai.Int(c.settings.MaxTokens),
		Temperature: openai.Float(c.settings.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		c.logger.Warn("completion returned no choices")
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
