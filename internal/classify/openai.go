package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"finbot/internal/core"
	"finbot/internal/log"
)

// Classifier labels a chat message. The reference time is an explicit
// argument so implementations never read the clock implicitly.
type Classifier interface {
	Classify(ctx context.Context, text string, ref time.Time) (Result, error)
}

// OpenAIClassifier implements Classifier against the OpenAI chat completion
// API. The client handle is constructed here and injected into the
// dispatcher; there is no package-level instance.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	logger *log.Logger
}

// NewOpenAI builds a classifier. An empty baseURL uses the OpenAI default;
// an empty model falls back to GPT-4.
func NewOpenAI(apiKey, baseURL, model string, logger *log.Logger) *OpenAIClassifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
	}
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAIClassifier{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Classify sends the classification prompt and strictly interprets the reply.
// A transport failure maps to core.ErrRemoteUnavailable; a reply that does
// not match a recognized shape maps to core.ErrMalformedClassification.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string, ref time.Time) (Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(text, ref.Format("2006-01-02")),
		}},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRemoteUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", core.ErrMalformedClassification)
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	result, err := Interpret(raw)
	if err != nil {
		c.logger.Warn("classifier returned unusable output", "output", raw, "error", err)
		return nil, err
	}
	return result, nil
}
