package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/season"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	// Timeout bounds a single HTTP round trip. Zero leaves the transport default.
	Timeout time.Duration
}

// Client issues single chat-completion calls against an OpenAI-compatible
// API. It never retries; callers decide what a failure means.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &Error{Kind: KindAuth, Err: errors.New("API key not configured")}
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		api:         openai.NewClientWithConfig(config),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		topP:        float32(cfg.TopP),
		logger:      logger,
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Complete asks the model userMessage with the domain system prompt built
// from cc and info, and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, userMessage string, cc models.ConversationContext, info season.Info) (string, error) {
	req := c.newRequest(SystemPrompt(cc, info), userMessage)

	content, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	return content, nil
}

// CompleteJSON is Complete with a schema-constrained response format. The
// returned document has been validated against schema.
func (c *Client) CompleteJSON(ctx context.Context, userMessage string, cc models.ConversationContext, info season.Info, schema *Schema) (json.RawMessage, error) {
	req := c.newRequest(SystemPrompt(cc, info), userMessage)

	schemaBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        schema.Name,
			Description: schema.Description,
			Schema:      json.RawMessage(schemaBytes),
			Strict:      true,
		},
	}

	content, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	raw := json.RawMessage(content)
	if err := validateJSON(schema, raw); err != nil {
		return nil, &Error{Kind: KindUpstream, Err: err}
	}
	return raw, nil
}

// Ping sends a throwaway question to check the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	cc := models.ConversationContext{UserExperienceLevel: models.Beginner}
	_, err := c.Complete(ctx, "test", cc, season.For(time.Now()))
	return err
}

func (c *Client) newRequest(system, userMessage string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt(userMessage),
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}
}

func (c *Client) send(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		mapped := mapError(err)
		c.logger.Error("Completion request failed",
			zap.Error(err),
			zap.String("kind", KindOf(mapped).String()),
			zap.Duration("latency", time.Since(start)))
		return "", mapped
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindUpstream, Err: fmt.Errorf("%w: no choices", ErrInvalidResponse)}
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &Error{Kind: KindUpstream, Err: fmt.Errorf("%w: empty content", ErrInvalidResponse)}
	}

	c.logger.Debug("Completion received",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("latency", time.Since(start)))

	return content, nil
}
