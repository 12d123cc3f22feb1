package ai

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"tradecouncil/pkg/errors"
	"tradecouncil/pkg/logger"
)

// Ensure OpenAIClient implements ChatClient
var _ ChatClient = (*OpenAIClient)(nil)

// OpenAIClient implements ChatClient using the official OpenAI Go SDK.
type OpenAIClient struct {
	client  openai.Client
	timeout time.Duration
	log     *logger.Logger
}

// NewOpenAIClient creates a chat client backed by the OpenAI API.
func NewOpenAIClient(apiKey string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "openai API key is required")
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIClient{
		client:  client,
		timeout: timeout,
		log:     logger.Get().With("component", "openai_chat"),
	}, nil
}

// Chat sends the message history and returns the completion text.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, params Params) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(params.Model),
		Messages: convertMessages(messages),
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if params.MaxTokens > 0 {
		req.MaxCompletionTokens = openai.Int(int64(params.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", errors.Wrap(errors.ErrModelUnavailable, err.Error())
	}
	if len(resp.Choices) == 0 {
		return "", errors.Wrap(errors.ErrInternal, "no completion choices returned")
	}

	c.log.Debugf("Completion received: model=%s tokens=%d", resp.Model, resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}

// convertMessages maps conversation roles onto the chat completions API.
// Tool observations use the text protocol, not API-level function calling, so
// they travel as user messages.
func convertMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
