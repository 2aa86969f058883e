// Package llm talks to an OpenAI-compatible chat completions endpoint. Every
// call is a single request: no retries, no streaming.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	ErrMissingAPIKey = errors.New("api key is not set")
	ErrEmptyReply    = errors.New("endpoint returned no reply")
)

//go:generate mockgen -destination=mock_llm/mock_llm.go -package=mock_llm github.com/akyairhashvil/studybuddy/internal/llm Completer

// Completer turns a message list into the assistant's reply.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is a Completer backed by the official OpenAI Go package.
type Client struct {
	client openai.Client
	model  string
}

// NewClient builds a client for opts. BaseURL is the API root; the
// "chat/completions" path is appended by the SDK.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}
	return &Client{
		client: openai.NewClient(reqOpts...),
		model:  opts.Model,
	}, nil
}

func (c *Client) Model() string { return c.model }

// Complete sends {model, messages} and returns choices[0].message.content.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toParams(messages),
	}
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat completion failed with status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
