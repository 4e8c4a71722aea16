package llm

import (
	"context"
	"strings"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com/v1"
	anthropicDefaultModel = "claude-3-5-haiku-latest"
	anthropicVersion      = "2023-06-01"
)

// AnthropicClient calls the messages endpoint.
type AnthropicClient struct {
	cfg Config
}

func NewAnthropicClient(cfg Config) *AnthropicClient {
	return &AnthropicClient{cfg: cfg.withDefaults(anthropicBaseURL, anthropicDefaultModel)}
}

func (c *AnthropicClient) Name() string  { return "anthropic" }
func (c *AnthropicClient) Model() string { return c.cfg.Model }

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Recommend sends prompt as a single user turn and joins the text blocks of
// the reply.
func (c *AnthropicClient) Recommend(ctx context.Context, prompt string) (string, error) {
	payload := messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		System:      systemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}

	var out messagesResponse
	headers := map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": anthropicVersion,
	}
	if err := postJSON(ctx, c.cfg.HTTPClient, c.Name(), c.cfg.BaseURL+"/messages", headers, payload, &out); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range out.Content {
		if block.Type != "" && block.Type != "text" {
			continue
		}
		sb.WriteString(block.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", emptyResponse(c.Name())
	}
	return text, nil
}
