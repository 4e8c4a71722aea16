package llm

import (
	"context"
	"strings"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
	systemPrompt       = "You recommend experiences to members of a card rewards programme. Follow the requested output format exactly."
)

// OpenAIClient calls the chat completions endpoint.
type OpenAIClient struct {
	cfg Config
}

func NewOpenAIClient(cfg Config) *OpenAIClient {
	return &OpenAIClient{cfg: cfg.withDefaults(openAIBaseURL, openAIDefaultModel)}
}

func (c *OpenAIClient) Name() string  { return "openai" }
func (c *OpenAIClient) Model() string { return c.cfg.Model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Recommend sends prompt as the user message and returns the first choice.
func (c *OpenAIClient) Recommend(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	var out chatResponse
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	if err := postJSON(ctx, c.cfg.HTTPClient, c.Name(), c.cfg.BaseURL+"/chat/completions", headers, payload, &out); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 {
		return "", emptyResponse(c.Name())
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", emptyResponse(c.Name())
	}
	return text, nil
}
