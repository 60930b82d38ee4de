package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"RepoScout/internal/config"
	"RepoScout/internal/ports"
)

const defaultModel = "claude-3-5-haiku-20241022"

// Client implements ports.ChatCompleter backed by the Anthropic messages API.
type Client struct {
	client *anthropic.Client
	model  string
}

var _ ports.ChatCompleter = (*Client)(nil)

// NewClient builds a completer from configuration. A missing API key is not an
// error here: every call will fail and the ranker degrades batch by batch.
func NewClient(cfg config.RankingConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Client{
		client: &client,
		model:  model,
	}
}

// Complete sends one system/user exchange and returns the joined text blocks.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: anthropic.Float(0.2),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
