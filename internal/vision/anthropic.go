package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-sonnet-4-5-20250929"

const anthropicMaxTokens = 4096

// Anthropic calls the Anthropic messages API.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates the provider. An empty baseURL uses api.anthropic.com.
func NewAnthropic(apiKey, model, baseURL string) *Anthropic {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(baseURL, "/")))
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{client: anthropic.NewClient(apiKey, opts...), model: model}
}

// Name implements Provider.
func (a *Anthropic) Name() string {
	return ProviderAnthropic
}

// Describe implements Provider.
func (a *Anthropic) Describe(ctx context.Context, img Image, prompt string) (string, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.Message{{
			Role: anthropic.RoleUser,
			Content: []anthropic.MessageContent{
				anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
					anthropic.MessagesContentSourceTypeBase64, img.MediaType, img.Base64())),
				anthropic.NewTextMessageContent(prompt),
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("create messages: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", fmt.Errorf("no text block in response")
}
