package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"codesmith/internal/logger"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

// Anthropic is the Anthropic-backed completion provider.
type Anthropic struct {
	apiKey string
	model  string
	client *anthropic.Client
}

// NewAnthropic creates an Anthropic provider with lazy client init.
func NewAnthropic(apiKey, model string) *Anthropic {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &Anthropic{apiKey: apiKey, model: model}
}

// Name implements Provider.
func (p *Anthropic) Name() string { return "anthropic" }

func (p *Anthropic) init() error {
	if p.client != nil {
		return nil
	}
	if p.apiKey == "" {
		return fmt.Errorf("%w: anthropic", ErrNotConfigured)
	}
	client := anthropic.NewClient(option.WithAPIKey(p.apiKey))
	p.client = &client
	logger.Debug("anthropic client initialized", "model", p.model)
	return nil
}

// Complete implements Provider.
func (p *Anthropic) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := p.init(); err != nil {
		return "", err
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxCompletionTokens,
		System: []anthropic.TextBlockParam{
			{Text: SystemInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.UserMessage())),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(message.Content) == 0 {
		return "", ErrEmptyResponse
	}

	var content string
	for _, block := range message.Content {
		content += block.Text
	}
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
