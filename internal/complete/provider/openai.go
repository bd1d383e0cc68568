package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"codesmith/internal/logger"
)

const defaultOpenAIModel = "gpt-4o-mini"

// maxCompletionTokens bounds the response; suggestions are short
// identifier continuations, not prose.
const maxCompletionTokens = 64

// OpenAI is the OpenAI-backed completion provider.
type OpenAI struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAI creates an OpenAI provider. The SDK client is created lazily
// on the first request.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{apiKey: apiKey, model: model}
}

// Name implements Provider.
func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) init() error {
	if p.client != nil {
		return nil
	}
	if p.apiKey == "" {
		return fmt.Errorf("%w: openai", ErrNotConfigured)
	}
	client := openai.NewClient(option.WithAPIKey(p.apiKey))
	p.client = &client
	logger.Debug("openai client initialized", "model", p.model)
	return nil
}

// Complete implements Provider.
func (p *OpenAI) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := p.init(); err != nil {
		return "", err
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemInstruction),
			openai.UserMessage(prompt.UserMessage()),
		},
		MaxTokens: openai.Int(maxCompletionTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
