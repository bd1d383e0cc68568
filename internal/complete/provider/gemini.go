package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codesmith/internal/logger"
)

const defaultGeminiModel = "gemini-2.0-flash"

// Gemini is the Google Gemini-backed completion provider.
type Gemini struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGemini creates a Gemini provider with lazy client init.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{apiKey: apiKey, model: model}
}

// Name implements Provider.
func (p *Gemini) Name() string { return "gemini" }

func (p *Gemini) init(ctx context.Context) error {
	if p.client != nil {
		return nil
	}
	if p.apiKey == "" {
		return fmt.Errorf("%w: gemini", ErrNotConfigured)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: p.apiKey})
	if err != nil {
		return fmt.Errorf("creating gemini client: %w", err)
	}
	p.client = client
	logger.Debug("gemini client initialized", "model", p.model)
	return nil
}

// Complete implements Provider.
func (p *Gemini) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := p.init(ctx); err != nil {
		return "", err
	}

	maxTokens := int32(maxCompletionTokens)
	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		[]*genai.Content{
			genai.NewContentFromText(prompt.UserMessage(), genai.RoleUser),
		},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
			MaxOutputTokens:   maxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text == "" || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
