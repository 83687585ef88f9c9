// Package openai answers unclaimed commands with a chat completion.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/nadzzz/nova/internal/config"
)

const systemPromptFmt = "You are %s, a concise, friendly voice assistant. Keep answers short and practical for TTS."

// Answerer asks a chat model for a short spoken answer.
type Answerer struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// New builds an Answerer from config. name becomes the assistant persona in
// the system prompt.
func New(cfg config.AnswerConfig, name string) *Answerer {
	return &Answerer{
		client:       openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:        cfg.Model,
		systemPrompt: fmt.Sprintf(systemPromptFmt, name),
	}
}

// Answer returns the model's reply. Token and temperature bounds keep the
// reply speakable.
func (a *Answerer) Answer(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(a.systemPrompt),
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(a.model),
		Temperature: openai.Float(0.5),
		MaxTokens:   openai.Int(300),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
