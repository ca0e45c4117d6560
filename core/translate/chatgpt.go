package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	defaultChatModel   = "gpt-3.5-turbo"
	chatRequestTimeout = 120 * time.Second
)

// chatModelFactory builds the chat model behind the chatgpt service.
type chatModelFactory func(ctx context.Context, cfg Config) (model.BaseChatModel, error)

// WithChatModel replaces the OpenAI chat model constructor.
func WithChatModel(f func(ctx context.Context, cfg Config) (model.BaseChatModel, error)) Option {
	return func(o *options) { o.chatModel = f }
}

func newOpenAIChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("chatgpt requires an api key")
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultChatModel
	}
	m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.Endpoint,
		Model:   modelName,
		Timeout: chatRequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat model: %w", err)
	}
	return m, nil
}

type chatGPT struct {
	model  model.BaseChatModel
	source string
}

func newChatGPT(ctx context.Context, cfg Config, factory chatModelFactory) (Backend, error) {
	if factory == nil {
		factory = newOpenAIChatModel
	}
	m, err := factory(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &chatGPT{model: m, source: cfg.SourceLanguage}, nil
}

func (c *chatGPT) Name() string { return string(ServiceChatGPT) }

func (c *chatGPT) Translate(ctx context.Context, text, targetLang string) (string, error) {
	from := "the source language"
	if c.source != "" && c.source != DefaultSourceLanguage {
		from = c.source
	}
	prompt := fmt.Sprintf(
		"You translate web novels from %s into %s. Reply with the translation only. "+
			"Keep paragraph breaks and the literal token PARAGRAPH_BREAK exactly where they appear.",
		from, targetLang)

	out, err := c.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(prompt),
		schema.UserMessage(text),
	})
	if err != nil {
		return "", fmt.Errorf("chatgpt: %w", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", errors.New("chatgpt: empty completion")
	}
	return strings.TrimSpace(out.Content), nil
}
