// Package openai provides an NLU provider backed by the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/meetingmesh/core"
	"github.com/hupe1980/meetingmesh/nlu"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI provider. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind the generic
// nlu.Provider interface.
type Provider struct {
	client *openai.Client
	opts   Options
}

// NewProvider creates a new OpenAI provider using the official client.
func NewProvider(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewProviderFromClient(&client, optFns...)
}

// NewProviderFromClient creates a new OpenAI provider from an existing
// client.
func NewProviderFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.2,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Classify implements nlu.Provider. A completion that cannot be decoded as
// the expected JSON degrades to the keyword fallback instead of failing the
// turn.
func (p *Provider) Classify(ctx context.Context, req nlu.Request) (core.ExtractedIntent, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(nlu.BuildPrompt(req)),
		},
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	})
	if err != nil {
		return core.ExtractedIntent{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.ExtractedIntent{}, fmt.Errorf("no choices returned")
	}

	result, err := nlu.ParseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nlu.Fallback(req.Input), nil
	}
	return result, nil
}

// Info implements nlu.Provider.
func (p *Provider) Info() nlu.Info {
	return nlu.Info{Name: p.opts.Model, Provider: "openai"}
}

var _ nlu.Provider = (*Provider)(nil)
