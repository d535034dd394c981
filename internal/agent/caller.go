package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/ReshmiMehta14/YaarAI/internal/logger"
	"github.com/ReshmiMehta14/YaarAI/pkg"
)

// invoker is the slice of compose.Runnable the caller needs; tests substitute
// a stub so no network is touched.
type invoker interface {
	Invoke(ctx context.Context, input map[string]any, opts ...compose.Option) (*schema.Message, error)
}

// Caller is the shared call wrapper behind every pipeline agent: one compiled
// template+model chain, invoked synchronously, with the response parsed into
// a tagged Result. Remote failures never propagate past the wrapper and there
// are no retries; a failed call yields a degraded result immediately.
type Caller struct {
	name        string
	fallbackKey string
	timeout     time.Duration
	chain       invoker
}

// NewCaller compiles the Eino chain (ChatTemplate -> ChatModel) for one agent.
// systemPrompt and userTemplate are FString templates with named placeholders.
func NewCaller(ctx context.Context, name, fallbackKey string, cfg pkg.ModelConfig, timeout time.Duration, systemPrompt, userTemplate string) (*Caller, error) {
	temperature := float32(cfg.Temperature)
	modelConfig := &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &temperature,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxTokens = &maxTokens
	}

	model, err := openai.NewChatModel(ctx, modelConfig)
	if err != nil {
		return nil, fmt.Errorf("agent %s: error creating chat model: %w", name, err)
	}

	template := prompt.FromMessages(schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userTemplate),
	)

	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(template).
		AppendChatModel(model).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("agent %s: error compiling chain: %w", name, err)
	}

	return &Caller{
		name:        name,
		fallbackKey: fallbackKey,
		timeout:     timeout,
		chain:       chain,
	}, nil
}

// Invoke runs the chain once. input is the original user-facing text, echoed
// back inside error-shaped results; vars fill the template placeholders.
func (c *Caller) Invoke(ctx context.Context, input string, vars map[string]any) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.chain.Invoke(ctx, vars)
	if err != nil {
		logger.Warn().Str("agent", c.name).Err(err).Msg("remote call failed, degrading to error result")
		return Failure(err, input)
	}

	if fields, ok := tryParse(out.Content); ok {
		res := Structured(fields)
		res.Raw = out.Content
		return res
	}
	logger.Debug().Str("agent", c.name).Msg("response not valid JSON, wrapping under fallback key")
	return Fallback(c.fallbackKey, out.Content)
}
