package agent

import (
	"context"
	"time"

	"github.com/ReshmiMehta14/YaarAI/internal/memory"
	"github.com/ReshmiMehta14/YaarAI/pkg"
)

const normalizerUserTemplate = `User message: {user_input}`

// Normalizer cleans and structures the raw user text. It sees only the
// instruction plus the raw input, no conversation history.
type Normalizer struct {
	caller *Caller
	mem    *memory.ConversationMemory
}

// NewNormalizer builds the input-normalizer agent.
func NewNormalizer(ctx context.Context, cfg pkg.ModelConfig, timeout time.Duration, systemPrompt string, mem *memory.ConversationMemory) (*Normalizer, error) {
	caller, err := NewCaller(ctx, "input_normalizer", "processed_text", cfg, timeout, systemPrompt, normalizerUserTemplate)
	if err != nil {
		return nil, err
	}
	return &Normalizer{caller: caller, mem: mem}, nil
}

// Run processes one user message. The result is always stamped with a
// processing timestamp and the original raw input, whatever the outcome, and
// a detected main topic is recorded on the user profile.
func (a *Normalizer) Run(ctx context.Context, userInput string) Result {
	res := a.caller.Invoke(ctx, userInput, map[string]any{
		"user_input": userInput,
	})

	res.Set("timestamp", time.Now().Format(time.RFC3339))
	res.Set("raw_input", userInput)

	if topic := res.String("main_topic", ""); topic != "" {
		a.mem.RecordTopic(topic)
	}
	return res
}
