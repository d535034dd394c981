package agent

import (
	"context"
	"time"

	"github.com/ReshmiMehta14/YaarAI/pkg"
)

const feedbackUserTemplate = `Previous system response: "{previous_reply}"

User's latest message (potential feedback): "{user_input}"`

// FeedbackAnalyzer reads the user's latest message as implicit feedback on
// the previous reply. Its output is diagnostic only; it never alters
// the turn's reply or the memory store.
type FeedbackAnalyzer struct {
	caller *Caller
}

// NewFeedbackAnalyzer builds the feedback-loop agent.
func NewFeedbackAnalyzer(ctx context.Context, cfg pkg.ModelConfig, timeout time.Duration, systemPrompt string) (*FeedbackAnalyzer, error) {
	caller, err := NewCaller(ctx, "feedback_processing", "feedback", cfg, timeout, systemPrompt, feedbackUserTemplate)
	if err != nil {
		return nil, err
	}
	return &FeedbackAnalyzer{caller: caller}, nil
}

// Run analyzes feedback on the previous reply. The orchestrator only calls
// this once a previous reply exists.
func (a *FeedbackAnalyzer) Run(ctx context.Context, userInput, previousReply string) Result {
	return a.caller.Invoke(ctx, userInput, map[string]any{
		"user_input":     userInput,
		"previous_reply": previousReply,
	})
}
