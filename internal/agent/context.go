package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ReshmiMehta14/YaarAI/internal/memory"
	"github.com/ReshmiMehta14/YaarAI/pkg"
)

const contextUserTemplate = `User message: {user_input}

Current emotion: {emotion} (Intensity: {intensity})
Sarcasm detected: {sarcasm}

Recent emotion history: {emotion_history}

Recurring topics: {recurring_topics}

Conversation history:
{history}`

// ContextAnalyzer reads the emotion result and the profile snapshot to build
// a deeper understanding of the conversation, surfacing response guidance and
// cultural context for the generator.
type ContextAnalyzer struct {
	caller *Caller
	mem    *memory.ConversationMemory
}

// NewContextAnalyzer builds the context-analysis agent.
func NewContextAnalyzer(ctx context.Context, cfg pkg.ModelConfig, timeout time.Duration, systemPrompt string, mem *memory.ConversationMemory) (*ContextAnalyzer, error) {
	caller, err := NewCaller(ctx, "context_analysis", "context_summary", cfg, timeout, systemPrompt, contextUserTemplate)
	if err != nil {
		return nil, err
	}
	return &ContextAnalyzer{caller: caller, mem: mem}, nil
}

// Run analyzes the turn in the light of the detected emotion and the profile.
// The stored cultural context is overwritten only when the payload surfaces a
// non-empty detected-elements field; absence leaves the prior value alone.
func (a *ContextAnalyzer) Run(ctx context.Context, userInput string, emotion Result) Result {
	profile := a.mem.Profile()

	res := a.caller.Invoke(ctx, userInput, map[string]any{
		"user_input":       userInput,
		"emotion":          emotion.String("emotion", "Unknown"),
		"intensity":        emotion.String("intensity_score", "Unknown"),
		"sarcasm":          emotion.String("sarcasm_detected", "Unknown"),
		"emotion_history":  formatEmotionHistory(profile.RecentEmotions),
		"recurring_topics": formatTopics(profile.RecurringTopics),
		"history":          formatHistory(a.mem.FormattedRecent(historyWindow)),
	})

	a.storeCulturalContext(res)
	return res
}

func (a *ContextAnalyzer) storeCulturalContext(res Result) {
	cultural := res.Nested("cultural_context")
	v, ok := cultural.Fields["cultural_elements_detected"]
	if !ok {
		return
	}
	switch elems := v.(type) {
	case string:
		a.mem.SetCulturalContext(elems)
	case []any:
		if len(elems) > 0 {
			a.mem.SetCulturalContext(strings.Join(cultural.StringSlice("cultural_elements_detected"), ", "))
		}
	}
}

// formatEmotionHistory renders the recent-emotions window as
// "label (intensity: n)" entries joined by commas, or "None" when empty.
func formatEmotionHistory(readings []pkg.EmotionReading) string {
	if len(readings) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(readings))
	for _, r := range readings {
		parts = append(parts, fmt.Sprintf("%s (intensity: %s)", r.Emotion, strconv.FormatFloat(r.Intensity, 'f', -1, 64)))
	}
	return strings.Join(parts, ", ")
}

func formatTopics(topics []string) string {
	if len(topics) == 0 {
		return "None detected yet"
	}
	return strings.Join(topics, ", ")
}
