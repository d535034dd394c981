package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ReshmiMehta14/YaarAI/internal/memory"
	"github.com/ReshmiMehta14/YaarAI/pkg"
)

// historyWindow is how many recent messages agents receive as context.
const historyWindow = 5

const emotionUserTemplate = `User message: {user_input}

Conversation history: {history}`

// EmotionDetector classifies the user's emotional state from the message and
// the recent conversation history.
type EmotionDetector struct {
	caller *Caller
	mem    *memory.ConversationMemory
}

// NewEmotionDetector builds the emotion-detection agent.
func NewEmotionDetector(ctx context.Context, cfg pkg.ModelConfig, timeout time.Duration, systemPrompt string, mem *memory.ConversationMemory) (*EmotionDetector, error) {
	caller, err := NewCaller(ctx, "emotion_detection", "detected_emotion", cfg, timeout, systemPrompt, emotionUserTemplate)
	if err != nil {
		return nil, err
	}
	return &EmotionDetector{caller: caller, mem: mem}, nil
}

// Run detects the emotion in one user message. Whatever shape the payload
// takes, the profile's recent-emotions window is updated; recording is a
// no-op when no emotion label is present.
func (a *EmotionDetector) Run(ctx context.Context, userInput string) Result {
	res := a.caller.Invoke(ctx, userInput, map[string]any{
		"user_input": userInput,
		"history":    formatHistory(a.mem.FormattedRecent(historyWindow)),
	})

	a.mem.RecordEmotion(res.String("emotion", ""), res.Float("intensity_score", 0))
	return res
}

// formatHistory joins formatted messages into one context block, or the
// literal "None" when the history is empty.
func formatHistory(msgs []pkg.ConversationMessage) string {
	if len(msgs) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}
