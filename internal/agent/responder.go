package agent

import (
	"context"
	"strings"
	"time"

	"github.com/ReshmiMehta14/YaarAI/internal/memory"
	"github.com/ReshmiMehta14/YaarAI/pkg"
)

// FallbackReply is the fixed reply returned when response generation fails
// outright. The generator is the last line of defense for the turn: it must
// always hand the user a non-empty, still-empathetic line.
const FallbackReply = "I'm here to listen. Would you like to tell me more about how you're feeling?"

const responderUserTemplate = `Respond as a supportive friend to this message:

User message: "{user_input}"

IMPORTANT CONTEXT (use this to inform your response but don't reference it directly):
- User's detected emotion: {emotion} (Intensity: {intensity})
- Sarcasm detected: {sarcasm}
- Suggested focus areas: {focus_areas}
- Suggested approach: {approach}
- Topics to avoid: {avoid_topics}
- Cultural context to consider: {cultural_context}
- Communication preferences: {communication_preferences}

Remember to respond as a supportive friend would, not as a therapist or AI assistant.`

// ResponseGenerator turns the accumulated signals into the final reply text.
type ResponseGenerator struct {
	caller *Caller
	mem    *memory.ConversationMemory
}

// NewResponseGenerator builds the response-generation agent.
func NewResponseGenerator(ctx context.Context, cfg pkg.ModelConfig, timeout time.Duration, systemPrompt string, mem *memory.ConversationMemory) (*ResponseGenerator, error) {
	caller, err := NewCaller(ctx, "response_generation", "generated_reply", cfg, timeout, systemPrompt, responderUserTemplate)
	if err != nil {
		return nil, err
	}
	return &ResponseGenerator{caller: caller, mem: mem}, nil
}

// Run generates the reply. Missing upstream fields degrade to neutral
// defaults; extraction prefers a final_response field, then the generic
// processed_text field, then the raw model text verbatim.
func (a *ResponseGenerator) Run(ctx context.Context, userInput string, emotion, analysis Result) string {
	guidance := analysis.Nested("response_guidance")

	cultural := a.mem.CulturalContext()
	if cultural == "" {
		cultural = "None detected"
	}
	prefs := a.mem.CommunicationPreferences()
	if prefs == "" {
		prefs = "None specified"
	}

	res := a.caller.Invoke(ctx, userInput, map[string]any{
		"user_input":                userInput,
		"emotion":                   emotion.String("emotion", "Unknown"),
		"intensity":                 emotion.String("intensity_level", "Moderate"),
		"sarcasm":                   emotion.String("sarcasm_detected", "No"),
		"focus_areas":               joinOrDefault(guidance.StringSlice("focus_areas"), "None specified"),
		"approach":                  guidance.String("approach_suggestion", "Supportive"),
		"avoid_topics":              joinOrDefault(guidance.StringSlice("avoid_topics"), "None specified"),
		"cultural_context":          cultural,
		"communication_preferences": prefs,
	})
	if res.Failed() {
		return FallbackReply
	}

	if res.Has("final_response") {
		return res.String("final_response", res.Raw)
	}
	if res.Has("processed_text") {
		return res.String("processed_text", res.Raw)
	}
	return res.Raw
}

func joinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}
