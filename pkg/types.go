package pkg

import (
	"time"
)

// Core types shared between the memory store, the pipeline agents and the host UI.

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is the (role, content) projection of a stored message,
// the shape agents send upstream as conversation context.
type ConversationMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Message is one stored line of the conversation history.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	// Emotion holds the emotion detector payload, attached to assistant messages only.
	Emotion map[string]any `json:"emotion,omitempty"`
}

// EmotionReading is one entry of the profile's recent-emotions window.
type EmotionReading struct {
	Emotion    string    `json:"emotion"`
	Intensity  float64   `json:"intensity"`
	ObservedAt time.Time `json:"observed_at"`
}

// ProfileSnapshot is a read-only copy of the derived user profile.
type ProfileSnapshot struct {
	RecentEmotions           []EmotionReading `json:"recent_emotions"`
	RecurringTopics          []string         `json:"recurring_topics"`
	CulturalContext          string           `json:"cultural_context,omitempty"`
	CommunicationPreferences string           `json:"communication_preferences,omitempty"`
}

// MemorySnapshot is the debug view the host UI may read (never write).
type MemorySnapshot struct {
	SessionID          string           `json:"session_id"`
	StartedAt          time.Time        `json:"started_at"`
	ConversationLength int              `json:"conversation_length"`
	RecentEmotions     []EmotionReading `json:"recent_emotions"`
	RecurringTopics    []string         `json:"recurring_topics"`
}

// ModelConfig holds the per-agent chat model settings.
type ModelConfig struct {
	Model       string  `json:"model"`
	APIKey      string  `json:"api_key"`
	BaseURL     string  `json:"base_url"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}
