package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ReshmiMehta14/YaarAI/pkg"
)

// Default caps for the bounded session state.
const (
	DefaultMaxHistory = 20
	maxRecentEmotions = 5
	maxRecurringTopics = 10
)

// ConversationMemory holds the bounded message history and the derived user
// profile for one session. All operations are total: absent or empty optional
// inputs degrade to no-ops, never failures.
//
// The orchestrator is the single writer. The mutex covers the read-modify-write
// eviction path so concurrent turns against one session stay safe.
type ConversationMemory struct {
	mu sync.Mutex

	sessionID  string
	startedAt  time.Time
	maxHistory int

	messages []pkg.Message

	recentEmotions  []pkg.EmotionReading
	recurringTopics []string
	culturalContext          string
	communicationPreferences string
}

// New creates a fresh session memory with the given history cap.
// A cap <= 0 falls back to DefaultMaxHistory.
func New(maxHistory int) *ConversationMemory {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &ConversationMemory{
		sessionID:  uuid.NewString(),
		startedAt:  time.Now(),
		maxHistory: maxHistory,
	}
}

// SessionID returns the opaque session token generated at creation.
func (m *ConversationMemory) SessionID() string {
	return m.sessionID
}

// Append adds a message with the current timestamp and evicts from the front
// once the history cap is exceeded. The annotation is the emotion payload
// attached to assistant messages; pass nil for user messages.
func (m *ConversationMemory) Append(role pkg.Role, content string, annotation map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, pkg.Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
		Emotion:   annotation,
	})
	if len(m.messages) > m.maxHistory {
		m.messages = m.messages[len(m.messages)-m.maxHistory:]
	}
}

// Recent returns the last n messages (or fewer) in arrival order.
func (m *ConversationMemory) Recent(n int) []pkg.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 {
		return nil
	}
	start := len(m.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]pkg.Message, len(m.messages)-start)
	copy(out, m.messages[start:])
	return out
}

// FormattedRecent projects Recent(n) to (role, content) pairs, the shape
// agents send upstream as conversation context.
func (m *ConversationMemory) FormattedRecent(n int) []pkg.ConversationMessage {
	recent := m.Recent(n)
	out := make([]pkg.ConversationMessage, 0, len(recent))
	for _, msg := range recent {
		out = append(out, pkg.ConversationMessage{Role: msg.Role, Content: msg.Content})
	}
	return out
}

// Len returns the current conversation length.
func (m *ConversationMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// RecordEmotion appends to the recent-emotions window, evicting the oldest
// entry past the cap. An empty label is a no-op.
func (m *ConversationMemory) RecordEmotion(emotion string, intensity float64) {
	if emotion == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.recentEmotions = append(m.recentEmotions, pkg.EmotionReading{
		Emotion:    emotion,
		Intensity:  intensity,
		ObservedAt: time.Now(),
	})
	if len(m.recentEmotions) > maxRecentEmotions {
		m.recentEmotions = m.recentEmotions[len(m.recentEmotions)-maxRecentEmotions:]
	}
}

// RecordTopic appends a topic if it is not already present, keeping
// first-seen order and evicting the oldest once the cap is exceeded.
// An empty topic is a no-op.
func (m *ConversationMemory) RecordTopic(topic string) {
	if topic == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.recurringTopics {
		if t == topic {
			return
		}
	}
	m.recurringTopics = append(m.recurringTopics, topic)
	if len(m.recurringTopics) > maxRecurringTopics {
		m.recurringTopics = m.recurringTopics[len(m.recurringTopics)-maxRecurringTopics:]
	}
}

// SetCulturalContext overwrites the stored cultural context. Callers gate on
// a non-empty detected value, so an empty input is a no-op rather than an
// overwrite with nothing.
func (m *ConversationMemory) SetCulturalContext(value string) {
	if value == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.culturalContext = value
}

// CulturalContext returns the last detected cultural context, if any.
func (m *ConversationMemory) CulturalContext() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.culturalContext
}

// CommunicationPreferences is reserved for future agents; nothing populates
// it today but the field is part of the profile contract.
func (m *ConversationMemory) CommunicationPreferences() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.communicationPreferences
}

// Profile returns a copy of the derived user profile.
func (m *ConversationMemory) Profile() pkg.ProfileSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	emotions := make([]pkg.EmotionReading, len(m.recentEmotions))
	copy(emotions, m.recentEmotions)
	topics := make([]string, len(m.recurringTopics))
	copy(topics, m.recurringTopics)

	return pkg.ProfileSnapshot{
		RecentEmotions:           emotions,
		RecurringTopics:          topics,
		CulturalContext:          m.culturalContext,
		CommunicationPreferences: m.communicationPreferences,
	}
}

// Snapshot returns the debug view exposed to the host UI.
func (m *ConversationMemory) Snapshot() pkg.MemorySnapshot {
	profile := m.Profile()

	m.mu.Lock()
	defer m.mu.Unlock()

	return pkg.MemorySnapshot{
		SessionID:          m.sessionID,
		StartedAt:          m.startedAt,
		ConversationLength: len(m.messages),
		RecentEmotions:     profile.RecentEmotions,
		RecurringTopics:    profile.RecurringTopics,
	}
}
