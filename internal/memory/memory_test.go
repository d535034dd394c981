package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReshmiMehta14/YaarAI/pkg"
)

func TestAppendEvictsOldestFIFO(t *testing.T) {
	mem := New(3)

	for i := 1; i <= 5; i++ {
		mem.Append(pkg.RoleUser, fmt.Sprintf("message %d", i), nil)
	}

	require.Equal(t, 3, mem.Len())
	recent := mem.Recent(10)
	require.Len(t, recent, 3)
	assert.Equal(t, "message 3", recent[0].Content)
	assert.Equal(t, "message 5", recent[2].Content)
}

func TestHistoryCapCountsBothRoles(t *testing.T) {
	mem := New(4)

	for i := 0; i < 4; i++ {
		mem.Append(pkg.RoleUser, "hello", nil)
		mem.Append(pkg.RoleAssistant, "hi there", nil)
	}

	assert.Equal(t, 4, mem.Len())
}

func TestRecentShorterThanWindow(t *testing.T) {
	mem := New(0)
	mem.Append(pkg.RoleUser, "only one", nil)

	recent := mem.Recent(5)
	require.Len(t, recent, 1)
	assert.Equal(t, "only one", recent[0].Content)
}

func TestFormattedRecentProjectsRoleAndContent(t *testing.T) {
	mem := New(0)
	mem.Append(pkg.RoleUser, "how are you", nil)
	mem.Append(pkg.RoleAssistant, "doing fine", map[string]any{"emotion": "Happiness"})

	formatted := mem.FormattedRecent(5)
	require.Len(t, formatted, 2)
	assert.Equal(t, pkg.ConversationMessage{Role: pkg.RoleUser, Content: "how are you"}, formatted[0])
	assert.Equal(t, pkg.ConversationMessage{Role: pkg.RoleAssistant, Content: "doing fine"}, formatted[1])
}

func TestAssistantAnnotationStored(t *testing.T) {
	mem := New(0)
	mem.Append(pkg.RoleAssistant, "I'm here for you", map[string]any{"emotion": "Sadness"})

	recent := mem.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Sadness", recent[0].Emotion["emotion"])
}

func TestRecordTopicDeduplicates(t *testing.T) {
	mem := New(0)

	mem.RecordTopic("work stress")
	mem.RecordTopic("work stress")

	assert.Equal(t, []string{"work stress"}, mem.Profile().RecurringTopics)
}

func TestRecordTopicEmptyIsNoop(t *testing.T) {
	mem := New(0)
	mem.RecordTopic("")
	assert.Empty(t, mem.Profile().RecurringTopics)
}

func TestTopicCapEvictsOldest(t *testing.T) {
	mem := New(0)

	for i := 0; i < 15; i++ {
		mem.RecordTopic(fmt.Sprintf("topic %d", i))
	}

	topics := mem.Profile().RecurringTopics
	require.Len(t, topics, 10)
	assert.Equal(t, "topic 5", topics[0])
	assert.Equal(t, "topic 14", topics[9])
}

func TestEmotionCapUnderVolume(t *testing.T) {
	mem := New(0)

	for i := 0; i < 20; i++ {
		mem.RecordEmotion("Sadness", float64(i%5))
	}

	emotions := mem.Profile().RecentEmotions
	require.Len(t, emotions, 5)
	assert.Equal(t, float64(19%5), emotions[4].Intensity)
}

func TestRecordEmotionEmptyLabelIsNoop(t *testing.T) {
	mem := New(0)
	mem.RecordEmotion("", 4)
	assert.Empty(t, mem.Profile().RecentEmotions)
}

func TestSetCulturalContextEmptyLeavesPriorValue(t *testing.T) {
	mem := New(0)

	mem.SetCulturalContext("references to cricket")
	mem.SetCulturalContext("")

	assert.Equal(t, "references to cricket", mem.CulturalContext())
}

func TestCommunicationPreferencesReserved(t *testing.T) {
	mem := New(0)
	assert.Empty(t, mem.CommunicationPreferences())
}

func TestSnapshotReflectsState(t *testing.T) {
	mem := New(0)
	mem.Append(pkg.RoleUser, "hello", nil)
	mem.RecordEmotion("Happiness", 2)
	mem.RecordTopic("greetings")

	snap := mem.Snapshot()
	assert.NotEmpty(t, snap.SessionID)
	assert.False(t, snap.StartedAt.IsZero())
	assert.Equal(t, 1, snap.ConversationLength)
	require.Len(t, snap.RecentEmotions, 1)
	assert.Equal(t, "Happiness", snap.RecentEmotions[0].Emotion)
	assert.Equal(t, []string{"greetings"}, snap.RecurringTopics)
}

func TestSessionIDsAreIndependent(t *testing.T) {
	a := New(0)
	b := New(0)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}
