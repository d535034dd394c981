package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReshmiMehta14/YaarAI/internal/agent"
	"github.com/ReshmiMehta14/YaarAI/internal/memory"
	"github.com/ReshmiMehta14/YaarAI/pkg"
)

type stubNormalizer struct {
	res agent.Result
}

func (s *stubNormalizer) Run(ctx context.Context, userInput string) agent.Result {
	return s.res
}

type stubEmotion struct {
	res agent.Result
}

func (s *stubEmotion) Run(ctx context.Context, userInput string) agent.Result {
	return s.res
}

type stubAnalyzer struct {
	res         agent.Result
	seenEmotion agent.Result
}

func (s *stubAnalyzer) Run(ctx context.Context, userInput string, emotion agent.Result) agent.Result {
	s.seenEmotion = emotion
	return s.res
}

type stubResponder struct {
	reply        string
	seenEmotion  agent.Result
	seenAnalysis agent.Result
}

func (s *stubResponder) Run(ctx context.Context, userInput string, emotion, analysis agent.Result) string {
	s.seenEmotion = emotion
	s.seenAnalysis = analysis
	return s.reply
}

type stubFeedback struct {
	calls        int
	seenInput    string
	seenPrevious string
}

func (s *stubFeedback) Run(ctx context.Context, userInput, previousReply string) agent.Result {
	s.calls++
	s.seenInput = userInput
	s.seenPrevious = previousReply
	return agent.Structured(map[string]any{"feedback": "engaged"})
}

func newTestChatbot(emotion agent.Result, reply string) (*Chatbot, *stubAnalyzer, *stubResponder, *stubFeedback) {
	analyzer := &stubAnalyzer{res: agent.Structured(nil)}
	responder := &stubResponder{reply: reply}
	feedback := &stubFeedback{}
	bot := &Chatbot{
		mem:        memory.New(0),
		normalizer: &stubNormalizer{res: agent.Structured(nil)},
		emotions:   &stubEmotion{res: emotion},
		analyzer:   analyzer,
		responder:  responder,
		feedback:   feedback,
	}
	return bot, analyzer, responder, feedback
}

func TestProcessMessageCommitsBothSidesOfTurn(t *testing.T) {
	emotion := agent.Structured(map[string]any{"emotion": "Anxiety", "intensity_level": "High"})
	bot, _, _, _ := newTestChatbot(emotion, "That sounds hard.")

	reply := bot.ProcessMessage(context.Background(), "I'm so stressed about work.")

	assert.Equal(t, "That sounds hard.", reply)

	msgs := bot.mem.Recent(10)
	require.Len(t, msgs, 2)
	assert.Equal(t, pkg.RoleUser, msgs[0].Role)
	assert.Equal(t, "I'm so stressed about work.", msgs[0].Content)
	assert.Nil(t, msgs[0].Emotion)
	assert.Equal(t, pkg.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "That sounds hard.", msgs[1].Content)
	assert.Equal(t, "Anxiety", msgs[1].Emotion["emotion"])
}

func TestProcessMessageSkipsFeedbackOnFirstTurn(t *testing.T) {
	bot, _, _, feedback := newTestChatbot(agent.Structured(nil), "hello there")

	bot.ProcessMessage(context.Background(), "hi")

	assert.Zero(t, feedback.calls)
}

func TestProcessMessageFeedsPreviousReplyIntoFeedback(t *testing.T) {
	bot, _, _, feedback := newTestChatbot(agent.Structured(nil), "first reply")

	bot.ProcessMessage(context.Background(), "first message")
	bot.ProcessMessage(context.Background(), "second message")

	assert.Equal(t, 1, feedback.calls)
	assert.Equal(t, "second message", feedback.seenInput)
	assert.Equal(t, "first reply", feedback.seenPrevious)
}

func TestProcessMessageThreadsResultsDownstream(t *testing.T) {
	emotion := agent.Structured(map[string]any{"emotion": "Sadness"})
	bot, analyzer, responder, _ := newTestChatbot(emotion, "reply")
	analyzer.res = agent.Structured(map[string]any{"context_summary": "grieving"})

	bot.ProcessMessage(context.Background(), "I miss my dog")

	assert.Equal(t, "Sadness", analyzer.seenEmotion.Fields["emotion"])
	assert.Equal(t, "Sadness", responder.seenEmotion.Fields["emotion"])
	assert.Equal(t, "grieving", responder.seenAnalysis.Fields["context_summary"])
}

func TestProcessMessageDegradedEmotionStillThreads(t *testing.T) {
	degraded := agent.Failure(errors.New("model down"), "ugh")
	bot, analyzer, responder, _ := newTestChatbot(degraded, "still here for you")

	reply := bot.ProcessMessage(context.Background(), "ugh")

	assert.Equal(t, "still here for you", reply)
	assert.True(t, analyzer.seenEmotion.Failed())
	assert.True(t, responder.seenEmotion.Failed())

	msgs := bot.mem.Recent(10)
	require.Len(t, msgs, 2)
	assert.Empty(t, msgs[1].Emotion)
}

func TestProcessMessageAllStagesDegradedStillReplies(t *testing.T) {
	fail := agent.Failure(errors.New("down"), "hello")
	bot := &Chatbot{
		mem:        memory.New(0),
		normalizer: &stubNormalizer{res: fail},
		emotions:   &stubEmotion{res: fail},
		analyzer:   &stubAnalyzer{res: fail},
		responder:  &stubResponder{reply: agent.FallbackReply},
		feedback:   &stubFeedback{},
	}

	reply := bot.ProcessMessage(context.Background(), "hello")

	assert.NotEmpty(t, reply)
	assert.Equal(t, agent.FallbackReply, reply)
	assert.Equal(t, 2, bot.mem.Len())
}

func TestProcessMessagePreviousReplyPersistsAcrossTurns(t *testing.T) {
	bot, _, responder, feedback := newTestChatbot(agent.Structured(nil), "reply one")

	bot.ProcessMessage(context.Background(), "one")
	responder.reply = "reply two"
	bot.ProcessMessage(context.Background(), "two")
	bot.ProcessMessage(context.Background(), "three")

	assert.Equal(t, 2, feedback.calls)
	assert.Equal(t, "reply two", feedback.seenPrevious)
}

func TestSnapshotReflectsConversation(t *testing.T) {
	bot, _, _, _ := newTestChatbot(agent.Structured(nil), "reply")

	bot.ProcessMessage(context.Background(), "hello")
	snap := bot.Snapshot()

	assert.Equal(t, bot.SessionID(), snap.SessionID)
	assert.Equal(t, 2, snap.ConversationLength)
	assert.False(t, snap.StartedAt.IsZero())
}
