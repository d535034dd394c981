package chat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ReshmiMehta14/YaarAI/internal/agent"
	"github.com/ReshmiMehta14/YaarAI/internal/config"
	"github.com/ReshmiMehta14/YaarAI/internal/logger"
	"github.com/ReshmiMehta14/YaarAI/internal/memory"
	"github.com/ReshmiMehta14/YaarAI/pkg"
)

const tracerName = "emotional_support_chatbot"

// Stage contracts, one per pipeline agent. The orchestrator only depends on
// these so stages can be substituted in tests.
type inputNormalizer interface {
	Run(ctx context.Context, userInput string) agent.Result
}

type emotionDetector interface {
	Run(ctx context.Context, userInput string) agent.Result
}

type contextAnalyzer interface {
	Run(ctx context.Context, userInput string, emotion agent.Result) agent.Result
}

type replyGenerator interface {
	Run(ctx context.Context, userInput string, emotion, analysis agent.Result) string
}

type feedbackAnalyzer interface {
	Run(ctx context.Context, userInput, previousReply string) agent.Result
}

// Chatbot sequences the five agents per incoming user message, threading
// earlier outputs into later inputs and committing each step to the session
// memory. One Chatbot owns one session; construct several for independent
// conversations.
type Chatbot struct {
	mem *memory.ConversationMemory

	normalizer inputNormalizer
	emotions   emotionDetector
	analyzer   contextAnalyzer
	responder  replyGenerator
	feedback   feedbackAnalyzer

	tracer        trace.Tracer
	previousReply string
	debug         bool
}

// New wires the full pipeline against the configured text-generation
// endpoint.
func New(ctx context.Context, cfg *config.Config, prompts *config.PromptPack, apiKey string) (*Chatbot, error) {
	mem := memory.New(cfg.Memory.MaxHistory)
	timeout := cfg.Model.RequestTimeout()

	base := pkg.ModelConfig{
		Model:   cfg.Model.Name,
		APIKey:  apiKey,
		BaseURL: cfg.Model.BaseURL,
	}

	normalizerCfg := base
	normalizerCfg.Temperature = cfg.Agents.NormalizerTemperature
	normalizer, err := agent.NewNormalizer(ctx, normalizerCfg, timeout, prompts.UserInput, mem)
	if err != nil {
		return nil, err
	}

	emotionCfg := base
	emotionCfg.Temperature = cfg.Agents.EmotionTemperature
	emotions, err := agent.NewEmotionDetector(ctx, emotionCfg, timeout, prompts.EmotionDetection, mem)
	if err != nil {
		return nil, err
	}

	analyzerCfg := base
	analyzerCfg.Temperature = cfg.Agents.ContextTemperature
	analyzer, err := agent.NewContextAnalyzer(ctx, analyzerCfg, timeout, prompts.ContextManagement, mem)
	if err != nil {
		return nil, err
	}

	responderCfg := base
	responderCfg.Temperature = cfg.Agents.ResponseTemperature
	responderCfg.MaxTokens = cfg.Agents.ResponseMaxTokens
	responder, err := agent.NewResponseGenerator(ctx, responderCfg, timeout, prompts.ResponseGeneration, mem)
	if err != nil {
		return nil, err
	}

	feedbackCfg := base
	feedbackCfg.Temperature = cfg.Agents.FeedbackTemperature
	feedback, err := agent.NewFeedbackAnalyzer(ctx, feedbackCfg, timeout, prompts.FeedbackLoop)
	if err != nil {
		return nil, err
	}

	return &Chatbot{
		mem:        mem,
		normalizer: normalizer,
		emotions:   emotions,
		analyzer:   analyzer,
		responder:  responder,
		feedback:   feedback,
	}, nil
}

// SetDebug toggles logging of full agent payloads per stage.
func (b *Chatbot) SetDebug(enabled bool) {
	b.debug = enabled
}

// SessionID returns the session token of this conversation.
func (b *Chatbot) SessionID() string {
	return b.mem.SessionID()
}

// Snapshot exposes the read-only debug view of the session memory.
func (b *Chatbot) Snapshot() pkg.MemorySnapshot {
	return b.mem.Snapshot()
}

// ProcessMessage runs one full turn: normalize, detect emotion, analyze
// context, generate the reply, and analyze feedback once a previous reply
// exists. No stage aborts the sequence; each degrades internally, and the
// returned reply is never empty.
func (b *Chatbot) ProcessMessage(ctx context.Context, userInput string) string {
	tracer := b.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	ctx, turn := tracer.Start(ctx, "conversation_turn")
	defer turn.End()
	turn.SetAttributes(attribute.String("user_input", userInput))

	b.mem.Append(pkg.RoleUser, userInput, nil)

	stageCtx, span := tracer.Start(ctx, "user_input_processing")
	processed := b.normalizer.Run(stageCtx, userInput)
	span.SetAttributes(attribute.String("processed_input", fmt.Sprintf("%v", processed.Fields)))
	span.End()
	b.dumpStage("user input processing", processed)

	stageCtx, span = tracer.Start(ctx, "emotion_detection")
	emotion := b.emotions.Run(stageCtx, userInput)
	span.SetAttributes(
		attribute.String("emotion", emotion.String("emotion", "Unknown")),
		attribute.String("intensity", emotion.String("intensity_level", "Unknown")),
	)
	span.End()
	b.dumpStage("emotion detection", emotion)

	stageCtx, span = tracer.Start(ctx, "context_analysis")
	analysis := b.analyzer.Run(stageCtx, userInput, emotion)
	span.SetAttributes(attribute.String("context_analysis", fmt.Sprintf("%v", analysis.Fields)))
	span.End()
	b.dumpStage("context analysis", analysis)

	stageCtx, span = tracer.Start(ctx, "response_generation")
	reply := b.responder.Run(stageCtx, userInput, emotion, analysis)
	span.SetAttributes(attribute.String("response", reply))
	span.End()

	b.mem.Append(pkg.RoleAssistant, reply, emotion.Fields)

	if b.previousReply != "" {
		stageCtx, span = tracer.Start(ctx, "feedback_processing")
		feedback := b.feedback.Run(stageCtx, userInput, b.previousReply)
		span.SetAttributes(attribute.String("feedback_analysis", fmt.Sprintf("%v", feedback.Fields)))
		span.End()
		b.dumpStage("feedback analysis", feedback)
	}

	b.previousReply = reply
	turn.SetAttributes(attribute.String("final_response", reply))
	return reply
}

func (b *Chatbot) dumpStage(stage string, res agent.Result) {
	if !b.debug {
		return
	}
	logger.Info().
		Str("stage", stage).
		Str("error", res.Err).
		Interface("payload", res.Fields).
		Msg("stage result")
}
