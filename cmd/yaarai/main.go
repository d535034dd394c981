package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/ReshmiMehta14/YaarAI/internal/chat"
	"github.com/ReshmiMehta14/YaarAI/internal/config"
	"github.com/ReshmiMehta14/YaarAI/internal/logger"
	"github.com/ReshmiMehta14/YaarAI/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	debug := flag.Bool("debug", false, "log full agent payloads per stage")
	flag.Parse()

	// .env is optional; real environments set the variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Error().Msg("OPENAI_API_KEY environment variable is required")
		os.Exit(1)
	}

	ctx := context.Background()

	shutdown, err := telemetry.InitTracing(ctx, cfg.Tracing.Endpoint)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize tracing")
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	prompts, err := config.LoadPrompts(cfg.PromptsPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load prompt pack")
		os.Exit(1)
	}

	bot, err := chat.New(ctx, cfg, prompts, apiKey)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build chatbot")
		os.Exit(1)
	}
	bot.SetDebug(*debug)
	debugMode := *debug

	logger.Info().Str("session_id", bot.SessionID()).Msg("session started")
	fmt.Println("YaarAI — how are you feeling today?")
	fmt.Println("(/debug toggles debug mode, /quit exits)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return
		case "/debug":
			debugMode = !debugMode
			bot.SetDebug(debugMode)
			fmt.Printf("debug mode: %v\n", debugMode)
			if debugMode {
				printSnapshot(bot)
			}
			continue
		}

		reply := bot.ProcessMessage(ctx, line)
		fmt.Printf("yaar> %s\n", reply)

		if debugMode {
			printSnapshot(bot)
		}
	}
}

func printSnapshot(bot *chat.Chatbot) {
	data, err := sonic.MarshalIndent(bot.Snapshot(), "", "  ")
	if err != nil {
		logger.Warn().Err(err).Msg("failed to marshal memory snapshot")
		return
	}
	fmt.Println(string(data))
}
