package main

import (
	"flag"
	"log"
	"net/http"

	"osce-simulator/internal/casestore"
	"osce-simulator/internal/config"
	"osce-simulator/internal/core"
	"osce-simulator/internal/feedback"
	httpserver "osce-simulator/internal/http"
	"osce-simulator/internal/llm"
	"osce-simulator/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Cases are loaded once at startup and shared read-only by every
	// session. Malformed files are skipped inside Load.
	store := casestore.New(cfg.CasesDir, logger)
	cases := store.Load()
	caseIDs := casestore.SortedIDs(cases)
	if len(cases) == 0 {
		logger.Warn("no cases loaded, simulator will show an empty-catalog notice", "dir", cfg.CasesDir)
	} else {
		logger.Info("cases loaded", "count", len(cases))
	}

	// A missing API key is surfaced on the first completion call, not here.
	llmClient := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	chatService := core.NewChatService(llmClient)
	sink := feedback.NewSink(cfg.FeedbackFile)

	srv, err := httpserver.NewServer(cases, caseIDs, chatService, sink, logger)
	if err != nil {
		logger.Fatal("failed to construct server", "error", err)
	}

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		logger.Fatal("server error", "error", err)
	}
}
