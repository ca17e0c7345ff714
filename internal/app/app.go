package app

import (
	"context"
	"fmt"
	"log"

	"github.com/markdave123-py/papervoice/internal/config"
	"github.com/markdave123-py/papervoice/internal/core/acquire"
	"github.com/markdave123-py/papervoice/internal/core/extraction_engine"
	"github.com/markdave123-py/papervoice/internal/core/llm"
	"github.com/markdave123-py/papervoice/internal/core/tts"
	"github.com/markdave123-py/papervoice/internal/services"
)

type App struct {
	LLM      *llm.GeminiLLM
	Vision   *llm.GeminiVision
	Pipeline *services.PipelineService
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	llmProvider, err := llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the summarizer, %w", err)
	}
	log.Println("Gemini summarizer initialized and ready.")

	captioner, err := llm.NewGeminiVision(ctx, cfg.AIAPIKey, cfg.VisionModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the captioner, %w", err)
	}

	speech := tts.NewClient(tts.WithLanguage(cfg.SpeechLang))
	extractor := extraction_engine.NewExtractor()
	fetcher := acquire.NewFetcher()

	pipeline := services.NewPipelineService(extractor, captioner, llmProvider, speech)
	server := NewServer(cfg, pipeline, fetcher)

	return &App{LLM: llmProvider, Vision: captioner, Pipeline: pipeline, Server: server}, nil
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.Vision != nil {
		_ = a.Vision.Close()
	}
}
