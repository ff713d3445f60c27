package services

import (
	"context"
	"fmt"

	"slidecraft/config"
	"slidecraft/internal/generation"
	"slidecraft/internal/logger"
)

// NewOrchestrator wires the configured text provider and image search into a
// generation orchestrator. A missing provider key leaves the text generator
// unset, so runs fail with a provider-unavailable error instead of crashing.
// The returned func releases provider clients.
func NewOrchestrator(ctx context.Context, cfg *config.Config, log *logger.Logger) (*generation.Orchestrator, func(), error) {
	closeFn := func() {}

	var text generation.TextGenerator
	switch cfg.Generation.Provider {
	case "openai":
		if cfg.Openai.GptApiKey != "" {
			text = NewChatGPT(cfg.Openai.GptApiKey, cfg.Openai.Model)
		}
	case "gemini":
		if cfg.Gemini.ApiKey != "" {
			g, err := NewGemini(ctx, cfg.Gemini.ApiKey, cfg.Gemini.Model)
			if err != nil {
				return nil, closeFn, fmt.Errorf("failed to create gemini client: %w", err)
			}
			text = g
			closeFn = func() {
				if err := g.Close(); err != nil {
					log.Warn("failed to close gemini client", "error", err)
				}
			}
		}
	default:
		return nil, closeFn, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}
	if text == nil {
		log.Warn("no API key for generation provider; generation requests will fail", "provider", cfg.Generation.Provider)
	}

	var searcher generation.ImageSearcher
	if cfg.Unsplash.AccessKey != "" {
		searcher = NewUnsplash(cfg.Unsplash.AccessKey)
	} else {
		log.Info("no Unsplash key; slide images come from the built-in pools")
	}

	images := generation.NewImageResolver(searcher, cfg.ImageTimeout(), log)
	return generation.NewOrchestrator(text, images, cfg.GenerationTimeout(), log), closeFn, nil
}

// NewImageStorage returns the upload backend selected by uploads.driver.
func NewImageStorage(ctx context.Context, cfg *config.Config) (ImageStorage, error) {
	switch cfg.Uploads.Driver {
	case "s3":
		return NewS3Storage(ctx, cfg.Uploads.Bucket, cfg.Uploads.Region)
	default:
		return NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	}
}
