package services

import (
	"context"
	"errors"
	"testing"

	"slidecraft/config"
	"slidecraft/internal/generation"
	"slidecraft/internal/logger"
)

func TestNewOrchestratorWithoutKeys(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Gemini.ApiKey = ""
	cfg.Unsplash.AccessKey = ""

	orch, closeFn, err := NewOrchestrator(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	defer closeFn()

	_, err = orch.Generate(context.Background(), generation.Request{DeckTitle: "Deck", Prompt: "Topic"}, nil)
	if !errors.Is(err, generation.ErrProviderUnavailable) {
		t.Errorf("err = %v, want provider unavailable", err)
	}
}

func TestNewOrchestratorUnknownProvider(t *testing.T) {
	cfg, _ := config.Load("")
	cfg.Generation.Provider = "llama"
	if _, _, err := NewOrchestrator(context.Background(), cfg, logger.NewNop()); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}

func TestNewImageStorageLocal(t *testing.T) {
	cfg, _ := config.Load("")
	cfg.Uploads.Dir = t.TempDir()
	storage, err := NewImageStorage(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := storage.(*LocalStorage); !ok {
		t.Errorf("storage = %T, want *LocalStorage", storage)
	}
}
