package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"plagcheck/internal/config"
	"plagcheck/internal/corpus"
	"plagcheck/internal/corpus/memory"
	"plagcheck/internal/corpus/remote"
	"plagcheck/internal/domain"
	"plagcheck/internal/httpapi"
	"plagcheck/internal/semantic/openai"
	"plagcheck/internal/semantic/tfidf"
	"plagcheck/internal/service"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/plagcheck/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Assemble the corpus backend
	var store domain.CorpusStore
	switch cfg.Corpus.Type {
	case "memory", "":
		mem := memory.NewStore()
		if cfg.Corpus.Dir != "" {
			n, err := corpus.LoadDir(context.Background(), cfg.Corpus.Dir, mem)
			if err != nil {
				log.Fatalf("corpus load failed: %v", err)
			}
			logger.Info("corpus loaded", "dir", cfg.Corpus.Dir, "entries", n)
		}
		store = mem
	case "remote":
		if cfg.Corpus.Remote == nil {
			log.Fatalf("remote corpus config missing")
		}
		store = remote.NewClient(remote.Config{
			URL:     cfg.Corpus.Remote.URL,
			APIKey:  cfg.Corpus.Remote.APIKey,
			Timeout: time.Duration(cfg.Corpus.Remote.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown corpus type: %s", cfg.Corpus.Type)
	}

	embedder := buildEmbedder(cfg, store, logger)
	checker := service.NewChecker(cfg.Scoring, store, embedder, logger)

	srv := httpapi.NewServer(checker, cfg.Server.AllowSemantic && embedder != nil,
		time.Duration(cfg.Server.RequestTimeoutSecs)*time.Second, logger)

	logger.Info("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}

// buildEmbedder assembles the configured embedder, preparing the local
// TF-IDF one over the current corpus. Returns nil when semantic mode
// cannot be offered.
func buildEmbedder(cfg *config.AppConfig, store domain.CorpusStore, logger *slog.Logger) domain.Embedder {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		entries, err := store.FetchCandidates(context.Background(), "")
		if err != nil || len(entries) == 0 {
			logger.Warn("tfidf embedder has no corpus to prepare on, semantic mode disabled")
			return nil
		}
		texts := make([]string, len(entries))
		for i, e := range entries {
			texts[i] = e.Text
		}
		emb := tfidf.NewEmbedder()
		if err := emb.Prepare(texts); err != nil {
			logger.Warn("tfidf prepare failed, semantic mode disabled", "error", err)
			return nil
		}
		return emb
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		return client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
		return nil
	}
}
