package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"plagcheck/internal/config"
	"plagcheck/internal/corpus"
	"plagcheck/internal/corpus/memory"
	"plagcheck/internal/corpus/remote"
	"plagcheck/internal/domain"
	"plagcheck/internal/semantic/openai"
	"plagcheck/internal/semantic/tfidf"
	"plagcheck/internal/service"
	"plagcheck/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var semantic bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/plagcheck/config.yaml if not provided)")
	flag.BoolVar(&semantic, "semantic", false, "Enable hybrid lexical+semantic scoring")
	flag.Parse()
	corpusDirs := flag.Args()
	if len(corpusDirs) > 1 {
		fmt.Println("Usage: plagcheck [--config=config.yaml] [--semantic] [corpus-dir]")
		os.Exit(1)
	}

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
	if len(corpusDirs) == 1 {
		cfg.Corpus.Type = "memory"
		cfg.Corpus.Dir = corpusDirs[0]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var store domain.CorpusStore
	switch cfg.Corpus.Type {
	case "memory", "":
		mem := memory.NewStore()
		if cfg.Corpus.Dir != "" {
			if _, err := corpus.LoadDir(context.Background(), cfg.Corpus.Dir, mem); err != nil {
				log.Fatalf("corpus load failed: %v", err)
			}
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

	var embedder domain.Embedder
	if semantic {
		switch cfg.Embedder.Type {
		case "tfidf", "":
			entries, err := store.FetchCandidates(context.Background(), "")
			if err != nil || len(entries) == 0 {
				log.Fatalf("semantic mode needs a non-empty corpus for the tfidf embedder")
			}
			texts := make([]string, len(entries))
			for i, e := range entries {
				texts[i] = e.Text
			}
			emb := tfidf.NewEmbedder()
			if err := emb.Prepare(texts); err != nil {
				log.Fatalf("tfidf prepare failed: %v", err)
			}
			embedder = emb
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
			embedder = client
		default:
			log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
		}
	}

	checker := service.NewChecker(cfg.Scoring, store, embedder, logger)

	m := tui.New(checker, semantic && embedder != nil)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
