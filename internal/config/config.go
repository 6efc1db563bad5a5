package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScoringConfig holds the fusion and retrieval constants. The values are
// product-tuned; they are kept as configuration for reproducibility, not
// derived.
type ScoringConfig struct {
	SemanticWeight    float64 `yaml:"semantic_weight"`
	LexicalWeight     float64 `yaml:"lexical_weight"`
	MatchThreshold    float64 `yaml:"match_threshold"`
	TopK              int     `yaml:"top_k"`
	WindowTokens      int     `yaml:"window_tokens"`
	MinSentenceWords  int     `yaml:"min_sentence_words"`
	MinSentenceChars  int     `yaml:"min_sentence_chars"`
	SequenceThreshold float64 `yaml:"sequence_threshold"`
	FlagThreshold     float64 `yaml:"flag_threshold"`
	Workers           int     `yaml:"workers"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// RemoteCorpusConfig contains connection details for a remote corpus service.
type RemoteCorpusConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// CorpusConfig selects and configures the reference corpus backend.
type CorpusConfig struct {
	Type   string              `yaml:"type"`
	Dir    string              `yaml:"dir,omitempty"`
	Remote *RemoteCorpusConfig `yaml:"remote,omitempty"`
}

// ServerConfig configures the HTTP serving layer.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// AllowSemantic is the server-side gate ANDed with each request's
	// capability flag.
	AllowSemantic      bool `yaml:"allow_semantic"`
	RequestTimeoutSecs int  `yaml:"request_timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Server   ServerConfig   `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/plagcheck/config.yaml.
// If neither exists, it writes defaults to ~/.config/plagcheck/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the scoring constants. A broken scoring section is a
// startup failure, never a per-request one.
func (c *AppConfig) Validate() error {
	s := c.Scoring
	if s.SemanticWeight < 0 || s.LexicalWeight < 0 {
		return errors.New("config: scoring weights must be non-negative")
	}
	if w := s.SemanticWeight + s.LexicalWeight; w < 0.999 || w > 1.001 {
		return fmt.Errorf("config: scoring weights must sum to 1, got %.3f", w)
	}
	if s.MatchThreshold < 0 || s.MatchThreshold > 1 {
		return fmt.Errorf("config: match_threshold out of [0,1]: %v", s.MatchThreshold)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("config: top_k must be positive: %d", s.TopK)
	}
	if s.WindowTokens <= 0 {
		return fmt.Errorf("config: window_tokens must be positive: %d", s.WindowTokens)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "plagcheck", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Scoring:  defaultScoring(),
		Embedder: EmbedderConfig{Type: "tfidf"},
		Corpus:   CorpusConfig{Type: "memory"},
		Server:   ServerConfig{Addr: ":8080", AllowSemantic: true, RequestTimeoutSecs: 60},
	}
	return cfg
}

func defaultScoring() ScoringConfig {
	return ScoringConfig{
		SemanticWeight:    0.6,
		LexicalWeight:     0.4,
		MatchThreshold:    0.5,
		TopK:              20,
		WindowTokens:      5,
		MinSentenceWords:  5,
		MinSentenceChars:  15,
		SequenceThreshold: 0.75,
		FlagThreshold:     0.7,
		Workers:           8,
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultScoring()
	if cfg.Scoring.SemanticWeight == 0 && cfg.Scoring.LexicalWeight == 0 {
		cfg.Scoring.SemanticWeight = def.SemanticWeight
		cfg.Scoring.LexicalWeight = def.LexicalWeight
	}
	if cfg.Scoring.MatchThreshold == 0 {
		cfg.Scoring.MatchThreshold = def.MatchThreshold
	}
	if cfg.Scoring.TopK == 0 {
		cfg.Scoring.TopK = def.TopK
	}
	if cfg.Scoring.WindowTokens == 0 {
		cfg.Scoring.WindowTokens = def.WindowTokens
	}
	if cfg.Scoring.MinSentenceWords == 0 {
		cfg.Scoring.MinSentenceWords = def.MinSentenceWords
	}
	if cfg.Scoring.MinSentenceChars == 0 {
		cfg.Scoring.MinSentenceChars = def.MinSentenceChars
	}
	if cfg.Scoring.SequenceThreshold == 0 {
		cfg.Scoring.SequenceThreshold = def.SequenceThreshold
	}
	if cfg.Scoring.FlagThreshold == 0 {
		cfg.Scoring.FlagThreshold = def.FlagThreshold
	}
	if cfg.Scoring.Workers == 0 {
		cfg.Scoring.Workers = def.Workers
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.RequestTimeoutSecs == 0 {
		cfg.Server.RequestTimeoutSecs = 60
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Corpus.Type == "remote" && cfg.Corpus.Remote != nil {
		if cfg.Corpus.Remote.TimeoutSecs == 0 {
			cfg.Corpus.Remote.TimeoutSecs = 20
		}
	}
}
