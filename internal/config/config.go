package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
)

// Defaults for configuration values.
const (
	DefaultStake        = 100.0
	DefaultCachePath    = "/data/cache.db"
	DefaultCacheTTL     = 1 * time.Hour
	DefaultLLMModel     = "gpt-4o-mini"
	DefaultLLMTimeout   = 30 * time.Second
	DefaultSportsAPIURL = "https://www.thesportsdb.com/api/v1/json/3"
	DefaultLogLevel     = "info"
)

// Config holds all application configuration.
type Config struct {
	TelegramToken string

	// LLM commentary settings. Empty LLMAPIKey disables commentary and
	// the bot degrades to heuristics-only output.
	LLMAPIKey  string
	LLMBaseURL string // empty = provider default
	LLMModel   string
	LLMTimeout time.Duration

	SportsAPIURL string
	CachePath    string
	CacheTTL     time.Duration

	DefaultStake float64
	TeamsFile    string // optional JSON vocabulary for fuzzy team matching
	LogLevel     string
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LLMAPIKey:     os.Getenv("LLM_API_KEY"),
		LLMBaseURL:    os.Getenv("LLM_BASE_URL"),
		LLMModel:      DefaultLLMModel,
		LLMTimeout:    DefaultLLMTimeout,
		SportsAPIURL:  DefaultSportsAPIURL,
		CachePath:     DefaultCachePath,
		CacheTTL:      DefaultCacheTTL,
		DefaultStake:  DefaultStake,
		TeamsFile:     os.Getenv("TEAMS_FILE"),
		LogLevel:      DefaultLogLevel,
	}

	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}

	if v := os.Getenv("LLM_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.LLMTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("SPORTS_API_URL"); v != "" {
		cfg.SportsAPIURL = v
	}

	if v := os.Getenv("CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}

	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.CacheTTL = time.Duration(m) * time.Minute
		}
	}

	if v := os.Getenv("DEFAULT_STAKE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DefaultStake = f
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if cfg.DefaultStake <= 0 {
		return fmt.Errorf("DEFAULT_STAKE must be positive, got %f", cfg.DefaultStake)
	}
	if cfg.CacheTTL < time.Minute {
		return fmt.Errorf("CACHE_TTL_MINUTES must be at least 1, got %v", cfg.CacheTTL)
	}
	if cfg.LLMTimeout < 100*time.Millisecond {
		return fmt.Errorf("LLM_TIMEOUT_MS must be at least 100ms, got %v", cfg.LLMTimeout)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", cfg.LogLevel)
	}
	return nil
}

// LoadTeams reads the known-teams vocabulary for the parser. With no file
// configured the built-in vocabulary is used.
func LoadTeams(cfg Config) ([]parser.TeamEntry, error) {
	if cfg.TeamsFile == "" {
		return parser.DefaultTeams(), nil
	}

	data, err := os.ReadFile(cfg.TeamsFile)
	if err != nil {
		return nil, fmt.Errorf("reading teams file: %w", err)
	}

	var teams []parser.TeamEntry
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("parsing teams file %s: %w", cfg.TeamsFile, err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("teams file %s contains no entries", cfg.TeamsFile)
	}
	return teams, nil
}
