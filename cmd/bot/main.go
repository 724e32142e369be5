package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/kdkiss/ai-sports-betting-agent/internal/bot"
	"github.com/kdkiss/ai-sports-betting-agent/internal/cache"
	"github.com/kdkiss/ai-sports-betting-agent/internal/config"
	"github.com/kdkiss/ai-sports-betting-agent/internal/llm"
	"github.com/kdkiss/ai-sports-betting-agent/internal/logging"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
	"github.com/kdkiss/ai-sports-betting-agent/internal/sportsdata"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	if err := config.Validate(cfg); err != nil {
		logging.Fatalf("invalid configuration: %v", err)
	}
	if cfg.TelegramToken == "" {
		logging.Fatalf("TELEGRAM_BOT_TOKEN is required")
	}

	teams, err := config.LoadTeams(cfg)
	if err != nil {
		logging.Fatalf("loading teams vocabulary: %v", err)
	}
	parserCfg := parser.DefaultConfig()
	parserCfg.KnownTeams = teams
	p := parser.New(parserCfg)

	var store sportsdata.Store
	c, err := cache.New(cfg.CachePath, cfg.CacheTTL)
	if err != nil {
		logging.Warnf("cache disabled: %v", err)
	} else {
		defer c.Close()
		store = c
	}
	sports := sportsdata.NewClient(cfg.SportsAPIURL, store)

	var commentator bot.Commentator
	if cfg.LLMAPIKey != "" {
		client, err := llm.New(llm.Config{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			logging.Warnf("commentary disabled: %v", err)
		} else {
			commentator = client
		}
	} else {
		logging.Infof("LLM_API_KEY not set, commentary disabled")
	}

	b, err := bot.New(bot.Options{
		Token:        cfg.TelegramToken,
		Parser:       p,
		Sports:       sports,
		Commentator:  commentator,
		DefaultStake: cfg.DefaultStake,
	})
	if err != nil {
		logging.Fatalf("starting bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Infof("bot starting, default stake $%.2f", cfg.DefaultStake)
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Errorf("bot exited: %v", err)
		os.Exit(1)
	}
}
