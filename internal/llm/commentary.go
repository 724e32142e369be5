// Package llm turns heuristic parlay scores into short natural-language
// commentary via an OpenAI-compatible chat API. The client is optional;
// callers degrade to heuristics-only output when it is absent or failing.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kdkiss/ai-sports-betting-agent/internal/analysis"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = "You are a sports betting analyst. You are given a parlay " +
	"with per-leg risk scores already computed. Write two or three sentences of " +
	"plain commentary on the slip's overall quality. Do not invent statistics, " +
	"do not change any of the given numbers, and never promise a win."

// Config holds client settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int
}

// Client wraps an OpenAI-compatible chat API.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

// New creates a client from config.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	temp := cfg.Temperature
	if temp < 0 {
		temp = 0
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 400
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	openaiCfg := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		openaiCfg.BaseURL = baseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(openaiCfg),
		model:       model,
		temperature: temp,
		maxTokens:   maxTokens,
		timeout:     timeout,
	}, nil
}

// Commentary produces a short qualitative take on an already-scored parlay.
func (c *Client) Commentary(ctx context.Context, a analysis.ParlayAnalysis) (string, error) {
	if c == nil {
		return "", fmt.Errorf("llm: client is nil")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(a)},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	resp, err := c.api.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders the analysis as a compact plain-text block for the
// model. Exported so the bot layer can log exactly what was sent.
func BuildPrompt(a analysis.ParlayAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Parlay: %d legs, total odds %.2f, stake $%.2f\n", len(a.Legs), a.TotalOdds, a.Stake)
	fmt.Fprintf(&b, "Overall rating: %d/10, risk level %s, expected value %.1f%%\n", a.OverallRating, a.RiskLevel, a.ExpectedValue)

	for i, leg := range a.Legs {
		fmt.Fprintf(&b, "Leg %d: %s %s, odds %.2f, strength %d/10, confidence %s\n",
			i+1, leg.TeamOrPlayer, leg.BetType, leg.Odds, leg.Strength, leg.Confidence)
		for _, rf := range leg.RiskFactors {
			fmt.Fprintf(&b, "  risk: %s\n", rf)
		}
		for _, sf := range leg.SafetyFactors {
			fmt.Fprintf(&b, "  safety: %s\n", sf)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
