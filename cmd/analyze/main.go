// Command analyze scores a bet slip from a file or stdin and prints the
// structured result as JSON. Useful for tuning parser heuristics without a
// Telegram round trip.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kdkiss/ai-sports-betting-agent/internal/analysis"
	"github.com/kdkiss/ai-sports-betting-agent/internal/bot"
	"github.com/kdkiss/ai-sports-betting-agent/internal/config"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parlay"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
	"github.com/kdkiss/ai-sports-betting-agent/internal/portfolio"
)

type output struct {
	Parlays   []analysis.ParlayAnalysis `json:"parlays"`
	Portfolio *portfolio.Result         `json:"portfolio,omitempty"`
}

func main() {
	var (
		file  = flag.String("file", "", "slip text file (default: stdin)")
		stake = flag.Float64("stake", 0, "default stake when the slip has no wager line")
	)
	flag.Parse()

	cfg := config.Load()
	if *stake <= 0 {
		*stake = cfg.DefaultStake
	}

	text, err := readInput(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading input: %v\n", err)
		os.Exit(1)
	}

	teams, err := config.LoadTeams(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading teams vocabulary: %v\n", err)
		os.Exit(1)
	}
	parserCfg := parser.DefaultConfig()
	parserCfg.KnownTeams = teams
	p := parser.New(parserCfg)

	var out output
	for _, group := range bot.SplitParlays(text) {
		pl, err := parlay.Parse(group, *stake, p)
		if err != nil {
			continue
		}
		a, err := analysis.AnalyzeParlay(pl)
		if err != nil {
			continue
		}
		out.Parlays = append(out.Parlays, a)
	}

	if len(out.Parlays) == 0 {
		fmt.Fprintln(os.Stderr, "no valid bets found in input")
		os.Exit(1)
	}

	if len(out.Parlays) > 1 {
		res, err := portfolio.Analyze(out.Parlays)
		if err != nil {
			fmt.Fprintf(os.Stderr, "portfolio analysis: %v\n", err)
			os.Exit(1)
		}
		out.Portfolio = &res
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encoding output: %v\n", err)
		os.Exit(1)
	}
}

func readInput(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(file)
	return string(data), err
}
