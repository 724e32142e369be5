package bot

import (
	"fmt"
	"strings"

	"github.com/kdkiss/ai-sports-betting-agent/internal/analysis"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
	"github.com/kdkiss/ai-sports-betting-agent/internal/portfolio"
	"github.com/kdkiss/ai-sports-betting-agent/internal/sportsdata"
)

// FormatAnalysis renders one scored parlay as a Telegram Markdown message.
// Core packages return plain data; all presentation lives here.
func FormatAnalysis(a analysis.ParlayAnalysis, commentary string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Parlay Analysis*\n\n")
	fmt.Fprintf(&b, "Rating: *%d/10*\n", a.OverallRating)
	fmt.Fprintf(&b, "Risk: *%s*\n", a.RiskLevel)
	fmt.Fprintf(&b, "Expected value: *%+.1f%%*\n", a.ExpectedValue)
	fmt.Fprintf(&b, "Total odds: %.2f, stake $%.2f, to win $%.2f\n\n", a.TotalOdds, a.Stake, a.Stake*a.TotalOdds)

	for i, leg := range a.Legs {
		fmt.Fprintf(&b, "*Leg %d:* %s %s @ %.2f (strength %d/10, %s)\n",
			i+1, escapeMarkdown(leg.TeamOrPlayer), legTypeLabel(leg.BetType), leg.Odds, leg.Strength, leg.Confidence)
		for _, rf := range leg.RiskFactors {
			fmt.Fprintf(&b, "  ⚠ %s\n", rf)
		}
		for _, sf := range leg.SafetyFactors {
			fmt.Fprintf(&b, "  ✓ %s\n", sf)
		}
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("\n*Recommendations:*\n")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&b, "• %s\n", r)
		}
	}

	if commentary != "" {
		fmt.Fprintf(&b, "\n_%s_\n", escapeMarkdown(commentary))
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatPortfolio renders the multi-parlay result: per-parlay summaries in
// ranked order, allocations, and portfolio-level numbers.
func FormatPortfolio(res portfolio.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Portfolio Analysis* (%d parlays)\n\n", len(res.Parlays))

	for rank, idx := range res.Ranking {
		a := res.Parlays[idx]
		fmt.Fprintf(&b, "*#%d - Parlay %d:* rating %d/10, risk %s, EV %+.1f%%\n",
			rank+1, idx+1, a.OverallRating, a.RiskLevel, a.ExpectedValue)
		fmt.Fprintf(&b, "  Allocation: *%.0f%%* of stake (Kelly %.2f, Sharpe %.2f)\n",
			res.Allocations[idx]*100, res.Metrics[idx].KellyFraction, res.Metrics[idx].SharpeRatio)
	}

	fmt.Fprintf(&b, "\nExpected return: %+.1f%%\n", res.ExpectedReturn*100)
	fmt.Fprintf(&b, "Portfolio risk: %.2f (max drawdown ≈ %.2f)\n", res.Risk, res.MaxDrawdown)
	fmt.Fprintf(&b, "Sharpe: %.2f\n", res.SharpeRatio)

	if len(res.Warnings) > 0 {
		b.WriteString("\n*Warnings:*\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "⚠ %s\n", w)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatTeam renders a /team lookup result.
func FormatTeam(t *sportsdata.Team) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", escapeMarkdown(t.Name))
	fmt.Fprintf(&b, "League: %s\n", t.League)
	if t.Country != "" {
		fmt.Fprintf(&b, "Country: %s\n", t.Country)
	}
	if t.Stadium != "" {
		fmt.Fprintf(&b, "Stadium: %s\n", escapeMarkdown(t.Stadium))
	}
	if t.FormedYear != "" {
		fmt.Fprintf(&b, "Founded: %s\n", t.FormedYear)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", escapeMarkdown(truncate(t.Description, 500)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPlayer renders a /player lookup result.
func FormatPlayer(p *sportsdata.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", escapeMarkdown(p.Name))
	if p.Team != "" {
		fmt.Fprintf(&b, "Team: %s\n", escapeMarkdown(p.Team))
	}
	if p.Position != "" {
		fmt.Fprintf(&b, "Position: %s\n", p.Position)
	}
	if p.Nationality != "" {
		fmt.Fprintf(&b, "Nationality: %s\n", p.Nationality)
	}
	if p.BornDate != "" {
		fmt.Fprintf(&b, "Born: %s\n", p.BornDate)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", escapeMarkdown(truncate(p.Description, 500)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func legTypeLabel(t parser.BetType) string {
	switch t {
	case parser.BetMoneyline:
		return "moneyline"
	case parser.BetSpread:
		return "spread"
	case parser.BetTotal:
		return "total"
	case parser.BetPlayerProp:
		return "player prop"
	}
	return string(t)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
