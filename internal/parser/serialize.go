package parser

import (
	"fmt"
	"strings"

	"github.com/kdkiss/ai-sports-betting-agent/internal/odds"
)

var propTitles = map[string]string{
	PropTouchdown:      "Anytime Touchdown Scorer",
	PropPassingYards:   "Total Passing Yards",
	PropPassingTD:      "Total Passing Touchdowns",
	PropRushingYards:   "Total Rushing Yards",
	PropReceivingYards: "Total Receiving Yards",
}

// FormatLeg renders a leg back to canonical slip lines. Re-parsing the
// formatted output of a well-formed parse yields the same legs.
func FormatLeg(leg BetLeg) string {
	oddsTok := formatOdds(leg.Odds)

	switch leg.BetType {
	case BetMoneyline:
		return fmt.Sprintf("%s ML %s", leg.TeamOrPlayer, oddsTok)
	case BetSpread:
		return fmt.Sprintf("%s %+g %s", leg.TeamOrPlayer, leg.Line, oddsTok)
	case BetTotal:
		return fmt.Sprintf("Over %g %s", leg.Line, oddsTok)
	case BetPlayerProp:
		title := propTitles[leg.PropType]
		if title == "" {
			title = "Player Prop"
		}
		lines := []string{title, fmt.Sprintf("%s (UNK)", leg.TeamOrPlayer)}
		if leg.HasLine {
			lines = append(lines, fmt.Sprintf("Over %g", leg.Line))
		}
		lines = append(lines, oddsTok)
		return strings.Join(lines, "\n")
	}
	return ""
}

// FormatLegs renders a whole leg list, one bet per block.
func FormatLegs(legs []BetLeg) string {
	parts := make([]string, 0, len(legs))
	for _, leg := range legs {
		parts = append(parts, FormatLeg(leg))
	}
	return strings.Join(parts, "\n")
}

func formatOdds(decimal float64) string {
	if american := odds.DecimalToAmerican(decimal); american != 0 {
		return fmt.Sprintf("%+d", american)
	}
	return fmt.Sprintf("%.2f", decimal)
}
