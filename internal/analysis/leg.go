// Package analysis scores bet legs and parlays with odds-derived
// heuristics. Everything here is pure computation over already-parsed
// records; no I/O and no external lookups.
package analysis

import (
	"github.com/kdkiss/ai-sports-betting-agent/internal/mathutil"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
)

// Confidence buckets for a single leg.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Line thresholds for prop sanity checks. Lines outside the typical range
// need either an exceptional performance or survive on thin volume.
const (
	passingYardsHigh   = 280
	passingYardsLow    = 200
	receivingYardsHigh = 80
	receivingYardsLow  = 40
	spreadLarge        = 10
	spreadClose        = 3
)

// LegAnalysis is the per-leg risk score. Owned by exactly one BetLeg and
// immutable once created.
type LegAnalysis struct {
	TeamOrPlayer  string
	BetType       parser.BetType
	League        string
	Odds          float64
	Strength      int // 1-10, baseline 5
	Confidence    string
	RiskFactors   []string
	SafetyFactors []string
}

// AnalyzeLeg scores a single leg. Baseline strength is 5, adjusted by the
// odds (favorites up, underdogs down) and clamped to [1,10]. Bet-type rules
// contribute risk and safety factors that drive the confidence bucket.
func AnalyzeLeg(leg parser.BetLeg) LegAnalysis {
	a := LegAnalysis{
		TeamOrPlayer: leg.TeamOrPlayer,
		BetType:      leg.BetType,
		League:       leg.League,
		Odds:         leg.Odds,
		Strength:     5,
		Confidence:   ConfidenceMedium,
	}

	switch leg.BetType {
	case parser.BetMoneyline:
		analyzeMoneyline(leg, &a)
	case parser.BetSpread:
		analyzeSpread(leg, &a)
	case parser.BetTotal:
		analyzeTotal(leg, &a)
	case parser.BetPlayerProp:
		analyzeProp(leg, &a)
	}

	a.Strength = mathutil.ClampInt(a.Strength+oddsAdjustment(leg.Odds), 1, 10)

	switch {
	case len(a.RiskFactors) > 2:
		a.Confidence = ConfidenceLow
	case len(a.RiskFactors) == 0 && a.Strength >= 7:
		a.Confidence = ConfidenceHigh
	}

	return a
}

// oddsAdjustment nudges strength by the market's own view: heavy favorites
// (decimal < 1.5, roughly -200 American and shorter) gain a point,
// underdogs past 2.5 (+150 and longer) lose one.
func oddsAdjustment(odds float64) int {
	switch {
	case odds <= 0:
		return 0
	case odds < 1.5:
		return 1
	case odds > 2.5:
		return -1
	}
	return 0
}

func analyzeMoneyline(leg parser.BetLeg, a *LegAnalysis) {
	switch {
	case leg.Odds > 3.0:
		a.RiskFactors = append(a.RiskFactors, "high underdog odds")
	case leg.Odds < 1.2:
		a.RiskFactors = append(a.RiskFactors, "very low favorite odds leave no value")
	default:
		a.SafetyFactors = append(a.SafetyFactors, "reasonable odds range")
	}
}

func analyzeSpread(leg parser.BetLeg, a *LegAnalysis) {
	if !leg.HasLine {
		a.RiskFactors = append(a.RiskFactors, "no spread value specified")
		return
	}
	points := leg.Line
	if points < 0 {
		points = -points
	}
	switch {
	case points > spreadLarge:
		a.RiskFactors = append(a.RiskFactors, "large spread increases variance")
	case points < spreadClose:
		a.SafetyFactors = append(a.SafetyFactors, "competitive matchup")
	}
}

func analyzeTotal(leg parser.BetLeg, a *LegAnalysis) {
	if !leg.HasLine {
		a.RiskFactors = append(a.RiskFactors, "no total line specified")
	}
}

func analyzeProp(leg parser.BetLeg, a *LegAnalysis) {
	if leg.TeamOrPlayer == parser.UnknownTeam {
		a.RiskFactors = append(a.RiskFactors, "no player specified")
	}

	switch leg.PropType {
	case parser.PropPassingYards:
		checkLineRange(leg, a, passingYardsLow, passingYardsHigh,
			"low passing yards line vulnerable to run-heavy gameplan",
			"high passing yards line requires exceptional performance")
	case parser.PropReceivingYards:
		checkLineRange(leg, a, receivingYardsLow, receivingYardsHigh,
			"low receiving yards line could still miss with limited targets",
			"high receiving yards line requires consistent targets")
	case parser.PropTouchdown:
		if leg.Odds > 2.0 {
			a.RiskFactors = append(a.RiskFactors, "high odds suggest lower touchdown probability")
		}
	default:
		if !leg.HasLine {
			a.RiskFactors = append(a.RiskFactors, "incomplete prop details")
		}
	}
}

func checkLineRange(leg parser.BetLeg, a *LegAnalysis, low, high float64, lowMsg, highMsg string) {
	if !leg.HasLine {
		a.RiskFactors = append(a.RiskFactors, "incomplete prop details")
		return
	}
	switch {
	case leg.Line > high:
		a.RiskFactors = append(a.RiskFactors, highMsg)
	case leg.Line < low:
		a.RiskFactors = append(a.RiskFactors, lowMsg)
	default:
		a.SafetyFactors = append(a.SafetyFactors, "line within typical range")
	}
}
