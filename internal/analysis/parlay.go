package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/kdkiss/ai-sports-betting-agent/internal/mathutil"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parlay"
)

// Risk tiers. The base tier may carry a "-Low"/"-High" qualifier when the
// average leg strength pulls against the leg count.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ParlayAnalysis aggregates leg scores into one parlay-level rating. Owned
// by exactly one Parlay; computed fresh per request and never persisted.
type ParlayAnalysis struct {
	OverallRating   int     // round(mean leg strength), 1-10
	RiskLevel       string  // Low/Medium/High, optionally "-Low"/"-High" qualified
	ExpectedValue   float64 // percentage, signed
	Stake           float64
	TotalOdds       float64
	Legs            []LegAnalysis
	Recommendations []string
}

// AnalyzeParlay scores every leg and combines the results.
//
// The expected value treats legs as independent with win probability
// strength/10. That proxy is deliberately uncalibrated: it ranks slips
// consistently but is not a payout prediction.
func AnalyzeParlay(pl parlay.Parlay) (ParlayAnalysis, error) {
	if len(pl.Legs) == 0 {
		return ParlayAnalysis{}, parlay.ErrNoValidBets
	}

	legs := make([]LegAnalysis, 0, len(pl.Legs))
	strengths := make([]float64, 0, len(pl.Legs))
	distinctRisks := make(map[string]bool)

	for _, leg := range pl.Legs {
		la := AnalyzeLeg(leg)
		legs = append(legs, la)
		strengths = append(strengths, float64(la.Strength))
		for _, rf := range la.RiskFactors {
			distinctRisks[rf] = true
		}
	}

	avgStrength := mathutil.Mean(strengths)
	rating := mathutil.ClampInt(int(math.Round(avgStrength)), 1, 10)

	winProb := 1.0
	for _, s := range strengths {
		winProb *= s / 10.0
	}
	ev := mathutil.RoundTo((winProb*pl.TotalOdds-1)*100, 2)

	a := ParlayAnalysis{
		OverallRating: rating,
		RiskLevel:     riskLevel(avgStrength, len(pl.Legs), len(distinctRisks)),
		ExpectedValue: ev,
		Stake:         pl.Stake,
		TotalOdds:     pl.TotalOdds,
		Legs:          legs,
	}
	a.Recommendations = recommendations(a, len(distinctRisks))
	return a, nil
}

// riskLevel starts from the leg count (more legs, more ways to lose),
// qualifies by average strength, and is overridden to plain High when the
// distinct risk factors pile up to the leg count or beyond.
func riskLevel(avgStrength float64, numLegs, numRiskFactors int) string {
	base := RiskMedium
	if numLegs >= 4 {
		base = RiskHigh
	} else if numLegs <= 2 {
		base = RiskLow
	}

	if avgStrength >= 7 {
		base += "-Low"
	} else if avgStrength <= 4 {
		base += "-High"
	}

	if numRiskFactors >= numLegs {
		return RiskHigh
	}
	return base
}

func recommendations(a ParlayAnalysis, numRiskFactors int) []string {
	var recs []string

	switch {
	case a.ExpectedValue > 10:
		recs = append(recs, "strong positive expected value")
	case a.ExpectedValue > 5:
		recs = append(recs, "positive expected value")
	case a.ExpectedValue < -10:
		recs = append(recs, "strong negative expected value")
	case a.ExpectedValue < -5:
		recs = append(recs, "negative expected value")
	}

	if n := len(a.Legs); n > 6 {
		recs = append(recs, "very high number of legs, consider splitting into separate bets")
	} else if n > 4 {
		recs = append(recs, "high number of legs increases risk")
	}

	if strings.Contains(a.RiskLevel, RiskHigh) {
		recs = append(recs, "high risk, consider reducing stake")
	} else if a.RiskLevel == RiskLow {
		recs = append(recs, "low risk profile")
	}

	switch {
	case a.OverallRating <= 3:
		recs = append(recs, "very low confidence, consider skipping")
	case a.OverallRating <= 5:
		recs = append(recs, "low confidence, proceed with caution")
	case a.OverallRating >= 8:
		recs = append(recs, "high confidence in selections")
	}

	if numRiskFactors > 0 {
		if numRiskFactors >= len(a.Legs) {
			recs = append(recs, "multiple risk factors identified, strongly consider revising")
		} else {
			recs = append(recs, fmt.Sprintf("%d risk factor(s) identified", numRiskFactors))
		}
	}

	return recs
}
