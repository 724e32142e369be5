package analysis

import (
	"math"
	"testing"

	"github.com/kdkiss/ai-sports-betting-agent/internal/parlay"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
)

func TestAnalyzeLegOddsAdjustment(t *testing.T) {
	tests := []struct {
		name     string
		odds     float64
		strength int
	}{
		{"Heavy favorite gains a point", 1.3, 6},
		{"Mid range stays at baseline", 1.9, 5},
		{"Boundary 2.5 stays at baseline", 2.5, 5},
		{"Underdog loses a point", 2.6, 4},
		{"Sentinel odds leave baseline alone", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := parser.BetLeg{
				TeamOrPlayer: "Lakers",
				BetType:      parser.BetMoneyline,
				Odds:         tt.odds,
			}
			if got := AnalyzeLeg(leg); got.Strength != tt.strength {
				t.Errorf("Strength = %d, want %d", got.Strength, tt.strength)
			}
		})
	}
}

func TestAnalyzeLegMoneylineFactors(t *testing.T) {
	longshot := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: "Knicks", BetType: parser.BetMoneyline, Odds: 4.0,
	})
	if len(longshot.RiskFactors) == 0 {
		t.Errorf("longshot should carry a risk factor, got %+v", longshot)
	}

	chalk := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: "Chiefs", BetType: parser.BetMoneyline, Odds: 1.1,
	})
	if len(chalk.RiskFactors) == 0 {
		t.Errorf("sub-1.2 favorite should carry a risk factor, got %+v", chalk)
	}

	fair := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: "Eagles", BetType: parser.BetMoneyline, Odds: 1.9,
	})
	if len(fair.RiskFactors) != 0 || len(fair.SafetyFactors) == 0 {
		t.Errorf("mid-range moneyline should be a safety factor, got %+v", fair)
	}
}

func TestAnalyzeLegSpreadMagnitude(t *testing.T) {
	large := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: "Cowboys", BetType: parser.BetSpread,
		Line: -13.5, HasLine: true, Odds: 1.91,
	})
	if len(large.RiskFactors) == 0 {
		t.Errorf("13.5 point spread should be risky, got %+v", large)
	}

	tight := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: "Bills", BetType: parser.BetSpread,
		Line: -2.5, HasLine: true, Odds: 1.91,
	})
	if len(tight.SafetyFactors) == 0 {
		t.Errorf("2.5 point spread should be a safety factor, got %+v", tight)
	}

	missing := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: "Bills", BetType: parser.BetSpread, Odds: 1.91,
	})
	if len(missing.RiskFactors) == 0 {
		t.Errorf("spread without a line should be risky, got %+v", missing)
	}
}

func TestAnalyzeLegPropLineRanges(t *testing.T) {
	tests := []struct {
		name     string
		propType string
		line     float64
		risky    bool
	}{
		{"Passing yards in range", parser.PropPassingYards, 250.5, false},
		{"Passing yards too high", parser.PropPassingYards, 310.5, true},
		{"Passing yards too low", parser.PropPassingYards, 180.5, true},
		{"Receiving yards in range", parser.PropReceivingYards, 60.5, false},
		{"Receiving yards too high", parser.PropReceivingYards, 95.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := parser.BetLeg{
				TeamOrPlayer: "Patrick Mahomes",
				BetType:      parser.BetPlayerProp,
				PropType:     tt.propType,
				Line:         tt.line,
				HasLine:      true,
				Odds:         1.87,
			}
			got := AnalyzeLeg(leg)
			if risky := len(got.RiskFactors) > 0; risky != tt.risky {
				t.Errorf("risky = %v, want %v (%+v)", risky, tt.risky, got)
			}
		})
	}
}

func TestAnalyzeLegTouchdownOdds(t *testing.T) {
	leg := parser.BetLeg{
		TeamOrPlayer: "Travis Kelce",
		BetType:      parser.BetPlayerProp,
		PropType:     parser.PropTouchdown,
		Odds:         2.4,
	}
	if got := AnalyzeLeg(leg); len(got.RiskFactors) == 0 {
		t.Errorf("long touchdown odds should be risky, got %+v", got)
	}
}

func TestAnalyzeLegConfidenceBuckets(t *testing.T) {
	// Unknown player + out-of-range line: two risk factors recorded, but
	// the low bucket needs more than two.
	shaky := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: parser.UnknownTeam,
		BetType:      parser.BetPlayerProp,
		PropType:     parser.PropPassingYards,
		Line:         320.5,
		HasLine:      true,
		Odds:         3.2,
	})
	if len(shaky.RiskFactors) != 2 {
		t.Errorf("RiskFactors = %+v, want 2 entries", shaky.RiskFactors)
	}
	if shaky.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want medium (%+v)", shaky.Confidence, shaky)
	}

	// Clean favorite: no risk factors and strength 6 is still only medium.
	solid := AnalyzeLeg(parser.BetLeg{
		TeamOrPlayer: "Chiefs", BetType: parser.BetMoneyline, Odds: 1.4,
	})
	if solid.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want medium (%+v)", solid.Confidence, solid)
	}
}

func TestAnalyzeParlayTwoLegSlip(t *testing.T) {
	p := parser.New(parser.DefaultConfig())
	pl, err := parlay.Parse("Lakers ML +150\nCeltics -5.5 -110\nWager: $100", 0, p)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	a, err := AnalyzeParlay(pl)
	if err != nil {
		t.Fatalf("AnalyzeParlay returned error: %v", err)
	}

	if a.OverallRating != 5 {
		t.Errorf("OverallRating = %d, want 5", a.OverallRating)
	}
	if a.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q, want Low", a.RiskLevel)
	}
	// 0.5 * 0.5 * (2.5 * 1.9090...) payout multiplier, rounded to 2 places.
	if math.Abs(a.ExpectedValue-19.32) > 1e-9 {
		t.Errorf("ExpectedValue = %v, want 19.32", a.ExpectedValue)
	}
	if a.Stake != 100 {
		t.Errorf("Stake = %v, want 100", a.Stake)
	}
	if len(a.Legs) != 2 {
		t.Errorf("Legs = %d, want 2", len(a.Legs))
	}
}

func TestAnalyzeParlayRiskLevelByLegCount(t *testing.T) {
	mk := func(n int) parlay.Parlay {
		legs := make([]parser.BetLeg, n)
		for i := range legs {
			legs[i] = parser.BetLeg{
				TeamOrPlayer: "Lakers",
				BetType:      parser.BetMoneyline,
				Odds:         1.9,
			}
		}
		pl, err := parlay.Assemble(legs, 100)
		if err != nil {
			t.Fatalf("Assemble(%d legs): %v", n, err)
		}
		return pl
	}

	tests := []struct {
		legs int
		want string
	}{
		{1, RiskLow},
		{2, RiskLow},
		{3, RiskMedium},
		{4, RiskHigh},
		{6, RiskHigh},
	}

	for _, tt := range tests {
		a, err := AnalyzeParlay(mk(tt.legs))
		if err != nil {
			t.Fatalf("AnalyzeParlay: %v", err)
		}
		if a.RiskLevel != tt.want {
			t.Errorf("%d legs: RiskLevel = %q, want %q", tt.legs, a.RiskLevel, tt.want)
		}
	}
}

func TestAnalyzeParlayStrengthQualifiers(t *testing.T) {
	// Three heavy favorites: strength 6 each, avg 6, Medium with no suffix.
	strong := parlay.Parlay{
		Legs: []parser.BetLeg{
			{TeamOrPlayer: "Chiefs", BetType: parser.BetMoneyline, Odds: 1.4},
			{TeamOrPlayer: "Eagles", BetType: parser.BetMoneyline, Odds: 1.4},
			{TeamOrPlayer: "Bills", BetType: parser.BetMoneyline, Odds: 1.4},
		},
		Stake:     100,
		TotalOdds: 1.4 * 1.4 * 1.4,
	}
	a, err := AnalyzeParlay(strong)
	if err != nil {
		t.Fatalf("AnalyzeParlay: %v", err)
	}
	if a.RiskLevel != RiskMedium {
		t.Errorf("RiskLevel = %q, want Medium", a.RiskLevel)
	}

	// Three longshots: strength 4 each and a risk factor per leg, but the
	// risk factors are identical so only one distinct factor counts.
	weak := parlay.Parlay{
		Legs: []parser.BetLeg{
			{TeamOrPlayer: "Knicks", BetType: parser.BetMoneyline, Odds: 4.0},
			{TeamOrPlayer: "Warriors", BetType: parser.BetMoneyline, Odds: 4.0},
			{TeamOrPlayer: "Celtics", BetType: parser.BetMoneyline, Odds: 4.0},
		},
		Stake:     100,
		TotalOdds: 64,
	}
	a, err = AnalyzeParlay(weak)
	if err != nil {
		t.Fatalf("AnalyzeParlay: %v", err)
	}
	if a.RiskLevel != RiskMedium+"-High" {
		t.Errorf("RiskLevel = %q, want Medium-High", a.RiskLevel)
	}
}

func TestAnalyzeParlayRiskFactorOverride(t *testing.T) {
	// Two legs, two distinct risk factors: override to plain High even
	// though two legs would otherwise be Low.
	pl := parlay.Parlay{
		Legs: []parser.BetLeg{
			{TeamOrPlayer: "Knicks", BetType: parser.BetMoneyline, Odds: 4.0},
			{TeamOrPlayer: "Cowboys", BetType: parser.BetSpread, Line: -14.5, HasLine: true, Odds: 1.91},
		},
		Stake:     100,
		TotalOdds: 4.0 * 1.91,
	}
	a, err := AnalyzeParlay(pl)
	if err != nil {
		t.Fatalf("AnalyzeParlay: %v", err)
	}
	if a.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %q, want High override", a.RiskLevel)
	}
}

func TestAnalyzeParlayEmpty(t *testing.T) {
	if _, err := AnalyzeParlay(parlay.Parlay{}); err == nil {
		t.Error("AnalyzeParlay(empty) should error")
	}
}

func TestAnalyzeParlayRecommendationsDeterministic(t *testing.T) {
	pl := parlay.Parlay{
		Legs: []parser.BetLeg{
			{TeamOrPlayer: "Lakers", BetType: parser.BetMoneyline, Odds: 2.5},
			{TeamOrPlayer: "Celtics", BetType: parser.BetSpread, Line: -5.5, HasLine: true, Odds: 1.91},
		},
		Stake:     100,
		TotalOdds: 2.5 * 1.91,
	}

	a1, err := AnalyzeParlay(pl)
	if err != nil {
		t.Fatalf("AnalyzeParlay: %v", err)
	}
	a2, _ := AnalyzeParlay(pl)

	if len(a1.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	if len(a1.Recommendations) != len(a2.Recommendations) {
		t.Fatalf("recommendation count changed between runs")
	}
	for i := range a1.Recommendations {
		if a1.Recommendations[i] != a2.Recommendations[i] {
			t.Errorf("recommendation %d differs: %q vs %q", i, a1.Recommendations[i], a2.Recommendations[i])
		}
	}
}
