package parser

import (
	"math"
	"strings"
	"testing"
)

func newTestParser() *Parser {
	return New(DefaultConfig())
}

func TestParseSingleLineBets(t *testing.T) {
	p := newTestParser()

	legs := p.Parse("Lakers ML +150\nCeltics -5.5 -110")
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d: %+v", len(legs), legs)
	}

	ml := legs[0]
	if ml.BetType != BetMoneyline || ml.TeamOrPlayer != "Lakers" {
		t.Errorf("leg 0 = %+v, want Lakers moneyline", ml)
	}
	if math.Abs(ml.Odds-2.5) > 1e-9 {
		t.Errorf("leg 0 odds = %v, want 2.5", ml.Odds)
	}
	if ml.League != "NBA" {
		t.Errorf("leg 0 league = %q, want NBA", ml.League)
	}

	spread := legs[1]
	if spread.BetType != BetSpread || spread.TeamOrPlayer != "Celtics" {
		t.Errorf("leg 1 = %+v, want Celtics spread", spread)
	}
	if !spread.HasLine || math.Abs(spread.Line-(-5.5)) > 1e-9 {
		t.Errorf("leg 1 line = %v, want -5.5", spread.Line)
	}
	if math.Abs(spread.Odds-1.909090909) > 1e-6 {
		t.Errorf("leg 1 odds = %v, want 1.9090...", spread.Odds)
	}
}

func TestParsePlayerProp(t *testing.T) {
	p := newTestParser()

	text := strings.Join([]string{
		"Total Passing Yards",
		"Patrick Mahomes (KC)",
		"Over 280.5",
		"-115",
	}, "\n")

	legs := p.Parse(text)
	if len(legs) != 1 {
		t.Fatalf("expected 1 leg, got %d: %+v", len(legs), legs)
	}
	leg := legs[0]
	if leg.BetType != BetPlayerProp || leg.PropType != PropPassingYards {
		t.Errorf("leg = %+v, want passing yards prop", leg)
	}
	if leg.TeamOrPlayer != "Patrick Mahomes" {
		t.Errorf("player = %q, want Patrick Mahomes", leg.TeamOrPlayer)
	}
	if !leg.HasLine || math.Abs(leg.Line-280.5) > 1e-9 {
		t.Errorf("line = %v, want 280.5", leg.Line)
	}
}

func TestParseTotal(t *testing.T) {
	p := newTestParser()

	legs := p.Parse("Over 45.5 -110")
	if len(legs) != 1 {
		t.Fatalf("expected 1 leg, got %d: %+v", len(legs), legs)
	}
	if legs[0].BetType != BetTotal || !legs[0].HasLine || legs[0].Line != 45.5 {
		t.Errorf("leg = %+v, want total at 45.5", legs[0])
	}
	if legs[0].TeamOrPlayer != UnknownTeam {
		t.Errorf("team = %q, want %q", legs[0].TeamOrPlayer, UnknownTeam)
	}
}

func TestParseSkipsMetadataLines(t *testing.T) {
	p := newTestParser()

	text := strings.Join([]string{
		"Cash Out Available",
		"Lakers ML +150",
		"Risk $50 to win $75",
		"Selection suspended",
	}, "\n")

	legs := p.Parse(text)
	if len(legs) != 1 || legs[0].TeamOrPlayer != "Lakers" {
		t.Fatalf("expected only the Lakers leg, got %+v", legs)
	}
}

func TestParseOddsChangeLineUsesNewOdds(t *testing.T) {
	p := newTestParser()

	text := strings.Join([]string{
		"Anytime Touchdown Scorer",
		"Travis Kelce (KC)",
		"Odds have changed from +120 to +140",
	}, "\n")

	legs := p.Parse(text)
	if len(legs) != 1 {
		t.Fatalf("expected 1 leg, got %d: %+v", len(legs), legs)
	}
	if math.Abs(legs[0].Odds-2.4) > 1e-9 {
		t.Errorf("odds = %v, want 2.4 (from +140)", legs[0].Odds)
	}
}

func TestParseDropsIncompleteBet(t *testing.T) {
	p := newTestParser()

	// A prop anchor with a player but no odds before the next anchor
	// must be dropped, not completed with defaults.
	text := strings.Join([]string{
		"Total Passing Yards",
		"Patrick Mahomes (KC)",
		"Lakers ML +150",
	}, "\n")

	legs := p.Parse(text)
	if len(legs) != 1 || legs[0].BetType != BetMoneyline {
		t.Fatalf("expected only the moneyline leg, got %+v", legs)
	}
}

func TestParseDiscardsStaleAccumulator(t *testing.T) {
	p := newTestParser()

	text := strings.Join([]string{
		"Total Passing Yards",
		"some unrelated chatter",
		"more chatter here",
		"even more chatter",
		"-115",
	}, "\n")

	legs := p.Parse(text)
	if len(legs) != 0 {
		t.Fatalf("expected no legs after accumulator expiry, got %+v", legs)
	}
}

func TestParseUnparseableOddsLegDiscarded(t *testing.T) {
	p := newTestParser()

	legs := p.Parse("Lakers ML abc")
	if len(legs) != 0 {
		t.Fatalf("expected no legs, got %+v", legs)
	}
}

func TestParseOCRPercentRepair(t *testing.T) {
	p := newTestParser()

	// A garbled bare integer above 50 is divided by 100 before
	// normalization: 185 reads as decimal odds 1.85.
	text := strings.Join([]string{
		"Total Points",
		"Over 45.5",
		"185",
	}, "\n")

	legs := p.Parse(text)
	if len(legs) != 1 {
		t.Fatalf("expected 1 leg, got %+v", legs)
	}
	if math.Abs(legs[0].Odds-1.85) > 1e-9 {
		t.Errorf("odds = %v, want 1.85", legs[0].Odds)
	}
}

func TestMatchKnownTeams(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"Exact names", "lakers against celtics tonight", []string{"lakers", "celtics"}},
		{"OCR garbled", "bolbgna over 2.5 goals", []string{"bologna"}},
		{"Nothing known", "two random squads", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.MatchKnownTeams(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("MatchKnownTeams(%q) = %+v, want %v", tt.text, got, tt.expected)
			}
			for i, entry := range got {
				if entry.Name != tt.expected[i] {
					t.Errorf("team %d = %q, want %q", i, entry.Name, tt.expected[i])
				}
			}
		})
	}
}

func TestFuzzyTeamFallback(t *testing.T) {
	p := newTestParser()

	// No team pattern anywhere in the slip: the vocabulary fallback
	// assigns matched teams to team-less legs in discovery order.
	text := strings.Join([]string{
		"lakers game tonight",
		"Over 219.5",
		"-110",
	}, "\n")

	legs := p.Parse(text)
	if len(legs) != 1 {
		t.Fatalf("expected 1 leg, got %+v", legs)
	}
	if legs[0].TeamOrPlayer != "lakers" || legs[0].League != "NBA" {
		t.Errorf("leg = %+v, want lakers/NBA from fuzzy fallback", legs[0])
	}
}

// Re-parsing the parser's own serialized output must yield the same legs.
func TestParseFormatIdempotence(t *testing.T) {
	p := newTestParser()

	text := strings.Join([]string{
		"Lakers ML +150",
		"Celtics -5.5 -110",
		"Over 45.5 -110",
		"Total Passing Yards",
		"Patrick Mahomes (KC)",
		"Over 280.5",
		"-115",
	}, "\n")

	first := p.Parse(text)
	if len(first) != 4 {
		t.Fatalf("expected 4 legs, got %d: %+v", len(first), first)
	}

	second := p.Parse(FormatLegs(first))
	if len(second) != len(first) {
		t.Fatalf("reparse produced %d legs, want %d", len(second), len(first))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.BetType != b.BetType || a.TeamOrPlayer != b.TeamOrPlayer ||
			a.PropType != b.PropType || a.HasLine != b.HasLine {
			t.Errorf("leg %d changed: %+v vs %+v", i, a, b)
		}
		if math.Abs(a.Odds-b.Odds) > 1e-6 || math.Abs(a.Line-b.Line) > 1e-9 {
			t.Errorf("leg %d numbers changed: %+v vs %+v", i, a, b)
		}
	}
}
