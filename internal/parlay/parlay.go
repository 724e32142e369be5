// Package parlay assembles parsed bet legs into parlay aggregates.
package parlay

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
)

// ErrNoValidBets is returned when no leg with valid odds survived parsing.
// It means the entire input was unusable and is surfaced to the caller so
// the chat layer can tell the user, never silently replaced with zeros.
var ErrNoValidBets = errors.New("no valid bets found in slip")

// DefaultStake is assumed when the slip carries no explicit wager line and
// the caller supplies none.
const DefaultStake = 100.0

var stakeRe = regexp.MustCompile(`(?i)wager:?\s*\$?(\d+(?:\.\d+)?)`)

// Parlay is an ordered group of bet legs riding on one stake. All legs must
// win for the parlay to pay out; TotalOdds is the decimal-odds product
// across legs (the combined payout multiplier).
type Parlay struct {
	Legs      []parser.BetLeg
	Stake     float64
	TotalOdds float64
}

// Assemble builds a Parlay from legs and a stake. A parlay with zero legs
// is invalid and never constructed; legs carrying sentinel odds make the
// whole parlay unusable.
func Assemble(legs []parser.BetLeg, stake float64) (Parlay, error) {
	if len(legs) == 0 {
		return Parlay{}, ErrNoValidBets
	}
	if stake <= 0 {
		stake = DefaultStake
	}

	total := 1.0
	for _, leg := range legs {
		if leg.Odds < 1.0 {
			return Parlay{}, ErrNoValidBets
		}
		total *= leg.Odds
	}

	return Parlay{Legs: legs, Stake: stake, TotalOdds: total}, nil
}

// Parse is the text entry point: it scans raw slip text with p, extracts an
// explicit "Wager: $X" stake when present (else defaultStake), and
// assembles the result. Parsing-level problems are recovered by omission
// inside the parser; an input with no usable bets at all surfaces as
// ErrNoValidBets.
func Parse(text string, defaultStake float64, p *parser.Parser) (Parlay, error) {
	legs := p.Parse(text)

	stake := defaultStake
	if m := stakeRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			stake = v
		}
	}

	return Assemble(legs, stake)
}
