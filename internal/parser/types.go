package parser

// BetType classifies a single wager line.
type BetType string

const (
	BetMoneyline  BetType = "moneyline"
	BetSpread     BetType = "spread"
	BetTotal      BetType = "total"
	BetPlayerProp BetType = "player_prop"
)

// Prop types recognized by the parser.
const (
	PropTouchdown      = "touchdown"
	PropPassingYards   = "passing_yards"
	PropPassingTD      = "passing_td"
	PropRushingYards   = "rushing_yards"
	PropReceivingYards = "receiving_yards"
)

// UnknownTeam is used when no team or player could be attributed to a leg.
const UnknownTeam = "Unknown"

// BetLeg is one structured wager extracted from slip text.
// Odds is always decimal and >= 1.0; legs whose odds token could not be
// normalized are never emitted.
type BetLeg struct {
	TeamOrPlayer string
	BetType      BetType
	Line         float64
	HasLine      bool
	Odds         float64
	PropType     string
	League       string
}

// TeamEntry is one known-teams vocabulary entry.
type TeamEntry struct {
	Name   string `json:"name"`
	League string `json:"league"`
}
