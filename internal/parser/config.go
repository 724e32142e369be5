package parser

// Config carries the parser's tolerance data. The heuristics that used to
// differ between slip layouts are configuration, not separate code paths.
type Config struct {
	// MetadataKeywords mark UI chrome lines that never contain a bet.
	// Matched as case-insensitive substrings.
	MetadataKeywords []string

	// OCRRepairs is applied to each lowercased line before keyword
	// detection, fixing merged or garbled tokens seen in OCR output.
	OCRRepairs map[string]string

	// LookAhead is how many non-contributing lines an open bet accumulator
	// survives before it is discarded as incomplete.
	LookAhead int

	// SimilarityThreshold is the percentage above which a word is accepted
	// as a known team name during the fuzzy fallback.
	SimilarityThreshold int

	// MaxTeams caps how many distinct teams are retained per input.
	MaxTeams int

	// KnownTeams is the optional external vocabulary for the fuzzy
	// fallback and league annotation.
	KnownTeams []TeamEntry
}

// DefaultConfig returns the parser configuration used by the bot.
func DefaultConfig() Config {
	return Config{
		MetadataKeywords: []string{
			"risk", "to win", "bet max", "selection", "cash out",
			"in-play", "same game parlay", "sgp", "available",
			"suspended",
		},
		OCRRepairs: map[string]string{
			"t0 score":    "to score",
			"bothteams":   "both teams",
			"drawno bet":  "draw no bet",
			"match gcals": "match goals",
		},
		LookAhead:           2,
		SimilarityThreshold: 85,
		MaxTeams:            2,
		KnownTeams:          DefaultTeams(),
	}
}

// DefaultTeams is the built-in vocabulary used when no external teams file
// is configured. Small on purpose: the fallback only fires when the slip
// carried no recognizable team at all.
func DefaultTeams() []TeamEntry {
	return []TeamEntry{
		{Name: "lakers", League: "NBA"},
		{Name: "celtics", League: "NBA"},
		{Name: "warriors", League: "NBA"},
		{Name: "knicks", League: "NBA"},
		{Name: "chiefs", League: "NFL"},
		{Name: "eagles", League: "NFL"},
		{Name: "cowboys", League: "NFL"},
		{Name: "bills", League: "NFL"},
		{Name: "juventus", League: "Serie A"},
		{Name: "napoli", League: "Serie A"},
		{Name: "bologna", League: "Serie A"},
		{Name: "atalanta", League: "Serie A"},
	}
}
