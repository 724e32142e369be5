package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kdkiss/ai-sports-betting-agent/internal/odds"
)

var (
	playerTeamRe = regexp.MustCompile(`(?i)^(.+?)\s*\(([A-Za-z]{2,4})\)`)
	oddsChangeRe = regexp.MustCompile(`(?i)odds have (?:changed|increased|decreased) from\s+\S+\s+to\s+([+-]?\d+(?:\.\d+)?(?:/\d+)?)`)
	signedNumRe  = regexp.MustCompile(`[+-]\d+(?:\.\d+)?`)
	overUnderRe  = regexp.MustCompile(`(?i)\b(over|under)\s+(\d+(?:\.\d+)?)`)
	moneylineRe  = regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z .'-]*?)\s+ML\b`)
	spreadRe     = regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z .'-]*?)\s+([+-]\d+(?:\.\d+)?)\b`)
	bareNumRe    = regexp.MustCompile(`^~?\d+(?:\.\d{2})?$`)
	plainNumRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Parser performs a tolerant line-by-line scan of free slip text, emitting
// zero or more BetLeg records. Partial bets are dropped, never guessed.
type Parser struct {
	cfg Config
}

// New creates a Parser with the given configuration.
func New(cfg Config) *Parser {
	if cfg.LookAhead <= 0 {
		cfg.LookAhead = 2
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = 85
	}
	if cfg.MaxTeams <= 0 {
		cfg.MaxTeams = 2
	}
	return &Parser{cfg: cfg}
}

// accumulator is the "current bet" opened by a bet-type anchor. It is only
// converted to a BetLeg once a valid odds token closes it.
type accumulator struct {
	betType  BetType
	team     string
	propType string
	line     float64
	hasLine  bool
	odds     float64
	stale    int
}

func (a *accumulator) complete() bool {
	return a != nil && a.odds >= 1.0
}

func (a *accumulator) leg() BetLeg {
	team := a.team
	if team == "" {
		team = UnknownTeam
	}
	return BetLeg{
		TeamOrPlayer: team,
		BetType:      a.betType,
		Line:         a.line,
		HasLine:      a.hasLine,
		Odds:         a.odds,
		PropType:     a.propType,
	}
}

// Parse scans text and returns every fully recognized bet leg in discovery
// order. Lines it cannot interpret are skipped; anchors that never meet a
// valid odds token are discarded.
func (p *Parser) Parse(text string) []BetLeg {
	lines := splitLines(text)

	var legs []BetLeg
	var cur *accumulator

	for _, raw := range lines {
		line := p.repair(strings.ToLower(raw))

		if p.isMetadata(line) {
			continue
		}

		// Line-movement phrase: the new odds value closes the open bet.
		if m := oddsChangeRe.FindStringSubmatch(line); m != nil {
			if cur != nil {
				p.absorbOddsToken(cur, m[1])
				if cur.complete() {
					legs = append(legs, cur.leg())
					cur = nil
				}
			}
			continue
		}

		if next, ok := p.detectAnchor(raw, line, cur != nil); ok {
			// A new anchor closes the previous accumulator; if it
			// never found odds, it is dropped rather than completed
			// with defaults.
			if cur.complete() {
				legs = append(legs, cur.leg())
			}
			cur = next
			p.absorb(cur, raw, line)
			if cur.complete() {
				legs = append(legs, cur.leg())
				cur = nil
			}
			continue
		}

		if cur == nil {
			continue
		}

		if p.absorb(cur, raw, line) {
			cur.stale = 0
		} else {
			cur.stale++
			if cur.stale > p.cfg.LookAhead {
				cur = nil
				continue
			}
		}
		if cur.complete() {
			legs = append(legs, cur.leg())
			cur = nil
		}
	}

	if cur.complete() {
		legs = append(legs, cur.leg())
	}

	p.fillTeams(text, legs)
	p.annotateLeagues(legs)
	return legs
}

// detectAnchor checks whether a line starts a new bet and, if so, returns a
// fresh accumulator typed by the recognized keyword. open reports whether a
// bet is already accumulating, in which case a standalone Over/Under is that
// bet's line value rather than a new totals anchor.
func (p *Parser) detectAnchor(raw, line string, open bool) (*accumulator, bool) {
	switch {
	case strings.Contains(line, "touchdown scorer") || strings.Contains(line, "anytime touchdown") ||
		strings.Contains(line, "1st touchdown") || strings.Contains(line, "to score"):
		return &accumulator{betType: BetPlayerProp, propType: PropTouchdown}, true
	case strings.Contains(line, "passing touchdowns"):
		return &accumulator{betType: BetPlayerProp, propType: PropPassingTD}, true
	case strings.Contains(line, "passing yards"):
		return &accumulator{betType: BetPlayerProp, propType: PropPassingYards}, true
	case strings.Contains(line, "rushing yards"):
		return &accumulator{betType: BetPlayerProp, propType: PropRushingYards}, true
	case strings.Contains(line, "receiving yards"):
		return &accumulator{betType: BetPlayerProp, propType: PropReceivingYards}, true
	case strings.Contains(line, "total points") || strings.Contains(line, "o/u"):
		return &accumulator{betType: BetTotal}, true
	}

	if m := moneylineRe.FindStringSubmatch(raw); m != nil {
		return &accumulator{betType: BetMoneyline, team: strings.TrimSpace(m[1])}, true
	}

	// A standalone Over/Under opens a totals bet; inside an open bet the
	// same phrase is just the line value, handled by absorb instead.
	if !open && overUnderRe.MatchString(line) {
		return &accumulator{betType: BetTotal}, true
	}

	// Spread marker: a signed point value adjacent to a team token.
	// Point values sit well under 50; signed numbers from 100 up are odds.
	if m := spreadRe.FindStringSubmatch(raw); m != nil {
		if pts, err := strconv.ParseFloat(m[2], 64); err == nil && abs(pts) < 50 {
			return &accumulator{
				betType: BetSpread,
				team:    strings.TrimSpace(m[1]),
				line:    pts,
				hasLine: true,
			}, true
		}
	}

	return nil, false
}

// absorb pulls any recognizable bet fields out of a line into the open
// accumulator. Returns true when the line contributed something.
func (p *Parser) absorb(cur *accumulator, raw, line string) bool {
	contributed := false

	if cur.team == "" {
		if m := playerTeamRe.FindStringSubmatch(raw); m != nil {
			cur.team = strings.TrimSpace(m[1])
			contributed = true
		}
	}

	if !cur.hasLine {
		if m := overUnderRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				cur.line = v
				cur.hasLine = true
				contributed = true
			}
		}
	}

	// A plain integer on its own line is the bet's line value when one is
	// still missing and the bet type expects one; it must be claimed
	// before odds absorption or it would be misread as decimal odds.
	if !cur.hasLine && cur.needsLine() && !strings.ContainsAny(line, "+-.") {
		if bareNumRe.MatchString(strings.TrimSpace(line)) {
			if m := plainNumRe.FindString(line); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					cur.line = v
					cur.hasLine = true
					contributed = true
				}
			}
		}
	}

	if cur.odds < 1.0 && p.absorbOddsFromLine(cur, line) {
		contributed = true
	}

	return contributed
}

func (a *accumulator) needsLine() bool {
	switch a.betType {
	case BetTotal, BetSpread:
		return true
	case BetPlayerProp:
		return a.propType != PropTouchdown
	}
	return false
}

// absorbOddsFromLine looks for an odds token anywhere in the line. Signed
// tokens below 100 in magnitude are point spreads, not odds, and are left
// for the spread handling.
func (p *Parser) absorbOddsFromLine(cur *accumulator, line string) bool {
	for _, tok := range signedNumRe.FindAllString(line, -1) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil && abs(v) < 100 {
			continue
		}
		if p.absorbOddsToken(cur, tok) {
			return true
		}
	}

	// A bare numeric line can be a decimal-odds token.
	trimmed := strings.TrimPrefix(strings.TrimSpace(line), "~")
	if bareNumRe.MatchString(trimmed) {
		return p.absorbOddsToken(cur, trimmed)
	}
	return false
}

// absorbOddsToken normalizes one odds candidate. OCR sometimes drops the
// decimal point from percent-like tokens, so bare integers above 50 are
// divided by 100 before normalization. Tokens that do not normalize to a
// finite decimal >= 1.0 are discarded.
func (p *Parser) absorbOddsToken(cur *accumulator, token string) bool {
	token = strings.TrimPrefix(strings.TrimSpace(token), "~")
	if !strings.ContainsAny(token, "+-/.") {
		if v, err := strconv.ParseFloat(token, 64); err == nil && v > 50 {
			token = strconv.FormatFloat(v/100, 'f', -1, 64)
		}
	}
	d := odds.ToDecimal(token)
	if d < 1.0 {
		return false
	}
	cur.odds = d
	return true
}

func (p *Parser) isMetadata(line string) bool {
	for _, kw := range p.cfg.MetadataKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

func (p *Parser) repair(line string) string {
	for from, to := range p.cfg.OCRRepairs {
		line = strings.ReplaceAll(line, from, to)
	}
	return line
}

func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
