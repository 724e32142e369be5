package parser

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchKnownTeams scans individual words of text against the known-teams
// vocabulary using a string-similarity ratio. A word is accepted when its
// similarity exceeds the configured threshold; ties break by vocabulary
// order. At most MaxTeams distinct teams are returned.
func (p *Parser) MatchKnownTeams(text string) []TeamEntry {
	if len(p.cfg.KnownTeams) == 0 {
		return nil
	}

	var found []TeamEntry
	seen := make(map[string]bool)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,:;!?()[]$")
		if len(word) < 3 {
			continue
		}
		for _, entry := range p.cfg.KnownTeams {
			if seen[entry.Name] {
				continue
			}
			if similarityPct(word, strings.ToLower(entry.Name)) > p.cfg.SimilarityThreshold {
				found = append(found, entry)
				seen[entry.Name] = true
				break
			}
		}
		if len(found) >= p.cfg.MaxTeams {
			break
		}
	}
	return found
}

// similarityPct is a 0-100 similarity ratio based on Levenshtein distance.
func similarityPct(a, b string) int {
	if a == b {
		return 100
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (longest - dist) * 100 / longest
}

// fillTeams runs the fuzzy fallback when the scan attributed no team to any
// leg: matched vocabulary teams are assigned to team-less legs in discovery
// order, the rest stay Unknown.
func (p *Parser) fillTeams(text string, legs []BetLeg) {
	for _, leg := range legs {
		if leg.TeamOrPlayer != UnknownTeam && leg.TeamOrPlayer != "" {
			return
		}
	}

	teams := p.MatchKnownTeams(text)
	for i := range legs {
		if len(teams) == 0 {
			return
		}
		if legs[i].TeamOrPlayer == UnknownTeam || legs[i].TeamOrPlayer == "" {
			legs[i].TeamOrPlayer = teams[0].Name
			legs[i].League = teams[0].League
			teams = teams[1:]
		}
	}
}

// annotateLeagues fills in the league for legs whose team token matches a
// vocabulary entry.
func (p *Parser) annotateLeagues(legs []BetLeg) {
	for i := range legs {
		if legs[i].League != "" || legs[i].TeamOrPlayer == UnknownTeam {
			continue
		}
		name := strings.ToLower(legs[i].TeamOrPlayer)
		for _, entry := range p.cfg.KnownTeams {
			if similarityPct(name, strings.ToLower(entry.Name)) > p.cfg.SimilarityThreshold {
				legs[i].League = entry.League
				break
			}
		}
	}
}
