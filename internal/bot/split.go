package bot

import (
	"regexp"
	"strings"
)

// parlayHeaderRe matches "Parlay 1:" / "Ticket 2:" style headers that
// bettors use to separate slips inside one message. Text after the colon
// belongs to the new group.
var parlayHeaderRe = regexp.MustCompile(`(?i)^\s*(?:parlay|ticket)\s*#?\s*\d+\s*:\s*(.*)$`)

// SplitParlays breaks one message into per-parlay text blocks. Groups are
// separated by blank lines or by explicit parlay headers; empty groups are
// dropped. A message with no separators comes back as a single block.
func SplitParlays(text string) []string {
	var groups []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}

		if m := parlayHeaderRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			if rest := strings.TrimSpace(m[1]); rest != "" {
				current = append(current, rest)
			}
			continue
		}

		current = append(current, line)
	}
	flush()

	return groups
}
