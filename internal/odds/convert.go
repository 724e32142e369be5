package odds

import (
	"math"
	"strconv"
	"strings"

	"github.com/kdkiss/ai-sports-betting-agent/internal/mathutil"
)

// Unparseable is the sentinel returned when a token cannot be converted.
// Callers must treat it as "discard this token", never as a valid price.
const Unparseable = 0.0

// ToDecimal converts an odds token to decimal odds, auto-detecting format.
// Handles:
// - American odds: +150 → 2.50, -110 → 1.9090...
// - Fractional odds: 5/2 → 3.50
// - Decimal odds: 2.50 → 2.50 (used as-is)
//
// Returns Unparseable (0.0) for malformed input, division by zero, or a
// non-finite result. Conversion failure is always a sentinel return so the
// parser can keep scanning remaining lines.
func ToDecimal(token string) float64 {
	s := strings.TrimSpace(token)
	if s == "" {
		return Unparseable
	}

	if strings.Contains(s, "/") {
		parts := strings.SplitN(s, "/", 2)
		num, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		den, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil || den == 0 {
			return Unparseable
		}
		return sanitize(num/den + 1)
	}

	if strings.HasPrefix(s, "+") {
		v, err := strconv.ParseFloat(s[1:], 64)
		if err != nil || v == 0 {
			return Unparseable
		}
		return sanitize(v/100 + 1)
	}

	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseFloat(s[1:], 64)
		if err != nil || v == 0 {
			return Unparseable
		}
		return sanitize(100/v + 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Unparseable
	}
	return sanitize(v)
}

func sanitize(d float64) float64 {
	if !mathutil.IsFinite(d) {
		return Unparseable
	}
	return d
}

// DecimalToAmerican converts decimal odds back to American odds.
// Example: 2.50 → +150, 1.9090... → -110. Returns 0 for d <= 1.0.
func DecimalToAmerican(d float64) int {
	if d <= 1.0 || !mathutil.IsFinite(d) {
		return 0
	}
	if d >= 2.0 {
		return int(math.Round((d - 1) * 100))
	}
	return -int(math.Round(100 / (d - 1)))
}

// DecimalToImplied converts decimal odds to the implied win probability.
// Example: 2.50 → 0.40 (40%). Returns 0 for invalid input.
func DecimalToImplied(d float64) float64 {
	if d < 1.0 || !mathutil.IsFinite(d) {
		return 0
	}
	return 1 / d
}

// AmericanToImplied converts American odds to implied probability.
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func AmericanToImplied(american int) float64 {
	if american == 0 {
		return 0
	}
	if american > 0 {
		return 100.0 / (float64(american) + 100.0)
	}
	return math.Abs(float64(american)) / (math.Abs(float64(american)) + 100.0)
}
