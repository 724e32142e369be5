// Package portfolio allocates stake across multiple already-scored parlays.
// It treats each parlay as one asset: pairwise correlation from shared
// teams, leagues, and bet types, a tier-based risk score, and a Kelly-style
// allocation shrunk for correlated pairs.
package portfolio

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kdkiss/ai-sports-betting-agent/internal/analysis"
	"github.com/kdkiss/ai-sports-betting-agent/internal/mathutil"
)

// ErrIncompleteInput is returned when a ParlayAnalysis lacks the fields the
// engine needs (rating, risk level, legs). That is a caller contract
// violation and is surfaced rather than patched with defaults.
var ErrIncompleteInput = errors.New("incomplete parlay analysis input")

// Numeric risk scores per tier. Qualified levels ("High-Low") map by their
// base tier.
const (
	riskScoreLow    = 0.5
	riskScoreMedium = 1.0
	riskScoreHigh   = 2.0
)

// correlationShrinkThreshold is the pairwise correlation above which both
// allocations are shrunk.
const correlationShrinkThreshold = 0.5

// maxDrawdownMultiplier approximates a 99th-percentile loss under a normal
// assumption. A heuristic, not a rigorous VaR.
const maxDrawdownMultiplier = 2.33

// ParlayMetrics carries the per-parlay risk-adjusted numbers.
type ParlayMetrics struct {
	RiskScore     float64
	SharpeRatio   float64
	KellyFraction float64
}

// Result is the full portfolio picture over the input parlays. Slices are
// indexed in input order; Ranking holds input indices sorted best first.
type Result struct {
	Parlays        []analysis.ParlayAnalysis
	Correlation    [][]float64
	Metrics        []ParlayMetrics
	Allocations    []float64
	ExpectedReturn float64
	Risk           float64
	SharpeRatio    float64
	MaxDrawdown    float64
	Warnings       []string
	Ranking        []int
}

// Analyze runs the portfolio computation over already-scored parlays. It is
// pure and synchronous; enrichment and fan-out happen in the caller before
// this point.
func Analyze(analyses []analysis.ParlayAnalysis) (Result, error) {
	if len(analyses) == 0 {
		return Result{}, ErrIncompleteInput
	}
	for i, a := range analyses {
		if a.OverallRating < 1 || a.RiskLevel == "" || len(a.Legs) == 0 {
			return Result{}, fmt.Errorf("%w: parlay %d", ErrIncompleteInput, i)
		}
	}

	corr := CorrelationMatrix(analyses)
	metrics := riskMetrics(analyses)
	allocs := allocate(metrics, corr)

	res := Result{
		Parlays:     analyses,
		Correlation: corr,
		Metrics:     metrics,
		Allocations: allocs,
		Ranking:     rank(analyses, metrics),
	}

	risks := make([]float64, len(metrics))
	for i, m := range metrics {
		res.ExpectedReturn += allocs[i] * evFraction(analyses[i])
		risks[i] = m.RiskScore
	}

	var variance float64
	for i := range analyses {
		for j := range analyses {
			variance += allocs[i] * allocs[j] * corr[i][j] * risks[i] * risks[j]
		}
	}
	res.Risk = math.Sqrt(variance)
	if res.Risk > 0 {
		res.SharpeRatio = res.ExpectedReturn / res.Risk
	}
	res.MaxDrawdown = res.Risk * maxDrawdownMultiplier

	res.Warnings = warnings(res)
	return res, nil
}

// CorrelationMatrix builds the symmetric N by N matrix with diagonal 1.0.
// A pair scores +0.3 for any shared team, +0.2 for a shared league and
// +0.1 for a shared bet type, capped at 1.0. Overlap is binary, not
// proportional.
func CorrelationMatrix(analyses []analysis.ParlayAnalysis) [][]float64 {
	n := len(analyses)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := pairCorrelation(analyses[i], analyses[j])
			m[i][j] = c
			m[j][i] = c
		}
	}
	return m
}

func pairCorrelation(a, b analysis.ParlayAnalysis) float64 {
	var c float64
	if sharesAny(teams(a), teams(b)) {
		c += 0.3
	}
	if sharesAny(leagues(a), leagues(b)) {
		c += 0.2
	}
	if sharesAny(betTypes(a), betTypes(b)) {
		c += 0.1
	}
	return mathutil.Clamp(c, 0, 1)
}

func teams(a analysis.ParlayAnalysis) map[string]bool {
	s := make(map[string]bool)
	for _, leg := range a.Legs {
		if leg.TeamOrPlayer != "" {
			s[strings.ToLower(leg.TeamOrPlayer)] = true
		}
	}
	return s
}

func leagues(a analysis.ParlayAnalysis) map[string]bool {
	s := make(map[string]bool)
	for _, leg := range a.Legs {
		if leg.League != "" {
			s[leg.League] = true
		}
	}
	return s
}

func betTypes(a analysis.ParlayAnalysis) map[string]bool {
	s := make(map[string]bool)
	for _, leg := range a.Legs {
		s[string(leg.BetType)] = true
	}
	return s
}

func sharesAny(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}

// riskScore maps a qualified risk level to its numeric tier by base prefix.
func riskScore(level string) float64 {
	switch {
	case strings.HasPrefix(level, analysis.RiskLow):
		return riskScoreLow
	case strings.HasPrefix(level, analysis.RiskHigh):
		return riskScoreHigh
	default:
		return riskScoreMedium
	}
}

// evFraction converts the percent expected value back to a fraction for the
// risk-adjusted metrics.
func evFraction(a analysis.ParlayAnalysis) float64 {
	return a.ExpectedValue / 100.0
}

func riskMetrics(analyses []analysis.ParlayAnalysis) []ParlayMetrics {
	out := make([]ParlayMetrics, len(analyses))
	for i, a := range analyses {
		risk := riskScore(a.RiskLevel)
		ev := evFraction(a)
		confidence := float64(a.OverallRating) / 10.0
		out[i] = ParlayMetrics{
			RiskScore:     risk,
			SharpeRatio:   ev / risk,
			KellyFraction: ev * confidence / risk,
		}
	}
	return out
}

// allocate turns Kelly fractions into weights summing to 1. Negative Kelly
// values are floored at zero; when nothing positive remains the weights fall
// back to equal. Pairs correlated above the threshold shrink both weights by
// (1 - corr*0.5) before a final renormalization.
func allocate(metrics []ParlayMetrics, corr [][]float64) []float64 {
	n := len(metrics)
	allocs := make([]float64, n)

	var total float64
	for i, m := range metrics {
		if m.KellyFraction > 0 {
			allocs[i] = m.KellyFraction
			total += m.KellyFraction
		}
	}
	if total <= 0 {
		for i := range allocs {
			allocs[i] = 1.0 / float64(n)
		}
	} else {
		for i := range allocs {
			allocs[i] /= total
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if corr[i][j] > correlationShrinkThreshold {
				shrink := 1.0 - corr[i][j]*0.5
				allocs[i] *= shrink
				allocs[j] *= shrink
			}
		}
	}

	total = 0
	for _, a := range allocs {
		total += a
	}
	if total > 0 {
		for i := range allocs {
			allocs[i] /= total
		}
	}
	return allocs
}

// rank orders parlays best first by a composite of expected value and
// risk-adjusted return. The sort is stable so equal scores keep input order.
func rank(analyses []analysis.ParlayAnalysis, metrics []ParlayMetrics) []int {
	idx := make([]int, len(analyses))
	for i := range idx {
		idx[i] = i
	}
	score := func(i int) float64 {
		return 0.7*evFraction(analyses[i]) + 0.3*metrics[i].SharpeRatio
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return score(idx[a]) > score(idx[b])
	})
	return idx
}

func warnings(r Result) []string {
	var w []string

	if r.Risk > 0.2 {
		w = append(w, "portfolio risk is elevated, reduce position sizes")
	}
	for i, a := range r.Allocations {
		if a > 0.3 {
			w = append(w, fmt.Sprintf("large position detected in parlay %d", i+1))
			break
		}
	}

	maxCorr := 0.0
	hi, hj := -1, -1
	for i := range r.Correlation {
		for j := i + 1; j < len(r.Correlation); j++ {
			if r.Correlation[i][j] > maxCorr {
				maxCorr = r.Correlation[i][j]
				hi, hj = i, j
			}
		}
	}
	if maxCorr > 0.7 {
		w = append(w, "highly correlated parlays make the portfolio less diversified than it appears")
		w = append(w, fmt.Sprintf("consider hedging parlay %d against parlay %d or dropping one", hi+1, hj+1))
	}

	if r.ExpectedReturn < 0 {
		w = append(w, "negative expected return, consider skipping this portfolio")
	}
	if r.SharpeRatio < 0.5 {
		w = append(w, "low risk-adjusted return")
	}

	return w
}
