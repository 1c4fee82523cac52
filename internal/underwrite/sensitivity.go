package underwrite

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/airevector/aire/pkg/models"
)

// defaultGridSteps is the per-axis resolution when the caller supplies
// spans instead of explicit shock lists.
const defaultGridSteps = 7

// BuildShocks expands the sensitivity parameters into concrete shock
// lists. Explicit lists win; otherwise symmetric linear grids are built
// from the spans.
func BuildShocks(p models.SensitivityParams) (rentShocks, rateShocks []float64) {
	rentShocks = p.RentShocks
	rateShocks = p.RateShocks

	steps := p.Steps
	if steps <= 0 {
		steps = defaultGridSteps
	}

	if len(rentShocks) == 0 {
		span := p.RentSpan
		if span <= 0 {
			span = 0.10
		}
		rentShocks = linspace(-span, span, steps, 2)
	}
	if len(rateShocks) == 0 {
		spanPct := p.RateSpanPct
		if spanPct <= 0 {
			spanPct = 1.00
		}
		// Rate shocks are additive deltas in decimal form.
		rateShocks = linspace(-spanPct/100, spanPct/100, steps, 4)
	}
	return rentShocks, rateShocks
}

// Grid re-runs the full scoring and projection pipeline for every
// (rent shock, rate shock) pair and assembles the score and IRR surfaces.
// Cells are independent, so rows are evaluated in parallel; the output
// keeps the input row/column order.
func Grid(d models.Deal, included models.ModuleSet, env models.RateEnvironment,
	proj models.ProjectionParams, rentShocks, rateShocks []float64) models.SensitivityResult {

	res := models.SensitivityResult{
		RentShocks: rentShocks,
		RateShocks: rateShocks,
		RateLabels: make([]string, len(rateShocks)),
		Scores:     make([][]float64, len(rentShocks)),
		IRRs:       make([][]*float64, len(rentShocks)),
	}
	for j, rs := range rateShocks {
		res.RateLabels[j] = fmt.Sprintf("rate_%+.2f%%", rs*100)
	}

	var g errgroup.Group
	for i, rentShock := range rentShocks {
		i, rentShock := i, rentShock
		g.Go(func() error {
			scores := make([]float64, len(rateShocks))
			irrs := make([]*float64, len(rateShocks))
			for j, rateShock := range rateShocks {
				score, irr := evaluateCell(d, included, env, proj, rentShock, rateShock)
				scores[j] = score
				irrs[j] = irr
			}
			res.Scores[i] = scores
			res.IRRs[i] = irrs
			return nil
		})
	}
	_ = g.Wait() // cells never fail; Wait only synchronizes the rows

	return res
}

// evaluateCell scores one shocked copy of the deal and models its IRR.
func evaluateCell(d models.Deal, included models.ModuleSet, env models.RateEnvironment,
	proj models.ProjectionParams, rentShock, rateShock float64) (float64, *float64) {

	shocked := d.Clone()
	if shocked.MonthlyRent != nil {
		*shocked.MonthlyRent *= 1 + rentShock
	}
	if shocked.InterestRatePct != nil {
		*shocked.InterestRatePct = math.Max(0, *shocked.InterestRatePct+rateShock*100)
	}

	nums := ComputeNumbers(shocked)
	metrics := AvailableMetrics(shocked, nums, included)
	base, _ := NormalizedScore(metrics, BaseWeights(env))
	penalty := Penalty(DetectFlags(shocked, nums, included))
	score := math.Max(base*(1-penalty), 0)

	var irrPct *float64
	model := Project(shocked, nums, proj)
	if model.IRR != nil {
		irrPct = finite(roundTo(*model.IRR*100, 2))
	}
	return roundTo(score, 1), irrPct
}

// linspace returns n evenly spaced points over [lo, hi], each rounded to
// the given number of decimals.
func linspace(lo, hi float64, n, decimals int) []float64 {
	if n <= 1 {
		return []float64{roundTo(lo, decimals)}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = roundTo(lo+step*float64(i), decimals)
	}
	return out
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
