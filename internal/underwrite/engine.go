package underwrite

import (
	"fmt"
	"math"

	"github.com/airevector/aire/pkg/models"
)

// DefaultProjection returns the stock cash-flow assumptions used when a
// request carries no explicit ones: 5-year hold, 3% growth and
// appreciation, 7% sale costs, appreciation-based exit.
func DefaultProjection() models.ProjectionParams {
	return models.ProjectionParams{
		HoldYears:     5,
		RentGrowth:    0.03,
		ExpenseGrowth: 0.03,
		Appreciation:  0.03,
		SaleCostPct:   0.07,
		UseExitCap:    false,
		ExitCapRate:   0.065,
		DiscountRate:  DefaultDiscountRate,
	}
}

// ValidateRequest rejects caller-contract violations before any
// computation runs. Missing optional fields are never a violation; only
// out-of-domain values are.
func ValidateRequest(req models.Request) error {
	d := req.Deal
	if !d.PropertyType.Valid() {
		return fmt.Errorf("unknown property type %q", d.PropertyType)
	}
	if d.VacancyRate != nil && (*d.VacancyRate < 0 || *d.VacancyRate > 1) {
		return fmt.Errorf("vacancy_rate %v out of range [0,1]", *d.VacancyRate)
	}
	if d.OccupancyPct != nil && (*d.OccupancyPct < 0 || *d.OccupancyPct > 100) {
		return fmt.Errorf("occupancy_pct %v out of range [0,100]", *d.OccupancyPct)
	}
	if d.DaysOnMarket != nil && *d.DaysOnMarket < 0 {
		return fmt.Errorf("days_on_market must be >= 0, got %d", *d.DaysOnMarket)
	}
	if d.TermYears != nil && *d.TermYears <= 0 {
		return fmt.Errorf("term_years must be positive, got %d", *d.TermYears)
	}
	if d.Price != nil && (math.IsNaN(*d.Price) || math.IsInf(*d.Price, 0)) {
		return fmt.Errorf("price must be finite")
	}
	if req.Projection != nil && req.Projection.HoldYears <= 0 {
		return fmt.Errorf("hold_years must be positive, got %d", req.Projection.HoldYears)
	}
	if s := req.Sensitivity; s != nil {
		// Zero means unset; the default grid resolution applies.
		if s.Steps < 0 {
			return fmt.Errorf("sensitivity steps must be non-negative, got %d", s.Steps)
		}
		if s.Projection != nil && s.Projection.HoldYears <= 0 {
			return fmt.Errorf("hold_years must be positive, got %d", s.Projection.HoldYears)
		}
	}
	return nil
}

// Analyze runs the full underwriting pipeline for one request: derived
// numbers, risk flags and kill switch, the renormalized composite score,
// grade and narrative, plus the optional cash-flow projection and the
// optional sensitivity grids.
func Analyze(req models.Request) (*models.Response, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	deal := req.Deal.Normalized()
	env := req.RateEnv
	if env != models.RateEnvHigh {
		env = models.RateEnvNormal
	}

	nums := ComputeNumbers(deal)
	weights := BaseWeights(env)
	metrics := AvailableMetrics(deal, nums, req.Included)
	base, normW := NormalizedScore(metrics, weights)

	flags := DetectFlags(deal, nums, req.Included)
	penalty := Penalty(flags)
	killed := KillSwitch(deal, nums, req.Included)
	final := math.Max(base*(1-penalty), 0)

	grade, verdict := GradeFor(final, killed)
	strengths, risks := Narrative(deal, nums, flags, req.Included)

	resp := &models.Response{
		Grade:       grade,
		Verdict:     verdict,
		Score:       final,
		Confidence:  ConfidenceFromCoverage(metrics, req.Included),
		KillSwitch:  killed,
		Penalty:     penalty,
		RateEnv:     env,
		Numbers:     nums,
		Metrics:     metrics,
		BaseWeights: weights,
		NormWeights: normW,
		Flags:       flags,
		Strengths:   strengths,
		Risks:       risks,
		PriceChange: ComputePriceChange(deal),
	}

	if req.Projection != nil {
		proj := Project(deal, nums, *req.Projection)
		resp.Projection = &proj
	}

	if req.Sensitivity != nil {
		proj := DefaultProjection()
		switch {
		case req.Sensitivity.Projection != nil:
			proj = *req.Sensitivity.Projection
		case req.Projection != nil:
			proj = *req.Projection
		}
		rentShocks, rateShocks := BuildShocks(*req.Sensitivity)
		grid := Grid(deal, req.Included, env, proj, rentShocks, rateShocks)
		resp.Sensitivity = &grid
	}

	return resp, nil
}
