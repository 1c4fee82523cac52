package underwrite

import (
	"strings"
	"testing"

	"github.com/airevector/aire/pkg/models"
)

func sampleRequest() models.Request {
	return models.Request{
		Deal:     sampleDeal(),
		Included: allIncluded(),
		RateEnv:  models.RateEnvHigh,
	}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	req := sampleRequest()
	req.Deal.MonthlyRent = models.Float(8000) // keep the DSCR rule quiet
	resp, err := Analyze(req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if resp.Score < 0 || resp.Score > 100 {
		t.Errorf("score %v outside [0,100]", resp.Score)
	}
	if resp.Confidence < 0.35 || resp.Confidence > 0.95 {
		t.Errorf("confidence %v outside [0.35,0.95]", resp.Confidence)
	}
	if resp.KillSwitch {
		t.Error("unexpected kill switch on a healthy deal")
	}
	if resp.Numbers.NOIYear == nil || resp.Numbers.CapRate == nil {
		t.Error("expected NOI and cap rate in the numbers bundle")
	}
	if len(resp.NormWeights) != len(resp.Metrics) {
		t.Errorf("normalized weights for %d metrics, want %d", len(resp.NormWeights), len(resp.Metrics))
	}
	if resp.PriceChange == nil {
		t.Error("expected price change with both prices supplied")
	}
	if len(resp.Strengths) == 0 || len(resp.Risks) == 0 {
		t.Error("narrative lists must never be empty")
	}
	if resp.Projection != nil || resp.Sensitivity != nil {
		t.Error("projection/sensitivity must be absent unless requested")
	}
}

func TestAnalyzeKillSwitchDominance(t *testing.T) {
	req := sampleRequest() // sampleDeal's stressed DSCR is below 1.0
	resp, err := Analyze(req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !resp.KillSwitch {
		t.Fatal("expected kill switch")
	}
	if resp.Grade != "F" || resp.Verdict != "PASS" {
		t.Errorf("kill switch must force F/PASS, got %s/%s", resp.Grade, resp.Verdict)
	}
}

func TestAnalyzeGracefulDegradation(t *testing.T) {
	// Removing any single optional field must not fail the run; it only
	// changes which derived entries are absent.
	strip := map[string]func(*models.Deal){
		"price":             func(d *models.Deal) { d.Price = nil },
		"replacement_cost":  func(d *models.Deal) { d.ReplacementCost = nil },
		"days_on_market":    func(d *models.Deal) { d.DaysOnMarket = nil },
		"last_sale_price":   func(d *models.Deal) { d.LastSalePrice = nil },
		"last_sale_date":    func(d *models.Deal) { d.LastSaleDate = nil },
		"monthly_rent":      func(d *models.Deal) { d.MonthlyRent = nil },
		"monthly_expenses":  func(d *models.Deal) { d.MonthlyExpenses = nil },
		"vacancy_rate":      func(d *models.Deal) { d.VacancyRate = nil },
		"down_payment_pct":  func(d *models.Deal) { d.DownPaymentPct = nil },
		"interest_rate_pct": func(d *models.Deal) { d.InterestRatePct = nil },
		"term_years":        func(d *models.Deal) { d.TermYears = nil },
		"job_diversity":     func(d *models.Deal) { d.JobDiversityIndex = nil },
		"regulation_risk":   func(d *models.Deal) { d.RentRegulationRisk = nil },
		"units":             func(d *models.Deal) { d.Units = nil },
		"sqft":              func(d *models.Deal) { d.Sqft = nil },
	}

	for name, remove := range strip {
		t.Run(name, func(t *testing.T) {
			req := sampleRequest()
			req.Projection = ptrProjection(DefaultProjection())
			d := req.Deal.Clone()
			remove(&d)
			req.Deal = d

			resp, err := Analyze(req)
			if err != nil {
				t.Fatalf("Analyze without %s: %v", name, err)
			}
			if resp.Score < 0 || resp.Score > 100 {
				t.Errorf("score %v outside [0,100]", resp.Score)
			}
		})
	}
}

func TestAnalyzeEmptyDeal(t *testing.T) {
	req := models.Request{
		Deal:     models.Deal{PropertyType: models.Land, Address: "parcel 9"},
		Included: allIncluded(),
		RateEnv:  models.RateEnvNormal,
	}
	resp, err := Analyze(req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// Only optionality and the ai_risk anchor can be present.
	if len(resp.Metrics) != 2 {
		t.Errorf("expected 2 metrics on an empty deal, got %v", resp.Metrics)
	}
	if resp.Confidence < 0.35 {
		t.Errorf("confidence %v below floor", resp.Confidence)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Request)
	}{
		{"unknown property type", func(r *models.Request) { r.Deal.PropertyType = "Castle" }},
		{"vacancy out of range", func(r *models.Request) { r.Deal.VacancyRate = models.Float(1.5) }},
		{"occupancy out of range", func(r *models.Request) { r.Deal.OccupancyPct = models.Float(120) }},
		{"negative days on market", func(r *models.Request) { r.Deal.DaysOnMarket = models.Int(-3) }},
		{"zero term", func(r *models.Request) { r.Deal.TermYears = models.Int(0) }},
		{"non-positive hold years", func(r *models.Request) {
			p := DefaultProjection()
			p.HoldYears = 0
			r.Projection = &p
		}},
		{"negative sensitivity steps", func(r *models.Request) {
			r.Sensitivity = &models.SensitivityParams{Steps: -1}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.mutate(&req)
			if _, err := Analyze(req); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestSensitivityStepsBoundary(t *testing.T) {
	req := sampleRequest()
	req.Sensitivity = &models.SensitivityParams{Steps: -1}
	if _, err := Analyze(req); err == nil || !strings.Contains(err.Error(), "non-negative") {
		t.Errorf("negative steps: err = %v, want non-negative message", err)
	}

	// Zero means unset and falls back to the default grid resolution.
	req.Sensitivity = &models.SensitivityParams{Steps: 0}
	resp, err := Analyze(req)
	if err != nil {
		t.Fatalf("zero steps: %v", err)
	}
	if got := len(resp.Sensitivity.RentShocks); got != 7 {
		t.Errorf("zero steps grid width = %d, want the default 7", got)
	}
}

func TestAnalyzeWithProjectionAndSensitivity(t *testing.T) {
	req := sampleRequest()
	proj := DefaultProjection()
	req.Projection = &proj
	req.Sensitivity = &models.SensitivityParams{
		RentShocks: []float64{-0.05, 0, 0.05},
		RateShocks: []float64{0, 0.005},
	}

	resp, err := Analyze(req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Projection == nil {
		t.Fatal("expected a projection result")
	}
	if len(resp.Projection.Cashflows) != proj.HoldYears+1 {
		t.Errorf("projection series length %d, want %d", len(resp.Projection.Cashflows), proj.HoldYears+1)
	}
	if resp.Sensitivity == nil {
		t.Fatal("expected sensitivity grids")
	}
	if len(resp.Sensitivity.Scores) != 3 || len(resp.Sensitivity.Scores[0]) != 2 {
		t.Errorf("grid shape %dx%d, want 3x2",
			len(resp.Sensitivity.Scores), len(resp.Sensitivity.Scores[0]))
	}
}

func TestAnalyzeUnknownRateEnvFallsBack(t *testing.T) {
	req := sampleRequest()
	req.RateEnv = "SIDEWAYS"
	resp, err := Analyze(req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.RateEnv != models.RateEnvNormal {
		t.Errorf("rate env %q, want fallback to NORMAL", resp.RateEnv)
	}
	if resp.BaseWeights != BaseWeights(models.RateEnvNormal) {
		t.Error("expected NORMAL base weights")
	}
}

func ptrProjection(p models.ProjectionParams) *models.ProjectionParams { return &p }
