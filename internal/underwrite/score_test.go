package underwrite

import (
	"math"
	"testing"

	"github.com/airevector/aire/pkg/models"
)

func TestBaseWeightsSumToOne(t *testing.T) {
	for _, env := range []models.RateEnvironment{models.RateEnvHigh, models.RateEnvNormal, "weird"} {
		w := BaseWeights(env)
		sum := 0.0
		for _, m := range models.AllMetrics() {
			sum += w.Of(m)
		}
		approx(t, "sum("+string(env)+")", sum, 1.0, 1e-9)
	}

	// Anything other than HIGH is NORMAL.
	if BaseWeights("weird") != BaseWeights(models.RateEnvNormal) {
		t.Error("unknown regime should fall back to NORMAL weights")
	}
	if BaseWeights(models.RateEnvHigh).Cashflow != 0.32 {
		t.Error("HIGH regime should weight cashflow at 0.32")
	}
}

func TestNormalizedScoreRenormalization(t *testing.T) {
	// Only yield and location present under the HIGH regime:
	// yield 0.10/0.22, location 0.12/0.22.
	metrics := models.MetricSet{
		models.MetricYield:    1.0,
		models.MetricLocation: 1.0,
	}
	_, norm := NormalizedScore(metrics, BaseWeights(models.RateEnvHigh))

	approx(t, "yield weight", norm[models.MetricYield], 0.10/0.22, 1e-9)
	approx(t, "location weight", norm[models.MetricLocation], 0.12/0.22, 1e-9)
}

func TestNormalizedScoreWeightConservation(t *testing.T) {
	weights := BaseWeights(models.RateEnvNormal)
	subsets := []models.MetricSet{
		{models.MetricAIRisk: 1.0},
		{models.MetricCashflow: 0.4, models.MetricAIRisk: 1.0},
		{
			models.MetricCashflow: 0.5, models.MetricDownside: 0.7,
			models.MetricLocation: 0.74, models.MetricYield: 0.6,
			models.MetricLiquidity: 0.9, models.MetricOptionality: 0.6,
			models.MetricAIRisk: 1.0,
		},
	}
	for _, metrics := range subsets {
		_, norm := NormalizedScore(metrics, weights)
		sum := 0.0
		for _, w := range norm {
			sum += w
		}
		approx(t, "normalized weight sum", sum, 1.0, 1e-9)
	}
}

func TestNormalizedScoreBounds(t *testing.T) {
	weights := BaseWeights(models.RateEnvHigh)

	full := models.MetricSet{}
	for _, m := range models.AllMetrics() {
		full[m] = 1.0
	}
	score, _ := NormalizedScore(full, weights)
	approx(t, "max score", score, 100, 1e-9)

	zero := models.MetricSet{}
	for _, m := range models.AllMetrics() {
		zero[m] = 0.0
	}
	score, _ = NormalizedScore(zero, weights)
	approx(t, "min score", score, 0, 1e-9)

	score, _ = NormalizedScore(models.MetricSet{}, weights)
	if score != 0 {
		t.Errorf("empty metric set should score 0, got %v", score)
	}
}

func TestAvailableMetrics(t *testing.T) {
	d := sampleDeal()
	nums := ComputeNumbers(d)
	metrics := AvailableMetrics(d, nums, allIncluded())

	if _, ok := metrics[models.MetricAIRisk]; !ok {
		t.Fatal("ai_risk must always be present")
	}
	if metrics[models.MetricAIRisk] != 1.0 {
		t.Errorf("ai_risk = %v, want 1.0", metrics[models.MetricAIRisk])
	}
	if metrics[models.MetricOptionality] != 0.60 {
		t.Errorf("optionality = %v, want the 0.60 placeholder", metrics[models.MetricOptionality])
	}

	approx(t, "cashflow", metrics[models.MetricCashflow], *nums.DSCRStress/1.50, 1e-12)
	approx(t, "downside", metrics[models.MetricDownside], (560000.0/500000.0)/1.20, 1e-12)
	approx(t, "location", metrics[models.MetricLocation], 0.74, 1e-12)
	approx(t, "yield", metrics[models.MetricYield], 0.05952/0.10, 1e-12)
	approx(t, "liquidity", metrics[models.MetricLiquidity], 1-32.0/180.0, 1e-12)

	for m, v := range metrics {
		if v < 0 || v > 1 {
			t.Errorf("metric %s = %v outside [0,1]", m, v)
		}
	}
}

func TestAvailableMetricsModuleGating(t *testing.T) {
	d := sampleDeal()
	nums := ComputeNumbers(d)
	metrics := AvailableMetrics(d, nums, models.ModuleSet{models.ModuleYield})

	if len(metrics) != 2 {
		t.Fatalf("expected yield + ai_risk only, got %v", metrics)
	}
	if _, ok := metrics[models.MetricYield]; !ok {
		t.Error("yield missing despite included module and available cap rate")
	}
}

func TestAvailableMetricsLiquidityFloor(t *testing.T) {
	d := sampleDeal()
	d.DaysOnMarket = models.Int(400) // beyond the 180-day window
	metrics := AvailableMetrics(d, ComputeNumbers(d), allIncluded())
	if metrics[models.MetricLiquidity] != 0 {
		t.Errorf("liquidity = %v, want floor at 0", metrics[models.MetricLiquidity])
	}
}

func TestConfidenceFromCoverage(t *testing.T) {
	// Minimum: nothing included, only ai_risk present.
	conf := ConfidenceFromCoverage(models.MetricSet{models.MetricAIRisk: 1}, models.ModuleSet{})
	approx(t, "floor confidence", conf, 0.35, 1e-9)

	// Full coverage hits the 0.95 ceiling:
	// 0.35 + 0.10 + 0.18 + 0.14 + 0.10 + 0.05 + 0.05 = 0.97 -> 0.95.
	d := sampleDeal()
	metrics := AvailableMetrics(d, ComputeNumbers(d), allIncluded())
	conf = ConfidenceFromCoverage(metrics, allIncluded())
	approx(t, "ceiling confidence", conf, 0.95, 1e-9)

	// Partial coverage: 3 of 7 modules, yield only.
	included := models.ModuleSet{models.ModuleRentPrice, models.ModuleExpenses, models.ModuleYield}
	conf = ConfidenceFromCoverage(models.MetricSet{
		models.MetricYield:  0.6,
		models.MetricAIRisk: 1.0,
	}, included)
	approx(t, "partial confidence", conf, 0.35+0.10*(3.0/7.0)+0.14, 1e-9)

	if conf < 0.35 || conf > 0.95 {
		t.Errorf("confidence %v outside [0.35, 0.95]", conf)
	}
}

func TestGradeLadder(t *testing.T) {
	tests := []struct {
		score   float64
		killed  bool
		grade   string
		verdict string
	}{
		{95, false, "A", "STRONG BUY"},
		{90, false, "A", "STRONG BUY"},
		{85, false, "B", "BUY"},
		{75, false, "C", "WATCH"},
		{65, false, "D", "SPECULATIVE"},
		{40, false, "F", "PASS"},
		{99, true, "F", "PASS"}, // kill switch dominates any score
	}
	for _, tt := range tests {
		g, v := GradeFor(tt.score, tt.killed)
		if g != tt.grade || v != tt.verdict {
			t.Errorf("GradeFor(%v, killed=%v) = %s/%s, want %s/%s",
				tt.score, tt.killed, g, v, tt.grade, tt.verdict)
		}
	}
}

func TestNarrative(t *testing.T) {
	d := sampleDeal()
	d.MonthlyRent = models.Float(9000) // strong DSCR and cap rate
	nums := ComputeNumbers(d)
	strengths, risks := Narrative(d, nums, nil, allIncluded())

	if len(strengths) == 0 || len(strengths) > 4 {
		t.Errorf("strengths count %d outside 1..4", len(strengths))
	}
	if len(risks) != 1 || risks[0] != "No major risk flags detected with the selected inputs." {
		t.Errorf("expected the neutral risk placeholder, got %v", risks)
	}

	// With no qualifying strengths, the neutral placeholder appears.
	empty := models.Deal{PropertyType: models.Land, Address: "parcel 9"}
	strengths, _ = Narrative(empty, ComputeNumbers(empty), nil, allIncluded())
	if len(strengths) != 1 || strengths[0] != "Neutral strength profile; upside depends on better data and execution." {
		t.Errorf("expected the neutral strength placeholder, got %v", strengths)
	}
}

func TestFinalScoreBound(t *testing.T) {
	// Penalties can never push a score below zero or above 100.
	for _, base := range []float64{0, 12.5, 55, 100} {
		for _, penalty := range []float64{0, 0.2, 0.35} {
			final := math.Max(base*(1-penalty), 0)
			if final < 0 || final > 100 {
				t.Errorf("final score %v outside [0,100]", final)
			}
		}
	}
}
