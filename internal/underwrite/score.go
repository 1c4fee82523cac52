package underwrite

import (
	"math"

	"github.com/airevector/aire/pkg/models"
)

// Normalization ceilings for the metric derivations.
const (
	dscrCeiling     = 1.50 // stress DSCR at or above this scores a full 1.0
	downsideCeiling = 1.20 // replacement-cost-to-price ratio ceiling
	yieldCeiling    = 0.10 // cap rate ceiling
	staleDOM        = 180.0
)

// BaseWeights returns the fixed weight table for a rate environment. The
// weights always sum to 1.0 across all seven metrics; anything other than
// HIGH is treated as NORMAL.
func BaseWeights(env models.RateEnvironment) models.Weights {
	if env == models.RateEnvHigh {
		return models.Weights{
			Cashflow: 0.32, Downside: 0.25, Location: 0.12, Yield: 0.10,
			Liquidity: 0.10, Optionality: 0.06, AIRisk: 0.05,
		}
	}
	return models.Weights{
		Cashflow: 0.28, Downside: 0.20, Location: 0.12, Yield: 0.15,
		Liquidity: 0.10, Optionality: 0.10, AIRisk: 0.05,
	}
}

// AvailableMetrics derives the metric set from the deal and its numbers.
// A metric is present only when its module is included and its driving
// value exists. ai_risk is always present at 1.0 so renormalization never
// divides by an empty set.
func AvailableMetrics(d models.Deal, nums models.Numbers, included models.ModuleSet) models.MetricSet {
	metrics := models.MetricSet{}

	if included.Includes(models.ModuleFinancing) && nums.DSCRStress != nil {
		metrics[models.MetricCashflow] = clamp01(*nums.DSCRStress / dscrCeiling)
	}

	if included.Includes(models.ModuleDownside) &&
		d.ReplacementCost != nil && d.Price != nil && *d.Price > 0 {
		metrics[models.MetricDownside] = clamp01((*d.ReplacementCost / *d.Price) / downsideCeiling)
	}

	if included.Includes(models.ModuleLocation) && d.JobDiversityIndex != nil {
		metrics[models.MetricLocation] = clamp01(*d.JobDiversityIndex)
	}

	if included.Includes(models.ModuleYield) && nums.CapRate != nil {
		metrics[models.MetricYield] = clamp01(*nums.CapRate / yieldCeiling)
	}

	if included.Includes(models.ModuleLiquidity) && d.DaysOnMarket != nil {
		metrics[models.MetricLiquidity] = math.Max(0, 1-float64(*d.DaysOnMarket)/staleDOM)
	}

	if included.Includes(models.ModuleOptionality) {
		// Placeholder constant until an optionality model exists.
		metrics[models.MetricOptionality] = 0.60
	}

	metrics[models.MetricAIRisk] = 1.0
	return metrics
}

// NormalizedScore renormalizes the base weights over the available metric
// subset and returns the 0-100 composite plus the normalized weights. The
// engine never penalizes a deal for data the caller chose not to supply;
// the weight mass is redistributed over what is present.
func NormalizedScore(metrics models.MetricSet, weights models.Weights) (float64, map[models.Metric]float64) {
	denom := 0.0
	for _, m := range models.AllMetrics() {
		if _, ok := metrics[m]; ok {
			denom += weights.Of(m)
		}
	}
	if denom == 0 {
		denom = 1.0
	}

	norm := make(map[models.Metric]float64, len(metrics))
	score := 0.0
	for _, m := range models.AllMetrics() {
		v, ok := metrics[m]
		if !ok {
			continue
		}
		nw := weights.Of(m) / denom
		norm[m] = nw
		score += v * nw
	}
	return score * 100, norm
}

// ConfidenceFromCoverage maps input coverage to a confidence level in
// [0.35, 0.95]: a coverage base plus fixed bonuses for the metrics that
// carry the most signal.
func ConfidenceFromCoverage(metrics models.MetricSet, included models.ModuleSet) float64 {
	conf := 0.35 + 0.10*math.Min(float64(len(included))/7.0, 1.0)

	bonuses := map[models.Metric]float64{
		models.MetricCashflow:  0.18,
		models.MetricYield:     0.14,
		models.MetricDownside:  0.10,
		models.MetricLiquidity: 0.05,
		models.MetricLocation:  0.05,
	}
	for m, b := range bonuses {
		if _, ok := metrics[m]; ok {
			conf += b
		}
	}

	return math.Max(0.35, math.Min(conf, 0.95))
}

// GradeFor maps a final score to a letter grade and verdict. A fired kill
// switch dominates unconditionally.
func GradeFor(score float64, killed bool) (string, string) {
	if killed {
		return "F", "PASS"
	}
	switch {
	case score >= 90:
		return "A", "STRONG BUY"
	case score >= 80:
		return "B", "BUY"
	case score >= 70:
		return "C", "WATCH"
	case score >= 60:
		return "D", "SPECULATIVE"
	}
	return "F", "PASS"
}

// Narrative emits up to 4 strength bullets and up to 5 risk bullets from
// fixed threshold checks plus the detected flags. Independent of the score.
func Narrative(d models.Deal, nums models.Numbers, flags []models.Flag, included models.ModuleSet) (strengths, risks []string) {
	for _, f := range flags {
		risks = append(risks, f.Message)
	}

	if included.Includes(models.ModuleFinancing) &&
		nums.DSCRStress != nil && *nums.DSCRStress >= 1.25 {
		strengths = append(strengths, "Strong stress-tested coverage (DSCR >= 1.25).")
	}
	if included.Includes(models.ModuleYield) &&
		nums.CapRate != nil && *nums.CapRate >= 0.07 {
		strengths = append(strengths, "Healthy cap rate relative to price and expenses.")
	}
	if included.Includes(models.ModuleDownside) &&
		d.ReplacementCost != nil && d.Price != nil && *d.ReplacementCost >= *d.Price {
		strengths = append(strengths, "Downside buffer: at/below replacement cost.")
	}
	if included.Includes(models.ModuleLiquidity) &&
		d.DaysOnMarket != nil && *d.DaysOnMarket <= 45 {
		strengths = append(strengths, "Liquidity profile looks solid (faster exit).")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Neutral strength profile; upside depends on better data and execution.")
	}
	if len(risks) == 0 {
		risks = append(risks, "No major risk flags detected with the selected inputs.")
	}

	if len(strengths) > 4 {
		strengths = strengths[:4]
	}
	if len(risks) > 5 {
		risks = risks[:5]
	}
	return strengths, risks
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
