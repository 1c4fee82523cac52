package config

import "github.com/airevector/aire/pkg/models"

// Conversions from the config representation to the engine's request types.

// RateEnvironment returns the configured default rate regime.
func (e EngineConfig) RateEnvironment() models.RateEnvironment {
	if e.RateEnv == string(models.RateEnvHigh) {
		return models.RateEnvHigh
	}
	return models.RateEnvNormal
}

// ModuleSet returns the configured default included modules, dropping any
// name that is not a known module.
func (e EngineConfig) ModuleSet() models.ModuleSet {
	var ms models.ModuleSet
	for _, name := range e.Modules {
		for _, m := range models.AllModules() {
			if name == string(m) {
				ms = append(ms, m)
				break
			}
		}
	}
	return ms
}

// ProjectionParams returns the configured default cash-flow assumptions.
func (e EngineConfig) ProjectionParams() models.ProjectionParams {
	return models.ProjectionParams{
		HoldYears:     e.Projection.HoldYears,
		RentGrowth:    e.Projection.RentGrowth,
		ExpenseGrowth: e.Projection.ExpenseGrowth,
		Appreciation:  e.Projection.Appreciation,
		SaleCostPct:   e.Projection.SaleCostPct,
		UseExitCap:    e.Projection.UseExitCap,
		ExitCapRate:   e.Projection.ExitCapRate,
		DiscountRate:  e.Projection.DiscountRate,
	}
}

// SensitivityParams returns the configured default shock grid.
func (e EngineConfig) SensitivityParams() models.SensitivityParams {
	return models.SensitivityParams{
		RentSpan:    e.Shocks.RentSpan,
		RateSpanPct: e.Shocks.RateSpanPct,
		Steps:       e.Shocks.Steps,
	}
}
