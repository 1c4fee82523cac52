package underwrite

import "github.com/airevector/aire/pkg/models"

// DetectFlags evaluates the heuristic risk conditions against the deal and
// its derived numbers. Each check is gated on its module being included
// and its required fields being present, so the result order is fixed and
// duplicates cannot occur.
func DetectFlags(d models.Deal, nums models.Numbers, included models.ModuleSet) []models.Flag {
	var flags []models.Flag
	add := func(code models.FlagCode) {
		flags = append(flags, models.Flag{Code: code, Message: code.Message()})
	}

	if included.Includes(models.ModuleRentPrice) &&
		d.MonthlyRent != nil && d.Price != nil && *d.Price > 0 {
		grossYield := (*d.MonthlyRent * 12) / *d.Price
		if grossYield > 0.14 {
			add(models.FlagAggressiveRent)
		}
	}

	if included.Includes(models.ModuleVacancy) &&
		d.VacancyRate != nil && *d.VacancyRate < 0.05 {
		add(models.FlagOptimisticVacancy)
	}

	if included.Includes(models.ModuleExpenses) &&
		d.MonthlyExpenses != nil && d.MonthlyRent != nil &&
		*d.MonthlyExpenses < *d.MonthlyRent*0.20 {
		add(models.FlagUnderstatedExpense)
	}

	if included.Includes(models.ModuleYield) &&
		nums.CapRate != nil && *nums.CapRate < 0.045 {
		add(models.FlagLowCapRate)
	}

	if included.Includes(models.ModuleRegulation) &&
		d.RentRegulationRisk != nil && *d.RentRegulationRisk {
		add(models.FlagRegulatoryRisk)
	}

	return flags
}

// maxPenalty caps the cumulative flag penalty.
const maxPenalty = 0.35

// Penalty sums the point values carried by the detected flags, capped at 0.35.
func Penalty(flags []models.Flag) float64 {
	total := 0.0
	for _, f := range flags {
		total += f.Code.Penalty()
	}
	if total > maxPenalty {
		return maxPenalty
	}
	return total
}

// KillSwitch reports whether the deal is hard-failed regardless of score:
// stressed coverage below 1.0x, active rent regulation, or stale listing.
func KillSwitch(d models.Deal, nums models.Numbers, included models.ModuleSet) bool {
	if included.Includes(models.ModuleFinancing) &&
		nums.DSCRStress != nil && *nums.DSCRStress < 1.0 {
		return true
	}
	if included.Includes(models.ModuleRegulation) &&
		d.RentRegulationRisk != nil && *d.RentRegulationRisk {
		return true
	}
	if included.Includes(models.ModuleLiquidity) &&
		d.DaysOnMarket != nil && *d.DaysOnMarket > 180 {
		return true
	}
	return false
}
