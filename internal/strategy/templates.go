// Package strategy carries the built-in underwriting templates: named
// acquisition strategies bundling an included-module set with default
// assumptions and a target grade. Applying a template fills the gaps in a
// request; it never overrides a value the caller supplied.
package strategy

import (
	"fmt"
	"sort"

	"github.com/airevector/aire/pkg/models"
)

// Defaults are a template's assumption presets. ExpenseRatio expresses
// monthly expenses as a fraction of monthly rent.
type Defaults struct {
	VacancyRate     float64 `json:"vacancy_rate"`
	ExpenseRatio    float64 `json:"expense_ratio"`
	DownPaymentPct  float64 `json:"down_payment_pct"`
	InterestRatePct float64 `json:"interest_rate_pct"`
	TermYears       int     `json:"term_years"`

	Projection models.ProjectionParams `json:"projection"`
}

// Targets describe what a deal should hit for the strategy to pencil.
type Targets struct {
	Grade string  `json:"grade"`
	Score float64 `json:"score"`
}

// Template is a named underwriting strategy preset.
type Template struct {
	Name     string           `json:"name"`
	Included models.ModuleSet `json:"included"`
	Defaults Defaults         `json:"defaults"`
	Targets  Targets          `json:"targets"`
}

// Builtin returns all built-in templates keyed by name.
func Builtin() map[string]Template {
	return map[string]Template{
		"LTR (Long-Term Rental)": {
			Name: "LTR (Long-Term Rental)",
			Included: models.ModuleSet{
				models.ModuleRentPrice, models.ModuleExpenses, models.ModuleVacancy,
				models.ModuleFinancing, models.ModuleYield, models.ModuleLiquidity,
				models.ModuleLastSale, models.ModuleLocation,
			},
			Defaults: Defaults{
				VacancyRate: 0.08, ExpenseRatio: 0.38, DownPaymentPct: 20.0,
				InterestRatePct: 7.25, TermYears: 30,
				Projection: models.ProjectionParams{
					HoldYears: 7, RentGrowth: 0.03, ExpenseGrowth: 0.03,
					Appreciation: 0.03, SaleCostPct: 0.07,
					UseExitCap: false, ExitCapRate: 0.065,
				},
			},
			Targets: Targets{Grade: "B", Score: 80},
		},
		"BRRRR": {
			Name: "BRRRR",
			Included: models.ModuleSet{
				models.ModuleRentPrice, models.ModuleExpenses, models.ModuleVacancy,
				models.ModuleFinancing, models.ModuleYield, models.ModuleDownside,
				models.ModuleLiquidity, models.ModuleLastSale, models.ModuleLocation,
				models.ModuleOptionality,
			},
			Defaults: Defaults{
				VacancyRate: 0.08, ExpenseRatio: 0.40, DownPaymentPct: 25.0,
				InterestRatePct: 7.50, TermYears: 30,
				Projection: models.ProjectionParams{
					HoldYears: 5, RentGrowth: 0.03, ExpenseGrowth: 0.03,
					Appreciation: 0.03, SaleCostPct: 0.07,
					UseExitCap: true, ExitCapRate: 0.070,
				},
			},
			Targets: Targets{Grade: "B", Score: 82},
		},
		"Flip": {
			Name: "Flip",
			Included: models.ModuleSet{
				models.ModuleRentPrice, models.ModuleDownside, models.ModuleLiquidity,
				models.ModuleLastSale, models.ModuleLocation, models.ModuleOptionality,
			},
			Defaults: Defaults{
				VacancyRate: 0.00, ExpenseRatio: 0.00, DownPaymentPct: 100.0,
				InterestRatePct: 0.00, TermYears: 1,
				Projection: models.ProjectionParams{
					HoldYears: 1, RentGrowth: 0, ExpenseGrowth: 0,
					Appreciation: 0.08, SaleCostPct: 0.08,
					UseExitCap: false, ExitCapRate: 0,
				},
			},
			Targets: Targets{Grade: "B", Score: 78},
		},
		"STR (Short-Term Rental)": {
			Name: "STR (Short-Term Rental)",
			Included: models.ModuleSet{
				models.ModuleRentPrice, models.ModuleExpenses, models.ModuleVacancy,
				models.ModuleFinancing, models.ModuleYield, models.ModuleLiquidity,
				models.ModuleLastSale, models.ModuleLocation, models.ModuleRegulation,
			},
			Defaults: Defaults{
				VacancyRate: 0.12, ExpenseRatio: 0.45, DownPaymentPct: 25.0,
				InterestRatePct: 7.50, TermYears: 30,
				Projection: models.ProjectionParams{
					HoldYears: 6, RentGrowth: 0.04, ExpenseGrowth: 0.04,
					Appreciation: 0.03, SaleCostPct: 0.07,
					UseExitCap: false, ExitCapRate: 0.065,
				},
			},
			Targets: Targets{Grade: "B", Score: 82},
		},
	}
}

// Names returns the built-in template names, sorted.
func Names() []string {
	b := Builtin()
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a built-in template by name.
func Get(name string) (Template, error) {
	t, ok := Builtin()[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q (have %v)", name, Names())
	}
	return t, nil
}

// Apply fills the gaps of a request from the template: the included-module
// set when empty, nil deal financing/vacancy fields, derived expenses from
// the expense ratio, and the projection assumptions when absent. Fields
// the caller supplied are left alone.
func (t Template) Apply(req models.Request) models.Request {
	if len(req.Included) == 0 {
		req.Included = t.Included
	}

	d := req.Deal.Clone()
	if d.VacancyRate == nil && d.OccupancyPct == nil {
		d.VacancyRate = models.Float(t.Defaults.VacancyRate)
	}
	if d.MonthlyExpenses == nil && d.MonthlyRent != nil && t.Defaults.ExpenseRatio > 0 {
		d.MonthlyExpenses = models.Float(*d.MonthlyRent * t.Defaults.ExpenseRatio)
	}
	if d.DownPaymentPct == nil {
		d.DownPaymentPct = models.Float(t.Defaults.DownPaymentPct)
	}
	if d.InterestRatePct == nil {
		d.InterestRatePct = models.Float(t.Defaults.InterestRatePct)
	}
	if d.TermYears == nil && t.Defaults.TermYears > 0 {
		d.TermYears = models.Int(t.Defaults.TermYears)
	}
	req.Deal = d

	if req.Projection == nil {
		p := t.Defaults.Projection
		req.Projection = &p
	}
	return req
}
