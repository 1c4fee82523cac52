package models

// PropertyType classifies the asset being underwritten.
type PropertyType string

const (
	Multifamily  PropertyType = "Multifamily"
	SingleFamily PropertyType = "Single Family"
	Office       PropertyType = "Office"
	Retail       PropertyType = "Retail"
	Industrial   PropertyType = "Industrial"
	Land         PropertyType = "Land"
)

// PropertyTypes returns all supported property types.
func PropertyTypes() []PropertyType {
	return []PropertyType{Multifamily, SingleFamily, Office, Retail, Industrial, Land}
}

// Valid reports whether the property type is one of the supported values.
func (pt PropertyType) Valid() bool {
	switch pt {
	case Multifamily, SingleFamily, Office, Retail, Industrial, Land:
		return true
	}
	return false
}

// Module identifies an underwriting input module. A module that is not
// included in a request suppresses both its metric contribution and its
// risk checks.
type Module string

const (
	ModuleRentPrice   Module = "Rent & Price"
	ModuleExpenses    Module = "Expenses"
	ModuleVacancy     Module = "Vacancy"
	ModuleFinancing   Module = "Financing"
	ModuleYield       Module = "Yield"
	ModuleDownside    Module = "Downside"
	ModuleLiquidity   Module = "Liquidity"
	ModuleLocation    Module = "Location"
	ModuleRegulation  Module = "Regulation"
	ModuleLastSale    Module = "Last Sale"
	ModuleOptionality Module = "Optionality"
)

// AllModules returns every underwriting module in display order.
func AllModules() []Module {
	return []Module{
		ModuleRentPrice, ModuleExpenses, ModuleVacancy, ModuleFinancing,
		ModuleYield, ModuleDownside, ModuleLiquidity, ModuleLocation,
		ModuleRegulation, ModuleLastSale, ModuleOptionality,
	}
}

// ModuleSet is an ordered selection of included modules.
type ModuleSet []Module

// Includes reports whether the module is part of the set.
func (ms ModuleSet) Includes(m Module) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

// RateEnvironment is the macro rate regime driving base weights.
type RateEnvironment string

const (
	RateEnvHigh   RateEnvironment = "HIGH"
	RateEnvNormal RateEnvironment = "NORMAL"
)

// Deal is the canonical underwriting input. The engine accepts partial
// data; every field other than PropertyType and Address is optional, and
// scoring weights are re-normalized to what is provided.
type Deal struct {
	PropertyType PropertyType `json:"property_type"`
	Address      string       `json:"address"`

	// Deal basics
	Price           *float64 `json:"price,omitempty"`
	ReplacementCost *float64 `json:"replacement_cost,omitempty"`
	DaysOnMarket    *int     `json:"days_on_market,omitempty"`
	LastSalePrice   *float64 `json:"last_sale_price,omitempty"`
	LastSaleDate    *string  `json:"last_sale_date,omitempty"` // opaque label, never parsed

	// Income / Ops
	MonthlyRent     *float64 `json:"monthly_rent,omitempty"`
	MonthlyExpenses *float64 `json:"monthly_expenses,omitempty"`
	VacancyRate     *float64 `json:"vacancy_rate,omitempty"`  // fraction 0-1
	OccupancyPct    *float64 `json:"occupancy_pct,omitempty"` // percent 0-100; overrides vacancy when set

	// Income overrides (institutional pro-forma inputs)
	NOIAnnualOverride  *float64 `json:"noi_annual_override,omitempty"`
	CapRateOverridePct *float64 `json:"cap_rate_override_pct,omitempty"`

	// Financing
	DownPaymentPct  *float64 `json:"down_payment_pct,omitempty"` // 0-100
	InterestRatePct *float64 `json:"interest_rate_pct,omitempty"`
	TermYears       *int     `json:"term_years,omitempty"`

	// Location / Policy
	JobDiversityIndex  *float64 `json:"job_diversity_index,omitempty"` // 0-1 proxy
	RentRegulationRisk *bool    `json:"rent_regulation_risk,omitempty"`

	// Size (carried for display / future use)
	Units *int     `json:"units,omitempty"`
	Sqft  *float64 `json:"sqft,omitempty"`
}

// Normalized returns a copy with the occupancy precedence applied: when
// occupancy_pct is present and vacancy_rate is not, vacancy is derived as
// 1 - occupancy/100. An explicit vacancy_rate always survives untouched.
func (d Deal) Normalized() Deal {
	if d.VacancyRate == nil && d.OccupancyPct != nil {
		vac := 1.0 - *d.OccupancyPct/100.0
		if vac < 0 {
			vac = 0
		}
		if vac > 1 {
			vac = 1
		}
		d.VacancyRate = &vac
	}
	return d
}

// Clone returns a deep copy of the deal. Shock scenarios mutate the copy
// without touching the caller's record.
func (d Deal) Clone() Deal {
	c := d
	c.Price = copyFloat(d.Price)
	c.ReplacementCost = copyFloat(d.ReplacementCost)
	c.DaysOnMarket = copyInt(d.DaysOnMarket)
	c.LastSalePrice = copyFloat(d.LastSalePrice)
	c.LastSaleDate = copyStr(d.LastSaleDate)
	c.MonthlyRent = copyFloat(d.MonthlyRent)
	c.MonthlyExpenses = copyFloat(d.MonthlyExpenses)
	c.VacancyRate = copyFloat(d.VacancyRate)
	c.OccupancyPct = copyFloat(d.OccupancyPct)
	c.NOIAnnualOverride = copyFloat(d.NOIAnnualOverride)
	c.CapRateOverridePct = copyFloat(d.CapRateOverridePct)
	c.DownPaymentPct = copyFloat(d.DownPaymentPct)
	c.InterestRatePct = copyFloat(d.InterestRatePct)
	c.TermYears = copyInt(d.TermYears)
	c.JobDiversityIndex = copyFloat(d.JobDiversityIndex)
	c.RentRegulationRisk = copyBool(d.RentRegulationRisk)
	c.Units = copyInt(d.Units)
	c.Sqft = copyFloat(d.Sqft)
	return c
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Float returns a pointer to v, for building deals with optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Str returns a pointer to v.
func Str(v string) *string { return &v }
