// Package underwrite implements the deal scoring and financial projection
// engine: derived financial ratios, the weighted composite grade with
// kill-switch rules, the levered cash-flow model, and the rent/rate shock
// sensitivity grids.
//
// Every function in this package is pure and stateless. Missing inputs
// never raise; each derived value is independently gated on its own
// prerequisites and comes back nil when they are not met.
package underwrite

import (
	"math"

	"github.com/airevector/aire/pkg/models"
)

// defaultVacancy is assumed whenever a vacancy rate was not supplied.
// Applied independently at each use site so a future per-computation
// override stays a local change.
const defaultVacancy = 0.08

// MonthlyPayment computes the fixed-rate amortized monthly payment.
// A non-positive rate degrades to straight-line principal/n, which keeps
// 0% seller-financed notes out of the division-by-zero path.
func MonthlyPayment(principal, annualRatePct float64, termYears int) float64 {
	r := (annualRatePct / 100) / 12
	n := termYears * 12
	if n < 1 {
		n = 1
	}
	if r <= 0 {
		return principal / float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return principal * (r * growth) / (growth - 1)
}

// ComputeNumbers derives the Numbers bundle from whatever subset of the
// deal is populated. NOI source priority: explicit annual override, cap
// rate override against price, then the rent/expense build-up.
func ComputeNumbers(d models.Deal) models.Numbers {
	var nums models.Numbers

	switch {
	case d.NOIAnnualOverride != nil:
		nums.NOIYear = finite(*d.NOIAnnualOverride)
	case d.CapRateOverridePct != nil && d.Price != nil && *d.Price > 0:
		nums.NOIYear = finite(*d.Price * (*d.CapRateOverridePct / 100))
	case d.MonthlyRent != nil && d.MonthlyExpenses != nil:
		vac := defaultVacancy
		if d.VacancyRate != nil {
			vac = *d.VacancyRate
		}
		effRent := *d.MonthlyRent * (1 - vac)
		nums.NOIYear = finite((effRent - *d.MonthlyExpenses) * 12)
	}

	if nums.NOIYear != nil && d.Price != nil && *d.Price > 0 {
		nums.CapRate = finite(*nums.NOIYear / *d.Price)
	}

	if d.Price != nil && *d.Price > 0 && d.DownPaymentPct != nil &&
		d.InterestRatePct != nil && d.TermYears != nil {
		loanAmount := *d.Price * (1 - *d.DownPaymentPct/100)
		pay := MonthlyPayment(loanAmount, *d.InterestRatePct, *d.TermYears)
		nums.LoanPayment = finite(pay)

		if nums.LoanPayment != nil && nums.NOIYear != nil {
			noiMonth := *nums.NOIYear / 12
			nums.CashFlowMonth = finite(noiMonth - pay)

			cashInvested := *d.Price * (*d.DownPaymentPct / 100)
			if nums.CashFlowMonth != nil && cashInvested > 0 {
				nums.CoCReturn = finite(*nums.CashFlowMonth * 12 / cashInvested)
			}
		}

		if nums.LoanPayment != nil && d.MonthlyRent != nil && d.MonthlyExpenses != nil {
			vac := defaultVacancy
			if d.VacancyRate != nil {
				vac = *d.VacancyRate
			}
			stressedRent := *d.MonthlyRent * 0.80 * (1 - vac)
			stressedNOIMonth := stressedRent - *d.MonthlyExpenses
			nums.DSCRStress = finite(stressedNOIMonth / math.Max(pay, 1.0))
		}
	}

	return nums
}

// ComputePriceChange compares the asking price with the last recorded
// sale. Returns nil when either side is missing or the last sale price is
// not positive.
func ComputePriceChange(d models.Deal) *models.PriceChange {
	if d.Price == nil || d.LastSalePrice == nil || *d.LastSalePrice <= 0 {
		return nil
	}
	abs := *d.Price - *d.LastSalePrice
	return &models.PriceChange{
		Pct: abs / *d.LastSalePrice,
		Abs: abs,
	}
}

// finite returns a pointer to v, or nil when v is NaN or infinite. It is
// the last line of defense against a non-finite value leaking into a
// serialized response.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
