package underwrite

import (
	"math"

	"github.com/airevector/aire/pkg/models"
)

// DefaultDiscountRate is the periodic NPV discount rate used when the
// caller does not supply one.
const DefaultDiscountRate = 0.10

// Project builds the annual levered cash-flow series over the holding
// period and solves for IRR and NPV.
//
// Two documented simplifications carried from the model's design: the
// yearly NOI adjustment conflates rent growth and expense inflation into a
// single multiplicative factor, and debt service stays fixed with the exit
// payoff taken at the original loan balance rather than an amortized one.
func Project(d models.Deal, nums models.Numbers, p models.ProjectionParams) models.ProjectionResult {
	if d.Price == nil {
		// No price means no equity outlay; nothing to model.
		return models.ProjectionResult{Cashflows: []float64{}}
	}

	noi := 0.0
	switch {
	case nums.NOIYear != nil:
		noi = *nums.NOIYear
	case d.MonthlyRent != nil && d.MonthlyExpenses != nil:
		vac := defaultVacancy
		if d.VacancyRate != nil {
			vac = *d.VacancyRate
		}
		noi = ((*d.MonthlyRent * (1 - vac)) - *d.MonthlyExpenses) * 12
	}

	debt := 0.0
	if nums.LoanPayment != nil {
		debt = *nums.LoanPayment * 12
	}

	down := 1.0 // all-cash when no down payment is specified
	if d.DownPaymentPct != nil {
		down = *d.DownPaymentPct / 100
	}
	equity := *d.Price * down

	cashflows := make([]float64, 0, p.HoldYears+1)
	cashflows = append(cashflows, -equity)

	for yr := 1; yr <= p.HoldYears; yr++ {
		if yr > 1 {
			noi *= 1 + p.RentGrowth
			if p.ExpenseGrowth < 1 {
				noi *= 1 - p.ExpenseGrowth
			} else {
				noi = 0
			}
		}
		cashflows = append(cashflows, noi-debt)
	}

	var exitValue float64
	if p.UseExitCap && p.ExitCapRate > 0 {
		exitValue = noi / p.ExitCapRate
	} else {
		exitValue = *d.Price * math.Pow(1+p.Appreciation, float64(p.HoldYears))
	}

	netSale := exitValue * (1 - p.SaleCostPct)
	if d.DownPaymentPct != nil {
		// Exit payoff approximated at the original loan amount.
		netSale -= *d.Price * (1 - down)
	}
	cashflows[len(cashflows)-1] += netSale

	discount := p.DiscountRate
	if discount == 0 {
		discount = DefaultDiscountRate
	}

	result := models.ProjectionResult{
		Cashflows: cashflows,
		ExitValue: finite(exitValue),
		NetSale:   finite(netSale),
		NPV:       finite(NPV(discount, cashflows)),
	}
	if irr, ok := IRR(cashflows); ok {
		result.IRR = finite(irr)
	}
	return result
}

// NPV discounts the cash-flow series at a fixed periodic rate.
func NPV(rate float64, cashflows []float64) float64 {
	total := 0.0
	for t, cf := range cashflows {
		total += cf / math.Pow(1+rate, float64(t))
	}
	return total
}

// IRR iteration bounds. The solver never loops unbounded: Newton gets a
// fixed iteration budget, then bisection over a fixed bracket.
const (
	irrNewtonIters  = 60
	irrBisectIters  = 200
	irrTolerance    = 1e-9
	irrLowerBracket = -0.9999
	irrUpperBracket = 10.0
)

// IRR solves for the periodic internal rate of return of the series.
// Returns false when the series has no sign change or no real rate
// converges within the bracket.
func IRR(cashflows []float64) (float64, bool) {
	if len(cashflows) < 2 || !hasSignChange(cashflows) {
		return 0, false
	}

	// Newton-Raphson from a conventional 10% starting guess.
	rate := 0.10
	for i := 0; i < irrNewtonIters; i++ {
		v := NPV(rate, cashflows)
		if math.Abs(v) < irrTolerance {
			if rate <= irrLowerBracket || math.IsNaN(rate) || math.IsInf(rate, 0) {
				break
			}
			return rate, true
		}
		d := npvDerivative(rate, cashflows)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			break
		}
		next := rate - v/d
		if math.IsNaN(next) || next <= irrLowerBracket || next > irrUpperBracket {
			break
		}
		if math.Abs(next-rate) < irrTolerance {
			return next, true
		}
		rate = next
	}

	// Bisection fallback over a fixed bracket.
	lo, hi := irrLowerBracket, irrUpperBracket
	fLo, fHi := NPV(lo, cashflows), NPV(hi, cashflows)
	if fLo*fHi > 0 {
		return 0, false
	}
	for i := 0; i < irrBisectIters; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, cashflows)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2, true
}

func npvDerivative(rate float64, cashflows []float64) float64 {
	d := 0.0
	for t := 1; t < len(cashflows); t++ {
		d -= float64(t) * cashflows[t] / math.Pow(1+rate, float64(t+1))
	}
	return d
}

func hasSignChange(cashflows []float64) bool {
	neg, pos := false, false
	for _, cf := range cashflows {
		if cf < 0 {
			neg = true
		}
		if cf > 0 {
			pos = true
		}
	}
	return neg && pos
}
