package models

// Numbers is the derived-value bundle produced by the metrics calculator.
// Every field is independently nullable: a nil entry means the inputs it
// needs were not supplied (or a denominator was not positive), never an
// error condition.
type Numbers struct {
	LoanPayment   *float64 `json:"loan_payment,omitempty"`    // monthly
	NOIYear       *float64 `json:"noi_year,omitempty"`        // annual
	CapRate       *float64 `json:"cap_rate,omitempty"`        // fraction
	CoCReturn     *float64 `json:"coc_return,omitempty"`      // fraction
	DSCRStress    *float64 `json:"dscr_stress,omitempty"`     // ratio under 20% rent haircut
	CashFlowMonth *float64 `json:"cash_flow_month,omitempty"` // monthly levered
}

// Metric identifies one scored dimension of a deal.
type Metric string

const (
	MetricCashflow    Metric = "cashflow"
	MetricDownside    Metric = "downside"
	MetricLocation    Metric = "location"
	MetricYield       Metric = "yield"
	MetricLiquidity   Metric = "liquidity"
	MetricOptionality Metric = "optionality"
	MetricAIRisk      Metric = "ai_risk"
)

// AllMetrics returns every metric in weight-table order.
func AllMetrics() []Metric {
	return []Metric{
		MetricCashflow, MetricDownside, MetricLocation, MetricYield,
		MetricLiquidity, MetricOptionality, MetricAIRisk,
	}
}

// MetricSet maps each available metric to its value normalized to [0, 1].
// A metric absent from the set means its module was excluded or its driving
// inputs were missing; the scorer re-normalizes weights over what remains.
type MetricSet map[Metric]float64

// Weights is the fixed base weighting for a rate environment. The fields
// always sum to 1.0 regardless of which metrics end up available.
type Weights struct {
	Cashflow    float64 `json:"cashflow"`
	Downside    float64 `json:"downside"`
	Location    float64 `json:"location"`
	Yield       float64 `json:"yield"`
	Liquidity   float64 `json:"liquidity"`
	Optionality float64 `json:"optionality"`
	AIRisk      float64 `json:"ai_risk"`
}

// Of returns the base weight for a metric.
func (w Weights) Of(m Metric) float64 {
	switch m {
	case MetricCashflow:
		return w.Cashflow
	case MetricDownside:
		return w.Downside
	case MetricLocation:
		return w.Location
	case MetricYield:
		return w.Yield
	case MetricLiquidity:
		return w.Liquidity
	case MetricOptionality:
		return w.Optionality
	case MetricAIRisk:
		return w.AIRisk
	}
	return 0
}

// FlagCode identifies a heuristic risk condition. Penalties are attached to
// the code, not derived from the message text, so the display strings can
// change without moving point values.
type FlagCode string

const (
	FlagAggressiveRent     FlagCode = "aggressive_rent_to_price"
	FlagOptimisticVacancy  FlagCode = "optimistic_vacancy"
	FlagUnderstatedExpense FlagCode = "understated_expenses"
	FlagLowCapRate         FlagCode = "low_cap_rate"
	FlagRegulatoryRisk     FlagCode = "regulatory_pressure"
)

// Penalty returns the score penalty points carried by the flag.
func (c FlagCode) Penalty() float64 {
	switch c {
	case FlagAggressiveRent:
		return 0.06
	case FlagOptimisticVacancy:
		return 0.08
	case FlagUnderstatedExpense:
		return 0.06
	case FlagLowCapRate:
		return 0.06
	case FlagRegulatoryRisk:
		return 0.20
	}
	return 0
}

// Message returns the human-readable flag text.
func (c FlagCode) Message() string {
	switch c {
	case FlagAggressiveRent:
		return "Rent-to-price looks aggressive (verify comps)."
	case FlagOptimisticVacancy:
		return "Vacancy assumption looks optimistic."
	case FlagUnderstatedExpense:
		return "Expenses might be understated."
	case FlagLowCapRate:
		return "Low cap rate; deal relies on appreciation/execution."
	case FlagRegulatoryRisk:
		return "Regulatory pressure risk."
	}
	return string(c)
}

// Flag is a detected risk condition.
type Flag struct {
	Code    FlagCode `json:"code"`
	Message string   `json:"message"`
}

// ProjectionParams are the advanced assumptions for the cash-flow model.
type ProjectionParams struct {
	HoldYears     int     `json:"hold_years"`
	RentGrowth    float64 `json:"rent_growth"`    // annual, decimal
	ExpenseGrowth float64 `json:"expense_growth"` // annual, decimal
	Appreciation  float64 `json:"appreciation"`   // annual, decimal
	SaleCostPct   float64 `json:"sale_cost_pct"`  // decimal of exit value
	UseExitCap    bool    `json:"use_exit_cap"`
	ExitCapRate   float64 `json:"exit_cap_rate"` // decimal, used when UseExitCap
	DiscountRate  float64 `json:"discount_rate"` // periodic rate for NPV; 0 means default 0.10
}

// ProjectionResult is the levered cash-flow model output. Cashflows is
// empty and all other fields nil when the deal has no price (the equity
// outlay cannot be determined).
type ProjectionResult struct {
	Cashflows []float64 `json:"cashflows"` // index 0 = initial equity outlay (negative)
	ExitValue *float64  `json:"exit_value,omitempty"`
	NetSale   *float64  `json:"net_sale,omitempty"`
	IRR       *float64  `json:"irr,omitempty"` // periodic decimal; nil on non-convergence
	NPV       *float64  `json:"npv,omitempty"`
}

// SensitivityParams define the shock grid. Explicit shock lists win; when
// absent, symmetric grids are built from the spans with Steps points per
// axis (7 when zero).
type SensitivityParams struct {
	RentShocks  []float64         `json:"rent_shocks,omitempty"` // fractional rent multipliers
	RateShocks  []float64         `json:"rate_shocks,omitempty"` // additive rate deltas, decimal
	RentSpan    float64           `json:"rent_span,omitempty"`   // e.g. 0.10 => ±10%
	RateSpanPct float64           `json:"rate_span_pct,omitempty"`
	Steps       int               `json:"steps,omitempty"`
	Projection  *ProjectionParams `json:"projection,omitempty"` // for the IRR surface
}

// SensitivityResult holds the score and IRR surfaces. Rows follow the rent
// shock order, columns the rate shock order. IRR cells are percentages and
// nil where the cash-flow model returned no rate.
type SensitivityResult struct {
	RentShocks []float64    `json:"rent_shocks"`
	RateShocks []float64    `json:"rate_shocks"`
	RateLabels []string     `json:"rate_labels"` // signed percentage labels, e.g. "rate_+0.50%"
	Scores     [][]float64  `json:"scores"`      // rounded to 0.1
	IRRs       [][]*float64 `json:"irrs"`        // percent, rounded to 0.01
}

// Request is the transport-independent scoring request.
type Request struct {
	Deal        Deal               `json:"deal"`
	Included    ModuleSet          `json:"included"`
	RateEnv     RateEnvironment    `json:"rate_env"`
	Projection  *ProjectionParams  `json:"projection,omitempty"`
	Sensitivity *SensitivityParams `json:"sensitivity,omitempty"`
}

// PriceChange compares the asking price with the last recorded sale.
type PriceChange struct {
	Pct float64 `json:"pct"`
	Abs float64 `json:"abs"`
}

// Response is the full underwriting verdict for one deal.
type Response struct {
	Grade       string             `json:"grade"`
	Verdict     string             `json:"verdict"`
	Score       float64            `json:"score"`
	Confidence  float64            `json:"confidence"`
	KillSwitch  bool               `json:"kill_switch"`
	Penalty     float64            `json:"penalty"`
	RateEnv     RateEnvironment    `json:"rate_env"`
	Numbers     Numbers            `json:"numbers"`
	Metrics     MetricSet          `json:"metrics"`
	BaseWeights Weights            `json:"base_weights"`
	NormWeights map[Metric]float64 `json:"normalized_weights"`
	Flags       []Flag             `json:"flags"`
	Strengths   []string           `json:"strengths"`
	Risks       []string           `json:"risks"`
	PriceChange *PriceChange       `json:"price_change,omitempty"`
	Projection  *ProjectionResult  `json:"projection,omitempty"`
	Sensitivity *SensitivityResult `json:"sensitivity,omitempty"`
}
