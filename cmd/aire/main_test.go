package main

import (
	"testing"

	"github.com/airevector/aire/pkg/models"
)

// The report renderer takes whatever the engine produced, including
// optional projection fields, without panicking on present or absent
// values.
func TestPrintReportWithProjection(t *testing.T) {
	deal := models.Deal{
		PropertyType: models.Multifamily,
		Address:      "12 Elm St, Springfield",
		Price:        models.Float(500000),
	}

	resp := &models.Response{
		Grade:      "B",
		Verdict:    "BUY",
		Score:      82.5,
		Confidence: 0.72,
		Numbers: models.Numbers{
			NOIYear:       models.Float(29760),
			CapRate:       models.Float(0.05952),
			LoanPayment:   models.Float(2398.20),
			CashFlowMonth: models.Float(81.80),
			CoCReturn:     models.Float(0.0098),
			DSCRStress:    models.Float(0.73),
		},
		Strengths:   []string{"Cap rate at/above 7%."},
		Risks:       []string{"No major risks detected."},
		PriceChange: &models.PriceChange{Pct: 0.19, Abs: 80000},
		Projection: &models.ProjectionResult{
			Cashflows: []float64{-100000, 1000, 1000, 1000, 1000, 350000},
			ExitValue: models.Float(579637),
			NetSale:   models.Float(139063),
			IRR:       models.Float(0.12),
			NPV:       models.Float(15000),
		},
	}

	printReport(deal, resp)
}

func TestPrintReportAbsentProjectionFields(t *testing.T) {
	deal := models.Deal{
		PropertyType: models.Land,
		Address:      "Lot 4, County Rd",
	}

	resp := &models.Response{
		Grade:   "F",
		Verdict: "PASS",
		Projection: &models.ProjectionResult{
			Cashflows: []float64{-100000, 1000},
		},
	}

	printReport(deal, resp)
}

func TestPrintGrid(t *testing.T) {
	irr := models.Float(12.34)
	printGrid(&models.SensitivityResult{
		RentShocks: []float64{-0.05, 0, 0.05},
		RateShocks: []float64{0, 0.005},
		RateLabels: []string{"rate_+0.00%", "rate_+0.50%"},
		Scores:     [][]float64{{80.1, 78.2}, {82.0, 80.0}, {84.3, 82.1}},
		IRRs:       [][]*float64{{irr, nil}, {irr, irr}, {nil, irr}},
	})
	printGrid(nil)
}
