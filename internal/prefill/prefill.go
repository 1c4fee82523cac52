// Package prefill merges pre-normalized scalar suggestions from upstream
// data providers (valuation AVMs, rent AVMs, market statistics,
// parcel/sale-history records) into a deal record before scoring. It never
// talks to a provider itself; callers hand it already-fetched scalars and
// it fills only the fields the user left blank, first source wins.
package prefill

import (
	"fmt"

	"github.com/airevector/aire/pkg/models"
)

// Suggestion is one provider's pre-normalized scalar offering. Nil fields
// mean the provider had nothing for that slot.
type Suggestion struct {
	Source string `json:"source"` // e.g. "Estated", "ATTOM", "RentCast"

	Price           *float64 `json:"price,omitempty"`
	ReplacementCost *float64 `json:"replacement_cost,omitempty"`
	MonthlyRent     *float64 `json:"monthly_rent,omitempty"`
	DaysOnMarket    *int     `json:"days_on_market,omitempty"`
	LastSalePrice   *float64 `json:"last_sale_price,omitempty"`
	LastSaleDate    *string  `json:"last_sale_date,omitempty"`
}

// Merge applies suggestions to the deal in order, filling only fields the
// deal does not already carry. Returns the filled copy and provenance
// notes for the audit trail.
func Merge(d models.Deal, suggestions []Suggestion) (models.Deal, []string) {
	out := d.Clone()
	var notes []string
	note := func(source, field string) {
		notes = append(notes, fmt.Sprintf("%s: pulled %s.", source, field))
	}

	for _, s := range suggestions {
		if out.Price == nil && s.Price != nil && *s.Price > 0 {
			out.Price = models.Float(*s.Price)
			note(s.Source, "estimated value")
		}
		if out.ReplacementCost == nil && s.ReplacementCost != nil && *s.ReplacementCost > 0 {
			out.ReplacementCost = models.Float(*s.ReplacementCost)
			note(s.Source, "replacement cost")
		}
		if out.MonthlyRent == nil && s.MonthlyRent != nil && *s.MonthlyRent > 0 {
			out.MonthlyRent = models.Float(*s.MonthlyRent)
			note(s.Source, "rent estimate")
		}
		if out.DaysOnMarket == nil && s.DaysOnMarket != nil && *s.DaysOnMarket >= 0 {
			out.DaysOnMarket = models.Int(*s.DaysOnMarket)
			note(s.Source, "days on market")
		}
		if out.LastSalePrice == nil && s.LastSalePrice != nil && *s.LastSalePrice > 0 {
			out.LastSalePrice = models.Float(*s.LastSalePrice)
			note(s.Source, "last sale price")
		}
		if out.LastSaleDate == nil && s.LastSaleDate != nil && *s.LastSaleDate != "" {
			out.LastSaleDate = models.Str(*s.LastSaleDate)
			note(s.Source, "last sale date")
		}
	}

	if len(notes) == 0 {
		notes = append(notes, "No provider suggestions — manual mode.")
	}
	return out, notes
}
