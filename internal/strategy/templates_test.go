package strategy

import (
	"testing"

	"github.com/airevector/aire/pkg/models"
)

func TestBuiltinTemplates(t *testing.T) {
	b := Builtin()
	for _, name := range []string{"LTR (Long-Term Rental)", "BRRRR", "Flip", "STR (Short-Term Rental)"} {
		tpl, ok := b[name]
		if !ok {
			t.Fatalf("missing built-in template %q", name)
		}
		if tpl.Name != name {
			t.Errorf("template %q has name %q", name, tpl.Name)
		}
		if len(tpl.Included) == 0 {
			t.Errorf("template %q has no included modules", name)
		}
		if tpl.Defaults.Projection.HoldYears <= 0 {
			t.Errorf("template %q has non-positive hold years", name)
		}
	}

	if _, err := Get("BRRRR"); err != nil {
		t.Errorf("Get(BRRRR): %v", err)
	}
	if _, err := Get("Wholesaling"); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

func TestSTRIncludesRegulation(t *testing.T) {
	tpl, _ := Get("STR (Short-Term Rental)")
	if !tpl.Included.Includes(models.ModuleRegulation) {
		t.Error("STR template must include the Regulation module")
	}
}

func TestApplyFillsGapsOnly(t *testing.T) {
	tpl, _ := Get("LTR (Long-Term Rental)")
	req := models.Request{
		Deal: models.Deal{
			PropertyType:   models.Multifamily,
			Address:        "12 Mill St",
			Price:          models.Float(400000),
			MonthlyRent:    models.Float(3200),
			DownPaymentPct: models.Float(35), // caller-supplied, must survive
		},
		RateEnv: models.RateEnvNormal,
	}

	out := tpl.Apply(req)

	if *out.Deal.DownPaymentPct != 35 {
		t.Errorf("caller's down payment overridden: %v", *out.Deal.DownPaymentPct)
	}
	if out.Deal.VacancyRate == nil || *out.Deal.VacancyRate != 0.08 {
		t.Errorf("vacancy default not applied: %v", out.Deal.VacancyRate)
	}
	if out.Deal.MonthlyExpenses == nil || *out.Deal.MonthlyExpenses != 3200*0.38 {
		t.Errorf("expense ratio not applied: %v", out.Deal.MonthlyExpenses)
	}
	if out.Deal.InterestRatePct == nil || *out.Deal.InterestRatePct != 7.25 {
		t.Errorf("rate default not applied: %v", out.Deal.InterestRatePct)
	}
	if out.Projection == nil || out.Projection.HoldYears != 7 {
		t.Errorf("projection defaults not applied: %+v", out.Projection)
	}
	if len(out.Included) != len(tpl.Included) {
		t.Errorf("included modules not applied: %v", out.Included)
	}

	// The original request's deal is untouched.
	if req.Deal.VacancyRate != nil {
		t.Error("Apply mutated the caller's deal")
	}
}

func TestApplyKeepsExplicitModules(t *testing.T) {
	tpl, _ := Get("Flip")
	req := models.Request{
		Deal:     models.Deal{PropertyType: models.SingleFamily},
		Included: models.ModuleSet{models.ModuleLiquidity},
	}
	out := tpl.Apply(req)
	if len(out.Included) != 1 || out.Included[0] != models.ModuleLiquidity {
		t.Errorf("explicit module set overridden: %v", out.Included)
	}
}
