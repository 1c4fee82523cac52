package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{500000, "$500,000"},
		{1234567.89, "$1,234,568"},
		{-42000, "-$42,000"},
		{1798.65, "$1,799"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatMoneyPtr(t *testing.T) {
	if got := FormatMoneyPtr(nil); got != Absent {
		t.Errorf("FormatMoneyPtr(nil) = %q, want %q", got, Absent)
	}
	v := 2500.0
	if got := FormatMoneyPtr(&v); got != "$2,500" {
		t.Errorf("FormatMoneyPtr(&2500) = %q, want $2,500", got)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		frac     float64
		decimals int
		want     string
	}{
		{0.0599, 2, "5.99%"},
		{0.08, 1, "8.0%"},
		{0.35, 0, "35%"},
		{-0.025, 1, "-2.5%"},
	}

	for _, tt := range tests {
		if got := FormatPercent(tt.frac, tt.decimals); got != tt.want {
			t.Errorf("FormatPercent(%v, %d) = %q, want %q", tt.frac, tt.decimals, got, tt.want)
		}
	}

	if got := FormatPercentPtr(nil, 2); got != Absent {
		t.Errorf("FormatPercentPtr(nil) = %q, want %q", got, Absent)
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(1.254); got != "1.25x" {
		t.Errorf("FormatRatio(1.254) = %q, want 1.25x", got)
	}
	if got := FormatRatioPtr(nil); got != Absent {
		t.Errorf("FormatRatioPtr(nil) = %q, want %q", got, Absent)
	}
}
