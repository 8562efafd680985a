package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Rp 0"},
		{"999", "Rp 999"},
		{"15000", "Rp 15.000"},
		{"125000", "Rp 125.000"},
		{"1250000", "Rp 1.250.000"},
		{"58050.5", "Rp 58.051"},
		{"54399.49", "Rp 54.399"},
		{"-15000", "-Rp 15.000"},
	}

	for _, tt := range tests {
		if got := Rupiah(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("Rupiah(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
