package payment

import (
	"errors"
	"math"
	"testing"

	"cakeries-backend/internal/apperr"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{25, 2500},
		{19.999, 1999},
		{19.99, 1999},
		{0.29, 29},
		{1.005, 100},
		{0.01, 1},
		{12345.678, 1234567},
	}

	for _, tt := range tests {
		got, err := ToMinorUnits(tt.price)
		if err != nil {
			t.Errorf("ToMinorUnits(%v) error = %v", tt.price, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestToMinorUnits_MaximumCharge(t *testing.T) {
	got, err := ToMinorUnits(999999.99)
	if err != nil {
		t.Fatalf("ToMinorUnits(999999.99) error = %v", err)
	}
	if got != MaxMinorUnits {
		t.Errorf("ToMinorUnits(999999.99) = %d, want %d", got, MaxMinorUnits)
	}
}

func TestToMinorUnits_Invalid(t *testing.T) {
	for _, price := range []float64{0, -5, 0.004, math.NaN(), math.Inf(1), 1e6, 9.3e16, 1e17, 1e20, math.MaxFloat64} {
		if _, err := ToMinorUnits(price); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("ToMinorUnits(%v) error = %v, want ErrValidation", price, err)
		}
	}
}
