package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewAmountRejectsNegativeValues(t *testing.T) {
	_, err := NewAmount(decimal.NewFromFloat(-0.01))
	if err == nil {
		t.Fatal("expected an error for a negative value")
	}

	var negErr *NegativeAmountError
	if !errors.As(err, &negErr) {
		t.Fatalf("expected NegativeAmountError, got %T", err)
	}
	if !negErr.Attempted.Equal(decimal.NewFromFloat(-0.01)) {
		t.Errorf("expected attempted value -0.01, got %s", negErr.Attempted)
	}
}

func TestNewAmountAcceptsZero(t *testing.T) {
	amount, err := NewAmount(decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.Equal(Amount{}) {
		t.Errorf("expected zero amount, got %s", amount)
	}
}

func TestAmountAdd(t *testing.T) {
	sum := AmountFromInt(1500).Add(AmountFromInt(700))
	if !sum.Equal(AmountFromInt(2200)) {
		t.Errorf("expected 2200, got %s", sum)
	}
}

func TestAmountGreaterThan(t *testing.T) {
	tests := []struct {
		name  string
		a     Amount
		b     Amount
		wantG bool
	}{
		{"strictly greater", AmountFromInt(2001), AmountFromInt(2000), true},
		{"equal is not greater", AmountFromInt(2000), AmountFromInt(2000), false},
		{"smaller", AmountFromInt(1999), AmountFromInt(2000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.GreaterThan(tt.b); got != tt.wantG {
				t.Errorf("GreaterThan(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.wantG)
			}
		})
	}
}
