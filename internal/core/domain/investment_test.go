package domain

import (
	"errors"
	"testing"
	"time"
)

func validInvestment() Investment {
	return Investment{
		Name:             "HDFC Flexi Cap Fund",
		Category:         CategoryMutualFunds,
		AmountInvested:   50000,
		CurrentValue:     61200,
		DateOfInvestment: time.Date(2023, 4, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestInvestmentValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*Investment)
		wantErr bool
	}{
		{"valid", func(*Investment) {}, false},
		{"empty name", func(i *Investment) { i.Name = "  " }, true},
		{"unknown category", func(i *Investment) { i.Category = "lottery" }, true},
		{"negative amount", func(i *Investment) { i.AmountInvested = -1 }, true},
		{"negative value", func(i *Investment) { i.CurrentValue = -0.01 }, true},
		{"future date", func(i *Investment) { i.DateOfInvestment = now.AddDate(0, 0, 1) }, true},
		{"zero amounts allowed", func(i *Investment) { i.AmountInvested = 0; i.CurrentValue = 0 }, false},
		{"date exactly now allowed", func(i *Investment) { i.DateOfInvestment = now }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvestment()
			tt.mutate(&inv)
			err := inv.Validate(now)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCategoryClosedSet(t *testing.T) {
	for _, c := range []Category{
		CategoryMutualFunds, CategoryStocks, CategoryCryptocurrency,
		CategorySovereignGoldBonds, CategoryPublicProvidentFund, CategoryOther,
	} {
		if !c.IsValid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	for _, c := range []Category{"", "Mutual Funds", "mutualfunds", "gold"} {
		if c.IsValid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

func TestSameHolding(t *testing.T) {
	a := validInvestment()

	b := a
	b.AmountInvested = 99999
	b.CurrentValue = 1
	if !a.SameHolding(b) {
		t.Fatalf("amount differences must not break the holding key")
	}

	c := a
	c.DateOfInvestment = a.DateOfInvestment.AddDate(0, 0, 1)
	if a.SameHolding(c) {
		t.Fatalf("different dates must be different holdings")
	}

	d := a
	d.Category = CategoryStocks
	if a.SameHolding(d) {
		t.Fatalf("different categories must be different holdings")
	}
}
