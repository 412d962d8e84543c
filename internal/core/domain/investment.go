package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category classifies an investment. The set is closed: it mirrors the
// statement categories recognised by Indian aggregators and is not
// user-extensible.
type Category string

const (
	CategoryMutualFunds                Category = "mutualFunds"
	CategoryStocks                     Category = "stocks"
	CategoryEquity                     Category = "equity"
	CategoryBonds                      Category = "bonds"
	CategoryDebtFunds                  Category = "debtFunds"
	CategoryCryptocurrency             Category = "cryptocurrency"
	CategoryFixedDepositsNationalized  Category = "fixedDepositsNationalized"
	CategoryFixedDepositsCorporate     Category = "fixedDepositsCorporate"
	CategoryChits                      Category = "chits"
	CategoryInsuranceAsset             Category = "insuranceAsset"
	CategoryInsuranceWealth            Category = "insuranceWealth"
	CategoryInsuranceHealth            Category = "insuranceHealth"
	CategoryUnitLinkedInsurancePlans   Category = "unitLinkedInsurancePlans"
	CategoryPensionPrivate             Category = "pensionPrivate"
	CategoryNationalPensionSystem      Category = "nationalPensionSystem"
	CategoryPublicProvidentFund        Category = "publicProvidentFund"
	CategoryPostOfficeSchemes          Category = "postOfficeSchemes"
	CategoryNationalSavings            Category = "nationalSavings"
	CategorySeniorCitizenSavings       Category = "seniorCitizenSavingsScheme"
	CategorySovereignGoldBonds         Category = "sovereignGoldBonds"
	CategorySilverBonds                Category = "silverBonds"
	CategorySEBIRegisteredCompanies    Category = "sebiRegisteredCompanies"
	CategoryRealEstateInvestmentTrusts Category = "realEstateInvestmentTrusts"
	CategoryLiquidityHoldings          Category = "liquidityHoldings"
	CategoryOther                      Category = "other"
)

var categories = map[Category]struct{}{
	CategoryMutualFunds:                {},
	CategoryStocks:                     {},
	CategoryEquity:                     {},
	CategoryBonds:                      {},
	CategoryDebtFunds:                  {},
	CategoryCryptocurrency:             {},
	CategoryFixedDepositsNationalized:  {},
	CategoryFixedDepositsCorporate:     {},
	CategoryChits:                      {},
	CategoryInsuranceAsset:             {},
	CategoryInsuranceWealth:            {},
	CategoryInsuranceHealth:            {},
	CategoryUnitLinkedInsurancePlans:   {},
	CategoryPensionPrivate:             {},
	CategoryNationalPensionSystem:      {},
	CategoryPublicProvidentFund:        {},
	CategoryPostOfficeSchemes:          {},
	CategoryNationalSavings:            {},
	CategorySeniorCitizenSavings:       {},
	CategorySovereignGoldBonds:         {},
	CategorySilverBonds:                {},
	CategorySEBIRegisteredCompanies:    {},
	CategoryRealEstateInvestmentTrusts: {},
	CategoryLiquidityHoldings:          {},
	CategoryOther:                      {},
}

// IsValid reports whether c belongs to the closed category set.
func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

var ErrIndexOutOfRange = errors.New("investment index out of range")

// Investment is a single holding in an owner's ledger. It carries no
// identifier of its own: within a ledger it is addressed by its 0-based
// position, which is reassigned on deletion and therefore only valid
// within one read/modify cycle.
type Investment struct {
	Name             string    `json:"name" bson:"name"`
	Category         Category  `json:"category" bson:"category"`
	AmountInvested   float64   `json:"amount_invested" bson:"amount_invested"`
	CurrentValue     float64   `json:"current_value" bson:"current_value"`
	DateOfInvestment time.Time `json:"date_of_investment" bson:"date_of_investment"`
	Notes            string    `json:"notes,omitempty" bson:"notes,omitempty"`
	IsSEBIRegistered bool      `json:"is_sebi_registered" bson:"is_sebi_registered"`
	FolioNumber      string    `json:"folio_number,omitempty" bson:"folio_number,omitempty"`
}

// Validate checks all field constraints. now is injected so callers and
// tests agree on what "the future" means.
func (i Investment) Validate(now time.Time) error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !i.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, i.Category)
	}
	if i.AmountInvested < 0 {
		return fmt.Errorf("%w: amount invested must be non-negative", ErrValidation)
	}
	if i.CurrentValue < 0 {
		return fmt.Errorf("%w: current value must be non-negative", ErrValidation)
	}
	if i.DateOfInvestment.After(now) {
		return fmt.Errorf("%w: date of investment is in the future", ErrValidation)
	}
	return nil
}

// SameHolding reports whether two records describe the same underlying
// holding for reconciliation purposes: name, category and investment date
// match exactly. Amount and value differences on a matching key are an
// update, never a new holding.
func (i Investment) SameHolding(o Investment) bool {
	return i.Name == o.Name &&
		i.Category == o.Category &&
		i.DateOfInvestment.Equal(o.DateOfInvestment)
}
