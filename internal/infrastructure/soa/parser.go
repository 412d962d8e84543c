package soa

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

const statementDateLayout = "2006-01-02"

// statementBody is the canonical statement-of-account payload.
type statementBody struct {
	StatementID string             `json:"statement_id"`
	Holdings    []statementHolding `json:"holdings"`
}

type statementHolding struct {
	SchemeName     string `json:"scheme_name"`
	Category       string `json:"category"`
	FolioNumber    string `json:"folio_number"`
	Invested       string `json:"invested"`
	CurrentValue   string `json:"current_value"`
	PurchaseDate   string `json:"purchase_date"`
	SEBIRegistered bool   `json:"sebi_registered"`
	Remarks        string `json:"remarks"`
}

// ParseStatement decodes a canonical statement body into candidate
// investment records. Any malformed holding fails the whole statement:
// the merge downstream is all-or-nothing, so a half-parsed batch must
// never reach it.
func ParseStatement(body []byte) ([]domain.Investment, error) {
	var stmt statementBody
	if err := json.Unmarshal(body, &stmt); err != nil {
		return nil, fmt.Errorf("%w: decode statement: %v", domain.ErrFetchFailed, err)
	}

	holdings := make([]domain.Investment, 0, len(stmt.Holdings))
	for i, h := range stmt.Holdings {
		inv, err := h.toInvestment()
		if err != nil {
			return nil, fmt.Errorf("%w: holding[%d]: %v", domain.ErrFetchFailed, i, err)
		}
		holdings = append(holdings, inv)
	}
	return holdings, nil
}

func (h statementHolding) toInvestment() (domain.Investment, error) {
	if strings.TrimSpace(h.SchemeName) == "" {
		return domain.Investment{}, fmt.Errorf("missing scheme name")
	}

	invested, err := parseAmount(h.Invested)
	if err != nil {
		return domain.Investment{}, fmt.Errorf("invested: %v", err)
	}
	value, err := parseAmount(h.CurrentValue)
	if err != nil {
		return domain.Investment{}, fmt.Errorf("current_value: %v", err)
	}

	date, err := time.Parse(statementDateLayout, h.PurchaseDate)
	if err != nil {
		return domain.Investment{}, fmt.Errorf("purchase_date: %v", err)
	}

	return domain.Investment{
		Name:             strings.TrimSpace(h.SchemeName),
		Category:         inferCategory(h.Category),
		AmountInvested:   invested,
		CurrentValue:     value,
		DateOfInvestment: date.UTC(),
		Notes:            h.Remarks,
		IsSEBIRegistered: h.SEBIRegistered,
		FolioNumber:      h.FolioNumber,
	}, nil
}

// parseAmount accepts provider amount strings: Indian digit grouping,
// optional currency sign, e.g. "₹1,23,456.78".
func parseAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return d.InexactFloat64(), nil
}

// categoryLabels maps normalized provider labels onto the closed set.
var categoryLabels = map[string]domain.Category{
	"mutual fund":            domain.CategoryMutualFunds,
	"mutual funds":           domain.CategoryMutualFunds,
	"equity":                 domain.CategoryEquity,
	"stock":                  domain.CategoryStocks,
	"stocks":                 domain.CategoryStocks,
	"bond":                   domain.CategoryBonds,
	"bonds":                  domain.CategoryBonds,
	"debt":                   domain.CategoryDebtFunds,
	"debt fund":              domain.CategoryDebtFunds,
	"crypto":                 domain.CategoryCryptocurrency,
	"cryptocurrency":         domain.CategoryCryptocurrency,
	"fixed deposit":          domain.CategoryFixedDepositsNationalized,
	"corporate fd":           domain.CategoryFixedDepositsCorporate,
	"chit fund":              domain.CategoryChits,
	"ulip":                   domain.CategoryUnitLinkedInsurancePlans,
	"nps":                    domain.CategoryNationalPensionSystem,
	"ppf":                    domain.CategoryPublicProvidentFund,
	"post office":            domain.CategoryPostOfficeSchemes,
	"nsc":                    domain.CategoryNationalSavings,
	"scss":                   domain.CategorySeniorCitizenSavings,
	"sgb":                    domain.CategorySovereignGoldBonds,
	"sovereign gold bond":    domain.CategorySovereignGoldBonds,
	"silver bond":            domain.CategorySilverBonds,
	"reit":                   domain.CategoryRealEstateInvestmentTrusts,
	"liquid":                 domain.CategoryLiquidityHoldings,
	"health insurance":       domain.CategoryInsuranceHealth,
	"life insurance":         domain.CategoryInsuranceWealth,
	"insurance":              domain.CategoryInsuranceAsset,
	"pension":                domain.CategoryPensionPrivate,
	"sebi registered entity": domain.CategorySEBIRegisteredCompanies,
}

// inferCategory maps a provider category label onto the closed set.
// Exact closed-set values pass through; known provider labels are
// translated; anything else lands in "other" rather than failing the
// statement.
func inferCategory(label string) domain.Category {
	if c := domain.Category(label); c.IsValid() {
		return c
	}
	normalized := strings.ToLower(strings.TrimSpace(label))
	if c, ok := categoryLabels[normalized]; ok {
		return c
	}
	return domain.CategoryOther
}
