package handler

import (
	"time"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type investmentRequest struct {
	Name             string    `json:"name"               validate:"required"`
	Category         string    `json:"category"           validate:"required"`
	AmountInvested   float64   `json:"amount_invested"    validate:"gte=0"`
	CurrentValue     float64   `json:"current_value"      validate:"gte=0"`
	DateOfInvestment time.Time `json:"date_of_investment" validate:"required"`
	Notes            string    `json:"notes"`
	IsSEBIRegistered bool      `json:"is_sebi_registered"`
	FolioNumber      string    `json:"folio_number"`
}

func (r investmentRequest) toDomain() domain.Investment {
	return domain.Investment{
		Name:             r.Name,
		Category:         domain.Category(r.Category),
		AmountInvested:   r.AmountInvested,
		CurrentValue:     r.CurrentValue,
		DateOfInvestment: r.DateOfInvestment.UTC(),
		Notes:            r.Notes,
		IsSEBIRegistered: r.IsSEBIRegistered,
		FolioNumber:      r.FolioNumber,
	}
}

type profileRequest struct {
	PermanentAddress string   `json:"permanent_address"`
	TemporaryAddress string   `json:"temporary_address"`
	ContactNumbers   []string `json:"contact_numbers" validate:"max=5,dive,required"`
	AadhaarNumber    string   `json:"aadhaar_number"`
	PANNumber        string   `json:"pan_number"`
}

func (r profileRequest) toDomain() domain.UserProfile {
	return domain.UserProfile{
		PermanentAddress: r.PermanentAddress,
		TemporaryAddress: r.TemporaryAddress,
		ContactNumbers:   r.ContactNumbers,
		AadhaarNumber:    r.AadhaarNumber,
		PANNumber:        r.PANNumber,
	}
}

type nomineeRequest struct {
	Principal   string `json:"principal"    validate:"required"`
	Name        string `json:"name"         validate:"required"`
	ContactInfo string `json:"contact_info"`
}

func (r nomineeRequest) toDomain() domain.Nominee {
	return domain.Nominee{
		Principal:   r.Principal,
		Name:        r.Name,
		ContactInfo: r.ContactInfo,
	}
}

type assignRoleRequest struct {
	Principal string `json:"principal" validate:"required"`
	Role      string `json:"role"      validate:"required,oneof=admin user guest"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally
// separate from domain types so the JSON contract is not coupled to
// internal changes.

type investmentResponse struct {
	Index            int       `json:"index"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	AmountInvested   float64   `json:"amount_invested"`
	CurrentValue     float64   `json:"current_value"`
	DateOfInvestment time.Time `json:"date_of_investment"`
	Notes            string    `json:"notes,omitempty"`
	IsSEBIRegistered bool      `json:"is_sebi_registered"`
	FolioNumber      string    `json:"folio_number,omitempty"`
}

func toInvestmentResponse(index int, inv domain.Investment) investmentResponse {
	return investmentResponse{
		Index:            index,
		Name:             inv.Name,
		Category:         string(inv.Category),
		AmountInvested:   inv.AmountInvested,
		CurrentValue:     inv.CurrentValue,
		DateOfInvestment: inv.DateOfInvestment,
		Notes:            inv.Notes,
		IsSEBIRegistered: inv.IsSEBIRegistered,
		FolioNumber:      inv.FolioNumber,
	}
}

type listInvestmentsResponse struct {
	Data []investmentResponse `json:"data"`
}

type summaryResponse struct {
	TotalInvested     float64 `json:"total_invested"`
	TotalCurrentValue float64 `json:"total_current_value"`
}

type profileResponse struct {
	PermanentAddress string   `json:"permanent_address"`
	TemporaryAddress string   `json:"temporary_address"`
	ContactNumbers   []string `json:"contact_numbers"`
	AadhaarNumber    string   `json:"aadhaar_number,omitempty"`
	PANNumber        string   `json:"pan_number,omitempty"`
}

type nomineeResponse struct {
	Principal   string `json:"principal"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

type reconcileResponse struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

type detailsResponse struct {
	Details string `json:"details"`
}

type roleResponse struct {
	Role string `json:"role"`
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

type okResponse struct {
	Message string `json:"message"`
}
