package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxContactNumbers caps the ordered contact number list on a profile.
const MaxContactNumbers = 5

var ErrProfileNotFound = errors.New("profile not set")

// aadhaarRegex checks for exactly 12 digits (whitespace stripped first).
var aadhaarRegex = regexp.MustCompile(`^[0-9]{12}$`)

// panRegex checks the PAN layout: 5 letters, 4 digits, 1 letter.
var panRegex = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// UserProfile holds an identity's contact details and optional KYC
// reference numbers. At most one exists per identity; absence is distinct
// from an empty profile and drives first-run onboarding.
type UserProfile struct {
	PermanentAddress string   `json:"permanent_address" bson:"permanent_address"`
	TemporaryAddress string   `json:"temporary_address" bson:"temporary_address"`
	ContactNumbers   []string `json:"contact_numbers" bson:"contact_numbers"`
	AadhaarNumber    string   `json:"aadhaar_number,omitempty" bson:"aadhaar_number,omitempty"`
	PANNumber        string   `json:"pan_number,omitempty" bson:"pan_number,omitempty"`
}

// NormalizeAadhaar strips whitespace from an Aadhaar number.
func NormalizeAadhaar(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// NormalizePAN upper-cases and trims a PAN number.
func NormalizePAN(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate checks KYC number formats when present. Empty values are
// accepted as absent. The profile is normalized in place so the stored
// form is always canonical.
func (p *UserProfile) Validate() error {
	if len(p.ContactNumbers) > MaxContactNumbers {
		return fmt.Errorf("%w: at most %d contact numbers", ErrValidation, MaxContactNumbers)
	}
	if p.AadhaarNumber != "" {
		p.AadhaarNumber = NormalizeAadhaar(p.AadhaarNumber)
		if !aadhaarRegex.MatchString(p.AadhaarNumber) {
			return fmt.Errorf("%w: aadhaar number must be exactly 12 digits", ErrValidation)
		}
	}
	if p.PANNumber != "" {
		p.PANNumber = NormalizePAN(p.PANNumber)
		if !panRegex.MatchString(p.PANNumber) {
			return fmt.Errorf("%w: pan number must match AAAAA9999A", ErrValidation)
		}
	}
	return nil
}

// HasKYC reports whether both reference numbers are present. Statement
// reconciliation requires this before any network access.
func (p UserProfile) HasKYC() bool {
	return p.AadhaarNumber != "" && p.PANNumber != ""
}
