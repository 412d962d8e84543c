package domain

import "errors"

var (
	ErrNomineeNotFound = errors.New("no nominee registered")
	ErrNomineeExists   = errors.New("nominee already registered")
)

// Nominee is the single delegated-read grant an owner may hold. The
// referenced principal can read the owner's profile, ledger and summary
// but never write; removing the grant revokes that access immediately.
type Nominee struct {
	Principal   string `json:"principal" bson:"principal"`
	Name        string `json:"name" bson:"name"`
	ContactInfo string `json:"contact_info" bson:"contact_info"`
}
