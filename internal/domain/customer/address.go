package customer

import (
	"strings"
	"time"

	"github.com/softhouse/customers/internal/domain/shared"
)

// Address represents a postal address identified by its postal code.
// Addresses are created once, either fetched from the postal lookup
// service or pre-existing in the store, and never mutated afterwards.
type Address struct {
	PostalCode    string
	Street        string
	Complement    string
	Neighborhood  string
	City          string
	StateCode     string
	CityCode      string
	GeoAreaCode   string
	DialCode      string
	TaxRegionCode string
	CreatedAt     time.Time
}

// NewAddress creates an address keyed by the given postal code
func NewAddress(postalCode string) (*Address, error) {
	if err := ValidatePostalCode(postalCode); err != nil {
		return nil, err
	}
	return &Address{
		PostalCode: postalCode,
		CreatedAt:  time.Now(),
	}, nil
}

// ValidatePostalCode checks the externally defined postal code format
// (eight digits, optionally with a dash before the last three).
func ValidatePostalCode(postalCode string) error {
	code := strings.TrimSpace(postalCode)
	if code == "" {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code cannot be empty")
	}
	digits := strings.ReplaceAll(code, "-", "")
	if len(digits) != 8 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code must have 8 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code must contain only digits")
		}
	}
	return nil
}
