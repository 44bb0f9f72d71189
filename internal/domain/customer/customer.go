package customer

import (
	"strings"
	"time"

	"github.com/softhouse/customers/internal/domain/shared"
)

// Customer represents a customer record with a resolved postal address.
// The ID is zero until the store assigns one on first save.
type Customer struct {
	ID        int64
	Name      string
	Address   *Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer creates a customer referencing the given resolved address
func NewCustomer(name string, address *Address) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if address == nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Customer requires a resolved address")
	}

	now := time.Now()
	return &Customer{
		Name:      name,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
