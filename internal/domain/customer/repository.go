package customer

import (
	"context"
	"errors"
)

// ErrUnknownPostalCode is returned by a PostalLookup when the queried
// postal code does not exist in the external source.
var ErrUnknownPostalCode = errors.New("unknown postal code")

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*Customer, error)
	FindByID(ctx context.Context, id int64) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id int64) error
}

// AddressRepository defines persistence operations for addresses,
// keyed by postal code
type AddressRepository interface {
	FindByPostalCode(ctx context.Context, postalCode string) (*Address, error)
	Save(ctx context.Context, address *Address) error
}

// PostalLookup resolves a postal code to a populated address using an
// external source
type PostalLookup interface {
	QueryPostalCode(ctx context.Context, postalCode string) (*Address, error)
}
