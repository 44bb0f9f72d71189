package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/softhouse/customers/internal/domain/customer"
)

// StubLookup is an in-memory postal lookup for development and tests.
// It answers from a fixed table and reports every other code as unknown.
type StubLookup struct {
	mu        sync.RWMutex
	addresses map[string]customer.Address
}

// NewStubLookup creates a stub lookup seeded with a few well-known codes
func NewStubLookup() *StubLookup {
	s := &StubLookup{addresses: make(map[string]customer.Address)}
	s.Register(customer.Address{
		PostalCode:    "01310-100",
		Street:        "Avenida Paulista",
		Complement:    "lado ímpar",
		Neighborhood:  "Bela Vista",
		City:          "São Paulo",
		StateCode:     "SP",
		CityCode:      "3550308",
		GeoAreaCode:   "1004",
		DialCode:      "11",
		TaxRegionCode: "7107",
	})
	s.Register(customer.Address{
		PostalCode:   "20040-020",
		Street:       "Rua da Assembléia",
		Neighborhood: "Centro",
		City:         "Rio de Janeiro",
		StateCode:    "RJ",
		CityCode:     "3304557",
		DialCode:     "21",
	})
	return s
}

// Register adds or replaces an address in the stub table
func (s *StubLookup) Register(address customer.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[address.PostalCode] = address
}

// QueryPostalCode answers from the stub table
func (s *StubLookup) QueryPostalCode(_ context.Context, postalCode string) (*customer.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	address, ok := s.addresses[postalCode]
	if !ok {
		return nil, customer.ErrUnknownPostalCode
	}
	address.CreatedAt = time.Now()
	return &address, nil
}

// Ensure StubLookup implements PostalLookup
var _ customer.PostalLookup = (*StubLookup)(nil)
