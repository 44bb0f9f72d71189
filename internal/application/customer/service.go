package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/domain/shared"
	"go.uber.org/zap"
)

// Transactor runs a function inside a database transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CustomerService implements the customer use cases.
type CustomerService struct {
	customers  customer.CustomerRepository
	resolver   *AddressResolver
	transactor Transactor
	logger     *zap.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customers customer.CustomerRepository, resolver *AddressResolver, transactor Transactor, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers:  customers,
		resolver:   resolver,
		transactor: transactor,
		logger:     logger,
	}
}

// GetAll returns every customer with its resolved address.
func (s *CustomerService) GetAll(ctx context.Context) ([]CustomerResponse, error) {
	records, err := s.customers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToCustomerResponse(record))
	}
	return responses, nil
}

// GetByID returns a single customer by its identifier.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*CustomerResponse, error) {
	record, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundError(err, id)
	}

	response := ToCustomerResponse(record)
	return &response, nil
}

// Insert creates a new customer, resolving its address from the
// supplied postal code.
func (s *CustomerService) Insert(ctx context.Context, req *CreateCustomerRequest) (*CustomerResponse, error) {
	var record *customer.Customer

	// Resolution may persist a new address, so it must share the
	// customer save's transaction.
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		address, err := s.resolver.Resolve(ctx, req.Address.PostalCode)
		if err != nil {
			return err
		}

		record, err = customer.NewCustomer(req.Name, address)
		if err != nil {
			return err
		}
		return s.customers.Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", record.ID),
		zap.String("postal_code", record.Address.PostalCode),
	)

	response := ToCustomerResponse(record)
	return &response, nil
}

// Update replaces the customer identified by id with the request data.
// The identifier always comes from the URL; any id in the payload is
// ignored. A missing customer is reported as not found, never created.
func (s *CustomerService) Update(ctx context.Context, id int64, req *CreateCustomerRequest) (*CustomerResponse, error) {
	current, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundError(err, id)
	}

	var record *customer.Customer
	err = s.transactor.InTx(ctx, func(ctx context.Context) error {
		address, err := s.resolver.Resolve(ctx, req.Address.PostalCode)
		if err != nil {
			return err
		}

		record, err = customer.NewCustomer(req.Name, address)
		if err != nil {
			return err
		}
		record.ID = id
		record.CreatedAt = current.CreatedAt
		return s.customers.Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer updated", zap.Int64("customer_id", id))

	response := ToCustomerResponse(record)
	return &response, nil
}

// Delete removes the customer identified by id. A customer referenced
// by other records is reported as in use.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		return s.customers.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, shared.ErrEntityInUse) {
			return shared.NewDomainError("ENTITY_IN_USE",
				fmt.Sprintf("Customer id %d in use, cannot be removed", id))
		}
		return notFoundError(err, id)
	}

	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}

// notFoundError rewrites the repository sentinel naming the customer id
func notFoundError(err error, id int64) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("There is no customer with id %d", id))
	}
	return err
}
