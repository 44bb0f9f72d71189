package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/domain/shared"
	"go.uber.org/zap"
)

// AddressCache is a read-through cache tier in front of the address store.
// Implementations must treat a miss as (nil, nil).
type AddressCache interface {
	Get(ctx context.Context, postalCode string) (*customer.Address, error)
	Set(ctx context.Context, address *customer.Address) error
}

// AddressResolver resolves a postal code to a persisted address.
// On a store miss it fetches the address from the postal lookup service
// and persists it, so every subsequent resolve reuses the stored record.
type AddressResolver struct {
	addresses customer.AddressRepository
	lookup    customer.PostalLookup
	cache     AddressCache
	logger    *zap.Logger
}

// NewAddressResolver creates a new AddressResolver. The cache may be nil.
func NewAddressResolver(addresses customer.AddressRepository, lookup customer.PostalLookup, cache AddressCache, logger *zap.Logger) *AddressResolver {
	return &AddressResolver{
		addresses: addresses,
		lookup:    lookup,
		cache:     cache,
		logger:    logger,
	}
}

// Resolve returns the stored address for the postal code, fetching and
// persisting it from the external lookup on a store miss. Stored
// addresses are never refreshed.
func (r *AddressResolver) Resolve(ctx context.Context, postalCode string) (*customer.Address, error) {
	if err := customer.ValidatePostalCode(postalCode); err != nil {
		return nil, err
	}

	if address := r.fromCache(ctx, postalCode); address != nil {
		// A cached entry can outlive a rolled-back save. The idempotent
		// upsert guarantees the row exists for records referencing it.
		if err := r.addresses.Save(ctx, address); err != nil {
			return nil, err
		}
		return address, nil
	}

	address, err := r.addresses.FindByPostalCode(ctx, postalCode)
	if err == nil {
		r.toCache(ctx, address)
		return address, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	address, err = r.lookup.QueryPostalCode(ctx, postalCode)
	if err != nil {
		if errors.Is(err, customer.ErrUnknownPostalCode) {
			return nil, shared.NewDomainError("BUSINESS_RULE",
				fmt.Sprintf("Postal code %s does not exist", postalCode))
		}
		return nil, fmt.Errorf("postal lookup for %s: %w", postalCode, err)
	}

	// Concurrent resolves of the same unseen postal code may race here;
	// the save is idempotent on the postal-code key, so the only cost is
	// a duplicate fetch.
	if err := r.addresses.Save(ctx, address); err != nil {
		return nil, err
	}
	r.toCache(ctx, address)

	return address, nil
}

// fromCache reads the cache tier; cache failures degrade to the store
func (r *AddressResolver) fromCache(ctx context.Context, postalCode string) *customer.Address {
	if r.cache == nil {
		return nil
	}
	address, err := r.cache.Get(ctx, postalCode)
	if err != nil {
		r.logger.Warn("address cache read failed",
			zap.String("postal_code", postalCode),
			zap.Error(err),
		)
		return nil
	}
	return address
}

func (r *AddressResolver) toCache(ctx context.Context, address *customer.Address) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, address); err != nil {
		r.logger.Warn("address cache write failed",
			zap.String("postal_code", address.PostalCode),
			zap.Error(err),
		)
	}
}
