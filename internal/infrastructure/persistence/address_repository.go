package persistence

import (
	"context"
	"errors"

	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/domain/shared"
	"github.com/softhouse/customers/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *Database
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *Database) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByPostalCode finds a stored address by its postal code
func (r *GormAddressRepository) FindByPostalCode(ctx context.Context, postalCode string) (*customer.Address, error) {
	var model models.AddressModel
	if err := r.conn(ctx).First(&model, "postal_code = ?", postalCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save stores an address. Concurrent saves of the same postal code are
// harmless: the row is keyed by postal code and an existing row wins.
func (r *GormAddressRepository) Save(ctx context.Context, address *customer.Address) error {
	model := models.AddressModelFromDomain(address)
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "postal_code"}},
			DoNothing: true,
		}).
		Create(model).Error
}

func (r *GormAddressRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db.DB)
}

// Ensure GormAddressRepository implements AddressRepository
var _ customer.AddressRepository = (*GormAddressRepository)(nil)
