package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/domain/shared"
	"github.com/softhouse/customers/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *Database
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *Database) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindAll returns all customers with their addresses, ordered by id
func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	var customerModels []models.CustomerModel
	if err := r.conn(ctx).
		Preload("Address").
		Order("id ASC").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, nil
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.conn(ctx).
		Preload("Address").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a customer. On insert the generated id is
// copied back onto the domain entity. The associated address row is
// managed by the address repository, never through this association.
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	if err := r.conn(ctx).Omit("Address").Save(model).Error; err != nil {
		return translatePgError(err)
	}
	c.ID = model.ID
	return nil
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.conn(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return translatePgError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db.DB)
}

// translatePgError maps postgres constraint violations to domain errors
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return shared.ErrEntityInUse
		case pgerrcode.UniqueViolation:
			return shared.NewDomainError("DUPLICATE", "Record already exists")
		}
	}
	return err
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ customer.CustomerRepository = (*GormCustomerRepository)(nil)
