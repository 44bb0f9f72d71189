package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormAddressRepository_FindByPostalCode(t *testing.T) {
	t.Run("finds stored address", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormAddressRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customer_addresses" WHERE postal_code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("01310-100", 1).
			WillReturnRows(addressRows("01310-100"))

		address, err := repo.FindByPostalCode(context.Background(), "01310-100")

		require.NoError(t, err)
		assert.Equal(t, "01310-100", address.PostalCode)
		assert.Equal(t, "Avenida Paulista", address.Street)
		assert.Equal(t, "SP", address.StateCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown postal code", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormAddressRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customer_addresses" WHERE postal_code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("99999-999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		address, err := repo.FindByPostalCode(context.Background(), "99999-999")

		assert.Nil(t, address)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_Save(t *testing.T) {
	t.Run("inserts address with conflict ignored", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormAddressRepository(db)

		address := &customer.Address{
			PostalCode:   "01310-100",
			Street:       "Avenida Paulista",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			StateCode:    "SP",
			CreatedAt:    time.Now(),
		}

		mock.ExpectExec(`INSERT INTO "customer_addresses" .* ON CONFLICT \("postal_code"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), address)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("treats duplicate insert as success", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormAddressRepository(db)

		address := &customer.Address{
			PostalCode: "01310-100",
			CreatedAt:  time.Now(),
		}

		mock.ExpectExec(`INSERT INTO "customer_addresses" .* ON CONFLICT \("postal_code"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Save(context.Background(), address)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
