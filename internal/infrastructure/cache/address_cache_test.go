package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAddressCache(t *testing.T) {
	t.Run("miss returns nil without error", func(t *testing.T) {
		cache := NewMemoryAddressCache()

		address, err := cache.Get(context.Background(), "01310-100")

		require.NoError(t, err)
		assert.Nil(t, address)
	})

	t.Run("set then get returns stored address", func(t *testing.T) {
		cache := NewMemoryAddressCache()
		stored := &customer.Address{
			PostalCode: "01310-100",
			Street:     "Avenida Paulista",
			City:       "São Paulo",
			StateCode:  "SP",
		}

		require.NoError(t, cache.Set(context.Background(), stored))

		address, err := cache.Get(context.Background(), "01310-100")

		require.NoError(t, err)
		require.NotNil(t, address)
		assert.Equal(t, *stored, *address)
	})

	t.Run("returned address is a copy", func(t *testing.T) {
		cache := NewMemoryAddressCache()
		require.NoError(t, cache.Set(context.Background(), &customer.Address{
			PostalCode: "01310-100",
			City:       "São Paulo",
		}))

		first, err := cache.Get(context.Background(), "01310-100")
		require.NoError(t, err)
		first.City = "mutated"

		second, err := cache.Get(context.Background(), "01310-100")
		require.NoError(t, err)
		assert.Equal(t, "São Paulo", second.City)
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		cache := NewMemoryAddressCache()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = cache.Set(context.Background(), &customer.Address{PostalCode: "01310-100"})
			}()
			go func() {
				defer wg.Done()
				_, _ = cache.Get(context.Background(), "01310-100")
			}()
		}
		wg.Wait()
	})
}
