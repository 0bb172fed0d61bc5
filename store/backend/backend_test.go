package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartstore-backend/config"
	"smartstore-backend/entity"
	"smartstore-backend/store/memstore"
)

func TestOpenMemory(t *testing.T) {
	cfg, err := config.FromEnv(func(key string) string {
		return map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "memory"}[key]
	})
	require.NoError(t, err)

	b, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &memstore.CustomerRepo{}, b.Customers)
	assert.IsType(t, &memstore.AdminRepo{}, b.Admins)
	assert.IsType(t, &memstore.OrderRepo{}, b.Orders)

	a := &entity.Admin{Name: "Admin", Email: "admin@example.com", PasswordHash: "x"}
	require.NoError(t, b.Admins.Create(context.Background(), a))
	got, err := b.Admins.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Email)
}
