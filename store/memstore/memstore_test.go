package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/entity"
	"smartstore-backend/store"
)

func TestCustomerRepoHidesPassword(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepo()
	c := &entity.Customer{Name: "Asha", Email: "asha@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, c))
	require.False(t, c.ID.IsZero())

	byID, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)

	byEmail, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].PasswordHash)

	err = repo.Create(ctx, &entity.Customer{Name: "Other", Email: "asha@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestCustomerRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepo()
	c := &entity.Customer{Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, c))

	orderID := primitive.NewObjectID()
	require.NoError(t, repo.AppendOrder(ctx, c.ID, orderID))
	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	got.Orders[0] = primitive.NilObjectID

	again, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{orderID}, again.Orders)

	assert.ErrorIs(t, repo.AppendOrder(ctx, primitive.NewObjectID(), orderID), store.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), store.ErrNotFound)
}

func TestOrderRepoListing(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo()
	owner := primitive.NewObjectID()
	base := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	var ids []primitive.ObjectID
	for i, customer := range []primitive.ObjectID{owner, primitive.NewObjectID(), owner} {
		o := &entity.Order{
			Customer:    customer,
			TotalAmount: entity.NewMoney(decimal.NewFromInt(int64(i + 1))),
			Status:      entity.OrderPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, o))
		ids = append(ids, o.ID)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	mine, err := repo.ListByCustomer(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	between, err := repo.ListCreatedBetween(ctx, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, between, 2)

	updated, err := repo.SetStatus(ctx, ids[1], nil, entity.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, updated.Status)

	_, err = repo.SetStatus(ctx, ids[1], []entity.OrderStatus{entity.OrderPending}, entity.OrderDelivered)
	assert.ErrorIs(t, err, store.ErrConflict)
	unchanged, err := repo.FindByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, unchanged.Status)

	updated, err = repo.SetStatus(ctx, ids[1], []entity.OrderStatus{entity.OrderPending, entity.OrderShipped}, entity.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, updated.Status)

	require.NoError(t, repo.Delete(ctx, ids[1]))
	_, err = repo.FindByID(ctx, ids[1])
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = repo.SetStatus(ctx, ids[1], nil, entity.OrderDelivered)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
