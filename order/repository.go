package order

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/entity"
)

type Repository interface {
	Create(ctx context.Context, o *entity.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]entity.Order, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]entity.Order, error)
	// ListCreatedBetween returns orders with from <= CreatedAt <= to.
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Order, error)
	// SetStatus writes status and returns the updated order. When from is
	// non-empty the write only happens while the stored status is one of
	// from; otherwise it fails with store.ErrConflict.
	SetStatus(ctx context.Context, id primitive.ObjectID, from []entity.OrderStatus, status entity.OrderStatus) (*entity.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CustomerOrders records an order on its owner's history.
type CustomerOrders interface {
	AppendOrder(ctx context.Context, customerID, orderID primitive.ObjectID) error
}
