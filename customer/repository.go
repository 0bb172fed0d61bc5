package customer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/entity"
)

// Repository persists customers. Lookups by id never return the password hash;
// FindByEmail does, for login.
type Repository interface {
	Create(ctx context.Context, c *entity.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	List(ctx context.Context) ([]entity.Customer, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, u entity.ProfileUpdate) (*entity.Customer, error)
	SetWishlist(ctx context.Context, id primitive.ObjectID, wishlist []primitive.ObjectID) error
	AppendOrder(ctx context.Context, id, orderID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
